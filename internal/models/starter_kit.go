package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var ErrInvalidKit = errors.New("invalid starter kit")

// StarterKit описывает набор оборудования для должности.
// JobTitleKey вычисляется при записи (NormalizeJobTitle) и уникален.
type StarterKit struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	JobTitle    string `gorm:"size:255;not null" json:"jobTitle"`
	JobTitleKey string `gorm:"size:255;uniqueIndex;not null" json:"-"`
	Department  string `gorm:"size:100" json:"department,omitempty"`
	IsActive    bool   `gorm:"not null" json:"isActive"`

	Assets []StarterKitAsset `gorm:"foreignKey:StarterKitID;constraint:OnDelete:CASCADE" json:"assets"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StarterKitAsset это одна строка шаблона.
type StarterKitAsset struct {
	ID             uint   `gorm:"primaryKey" json:"-"`
	StarterKitID   uint   `gorm:"index;not null" json:"-"`
	Position       int    `gorm:"not null" json:"-"`
	AssetType      string `gorm:"size:100" json:"assetType,omitempty"`
	Category       string `gorm:"size:100" json:"category,omitempty"`
	Quantity       int    `gorm:"not null" json:"quantity"`
	IsRequired     bool   `json:"isRequired"`
	Specifications string `gorm:"type:text" json:"specifications,omitempty"`
}

// Label is the human name of a line, used in shortfall and warning text.
func (l StarterKitAsset) Label() string {
	if t := strings.TrimSpace(l.AssetType); t != "" {
		return t
	}
	return strings.TrimSpace(l.Category)
}

// Label is the kit name shown to HR and put into notifications.
func (k StarterKit) Label() string {
	title := strings.TrimSpace(k.JobTitle)
	if d := strings.TrimSpace(k.Department); d != "" {
		return fmt.Sprintf("%s (%s) starter kit", title, d)
	}
	return title + " starter kit"
}

// Normalize fills the canonical key and line positions. Call before saving.
func (k *StarterKit) Normalize() {
	k.JobTitle = strings.TrimSpace(k.JobTitle)
	k.JobTitleKey = NormalizeJobTitle(k.JobTitle)
	k.Department = strings.TrimSpace(k.Department)
	for i := range k.Assets {
		k.Assets[i].Position = i
		k.Assets[i].AssetType = strings.TrimSpace(k.Assets[i].AssetType)
		k.Assets[i].Category = strings.TrimSpace(k.Assets[i].Category)
	}
}

func (k StarterKit) Validate() error {
	if NormalizeJobTitle(k.JobTitle) == "" {
		return fmt.Errorf("%w: job title is required", ErrInvalidKit)
	}
	if len(k.Assets) == 0 {
		return fmt.Errorf("%w: %q has no line items", ErrInvalidKit, k.JobTitle)
	}
	for i, line := range k.Assets {
		if line.Label() == "" {
			return fmt.Errorf("%w: line %d needs an asset type or a category", ErrInvalidKit, i+1)
		}
		if line.Quantity < 1 {
			return fmt.Errorf("%w: line %d (%s) has quantity %d", ErrInvalidKit, i+1, line.Label(), line.Quantity)
		}
	}
	return nil
}

// NormalizeJobTitle maps free-text titles to the catalog key:
// NFKC, trimmed, inner whitespace collapsed, Unicode case-folded.
func NormalizeJobTitle(title string) string {
	s := norm.NFKC.String(title)
	s = strings.Join(strings.Fields(s), " ")
	return cases.Fold().String(s)
}
