package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidStatus   = errors.New("invalid asset status")
	ErrInvalidPriority = errors.New("invalid asset priority")
	ErrInvalidAsset    = errors.New("invalid asset")
)

type AssetStatus string

const (
	StatusAvailable   AssetStatus = "available"
	StatusAssigned    AssetStatus = "assigned"
	StatusUnderRepair AssetStatus = "under_repair"
	StatusRetired     AssetStatus = "retired"
)

func (s AssetStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusAssigned, StatusUnderRepair, StatusRetired:
		return true
	}
	return false
}

// ParseAssetStatus accepts the canonical values as well as the labels HR
// staff type into spreadsheets ("Under Repair", "under-repair").
func ParseAssetStatus(raw string) (AssetStatus, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	s := AssetStatus(key)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
	return p, nil
}

// Asset описывает единицу инвентаря (ноутбук, монитор, гарнитура).
// Version растёт на каждой записи и используется для optimistic locking.
type Asset struct {
	ID        string `gorm:"primaryKey;size:64" json:"id"`
	Name      string `gorm:"size:255" json:"name,omitempty"`
	AssetType string `gorm:"size:100;index" json:"assetType,omitempty"`
	Category  string `gorm:"size:100;index" json:"category,omitempty"`

	Status       AssetStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	AssignedTo   string      `gorm:"size:100;index" json:"assignedTo,omitempty"`
	AssignedDate *time.Time  `json:"assignedDate,omitempty"`
	IsEssential  bool        `json:"isEssential"`
	Priority     Priority    `gorm:"type:varchar(20)" json:"priority,omitempty"`

	Version   uint64    `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsAvailable reports whether the unit can be handed out right now.
func (a Asset) IsAvailable() bool {
	return a.Status == StatusAvailable && strings.TrimSpace(a.AssignedTo) == ""
}

// HeldBy compares the holder case-insensitively; blank holders hold nothing.
func (a Asset) HeldBy(employeeID string) bool {
	holder := strings.TrimSpace(a.AssignedTo)
	if holder == "" {
		return false
	}
	return strings.EqualFold(holder, strings.TrimSpace(employeeID))
}

// Validate checks the enum fields and the assignment invariants:
// assigned <=> holder set, available => no holder, date set iff assigned.
func (a Asset) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidAsset)
	}
	if !a.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, a.Status)
	}
	if a.Priority != "" && !a.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, a.Priority)
	}

	held := strings.TrimSpace(a.AssignedTo) != ""
	switch {
	case a.Status == StatusAssigned && !held:
		return fmt.Errorf("%w: %s is assigned without a holder", ErrInvalidAsset, a.ID)
	case a.Status == StatusAvailable && held:
		return fmt.Errorf("%w: %s is available but held by %s", ErrInvalidAsset, a.ID, a.AssignedTo)
	case a.Status == StatusAssigned && a.AssignedDate == nil:
		return fmt.Errorf("%w: %s is assigned without a date", ErrInvalidAsset, a.ID)
	case a.Status != StatusAssigned && a.AssignedDate != nil:
		return fmt.Errorf("%w: %s has an assignment date but status %s", ErrInvalidAsset, a.ID, a.Status)
	}
	return nil
}

// AssetPatch is a partial update. Nil fields are left untouched.
type AssetPatch struct {
	Status            *AssetStatus
	AssignedTo        *string
	AssignedDate      *time.Time
	ClearAssignedDate bool
	IsEssential       *bool
	Priority          *Priority
}

// Apply returns a copy of a with the patch applied.
func (p AssetPatch) Apply(a Asset) Asset {
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.AssignedTo != nil {
		a.AssignedTo = *p.AssignedTo
	}
	if p.ClearAssignedDate {
		a.AssignedDate = nil
	}
	if p.AssignedDate != nil {
		d := *p.AssignedDate
		a.AssignedDate = &d
	}
	if p.IsEssential != nil {
		a.IsEssential = *p.IsEssential
	}
	if p.Priority != nil {
		a.Priority = *p.Priority
	}
	return a
}

// AssignPatch builds the Available -> Assigned transition.
func AssignPatch(employeeID string, at time.Time, essential bool, priority Priority) AssetPatch {
	status := StatusAssigned
	holder := strings.TrimSpace(employeeID)
	return AssetPatch{
		Status:       &status,
		AssignedTo:   &holder,
		AssignedDate: &at,
		IsEssential:  &essential,
		Priority:     &priority,
	}
}

// ReleasePatch builds the Assigned -> Available transition. The allocator
// never issues it; unassignment is owned outside this service.
func ReleasePatch() AssetPatch {
	status := StatusAvailable
	holder := ""
	return AssetPatch{
		Status:            &status,
		AssignedTo:        &holder,
		ClearAssignedDate: true,
	}
}
