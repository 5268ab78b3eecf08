package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"kit-allocator/internal/logging"
	"kit-allocator/internal/models"

	"gopkg.in/yaml.v3"
)

// kitFile models the seed file:
//
//	kits:
//	  - job_title: Software Engineer
//	    department: Engineering
//	    assets:
//	      - type: Laptop
//	        category: IT Equipment
//	        quantity: 1
//	        required: true
type kitFile struct {
	Kits []kitEntry `yaml:"kits"`
}

type kitEntry struct {
	JobTitle   string      `yaml:"job_title"`
	Department string      `yaml:"department,omitempty"`
	Active     *bool       `yaml:"active,omitempty"`
	Assets     []lineEntry `yaml:"assets"`
}

type lineEntry struct {
	Type           string `yaml:"type,omitempty"`
	Category       string `yaml:"category,omitempty"`
	Quantity       *int   `yaml:"quantity,omitempty"`
	Required       bool   `yaml:"required,omitempty"`
	Specifications string `yaml:"specifications,omitempty"`
}

// LoadYAML parses kits from r. Kits default to active and lines to quantity 1.
func LoadYAML(r io.Reader) ([]models.StarterKit, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f kitFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse kit catalog: %w", err)
	}

	kits := make([]models.StarterKit, 0, len(f.Kits))
	for i, e := range f.Kits {
		kit := models.StarterKit{
			JobTitle:   e.JobTitle,
			Department: e.Department,
			IsActive:   e.Active == nil || *e.Active,
		}
		for _, l := range e.Assets {
			qty := 1
			if l.Quantity != nil {
				qty = *l.Quantity
			}
			kit.Assets = append(kit.Assets, models.StarterKitAsset{
				AssetType:      l.Type,
				Category:       l.Category,
				Quantity:       qty,
				IsRequired:     l.Required,
				Specifications: l.Specifications,
			})
		}
		if err := kit.Validate(); err != nil {
			return nil, fmt.Errorf("kit #%d: %w", i+1, err)
		}
		kits = append(kits, kit)
	}
	return kits, nil
}

func LoadYAMLFile(path string) ([]models.StarterKit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read kit catalog: %w", err)
	}
	return LoadYAML(bytes.NewReader(data))
}

// Seed upserts kits into the catalog.
func Seed(ctx context.Context, c Catalog, kits []models.StarterKit, logger logging.Logger) error {
	logger = logging.OrNop(logger)
	for _, kit := range kits {
		saved, err := c.SaveKit(ctx, kit)
		if err != nil {
			return err
		}
		logger.Info("starter kit seeded", "job_title", saved.JobTitle, "lines", len(saved.Assets), "active", saved.IsActive)
	}
	return nil
}
