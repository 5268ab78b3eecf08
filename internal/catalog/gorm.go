package catalog

import (
	"context"
	"errors"
	"fmt"

	"kit-allocator/internal/models"

	"gorm.io/gorm"
)

type GormCatalog struct {
	db *gorm.DB
}

var _ Catalog = (*GormCatalog)(nil)

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

func (c *GormCatalog) withLines(ctx context.Context) *gorm.DB {
	return c.db.WithContext(ctx).Preload("Assets", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	})
}

func (c *GormCatalog) GetActiveKitByJobTitle(ctx context.Context, jobTitle string) (models.StarterKit, error) {
	key := models.NormalizeJobTitle(jobTitle)

	var kit models.StarterKit
	err := c.withLines(ctx).
		Where("job_title_key = ? AND is_active = ?", key, true).
		First(&kit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.StarterKit{}, fmt.Errorf("%w: %q", ErrKitNotFound, jobTitle)
	}
	if err != nil {
		return models.StarterKit{}, fmt.Errorf("load kit %q: %w", jobTitle, err)
	}
	return kit, nil
}

func (c *GormCatalog) ListKits(ctx context.Context) ([]models.StarterKit, error) {
	var kits []models.StarterKit
	if err := c.withLines(ctx).Order("job_title_key asc").Find(&kits).Error; err != nil {
		return nil, fmt.Errorf("list kits: %w", err)
	}
	return kits, nil
}

// SaveKit заменяет строки шаблона целиком, чтобы порядок строк совпадал с
// тем, что прислал HR.
func (c *GormCatalog) SaveKit(ctx context.Context, kit models.StarterKit) (models.StarterKit, error) {
	kit, err := prepareKit(kit)
	if err != nil {
		return models.StarterKit{}, err
	}
	lines := kit.Assets
	kit.Assets = nil

	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.StarterKit
		err := tx.Where("job_title_key = ?", kit.JobTitleKey).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			kit.ID = 0
			if err := tx.Omit("Assets").Create(&kit).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			kit.ID = existing.ID
			kit.CreatedAt = existing.CreatedAt
			if err := tx.Where("starter_kit_id = ?", kit.ID).Delete(&models.StarterKitAsset{}).Error; err != nil {
				return err
			}
			if err := tx.Omit("Assets").Save(&kit).Error; err != nil {
				return err
			}
		}

		for i := range lines {
			lines[i].ID = 0
			lines[i].StarterKitID = kit.ID
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.StarterKit{}, fmt.Errorf("save kit %q: %w", kit.JobTitle, err)
	}

	kit.Assets = lines
	return kit, nil
}
