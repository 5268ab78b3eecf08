package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kit-allocator/internal/models"

	"gorm.io/gorm"
)

// GormStore keeps assets in the relational database (postgres in production).
// Conditional writes are UPDATE ... WHERE id = ? AND version = ?; zero rows
// affected means somebody else wrote first.
type GormStore struct {
	db       *gorm.DB
	now      func() time.Time
	claimTTL time.Duration
}

var (
	_ Store           = (*GormStore)(nil)
	_ EmployeeClaimer = (*GormStore)(nil)
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: time.Now, claimTTL: DefaultClaimTTL}
}

// ClaimEmployee inserts the employee's claim row. A concurrent insert of
// the same key fails on the primary key; rows older than the claim TTL are
// left over from a crashed process and are removed first.
func (s *GormStore) ClaimEmployee(ctx context.Context, employeeID string) (func(context.Context) error, error) {
	now := s.now()
	claim := models.AllocationClaim{
		EmployeeKey: claimKey(employeeID),
		Token:       newClaimToken(now),
		CreatedAt:   now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_key = ? AND created_at < ?", claim.EmployeeKey, now.Add(-s.claimTTL)).
			Delete(&models.AllocationClaim{}).Error; err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.AllocationClaim{}).Where("employee_key = ?", claim.EmployeeKey).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %s", ErrEmployeeClaimed, employeeID)
		}
		return tx.Create(&claim).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, fmt.Errorf("%w: %s", ErrEmployeeClaimed, employeeID)
	}
	if err != nil {
		if errors.Is(err, ErrEmployeeClaimed) {
			return nil, err
		}
		return nil, fmt.Errorf("claim employee %s: %w", employeeID, err)
	}

	release := func(ctx context.Context) error {
		err := s.db.WithContext(ctx).
			Where("employee_key = ? AND token = ?", claim.EmployeeKey, claim.Token).
			Delete(&models.AllocationClaim{}).Error
		if err != nil {
			return fmt.Errorf("release employee %s: %w", employeeID, err)
		}
		return nil
	}
	return release, nil
}

func (s *GormStore) ListAssets(ctx context.Context) ([]models.Asset, error) {
	var assets []models.Asset
	if err := s.db.WithContext(ctx).Order("created_at asc, id asc").Find(&assets).Error; err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	for _, a := range assets {
		if err := checkEnums(a); err != nil {
			return nil, err
		}
	}
	return assets, nil
}

func (s *GormStore) GetAsset(ctx context.Context, id string) (models.Asset, error) {
	var a models.Asset
	err := s.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Asset{}, fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	if err != nil {
		return models.Asset{}, fmt.Errorf("get asset %s: %w", id, err)
	}
	if err := checkEnums(a); err != nil {
		return models.Asset{}, err
	}
	return a, nil
}

func (s *GormStore) CreateAsset(ctx context.Context, asset models.Asset) (models.Asset, error) {
	asset, err := prepareNew(asset)
	if err != nil {
		return models.Asset{}, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Asset{}).Where("id = ?", asset.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %s", ErrAssetExists, asset.ID)
		}
		return tx.Create(&asset).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.Asset{}, fmt.Errorf("%w: %s", ErrAssetExists, asset.ID)
	}
	if err != nil {
		if errors.Is(err, ErrAssetExists) {
			return models.Asset{}, err
		}
		return models.Asset{}, fmt.Errorf("create asset %s: %w", asset.ID, err)
	}
	return asset, nil
}

func (s *GormStore) UpdateAsset(ctx context.Context, id string, expectedVersion uint64, patch models.AssetPatch) (models.Asset, error) {
	current, err := s.GetAsset(ctx, id)
	if err != nil {
		return models.Asset{}, err
	}
	if current.Version != expectedVersion {
		return models.Asset{}, fmt.Errorf("%w: %s at version %d, expected %d", ErrVersionConflict, id, current.Version, expectedVersion)
	}

	next := patch.Apply(current)
	if err := next.Validate(); err != nil {
		return models.Asset{}, err
	}
	next.Version = expectedVersion + 1
	next.UpdatedAt = s.now()

	res := s.db.WithContext(ctx).
		Model(&models.Asset{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]any{
			"status":        next.Status,
			"assigned_to":   next.AssignedTo,
			"assigned_date": next.AssignedDate,
			"is_essential":  next.IsEssential,
			"priority":      next.Priority,
			"version":       next.Version,
			"updated_at":    next.UpdatedAt,
		})
	if res.Error != nil {
		return models.Asset{}, fmt.Errorf("update asset %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.Asset{}, fmt.Errorf("%w: %s changed after version %d", ErrVersionConflict, id, expectedVersion)
	}
	return next, nil
}

func checkEnums(a models.Asset) error {
	if !a.Status.Valid() {
		return fmt.Errorf("asset %s: %w: %q", a.ID, models.ErrInvalidStatus, a.Status)
	}
	if a.Priority != "" && !a.Priority.Valid() {
		return fmt.Errorf("asset %s: %w: %q", a.ID, models.ErrInvalidPriority, a.Priority)
	}
	return nil
}
