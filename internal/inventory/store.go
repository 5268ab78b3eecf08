// Package inventory is the access layer for the shared asset collection.
//
// Every write is conditional on the version the caller last read
// (optimistic concurrency). Two allocations racing for the same unit cannot
// both commit: the loser gets ErrVersionConflict and must re-read.
package inventory

import (
	"context"
	"errors"

	"kit-allocator/internal/models"
)

var (
	ErrAssetNotFound   = errors.New("asset not found")
	ErrAssetExists     = errors.New("asset already exists")
	ErrVersionConflict = errors.New("asset version conflict")
)

// Store is the Inventory Store contract.
type Store interface {
	// ListAssets returns a full snapshot in insertion order.
	ListAssets(ctx context.Context) ([]models.Asset, error)

	// GetAsset reads one asset by id.
	GetAsset(ctx context.Context, id string) (models.Asset, error)

	// CreateAsset inserts a new asset at version 1.
	CreateAsset(ctx context.Context, asset models.Asset) (models.Asset, error)

	// UpdateAsset applies patch only when the stored version equals
	// expectedVersion, and returns the asset with its new version.
	UpdateAsset(ctx context.Context, id string, expectedVersion uint64, patch models.AssetPatch) (models.Asset, error)
}

// prepareNew validates a new asset and resets its version.
func prepareNew(asset models.Asset) (models.Asset, error) {
	if asset.Status == "" {
		asset.Status = models.StatusAvailable
	}
	if err := asset.Validate(); err != nil {
		return models.Asset{}, err
	}
	asset.Version = 1
	return asset, nil
}
