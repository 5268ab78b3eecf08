package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"kit-allocator/internal/models"
)

// MemoryStore keeps assets in process. Used by the "memory" backend and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	assets map[string]models.Asset
	order  []string
	now    func() time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		assets: make(map[string]models.Asset),
		now:    time.Now,
	}
}

func (s *MemoryStore) ListAssets(ctx context.Context) ([]models.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Asset, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.assets[id])
	}
	return out, nil
}

func (s *MemoryStore) GetAsset(ctx context.Context, id string) (models.Asset, error) {
	if err := ctx.Err(); err != nil {
		return models.Asset{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.assets[id]
	if !ok {
		return models.Asset{}, fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	return a, nil
}

func (s *MemoryStore) CreateAsset(ctx context.Context, asset models.Asset) (models.Asset, error) {
	if err := ctx.Err(); err != nil {
		return models.Asset{}, err
	}

	asset, err := prepareNew(asset)
	if err != nil {
		return models.Asset{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.assets[asset.ID]; ok {
		return models.Asset{}, fmt.Errorf("%w: %s", ErrAssetExists, asset.ID)
	}
	now := s.now()
	asset.CreatedAt = now
	asset.UpdatedAt = now
	s.assets[asset.ID] = asset
	s.order = append(s.order, asset.ID)
	return asset, nil
}

func (s *MemoryStore) UpdateAsset(ctx context.Context, id string, expectedVersion uint64, patch models.AssetPatch) (models.Asset, error) {
	if err := ctx.Err(); err != nil {
		return models.Asset{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.assets[id]
	if !ok {
		return models.Asset{}, fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	if current.Version != expectedVersion {
		return models.Asset{}, fmt.Errorf("%w: %s at version %d, expected %d", ErrVersionConflict, id, current.Version, expectedVersion)
	}

	next := patch.Apply(current)
	if err := next.Validate(); err != nil {
		return models.Asset{}, err
	}
	next.Version = current.Version + 1
	next.UpdatedAt = s.now()
	s.assets[id] = next
	return next, nil
}
