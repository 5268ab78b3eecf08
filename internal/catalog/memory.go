package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"kit-allocator/internal/models"
)

type MemoryCatalog struct {
	mu     sync.RWMutex
	kits   map[string]models.StarterKit
	nextID uint
}

var _ Catalog = (*MemoryCatalog)(nil)

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{kits: make(map[string]models.StarterKit)}
}

func (c *MemoryCatalog) GetActiveKitByJobTitle(ctx context.Context, jobTitle string) (models.StarterKit, error) {
	if err := ctx.Err(); err != nil {
		return models.StarterKit{}, err
	}

	key := models.NormalizeJobTitle(jobTitle)

	c.mu.RLock()
	defer c.mu.RUnlock()

	kit, ok := c.kits[key]
	if !ok || !kit.IsActive {
		return models.StarterKit{}, fmt.Errorf("%w: %q", ErrKitNotFound, jobTitle)
	}
	return cloneKit(kit), nil
}

func (c *MemoryCatalog) ListKits(ctx context.Context) ([]models.StarterKit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.StarterKit, 0, len(c.kits))
	for _, k := range c.kits {
		out = append(out, cloneKit(k))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JobTitleKey < out[j].JobTitleKey })
	return out, nil
}

func (c *MemoryCatalog) SaveKit(ctx context.Context, kit models.StarterKit) (models.StarterKit, error) {
	if err := ctx.Err(); err != nil {
		return models.StarterKit{}, err
	}

	kit, err := prepareKit(kit)
	if err != nil {
		return models.StarterKit{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if existing, ok := c.kits[kit.JobTitleKey]; ok {
		kit.ID = existing.ID
		kit.CreatedAt = existing.CreatedAt
	} else {
		c.nextID++
		kit.ID = c.nextID
		kit.CreatedAt = now
	}
	kit.UpdatedAt = now
	for i := range kit.Assets {
		kit.Assets[i].StarterKitID = kit.ID
	}

	kit = cloneKit(kit)
	c.kits[kit.JobTitleKey] = kit
	return cloneKit(kit), nil
}

func cloneKit(k models.StarterKit) models.StarterKit {
	k.Assets = append([]models.StarterKitAsset(nil), k.Assets...)
	return k
}
