// Package catalog holds StarterKit templates keyed by canonical job title.
//
// Kits are authored by HR out of band; the allocation engine only reads them.
// Titles are normalized once on save, so "Software Engineer" and
// " software  ENGINEER" are the same kit.
package catalog

import (
	"context"
	"errors"

	"kit-allocator/internal/models"
)

var ErrKitNotFound = errors.New("starter kit not found")

type Catalog interface {
	// GetActiveKitByJobTitle returns the active kit for the title, matched
	// case-insensitively after trimming. ErrKitNotFound when none is active.
	GetActiveKitByJobTitle(ctx context.Context, jobTitle string) (models.StarterKit, error)

	// ListKits returns all kits, active or not, ordered by job title.
	ListKits(ctx context.Context) ([]models.StarterKit, error)

	// SaveKit validates and upserts a kit by its canonical job title.
	SaveKit(ctx context.Context, kit models.StarterKit) (models.StarterKit, error)
}

func prepareKit(kit models.StarterKit) (models.StarterKit, error) {
	if err := kit.Validate(); err != nil {
		return models.StarterKit{}, err
	}
	kit.Normalize()
	return kit, nil
}
