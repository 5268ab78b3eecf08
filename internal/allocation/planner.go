package allocation

import (
	"fmt"
	"strings"

	"kit-allocator/internal/models"
)

type matchKind int

const (
	noMatch matchKind = iota
	typeMatch
	categoryMatch
)

// match applies the line matching rule: same asset type, or, for an asset
// with no type recorded, same category. A line without a type matches on
// category alone.
func match(a models.Asset, line models.StarterKitAsset) matchKind {
	lineType := strings.TrimSpace(line.AssetType)
	lineCategory := strings.TrimSpace(line.Category)
	assetType := strings.TrimSpace(a.AssetType)

	if lineType != "" && assetType != "" {
		if strings.EqualFold(assetType, lineType) {
			return typeMatch
		}
		return noMatch
	}
	// a category-only line accepts typed assets too
	if lineCategory != "" && strings.EqualFold(strings.TrimSpace(a.Category), lineCategory) {
		return categoryMatch
	}
	return noMatch
}

// LinePlan is the selection for one kit line.
type LinePlan struct {
	Index int
	Item  models.StarterKitAsset

	// Candidates are the Available matches in preference order: type
	// matches first, then category fallbacks, each in snapshot order. The
	// first Quantity of them are the selection, the rest are spares used
	// when a selected unit is taken by a concurrent allocation.
	Candidates []models.Asset

	// UnderRepair counts matching units currently in maintenance.
	UnderRepair int
}

// Selected returns the units the line would take from the snapshot.
func (l LinePlan) Selected() []models.Asset {
	n := l.Item.Quantity
	if n > len(l.Candidates) {
		n = len(l.Candidates)
	}
	return l.Candidates[:n]
}

// Plan is the output of BuildPlan for one kit and one snapshot.
type Plan struct {
	Kit   models.StarterKit
	Lines []LinePlan
}

// BuildPlan matches every kit line against the snapshot.
//
// Lines are planned in kit order and independently of each other's
// shortfalls, except that a unit selected by an earlier line is not offered
// to a later one.
func BuildPlan(kit models.StarterKit, snapshot []models.Asset) Plan {
	plan := Plan{Kit: kit, Lines: make([]LinePlan, 0, len(kit.Assets))}
	reserved := make(map[string]struct{})

	for i, line := range kit.Assets {
		lp := LinePlan{Index: i, Item: line}

		var byType, byCategory []models.Asset
		for _, a := range snapshot {
			kind := match(a, line)
			if kind == noMatch {
				continue
			}
			if a.Status == models.StatusUnderRepair {
				lp.UnderRepair++
				continue
			}
			if !a.IsAvailable() {
				continue
			}
			if _, taken := reserved[a.ID]; taken {
				continue
			}
			if kind == typeMatch {
				byType = append(byType, a)
			} else {
				byCategory = append(byCategory, a)
			}
		}
		lp.Candidates = append(byType, byCategory...)

		for _, a := range lp.Selected() {
			reserved[a.ID] = struct{}{}
		}
		plan.Lines = append(plan.Lines, lp)
	}
	return plan
}

// MissingAssets reports the shortfalls visible in the snapshot.
func (p Plan) MissingAssets() []string {
	found := make([]int, len(p.Lines))
	for i, l := range p.Lines {
		found[i] = len(l.Selected())
	}
	return missingAssets(p.Lines, found)
}

// MaintenanceWarning describes required lines with units under repair;
// multiple lines are joined with ". ".
func (p Plan) MaintenanceWarning() string {
	var parts []string
	for _, l := range p.Lines {
		if l.UnderRepair == 0 || !l.Item.IsRequired {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d %s unit(s) under repair", l.UnderRepair, l.Item.Label()))
	}
	return strings.Join(parts, ". ")
}

// missingAssets formats "<type> (need q, found f)" for every line whose
// assigned count found[i] is below its quantity.
func missingAssets(lines []LinePlan, found []int) []string {
	missing := []string{}
	for i, l := range lines {
		if found[i] >= l.Item.Quantity {
			continue
		}
		missing = append(missing, fmt.Sprintf("%s (need %d, found %d)", l.Item.Label(), l.Item.Quantity, found[i]))
	}
	return missing
}
