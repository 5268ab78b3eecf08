package allocation

import "kit-allocator/internal/models"

// HeldBy returns the assets bound to employeeID in the snapshot.
//
// Comparison is case-insensitive and blank holders count as none. A
// non-empty result means the employee already has a kit; allocation never
// tops it up.
func HeldBy(snapshot []models.Asset, employeeID string) []models.Asset {
	var held []models.Asset
	for _, a := range snapshot {
		if a.HeldBy(employeeID) {
			held = append(held, a)
		}
	}
	return held
}

func assetIDs(assets []models.Asset) []string {
	ids := make([]string, 0, len(assets))
	for _, a := range assets {
		ids = append(ids, a.ID)
	}
	return ids
}
