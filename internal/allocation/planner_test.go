package allocation

import (
	"testing"

	"kit-allocator/internal/models"

	"github.com/stretchr/testify/require"
)

func avail(id, assetType, category string) models.Asset {
	return models.Asset{ID: id, AssetType: assetType, Category: category, Status: models.StatusAvailable}
}

func TestMatch(t *testing.T) {
	t.Parallel()

	line := models.StarterKitAsset{AssetType: "Laptop", Category: "IT Equipment", Quantity: 1}

	tests := []struct {
		name  string
		asset models.Asset
		want  matchKind
	}{
		{name: "same type", asset: avail("a", "Laptop", "Other"), want: typeMatch},
		{name: "type case-insensitive", asset: avail("a", " laptop ", ""), want: typeMatch},
		{name: "different type same category", asset: avail("a", "Monitor", "IT Equipment"), want: noMatch},
		{name: "no type, same category", asset: avail("a", "", "it equipment"), want: categoryMatch},
		{name: "no type, other category", asset: avail("a", "", "Furniture"), want: noMatch},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, match(tt.asset, line), tt.name)
	}

	categoryOnly := models.StarterKitAsset{Category: "Furniture", Quantity: 1}
	require.Equal(t, categoryMatch, match(avail("a", "Chair", "Furniture"), categoryOnly))
	require.Equal(t, noMatch, match(avail("a", "Chair", "IT Equipment"), categoryOnly))
}

func TestBuildPlan_TypeBeforeCategory(t *testing.T) {
	t.Parallel()

	kit := models.StarterKit{Assets: []models.StarterKitAsset{
		{AssetType: "Laptop", Category: "IT Equipment", Quantity: 1, IsRequired: true},
	}}
	snapshot := []models.Asset{
		avail("untyped-1", "", "IT Equipment"),
		avail("lap-1", "Laptop", "IT Equipment"),
	}

	plan := BuildPlan(kit, snapshot)
	require.Len(t, plan.Lines, 1)
	require.Equal(t, []string{"lap-1", "untyped-1"}, assetIDs(plan.Lines[0].Candidates))
	require.Equal(t, []string{"lap-1"}, assetIDs(plan.Lines[0].Selected()))
	require.Empty(t, plan.MissingAssets())
}

func TestBuildPlan_SkipsUnavailable(t *testing.T) {
	t.Parallel()

	kit := models.StarterKit{Assets: []models.StarterKitAsset{
		{AssetType: "Laptop", Quantity: 3, IsRequired: true},
	}}
	snapshot := []models.Asset{
		{ID: "held", AssetType: "Laptop", Status: models.StatusAssigned, AssignedTo: "e9"},
		{ID: "retired", AssetType: "Laptop", Status: models.StatusRetired},
		{ID: "repair", AssetType: "Laptop", Status: models.StatusUnderRepair},
		{ID: "ghost-holder", AssetType: "Laptop", Status: models.StatusAvailable, AssignedTo: "e3"},
		avail("ok", "Laptop", ""),
	}

	plan := BuildPlan(kit, snapshot)
	require.Equal(t, []string{"ok"}, assetIDs(plan.Lines[0].Candidates))
	require.Equal(t, 1, plan.Lines[0].UnderRepair)
	require.Equal(t, []string{"Laptop (need 3, found 1)"}, plan.MissingAssets())
	require.Equal(t, "1 Laptop unit(s) under repair", plan.MaintenanceWarning())
}

func TestBuildPlan_LinesDoNotShareSelection(t *testing.T) {
	t.Parallel()

	kit := models.StarterKit{Assets: []models.StarterKitAsset{
		{AssetType: "Laptop", Quantity: 1, IsRequired: true},
		{AssetType: "Laptop", Quantity: 1},
	}}
	snapshot := []models.Asset{avail("lap-1", "Laptop", ""), avail("lap-2", "Laptop", "")}

	plan := BuildPlan(kit, snapshot)
	require.Equal(t, []string{"lap-1"}, assetIDs(plan.Lines[0].Selected()))
	require.Equal(t, []string{"lap-2"}, assetIDs(plan.Lines[1].Selected()))
	require.Empty(t, plan.MissingAssets())
}

func TestPlan_MaintenanceWarningJoinsRequiredLines(t *testing.T) {
	t.Parallel()

	kit := models.StarterKit{Assets: []models.StarterKitAsset{
		{AssetType: "Laptop", Quantity: 1, IsRequired: true},
		{AssetType: "Monitor", Quantity: 2, IsRequired: true},
		{AssetType: "Headset", Quantity: 1, IsRequired: false},
	}}
	snapshot := []models.Asset{
		{ID: "l", AssetType: "Laptop", Status: models.StatusUnderRepair},
		{ID: "m1", AssetType: "Monitor", Status: models.StatusUnderRepair},
		{ID: "m2", AssetType: "Monitor", Status: models.StatusUnderRepair},
		{ID: "h", AssetType: "Headset", Status: models.StatusUnderRepair},
	}

	plan := BuildPlan(kit, snapshot)
	require.Equal(t, "1 Laptop unit(s) under repair. 2 Monitor unit(s) under repair", plan.MaintenanceWarning())
	require.Equal(t, []string{
		"Laptop (need 1, found 0)",
		"Monitor (need 2, found 0)",
		"Headset (need 1, found 0)",
	}, plan.MissingAssets())
}

func TestHeldBy(t *testing.T) {
	t.Parallel()

	snapshot := []models.Asset{
		{ID: "a", Status: models.StatusAssigned, AssignedTo: "E1"},
		{ID: "b", Status: models.StatusAssigned, AssignedTo: "e2"},
		{ID: "c", Status: models.StatusAvailable, AssignedTo: "  "},
		{ID: "d", Status: models.StatusUnderRepair, AssignedTo: "e1"},
	}

	require.Equal(t, []string{"a", "d"}, assetIDs(HeldBy(snapshot, " e1 ")))
	require.Empty(t, HeldBy(snapshot, "e3"))
	require.Empty(t, HeldBy(snapshot, ""))
}
