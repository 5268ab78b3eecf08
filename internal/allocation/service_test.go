package allocation_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"kit-allocator/internal/allocation"
	"kit-allocator/internal/catalog"
	"kit-allocator/internal/inventory"
	"kit-allocator/internal/models"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)

type fixture struct {
	store   *inventory.MemoryStore
	catalog *catalog.MemoryCatalog
}

func newFixture(t *testing.T, kits ...models.StarterKit) *fixture {
	t.Helper()

	f := &fixture{store: inventory.NewMemoryStore(), catalog: catalog.NewMemoryCatalog()}
	for _, k := range kits {
		_, err := f.catalog.SaveKit(context.Background(), k)
		require.NoError(t, err)
	}
	return f
}

func (f *fixture) add(t *testing.T, assets ...models.Asset) {
	t.Helper()
	for _, a := range assets {
		_, err := f.store.CreateAsset(context.Background(), a)
		require.NoError(t, err)
	}
}

func (f *fixture) service(t *testing.T, opts ...allocation.Option) *allocation.Service {
	t.Helper()
	return newService(t, f.store, f.catalog, opts...)
}

func newService(t *testing.T, store inventory.Store, kits catalog.Catalog, opts ...allocation.Option) *allocation.Service {
	t.Helper()
	opts = append([]allocation.Option{allocation.WithClock(func() time.Time { return fixedNow })}, opts...)
	svc, err := allocation.NewService(store, kits, opts...)
	require.NoError(t, err)
	return svc
}

func (f *fixture) asset(t *testing.T, id string) models.Asset {
	t.Helper()
	a, err := f.store.GetAsset(context.Background(), id)
	require.NoError(t, err)
	return a
}

func kit(title string, lines ...models.StarterKitAsset) models.StarterKit {
	return models.StarterKit{JobTitle: title, IsActive: true, Assets: lines}
}

func line(assetType, category string, qty int, required bool) models.StarterKitAsset {
	return models.StarterKitAsset{AssetType: assetType, Category: category, Quantity: qty, IsRequired: required}
}

func laptop(id string) models.Asset {
	return models.Asset{ID: id, AssetType: "Laptop", Category: "IT Equipment"}
}

func assignedIDs(res models.AllocationResult) []string {
	ids := make([]string, 0, len(res.Assigned))
	for _, a := range res.Assigned {
		ids = append(ids, a.AssetID)
	}
	return ids
}

func TestAutoAssign_TwoLaptopsFromThree(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFixture(t, kit("Software Engineer", line("Laptop", "IT Equipment", 2, true)))
	f.add(t, laptop("lap-1"), laptop("lap-2"), laptop("lap-3"))

	res := f.service(t).AutoAssignStarterKit(ctx, "E1", "Ada Lovelace", "software engineer")

	require.True(t, res.Success)
	require.Equal(t, models.OutcomeAssigned, res.Outcome)
	require.Equal(t, 2, res.AssignedCount)
	require.Empty(t, res.MissingAssets)
	require.NotNil(t, res.MissingAssets)
	require.Empty(t, res.MaintenanceWarning)
	require.Equal(t, []string{"lap-1", "lap-2"}, assignedIDs(res))
	require.NoError(t, res.Err)

	for _, id := range []string{"lap-1", "lap-2"} {
		a := f.asset(t, id)
		require.Equal(t, models.StatusAssigned, a.Status)
		require.Equal(t, "E1", a.AssignedTo)
		require.NotNil(t, a.AssignedDate)
		require.True(t, a.AssignedDate.Equal(fixedNow))
		require.True(t, a.IsEssential)
		require.Equal(t, models.PriorityHigh, a.Priority)
	}
	require.True(t, f.asset(t, "lap-3").IsAvailable())
}

func TestAutoAssign_MonitorsOnlyUnderRepair(t *testing.T) {
	t.Parallel()

	f := newFixture(t, kit("Designer", line("Monitor", "IT Equipment", 1, true)))
	f.add(t,
		models.Asset{ID: "mon-1", AssetType: "Monitor", Status: models.StatusUnderRepair},
		models.Asset{ID: "mon-2", AssetType: "Monitor", Status: models.StatusUnderRepair},
	)

	res := f.service(t).AutoAssignStarterKit(context.Background(), "E2", "Grace", "Designer")

	require.False(t, res.Success)
	require.Equal(t, models.OutcomeOutOfStock, res.Outcome)
	require.Equal(t, 0, res.AssignedCount)
	require.Equal(t, []string{"Monitor (need 1, found 0)"}, res.MissingAssets)
	require.Contains(t, res.MaintenanceWarning, "2 Monitor")
	require.Contains(t, res.MaintenanceWarning, "under repair")
}

func TestAutoAssign_RefusesWhenAlreadyHolding(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFixture(t, kit("Software Engineer", line("Laptop", "", 1, true)))
	f.add(t, laptop("lap-1"), laptop("lap-2"))
	svc := f.service(t)

	first := svc.AutoAssignStarterKit(ctx, "e1", "Ada", "Software Engineer")
	require.True(t, first.Success)

	before, err := f.store.ListAssets(ctx)
	require.NoError(t, err)

	for _, id := range []string{"e1", "E1", "  e1 "} {
		again := svc.AutoAssignStarterKit(ctx, id, "Ada", "Software Engineer")
		require.False(t, again.Success, id)
		require.Equal(t, 0, again.AssignedCount, id)
		require.Equal(t, models.OutcomeAlreadyAssigned, again.Outcome, id)
		require.Equal(t, []string{"lap-1"}, again.ExistingAssets, id)
	}

	after, err := f.store.ListAssets(ctx)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestAutoAssign_RefusesEvenWhenHeldAssetIsInRepair(t *testing.T) {
	t.Parallel()

	f := newFixture(t, kit("Software Engineer", line("Laptop", "", 1, true)))
	f.add(t, laptop("lap-1"))
	_, err := f.store.CreateAsset(context.Background(), models.Asset{
		ID: "hs-1", AssetType: "Headset", Status: models.StatusUnderRepair, AssignedTo: "e1",
	})
	require.NoError(t, err)

	res := f.service(t).AutoAssignStarterKit(context.Background(), "e1", "Ada", "Software Engineer")
	require.Equal(t, models.OutcomeAlreadyAssigned, res.Outcome)
	require.True(t, f.asset(t, "lap-1").IsAvailable())
}

func TestAutoAssign_ExactQuantityCap(t *testing.T) {
	t.Parallel()

	f := newFixture(t, kit("Support", line("Laptop", "", 2, true)))
	for i := 1; i <= 5; i++ {
		f.add(t, laptop(fmt.Sprintf("lap-%d", i)))
	}

	res := f.service(t).AutoAssignStarterKit(context.Background(), "e1", "Ada", "Support")
	require.Equal(t, 2, res.AssignedCount)

	assets, err := f.store.ListAssets(context.Background())
	require.NoError(t, err)
	var assigned, available int
	for _, a := range assets {
		switch a.Status {
		case models.StatusAssigned:
			assigned++
		case models.StatusAvailable:
			available++
		}
	}
	require.Equal(t, 2, assigned)
	require.Equal(t, 3, available)
}

func TestAutoAssign_TypeMatchPreferredOverCategory(t *testing.T) {
	t.Parallel()

	f := newFixture(t, kit("Support", line("Laptop", "IT Equipment", 1, true)))
	f.add(t,
		models.Asset{ID: "untyped", Category: "IT Equipment"},
		laptop("typed"),
	)

	res := f.service(t).AutoAssignStarterKit(context.Background(), "e1", "Ada", "Support")
	require.Equal(t, []string{"typed"}, assignedIDs(res))
	require.True(t, f.asset(t, "untyped").IsAvailable())
}

func TestAutoAssign_CategoryFallback(t *testing.T) {
	t.Parallel()

	f := newFixture(t, kit("Support", line("Laptop", "IT Equipment", 2, true)))
	f.add(t,
		models.Asset{ID: "untyped", Category: "it equipment"},
		laptop("typed"),
		models.Asset{ID: "monitor", AssetType: "Monitor", Category: "IT Equipment"},
	)

	res := f.service(t).AutoAssignStarterKit(context.Background(), "e1", "Ada", "Support")
	require.Equal(t, []string{"typed", "untyped"}, assignedIDs(res))
	require.Equal(t, models.OutcomeAssigned, res.Outcome)
	require.True(t, f.asset(t, "monitor").IsAvailable())
}

func TestAutoAssign_PartialSuccess(t *testing.T) {
	t.Parallel()

	f := newFixture(t, kit("Analyst",
		line("Laptop", "IT Equipment", 1, true),
		line("Monitor", "IT Equipment", 2, true),
	))
	f.add(t, laptop("lap-1"))

	res := f.service(t).AutoAssignStarterKit(context.Background(), "e1", "Ada", "Analyst")
	require.True(t, res.Success)
	require.Equal(t, models.OutcomePartiallyAssigned, res.Outcome)
	require.Equal(t, 1, res.AssignedCount)
	require.Equal(t, []string{"Monitor (need 2, found 0)"}, res.MissingAssets)
}

func TestAutoAssign_NoKitConfigured(t *testing.T) {
	t.Parallel()

	inactive := kit("Intern", line("Laptop", "", 1, true))
	inactive.IsActive = false
	f := newFixture(t, inactive)
	f.add(t, laptop("lap-1"))

	svc := f.service(t)
	for _, title := range []string{"Astronaut", "Intern"} {
		res := svc.AutoAssignStarterKit(context.Background(), "e1", "Ada", title)
		require.False(t, res.Success, title)
		require.Equal(t, models.OutcomeNoKitConfigured, res.Outcome, title)
		require.Empty(t, res.MissingAssets, title)
		require.NoError(t, res.Err, title)
	}
	require.True(t, f.asset(t, "lap-1").IsAvailable())
}

func TestAutoAssign_InvalidRequest(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	svc := f.service(t)

	for _, args := range [][2]string{{"", "Dev"}, {"e1", "   "}} {
		res := svc.AutoAssignStarterKit(context.Background(), args[0], "x", args[1])
		require.Equal(t, models.OutcomeInvalidRequest, res.Outcome)
		require.ErrorIs(t, res.Err, allocation.ErrInvalidRequest)
		require.NotEmpty(t, res.Error)
	}
}

func TestAutoAssign_OptionalLinePriority(t *testing.T) {
	t.Parallel()

	f := newFixture(t, kit("Support",
		line("Headset", "", 1, false),
		line("Mouse", "", 1, false),
	))
	f.add(t,
		models.Asset{ID: "hs-1", AssetType: "Headset", Priority: models.PriorityLow},
		models.Asset{ID: "mouse-1", AssetType: "Mouse"},
	)

	res := f.service(t).AutoAssignStarterKit(context.Background(), "e1", "Ada", "Support")
	require.Equal(t, 2, res.AssignedCount)

	hs := f.asset(t, "hs-1")
	require.False(t, hs.IsEssential)
	require.Equal(t, models.PriorityLow, hs.Priority)

	mouse := f.asset(t, "mouse-1")
	require.False(t, mouse.IsEssential)
	require.Equal(t, models.PriorityMedium, mouse.Priority)
}

func TestAutoAssign_ConcurrentSingleUnit(t *testing.T) {
	t.Parallel()

	f := newFixture(t, kit("Support", line("Laptop", "", 1, true)))
	f.add(t, laptop("only"))
	svc := f.service(t)

	const callers = 2
	results := make([]models.AllocationResult, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.AutoAssignStarterKit(context.Background(), fmt.Sprintf("e%d", i), "x", "Support")
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, res := range results {
		if res.AssignedCount == 1 {
			winners++
			continue
		}
		require.Equal(t, []string{"Laptop (need 1, found 0)"}, res.MissingAssets)
	}
	require.Equal(t, 1, winners)

	holder := f.asset(t, "only").AssignedTo
	require.Contains(t, []string{"e0", "e1"}, holder)
}

func TestAutoAssign_NoDoubleBookingUnderLoad(t *testing.T) {
	t.Parallel()

	f := newFixture(t, kit("Support", line("Laptop", "", 1, true)))
	const units = 10
	for i := 0; i < units; i++ {
		f.add(t, laptop(fmt.Sprintf("lap-%02d", i)))
	}
	svc := f.service(t)

	const employees = 25
	var wg sync.WaitGroup
	results := make([]models.AllocationResult, employees)
	for i := 0; i < employees; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.AutoAssignStarterKit(context.Background(), fmt.Sprintf("emp-%02d", i), "x", "Support")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, res := range results {
		require.NoError(t, res.Err)
		succeeded += res.AssignedCount
	}
	require.Equal(t, units, succeeded)

	holders := map[string]string{}
	assets, err := f.store.ListAssets(context.Background())
	require.NoError(t, err)
	for _, a := range assets {
		require.Equal(t, models.StatusAssigned, a.Status)
		prev, dup := holders[a.AssignedTo]
		require.False(t, dup, "employee %s holds %s and %s", a.AssignedTo, prev, a.ID)
		holders[a.AssignedTo] = a.ID
	}
}

func TestAutoAssign_SameEmployeeConcurrently(t *testing.T) {
	t.Parallel()

	f := newFixture(t, kit("Support", line("Laptop", "", 1, true)))
	f.add(t, laptop("lap-1"), laptop("lap-2"))
	svc := f.service(t)

	var wg sync.WaitGroup
	results := make([]models.AllocationResult, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.AutoAssignStarterKit(context.Background(), "e1", "Ada", "Support")
		}(i)
	}
	wg.Wait()

	outcomes := []models.Outcome{results[0].Outcome, results[1].Outcome}
	require.ElementsMatch(t, []models.Outcome{models.OutcomeAssigned, models.OutcomeAlreadyAssigned}, outcomes)
	require.True(t, f.asset(t, "lap-2").IsAvailable())
}

// stealingStore assigns the named asset to somebody else right before the
// allocator's first write to it, simulating a concurrent allocation.
type stealingStore struct {
	*inventory.MemoryStore
	target string
	once   sync.Once
}

func (s *stealingStore) UpdateAsset(ctx context.Context, id string, expected uint64, patch models.AssetPatch) (models.Asset, error) {
	if id == s.target {
		s.once.Do(func() {
			_, err := s.MemoryStore.UpdateAsset(ctx, id, expected, models.AssignPatch("intruder", fixedNow, true, models.PriorityHigh))
			if err != nil {
				panic(err)
			}
		})
	}
	return s.MemoryStore.UpdateAsset(ctx, id, expected, patch)
}

func TestAutoAssign_FallsBackToSpareOnConflict(t *testing.T) {
	t.Parallel()

	f := newFixture(t, kit("Support", line("Laptop", "", 1, true)))
	f.add(t, laptop("lap-1"), laptop("lap-2"))
	store := &stealingStore{MemoryStore: f.store, target: "lap-1"}

	res := newService(t, store, f.catalog).AutoAssignStarterKit(context.Background(), "e1", "Ada", "Support")
	require.Equal(t, models.OutcomeAssigned, res.Outcome)
	require.Equal(t, []string{"lap-2"}, assignedIDs(res))
	require.Equal(t, "intruder", f.asset(t, "lap-1").AssignedTo)
}

func TestAutoAssign_ConflictWithoutSpareIsShortfall(t *testing.T) {
	t.Parallel()

	f := newFixture(t, kit("Support", line("Laptop", "", 1, true)))
	f.add(t, laptop("lap-1"))
	store := &stealingStore{MemoryStore: f.store, target: "lap-1"}

	res := newService(t, store, f.catalog).AutoAssignStarterKit(context.Background(), "e1", "Ada", "Support")
	require.Equal(t, models.OutcomeOutOfStock, res.Outcome)
	require.Equal(t, []string{"Laptop (need 1, found 0)"}, res.MissingAssets)
}

// failingStore fails reads or writes after a number of successful writes.
type failingStore struct {
	*inventory.MemoryStore
	failList     bool
	writesBefore int

	mu     sync.Mutex
	writes int
}

var errBackend = errors.New("backend down")

func (s *failingStore) ListAssets(ctx context.Context) ([]models.Asset, error) {
	if s.failList {
		return nil, errBackend
	}
	return s.MemoryStore.ListAssets(ctx)
}

func (s *failingStore) UpdateAsset(ctx context.Context, id string, expected uint64, patch models.AssetPatch) (models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writes >= s.writesBefore {
		return models.Asset{}, errBackend
	}
	s.writes++
	return s.MemoryStore.UpdateAsset(ctx, id, expected, patch)
}

func TestAutoAssign_StoreUnavailableOnRead(t *testing.T) {
	t.Parallel()

	f := newFixture(t, kit("Support", line("Laptop", "", 1, true)))
	store := &failingStore{MemoryStore: f.store, failList: true}

	res := newService(t, store, f.catalog).AutoAssignStarterKit(context.Background(), "e1", "Ada", "Support")
	require.False(t, res.Success)
	require.Equal(t, models.OutcomeStoreUnavailable, res.Outcome)
	require.ErrorIs(t, res.Err, allocation.ErrStoreUnavailable)
	require.ErrorIs(t, res.Err, errBackend)
}

func TestAutoAssign_StoreFailureKeepsCommittedUnits(t *testing.T) {
	t.Parallel()

	f := newFixture(t, kit("Support", line("Laptop", "", 3, true)))
	f.add(t, laptop("lap-1"), laptop("lap-2"), laptop("lap-3"))
	store := &failingStore{MemoryStore: f.store, writesBefore: 1}

	res := newService(t, store, f.catalog).AutoAssignStarterKit(context.Background(), "e1", "Ada", "Support")
	require.False(t, res.Success)
	require.Equal(t, models.OutcomeStoreUnavailable, res.Outcome)
	require.Equal(t, 1, res.AssignedCount)
	require.Equal(t, []string{"lap-1"}, assignedIDs(res))
	require.ErrorIs(t, res.Err, errBackend)

	require.Equal(t, "e1", f.asset(t, "lap-1").AssignedTo)
	require.True(t, f.asset(t, "lap-2").IsAvailable())
	require.True(t, f.asset(t, "lap-3").IsAvailable())

	// the retry is refused by the guard
	retry := f.service(t).AutoAssignStarterKit(context.Background(), "e1", "Ada", "Support")
	require.Equal(t, models.OutcomeAlreadyAssigned, retry.Outcome)
}

func TestAutoAssign_CanceledContext(t *testing.T) {
	t.Parallel()

	f := newFixture(t, kit("Support", line("Laptop", "", 1, true)))
	f.add(t, laptop("lap-1"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := f.service(t).AutoAssignStarterKit(ctx, "e1", "Ada", "Support")
	require.Equal(t, models.OutcomeStoreUnavailable, res.Outcome)
	require.ErrorIs(t, res.Err, context.Canceled)
	require.True(t, f.asset(t, "lap-1").IsAvailable())
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []models.AssignmentNotice
	err     error
}

func (n *recordingNotifier) NotifyAssetsAssigned(_ context.Context, notice models.AssignmentNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
	return n.err
}

func TestAutoAssign_NotifiesOnlyWhenUnitsCommitted(t *testing.T) {
	t.Parallel()

	f := newFixture(t,
		kit("Support", line("Laptop", "", 1, true), line("Monitor", "", 1, true)),
		kit("Designer", line("Tablet", "", 1, true)),
	)
	f.add(t, laptop("lap-1"))
	n := &recordingNotifier{}
	svc := f.service(t, allocation.WithNotifier(n))

	res := svc.AutoAssignStarterKit(context.Background(), "e1", "Ada Lovelace", "Support")
	require.True(t, res.Success)

	out := svc.AutoAssignStarterKit(context.Background(), "e2", "Grace", "Designer")
	require.False(t, out.Success)

	require.Len(t, n.notices, 1)
	got := n.notices[0]
	require.Equal(t, "Ada Lovelace", got.EmployeeName)
	require.Equal(t, "e1", got.EmployeeID)
	require.Equal(t, 1, got.AssignedCount)
	require.Equal(t, "Support starter kit", got.KitLabel)
	require.Equal(t, []string{"lap-1"}, got.AssetIDs)
	require.Equal(t, []string{"Monitor (need 1, found 0)"}, got.MissingAssets)
}

func TestAutoAssign_StoreFailureNotifiesCommittedUnits(t *testing.T) {
	t.Parallel()

	f := newFixture(t, kit("Support", line("Laptop", "", 3, true)))
	f.add(t, laptop("lap-1"), laptop("lap-2"), laptop("lap-3"))
	store := &failingStore{MemoryStore: f.store, writesBefore: 1}
	n := &recordingNotifier{}

	res := newService(t, store, f.catalog, allocation.WithNotifier(n)).
		AutoAssignStarterKit(context.Background(), "e1", "Ada", "Support")
	require.Equal(t, models.OutcomeStoreUnavailable, res.Outcome)

	require.Len(t, n.notices, 1)
	require.Equal(t, 1, n.notices[0].AssignedCount)
	require.Equal(t, []string{"lap-1"}, n.notices[0].AssetIDs)

	// nothing committed, nothing to report
	none := &recordingNotifier{}
	out := newService(t, &failingStore{MemoryStore: f.store, writesBefore: 0}, f.catalog, allocation.WithNotifier(none)).
		AutoAssignStarterKit(context.Background(), "e2", "Grace", "Support")
	require.Equal(t, models.OutcomeStoreUnavailable, out.Outcome)
	require.Empty(t, none.notices)
}

func TestAutoAssign_NotifierFailureDoesNotFail(t *testing.T) {
	t.Parallel()

	f := newFixture(t, kit("Support", line("Laptop", "", 1, true)))
	f.add(t, laptop("lap-1"))
	n := &recordingNotifier{err: errors.New("smtp down")}

	res := f.service(t, allocation.WithNotifier(n)).AutoAssignStarterKit(context.Background(), "e1", "Ada", "Support")
	require.True(t, res.Success)
	require.NoError(t, res.Err)
	require.Equal(t, "e1", f.asset(t, "lap-1").AssignedTo)
}

type memoryAudit struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func (a *memoryAudit) Record(_ context.Context, entry models.AuditLog) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
	return nil
}

func TestAutoAssign_AuditsEachUnit(t *testing.T) {
	t.Parallel()

	f := newFixture(t, kit("Support", line("Laptop", "", 2, true)))
	f.add(t, laptop("lap-1"), laptop("lap-2"))
	audit := &memoryAudit{}

	res := f.service(t, allocation.WithAuditSink(audit)).AutoAssignStarterKit(context.Background(), "e1", "Ada", "Support")
	require.Equal(t, 2, res.AssignedCount)

	require.Len(t, audit.entries, 2)
	for i, e := range audit.entries {
		require.Equal(t, "e1", e.Actor)
		require.Equal(t, "asset", e.Entity)
		require.Equal(t, "assign", e.Action)
		require.Equal(t, fmt.Sprintf("lap-%d", i+1), e.EntityID)
		require.Contains(t, e.Details, "Support starter kit")
	}
}

func TestService_HoldingsAndPreview(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFixture(t, kit("Support", line("Laptop", "", 1, true), line("Monitor", "", 1, true)))
	f.add(t, laptop("lap-1"))
	svc := f.service(t)

	plan, err := svc.Preview(ctx, "support")
	require.NoError(t, err)
	require.Equal(t, []string{"Monitor (need 1, found 0)"}, plan.MissingAssets())

	_, err = svc.Preview(ctx, "nobody")
	require.ErrorIs(t, err, catalog.ErrKitNotFound)

	held, err := svc.Holdings(ctx, "e1")
	require.NoError(t, err)
	require.Empty(t, held)

	svc.AutoAssignStarterKit(ctx, "e1", "Ada", "Support")

	held, err = svc.Holdings(ctx, "E1")
	require.NoError(t, err)
	require.Len(t, held, 1)
	require.Equal(t, "lap-1", held[0].ID)
}

func TestNewService_RequiresDependencies(t *testing.T) {
	t.Parallel()

	_, err := allocation.NewService(nil, catalog.NewMemoryCatalog())
	require.ErrorIs(t, err, allocation.ErrStoreRequired)

	_, err = allocation.NewService(inventory.NewMemoryStore(), nil)
	require.ErrorIs(t, err, allocation.ErrCatalogRequired)
}
