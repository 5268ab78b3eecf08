package allocation_test

import (
	"context"
	"sync"
	"testing"

	"kit-allocator/internal/catalog"
	"kit-allocator/internal/inventory"
	"kit-allocator/internal/models"
	"kit-allocator/internal/testutil"

	"github.com/stretchr/testify/require"
)

// pausedStore blocks the first inventory read until proceed is closed.
type pausedStore struct {
	*inventory.KVStore
	entered chan struct{}
	proceed chan struct{}
	once    sync.Once
}

func (s *pausedStore) ListAssets(ctx context.Context) ([]models.Asset, error) {
	s.once.Do(func() {
		close(s.entered)
		<-s.proceed
	})
	return s.KVStore.ListAssets(ctx)
}

func TestAutoAssign_SecondInstanceRefusedWhileClaimed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	js, _ := testutil.JetStream(t)

	storeA, err := inventory.OpenKVStore(ctx, js, "inventory", nil)
	require.NoError(t, err)
	storeB, err := inventory.OpenKVStore(ctx, js, "inventory", nil)
	require.NoError(t, err)

	for _, id := range []string{"lap-1", "lap-2"} {
		_, err := storeA.CreateAsset(ctx, laptop(id))
		require.NoError(t, err)
	}

	kits := catalog.NewMemoryCatalog()
	_, err = kits.SaveKit(ctx, kit("Support", line("Laptop", "", 1, true)))
	require.NoError(t, err)

	paused := &pausedStore{KVStore: storeA, entered: make(chan struct{}), proceed: make(chan struct{})}
	resume := sync.OnceFunc(func() { close(paused.proceed) })
	t.Cleanup(resume)

	instanceA := newService(t, paused, kits)
	instanceB := newService(t, storeB, kits)

	done := make(chan models.AllocationResult, 1)
	go func() {
		done <- instanceA.AutoAssignStarterKit(ctx, "E1", "Ada", "Support")
	}()
	<-paused.entered

	// instance A holds the claim and has not read holdings yet
	second := instanceB.AutoAssignStarterKit(ctx, "e1", "Ada", "Support")
	require.False(t, second.Success)
	require.Equal(t, models.OutcomeAlreadyAssigned, second.Outcome)
	require.Zero(t, second.AssignedCount)

	resume()
	first := <-done
	require.Equal(t, models.OutcomeAssigned, first.Outcome)
	require.Equal(t, []string{"lap-1"}, assignedIDs(first))

	lap2, err := storeB.GetAsset(ctx, "lap-2")
	require.NoError(t, err)
	require.True(t, lap2.IsAvailable())

	// claim released: the guard now answers from holdings
	again := instanceB.AutoAssignStarterKit(ctx, "e1", "Ada", "Support")
	require.Equal(t, models.OutcomeAlreadyAssigned, again.Outcome)
	require.Equal(t, []string{"lap-1"}, again.ExistingAssets)

	other := instanceB.AutoAssignStarterKit(ctx, "e2", "Grace", "Support")
	require.Equal(t, models.OutcomeAssigned, other.Outcome)
	require.Equal(t, []string{"lap-2"}, assignedIDs(other))
}
