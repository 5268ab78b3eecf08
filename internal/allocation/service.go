package allocation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"kit-allocator/internal/catalog"
	"kit-allocator/internal/inventory"
	"kit-allocator/internal/logging"
	"kit-allocator/internal/metrics"
	"kit-allocator/internal/models"

	"github.com/puzpuzpuz/xsync/v3"
)

// Notifier receives a summary after an allocation commits at least one unit,
// including one cut short by a store failure. It is best effort: errors are
// logged and never change the allocation result.
type Notifier interface {
	NotifyAssetsAssigned(ctx context.Context, notice models.AssignmentNotice) error
}

// Service is the engine entry point used by the onboarding workflow.
type Service struct {
	store    inventory.Store
	catalog  catalog.Catalog
	executor *Executor
	notifier Notifier
	logger   logging.Logger
	metrics  metrics.Collector
	timeout  time.Duration

	// one mutex per normalized employee id
	inflight *xsync.MapOf[string, *sync.Mutex]
}

func NewService(store inventory.Store, kits catalog.Catalog, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if kits == nil {
		return nil, ErrCatalogRequired
	}

	o := serviceOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	logger := logging.OrNop(o.logger)
	collector := metrics.OrNop(o.metrics)
	executor := NewExecutor(store, o.audit, logger, collector, o.maxRetries)
	if o.now != nil {
		executor.now = o.now
	}

	return &Service{
		store:    store,
		catalog:  kits,
		executor: executor,
		notifier: o.notifier,
		logger:   logger,
		metrics:  collector,
		timeout:  o.timeout,
		inflight: xsync.NewMapOf[string, *sync.Mutex](),
	}, nil
}

// AutoAssignStarterKit allocates the starter kit for jobTitle to employeeID.
//
// Negative outcomes (no kit, already assigned, out of stock) are reported in
// the result, not as errors. Store failures set Outcome=StoreUnavailable and
// Err; units committed before the failure remain assigned and are listed.
func (s *Service) AutoAssignStarterKit(ctx context.Context, employeeID, employeeName, jobTitle string) models.AllocationResult {
	start := time.Now()
	res := s.autoAssign(ctx, strings.TrimSpace(employeeID), strings.TrimSpace(employeeName), jobTitle)
	if res.Err != nil {
		res.Error = res.Err.Error()
	}
	if res.MissingAssets == nil {
		res.MissingAssets = []string{}
	}

	s.metrics.RecordAllocation(string(res.Outcome), time.Since(start))
	s.metrics.RecordUnitsAssigned(res.AssignedCount)
	return res
}

func (s *Service) autoAssign(ctx context.Context, employeeID, employeeName, jobTitle string) models.AllocationResult {
	if employeeID == "" || models.NormalizeJobTitle(jobTitle) == "" {
		return models.AllocationResult{
			Outcome: models.OutcomeInvalidRequest,
			Err:     fmt.Errorf("%w: employee id and job title are required", ErrInvalidRequest),
		}
	}

	unlock := s.lockEmployee(employeeID)
	defer unlock()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// The mutex only covers this process; a shared store also takes a claim
	// so another instance cannot pass the holdings check concurrently.
	if claimer, ok := s.store.(inventory.EmployeeClaimer); ok {
		release, err := claimer.ClaimEmployee(ctx, employeeID)
		if errors.Is(err, inventory.ErrEmployeeClaimed) {
			s.logger.Warn("allocation for employee already in progress, refusing", "employee_id", employeeID)
			return models.AllocationResult{Outcome: models.OutcomeAlreadyAssigned}
		}
		if err != nil {
			s.logger.Error("employee claim failed", "employee_id", employeeID, "error", err)
			return storeUnavailable(err)
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				s.logger.Warn("employee claim release failed", "employee_id", employeeID, "error", err)
			}
		}()
	}

	snapshot, err := s.store.ListAssets(ctx)
	if err != nil {
		s.logger.Error("inventory read failed", "employee_id", employeeID, "error", err)
		return storeUnavailable(err)
	}

	if held := HeldBy(snapshot, employeeID); len(held) > 0 {
		s.logger.Warn("employee already holds assets, refusing allocation",
			"employee_id", employeeID, "held", len(held), "asset_ids", assetIDs(held))
		return models.AllocationResult{
			Outcome:        models.OutcomeAlreadyAssigned,
			ExistingAssets: assetIDs(held),
		}
	}

	kit, err := s.catalog.GetActiveKitByJobTitle(ctx, jobTitle)
	if errors.Is(err, catalog.ErrKitNotFound) {
		s.logger.Info("no starter kit configured", "employee_id", employeeID, "job_title", jobTitle)
		return models.AllocationResult{Outcome: models.OutcomeNoKitConfigured}
	}
	if err != nil {
		s.logger.Error("kit catalog read failed", "employee_id", employeeID, "job_title", jobTitle, "error", err)
		return storeUnavailable(err)
	}

	plan := BuildPlan(kit, snapshot)
	s.logger.Debug("allocation plan built", "employee_id", employeeID, "kit", kit.Label(),
		"lines", len(plan.Lines), "missing", plan.MissingAssets())

	exec := s.executor.Execute(ctx, employeeID, kit.Label(), plan)

	res := models.AllocationResult{
		AssignedCount:      len(exec.Assigned),
		Assigned:           exec.Assigned,
		MissingAssets:      missingAssets(plan.Lines, exec.PerLine),
		MaintenanceWarning: plan.MaintenanceWarning(),
		KitLabel:           kit.Label(),
	}

	switch {
	case exec.Err != nil:
		res.Outcome = models.OutcomeStoreUnavailable
		res.Err = fmt.Errorf("%w: %w", ErrStoreUnavailable, exec.Err)
		s.logger.Error("allocation interrupted", "employee_id", employeeID,
			"committed", res.AssignedCount, "error", exec.Err)
		// committed units stay assigned, so IT still hears about them
		if res.AssignedCount > 0 {
			s.notify(ctx, employeeID, employeeName, res)
		}
		return res
	case res.AssignedCount == 0:
		res.Outcome = models.OutcomeOutOfStock
	case len(res.MissingAssets) > 0:
		res.Outcome = models.OutcomePartiallyAssigned
		res.Success = true
	default:
		res.Outcome = models.OutcomeAssigned
		res.Success = true
	}

	s.logger.Info("starter kit allocated", "employee_id", employeeID, "kit", res.KitLabel,
		"assigned", res.AssignedCount, "missing", len(res.MissingAssets), "outcome", res.Outcome)

	if res.Success {
		s.notify(ctx, employeeID, employeeName, res)
	}
	return res
}

// Holdings returns the assets currently held by employeeID.
func (s *Service) Holdings(ctx context.Context, employeeID string) ([]models.Asset, error) {
	snapshot, err := s.store.ListAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	held := HeldBy(snapshot, employeeID)
	if held == nil {
		held = []models.Asset{}
	}
	return held, nil
}

// Preview builds the plan without committing anything.
func (s *Service) Preview(ctx context.Context, jobTitle string) (Plan, error) {
	kit, err := s.catalog.GetActiveKitByJobTitle(ctx, jobTitle)
	if err != nil {
		return Plan{}, err
	}
	snapshot, err := s.store.ListAssets(ctx)
	if err != nil {
		return Plan{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return BuildPlan(kit, snapshot), nil
}

func (s *Service) notify(ctx context.Context, employeeID, employeeName string, res models.AllocationResult) {
	if s.notifier == nil {
		return
	}

	ids := make([]string, 0, len(res.Assigned))
	for _, a := range res.Assigned {
		ids = append(ids, a.AssetID)
	}
	notice := models.AssignmentNotice{
		EmployeeID:         employeeID,
		EmployeeName:       employeeName,
		AssignedCount:      res.AssignedCount,
		KitLabel:           res.KitLabel,
		AssetIDs:           ids,
		MissingAssets:      res.MissingAssets,
		MaintenanceWarning: res.MaintenanceWarning,
	}

	if err := s.notifier.NotifyAssetsAssigned(context.WithoutCancel(ctx), notice); err != nil {
		s.metrics.RecordNotifyFailure()
		s.logger.Warn("assignment notification failed", "employee_id", employeeID, "error", err)
	}
}

func (s *Service) lockEmployee(employeeID string) func() {
	mu, _ := s.inflight.LoadOrStore(strings.ToLower(employeeID), &sync.Mutex{})
	mu.Lock()
	return mu.Unlock
}

func storeUnavailable(err error) models.AllocationResult {
	return models.AllocationResult{
		Outcome: models.OutcomeStoreUnavailable,
		Err:     fmt.Errorf("%w: %w", ErrStoreUnavailable, err),
	}
}
