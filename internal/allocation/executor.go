package allocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kit-allocator/internal/inventory"
	"kit-allocator/internal/logging"
	"kit-allocator/internal/metrics"
	"kit-allocator/internal/models"
)

const defaultMaxRetries = 3

// AuditSink receives one entry per committed unit. Errors are logged only.
type AuditSink interface {
	Record(ctx context.Context, entry models.AuditLog) error
}

// Executor commits a Plan unit by unit.
//
// Each unit is an independent conditional write. There is no rollback:
// units committed before a failure stay assigned, the rest stay available.
type Executor struct {
	store      inventory.Store
	audit      AuditSink
	logger     logging.Logger
	metrics    metrics.Collector
	maxRetries int
	now        func() time.Time
}

// Execution is what the executor managed to commit.
type Execution struct {
	Assigned []models.AssignedAsset
	// PerLine[i] is the number of units committed for plan line i.
	PerLine []int
	// Err is set when the store failed or the context ended mid-run.
	Err error
}

func NewExecutor(store inventory.Store, audit AuditSink, logger logging.Logger, collector metrics.Collector, maxRetries int) *Executor {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &Executor{
		store:      store,
		audit:      audit,
		logger:     logging.OrNop(logger),
		metrics:    metrics.OrNop(collector),
		maxRetries: maxRetries,
		now:        time.Now,
	}
}

func (e *Executor) Execute(ctx context.Context, employeeID, kitLabel string, plan Plan) Execution {
	exec := Execution{PerLine: make([]int, len(plan.Lines))}
	committed := make(map[string]struct{})

	for i, line := range plan.Lines {
		for _, candidate := range line.Candidates {
			if exec.PerLine[i] >= line.Item.Quantity {
				break
			}
			if _, ok := committed[candidate.ID]; ok {
				continue
			}
			if err := ctx.Err(); err != nil {
				exec.Err = err
				return exec
			}

			updated, ok, err := e.assignUnit(ctx, employeeID, candidate, line.Item)
			if err != nil {
				e.logger.Error("asset assignment failed", "employee_id", employeeID, "asset_id", candidate.ID, "error", err)
				exec.Err = err
				return exec
			}
			if !ok {
				e.logger.Debug("candidate taken, trying next", "employee_id", employeeID, "asset_id", candidate.ID, "line", i)
				continue
			}

			committed[updated.ID] = struct{}{}
			exec.PerLine[i]++
			exec.Assigned = append(exec.Assigned, models.AssignedAsset{
				AssetID:     updated.ID,
				AssetType:   updated.AssetType,
				Category:    updated.Category,
				Line:        i,
				IsEssential: updated.IsEssential,
				Priority:    updated.Priority,
			})
			e.recordAudit(ctx, employeeID, kitLabel, updated)
		}
	}
	return exec
}

// assignUnit moves one unit to Assigned. It returns ok=false when the unit
// is no longer available (taken, sent to repair, deleted) or kept changing
// for maxRetries re-reads.
func (e *Executor) assignUnit(ctx context.Context, employeeID string, asset models.Asset, line models.StarterKitAsset) (models.Asset, bool, error) {
	current := asset
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if !current.IsAvailable() {
			return models.Asset{}, false, nil
		}

		patch := models.AssignPatch(employeeID, e.now(), line.IsRequired, assignedPriority(current, line))
		updated, err := e.store.UpdateAsset(ctx, current.ID, current.Version, patch)
		switch {
		case err == nil:
			return updated, true, nil
		case errors.Is(err, inventory.ErrAssetNotFound):
			return models.Asset{}, false, nil
		case !errors.Is(err, inventory.ErrVersionConflict):
			return models.Asset{}, false, err
		}

		e.metrics.RecordVersionConflict()
		current, err = e.store.GetAsset(ctx, asset.ID)
		if errors.Is(err, inventory.ErrAssetNotFound) {
			return models.Asset{}, false, nil
		}
		if err != nil {
			return models.Asset{}, false, err
		}
	}

	e.logger.Warn("asset kept changing, skipping", "asset_id", asset.ID, "retries", e.maxRetries)
	return models.Asset{}, false, nil
}

// assignedPriority: required lines are High; otherwise keep a valid
// existing priority, defaulting to Medium.
func assignedPriority(a models.Asset, line models.StarterKitAsset) models.Priority {
	if line.IsRequired {
		return models.PriorityHigh
	}
	if a.Priority.Valid() {
		return a.Priority
	}
	return models.PriorityMedium
}

func (e *Executor) recordAudit(ctx context.Context, employeeID, kitLabel string, a models.Asset) {
	if e.audit == nil {
		return
	}
	entry := models.AuditLog{
		Actor:    employeeID,
		Entity:   "asset",
		EntityID: a.ID,
		Action:   "assign",
		Details:  fmt.Sprintf("%s assigned from %s (essential=%t, priority=%s)", assetLabel(a), kitLabel, a.IsEssential, a.Priority),
	}
	if err := e.audit.Record(context.WithoutCancel(ctx), entry); err != nil {
		e.logger.Warn("audit log write failed", "asset_id", a.ID, "error", err)
	}
}

func assetLabel(a models.Asset) string {
	if a.AssetType != "" {
		return a.AssetType
	}
	return a.Category
}
