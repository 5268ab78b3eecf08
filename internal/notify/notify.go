// Package notify delivers assignment notices to the people who prepare the
// equipment. Delivery is best effort; callers log failures and move on.
package notify

import (
	"context"
	"errors"
	"strings"

	"kit-allocator/internal/logging"
	"kit-allocator/internal/models"
)

// Notifier matches allocation.Notifier.
type Notifier interface {
	NotifyAssetsAssigned(ctx context.Context, notice models.AssignmentNotice) error
}

// LogNotifier writes the notice to the service log.
type LogNotifier struct {
	logger logging.Logger
}

var _ Notifier = (*LogNotifier)(nil)

func NewLogNotifier(logger logging.Logger) *LogNotifier {
	return &LogNotifier{logger: logging.OrNop(logger)}
}

func (n *LogNotifier) NotifyAssetsAssigned(_ context.Context, notice models.AssignmentNotice) error {
	kv := []any{
		"employee_id", notice.EmployeeID,
		"employee_name", notice.EmployeeName,
		"kit", notice.KitLabel,
		"assigned", notice.AssignedCount,
		"asset_ids", strings.Join(notice.AssetIDs, ","),
	}
	if len(notice.MissingAssets) > 0 {
		kv = append(kv, "missing", strings.Join(notice.MissingAssets, "; "))
	}
	if notice.MaintenanceWarning != "" {
		kv = append(kv, "maintenance", notice.MaintenanceWarning)
	}
	n.logger.Info("starter kit ready for pickup", kv...)
	return nil
}

// Multi fans a notice out to every notifier. All of them are called; the
// errors are joined.
type Multi []Notifier

var _ Notifier = Multi(nil)

func (m Multi) NotifyAssetsAssigned(ctx context.Context, notice models.AssignmentNotice) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.NotifyAssetsAssigned(ctx, notice); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
