package allocation

import (
	"time"

	"kit-allocator/internal/logging"
	"kit-allocator/internal/metrics"
)

// Option configures a Service with optional dependencies.
type Option func(*serviceOptions)

type serviceOptions struct {
	notifier   Notifier
	audit      AuditSink
	logger     logging.Logger
	metrics    metrics.Collector
	timeout    time.Duration
	maxRetries int
	now        func() time.Time
}

// WithNotifier sets the notifier called after a successful allocation.
//
// Example:
//
//	svc, _ := allocation.NewService(store, kits, allocation.WithNotifier(notify.NewLogNotifier(logger)))
func WithNotifier(n Notifier) Option {
	return func(o *serviceOptions) {
		o.notifier = n
	}
}

// WithAuditSink records one audit entry per committed unit.
func WithAuditSink(a AuditSink) Option {
	return func(o *serviceOptions) {
		o.audit = a
	}
}

func WithLogger(l logging.Logger) Option {
	return func(o *serviceOptions) {
		o.logger = l
	}
}

func WithMetrics(c metrics.Collector) Option {
	return func(o *serviceOptions) {
		o.metrics = c
	}
}

// WithTimeout bounds one allocation call. Zero means no bound beyond the
// caller's context.
func WithTimeout(d time.Duration) Option {
	return func(o *serviceOptions) {
		o.timeout = d
	}
}

// WithMaxRetries bounds re-reads of one unit after version conflicts.
func WithMaxRetries(n int) Option {
	return func(o *serviceOptions) {
		o.maxRetries = n
	}
}

// WithClock overrides the assignment timestamp source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(o *serviceOptions) {
		o.now = now
	}
}
