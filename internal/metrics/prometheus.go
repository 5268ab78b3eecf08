package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus implements Collector backed by client_golang.
type Prometheus struct {
	allocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	units       prometheus.Counter
	conflicts   prometheus.Counter
	notifyFail  prometheus.Counter
}

var _ Collector = (*Prometheus)(nil)

// NewPrometheus creates and registers the allocator metrics.
//
// Parameters:
//   - reg: Registerer (prometheus.DefaultRegisterer when nil)
//   - namespace: Metric namespace ("kit_allocator" when empty)
//
// Returns:
//   - *Prometheus: Collector
//   - error: Registration failure (e.g. duplicate registration)
func NewPrometheus(reg prometheus.Registerer, namespace string) (*Prometheus, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "kit_allocator"
	}

	p := &Prometheus{
		allocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "allocation",
			Name:      "requests_total",
			Help:      "Starter kit allocation calls by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "allocation",
			Name:      "duration_seconds",
			Help:      "Latency of starter kit allocation calls in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms .. ~2.5s
		}, []string{"outcome"}),
		units: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "allocation",
			Name:      "units_assigned_total",
			Help:      "Asset units transitioned to assigned.",
		}),
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "version_conflicts_total",
			Help:      "Conditional asset writes rejected because the asset changed.",
		}),
		notifyFail: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifier",
			Name:      "failures_total",
			Help:      "Assignment notifications that failed to send.",
		}),
	}

	for _, c := range []prometheus.Collector{p.allocations, p.duration, p.units, p.conflicts, p.notifyFail} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Prometheus) RecordAllocation(outcome string, duration time.Duration) {
	p.allocations.WithLabelValues(outcome).Inc()
	p.duration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (p *Prometheus) RecordUnitsAssigned(n int) {
	if n > 0 {
		p.units.Add(float64(n))
	}
}

func (p *Prometheus) RecordVersionConflict() {
	p.conflicts.Inc()
}

func (p *Prometheus) RecordNotifyFailure() {
	p.notifyFail.Inc()
}
