// Package metrics records allocation metrics.
package metrics

import "time"

// Collector is implemented by the Prometheus collector and the no-op one.
// Methods must be safe for concurrent use and must not block.
type Collector interface {
	// RecordAllocation records one AutoAssignStarterKit call by outcome.
	RecordAllocation(outcome string, duration time.Duration)

	// RecordUnitsAssigned adds committed units.
	RecordUnitsAssigned(n int)

	// RecordVersionConflict counts a lost optimistic-concurrency write.
	RecordVersionConflict()

	// RecordNotifyFailure counts a notifier error.
	RecordNotifyFailure()
}

type NopCollector struct{}

var _ Collector = (*NopCollector)(nil)

func NewNop() *NopCollector { return &NopCollector{} }

func (*NopCollector) RecordAllocation(_ /* outcome */ string, _ /* duration */ time.Duration) {}
func (*NopCollector) RecordUnitsAssigned(_ /* n */ int)                                        {}
func (*NopCollector) RecordVersionConflict()                                                   {}
func (*NopCollector) RecordNotifyFailure()                                                     {}

// OrNop returns c, or a NopCollector when c is nil.
func OrNop(c Collector) Collector {
	if c == nil {
		return NewNop()
	}
	return c
}
