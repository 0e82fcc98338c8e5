package metrics

import "github.com/arloliu/tasksplit/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external
// metrics collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
//
// Example:
//
//	solver, err := tasksplit.NewSolver(&cfg, tasksplit.WithMetrics(metrics.NewNop()))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// SolveMetrics implementation

// RecordSolve discards the solve metric.
func (n *NopMetrics) RecordSolve(_ /* strategy */ string, _ /* tasks */, _ /* machines */ int, _ /* duration */ float64, _ /* success */ bool) {
	// No-op
}

// RecordSpread discards the spread metric.
func (n *NopMetrics) RecordSpread(_ /* strategy */ string, _ /* difference */ float64) {
	// No-op
}

// SearchMetrics implementation

// RecordSearchLeaves discards the search leaves metric.
func (n *NopMetrics) RecordSearchLeaves(_ /* strategy */ string, _ /* leaves */ int64) {
	// No-op
}

// CacheMetrics implementation

// RecordCacheResult discards the cache lookup metric.
func (n *NopMetrics) RecordCacheResult(_ /* hit */ bool) {
	// No-op
}

// ServiceMetrics implementation

// RecordRequest discards the request metric.
func (n *NopMetrics) RecordRequest(_ /* result */ string) {
	// No-op
}

// RecordPublish discards the publish metric.
func (n *NopMetrics) RecordPublish(_ /* success */ bool) {
	// No-op
}
