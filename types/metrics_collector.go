package types

// MetricsCollector defines methods for recording solver metrics.
//
// Implementations should be non-blocking and must be safe for concurrent use,
// since a single Solver may serve many goroutines.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	SolveMetrics
	SearchMetrics
	CacheMetrics
	ServiceMetrics
}

// SolveMetrics defines metrics for individual partitioning calls.
type SolveMetrics interface {
	// RecordSolve records one partitioning call.
	//
	// Parameters:
	//   - strategy: Strategy name ("greedy", "exhaustive", ...)
	//   - tasks: Number of input tasks
	//   - machines: Number of machines
	//   - duration: Time taken in seconds
	//   - success: true if a result was produced
	RecordSolve(strategy string, tasks, machines int, duration float64, success bool)

	// RecordSpread records the partition difference (max - min sum) of a result.
	RecordSpread(strategy string, difference float64)
}

// SearchMetrics defines metrics specific to exhaustive search.
type SearchMetrics interface {
	// RecordSearchLeaves records how many complete assignments a search scored.
	RecordSearchLeaves(strategy string, leaves int64)
}

// CacheMetrics defines metrics for the solver result cache.
type CacheMetrics interface {
	// RecordCacheResult records a cache lookup (hit=true) or miss.
	RecordCacheResult(hit bool)
}

// ServiceMetrics defines metrics for the NATS solver service.
type ServiceMetrics interface {
	// RecordRequest records a handled request by result ("ok", "error", "bad_request").
	RecordRequest(result string)

	// RecordPublish records a solution write to the KV bucket.
	RecordPublish(success bool)
}
