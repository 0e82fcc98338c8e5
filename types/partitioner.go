package types

// Partitioner assigns tasks to a fixed number of identical machines.
//
// Implementations:
//   - Greedy: Longest-processing-time-first list scheduling
//   - Exhaustive: Backtracking search for the minimum spread
//   - RoundRobin, ConsistentHash: Baselines that ignore durations
//
// Partitioner implementations should:
//   - Be deterministic (same input → same output)
//   - Never modify the input task slice
//   - Return exactly machines buckets, covering every task once
//   - Derive sums from the returned buckets
//   - Be stateless so a single value can serve concurrent callers
type Partitioner interface {
	// Partition assigns tasks to machines.
	//
	// Parameters:
	//   - tasks: Tasks to assign (may be empty)
	//   - machines: Number of machines, must be >= 1
	//
	// Returns:
	//   - Result: Partition and per-machine sums
	//   - error: ErrInvalidConfiguration for machines < 1, or an algorithm-specific error
	Partition(tasks []Task, machines int) (Result, error)
}
