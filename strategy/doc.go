// Package strategy provides built-in partitioner implementations.
//
// Partitioners assign a list of tasks to a fixed number of identical machines.
// The package includes four built-in strategies:
//
//   - Greedy: Longest-processing-time-first list scheduling (fast, near optimal)
//   - Exhaustive: Backtracking search over every assignment (optimal spread, exponential)
//   - RoundRobin: Task i goes to machine i mod m (baseline)
//   - ConsistentHash: Task goes to the machine owning its ID on a hash ring (baseline)
//
// # Strategy Selection Guide
//
// Greedy:
//   - Use for any instance size
//   - Sorts by duration descending, then places each task on the least loaded machine
//   - Ties on load go to the lowest machine index
//   - Makespan within 4/3 - 1/(3m) of optimal
//
// Exhaustive:
//   - Use for small instances only (m^n leaves are scored)
//   - Minimizes max(sums) - min(sums); the first optimal assignment found wins
//   - Configuration: WithMaxTasks to refuse oversized instances
//
// RoundRobin and ConsistentHash:
//   - Ignore durations entirely
//   - Useful to show how far a naive assignment is from a balanced one
//
// Custom strategies can be implemented by satisfying the types.Partitioner interface.
package strategy
