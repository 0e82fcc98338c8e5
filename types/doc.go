// Package types provides core type definitions and interfaces for the tasksplit library.
//
// This package contains shared types that are used across multiple packages in the
// tasksplit library. By keeping these types in a separate package, the strategy,
// source and internal packages can depend on them without importing the root
// tasksplit package.
//
// Key types:
//   - Task: Unit of work with an identity and a duration
//   - Partition: Per-machine buckets of tasks
//   - Result: A partition together with its derived per-machine sums
//   - Partitioner: Algorithm that assigns tasks to machines
//   - TaskSource: Provider of task lists
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
