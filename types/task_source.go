package types

import "context"

// TaskSource provides the list of tasks to partition.
//
// Implementations can read from various places:
//   - Static: fixed in-memory list
//   - File: YAML instance file on disk
//   - Custom: any puzzle or level loader
type TaskSource interface {
	// ListTasks returns the tasks of the current instance in input order.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//
	// Returns:
	//   - []Task: Tasks to partition
	//   - error: Loading error (nil on success)
	ListTasks(ctx context.Context) ([]Task, error)
}
