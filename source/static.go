package source

import (
	"context"
	"slices"
	"sync"

	"github.com/arloliu/tasksplit/types"
)

// Static implements a task source with a fixed list of tasks.
type Static struct {
	mu    sync.RWMutex
	tasks []types.Task
}

var _ types.TaskSource = (*Static)(nil)

// NewStatic creates a new static task source.
//
// The list is copied, so later changes to the caller's slice are not seen.
//
// Parameters:
//   - tasks: Fixed list of tasks
//
// Returns:
//   - *Static: Initialized static source
//
// Example:
//
//	src := source.NewStatic([]types.Task{
//	    {ID: 0, Duration: 10},
//	    {ID: 1, Duration: 7},
//	})
//	tasks, _ := src.ListTasks(ctx)
func NewStatic(tasks []types.Task) *Static {
	return &Static{tasks: slices.Clone(tasks)}
}

// ListTasks returns a copy of the static task list.
//
// Returns:
//   - []types.Task: The task list in insertion order
//   - error: Context error if ctx is already done
func (s *Static) ListTasks(ctx context.Context) ([]types.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.tasks), nil
}

// Update replaces the task list.
//
// Useful for moving a puzzle on to its next level without rebuilding the
// consumers holding the source.
func (s *Static) Update(tasks []types.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = slices.Clone(tasks)
}
