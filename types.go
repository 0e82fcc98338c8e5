package tasksplit

import "github.com/arloliu/tasksplit/types"

// Re-export types from the types package.
//
// The aliases let callers write tasksplit.Task and tasksplit.Partitioner while
// the strategy and source packages depend only on types, avoiding an import
// cycle through the root package.
type (
	Task      = types.Task
	Partition = types.Partition
	Result    = types.Result
)

// Re-export interfaces from the types package for convenience.
type (
	Partitioner      = types.Partitioner
	TaskSource       = types.TaskSource
	MetricsCollector = types.MetricsCollector
	Logger           = types.Logger
)
