package testutil

import (
	"testing"

	"github.com/arloliu/tasksplit/types"
	"github.com/stretchr/testify/require"
)

func TestAssertValidResult_Passes(t *testing.T) {
	tasks := Tasks(3, 4, 5)
	res := types.NewResult(types.Partition{
		{tasks[2]},
		{tasks[0], tasks[1]},
	})

	AssertValidResult(t, tasks, 2, res)
}

func TestBucketIDs(t *testing.T) {
	tasks := Tasks(1, 2, 3)
	p := types.Partition{{tasks[2], tasks[0]}, {}, {tasks[1]}}

	require.Equal(t, [][]int{{2, 0}, {}, {1}}, BucketIDs(p))
}

func TestRandomTasks_Deterministic(t *testing.T) {
	a := RandomTasks(42, 20, 10)
	b := RandomTasks(42, 20, 10)

	require.Equal(t, a, b)
	require.Len(t, a, 20)
	for i, task := range a {
		require.Equal(t, i, task.ID)
		require.GreaterOrEqual(t, task.Duration, 1.0)
		require.LessOrEqual(t, task.Duration, 10.0)
	}
}

func TestBruteForceMakespan(t *testing.T) {
	require.InDelta(t, 6.0, BruteForceMakespan(Tasks(3, 3, 2, 2, 2), 2), 1e-9)
	require.InDelta(t, 10.0, BruteForceMakespan(Tasks(10, 7, 3), 2), 1e-9)
	require.InDelta(t, 0.0, BruteForceMakespan(nil, 3), 1e-9)
}
