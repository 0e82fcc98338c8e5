package strategy

import (
	"testing"

	"github.com/arloliu/tasksplit/test/testutil"
	"github.com/arloliu/tasksplit/types"
	"github.com/stretchr/testify/require"
)

func TestConsistentHash_Partition(t *testing.T) {
	t.Run("assigns tasks to single machine", func(t *testing.T) {
		tasks := testutil.Tasks(1, 2)

		res, err := NewConsistentHash().Partition(tasks, 1)

		require.NoError(t, err)
		require.Equal(t, [][]int{{0, 1}}, testutil.BucketIDs(res.Partition))
		require.Equal(t, []float64{3}, res.Sums)
	})

	t.Run("distributes tasks across multiple machines", func(t *testing.T) {
		tasks := testutil.RandomTasks(3, 60, 10)

		res, err := NewConsistentHash().Partition(tasks, 3)

		require.NoError(t, err)
		testutil.AssertValidResult(t, tasks, 3, res)

		// With consistent hashing, distribution won't be perfectly even
		for i, bucket := range res.Partition {
			require.NotEmpty(t, bucket, "machine %d should have at least some tasks", i)
		}
	})

	t.Run("assignment is deterministic", func(t *testing.T) {
		tasks := testutil.RandomTasks(4, 20, 10)

		first, err1 := NewConsistentHash().Partition(tasks, 3)
		second, err2 := NewConsistentHash().Partition(tasks, 3)

		require.NoError(t, err1)
		require.NoError(t, err2)
		require.Equal(t, first, second, "assignments should be deterministic")
	})

	t.Run("preserves affinity when adding a machine", func(t *testing.T) {
		tasks := testutil.RandomTasks(5, 300, 10)
		strategy := NewConsistentHash()

		before, err := strategy.Partition(tasks, 2)
		require.NoError(t, err)
		after, err := strategy.Partition(tasks, 3)
		require.NoError(t, err)

		owner := make(map[int]int, len(tasks))
		for m, bucket := range before.Partition {
			for _, task := range bucket {
				owner[task.ID] = m
			}
		}

		stable := 0
		for m, bucket := range after.Partition {
			for _, task := range bucket {
				if owner[task.ID] == m {
					stable++
				}
			}
		}

		rate := float64(stable) / float64(len(tasks))
		require.Greater(t, rate, 0.5, "should keep >50%% of tasks in place, got %.2f%%", rate*100)
	})

	t.Run("placement ignores other tasks", func(t *testing.T) {
		full := testutil.RandomTasks(6, 40, 10)
		strategy := NewConsistentHash()

		all, err := strategy.Partition(full, 4)
		require.NoError(t, err)
		subset, err := strategy.Partition(full[:10], 4)
		require.NoError(t, err)

		machineOf := func(p types.Partition) map[int]int {
			out := make(map[int]int)
			for m, bucket := range p {
				for _, task := range bucket {
					out[task.ID] = m
				}
			}

			return out
		}

		allOwners := machineOf(all.Partition)
		for id, m := range machineOf(subset.Partition) {
			require.Equal(t, allOwners[id], m, "task %d moved", id)
		}
	})

	t.Run("returns error for zero machines", func(t *testing.T) {
		_, err := NewConsistentHash().Partition(testutil.Tasks(1), 0)

		require.ErrorIs(t, err, types.ErrInvalidConfiguration)
		require.Contains(t, err.Error(), NameConsistentHash)
	})

	t.Run("custom virtual nodes and seed", func(t *testing.T) {
		tasks := testutil.RandomTasks(8, 30, 10)

		res, err := NewConsistentHash(WithVirtualNodes(300), WithHashSeed(12345)).Partition(tasks, 2)

		require.NoError(t, err)
		testutil.AssertValidResult(t, tasks, 2, res)
	})

	t.Run("non-positive virtual nodes are clamped", func(t *testing.T) {
		tasks := testutil.Tasks(1, 2, 3)

		res, err := NewConsistentHash(WithVirtualNodes(0)).Partition(tasks, 2)

		require.NoError(t, err)
		testutil.AssertValidResult(t, tasks, 2, res)
	})
}
