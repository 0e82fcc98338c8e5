package strategy

import (
	"testing"

	"github.com/arloliu/tasksplit/test/testutil"
	"github.com/arloliu/tasksplit/types"
	"github.com/stretchr/testify/require"
)

func allStrategies() map[string]types.Partitioner {
	return map[string]types.Partitioner{
		NameGreedy:         NewGreedy(),
		NameExhaustive:     NewExhaustive(),
		NameRoundRobin:     NewRoundRobin(),
		NameConsistentHash: NewConsistentHash(),
	}
}

// TestPartitioner_ZeroTasks verifies that strategies handle an empty task list.
func TestPartitioner_ZeroTasks(t *testing.T) {
	for name, strategy := range allStrategies() {
		t.Run(name, func(t *testing.T) {
			res, err := strategy.Partition(nil, 2)

			require.NoError(t, err, "zero tasks should not cause error")
			require.Len(t, res.Partition, 2)
			require.Equal(t, []float64{0, 0}, res.Sums)
			for _, bucket := range res.Partition {
				require.NotNil(t, bucket)
				require.Empty(t, bucket)
			}
		})
	}
}

// TestPartitioner_NonPositiveMachines verifies that every strategy rejects machines < 1.
func TestPartitioner_NonPositiveMachines(t *testing.T) {
	for name, strategy := range allStrategies() {
		t.Run(name, func(t *testing.T) {
			for _, machines := range []int{0, -1} {
				res, err := strategy.Partition(testutil.Tasks(1, 2), machines)

				require.ErrorIs(t, err, types.ErrInvalidConfiguration)
				require.Nil(t, res.Partition)
			}
		})
	}
}

// TestPartitioner_ValidResults runs every strategy over random instances.
func TestPartitioner_ValidResults(t *testing.T) {
	for name, strategy := range allStrategies() {
		t.Run(name, func(t *testing.T) {
			for seed := uint64(1); seed <= 5; seed++ {
				tasks := testutil.RandomTasks(seed, 6, 9)
				for machines := 1; machines <= 3; machines++ {
					res, err := strategy.Partition(tasks, machines)

					require.NoError(t, err)
					testutil.AssertValidResult(t, tasks, machines, res)
				}
			}
		})
	}
}

// TestPartitioner_ZeroDurations verifies zero-length tasks are still placed.
func TestPartitioner_ZeroDurations(t *testing.T) {
	tasks := testutil.Tasks(0, 0, 0)
	for name, strategy := range allStrategies() {
		t.Run(name, func(t *testing.T) {
			res, err := strategy.Partition(tasks, 2)

			require.NoError(t, err)
			testutil.AssertValidResult(t, tasks, 2, res)
			require.Equal(t, []float64{0, 0}, res.Sums)
		})
	}
}
