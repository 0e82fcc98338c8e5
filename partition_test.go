package tasksplit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tasksplit/test/testutil"
)

func TestGreedyPartition(t *testing.T) {
	partition, sums, err := GreedyPartition(testutil.Tasks(5, 5), 2)

	require.NoError(t, err)
	require.Equal(t, [][]int{{0}, {1}}, testutil.BucketIDs(partition))
	require.Equal(t, []float64{5, 5}, sums)

	_, _, err = GreedyPartition(testutil.Tasks(5), 0)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestExhaustivePartition(t *testing.T) {
	partition, sums, err := ExhaustivePartition(testutil.Tasks(10, 7, 3), 2)

	require.NoError(t, err)
	require.Equal(t, [][]int{{0}, {1, 2}}, testutil.BucketIDs(partition))
	require.Equal(t, []float64{10, 10}, sums)

	partition, sums, err = ExhaustivePartition(nil, 3)
	require.NoError(t, err)
	require.Len(t, partition, 3)
	require.Equal(t, []float64{0, 0, 0}, sums)

	_, _, err = ExhaustivePartition(testutil.Tasks(5), 0)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}
