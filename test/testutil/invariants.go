package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/arloliu/tasksplit/types"
)

// sumTolerance absorbs float reassociation when totals are added in a different order.
const sumTolerance = 1e-9

// AssertValidResult verifies the structural invariants every partitioner must hold.
//
// It checks that the result has one bucket per machine, that every input task
// appears in exactly one bucket, and that each reported sum equals the total of
// its bucket.
//
// Parameters:
//   - t: testing handle
//   - tasks: input tasks passed to the partitioner
//   - machines: machine count passed to the partitioner
//   - res: result returned by the partitioner
func AssertValidResult(t testing.TB, tasks []types.Task, machines int, res types.Result) {
	t.Helper()

	if len(res.Partition) != machines {
		t.Fatalf("partition has %d buckets, expected %d", len(res.Partition), machines)
	}
	if len(res.Sums) != machines {
		t.Fatalf("sums has %d entries, expected %d", len(res.Sums), machines)
	}

	want := make(map[string]int, len(tasks))
	for _, task := range tasks {
		want[taskKey(task)]++
	}

	got := make(map[string]int, len(tasks))
	for i, bucket := range res.Partition {
		total := 0.0
		for _, task := range bucket {
			got[taskKey(task)]++
			total += task.Duration
		}
		if math.Abs(total-res.Sums[i]) > sumTolerance {
			t.Fatalf("bucket %d totals %v but sums[%d] = %v", i, total, i, res.Sums[i])
		}
	}

	if len(got) != len(want) {
		t.Fatalf("partition holds %d distinct tasks, expected %d", len(got), len(want))
	}
	for key, n := range want {
		if got[key] != n {
			t.Fatalf("task %s appears %d times, expected %d", key, got[key], n)
		}
	}
}

// BucketIDs returns the task IDs of each bucket, preserving bucket order.
func BucketIDs(p types.Partition) [][]int {
	out := make([][]int, len(p))
	for i, bucket := range p {
		out[i] = make([]int, 0, len(bucket))
		for _, task := range bucket {
			out[i] = append(out[i], task.ID)
		}
	}

	return out
}

func taskKey(task types.Task) string {
	return fmt.Sprintf("%d/%v", task.ID, task.Duration)
}
