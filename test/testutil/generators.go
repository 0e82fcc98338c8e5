package testutil

import (
	"math/rand/v2"

	"github.com/arloliu/tasksplit/types"
)

// RandomTasks returns n tasks with integer durations in [1, maxDuration].
//
// The same seed always yields the same tasks. IDs run from 0 to n-1.
func RandomTasks(seed uint64, n int, maxDuration int) []types.Task {
	if maxDuration < 1 {
		maxDuration = 1
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // deterministic fixtures
	tasks := make([]types.Task, n)
	for i := range tasks {
		tasks[i] = types.Task{ID: i, Duration: float64(1 + rng.IntN(maxDuration))}
	}

	return tasks
}

// Tasks builds tasks with sequential IDs from the given durations.
func Tasks(durations ...float64) []types.Task {
	tasks := make([]types.Task, len(durations))
	for i, d := range durations {
		tasks[i] = types.Task{ID: i, Duration: d}
	}

	return tasks
}

// BruteForceMakespan returns the smallest achievable makespan by trying every
// assignment. Only use it on tiny instances.
func BruteForceMakespan(tasks []types.Task, machines int) float64 {
	loads := make([]float64, machines)
	best := -1.0

	var walk func(i int)
	walk = func(i int) {
		if i == len(tasks) {
			ms := types.Makespan(loads)
			if best < 0 || ms < best {
				best = ms
			}

			return
		}
		for m := range loads {
			loads[m] += tasks[i].Duration
			walk(i + 1)
			loads[m] -= tasks[i].Duration
		}
	}
	walk(0)

	return best
}
