package strategy

import (
	"cmp"
	"slices"

	"github.com/arloliu/tasksplit/types"
)

// Greedy implements longest-processing-time-first list scheduling.
type Greedy struct{}

var _ types.Partitioner = (*Greedy)(nil)

// NewGreedy creates a new greedy (LPT) strategy.
//
// Example:
//
//	res, err := strategy.NewGreedy().Partition(tasks, 2)
func NewGreedy() *Greedy {
	return &Greedy{}
}

// Partition assigns tasks using the LPT heuristic.
//
// The algorithm:
//  1. Stable sort a copy of tasks by duration, longest first
//  2. Start every machine with an empty bucket and a zero load
//  3. Append each task to the machine with the smallest load; on equal loads
//     the lowest machine index wins
//
// Tasks with equal durations keep their input order, so the output is fully
// determined by the input sequence.
//
// Parameters:
//   - tasks: Tasks to assign (not modified)
//   - machines: Number of machines, must be >= 1
//
// Returns:
//   - types.Result: Partition and per-machine sums
//   - error: types.ErrInvalidConfiguration if machines < 1
func (g *Greedy) Partition(tasks []types.Task, machines int) (types.Result, error) {
	if err := checkMachines(NameGreedy, machines); err != nil {
		return types.Result{}, err
	}

	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, func(a, b types.Task) int {
		return cmp.Compare(b.Duration, a.Duration)
	})

	partition := types.NewPartition(machines)
	loads := make([]float64, machines)

	for _, task := range sorted {
		idx := lightestMachine(loads)
		partition[idx] = append(partition[idx], task)
		loads[idx] += task.Duration
	}

	return types.NewResult(partition), nil
}

// lightestMachine returns the first index holding the minimum load.
func lightestMachine(loads []float64) int {
	best := 0
	for i := 1; i < len(loads); i++ {
		if loads[i] < loads[best] {
			best = i
		}
	}

	return best
}
