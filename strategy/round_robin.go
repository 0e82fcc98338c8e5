package strategy

import "github.com/arloliu/tasksplit/types"

// RoundRobin implements simple round-robin task placement.
type RoundRobin struct{}

var _ types.Partitioner = (*RoundRobin)(nil)

// NewRoundRobin creates a new round-robin strategy.
//
// The strategy deals tasks onto machines like cards, ignoring durations.
// It balances task counts, not load.
//
// Example:
//
//	res, err := strategy.NewRoundRobin().Partition(tasks, 3)
func NewRoundRobin() *RoundRobin {
	return &RoundRobin{}
}

// Partition places task i on machine i % machines, in input order.
//
// Parameters:
//   - tasks: Tasks to assign (not modified)
//   - machines: Number of machines, must be >= 1
//
// Returns:
//   - types.Result: Partition and per-machine sums
//   - error: types.ErrInvalidConfiguration if machines < 1
func (rr *RoundRobin) Partition(tasks []types.Task, machines int) (types.Result, error) {
	if err := checkMachines(NameRoundRobin, machines); err != nil {
		return types.Result{}, err
	}

	partition := types.NewPartition(machines)
	for i, task := range tasks {
		m := i % machines
		partition[m] = append(partition[m], task)
	}

	return types.NewResult(partition), nil
}
