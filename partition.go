package tasksplit

import "github.com/arloliu/tasksplit/strategy"

// GreedyPartition assigns tasks with the LPT heuristic.
//
// Tasks are placed longest first on the machine with the smallest running
// total; equal totals go to the lowest machine index.
//
// Parameters:
//   - tasks: Tasks to assign (not modified)
//   - machines: Number of machines, must be >= 1
//
// Returns:
//   - Partition: One bucket per machine
//   - []float64: Total duration of each bucket
//   - error: ErrInvalidConfiguration if machines < 1
//
// Example:
//
//	partition, sums, err := tasksplit.GreedyPartition(tasks, 2)
func GreedyPartition(tasks []Task, machines int) (Partition, []float64, error) {
	res, err := strategy.NewGreedy().Partition(tasks, machines)
	if err != nil {
		return nil, nil, err
	}

	return res.Partition, res.Sums, nil
}

// ExhaustivePartition returns the assignment minimizing the spread between the
// most and least loaded machines, trying every assignment.
//
// Among assignments with the same spread the first one found wins, walking
// machines in ascending index order for each task in input order.
//
// Parameters:
//   - tasks: Tasks to assign (not modified); keep the list small
//   - machines: Number of machines, must be >= 1
//
// Returns:
//   - Partition: One bucket per machine
//   - []float64: Total duration of each bucket
//   - error: ErrInvalidConfiguration if machines < 1, ErrNoSolutionFound if no
//     assignment was scored
func ExhaustivePartition(tasks []Task, machines int) (Partition, []float64, error) {
	res, err := strategy.NewExhaustive().Partition(tasks, machines)
	if err != nil {
		return nil, nil, err
	}

	return res.Partition, res.Sums, nil
}
