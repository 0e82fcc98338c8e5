package strategy

import (
	"fmt"

	"github.com/arloliu/tasksplit/internal/logging"
	"github.com/arloliu/tasksplit/types"
)

// Exhaustive implements a backtracking search over every task-to-machine assignment.
type Exhaustive struct {
	maxTasks  int
	objective Objective
	logger    types.Logger
}

var _ types.Partitioner = (*Exhaustive)(nil)

// ExhaustiveOption configures an Exhaustive strategy.
type ExhaustiveOption func(*Exhaustive)

// Objective selects the value the exhaustive search minimizes.
type Objective int

const (
	// ObjectiveSpread minimizes max(sums) - min(sums). This is the default.
	ObjectiveSpread Objective = iota

	// ObjectiveMakespan minimizes max(sums).
	//
	// For two machines both objectives pick the same partition. For three or
	// more, the smallest spread may come with a larger makespan.
	ObjectiveMakespan
)

// String returns the objective name used in logs and metrics.
func (o Objective) String() string {
	switch o {
	case ObjectiveSpread:
		return "spread"
	case ObjectiveMakespan:
		return "makespan"
	default:
		return fmt.Sprintf("objective(%d)", int(o))
	}
}

// SearchStats describes the work done by one exhaustive search.
type SearchStats struct {
	// Leaves is the number of complete assignments that were scored.
	Leaves int64

	// Best is the objective value of the returned partition.
	Best float64
}

// NewExhaustive creates a new exhaustive search strategy.
//
// The search visits machines^len(tasks) assignments; keep instances small or
// set WithMaxTasks.
//
// Parameters:
//   - opts: Optional configuration (WithMaxTasks, WithObjective, WithExhaustiveLogger)
//
// Returns:
//   - *Exhaustive: Initialized exhaustive strategy
//
// Example:
//
//	strat := strategy.NewExhaustive(strategy.WithMaxTasks(10))
//	res, err := strat.Partition(tasks, 3)
func NewExhaustive(opts ...ExhaustiveOption) *Exhaustive {
	e := &Exhaustive{
		logger: logging.NewNop(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	if e.logger == nil {
		e.logger = logging.NewNop()
	}

	return e
}

// WithMaxTasks refuses instances with more than n tasks (0 disables the check).
func WithMaxTasks(n int) ExhaustiveOption {
	return func(e *Exhaustive) {
		e.maxTasks = n
	}
}

// WithObjective selects the minimized value (default ObjectiveSpread).
func WithObjective(o Objective) ExhaustiveOption {
	return func(e *Exhaustive) {
		e.objective = o
	}
}

// WithExhaustiveLogger sets the logger used for search diagnostics.
func WithExhaustiveLogger(logger types.Logger) ExhaustiveOption {
	return func(e *Exhaustive) {
		e.logger = logger
	}
}

// MaxTasks returns the configured task ceiling (0 means unlimited).
func (e *Exhaustive) MaxTasks() int {
	return e.maxTasks
}

// Partition returns the assignment with the smallest spread between the most
// and least loaded machines (or the smallest makespan with ObjectiveMakespan).
//
// See Search for the exploration order and tie-break rule.
func (e *Exhaustive) Partition(tasks []types.Task, machines int) (types.Result, error) {
	res, _, err := e.Search(tasks, machines)

	return res, err
}

// Search runs the exhaustive search and reports how many leaves were scored.
//
// The algorithm:
//  1. Walk all assignments depth first: task i is tried on machine 0, 1, ...,
//     machines-1 in that order, tasks in input order
//  2. At each complete assignment compute the objective, max(sums) - min(sums)
//     by default
//  3. Keep a deep copy of the first assignment reaching a strictly lower
//     value; later assignments with an equal value never replace it
//
// The working partition belongs to the search and is mutated in place; only
// snapshots leave it.
//
// Parameters:
//   - tasks: Tasks to assign (not modified)
//   - machines: Number of machines, must be >= 1
//
// Returns:
//   - types.Result: Best partition with sums recomputed from it
//   - SearchStats: Search effort
//   - error: types.ErrInvalidConfiguration, types.ErrTooManyTasks or types.ErrNoSolutionFound
func (e *Exhaustive) Search(tasks []types.Task, machines int) (types.Result, SearchStats, error) {
	if err := checkMachines(NameExhaustive, machines); err != nil {
		return types.Result{}, SearchStats{}, err
	}

	if e.maxTasks > 0 && len(tasks) > e.maxTasks {
		return types.Result{}, SearchStats{}, fmt.Errorf("%s: %w (tasks=%d, max=%d)",
			NameExhaustive, types.ErrTooManyTasks, len(tasks), e.maxTasks)
	}

	s := newSearch(tasks, machines, e.objective)
	s.run()

	stats := SearchStats{Leaves: s.leaves, Best: s.bestValue}
	if !s.found {
		return types.Result{}, stats, fmt.Errorf("%s: %w (tasks=%d, machines=%d)",
			NameExhaustive, types.ErrNoSolutionFound, len(tasks), machines)
	}

	e.logger.Debug("exhaustive search finished",
		"tasks", len(tasks),
		"machines", machines,
		"leaves", s.leaves,
		"objective", e.objective.String(),
		"best", s.bestValue,
	)

	return types.NewResult(s.best), stats, nil
}

// search holds the state of one depth-first traversal.
//
// choice is the path stack: choice[d] is the machine currently holding task d,
// or -1 when task d is not placed.
type search struct {
	tasks     []types.Task
	machines  int
	objective Objective

	working types.Partition
	choice  []int
	sums    []float64

	best      types.Partition
	bestValue float64
	found     bool
	leaves    int64
}

func newSearch(tasks []types.Task, machines int, objective Objective) *search {
	working := make(types.Partition, machines)
	for i := range working {
		working[i] = make([]types.Task, 0, len(tasks))
	}

	choice := make([]int, len(tasks))
	for i := range choice {
		choice[i] = -1
	}

	return &search{
		tasks:     tasks,
		machines:  machines,
		objective: objective,
		working:   working,
		choice:    choice,
		sums:      make([]float64, machines),
	}
}

// run walks every assignment without recursion.
//
// Each iteration at depth d first undoes task d's current placement, then
// moves it to the next machine. Exhausting the machines pops the stack.
func (s *search) run() {
	n := len(s.tasks)
	if n == 0 {
		s.score()

		return
	}

	depth := 0
	for depth >= 0 {
		if m := s.choice[depth]; m >= 0 {
			bucket := s.working[m]
			s.working[m] = bucket[:len(bucket)-1]
		}

		next := s.choice[depth] + 1
		if next >= s.machines {
			s.choice[depth] = -1
			depth--

			continue
		}

		s.choice[depth] = next
		s.working[next] = append(s.working[next], s.tasks[depth])

		if depth == n-1 {
			s.score()

			continue
		}

		depth++
	}
}

// score evaluates the current complete assignment.
func (s *search) score() {
	if s.machines < 1 {
		return
	}

	s.leaves++
	sumInto(s.working, s.sums)

	var value float64
	if s.objective == ObjectiveMakespan {
		value = types.Makespan(s.sums)
	} else {
		value = types.Difference(s.sums)
	}

	if !s.found || value < s.bestValue {
		s.best = s.working.Clone()
		s.bestValue = value
		s.found = true
	}
}

// sumInto writes the per-bucket totals of p into buf.
func sumInto(p types.Partition, buf []float64) {
	for i, bucket := range p {
		total := 0.0
		for _, task := range bucket {
			total += task.Duration
		}
		buf[i] = total
	}
}
