package tasksplit

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/puzpuzpuz/xsync/v4"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/tasksplit/internal/hash"
	"github.com/arloliu/tasksplit/internal/logging"
	"github.com/arloliu/tasksplit/internal/metrics"
	"github.com/arloliu/tasksplit/strategy"
	"github.com/arloliu/tasksplit/types"
)

// Solution is the outcome of one Solver.Solve call.
type Solution struct {
	// Strategy is the name the solution was computed with.
	Strategy string

	// Result holds the partition and its raw per-machine sums.
	Result Result

	// Makespan is the largest machine total.
	Makespan float64

	// Difference is the spread between the largest and smallest machine totals.
	Difference float64

	// Elapsed is the wall time of the call, including cache lookups.
	Elapsed time.Duration

	// Cached reports whether the result came from the solution cache.
	Cached bool

	// Leaves is the number of assignments scored by an exhaustive search (0 otherwise).
	Leaves int64
}

// searcher is implemented by partitioners that report search effort.
type searcher interface {
	Search(tasks []types.Task, machines int) (types.Result, strategy.SearchStats, error)
}

type cacheEntry struct {
	result Result
	leaves int64
}

// Solver runs named partitioning strategies with caching, metrics and logging.
//
// A Solver is safe for concurrent use.
type Solver struct {
	cfg        Config
	logger     Logger
	metrics    MetricsCollector
	strategies map[string]Partitioner
	names      []string
	cache      *xsync.Map[uint64, cacheEntry]
}

// builtinStrategies lists the built-in strategy names in display order.
var builtinStrategies = []string{
	strategy.NameGreedy,
	strategy.NameExhaustive,
	strategy.NameRoundRobin,
	strategy.NameConsistentHash,
}

// NewSolver creates a Solver with the built-in strategies registered.
//
// The configuration is copied, defaults are applied and the result is
// validated. The exhaustive strategy refuses instances above
// cfg.MaxExhaustiveTasks.
//
// Parameters:
//   - cfg: Configuration (nil uses DefaultConfig)
//   - opts: Optional configuration (WithLogger, WithMetrics, WithStrategy)
//
// Returns:
//   - *Solver: Initialized solver
//   - error: Validation error wrapping ErrInvalidConfig
//
// Example:
//
//	cfg := tasksplit.DefaultConfig()
//	solver, err := tasksplit.NewSolver(&cfg)
//	if err != nil { /* handle */ }
//	sol, err := solver.Solve(ctx, "exhaustive", tasks, 2)
func NewSolver(cfg *Config, opts ...Option) (*Solver, error) {
	c := DefaultConfig()
	if cfg != nil {
		c = *cfg
		c.Rates = slices.Clone(cfg.Rates)
	}
	SetDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	options := &solverOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	if options.logger == nil {
		options.logger = logging.NewNop()
	}
	if options.metrics == nil {
		options.metrics = metrics.NewNop()
	}

	c.ValidateWithWarnings(options.logger)

	s := &Solver{
		cfg:     c,
		logger:  options.logger,
		metrics: options.metrics,
		strategies: map[string]Partitioner{
			strategy.NameGreedy: strategy.NewGreedy(),
			strategy.NameExhaustive: strategy.NewExhaustive(
				strategy.WithMaxTasks(c.MaxExhaustiveTasks),
				strategy.WithExhaustiveLogger(options.logger),
			),
			strategy.NameRoundRobin:     strategy.NewRoundRobin(),
			strategy.NameConsistentHash: strategy.NewConsistentHash(),
		},
		names: slices.Clone(builtinStrategies),
	}

	custom := make([]string, 0, len(options.strategies))
	for name, p := range options.strategies {
		if name == "" || p == nil {
			return nil, fmt.Errorf("%w: strategy %q has no partitioner", ErrInvalidConfig, name)
		}
		if _, builtin := s.strategies[name]; !builtin {
			custom = append(custom, name)
		}
		s.strategies[name] = p
	}
	slices.Sort(custom)
	s.names = append(s.names, custom...)

	if c.CacheSize > 0 {
		s.cache = xsync.NewMap[uint64, cacheEntry]()
	}

	return s, nil
}

// Config returns a copy of the effective configuration.
func (s *Solver) Config() Config {
	c := s.cfg
	c.Rates = slices.Clone(s.cfg.Rates)

	return c
}

// Strategies returns the registered strategy names, built-ins first.
func (s *Solver) Strategies() []string {
	return slices.Clone(s.names)
}

// Solve partitions tasks over machines with the named strategy.
//
// The exhaustive strategy is served from the solution cache when the same
// (strategy, machines, task sequence) was solved before; the cached result is
// deep-copied so callers may modify it freely.
//
// Parameters:
//   - ctx: Context; a done context fails the call before any work
//   - name: Registered strategy name
//   - tasks: Tasks in input order (not modified)
//   - machines: Machine count
//
// Returns:
//   - *Solution: Partition, sums and statistics
//   - error: ErrUnknownStrategy, ErrInvalidConfiguration, ErrTooManyTasks,
//     the context error, or a strategy error
func (s *Solver) Solve(ctx context.Context, name string, tasks []Task, machines int) (*Solution, error) {
	start := time.Now()

	p, ok := s.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.checkInstance(name, tasks, machines); err != nil {
		s.metrics.RecordSolve(name, len(tasks), machines, time.Since(start).Seconds(), false)

		return nil, err
	}

	var key uint64
	useCache := s.cache != nil && name == strategy.NameExhaustive
	if useCache {
		key = hash.Fingerprint(name, machines, tasks)
		if entry, hit := s.cache.Load(key); hit {
			s.metrics.RecordCacheResult(true)

			return s.finish(name, tasks, machines, entry.result.Clone(), entry.leaves, true, start), nil
		}
		s.metrics.RecordCacheResult(false)
	}

	var (
		res    Result
		leaves int64
		err    error
	)
	if sr, isSearch := p.(searcher); isSearch {
		var stats strategy.SearchStats
		res, stats, err = sr.Search(tasks, machines)
		leaves = stats.Leaves
		if err == nil {
			s.metrics.RecordSearchLeaves(name, leaves)
		}
	} else {
		res, err = p.Partition(tasks, machines)
	}

	if err != nil {
		s.metrics.RecordSolve(name, len(tasks), machines, time.Since(start).Seconds(), false)
		s.logger.Debug("solve failed", "strategy", name, "tasks", len(tasks), "machines", machines, "error", err)

		return nil, err
	}

	if useCache {
		s.store(key, cacheEntry{result: res.Clone(), leaves: leaves})
	}

	return s.finish(name, tasks, machines, res, leaves, false, start), nil
}

// SolveSource lists the tasks of src and solves them.
func (s *Solver) SolveSource(ctx context.Context, name string, src TaskSource, machines int) (*Solution, error) {
	tasks, err := src.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return s.Solve(ctx, name, tasks, machines)
}

// Compare solves the same instance with several strategies concurrently.
//
// Solutions are returned in the order of names. With no names every
// registered strategy runs, in Strategies() order. The first failure cancels
// the remaining work and is returned.
//
// Parameters:
//   - ctx: Context for cancellation
//   - tasks: Tasks in input order
//   - machines: Machine count
//   - names: Strategy names (optional)
//
// Returns:
//   - []*Solution: One solution per name
//   - error: First error encountered
func (s *Solver) Compare(ctx context.Context, tasks []Task, machines int, names ...string) ([]*Solution, error) {
	if len(names) == 0 {
		names = s.names
	}

	for _, name := range names {
		if _, ok := s.strategies[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
		}
	}

	solutions := make([]*Solution, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			sol, err := s.Solve(gctx, name, tasks, machines)
			if err != nil {
				return fmt.Errorf("compare %s: %w", name, err)
			}
			solutions[i] = sol

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return solutions, nil
}

// CacheLen returns the number of cached solutions.
func (s *Solver) CacheLen() int {
	if s.cache == nil {
		return 0
	}

	return s.cache.Size()
}

// ClearCache drops every cached solution.
func (s *Solver) ClearCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

func (s *Solver) checkInstance(name string, tasks []Task, machines int) error {
	if !s.cfg.machinesInRange(machines) {
		return fmt.Errorf("%s: %w (machines=%d, allowed=[%d, %d])",
			name, ErrInvalidConfiguration, machines, s.cfg.MinMachines, s.cfg.MaxMachines)
	}

	if name == strategy.NameExhaustive && s.cfg.MaxExhaustiveTasks > 0 && len(tasks) > s.cfg.MaxExhaustiveTasks {
		return fmt.Errorf("%s: %w (tasks=%d, max=%d)",
			name, ErrTooManyTasks, len(tasks), s.cfg.MaxExhaustiveTasks)
	}

	return nil
}

// store inserts an entry, evicting an arbitrary one when the cache is full.
func (s *Solver) store(key uint64, entry cacheEntry) {
	if s.cache.Size() >= s.cfg.CacheSize {
		s.cache.Range(func(k uint64, _ cacheEntry) bool {
			s.cache.Delete(k)

			return false
		})
	}

	s.cache.Store(key, entry)
}

func (s *Solver) finish(name string, tasks []Task, machines int, res Result, leaves int64, cached bool, start time.Time) *Solution {
	sol := &Solution{
		Strategy:   name,
		Result:     res,
		Makespan:   res.Makespan(),
		Difference: res.Difference(),
		Elapsed:    time.Since(start),
		Cached:     cached,
		Leaves:     leaves,
	}

	s.metrics.RecordSolve(name, len(tasks), machines, sol.Elapsed.Seconds(), true)
	s.metrics.RecordSpread(name, sol.Difference)

	s.logger.Debug("solved",
		"strategy", name,
		"tasks", len(tasks),
		"machines", machines,
		"makespan", sol.Makespan,
		"difference", sol.Difference,
		"elapsed", sol.Elapsed,
		"cached", cached,
	)

	return sol
}
