package tasksplit

// Option configures a Solver with optional dependencies.
type Option func(*solverOptions)

// solverOptions holds optional Solver configuration.
type solverOptions struct {
	metrics    MetricsCollector
	logger     Logger
	strategies map[string]Partitioner
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewSolver
//
// Example:
//
//	collector := metrics.NewPrometheus(prometheus.DefaultRegisterer, "")
//	solver, err := tasksplit.NewSolver(&cfg, tasksplit.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *solverOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for NewSolver
//
// Example:
//
//	solver, err := tasksplit.NewSolver(&cfg, tasksplit.WithLogger(logging.NewSlogDefault()))
func WithLogger(logger Logger) Option {
	return func(o *solverOptions) {
		o.logger = logger
	}
}

// WithStrategy registers a partitioner under name, replacing a built-in
// strategy of the same name.
//
// Parameters:
//   - name: Name used with Solver.Solve
//   - p: Partitioner implementation
//
// Returns:
//   - Option: Functional option for NewSolver
//
// Example:
//
//	solver, err := tasksplit.NewSolver(&cfg,
//	    tasksplit.WithStrategy("exhaustive-makespan",
//	        strategy.NewExhaustive(strategy.WithObjective(strategy.ObjectiveMakespan))),
//	)
func WithStrategy(name string, p Partitioner) Option {
	return func(o *solverOptions) {
		if o.strategies == nil {
			o.strategies = make(map[string]Partitioner)
		}
		o.strategies[name] = p
	}
}
