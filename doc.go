// Package tasksplit partitions weighted tasks over a fixed number of machines.
//
// Each task has a duration in minutes; a partition assigns every task to exactly
// one machine. Two algorithms do the core work:
//
//   - Greedy: longest-processing-time-first list scheduling. Fast and
//     deterministic, within 4/3 - 1/(3m) of the optimal makespan.
//   - Exhaustive: tries every assignment and keeps the one with the smallest
//     spread between the busiest and the least busy machine.
//
// Round-robin and consistent-hash partitioners are included as baselines.
//
// # Quick Start
//
// One-off calls:
//
//	import "github.com/arloliu/tasksplit"
//
//	tasks := []tasksplit.Task{{ID: 0, Duration: 10}, {ID: 1, Duration: 7}, {ID: 2, Duration: 3}}
//	partition, sums, err := tasksplit.ExhaustivePartition(tasks, 2)
//	// partition == [[{0 10}] [{1 7} {2 3}]], sums == [10 10]
//
// # Solver
//
// The Solver adds named strategies, a solution cache, metrics and logging:
//
//	cfg := tasksplit.DefaultConfig()
//	solver, err := tasksplit.NewSolver(&cfg,
//	    tasksplit.WithLogger(logger),
//	    tasksplit.WithMetrics(collector),
//	)
//	sol, err := solver.Solve(ctx, "greedy", tasks, 2)
//	fmt.Println(sol.Makespan, sol.Difference)
//
// # Machine Rates
//
// Machines may run at different speeds. The algorithms work on raw durations;
// use ScaleSums (or Solver.ScaledSums with Config.Rates) to get the displayed
// per-machine totals.
//
// # Serving Over NATS
//
// The service package exposes a Solver on a NATS subject and stores solutions in
// a JetStream KV bucket. The cmd/tasksplit binary wraps it in a CLI.
package tasksplit
