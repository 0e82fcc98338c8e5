package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arloliu/tasksplit"
	"github.com/arloliu/tasksplit/source"
	"github.com/arloliu/tasksplit/strategy"
)

type solveOpts struct {
	file     string
	strategy string
	machines int
	json     bool
}

// solveOutput is the --json form of a solution.
type solveOutput struct {
	Instance   string              `json:"instance,omitempty"`
	Strategy   string              `json:"strategy"`
	Machines   int                 `json:"machines"`
	Partition  tasksplit.Partition `json:"partition"`
	Sums       []float64           `json:"sums"`
	Rates      []float64           `json:"rates"`
	Scaled     []float64           `json:"scaled"`
	Makespan   float64             `json:"makespan"`
	Difference float64             `json:"difference"`
	Leaves     int64               `json:"leaves,omitempty"`
	Cached     bool                `json:"cached,omitempty"`
}

func (c *CLI) solveCommand() *cobra.Command {
	opts := solveOpts{strategy: strategy.NameExhaustive}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Partition the tasks of an instance file",
		Long: `Solve reads a YAML instance (machines and tasks) and assigns every task
to one machine with the chosen strategy.

Machine totals are shown raw and divided by each machine's rate. Rates come
from the instance when it lists one machine per bucket, otherwise from the
configuration.`,
		Example: `  tasksplit solve --file level3.yaml
  tasksplit solve --file level3.yaml --strategy greedy --machines 3 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runSolve(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "instance YAML file (required)")
	cmd.Flags().StringVarP(&opts.strategy, "strategy", "s", opts.strategy, "partitioning strategy")
	cmd.Flags().IntVarP(&opts.machines, "machines", "m", 0, "machine count (default: instance machines, then config)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the solution as JSON")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (c *CLI) runSolve(ctx context.Context, w io.Writer, opts solveOpts) error {
	solver, err := c.newSolver()
	if err != nil {
		return err
	}

	in, err := source.NewFile(opts.file).Instance(ctx)
	if err != nil {
		return err
	}

	cfg := solver.Config()
	machines := resolveMachines(opts.machines, in, &cfg)

	sol, err := solver.Solve(ctx, opts.strategy, in.Tasks, machines)
	if err != nil {
		return fmt.Errorf("solve %s: %w", opts.file, err)
	}

	rates, err := ratesFor(in, &cfg, machines)
	if err != nil {
		return err
	}

	scaled, err := tasksplit.ScaleSums(sol.Result.Sums, rates)
	if err != nil {
		return err
	}

	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(solveOutput{
			Instance:   in.Name,
			Strategy:   sol.Strategy,
			Machines:   machines,
			Partition:  sol.Result.Partition,
			Sums:       sol.Result.Sums,
			Rates:      rates,
			Scaled:     scaled,
			Makespan:   sol.Makespan,
			Difference: sol.Difference,
			Leaves:     sol.Leaves,
			Cached:     sol.Cached,
		})
	}

	renderSolution(w, in, sol, rates, scaled)

	return nil
}

// resolveMachines picks the flag value, then the instance machine list, then the config default.
func resolveMachines(flag int, in *source.Instance, cfg *tasksplit.Config) int {
	switch {
	case flag != 0:
		return flag
	case len(in.Machines) > 0:
		return len(in.Machines)
	default:
		return cfg.DefaultMachines
	}
}

func ratesFor(in *source.Instance, cfg *tasksplit.Config, machines int) ([]float64, error) {
	if len(in.Machines) == machines {
		return in.Rates(), nil
	}

	return cfg.RatesFor(machines)
}
