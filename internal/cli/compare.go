package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arloliu/tasksplit/source"
	"github.com/arloliu/tasksplit/strategy"
)

type compareOpts struct {
	file       string
	machines   int
	strategies []string
}

func (c *CLI) compareCommand() *cobra.Command {
	var opts compareOpts

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run several strategies on one instance",
		Long: `Compare solves an instance with every registered strategy (or the ones
given with --strategy) and prints makespan, spread and search effort side by
side.

The exhaustive strategy is skipped when the instance has more tasks than the
configured ceiling.`,
		Example: `  tasksplit compare --file level3.yaml
  tasksplit compare --file level3.yaml -s greedy -s exhaustive -m 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runCompare(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "instance YAML file (required)")
	cmd.Flags().IntVarP(&opts.machines, "machines", "m", 0, "machine count (default: instance machines, then config)")
	cmd.Flags().StringSliceVarP(&opts.strategies, "strategy", "s", nil, "strategies to run (default: all)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (c *CLI) runCompare(ctx context.Context, w io.Writer, opts compareOpts) error {
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

	names := opts.strategies
	if len(names) == 0 {
		names = solver.Strategies()
	}

	run := make([]string, 0, len(names))
	for _, name := range names {
		if name == strategy.NameExhaustive && cfg.MaxExhaustiveTasks > 0 && len(in.Tasks) > cfg.MaxExhaustiveTasks {
			c.Logger.Warn("skipping exhaustive search",
				"tasks", len(in.Tasks),
				"max", cfg.MaxExhaustiveTasks,
			)

			continue
		}
		run = append(run, name)
	}

	if len(run) == 0 {
		return fmt.Errorf("no strategy can solve %d tasks", len(in.Tasks))
	}

	sols, err := solver.Compare(ctx, in.Tasks, machines, run...)
	if err != nil {
		return err
	}

	renderComparison(w, sols)

	return nil
}
