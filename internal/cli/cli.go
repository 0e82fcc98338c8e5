// Package cli implements the tasksplit command-line interface.
//
// # Commands
//
//   - solve: Partition the tasks of an instance file with one strategy
//   - compare: Run every strategy on an instance and compare makespan and spread
//   - serve: Run the NATS solver service with a Prometheus endpoint
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging to stderr.
package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/arloliu/tasksplit"
	"github.com/arloliu/tasksplit/internal/logging"
)

// Log levels exported for use in main.go.
const (
	LogDebug = slog.LevelDebug
	LogInfo  = slog.LevelInfo
)

// CLI holds shared state for all commands.
type CLI struct {
	logw       io.Writer
	level      slog.Level
	Logger     *logging.SlogLogger
	configPath string
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level slog.Level) *CLI {
	return &CLI{
		logw:   w,
		level:  level,
		Logger: logging.NewSlogText(w, level),
	}
}

// SetLogLevel rebuilds the logger at the given level.
func (c *CLI) SetLogLevel(level slog.Level) {
	c.level = level
	c.Logger = logging.NewSlogText(c.logw, level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "tasksplit",
		Short:        "tasksplit partitions weighted tasks over machines",
		Long:         `tasksplit assigns tasks with durations to a fixed number of machines, comparing a greedy LPT heuristic with an exhaustive search for the most even split.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "YAML configuration file")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.serveCommand())

	return root
}

// loadConfig returns the --config file contents, or the defaults.
func (c *CLI) loadConfig() (tasksplit.Config, error) {
	if c.configPath == "" {
		return tasksplit.DefaultConfig(), nil
	}

	return tasksplit.LoadConfig(c.configPath)
}

// newSolver builds a Solver from the loaded configuration.
func (c *CLI) newSolver(opts ...tasksplit.Option) (*tasksplit.Solver, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}

	return tasksplit.NewSolver(&cfg, append([]tasksplit.Option{tasksplit.WithLogger(c.Logger)}, opts...)...)
}
