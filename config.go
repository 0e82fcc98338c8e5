package tasksplit

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ServiceConfig configures the NATS solver service and its solution bucket.
type ServiceConfig struct {
	// SubjectPrefix is prepended to service subjects; requests arrive on "<prefix>.solve".
	SubjectPrefix string `yaml:"subjectPrefix" toml:"subjectPrefix"`

	// QueueGroup spreads requests over every solver subscribed with the same group.
	QueueGroup string `yaml:"queueGroup" toml:"queueGroup"`

	// SolutionBucket is the JetStream KV bucket holding the latest solution per instance.
	SolutionBucket string `yaml:"solutionBucket" toml:"solutionBucket"`

	// SolutionTTL is how long solutions remain in KV (0 = no expiration).
	SolutionTTL time.Duration `yaml:"solutionTtl" toml:"solutionTtl"`

	// RequestTimeout bounds one request, from client send to reply.
	// Recommended: 5 seconds.
	RequestTimeout time.Duration `yaml:"requestTimeout" toml:"requestTimeout"`

	// MaxRequestsPerSecond limits the solve rate of one server (0 means unlimited).
	MaxRequestsPerSecond float64 `yaml:"maxRequestsPerSecond" toml:"maxRequestsPerSecond"`

	// RequestBurst is the limiter bucket size; values below 1 mean 1.
	RequestBurst int `yaml:"requestBurst" toml:"requestBurst"`
}

// Config holds the solver configuration.
type Config struct {
	// DefaultMachines is the machine count used when a caller does not pick one.
	DefaultMachines int `yaml:"defaultMachines" toml:"defaultMachines"`

	// MinMachines and MaxMachines bound the machine count accepted by the Solver.
	// The game uses 2 or 3 machines. MaxMachines of 0 means no upper bound.
	MinMachines int `yaml:"minMachines" toml:"minMachines"`
	MaxMachines int `yaml:"maxMachines" toml:"maxMachines"`

	// MaxExhaustiveTasks refuses exhaustive searches above this many tasks
	// (0 = unlimited). The search visits machines^tasks assignments.
	MaxExhaustiveTasks int `yaml:"maxExhaustiveTasks" toml:"maxExhaustiveTasks"`

	// CacheSize bounds the number of cached exhaustive results (0 disables the cache).
	CacheSize int `yaml:"cacheSize" toml:"cacheSize"`

	// Rates holds the speed factor of each machine, index-aligned with the
	// partition buckets. Empty means every machine runs at 1.0.
	Rates []float64 `yaml:"rates" toml:"rates"`

	// SolveTimeout bounds one solve started by the service or the CLI.
	SolveTimeout time.Duration `yaml:"solveTimeout" toml:"solveTimeout"`

	// Service controls the NATS solver service.
	Service ServiceConfig `yaml:"service" toml:"service"`
}

// gameRates are the machine speed factors used by the puzzle levels.
var gameRates = []float64{1, 1.25, 1.5, 2}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		DefaultMachines:    2,
		MinMachines:        1,
		MaxMachines:        3,
		MaxExhaustiveTasks: 10,
		CacheSize:          256,
		SolveTimeout:       10 * time.Second,
		Service: ServiceConfig{
			SubjectPrefix:  "tasksplit",
			QueueGroup:     "tasksplit-solvers",
			SolutionBucket: "tasksplit-solutions",
			SolutionTTL:    time.Hour,
			RequestTimeout: 5 * time.Second,
		},
	}
}

// SetDefaults fills in missing configuration values with production defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.DefaultMachines == 0 {
		cfg.DefaultMachines = defaults.DefaultMachines
	}
	if cfg.MinMachines == 0 {
		cfg.MinMachines = defaults.MinMachines
	}
	if cfg.SolveTimeout == 0 {
		cfg.SolveTimeout = defaults.SolveTimeout
	}
	if cfg.Service.SubjectPrefix == "" {
		cfg.Service.SubjectPrefix = defaults.Service.SubjectPrefix
	}
	if cfg.Service.QueueGroup == "" {
		cfg.Service.QueueGroup = defaults.Service.QueueGroup
	}
	if cfg.Service.SolutionBucket == "" {
		cfg.Service.SolutionBucket = defaults.Service.SolutionBucket
	}
	if cfg.Service.RequestTimeout == 0 {
		cfg.Service.RequestTimeout = defaults.Service.RequestTimeout
	}
	// Note: MaxMachines, MaxExhaustiveTasks, CacheSize and SolutionTTL use 0
	// as a meaningful value, so they are left alone.
}

// LoadConfig reads a YAML or TOML configuration file.
//
// Files ending in .toml are decoded as TOML, everything else as YAML. Both
// formats use the same camelCase keys and duration strings such as "5s".
// Fields missing from the file keep their DefaultConfig values. The result is
// validated before it is returned.
//
// Parameters:
//   - path: Path to the configuration file
//
// Returns:
//   - Config: Loaded configuration
//   - error: Read, decode or validation error
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	SetDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks configuration constraints and returns error for invalid values.
//
// Hard Validation Rules:
//   - MinMachines >= 1
//   - MaxMachines == 0 or MaxMachines >= MinMachines
//   - MinMachines <= DefaultMachines <= MaxMachines (when bounded)
//   - MaxExhaustiveTasks >= 0, CacheSize >= 0
//   - Every rate > 0
//   - Service.MaxRequestsPerSecond >= 0
//   - Service.SubjectPrefix is set, RequestTimeout > 0, SolutionTTL >= 0
//
// Returns:
//   - error: Validation error wrapping ErrInvalidConfig, nil if valid
func (cfg *Config) Validate() error {
	if cfg.MinMachines < 1 {
		return fmt.Errorf("%w: MinMachines must be >= 1, got %d", ErrInvalidConfig, cfg.MinMachines)
	}

	if cfg.MaxMachines != 0 && cfg.MaxMachines < cfg.MinMachines {
		return fmt.Errorf("%w: MaxMachines (%d) must be >= MinMachines (%d)",
			ErrInvalidConfig, cfg.MaxMachines, cfg.MinMachines)
	}

	if !cfg.machinesInRange(cfg.DefaultMachines) {
		return fmt.Errorf("%w: DefaultMachines (%d) must lie within [%d, %d]",
			ErrInvalidConfig, cfg.DefaultMachines, cfg.MinMachines, cfg.MaxMachines)
	}

	if cfg.MaxExhaustiveTasks < 0 {
		return fmt.Errorf("%w: MaxExhaustiveTasks must be >= 0, got %d", ErrInvalidConfig, cfg.MaxExhaustiveTasks)
	}

	if cfg.CacheSize < 0 {
		return fmt.Errorf("%w: CacheSize must be >= 0, got %d", ErrInvalidConfig, cfg.CacheSize)
	}

	for i, r := range cfg.Rates {
		if r <= 0 {
			return fmt.Errorf("%w: Rates[%d] must be > 0, got %v", ErrInvalidConfig, i, r)
		}
	}

	if cfg.Service.SubjectPrefix == "" {
		return fmt.Errorf("%w: Service.SubjectPrefix is required", ErrInvalidConfig)
	}

	if cfg.Service.RequestTimeout <= 0 {
		return fmt.Errorf("%w: Service.RequestTimeout must be > 0, got %v", ErrInvalidConfig, cfg.Service.RequestTimeout)
	}

	if cfg.Service.MaxRequestsPerSecond < 0 {
		return fmt.Errorf("%w: Service.MaxRequestsPerSecond must be >= 0, got %v",
			ErrInvalidConfig, cfg.Service.MaxRequestsPerSecond)
	}

	if cfg.Service.SolutionTTL < 0 {
		return fmt.Errorf("%w: Service.SolutionTTL must be >= 0, got %v", ErrInvalidConfig, cfg.Service.SolutionTTL)
	}

	return nil
}

// ValidateWithWarnings checks configuration and logs warnings for non-recommended values.
//
// This is called after Validate() in NewSolver() to provide operator guidance.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if cfg.MaxExhaustiveTasks == 0 {
		logger.Warn("MaxExhaustiveTasks is unlimited, large instances may never finish",
			"recommended", 10,
		)
	} else if cfg.MaxExhaustiveTasks > 12 {
		logger.Warn("MaxExhaustiveTasks is high, exhaustive search grows as machines^tasks",
			"maxExhaustiveTasks", cfg.MaxExhaustiveTasks,
			"recommended", "12 or lower",
		)
	}

	for i, r := range cfg.Rates {
		if !slices.Contains(gameRates, r) {
			logger.Warn("machine rate is not one of the game rates",
				"index", i,
				"rate", r,
				"allowed", gameRates,
			)
		}
	}

	if cfg.MaxMachines != 0 && len(cfg.Rates) > 0 && len(cfg.Rates) < cfg.MaxMachines {
		logger.Warn("fewer rates than MaxMachines, scaling larger instances will fail",
			"rates", len(cfg.Rates),
			"maxMachines", cfg.MaxMachines,
		)
	}
}

// RatesFor returns the speed factors for the first machines entries.
//
// With no configured rates every machine runs at 1.0.
//
// Returns:
//   - []float64: One rate per machine
//   - error: ErrInvalidRates if fewer rates than machines are configured
func (cfg *Config) RatesFor(machines int) ([]float64, error) {
	if machines < 0 {
		machines = 0
	}

	if len(cfg.Rates) == 0 {
		rates := make([]float64, machines)
		for i := range rates {
			rates[i] = 1
		}

		return rates, nil
	}

	if len(cfg.Rates) < machines {
		return nil, fmt.Errorf("%w: %d rates configured for %d machines", ErrInvalidRates, len(cfg.Rates), machines)
	}

	return slices.Clone(cfg.Rates[:machines]), nil
}

func (cfg *Config) machinesInRange(machines int) bool {
	if machines < cfg.MinMachines {
		return false
	}

	return cfg.MaxMachines == 0 || machines <= cfg.MaxMachines
}

// TestConfig returns a configuration suited to fast, isolated tests.
//
// The cache is small and service timeouts are short. Use DefaultConfig()
// for production deployments.
//
// Returns:
//   - Config: Configuration for tests
//
// Example:
//
//	cfg := tasksplit.TestConfig()
//	solver, err := tasksplit.NewSolver(&cfg)
func TestConfig() Config {
	cfg := DefaultConfig()

	cfg.CacheSize = 8
	cfg.SolveTimeout = 2 * time.Second
	cfg.Service.RequestTimeout = 2 * time.Second
	cfg.Service.SolutionTTL = time.Minute

	return cfg
}
