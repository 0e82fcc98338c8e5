package tasksplit

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/tasksplit/internal/logging"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, 2, cfg.DefaultMachines)
	require.Equal(t, 1, cfg.MinMachines)
	require.Equal(t, 3, cfg.MaxMachines)
	require.Equal(t, 10, cfg.MaxExhaustiveTasks)
	require.Equal(t, 256, cfg.CacheSize)
	require.Empty(t, cfg.Rates)
	require.Equal(t, 10*time.Second, cfg.SolveTimeout)
	require.Equal(t, "tasksplit", cfg.Service.SubjectPrefix)
	require.Equal(t, "tasksplit-solvers", cfg.Service.QueueGroup)
	require.Equal(t, "tasksplit-solutions", cfg.Service.SolutionBucket)
	require.Equal(t, time.Hour, cfg.Service.SolutionTTL)
	require.Equal(t, 5*time.Second, cfg.Service.RequestTimeout)
	require.NoError(t, cfg.Validate())
}

func TestSetDefaults(t *testing.T) {
	t.Run("applies defaults to empty config", func(t *testing.T) {
		cfg := Config{}
		SetDefaults(&cfg)

		require.Equal(t, 2, cfg.DefaultMachines)
		require.Equal(t, 1, cfg.MinMachines)
		require.Equal(t, "tasksplit", cfg.Service.SubjectPrefix)
		require.Equal(t, 5*time.Second, cfg.Service.RequestTimeout)
		require.Zero(t, cfg.MaxMachines, "zero MaxMachines means unbounded")
		require.Zero(t, cfg.CacheSize, "zero CacheSize disables the cache")
		require.NoError(t, cfg.Validate())
	})

	t.Run("preserves custom values", func(t *testing.T) {
		cfg := Config{
			DefaultMachines:    3,
			MinMachines:        2,
			MaxMachines:        4,
			MaxExhaustiveTasks: 8,
			CacheSize:          16,
			Rates:              []float64{1, 1.5, 2},
			SolveTimeout:       time.Second,
			Service: ServiceConfig{
				SubjectPrefix:  "kitchen",
				QueueGroup:     "cooks",
				SolutionBucket: "plans",
				SolutionTTL:    time.Minute,
				RequestTimeout: 3 * time.Second,
			},
		}
		want := cfg

		SetDefaults(&cfg)

		require.Equal(t, want, cfg)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "min machines below one", mutate: func(c *Config) { c.MinMachines = 0 }, errMsg: "MinMachines"},
		{name: "max below min", mutate: func(c *Config) { c.MinMachines = 3; c.MaxMachines = 2 }, errMsg: "MaxMachines"},
		{name: "default above max", mutate: func(c *Config) { c.DefaultMachines = 4 }, errMsg: "DefaultMachines"},
		{name: "negative task ceiling", mutate: func(c *Config) { c.MaxExhaustiveTasks = -1 }, errMsg: "MaxExhaustiveTasks"},
		{name: "negative cache", mutate: func(c *Config) { c.CacheSize = -1 }, errMsg: "CacheSize"},
		{name: "zero rate", mutate: func(c *Config) { c.Rates = []float64{1, 0} }, errMsg: "Rates[1]"},
		{name: "empty subject prefix", mutate: func(c *Config) { c.Service.SubjectPrefix = "" }, errMsg: "SubjectPrefix"},
		{name: "zero request timeout", mutate: func(c *Config) { c.Service.RequestTimeout = 0 }, errMsg: "RequestTimeout"},
		{name: "negative ttl", mutate: func(c *Config) { c.Service.SolutionTTL = -time.Second }, errMsg: "SolutionTTL"},
		{name: "negative request rate", mutate: func(c *Config) { c.Service.MaxRequestsPerSecond = -1 }, errMsg: "MaxRequestsPerSecond"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()

			require.ErrorIs(t, err, ErrInvalidConfig)
			require.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("unbounded max machines", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxMachines = 0
		cfg.DefaultMachines = 12

		require.NoError(t, cfg.Validate())
	})
}

func TestConfig_ValidateWithWarnings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxExhaustiveTasks = 0
	cfg.Rates = []float64{1, 1.75}

	require.NotPanics(t, func() {
		cfg.ValidateWithWarnings(logging.NewTest(t))
	})
}

func TestConfig_RatesFor(t *testing.T) {
	t.Run("defaults to unit rates", func(t *testing.T) {
		cfg := DefaultConfig()

		rates, err := cfg.RatesFor(3)

		require.NoError(t, err)
		require.Equal(t, []float64{1, 1, 1}, rates)
	})

	t.Run("uses configured prefix", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Rates = []float64{1, 1.25, 2}

		rates, err := cfg.RatesFor(2)
		require.NoError(t, err)
		require.Equal(t, []float64{1, 1.25}, rates)

		rates[0] = 9
		require.InDelta(t, 1.0, cfg.Rates[0], 0)
	})

	t.Run("too few rates", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Rates = []float64{1}

		_, err := cfg.RatesFor(2)

		require.ErrorIs(t, err, ErrInvalidRates)
	})
}

func TestConfig_YAMLUnmarshal(t *testing.T) {
	yamlConfig := `
defaultMachines: 3
maxMachines: 3
maxExhaustiveTasks: 8
cacheSize: 32
rates: [1, 1.5, 2]
solveTimeout: 2s
service:
  subjectPrefix: kitchen
  queueGroup: cooks
  solutionBucket: plans
  solutionTtl: 30m
  requestTimeout: 1500ms
`

	var cfg Config
	err := yaml.Unmarshal([]byte(yamlConfig), &cfg)
	require.NoError(t, err)

	require.Equal(t, 3, cfg.DefaultMachines)
	require.Equal(t, 8, cfg.MaxExhaustiveTasks)
	require.Equal(t, 32, cfg.CacheSize)
	require.Equal(t, []float64{1, 1.5, 2}, cfg.Rates)
	require.Equal(t, 2*time.Second, cfg.SolveTimeout)
	require.Equal(t, "kitchen", cfg.Service.SubjectPrefix)
	require.Equal(t, "cooks", cfg.Service.QueueGroup)
	require.Equal(t, "plans", cfg.Service.SolutionBucket)
	require.Equal(t, 30*time.Minute, cfg.Service.SolutionTTL)
	require.Equal(t, 1500*time.Millisecond, cfg.Service.RequestTimeout)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(dir, "partial.yaml")
		require.NoError(t, os.WriteFile(path, []byte("cacheSize: 4\n"), 0o600))

		cfg, err := LoadConfig(path)

		require.NoError(t, err)
		require.Equal(t, 4, cfg.CacheSize)
		require.Equal(t, 10, cfg.MaxExhaustiveTasks)
		require.Equal(t, "tasksplit", cfg.Service.SubjectPrefix)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.yaml")
		require.NoError(t, os.WriteFile(path, []byte("rates: [1, -2]\n"), 0o600))

		_, err := LoadConfig(path)

		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("cacheSize: [\n"), 0o600))

		_, err := LoadConfig(path)

		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("toml file", func(t *testing.T) {
		path := filepath.Join(dir, "tasksplit.toml")
		data := `maxExhaustiveTasks = 8
rates = [1.0, 1.5]
solveTimeout = "3s"

[service]
subjectPrefix = "kitchen"
requestTimeout = "1s"
maxRequestsPerSecond = 50.0
requestBurst = 5
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		cfg, err := LoadConfig(path)

		require.NoError(t, err)
		require.Equal(t, 8, cfg.MaxExhaustiveTasks)
		require.Equal(t, []float64{1, 1.5}, cfg.Rates)
		require.Equal(t, 3*time.Second, cfg.SolveTimeout)
		require.Equal(t, "kitchen", cfg.Service.SubjectPrefix)
		require.Equal(t, time.Second, cfg.Service.RequestTimeout)
		require.InDelta(t, 50.0, cfg.Service.MaxRequestsPerSecond, 1e-9)
		require.Equal(t, 5, cfg.Service.RequestBurst)
		require.Equal(t, "tasksplit-solvers", cfg.Service.QueueGroup)
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.toml")
		require.NoError(t, os.WriteFile(path, []byte("cacheSize = [\n"), 0o600))

		_, err := LoadConfig(path)

		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "nope.yaml"))

		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestTestConfig(t *testing.T) {
	cfg := TestConfig()

	require.Equal(t, 8, cfg.CacheSize)
	require.Equal(t, 2*time.Second, cfg.Service.RequestTimeout)
	require.NoError(t, cfg.Validate())
}
