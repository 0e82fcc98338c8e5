package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlog(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := NewSlog(slog.New(handler))

	require.NotNil(t, logger)
	require.NotNil(t, logger.logger)
}

func TestNewSlogDefault(t *testing.T) {
	logger := NewSlogDefault()

	require.NotNil(t, logger)
	require.NotNil(t, logger.logger)
}

func TestSlogLogger_Levels(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewSlogText(buf, slog.LevelDebug)

	logger.Debug("debug message", "strategy", "greedy")
	logger.Info("info message", "machines", 2)
	logger.Warn("warn message", "tasks", 12)
	logger.Error("error message", "error", "no solution found")

	output := buf.String()
	assert.Contains(t, output, "level=DEBUG")
	assert.Contains(t, output, "strategy=greedy")
	assert.Contains(t, output, "level=INFO")
	assert.Contains(t, output, "machines=2")
	assert.Contains(t, output, "level=WARN")
	assert.Contains(t, output, "tasks=12")
	assert.Contains(t, output, "level=ERROR")
	assert.Contains(t, output, `error="no solution found"`)
}

func TestSlogLogger_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewSlogText(buf, slog.LevelWarn)

	// Debug and Info should be filtered out
	logger.Debug("debug message")
	logger.Info("info message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")

	logger.Warn("warn message")
	logger.Error("error message")

	output = buf.String()
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestSlogLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewSlogText(buf, slog.LevelInfo).With("component", "solver")

	logger.Info("solved", "makespan", 10)

	output := buf.String()
	assert.Contains(t, output, "component=solver")
	assert.Contains(t, output, "makespan=10")
}

func TestNopLogger(t *testing.T) {
	logger := NewNop()

	require.NotPanics(t, func() {
		logger.Debug("test message", "key", "value")
		logger.Info("test message", "key", "value")
		logger.Warn("test message", "key", "value")
		logger.Error("test message", "key", "value")
		logger.Fatal("test message", "key", "value") // Should NOT exit
		logger.Info("")
		logger.Info("odd", "key")
	})
}

func TestFormatKeyValues(t *testing.T) {
	require.Equal(t, "", formatKeyValues(nil))
	require.Equal(t, "a=1 b=two", formatKeyValues([]any{"a", 1, "b", "two"}))
	require.Equal(t, "a=1 dangling=<missing>", formatKeyValues([]any{"a", 1, "dangling"}))
}

func TestTestLogger(t *testing.T) {
	logger := NewTest(t)

	require.NotPanics(t, func() {
		logger.Debug("debug", "k", 1)
		logger.Info("info")
		logger.Warn("warn", "k")
		logger.Error("error", "k", "v")
	})
}
