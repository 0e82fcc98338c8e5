package types

import "errors"

// Sentinel errors for the tasksplit library.
//
// These errors provide type-safe error checking using errors.Is().
// Components wrap them with context using fmt.Errorf("%s: %w", msg, err).

// Partitioning errors - returned by the partitioners.
var (
	// ErrInvalidConfiguration is returned when a partitioner is asked to use fewer than one machine.
	ErrInvalidConfiguration = errors.New("invalid configuration: at least one machine is required")

	// ErrNoSolutionFound is returned when the exhaustive search finishes without scoring any assignment.
	ErrNoSolutionFound = errors.New("no solution found")

	// ErrTooManyTasks is returned when an instance exceeds the exhaustive search task ceiling.
	ErrTooManyTasks = errors.New("too many tasks for exhaustive search")
)

// Solver errors - returned by the Solver facade and its helpers.
var (
	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownStrategy is returned when a strategy name is not registered.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrInvalidRates is returned when machine rates are missing, misaligned or non-positive.
	ErrInvalidRates = errors.New("invalid machine rates")

	// ErrInvalidInstance is returned when an instance file cannot be decoded.
	ErrInvalidInstance = errors.New("invalid instance")
)

// Service errors - returned by the NATS solver service.
var (
	// ErrAlreadyStarted is returned when Start is called on a running service.
	ErrAlreadyStarted = errors.New("service already started")

	// ErrNotStarted is returned when Stop is called on a service that was never started.
	ErrNotStarted = errors.New("service not started")

	// ErrNATSConnectionRequired is returned when a NATS connection is nil.
	ErrNATSConnectionRequired = errors.New("NATS connection is required")

	// ErrPublishFailed is returned when writing a solution to the KV bucket fails.
	ErrPublishFailed = errors.New("failed to publish solution")

	// ErrServiceUnavailable is returned by the client when no solver service can be reached.
	ErrServiceUnavailable = errors.New("solver service unavailable")

	// ErrServiceBusy is returned when a request cannot get a slot under the service rate limit.
	ErrServiceBusy = errors.New("solver service busy")
)
