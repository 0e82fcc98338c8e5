package tasksplit

import "github.com/arloliu/tasksplit/types"

// Sentinel errors re-exported from the types package.
//
// Check them with errors.Is; every error returned by this module wraps one of
// these with added context.
var (
	// ErrInvalidConfiguration is returned when a partitioner is asked to use fewer than one machine.
	ErrInvalidConfiguration = types.ErrInvalidConfiguration

	// ErrNoSolutionFound is returned when the exhaustive search scores no assignment.
	ErrNoSolutionFound = types.ErrNoSolutionFound

	// ErrTooManyTasks is returned when an instance exceeds MaxExhaustiveTasks.
	ErrTooManyTasks = types.ErrTooManyTasks

	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrUnknownStrategy is returned when a strategy name is not registered.
	ErrUnknownStrategy = types.ErrUnknownStrategy

	// ErrInvalidRates is returned when machine rates are missing, misaligned or non-positive.
	ErrInvalidRates = types.ErrInvalidRates

	// ErrInvalidInstance is returned when an instance file cannot be decoded.
	ErrInvalidInstance = types.ErrInvalidInstance

	// ErrAlreadyStarted is returned when Start is called on a running service.
	ErrAlreadyStarted = types.ErrAlreadyStarted

	// ErrNotStarted is returned when Stop is called on a service that was never started.
	ErrNotStarted = types.ErrNotStarted

	// ErrNATSConnectionRequired is returned when a NATS connection is nil.
	ErrNATSConnectionRequired = types.ErrNATSConnectionRequired

	// ErrPublishFailed is returned when writing a solution to the KV bucket fails.
	ErrPublishFailed = types.ErrPublishFailed

	// ErrServiceUnavailable is returned by the client when no solver service can be reached.
	ErrServiceUnavailable = types.ErrServiceUnavailable

	// ErrServiceBusy is returned when a request cannot get a slot under the service rate limit.
	ErrServiceBusy = types.ErrServiceBusy
)
