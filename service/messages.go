package service

import (
	"errors"
	"fmt"

	"github.com/arloliu/tasksplit"
	"github.com/arloliu/tasksplit/internal/natsutil"
	"github.com/arloliu/tasksplit/types"
)

// SolveRequest asks a solver to partition tasks.
type SolveRequest struct {
	Strategy string       `json:"strategy"`
	Machines int          `json:"machines"`
	Tasks    []types.Task `json:"tasks"`
}

// SolveReply carries a solution or an error code.
type SolveReply struct {
	Strategy   string          `json:"strategy"`
	Partition  types.Partition `json:"partition,omitempty"`
	Sums       []float64       `json:"sums,omitempty"`
	Makespan   float64         `json:"makespan"`
	Difference float64         `json:"difference"`
	Cached     bool            `json:"cached,omitempty"`

	// Server is the ID of the server instance that answered.
	Server string `json:"server,omitempty"`

	// Key is the solution's KV key when the server publishes solutions.
	Key string `json:"key,omitempty"`

	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

// Error codes carried in SolveReply.Code.
const (
	CodeBadRequest           = "bad_request"
	CodeUnknownStrategy      = "unknown_strategy"
	CodeInvalidConfiguration = "invalid_configuration"
	CodeTooManyTasks         = "too_many_tasks"
	CodeNoSolution           = "no_solution"
	CodeTimeout              = "timeout"
	CodeBusy                 = "busy"
	CodeInternal             = "internal"
)

// ErrBadRequest is returned when a request body cannot be decoded.
var ErrBadRequest = errors.New("bad request")

var codeErrors = []struct {
	code string
	err  error
}{
	{CodeUnknownStrategy, tasksplit.ErrUnknownStrategy},
	{CodeInvalidConfiguration, tasksplit.ErrInvalidConfiguration},
	{CodeTooManyTasks, tasksplit.ErrTooManyTasks},
	{CodeNoSolution, tasksplit.ErrNoSolutionFound},
	{CodeBadRequest, ErrBadRequest},
	{CodeBusy, types.ErrServiceBusy},
}

// SolveSubject returns the request subject for a subject prefix.
func SolveSubject(prefix string) string {
	return prefix + ".solve"
}

// codeFor maps an error to its wire code.
func codeFor(err error) string {
	for _, ce := range codeErrors {
		if errors.Is(err, ce.err) {
			return ce.code
		}
	}

	if natsutil.IsTimeout(err) {
		return CodeTimeout
	}

	return CodeInternal
}

// replyError rebuilds a Go error from a reply, wrapping the sentinel of its code.
func replyError(reply *SolveReply) error {
	if reply.Code == "" && reply.Error == "" {
		return nil
	}

	for _, ce := range codeErrors {
		if ce.code == reply.Code {
			return fmt.Errorf("%w: %s", ce.err, reply.Error)
		}
	}

	return fmt.Errorf("solver error (%s): %s", reply.Code, reply.Error)
}

func newReply(sol *tasksplit.Solution) SolveReply {
	return SolveReply{
		Strategy:   sol.Strategy,
		Partition:  sol.Result.Partition,
		Sums:       sol.Result.Sums,
		Makespan:   sol.Makespan,
		Difference: sol.Difference,
		Cached:     sol.Cached,
	}
}
