package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tasksplit"
)

func TestCodeFor(t *testing.T) {
	require.Equal(t, CodeUnknownStrategy, codeFor(fmt.Errorf("x: %w", tasksplit.ErrUnknownStrategy)))
	require.Equal(t, CodeInvalidConfiguration, codeFor(tasksplit.ErrInvalidConfiguration))
	require.Equal(t, CodeTooManyTasks, codeFor(tasksplit.ErrTooManyTasks))
	require.Equal(t, CodeNoSolution, codeFor(tasksplit.ErrNoSolutionFound))
	require.Equal(t, CodeTimeout, codeFor(context.DeadlineExceeded))
	require.Equal(t, CodeBusy, codeFor(tasksplit.ErrServiceBusy))
	require.Equal(t, CodeInternal, codeFor(errors.New("boom")))
}

func TestReplyError(t *testing.T) {
	require.NoError(t, replyError(&SolveReply{}))

	err := replyError(&SolveReply{Code: CodeTooManyTasks, Error: "exhaustive: too many"})
	require.ErrorIs(t, err, tasksplit.ErrTooManyTasks)
	require.Contains(t, err.Error(), "exhaustive: too many")

	err = replyError(&SolveReply{Code: CodeInternal, Error: "boom"})
	require.EqualError(t, err, "solver error (internal): boom")
}

func TestSolveSubject(t *testing.T) {
	require.Equal(t, "kitchen.solve", SolveSubject("kitchen"))
}
