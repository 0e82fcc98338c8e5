package testing

import (
	"testing"

	"github.com/arloliu/tasksplit/internal/logging"
	"github.com/arloliu/tasksplit/types"
)

// NewTestLogger creates a logger that writes to the test log.
// Output only shows for failing tests or with go test -v.
func NewTestLogger(tb testing.TB) types.Logger {
	return logging.NewTest(tb)
}
