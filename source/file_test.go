package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arloliu/tasksplit/types"
	"github.com/stretchr/testify/require"
)

const kitchenYAML = `
name: kitchen-1
machines:
  - name: Oven
    rate: 1
  - name: Hob
    rate: 1.5
  - name: Grill
tasks:
  - {id: 0, duration: 10}
  - {id: 1, duration: 7}
  - {id: 2, duration: 3}
`

func writeInstance(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "instance.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestFile_Instance(t *testing.T) {
	src := NewFile(writeInstance(t, kitchenYAML))

	in, err := src.Instance(context.Background())

	require.NoError(t, err)
	require.Equal(t, "kitchen-1", in.Name)
	require.Len(t, in.Machines, 3)
	require.Equal(t, "Hob", in.Machines[1].Name)
	require.Equal(t, []float64{1, 1.5, 1}, in.Rates())
	require.Equal(t, []types.Task{{ID: 0, Duration: 10}, {ID: 1, Duration: 7}, {ID: 2, Duration: 3}}, in.Tasks)
}

func TestFile_ListTasks(t *testing.T) {
	path := writeInstance(t, kitchenYAML)
	src := NewFile(path)
	require.Equal(t, path, src.Path())

	tasks, err := src.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	t.Run("picks up edits", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("tasks: [{id: 9, duration: 1}]\n"), 0o600))

		tasks, err := src.ListTasks(context.Background())

		require.NoError(t, err)
		require.Equal(t, []types.Task{{ID: 9, Duration: 1}}, tasks)
	})
}

func TestFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewFile(filepath.Join(t.TempDir(), "nope.yaml")).ListTasks(context.Background())

		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := NewFile(writeInstance(t, "tasks: [")).Instance(context.Background())

		require.ErrorIs(t, err, types.ErrInvalidInstance)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := NewFile(writeInstance(t, "workers: 3\n")).Instance(context.Background())

		require.ErrorIs(t, err, types.ErrInvalidInstance)
	})

	t.Run("empty document", func(t *testing.T) {
		_, err := ParseInstance(nil)

		require.ErrorIs(t, err, types.ErrInvalidInstance)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewFile(writeInstance(t, kitchenYAML)).Instance(ctx)

		require.ErrorIs(t, err, context.Canceled)
	})
}
