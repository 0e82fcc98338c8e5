package source

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/tasksplit/types"
)

// Machine describes one machine of an instance.
type Machine struct {
	// Name is a display label, e.g. "Oven".
	Name string `yaml:"name" json:"name"`

	// Rate is the machine speed factor. Zero means 1.0.
	Rate float64 `yaml:"rate" json:"rate"`
}

// Instance is one partitioning puzzle: machines plus the tasks to spread over them.
type Instance struct {
	Name     string       `yaml:"name" json:"name"`
	Machines []Machine    `yaml:"machines" json:"machines"`
	Tasks    []types.Task `yaml:"tasks" json:"tasks"`
}

// Rates returns the speed factor of each machine, mapping unset rates to 1.
func (in *Instance) Rates() []float64 {
	rates := make([]float64, len(in.Machines))
	for i, m := range in.Machines {
		rates[i] = m.Rate
		if rates[i] == 0 {
			rates[i] = 1
		}
	}

	return rates
}

// ParseInstance decodes a YAML instance document.
//
// Unknown fields are rejected and an empty document is an error. Task
// durations are not validated.
//
// Returns:
//   - *Instance: Decoded instance
//   - error: Wraps types.ErrInvalidInstance on decode failure
func ParseInstance(data []byte) (*Instance, error) {
	var in Instance

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrInvalidInstance, err)
	}

	return &in, nil
}

// File implements a task source backed by a YAML instance file.
//
// The file is read on every call, so edits are picked up without a restart.
//
// Example file:
//
//	name: kitchen-1
//	machines:
//	  - {name: Oven, rate: 1}
//	  - {name: Hob, rate: 1.5}
//	tasks:
//	  - {id: 0, duration: 10}
//	  - {id: 1, duration: 7}
//	  - {id: 2, duration: 3}
type File struct {
	path string
}

var _ types.TaskSource = (*File)(nil)

// NewFile creates a task source reading the instance at path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the instance file path.
func (f *File) Path() string {
	return f.path
}

// ListTasks reads the instance file and returns its tasks.
func (f *File) ListTasks(ctx context.Context) ([]types.Task, error) {
	in, err := f.Instance(ctx)
	if err != nil {
		return nil, err
	}

	return in.Tasks, nil
}

// Instance reads and decodes the whole instance file.
//
// Returns:
//   - *Instance: Decoded instance
//   - error: Read error, context error, or a wrapped types.ErrInvalidInstance
func (f *File) Instance(ctx context.Context) (*Instance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read instance %s: %w", f.path, err)
	}

	in, err := ParseInstance(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.path, err)
	}

	return in, nil
}
