// Package source provides built-in task source implementations.
//
// Task sources supply the tasks of one partitioning instance.
// The package includes:
//
//   - Static: Fixed in-memory list of tasks
//   - File: YAML instance file with machines, rates and tasks
//
// Custom sources can be implemented by satisfying the types.TaskSource interface.
package source
