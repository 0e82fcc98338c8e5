package strategy

import (
	"fmt"

	"github.com/arloliu/tasksplit/types"
)

// Strategy names used for registration and reporting.
const (
	NameGreedy         = "greedy"
	NameExhaustive     = "exhaustive"
	NameRoundRobin     = "round-robin"
	NameConsistentHash = "consistent-hash"
)

// checkMachines rejects machine counts below one before any work begins.
func checkMachines(name string, machines int) error {
	if machines < 1 {
		return fmt.Errorf("%s: %w (machines=%d)", name, types.ErrInvalidConfiguration, machines)
	}

	return nil
}
