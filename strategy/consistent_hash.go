package strategy

import (
	"fmt"

	"github.com/arloliu/tasksplit/internal/hash"
	"github.com/arloliu/tasksplit/types"
)

const defaultVirtualNodes = 150

// ConsistentHash implements consistent hashing of task IDs onto machines.
type ConsistentHash struct {
	virtualNodes int
	hashSeed     uint64
}

var _ types.Partitioner = (*ConsistentHash)(nil)

// ConsistentHashOption configures a ConsistentHash strategy.
type ConsistentHashOption func(*ConsistentHash)

// NewConsistentHash creates a new consistent hash strategy.
//
// The strategy places each task on the machine owning its ID on a hash ring
// with virtual nodes. Placement depends only on the task ID and the machine
// count, so the same task stays put when unrelated tasks come and go.
//
// Parameters:
//   - opts: Optional configuration (WithVirtualNodes, WithHashSeed)
//
// Returns:
//   - *ConsistentHash: Initialized consistent hash strategy
//
// Example:
//
//	strat := strategy.NewConsistentHash(
//	    strategy.WithVirtualNodes(300),
//	)
func NewConsistentHash(opts ...ConsistentHashOption) *ConsistentHash {
	ch := &ConsistentHash{
		virtualNodes: defaultVirtualNodes,
		hashSeed:     0,
	}

	for _, opt := range opts {
		opt(ch)
	}

	if ch.virtualNodes < 1 {
		ch.virtualNodes = 1
	}

	return ch
}

// WithVirtualNodes sets the number of virtual nodes per machine.
//
// Higher values provide better distribution but increase ring size.
// Recommended range: 100-300 (default: 150).
func WithVirtualNodes(nodes int) ConsistentHashOption {
	return func(ch *ConsistentHash) {
		ch.virtualNodes = nodes
	}
}

// WithHashSeed sets a custom hash seed for the ring.
func WithHashSeed(seed uint64) ConsistentHashOption {
	return func(ch *ConsistentHash) {
		ch.hashSeed = seed
	}
}

// Partition places tasks using consistent hashing.
//
// The algorithm:
//  1. Build a hash ring with virtual nodes for each machine index
//  2. Hash each task ID and walk clockwise to the nearest virtual node
//  3. Append the task to that machine's bucket, keeping input order
//
// Parameters:
//   - tasks: Tasks to assign (not modified)
//   - machines: Number of machines, must be >= 1
//
// Returns:
//   - types.Result: Partition and per-machine sums
//   - error: types.ErrInvalidConfiguration if machines < 1
func (ch *ConsistentHash) Partition(tasks []types.Task, machines int) (types.Result, error) {
	if err := checkMachines(NameConsistentHash, machines); err != nil {
		return types.Result{}, err
	}

	ring := hash.NewRing(machines, ch.virtualNodes, ch.hashSeed)
	partition := types.NewPartition(machines)

	for _, task := range tasks {
		m := ring.MachineFor(task)
		if m < 0 {
			// This shouldn't happen once machines >= 1
			return types.Result{}, fmt.Errorf("%s: ring returned no machine for task %d", NameConsistentHash, task.ID)
		}
		partition[m] = append(partition[m], task)
	}

	return types.NewResult(partition), nil
}
