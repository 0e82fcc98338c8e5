// Package hash provides xxh3-based hashing helpers: a consistent hash ring over
// machine indexes and stable fingerprints of partitioning instances.
package hash

import (
	"encoding/binary"
	"slices"

	"github.com/zeebo/xxh3"

	"github.com/arloliu/tasksplit/types"
)

// Ring implements a consistent hash ring with virtual nodes.
//
// The ring maps task IDs to machine indexes. Adding a machine only moves the
// tasks whose IDs land on the new machine's virtual nodes.
type Ring struct {
	// nodes contains all virtual nodes on the ring, sorted by hash
	nodes []virtualNode

	machines int

	// seed for hash function (0 means no seed)
	seed uint64
}

// virtualNode represents a virtual node on the hash ring.
type virtualNode struct {
	hash    uint64 // Position on the ring
	machine int    // Machine owning this virtual node
}

// NewRing creates a new consistent hash ring.
//
// Parameters:
//   - machines: Number of machines placed on the ring (indexes 0..machines-1)
//   - virtualNodesPerMachine: Number of virtual nodes per machine (higher = better distribution)
//   - seed: Seed for the hash function (0 uses the unseeded hash)
//
// Returns:
//   - *Ring: Initialized hash ring
//
// Example:
//
//	ring := hash.NewRing(3, 150, 0)
//	machine := ring.MachineFor(task)
func NewRing(machines int, virtualNodesPerMachine int, seed uint64) *Ring {
	if machines < 0 {
		machines = 0
	}
	if virtualNodesPerMachine < 1 {
		virtualNodesPerMachine = 1
	}

	ring := &Ring{
		nodes:    make([]virtualNode, 0, machines*virtualNodesPerMachine),
		machines: machines,
		seed:     seed,
	}

	for m := range machines {
		ring.addMachine(m, virtualNodesPerMachine)
	}

	slices.SortFunc(ring.nodes, func(a, b virtualNode) int {
		if a.hash < b.hash {
			return -1
		}
		if a.hash > b.hash {
			return 1
		}

		// Equal hashes are broken by machine index to keep the order stable.
		return a.machine - b.machine
	})

	return ring
}

// Machines returns the number of machines on the ring.
func (r *Ring) Machines() int {
	return r.machines
}

// Size returns the total number of virtual nodes on the ring.
func (r *Ring) Size() int {
	return len(r.nodes)
}

// MachineFor returns the machine responsible for the task, or -1 for an empty ring.
//
// The task ID is hashed with Task.HashIDSeed and matched to the first virtual
// node clockwise from that position.
func (r *Ring) MachineFor(task types.Task) int {
	if len(r.nodes) == 0 {
		return -1
	}

	return r.machineByHash(task.HashIDSeed(r.seed))
}

// addMachine adds virtual nodes for one machine.
func (r *Ring) addMachine(machine int, virtualNodes int) {
	var mb [8]byte
	binary.LittleEndian.PutUint64(mb[:], uint64(machine)) //nolint:gosec // machine index is non-negative

	var base uint64
	if r.seed != 0 {
		base = xxh3.HashSeed(mb[:], r.seed)
	} else {
		base = xxh3.Hash(mb[:])
	}

	// Fold the vnode index using the machine hash as seed for stable distribution.
	for i := range virtualNodes {
		var ib [8]byte
		binary.LittleEndian.PutUint64(ib[:], uint64(i)) //nolint:gosec
		r.nodes = append(r.nodes, virtualNode{
			hash:    xxh3.HashSeed(ib[:], base),
			machine: machine,
		})
	}
}

// machineByHash returns the machine of the first node whose hash is >= target,
// wrapping around to the first node.
func (r *Ring) machineByHash(target uint64) int {
	idx, _ := slices.BinarySearchFunc(r.nodes, target, func(node virtualNode, t uint64) int {
		if node.hash < t {
			return -1
		}
		if node.hash > t {
			return 1
		}

		return 0
	})

	if idx >= len(r.nodes) {
		idx = 0
	}

	return r.nodes[idx].machine
}
