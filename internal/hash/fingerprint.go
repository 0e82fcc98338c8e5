package hash

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"

	"github.com/arloliu/tasksplit/types"
)

// Fingerprint returns a stable 64-bit identity for a partitioning request.
//
// The hash covers the strategy name, the machine count and the ordered
// (ID, Duration) sequence of tasks. Task order is part of the identity because
// both partitioners break ties by input order.
//
// Parameters:
//   - strategy: Strategy name
//   - machines: Machine count
//   - tasks: Tasks in input order
//
// Returns:
//   - uint64: xxh3 fingerprint
func Fingerprint(strategy string, machines int, tasks []types.Task) uint64 {
	h := xxh3.New()
	_, _ = h.WriteString(strategy)

	var b [16]byte
	binary.LittleEndian.PutUint64(b[:8], uint64(int64(machines)))   //nolint:gosec // sign bits kept verbatim
	binary.LittleEndian.PutUint64(b[8:], uint64(int64(len(tasks)))) //nolint:gosec
	_, _ = h.Write(b[:])

	for _, task := range tasks {
		binary.LittleEndian.PutUint64(b[:8], uint64(int64(task.ID))) //nolint:gosec
		binary.LittleEndian.PutUint64(b[8:], math.Float64bits(task.Duration))
		_, _ = h.Write(b[:])
	}

	return h.Sum64()
}
