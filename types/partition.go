package types

import (
	"encoding/binary"
	"slices"

	"github.com/zeebo/xxh3"
)

// Task represents a unit of work to be placed on a machine.
//
// ID is used for identity only and carries no ordering meaning. Duration is the
// amount of work in minutes and must be non-negative.
type Task struct {
	// ID uniquely identifies the task within one partitioning call.
	ID int `json:"id" yaml:"id"`

	// Duration is the processing time of the task in minutes.
	Duration float64 `json:"duration" yaml:"duration"`
}

// HashIDSeed returns the xxh3 hash of the task ID folded with seed.
//
// The ID is hashed as its 8-byte little-endian representation so the result is
// stable across platforms. A zero seed uses the unseeded hash.
func (t Task) HashIDSeed(seed uint64) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(int64(t.ID))) //nolint:gosec // sign bits are kept verbatim

	if seed == 0 {
		return xxh3.Hash(b[:])
	}

	return xxh3.HashSeed(b[:], seed)
}

// Partition holds the tasks assigned to each machine.
//
// Bucket i contains the tasks of machine i in insertion order. A valid
// partition has exactly one bucket per machine and every input task appears
// in exactly one bucket.
type Partition [][]Task

// NewPartition creates a partition with the given number of empty buckets.
//
// Parameters:
//   - machines: Number of buckets (negative values yield an empty partition)
//
// Returns:
//   - Partition: Partition with non-nil empty buckets
func NewPartition(machines int) Partition {
	if machines < 0 {
		machines = 0
	}

	p := make(Partition, machines)
	for i := range p {
		p[i] = []Task{}
	}

	return p
}

// Clone returns a deep copy of the partition.
//
// Every bucket is copied into an independent slice so later appends or
// truncations on the receiver never show through the copy.
func (p Partition) Clone() Partition {
	if p == nil {
		return nil
	}

	out := make(Partition, len(p))
	for i, bucket := range p {
		out[i] = append(make([]Task, 0, len(bucket)), bucket...)
	}

	return out
}

// Tasks returns all tasks of the partition, bucket by bucket.
func (p Partition) Tasks() []Task {
	n := 0
	for _, bucket := range p {
		n += len(bucket)
	}

	out := make([]Task, 0, n)
	for _, bucket := range p {
		out = append(out, bucket...)
	}

	return out
}

// Sums returns the total duration of each bucket.
func (p Partition) Sums() []float64 {
	return PartitionSums(p)
}

// PartitionSums computes the per-bucket duration totals of a partition.
//
// Sums are always derived from the buckets; callers must not keep a separate
// running total as the source of truth.
//
// Parameters:
//   - p: Partition to sum
//
// Returns:
//   - []float64: One total per bucket, index-aligned with p
func PartitionSums(p Partition) []float64 {
	sums := make([]float64, len(p))
	for i, bucket := range p {
		for _, task := range bucket {
			sums[i] += task.Duration
		}
	}

	return sums
}

// Makespan returns the largest value in sums, or 0 when sums is empty.
func Makespan(sums []float64) float64 {
	if len(sums) == 0 {
		return 0
	}

	return slices.Max(sums)
}

// Difference returns max(sums) - min(sums), or 0 when sums is empty.
//
// This spread between the busiest and the least busy machine is the objective
// minimized by the exhaustive search.
func Difference(sums []float64) float64 {
	if len(sums) == 0 {
		return 0
	}

	return slices.Max(sums) - slices.Min(sums)
}

// Result is the outcome of a partitioning call.
type Result struct {
	// Partition is the task assignment, one bucket per machine.
	Partition Partition `json:"partition"`

	// Sums holds the total duration of each bucket, index-aligned with Partition.
	Sums []float64 `json:"sums"`
}

// NewResult builds a Result whose sums are derived from p.
func NewResult(p Partition) Result {
	return Result{Partition: p, Sums: PartitionSums(p)}
}

// Machines returns the number of buckets in the result.
func (r Result) Machines() int {
	return len(r.Partition)
}

// Makespan returns the maximum per-machine total of the result.
func (r Result) Makespan() float64 {
	return Makespan(r.Sums)
}

// Difference returns the spread between the largest and smallest machine totals.
func (r Result) Difference() float64 {
	return Difference(r.Sums)
}

// Clone returns a deep copy of the result.
func (r Result) Clone() Result {
	return Result{
		Partition: r.Partition.Clone(),
		Sums:      slices.Clone(r.Sums),
	}
}
