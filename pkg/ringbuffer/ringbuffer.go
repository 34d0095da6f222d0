// Package ringbuffer provides fixed-capacity circular storage addressed by two
// monotonically increasing counters. Fullness and emptiness are derived from
// the counter difference, so no slot is sacrificed to tell them apart.
package ringbuffer

import (
	"errors"

	"github.com/i5heu/GoQueueRace/pkg/queue"
)

// ErrBufferFull is returned by Write when every slot is occupied.
var ErrBufferFull = errors.New("ringbuffer: buffer full")

// rebaseThreshold is the read counter value at which both counters are
// lowered by a common multiple of the capacity.
const rebaseThreshold = uint64(1) << 62

// RingBuffer stores up to len(slots) elements.
// Invariant: readIndex <= writeIndex and writeIndex-readIndex <= len(slots).
type RingBuffer[T any] struct {
	slots      []T
	capacity   uint64
	readIndex  uint64
	writeIndex uint64
}

// New creates a RingBuffer with the given capacity.
func New[T any](capacity int) (*RingBuffer[T], error) {
	if err := queue.CheckCapacity(capacity); err != nil {
		return nil, err
	}
	return &RingBuffer[T]{
		slots:    make([]T, capacity),
		capacity: uint64(capacity),
	}, nil
}

// Write stores val at the logical back. It returns ErrBufferFull when full.
func (r *RingBuffer[T]) Write(val T) error {
	if r.IsFull() {
		return ErrBufferFull
	}
	r.slots[r.writeIndex%r.capacity] = val
	r.writeIndex++
	return nil
}

// Read removes and returns the oldest element.
func (r *RingBuffer[T]) Read() (T, bool) {
	var zero T
	if r.IsEmpty() {
		return zero, false
	}
	slot := r.readIndex % r.capacity
	val := r.slots[slot]
	r.slots[slot] = zero
	r.readIndex++
	if r.readIndex >= rebaseThreshold {
		r.rebase()
	}
	return val, true
}

// rebase lowers both counters by the same multiple of capacity so physical
// slot positions stay where they are.
func (r *RingBuffer[T]) rebase() {
	shift := (r.readIndex / r.capacity) * r.capacity
	r.readIndex -= shift
	r.writeIndex -= shift
}

// First returns the oldest element without removing it.
func (r *RingBuffer[T]) First() (T, bool) {
	if r.IsEmpty() {
		var zero T
		return zero, false
	}
	return r.slots[r.readIndex%r.capacity], true
}

// Clear zeroes both counters and every slot.
func (r *RingBuffer[T]) Clear() {
	clear(r.slots)
	r.readIndex = 0
	r.writeIndex = 0
}

func (r *RingBuffer[T]) Count() int    { return int(r.writeIndex - r.readIndex) }
func (r *RingBuffer[T]) Cap() int      { return int(r.capacity) }
func (r *RingBuffer[T]) IsEmpty() bool { return r.writeIndex == r.readIndex }
func (r *RingBuffer[T]) IsFull() bool  { return r.writeIndex-r.readIndex == r.capacity }

// Values returns the buffered elements, oldest first.
func (r *RingBuffer[T]) Values() []T {
	out := make([]T, 0, r.Count())
	for i := r.readIndex; i < r.writeIndex; i++ {
		out = append(out, r.slots[i%r.capacity])
	}
	return out
}

func (r *RingBuffer[T]) String() string {
	return queue.Format(r.Values())
}
