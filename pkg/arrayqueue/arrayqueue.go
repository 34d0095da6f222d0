package arrayqueue

import (
	"github.com/i5heu/GoQueueRace/pkg/queue"
)

// ArrayQueue is the baseline queue: a single growable slice in insertion order.
// Enqueue is amortized O(1); Dequeue shifts every remaining element and is O(n).
type ArrayQueue[T any] struct {
	items    []T
	capacity int // 0 means unbounded
}

// New creates an unbounded ArrayQueue.
func New[T any]() *ArrayQueue[T] {
	return &ArrayQueue[T]{}
}

// NewBounded creates an ArrayQueue holding at most capacity elements.
func NewBounded[T any](capacity int) (*ArrayQueue[T], error) {
	if err := queue.CheckCapacity(capacity); err != nil {
		return nil, err
	}
	return &ArrayQueue[T]{
		items:    make([]T, 0, capacity),
		capacity: capacity,
	}, nil
}

func (q *ArrayQueue[T]) Enqueue(val T) error {
	if q.capacity > 0 && len(q.items) >= q.capacity {
		return queue.ErrCapacityExceeded
	}
	q.items = append(q.items, val)
	return nil
}

func (q *ArrayQueue[T]) Dequeue() (T, bool) {
	var zero T
	n := len(q.items)
	if n == 0 {
		return zero, false
	}
	val := q.items[0]
	copy(q.items, q.items[1:])
	// Drop the duplicated tail reference so it can be collected.
	q.items[n-1] = zero
	q.items = q.items[:n-1]
	return val, true
}

func (q *ArrayQueue[T]) Peek() (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.items[0], true
}

func (q *ArrayQueue[T]) Count() int {
	return len(q.items)
}

func (q *ArrayQueue[T]) IsEmpty() bool {
	return len(q.items) == 0
}

func (q *ArrayQueue[T]) Clear() {
	clear(q.items)
	q.items = q.items[:0]
}

// Capacity returns the bound and whether one is set.
func (q *ArrayQueue[T]) Capacity() (int, bool) {
	return q.capacity, q.capacity > 0
}

// Values returns a copy of the queued elements, front first.
func (q *ArrayQueue[T]) Values() []T {
	out := make([]T, len(q.items))
	copy(out, q.items)
	return out
}

func (q *ArrayQueue[T]) String() string {
	return queue.Format(q.items)
}

var _ queue.Queue[int] = (*ArrayQueue[int])(nil)
