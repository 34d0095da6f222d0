package doublestack

import (
	"github.com/i5heu/GoQueueRace/pkg/queue"
)

// DoubleStackQueue realizes FIFO order with two stacks. Enqueue pushes onto
// right; Dequeue pops from left, refilling it from right (reversed) only when
// left is empty. Each element is moved at most once, so both operations are
// amortized O(1).
//
// Invariant: reverse(left) ++ right is the front-to-back order.
type DoubleStackQueue[T any] struct {
	left     []T
	right    []T
	capacity int // 0 means unbounded
}

// New creates an unbounded DoubleStackQueue.
func New[T any]() *DoubleStackQueue[T] {
	return &DoubleStackQueue[T]{}
}

// NewBounded creates a DoubleStackQueue holding at most capacity elements.
func NewBounded[T any](capacity int) (*DoubleStackQueue[T], error) {
	if err := queue.CheckCapacity(capacity); err != nil {
		return nil, err
	}
	return &DoubleStackQueue[T]{capacity: capacity}, nil
}

func (q *DoubleStackQueue[T]) Enqueue(val T) error {
	if q.capacity > 0 && q.Count() >= q.capacity {
		return queue.ErrCapacityExceeded
	}
	q.right = append(q.right, val)
	return nil
}

func (q *DoubleStackQueue[T]) Dequeue() (T, bool) {
	var zero T
	if len(q.left) == 0 {
		q.transfer()
	}
	n := len(q.left)
	if n == 0 {
		return zero, false
	}
	val := q.left[n-1]
	q.left[n-1] = zero
	q.left = q.left[:n-1]
	return val, true
}

// transfer moves right into left in reverse, consuming right.
func (q *DoubleStackQueue[T]) transfer() {
	for i := len(q.right) - 1; i >= 0; i-- {
		q.left = append(q.left, q.right[i])
	}
	clear(q.right)
	q.right = q.right[:0]
}

// Peek returns the top of left if any, otherwise the bottom of right.
// It never transfers.
func (q *DoubleStackQueue[T]) Peek() (T, bool) {
	if n := len(q.left); n > 0 {
		return q.left[n-1], true
	}
	if len(q.right) > 0 {
		return q.right[0], true
	}
	var zero T
	return zero, false
}

func (q *DoubleStackQueue[T]) Count() int    { return len(q.left) + len(q.right) }
func (q *DoubleStackQueue[T]) IsEmpty() bool { return len(q.left) == 0 && len(q.right) == 0 }

func (q *DoubleStackQueue[T]) Clear() {
	clear(q.left)
	clear(q.right)
	q.left = q.left[:0]
	q.right = q.right[:0]
}

// Capacity returns the bound and whether one is set.
func (q *DoubleStackQueue[T]) Capacity() (int, bool) {
	return q.capacity, q.capacity > 0
}

// Values returns reverse(left) ++ right.
func (q *DoubleStackQueue[T]) Values() []T {
	out := make([]T, 0, q.Count())
	for i := len(q.left) - 1; i >= 0; i-- {
		out = append(out, q.left[i])
	}
	return append(out, q.right...)
}

func (q *DoubleStackQueue[T]) String() string {
	return queue.Format(q.Values())
}

var _ queue.Queue[int] = (*DoubleStackQueue[int])(nil)
