package linkedlistqueue

import (
	"github.com/i5heu/GoQueueRace/pkg/linkedlist"
	"github.com/i5heu/GoQueueRace/pkg/queue"
)

// LinkedListQueue enqueues at the tail and dequeues at the head of a
// DoublyLinkedList, both in O(1).
type LinkedListQueue[T any] struct {
	list     *linkedlist.DoublyLinkedList[T]
	capacity int // 0 means unbounded
}

// New creates an unbounded LinkedListQueue.
func New[T any]() *LinkedListQueue[T] {
	return &LinkedListQueue[T]{list: linkedlist.New[T]()}
}

// NewBounded creates a LinkedListQueue holding at most capacity elements.
func NewBounded[T any](capacity int) (*LinkedListQueue[T], error) {
	if err := queue.CheckCapacity(capacity); err != nil {
		return nil, err
	}
	return &LinkedListQueue[T]{list: linkedlist.New[T](), capacity: capacity}, nil
}

func (q *LinkedListQueue[T]) Enqueue(val T) error {
	if q.capacity > 0 && q.list.Len() >= q.capacity {
		return queue.ErrCapacityExceeded
	}
	q.list.Append(val)
	return nil
}

func (q *LinkedListQueue[T]) Dequeue() (T, bool) {
	return q.list.RemoveFirst()
}

func (q *LinkedListQueue[T]) Peek() (T, bool) {
	head := q.list.First()
	if head == nil {
		var zero T
		return zero, false
	}
	return head.Value, true
}

func (q *LinkedListQueue[T]) Count() int     { return q.list.Len() }
func (q *LinkedListQueue[T]) IsEmpty() bool  { return q.list.IsEmpty() }
func (q *LinkedListQueue[T]) Clear()         { q.list.Clear() }
func (q *LinkedListQueue[T]) Values() []T    { return q.list.Values() }
func (q *LinkedListQueue[T]) String() string { return queue.Format(q.list.Values()) }

// Capacity returns the bound and whether one is set.
func (q *LinkedListQueue[T]) Capacity() (int, bool) {
	return q.capacity, q.capacity > 0
}

var _ queue.Queue[int] = (*LinkedListQueue[int])(nil)
