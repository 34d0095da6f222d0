// Package queue defines the FIFO contract shared by every queue implementation
// in this module. Implementations are not safe for concurrent mutation; an
// instance must be owned by a single goroutine unless externally synchronized.
package queue

import "errors"

var (
	// ErrCapacityExceeded is returned by Enqueue on a bounded queue that is full.
	// The queue is left unchanged.
	ErrCapacityExceeded = errors.New("queue: capacity exceeded")

	// ErrInvalidCapacity is returned by bounded constructors when capacity <= 0.
	ErrInvalidCapacity = errors.New("queue: capacity must be greater than zero")
)

// Queue is the capability set every implementation provides.
type Queue[T any] interface {
	// Enqueue adds an element at the back.
	// It returns ErrCapacityExceeded if a bound is set and Count() == capacity.
	Enqueue(T) error

	// Dequeue removes and returns the front element.
	// If the queue is empty it returns the zero T and false.
	Dequeue() (T, bool)

	// Peek returns the front element without removing it.
	Peek() (T, bool)

	// Count returns how many elements are currently queued.
	Count() int

	// IsEmpty reports whether Count() == 0.
	IsEmpty() bool

	// Clear removes every element. The capacity bound is not affected.
	Clear()
}

// Bounded is implemented by queues that may carry a fixed capacity.
// ok is false for unbounded instances.
type Bounded interface {
	Capacity() (capacity int, ok bool)
}

// CheckCapacity validates a capacity passed to a bounded constructor.
func CheckCapacity(capacity int) error {
	if capacity <= 0 {
		return ErrInvalidCapacity
	}
	return nil
}
