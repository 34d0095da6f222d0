package ringbufferqueue

import (
	"errors"
	"fmt"

	"github.com/i5heu/GoQueueRace/pkg/queue"
	"github.com/i5heu/GoQueueRace/pkg/ringbuffer"
)

// RingBufferQueue is a fixed-capacity queue over a RingBuffer.
type RingBufferQueue[T any] struct {
	buf *ringbuffer.RingBuffer[T]
}

// New creates a RingBufferQueue with room for capacity elements.
func New[T any](capacity int) (*RingBufferQueue[T], error) {
	buf, err := ringbuffer.New[T](capacity)
	if err != nil {
		return nil, fmt.Errorf("ringbufferqueue: %w", err)
	}
	return &RingBufferQueue[T]{buf: buf}, nil
}

// Enqueue writes val to the buffer. A full buffer is reported as
// queue.ErrCapacityExceeded; any other buffer error is a bug and panics.
func (q *RingBufferQueue[T]) Enqueue(val T) error {
	err := q.buf.Write(val)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ringbuffer.ErrBufferFull):
		return queue.ErrCapacityExceeded
	default:
		// Unreachable: Write only fails with ErrBufferFull.
		panic(fmt.Sprintf("ringbufferqueue: unexpected error from RingBuffer.Write: %v", err))
	}
}

func (q *RingBufferQueue[T]) Dequeue() (T, bool) { return q.buf.Read() }
func (q *RingBufferQueue[T]) Peek() (T, bool)    { return q.buf.First() }
func (q *RingBufferQueue[T]) Count() int         { return q.buf.Count() }
func (q *RingBufferQueue[T]) IsEmpty() bool      { return q.buf.IsEmpty() }
func (q *RingBufferQueue[T]) Clear()             { q.buf.Clear() }
func (q *RingBufferQueue[T]) Values() []T        { return q.buf.Values() }
func (q *RingBufferQueue[T]) String() string     { return q.buf.String() }

// Capacity always reports a bound.
func (q *RingBufferQueue[T]) Capacity() (int, bool) {
	return q.buf.Cap(), true
}

var _ queue.Queue[int] = (*RingBufferQueue[int])(nil)
