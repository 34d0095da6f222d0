// Package queuetest holds the behavioural suite every queue.Queue
// implementation must pass. Each implementation package runs it from its own
// tests with a Factory describing how to build instances.
package queuetest

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i5heu/GoQueueRace/pkg/queue"
)

// Factory builds instances of one implementation. NewUnbounded may be nil for
// implementations that are always bounded.
type Factory struct {
	Name         string
	NewUnbounded func() queue.Queue[string]
	NewBounded   func(capacity int) (queue.Queue[string], error)
}

// Run executes the whole suite as subtests of t.
func Run(t *testing.T, f Factory) {
	t.Helper()
	t.Run("EmptyOnCreation", func(t *testing.T) { testEmptyOnCreation(t, f) })
	t.Run("FIFOOrder", func(t *testing.T) { testFIFOOrder(t, f) })
	t.Run("PeekDoesNotMutate", func(t *testing.T) { testPeekDoesNotMutate(t, f) })
	t.Run("DequeueEmpty", func(t *testing.T) { testDequeueEmpty(t, f) })
	t.Run("ClearResets", func(t *testing.T) { testClearResets(t, f) })
	t.Run("CapacityScenario", func(t *testing.T) { testCapacityScenario(t, f) })
	t.Run("CapacityOneRefill", func(t *testing.T) { testCapacityOneRefill(t, f) })
	t.Run("ClearKeepsCapacity", func(t *testing.T) { testClearKeepsCapacity(t, f) })
	t.Run("InvalidCapacity", func(t *testing.T) { testInvalidCapacity(t, f) })
	t.Run("WrapAround", func(t *testing.T) { testWrapAround(t, f) })
	t.Run("InterleavedAgainstModel", func(t *testing.T) { testInterleavedAgainstModel(t, f) })
}

// newQueue prefers an unbounded instance; always-bounded implementations get
// room for size elements.
func newQueue(t *testing.T, f Factory, size int) queue.Queue[string] {
	t.Helper()
	if f.NewUnbounded != nil {
		return f.NewUnbounded()
	}
	q, err := f.NewBounded(size)
	require.NoError(t, err)
	return q
}

func newBounded(t *testing.T, f Factory, capacity int) queue.Queue[string] {
	t.Helper()
	q, err := f.NewBounded(capacity)
	require.NoError(t, err)
	require.NotNil(t, q)
	return q
}

// requireState checks count, emptiness and the front element together.
func requireState(t *testing.T, q queue.Queue[string], count int, front string) {
	t.Helper()
	require.Equal(t, count, q.Count())
	require.Equal(t, count == 0, q.IsEmpty())
	got, ok := q.Peek()
	if count == 0 {
		require.False(t, ok)
		require.Empty(t, got)
		return
	}
	require.True(t, ok)
	require.Equal(t, front, got)
}

func testEmptyOnCreation(t *testing.T, f Factory) {
	requireState(t, newQueue(t, f, 10), 0, "")
	requireState(t, newBounded(t, f, 10), 0, "")
}

func testFIFOOrder(t *testing.T, f Factory) {
	const n = 1000
	q := newQueue(t, f, n)
	for i := 0; i < n; i++ {
		require.NoError(t, q.Enqueue(strconv.Itoa(i)))
		require.Equal(t, i+1, q.Count())
	}
	for i := 0; i < n; i++ {
		got, ok := q.Dequeue()
		require.True(t, ok, "dequeue %d", i)
		require.Equal(t, strconv.Itoa(i), got)
	}
	requireState(t, q, 0, "")
}

func testPeekDoesNotMutate(t *testing.T, f Factory) {
	q := newQueue(t, f, 4)
	require.NoError(t, q.Enqueue("First"))
	require.NoError(t, q.Enqueue("Second"))
	for i := 0; i < 3; i++ {
		requireState(t, q, 2, "First")
	}
}

func testDequeueEmpty(t *testing.T, f Factory) {
	q := newQueue(t, f, 2)
	require.NoError(t, q.Enqueue("10"))
	require.NoError(t, q.Enqueue("20"))

	got, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, "10", got)
	requireState(t, q, 1, "20")

	got, ok = q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, "20", got)
	requireState(t, q, 0, "")

	for i := 0; i < 3; i++ {
		got, ok = q.Dequeue()
		assert.False(t, ok)
		assert.Empty(t, got)
	}
	requireState(t, q, 0, "")
}

func testClearResets(t *testing.T, f Factory) {
	q := newQueue(t, f, 8)
	require.NoError(t, q.Enqueue("X"))
	require.NoError(t, q.Enqueue("Y"))
	require.Equal(t, 2, q.Count())

	q.Clear()
	requireState(t, q, 0, "")
	_, ok := q.Dequeue()
	require.False(t, ok)

	// Still usable afterwards.
	require.NoError(t, q.Enqueue("Z"))
	requireState(t, q, 1, "Z")
	got, ok := q.Dequeue()
	require.True(t, ok)
	require.Equal(t, "Z", got)

	// Clearing an empty queue is fine too.
	q.Clear()
	requireState(t, q, 0, "")
}

func testCapacityScenario(t *testing.T, f Factory) {
	q := newBounded(t, f, 2)

	require.NoError(t, q.Enqueue("A"))
	requireState(t, q, 1, "A")

	require.NoError(t, q.Enqueue("B"))
	requireState(t, q, 2, "A")

	err := q.Enqueue("C")
	require.ErrorIs(t, err, queue.ErrCapacityExceeded)
	requireState(t, q, 2, "A")

	got, ok := q.Dequeue()
	require.True(t, ok)
	require.Equal(t, "A", got)
	requireState(t, q, 1, "B")

	require.NoError(t, q.Enqueue("D"))
	requireState(t, q, 2, "B")

	got, _ = q.Dequeue()
	require.Equal(t, "B", got)
	got, _ = q.Dequeue()
	require.Equal(t, "D", got)
	requireState(t, q, 0, "")
}

func testCapacityOneRefill(t *testing.T, f Factory) {
	q := newBounded(t, f, 1)
	require.NoError(t, q.Enqueue("1"))
	require.ErrorIs(t, q.Enqueue("2"), queue.ErrCapacityExceeded)

	got, ok := q.Dequeue()
	require.True(t, ok)
	require.Equal(t, "1", got)
	require.True(t, q.IsEmpty())

	require.NoError(t, q.Enqueue("3"))
	requireState(t, q, 1, "3")
}

func testClearKeepsCapacity(t *testing.T, f Factory) {
	q := newBounded(t, f, 3)
	for _, v := range []string{"a", "b", "c"} {
		require.NoError(t, q.Enqueue(v))
	}
	q.Clear()
	for _, v := range []string{"d", "e", "f"} {
		require.NoError(t, q.Enqueue(v))
	}
	require.ErrorIs(t, q.Enqueue("g"), queue.ErrCapacityExceeded)
	requireState(t, q, 3, "d")

	if b, ok := q.(queue.Bounded); ok {
		capacity, bounded := b.Capacity()
		require.True(t, bounded)
		require.Equal(t, 3, capacity)
	}
}

func testInvalidCapacity(t *testing.T, f Factory) {
	for _, capacity := range []int{0, -1, -1024} {
		q, err := f.NewBounded(capacity)
		require.ErrorIs(t, err, queue.ErrInvalidCapacity, "capacity %d", capacity)
		require.Nil(t, q, "capacity %d", capacity)
	}
}

func testWrapAround(t *testing.T, f Factory) {
	const capacity = 5
	q := newBounded(t, f, capacity)
	next := 0
	push := func() {
		t.Helper()
		require.NoError(t, q.Enqueue(strconv.Itoa(next)))
		next++
	}
	for i := 0; i < capacity; i++ {
		push()
	}
	oldest := 0
	for round := 0; round < 7; round++ {
		k := round%(capacity-1) + 1
		for i := 0; i < k; i++ {
			got, ok := q.Dequeue()
			require.True(t, ok)
			require.Equal(t, strconv.Itoa(oldest), got)
			oldest++
		}
		for i := 0; i < k; i++ {
			push()
		}
		requireState(t, q, capacity, strconv.Itoa(oldest))
		require.ErrorIs(t, q.Enqueue("overflow"), queue.ErrCapacityExceeded)
	}
}

// testInterleavedAgainstModel replays random operations against a plain slice
// and compares every observable result.
func testInterleavedAgainstModel(t *testing.T, f Factory) {
	const (
		capacity = 16
		ops      = 5000
	)
	rng := rand.New(rand.NewSource(42))
	q := newBounded(t, f, capacity)
	var model []string
	succeeded, dequeued := 0, 0

	for i := 0; i < ops; i++ {
		switch op := rng.Intn(10); {
		case op < 5:
			v := strconv.Itoa(i)
			err := q.Enqueue(v)
			if len(model) == capacity {
				require.ErrorIs(t, err, queue.ErrCapacityExceeded, "op %d", i)
			} else {
				require.NoError(t, err, "op %d", i)
				model = append(model, v)
				succeeded++
			}
		case op < 9:
			got, ok := q.Dequeue()
			if len(model) == 0 {
				require.False(t, ok, "op %d", i)
			} else {
				require.True(t, ok, "op %d", i)
				require.Equal(t, model[0], got, "op %d", i)
				model = model[1:]
				dequeued++
			}
		default:
			if rng.Intn(20) == 0 {
				q.Clear()
				succeeded, dequeued = 0, 0
				model = nil
			}
		}
		front := ""
		if len(model) > 0 {
			front = model[0]
		}
		requireState(t, q, len(model), front)
		require.Equal(t, succeeded-dequeued, q.Count())
	}
}
