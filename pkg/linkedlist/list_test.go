package linkedlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkLinks walks the chain in both directions and verifies every
// structural invariant of the list.
func checkLinks[T any](t *testing.T, l *DoublyLinkedList[T]) {
	t.Helper()
	if l.count == 0 {
		require.Nil(t, l.head)
		require.Nil(t, l.tail)
		return
	}
	require.NotNil(t, l.head)
	require.NotNil(t, l.tail)
	require.Nil(t, l.head.prev)
	require.Nil(t, l.tail.next)

	seen := 0
	var prev *Node[T]
	for n := l.head; n != nil; n = n.next {
		require.Same(t, l, n.list)
		require.True(t, prev == n.prev, "broken back-reference at node %v", n.Value)
		if n.next != nil {
			require.Same(t, n, n.next.prev)
		}
		prev = n
		seen++
	}
	require.Same(t, l.tail, prev)
	require.Equal(t, l.count, seen)
}

func TestAppendPrepend(t *testing.T) {
	l := New[int]()
	assert.True(t, l.IsEmpty())
	assert.Equal(t, "Empty List", l.String())

	l.Append(2)
	l.Append(3)
	l.Prepend(1)
	checkLinks(t, l)
	assert.Equal(t, []int{1, 2, 3}, l.Values())
	assert.Equal(t, "1 <-> 2 <-> 3", l.String())
	assert.Equal(t, 1, l.First().Value)
	assert.Equal(t, 3, l.Last().Value)
	assert.Equal(t, "2", l.First().Next().String())
	assert.Nil(t, l.First().Prev())
}

func TestPrependOnEmpty(t *testing.T) {
	l := New[string]()
	n := l.Prepend("only")
	checkLinks(t, l)
	assert.Same(t, n, l.First())
	assert.Same(t, n, l.Last())
}

func TestNodeAt(t *testing.T) {
	l := New[int]()
	for i := 0; i < 5; i++ {
		l.Append(i * 10)
	}
	for i := 0; i < 5; i++ {
		require.Equal(t, i*10, l.NodeAt(i).Value)
	}
	assert.Nil(t, l.NodeAt(-1))
	assert.Nil(t, l.NodeAt(5))
}

func TestInsert(t *testing.T) {
	l := New[string]()
	l.Insert("c", 0) // empty list: appends
	l.Insert("a", 0)
	l.Insert("b", 1)
	l.Insert("e", 99)
	l.Insert("d", 3)
	l.Insert("f", -1)
	checkLinks(t, l)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, l.Values())
}

func TestRemoveHeadTailInterior(t *testing.T) {
	l := New[int]()
	nodes := make([]*Node[int], 5)
	for i := range nodes {
		nodes[i] = l.Append(i)
	}

	v, ok := l.Remove(nodes[2])
	require.True(t, ok)
	assert.Equal(t, 2, v)
	checkLinks(t, l)
	assert.Equal(t, []int{0, 1, 3, 4}, l.Values())

	v, ok = l.Remove(nodes[0])
	require.True(t, ok)
	assert.Equal(t, 0, v)
	checkLinks(t, l)

	v, ok = l.Remove(nodes[4])
	require.True(t, ok)
	assert.Equal(t, 4, v)
	checkLinks(t, l)
	assert.Equal(t, []int{1, 3}, l.Values())

	for _, n := range []*Node[int]{nodes[0], nodes[2], nodes[4]} {
		assert.Nil(t, n.next)
		assert.Nil(t, n.prev)
		assert.Nil(t, n.list)
	}
}

func TestRemoveSingleNode(t *testing.T) {
	l := New[int]()
	n := l.Append(7)
	v, ok := l.Remove(n)
	require.True(t, ok)
	assert.Equal(t, 7, v)
	checkLinks(t, l)
	assert.Equal(t, 0, l.Len())
	assert.True(t, l.IsEmpty())
}

func TestRemoveRejectsForeignAndStaleNodes(t *testing.T) {
	a, b := New[int](), New[int]()
	na := a.Append(1)
	b.Append(2)

	_, ok := b.Remove(na)
	assert.False(t, ok)
	assert.Equal(t, 1, b.Len())

	_, ok = a.Remove(na)
	require.True(t, ok)
	_, ok = a.Remove(na)
	assert.False(t, ok, "a node can only be removed once")

	_, ok = a.Remove(nil)
	assert.False(t, ok)
	checkLinks(t, a)
	checkLinks(t, b)
}

func TestRemoveFirstLastAt(t *testing.T) {
	l := New[int]()
	_, ok := l.RemoveFirst()
	assert.False(t, ok)
	_, ok = l.RemoveLast()
	assert.False(t, ok)

	for i := 0; i < 4; i++ {
		l.Append(i)
	}
	v, _ := l.RemoveFirst()
	assert.Equal(t, 0, v)
	v, _ = l.RemoveLast()
	assert.Equal(t, 3, v)
	v, ok = l.RemoveAt(1)
	require.True(t, ok)
	assert.Equal(t, 2, v)
	_, ok = l.RemoveAt(5)
	assert.False(t, ok)
	checkLinks(t, l)
	assert.Equal(t, []int{1}, l.Values())
}

func TestClearDetachesNodes(t *testing.T) {
	l := New[int]()
	n1 := l.Append(1)
	n2 := l.Append(2)
	l.Clear()
	checkLinks(t, l)
	assert.Nil(t, n1.next)
	assert.Nil(t, n2.prev)

	_, ok := l.Remove(n1)
	assert.False(t, ok, "nodes from before Clear are no longer owned")

	l.Append(3)
	checkLinks(t, l)
	assert.Equal(t, []int{3}, l.Values())
}
