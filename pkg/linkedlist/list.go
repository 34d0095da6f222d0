// Package linkedlist implements a doubly linked list with O(1) insertion at
// both ends and O(1) removal given a node.
package linkedlist

import (
	"fmt"
	"strings"
)

// DoublyLinkedList holds head -> ... -> tail.
// Invariant: head == nil <=> tail == nil <=> count == 0.
type DoublyLinkedList[T any] struct {
	head  *Node[T]
	tail  *Node[T]
	count int
}

// New returns an empty list.
func New[T any]() *DoublyLinkedList[T] {
	return &DoublyLinkedList[T]{}
}

func (l *DoublyLinkedList[T]) Len() int      { return l.count }
func (l *DoublyLinkedList[T]) IsEmpty() bool { return l.head == nil }

// First returns the head node or nil.
func (l *DoublyLinkedList[T]) First() *Node[T] { return l.head }

// Last returns the tail node or nil.
func (l *DoublyLinkedList[T]) Last() *Node[T] { return l.tail }

// Append adds value at the tail and returns its node.
func (l *DoublyLinkedList[T]) Append(value T) *Node[T] {
	n := &Node[T]{Value: value, list: l}
	if l.tail != nil {
		n.prev = l.tail
		l.tail.next = n
	} else {
		l.head = n
	}
	l.tail = n
	l.count++
	return n
}

// Prepend adds value at the head and returns its node.
func (l *DoublyLinkedList[T]) Prepend(value T) *Node[T] {
	n := &Node[T]{Value: value, list: l}
	if l.head != nil {
		n.next = l.head
		l.head.prev = n
	} else {
		l.tail = n
	}
	l.head = n
	l.count++
	return n
}

// NodeAt walks from the head and returns the node at index, or nil if index
// is out of range.
func (l *DoublyLinkedList[T]) NodeAt(index int) *Node[T] {
	if index < 0 || index >= l.count {
		return nil
	}
	n := l.head
	for i := 0; i < index; i++ {
		n = n.next
	}
	return n
}

// Insert places value so that it ends up at index. An index outside
// [0, Len()) appends.
func (l *DoublyLinkedList[T]) Insert(value T, index int) *Node[T] {
	if index < 0 || index >= l.count {
		return l.Append(value)
	}
	if index == 0 {
		return l.Prepend(value)
	}
	at := l.NodeAt(index)
	n := &Node[T]{Value: value, list: l, prev: at.prev, next: at}
	at.prev.next = n
	at.prev = n
	l.count++
	return n
}

// Remove unlinks n and returns its value. It returns false if n is nil or
// does not belong to l.
func (l *DoublyLinkedList[T]) Remove(n *Node[T]) (T, bool) {
	if n == nil || n.list != l {
		var zero T
		return zero, false
	}
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	l.count--

	n.next = nil
	n.prev = nil
	n.list = nil
	return n.Value, true
}

// RemoveAt removes the node at index.
func (l *DoublyLinkedList[T]) RemoveAt(index int) (T, bool) {
	return l.Remove(l.NodeAt(index))
}

// RemoveFirst removes the head node.
func (l *DoublyLinkedList[T]) RemoveFirst() (T, bool) {
	return l.Remove(l.head)
}

// RemoveLast removes the tail node.
func (l *DoublyLinkedList[T]) RemoveLast() (T, bool) {
	return l.Remove(l.tail)
}

// Clear detaches every node so stale references held by callers can no
// longer reach the chain or be removed twice.
func (l *DoublyLinkedList[T]) Clear() {
	for n := l.head; n != nil; {
		next := n.next
		n.next = nil
		n.prev = nil
		n.list = nil
		n = next
	}
	l.head = nil
	l.tail = nil
	l.count = 0
}

// Values returns the list contents from head to tail.
func (l *DoublyLinkedList[T]) Values() []T {
	out := make([]T, 0, l.count)
	for n := l.head; n != nil; n = n.next {
		out = append(out, n.Value)
	}
	return out
}

func (l *DoublyLinkedList[T]) String() string {
	if l.head == nil {
		return "Empty List"
	}
	parts := make([]string, 0, l.count)
	for n := l.head; n != nil; n = n.next {
		parts = append(parts, fmt.Sprint(n.Value))
	}
	return strings.Join(parts, " <-> ")
}
