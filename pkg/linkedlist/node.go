package linkedlist

import "fmt"

// Node is one link of a DoublyLinkedList. The list owns its nodes through the
// forward chain; prev is only used to detach a node in O(1).
type Node[T any] struct {
	Value T

	next *Node[T]
	prev *Node[T]
	list *DoublyLinkedList[T]
}

// Next returns the following node or nil.
func (n *Node[T]) Next() *Node[T] {
	return n.next
}

// Prev returns the preceding node or nil.
func (n *Node[T]) Prev() *Node[T] {
	return n.prev
}

func (n *Node[T]) String() string {
	return fmt.Sprint(n.Value)
}
