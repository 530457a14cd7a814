package phasegraph

import "fmt"

// Node is a sortable graph node identified by an opaque, totally-ordered
// identifier. Edges are represented as two mirror adjacency sets — next
// holds nodes this one must run before, prev holds nodes that must run
// before this one — membership in these maps is the single source of truth
// for the graph; there is no separate edge list.
type Node[I comparable] struct {
	ID I

	next map[I]*Node[I] // nodes that run after this one
	prev map[I]*Node[I] // nodes that run before this one

	visited bool // transient, used internally by Sort
}

// NewNode creates a node with the given identifier and no edges.
func NewNode[I comparable](id I) *Node[I] {
	return &Node[I]{
		ID:   id,
		next: make(map[I]*Node[I]),
		prev: make(map[I]*Node[I]),
	}
}

// Link declares that a must run before b. It is idempotent: linking the
// same pair twice has no additional effect on the resulting order.
//
// Link returns an *InvalidArgumentError if a and b are the same node.
func Link[I comparable](a, b *Node[I]) error {
	if a.ID == b.ID {
		return &InvalidArgumentError{
			Op:      "Link",
			Message: fmt.Sprintf("node cannot run before itself: %v", a.ID),
		}
	}
	a.next[b.ID] = b
	b.prev[a.ID] = a
	return nil
}

// Next returns the nodes this node must run before.
func (n *Node[I]) Next() map[I]*Node[I] {
	return n.next
}

// Prev returns the nodes this node must run after.
func (n *Node[I]) Prev() map[I]*Node[I] {
	return n.prev
}
