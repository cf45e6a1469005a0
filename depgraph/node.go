// Package depgraph builds and analyzes dependency forests of named build
// units. A forest is constructed from a flat name-to-unit map; cycles and
// missing references are reported as data rather than errors, and the
// resulting nodes support deterministic traversal, target-set reduction and
// dot export.
package depgraph

type nodeKind int

const (
	leafNode nodeKind = iota
	parentNode
	aggregateNode
)

// Node is one vertex in a dependency forest. It is a closed variant: a Leaf
// (a unit with no dependencies), a Parent (a unit with its direct dependency
// nodes in declaration order), or an Aggregate (a valueless grouping of
// otherwise unrelated nodes).
//
// Within one Build pass every distinct unit is realized as exactly one Node,
// and every parent references that same pointer. Traversal and reduction
// deduplicate by pointer identity, so callers must not mutate or copy nodes
// of a returned forest.
type Node[T comparable] struct {
	kind     nodeKind
	value    T
	children []*Node[T]
}

// Leaf returns a node for a unit with no dependencies.
func Leaf[T comparable](value T) *Node[T] {
	return &Node[T]{kind: leafNode, value: value}
}

// Parent returns a node for a unit and its direct dependency nodes, kept in
// the given order.
func Parent[T comparable](value T, children ...*Node[T]) *Node[T] {
	return &Node[T]{kind: parentNode, value: value, children: children}
}

// Aggregate returns a valueless node grouping the given nodes, so that a
// disjoint forest slice can be traversed as one unit.
func Aggregate[T comparable](children ...*Node[T]) *Node[T] {
	return &Node[T]{kind: aggregateNode, children: children}
}

// Value returns the node's unit value. ok is false for aggregates, which
// carry no value.
func (n *Node[T]) Value() (value T, ok bool) {
	if n.kind == aggregateNode {
		var zero T
		return zero, false
	}
	return n.value, true
}

// Children returns the node's direct dependency nodes in stored order. The
// returned slice is shared; callers must not modify it.
func (n *Node[T]) Children() []*Node[T] { return n.children }
