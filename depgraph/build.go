package depgraph

import (
	"sort"
)

// Result is the outcome of one Build pass. Cycles and missing references are
// reported here as data; Build itself never fails.
type Result[T comparable] struct {
	// Forest holds the root nodes: nodes never referenced as a dependency
	// of any other node in the pass, in sorted unit-name order. A unit may
	// be absent from the roots yet reachable deep inside another root.
	Forest []*Node[T]

	// Missing maps a unit to the declared dependency names that were absent
	// from the input map, in declaration order. The unit's node simply
	// omits those children. Keyed by unit value, so two names mapped to
	// equal values share one entry.
	Missing map[T][]string

	// Cycles holds one trace per detected cycle. A trace is the path suffix
	// from the first occurrence of the revisited unit through the revisit,
	// ending by repeating that unit: a self-dependency g yields [g g], a
	// mutual cycle i->h->i yields [i h i].
	Cycles [][]T
}

// Build constructs a dependency forest from a flat name-to-unit map. deps
// reports a unit's declared dependency names in declaration order; the unit
// value itself is otherwise opaque.
//
// Construction is a single depth-first pass per unit, in sorted name order.
// Every distinct unit becomes exactly one shared Node. An edge that closes a
// cycle is truncated (the child is omitted) and the cycle recorded; a
// dependency name missing from the map is recorded and omitted. Both are
// diagnostics, not failures: Build always returns a usable forest.
//
// Unit values are expected to be distinct per name: value equality is what
// keys the Missing bookkeeping (and target sets in Reduce), so two names
// carrying equal values merge there even though each name still gets its
// own node.
func Build[T comparable](units map[string]T, deps func(T) []string) *Result[T] {
	b := &builder[T]{
		units:     units,
		deps:      deps,
		memo:      make(map[string]*Node[T], len(units)),
		pathIndex: make(map[string]int),
		dependent: make(map[*Node[T]]bool),
		missing:   make(map[T][]string),
	}

	names := make([]string, 0, len(units))
	for name := range units {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		b.build(name)
	}

	res := &Result[T]{Missing: b.missing, Cycles: b.cycles}
	for _, name := range names {
		node := b.memo[name]
		if !b.dependent[node] {
			res.Forest = append(res.Forest, node)
		}
	}
	return res
}

type builder[T comparable] struct {
	units map[string]T
	deps  func(T) []string

	memo      map[string]*Node[T] // built nodes, one per unit
	path      []string            // names on the current recursion path
	pathIndex map[string]int      // name -> position in path
	dependent map[*Node[T]]bool   // referenced as somebody's child

	missing map[T][]string
	cycles  [][]T
}

// build returns the shared node for name, or nil when the edge leading here
// closed a cycle and was truncated.
func (b *builder[T]) build(name string) *Node[T] {
	if at, ok := b.pathIndex[name]; ok {
		b.recordCycle(at)
		return nil
	}
	if n, ok := b.memo[name]; ok {
		return n
	}

	unit := b.units[name]
	b.pathIndex[name] = len(b.path)
	b.path = append(b.path, name)

	var children []*Node[T]
	for _, dep := range b.deps(unit) {
		if _, ok := b.units[dep]; !ok {
			b.missing[unit] = append(b.missing[unit], dep)
			continue
		}
		child := b.build(dep)
		if child == nil {
			continue
		}
		children = append(children, child)
		b.dependent[child] = true
	}

	b.path = b.path[:len(b.path)-1]
	delete(b.pathIndex, name)

	var n *Node[T]
	if len(children) == 0 {
		n = Leaf(unit)
	} else {
		n = Parent(unit, children...)
	}
	b.memo[name] = n
	return n
}

// recordCycle records the trace of the path suffix starting at position at,
// closed by repeating the revisited unit's value.
func (b *builder[T]) recordCycle(at int) {
	trace := make([]T, 0, len(b.path)-at+1)
	for _, name := range b.path[at:] {
		trace = append(trace, b.units[name])
	}
	trace = append(trace, b.units[b.path[at]])
	b.cycles = append(b.cycles, trace)
}
