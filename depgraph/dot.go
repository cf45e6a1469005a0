package depgraph

import (
	"bytes"
	"fmt"
)

// RenderDot renders the forest as a dot digraph named "generated-graph".
// label maps a unit value to its display id. Every distinct value reachable
// in the forest gets one node statement, followed by one edge statement per
// direct dependency edge, dependency pointing at dependent.
//
// label should be injective over the forest's values: two units mapped to
// the same id collapse into one node statement that keeps both units'
// edges.
func RenderDot[T comparable](forest []*Node[T], label func(T) string) string {
	buf := new(bytes.Buffer)
	writeDotHeader(buf, "generated-graph")

	nodes := distinctNodes(forest)
	seen := make(map[string]bool)
	for _, n := range nodes {
		if n.kind == aggregateNode {
			continue
		}
		id := label(n.value)
		if seen[id] {
			continue
		}
		seen[id] = true
		fmt.Fprintf(buf, "  %q [label=%q];\n", id, id)
	}

	for _, n := range nodes {
		if n.kind == aggregateNode {
			continue
		}
		for _, child := range n.children {
			if child.kind == aggregateNode {
				continue
			}
			fmt.Fprintf(buf, "  %q -> %q;\n", label(child.value), label(n.value))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// UnitLike is satisfied by unit payloads that expose their own name and
// declared dependency names, enabling the unit-specialized dot renderer.
type UnitLike interface {
	comparable
	UnitName() string
	UnitDeps() []string
}

// RenderUnitDot renders a forest of build units as a dot digraph named
// "project". Unlike RenderDot it draws edges from the units' declared
// dependency names, so a declared dependency that was missing at build time
// still shows up as an edge endpoint.
func RenderUnitDot[T UnitLike](forest []*Node[T]) string {
	buf := new(bytes.Buffer)
	writeDotHeader(buf, "project")

	nodes := distinctNodes(forest)
	for _, n := range nodes {
		if n.kind == aggregateNode {
			continue
		}
		name := n.value.UnitName()
		fmt.Fprintf(buf, "  %q [label=%q];\n", name, name)
	}

	for _, n := range nodes {
		if n.kind == aggregateNode {
			continue
		}
		for _, dep := range n.value.UnitDeps() {
			fmt.Fprintf(buf, "  %q -> %q;\n", dep, n.value.UnitName())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeDotHeader(buf *bytes.Buffer, name string) {
	fmt.Fprintf(buf, "digraph %q {\n", name)
	buf.WriteString(" graph [ranksep=0, rankdir=LR];\n")
}

// distinctNodes enumerates every distinct node in the forest in pre-order,
// sharing one identity-dedup walk across all roots.
func distinctNodes[T comparable](forest []*Node[T]) []*Node[T] {
	var nodes []*Node[T]
	visited := make(map[*Node[T]]bool)
	for _, root := range forest {
		walkNodes(root, visited, func(n *Node[T]) {
			nodes = append(nodes, n)
		})
	}
	return nodes
}
