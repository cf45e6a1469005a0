package depgraph

// FindSubgraphs returns the nodes whose value is in targets, searching
// recursively through non-matching parents and aggregates. The first match
// on a branch wins: a matching node's children are not searched further.
// Results are deduplicated by node identity and appear in forest order;
// the result is nil when nothing matches.
func FindSubgraphs[T comparable](forest []*Node[T], targets map[T]bool) []*Node[T] {
	var found []*Node[T]
	visited := make(map[*Node[T]]bool)

	var search func(n *Node[T])
	search = func(n *Node[T]) {
		if n == nil || visited[n] {
			return
		}
		visited[n] = true
		if n.kind != aggregateNode && targets[n.value] {
			found = append(found, n)
			return
		}
		for _, child := range n.children {
			search(child)
		}
	}

	for _, root := range forest {
		search(root)
	}
	return found
}
