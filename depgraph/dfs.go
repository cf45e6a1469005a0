package depgraph

// DFS returns the unit values reachable from node in deterministic pre-order:
// a Leaf or Parent emits its value before its children (in stored order), an
// Aggregate emits nothing and flattens its children. Nodes are deduplicated
// by pointer identity, so in an identity-shared forest every unit appears
// exactly once, at its first encounter. The walk is recomputed per call.
func DFS[T comparable](node *Node[T]) []T {
	var out []T
	walkNodes(node, make(map[*Node[T]]bool), func(n *Node[T]) {
		if n.kind != aggregateNode {
			out = append(out, n.value)
		}
	})
	return out
}

// walkNodes visits node and everything below it in pre-order, calling visit
// once per distinct node. visited carries the identity dedup across calls so
// that a whole forest can share one walk.
func walkNodes[T comparable](node *Node[T], visited map[*Node[T]]bool, visit func(*Node[T])) {
	if node == nil || visited[node] {
		return
	}
	visited[node] = true
	visit(node)
	for _, child := range node.children {
		walkNodes(child, visited, visit)
	}
}
