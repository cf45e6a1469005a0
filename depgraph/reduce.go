package depgraph

// Reduce returns the minimal subset of targets that are reachable in the
// forest and not already implied by another target. A target is implied when
// it lies in the transitive dependency closure of some other target, since
// building the other guarantees it is built too.
//
// The computation is two pure phases: first every target node is located and
// the closures of all of them are unioned, then the implied values are
// subtracted from the matched ones. Phrasing it this way keeps the result
// independent of traversal order and makes Reduce idempotent. A target value
// absent from the forest is silently dropped.
func Reduce[T comparable](forest []*Node[T], targets map[T]bool) map[T]bool {
	matched := FindSubgraphs(forest, targets)

	found := make(map[T]bool, len(matched))
	implied := make(map[T]bool)
	for _, n := range matched {
		found[n.value] = true
		if n.kind != parentNode {
			continue
		}
		closure := make(map[T]bool)
		for _, child := range n.children {
			for _, v := range DFS(child) {
				closure[v] = true
			}
		}
		delete(closure, n.value) // a node never implies itself
		for v := range closure {
			implied[v] = true
		}
	}

	kept := make(map[T]bool)
	for v := range found {
		if !implied[v] {
			kept[v] = true
		}
	}
	return kept
}
