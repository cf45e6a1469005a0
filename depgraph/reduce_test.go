package depgraph

import (
	"testing"

	"math/rand"
	"reflect"
	"sort"
	"strconv"
)

func TestReduce(t *testing.T) {
	graph := map[string][]string{
		"f": {"d"},
		"d": {"c", "a"},
		"c": {"a"},
		"a": nil,
		"x": nil,
	}
	res := buildNames(graph)

	for _, test := range []struct {
		name    string
		targets map[string]bool
		want    map[string]bool
	}{{
		name:    "lone target unchanged",
		targets: targetSet("x"),
		want:    targetSet("x"),
	}, {
		name:    "unrelated targets kept",
		targets: targetSet("a", "x"),
		want:    targetSet("a", "x"),
	}, {
		name:    "implied target dropped",
		targets: targetSet("c", "d"),
		want:    targetSet("d"),
	}, {
		name:    "deep implication",
		targets: targetSet("a", "f"),
		want:    targetSet("f"),
	}, {
		name:    "everything under one root",
		targets: targetSet("a", "c", "d", "f"),
		want:    targetSet("f"),
	}, {
		name:    "unknown target silently dropped",
		targets: targetSet("x", "nope"),
		want:    targetSet("x"),
	}, {
		name:    "empty",
		targets: targetSet(),
		want:    map[string]bool{},
	}} {
		got := Reduce(res.Forest, test.targets)
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("%s: reduce = %+v, want %+v", test.name, got, test.want)
		}

		again := Reduce(res.Forest, got)
		if !reflect.DeepEqual(again, got) {
			t.Errorf("%s: not idempotent: %+v then %+v", test.name, got, again)
		}
	}
}

func TestReduceLeafOnlyDroppedWhenCovered(t *testing.T) {
	res := buildNames(map[string][]string{
		"top":   {"base"},
		"base":  nil,
		"loner": nil,
	})

	// A leaf target contributes nothing to the implied set; it goes away
	// only when some other target's closure covers it.
	if got := Reduce(res.Forest, targetSet("base", "loner")); !reflect.DeepEqual(got, targetSet("base", "loner")) {
		t.Errorf("reduce = %+v, want both leaves kept", got)
	}
	if got := Reduce(res.Forest, targetSet("base", "top")); !reflect.DeepEqual(got, targetSet("top")) {
		t.Errorf("reduce = %+v, want only top", got)
	}
}

func TestReduceSharedDescendantOfTwoTargets(t *testing.T) {
	// x is nested under two different targets and is also selected itself.
	// The two-phase formulation drops it exactly once, regardless of which
	// ancestor is examined first.
	x := Leaf("x")
	forest := []*Node[string]{Parent("p", x), Parent("q", x), x}

	got := Reduce(forest, targetSet("p", "q", "x"))
	if want := targetSet("p", "q"); !reflect.DeepEqual(got, want) {
		t.Errorf("reduce = %+v, want %+v", got, want)
	}
}

// TestReduceLayeredRandom cross-checks Reduce against a closure oracle
// computed straight from the declared dependency table, over randomly
// generated layered DAGs.
func TestReduceLayeredRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for round := 0; round < 50; round++ {
		graph := randomLayeredGraph(rng)
		res := buildNames(graph)

		var names []string
		for name := range graph {
			names = append(names, name)
		}
		sort.Strings(names)

		targets := make(map[string]bool)
		for _, name := range names {
			if rng.Intn(3) == 0 {
				targets[name] = true
			}
		}

		got := Reduce(res.Forest, targets)
		want := reduceOracle(graph, targets)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("round %d: reduce = %+v, want %+v\ngraph: %+v\ntargets: %+v",
				round, got, want, graph, targets)
		}

		if again := Reduce(res.Forest, got); !reflect.DeepEqual(again, got) {
			t.Fatalf("round %d: not idempotent: %+v then %+v", round, got, again)
		}
	}
}

// randomLayeredGraph builds an acyclic dependency table where every unit
// only depends on units in strictly later layers.
func randomLayeredGraph(rng *rand.Rand) map[string][]string {
	layers := 2 + rng.Intn(4)
	var layered [][]string
	for l := 0; l < layers; l++ {
		width := 1 + rng.Intn(4)
		var layer []string
		for w := 0; w < width; w++ {
			layer = append(layer, "u"+strconv.Itoa(l)+"_"+strconv.Itoa(w))
		}
		layered = append(layered, layer)
	}

	graph := make(map[string][]string)
	for l, layer := range layered {
		var below []string
		for _, later := range layered[l+1:] {
			below = append(below, later...)
		}
		for _, name := range layer {
			var deps []string
			for _, cand := range below {
				if rng.Intn(3) == 0 {
					deps = append(deps, cand)
				}
			}
			graph[name] = deps
		}
	}
	return graph
}

// reduceOracle drops every target contained in another target's transitive
// closure, computing closures from the declared table alone.
func reduceOracle(graph map[string][]string, targets map[string]bool) map[string]bool {
	var closure func(name string, out map[string]bool)
	closure = func(name string, out map[string]bool) {
		for _, dep := range graph[name] {
			if out[dep] {
				continue
			}
			out[dep] = true
			closure(dep, out)
		}
	}

	implied := make(map[string]bool)
	for name := range targets {
		if _, ok := graph[name]; !ok {
			continue
		}
		closure(name, implied)
	}

	want := make(map[string]bool)
	for name := range targets {
		if _, ok := graph[name]; !ok {
			continue
		}
		if !implied[name] {
			want[name] = true
		}
	}
	return want
}
