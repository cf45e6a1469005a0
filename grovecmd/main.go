// Package grovecmd implements the grove command: it loads build unit
// manifests, feeds them to the depgraph core, and prints a forest report,
// a reduced target set, or a dot rendering of the dependency graph.
package grovecmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/grove-build/grove/depgraph"
)

// Flags is the structure for all the command flags of grove.
type Flags struct {
	Units   string // flag -units
	Dot     bool   // flag -dot
	Targets string // flag -targets

	// ShowCycles and ShowMissing restrict the report to just the cycle
	// traces or just the missing dependencies.
	ShowCycles  bool // flag -cycles
	ShowMissing bool // flag -missing
}

// ErrUnknownUnit is returned when a requested target name is not a unit in
// the loaded manifests. This is caller misuse, unlike a unit that merely
// never shows up in the forest, which reduction drops silently.
var ErrUnknownUnit = errors.New("unknown unit")

// Main runs the main function of the grove command. If out is nil, output
// goes to stdout.
func Main(flags *Flags, out io.Writer) error {
	if out == nil {
		out = os.Stdout
	}

	units, err := loadUnits(flags.Units)
	if err != nil {
		return fmt.Errorf("load units: %w", err)
	}

	res := depgraph.Build(units, func(u *Unit) []string { return u.Deps })

	if flags.Dot {
		_, err := io.WriteString(out, depgraph.RenderUnitDot(res.Forest))
		return err
	}
	if flags.Targets != "" {
		return writeReduced(out, units, res, flags.Targets)
	}
	if flags.ShowCycles || flags.ShowMissing {
		if flags.ShowCycles {
			writeCycles(out, res)
		}
		if flags.ShowMissing {
			writeMissing(out, res)
		}
		return nil
	}
	return writeReport(out, units, res)
}

// writeReduced resolves the comma-separated target list, reduces it to the
// minimal subset, and prints the kept names one per line, sorted.
func writeReduced(out io.Writer, units map[string]*Unit, res *depgraph.Result[*Unit], targets string) error {
	set := make(map[*Unit]bool)
	for _, name := range strings.Split(targets, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		u, ok := units[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownUnit, name)
		}
		set[u] = true
	}

	kept := depgraph.Reduce(res.Forest, set)
	var names []string
	for u := range kept {
		names = append(names, u.Name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}

// writeReport prints the forest overview: each root with its traversal
// order, then cycle traces and missing dependencies. Cycles and missing
// references are report data, not errors.
func writeReport(out io.Writer, units map[string]*Unit, res *depgraph.Result[*Unit]) error {
	fmt.Fprintf(out, "units: %d\n", len(units))

	for _, root := range res.Forest {
		u, ok := root.Value()
		if !ok {
			continue
		}
		fmt.Fprintf(out, "root %s: %s\n", u.Name, joinNames(depgraph.DFS(root)))
	}

	writeCycles(out, res)
	writeMissing(out, res)
	return nil
}

func writeCycles(out io.Writer, res *depgraph.Result[*Unit]) {
	for _, trace := range res.Cycles {
		var names []string
		for _, u := range trace {
			names = append(names, u.Name)
		}
		fmt.Fprintf(out, "cycle: %s\n", strings.Join(names, " -> "))
	}
}

func writeMissing(out io.Writer, res *depgraph.Result[*Unit]) {
	var withMissing []*Unit
	for u := range res.Missing {
		withMissing = append(withMissing, u)
	}
	sort.Slice(withMissing, func(i, j int) bool {
		return withMissing[i].Name < withMissing[j].Name
	})
	for _, u := range withMissing {
		fmt.Fprintf(out, "missing %s: %s\n", u.Name, strings.Join(res.Missing[u], " "))
	}
}

func joinNames(units []*Unit) string {
	var names []string
	for _, u := range units {
		names = append(names, u.Name)
	}
	return strings.Join(names, " ")
}
