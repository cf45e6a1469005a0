package main

import (
	"flag"
	"log"

	"github.com/grove-build/grove/grovecmd"
)

func main() {
	flags := new(grovecmd.Flags)
	flag.StringVar(
		&flags.Units, "units", ".",
		"Path to a unit manifest file, or a directory tree of *.unit.yaml files.",
	)
	flag.BoolVar(
		&flags.Dot, "dot", false,
		"Render the dependency forest as a dot digraph.",
	)
	flag.StringVar(
		&flags.Targets, "targets", "",
		"Comma-separated target units; prints the minimal covering subset.",
	)
	flag.BoolVar(
		&flags.ShowCycles, "cycles", false,
		"Print only the dependency cycle traces.",
	)
	flag.BoolVar(
		&flags.ShowMissing, "missing", false,
		"Print only the missing dependency references.",
	)
	flag.Parse()

	if err := grovecmd.Main(flags, nil); err != nil {
		log.Fatal(err)
	}
}
