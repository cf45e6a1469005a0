package grovecmd

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Unit is one build unit record. The graph core only ever sees its name and
// declared dependency names; the remaining fields ride along as opaque
// payload for the orchestrator.
type Unit struct {
	Name string `yaml:"name"`

	// Deps lists the names of units this unit depends on, in declaration
	// order.
	Deps []string `yaml:"deps,omitempty"`

	Desc   string            `yaml:"desc,omitempty"`
	Labels map[string]string `yaml:"labels,omitempty"`
}

// UnitName returns the unit's unique name.
func (u *Unit) UnitName() string { return u.Name }

// UnitDeps returns the unit's declared dependency names.
func (u *Unit) UnitDeps() []string { return u.Deps }

// manifest is the single-file form: one file listing all units.
type manifest struct {
	Units []*Unit `yaml:"units"`
}

var (
	ErrNoName        = errors.New("unit has no name")
	ErrDuplicateUnit = errors.New("duplicate unit name")
)

// unitFileSuffix marks per-unit manifest files in the directory tree form.
const unitFileSuffix = ".unit.yaml"

func decodeStrict(bs []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(bs))
	dec.KnownFields(true)
	return dec.Decode(v)
}

func parseManifestFile(f string) ([]*Unit, error) {
	bs, err := os.ReadFile(f)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	m := new(manifest)
	if err := decodeStrict(bs, m); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", f, err)
	}
	for _, u := range m.Units {
		if u.Name == "" {
			return nil, fmt.Errorf("%w: in %s", ErrNoName, f)
		}
	}
	return m.Units, nil
}

func parseUnitFile(f string) (*Unit, error) {
	bs, err := os.ReadFile(f)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	u := new(Unit)
	if err := decodeStrict(bs, u); err != nil {
		return nil, fmt.Errorf("decode unit %s: %w", f, err)
	}
	if u.Name == "" {
		return nil, fmt.Errorf("%w: in %s", ErrNoName, f)
	}
	return u, nil
}

// discoverUnits scans root for *.unit.yaml files, one unit per file, and
// returns the parsed units along with the file each came from.
func discoverUnits(root string) (map[string]*Unit, error) {
	units := make(map[string]*Unit)
	sources := make(map[string]string)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), unitFileSuffix) {
			return nil
		}

		u, err := parseUnitFile(path)
		if err != nil {
			return err
		}
		if prev, ok := sources[u.Name]; ok {
			return fmt.Errorf("%w: %q in %s and %s",
				ErrDuplicateUnit, u.Name, prev, path)
		}
		units[u.Name] = u
		sources[u.Name] = path
		return nil
	})
	if err != nil {
		return nil, err
	}
	return units, nil
}

// loadUnits reads build units from path: a directory tree of *.unit.yaml
// files, or a single manifest file with a units list. Unit names must be
// unique across the whole input.
func loadUnits(path string) (map[string]*Unit, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat units path: %w", err)
	}
	if info.IsDir() {
		return discoverUnits(path)
	}

	list, err := parseManifestFile(path)
	if err != nil {
		return nil, err
	}
	units := make(map[string]*Unit, len(list))
	for _, u := range list {
		if _, ok := units[u.Name]; ok {
			return nil, fmt.Errorf("%w: %q in %s", ErrDuplicateUnit, u.Name, path)
		}
		units[u.Name] = u
	}
	return units, nil
}
