package main

import (
	"fmt"
	"os"
	"strings"

	"uhdm/internal/ir"
	"uhdm/internal/uhdmio"
	"uhdm/internal/wire"
)

func optionsFromFlags(strict bool, maxSteps int) uhdmio.Options {
	opts := uhdmio.Options{MaxSteps: maxSteps}
	if strict {
		opts.Mode = uhdmio.ModeStrict
	}
	return opts
}

// restoreDesignFile opens path, restores it, and returns the first Design
// among the saved top-level handles.
func restoreDesignFile(path string) (*ir.Serializer, *ir.Design, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	s, handles, err := wire.Restore(f)
	if err != nil {
		return nil, nil, fmt.Errorf("restore: %w", err)
	}
	for _, h := range handles {
		if d, ok := s.Resolve(h).(*ir.Design); ok {
			return s, d, nil
		}
	}
	return nil, nil, fmt.Errorf("%s: no *ir.Design handle found among %d saved roots", path, len(handles))
}

func saveDesignFile(s *ir.Serializer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	defer f.Close()
	if err := wire.Save(s, f); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// findScope resolves a dotted instance path ("top.child.grandchild") against
// d's top modules, defaulting to the first top module when path is empty.
func findScope(d *ir.Design, path string) (ir.Instance, error) {
	tops := d.TopModules()
	if len(tops) == 0 {
		return nil, fmt.Errorf("design has no top modules")
	}
	if path == "" {
		return tops[0], nil
	}

	parts := strings.Split(path, ".")
	var cur ir.Instance
	for _, top := range tops {
		if top.Name() == parts[0] {
			cur = top
			break
		}
	}
	if cur == nil {
		return nil, fmt.Errorf("no top module named %q", parts[0])
	}

	s := d.Serializer()
	for _, name := range parts[1:] {
		found := false
		for _, sub := range subInstancesOf(s, cur) {
			if sub.Name() == name {
				cur = sub
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("no sub-instance named %q under %q", name, cur.Name())
		}
	}
	return cur, nil
}

func subInstancesOf(s *ir.Serializer, inst ir.Instance) []ir.Instance {
	switch v := inst.(type) {
	case *ir.Module:
		return v.SubInstances(s)
	case *ir.Interface:
		return v.SubInstances(s)
	case *ir.Program:
		return v.SubInstances(s)
	default:
		return nil
	}
}
