package main

import (
	"flag"
	"fmt"

	"uhdm/internal/ir"
	"uhdm/internal/resolve"
)

// cmdFind resolves a name against --scope through internal/resolve,
// printing what kind of node (or typespec) it bound to.
func cmdFind(args []string) error {
	fs := flag.NewFlagSet("find", flag.ExitOnError)
	in := fs.String("in", "", "path to a serialized design")
	scope := fs.String("scope", "", "dotted instance path")
	name := fs.String("name", "", "identifier to resolve")
	asType := fs.Bool("type", false, "resolve as a typespec name instead of an object")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("--in is required")
	}
	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	s, d, err := restoreDesignFile(*in)
	if err != nil {
		return err
	}
	inst, err := findScope(d, *scope)
	if err != nil {
		return err
	}

	if *asType {
		ts := resolve.FindType(s, inst, *name)
		if ts == nil {
			fmt.Printf("%q: not found\n", *name)
			return nil
		}
		fmt.Printf("%q: %T\n", *name, ts)
		return nil
	}

	obj := resolve.FindObject(s, inst, *name)
	if obj == nil {
		fmt.Printf("%q: not found\n", *name)
		return nil
	}
	if n, ok := obj.(ir.Named); ok {
		fmt.Printf("%q: %T named %q\n", *name, obj, n.Name())
		return nil
	}
	fmt.Printf("%q: %T\n", *name, obj)
	return nil
}
