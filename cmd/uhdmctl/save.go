package main

import (
	"flag"
	"fmt"
	"os"

	"uhdm/internal/ir"
)

func cmdSave(args []string) error {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	out := fs.String("out", "", "output path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return fmt.Errorf("--out is required")
	}

	s := ir.NewSerializer()
	d, _ := buildDemoDesign(s)

	if err := saveDesignFile(s, *out); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "saved design %q (%d top modules) to %s\n", d.Name(), len(d.TopModules()), *out)
	return nil
}
