package main

import (
	"flag"
	"fmt"
	"os"

	"uhdm/internal/elaborate"
)

func cmdElaborate(args []string) error {
	fs := flag.NewFlagSet("elaborate", flag.ExitOnError)
	in := fs.String("in", "", "path to a serialized design")
	out := fs.String("out", "", "output path for the elaborated design")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("--in is required")
	}

	s, d, err := restoreDesignFile(*in)
	if err != nil {
		return err
	}

	elaborate.Elaborate(s, d)
	fmt.Fprintf(os.Stderr, "elaborated %q: %d top modules\n", d.Name(), len(d.TopModules()))

	if *out == "" {
		return nil
	}
	return saveDesignFile(s, *out)
}
