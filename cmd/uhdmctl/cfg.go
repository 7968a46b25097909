package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/zboralski/lattice"

	"uhdm/internal/uhdmgraph"
)

// cmdCfg exports one of uhdmgraph's three graph views as DOT: the instance
// containment tree, the class-extension graph, or per-function CFGs
// (optionally narrowed to a single qualified "owner.name" function).
func cmdCfg(args []string) error {
	fs := flag.NewFlagSet("cfg", flag.ExitOnError)
	in := fs.String("in", "", "path to a serialized design")
	out := fs.String("out", "", "output DOT file")
	mode := fs.String("mode", "instance", "instance | class | func")
	fn := fs.String("func", "", "restrict func mode to one qualified owner.name function")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("--in is required")
	}
	if *out == "" {
		return fmt.Errorf("--out is required")
	}

	_, d, err := restoreDesignFile(*in)
	if err != nil {
		return err
	}

	var dot string
	switch *mode {
	case "instance":
		dot = uhdmgraph.GraphDOT(uhdmgraph.InstanceGraph(d), d.Name()+" instances", uhdmgraph.NASA)
	case "class":
		dot = uhdmgraph.GraphDOT(uhdmgraph.ClassGraph(d), d.Name()+" classes", uhdmgraph.NASA)
	case "func":
		cfg := uhdmgraph.DesignCFG(d)
		if *fn != "" {
			cfg = filterCFG(cfg, *fn)
			if len(cfg.Funcs) == 0 {
				return fmt.Errorf("no function named %q in the design CFG", *fn)
			}
		}
		dot = uhdmgraph.CFGDOT(cfg, uhdmgraph.NASA)
	default:
		return fmt.Errorf("unknown --mode %q (want instance, class, or func)", *mode)
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	defer f.Close()
	_, err = f.WriteString(dot)
	return err
}

func filterCFG(cfg *lattice.CFGGraph, name string) *lattice.CFGGraph {
	out := &lattice.CFGGraph{}
	for _, fn := range cfg.Funcs {
		if fn.Name == name {
			out.Funcs = append(out.Funcs, fn)
		}
	}
	return out
}
