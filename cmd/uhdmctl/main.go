// Command uhdmctl is a small development CLI over the UHDM-Go engine:
// build/save a design, restore one from disk, elaborate an instance tree,
// reduce an expression or call a function, resolve a hierarchical name, and
// export instance/CFG graphs as DOT. Grounded on cmd/unflutter's
// os.Args-dispatch shape — one subcommand per file, each its own flag.FlagSet.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "save":
		err = cmdSave(os.Args[2:])
	case "restore":
		err = cmdRestore(os.Args[2:])
	case "elaborate":
		err = cmdElaborate(os.Args[2:])
	case "eval":
		err = cmdEval(os.Args[2:])
	case "find":
		err = cmdFind(os.Args[2:])
	case "cfg":
		err = cmdCfg(os.Args[2:])
	case "help", "-h", "--help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `uhdmctl — UHDM-Go development CLI

Usage:
  uhdmctl save      --out <file>                        Build the demo design and save it
  uhdmctl restore    --in <file> [--json]                Restore a design and print a summary
  uhdmctl elaborate --in <file> --out <file>            Elaborate the instance tree and re-save
  uhdmctl eval       --in <file> --scope <path> --func <name> [--args v,v,...]
                                                          Call a function and print its reduced result
  uhdmctl eval       --in <file> --scope <path> --path <hier.path>
                                                          Reduce a hierarchical path expression
  uhdmctl find       --in <file> --scope <path> --name <ident> [--type]
                                                          Resolve a name from a scope
  uhdmctl cfg        --in <file> [--func <qualified.name>] --out <file.dot> [--mode instance|class|func]
                                                          Export a DOT graph

Flags:
  --in <file>      Path to a serialized design (uhdmctl save's output)
  --out <file>     Output path
  --scope <path>   Dotted instance path (e.g. "counter" or "counter.u_adder"); defaults to the first top module
  --strict         Set strict mode in the evaluator options (no pass reads it; errors never stop reduction)
  --max-steps <n>  Statement-step cap for evalFunc
`)
}
