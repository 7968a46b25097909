package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"uhdm/internal/eval"
	"uhdm/internal/ir"
)

// cmdEval reduces a function call or a hierarchical path expression down
// to a constant through internal/eval, rooted at --scope (an instance
// path resolved by findScope). Grounded on §4.6.7/§4.6.8's evalFunc and
// hierarchical-path reduction.
func cmdEval(args []string) error {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	in := fs.String("in", "", "path to a serialized design")
	scope := fs.String("scope", "", "dotted instance path")
	fn := fs.String("func", "", "name of a function to call")
	argList := fs.String("args", "", "comma-separated literal arguments")
	path := fs.String("path", "", "dotted hierarchical path to reduce")
	strict := fs.Bool("strict", false, "set strict mode in the options (no pass reads it)")
	maxSteps := fs.Int("max-steps", 0, "evalFunc statement-step cap")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("--in is required")
	}
	if *fn == "" && *path == "" {
		return fmt.Errorf("one of --func or --path is required")
	}

	s, d, err := restoreDesignFile(*in)
	if err != nil {
		return err
	}
	inst, err := findScope(d, *scope)
	if err != nil {
		return err
	}

	e := eval.New(s, optionsFromFlags(*strict, *maxSteps))

	var result ir.Expr
	if *fn != "" {
		fnNode := e.GetObject(*fn, inst, nil)
		function, ok := fnNode.(*ir.Function)
		if !ok {
			return fmt.Errorf("%q does not name a function in scope %q", *fn, inst.Name())
		}
		callArgs, err := parseLiteralArgs(s, *argList)
		if err != nil {
			return err
		}
		result = e.EvalFunc(function, callArgs, inst, nil)
	} else {
		result = reducePath(e, s, inst, *path)
	}

	if e.Invalid() {
		return fmt.Errorf("reduction produced an invalid value")
	}
	fmt.Println(eval.PrettyPrint(result))
	return nil
}

// parseLiteralArgs turns "3,4" into a slice of unsized UINT constants, the
// shape §4.6 constant literals use for plain decimal arguments.
func parseLiteralArgs(s *ir.Serializer, csv string) ([]ir.Expr, error) {
	if csv == "" {
		return nil, nil
	}
	parts := strings.Split(csv, ",")
	out := make([]ir.Expr, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if _, err := strconv.ParseInt(p, 10, 64); err != nil {
			return nil, fmt.Errorf("bad argument %q: %w", p, err)
		}
		c := s.NewConstant()
		c.Value = "UINT:" + p
		c.ConstType = 1
		out = append(out, c)
	}
	return out, nil
}

// reducePath builds a HierPath out of a dotted name (the first element
// bound to whatever inst resolves it to, later elements left as bare
// member names) and reduces it through e.
func reducePath(e *eval.Eval, s *ir.Serializer, inst ir.Instance, dotted string) ir.Expr {
	parts := strings.Split(dotted, ".")
	hp := s.NewHierPath()

	head := s.NewRefObj()
	head.Name = parts[0]
	if obj := e.GetObject(parts[0], inst, nil); obj != nil {
		head.SetActual(obj)
	}
	hp.AppendElement(head)

	for _, name := range parts[1:] {
		el := s.NewRefObj()
		el.Name = name
		hp.AppendElement(el)
	}

	return e.ReduceExpr(hp, inst, nil)
}
