package eval

import (
	"uhdm/internal/ir"
	"uhdm/internal/uhdmio"
)

// FlattenPatternAssignments implements §4.6.5: normalize a `'{tag: v, ...}`
// assignment-pattern operation against a struct typespec into a positional
// operand list, one per member in declaration order.
func (e *Eval) FlattenPatternAssignments(ts ir.Typespec, expr ir.Expr) ir.Expr {
	op, ok := expr.(*ir.Operation)
	if !ok || op.Flattened {
		return expr
	}
	st, ok := ts.(*ir.StructTypespec)
	if !ok {
		return expr
	}
	members := st.Members(e.s)

	byTag := make(map[string]ir.Expr, len(op.Operands))
	var defaultVal ir.Expr
	positional := make([]ir.Expr, 0, len(op.Operands))
	for _, o := range op.OperandNodes() {
		tp, ok := o.(*ir.TaggedPattern)
		if !ok {
			positional = append(positional, o)
			continue
		}
		if tp.Tag == "default" {
			defaultVal = tp.Value()
			continue
		}
		byTag[tp.Tag] = tp.Value()
	}

	out := e.s.NewOperation()
	out.OpType = ir.OpAssignmentPattern
	out.Flattened = true

	for i, m := range members {
		var fill ir.Expr
		switch {
		case byTag[m.Name] != nil:
			fill = byTag[m.Name]
		case i < len(positional):
			fill = positional[i]
		case defaultVal != nil:
			fill = defaultVal
		default:
			e.reportUnmatchedField(expr, m.Name)
			return expr
		}

		mts, width := e.memberTypeAndWidth(m, nil, nil)
		fill = e.widenPatternFill(fill, mts, width)
		out.AppendOperand(fill)
	}

	if len(byTag) > 0 {
		for tag := range byTag {
			found := false
			for _, m := range members {
				if m.Name == tag {
					found = true
					break
				}
			}
			if !found {
				e.reportUndefinedKey(expr, tag)
				return expr
			}
		}
	}

	return out
}

// widenPatternFill resizes an unsized 0/1 fill to the member's width, and
// recurses into a nested struct-shaped fill (step 4 of §4.6.5).
func (e *Eval) widenPatternFill(fill ir.Expr, mts ir.Typespec, width uint64) ir.Expr {
	if nested, ok := mts.(*ir.StructTypespec); ok {
		if _, isOp := fill.(*ir.Operation); isOp {
			return e.FlattenPatternAssignments(nested, fill)
		}
	}
	c, ok := fill.(*ir.Constant)
	if !ok {
		return fill
	}
	v, ok := decode(c)
	if !ok || v.size > 0 || v.u > 1 {
		return fill
	}
	if v.u == 1 {
		return e.makeUInt(mask(int(width)), int(width))
	}
	return e.makeUInt(0, int(width))
}

func (e *Eval) reportUnmatchedField(expr ir.Expr, name string) {
	e.opts.Report(uhdmio.ErrUnmatchedPatternField, "unmatched field in pattern assignment: "+name, expr, nil)
	e.invalid = true
}

func (e *Eval) reportUndefinedKey(expr ir.Expr, tag string) {
	e.opts.Report(uhdmio.ErrUndefinedPatternKey, "undefined pattern key: "+tag, expr, nil)
	e.invalid = true
}
