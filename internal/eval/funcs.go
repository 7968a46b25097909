package eval

import (
	"uhdm/internal/ir"
	"uhdm/internal/uhdmio"
)

// ctrl threads the control-flow signals a statement sequence can raise
// (return/break/continue) back up through evalStmt's recursion, per
// §4.6.7's evalFunc transient scope.
type ctrl struct {
	ret, brk, cont bool
	retVal         ir.Expr
}

// EvalFunc implements §4.6.7: bind args to the function's io_decls in a
// fresh frame, run the body, and return the reduced return value (or nil
// if the body never executes a return).
func (e *Eval) EvalFunc(fn *ir.Function, args []ir.Expr, inst, pexpr ir.Node) ir.Expr {
	frame := make(map[ir.NodeID]*ir.Constant)
	decls := fn.IODecls(e.s)
	for i, d := range decls {
		if i >= len(args) {
			break
		}
		red := e.ReduceExpr(args[i], inst, pexpr)
		if c, ok := red.(*ir.Constant); ok {
			frame[d.ID()] = c
		}
	}
	e.bindings = append(e.bindings, frame)
	defer func() { e.bindings = e.bindings[:len(e.bindings)-1] }()

	// The body resolves names against fn itself (its io_decls/variables/
	// parameters scope tables), not the caller's inst: fn's own Parent()
	// chain still reaches the enclosing module for anything non-local.
	c := &ctrl{}
	e.evalStmt(fn.Stmt(), fn, pexpr, c)
	if c.retVal == nil {
		return nil
	}
	return e.ReduceExpr(c.retVal, fn, pexpr)
}

// evalStmt runs one statement of §4.6.7's supported subset, propagating
// control-flow signals through c. Anything outside the subset reports
// uhdmio.ErrUnsupportedStmt and leaves invalidValue set, matching
// UHDM_UNSUPPORTED_STMT.
func (e *Eval) evalStmt(stmt ir.Stmt, inst, pexpr ir.Node, c *ctrl) {
	if stmt == nil || c.ret || c.brk || c.cont {
		return
	}
	e.steps++
	if e.opts.EffectiveMaxSteps() > 0 && e.steps > e.opts.EffectiveMaxSteps() {
		e.invalid = true
		return
	}
	switch v := stmt.(type) {
	case *ir.Begin:
		for _, st := range v.Stmts(e.s) {
			e.evalStmt(st, inst, pexpr, c)
			if c.ret || c.brk || c.cont {
				return
			}
		}
	case *ir.Fork:
		for _, st := range v.Stmts(e.s) {
			e.evalStmt(st, inst, pexpr, c)
			if c.ret || c.brk || c.cont {
				return
			}
		}
	case *ir.IfStmt:
		if e.truthy(v.Condition(), inst, pexpr) {
			e.evalStmt(v.Body(), inst, pexpr, c)
		}
	case *ir.IfElse:
		if e.truthy(v.Condition(), inst, pexpr) {
			e.evalStmt(v.IfBody(), inst, pexpr, c)
		} else {
			e.evalStmt(v.ElseBody(), inst, pexpr, c)
		}
	case *ir.CaseStmt:
		e.evalCase(v, inst, pexpr, c)
	case *ir.ForStmt:
		for _, a := range v.InitStmts() {
			e.evalAssignment(a, inst, pexpr)
		}
		for e.truthy(v.Condition(), inst, pexpr) {
			e.evalStmt(v.Body(), inst, pexpr, c)
			if c.ret || c.brk {
				c.brk = false
				break
			}
			c.cont = false
			for _, a := range v.IterStmts() {
				e.evalAssignment(a, inst, pexpr)
			}
		}
	case *ir.WhileStmt:
		for e.truthy(v.Condition(), inst, pexpr) {
			e.evalStmt(v.Body(), inst, pexpr, c)
			if c.ret || c.brk {
				c.brk = false
				break
			}
			c.cont = false
		}
	case *ir.DoWhile:
		for {
			e.evalStmt(v.Body(), inst, pexpr, c)
			if c.ret || c.brk {
				c.brk = false
				break
			}
			c.cont = false
			if !e.truthy(v.Condition(), inst, pexpr) {
				break
			}
		}
	case *ir.Repeat:
		n := e.reduceToInt(v.Count(), inst, pexpr)
		for i := int64(0); i < n; i++ {
			e.evalStmt(v.Body(), inst, pexpr, c)
			if c.ret || c.brk {
				c.brk = false
				break
			}
			c.cont = false
		}
	case *ir.ReturnStmt:
		c.retVal = v.Value()
		c.ret = true
	case *ir.ContinueStmt:
		c.cont = true
	case *ir.BreakStmt:
		c.brk = true
	case *ir.Assignment:
		e.evalAssignment(v, inst, pexpr)
	case *ir.EventControl:
		e.evalStmt(v.Stmt(), inst, pexpr, c)
	case *ir.ForeachStmt:
		e.evalStmt(v.Body(), inst, pexpr, c)
	default:
		e.opts.Report(uhdmio.ErrUnsupportedStmt, "unsupported statement in evalFunc", stmt, nil)
		e.invalid = true
	}
}

func (e *Eval) truthy(cond ir.Expr, inst, pexpr ir.Node) bool {
	red := e.ReduceExpr(cond, inst, pexpr)
	c, ok := red.(*ir.Constant)
	if !ok {
		return false
	}
	v, ok := decode(c)
	if !ok || v.hasX {
		return false
	}
	return v.u != 0
}

func (e *Eval) evalCase(cs *ir.CaseStmt, inst, pexpr ir.Node, c *ctrl) {
	sel := e.ReduceExpr(cs.Condition(), inst, pexpr)
	selC, _ := sel.(*ir.Constant)
	var defaultItem *ir.CaseItem
	for _, item := range cs.Items() {
		if item.IsDefault() {
			defaultItem = item
			continue
		}
		for _, label := range item.Exprs() {
			lc, ok := e.ReduceExpr(label, inst, pexpr).(*ir.Constant)
			if !ok || selC == nil {
				continue
			}
			if constantsEqual(selC, lc) {
				e.evalStmt(item.Stmt(), inst, pexpr, c)
				return
			}
		}
	}
	if defaultItem != nil {
		e.evalStmt(defaultItem.Stmt(), inst, pexpr, c)
	}
}

func constantsEqual(a, b *ir.Constant) bool {
	va, ok1 := decode(a)
	vb, ok2 := decode(b)
	if !ok1 || !ok2 {
		return false
	}
	return va.u == vb.u
}

func (e *Eval) evalAssignment(a *ir.Assignment, inst, pexpr ir.Node) {
	lhs, rhs := a.Lhs(), a.Rhs()
	if a.OpType != ir.OpInvalid {
		// Combine without reparenting lhs/rhs: they stay owned by a, this
		// Operation is scratch space for the reduction only.
		op := e.s.NewOperation()
		op.OpType = a.OpType
		op.Operands = []ir.NodeID{lhs.ID(), rhs.ID()}
		e.SetValueInInstance(lhs, op, inst, pexpr)
		return
	}
	e.SetValueInInstance(lhs, rhs, inst, pexpr)
}

// SetValueInInstance implements §4.6.7's setValueInInstance: reduce rhs,
// then write it back to whatever declaration/select lhs addresses.
func (e *Eval) SetValueInInstance(lhs, rhs ir.Expr, inst, pexpr ir.Node) {
	red := e.ReduceExpr(rhs, inst, pexpr)
	val, ok := red.(*ir.Constant)
	if !ok {
		e.invalid = true
		return
	}
	switch v := lhs.(type) {
	case *ir.RefObj:
		obj := v.Actual()
		if obj == nil {
			obj = e.provider.GetObject(v.Name, inst, pexpr)
		}
		e.bindName(obj, val, inst)
	case *ir.BitSelect:
		e.setBitSelect(v, val, inst, pexpr)
	case *ir.PartSelect:
		e.setPartSelect(v, val, inst, pexpr)
	case *ir.IndexedPartSelect:
		e.setIndexedPartSelect(v, val, inst, pexpr)
	default:
		e.invalid = true
	}
}

// bindName writes val for obj into the innermost evalFunc frame when one is
// active, else into the per-instance override map.
func (e *Eval) bindName(obj ir.Node, val *ir.Constant, inst ir.Node) {
	if obj == nil {
		e.invalid = true
		return
	}
	if len(e.bindings) > 0 {
		e.bindings[len(e.bindings)-1][obj.ID()] = val
		return
	}
	e.setInstBinding(inst, obj, val)
}

func (e *Eval) setInstBinding(inst ir.Node, obj ir.Node, val *ir.Constant) {
	if e.instBind == nil {
		e.instBind = make(map[ir.NodeID]map[ir.NodeID]*ir.Constant)
	}
	var instID ir.NodeID
	if inst != nil {
		instID = inst.ID()
	}
	m, ok := e.instBind[instID]
	if !ok {
		m = make(map[ir.NodeID]*ir.Constant)
		e.instBind[instID] = m
	}
	m[obj.ID()] = val
}

func (e *Eval) setBitSelect(b *ir.BitSelect, val *ir.Constant, inst, pexpr ir.Node) {
	obj := b.Actual()
	if obj == nil {
		obj = e.provider.GetObject(b.Name, inst, pexpr)
	}
	if obj == nil {
		e.invalid = true
		return
	}
	base, ok := e.valueOf(obj, inst, pexpr).(*ir.Constant)
	if !ok {
		e.invalid = true
		return
	}
	bv, ok := decode(base)
	if !ok {
		e.invalid = true
		return
	}
	idx, ok := e.asValue(b.Index(), inst, pexpr)
	if !ok {
		e.invalid = true
		return
	}
	nv, _ := decode(val)
	bit := nv.u & 1
	shifted := bv.u&^(uint64(1)<<uint(idx.u)) | (bit << uint(idx.u))
	e.bindName(obj, e.makeUInt(shifted, bv.size).(*ir.Constant), inst)
}

func (e *Eval) setPartSelect(p *ir.PartSelect, val *ir.Constant, inst, pexpr ir.Node) {
	obj := p.Actual()
	if obj == nil {
		obj = e.provider.GetObject(p.Name, inst, pexpr)
	}
	if obj == nil {
		e.invalid = true
		return
	}
	base, ok := e.valueOf(obj, inst, pexpr).(*ir.Constant)
	if !ok {
		e.invalid = true
		return
	}
	bv, ok := decode(base)
	if !ok {
		e.invalid = true
		return
	}
	lv, ok1 := e.asValue(p.Left(), inst, pexpr)
	rv, ok2 := e.asValue(p.Right(), inst, pexpr)
	if !ok1 || !ok2 {
		e.invalid = true
		return
	}
	hi, lo := int64(lv.u), int64(rv.u)
	if hi < lo {
		hi, lo = lo, hi
	}
	width := int(hi-lo) + 1
	nv, _ := decode(val)
	clear := ^(mask(width) << uint(lo))
	shifted := (bv.u & clear) | ((nv.u & mask(width)) << uint(lo))
	e.bindName(obj, e.makeUInt(shifted, bv.size).(*ir.Constant), inst)
}

func (e *Eval) setIndexedPartSelect(p *ir.IndexedPartSelect, val *ir.Constant, inst, pexpr ir.Node) {
	obj := p.Actual()
	if obj == nil {
		obj = e.provider.GetObject(p.Name, inst, pexpr)
	}
	if obj == nil {
		e.invalid = true
		return
	}
	base, ok := e.valueOf(obj, inst, pexpr).(*ir.Constant)
	if !ok {
		e.invalid = true
		return
	}
	bv, ok := decode(base)
	if !ok {
		e.invalid = true
		return
	}
	baseIdx, ok1 := e.asValue(p.BaseExpr(), inst, pexpr)
	widthV, ok2 := e.asValue(p.Width(), inst, pexpr)
	if !ok1 || !ok2 {
		e.invalid = true
		return
	}
	width := int(widthV.u)
	lo := int64(baseIdx.u)
	if p.Dir == ir.IndexedMinus {
		lo = lo - int64(width) + 1
	}
	if lo < 0 {
		lo = 0
	}
	nv, _ := decode(val)
	clear := ^(mask(width) << uint(lo))
	shifted := (bv.u & clear) | ((nv.u & mask(width)) << uint(lo))
	e.bindName(obj, e.makeUInt(shifted, bv.size).(*ir.Constant), inst)
}
