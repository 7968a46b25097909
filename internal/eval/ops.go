package eval

import (
	"strings"

	"uhdm/internal/ir"
	"uhdm/internal/uhdmio"
)

// reduceOperation dispatches an Operation through the per-opType reduction
// rules of §4.6.4. Operand-shape ops (conditional, concat, cast, inc/dec,
// assignment patterns) need their unreduced operands, so they're handled
// before the generic all-constant-operand path.
func (e *Eval) reduceOperation(op *ir.Operation, inst, pexpr ir.Node) ir.Expr {
	if e.skip[op.OpType] {
		return op
	}
	switch op.OpType {
	case ir.OpAssignmentPattern, ir.OpMultiAssignmentPattern:
		return op
	case ir.OpConditional:
		return e.reduceConditional(op, inst, pexpr)
	case ir.OpConcat:
		return e.reduceConcat(op, inst, pexpr)
	case ir.OpMultiConcat:
		return e.reduceMultiConcat(op, inst, pexpr)
	case ir.OpPreInc, ir.OpPreDec, ir.OpPostInc, ir.OpPostDec:
		return e.reduceIncDec(op, inst, pexpr)
	case ir.OpCast:
		return e.reduceCast(op, inst, pexpr)
	}

	operands := op.OperandNodes()
	vals := make([]value, len(operands))
	for i, o := range operands {
		red := e.ReduceExpr(o, inst, pexpr)
		c, ok := red.(*ir.Constant)
		if !ok {
			return op
		}
		dv, ok := decode(c)
		if !ok {
			return op
		}
		vals[i] = dv
	}
	resizeUnsized(vals)

	switch op.OpType {
	case ir.OpUnaryPlus:
		return e.reduceUnaryPass(vals)
	case ir.OpUnaryMinus:
		return e.reduceUnaryMinus(vals)
	case ir.OpPlus, ir.OpMinus, ir.OpMult, ir.OpDiv, ir.OpMod:
		return e.reduceArith(op, vals)
	case ir.OpLShift, ir.OpRShift, ir.OpArithLShift, ir.OpArithRShift:
		return e.reduceShift(op, vals)
	case ir.OpBitAnd, ir.OpBitOr, ir.OpBitXor, ir.OpBitXnor:
		return e.reduceBitwiseBinary(op, vals)
	case ir.OpBitNeg:
		return e.reduceBitNeg(vals)
	case ir.OpUnaryAnd, ir.OpUnaryNand, ir.OpUnaryOr, ir.OpUnaryNor, ir.OpUnaryXor, ir.OpUnaryXnor:
		return e.reduceUnaryReduction(op, vals)
	case ir.OpLogAnd, ir.OpLogOr:
		return e.reduceLogical(op, vals)
	case ir.OpNot:
		return e.reduceNot(vals)
	case ir.OpEq, ir.OpNeq, ir.OpCaseEq, ir.OpCaseNeq, ir.OpLt, ir.OpLe, ir.OpGt, ir.OpGe:
		return e.reduceCompOp(op, vals)
	case ir.OpInside:
		return e.reduceInside(vals)
	}
	return op
}

func (e *Eval) reduceUnaryPass(vals []value) ir.Expr {
	if vals[0].isReal {
		return e.makeReal(vals[0].f)
	}
	return e.resultInt(int64(vals[0].u), vals[0].size, vals[0].signed)
}

func (e *Eval) reduceUnaryMinus(vals []value) ir.Expr {
	if vals[0].isReal {
		return e.makeReal(-vals[0].f)
	}
	return e.resultInt(-int64(vals[0].u), vals[0].size, true)
}

func isSignedArith(vals []value) bool {
	for _, v := range vals {
		if v.signed {
			return true
		}
	}
	return false
}

func (e *Eval) reduceArith(op *ir.Operation, vals []value) ir.Expr {
	if vals[0].isReal || vals[1].isReal {
		return e.reduceRealArith(op, vals)
	}
	a, b := int64(vals[0].u), int64(vals[1].u)
	signed := isSignedArith(vals)
	size := maxSize(vals)
	switch op.OpType {
	case ir.OpPlus:
		return e.resultInt(a+b, size, signed)
	case ir.OpMinus:
		return e.resultInt(a-b, size, signed)
	case ir.OpMult:
		return e.resultInt(a*b, size, signed)
	case ir.OpDiv:
		if b == 0 {
			e.opts.Report(uhdmio.ErrDivideByZero, "division by zero", op, nil)
			e.invalid = true
			return op
		}
		return e.resultInt(a/b, size, signed)
	case ir.OpMod:
		if b == 0 {
			e.opts.Report(uhdmio.ErrDivideByZero, "modulo by zero", op, nil)
			e.invalid = true
			return op
		}
		return e.resultInt(a%b, size, signed)
	}
	return op
}

func (e *Eval) reduceRealArith(op *ir.Operation, vals []value) ir.Expr {
	af, bf := toFloat(vals[0]), toFloat(vals[1])
	switch op.OpType {
	case ir.OpPlus:
		return e.makeReal(af + bf)
	case ir.OpMinus:
		return e.makeReal(af - bf)
	case ir.OpMult:
		return e.makeReal(af * bf)
	case ir.OpDiv:
		if bf == 0 {
			e.opts.Report(uhdmio.ErrDivideByZero, "division by zero", op, nil)
			e.invalid = true
			return op
		}
		return e.makeReal(af / bf)
	}
	return op
}

func toFloat(v value) float64 {
	if v.isReal {
		return v.f
	}
	if v.signed {
		return float64(int64(v.u))
	}
	return float64(v.u)
}

func (e *Eval) reduceShift(op *ir.Operation, vals []value) ir.Expr {
	a, shamt := vals[0].u, vals[1].u
	size := vals[0].size
	if size <= 0 {
		size = 32
	}
	switch op.OpType {
	case ir.OpLShift, ir.OpArithLShift:
		return e.makeUInt(a<<shamt, size)
	case ir.OpRShift:
		return e.makeUInt(a>>shamt, size)
	case ir.OpArithRShift:
		if vals[0].signed {
			return e.makeInt(signExtend(int64(a), size)>>int64(shamt), size)
		}
		return e.makeUInt(a>>shamt, size)
	}
	return op
}

func (e *Eval) reduceBitwiseBinary(op *ir.Operation, vals []value) ir.Expr {
	size := maxSize(vals)
	var r uint64
	switch op.OpType {
	case ir.OpBitAnd:
		r = vals[0].u & vals[1].u
	case ir.OpBitOr:
		r = vals[0].u | vals[1].u
	case ir.OpBitXor:
		r = vals[0].u ^ vals[1].u
	case ir.OpBitXnor:
		r = ^(vals[0].u ^ vals[1].u)
	}
	return e.makeUInt(r&mask(size), size)
}

// reduceBitNeg is the size-aware `~` of §4.6.4: a single-bit operand acts
// as logical not, otherwise the operand is masked to its declared width.
func (e *Eval) reduceBitNeg(vals []value) ir.Expr {
	v := vals[0]
	if v.size == 1 {
		return e.makeUInt(boolBit(v.u&1 == 0), 1)
	}
	size := v.size
	if size <= 0 {
		size = 32
	}
	return e.makeUInt(^v.u&mask(size), size)
}

func (e *Eval) reduceUnaryReduction(op *ir.Operation, vals []value) ir.Expr {
	v := vals[0]
	size := v.size
	if size <= 0 {
		size = 32
	}
	bitsv := v.u & mask(size)
	switch op.OpType {
	case ir.OpUnaryAnd:
		return e.makeUInt(boolBit(bitsv == mask(size)), 1)
	case ir.OpUnaryNand:
		return e.makeUInt(boolBit(bitsv != mask(size)), 1)
	case ir.OpUnaryOr:
		return e.makeUInt(boolBit(bitsv != 0), 1)
	case ir.OpUnaryNor:
		return e.makeUInt(boolBit(bitsv == 0), 1)
	case ir.OpUnaryXor:
		return e.makeUInt(uint64(popcount(bitsv)&1), 1)
	case ir.OpUnaryXnor:
		return e.makeUInt(uint64(1-(popcount(bitsv)&1)), 1)
	}
	return op
}

func (e *Eval) reduceLogical(op *ir.Operation, vals []value) ir.Expr {
	a, b := vals[0].u != 0, vals[1].u != 0
	switch op.OpType {
	case ir.OpLogAnd:
		return e.makeBit(a && b)
	case ir.OpLogOr:
		return e.makeBit(a || b)
	}
	return op
}

func (e *Eval) reduceNot(vals []value) ir.Expr {
	return e.makeBit(vals[0].u == 0)
}

// reduceCompOp implements the comparison family of §4.6.4: a one-bit
// result, falling back to float then string comparison when either
// operand isn't a plain integer.
func (e *Eval) reduceCompOp(op *ir.Operation, vals []value) ir.Expr {
	if vals[0].isReal || vals[1].isReal {
		return e.compareReal(op, vals)
	}
	if vals[0].isStr || vals[1].isStr {
		return e.compareString(op, vals)
	}
	signed := vals[0].signed || vals[1].signed
	a, b := int64(vals[0].u), int64(vals[1].u)
	var res bool
	switch op.OpType {
	case ir.OpEq, ir.OpCaseEq:
		res = vals[0].u == vals[1].u
	case ir.OpNeq, ir.OpCaseNeq:
		res = vals[0].u != vals[1].u
	case ir.OpLt:
		if signed {
			res = a < b
		} else {
			res = vals[0].u < vals[1].u
		}
	case ir.OpLe:
		if signed {
			res = a <= b
		} else {
			res = vals[0].u <= vals[1].u
		}
	case ir.OpGt:
		if signed {
			res = a > b
		} else {
			res = vals[0].u > vals[1].u
		}
	case ir.OpGe:
		if signed {
			res = a >= b
		} else {
			res = vals[0].u >= vals[1].u
		}
	}
	return e.makeBit(res)
}

func (e *Eval) compareReal(op *ir.Operation, vals []value) ir.Expr {
	a, b := toFloat(vals[0]), toFloat(vals[1])
	var res bool
	switch op.OpType {
	case ir.OpEq, ir.OpCaseEq:
		res = a == b
	case ir.OpNeq, ir.OpCaseNeq:
		res = a != b
	case ir.OpLt:
		res = a < b
	case ir.OpLe:
		res = a <= b
	case ir.OpGt:
		res = a > b
	case ir.OpGe:
		res = a >= b
	}
	return e.makeBit(res)
}

func (e *Eval) compareString(op *ir.Operation, vals []value) ir.Expr {
	a, b := vals[0].str, vals[1].str
	var res bool
	switch op.OpType {
	case ir.OpEq, ir.OpCaseEq:
		res = a == b
	case ir.OpNeq, ir.OpCaseNeq:
		res = a != b
	case ir.OpLt:
		res = a < b
	case ir.OpLe:
		res = a <= b
	case ir.OpGt:
		res = a > b
	case ir.OpGe:
		res = a >= b
	}
	return e.makeBit(res)
}

func (e *Eval) reduceInside(vals []value) ir.Expr {
	for _, v := range vals[1:] {
		if v.u == vals[0].u {
			return e.makeBit(true)
		}
	}
	return e.makeBit(false)
}

// reduceConcat implements `{a, b, ...}`: digit-wise, respecting each
// operand's declared width and the Reordered flag (§4.6.4).
func (e *Eval) reduceConcat(op *ir.Operation, inst, pexpr ir.Node) ir.Expr {
	operands := op.OperandNodes()
	order := make([]int, len(operands))
	for i := range order {
		order[i] = i
	}
	if op.Reordered {
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}
	var sb strings.Builder
	for _, idx := range order {
		red := e.ReduceExpr(operands[idx], inst, pexpr)
		c, ok := red.(*ir.Constant)
		if !ok {
			return op
		}
		b, ok := ToBinary(c)
		if !ok {
			return op
		}
		sb.WriteString(b)
	}
	return e.makeBinConst(sb.String(), sb.Len())
}

// reduceMultiConcat implements `{n{x}}`, capped at uhdmio.MultiConcatCap
// reps; n<0 saturates to zero reps (§4.6.4/§9.7).
func (e *Eval) reduceMultiConcat(op *ir.Operation, inst, pexpr ir.Node) ir.Expr {
	operands := op.OperandNodes()
	if len(operands) < 2 {
		return op
	}
	nExpr := e.ReduceExpr(operands[0], inst, pexpr)
	nc, ok := nExpr.(*ir.Constant)
	if !ok {
		return op
	}
	n, _ := GetIValue(nc)
	if n < 0 {
		n = 0
	}
	if n > uhdmio.MultiConcatCap {
		n = uhdmio.MultiConcatCap
	}
	xExpr := e.ReduceExpr(operands[1], inst, pexpr)
	xc, ok := xExpr.(*ir.Constant)
	if !ok {
		return op
	}
	b, ok := ToBinary(xc)
	if !ok {
		return op
	}
	var sb strings.Builder
	for i := int64(0); i < n; i++ {
		sb.WriteString(b)
	}
	return e.makeBinConst(sb.String(), sb.Len())
}

// reduceConditional reduces the condition, then only the chosen arm; an
// unreduced arm is returned unchanged if its own reduction fails (§4.6.4).
func (e *Eval) reduceConditional(op *ir.Operation, inst, pexpr ir.Node) ir.Expr {
	operands := op.OperandNodes()
	if len(operands) != 3 {
		return op
	}
	cond := e.ReduceExpr(operands[0], inst, pexpr)
	cc, ok := cond.(*ir.Constant)
	if !ok {
		return op
	}
	v, ok := decode(cc)
	if !ok {
		return op
	}
	arm := operands[1]
	if v.u == 0 && !v.hasX {
		arm = operands[2]
	}
	return e.ReduceExpr(arm, inst, pexpr)
}

// reduceIncDec implements pre/post inc/dec with writeback via
// setValueInInstance, per §4.6.4/§4.6.6.
func (e *Eval) reduceIncDec(op *ir.Operation, inst, pexpr ir.Node) ir.Expr {
	operands := op.OperandNodes()
	if len(operands) != 1 {
		return op
	}
	lvalue := operands[0]
	cur := e.ReduceExpr(lvalue, inst, pexpr)
	cc, ok := cur.(*ir.Constant)
	if !ok {
		return op
	}
	v, ok := decode(cc)
	if !ok {
		return op
	}
	delta := int64(1)
	if op.OpType == ir.OpPreDec || op.OpType == ir.OpPostDec {
		delta = -1
	}
	next := e.resultInt(int64(v.u)+delta, v.size, v.signed)
	e.SetValueInInstance(lvalue, next, inst, pexpr)
	if op.OpType == ir.OpPreInc || op.OpType == ir.OpPreDec {
		return next
	}
	return cur
}

// reduceCast narrows/extends a reduced operand against the cast's own
// declared typespec width (§4.6.4).
func (e *Eval) reduceCast(op *ir.Operation, inst, pexpr ir.Node) ir.Expr {
	operands := op.OperandNodes()
	if len(operands) != 1 {
		return op
	}
	red := e.ReduceExpr(operands[0], inst, pexpr)
	c, ok := red.(*ir.Constant)
	if !ok {
		return op
	}
	tr := op.TypespecRef()
	if tr == nil || tr.Actual() == nil {
		return red
	}
	size := int(e.sizeOfTypespec(tr.Actual(), inst, pexpr, true))
	v, ok := decode(c)
	if !ok {
		return red
	}
	if v.signed {
		return e.makeInt(signExtend(int64(v.u), size), size)
	}
	return e.makeUInt(v.u&mask(size), size)
}
