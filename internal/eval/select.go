package eval

import "uhdm/internal/ir"

// typed is the TypespecRef() capability most Expr/declaration kinds share;
// used by Size to find the typespec governing a node without a type switch
// per caller.
type typed interface {
	TypespecRef() *ir.RefTypespec
}

func (e *Eval) typespecOf(n ir.Node) ir.Typespec {
	if ts, ok := n.(ir.Typespec); ok {
		return ts
	}
	if t, ok := n.(typed); ok {
		if r := t.TypespecRef(); r != nil {
			return r.Actual()
		}
	}
	return nil
}

// Size computes a node's bit width per §4.6.2: full=false returns only the
// last declared range's size; full=true multiplies through every range
// (the struct/array element-count case).
func (e *Eval) Size(n ir.Node, inst, pexpr ir.Node, full bool) uint64 {
	ts := e.typespecOf(n)
	if ts == nil {
		return 0
	}
	return e.sizeOfTypespec(ts, inst, pexpr, full)
}

func (e *Eval) sizeOfTypespec(ts ir.Typespec, inst, pexpr ir.Node, full bool) uint64 {
	switch v := ts.(type) {
	case *ir.LogicTypespec:
		return e.rangesSize(v.Ranges(e.s), inst, pexpr, full)
	case *ir.BitTypespec:
		return e.rangesSize(v.Ranges(e.s), inst, pexpr, full)
	case *ir.IntTypespec:
		if n := v.Ranges(e.s); len(n) > 0 {
			return e.rangesSize(n, inst, pexpr, full)
		}
		return 32
	case *ir.IntegerTypespec:
		if n := v.Ranges(e.s); len(n) > 0 {
			return e.rangesSize(n, inst, pexpr, full)
		}
		return 32
	case *ir.RealTypespec:
		return 64
	case *ir.StringTypespec:
		return 0
	case *ir.StructTypespec:
		var total uint64
		for _, m := range v.Members(e.s) {
			if r := m.TypespecRef(); r != nil && r.Actual() != nil {
				total += e.sizeOfTypespec(r.Actual(), inst, pexpr, true)
			}
		}
		return total
	case *ir.UnionTypespec:
		var max uint64
		for _, m := range v.Members(e.s) {
			if r := m.TypespecRef(); r != nil && r.Actual() != nil {
				if sz := e.sizeOfTypespec(r.Actual(), inst, pexpr, true); sz > max {
					max = sz
				}
			}
		}
		return max
	case *ir.EnumTypespec:
		if r := v.BaseTypespecRef(); r != nil && r.Actual() != nil {
			return e.sizeOfTypespec(r.Actual(), inst, pexpr, full)
		}
		return 32
	case *ir.PackedArrayTypespec:
		elemSize := uint64(1)
		if r := v.ElemTypespecRef(e.s); r != nil && r.Actual() != nil {
			elemSize = e.sizeOfTypespec(r.Actual(), inst, pexpr, true)
		}
		return e.rangesSize(v.Ranges(e.s), inst, pexpr, true) * elemSize
	case *ir.ArrayTypespec:
		if !full {
			return e.rangesSize(v.Ranges(e.s), inst, pexpr, false)
		}
		elemSize := uint64(1)
		if r := v.ElemTypespecRef(e.s); r != nil && r.Actual() != nil {
			elemSize = e.sizeOfTypespec(r.Actual(), inst, pexpr, true)
		}
		return e.rangesSize(v.Ranges(e.s), inst, pexpr, true) * elemSize
	case *ir.TypedefTypespec:
		return e.sizeOfTypespec(v.Actual(), inst, pexpr, full)
	case *ir.ClassTypespec:
		return 0
	}
	return 0
}

func (e *Eval) rangesSize(ranges []*ir.Range, inst, pexpr ir.Node, full bool) uint64 {
	if len(ranges) == 0 {
		return 1
	}
	last := e.oneRangeSize(ranges[len(ranges)-1], inst, pexpr)
	if !full || len(ranges) == 1 {
		return last
	}
	total := last
	for i := 0; i < len(ranges)-1; i++ {
		total *= e.oneRangeSize(ranges[i], inst, pexpr)
	}
	return total
}

func (e *Eval) oneRangeSize(r *ir.Range, inst, pexpr ir.Node) uint64 {
	l := e.reduceToInt(r.Left(), inst, pexpr)
	rr := e.reduceToInt(r.Right(), inst, pexpr)
	diff := l - rr
	if diff < 0 {
		diff = -diff
	}
	return uint64(diff) + 1
}

func (e *Eval) reduceToInt(expr ir.Expr, inst, pexpr ir.Node) int64 {
	red := e.ReduceExpr(expr, inst, pexpr)
	c, ok := red.(*ir.Constant)
	if !ok {
		return 0
	}
	n, _ := GetIValue(c)
	return n
}

// asValue extracts the decoded value of an expr, resolving through
// ReduceExpr first.
func (e *Eval) asValue(expr ir.Expr, inst, pexpr ir.Node) (value, bool) {
	red := e.ReduceExpr(expr, inst, pexpr)
	c, ok := red.(*ir.Constant)
	if !ok {
		return value{}, false
	}
	return decode(c)
}

func (e *Eval) reduceBitSelectExpr(b *ir.BitSelect, inst, pexpr ir.Node) ir.Expr {
	base := e.baseValue(b.Name, b.Actual(), inst, pexpr)
	if base == nil {
		return b
	}
	bv, ok := decode(base)
	if !ok {
		return b
	}
	idx, ok := e.asValue(b.Index(), inst, pexpr)
	if !ok {
		return b
	}
	bit := (bv.u >> uint(idx.u)) & 1
	return e.makeUInt(bit, 1)
}

func (e *Eval) reducePartSelectExpr(p *ir.PartSelect, inst, pexpr ir.Node) ir.Expr {
	base := e.baseValue(p.Name, p.Actual(), inst, pexpr)
	if base == nil {
		return p
	}
	bv, ok := decode(base)
	if !ok {
		return p
	}
	lv, ok := e.asValue(p.Left(), inst, pexpr)
	if !ok {
		return p
	}
	rv, ok := e.asValue(p.Right(), inst, pexpr)
	if !ok {
		return p
	}
	hi, lo := int64(lv.u), int64(rv.u)
	if hi < lo {
		hi, lo = lo, hi
	}
	width := int(hi-lo) + 1
	return e.makeUInt((bv.u>>uint(lo))&mask(width), width)
}

func (e *Eval) reduceIndexedPartSelectExpr(p *ir.IndexedPartSelect, inst, pexpr ir.Node) ir.Expr {
	base := e.baseValue(p.Name, p.Actual(), inst, pexpr)
	if base == nil {
		return p
	}
	bv, ok := decode(base)
	if !ok {
		return p
	}
	baseIdx, ok := e.asValue(p.BaseExpr(), inst, pexpr)
	if !ok {
		return p
	}
	widthV, ok := e.asValue(p.Width(), inst, pexpr)
	if !ok {
		return p
	}
	width := int(widthV.u)
	lo := int64(baseIdx.u)
	if p.Dir == ir.IndexedMinus {
		lo = lo - int64(width) + 1
	}
	if lo < 0 {
		lo = 0
	}
	return e.makeUInt((bv.u>>uint(lo))&mask(width), width)
}

// baseValue resolves the declaration a select's Name/Actual binds to and
// returns its reduced current value, or nil if it can't be reduced.
func (e *Eval) baseValue(name string, actual ir.Node, inst, pexpr ir.Node) *ir.Constant {
	obj := actual
	if obj == nil {
		obj = e.provider.GetObject(name, inst, pexpr)
	}
	if obj == nil {
		return nil
	}
	red := e.valueOf(obj, inst, pexpr)
	c, _ := red.(*ir.Constant)
	return c
}
