package eval

import (
	"strings"

	"uhdm/internal/ir"
	"uhdm/internal/uhdmio"
)

// DecodeHierPath renders a HierPath's dotted name, per §4.6.8's
// decodeHierPath: "v.addr" for the S4 struct-member-access fixture.
func DecodeHierPath(hp *ir.HierPath) string {
	var b strings.Builder
	for i, elem := range hp.ElementNodes() {
		if i > 0 {
			b.WriteByte('.')
		}
		switch v := elem.(type) {
		case *ir.RefObj:
			b.WriteString(v.Name)
		case *ir.BitSelect:
			b.WriteString(v.Name)
		case *ir.PartSelect:
			b.WriteString(v.Name)
		}
	}
	return b.String()
}

// hierarchicalSelector resolves one path step against the typespec governing
// the current position: a struct/union member name, indirecting through a
// typedef first. Returns the member's own typespec, its bit offset within
// the packed representation, and its width.
func (e *Eval) hierarchicalSelector(ts ir.Typespec, name string, inst, pexpr ir.Node) (ir.Typespec, uint64, uint64, bool) {
	switch v := ts.(type) {
	case *ir.TypedefTypespec:
		return e.hierarchicalSelector(v.Actual(), name, inst, pexpr)
	case *ir.StructTypespec:
		members := v.Members(e.s)
		var offset uint64
		for i := len(members) - 1; i >= 0; i-- {
			m := members[i]
			mts, width := e.memberTypeAndWidth(m, inst, pexpr)
			if m.Name == name {
				return mts, offset, width, true
			}
			offset += width
		}
	case *ir.UnionTypespec:
		for _, m := range v.Members(e.s) {
			if m.Name == name {
				mts, width := e.memberTypeAndWidth(m, inst, pexpr)
				return mts, 0, width, true
			}
		}
	}
	return nil, 0, 0, false
}

func (e *Eval) memberTypeAndWidth(m *ir.TypespecMember, inst, pexpr ir.Node) (ir.Typespec, uint64) {
	r := m.TypespecRef()
	if r == nil || r.Actual() == nil {
		return nil, 1
	}
	mts := r.Actual()
	return mts, e.sizeOfTypespec(mts, inst, pexpr, true)
}

// reduceHierPathExpr implements §4.6.8's 5-step algorithm: resolve the first
// element through the ObjectProvider, then walk every remaining element as a
// struct/union member lookup against the running typespec, accumulating a
// bit offset/width into the first element's packed value.
func (e *Eval) reduceHierPathExpr(hp *ir.HierPath, inst, pexpr ir.Node) ir.Expr {
	elems := hp.ElementNodes()
	if len(elems) == 0 {
		return hp
	}
	first, ok := elems[0].(*ir.RefObj)
	if !ok {
		return hp
	}
	obj := first.Actual()
	if obj == nil {
		obj = e.provider.GetObject(first.Name, inst, pexpr)
	}
	if obj == nil {
		return hp
	}
	baseVal := e.valueOf(obj, inst, pexpr)
	baseConst, ok := baseVal.(*ir.Constant)
	if !ok {
		return hp
	}
	bv, ok := decode(baseConst)
	if !ok {
		return hp
	}

	ts := e.typespecOf(obj)
	var offset uint64
	width := uint64(bv.size)
	if width == 0 {
		width = 64
	}

	for _, elem := range elems[1:] {
		ref, ok := elem.(*ir.RefObj)
		if !ok || ts == nil {
			return hp
		}
		mts, off, w, found := e.hierarchicalSelector(ts, ref.Name, inst, pexpr)
		if !found {
			e.opts.Report(uhdmio.ErrOutOfBound, "unknown hierarchical path member "+ref.Name, hp, nil)
			e.invalid = true
			return hp
		}
		offset += off
		width = w
		ts = mts
	}

	return e.makeUInt((bv.u>>uint(offset))&mask(int(width)), int(width))
}
