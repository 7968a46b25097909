package ir

// Range is one packed or unpacked dimension `[left:right]` (§3.3).
type Range struct {
	base
	left, right NodeID // own-one expr each
}

func (r *Range) Left() Expr  { e, _ := r.ser.Get(r.left).(Expr); return e }
func (r *Range) Right() Expr { e, _ := r.ser.Get(r.right).(Expr); return e }
func (r *Range) SetLeft(e Expr) {
	if e != nil {
		e.SetParent(r)
		r.left = e.ID()
	}
}
func (r *Range) SetRight(e Expr) {
	if e != nil {
		e.SetParent(r)
		r.right = e.ID()
	}
}

func (r *Range) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeOwn, &r.left)
	visit(EdgeOwn, &r.right)
}

func (s *Serializer) NewRange() *Range {
	return make_(s, KindRange, &Range{})
}

// scalarTypespec is embedded by the four-valued/two-valued packed-scalar
// typespecs that differ only in Kind and in whether ranges apply.
type scalarTypespec struct {
	ranges []NodeID // own-many Range, packed dims
	Signed bool
}

func (t *scalarTypespec) Ranges(s *Serializer) []*Range {
	out := make([]*Range, 0, len(t.ranges))
	for _, id := range t.ranges {
		if r, ok := s.Get(id).(*Range); ok {
			out = append(out, r)
		}
	}
	return out
}

func (t *scalarTypespec) AppendRange(s *Serializer, parent Node, r *Range) {
	r.SetParent(parent)
	t.ranges = append(t.ranges, r.ID())
}

func (t *scalarTypespec) walkEdges(visit func(EdgeKind, *NodeID)) {
	for i := range t.ranges {
		visit(EdgeOwn, &t.ranges[i])
	}
}

// LogicTypespec is a four-valued `logic [ranges]` type (§3.3).
type LogicTypespec struct {
	base
	scalarTypespec
}

func (t *LogicTypespec) typespecNode()                               {}
func (t *LogicTypespec) WalkEdges(v func(EdgeKind, *NodeID))          { t.walkEdges(v) }
func (s *Serializer) NewLogicTypespec() *LogicTypespec                { return make_(s, KindLogicTypespec, &LogicTypespec{}) }

// BitTypespec is a two-valued `bit [ranges]` type.
type BitTypespec struct {
	base
	scalarTypespec
}

func (t *BitTypespec) typespecNode()                      {}
func (t *BitTypespec) WalkEdges(v func(EdgeKind, *NodeID)) { t.walkEdges(v) }
func (s *Serializer) NewBitTypespec() *BitTypespec         { return make_(s, KindBitTypespec, &BitTypespec{}) }

// IntTypespec is `int [ranges]`.
type IntTypespec struct {
	base
	scalarTypespec
}

func (t *IntTypespec) typespecNode()                      {}
func (t *IntTypespec) WalkEdges(v func(EdgeKind, *NodeID)) { t.walkEdges(v) }
func (s *Serializer) NewIntTypespec() *IntTypespec         { return make_(s, KindIntTypespec, &IntTypespec{}) }

// IntegerTypespec is `integer [ranges]`.
type IntegerTypespec struct {
	base
	scalarTypespec
}

func (t *IntegerTypespec) typespecNode()                      {}
func (t *IntegerTypespec) WalkEdges(v func(EdgeKind, *NodeID)) { t.walkEdges(v) }
func (s *Serializer) NewIntegerTypespec() *IntegerTypespec {
	return make_(s, KindIntegerTypespec, &IntegerTypespec{})
}

// RealTypespec is `real`; it carries no ranges.
type RealTypespec struct{ base }

func (t *RealTypespec) typespecNode()                      {}
func (t *RealTypespec) WalkEdges(func(EdgeKind, *NodeID)) {}
func (s *Serializer) NewRealTypespec() *RealTypespec {
	return make_(s, KindRealTypespec, &RealTypespec{})
}

// StringTypespec is `string`; it carries no ranges.
type StringTypespec struct{ base }

func (t *StringTypespec) typespecNode()                    {}
func (t *StringTypespec) WalkEdges(func(EdgeKind, *NodeID)) {}
func (s *Serializer) NewStringTypespec() *StringTypespec {
	return make_(s, KindStringTypespec, &StringTypespec{})
}

// TypespecMember is one field of a struct/union typespec.
type TypespecMember struct {
	base
	Name         string
	typespec     NodeID // ref-one -> RefTypespec
	defaultValue NodeID // own-one expr, optional
}

func (m *TypespecMember) TypespecRef() *RefTypespec { return typespecRefOf(m.ser, m.typespec) }
func (m *TypespecMember) SetTypespecRef(r *RefTypespec) {
	if r == nil {
		m.typespec = 0
		return
	}
	m.typespec = r.ID()
}

func (m *TypespecMember) DefaultValue() Expr { e, _ := m.ser.Get(m.defaultValue).(Expr); return e }
func (m *TypespecMember) SetDefaultValue(e Expr) {
	if e != nil {
		e.SetParent(m)
		m.defaultValue = e.ID()
	}
}

func (m *TypespecMember) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeRef, &m.typespec)
	visit(EdgeOwn, &m.defaultValue)
}

func (s *Serializer) NewTypespecMember() *TypespecMember {
	return make_(s, KindTypespecMember, &TypespecMember{})
}

// aggregateTypespec is embedded by struct/union typespecs (same field shape,
// different Kind and different C-family semantics the evaluator applies).
type aggregateTypespec struct {
	Packed  bool
	members []NodeID // own-many TypespecMember
}

func (t *aggregateTypespec) Members(s *Serializer) []*TypespecMember {
	out := make([]*TypespecMember, 0, len(t.members))
	for _, id := range t.members {
		if m, ok := s.Get(id).(*TypespecMember); ok {
			out = append(out, m)
		}
	}
	return out
}

func (t *aggregateTypespec) AppendMember(parent Node, m *TypespecMember) {
	m.SetParent(parent)
	t.members = append(t.members, m.ID())
}

func (t *aggregateTypespec) walkEdges(visit func(EdgeKind, *NodeID)) {
	for i := range t.members {
		visit(EdgeOwn, &t.members[i])
	}
}

// StructTypespec is `struct {...}` (§3.3, §4.6.5).
type StructTypespec struct {
	base
	aggregateTypespec
}

func (t *StructTypespec) typespecNode()                      {}
func (t *StructTypespec) WalkEdges(v func(EdgeKind, *NodeID)) { t.walkEdges(v) }
func (s *Serializer) NewStructTypespec() *StructTypespec {
	return make_(s, KindStructTypespec, &StructTypespec{})
}

// UnionTypespec is `union {...}`.
type UnionTypespec struct {
	base
	aggregateTypespec
}

func (t *UnionTypespec) typespecNode()                      {}
func (t *UnionTypespec) WalkEdges(v func(EdgeKind, *NodeID)) { t.walkEdges(v) }
func (s *Serializer) NewUnionTypespec() *UnionTypespec {
	return make_(s, KindUnionTypespec, &UnionTypespec{})
}

// EnumConst is one `name = value` member of an enum typespec.
type EnumConst struct {
	base
	Name  string
	value NodeID // own-one Constant
}

func (c *EnumConst) Value() *Constant {
	v, _ := c.ser.Get(c.value).(*Constant)
	return v
}
func (c *EnumConst) SetValue(v *Constant) {
	if v != nil {
		v.SetParent(c)
		c.value = v.ID()
	}
}

func (c *EnumConst) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeOwn, &c.value)
}

func (s *Serializer) NewEnumConst() *EnumConst {
	return make_(s, KindEnumConst, &EnumConst{})
}

// EnumTypespec is `enum base_type {consts}` (§3.3).
type EnumTypespec struct {
	base
	baseTypespec NodeID   // ref-one -> RefTypespec (underlying integral type)
	consts       []NodeID // own-many EnumConst
}

func (t *EnumTypespec) typespecNode() {}

func (t *EnumTypespec) BaseTypespecRef() *RefTypespec { return typespecRefOf(t.ser, t.baseTypespec) }
func (t *EnumTypespec) SetBaseTypespecRef(r *RefTypespec) {
	if r == nil {
		t.baseTypespec = 0
		return
	}
	t.baseTypespec = r.ID()
}

func (t *EnumTypespec) Consts() []*EnumConst {
	out := make([]*EnumConst, 0, len(t.consts))
	for _, id := range t.consts {
		if c, ok := t.ser.Get(id).(*EnumConst); ok {
			out = append(out, c)
		}
	}
	return out
}

func (t *EnumTypespec) AppendConst(c *EnumConst) {
	c.SetParent(t)
	t.consts = append(t.consts, c.ID())
}

func (t *EnumTypespec) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeRef, &t.baseTypespec)
	for i := range t.consts {
		visit(EdgeOwn, &t.consts[i])
	}
}

func (s *Serializer) NewEnumTypespec() *EnumTypespec {
	return make_(s, KindEnumTypespec, &EnumTypespec{})
}

// arrayLikeTypespec is embedded by packed/unpacked array typespecs.
type arrayLikeTypespec struct {
	elemTypespec NodeID   // ref-one -> RefTypespec
	ranges       []NodeID // own-many Range
}

func (t *arrayLikeTypespec) ElemTypespecRef(s *Serializer) *RefTypespec {
	return typespecRefOf(s, t.elemTypespec)
}
func (t *arrayLikeTypespec) SetElemTypespecRef(r *RefTypespec) {
	if r == nil {
		t.elemTypespec = 0
		return
	}
	t.elemTypespec = r.ID()
}

func (t *arrayLikeTypespec) Ranges(s *Serializer) []*Range {
	out := make([]*Range, 0, len(t.ranges))
	for _, id := range t.ranges {
		if r, ok := s.Get(id).(*Range); ok {
			out = append(out, r)
		}
	}
	return out
}

func (t *arrayLikeTypespec) AppendRange(parent Node, r *Range) {
	r.SetParent(parent)
	t.ranges = append(t.ranges, r.ID())
}

func (t *arrayLikeTypespec) walkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeRef, &t.elemTypespec)
	for i := range t.ranges {
		visit(EdgeOwn, &t.ranges[i])
	}
}

// ArrayTypespec is an unpacked array dimension list over an element type.
type ArrayTypespec struct {
	base
	arrayLikeTypespec
}

func (t *ArrayTypespec) typespecNode()                      {}
func (t *ArrayTypespec) WalkEdges(v func(EdgeKind, *NodeID)) { t.walkEdges(v) }
func (s *Serializer) NewArrayTypespec() *ArrayTypespec {
	return make_(s, KindArrayTypespec, &ArrayTypespec{})
}

// PackedArrayTypespec is a packed array dimension list over an element type.
type PackedArrayTypespec struct {
	base
	arrayLikeTypespec
}

func (t *PackedArrayTypespec) typespecNode()                      {}
func (t *PackedArrayTypespec) WalkEdges(v func(EdgeKind, *NodeID)) { t.walkEdges(v) }
func (s *Serializer) NewPackedArrayTypespec() *PackedArrayTypespec {
	return make_(s, KindPackedArrayTypespec, &PackedArrayTypespec{})
}

// ClassTypespec names a ClassDefn as a type (§3.3).
type ClassTypespec struct {
	base
	Name      string
	classDefn NodeID // ref-one -> ClassDefn
}

func (t *ClassTypespec) typespecNode() {}

func (t *ClassTypespec) ClassDefn() *ClassDefn {
	c, _ := t.ser.Get(t.classDefn).(*ClassDefn)
	return c
}
func (t *ClassTypespec) SetClassDefn(c *ClassDefn) {
	if c == nil {
		t.classDefn = 0
		return
	}
	t.classDefn = c.ID()
}

func (t *ClassTypespec) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeRef, &t.classDefn)
}

func (s *Serializer) NewClassTypespec() *ClassTypespec {
	return make_(s, KindClassTypespec, &ClassTypespec{})
}

// TypedefTypespec is a `typedef` alias (§3.3).
type TypedefTypespec struct {
	base
	Name   string
	actual NodeID // ref-one -> aliased Typespec
}

func (t *TypedefTypespec) typespecNode() {}

func (t *TypedefTypespec) Actual() Typespec {
	ts, _ := t.ser.Get(t.actual).(Typespec)
	return ts
}
func (t *TypedefTypespec) SetActual(ts Typespec) {
	if ts == nil {
		t.actual = 0
		return
	}
	t.actual = ts.ID()
}

func (t *TypedefTypespec) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeRef, &t.actual)
}

func (s *Serializer) NewTypedefTypespec() *TypedefTypespec {
	return make_(s, KindTypedefTypespec, &TypedefTypespec{})
}

// ImportTypespec records a `import pkg::item;` (or `import pkg::*;` when
// ItemName is empty) for the resolver's package-import lookup (§4.4.3).
type ImportTypespec struct {
	base
	PackageName string
	ItemName    string  // "" = wildcard
	actual      NodeID  // ref-one -> resolved Package
}

func (t *ImportTypespec) typespecNode() {}

func (t *ImportTypespec) Actual() *Package {
	p, _ := t.ser.Get(t.actual).(*Package)
	return p
}
func (t *ImportTypespec) SetActual(p *Package) {
	if p == nil {
		t.actual = 0
		return
	}
	t.actual = p.ID()
}

func (t *ImportTypespec) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeRef, &t.actual)
}

func (s *Serializer) NewImportTypespec() *ImportTypespec {
	return make_(s, KindImportTypespec, &ImportTypespec{})
}
