package ir

// OpType is the VPI op-code enumeration referenced by §3.3/§4.6.4. Only the
// subset the evaluator actually reduces is named; anything else is a valid
// Operation.OpType value that simply never matches a case in
// internal/eval's reduction switch (§4.6.4 "explicitly opted-out opTypes").
type OpType int32

const (
	OpInvalid OpType = iota
	OpPlus
	OpMinus
	OpMult
	OpDiv
	OpMod
	OpLShift
	OpRShift
	OpArithLShift
	OpArithRShift
	OpBitNeg
	OpBitAnd
	OpBitOr
	OpBitXor
	OpBitXnor
	OpUnaryAnd
	OpUnaryNand
	OpUnaryOr
	OpUnaryNor
	OpUnaryXor
	OpUnaryXnor
	OpLogAnd
	OpLogOr
	OpNot
	OpEq
	OpNeq
	OpCaseEq
	OpCaseNeq
	OpLt
	OpLe
	OpGt
	OpGe
	OpConcat
	OpMultiConcat
	OpConditional
	OpAssignmentPattern
	OpMultiAssignmentPattern
	OpCast
	OpInside
	OpPreInc
	OpPreDec
	OpPostInc
	OpPostDec
	OpPosedge
	OpNegedge
	OpEdge
	OpUnaryPlus
	OpUnaryMinus
)

// exprBase is embedded by every Expr-capable kind: the RefTypespec
// indirection every expression may carry, per §3.3.
type exprBase struct {
	typespec NodeID // ref-one -> RefTypespec
}

func typespecRefOf(s *Serializer, id NodeID) *RefTypespec {
	if n, ok := s.Get(id).(*RefTypespec); ok {
		return n
	}
	return nil
}

// RefTypespec is the indirection node of §3.3 between a holder and its
// Typespec, letting elaboration substitute the type without rewriting
// every holder.
type RefTypespec struct {
	base
	actual NodeID // ref-one -> Typespec
}

func (r *RefTypespec) Actual() Typespec {
	if t, ok := r.ser.Get(r.actual).(Typespec); ok {
		return t
	}
	return nil
}

func (r *RefTypespec) SetActual(t Typespec) {
	if t == nil {
		r.actual = 0
		return
	}
	r.actual = t.ID()
}

func (r *RefTypespec) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeRef, &r.actual)
}

func (s *Serializer) NewRefTypespec() *RefTypespec {
	return make_(s, KindRefTypespec, &RefTypespec{})
}

// Constant is the tagged-string literal of §3.3/§4.6.3.
type Constant struct {
	base
	exprBase
	Value     string // e.g. "UINT:30"; prefix encodes representation
	ConstType int32  // vpi*Const code matching Value's prefix
	Size      int32  // declared bit size; -1 = unsized/elastic
}

func (c *Constant) exprNode() {}

func (c *Constant) TypespecRef() *RefTypespec   { return typespecRefOf(c.ser, c.typespec) }
func (c *Constant) SetTypespecRef(r *RefTypespec) {
	if r == nil {
		c.typespec = 0
		return
	}
	c.typespec = r.ID()
}

func (c *Constant) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeRef, &c.typespec)
}

func (s *Serializer) NewConstant() *Constant {
	return make_(s, KindConstant, &Constant{Size: -1})
}

// Operation is the VPI op-node of §3.3/§4.6.4.
type Operation struct {
	base
	exprBase
	OpType     OpType
	Operands   []NodeID // own-many
	Reordered  bool
	Flattened  bool
}

func (o *Operation) exprNode() {}

func (o *Operation) TypespecRef() *RefTypespec { return typespecRefOf(o.ser, o.typespec) }
func (o *Operation) SetTypespecRef(r *RefTypespec) {
	if r == nil {
		o.typespec = 0
		return
	}
	o.typespec = r.ID()
}

func (o *Operation) OperandNodes() []Expr {
	out := make([]Expr, 0, len(o.Operands))
	for _, id := range o.Operands {
		if e, ok := o.ser.Get(id).(Expr); ok {
			out = append(out, e)
		}
	}
	return out
}

func (o *Operation) AppendOperand(e Expr) {
	e.SetParent(o)
	o.Operands = append(o.Operands, e.ID())
}

func (o *Operation) WalkEdges(visit func(EdgeKind, *NodeID)) {
	for i := range o.Operands {
		visit(EdgeOwn, &o.Operands[i])
	}
	visit(EdgeRef, &o.typespec)
}

func (s *Serializer) NewOperation() *Operation {
	return make_(s, KindOperation, &Operation{})
}

// RefObj is the name-carrying reference of §3.3; Actual is filled in by
// name binding (elaboration's bindAny or the standalone resolver).
type RefObj struct {
	base
	exprBase
	Name   string
	actual NodeID // ref-one -> bound variable/net/parameter/io-decl/function/gen-scope/instance
}

func (r *RefObj) exprNode() {}

func (r *RefObj) Actual() Node   { return r.ser.Get(r.actual) }
func (r *RefObj) SetActual(n Node) {
	if n == nil {
		r.actual = 0
		return
	}
	r.actual = n.ID()
}

func (r *RefObj) TypespecRef() *RefTypespec { return typespecRefOf(r.ser, r.typespec) }
func (r *RefObj) SetTypespecRef(t *RefTypespec) {
	if t == nil {
		r.typespec = 0
		return
	}
	r.typespec = t.ID()
}

func (r *RefObj) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeRef, &r.actual)
	visit(EdgeRef, &r.typespec)
}

func (s *Serializer) NewRefObj() *RefObj {
	return make_(s, KindRefObj, &RefObj{})
}

// HierPath is the dot-separated hierarchical selector of §3.3: an ordered
// sequence of path elements (RefObj or BitSelect).
type HierPath struct {
	base
	exprBase
	Elements []NodeID // own-many
}

func (h *HierPath) exprNode() {}

func (h *HierPath) ElementNodes() []Expr {
	out := make([]Expr, 0, len(h.Elements))
	for _, id := range h.Elements {
		if e, ok := h.ser.Get(id).(Expr); ok {
			out = append(out, e)
		}
	}
	return out
}

func (h *HierPath) AppendElement(e Expr) {
	e.SetParent(h)
	h.Elements = append(h.Elements, e.ID())
}

func (h *HierPath) TypespecRef() *RefTypespec { return typespecRefOf(h.ser, h.typespec) }
func (h *HierPath) SetTypespecRef(t *RefTypespec) {
	if t == nil {
		h.typespec = 0
		return
	}
	h.typespec = t.ID()
}

func (h *HierPath) WalkEdges(visit func(EdgeKind, *NodeID)) {
	for i := range h.Elements {
		visit(EdgeOwn, &h.Elements[i])
	}
	visit(EdgeRef, &h.typespec)
}

func (s *Serializer) NewHierPath() *HierPath {
	return make_(s, KindHierPath, &HierPath{})
}

// BitSelect is `name[index]`.
type BitSelect struct {
	base
	exprBase
	Name   string
	index  NodeID // own-one expr
	actual NodeID // ref-one binding, when used as a path element / lvalue
}

func (b *BitSelect) exprNode() {}

func (b *BitSelect) Index() Expr {
	e, _ := b.ser.Get(b.index).(Expr)
	return e
}
func (b *BitSelect) SetIndex(e Expr) {
	if e == nil {
		b.index = 0
		return
	}
	e.SetParent(b)
	b.index = e.ID()
}

func (b *BitSelect) Actual() Node     { return b.ser.Get(b.actual) }
func (b *BitSelect) SetActual(n Node) {
	if n == nil {
		b.actual = 0
		return
	}
	b.actual = n.ID()
}

func (b *BitSelect) TypespecRef() *RefTypespec { return typespecRefOf(b.ser, b.typespec) }
func (b *BitSelect) SetTypespecRef(t *RefTypespec) {
	if t == nil {
		b.typespec = 0
		return
	}
	b.typespec = t.ID()
}

func (b *BitSelect) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeOwn, &b.index)
	visit(EdgeRef, &b.actual)
	visit(EdgeRef, &b.typespec)
}

func (s *Serializer) NewBitSelect() *BitSelect {
	return make_(s, KindBitSelect, &BitSelect{})
}

// PartSelect is `name[left:right]`.
type PartSelect struct {
	base
	exprBase
	Name        string
	actual      NodeID // ref-one
	left, right NodeID // own-one expr each
}

func (p *PartSelect) exprNode() {}

func (p *PartSelect) Actual() Node { return p.ser.Get(p.actual) }
func (p *PartSelect) SetActual(n Node) {
	if n == nil {
		p.actual = 0
		return
	}
	p.actual = n.ID()
}

func (p *PartSelect) Left() Expr  { e, _ := p.ser.Get(p.left).(Expr); return e }
func (p *PartSelect) Right() Expr { e, _ := p.ser.Get(p.right).(Expr); return e }
func (p *PartSelect) SetLeft(e Expr) {
	if e != nil {
		e.SetParent(p)
		p.left = e.ID()
	}
}
func (p *PartSelect) SetRight(e Expr) {
	if e != nil {
		e.SetParent(p)
		p.right = e.ID()
	}
}

func (p *PartSelect) TypespecRef() *RefTypespec { return typespecRefOf(p.ser, p.typespec) }
func (p *PartSelect) SetTypespecRef(t *RefTypespec) {
	if t == nil {
		p.typespec = 0
		return
	}
	p.typespec = t.ID()
}

func (p *PartSelect) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeOwn, &p.left)
	visit(EdgeOwn, &p.right)
	visit(EdgeRef, &p.actual)
	visit(EdgeRef, &p.typespec)
}

func (s *Serializer) NewPartSelect() *PartSelect {
	return make_(s, KindPartSelect, &PartSelect{})
}

// IndexedPartSelectDir distinguishes `+:` from `-:`.
type IndexedPartSelectDir uint8

const (
	IndexedPlus IndexedPartSelectDir = iota
	IndexedMinus
)

// IndexedPartSelect is `name[base +: width]` / `name[base -: width]`.
type IndexedPartSelect struct {
	base
	exprBase
	Name            string
	actual          NodeID
	baseExpr, width NodeID // own-one expr each
	Dir             IndexedPartSelectDir
}

func (p *IndexedPartSelect) exprNode() {}

func (p *IndexedPartSelect) Actual() Node { return p.ser.Get(p.actual) }
func (p *IndexedPartSelect) SetActual(n Node) {
	if n == nil {
		p.actual = 0
		return
	}
	p.actual = n.ID()
}
func (p *IndexedPartSelect) BaseExpr() Expr { e, _ := p.ser.Get(p.baseExpr).(Expr); return e }
func (p *IndexedPartSelect) Width() Expr    { e, _ := p.ser.Get(p.width).(Expr); return e }
func (p *IndexedPartSelect) SetBaseExpr(e Expr) {
	if e != nil {
		e.SetParent(p)
		p.baseExpr = e.ID()
	}
}
func (p *IndexedPartSelect) SetWidth(e Expr) {
	if e != nil {
		e.SetParent(p)
		p.width = e.ID()
	}
}

func (p *IndexedPartSelect) TypespecRef() *RefTypespec { return typespecRefOf(p.ser, p.typespec) }
func (p *IndexedPartSelect) SetTypespecRef(t *RefTypespec) {
	if t == nil {
		p.typespec = 0
		return
	}
	p.typespec = t.ID()
}

func (p *IndexedPartSelect) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeOwn, &p.baseExpr)
	visit(EdgeOwn, &p.width)
	visit(EdgeRef, &p.actual)
	visit(EdgeRef, &p.typespec)
}

func (s *Serializer) NewIndexedPartSelect() *IndexedPartSelect {
	return make_(s, KindIndexedPartSelect, &IndexedPartSelect{})
}

// VarSelect is a general `name[i][j].field`-style selector used when the
// front-end hasn't already resolved the access down to Bit/Part/Indexed.
type VarSelect struct {
	base
	exprBase
	Name   string
	Exprs  []NodeID // own-many
	actual NodeID   // ref-one
}

func (v *VarSelect) exprNode() {}

func (v *VarSelect) Actual() Node { return v.ser.Get(v.actual) }
func (v *VarSelect) SetActual(n Node) {
	if n == nil {
		v.actual = 0
		return
	}
	v.actual = n.ID()
}

func (v *VarSelect) ExprNodes() []Expr {
	out := make([]Expr, 0, len(v.Exprs))
	for _, id := range v.Exprs {
		if e, ok := v.ser.Get(id).(Expr); ok {
			out = append(out, e)
		}
	}
	return out
}

func (v *VarSelect) TypespecRef() *RefTypespec { return typespecRefOf(v.ser, v.typespec) }
func (v *VarSelect) SetTypespecRef(t *RefTypespec) {
	if t == nil {
		v.typespec = 0
		return
	}
	v.typespec = t.ID()
}

func (v *VarSelect) WalkEdges(visit func(EdgeKind, *NodeID)) {
	for i := range v.Exprs {
		visit(EdgeOwn, &v.Exprs[i])
	}
	visit(EdgeRef, &v.actual)
	visit(EdgeRef, &v.typespec)
}

func (s *Serializer) NewVarSelect() *VarSelect {
	return make_(s, KindVarSelect, &VarSelect{})
}

// SysFuncCall is a `$system_call(args...)`.
type SysFuncCall struct {
	base
	exprBase
	Name string
	Args []NodeID // own-many
}

func (f *SysFuncCall) exprNode() {}

func (f *SysFuncCall) ArgNodes() []Expr {
	out := make([]Expr, 0, len(f.Args))
	for _, id := range f.Args {
		if e, ok := f.ser.Get(id).(Expr); ok {
			out = append(out, e)
		}
	}
	return out
}

func (f *SysFuncCall) TypespecRef() *RefTypespec { return typespecRefOf(f.ser, f.typespec) }
func (f *SysFuncCall) SetTypespecRef(t *RefTypespec) {
	if t == nil {
		f.typespec = 0
		return
	}
	f.typespec = t.ID()
}

func (f *SysFuncCall) WalkEdges(visit func(EdgeKind, *NodeID)) {
	for i := range f.Args {
		visit(EdgeOwn, &f.Args[i])
	}
	visit(EdgeRef, &f.typespec)
}

func (s *Serializer) NewSysFuncCall() *SysFuncCall {
	return make_(s, KindSysFuncCall, &SysFuncCall{})
}

// FuncCall is a user function/task call.
type FuncCall struct {
	base
	exprBase
	Name   string
	Args   []NodeID // own-many
	actual NodeID   // ref-one -> Function/Task
}

func (f *FuncCall) exprNode() {}

func (f *FuncCall) Actual() Node { return f.ser.Get(f.actual) }
func (f *FuncCall) SetActual(n Node) {
	if n == nil {
		f.actual = 0
		return
	}
	f.actual = n.ID()
}

func (f *FuncCall) ArgNodes() []Expr {
	out := make([]Expr, 0, len(f.Args))
	for _, id := range f.Args {
		if e, ok := f.ser.Get(id).(Expr); ok {
			out = append(out, e)
		}
	}
	return out
}

func (f *FuncCall) TypespecRef() *RefTypespec { return typespecRefOf(f.ser, f.typespec) }
func (f *FuncCall) SetTypespecRef(t *RefTypespec) {
	if t == nil {
		f.typespec = 0
		return
	}
	f.typespec = t.ID()
}

func (f *FuncCall) WalkEdges(visit func(EdgeKind, *NodeID)) {
	for i := range f.Args {
		visit(EdgeOwn, &f.Args[i])
	}
	visit(EdgeRef, &f.actual)
	visit(EdgeRef, &f.typespec)
}

func (s *Serializer) NewFuncCall() *FuncCall {
	return make_(s, KindFuncCall, &FuncCall{})
}

// TaggedPattern is one `tag: value` entry of an assignment pattern operand
// list, before or after flattening (§4.6.5).
type TaggedPattern struct {
	base
	exprBase
	Tag   string // a member name, "default", or a decimal index
	value NodeID // own-one expr
}

func (t *TaggedPattern) exprNode() {}

func (t *TaggedPattern) Value() Expr { e, _ := t.ser.Get(t.value).(Expr); return e }
func (t *TaggedPattern) SetValue(e Expr) {
	if e != nil {
		e.SetParent(t)
		t.value = e.ID()
	}
}

func (t *TaggedPattern) TypespecRef() *RefTypespec { return typespecRefOf(t.ser, t.typespec) }
func (t *TaggedPattern) SetTypespecRef(r *RefTypespec) {
	if r == nil {
		t.typespec = 0
		return
	}
	t.typespec = r.ID()
}

func (t *TaggedPattern) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeOwn, &t.value)
	visit(EdgeRef, &t.typespec)
}

func (s *Serializer) NewTaggedPattern() *TaggedPattern {
	return make_(s, KindTaggedPattern, &TaggedPattern{})
}
