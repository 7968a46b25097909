package ir

// blockBody is embedded by Begin/Fork: the local declarations plus the
// ordered statement list a named or unnamed block scope introduces
// (§3.3, §4.4.4).
type blockBody struct {
	Name   string
	vars   []NodeID // own-many Variable/LogicVar
	params []NodeID // own-many Parameter
	stmts  []NodeID // own-many Stmt
}

func (b *blockBody) Vars(s *Serializer) []Node {
	return idsToNodes(s, b.vars)
}
func (b *blockBody) AppendVar(parent Node, v Node) {
	v.SetParent(parent)
	b.vars = append(b.vars, v.ID())
}
func (b *blockBody) AppendParam(parent Node, p *Parameter) {
	p.SetParent(parent)
	b.params = append(b.params, p.ID())
}
func (b *blockBody) Stmts(s *Serializer) []Stmt {
	out := make([]Stmt, 0, len(b.stmts))
	for _, id := range b.stmts {
		if st, ok := s.Get(id).(Stmt); ok {
			out = append(out, st)
		}
	}
	return out
}
func (b *blockBody) AppendStmt(parent Node, st Stmt) {
	st.SetParent(parent)
	b.stmts = append(b.stmts, st.ID())
}

func (b *blockBody) walkEdges(visit func(EdgeKind, *NodeID)) {
	for i := range b.vars {
		visit(EdgeOwn, &b.vars[i])
	}
	for i := range b.params {
		visit(EdgeOwn, &b.params[i])
	}
	for i := range b.stmts {
		visit(EdgeOwn, &b.stmts[i])
	}
}

func (b *blockBody) scopeTables(s *Serializer) []ScopeTable {
	return []ScopeTable{
		{Name: "vars", Lookup: lookupNamed(s, b.vars)},
		{Name: "params", Lookup: lookupNamed(s, b.params)},
	}
}

func idsToNodes(s *Serializer, ids []NodeID) []Node {
	out := make([]Node, 0, len(ids))
	for _, id := range ids {
		if n := s.Get(id); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func lookupNamed(s *Serializer, ids []NodeID) func(string) Node {
	return func(name string) Node {
		for _, id := range ids {
			n := s.Get(id)
			if named, ok := n.(Named); ok && named.Name() == name {
				return n
			}
		}
		return nil
	}
}

func idsToTypespecs(s *Serializer, ids []NodeID) []Typespec {
	out := make([]Typespec, 0, len(ids))
	for _, id := range ids {
		if t, ok := s.Get(id).(Typespec); ok {
			out = append(out, t)
		}
	}
	return out
}

// Begin is a named or unnamed sequential block (§3.3).
type Begin struct {
	base
	blockBody
}

func (b *Begin) Name() string     { return b.blockBody.Name }
func (b *Begin) SetName(n string) { b.blockBody.Name = n }
func (b *Begin) stmtNode()        {}
func (b *Begin) ScopeTables() []ScopeTable { return b.blockBody.scopeTables(b.ser) }
func (b *Begin) WalkEdges(v func(EdgeKind, *NodeID)) { b.blockBody.walkEdges(v) }

func (s *Serializer) NewBegin() *Begin { return make_(s, KindBegin, &Begin{}) }

// Fork is a named or unnamed parallel block (§3.3); identical shape to
// Begin, distinguished only by Kind and by how the evaluator schedules it
// (out of scope for the evaluator's sequential model, see DESIGN.md).
type Fork struct {
	base
	blockBody
}

func (f *Fork) Name() string     { return f.blockBody.Name }
func (f *Fork) SetName(n string) { f.blockBody.Name = n }
func (f *Fork) stmtNode()        {}
func (f *Fork) ScopeTables() []ScopeTable { return f.blockBody.scopeTables(f.ser) }
func (f *Fork) WalkEdges(v func(EdgeKind, *NodeID)) { f.blockBody.walkEdges(v) }

func (s *Serializer) NewFork() *Fork { return make_(s, KindFork, &Fork{}) }

// ForStmt is a C-style `for(init; cond; iter) body` (§3.3).
type ForStmt struct {
	base
	initStmts []NodeID // own-many Assignment
	condition NodeID   // own-one expr
	iterStmts []NodeID // own-many Assignment
	body      NodeID   // own-one stmt
}

func (f *ForStmt) stmtNode() {}

func (f *ForStmt) Condition() Expr { e, _ := f.ser.Get(f.condition).(Expr); return e }
func (f *ForStmt) SetCondition(e Expr) {
	if e != nil {
		e.SetParent(f)
		f.condition = e.ID()
	}
}
func (f *ForStmt) Body() Stmt { st, _ := f.ser.Get(f.body).(Stmt); return st }
func (f *ForStmt) SetBody(st Stmt) {
	if st != nil {
		st.SetParent(f)
		f.body = st.ID()
	}
}
func (f *ForStmt) AppendInit(a *Assignment) {
	a.SetParent(f)
	f.initStmts = append(f.initStmts, a.ID())
}
func (f *ForStmt) AppendIter(a *Assignment) {
	a.SetParent(f)
	f.iterStmts = append(f.iterStmts, a.ID())
}
func (f *ForStmt) InitStmts() []*Assignment { return assignments(f.ser, f.initStmts) }
func (f *ForStmt) IterStmts() []*Assignment { return assignments(f.ser, f.iterStmts) }

func assignments(s *Serializer, ids []NodeID) []*Assignment {
	out := make([]*Assignment, 0, len(ids))
	for _, id := range ids {
		if a, ok := s.Get(id).(*Assignment); ok {
			out = append(out, a)
		}
	}
	return out
}

func (f *ForStmt) WalkEdges(visit func(EdgeKind, *NodeID)) {
	for i := range f.initStmts {
		visit(EdgeOwn, &f.initStmts[i])
	}
	visit(EdgeOwn, &f.condition)
	for i := range f.iterStmts {
		visit(EdgeOwn, &f.iterStmts[i])
	}
	visit(EdgeOwn, &f.body)
}

func (s *Serializer) NewForStmt() *ForStmt { return make_(s, KindForStmt, &ForStmt{}) }

// ForeachStmt is `foreach(array[i,j]) body` (§3.3).
type ForeachStmt struct {
	base
	arrayExpr NodeID   // own-one expr (the iterated reference)
	loopVars  []NodeID // own-many Variable, one per dimension
	body      NodeID   // own-one stmt
}

func (f *ForeachStmt) stmtNode() {}

func (f *ForeachStmt) ArrayExpr() Expr { e, _ := f.ser.Get(f.arrayExpr).(Expr); return e }
func (f *ForeachStmt) SetArrayExpr(e Expr) {
	if e != nil {
		e.SetParent(f)
		f.arrayExpr = e.ID()
	}
}
func (f *ForeachStmt) Body() Stmt { st, _ := f.ser.Get(f.body).(Stmt); return st }
func (f *ForeachStmt) SetBody(st Stmt) {
	if st != nil {
		st.SetParent(f)
		f.body = st.ID()
	}
}
func (f *ForeachStmt) AppendLoopVar(v *Variable) {
	v.SetParent(f)
	f.loopVars = append(f.loopVars, v.ID())
}
func (f *ForeachStmt) LoopVars() []*Variable {
	out := make([]*Variable, 0, len(f.loopVars))
	for _, id := range f.loopVars {
		if v, ok := f.ser.Get(id).(*Variable); ok {
			out = append(out, v)
		}
	}
	return out
}

func (f *ForeachStmt) ScopeTables() []ScopeTable {
	return []ScopeTable{{Name: "loop_vars", Lookup: lookupNamed(f.ser, f.loopVars)}}
}

func (f *ForeachStmt) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeOwn, &f.arrayExpr)
	for i := range f.loopVars {
		visit(EdgeOwn, &f.loopVars[i])
	}
	visit(EdgeOwn, &f.body)
}

func (s *Serializer) NewForeachStmt() *ForeachStmt { return make_(s, KindForeachStmt, &ForeachStmt{}) }

// condLoop is embedded by WhileStmt/DoWhile: `cond` tested before (while) or
// after (do-while) each run of `body`.
type condLoop struct {
	condition NodeID
	body      NodeID
}

func (c *condLoop) Condition(s *Serializer) Expr { e, _ := s.Get(c.condition).(Expr); return e }
func (c *condLoop) SetCondition(parent Node, e Expr) {
	if e != nil {
		e.SetParent(parent)
		c.condition = e.ID()
	}
}
func (c *condLoop) Body(s *Serializer) Stmt { st, _ := s.Get(c.body).(Stmt); return st }
func (c *condLoop) SetBody(parent Node, st Stmt) {
	if st != nil {
		st.SetParent(parent)
		c.body = st.ID()
	}
}
func (c *condLoop) walkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeOwn, &c.condition)
	visit(EdgeOwn, &c.body)
}

// WhileStmt is `while(cond) body`.
type WhileStmt struct {
	base
	condLoop
}

func (w *WhileStmt) stmtNode()                                {}
func (w *WhileStmt) Condition() Expr                          { return w.condLoop.Condition(w.ser) }
func (w *WhileStmt) SetCondition(e Expr)                      { w.condLoop.SetCondition(w, e) }
func (w *WhileStmt) Body() Stmt                               { return w.condLoop.Body(w.ser) }
func (w *WhileStmt) SetBody(st Stmt)                          { w.condLoop.SetBody(w, st) }
func (w *WhileStmt) WalkEdges(v func(EdgeKind, *NodeID))      { w.condLoop.walkEdges(v) }
func (s *Serializer) NewWhileStmt() *WhileStmt                { return make_(s, KindWhileStmt, &WhileStmt{}) }

// DoWhile is `do body while(cond);`.
type DoWhile struct {
	base
	condLoop
}

func (w *DoWhile) stmtNode()                           {}
func (w *DoWhile) Condition() Expr                     { return w.condLoop.Condition(w.ser) }
func (w *DoWhile) SetCondition(e Expr)                 { w.condLoop.SetCondition(w, e) }
func (w *DoWhile) Body() Stmt                          { return w.condLoop.Body(w.ser) }
func (w *DoWhile) SetBody(st Stmt)                     { w.condLoop.SetBody(w, st) }
func (w *DoWhile) WalkEdges(v func(EdgeKind, *NodeID)) { w.condLoop.walkEdges(v) }
func (s *Serializer) NewDoWhile() *DoWhile             { return make_(s, KindDoWhile, &DoWhile{}) }

// Repeat is `repeat(count) body`.
type Repeat struct {
	base
	count NodeID
	body  NodeID
}

func (r *Repeat) stmtNode() {}

func (r *Repeat) Count() Expr { e, _ := r.ser.Get(r.count).(Expr); return e }
func (r *Repeat) SetCount(e Expr) {
	if e != nil {
		e.SetParent(r)
		r.count = e.ID()
	}
}
func (r *Repeat) Body() Stmt { st, _ := r.ser.Get(r.body).(Stmt); return st }
func (r *Repeat) SetBody(st Stmt) {
	if st != nil {
		st.SetParent(r)
		r.body = st.ID()
	}
}

func (r *Repeat) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeOwn, &r.count)
	visit(EdgeOwn, &r.body)
}

func (s *Serializer) NewRepeat() *Repeat { return make_(s, KindRepeat, &Repeat{}) }

// IfStmt is `if(cond) body` with no else branch.
type IfStmt struct {
	base
	condition NodeID
	body      NodeID
}

func (f *IfStmt) stmtNode() {}

func (f *IfStmt) Condition() Expr { e, _ := f.ser.Get(f.condition).(Expr); return e }
func (f *IfStmt) SetCondition(e Expr) {
	if e != nil {
		e.SetParent(f)
		f.condition = e.ID()
	}
}
func (f *IfStmt) Body() Stmt { st, _ := f.ser.Get(f.body).(Stmt); return st }
func (f *IfStmt) SetBody(st Stmt) {
	if st != nil {
		st.SetParent(f)
		f.body = st.ID()
	}
}

func (f *IfStmt) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeOwn, &f.condition)
	visit(EdgeOwn, &f.body)
}

func (s *Serializer) NewIfStmt() *IfStmt { return make_(s, KindIfStmt, &IfStmt{}) }

// IfElse is `if(cond) ifBody else elseBody`.
type IfElse struct {
	base
	condition        NodeID
	ifBody, elseBody NodeID
}

func (f *IfElse) stmtNode() {}

func (f *IfElse) Condition() Expr { e, _ := f.ser.Get(f.condition).(Expr); return e }
func (f *IfElse) SetCondition(e Expr) {
	if e != nil {
		e.SetParent(f)
		f.condition = e.ID()
	}
}
func (f *IfElse) IfBody() Stmt { st, _ := f.ser.Get(f.ifBody).(Stmt); return st }
func (f *IfElse) SetIfBody(st Stmt) {
	if st != nil {
		st.SetParent(f)
		f.ifBody = st.ID()
	}
}
func (f *IfElse) ElseBody() Stmt { st, _ := f.ser.Get(f.elseBody).(Stmt); return st }
func (f *IfElse) SetElseBody(st Stmt) {
	if st != nil {
		st.SetParent(f)
		f.elseBody = st.ID()
	}
}

func (f *IfElse) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeOwn, &f.condition)
	visit(EdgeOwn, &f.ifBody)
	visit(EdgeOwn, &f.elseBody)
}

func (s *Serializer) NewIfElse() *IfElse { return make_(s, KindIfElse, &IfElse{}) }

// CaseItem is one `expr, expr: stmt` arm of a CaseStmt; an empty Exprs list
// marks the default arm (§4.6.4's case-equality semantics).
type CaseItem struct {
	base
	exprs []NodeID // own-many expr labels
	stmt  NodeID   // own-one stmt
}

func (c *CaseItem) Exprs() []Expr {
	out := make([]Expr, 0, len(c.exprs))
	for _, id := range c.exprs {
		if e, ok := c.ser.Get(id).(Expr); ok {
			out = append(out, e)
		}
	}
	return out
}
func (c *CaseItem) AppendExpr(e Expr) {
	e.SetParent(c)
	c.exprs = append(c.exprs, e.ID())
}
func (c *CaseItem) IsDefault() bool { return len(c.exprs) == 0 }

func (c *CaseItem) Stmt() Stmt { st, _ := c.ser.Get(c.stmt).(Stmt); return st }
func (c *CaseItem) SetStmt(st Stmt) {
	if st != nil {
		st.SetParent(c)
		c.stmt = st.ID()
	}
}

func (c *CaseItem) WalkEdges(visit func(EdgeKind, *NodeID)) {
	for i := range c.exprs {
		visit(EdgeOwn, &c.exprs[i])
	}
	visit(EdgeOwn, &c.stmt)
}

func (s *Serializer) NewCaseItem() *CaseItem { return make_(s, KindCaseItem, &CaseItem{}) }

// CaseStmt is `case(condition) items endcase` (§3.3, §4.6.4).
type CaseStmt struct {
	base
	condition NodeID
	items     []NodeID // own-many CaseItem
}

func (c *CaseStmt) stmtNode() {}

func (c *CaseStmt) Condition() Expr { e, _ := c.ser.Get(c.condition).(Expr); return e }
func (c *CaseStmt) SetCondition(e Expr) {
	if e != nil {
		e.SetParent(c)
		c.condition = e.ID()
	}
}
func (c *CaseStmt) AppendItem(it *CaseItem) {
	it.SetParent(c)
	c.items = append(c.items, it.ID())
}
func (c *CaseStmt) Items() []*CaseItem {
	out := make([]*CaseItem, 0, len(c.items))
	for _, id := range c.items {
		if it, ok := c.ser.Get(id).(*CaseItem); ok {
			out = append(out, it)
		}
	}
	return out
}

func (c *CaseStmt) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeOwn, &c.condition)
	for i := range c.items {
		visit(EdgeOwn, &c.items[i])
	}
}

func (s *Serializer) NewCaseStmt() *CaseStmt { return make_(s, KindCaseStmt, &CaseStmt{}) }

// Assignment is a blocking or nonblocking `lhs op= rhs` (§3.3, §4.6.6).
type Assignment struct {
	base
	lhs, rhs NodeID // own-one expr each
	OpType   OpType // OpPlus for +=, OpInvalid for plain '='
	Blocking bool
}

func (a *Assignment) stmtNode() {}

func (a *Assignment) Lhs() Expr { e, _ := a.ser.Get(a.lhs).(Expr); return e }
func (a *Assignment) SetLhs(e Expr) {
	if e != nil {
		e.SetParent(a)
		a.lhs = e.ID()
	}
}
func (a *Assignment) Rhs() Expr { e, _ := a.ser.Get(a.rhs).(Expr); return e }
func (a *Assignment) SetRhs(e Expr) {
	if e != nil {
		e.SetParent(a)
		a.rhs = e.ID()
	}
}

func (a *Assignment) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeOwn, &a.lhs)
	visit(EdgeOwn, &a.rhs)
}

func (s *Serializer) NewAssignment() *Assignment { return make_(s, KindAssignment, &Assignment{}) }

// ContAssign is a continuous `assign lhs = rhs;` owned directly by an
// instance rather than by a process (§3.3).
type ContAssign struct {
	base
	lhs, rhs NodeID
}

func (a *ContAssign) Lhs() Expr { e, _ := a.ser.Get(a.lhs).(Expr); return e }
func (a *ContAssign) SetLhs(e Expr) {
	if e != nil {
		e.SetParent(a)
		a.lhs = e.ID()
	}
}
func (a *ContAssign) Rhs() Expr { e, _ := a.ser.Get(a.rhs).(Expr); return e }
func (a *ContAssign) SetRhs(e Expr) {
	if e != nil {
		e.SetParent(a)
		a.rhs = e.ID()
	}
}

func (a *ContAssign) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeOwn, &a.lhs)
	visit(EdgeOwn, &a.rhs)
}

func (s *Serializer) NewContAssign() *ContAssign { return make_(s, KindContAssign, &ContAssign{}) }

// AlwaysKind distinguishes the four always-process flavors (§3.3).
type AlwaysKind uint8

const (
	AlwaysPlain AlwaysKind = iota
	AlwaysComb
	AlwaysFF
	AlwaysLatch
)

// Always is an `always[_comb|_ff|_latch] stmt` process.
type Always struct {
	base
	AlwaysKind AlwaysKind
	stmt       NodeID // own-one stmt, typically EventControl wrapping Begin
}

func (a *Always) Stmt() Stmt { st, _ := a.ser.Get(a.stmt).(Stmt); return st }
func (a *Always) SetStmt(st Stmt) {
	if st != nil {
		st.SetParent(a)
		a.stmt = st.ID()
	}
}

func (a *Always) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeOwn, &a.stmt)
}

func (s *Serializer) NewAlways() *Always { return make_(s, KindAlways, &Always{}) }

// Initial is an `initial stmt` process.
type Initial struct {
	base
	stmt NodeID
}

func (i *Initial) Stmt() Stmt { st, _ := i.ser.Get(i.stmt).(Stmt); return st }
func (i *Initial) SetStmt(st Stmt) {
	if st != nil {
		st.SetParent(i)
		i.stmt = st.ID()
	}
}

func (i *Initial) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeOwn, &i.stmt)
}

func (s *Serializer) NewInitial() *Initial { return make_(s, KindInitial, &Initial{}) }

// EventControl is `@(conditions) stmt` (posedge/negedge/plain event refs).
type EventControl struct {
	base
	conditions []NodeID // own-many expr
	stmt       NodeID   // own-one stmt
}

func (e *EventControl) stmtNode() {}

func (e *EventControl) AppendCondition(expr Expr) {
	expr.SetParent(e)
	e.conditions = append(e.conditions, expr.ID())
}
func (e *EventControl) Conditions() []Expr {
	out := make([]Expr, 0, len(e.conditions))
	for _, id := range e.conditions {
		if x, ok := e.ser.Get(id).(Expr); ok {
			out = append(out, x)
		}
	}
	return out
}
func (e *EventControl) Stmt() Stmt { st, _ := e.ser.Get(e.stmt).(Stmt); return st }
func (e *EventControl) SetStmt(st Stmt) {
	if st != nil {
		st.SetParent(e)
		e.stmt = st.ID()
	}
}

func (e *EventControl) WalkEdges(visit func(EdgeKind, *NodeID)) {
	for i := range e.conditions {
		visit(EdgeOwn, &e.conditions[i])
	}
	visit(EdgeOwn, &e.stmt)
}

func (s *Serializer) NewEventControl() *EventControl { return make_(s, KindEventControl, &EventControl{}) }

// ReturnStmt is `return [value];`.
type ReturnStmt struct {
	base
	value NodeID // own-one expr, optional
}

func (r *ReturnStmt) stmtNode() {}

func (r *ReturnStmt) Value() Expr { e, _ := r.ser.Get(r.value).(Expr); return e }
func (r *ReturnStmt) SetValue(e Expr) {
	if e != nil {
		e.SetParent(r)
		r.value = e.ID()
	}
}

func (r *ReturnStmt) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeOwn, &r.value)
}

func (s *Serializer) NewReturnStmt() *ReturnStmt { return make_(s, KindReturnStmt, &ReturnStmt{}) }

// ContinueStmt is `continue;`.
type ContinueStmt struct{ base }

func (c *ContinueStmt) stmtNode()                        {}
func (c *ContinueStmt) WalkEdges(func(EdgeKind, *NodeID)) {}
func (s *Serializer) NewContinueStmt() *ContinueStmt      { return make_(s, KindContinueStmt, &ContinueStmt{}) }

// BreakStmt is `break;`.
type BreakStmt struct{ base }

func (b *BreakStmt) stmtNode()                        {}
func (b *BreakStmt) WalkEdges(func(EdgeKind, *NodeID)) {}
func (s *Serializer) NewBreakStmt() *BreakStmt         { return make_(s, KindBreakStmt, &BreakStmt{}) }
