package ir

// netLike is embedded by the four leaf declaration kinds (Net, LogicNet,
// Variable, LogicVar) that differ from each other only in Kind and in the
// four-valued-vs-two-valued semantics the evaluator applies to them.
type netLike struct {
	Name     string
	typespec NodeID // ref-one -> RefTypespec
	initial  NodeID // own-one expr, optional (variables only; nets leave it 0)
}

func (n *netLike) GetName() string { return n.Name }
func (n *netLike) SetName(v string) { n.Name = v }

func (n *netLike) TypespecRef(s *Serializer) *RefTypespec { return typespecRefOf(s, n.typespec) }
func (n *netLike) SetTypespecRef(r *RefTypespec) {
	if r == nil {
		n.typespec = 0
		return
	}
	n.typespec = r.ID()
}

func (n *netLike) Initial(s *Serializer) Expr { e, _ := s.Get(n.initial).(Expr); return e }
func (n *netLike) SetInitial(parent Node, e Expr) {
	if e != nil {
		e.SetParent(parent)
		n.initial = e.ID()
	}
}

func (n *netLike) walkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeRef, &n.typespec)
	visit(EdgeOwn, &n.initial)
}

// Net is a two-state net (`wire`, `tri`, ...).
type Net struct {
	base
	netLike
}

func (n *Net) Name() string                           { return n.netLike.GetName() }
func (n *Net) SetName(v string)                       { n.netLike.SetName(v) }
func (n *Net) TypespecRef() *RefTypespec               { return n.netLike.TypespecRef(n.ser) }
func (n *Net) WalkEdges(v func(EdgeKind, *NodeID))     { n.netLike.walkEdges(v) }
func (s *Serializer) NewNet() *Net                     { return make_(s, KindNet, &Net{}) }

// LogicNet is a four-valued `logic` net.
type LogicNet struct {
	base
	netLike
}

func (n *LogicNet) Name() string                       { return n.netLike.GetName() }
func (n *LogicNet) SetName(v string)                   { n.netLike.SetName(v) }
func (n *LogicNet) TypespecRef() *RefTypespec           { return n.netLike.TypespecRef(n.ser) }
func (n *LogicNet) WalkEdges(v func(EdgeKind, *NodeID)) { n.netLike.walkEdges(v) }
func (s *Serializer) NewLogicNet() *LogicNet            { return make_(s, KindLogicNet, &LogicNet{}) }

// Variable is a two-state behavioral variable (`int`, `bit`, ...).
type Variable struct {
	base
	netLike
}

func (v *Variable) Name() string                       { return v.netLike.GetName() }
func (v *Variable) SetName(n string)                    { v.netLike.SetName(n) }
func (v *Variable) TypespecRef() *RefTypespec            { return v.netLike.TypespecRef(v.ser) }
func (v *Variable) Initial() Expr                        { return v.netLike.Initial(v.ser) }
func (v *Variable) SetInitial(e Expr)                    { v.netLike.SetInitial(v, e) }
func (v *Variable) WalkEdges(fn func(EdgeKind, *NodeID)) { v.netLike.walkEdges(fn) }
func (s *Serializer) NewVariable() *Variable             { return make_(s, KindVariable, &Variable{}) }

// LogicVar is a four-valued behavioral variable (`logic`, declared as a
// process-local reg rather than a net).
type LogicVar struct {
	base
	netLike
}

func (v *LogicVar) Name() string                       { return v.netLike.GetName() }
func (v *LogicVar) SetName(n string)                    { v.netLike.SetName(n) }
func (v *LogicVar) TypespecRef() *RefTypespec            { return v.netLike.TypespecRef(v.ser) }
func (v *LogicVar) Initial() Expr                        { return v.netLike.Initial(v.ser) }
func (v *LogicVar) SetInitial(e Expr)                    { v.netLike.SetInitial(v, e) }
func (v *LogicVar) WalkEdges(fn func(EdgeKind, *NodeID)) { v.netLike.walkEdges(fn) }
func (s *Serializer) NewLogicVar() *LogicVar             { return make_(s, KindLogicVar, &LogicVar{}) }

// IODirection is a port/io-decl direction.
type IODirection uint8

const (
	DirInput IODirection = iota
	DirOutput
	DirInout
)

// Port is a module/interface/program port, connecting an internal net to
// the instance boundary (§3.3: Port.lowConn.actual).
type Port struct {
	base
	name          string
	Direction     IODirection
	typespec      NodeID // ref-one
	lowConnActual NodeID // ref-one -> the internal Net/Variable this port binds
}

func (p *Port) Name() string     { return p.name }
func (p *Port) SetName(n string) { p.name = n }

func (p *Port) TypespecRef() *RefTypespec { return typespecRefOf(p.ser, p.typespec) }
func (p *Port) SetTypespecRef(r *RefTypespec) {
	if r == nil {
		p.typespec = 0
		return
	}
	p.typespec = r.ID()
}

func (p *Port) LowConnActual() Node { return p.ser.Get(p.lowConnActual) }
func (p *Port) SetLowConnActual(n Node) {
	if n == nil {
		p.lowConnActual = 0
		return
	}
	p.lowConnActual = n.ID()
}

func (p *Port) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeRef, &p.typespec)
	visit(EdgeRef, &p.lowConnActual)
}

func (s *Serializer) NewPort() *Port { return make_(s, KindPort, &Port{}) }

// Parameter is a `parameter`/`localparam` declaration with its declared
// default (§3.3, §4.6.6).
type Parameter struct {
	base
	name         string
	Localparam   bool
	typespec     NodeID // ref-one
	defaultValue NodeID // own-one expr
}

func (p *Parameter) Name() string     { return p.name }
func (p *Parameter) SetName(n string) { p.name = n }

func (p *Parameter) TypespecRef() *RefTypespec { return typespecRefOf(p.ser, p.typespec) }
func (p *Parameter) SetTypespecRef(r *RefTypespec) {
	if r == nil {
		p.typespec = 0
		return
	}
	p.typespec = r.ID()
}

func (p *Parameter) DefaultValue() Expr { e, _ := p.ser.Get(p.defaultValue).(Expr); return e }
func (p *Parameter) SetDefaultValue(e Expr) {
	if e != nil {
		e.SetParent(p)
		p.defaultValue = e.ID()
	}
}

func (p *Parameter) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeRef, &p.typespec)
	visit(EdgeOwn, &p.defaultValue)
}

func (s *Serializer) NewParameter() *Parameter { return make_(s, KindParameter, &Parameter{}) }

// ParamAssign binds a Parameter to an override value, either from a
// declared default or from an instantiation's `#(...)` list (§4.6.6).
type ParamAssign struct {
	base
	lhs NodeID // ref-one -> Parameter
	rhs NodeID // own-one expr (usually a reduced Constant after elaboration)
}

func (p *ParamAssign) Lhs() *Parameter {
	lp, _ := p.ser.Get(p.lhs).(*Parameter)
	return lp
}
func (p *ParamAssign) SetLhs(lp *Parameter) {
	if lp == nil {
		p.lhs = 0
		return
	}
	p.lhs = lp.ID()
}

func (p *ParamAssign) Rhs() Expr { e, _ := p.ser.Get(p.rhs).(Expr); return e }
func (p *ParamAssign) SetRhs(e Expr) {
	if e != nil {
		e.SetParent(p)
		p.rhs = e.ID()
	}
}

func (p *ParamAssign) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeRef, &p.lhs)
	visit(EdgeOwn, &p.rhs)
}

func (s *Serializer) NewParamAssign() *ParamAssign { return make_(s, KindParamAssign, &ParamAssign{}) }

// IODecl is a function/task argument declaration.
type IODecl struct {
	base
	name      string
	Direction IODirection
	typespec  NodeID // ref-one
}

func (d *IODecl) Name() string     { return d.name }
func (d *IODecl) SetName(n string) { d.name = n }

func (d *IODecl) TypespecRef() *RefTypespec { return typespecRefOf(d.ser, d.typespec) }
func (d *IODecl) SetTypespecRef(r *RefTypespec) {
	if r == nil {
		d.typespec = 0
		return
	}
	d.typespec = r.ID()
}

func (d *IODecl) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeRef, &d.typespec)
}

func (s *Serializer) NewIODecl() *IODecl { return make_(s, KindIODecl, &IODecl{}) }

// taskFuncBody is embedded by Function/Task: arguments, locals, and the
// single statement body (normally a Begin), per §3.3/§4.5.3.
type taskFuncBody struct {
	Name       string
	ioDecls    []NodeID // own-many IODecl
	variables  []NodeID // own-many Variable (locals)
	parameters []NodeID // own-many Parameter
	stmt       NodeID   // own-one Stmt
}

func (t *taskFuncBody) AppendIODecl(parent Node, d *IODecl) {
	d.SetParent(parent)
	t.ioDecls = append(t.ioDecls, d.ID())
}
func (t *taskFuncBody) AppendVariable(parent Node, v *Variable) {
	v.SetParent(parent)
	t.variables = append(t.variables, v.ID())
}
func (t *taskFuncBody) AppendParameter(parent Node, p *Parameter) {
	p.SetParent(parent)
	t.parameters = append(t.parameters, p.ID())
}
func (t *taskFuncBody) SetStmt(parent Node, st Stmt) {
	if st != nil {
		st.SetParent(parent)
		t.stmt = st.ID()
	}
}
func (t *taskFuncBody) Stmt(s *Serializer) Stmt { st, _ := s.Get(t.stmt).(Stmt); return st }

func (t *taskFuncBody) IODecls(s *Serializer) []*IODecl {
	out := make([]*IODecl, 0, len(t.ioDecls))
	for _, id := range t.ioDecls {
		if d, ok := s.Get(id).(*IODecl); ok {
			out = append(out, d)
		}
	}
	return out
}

func (t *taskFuncBody) walkEdges(visit func(EdgeKind, *NodeID)) {
	for i := range t.ioDecls {
		visit(EdgeOwn, &t.ioDecls[i])
	}
	for i := range t.variables {
		visit(EdgeOwn, &t.variables[i])
	}
	for i := range t.parameters {
		visit(EdgeOwn, &t.parameters[i])
	}
	visit(EdgeOwn, &t.stmt)
}

func (t *taskFuncBody) scopeTables(s *Serializer) []ScopeTable {
	return []ScopeTable{
		{Name: "io_decls", Lookup: lookupNamed(s, t.ioDecls)},
		{Name: "variables", Lookup: lookupNamed(s, t.variables)},
		{Name: "parameters", Lookup: lookupNamed(s, t.parameters)},
	}
}

// Function is a SystemVerilog `function` (§3.3, §4.5.3, §4.6.2).
type Function struct {
	base
	taskFuncBody
	returnTypespec NodeID // ref-one
}

func (f *Function) Name() string     { return f.taskFuncBody.Name }
func (f *Function) SetName(n string) { f.taskFuncBody.Name = n }
func (f *Function) DefName() string  { return f.taskFuncBody.Name }
func (f *Function) SetDefName(n string) { f.taskFuncBody.Name = n }

func (f *Function) ReturnTypespecRef() *RefTypespec { return typespecRefOf(f.ser, f.returnTypespec) }
func (f *Function) SetReturnTypespecRef(r *RefTypespec) {
	if r == nil {
		f.returnTypespec = 0
		return
	}
	f.returnTypespec = r.ID()
}

func (f *Function) Stmt() Stmt     { return f.taskFuncBody.Stmt(f.ser) }
func (f *Function) SetStmt(st Stmt) { f.taskFuncBody.SetStmt(f, st) }

func (f *Function) ScopeTables() []ScopeTable { return f.taskFuncBody.scopeTables(f.ser) }

func (f *Function) WalkEdges(visit func(EdgeKind, *NodeID)) {
	f.taskFuncBody.walkEdges(visit)
	visit(EdgeRef, &f.returnTypespec)
}

func (s *Serializer) NewFunction() *Function { return make_(s, KindFunction, &Function{}) }

// Task is a SystemVerilog `task` (no return value).
type Task struct {
	base
	taskFuncBody
}

func (t *Task) Name() string        { return t.taskFuncBody.Name }
func (t *Task) SetName(n string)     { t.taskFuncBody.Name = n }
func (t *Task) DefName() string     { return t.taskFuncBody.Name }
func (t *Task) SetDefName(n string)  { t.taskFuncBody.Name = n }
func (t *Task) Stmt() Stmt           { return t.taskFuncBody.Stmt(t.ser) }
func (t *Task) SetStmt(st Stmt)      { t.taskFuncBody.SetStmt(t, st) }
func (t *Task) ScopeTables() []ScopeTable { return t.taskFuncBody.scopeTables(t.ser) }
func (t *Task) WalkEdges(v func(EdgeKind, *NodeID)) { t.taskFuncBody.walkEdges(v) }

func (s *Serializer) NewTask() *Task { return make_(s, KindTask, &Task{}) }

// instanceBody holds everything a Module/Interface/Program definition owns:
// its interface, its internal declarations, its processes, and its
// instantiated children (§3.3, §4.4.4, §4.5).
type instanceBody struct {
	Name            string // instance name ("" for an un-instantiated definition)
	DefName         string // module/interface/program type name

	ports          []NodeID // own-many Port
	nets           []NodeID // own-many Net/LogicNet
	variables      []NodeID // own-many Variable/LogicVar
	parameters     []NodeID // own-many Parameter
	paramAssigns   []NodeID // own-many ParamAssign
	contAssigns    []NodeID // own-many ContAssign
	processes      []NodeID // own-many Always/Initial
	taskFuncs      []NodeID // own-many Function/Task
	genScopeArrays []NodeID // own-many GenScopeArray
	subInstances   []NodeID // own-many Module/Interface/Program (instantiated children)
	typespecs      []NodeID // own-many Typespec declared in this scope
}

func (ib *instanceBody) AppendPort(parent Node, p *Port) {
	p.SetParent(parent)
	ib.ports = append(ib.ports, p.ID())
}
func (ib *instanceBody) AppendNet(parent Node, n Node) {
	n.SetParent(parent)
	ib.nets = append(ib.nets, n.ID())
}
func (ib *instanceBody) AppendVariable(parent Node, v Node) {
	v.SetParent(parent)
	ib.variables = append(ib.variables, v.ID())
}
func (ib *instanceBody) AppendParameter(parent Node, p *Parameter) {
	p.SetParent(parent)
	ib.parameters = append(ib.parameters, p.ID())
}
func (ib *instanceBody) AppendParamAssign(parent Node, pa *ParamAssign) {
	pa.SetParent(parent)
	ib.paramAssigns = append(ib.paramAssigns, pa.ID())
}
func (ib *instanceBody) AppendContAssign(parent Node, ca *ContAssign) {
	ca.SetParent(parent)
	ib.contAssigns = append(ib.contAssigns, ca.ID())
}
func (ib *instanceBody) AppendProcess(parent Node, n Node) {
	n.SetParent(parent)
	ib.processes = append(ib.processes, n.ID())
}
func (ib *instanceBody) AppendTaskFunc(parent Node, n Node) {
	n.SetParent(parent)
	ib.taskFuncs = append(ib.taskFuncs, n.ID())
}
func (ib *instanceBody) AppendGenScopeArray(parent Node, g *GenScopeArray) {
	g.SetParent(parent)
	ib.genScopeArrays = append(ib.genScopeArrays, g.ID())
}
func (ib *instanceBody) AppendSubInstance(parent Node, n Node) {
	n.SetParent(parent)
	ib.subInstances = append(ib.subInstances, n.ID())
}
func (ib *instanceBody) AppendTypespec(parent Node, t Typespec) {
	t.SetParent(parent)
	ib.typespecs = append(ib.typespecs, t.ID())
}

// Typespecs returns the instance's locally-declared typedefs/classes/enums
// in declaration order, for internal/resolve's FindType (§4.4.4's
// "typespecs" table, which ScopeTables doesn't expose since most Typespec
// kinds have no Name()).
func (ib *instanceBody) Typespecs(s *Serializer) []Typespec {
	return idsToTypespecs(s, ib.typespecs)
}

func (ib *instanceBody) Ports(s *Serializer) []*Port {
	out := make([]*Port, 0, len(ib.ports))
	for _, id := range ib.ports {
		if p, ok := s.Get(id).(*Port); ok {
			out = append(out, p)
		}
	}
	return out
}
func (ib *instanceBody) Nets(s *Serializer) []Node      { return idsToNodes(s, ib.nets) }
func (ib *instanceBody) Variables(s *Serializer) []Node { return idsToNodes(s, ib.variables) }
func (ib *instanceBody) Parameters(s *Serializer) []*Parameter {
	out := make([]*Parameter, 0, len(ib.parameters))
	for _, id := range ib.parameters {
		if p, ok := s.Get(id).(*Parameter); ok {
			out = append(out, p)
		}
	}
	return out
}
func (ib *instanceBody) ContAssigns(s *Serializer) []Node { return idsToNodes(s, ib.contAssigns) }
func (ib *instanceBody) Processes(s *Serializer) []Node   { return idsToNodes(s, ib.processes) }
func (ib *instanceBody) GenScopeArrays(s *Serializer) []*GenScopeArray {
	out := make([]*GenScopeArray, 0, len(ib.genScopeArrays))
	for _, id := range ib.genScopeArrays {
		if g, ok := s.Get(id).(*GenScopeArray); ok {
			out = append(out, g)
		}
	}
	return out
}
func (ib *instanceBody) TaskFuncs(s *Serializer) []Node { return idsToNodes(s, ib.taskFuncs) }
func (ib *instanceBody) SubInstances(s *Serializer) []Instance {
	out := make([]Instance, 0, len(ib.subInstances))
	for _, id := range ib.subInstances {
		if n, ok := s.Get(id).(Instance); ok {
			out = append(out, n)
		}
	}
	return out
}
func (ib *instanceBody) ParamAssigns(s *Serializer) []*ParamAssign {
	out := make([]*ParamAssign, 0, len(ib.paramAssigns))
	for _, id := range ib.paramAssigns {
		if pa, ok := s.Get(id).(*ParamAssign); ok {
			out = append(out, pa)
		}
	}
	return out
}

func (ib *instanceBody) walkEdges(visit func(EdgeKind, *NodeID)) {
	for _, ids := range [][]NodeID{
		ib.ports, ib.nets, ib.variables, ib.parameters, ib.paramAssigns,
		ib.contAssigns, ib.processes, ib.taskFuncs, ib.genScopeArrays,
		ib.subInstances, ib.typespecs,
	} {
		for i := range ids {
			visit(EdgeOwn, &ids[i])
		}
	}
}

// scopeTables implements §4.4.4's per-instance table ordering:
// nets/variables first (the signal namespace), then parameters, then
// task/functions, then generate scopes, then nested instances, and ports
// last, so a name declared as both a port and a net binds to the net.
func (ib *instanceBody) scopeTables(s *Serializer) []ScopeTable {
	return []ScopeTable{
		{Name: "nets", Lookup: lookupNamed(s, ib.nets)},
		{Name: "variables", Lookup: lookupNamed(s, ib.variables)},
		{Name: "parameters", Lookup: lookupNamed(s, ib.parameters)},
		{Name: "task_funcs", Lookup: lookupNamed(s, ib.taskFuncs)},
		{Name: "gen_scope_arrays", Lookup: lookupNamed(s, ib.genScopeArrays)},
		{Name: "sub_instances", Lookup: lookupNamed(s, ib.subInstances)},
		{Name: "ports", Lookup: lookupNamed(s, ib.ports)},
	}
}

// Module is a `module` definition or instance (§3.3).
type Module struct {
	base
	instanceBody
}

func (m *Module) Name() string        { return m.instanceBody.Name }
func (m *Module) SetName(n string)     { m.instanceBody.Name = n }
func (m *Module) DefName() string      { return m.instanceBody.DefName }
func (m *Module) SetDefName(n string)  { m.instanceBody.DefName = n }
func (m *Module) ScopeTables() []ScopeTable { return m.instanceBody.scopeTables(m.ser) }
func (m *Module) WalkEdges(v func(EdgeKind, *NodeID)) { m.instanceBody.walkEdges(v) }

func (s *Serializer) NewModule() *Module { return make_(s, KindModule, &Module{}) }

// Interface is an `interface` definition or instance.
type Interface struct {
	base
	instanceBody
}

func (m *Interface) Name() string        { return m.instanceBody.Name }
func (m *Interface) SetName(n string)     { m.instanceBody.Name = n }
func (m *Interface) DefName() string      { return m.instanceBody.DefName }
func (m *Interface) SetDefName(n string)  { m.instanceBody.DefName = n }
func (m *Interface) ScopeTables() []ScopeTable { return m.instanceBody.scopeTables(m.ser) }
func (m *Interface) WalkEdges(v func(EdgeKind, *NodeID)) { m.instanceBody.walkEdges(v) }

func (s *Serializer) NewInterface() *Interface { return make_(s, KindInterface, &Interface{}) }

// Program is a `program` definition or instance.
type Program struct {
	base
	instanceBody
}

func (m *Program) Name() string        { return m.instanceBody.Name }
func (m *Program) SetName(n string)     { m.instanceBody.Name = n }
func (m *Program) DefName() string      { return m.instanceBody.DefName }
func (m *Program) SetDefName(n string)  { m.instanceBody.DefName = n }
func (m *Program) ScopeTables() []ScopeTable { return m.instanceBody.scopeTables(m.ser) }
func (m *Program) WalkEdges(v func(EdgeKind, *NodeID)) { m.instanceBody.walkEdges(v) }

func (s *Serializer) NewProgram() *Program { return make_(s, KindProgram, &Program{}) }

// Package is a `package` definition: parameters, typespecs, and
// task/functions visible through explicit or wildcard import (§4.4.3 item 7).
type Package struct {
	base
	name       string
	parameters []NodeID // own-many Parameter
	paramAssigns []NodeID
	typespecs  []NodeID // own-many Typespec
	taskFuncs  []NodeID // own-many Function/Task
	variables  []NodeID // own-many Variable
}

func (p *Package) Name() string     { return p.name }
func (p *Package) SetName(n string) { p.name = n }

func (p *Package) AppendParameter(pa *Parameter) {
	pa.SetParent(p)
	p.parameters = append(p.parameters, pa.ID())
}
func (p *Package) AppendTypespec(t Typespec) {
	t.SetParent(p)
	p.typespecs = append(p.typespecs, t.ID())
}
func (p *Package) Typespecs(s *Serializer) []Typespec { return idsToTypespecs(s, p.typespecs) }
func (p *Package) AppendTaskFunc(n Node) {
	n.SetParent(p)
	p.taskFuncs = append(p.taskFuncs, n.ID())
}
func (p *Package) AppendVariable(v Node) {
	v.SetParent(p)
	p.variables = append(p.variables, v.ID())
}

// TaskFuncs returns the package's Function/Task members in declaration
// order, for consumers (internal/uhdmgraph) that need an ordered walk
// rather than the name-keyed ScopeTables lookup.
func (p *Package) TaskFuncs(s *Serializer) []Node { return idsToNodes(s, p.taskFuncs) }

func (p *Package) ScopeTables() []ScopeTable {
	return []ScopeTable{
		{Name: "parameters", Lookup: lookupNamed(p.ser, p.parameters)},
		{Name: "typespecs", Lookup: lookupNamed(p.ser, p.typespecs)},
		{Name: "task_funcs", Lookup: lookupNamed(p.ser, p.taskFuncs)},
		{Name: "variables", Lookup: lookupNamed(p.ser, p.variables)},
	}
}

func (p *Package) WalkEdges(visit func(EdgeKind, *NodeID)) {
	for _, ids := range [][]NodeID{p.parameters, p.paramAssigns, p.typespecs, p.taskFuncs, p.variables} {
		for i := range ids {
			visit(EdgeOwn, &ids[i])
		}
	}
}

func (s *Serializer) NewPackage() *Package { return make_(s, KindPackage, &Package{}) }

// ClassDefn is a `class` definition, optionally `extends`-ing a base class
// (§4.4.4's this/super handling, §4.5's class elaboration).
type ClassDefn struct {
	base
	name       string
	extends    NodeID // ref-one -> ClassDefn (base class)
	variables  []NodeID
	parameters []NodeID
	paramAssigns []NodeID
	methods    []NodeID // own-many Function/Task
	typespecs  []NodeID
}

func (c *ClassDefn) Name() string     { return c.name }
func (c *ClassDefn) SetName(n string) { c.name = n }

func (c *ClassDefn) Extends() *ClassDefn {
	b, _ := c.ser.Get(c.extends).(*ClassDefn)
	return b
}
func (c *ClassDefn) SetExtends(b *ClassDefn) {
	if b == nil {
		c.extends = 0
		return
	}
	c.extends = b.ID()
}

func (c *ClassDefn) AppendVariable(v *Variable) {
	v.SetParent(c)
	c.variables = append(c.variables, v.ID())
}
func (c *ClassDefn) AppendParameter(p *Parameter) {
	p.SetParent(c)
	c.parameters = append(c.parameters, p.ID())
}
func (c *ClassDefn) AppendMethod(n Node) {
	n.SetParent(c)
	c.methods = append(c.methods, n.ID())
}

// Methods returns the class's Function/Task members in declaration order.
func (c *ClassDefn) Methods(s *Serializer) []Node { return idsToNodes(s, c.methods) }
func (c *ClassDefn) AppendTypespec(t Typespec) {
	t.SetParent(c)
	c.typespecs = append(c.typespecs, t.ID())
}
func (c *ClassDefn) Typespecs(s *Serializer) []Typespec { return idsToTypespecs(s, c.typespecs) }

// ScopeTables returns only this class's own members; the resolver walks the
// Extends() chain itself to implement inheritance (§4.4.3 item 6), since
// that traversal needs its own cycle guard distinct from a plain table scan.
func (c *ClassDefn) ScopeTables() []ScopeTable {
	return []ScopeTable{
		{Name: "variables", Lookup: lookupNamed(c.ser, c.variables)},
		{Name: "methods", Lookup: lookupNamed(c.ser, c.methods)},
		{Name: "parameters", Lookup: lookupNamed(c.ser, c.parameters)},
		{Name: "typespecs", Lookup: lookupNamed(c.ser, c.typespecs)},
	}
}

func (c *ClassDefn) WalkEdges(visit func(EdgeKind, *NodeID)) {
	visit(EdgeRef, &c.extends)
	for _, ids := range [][]NodeID{c.variables, c.parameters, c.paramAssigns, c.methods, c.typespecs} {
		for i := range ids {
			visit(EdgeOwn, &ids[i])
		}
	}
}

func (s *Serializer) NewClassDefn() *ClassDefn { return make_(s, KindClassDefn, &ClassDefn{}) }

// GenScope is one elaborated iteration/branch of a generate construct
// (§3.3: "internal generate-scope arrays").
type GenScope struct {
	base
	name         string
	variables    []NodeID
	paramAssigns []NodeID
	nets         []NodeID
	processes    []NodeID
	subInstances []NodeID
	typespecs    []NodeID
}

func (g *GenScope) Name() string     { return g.name }
func (g *GenScope) SetName(n string) { g.name = n }

func (g *GenScope) AppendVariable(v Node) {
	v.SetParent(g)
	g.variables = append(g.variables, v.ID())
}
func (g *GenScope) AppendNet(n Node) {
	n.SetParent(g)
	g.nets = append(g.nets, n.ID())
}
func (g *GenScope) AppendProcess(n Node) {
	n.SetParent(g)
	g.processes = append(g.processes, n.ID())
}
func (g *GenScope) AppendSubInstance(n Node) {
	n.SetParent(g)
	g.subInstances = append(g.subInstances, n.ID())
}
func (g *GenScope) SubInstances(s *Serializer) []Instance {
	out := make([]Instance, 0, len(g.subInstances))
	for _, id := range g.subInstances {
		if n, ok := s.Get(id).(Instance); ok {
			out = append(out, n)
		}
	}
	return out
}
func (g *GenScope) AppendParamAssign(pa *ParamAssign) {
	pa.SetParent(g)
	g.paramAssigns = append(g.paramAssigns, pa.ID())
}
func (g *GenScope) AppendTypespec(t Typespec) {
	t.SetParent(g)
	g.typespecs = append(g.typespecs, t.ID())
}
func (g *GenScope) Typespecs(s *Serializer) []Typespec { return idsToTypespecs(s, g.typespecs) }

func (g *GenScope) ScopeTables() []ScopeTable {
	return []ScopeTable{
		{Name: "variables", Lookup: lookupNamed(g.ser, g.variables)},
		{Name: "nets", Lookup: lookupNamed(g.ser, g.nets)},
		{Name: "sub_instances", Lookup: lookupNamed(g.ser, g.subInstances)},
	}
}

func (g *GenScope) WalkEdges(visit func(EdgeKind, *NodeID)) {
	for _, ids := range [][]NodeID{g.variables, g.paramAssigns, g.nets, g.processes, g.subInstances, g.typespecs} {
		for i := range ids {
			visit(EdgeOwn, &ids[i])
		}
	}
}

func (s *Serializer) NewGenScope() *GenScope { return make_(s, KindGenScope, &GenScope{}) }

// GenScopeArray collects every elaborated GenScope produced by a single
// generate-for/generate-if construct.
type GenScopeArray struct {
	base
	name   string
	scopes []NodeID // own-many GenScope
}

func (g *GenScopeArray) Name() string     { return g.name }
func (g *GenScopeArray) SetName(n string) { g.name = n }

func (g *GenScopeArray) AppendScope(gs *GenScope) {
	gs.SetParent(g)
	g.scopes = append(g.scopes, gs.ID())
}
func (g *GenScopeArray) Scopes() []*GenScope {
	out := make([]*GenScope, 0, len(g.scopes))
	for _, id := range g.scopes {
		if gs, ok := g.ser.Get(id).(*GenScope); ok {
			out = append(out, gs)
		}
	}
	return out
}

func (g *GenScopeArray) WalkEdges(visit func(EdgeKind, *NodeID)) {
	for i := range g.scopes {
		visit(EdgeOwn, &g.scopes[i])
	}
}

func (s *Serializer) NewGenScopeArray() *GenScopeArray {
	return make_(s, KindGenScopeArray, &GenScopeArray{})
}

// Design is the arena's single root (§3.3): every top-level definition and
// the top-level instance subset, plus the elaborated flag exposed via the
// Serializer (one Design per Serializer is assumed throughout, matching the
// spec's single-elaboration-pass model, §5).
type Design struct {
	base
	name          string
	allModules    []NodeID // own-many Module (definitions, pre-elaboration; instances, post)
	allInterfaces []NodeID // own-many Interface
	allPrograms   []NodeID // own-many Program
	allPackages   []NodeID // own-many Package
	allClasses    []NodeID // own-many ClassDefn
	topModules    []NodeID // ref-many: subset of allModules marked top-level
	paramAssigns  []NodeID // own-many ParamAssign (design-level overrides, -P on the CLI)
	typespecs     []NodeID // own-many Typespec (global, e.g. from $unit)
}

func (d *Design) Name() string     { return d.name }
func (d *Design) SetName(n string) { d.name = n }

func (d *Design) Elaborated() bool     { return d.ser.Elaborated() }
func (d *Design) SetElaborated(v bool) { d.ser.SetElaborated(v) }

func (d *Design) AppendModule(m *Module) {
	m.SetParent(d)
	d.allModules = append(d.allModules, m.ID())
}
func (d *Design) AppendInterface(i *Interface) {
	i.SetParent(d)
	d.allInterfaces = append(d.allInterfaces, i.ID())
}
func (d *Design) AppendProgram(p *Program) {
	p.SetParent(d)
	d.allPrograms = append(d.allPrograms, p.ID())
}
func (d *Design) AppendPackage(p *Package) {
	p.SetParent(d)
	d.allPackages = append(d.allPackages, p.ID())
}
func (d *Design) AppendClass(c *ClassDefn) {
	c.SetParent(d)
	d.allClasses = append(d.allClasses, c.ID())
}
func (d *Design) MarkTop(m *Module) {
	d.topModules = append(d.topModules, m.ID())
}
func (d *Design) AppendParamAssign(pa *ParamAssign) {
	pa.SetParent(d)
	d.paramAssigns = append(d.paramAssigns, pa.ID())
}
func (d *Design) AppendTypespec(t Typespec) {
	t.SetParent(d)
	d.typespecs = append(d.typespecs, t.ID())
}

// Typespecs returns the design's global (compilation-unit) typedefs/classes,
// for internal/resolve's FindType builtin/global fallback.
func (d *Design) Typespecs(s *Serializer) []Typespec { return idsToTypespecs(s, d.typespecs) }

func (d *Design) AllModules() []*Module {
	out := make([]*Module, 0, len(d.allModules))
	for _, id := range d.allModules {
		if m, ok := d.ser.Get(id).(*Module); ok {
			out = append(out, m)
		}
	}
	return out
}
func (d *Design) AllInterfaces() []*Interface { return nodesOf[*Interface](d.ser, d.allInterfaces) }
func (d *Design) AllPrograms() []*Program     { return nodesOf[*Program](d.ser, d.allPrograms) }

// nodesOf returns the nodes named by ids that have concrete type T, in order.
func nodesOf[T Node](s *Serializer, ids []NodeID) []T {
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if n, ok := s.Get(id).(T); ok {
			out = append(out, n)
		}
	}
	return out
}
func (d *Design) TopModules() []*Module {
	out := make([]*Module, 0, len(d.topModules))
	for _, id := range d.topModules {
		if m, ok := d.ser.Get(id).(*Module); ok {
			out = append(out, m)
		}
	}
	return out
}
func (d *Design) AllPackages() []*Package {
	out := make([]*Package, 0, len(d.allPackages))
	for _, id := range d.allPackages {
		if p, ok := d.ser.Get(id).(*Package); ok {
			out = append(out, p)
		}
	}
	return out
}
func (d *Design) AllClasses() []*ClassDefn {
	out := make([]*ClassDefn, 0, len(d.allClasses))
	for _, id := range d.allClasses {
		if c, ok := d.ser.Get(id).(*ClassDefn); ok {
			out = append(out, c)
		}
	}
	return out
}

// ScopeTables implements the global namespace a bare (unqualified,
// non-hierarchical) top-level lookup consults: packages and module/program
// definition names, per §4.4.3's "search global/compilation-unit scope"
// fallback step.
func (d *Design) ScopeTables() []ScopeTable {
	return []ScopeTable{
		{Name: "packages", Lookup: lookupNamed(d.ser, d.allPackages)},
		{Name: "modules", Lookup: lookupNamed(d.ser, d.allModules)},
		{Name: "interfaces", Lookup: lookupNamed(d.ser, d.allInterfaces)},
		{Name: "programs", Lookup: lookupNamed(d.ser, d.allPrograms)},
		{Name: "classes", Lookup: lookupNamed(d.ser, d.allClasses)},
	}
}

func (d *Design) WalkEdges(visit func(EdgeKind, *NodeID)) {
	for _, ids := range [][]NodeID{
		d.allModules, d.allInterfaces, d.allPrograms, d.allPackages,
		d.allClasses, d.paramAssigns, d.typespecs,
	} {
		for i := range ids {
			visit(EdgeOwn, &ids[i])
		}
	}
	for i := range d.topModules {
		visit(EdgeRef, &d.topModules[i])
	}
}

func (s *Serializer) NewDesign() *Design { return make_(s, KindDesign, &Design{}) }
