package ir

// EdgeGrower is implemented by every kind that holds at least one
// slice-valued own/ref edge field (an "own-many"/"ref-many" collection,
// §3.2). internal/wire's restore pass needs every such slice pre-sized to
// its original length — in the same declared order WalkEdges visits it —
// before it can take the addresses WalkEdges hands back and fill them in.
// GroupLens reports those lengths at save time; GrowEdges replays them at
// restore time. Single-valued edge fields need no presizing (the struct
// already has the slot), so kinds with none of those groups simply don't
// implement this interface.
type EdgeGrower interface {
	GroupLens() []int
	GrowEdges(lens []int)
}

func (o *Operation) GroupLens() []int       { return []int{len(o.Operands)} }
func (o *Operation) GrowEdges(lens []int)   { o.Operands = make([]NodeID, lens[0]) }

func (h *HierPath) GroupLens() []int     { return []int{len(h.Elements)} }
func (h *HierPath) GrowEdges(lens []int) { h.Elements = make([]NodeID, lens[0]) }

func (v *VarSelect) GroupLens() []int     { return []int{len(v.Exprs)} }
func (v *VarSelect) GrowEdges(lens []int) { v.Exprs = make([]NodeID, lens[0]) }

func (f *SysFuncCall) GroupLens() []int     { return []int{len(f.Args)} }
func (f *SysFuncCall) GrowEdges(lens []int) { f.Args = make([]NodeID, lens[0]) }

func (f *FuncCall) GroupLens() []int     { return []int{len(f.Args)} }
func (f *FuncCall) GrowEdges(lens []int) { f.Args = make([]NodeID, lens[0]) }

func (t *scalarTypespec) GroupLens() []int     { return []int{len(t.ranges)} }
func (t *scalarTypespec) GrowEdges(lens []int) { t.ranges = make([]NodeID, lens[0]) }

func (t *aggregateTypespec) GroupLens() []int     { return []int{len(t.members)} }
func (t *aggregateTypespec) GrowEdges(lens []int) { t.members = make([]NodeID, lens[0]) }

func (t *EnumTypespec) GroupLens() []int     { return []int{len(t.consts)} }
func (t *EnumTypespec) GrowEdges(lens []int) { t.consts = make([]NodeID, lens[0]) }

func (t *arrayLikeTypespec) GroupLens() []int     { return []int{len(t.ranges)} }
func (t *arrayLikeTypespec) GrowEdges(lens []int) { t.ranges = make([]NodeID, lens[0]) }

func (b *blockBody) GroupLens() []int { return []int{len(b.vars), len(b.params), len(b.stmts)} }
func (b *blockBody) GrowEdges(lens []int) {
	b.vars = make([]NodeID, lens[0])
	b.params = make([]NodeID, lens[1])
	b.stmts = make([]NodeID, lens[2])
}

func (f *ForStmt) GroupLens() []int { return []int{len(f.initStmts), len(f.iterStmts)} }
func (f *ForStmt) GrowEdges(lens []int) {
	f.initStmts = make([]NodeID, lens[0])
	f.iterStmts = make([]NodeID, lens[1])
}

func (f *ForeachStmt) GroupLens() []int     { return []int{len(f.loopVars)} }
func (f *ForeachStmt) GrowEdges(lens []int) { f.loopVars = make([]NodeID, lens[0]) }

func (c *CaseItem) GroupLens() []int     { return []int{len(c.exprs)} }
func (c *CaseItem) GrowEdges(lens []int) { c.exprs = make([]NodeID, lens[0]) }

func (c *CaseStmt) GroupLens() []int     { return []int{len(c.items)} }
func (c *CaseStmt) GrowEdges(lens []int) { c.items = make([]NodeID, lens[0]) }

func (e *EventControl) GroupLens() []int     { return []int{len(e.conditions)} }
func (e *EventControl) GrowEdges(lens []int) { e.conditions = make([]NodeID, lens[0]) }

func (t *taskFuncBody) GroupLens() []int {
	return []int{len(t.ioDecls), len(t.variables), len(t.parameters)}
}
func (t *taskFuncBody) GrowEdges(lens []int) {
	t.ioDecls = make([]NodeID, lens[0])
	t.variables = make([]NodeID, lens[1])
	t.parameters = make([]NodeID, lens[2])
}

func (ib *instanceBody) GroupLens() []int {
	return []int{
		len(ib.ports), len(ib.nets), len(ib.variables), len(ib.parameters),
		len(ib.paramAssigns), len(ib.contAssigns), len(ib.processes),
		len(ib.taskFuncs), len(ib.genScopeArrays), len(ib.subInstances), len(ib.typespecs),
	}
}
func (ib *instanceBody) GrowEdges(lens []int) {
	ib.ports = make([]NodeID, lens[0])
	ib.nets = make([]NodeID, lens[1])
	ib.variables = make([]NodeID, lens[2])
	ib.parameters = make([]NodeID, lens[3])
	ib.paramAssigns = make([]NodeID, lens[4])
	ib.contAssigns = make([]NodeID, lens[5])
	ib.processes = make([]NodeID, lens[6])
	ib.taskFuncs = make([]NodeID, lens[7])
	ib.genScopeArrays = make([]NodeID, lens[8])
	ib.subInstances = make([]NodeID, lens[9])
	ib.typespecs = make([]NodeID, lens[10])
}

func (p *Package) GroupLens() []int {
	return []int{len(p.parameters), len(p.paramAssigns), len(p.typespecs), len(p.taskFuncs), len(p.variables)}
}
func (p *Package) GrowEdges(lens []int) {
	p.parameters = make([]NodeID, lens[0])
	p.paramAssigns = make([]NodeID, lens[1])
	p.typespecs = make([]NodeID, lens[2])
	p.taskFuncs = make([]NodeID, lens[3])
	p.variables = make([]NodeID, lens[4])
}

func (c *ClassDefn) GroupLens() []int {
	return []int{len(c.variables), len(c.parameters), len(c.paramAssigns), len(c.methods), len(c.typespecs)}
}
func (c *ClassDefn) GrowEdges(lens []int) {
	c.variables = make([]NodeID, lens[0])
	c.parameters = make([]NodeID, lens[1])
	c.paramAssigns = make([]NodeID, lens[2])
	c.methods = make([]NodeID, lens[3])
	c.typespecs = make([]NodeID, lens[4])
}

func (g *GenScope) GroupLens() []int {
	return []int{len(g.variables), len(g.paramAssigns), len(g.nets), len(g.processes), len(g.subInstances), len(g.typespecs)}
}
func (g *GenScope) GrowEdges(lens []int) {
	g.variables = make([]NodeID, lens[0])
	g.paramAssigns = make([]NodeID, lens[1])
	g.nets = make([]NodeID, lens[2])
	g.processes = make([]NodeID, lens[3])
	g.subInstances = make([]NodeID, lens[4])
	g.typespecs = make([]NodeID, lens[5])
}

func (g *GenScopeArray) GroupLens() []int     { return []int{len(g.scopes)} }
func (g *GenScopeArray) GrowEdges(lens []int) { g.scopes = make([]NodeID, lens[0]) }

func (d *Design) GroupLens() []int {
	return []int{
		len(d.allModules), len(d.allInterfaces), len(d.allPrograms), len(d.allPackages),
		len(d.allClasses), len(d.paramAssigns), len(d.typespecs), len(d.topModules),
	}
}
func (d *Design) GrowEdges(lens []int) {
	d.allModules = make([]NodeID, lens[0])
	d.allInterfaces = make([]NodeID, lens[1])
	d.allPrograms = make([]NodeID, lens[2])
	d.allPackages = make([]NodeID, lens[3])
	d.allClasses = make([]NodeID, lens[4])
	d.paramAssigns = make([]NodeID, lens[5])
	d.typespecs = make([]NodeID, lens[6])
	d.topModules = make([]NodeID, lens[7])
}
