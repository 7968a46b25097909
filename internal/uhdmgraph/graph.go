// Package uhdmgraph builds github.com/zboralski/lattice graphs over an
// elaborated UHDM design: an instance-containment call graph in place of
// the teacher's ARM64 call graph, a class-extension graph in place of its
// Dart class graph, and per-Function/Task control-flow graphs in place of
// its disassembled basic-block CFGs. Grounded on internal/callgraph's
// node-then-edge accumulation and internal/render's class/CFG shapes,
// retargeted from disasm.Inst/CallEdge to the statement tree of §3.3/§4.5.
package uhdmgraph

import (
	"fmt"

	"github.com/zboralski/lattice"

	"uhdm/internal/ir"
)

// InstanceGraph builds a lattice.Graph over a design's instance hierarchy:
// one node per instance (dotted hierarchical path from a top module down),
// one edge per parent→child instantiation. Grounded on
// callgraph.BuildCallGraph's node-then-edge accumulation, retargeted from
// ARM64 call edges to subInstances containment.
func InstanceGraph(d *ir.Design) *lattice.Graph {
	s := d.Serializer()
	g := &lattice.Graph{}
	var walk func(inst ir.Instance, path string)
	walk = func(inst ir.Instance, path string) {
		g.Nodes = append(g.Nodes, path)
		for _, sub := range subInstancesOf(s, inst) {
			childPath := path + "." + sub.Name()
			g.Edges = append(g.Edges, lattice.Edge{Caller: path, Callee: childPath})
			walk(sub, childPath)
		}
	}
	for _, m := range d.TopModules() {
		walk(m, m.Name())
	}
	g.Dedup()
	return g
}

func subInstancesOf(s *ir.Serializer, inst ir.Instance) []ir.Instance {
	switch v := inst.(type) {
	case *ir.Module:
		return v.SubInstances(s)
	case *ir.Interface:
		return v.SubInstances(s)
	case *ir.Program:
		return v.SubInstances(s)
	default:
		return nil
	}
}

// ClassGraph builds a lattice.Graph over a design's class hierarchy: one
// node per class, one edge per "extends" relationship (subclass → base).
// Grounded on render.ClassgraphDOT's class-level aggregation, retargeted
// from Dart owner-name inference to the explicit Extends() edge of §3.3's
// ClassDefn.
func ClassGraph(d *ir.Design) *lattice.Graph {
	g := &lattice.Graph{}
	for _, c := range d.AllClasses() {
		g.Nodes = append(g.Nodes, c.Name())
		if base := c.Extends(); base != nil {
			g.Edges = append(g.Edges, lattice.Edge{Caller: c.Name(), Callee: base.Name()})
		}
	}
	g.Dedup()
	return g
}

// DesignCFG builds one lattice.FuncCFG per Function/Task reachable from the
// design's modules, packages, and classes. Grounded on callgraph.BuildCFG's
// one-FuncCFG-per-function loop, retargeted to the statement tree.
func DesignCFG(d *ir.Design) *lattice.CFGGraph {
	s := d.Serializer()
	cg := &lattice.CFGGraph{}
	seen := make(map[ir.NodeID]bool)
	add := func(owner, name string, body ir.Stmt, id ir.NodeID) {
		if seen[id] {
			return
		}
		seen[id] = true
		cg.Funcs = append(cg.Funcs, FuncCFG(s, qualify(owner, name), body))
	}
	for _, m := range d.AllModules() {
		for _, n := range m.TaskFuncs(s) {
			addTaskFunc(add, m.Name(), n)
		}
	}
	for _, p := range d.AllPackages() {
		for _, n := range p.TaskFuncs(s) {
			addTaskFunc(add, p.Name(), n)
		}
	}
	for _, c := range d.AllClasses() {
		for _, n := range c.Methods(s) {
			addTaskFunc(add, c.Name(), n)
		}
	}
	return cg
}

func qualify(owner, name string) string {
	if owner == "" {
		return name
	}
	return owner + "." + name
}

func addTaskFunc(add func(owner, name string, body ir.Stmt, id ir.NodeID), owner string, n ir.Node) {
	switch fn := n.(type) {
	case *ir.Function:
		add(owner, fn.Name(), fn.Stmt(), fn.ID())
	case *ir.Task:
		add(owner, fn.Name(), fn.Stmt(), fn.ID())
	}
}

// cfgBuilder accumulates basic blocks for a single Function/Task body,
// mirroring callgraph.convertFuncCFG's block/successor shape but driven by
// recursive descent over the statement tree (§4.5.3) instead of a
// disassembled instruction stream.
type cfgBuilder struct {
	ser    *ir.Serializer
	seq    int
	blocks []*lattice.BasicBlock
}

func (b *cfgBuilder) newBlock() *lattice.BasicBlock {
	blk := &lattice.BasicBlock{ID: len(b.blocks), Start: b.seq, End: b.seq + 1}
	b.seq++
	b.blocks = append(b.blocks, blk)
	return blk
}

func (b *cfgBuilder) note(blk *lattice.BasicBlock, label string) {
	blk.Calls = append(blk.Calls, lattice.CallSite{Offset: len(blk.Calls), Callee: label})
}

func succ(blk *lattice.BasicBlock, id int, cond string) {
	blk.Succs = append(blk.Succs, lattice.Successor{BlockID: id, Cond: cond})
}

// flatten appends stmt's control flow onto cur and returns the block where
// execution continues afterward (== cur for straight-line statements).
func (b *cfgBuilder) flatten(stmt ir.Stmt, cur *lattice.BasicBlock) *lattice.BasicBlock {
	if stmt == nil {
		return cur
	}
	switch st := stmt.(type) {
	case *ir.Begin:
		for _, s := range st.Stmts(b.ser) {
			cur = b.flatten(s, cur)
		}
		return cur
	case *ir.Fork:
		for _, s := range st.Stmts(b.ser) {
			cur = b.flatten(s, cur)
		}
		return cur
	case *ir.IfStmt:
		b.note(cur, "if")
		thenBlk := b.newBlock()
		succ(cur, thenBlk.ID, "true")
		thenOut := b.flatten(st.Body(), thenBlk)
		join := b.newBlock()
		succ(thenOut, join.ID, "")
		succ(cur, join.ID, "false")
		return join
	case *ir.IfElse:
		b.note(cur, "if_else")
		thenBlk, elseBlk := b.newBlock(), b.newBlock()
		succ(cur, thenBlk.ID, "true")
		succ(cur, elseBlk.ID, "false")
		thenOut := b.flatten(st.IfBody(), thenBlk)
		elseOut := b.flatten(st.ElseBody(), elseBlk)
		join := b.newBlock()
		succ(thenOut, join.ID, "")
		succ(elseOut, join.ID, "")
		return join
	case *ir.CaseStmt:
		b.note(cur, "case")
		join := b.newBlock()
		for i, item := range st.Items() {
			itemBlk := b.newBlock()
			label := fmt.Sprintf("case_%d", i)
			if item.IsDefault() {
				label = "default"
			}
			succ(cur, itemBlk.ID, label)
			out := b.flatten(item.Stmt(), itemBlk)
			succ(out, join.ID, "")
		}
		return join
	case *ir.WhileStmt:
		return b.loop(cur, "while", st.Body())
	case *ir.DoWhile:
		return b.doWhile(cur, st.Body())
	case *ir.ForStmt:
		return b.loop(cur, "for", st.Body())
	case *ir.ForeachStmt:
		return b.loop(cur, "foreach", st.Body())
	case *ir.Repeat:
		return b.loop(cur, "repeat", st.Body())
	case *ir.EventControl:
		b.note(cur, "event_control")
		return b.flatten(st.Stmt(), cur)
	case *ir.ReturnStmt:
		cur.Term = true
		b.note(cur, "return")
		return cur
	case *ir.ContinueStmt:
		cur.Term = true
		b.note(cur, "continue")
		return cur
	case *ir.BreakStmt:
		cur.Term = true
		b.note(cur, "break")
		return cur
	default:
		b.note(cur, st.Kind().String())
		return cur
	}
}

// loop handles the four structurally-identical header/body/back-edge loop
// shapes (while, for, foreach, repeat): their condition/bound differs but
// their CFG shape does not.
func (b *cfgBuilder) loop(cur *lattice.BasicBlock, label string, body ir.Stmt) *lattice.BasicBlock {
	b.note(cur, label)
	header := b.newBlock()
	succ(cur, header.ID, "")
	bodyBlk := b.newBlock()
	succ(header, bodyBlk.ID, "true")
	bodyOut := b.flatten(body, bodyBlk)
	succ(bodyOut, header.ID, "")
	after := b.newBlock()
	succ(header, after.ID, "false")
	return after
}

// doWhile differs from the other loop shapes only in testing its condition
// after the body runs at least once.
func (b *cfgBuilder) doWhile(cur *lattice.BasicBlock, body ir.Stmt) *lattice.BasicBlock {
	b.note(cur, "do_while")
	bodyBlk := b.newBlock()
	succ(cur, bodyBlk.ID, "")
	bodyOut := b.flatten(body, bodyBlk)
	header := b.newBlock()
	succ(bodyOut, header.ID, "")
	after := b.newBlock()
	succ(header, bodyBlk.ID, "true")
	succ(header, after.ID, "false")
	return after
}

// FuncCFG builds a lattice.FuncCFG from a single Function/Task's statement
// body.
func FuncCFG(s *ir.Serializer, name string, body ir.Stmt) *lattice.FuncCFG {
	b := &cfgBuilder{ser: s}
	entry := b.newBlock()
	out := b.flatten(body, entry)
	out.Term = true
	return &lattice.FuncCFG{Name: name, Blocks: b.blocks}
}
