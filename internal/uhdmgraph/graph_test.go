package uhdmgraph

import (
	"testing"

	"uhdm/internal/ir"
)

// buildDesign constructs:
//
//	top (Module)
//	  └─ child (Module, instance "leaf")
//	  function "step": if (c) return; else x = 1;
func buildDesign(s *ir.Serializer) *ir.Design {
	d := s.NewDesign()

	top := s.NewModule()
	top.SetName("top")
	top.SetDefName("top")
	d.AppendModule(top)
	d.MarkTop(top)

	child := s.NewModule()
	child.SetName("leaf")
	child.SetDefName("child")
	d.AppendModule(child)
	top.AppendSubInstance(top, child)

	cond := s.NewConstant()
	thenAssign := s.NewAssignment()
	ifElse := s.NewIfElse()
	ifElse.SetCondition(cond)
	ret := s.NewReturnStmt()
	ifElse.SetIfBody(ret)
	ifElse.SetElseBody(thenAssign)

	fn := s.NewFunction()
	fn.SetName("step")
	fn.SetStmt(ifElse)
	top.AppendTaskFunc(top, fn)

	return d
}

func TestInstanceGraph(t *testing.T) {
	s := ir.NewSerializer()
	d := buildDesign(s)

	g := InstanceGraph(d)
	if len(g.Nodes) != 2 {
		t.Fatalf("expected 2 instance nodes, got %d: %v", len(g.Nodes), g.Nodes)
	}
	if len(g.Edges) != 1 || g.Edges[0].Caller != "top" || g.Edges[0].Callee != "top.leaf" {
		t.Fatalf("unexpected edges: %+v", g.Edges)
	}
}

func TestDesignCFG(t *testing.T) {
	s := ir.NewSerializer()
	d := buildDesign(s)

	cfg := DesignCFG(d)
	if len(cfg.Funcs) != 1 {
		t.Fatalf("expected 1 function CFG, got %d", len(cfg.Funcs))
	}
	fn := cfg.Funcs[0]
	if fn.Name != "top.step" {
		t.Errorf("func name = %q, want %q", fn.Name, "top.step")
	}

	// entry -> {then, else} -> join
	if len(fn.Blocks) != 4 {
		t.Fatalf("expected 4 blocks (entry, then, else, join), got %d", len(fn.Blocks))
	}
	entry := fn.Blocks[0]
	if len(entry.Succs) != 2 {
		t.Fatalf("entry block should branch two ways, got %d successors", len(entry.Succs))
	}

	dot := CFGDOT(cfg, NASA)
	if dot == "" {
		t.Fatal("CFGDOT returned empty output")
	}
}

func TestClassGraph(t *testing.T) {
	s := ir.NewSerializer()
	d := s.NewDesign()

	base := s.NewClassDefn()
	base.SetName("Base")
	d.AppendClass(base)

	derived := s.NewClassDefn()
	derived.SetName("Derived")
	derived.SetExtends(base)
	d.AppendClass(derived)

	g := ClassGraph(d)
	if len(g.Nodes) != 2 {
		t.Fatalf("expected 2 class nodes, got %d", len(g.Nodes))
	}
	if len(g.Edges) != 1 || g.Edges[0].Caller != "Derived" || g.Edges[0].Callee != "Base" {
		t.Fatalf("unexpected class edges: %+v", g.Edges)
	}
}
