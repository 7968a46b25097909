package wire

import (
	"bytes"
	"testing"

	"uhdm/internal/ir"
)

// buildSample mirrors S1-class fixtures (§8.2): a design with a top module
// instantiating a child, a logic net, a parameter, and a function whose
// body exercises an own-edge tree (if/else over an expression) plus a
// ref-edge (the function's return typespec pointing at a shared
// LogicTypespec). It is built to exercise every edge-kind/scalar path
// Save/Restore needs to round-trip.
func buildSample(s *ir.Serializer) (*ir.Design, ir.Handle) {
	d := s.NewDesign()
	d.SetName("sample")

	logicTS := s.NewLogicTypespec()
	logicTS.Signed = true

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

	net := s.NewLogicNet()
	net.SetName("clk")
	net.SetTypespecRef(refTo(s, logicTS))
	top.AppendNet(top, net)

	param := s.NewParameter()
	param.SetName("WIDTH")
	param.Localparam = false
	c := s.NewConstant()
	c.Value = "UINT:8"
	c.ConstType = 1
	param.SetDefaultValue(c)
	top.AppendParameter(top, param)

	cond := s.NewConstant()
	cond.Value = "UINT:1"
	ret := s.NewReturnStmt()
	assign := s.NewAssignment()
	ifElse := s.NewIfElse()
	ifElse.SetCondition(cond)
	ifElse.SetIfBody(ret)
	ifElse.SetElseBody(assign)

	fn := s.NewFunction()
	fn.SetName("step")
	fn.SetStmt(ifElse)
	fn.SetReturnTypespecRef(refTo(s, logicTS))
	top.AppendTaskFunc(top, fn)

	h := s.MakeHandle(d)
	return d, h
}

func refTo(s *ir.Serializer, t ir.Typespec) *ir.RefTypespec {
	r := s.NewRefTypespec()
	r.SetActual(t)
	return r
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	s := ir.NewSerializer()
	buildSample(s)

	var buf bytes.Buffer
	if err := Save(s, &buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s2, handles, err := Restore(&buf)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if len(handles) != 1 {
		t.Fatalf("expected 1 top handle, got %d", len(handles))
	}

	d2, ok := s2.Resolve(handles[0]).(*ir.Design)
	if !ok {
		t.Fatalf("restored handle is not a *ir.Design: %T", s2.Resolve(handles[0]))
	}
	if d2.Name() != "sample" {
		t.Errorf("design name = %q, want %q", d2.Name(), "sample")
	}

	tops := d2.TopModules()
	if len(tops) != 1 || tops[0].Name() != "top" {
		t.Fatalf("unexpected top modules: %+v", tops)
	}
	top := tops[0]

	subs := top.SubInstances(s2)
	if len(subs) != 1 || subs[0].DefName() != "child" {
		t.Fatalf("unexpected sub-instances: %+v", subs)
	}
	if subs[0].Parent() != top {
		t.Error("child's reconstructed parent is not top")
	}

	netNode := lookupInTable(t, top.ScopeTables(), "nets", "clk")
	net, ok := netNode.(*ir.LogicNet)
	if !ok {
		t.Fatalf("unexpected net: %+v", netNode)
	}
	netTS := net.TypespecRef()
	if netTS == nil || netTS.Actual() == nil {
		t.Fatal("net's typespec ref did not round-trip")
	}
	logicTS, ok := netTS.Actual().(*ir.LogicTypespec)
	if !ok || !logicTS.Signed {
		t.Fatalf("net's resolved typespec is wrong: %+v", netTS.Actual())
	}

	paramNode := lookupInTable(t, top.ScopeTables(), "parameters", "WIDTH")
	param, ok := paramNode.(*ir.Parameter)
	if !ok {
		t.Fatalf("unexpected parameter: %+v", paramNode)
	}
	defVal, ok := param.DefaultValue().(*ir.Constant)
	if !ok || defVal.Value != "UINT:8" || defVal.ConstType != 1 {
		t.Fatalf("parameter default value did not round-trip: %+v", param.DefaultValue())
	}

	fns := top.TaskFuncs(s2)
	if len(fns) != 1 {
		t.Fatalf("expected 1 task/func, got %d", len(fns))
	}
	fn, ok := fns[0].(*ir.Function)
	if !ok || fn.Name() != "step" {
		t.Fatalf("unexpected function: %+v", fns[0])
	}
	fnTS, ok := fn.ReturnTypespecRef().Actual().(*ir.LogicTypespec)
	if !ok || fnTS != logicTS {
		t.Error("function's return typespec should resolve to the same shared LogicTypespec node as the net's")
	}

	ifElse, ok := fn.Stmt().(*ir.IfElse)
	if !ok {
		t.Fatalf("function body is not an IfElse: %T", fn.Stmt())
	}
	cond, ok := ifElse.Condition().(*ir.Constant)
	if !ok || cond.Value != "UINT:1" {
		t.Fatalf("if condition did not round-trip: %+v", ifElse.Condition())
	}
	if _, ok := ifElse.IfBody().(*ir.ReturnStmt); !ok {
		t.Errorf("if-body should be a ReturnStmt, got %T", ifElse.IfBody())
	}
	if _, ok := ifElse.ElseBody().(*ir.Assignment); !ok {
		t.Errorf("else-body should be an Assignment, got %T", ifElse.ElseBody())
	}
	if ifElse.Parent() != fn {
		t.Error("if/else statement's reconstructed parent is not the owning function")
	}
}

func TestRestoreRejectsBadMagic(t *testing.T) {
	if _, _, err := Restore(bytes.NewReader([]byte("nope"))); err == nil {
		t.Fatal("expected an error for corrupt input, got nil")
	}
}

func lookupInTable(t *testing.T, tables []ir.ScopeTable, table, name string) ir.Node {
	t.Helper()
	for _, tbl := range tables {
		if tbl.Name != table {
			continue
		}
		if n := tbl.Lookup(name); n != nil {
			return n
		}
	}
	t.Fatalf("%q not found in scope table %q", name, table)
	return nil
}
