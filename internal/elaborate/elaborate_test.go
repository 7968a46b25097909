package elaborate

import (
	"testing"

	"uhdm/internal/ir"
)

// buildM2 mirrors internal/clone's S6 fixture: a module M2 with port i1,
// nets i1/o1, and `assign o1 = i1` left with unbound RefObjs, the way a
// parser hands a definition to the elaborator before any binding pass runs.
func buildM2(s *ir.Serializer) *ir.Module {
	m2 := s.NewModule()
	m2.SetName("")
	m2.SetDefName("M2")

	port := s.NewPort()
	port.SetName("i1")
	m2.AppendPort(m2, port)

	i1 := s.NewNet()
	i1.SetName("i1")
	m2.AppendNet(m2, i1)

	o1 := s.NewNet()
	o1.SetName("o1")
	m2.AppendNet(m2, o1)

	lhs := s.NewRefObj()
	lhs.Name = "o1"
	rhs := s.NewRefObj()
	rhs.Name = "i1"

	ca := s.NewContAssign()
	ca.SetLhs(lhs)
	ca.SetRhs(rhs)
	m2.AppendContAssign(m2, ca)

	return m2
}

func contAssigns(s *ir.Serializer, m *ir.Module) []*ir.ContAssign {
	var out []*ir.ContAssign
	m.WalkEdges(func(kind ir.EdgeKind, id *ir.NodeID) {
		if *id == 0 {
			return
		}
		if ca, ok := s.Get(*id).(*ir.ContAssign); ok {
			out = append(out, ca)
		}
	})
	return out
}

func TestElaborateClonesAndBindsSubInstance(t *testing.T) {
	s := ir.NewSerializer()
	design := s.NewDesign()
	design.SetName("d")

	def := buildM2(s)
	design.AppendModule(def)

	top := s.NewModule()
	top.SetName("top")
	top.SetDefName("top")

	stub := s.NewModule()
	stub.SetName("u2")
	stub.SetDefName("M2")
	top.AppendSubInstance(top, stub)

	design.AppendModule(top)
	design.MarkTop(top)

	Elaborate(s, design)

	if !design.Elaborated() {
		t.Fatal("design.Elaborated() = false after Elaborate")
	}

	insts := top.SubInstances(s)
	if len(insts) != 1 {
		t.Fatalf("top has %d sub-instances, want 1", len(insts))
	}
	inst, ok := insts[0].(*ir.Module)
	if !ok {
		t.Fatalf("sub-instance is not a *ir.Module: %T", insts[0])
	}
	if inst == ir.Node(def) {
		t.Fatal("sub-instance still is the definition node, not a clone")
	}
	if len(inst.Nets(s)) != 2 {
		t.Fatalf("elaborated instance has %d nets, want 2 (cloned from M2)", len(inst.Nets(s)))
	}

	cas := contAssigns(s, inst)
	if len(cas) != 1 {
		t.Fatalf("elaborated instance has %d cont-assigns, want 1", len(cas))
	}
	lhs, ok := cas[0].Lhs().(*ir.RefObj)
	if !ok {
		t.Fatalf("lhs is not a RefObj: %T", cas[0].Lhs())
	}
	rhs, ok := cas[0].Rhs().(*ir.RefObj)
	if !ok {
		t.Fatalf("rhs is not a RefObj: %T", cas[0].Rhs())
	}

	o1, ok := lhs.Actual().(*ir.Net)
	if !ok {
		t.Fatalf("lhs.Actual() unbound or wrong type: %v", lhs.Actual())
	}
	i1, ok := rhs.Actual().(*ir.Net)
	if !ok {
		t.Fatalf("rhs.Actual() unbound or wrong type: %v", rhs.Actual())
	}
	if o1.Name() != "o1" || o1.Parent() != ir.Node(inst) {
		t.Errorf("lhs bound to wrong net: name=%q parent=%v", o1.Name(), o1.Parent())
	}
	if i1.Name() != "i1" || i1.Parent() != ir.Node(inst) {
		t.Errorf("rhs bound to wrong net: name=%q parent=%v", i1.Name(), i1.Parent())
	}

	// The definition's own RefObjs must remain unbound: elaboration must not
	// mutate the shared definition while elaborating one of its instances.
	defCA := contAssigns(s, def)[0]
	if defCA.Lhs().(*ir.RefObj).Actual() != nil {
		t.Error("elaboration bound a RefObj on the shared definition, not just the clone")
	}
}

func TestElaborateIsIdempotent(t *testing.T) {
	s := ir.NewSerializer()
	design := s.NewDesign()
	design.SetName("d")

	def := buildM2(s)
	design.AppendModule(def)

	top := s.NewModule()
	top.SetName("top")
	top.SetDefName("top")
	stub := s.NewModule()
	stub.SetName("u2")
	stub.SetDefName("M2")
	top.AppendSubInstance(top, stub)
	design.AppendModule(top)
	design.MarkTop(top)

	Elaborate(s, design)
	countAfterFirst := len(s.ByKind(ir.KindNet))

	Elaborate(s, design)
	countAfterSecond := len(s.ByKind(ir.KindNet))

	if countAfterFirst != countAfterSecond {
		t.Fatalf("second Elaborate call changed net count: %d -> %d", countAfterFirst, countAfterSecond)
	}
}

func TestElaborateTopModuleNeedsNoClone(t *testing.T) {
	s := ir.NewSerializer()
	design := s.NewDesign()
	design.SetName("d")

	top := buildM2(s)
	top.SetName("top")
	design.AppendModule(top)
	design.MarkTop(top)

	Elaborate(s, design)

	cas := contAssigns(s, top)
	if len(cas) != 1 {
		t.Fatalf("top has %d cont-assigns, want 1 (unchanged, no clone needed)", len(cas))
	}
	lhs := cas[0].Lhs().(*ir.RefObj)
	o1, ok := lhs.Actual().(*ir.Net)
	if !ok || o1.Name() != "o1" {
		t.Errorf("top's own RefObj was not bound in place: %v", lhs.Actual())
	}
}

func TestElaborateClassFindsInheritedMember(t *testing.T) {
	s := ir.NewSerializer()
	design := s.NewDesign()
	design.SetName("d")

	base := s.NewClassDefn()
	base.SetName("Base")
	x := s.NewVariable()
	x.SetName("x")
	base.AppendVariable(x)
	design.AppendClass(base)

	derived := s.NewClassDefn()
	derived.SetName("Derived")
	derived.SetExtends(base)

	method := s.NewFunction()
	method.SetName("m")
	derived.AppendMethod(method)

	ref := s.NewRefObj()
	ref.Name = "x"
	rhsConst := s.NewConstant()
	rhsConst.Value, rhsConst.ConstType = "UINT:0", 1
	assign := s.NewAssignment()
	assign.SetLhs(ref)
	assign.SetRhs(rhsConst)
	method.SetStmt(assign)
	design.AppendClass(derived)

	Elaborate(s, design)

	if ref.Actual() != ir.Node(x) {
		t.Fatalf("RefObj(x) inside Derived's method = %v, want Base's x (inherited)", ref.Actual())
	}
}
