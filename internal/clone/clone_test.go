package clone

import (
	"testing"

	"uhdm/internal/ir"
)

// buildM2 builds the S6 fixture from spec.md §8.2: a module M2 declaring
// port i1, net o1, and `assign o1 = i1` wired through RefObjs that resolve
// to M2's own nets.
func buildM2(s *ir.Serializer) (*ir.Module, *ir.Net /*i1*/, *ir.Net /*o1*/) {
	m2 := s.NewModule()
	m2.SetName("m2")
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
	lhs.SetActual(o1)
	rhs := s.NewRefObj()
	rhs.Name = "i1"
	rhs.SetActual(i1)

	ca := s.NewContAssign()
	ca.SetLhs(lhs)
	ca.SetRhs(rhs)
	m2.AppendContAssign(m2, ca)

	return m2, i1, o1
}

func TestCloneRewritesRefsWithinSubtree(t *testing.T) {
	s := ir.NewSerializer()
	def, i1, o1 := buildM2(s)

	top := s.NewModule()
	top.SetName("top")
	top.SetDefName("top")

	clonedNode, err := Clone(s, def, top)
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	inst, ok := clonedNode.(*ir.Module)
	if !ok {
		t.Fatalf("clone is not a *ir.Module: %T", clonedNode)
	}
	if inst == def {
		t.Fatal("clone returned the original node")
	}
	if inst.Parent() != top {
		t.Error("clone's parent was not set to newParent")
	}

	cas := instContAssigns(t, s, inst)
	if len(cas) != 1 {
		t.Fatalf("expected 1 cont-assign on the clone, got %d", len(cas))
	}
	ca := cas[0]

	lhs, ok := ca.Lhs().(*ir.RefObj)
	if !ok {
		t.Fatalf("lhs is not a RefObj: %T", ca.Lhs())
	}
	rhs, ok := ca.Rhs().(*ir.RefObj)
	if !ok {
		t.Fatalf("rhs is not a RefObj: %T", ca.Rhs())
	}

	clonedO1, ok := lhs.Actual().(*ir.Net)
	if !ok {
		t.Fatalf("lhs.Actual() is not a Net: %T", lhs.Actual())
	}
	clonedI1, ok := rhs.Actual().(*ir.Net)
	if !ok {
		t.Fatalf("rhs.Actual() is not a Net: %T", rhs.Actual())
	}

	if clonedO1 == o1 {
		t.Error("lhs RefObj still points at the definition's o1 net, not the clone's own")
	}
	if clonedI1 == i1 {
		t.Error("rhs RefObj still points at the definition's i1 net, not the clone's own")
	}
	if clonedO1.Name() != "o1" || clonedI1.Name() != "i1" {
		t.Errorf("cloned nets have wrong names: lhs=%q rhs=%q", clonedO1.Name(), clonedI1.Name())
	}
	if clonedO1.Parent() != inst || clonedI1.Parent() != inst {
		t.Error("cloned nets' parent is not the cloned instance")
	}

	// Original subtree must be untouched.
	origCAs := instContAssigns(t, s, def)
	if len(origCAs) != 1 {
		t.Fatalf("expected the definition to still have 1 cont-assign, got %d", len(origCAs))
	}
	origLhs := origCAs[0].Lhs().(*ir.RefObj)
	if origLhs.Actual() != o1 {
		t.Error("cloning should not have disturbed the definition's own RefObj target")
	}
}

func instContAssigns(t *testing.T, s *ir.Serializer, m *ir.Module) []*ir.ContAssign {
	t.Helper()
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

func TestCloneNilIsNoop(t *testing.T) {
	s := ir.NewSerializer()
	n, err := Clone(s, nil, nil)
	if err != nil || n != nil {
		t.Fatalf("Clone(nil) = (%v, %v), want (nil, nil)", n, err)
	}
}

func TestCloneLeavesExternalRefsAlone(t *testing.T) {
	s := ir.NewSerializer()

	shared := s.NewLogicTypespec()
	shared.Signed = true

	port := s.NewPort()
	port.SetName("p")
	port.SetTypespecRef(refTo(s, shared))

	m := s.NewModule()
	m.SetName("m")
	m.AppendPort(m, port)

	clonedNode, err := Clone(s, m, nil)
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	clone := clonedNode.(*ir.Module)

	var clonedPort *ir.Port
	clone.WalkEdges(func(kind ir.EdgeKind, id *ir.NodeID) {
		if p, ok := s.Get(*id).(*ir.Port); ok {
			clonedPort = p
		}
	})
	if clonedPort == nil {
		t.Fatal("clone has no port")
	}
	if clonedPort.TypespecRef().Actual() != shared {
		t.Error("port's typespec ref should still point at the original shared typespec")
	}
}

func refTo(s *ir.Serializer, t ir.Typespec) *ir.RefTypespec {
	r := s.NewRefTypespec()
	r.SetActual(t)
	return r
}
