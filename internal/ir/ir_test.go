package ir_test

import (
	"testing"

	"uhdm/internal/ir"
)

// TestParentConsistency exercises §8.1 property 3: after any own-edge
// append, the child's Parent() is the node that owns it.
func TestParentConsistency(t *testing.T) {
	s := ir.NewSerializer()
	m := s.NewModule()
	m.SetName("top")

	net := s.NewNet()
	net.SetName("clk")
	m.AppendNet(m, net)

	if net.Parent() != ir.Node(m) {
		t.Fatalf("net.Parent() = %v, want m", net.Parent())
	}

	fn := s.NewFunction()
	fn.SetName("f")
	m.AppendTaskFunc(m, fn)
	body := s.NewBegin()
	fn.SetStmt(body)
	if body.Parent() != ir.Node(fn) {
		t.Fatalf("body.Parent() = %v, want fn", body.Parent())
	}
}

// TestGCSafety exercises §8.1 property 6: a node reachable from an
// outstanding handle survives CollectGarbage with its fields intact, while
// an unreferenced node is swept.
func TestGCSafety(t *testing.T) {
	s := ir.NewSerializer()
	design := s.NewDesign()
	design.SetName("d")

	top := s.NewModule()
	top.SetName("top")
	top.SetDefName("top")
	design.AppendModule(top)

	net := s.NewNet()
	net.SetName("clk")
	top.AppendNet(top, net)

	garbage := s.NewNet()
	garbage.SetName("orphan")

	h := s.MakeHandle(design)
	s.CollectGarbage()

	if s.Resolve(h) != ir.Node(design) {
		t.Fatal("design handle did not survive GC")
	}
	if got := s.Get(net.ID()); got != ir.Node(net) {
		t.Fatalf("reachable net was collected: Get = %v", got)
	}
	if got := s.Get(net.ID()).(*ir.Net).Name(); got != "clk" {
		t.Fatalf("surviving net's Name() changed: %q", got)
	}
	if got := s.Get(garbage.ID()); got != nil {
		t.Fatalf("unreachable net survived GC: %v", got)
	}
}

// TestS1BinaryAddShape builds the §8.2 S1 fixture (UINT:10 + UINT:20 under
// vpiAddOp) and checks the IR is wired the way internal/eval's reduction
// expects to find it; the reduction itself is C6's job.
func TestS1BinaryAddShape(t *testing.T) {
	s := ir.NewSerializer()
	a := s.NewConstant()
	a.Value, a.ConstType = "UINT:10", 1
	b := s.NewConstant()
	b.Value, b.ConstType = "UINT:20", 1

	add := s.NewOperation()
	add.OpType = ir.OpPlus
	add.AppendOperand(a)
	add.AppendOperand(b)

	ops := add.OperandNodes()
	if len(ops) != 2 {
		t.Fatalf("len(OperandNodes()) = %d, want 2", len(ops))
	}
	if ops[0].(*ir.Constant).Value != "UINT:10" || ops[1].(*ir.Constant).Value != "UINT:20" {
		t.Fatalf("operand order/value wrong: %+v", ops)
	}
	if a.Parent() != ir.Node(add) || b.Parent() != ir.Node(add) {
		t.Fatal("operands are not parented to the operation")
	}
}

// TestS2UnaryMinusShape builds the §8.2 S2 fixture (vpiMinusOp over INT:10).
func TestS2UnaryMinusShape(t *testing.T) {
	s := ir.NewSerializer()
	ten := s.NewConstant()
	ten.Value, ten.ConstType = "INT:10", 2

	neg := s.NewOperation()
	neg.OpType = ir.OpUnaryMinus
	neg.AppendOperand(ten)

	ops := neg.OperandNodes()
	if len(ops) != 1 || ops[0].(*ir.Constant).Value != "INT:10" {
		t.Fatalf("unary operand wrong: %+v", ops)
	}
	if neg.OpType != ir.OpUnaryMinus {
		t.Fatalf("OpType = %v, want OpUnaryMinus", neg.OpType)
	}
}

// TestS3RangeSizeShape builds the §8.2 S3 fixture: a LogicTypespec ranged
// [SIZE-1:0] where SIZE is bound by a ParamAssign to INT:8.
func TestS3RangeSizeShape(t *testing.T) {
	s := ir.NewSerializer()

	sizeParam := s.NewParameter()
	sizeParam.SetName("SIZE")
	sizeParam.SetDefaultValue(func() ir.Expr {
		c := s.NewConstant()
		c.Value, c.ConstType = "INT:8", 2
		return c
	}())

	paValue := s.NewConstant()
	paValue.Value, paValue.ConstType = "INT:8", 2
	pa := s.NewParamAssign()
	pa.SetLhs(sizeParam)
	pa.SetRhs(paValue)

	lt := s.NewLogicTypespec()
	left := s.NewOperation()
	left.OpType = ir.OpMinus
	sizeRef := s.NewRefObj()
	sizeRef.Name = "SIZE"
	sizeRef.SetActual(sizeParam)
	one := s.NewConstant()
	one.Value, one.ConstType = "UINT:1", 1
	left.AppendOperand(sizeRef)
	left.AppendOperand(one)

	right := s.NewConstant()
	right.Value, right.ConstType = "UINT:0", 1

	rng := s.NewRange()
	rng.SetLeft(left)
	rng.SetRight(right)
	lt.AppendRange(s, lt, rng)

	if len(lt.Ranges(s)) != 1 {
		t.Fatalf("len(Ranges) = %d, want 1", len(lt.Ranges(s)))
	}
	if pa.Lhs() != sizeParam || pa.Rhs().(*ir.Constant).Value != "INT:8" {
		t.Fatal("ParamAssign not wired to SIZE=INT:8")
	}
}

// TestS4HierPathShape builds the §8.2 S4 fixture: struct IR { opcode[7:0];
// addr[23:0]; }, a variable of that type, and a HierPath [v, addr].
func TestS4HierPathShape(t *testing.T) {
	s := ir.NewSerializer()

	bit8 := s.NewBitTypespec()
	r8 := s.NewRange()
	r8l := s.NewConstant()
	r8l.Value, r8l.ConstType = "UINT:7", 1
	r8r := s.NewConstant()
	r8r.Value, r8r.ConstType = "UINT:0", 1
	r8.SetLeft(r8l)
	r8.SetRight(r8r)
	bit8.AppendRange(s, bit8, r8)

	bit24 := s.NewBitTypespec()
	r24 := s.NewRange()
	r24l := s.NewConstant()
	r24l.Value, r24l.ConstType = "UINT:23", 1
	r24r := s.NewConstant()
	r24r.Value, r24r.ConstType = "UINT:0", 1
	r24.SetLeft(r24l)
	r24.SetRight(r24r)
	bit24.AppendRange(s, bit24, r24)

	irStruct := s.NewStructTypespec()
	opcode := s.NewTypespecMember()
	opcode.Name = "opcode"
	opcode.SetTypespecRef(refTo(s, bit8))
	irStruct.AppendMember(irStruct, opcode)

	addr := s.NewTypespecMember()
	addr.Name = "addr"
	addr.SetTypespecRef(refTo(s, bit24))
	irStruct.AppendMember(irStruct, addr)

	v := s.NewVariable()
	v.SetName("v")
	v.SetTypespecRef(refTo(s, irStruct))

	hp := s.NewHierPath()
	vRef := s.NewRefObj()
	vRef.Name = "v"
	vRef.SetActual(v)
	addrRef := s.NewRefObj()
	addrRef.Name = "addr"
	hp.AppendElement(vRef)
	hp.AppendElement(addrRef)

	elems := hp.ElementNodes()
	if len(elems) != 2 {
		t.Fatalf("len(ElementNodes) = %d, want 2", len(elems))
	}
	if elems[0].(*ir.RefObj).Actual() != ir.Node(v) {
		t.Fatal("first HierPath element does not resolve to v")
	}

	members := irStruct.Members(s)
	if len(members) != 2 || members[1].Name != "addr" {
		t.Fatalf("struct members wrong: %+v", members)
	}
	addrType := members[1].TypespecRef().Actual().(*ir.BitTypespec)
	if len(addrType.Ranges(s)) != 1 {
		t.Fatal("addr's BitTypespec has no range")
	}
	left := addrType.Ranges(s)[0].Left().(*ir.Constant)
	if left.Value != "UINT:23" {
		t.Fatalf("addr range left = %q, want UINT:23 (24-bit size)", left.Value)
	}
}

// TestS5FunctionShape builds the §8.2 S5 fixture: function f(a,b) returns
// logic[31:0]; f = a + b * 2; endfunction.
func TestS5FunctionShape(t *testing.T) {
	s := ir.NewSerializer()

	fn := s.NewFunction()
	fn.SetName("f")

	a := s.NewIODecl()
	a.SetName("a")
	fn.AppendIODecl(fn, a)
	b := s.NewIODecl()
	b.SetName("b")
	fn.AppendIODecl(fn, b)

	ret32 := s.NewLogicTypespec()
	fn.SetReturnTypespecRef(refTo(s, ret32))

	aRef := s.NewRefObj()
	aRef.Name = "a"
	bRef := s.NewRefObj()
	bRef.Name = "b"
	two := s.NewConstant()
	two.Value, two.ConstType = "UINT:2", 1

	mul := s.NewOperation()
	mul.OpType = ir.OpMult
	mul.AppendOperand(bRef)
	mul.AppendOperand(two)

	add := s.NewOperation()
	add.OpType = ir.OpPlus
	add.AppendOperand(aRef)
	add.AppendOperand(mul)

	ret := s.NewReturnStmt()
	ret.SetValue(add)
	fn.SetStmt(ret)

	if len(fn.IODecls(s)) != 2 {
		t.Fatalf("len(IODecls) = %d, want 2", len(fn.IODecls(s)))
	}
	if fn.ReturnTypespecRef().Actual() != ir.Typespec(ret32) {
		t.Fatal("return typespec not wired")
	}
	stmt, ok := fn.Stmt().(*ir.ReturnStmt)
	if !ok {
		t.Fatalf("fn.Stmt() = %T, want *ir.ReturnStmt", fn.Stmt())
	}
	topOp, ok := stmt.Value().(*ir.Operation)
	if !ok || topOp.OpType != ir.OpPlus {
		t.Fatalf("return value is not a + operation: %+v", stmt.Value())
	}
	rhs, ok := topOp.OperandNodes()[1].(*ir.Operation)
	if !ok || rhs.OpType != ir.OpMult {
		t.Fatalf("rhs of + is not a * operation: %+v", topOp.OperandNodes()[1])
	}
}

func refTo(s *ir.Serializer, t ir.Typespec) *ir.RefTypespec {
	r := s.NewRefTypespec()
	r.SetActual(t)
	return r
}
