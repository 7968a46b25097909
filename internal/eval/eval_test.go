package eval_test

import (
	"testing"

	"uhdm/internal/eval"
	"uhdm/internal/ir"
	"uhdm/internal/uhdmio"
)

func refTo(s *ir.Serializer, t ir.Typespec) *ir.RefTypespec {
	r := s.NewRefTypespec()
	r.SetActual(t)
	return r
}

// TestS1BinaryAdd reduces the §8.2 S1 fixture (UINT:10 + UINT:20) to a
// single constant and checks its decoded value.
func TestS1BinaryAdd(t *testing.T) {
	s := ir.NewSerializer()
	a := s.NewConstant()
	a.Value, a.ConstType = "UINT:10", 1
	b := s.NewConstant()
	b.Value, b.ConstType = "UINT:20", 1

	add := s.NewOperation()
	add.OpType = ir.OpPlus
	add.AppendOperand(a)
	add.AppendOperand(b)

	e := eval.New(s, uhdmio.Options{})
	red := e.ReduceExpr(add, nil, nil)
	c, ok := red.(*ir.Constant)
	if !ok {
		t.Fatalf("ReduceExpr did not produce a Constant: %T", red)
	}
	got, ok := eval.GetIValue(c)
	if !ok || got != 30 {
		t.Fatalf("GetIValue = %d, %v; want 30, true", got, ok)
	}
	if e.Invalid() {
		t.Fatal("Invalid() = true, want false")
	}
}

// TestS2UnaryMinus reduces the §8.2 S2 fixture (-INT:10).
func TestS2UnaryMinus(t *testing.T) {
	s := ir.NewSerializer()
	ten := s.NewConstant()
	ten.Value, ten.ConstType = "INT:10", 2

	neg := s.NewOperation()
	neg.OpType = ir.OpUnaryMinus
	neg.AppendOperand(ten)

	e := eval.New(s, uhdmio.Options{})
	red := e.ReduceExpr(neg, nil, nil)
	c, ok := red.(*ir.Constant)
	if !ok {
		t.Fatalf("ReduceExpr did not produce a Constant: %T", red)
	}
	got, ok := eval.GetIValue(c)
	if !ok || got != -10 {
		t.Fatalf("GetIValue = %d, %v; want -10, true", got, ok)
	}
}

// TestS3RangeSize reduces SIZE-1 through a ParamAssign binding SIZE=8 and
// checks the governing LogicTypespec's bit width comes out to 8.
func TestS3RangeSize(t *testing.T) {
	s := ir.NewSerializer()

	sizeParam := s.NewParameter()
	sizeParam.SetName("SIZE")
	sizeDefault := s.NewConstant()
	sizeDefault.Value, sizeDefault.ConstType = "INT:8", 2
	sizeParam.SetDefaultValue(sizeDefault)

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

	e := eval.New(s, uhdmio.Options{})
	got := e.Size(lt, nil, nil, true)
	if got != 8 {
		t.Fatalf("Size(lt) = %d, want 8", got)
	}
}

// TestS4HierPath gives the §8.2 S4 struct-variable fixture a concrete
// packed value and reduces the v.addr HierPath down to just addr's bits.
func TestS4HierPath(t *testing.T) {
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

	// opcode = 0xAB (bits[31:24]), addr = 0x123456 (bits[23:0]).
	packed := s.NewConstant()
	packed.Value, packed.ConstType, packed.Size = "UINT:2870096982", 1, 32
	v.SetInitial(packed)

	hp := s.NewHierPath()
	vRef := s.NewRefObj()
	vRef.Name = "v"
	vRef.SetActual(v)
	addrRef := s.NewRefObj()
	addrRef.Name = "addr"
	hp.AppendElement(vRef)
	hp.AppendElement(addrRef)

	e := eval.New(s, uhdmio.Options{})
	red := e.ReduceExpr(hp, nil, nil)
	c, ok := red.(*ir.Constant)
	if !ok {
		t.Fatalf("ReduceExpr(hp) did not produce a Constant: %T", red)
	}
	got, ok := eval.GetUValue(c)
	if !ok || got != 0x123456 {
		t.Fatalf("GetUValue = %#x, %v; want 0x123456, true", got, ok)
	}
	if e.Invalid() {
		t.Fatal("Invalid() = true, want false")
	}
}

// TestS5Function calls the §8.2 S5 fixture (f(a,b) = a + b*2) through
// EvalFunc with a=3, b=4 and expects 11.
func TestS5Function(t *testing.T) {
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

	constA := s.NewConstant()
	constA.Value, constA.ConstType = "UINT:3", 1
	constB := s.NewConstant()
	constB.Value, constB.ConstType = "UINT:4", 1

	e := eval.New(s, uhdmio.Options{})
	red := e.EvalFunc(fn, []ir.Expr{constA, constB}, nil, nil)
	c, ok := red.(*ir.Constant)
	if !ok {
		t.Fatalf("EvalFunc did not produce a Constant: %T", red)
	}
	got, ok := eval.GetIValue(c)
	if !ok || got != 11 {
		t.Fatalf("GetIValue = %d, %v; want 11, true", got, ok)
	}
	if e.Invalid() {
		t.Fatal("Invalid() = true, want false")
	}
}

// TestDivideByZeroReportsDiag exercises §4.6.4's divide-by-zero error path
// through uhdmio's recording handler.
func TestDivideByZeroReportsDiag(t *testing.T) {
	s := ir.NewSerializer()
	a := s.NewConstant()
	a.Value, a.ConstType = "UINT:10", 1
	zero := s.NewConstant()
	zero.Value, zero.ConstType = "UINT:0", 1

	div := s.NewOperation()
	div.OpType = ir.OpDiv
	div.AppendOperand(a)
	div.AppendOperand(zero)

	var diags uhdmio.Diags
	e := eval.New(s, uhdmio.Options{OnError: diags.RecordingHandler()})
	e.ReduceExpr(div, nil, nil)

	if !e.Invalid() {
		t.Fatal("Invalid() = false, want true after divide by zero")
	}
	if diags.Len() != 1 || diags.Items()[0].Kind != uhdmio.ErrDivideByZero {
		t.Fatalf("diags = %+v, want one ErrDivideByZero entry", diags.Items())
	}
}

// TestFlattenPatternAssignments exercises §4.6.5: a tagged assignment
// pattern fills the struct's members in declaration order. The unsized `1`
// given for opcode is a single-bit fill, so it widens to all-ones at
// opcode's 8-bit width; the unsized `2` for addr is kept as written.
func TestFlattenPatternAssignments(t *testing.T) {
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

	st := s.NewStructTypespec()
	opcode := s.NewTypespecMember()
	opcode.Name = "opcode"
	opcode.SetTypespecRef(refTo(s, bit8))
	st.AppendMember(st, opcode)
	addr := s.NewTypespecMember()
	addr.Name = "addr"
	addr.SetTypespecRef(refTo(s, bit8))
	st.AppendMember(st, addr)

	opVal := s.NewConstant()
	opVal.Value, opVal.ConstType = "UINT:1", 1
	addrVal := s.NewConstant()
	addrVal.Value, addrVal.ConstType = "UINT:2", 1

	opTag := s.NewTaggedPattern()
	opTag.Tag = "opcode"
	opTag.SetValue(opVal)
	addrTag := s.NewTaggedPattern()
	addrTag.Tag = "addr"
	addrTag.SetValue(addrVal)

	pat := s.NewOperation()
	pat.OpType = ir.OpAssignmentPattern
	pat.AppendOperand(opTag)
	pat.AppendOperand(addrTag)

	e := eval.New(s, uhdmio.Options{})
	flat := e.FlattenPatternAssignments(st, pat)
	op, ok := flat.(*ir.Operation)
	if !ok || !op.Flattened {
		t.Fatalf("FlattenPatternAssignments did not return a flattened Operation: %+v", flat)
	}
	operands := op.OperandNodes()
	if len(operands) != 2 {
		t.Fatalf("len(operands) = %d, want 2", len(operands))
	}
	if operands[0].(*ir.Constant).Value != "UINT:255" || operands[1].(*ir.Constant).Value != "UINT:2" {
		t.Fatalf("operands in wrong member order: %+v", operands)
	}
	if e.Invalid() {
		t.Fatal("Invalid() = true, want false")
	}
}
