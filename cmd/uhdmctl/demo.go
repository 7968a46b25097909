package main

import "uhdm/internal/ir"

// buildDemoDesign constructs a small but complete design with no
// SystemVerilog front-end involved, for exercising save/restore/elaborate
// /eval/find/cfg end to end: a top module "counter" with a parameter, a
// net, a registered variable, a function, and a child instance of module
// "adder" that itself carries a same-named parameter worth re-binding
// during elaboration. Grounded on internal/wire's buildSample and
// internal/elaborate's buildM2 fixtures, extended into a standalone design
// with a handle so the CLI can treat it exactly like a restored file.
func buildDemoDesign(s *ir.Serializer) (*ir.Design, ir.Handle) {
	d := s.NewDesign()
	d.SetName("demo")

	byteTS := s.NewLogicTypespec()
	r := s.NewRange()
	rl := s.NewConstant()
	rl.Value, rl.ConstType = "UINT:7", 1
	rr := s.NewConstant()
	rr.Value, rr.ConstType = "UINT:0", 1
	r.SetLeft(rl)
	r.SetRight(rr)
	byteTS.AppendRange(s, byteTS, r)

	adder := s.NewModule()
	adder.SetName("adder")
	adder.SetDefName("adder")
	d.AppendModule(adder)

	adderWidth := s.NewParameter()
	adderWidth.SetName("WIDTH")
	adderWidthDefault := s.NewConstant()
	adderWidthDefault.Value, adderWidthDefault.ConstType = "UINT:8", 1
	adderWidth.SetDefaultValue(adderWidthDefault)
	adder.AppendParameter(adder, adderWidth)

	sum := s.NewVariable()
	sum.SetName("sum")
	sum.SetTypespecRef(refTo(s, byteTS))
	zero := s.NewConstant()
	zero.Value, zero.ConstType = "UINT:0", 1
	sum.SetInitial(zero)
	adder.AppendVariable(adder, sum)

	top := s.NewModule()
	top.SetName("counter")
	top.SetDefName("counter")
	d.AppendModule(top)
	d.MarkTop(top)

	width := s.NewParameter()
	width.SetName("WIDTH")
	widthDefault := s.NewConstant()
	widthDefault.Value, widthDefault.ConstType = "UINT:8", 1
	width.SetDefaultValue(widthDefault)
	top.AppendParameter(top, width)

	clk := s.NewLogicNet()
	clk.SetName("clk")
	clk.SetTypespecRef(refTo(s, byteTS))
	top.AppendNet(top, clk)

	count := s.NewVariable()
	count.SetName("count")
	count.SetTypespecRef(refTo(s, byteTS))
	countInit := s.NewConstant()
	countInit.Value, countInit.ConstType = "UINT:0", 1
	count.SetInitial(countInit)
	top.AppendVariable(top, count)

	xRef := s.NewRefObj()
	xRef.Name = "x"
	one := s.NewConstant()
	one.Value, one.ConstType = "UINT:1", 1
	plus := s.NewOperation()
	plus.OpType = ir.OpPlus
	plus.AppendOperand(xRef)
	plus.AppendOperand(one)
	ret := s.NewReturnStmt()
	ret.SetValue(plus)

	step := s.NewFunction()
	step.SetName("step")
	x := s.NewIODecl()
	x.SetName("x")
	step.AppendIODecl(step, x)
	step.SetReturnTypespecRef(refTo(s, byteTS))
	step.SetStmt(ret)
	top.AppendTaskFunc(top, step)

	u := s.NewModule()
	u.SetName("u_adder")
	u.SetDefName("adder")
	top.AppendSubInstance(top, u)

	h := s.MakeHandle(d)
	return d, h
}

func refTo(s *ir.Serializer, t ir.Typespec) *ir.RefTypespec {
	r := s.NewRefTypespec()
	r.SetActual(t)
	return r
}
