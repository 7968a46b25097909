// Package eval is the expression evaluator of §4.6: partial evaluation of
// expressions given an enclosing instance (for parameter/variable lookup)
// and an enclosing expression (for local-variable lookup), reducing toward
// a Constant wherever every operand is itself already constant. Grounded on
// ExprEval.h/ExprEval.cpp from original_source/ for the reduction-rule
// shape (§4.6.4-§4.6.8), and on internal/resolve for the scope-chain walk a
// hand-maintained binding context would otherwise need.
package eval

import (
	"uhdm/internal/ir"
	"uhdm/internal/resolve"
	"uhdm/internal/uhdmio"
)

// ObjectProvider is the pluggable binding source §4.7 calls out: a
// front-end that already maintains its own name tables (Surelog is the
// motivating case upstream) can supply one instead of going through
// internal/resolve.
type ObjectProvider interface {
	GetObject(name string, inst, pexpr ir.Node) ir.Node
	GetTaskFunc(name string, inst ir.Node) ir.Node
	GetValue(name string, inst, pexpr ir.Node) ir.Expr
}

// Eval holds the reduction state for one evaluator session: the serializer
// it reduces against, the binding source, the shared uhdmio.Options (mode,
// step/bit-width caps, error handler), and the per-evalFunc-call frame
// stack of §4.6.7.
type Eval struct {
	s        *ir.Serializer
	provider ObjectProvider
	opts     uhdmio.Options
	skip     SkipSet

	invalid  bool
	steps    int
	bindings []map[ir.NodeID]*ir.Constant
	instBind map[ir.NodeID]map[ir.NodeID]*ir.Constant
}

// SkipSet marks OpTypes the reducer treats as never-reducible, the Go
// analogue of m_skipOperationTypes (§4.6.4, supplemented per SPEC_FULL.md
// §C.3): useful for front-ends that want e.g. raw AssignmentPatternOp nodes
// left untouched even when every operand happens to already be constant.
type SkipSet map[ir.OpType]bool

// New builds an Eval backed by internal/resolve.
func New(s *ir.Serializer, opts uhdmio.Options) *Eval {
	e := &Eval{s: s, opts: opts}
	e.provider = defaultProvider{e}
	return e
}

// NewWithProvider builds an Eval backed by a caller-supplied ObjectProvider.
func NewWithProvider(s *ir.Serializer, provider ObjectProvider, opts uhdmio.Options) *Eval {
	return &Eval{s: s, provider: provider, opts: opts}
}

// SetSkip installs the opt-out operation set consulted by ReduceExpr.
func (e *Eval) SetSkip(set SkipSet) { e.skip = set }

// Invalid reports whether the most recent reduction produced an
// invalidValue result per §4.6.1 (an x bit surfaced, a divide-by-zero was
// hit, a pattern couldn't be matched, ...).
func (e *Eval) Invalid() bool { return e.invalid }

// ResetInvalid clears the invalidValue flag before a fresh top-level call.
func (e *Eval) ResetInvalid() { e.invalid = false }

func (e *Eval) binding(n ir.Node) (*ir.Constant, bool) {
	if n == nil {
		return nil, false
	}
	for i := len(e.bindings) - 1; i >= 0; i-- {
		if c, ok := e.bindings[i][n.ID()]; ok {
			return c, true
		}
	}
	return nil, false
}

func (e *Eval) instBinding(inst ir.Node, obj ir.Node) (*ir.Constant, bool) {
	if e.instBind == nil || obj == nil {
		return nil, false
	}
	var instID ir.NodeID
	if inst != nil {
		instID = inst.ID()
	}
	m, ok := e.instBind[instID]
	if !ok {
		return nil, false
	}
	c, ok := m[obj.ID()]
	return c, ok
}

// GetObject resolves name to the declaration node it names (§4.6.2).
func (e *Eval) GetObject(name string, inst, pexpr ir.Node) ir.Node {
	return e.provider.GetObject(name, inst, pexpr)
}

// GetValue resolves name and reduces its bound value to a Constant where
// possible (§4.6.2).
func (e *Eval) GetValue(name string, inst, pexpr ir.Node) ir.Expr {
	return e.provider.GetValue(name, inst, pexpr)
}

// valueOf extracts the current value of a resolved declaration node: a
// frame binding (evalFunc locals/args) or instance-level override always
// wins; otherwise it falls back to the node's own default/initial value.
func (e *Eval) valueOf(obj ir.Node, inst, pexpr ir.Node) ir.Expr {
	if c, ok := e.binding(obj); ok {
		return c
	}
	if c, ok := e.instBinding(inst, obj); ok {
		return c
	}
	switch v := obj.(type) {
	case *ir.Parameter:
		if holder, ok := inst.(paramAssignHolder); ok {
			for _, pa := range holder.ParamAssigns(e.s) {
				if pa.Lhs() == v {
					return e.ReduceExpr(pa.Rhs(), inst, pexpr)
				}
			}
		}
		return e.ReduceExpr(v.DefaultValue(), inst, pexpr)
	case *ir.Variable:
		return e.ReduceExpr(v.Initial(), inst, pexpr)
	case *ir.LogicVar:
		return e.ReduceExpr(v.Initial(), inst, pexpr)
	case *ir.EnumConst:
		return v.Value()
	case *ir.TypespecMember:
		return e.ReduceExpr(v.DefaultValue(), inst, pexpr)
	}
	return nil
}

type paramAssignHolder interface {
	ParamAssigns(s *ir.Serializer) []*ir.ParamAssign
}

type paramAssignAppender interface {
	AppendParamAssign(parent ir.Node, pa *ir.ParamAssign)
}

// defaultProvider backs ObjectProvider with internal/resolve, scoped at
// pexpr when given (the enclosing expression's local-variable chain),
// falling back to inst (§4.6.1's two lookup roots).
type defaultProvider struct{ e *Eval }

func scopeOf(inst, pexpr ir.Node) ir.Node {
	if pexpr != nil {
		return pexpr
	}
	return inst
}

func (p defaultProvider) GetObject(name string, inst, pexpr ir.Node) ir.Node {
	scope := scopeOf(inst, pexpr)
	if scope == nil {
		return nil
	}
	return resolve.FindObject(p.e.s, scope, name)
}

func (p defaultProvider) GetTaskFunc(name string, inst ir.Node) ir.Node {
	if inst == nil {
		return nil
	}
	obj := resolve.FindObject(p.e.s, inst, name)
	switch obj.(type) {
	case *ir.Function, *ir.Task:
		return obj
	}
	return nil
}

func (p defaultProvider) GetValue(name string, inst, pexpr ir.Node) ir.Expr {
	obj := p.GetObject(name, inst, pexpr)
	if obj == nil {
		return nil
	}
	return p.e.valueOf(obj, inst, pexpr)
}

// ReduceExpr is the central entry point of §4.6.2: recursively reduce expr
// toward a Constant, returning the input unchanged wherever full reduction
// isn't possible.
func (e *Eval) ReduceExpr(expr ir.Expr, inst, pexpr ir.Node) ir.Expr {
	if expr == nil {
		return nil
	}
	switch v := expr.(type) {
	case *ir.Constant:
		return v
	case *ir.RefObj:
		return e.reduceRef(v, inst, pexpr)
	case *ir.Operation:
		return e.reduceOperation(v, inst, pexpr)
	case *ir.HierPath:
		return e.reduceHierPathExpr(v, inst, pexpr)
	case *ir.BitSelect:
		return e.reduceBitSelectExpr(v, inst, pexpr)
	case *ir.PartSelect:
		return e.reducePartSelectExpr(v, inst, pexpr)
	case *ir.IndexedPartSelect:
		return e.reduceIndexedPartSelectExpr(v, inst, pexpr)
	case *ir.FuncCall:
		return e.reduceFuncCallExpr(v, inst, pexpr)
	default:
		return expr
	}
}

func (e *Eval) reduceRef(ref *ir.RefObj, inst, pexpr ir.Node) ir.Expr {
	if obj := ref.Actual(); obj != nil {
		if val := e.valueOf(obj, inst, pexpr); val != nil {
			return val
		}
		return ref
	}
	if val := e.provider.GetValue(ref.Name, inst, pexpr); val != nil {
		return val
	}
	return ref
}

func (e *Eval) reduceFuncCallExpr(call *ir.FuncCall, inst, pexpr ir.Node) ir.Expr {
	fn, ok := call.Actual().(*ir.Function)
	if !ok {
		if obj := e.provider.GetTaskFunc(call.Name, inst); obj != nil {
			fn, _ = obj.(*ir.Function)
		}
	}
	if fn == nil {
		e.opts.Report(uhdmio.ErrUndefinedUserFunction, "undefined function "+call.Name, call, nil)
		e.invalid = true
		return call
	}
	if red := e.EvalFunc(fn, call.ArgNodes(), inst, pexpr); red != nil {
		return red
	}
	return call
}
