package eval

import (
	"fmt"
	"strings"

	"uhdm/internal/ir"
)

// PrettyPrint renders an expression tree in a compact, human-readable form,
// used by the CLI and by test-failure messages (§9's prettyPrint).
func PrettyPrint(expr ir.Expr) string {
	var b strings.Builder
	prettyPrint(&b, expr)
	return b.String()
}

func prettyPrint(b *strings.Builder, expr ir.Expr) {
	if expr == nil {
		b.WriteString("<nil>")
		return
	}
	switch v := expr.(type) {
	case *ir.Constant:
		b.WriteString(v.Value)
	case *ir.RefObj:
		b.WriteString(v.Name)
	case *ir.HierPath:
		elems := v.ElementNodes()
		for i, e := range elems {
			if i > 0 {
				b.WriteByte('.')
			}
			prettyPrint(b, e)
		}
	case *ir.BitSelect:
		b.WriteString(v.Name)
		b.WriteByte('[')
		prettyPrint(b, v.Index())
		b.WriteByte(']')
	case *ir.PartSelect:
		b.WriteString(v.Name)
		b.WriteByte('[')
		prettyPrint(b, v.Left())
		b.WriteByte(':')
		prettyPrint(b, v.Right())
		b.WriteByte(']')
	case *ir.IndexedPartSelect:
		b.WriteString(v.Name)
		b.WriteByte('[')
		prettyPrint(b, v.BaseExpr())
		if v.Dir == ir.IndexedPlus {
			b.WriteString("+:")
		} else {
			b.WriteString("-:")
		}
		prettyPrint(b, v.Width())
		b.WriteByte(']')
	case *ir.FuncCall:
		b.WriteString(v.Name)
		b.WriteByte('(')
		for i, a := range v.ArgNodes() {
			if i > 0 {
				b.WriteString(", ")
			}
			prettyPrint(b, a)
		}
		b.WriteByte(')')
	case *ir.TaggedPattern:
		fmt.Fprintf(b, "%s:", v.Tag)
		prettyPrint(b, v.Value())
	case *ir.Operation:
		prettyPrintOperation(b, v)
	default:
		fmt.Fprintf(b, "<%T>", expr)
	}
}

func prettyPrintOperation(b *strings.Builder, op *ir.Operation) {
	operands := op.OperandNodes()
	switch op.OpType {
	case ir.OpAssignmentPattern, ir.OpMultiAssignmentPattern:
		b.WriteString("'{")
		for i, o := range operands {
			if i > 0 {
				b.WriteString(", ")
			}
			prettyPrint(b, o)
		}
		b.WriteByte('}')
	case ir.OpConcat:
		b.WriteByte('{')
		for i, o := range operands {
			if i > 0 {
				b.WriteString(", ")
			}
			prettyPrint(b, o)
		}
		b.WriteByte('}')
	case ir.OpConditional:
		if len(operands) == 3 {
			prettyPrint(b, operands[0])
			b.WriteString(" ? ")
			prettyPrint(b, operands[1])
			b.WriteString(" : ")
			prettyPrint(b, operands[2])
			return
		}
		fallthrough
	default:
		b.WriteByte('(')
		for i, o := range operands {
			if i > 0 {
				b.WriteString(" ")
				b.WriteString(opSymbol(op.OpType))
				b.WriteString(" ")
			}
			prettyPrint(b, o)
		}
		b.WriteByte(')')
	}
}

func opSymbol(t ir.OpType) string {
	switch t {
	case ir.OpPlus, ir.OpUnaryPlus:
		return "+"
	case ir.OpMinus, ir.OpUnaryMinus:
		return "-"
	case ir.OpMult:
		return "*"
	case ir.OpDiv:
		return "/"
	case ir.OpMod:
		return "%"
	case ir.OpLShift:
		return "<<"
	case ir.OpRShift:
		return ">>"
	case ir.OpArithLShift:
		return "<<<"
	case ir.OpArithRShift:
		return ">>>"
	case ir.OpBitAnd:
		return "&"
	case ir.OpBitOr:
		return "|"
	case ir.OpBitXor:
		return "^"
	case ir.OpBitXnor:
		return "~^"
	case ir.OpLogAnd:
		return "&&"
	case ir.OpLogOr:
		return "||"
	case ir.OpEq:
		return "=="
	case ir.OpNeq:
		return "!="
	case ir.OpCaseEq:
		return "==="
	case ir.OpCaseNeq:
		return "!=="
	case ir.OpLt:
		return "<"
	case ir.OpLe:
		return "<="
	case ir.OpGt:
		return ">"
	case ir.OpGe:
		return ">="
	}
	return "?"
}
