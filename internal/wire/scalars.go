package wire

import (
	"fmt"

	"uhdm/internal/ir"
	"uhdm/internal/uhdmio"
)

// CopyScalars copies dst's location and kind-specific scalar fields from
// src — everything writeScalars/readScalars round-trip, nothing edge- or
// identity-related. dst and src must be the same concrete kind (a fresh
// node from ir.(*Serializer).NewByKind(src.Kind()) always qualifies).
// internal/clone uses this to copy a node's non-edge payload when deep-
// copying a subtree, reusing the save/restore format instead of a second
// hand-written field-by-field switch.
func CopyScalars(dst, src ir.Node) error {
	dst.SetLoc(src.Loc())
	w := uhdmio.NewWriter()
	if err := writeScalars(w, src); err != nil {
		return err
	}
	r := uhdmio.NewReader(w.Bytes())
	return readScalars(r, dst)
}

// writeScalars encodes the kind-specific scalar fields of n — everything
// WalkEdges doesn't already cover — in the fixed field order each type
// declares them. encodeEdges (wire.go) handles every NodeID-valued field;
// this type switch is the generic-`ir`-accessor half of §4.2.2's per-node
// record the design note in internal/ir/wiregroups.go describes.
func writeScalars(w *uhdmio.Writer, n ir.Node) error {
	switch v := n.(type) {
	case *ir.Design:
		w.WriteString(v.Name())
	case *ir.Module:
		w.WriteString(v.Name())
		w.WriteString(v.DefName())
	case *ir.Interface:
		w.WriteString(v.Name())
		w.WriteString(v.DefName())
	case *ir.Program:
		w.WriteString(v.Name())
		w.WriteString(v.DefName())
	case *ir.Package:
		w.WriteString(v.Name())
	case *ir.ClassDefn:
		w.WriteString(v.Name())
	case *ir.Port:
		w.WriteString(v.Name())
		w.WriteByte(byte(v.Direction))
	case *ir.Net:
		w.WriteString(v.Name())
	case *ir.LogicNet:
		w.WriteString(v.Name())
	case *ir.Variable:
		w.WriteString(v.Name())
	case *ir.LogicVar:
		w.WriteString(v.Name())
	case *ir.Parameter:
		w.WriteString(v.Name())
		w.WriteBool(v.Localparam)
	case *ir.ParamAssign:
		// no scalar fields beyond its two edges
	case *ir.IODecl:
		w.WriteString(v.Name())
		w.WriteByte(byte(v.Direction))
	case *ir.GenScope:
		w.WriteString(v.Name())
	case *ir.GenScopeArray:
		w.WriteString(v.Name())
	case *ir.Constant:
		w.WriteString(v.Value)
		w.WriteVarint(int64(v.ConstType))
		w.WriteVarint(int64(v.Size))
	case *ir.Operation:
		w.WriteVarint(int64(v.OpType))
		w.WriteBool(v.Reordered)
		w.WriteBool(v.Flattened)
	case *ir.RefObj:
		w.WriteString(v.Name)
	case *ir.RefTypespec:
		// no scalar fields
	case *ir.HierPath:
		// no scalar fields
	case *ir.BitSelect:
		w.WriteString(v.Name)
	case *ir.PartSelect:
		w.WriteString(v.Name)
	case *ir.IndexedPartSelect:
		w.WriteString(v.Name)
		w.WriteByte(byte(v.Dir))
	case *ir.VarSelect:
		w.WriteString(v.Name)
	case *ir.SysFuncCall:
		w.WriteString(v.Name)
	case *ir.FuncCall:
		w.WriteString(v.Name)
	case *ir.TaggedPattern:
		w.WriteString(v.Tag)
	case *ir.Function:
		w.WriteString(v.Name())
	case *ir.Task:
		w.WriteString(v.Name())
	case *ir.Begin:
		w.WriteString(v.Name())
	case *ir.Fork:
		w.WriteString(v.Name())
	case *ir.ForStmt:
		// no scalar fields
	case *ir.ForeachStmt:
		// no scalar fields
	case *ir.WhileStmt:
		// no scalar fields
	case *ir.DoWhile:
		// no scalar fields
	case *ir.Repeat:
		// no scalar fields
	case *ir.IfStmt:
		// no scalar fields
	case *ir.IfElse:
		// no scalar fields
	case *ir.CaseItem:
		// no scalar fields (IsDefault is derived from len(exprs))
	case *ir.CaseStmt:
		// no scalar fields
	case *ir.Assignment:
		w.WriteVarint(int64(v.OpType))
		w.WriteBool(v.Blocking)
	case *ir.ContAssign:
		// no scalar fields
	case *ir.Always:
		w.WriteByte(byte(v.AlwaysKind))
	case *ir.Initial:
		// no scalar fields
	case *ir.EventControl:
		// no scalar fields
	case *ir.ReturnStmt:
		// no scalar fields
	case *ir.ContinueStmt:
		// no scalar fields
	case *ir.BreakStmt:
		// no scalar fields
	case *ir.LogicTypespec:
		w.WriteBool(v.Signed)
	case *ir.BitTypespec:
		w.WriteBool(v.Signed)
	case *ir.IntTypespec:
		w.WriteBool(v.Signed)
	case *ir.IntegerTypespec:
		w.WriteBool(v.Signed)
	case *ir.RealTypespec:
		// no scalar fields
	case *ir.StringTypespec:
		// no scalar fields
	case *ir.StructTypespec:
		w.WriteBool(v.Packed)
	case *ir.UnionTypespec:
		w.WriteBool(v.Packed)
	case *ir.EnumTypespec:
		// no scalar fields
	case *ir.EnumConst:
		w.WriteString(v.Name)
	case *ir.ArrayTypespec:
		// no scalar fields
	case *ir.PackedArrayTypespec:
		// no scalar fields
	case *ir.ClassTypespec:
		w.WriteString(v.Name)
	case *ir.TypedefTypespec:
		w.WriteString(v.Name)
	case *ir.ImportTypespec:
		w.WriteString(v.PackageName)
		w.WriteString(v.ItemName)
	case *ir.Range:
		// no scalar fields
	case *ir.TypespecMember:
		w.WriteString(v.Name)
	default:
		return fmt.Errorf("wire: unhandled kind %s in writeScalars", n.Kind())
	}
	return nil
}

// readScalars is the exact inverse of writeScalars: same type switch, same
// field order, reading instead of writing.
func readScalars(r *uhdmio.Reader, n ir.Node) error {
	switch v := n.(type) {
	case *ir.Design:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.SetName(s)
	case *ir.Module:
		name, err := r.ReadString()
		if err != nil {
			return err
		}
		defName, err := r.ReadString()
		if err != nil {
			return err
		}
		v.SetName(name)
		v.SetDefName(defName)
	case *ir.Interface:
		name, err := r.ReadString()
		if err != nil {
			return err
		}
		defName, err := r.ReadString()
		if err != nil {
			return err
		}
		v.SetName(name)
		v.SetDefName(defName)
	case *ir.Program:
		name, err := r.ReadString()
		if err != nil {
			return err
		}
		defName, err := r.ReadString()
		if err != nil {
			return err
		}
		v.SetName(name)
		v.SetDefName(defName)
	case *ir.Package:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.SetName(s)
	case *ir.ClassDefn:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.SetName(s)
	case *ir.Port:
		name, err := r.ReadString()
		if err != nil {
			return err
		}
		dir, err := r.ReadByte()
		if err != nil {
			return err
		}
		v.SetName(name)
		v.Direction = ir.IODirection(dir)
	case *ir.Net:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.SetName(s)
	case *ir.LogicNet:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.SetName(s)
	case *ir.Variable:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.SetName(s)
	case *ir.LogicVar:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.SetName(s)
	case *ir.Parameter:
		name, err := r.ReadString()
		if err != nil {
			return err
		}
		localparam, err := r.ReadBool()
		if err != nil {
			return err
		}
		v.SetName(name)
		v.Localparam = localparam
	case *ir.ParamAssign:
	case *ir.IODecl:
		name, err := r.ReadString()
		if err != nil {
			return err
		}
		dir, err := r.ReadByte()
		if err != nil {
			return err
		}
		v.SetName(name)
		v.Direction = ir.IODirection(dir)
	case *ir.GenScope:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.SetName(s)
	case *ir.GenScopeArray:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.SetName(s)
	case *ir.Constant:
		val, err := r.ReadString()
		if err != nil {
			return err
		}
		ct, err := r.ReadVarint()
		if err != nil {
			return err
		}
		sz, err := r.ReadVarint()
		if err != nil {
			return err
		}
		v.Value = val
		v.ConstType = int32(ct)
		v.Size = int32(sz)
	case *ir.Operation:
		op, err := r.ReadVarint()
		if err != nil {
			return err
		}
		reordered, err := r.ReadBool()
		if err != nil {
			return err
		}
		flattened, err := r.ReadBool()
		if err != nil {
			return err
		}
		v.OpType = ir.OpType(op)
		v.Reordered = reordered
		v.Flattened = flattened
	case *ir.RefObj:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.Name = s
	case *ir.RefTypespec:
	case *ir.HierPath:
	case *ir.BitSelect:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.Name = s
	case *ir.PartSelect:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.Name = s
	case *ir.IndexedPartSelect:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.Name = s
		dir, err := r.ReadByte()
		if err != nil {
			return err
		}
		v.Dir = ir.IndexedPartSelectDir(dir)
	case *ir.VarSelect:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.Name = s
	case *ir.SysFuncCall:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.Name = s
	case *ir.FuncCall:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.Name = s
	case *ir.TaggedPattern:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.Tag = s
	case *ir.Function:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.SetName(s)
	case *ir.Task:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.SetName(s)
	case *ir.Begin:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.SetName(s)
	case *ir.Fork:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.SetName(s)
	case *ir.ForStmt:
	case *ir.ForeachStmt:
	case *ir.WhileStmt:
	case *ir.DoWhile:
	case *ir.Repeat:
	case *ir.IfStmt:
	case *ir.IfElse:
	case *ir.CaseItem:
	case *ir.CaseStmt:
	case *ir.Assignment:
		op, err := r.ReadVarint()
		if err != nil {
			return err
		}
		blocking, err := r.ReadBool()
		if err != nil {
			return err
		}
		v.OpType = ir.OpType(op)
		v.Blocking = blocking
	case *ir.ContAssign:
	case *ir.Always:
		k, err := r.ReadByte()
		if err != nil {
			return err
		}
		v.AlwaysKind = ir.AlwaysKind(k)
	case *ir.Initial:
	case *ir.EventControl:
	case *ir.ReturnStmt:
	case *ir.ContinueStmt:
	case *ir.BreakStmt:
	case *ir.LogicTypespec:
		b, err := r.ReadBool()
		if err != nil {
			return err
		}
		v.Signed = b
	case *ir.BitTypespec:
		b, err := r.ReadBool()
		if err != nil {
			return err
		}
		v.Signed = b
	case *ir.IntTypespec:
		b, err := r.ReadBool()
		if err != nil {
			return err
		}
		v.Signed = b
	case *ir.IntegerTypespec:
		b, err := r.ReadBool()
		if err != nil {
			return err
		}
		v.Signed = b
	case *ir.RealTypespec:
	case *ir.StringTypespec:
	case *ir.StructTypespec:
		b, err := r.ReadBool()
		if err != nil {
			return err
		}
		v.Packed = b
	case *ir.UnionTypespec:
		b, err := r.ReadBool()
		if err != nil {
			return err
		}
		v.Packed = b
	case *ir.EnumTypespec:
	case *ir.EnumConst:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.Name = s
	case *ir.ArrayTypespec:
	case *ir.PackedArrayTypespec:
	case *ir.ClassTypespec:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.Name = s
	case *ir.TypedefTypespec:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.Name = s
	case *ir.ImportTypespec:
		pkg, err := r.ReadString()
		if err != nil {
			return err
		}
		item, err := r.ReadString()
		if err != nil {
			return err
		}
		v.PackageName = pkg
		v.ItemName = item
	case *ir.Range:
	case *ir.TypespecMember:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.Name = s
	default:
		return fmt.Errorf("wire: unhandled kind %s in readScalars", n.Kind())
	}
	return nil
}
