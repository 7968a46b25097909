package ir

// NodeID is the stable 32-bit id assigned at node creation (invariant 2,
// §3.4): unique within one Serializer/arena and monotonically increasing
// across creation. Zero is never assigned to a real node; it is the "no
// reference" sentinel, matching uhdmio.NullRef.
type NodeID uint32

// Location carries the source-location attributes every node has per §3.1.
type Location struct {
	File        SymbolID
	StartLine   uint32
	StartColumn uint16
	EndLine     uint32
	EndColumn   uint16
}

// SymbolID is an interned string id, per §4.1.2's makeSymbol/getSymbol.
type SymbolID uint32

// BadSymbolID is the sentinel for "no symbol".
const BadSymbolID SymbolID = 0

// Node is the capability every kind shares (§3.1): identity, location, a
// weak parent back-reference, and an opaque client-data payload
// (§C.1 of SPEC_FULL.md — ported from BaseClass::ClientData).
type Node interface {
	ID() NodeID
	Kind() Kind
	Serializer() *Serializer

	Parent() Node
	SetParent(Node)

	Loc() Location
	SetLoc(Location)

	ClientData() any
	SetClientData(any)
}

// base is embedded by every concrete node type and implements the common
// Node methods mechanically, the way BaseClass.h does for the C++ schema.
type base struct {
	id     NodeID
	kind   Kind
	ser    *Serializer
	parent NodeID
	loc    Location
	client any
}

func (b *base) ID() NodeID             { return b.id }
func (b *base) Kind() Kind             { return b.kind }
func (b *base) Serializer() *Serializer { return b.ser }

func (b *base) Parent() Node {
	if b.parent == 0 {
		return nil
	}
	return b.ser.byID[b.parent]
}

func (b *base) SetParent(n Node) {
	if n == nil {
		b.parent = 0
		return
	}
	b.parent = n.ID()
}

func (b *base) Loc() Location     { return b.loc }
func (b *base) SetLoc(l Location) { b.loc = l }

func (b *base) ClientData() any     { return b.client }
func (b *base) SetClientData(v any) { b.client = v }

// Named is the "has name" capability of §3.1.
type Named interface {
	Name() string
	SetName(string)
}

// DefNamed is the "has a definition name" capability instances carry
// (Instance.defName / Instance.name per §3.3).
type DefNamed interface {
	DefName() string
	SetDefName(string)
}

// Typed is the "has typespec" capability: entities indirect through a
// RefTypespec (§3.3) so elaboration can substitute the type without
// rewriting every holder.
type Typed interface {
	TypespecRef() *RefTypespec
	SetTypespecRef(*RefTypespec)
}

// Expr is the "is an expression" capability (§3.3).
type Expr interface {
	Node
	exprNode()
}

// Stmt is the "is a statement" capability.
type Stmt interface {
	Node
	stmtNode()
}

// Typespec is the "is a typespec" capability (§3.1, §9.2).
type Typespec interface {
	Node
	typespecNode()
}

// ScopeTable is one named lookup table consulted, in order, while
// resolving an identifier inside a Scope (§4.4.3 item 3, §4.4.4).
type ScopeTable struct {
	Name   string
	Lookup func(name string) Node
}

// Scope is the "is a scope" capability (§3.3): any node that introduces a
// local name-lookup frame. ScopeTables returns the ordered table list for
// this concrete kind, letting the resolver (internal/resolve) stay
// table-driven instead of type-switching per kind.
type Scope interface {
	Node
	ScopeTables() []ScopeTable
}

// Instance is the "is an instance" capability shared by Module, Interface,
// and Program (§3.3).
type Instance interface {
	Node
	Scope
	DefNamed
	Named
}
