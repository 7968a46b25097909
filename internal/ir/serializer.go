package ir

// EdgeKind distinguishes own-edges from ref-edges when walking a node's
// structural fields (§3.2). GC follows both; clone recurses through own and
// rewrites ref; swap touches only ref.
type EdgeKind uint8

const (
	EdgeOwn EdgeKind = iota
	EdgeRef
)

// EdgeWalker is implemented by every concrete node kind that holds
// references to other nodes (own-one, own-many, ref-one, or ref-many
// fields). WalkEdges visits each slot in declared order, passing the
// address of the NodeID so callers (GC, clone, swap, the wire codec) can
// both read and rewrite it without per-kind special casing.
type EdgeWalker interface {
	WalkEdges(visit func(kind EdgeKind, id *NodeID))
}

// attacher is implemented by base; it lets the generic `make` helper below
// assign identity to a freshly constructed concrete node without exposing
// base's fields outside the package.
type attacher interface {
	attach(s *Serializer, id NodeID, kind Kind)
}

func (b *base) attach(s *Serializer, id NodeID, kind Kind) {
	b.ser = s
	b.id = id
	b.kind = kind
}

// Serializer is the arena of §4.1: it owns every live node, hands out
// monotonically increasing ids, interns symbols, and tracks handles kept
// alive across collectGarbage. The name matches the spec's public surface
// (§6.2: "newSerializer()") even though, in this package, it also plays the
// role the spec calls the arena.
type Serializer struct {
	next   NodeID
	byID   map[NodeID]Node
	byKind map[Kind][]Node // dense, in creation order; save()/restore() index into this

	symbols *SymbolTable

	handles    map[NodeID]bool
	elaborated bool

	topHandles []Handle // roots registered via MakeHandle, in registration order
}

// NewSerializer constructs an empty arena (§6.2 newSerializer()).
func NewSerializer() *Serializer {
	return &Serializer{
		next:    1,
		byID:    make(map[NodeID]Node),
		byKind:  make(map[Kind][]Node),
		symbols: newSymbolTable(),
		handles: make(map[NodeID]bool),
	}
}

// make allocates a node of kind, assigns serializer+id, and registers it in
// the dense per-kind index. Every concrete-kind constructor (NewModule,
// NewConstant, ...) funnels through this, matching §4.1.2's contract that
// nodes are "[c]reated exclusively through the arena factory".
func make_[T Node](s *Serializer, kind Kind, n T) T {
	id := s.next
	s.next++
	any(n).(attacher).attach(s, id, kind)
	s.byID[id] = n
	s.byKind[kind] = append(s.byKind[kind], n)
	return n
}

// NewByKind allocates an empty node of kind k, the same way the concrete
// New* constructors do, without the caller needing to know k's Go type.
// internal/wire's restore uses this for §4.2.4 step 3 ("allocate that many
// empty nodes... reserving ids") before the second pass fills in fields.
func (s *Serializer) NewByKind(k Kind) Node {
	switch k {
	case KindDesign:
		return s.NewDesign()
	case KindModule:
		return s.NewModule()
	case KindInterface:
		return s.NewInterface()
	case KindProgram:
		return s.NewProgram()
	case KindPackage:
		return s.NewPackage()
	case KindClassDefn:
		return s.NewClassDefn()
	case KindPort:
		return s.NewPort()
	case KindNet:
		return s.NewNet()
	case KindLogicNet:
		return s.NewLogicNet()
	case KindVariable:
		return s.NewVariable()
	case KindLogicVar:
		return s.NewLogicVar()
	case KindParameter:
		return s.NewParameter()
	case KindParamAssign:
		return s.NewParamAssign()
	case KindIODecl:
		return s.NewIODecl()
	case KindGenScope:
		return s.NewGenScope()
	case KindGenScopeArray:
		return s.NewGenScopeArray()
	case KindConstant:
		return s.NewConstant()
	case KindOperation:
		return s.NewOperation()
	case KindRefObj:
		return s.NewRefObj()
	case KindRefTypespec:
		return s.NewRefTypespec()
	case KindHierPath:
		return s.NewHierPath()
	case KindBitSelect:
		return s.NewBitSelect()
	case KindPartSelect:
		return s.NewPartSelect()
	case KindIndexedPartSelect:
		return s.NewIndexedPartSelect()
	case KindVarSelect:
		return s.NewVarSelect()
	case KindSysFuncCall:
		return s.NewSysFuncCall()
	case KindFuncCall:
		return s.NewFuncCall()
	case KindTaggedPattern:
		return s.NewTaggedPattern()
	case KindFunction:
		return s.NewFunction()
	case KindTask:
		return s.NewTask()
	case KindBegin:
		return s.NewBegin()
	case KindFork:
		return s.NewFork()
	case KindForStmt:
		return s.NewForStmt()
	case KindForeachStmt:
		return s.NewForeachStmt()
	case KindWhileStmt:
		return s.NewWhileStmt()
	case KindDoWhile:
		return s.NewDoWhile()
	case KindRepeat:
		return s.NewRepeat()
	case KindIfStmt:
		return s.NewIfStmt()
	case KindIfElse:
		return s.NewIfElse()
	case KindCaseStmt:
		return s.NewCaseStmt()
	case KindCaseItem:
		return s.NewCaseItem()
	case KindAssignment:
		return s.NewAssignment()
	case KindContAssign:
		return s.NewContAssign()
	case KindAlways:
		return s.NewAlways()
	case KindInitial:
		return s.NewInitial()
	case KindEventControl:
		return s.NewEventControl()
	case KindReturnStmt:
		return s.NewReturnStmt()
	case KindContinueStmt:
		return s.NewContinueStmt()
	case KindBreakStmt:
		return s.NewBreakStmt()
	case KindLogicTypespec:
		return s.NewLogicTypespec()
	case KindBitTypespec:
		return s.NewBitTypespec()
	case KindIntTypespec:
		return s.NewIntTypespec()
	case KindIntegerTypespec:
		return s.NewIntegerTypespec()
	case KindRealTypespec:
		return s.NewRealTypespec()
	case KindStringTypespec:
		return s.NewStringTypespec()
	case KindStructTypespec:
		return s.NewStructTypespec()
	case KindUnionTypespec:
		return s.NewUnionTypespec()
	case KindEnumTypespec:
		return s.NewEnumTypespec()
	case KindEnumConst:
		return s.NewEnumConst()
	case KindArrayTypespec:
		return s.NewArrayTypespec()
	case KindPackedArrayTypespec:
		return s.NewPackedArrayTypespec()
	case KindClassTypespec:
		return s.NewClassTypespec()
	case KindTypedefTypespec:
		return s.NewTypedefTypespec()
	case KindImportTypespec:
		return s.NewImportTypespec()
	case KindRange:
		return s.NewRange()
	case KindTypespecMember:
		return s.NewTypespecMember()
	default:
		return nil
	}
}

// Get resolves a NodeID to its Node, or nil if id is 0 or unknown (e.g. a
// dangling reference surviving a partial clone, §4.3.3).
func (s *Serializer) Get(id NodeID) Node {
	if id == 0 {
		return nil
	}
	return s.byID[id]
}

// ByKind returns every live node of kind, in creation order.
func (s *Serializer) ByKind(kind Kind) []Node {
	return s.byKind[kind]
}

// ByName performs the mechanical getByVpiName-style scan (§C.1 of
// SPEC_FULL.md): the first node of kind whose Name() matches.
func (s *Serializer) ByName(kind Kind, name string) Node {
	for _, n := range s.byKind[kind] {
		if named, ok := n.(Named); ok && named.Name() == name {
			return n
		}
	}
	return nil
}

// MakeSymbol interns str once and returns its stable id (§4.1.2).
func (s *Serializer) MakeSymbol(str string) SymbolID {
	return s.symbols.Intern(str)
}

// GetSymbol looks up an interned string (§4.1.2).
func (s *Serializer) GetSymbol(id SymbolID) string {
	return s.symbols.Lookup(id)
}

// Symbols exposes the underlying table (used by internal/wire to dump and
// rebuild it across save/restore).
func (s *Serializer) Symbols() *SymbolTable { return s.symbols }

// Handle is an opaque, stable reference to a node suitable for traversal
// roots and for keeping a node alive across collectGarbage (§4.1.2).
type Handle struct {
	kind Kind
	id   NodeID
}

func (h Handle) Kind() Kind   { return h.kind }
func (h Handle) IsNil() bool  { return h.id == 0 }

// MakeHandle produces a handle for node and registers it as an outstanding
// root: collectGarbage will retain anything reachable from it.
func (s *Serializer) MakeHandle(n Node) Handle {
	h := Handle{kind: n.Kind(), id: n.ID()}
	s.handles[n.ID()] = true
	s.topHandles = append(s.topHandles, h)
	return h
}

// Resolve turns a handle back into its Node, or nil if the node was
// collected (should not happen while the handle remains outstanding).
func (s *Serializer) Resolve(h Handle) Node {
	return s.Get(h.id)
}

// TopHandles returns every handle registered via MakeHandle, in
// registration order — the "handle roster" of §6.1/§4.2.2.
func (s *Serializer) TopHandles() []Handle {
	return append([]Handle(nil), s.topHandles...)
}

// Purge destroys every node and collection (§4.1.2). After Purge all ids
// and references are invalid.
func (s *Serializer) Purge() {
	s.next = 1
	s.byID = make(map[NodeID]Node)
	s.byKind = make(map[Kind][]Node)
	s.symbols = newSymbolTable()
	s.handles = make(map[NodeID]bool)
	s.topHandles = nil
	s.elaborated = false
}

// Elaborated reports the Design.elaborated flag (§3.3); tracked on the
// serializer because C5 sets it once, at the end of the top-level pass,
// and every later pass needs an idempotence guard (§4.5.4) without having
// to thread the Design node through.
func (s *Serializer) Elaborated() bool     { return s.elaborated }
func (s *Serializer) SetElaborated(v bool) { s.elaborated = v }

// CollectGarbage retains exactly the nodes reachable (by own-edges,
// ref-edges, and outstanding handles) from the handle set, per §4.1.3. Ids
// are preserved (no renumbering) for everything retained.
func (s *Serializer) CollectGarbage() {
	reachable := make(map[NodeID]bool, len(s.byID))
	var walk func(id NodeID)
	walk = func(id NodeID) {
		if id == 0 || reachable[id] {
			return
		}
		reachable[id] = true
		n := s.byID[id]
		if n == nil {
			return
		}
		if ew, ok := n.(EdgeWalker); ok {
			ew.WalkEdges(func(_ EdgeKind, childID *NodeID) {
				walk(*childID)
			})
		}
	}
	for id := range s.handles {
		walk(id)
	}

	for kind, nodes := range s.byKind {
		kept := nodes[:0]
		for _, n := range nodes {
			if reachable[n.ID()] {
				kept = append(kept, n)
			} else {
				delete(s.byID, n.ID())
			}
		}
		s.byKind[kind] = kept
	}
}

// SwapAll rewrites every ref-one/ref-many edge graph-wide according to
// replacements (old id -> new id), per §4.2.5 and the supplemented full
// `swap(map)` overload of SPEC_FULL.md §C.2. Ownership is unchanged: only
// EdgeRef edges are ever rewritten.
func (s *Serializer) SwapAll(replacements map[NodeID]NodeID) {
	for _, nodes := range s.byKind {
		for _, n := range nodes {
			ew, ok := n.(EdgeWalker)
			if !ok {
				continue
			}
			ew.WalkEdges(func(kind EdgeKind, id *NodeID) {
				if kind != EdgeRef {
					return
				}
				if repl, ok := replacements[*id]; ok {
					*id = repl
				}
			})
		}
	}
}

// Swap is the single-pair convenience form of SwapAll (§4.2.5).
func (s *Serializer) Swap(old, new_ NodeID) {
	s.SwapAll(map[NodeID]NodeID{old: new_})
}

// SymbolTable interns strings once and hands back stable SymbolIDs, per
// §4.1.2's makeSymbol/getSymbol. Grounded on the teacher's symbol-table-free
// design; the UHDM spec calls for one explicitly (§4.2.2 "symbol table...
// written before the body so restore can resolve SymbolId forward
// references"), so this is new, built in the teacher's plain-map style.
type SymbolTable struct {
	byString map[string]SymbolID
	byID     []string // index 0 unused (BadSymbolID)
}

func newSymbolTable() *SymbolTable {
	return &SymbolTable{byString: make(map[string]SymbolID), byID: []string{""}}
}

func (t *SymbolTable) Intern(s string) SymbolID {
	if id, ok := t.byString[s]; ok {
		return id
	}
	id := SymbolID(len(t.byID))
	t.byID = append(t.byID, s)
	t.byString[s] = id
	return id
}

func (t *SymbolTable) Lookup(id SymbolID) string {
	if int(id) >= len(t.byID) {
		return ""
	}
	return t.byID[id]
}

// All returns every interned string in id order (index 0 is the empty
// placeholder for BadSymbolID), for internal/wire to write the symbol
// table section.
func (t *SymbolTable) All() []string { return t.byID }

// Reset replaces the table's contents wholesale (used by internal/wire
// during restore, after reading the symbol-table section up front so
// SymbolIds in later sections resolve forward, per §4.2.4 step 2).
func (t *SymbolTable) Reset(strs []string) {
	t.byID = append([]string(nil), strs...)
	t.byString = make(map[string]SymbolID, len(strs))
	for i, s := range strs {
		t.byString[s] = SymbolID(i)
	}
}
