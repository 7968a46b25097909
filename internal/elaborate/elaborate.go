// Package elaborate implements the elaborator (§4.5): it turns a folded
// design (module definitions plus an instance tree referring to them by
// defName) into an elaborated design, where every instance owns private
// clones of everything its definition declared and every name reference
// inside those clones points at the right local object.
//
// Grounded on ElaboratorListener.h/templates/Elaborator{.h,.cpp}: the
// listener's per-kind enter/leave pair and its instance-context stack of
// (scope, varsMap, paramsMap, funcsMap, modulesMap) frames are collapsed
// here into two passes per instance — clone the definition's body in one
// shot (internal/clone), then walk the freshly cloned subtree rebinding
// every RefObj/BitSelect/PartSelect/IndexedPartSelect/VarSelect against
// internal/resolve, which already implements the scope-chain walk a
// listener's context stack would otherwise have to maintain by hand.
// Because the whole body is cloned before any rebinding starts, every
// sibling declaration already exists when its first reference is resolved,
// so the C++ original's scheduledTfCallBinding forward-reference queue has
// no work left to do here — recorded as a deliberate simplification in
// DESIGN.md.
package elaborate

import (
	"uhdm/internal/clone"
	"uhdm/internal/ir"
	"uhdm/internal/resolve"
)

// bodyHolder is the method set Module, Interface, and Program each promote
// from instanceBody: the collections a definition's body is cloned out of,
// and the Append* methods used to wire each clone into its new instance.
type bodyHolder interface {
	ir.Node
	Ports(s *ir.Serializer) []*ir.Port
	Nets(s *ir.Serializer) []ir.Node
	Variables(s *ir.Serializer) []ir.Node
	Parameters(s *ir.Serializer) []*ir.Parameter
	ParamAssigns(s *ir.Serializer) []*ir.ParamAssign
	ContAssigns(s *ir.Serializer) []ir.Node
	Processes(s *ir.Serializer) []ir.Node
	TaskFuncs(s *ir.Serializer) []ir.Node
	GenScopeArrays(s *ir.Serializer) []*ir.GenScopeArray
	SubInstances(s *ir.Serializer) []ir.Instance

	AppendPort(parent ir.Node, p *ir.Port)
	AppendNet(parent ir.Node, n ir.Node)
	AppendVariable(parent ir.Node, v ir.Node)
	AppendParameter(parent ir.Node, p *ir.Parameter)
	AppendParamAssign(parent ir.Node, pa *ir.ParamAssign)
	AppendContAssign(parent ir.Node, ca *ir.ContAssign)
	AppendProcess(parent ir.Node, n ir.Node)
	AppendTaskFunc(parent ir.Node, n ir.Node)
	AppendGenScopeArray(parent ir.Node, g *ir.GenScopeArray)
	AppendSubInstance(parent ir.Node, n ir.Node)
}

// Elaborate walks design's top-level module instances and every class
// definition, cloning each instantiated definition's body into its instance
// stub and rebinding every name reference reachable from the result
// (§4.5.2-§4.5.3). It is idempotent per §4.5.4: a design already marked
// elaborated is a no-op, and a second call never produces new clones.
func Elaborate(s *ir.Serializer, d *ir.Design) {
	if d.Elaborated() {
		return
	}
	cm := componentMap(d)
	inProgress := make(map[ir.NodeID]bool)
	done := make(map[ir.NodeID]bool)
	for _, top := range d.TopModules() {
		elaborateInstance(s, top, cm, inProgress, done)
	}
	for _, c := range d.AllClasses() {
		elaborateClass(s, c)
	}
	for _, p := range d.AllPackages() {
		rebindSubtree(s, p)
	}
	d.SetElaborated(true)
}

// Rebind re-runs just the name-binding walk over an already-elaborated
// design, without cloning (§4.5.4's bindOnly=true mode) — for re-entrant
// passes after a later pass (e.g. a parameter override) changes bindings.
func Rebind(s *ir.Serializer, d *ir.Design) {
	visited := make(map[ir.NodeID]bool)
	for _, top := range d.TopModules() {
		rebindInstanceTree(s, top, visited)
	}
	for _, c := range d.AllClasses() {
		rebindSubtree(s, c)
	}
	for _, p := range d.AllPackages() {
		rebindSubtree(s, p)
	}
}

func rebindInstanceTree(s *ir.Serializer, inst ir.Instance, visited map[ir.NodeID]bool) {
	if visited[inst.ID()] {
		return
	}
	visited[inst.ID()] = true
	rebindSubtree(s, inst)
	for _, sub := range subInstancesOf(s, inst) {
		rebindInstanceTree(s, sub, visited)
	}
}

// componentMap is the flatComponentMap of §4.5.2 item 1: defName (or, for
// classes, the class name) to its definition node.
func componentMap(d *ir.Design) map[string]ir.Node {
	cm := make(map[string]ir.Node)
	for _, m := range d.AllModules() {
		if m.DefName() != "" {
			cm[m.DefName()] = m
		}
	}
	for _, i := range d.AllInterfaces() {
		if i.DefName() != "" {
			cm[i.DefName()] = i
		}
	}
	for _, p := range d.AllPrograms() {
		if p.DefName() != "" {
			cm[p.DefName()] = p
		}
	}
	for _, c := range d.AllClasses() {
		if c.Name() != "" {
			cm[c.Name()] = c
		}
	}
	return cm
}

// elaborateInstance fills inst's body from its definition (if inst isn't
// already its own definition, as a top module is) and rebinds everything
// reachable from it, then recurses into its own sub-instances. inProgress
// guards the recursion-through-HierPath case §4.5.4 names: re-entering an
// instance whose elaboration is already on the call stack is a no-op.
func elaborateInstance(s *ir.Serializer, inst ir.Instance, cm map[string]ir.Node, inProgress, done map[ir.NodeID]bool) {
	if inProgress[inst.ID()] || done[inst.ID()] {
		return
	}
	inProgress[inst.ID()] = true
	defer delete(inProgress, inst.ID())

	if def := cm[inst.DefName()]; def != nil && def.ID() != inst.ID() {
		cloneBodyInto(s, def, inst)
	}
	rebindSubtree(s, inst)
	done[inst.ID()] = true

	for _, sub := range subInstancesOf(s, inst) {
		elaborateInstance(s, sub, cm, inProgress, done)
	}
}

// subInstancesOf collects an instance's direct children: its own declared
// sub-instances plus every generate-scope's sub-instances (§3.3's
// "internal generate-scope arrays").
func subInstancesOf(s *ir.Serializer, inst ir.Instance) []ir.Instance {
	bh, ok := inst.(bodyHolder)
	if !ok {
		return nil
	}
	out := append([]ir.Instance{}, bh.SubInstances(s)...)
	for _, ga := range bh.GenScopeArrays(s) {
		for _, gs := range ga.Scopes() {
			out = append(out, gs.SubInstances(s)...)
		}
	}
	return out
}

// cloneBodyInto clones def's ports/nets/variables/parameters/param-assigns/
// continuous-assigns/processes/task-funcs/gen-scope-arrays/sub-instances
// into inst (§4.5.2 item 2), wiring each clone's parent to inst via the
// same Append* call a hand-written builder would use.
func cloneBodyInto(s *ir.Serializer, def ir.Node, inst ir.Node) {
	src, ok := def.(bodyHolder)
	if !ok {
		return
	}
	dst, ok := inst.(bodyHolder)
	if !ok {
		return
	}

	for _, p := range src.Ports(s) {
		if c, _ := clone.Clone(s, p, dst); c != nil {
			dst.AppendPort(dst, c.(*ir.Port))
		}
	}
	for _, n := range src.Nets(s) {
		if c, _ := clone.Clone(s, n, dst); c != nil {
			dst.AppendNet(dst, c)
		}
	}
	for _, v := range src.Variables(s) {
		if c, _ := clone.Clone(s, v, dst); c != nil {
			dst.AppendVariable(dst, c)
		}
	}
	for _, p := range src.Parameters(s) {
		if c, _ := clone.Clone(s, p, dst); c != nil {
			dst.AppendParameter(dst, c.(*ir.Parameter))
		}
	}
	for _, pa := range src.ParamAssigns(s) {
		if c, _ := clone.Clone(s, pa, dst); c != nil {
			dst.AppendParamAssign(dst, c.(*ir.ParamAssign))
		}
	}
	for _, ca := range src.ContAssigns(s) {
		if c, _ := clone.Clone(s, ca, dst); c != nil {
			dst.AppendContAssign(dst, c.(*ir.ContAssign))
		}
	}
	for _, n := range src.Processes(s) {
		if c, _ := clone.Clone(s, n, dst); c != nil {
			dst.AppendProcess(dst, c)
		}
	}
	for _, n := range src.TaskFuncs(s) {
		if c, _ := clone.Clone(s, n, dst); c != nil {
			dst.AppendTaskFunc(dst, c)
		}
	}
	for _, ga := range src.GenScopeArrays(s) {
		if c, _ := clone.Clone(s, ga, dst); c != nil {
			dst.AppendGenScopeArray(dst, c.(*ir.GenScopeArray))
		}
	}
	for _, sub := range src.SubInstances(s) {
		if c, _ := clone.Clone(s, sub, dst); c != nil {
			dst.AppendSubInstance(dst, c)
		}
	}
}

// elaborateClass rebinds a class definition's members (§4.5.3): the
// resolver already walks a ClassDefn's Extends() chain for every lookup, so
// visibility of inherited members falls out of internal/resolve rather
// than needing a separately populated vars/methods table here.
func elaborateClass(s *ir.Serializer, c *ir.ClassDefn) {
	rebindSubtree(s, c)
}

// rebindSubtree walks every own-edge reachable from root exactly once,
// rebinding each RefObj/BitSelect/PartSelect/IndexedPartSelect/VarSelect/
// FuncCall it finds (§4.5.2 item 3). A HierPath's first element is bound
// against the enclosing scope like any other reference; later elements
// name struct/class members relative to the first, which only C6's
// type-directed member lookup can resolve correctly, so they're walked
// (their own sub-expressions still need binding) but never rebound here.
func rebindSubtree(s *ir.Serializer, root ir.Node) {
	visited := make(map[ir.NodeID]bool)
	skipBind := make(map[ir.NodeID]bool)
	var walk func(n ir.Node)
	walk = func(n ir.Node) {
		if n == nil || visited[n.ID()] {
			return
		}
		visited[n.ID()] = true

		if hp, ok := n.(*ir.HierPath); ok {
			elems := hp.ElementNodes()
			for i := 1; i < len(elems); i++ {
				skipBind[elems[i].ID()] = true
			}
		}
		if !skipBind[n.ID()] {
			rebindOne(s, n)
		}

		walker, ok := n.(ir.EdgeWalker)
		if !ok {
			return
		}
		var children []ir.Node
		walker.WalkEdges(func(kind ir.EdgeKind, id *ir.NodeID) {
			if kind != ir.EdgeOwn || *id == 0 {
				return
			}
			children = append(children, s.Get(*id))
		})
		for _, child := range children {
			walk(child)
		}
	}
	walk(root)
}

// rebindOne resolves n's name against its own scope-chain position, if n
// is a name-carrying reference kind and isn't already bound. A failed
// lookup leaves the field null per §4.5.6 — binding is best-effort, and
// any remaining null actual is a downstream pass's concern, not an error
// here.
func rebindOne(s *ir.Serializer, n ir.Node) {
	switch v := n.(type) {
	case *ir.RefObj:
		if v.Actual() == nil {
			bindObject(s, v, v.Name, v.SetActual)
		}
	case *ir.BitSelect:
		if v.Actual() == nil {
			bindObject(s, v, v.Name, v.SetActual)
		}
	case *ir.VarSelect:
		if v.Actual() == nil {
			bindObject(s, v, v.Name, v.SetActual)
		}
	case *ir.PartSelect:
		if v.Actual() == nil && v.Name != "" {
			bindObject(s, v, v.Name, v.SetActual)
		}
	case *ir.IndexedPartSelect:
		if v.Actual() == nil && v.Name != "" {
			bindObject(s, v, v.Name, v.SetActual)
		}
	case *ir.FuncCall:
		if v.Actual() == nil {
			bindObject(s, v, v.Name, v.SetActual)
		}
	}
}

func bindObject(s *ir.Serializer, scope ir.Node, name string, set func(ir.Node)) {
	if found := resolve.FindObject(s, scope, name); found != nil {
		set(found)
	}
}
