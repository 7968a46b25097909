// Package resolve implements the name resolver (§4.4): given a starting
// scope and an identifier, it walks the scope chain the way elaboration and
// expression evaluation need — FindObject for the value world (nets,
// variables, parameters, functions/tasks, gen-scopes, sub-instances),
// FindType for the type world (typedefs, class typespecs, interface
// typespecs). Grounded on the teacher's owner-qualified name lookup in
// cmd/unflutter/pool.go (resolveName/resolveOwnerName/qualifiedCodeName,
// which chase an object's owner to build a "Class.method" name), here
// generalized into a chain of nested, kind-ordered scope tables instead of
// one flat pool.
package resolve

import (
	"strings"

	"uhdm/internal/ir"
)

const builtinPackageName = "builtin"

// FindObject resolves name as a value-world identifier starting at scope,
// per §4.4.1/§4.4.3: variables, nets, parameters, functions/tasks,
// gen-scopes, and sub-instances are all found through this entry point.
func FindObject(s *ir.Serializer, scope ir.Node, name string) ir.Node {
	return find(s, scope, name, false)
}

// FindType resolves name as a type-world identifier starting at scope, per
// §4.4.2: typedefs, class typespecs, and interface typespecs.
func FindType(s *ir.Serializer, scope ir.Node, name string) ir.Typespec {
	n := find(s, scope, name, true)
	t, _ := n.(ir.Typespec)
	return t
}

func find(s *ir.Serializer, scope ir.Node, name string, wantType bool) ir.Node {
	name = strings.TrimPrefix(name, "work@")

	if head, rest, ok := splitQualified(name); ok {
		qualifier := find(s, scope, head, false)
		if qualifier == nil {
			qualifier = find(s, scope, head, true)
		}
		if qualifier == nil {
			return nil
		}
		return find(s, qualifier, rest, wantType)
	}

	switch name {
	case "this":
		if c := enclosingClass(scope); c != nil {
			return c
		}
		return nil
	case "super":
		if c := enclosingClass(scope); c != nil {
			return c.Extends()
		}
		return nil
	}

	visited := make(map[ir.NodeID]bool)
	if n := walkUp(s, scope, name, wantType, visited); n != nil {
		return n
	}
	return findBuiltin(s, name, wantType)
}

// splitQualified splits "A::B" into ("A", "B", true); anything without a
// "::" separator reports ok=false (§4.4.3 item 2).
func splitQualified(name string) (head, rest string, ok bool) {
	i := strings.Index(name, "::")
	if i < 0 {
		return "", "", false
	}
	return name[:i], name[i+2:], true
}

func enclosingClass(n ir.Node) *ir.ClassDefn {
	for cur := n; cur != nil; cur = cur.Parent() {
		if c, ok := cur.(*ir.ClassDefn); ok {
			return c
		}
	}
	return nil
}

// walkUp searches scope, then each enclosing scope up the parent chain,
// stopping at the first hit (§4.4.3 item 3).
func walkUp(s *ir.Serializer, n ir.Node, name string, wantType bool, visited map[ir.NodeID]bool) ir.Node {
	for cur := n; cur != nil; cur = cur.Parent() {
		if res := searchScope(s, cur, name, wantType, visited); res != nil {
			return res
		}
	}
	return nil
}

// searchScope looks up name in n's own tables (§4.4.4) without walking
// further up the parent chain, then follows the scope-specific delegation
// rules: class inheritance (item 5), class/interface typespec indirection
// (item 6), and package imports (item 7). visited guards against searching
// the same scope twice within one find call (item 9).
func searchScope(s *ir.Serializer, n ir.Node, name string, wantType bool, visited map[ir.NodeID]bool) ir.Node {
	if n == nil || visited[n.ID()] {
		return nil
	}
	visited[n.ID()] = true

	if wantType {
		if t := findTypespecByName(s, n, name); t != nil {
			return t
		}
	} else if scope, ok := n.(ir.Scope); ok {
		for _, tbl := range scope.ScopeTables() {
			if found := tbl.Lookup(name); found != nil {
				return found
			}
		}
	}

	switch v := n.(type) {
	case *ir.ClassDefn:
		if base := v.Extends(); base != nil {
			if res := searchScope(s, base, name, wantType, visited); res != nil {
				return res
			}
		}
	case *ir.ClassTypespec:
		if cd := v.ClassDefn(); cd != nil {
			if res := searchScope(s, cd, name, wantType, visited); res != nil {
				return res
			}
		}
	case *ir.TypedefTypespec:
		if res := searchScope(s, v.Actual(), name, wantType, visited); res != nil {
			return res
		}
	case *ir.Package:
		if res := searchPackageImports(s, v, name, wantType, visited); res != nil {
			return res
		}
	}
	return nil
}

// typespecHolder is the Typespecs(s) capability instanceBody, Package,
// ClassDefn, and GenScope expose: the type-world equivalent of
// ir.Scope.ScopeTables, since most Typespec kinds have no Name() to hang a
// generic lookupNamed table off of.
type typespecHolder interface {
	Typespecs(s *ir.Serializer) []ir.Typespec
}

func findTypespecByName(s *ir.Serializer, n ir.Node, name string) ir.Typespec {
	holder, ok := n.(typespecHolder)
	if !ok {
		return nil
	}
	for _, t := range holder.Typespecs(s) {
		if tname, ok := typespecName(t); ok && tname == name {
			return t
		}
	}
	return nil
}

// typespecName returns the identifier a typedef or class typespec is known
// by, if it has one. Struct/union/enum/array typespecs are anonymous in
// this schema (§9.2): they're reached through a TypedefTypespec wrapper,
// never looked up by name directly.
func typespecName(t ir.Typespec) (string, bool) {
	switch v := t.(type) {
	case *ir.TypedefTypespec:
		return v.Name, true
	case *ir.ClassTypespec:
		return v.Name, true
	}
	return "", false
}

// searchPackageImports follows p's `import pkg::name` and `import pkg::*`
// typespecs (§4.4.3 item 7): name matches an explicit import, or any
// wildcard import is tried.
func searchPackageImports(s *ir.Serializer, p *ir.Package, name string, wantType bool, visited map[ir.NodeID]bool) ir.Node {
	for _, t := range p.Typespecs(s) {
		imp, ok := t.(*ir.ImportTypespec)
		if !ok {
			continue
		}
		if imp.ItemName != "" && imp.ItemName != name {
			continue
		}
		pkg := imp.Actual()
		if pkg == nil || pkg == p {
			continue
		}
		if res := searchScope(s, pkg, name, wantType, visited); res != nil {
			return res
		}
	}
	return nil
}

// findBuiltin is the last-resort fallback (§4.4.3 item 8): the design's
// "builtin" package, tried exactly once after the whole enclosing-scope
// chain has come up empty.
func findBuiltin(s *ir.Serializer, name string, wantType bool) ir.Node {
	designs := s.ByKind(ir.KindDesign)
	if len(designs) == 0 {
		return nil
	}
	d, ok := designs[0].(*ir.Design)
	if !ok {
		return nil
	}
	for _, tbl := range d.ScopeTables() {
		if tbl.Name != "packages" {
			continue
		}
		pkg := tbl.Lookup(builtinPackageName)
		if pkg == nil {
			return nil
		}
		return searchScope(s, pkg, name, wantType, make(map[ir.NodeID]bool))
	}
	return nil
}
