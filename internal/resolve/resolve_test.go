package resolve

import (
	"testing"

	"uhdm/internal/ir"
)

func TestFindObjectWalksUpEnclosingScopes(t *testing.T) {
	s := ir.NewSerializer()

	top := s.NewModule()
	top.SetName("top")
	top.SetDefName("top")

	clk := s.NewNet()
	clk.SetName("clk")
	top.AppendNet(top, clk)

	fn := s.NewFunction()
	fn.SetName("step")
	top.AppendTaskFunc(top, fn)

	body := s.NewBegin()
	fn.SetStmt(body)

	if got := FindObject(s, body, "clk"); got != ir.Node(clk) {
		t.Fatalf("FindObject(clk) from nested block = %v, want clk", got)
	}
	if got := FindObject(s, body, "nope"); got != nil {
		t.Fatalf("FindObject(nope) = %v, want nil", got)
	}
}

func TestFindObjectPrefersInnerScope(t *testing.T) {
	s := ir.NewSerializer()

	top := s.NewModule()
	top.SetName("top")
	top.SetDefName("top")

	outer := s.NewVariable()
	outer.SetName("v")
	top.AppendVariable(top, outer)

	fn := s.NewFunction()
	fn.SetName("f")
	top.AppendTaskFunc(top, fn)

	inner := s.NewVariable()
	inner.SetName("v")
	fn.AppendVariable(fn, inner)

	if got := FindObject(s, fn, "v"); got != ir.Node(inner) {
		t.Fatalf("FindObject(v) = %v, want the function-local v", got)
	}
}

func TestFindTypeFollowsClassExtends(t *testing.T) {
	s := ir.NewSerializer()

	base := s.NewClassDefn()
	base.SetName("Base")
	baseTd := s.NewTypedefTypespec()
	baseTd.Name = "handle_t"
	base.AppendTypespec(baseTd)

	derived := s.NewClassDefn()
	derived.SetName("Derived")
	derived.SetExtends(base)

	got := FindType(s, derived, "handle_t")
	if got != ir.Typespec(baseTd) {
		t.Fatalf("FindType(handle_t) via extends = %v, want baseTd", got)
	}
}

func TestThisAndSuper(t *testing.T) {
	s := ir.NewSerializer()

	base := s.NewClassDefn()
	base.SetName("Base")

	derived := s.NewClassDefn()
	derived.SetName("Derived")
	derived.SetExtends(base)

	method := s.NewFunction()
	method.SetName("m")
	derived.AppendMethod(method)

	if got := FindObject(s, method, "this"); got != ir.Node(derived) {
		t.Fatalf("this = %v, want derived", got)
	}
	if got := FindObject(s, method, "super"); got != ir.Node(base) {
		t.Fatalf("super = %v, want base", got)
	}
}

func TestFindObjectFollowsPackageImport(t *testing.T) {
	s := ir.NewSerializer()

	design := s.NewDesign()
	design.SetName("d")

	lib := s.NewPackage()
	lib.SetName("lib_pkg")
	c := s.NewParameter()
	c.SetName("WIDTH")
	lib.AppendParameter(c)
	design.AppendPackage(lib)

	user := s.NewPackage()
	user.SetName("user_pkg")
	imp := s.NewImportTypespec()
	imp.PackageName = "lib_pkg"
	imp.SetActual(lib)
	user.AppendTypespec(imp)
	design.AppendPackage(user)

	if got := FindObject(s, user, "WIDTH"); got != ir.Node(c) {
		t.Fatalf("FindObject(WIDTH) via wildcard import = %v, want WIDTH param", got)
	}
}

func TestFindTypeBuiltinFallback(t *testing.T) {
	s := ir.NewSerializer()

	design := s.NewDesign()
	design.SetName("d")

	builtin := s.NewPackage()
	builtin.SetName("builtin")
	str := s.NewTypedefTypespec()
	str.Name = "string"
	builtin.AppendTypespec(str)
	design.AppendPackage(builtin)

	top := s.NewModule()
	top.SetName("top")
	top.SetDefName("top")
	design.AppendModule(top)

	got := FindType(s, top, "string")
	if got != ir.Typespec(str) {
		t.Fatalf("FindType(string) via builtin fallback = %v, want str", got)
	}
}

func TestFindObjectQualifiedPackagePath(t *testing.T) {
	s := ir.NewSerializer()

	design := s.NewDesign()
	design.SetName("d")

	pkg := s.NewPackage()
	pkg.SetName("pk")
	p := s.NewParameter()
	p.SetName("N")
	pkg.AppendParameter(p)
	design.AppendPackage(pkg)

	top := s.NewModule()
	top.SetName("top")
	top.SetDefName("top")
	design.AppendModule(top)

	if got := FindObject(s, top, "pk::N"); got != ir.Node(p) {
		t.Fatalf("FindObject(pk::N) = %v, want N", got)
	}
}
