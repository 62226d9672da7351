package resolver

import (
	"testing"

	"zygr/frontend-go/pkg/ast"
	"zygr/frontend-go/pkg/diagnostics"
	"zygr/frontend-go/pkg/parser"
)

func resolveSource(t *testing.T, source string, opts ...Option) (*ast.Program, *ScopeTree, []diagnostics.CompilerError) {
	t.Helper()
	parsed := parser.ParseSource(source)
	if parsed.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", source, parsed.Errors)
	}
	res := Resolve(parsed.Result, opts...)
	if res.Result == nil {
		t.Fatalf("expected a scope tree")
	}
	return parsed.Result, res.Result, res.Errors
}

func expectKinds(t *testing.T, errs []diagnostics.CompilerError, kinds ...diagnostics.Kind) {
	t.Helper()
	if len(errs) != len(kinds) {
		t.Fatalf("expected %d errors, got %d: %v", len(kinds), len(errs), errs)
	}
	for i, kind := range kinds {
		if errs[i].Kind != kind {
			t.Fatalf("error %d: expected %s, got %s (%s)", i, kind, errs[i].Kind, errs[i].Message)
		}
	}
}

func TestShadowingAcrossScopesIsAllowed(t *testing.T) {
	_, _, errs := resolveSource(t, "function f(x: number) { let x = 1; { let x = 2; } }")
	expectKinds(t, errs)
}

func TestDuplicateInSameScope(t *testing.T) {
	_, _, errs := resolveSource(t, "function f() { let x = 1; let x = 2; }")
	expectKinds(t, errs, diagnostics.KindDuplicateSymbol)
	if errs[0].Message != "resolver: Symbol 'x' already exists" {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}
	if errs[0].Row != 1 || errs[0].Col != 31 {
		t.Fatalf("expected error at the second declaration, got %d:%d", errs[0].Row, errs[0].Col)
	}
}

func TestDuplicateAcrossDeclarationKinds(t *testing.T) {
	_, _, errs := resolveSource(t, "interface A {}\nclass A {}\ntype B = number;\nfunction B() {}")
	expectKinds(t, errs, diagnostics.KindDuplicateSymbol, diagnostics.KindDuplicateSymbol)
}

func TestUserDeclarationReplacesBuiltin(t *testing.T) {
	program, tree, errs := resolveSource(t, "function setTimeout() {}\nsetTimeout();")
	expectKinds(t, errs)
	call := program.Body[1].(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
	sym := tree.References[call.Callee.(*ast.Identifier)]
	if sym == nil || sym.Kind != SymbolFunction {
		t.Fatalf("expected user function symbol, got %#v", sym)
	}
}

func TestUnresolvedReferencesAreAllReported(t *testing.T) {
	_, _, errs := resolveSource(t, "let a = b + c;\nd.e = 1;")
	expectKinds(t, errs, diagnostics.KindUnresolvedReference, diagnostics.KindUnresolvedReference, diagnostics.KindUnresolvedReference)
	if errs[0].Message != "resolver: unresolved reference 'b'" {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}
}

func TestMemberNamesAndObjectKeysAreNotReferences(t *testing.T) {
	_, _, errs := resolveSource(t, "let o = { key: 1, nested: { deep: 2 } };\no.key;\no.nested.deep;")
	expectKinds(t, errs)
}

func TestComputedKeysAreReferences(t *testing.T) {
	_, _, errs := resolveSource(t, "let o = { [k]: 1 };\no[j];")
	expectKinds(t, errs, diagnostics.KindUnresolvedReference, diagnostics.KindUnresolvedReference)
}

func TestHoistingWithinScope(t *testing.T) {
	program, tree, errs := resolveSource(t, "function a() { return b(); }\nfunction b() { return 1; }")
	expectKinds(t, errs)
	fn := program.Body[0].(*ast.FunctionDeclaration)
	ret := fn.Body.Body[0].(*ast.ReturnStatement)
	callee := ret.Argument.(*ast.CallExpression).Callee.(*ast.Identifier)
	sym := tree.References[callee]
	if sym == nil || sym.Node != program.Body[1] {
		t.Fatalf("expected b to resolve to the later declaration")
	}
}

func TestConstantAssignment(t *testing.T) {
	_, tree, errs := resolveSource(t, "const y = 5; y = 6;")
	expectKinds(t, errs, diagnostics.KindConstantAssignment)
	if errs[0].Message != "resolver: assignment to constant 'y'" {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}
	if errs[0].Row != 1 || errs[0].Col != 14 {
		t.Fatalf("expected error at the assignment target, got %d:%d", errs[0].Row, errs[0].Col)
	}
	sym, _ := tree.Root().Lookup("y")
	if !sym.IsConstant || !tree.Assigned[sym] {
		t.Fatalf("expected constant y to be recorded as assigned")
	}
}

func TestUpdateAndCompoundAssignmentOfConstants(t *testing.T) {
	_, _, errs := resolveSource(t, "const n = 1;\nn++;\n--n;\nn += 2;\nlet m = 1;\nm++;")
	expectKinds(t, errs, diagnostics.KindConstantAssignment, diagnostics.KindConstantAssignment, diagnostics.KindConstantAssignment)
}

func TestShadowedConstantIsWritable(t *testing.T) {
	_, _, errs := resolveSource(t, "const v = 1;\nfunction f() { let v = 2; v = 3; }")
	expectKinds(t, errs)
}

func TestScopeKindsAndParents(t *testing.T) {
	program, tree, _ := resolveSource(t, "function f(a: number) { if (a) { let b = a; } }\ntry { f(1); } catch (e) { e; }\nfor (let i = 0; i < 1; i++) {}")
	if root := tree.Root(); root.Kind != ScopeGlobal || root.Parent != NoScope {
		t.Fatalf("unexpected root scope %#v", root)
	}
	fn := program.Body[0].(*ast.FunctionDeclaration)
	fnScope, ok := tree.ScopeOf(fn)
	if !ok || tree.Scope(fnScope).Kind != ScopeFunction {
		t.Fatalf("expected function scope for f")
	}
	if _, ok := tree.Scope(fnScope).Lookup("a"); !ok {
		t.Fatalf("expected parameter a in the function scope")
	}
	bodyScope, ok := tree.ScopeOf(fn.Body)
	if !ok || tree.Scope(bodyScope).Kind != ScopeBlock || tree.Scope(bodyScope).Parent != fnScope {
		t.Fatalf("expected body block scope nested in the function scope")
	}
	inner := fn.Body.Body[0].(*ast.IfStatement).Consequent
	innerScope, _ := tree.ScopeOf(inner)
	if tree.Depth(innerScope) != 3 {
		t.Fatalf("expected depth 3, got %d", tree.Depth(innerScope))
	}
	sym, ok := tree.Scope(innerScope).Lookup("b")
	if !ok || sym.ScopeKind != ScopeBlock || sym.Kind != SymbolLet {
		t.Fatalf("unexpected symbol b %#v", sym)
	}

	handler := program.Body[1].(*ast.TryStatement).Handler
	catchScope, ok := tree.ScopeOf(handler)
	if !ok {
		t.Fatalf("expected catch clause scope")
	}
	if sym, ok := tree.Scope(catchScope).Lookup("e"); !ok || sym.Kind != SymbolCatchParam {
		t.Fatalf("expected catch parameter e")
	}

	loop := program.Body[2].(*ast.ForStatement)
	loopScope, _ := tree.ScopeOf(loop)
	if _, ok := tree.Scope(loopScope).Lookup("i"); !ok {
		t.Fatalf("expected loop variable in the for scope")
	}
	if _, ok := tree.Root().Lookup("i"); ok {
		t.Fatalf("loop variable leaked into the global scope")
	}
}

func TestSymbolsCarryDeclaredTypes(t *testing.T) {
	_, tree, _ := resolveSource(t, "let x: number = 1;\nlet y = 2;")
	x, _ := tree.Root().Lookup("x")
	if kw, ok := x.DeclaredType.(*ast.KeywordType); !ok || kw.Keyword != "number" {
		t.Fatalf("expected number annotation on x, got %#v", x.DeclaredType)
	}
	if x.Row != 1 || x.Col != 5 {
		t.Fatalf("expected x declared at 1:5, got %d:%d", x.Row, x.Col)
	}
	y, _ := tree.Root().Lookup("y")
	if y.DeclaredType != nil {
		t.Fatalf("expected no annotation on y")
	}
	if names := tree.Root().Names(); names[len(names)-2] != "x" || names[len(names)-1] != "y" {
		t.Fatalf("expected declaration order to be kept, got %v", names[len(names)-2:])
	}
}

func TestTypeReferences(t *testing.T) {
	program, tree, errs := resolveSource(t, `
interface Box<T> { value: T; }
type Pair<A> = [A, Missing];
let b: Box<number>;
function id<U>(u: U): U { return u; }
`)
	expectKinds(t, errs)
	found := map[string]*Symbol{}
	ast.Inspect(program, func(n ast.Node) bool {
		if ref, ok := n.(*ast.TypeReference); ok {
			found[ref.Name.Name] = tree.TypeReferences[ref]
		}
		return true
	})
	if sym := found["T"]; sym == nil || sym.Kind != SymbolTypeParameter {
		t.Fatalf("expected T to resolve to a type parameter")
	}
	if sym, ok := found["Missing"]; !ok || sym != nil {
		t.Fatalf("expected Missing to be recorded as unresolved")
	}
	if sym := found["Box"]; sym == nil || sym.Kind != SymbolInterface {
		t.Fatalf("expected Box to resolve to the interface")
	}
	if sym := found["U"]; sym == nil || sym.Kind != SymbolTypeParameter {
		t.Fatalf("expected U to resolve to a type parameter")
	}
}

func TestClassMembersAndNamedFunctionExpressions(t *testing.T) {
	_, _, errs := resolveSource(t, `
class Base {}
class Point extends Base {
  x: number = 0;
  constructor(public y: number) { super(); }
  move(dx: number): Point { return new Point(this.x + dx); }
}
let fact = function inner(n: number): number { return n <= 1 ? 1 : n * inner(n - 1); };
let arrow = (a: number) => a + fact(a);
`)
	expectKinds(t, errs)
}

func TestExtraGlobals(t *testing.T) {
	_, _, errs := resolveSource(t, "myGlobal.run();", WithGlobals("myGlobal"))
	expectKinds(t, errs)
	_, _, errs = resolveSource(t, "myGlobal.run();")
	expectKinds(t, errs, diagnostics.KindUnresolvedReference)
}

func TestTypeOnlySymbolsAreFlaggedByKind(t *testing.T) {
	_, tree, _ := resolveSource(t, "interface I {}\nclass C {}\nlet v = 1;")
	i, _ := tree.Root().Lookup("I")
	c, _ := tree.Root().Lookup("C")
	v, _ := tree.Root().Lookup("v")
	if !i.IsType() || i.IsValue() {
		t.Fatalf("interface should be a type only")
	}
	if !c.IsType() || !c.IsValue() {
		t.Fatalf("class should be both a type and a value")
	}
	if v.IsType() || !v.IsValue() {
		t.Fatalf("variable should be a value only")
	}
}
