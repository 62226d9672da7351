package typechecker

import (
	"strings"
	"testing"

	"zygr/frontend-go/pkg/ast"
	"zygr/frontend-go/pkg/diagnostics"
	"zygr/frontend-go/pkg/parser"
	"zygr/frontend-go/pkg/resolver"
)

func checkSource(t *testing.T, source string) (*TypedProgram, []diagnostics.CompilerError) {
	t.Helper()
	parsed := parser.ParseSource(source)
	if parsed.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", source, parsed.Errors)
	}
	resolved := resolver.Resolve(parsed.Result)
	if resolved.HasErrors() {
		t.Fatalf("unexpected resolver errors for %q: %v", source, resolved.Errors)
	}
	res := Check(parsed.Result, resolved.Result)
	if res.Result == nil {
		t.Fatalf("expected a typed program")
	}
	return res.Result, res.Errors
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

func expectGlobal(t *testing.T, typed *TypedProgram, name, want string) {
	t.Helper()
	got, ok := typed.GlobalType(name)
	if !ok {
		t.Fatalf("expected a type for %s", name)
	}
	if got.Name() != want {
		t.Fatalf("expected %s to have type %s, got %s", name, want, got.Name())
	}
}

func TestInitializerMismatchKeepsDeclaredType(t *testing.T) {
	typed, errs := checkSource(t, `let x: number = "hi";`)
	expectKinds(t, errs, diagnostics.KindIncompatibleTypes)
	if !strings.Contains(errs[0].Message, "incompatible initializer") {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}
	if errs[0].Message != `typechecker: incompatible initializer: type '"hi"' is not assignable to type 'number'` {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}
	if errs[0].Row != 1 || errs[0].Col != 17 {
		t.Fatalf("expected the error at the initializer, got %d:%d", errs[0].Row, errs[0].Col)
	}
	x, ok := typed.GlobalType("x")
	if !ok || x != Number {
		t.Fatalf("expected x to keep its declared type number, got %v", x)
	}
}

func TestConstantAssignmentIsOnlyAResolverError(t *testing.T) {
	parsed := parser.ParseSource("const y = 5; y = 6;")
	if parsed.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", parsed.Errors)
	}
	resolved := resolver.Resolve(parsed.Result)
	expectKinds(t, resolved.Errors, diagnostics.KindConstantAssignment)
	res := Check(parsed.Result, resolved.Result)
	expectKinds(t, res.Errors)
	expectGlobal(t, res.Result, "y", "5")
}

func TestAnnotatedFunctionSignature(t *testing.T) {
	typed, errs := checkSource(t, "function f(a: number, b: number): number { return a + b; }")
	expectKinds(t, errs)
	got, ok := typed.GlobalType("f")
	if !ok {
		t.Fatalf("expected a type for f")
	}
	fn, ok := got.(FunctionType)
	if !ok {
		t.Fatalf("expected a function type, got %T", got)
	}
	if len(fn.Params) != 2 || fn.Params[0] != Number || fn.Params[1] != Number {
		t.Fatalf("expected (number, number), got %s", fn.Name())
	}
	if fn.Return != Number {
		t.Fatalf("expected a number return, got %s", typeName(fn.Return))
	}
	if fn.Name() != "(a: number, b: number) => number" {
		t.Fatalf("unexpected rendering %q", fn.Name())
	}
}

func TestUnionMembershipSatisfiesAnnotation(t *testing.T) {
	typed, errs := checkSource(t, `let z: number | string = "ok";`)
	expectKinds(t, errs)
	expectGlobal(t, typed, "z", "number | string")
}

func TestInitializerInference(t *testing.T) {
	source := strings.Join([]string{
		`let a = 1;`,
		`const b = "s";`,
		`let c = [1, 2];`,
		`let d = { x: 1, y: "s" };`,
		`let e = a > 0 ? "pos" : 0;`,
		`let f = "n" + a;`,
		`let g = -a;`,
		`let h = !a;`,
	}, "\n")
	typed, errs := checkSource(t, source)
	expectKinds(t, errs)
	expectGlobal(t, typed, "a", "number")
	expectGlobal(t, typed, "b", `"s"`)
	expectGlobal(t, typed, "c", "number[]")
	expectGlobal(t, typed, "d", "{ x: number; y: string }")
	expectGlobal(t, typed, "e", "number | string")
	expectGlobal(t, typed, "f", "string")
	expectGlobal(t, typed, "g", "number")
	expectGlobal(t, typed, "h", "boolean")
}

func TestReturnTypeInference(t *testing.T) {
	source := strings.Join([]string{
		`let r = later();`,
		`function later() { return 1; }`,
		`function nothing() {}`,
		`async function load() { return "x"; }`,
	}, "\n")
	typed, errs := checkSource(t, source)
	expectKinds(t, errs)
	expectGlobal(t, typed, "r", "number")
	expectGlobal(t, typed, "later", "() => number")
	expectGlobal(t, typed, "nothing", "() => void")
	expectGlobal(t, typed, "load", "() => Promise<string>")
}

func TestReturnMismatch(t *testing.T) {
	_, errs := checkSource(t, `function bad(): number { return "x"; }`)
	expectKinds(t, errs, diagnostics.KindIncompatibleTypes)
	if !strings.Contains(errs[0].Message, "incompatible return") {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}
}

func TestMissingReturn(t *testing.T) {
	source := strings.Join([]string{
		`function g(): number {}`,
		`function h(flag: boolean): string { if (flag) { return "yes"; } }`,
		`function both(flag: boolean): string { if (flag) { return "yes"; } else { return "no"; } }`,
		`function fail(): number { throw "no"; }`,
		`function spin(): number { while (true) {} }`,
		`function quiet(): void {}`,
		`function maybe(): number | undefined {}`,
		`async function later(): Promise<void> {}`,
		`async function eventually(): Promise<number> {}`,
		`let arrow = (): string => { let s = "x"; };`,
	}, "\n")
	_, errs := checkSource(t, source)
	expectKinds(t, errs,
		diagnostics.KindIncompatibleTypes,
		diagnostics.KindIncompatibleTypes,
		diagnostics.KindIncompatibleTypes,
		diagnostics.KindIncompatibleTypes,
	)
	for i, row := range []int{1, 2, 9, 10} {
		if errs[i].Row != row {
			t.Fatalf("error %d: expected row %d, got %d (%s)", i, row, errs[i].Row, errs[i].Message)
		}
	}
	if errs[0].Message != "typechecker: missing return: type 'undefined' is not assignable to type 'number'" {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}
	if errs[0].Col != 15 {
		t.Fatalf("expected the error at the return annotation, got column %d", errs[0].Col)
	}
}

func TestRecursiveFunctionsCheck(t *testing.T) {
	source := strings.Join([]string{
		`function fact(n: number): number { return n <= 1 ? 1 : n * fact(n - 1); }`,
		`function count(n: number) { if (n > 0) { return count(n - 1); } return 0; }`,
	}, "\n")
	_, errs := checkSource(t, source)
	expectKinds(t, errs)
}

func TestCallArityAndArguments(t *testing.T) {
	source := strings.Join([]string{
		`function add(p: number, q: number): number { return p + q; }`,
		`add(1);`,
		`add(1, "2");`,
		`add(1, 2, 3);`,
		`function opt(p: number, q?: string) { return p; }`,
		`opt(1);`,
		`Math.max(1, 2, 3);`,
	}, "\n")
	_, errs := checkSource(t, source)
	expectKinds(t, errs,
		diagnostics.KindArityMismatch,
		diagnostics.KindIncompatibleTypes,
		diagnostics.KindArityMismatch,
	)
	if !strings.Contains(errs[1].Message, "incompatible argument") {
		t.Fatalf("unexpected message %q", errs[1].Message)
	}
	if errs[0].Row != 2 || errs[2].Row != 4 {
		t.Fatalf("unexpected arity positions %d and %d", errs[0].Row, errs[2].Row)
	}
}

func TestMemberAccess(t *testing.T) {
	source := strings.Join([]string{
		`let o = { x: 1 };`,
		`let ok = o.x;`,
		`o.y;`,
		`let len = "abc".length;`,
		`let upper = "abc".toUpperCase();`,
		`let nums = [1, 2, 3];`,
		`let strs = nums.map(n => n.toString());`,
	}, "\n")
	typed, errs := checkSource(t, source)
	expectKinds(t, errs, diagnostics.KindUnknownProperty)
	if errs[0].Message != "typechecker: unknown property 'y' on type '{ x: number }'" {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}
	expectGlobal(t, typed, "ok", "number")
	expectGlobal(t, typed, "len", "number")
	expectGlobal(t, typed, "upper", "string")
	expectGlobal(t, typed, "strs", "string[]")
}

func TestAssignmentMismatch(t *testing.T) {
	source := strings.Join([]string{
		`let o = { x: 1 };`,
		`o.x = "s";`,
		`let n = 1;`,
		`n += 2;`,
	}, "\n")
	_, errs := checkSource(t, source)
	expectKinds(t, errs, diagnostics.KindIncompatibleTypes)
	if !strings.Contains(errs[0].Message, "incompatible assignment") {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}
}

func TestOperatorAndCallErrors(t *testing.T) {
	source := strings.Join([]string{
		`let q = "a" - 1;`,
		`let k = 5;`,
		`k();`,
	}, "\n")
	_, errs := checkSource(t, source)
	expectKinds(t, errs, diagnostics.KindOperatorMismatch, diagnostics.KindNotCallable)
	if errs[1].Message != "typechecker: type 'number' is not callable" {
		t.Fatalf("unexpected message %q", errs[1].Message)
	}
}

func TestMissingInitializers(t *testing.T) {
	source := strings.Join([]string{
		`let w;`,
		`let later;`,
		`later = 3;`,
	}, "\n")
	_, errs := checkSource(t, source)
	expectKinds(t, errs, diagnostics.KindMissingInitializer)
	if errs[0].Row != 1 {
		t.Fatalf("expected the error on the unassigned variable, got row %d", errs[0].Row)
	}
}

func TestUnknownAndMisusedTypes(t *testing.T) {
	source := strings.Join([]string{
		`let u: Missing = 1;`,
		`interface I { x: number; }`,
		`let i = I;`,
		`let n = 1;`,
		`let m: n = 2;`,
	}, "\n")
	_, errs := checkSource(t, source)
	expectKinds(t, errs,
		diagnostics.KindUnknownType,
		diagnostics.KindInvalidTypeUsage,
		diagnostics.KindInvalidTypeUsage,
	)
	if errs[0].Message != "typechecker: unknown type 'Missing'" {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}
	if !strings.Contains(errs[1].Message, "only refers to a type") {
		t.Fatalf("unexpected message %q", errs[1].Message)
	}
	if !strings.Contains(errs[2].Message, "refers to a value") {
		t.Fatalf("unexpected message %q", errs[2].Message)
	}
}

func TestLogicalOperatorsAreBoolean(t *testing.T) {
	source := strings.Join([]string{
		`let maybe: string | null = null;`,
		`let sure = maybe ?? "default";`,
		`let a = 1 && 2;`,
		`let b = "x" || 0;`,
		`let c = null ?? "d";`,
		`let d: boolean = 1 || 2;`,
	}, "\n")
	typed, errs := checkSource(t, source)
	expectKinds(t, errs)
	for _, name := range []string{"sure", "a", "b", "c", "d"} {
		expectGlobal(t, typed, name, "boolean")
	}
}

func TestLogicalAssignment(t *testing.T) {
	source := strings.Join([]string{
		`let label: string | undefined = undefined;`,
		`label ??= "none";`,
		`let count = 0;`,
		`count ||= "many";`,
	}, "\n")
	_, errs := checkSource(t, source)
	expectKinds(t, errs, diagnostics.KindIncompatibleTypes)
	if errs[0].Row != 4 {
		t.Fatalf("expected the error on the string assigned to a number, got row %d", errs[0].Row)
	}
}

func TestStringConcatenationIsNotArithmetic(t *testing.T) {
	source := strings.Join([]string{
		`let s = "a" + 1;`,
		`let n = true + 1;`,
	}, "\n")
	typed, errs := checkSource(t, source)
	expectKinds(t, errs, diagnostics.KindOperatorMismatch)
	if errs[0].Row != 2 {
		t.Fatalf("expected the mismatch on the boolean operand, got row %d", errs[0].Row)
	}
	expectGlobal(t, typed, "s", "string")
	expectGlobal(t, typed, "n", "number")
}

func TestGenericFunctions(t *testing.T) {
	source := strings.Join([]string{
		`function identity<T>(value: T): T { return value; }`,
		`let s = identity("a");`,
		`let n = identity<number>(5);`,
		`identity<number>("x");`,
	}, "\n")
	typed, errs := checkSource(t, source)
	expectKinds(t, errs, diagnostics.KindIncompatibleTypes)
	expectGlobal(t, typed, "s", "string")
	expectGlobal(t, typed, "n", "number")
}

func TestTypedProgramRecordsExpressions(t *testing.T) {
	typed, errs := checkSource(t, "let a = 1 + 2;")
	expectKinds(t, errs)
	decl := typed.Program.Body[0].(*ast.VariableDeclaration).Declarations[0]
	sum, ok := typed.TypeOf(decl.Init)
	if !ok || sum != Number {
		t.Fatalf("expected the sum to be recorded as number, got %v", sum)
	}
	if lit, ok := typed.TypeOf(decl.Init.(*ast.BinaryExpression).Left); !ok || lit.Name() != "1" {
		t.Fatalf("expected the left operand to keep its literal type, got %v", lit)
	}
}

func TestEscapedLiteralIsNotAUnion(t *testing.T) {
	source := strings.Join([]string{
		`let u: ["a" | "b"] = ["b"];`,
		`let v: ["a\" | \"b"] = u;`,
	}, "\n")
	_, errs := checkSource(t, source)
	expectKinds(t, errs, diagnostics.KindIncompatibleTypes)
	if errs[0].Row != 2 {
		t.Fatalf("unexpected error row %d", errs[0].Row)
	}
}
