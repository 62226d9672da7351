package parser

import (
	"testing"

	"zygr/frontend-go/pkg/ast"
)

func TestBinaryPrecedenceAndAssociativity(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"a + b * c;", "(a + (b * c))"},
		{"a * b + c;", "((a * b) + c)"},
		{"a - b - c;", "((a - b) - c)"},
		{"a ** b ** c;", "(a ** (b ** c))"},
		{"a || b && c;", "(a || (b && c))"},
		{"a || b ?? c;", "(a || (b ?? c))"},
		{"a == b < c;", "(a == (b < c))"},
		{"a & b | c ^ d;", "((a & b) | (c ^ d))"},
		{"a instanceof B && c in d;", "((a instanceof B) && (c in d))"},
		{"x = y = 1;", "(x = (y = 1))"},
		{"x += a ? b : c;", "(x += (a ? b : c))"},
		{"a ? b : c ? d : e;", "(a ? b : (c ? d : e))"},
		{"!a.b(c);", "(! a.b(c))"},
		{`typeof x === "string";`, `((typeof x) === "string")`},
		{"-x ** 2;", "((- x) ** 2)"},
		{"i++ + ++j;", "((i++) + (++j))"},
		{"a?.b?.[c]?.(d);", "a?.b?.[c]?.(d)"},
		{"x as string;", "(x as T)"},
		{"(a + b) * c;", "((a + b) * c)"},
		{"new Foo(1).bar;", "new Foo.bar"},
		{"a < b;", "(a < b)"},
		{"this.items[0] = await load();", "(this.items.[0] = (await load()))"},
	}
	for _, tc := range cases {
		t.Run(tc.source, func(t *testing.T) {
			if got := shape(firstExpression(t, tc.source)); got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestCallWithTypeArguments(t *testing.T) {
	call, ok := firstExpression(t, "identity<number>(x);").(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected call expression")
	}
	if len(call.TypeArguments) != 1 || len(call.Arguments) != 1 {
		t.Fatalf("expected one type argument and one argument, got %d and %d", len(call.TypeArguments), len(call.Arguments))
	}
	if kw, ok := call.TypeArguments[0].(*ast.KeywordType); !ok || kw.Keyword != "number" {
		t.Fatalf("expected number type argument, got %#v", call.TypeArguments[0])
	}
}

func TestArrowFunctionDetection(t *testing.T) {
	cases := []struct {
		source     string
		params     int
		blockBody  bool
		async      bool
		typeParams int
		returnType bool
	}{
		{source: "(a, b) => a + b;", params: 2},
		{source: "x => x * 2;", params: 1},
		{source: "() => {};", params: 0, blockBody: true},
		{source: "(a: number): number => { return a; };", params: 1, blockBody: true, returnType: true},
		{source: "async (x) => await x;", params: 1, async: true},
		{source: "async x => x;", params: 1, async: true},
		{source: "<T>(x: T) => x;", params: 1, typeParams: 1},
		{source: "(a?: string, ...rest: number[]) => rest;", params: 2},
	}
	for _, tc := range cases {
		t.Run(tc.source, func(t *testing.T) {
			fn, ok := firstExpression(t, tc.source).(*ast.ArrowFunctionExpression)
			if !ok {
				t.Fatalf("expected arrow function")
			}
			if len(fn.Params) != tc.params {
				t.Fatalf("expected %d params, got %d", tc.params, len(fn.Params))
			}
			if (fn.Body != nil) != tc.blockBody || (fn.ExpressionBody != nil) == tc.blockBody {
				t.Fatalf("unexpected body shape: block=%v expr=%v", fn.Body != nil, fn.ExpressionBody != nil)
			}
			if fn.Async != tc.async {
				t.Fatalf("expected async=%v", tc.async)
			}
			if len(fn.TypeParams) != tc.typeParams {
				t.Fatalf("expected %d type params, got %d", tc.typeParams, len(fn.TypeParams))
			}
			if (fn.ReturnType != nil) != tc.returnType {
				t.Fatalf("expected return type presence %v", tc.returnType)
			}
		})
	}
}

func TestParenthesizedExpressionIsNotArrow(t *testing.T) {
	if _, ok := firstExpression(t, "(a);").(*ast.Identifier); !ok {
		t.Fatalf("expected parenthesized identifier")
	}
	call := firstExpression(t, "f((x) => x, y);").(*ast.CallExpression)
	if len(call.Arguments) != 2 {
		t.Fatalf("expected two arguments, got %d", len(call.Arguments))
	}
	if _, ok := call.Arguments[0].(*ast.ArrowFunctionExpression); !ok {
		t.Fatalf("expected arrow as first argument, got %T", call.Arguments[0])
	}
}

func TestTemplateLiteralSubstitutions(t *testing.T) {
	tpl, ok := firstExpression(t, "`a ${b + 1} c`;").(*ast.TemplateLiteral)
	if !ok {
		t.Fatalf("expected template literal")
	}
	if len(tpl.Quasis) != 2 || tpl.Quasis[0] != "a " || tpl.Quasis[1] != " c" {
		t.Fatalf("unexpected quasis %q", tpl.Quasis)
	}
	if len(tpl.Expressions) != 1 {
		t.Fatalf("expected one substitution, got %d", len(tpl.Expressions))
	}
	bin, ok := tpl.Expressions[0].(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("expected binary substitution, got %T", tpl.Expressions[0])
	}
	if start := bin.Left.Span().Start; start.Line != 1 || start.Column != 6 {
		t.Fatalf("expected substitution identifier at 1:6, got %d:%d", start.Line, start.Column)
	}
}

func TestTemplateSubstitutionErrorsAreReported(t *testing.T) {
	_, errs := parseSource(t, "let s = `x ${a +} y`;")
	if len(errs) != 1 {
		t.Fatalf("expected one error from the substitution, got %v", errs)
	}
	if errs[0].Row != 1 || errs[0].Col != 17 {
		t.Fatalf("expected error at 1:17, got %d:%d", errs[0].Row, errs[0].Col)
	}
}

func TestLiteralValues(t *testing.T) {
	cases := []struct {
		source string
		kind   ast.LiteralKind
		value  string
	}{
		{`"a\tb";`, ast.LiteralString, "a\tb"},
		{`'it\'s';`, ast.LiteralString, "it's"},
		{`"A\x42\u{43}";`, ast.LiteralString, "ABC"},
		{"1_000;", ast.LiteralNumber, "1000"},
		{"1.50;", ast.LiteralNumber, "1.5"},
		{"0xff;", ast.LiteralNumber, "255"},
		{"0b101n;", ast.LiteralBigInt, "5"},
		{"null;", ast.LiteralNull, "null"},
		{"undefined;", ast.LiteralUndefined, "undefined"},
		{"true;", ast.LiteralBoolean, "true"},
	}
	for _, tc := range cases {
		lit, ok := firstExpression(t, tc.source).(*ast.Literal)
		if !ok {
			t.Fatalf("%s: expected literal", tc.source)
		}
		if lit.Kind != tc.kind || lit.Value != tc.value {
			t.Fatalf("%s: got %s %q, want %s %q", tc.source, lit.Kind, lit.Value, tc.kind, tc.value)
		}
	}
}

func TestObjectLiteralMembers(t *testing.T) {
	obj, ok := firstExpression(t, "({a: 1, b, ...c, m() { return 1; }, get g() { return 2; }, 'k': 3, [d]: 4});").(*ast.ObjectExpression)
	if !ok {
		t.Fatalf("expected object literal")
	}
	if len(obj.Properties) != 7 {
		t.Fatalf("expected 7 members, got %d", len(obj.Properties))
	}
	if p := obj.Properties[1].(*ast.Property); !p.Shorthand {
		t.Fatalf("expected shorthand property")
	}
	if _, ok := obj.Properties[2].(*ast.SpreadElement); !ok {
		t.Fatalf("expected spread element")
	}
	if p := obj.Properties[3].(*ast.Property); !p.Method {
		t.Fatalf("expected method property")
	}
	if p := obj.Properties[4].(*ast.Property); p.Accessor != "get" {
		t.Fatalf("expected getter, got %q", p.Accessor)
	}
	if name, ok := obj.Properties[5].(*ast.Property).KeyName(); !ok || name != "k" {
		t.Fatalf("expected string key k, got %q", name)
	}
	if p := obj.Properties[6].(*ast.Property); !p.Computed {
		t.Fatalf("expected computed key")
	}
}

func TestInvalidAssignmentTarget(t *testing.T) {
	_, errs := parseSource(t, "a + b = c;")
	if len(errs) != 1 || errs[0].Message != "parser: invalid assignment target" {
		t.Fatalf("expected invalid assignment target, got %v", errs)
	}
}
