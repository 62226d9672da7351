package parser

import (
	"math/rand"
	"strings"
	"testing"

	"zygr/frontend-go/pkg/ast"
	"zygr/frontend-go/pkg/diagnostics"
)

func TestRecoveryReportsEveryIndependentError(t *testing.T) {
	program, errs := parseSource(t, "let a = ;\nlet b = 1;\nlet c = );\nfunction ok() { return 1; }")
	expectErrorKinds(t, errs, diagnostics.KindUnexpectedToken, diagnostics.KindUnexpectedToken)
	if errs[0].Row != 1 || errs[0].Col != 9 || errs[0].Message != "parser: expected expression but found ';'" {
		t.Fatalf("unexpected first error %v", errs[0])
	}
	if errs[1].Row != 3 || errs[1].Col != 9 {
		t.Fatalf("unexpected second error %v", errs[1])
	}
	if len(program.Body) != 2 {
		t.Fatalf("expected the two valid statements to survive, got %d", len(program.Body))
	}
	if _, ok := program.Body[1].(*ast.FunctionDeclaration); !ok {
		t.Fatalf("expected function declaration after recovery, got %T", program.Body[1])
	}
}

func TestRecoveryThreeErrors(t *testing.T) {
	_, errs := parseSource(t, "let = 1;\nif (a { b; }\nx = = 2;\nlet ok = 3;")
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), errs)
	}
	for i, row := range []int{1, 2, 3} {
		if errs[i].Row != row {
			t.Fatalf("error %d: expected row %d, got %d", i, row, errs[i].Row)
		}
	}
}

func TestRecoveryInsideBlock(t *testing.T) {
	program, errs := parseSource(t, "function f() {\n  let x = ;\n  return 1;\n}\nlet y = 2;")
	expectErrorKinds(t, errs, diagnostics.KindUnexpectedToken)
	if len(program.Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Body))
	}
	fn := program.Body[0].(*ast.FunctionDeclaration)
	if len(fn.Body.Body) != 1 {
		t.Fatalf("expected the return statement to survive, got %d statements", len(fn.Body.Body))
	}
}

func TestRecoverySkipsBrokenBlock(t *testing.T) {
	program, errs := parseSource(t, "if (a { b; }\nlet z = 1;")
	expectErrorKinds(t, errs, diagnostics.KindUnexpectedToken)
	if len(program.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Body))
	}
	if _, ok := program.Body[0].(*ast.VariableDeclaration); !ok {
		t.Fatalf("expected declaration after recovery, got %T", program.Body[0])
	}
}

func TestStrayClosingBrace(t *testing.T) {
	program, errs := parseSource(t, "}\nlet a = 1;")
	expectErrorKinds(t, errs, diagnostics.KindUnexpectedToken)
	if len(program.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Body))
	}
}

func TestClassMemberRecovery(t *testing.T) {
	program, errs := parseSource(t, "class A { x: = 1; y: number; }")
	expectErrorKinds(t, errs, diagnostics.KindUnexpectedToken)
	class := program.Body[0].(*ast.ClassDeclaration)
	if len(class.Members) != 1 || class.Members[0].(*ast.ClassProperty).Key.Name != "y" {
		t.Fatalf("expected member y to survive, got %d members", len(class.Members))
	}
}

func TestContextErrors(t *testing.T) {
	program, errs := parseSource(t, "break;\nreturn 1;\nwhile (x) { break; continue; }\nfunction f() { while (y) { let g = () => { break; }; } }")
	expectErrorKinds(t, errs, diagnostics.KindInvalidSyntax, diagnostics.KindInvalidSyntax, diagnostics.KindInvalidSyntax)
	if errs[0].Message != "parser: 'break' outside of a loop" {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}
	if errs[1].Message != "parser: 'return' outside of a function" {
		t.Fatalf("unexpected message %q", errs[1].Message)
	}
	if errs[2].Row != 4 {
		t.Fatalf("expected break inside arrow body to be rejected, got %v", errs[2])
	}
	if len(program.Body) != 4 {
		t.Fatalf("context errors should keep statements, got %d", len(program.Body))
	}
}

func TestTryWithoutHandler(t *testing.T) {
	program, errs := parseSource(t, "try { a(); }\nlet b = 1;")
	expectErrorKinds(t, errs, diagnostics.KindInvalidSyntax)
	if errs[0].Row != 2 || errs[0].Col != 1 {
		t.Fatalf("expected error at the token after the block, got %d:%d", errs[0].Row, errs[0].Col)
	}
	if len(program.Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Body))
	}
}

func TestAutomaticSemicolonInsertion(t *testing.T) {
	program := mustParse(t, "let a = 1\nlet b = 2\na = b\n{ a }")
	if len(program.Body) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(program.Body))
	}

	program, errs := parseSource(t, "let a = 1 let b = 2;")
	expectErrorKinds(t, errs, diagnostics.KindUnexpectedToken)
	if errs[0].Message != "parser: expected ';' but found 'let'" {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}
	if len(program.Body) != 1 {
		t.Fatalf("expected the second declaration to survive, got %d", len(program.Body))
	}
}

func TestReturnWithoutArgumentBeforeNewline(t *testing.T) {
	program := mustParse(t, "function f() {\n  return\n  1\n}")
	fn := program.Body[0].(*ast.FunctionDeclaration)
	if len(fn.Body.Body) != 2 {
		t.Fatalf("expected return and expression statements, got %d", len(fn.Body.Body))
	}
	if ret := fn.Body.Body[0].(*ast.ReturnStatement); ret.Argument != nil {
		t.Fatalf("expected bare return")
	}
}

func TestUnsupportedSyntaxIsReported(t *testing.T) {
	cases := []string{
		"let { a } = b;",
		"switch (x) {}",
		"import x from 'y';",
		"for (const x of xs) {}",
		"let xs = [1, , 2];",
		"class A { [k]: number; }",
		"interface I { [k: string]: number }",
		"interface I { (x: number): string }",
	}
	for _, source := range cases {
		_, errs := parseSource(t, source)
		if len(errs) == 0 {
			t.Fatalf("expected an error for %q", source)
		}
		if errs[0].Kind != diagnostics.KindInvalidSyntax {
			t.Fatalf("%q: expected invalid syntax, got %s (%s)", source, errs[0].Kind, errs[0].Message)
		}
	}
}

func TestLexerErrorsAreMerged(t *testing.T) {
	program, errs := parseSource(t, "let a = 1 \\ 2;")
	if len(errs) == 0 || errs[0].Kind != diagnostics.KindUnexpectedCharacter {
		t.Fatalf("expected lexer error first, got %v", errs)
	}
	if errs[0].Row != 1 || errs[0].Col != 11 {
		t.Fatalf("unexpected lexer error position %d:%d", errs[0].Row, errs[0].Col)
	}
	if program == nil {
		t.Fatalf("expected a program")
	}
}

var fuzzWords = []string{
	"a", "b", "1", `"s"`, "`t${a}`", "let", "const", "function", "class", "interface", "type",
	"if", "else", "for", "while", "do", "return", "break", "continue", "throw", "try", "catch",
	"finally", "new", "this", "super", "async", "await", "typeof", "=>", "(", ")", "{", "}",
	"[", "]", ",", ";", ":", ".", "?", "?.", "+", "-", "*", "**", "=", "+=", "===", "<", ">",
	"&&", "||", "??", "!", "++", "...", "|", "&", "number", "string", "void", "null", "true",
	"extends", "implements", "public", "static", "readonly", "get", "as", "#", "declare",
	"export", "abstract", "@", "// c", "\n",
}

// Every token sequence must produce a program and terminate without panicking.
func TestParserIsTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 3000; i++ {
		n := rng.Intn(40)
		words := make([]string, n)
		for j := range words {
			words[j] = fuzzWords[rng.Intn(len(fuzzWords))]
		}
		source := strings.Join(words, " ")
		res := ParseSource(source)
		if res.Result == nil {
			t.Fatalf("nil program for %q", source)
		}
		for _, err := range res.Errors {
			if err.Row < 1 || err.Col < 1 {
				t.Fatalf("invalid error position %d:%d for %q", err.Row, err.Col, source)
			}
		}
	}
}
