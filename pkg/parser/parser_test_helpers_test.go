package parser

import (
	"encoding/json"
	"testing"

	"zygr/frontend-go/pkg/ast"
	"zygr/frontend-go/pkg/diagnostics"
)

func parseSource(t testing.TB, source string) (*ast.Program, []diagnostics.CompilerError) {
	t.Helper()
	res := ParseSource(source)
	if res.Result == nil {
		t.Fatalf("expected a program even on failure for %q", source)
	}
	return res.Result, res.Errors
}

func mustParse(t testing.TB, source string) *ast.Program {
	t.Helper()
	program, errs := parseSource(t, source)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", source, errs)
	}
	return program
}

// firstExpression returns the expression of the program's only statement.
func firstExpression(t testing.TB, source string) ast.Expression {
	t.Helper()
	program := mustParse(t, source)
	if len(program.Body) != 1 {
		t.Fatalf("expected one statement in %q, got %d", source, len(program.Body))
	}
	stmt, ok := program.Body[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected expression statement, got %T", program.Body[0])
	}
	return stmt.Expression
}

// shape renders an expression as a fully parenthesised string so tests can
// assert on precedence and associativity.
func shape(expr ast.Node) string {
	switch e := expr.(type) {
	case *ast.Identifier:
		return e.Name
	case *ast.Literal:
		return e.Raw
	case *ast.BinaryExpression:
		return "(" + shape(e.Left) + " " + e.Operator + " " + shape(e.Right) + ")"
	case *ast.LogicalExpression:
		return "(" + shape(e.Left) + " " + e.Operator + " " + shape(e.Right) + ")"
	case *ast.AssignmentExpression:
		return "(" + shape(e.Target) + " " + e.Operator + " " + shape(e.Value) + ")"
	case *ast.ConditionalExpression:
		return "(" + shape(e.Test) + " ? " + shape(e.Consequent) + " : " + shape(e.Alternate) + ")"
	case *ast.UnaryExpression:
		return "(" + e.Operator + " " + shape(e.Argument) + ")"
	case *ast.UpdateExpression:
		if e.Prefix {
			return "(" + e.Operator + shape(e.Argument) + ")"
		}
		return "(" + shape(e.Argument) + e.Operator + ")"
	case *ast.CallExpression:
		out := shape(e.Callee)
		if e.Optional {
			out += "?."
		}
		out += "("
		for i, arg := range e.Arguments {
			if i > 0 {
				out += ", "
			}
			out += shape(arg)
		}
		return out + ")"
	case *ast.MemberExpression:
		sep := "."
		if e.Optional {
			sep = "?."
		}
		if e.Computed {
			return shape(e.Object) + sep + "[" + shape(e.Property) + "]"
		}
		return shape(e.Object) + sep + shape(e.Property)
	case *ast.AsExpression:
		return "(" + shape(e.Expression) + " as T)"
	case *ast.NewExpression:
		return "new " + shape(e.Callee)
	case *ast.ThisExpression:
		return "this"
	}
	data, _ := json.Marshal(expr)
	return string(data)
}

func expectErrorKinds(t testing.TB, errs []diagnostics.CompilerError, kinds ...diagnostics.Kind) {
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
