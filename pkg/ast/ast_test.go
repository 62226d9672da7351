package ast

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func sampleProgram() *Program {
	// function add(a: number, b: number): number { return a + b; }
	// let total = add(1, 2);
	fn := Fn("add", []*Parameter{Param("a", Kw("number")), Param("b", Kw("number"))}, Kw("number"),
		Ret(Bin("+", ID("a"), ID("b"))))
	decl := Let("total", nil, CallName("add", Num(1), Num(2)))
	return Prog(fn, decl)
}

func TestWalkVisitsChildrenInSourceOrder(t *testing.T) {
	var types []NodeType
	Inspect(sampleProgram(), func(n Node) bool {
		if n != nil {
			types = append(types, n.NodeType())
		}
		return true
	})
	want := []NodeType{
		NodeProgram,
		NodeFunctionDeclaration, NodeIdentifier,
		NodeParameter, NodeIdentifier, NodeKeywordType,
		NodeParameter, NodeIdentifier, NodeKeywordType,
		NodeKeywordType,
		NodeBlockStatement, NodeReturnStatement, NodeBinaryExpression, NodeIdentifier, NodeIdentifier,
		NodeVariableDeclaration, NodeVariableDeclarator, NodeIdentifier,
		NodeCallExpression, NodeIdentifier, NodeLiteral, NodeLiteral,
	}
	if len(types) != len(want) {
		t.Fatalf("visited %d nodes, want %d: %v", len(types), len(want), types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("node %d: got %s, want %s", i, types[i], want[i])
		}
	}
}

func TestInspectCanPruneSubtrees(t *testing.T) {
	count := 0
	Inspect(sampleProgram(), func(n Node) bool {
		if n == nil {
			return false
		}
		count++
		_, isFn := n.(*FunctionDeclaration)
		return !isFn
	})
	// Program, FunctionDeclaration (pruned), VariableDeclaration subtree (7).
	if count != 9 {
		t.Fatalf("expected 9 visited nodes, got %d", count)
	}
}

func TestChildrenSkipsAbsentOptionals(t *testing.T) {
	ret := NewReturnStatement(nil)
	if got := Children(ret); len(got) != 0 {
		t.Fatalf("expected no children for bare return, got %v", got)
	}
	try := NewTryStatement(Block(), nil, Block())
	if got := Children(try); len(got) != 2 {
		t.Fatalf("expected block and finalizer only, got %d", len(got))
	}
	arrow := Arrow([]*Parameter{Param("x", nil)}, ID("x"))
	for _, child := range Children(arrow) {
		if child == nil {
			t.Fatalf("nil child leaked from arrow function")
		}
	}
}

func TestAnnotateOriginsCoversEveryNode(t *testing.T) {
	program := sampleProgram()
	table := AnnotateOrigins(program, "main.zy", nil)
	total := 0
	Inspect(program, func(n Node) bool {
		if n == nil {
			return false
		}
		total++
		if table[n] != "main.zy" {
			t.Fatalf("node %s missing origin", n.NodeType())
		}
		return true
	})
	if len(table) != total {
		t.Fatalf("expected %d entries, got %d", total, len(table))
	}
	again := AnnotateOrigins(program, "other.zy", table)
	if again[program] != "main.zy" {
		t.Fatalf("expected first origin to win")
	}
}

func TestSpansAndNodeAt(t *testing.T) {
	inner := ID("x")
	SetSpan(inner, Span{Start: Position{Line: 1, Column: 5}, End: Position{Line: 1, Column: 6}})
	stmt := Expr(inner)
	SetSpan(stmt, Span{Start: Position{Line: 1, Column: 1}, End: Position{Line: 1, Column: 7}})
	program := Prog(stmt)
	SetSpan(program, Cover(stmt, stmt))

	if got := NodeAt(program, Position{Line: 1, Column: 5}); got != inner {
		t.Fatalf("expected identifier at 1:5, got %v", got)
	}
	if got := NodeAt(program, Position{Line: 1, Column: 2}); got != stmt {
		t.Fatalf("expected statement at 1:2, got %v", got)
	}
	if got := NodeAt(program, Position{Line: 2, Column: 1}); got != nil && got != Node(program) {
		t.Fatalf("expected no node at 2:1, got %v", got)
	}
}

func TestJSONDumpCarriesNodeTypes(t *testing.T) {
	data, err := MarshalIndentJSON(sampleProgram())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["type"] != "Program" {
		t.Fatalf("expected Program root, got %v", decoded["type"])
	}
	body, ok := decoded["body"].([]any)
	if !ok || len(body) != 2 {
		t.Fatalf("expected two statements, got %v", decoded["body"])
	}
	first := body[0].(map[string]any)
	if first["type"] != "FunctionDeclaration" {
		t.Fatalf("expected function declaration, got %v", first["type"])
	}
}

func TestYAMLDumpMatchesJSONFields(t *testing.T) {
	data, err := MarshalYAML(Prog(Const("y", nil, Num(5))))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	text := string(data)
	for _, want := range []string{"type: Program", "type: VariableDeclaration", "kind: const", "raw: \"5\""} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in yaml dump:\n%s", want, text)
		}
	}
}

func TestFprintOutline(t *testing.T) {
	var buf bytes.Buffer
	if err := Fprint(&buf, Prog(Expr(Bin("*", ID("a"), Num(2))))); err != nil {
		t.Fatalf("fprint: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{
		"Program 0:0",
		"  ExpressionStatement 0:0",
		"    BinaryExpression 0:0 *",
		"      Identifier 0:0 a",
		"      Literal 0:0 number 2",
	}
	if len(lines) != len(want) {
		t.Fatalf("unexpected outline:\n%s", buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestPropertyKeyName(t *testing.T) {
	p := Prop("name", Str("x"))
	if name, ok := p.KeyName(); !ok || name != "name" {
		t.Fatalf("expected static key name, got %q %v", name, ok)
	}
	computed := NewProperty(ID("k"), Num(1))
	computed.Computed = true
	if _, ok := computed.KeyName(); ok {
		t.Fatalf("computed keys have no static name")
	}
}
