package lexer

import (
	"strings"
	"testing"
	"unicode/utf8"

	"zygr/frontend-go/pkg/diagnostics"
)

func kindsOf(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func expectKinds(t *testing.T, source string, want ...Kind) []Token {
	t.Helper()
	res := Tokenize(source)
	if res.HasErrors() {
		t.Fatalf("unexpected lexer errors for %q: %v", source, res.Errors)
	}
	got := kindsOf(res.Result)
	want = append(want, EOF)
	if len(got) != len(want) {
		t.Fatalf("token count mismatch for %q: got %v, want %v", source, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d of %q: got %s, want %s (all: %v)", i, source, got[i], want[i], got)
		}
	}
	return res.Result
}

func TestTokenizeDeclaration(t *testing.T) {
	tokens := expectKinds(t, `let x: number = "hi";`,
		Let, Identifier, Colon, NumberType, Equal, StringLiteral, Semicolon)
	if tokens[5].Text != `"hi"` {
		t.Fatalf("expected raw string text, got %q", tokens[5].Text)
	}
	if tokens[1].Row != 1 || tokens[1].Col != 5 {
		t.Fatalf("expected identifier at 1:5, got %d:%d", tokens[1].Row, tokens[1].Col)
	}
}

func TestMaximalMunchOperators(t *testing.T) {
	cases := []struct {
		source string
		want   []Kind
	}{
		{"a === b", []Kind{Identifier, TripleEqual, Identifier}},
		{"a !== b", []Kind{Identifier, NotDoubleEqual, Identifier}},
		{"a ** = b", []Kind{Identifier, Power, Equal, Identifier}},
		{"a **= b", []Kind{Identifier, PowerEqual, Identifier}},
		{"a ?? b", []Kind{Identifier, NullishCoalescing, Identifier}},
		{"a?.b", []Kind{Identifier, OptionalChain, Identifier}},
		{"a?.5:1", []Kind{Identifier, QuestionMark, NumberLiteral, Colon, NumberLiteral}},
		{"x => x", []Kind{Identifier, Arrow, Identifier}},
		{"...rest", []Kind{Spread, Identifier}},
		{"i++ + --j", []Kind{Identifier, Increment, Plus, Decrement, Identifier}},
		{"a &&= b ||= c ??= d", []Kind{Identifier, AndAndEqual, Identifier, OrOrEqual, Identifier, NullishEqual, Identifier}},
		{"a <= b >= c", []Kind{Identifier, LessEqual, Identifier, GreaterEqual, Identifier}},
	}
	for _, tc := range cases {
		expectKinds(t, tc.source, tc.want...)
	}
}

func TestNumericLiterals(t *testing.T) {
	tokens := expectKinds(t, "1 1.5 .5 1e10 2E-3 1_000 0xFF 0b1010 10n",
		NumberLiteral, NumberLiteral, NumberLiteral, NumberLiteral, NumberLiteral,
		NumberLiteral, NumberLiteral, NumberLiteral, BigIntLiteral)
	if tokens[5].Text != "1_000" {
		t.Fatalf("expected separators kept in text, got %q", tokens[5].Text)
	}
	if tokens[8].Text != "10n" {
		t.Fatalf("expected bigint suffix in text, got %q", tokens[8].Text)
	}
}

func TestStringEscapesAndTemplates(t *testing.T) {
	tokens := expectKinds(t, "'it\\'s' `a ${b + `c${d}`} e`",
		StringLiteral, TemplateLiteral)
	if tokens[0].Text != `'it\'s'` {
		t.Fatalf("unexpected string text %q", tokens[0].Text)
	}
	if !strings.HasPrefix(tokens[1].Text, "`a ${") || !strings.HasSuffix(tokens[1].Text, "} e`") {
		t.Fatalf("unexpected template text %q", tokens[1].Text)
	}
}

func TestCommentsAreTokens(t *testing.T) {
	tokens := expectKinds(t, "// line\nx /* block\nstill */ y",
		LineComment, Identifier, BlockComment, Identifier)
	if tokens[1].Row != 2 || tokens[1].Col != 1 {
		t.Fatalf("expected x at 2:1, got %d:%d", tokens[1].Row, tokens[1].Col)
	}
	if tokens[3].Row != 3 {
		t.Fatalf("expected y on row 3, got %d", tokens[3].Row)
	}
}

func TestKeywordsAndContextualWords(t *testing.T) {
	expectKinds(t, "function class interface type const implements extends",
		Function, Class, Interface, Type, Const, Implements, Extends)
}

func TestUnknownCharacterIsNotEOF(t *testing.T) {
	res := Tokenize("let a = 1 \\ 2;")
	if len(res.Errors) != 1 {
		t.Fatalf("expected 1 lexer error, got %v", res.Errors)
	}
	if res.Errors[0].Kind != diagnostics.KindUnexpectedCharacter {
		t.Fatalf("expected unexpected-character, got %s", res.Errors[0].Kind)
	}
	eofCount := 0
	illegal := 0
	for _, tok := range res.Result {
		switch tok.Kind {
		case EOF:
			eofCount++
		case Illegal:
			illegal++
		}
	}
	if eofCount != 1 || illegal != 1 {
		t.Fatalf("expected one EOF and one Illegal token, got %d and %d", eofCount, illegal)
	}
	if last := res.Result[len(res.Result)-1]; last.Kind != EOF {
		t.Fatalf("expected sequence to end with EOF, got %s", last.Kind)
	}
}

func TestUnterminatedLiterals(t *testing.T) {
	cases := []string{`"open`, "`open ${x", "/* open"}
	for _, src := range cases {
		res := Tokenize(src)
		if len(res.Errors) != 1 || res.Errors[0].Kind != diagnostics.KindUnterminatedLiteral {
			t.Fatalf("expected unterminated-literal for %q, got %v", src, res.Errors)
		}
		if res.Result[len(res.Result)-1].Kind != EOF {
			t.Fatalf("expected EOF sentinel for %q", src)
		}
	}
}

// Every token's row/col must locate its text in the original source.
func TestPositionsRoundTrip(t *testing.T) {
	source := "const s = \"a\\\"b\";\nlet t = `x ${s} y`; // note\n  if (a !== b && c?.d) { e **= 2 }\n/* multi\nline */ let é = 1_0n;"
	res := Tokenize(source)
	if res.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	lines := strings.Split(source, "\n")
	for _, tok := range res.Result {
		if tok.Kind == EOF {
			continue
		}
		if got := source[tok.Offset : tok.Offset+len(tok.Text)]; got != tok.Text {
			t.Fatalf("offset slice mismatch for %s: got %q want %q", tok.Kind, got, tok.Text)
		}
		line := lines[tok.Row-1]
		prefix := 0
		for i := 1; i < tok.Col; i++ {
			_, size := utf8.DecodeRuneInString(line[prefix:])
			prefix += size
		}
		if !strings.HasPrefix(source[offsetOfRow(source, tok.Row)+prefix:], tok.Text) {
			t.Fatalf("row/col %d:%d does not locate %q", tok.Row, tok.Col, tok.Text)
		}
	}
}

func offsetOfRow(source string, row int) int {
	offset := 0
	for r := 1; r < row; r++ {
		offset += strings.IndexByte(source[offset:], '\n') + 1
	}
	return offset
}

func TestTokenEnd(t *testing.T) {
	tok := Token{Kind: BlockComment, Text: "/* a\nbc */", Row: 2, Col: 3}
	row, col := tok.End()
	if row != 3 || col != 6 {
		t.Fatalf("expected end 3:6, got %d:%d", row, col)
	}
}

func TestTokenizeAtRebasesPositions(t *testing.T) {
	res := TokenizeAt("a + b", 4, 10)
	if res.Result[0].Row != 4 || res.Result[0].Col != 10 {
		t.Fatalf("expected first token at 4:10, got %d:%d", res.Result[0].Row, res.Result[0].Col)
	}
	if res.Result[2].Col != 14 {
		t.Fatalf("expected b at column 14, got %d", res.Result[2].Col)
	}
}

func TestLexemeLookup(t *testing.T) {
	if Arrow.Lexeme() != "=>" || Function.Lexeme() != "function" || Identifier.Lexeme() != "" {
		t.Fatalf("unexpected lexemes: %q %q %q", Arrow.Lexeme(), Function.Lexeme(), Identifier.Lexeme())
	}
	if kind, ok := LookupKeyword("interface"); !ok || kind != Interface {
		t.Fatalf("expected interface keyword")
	}
}
