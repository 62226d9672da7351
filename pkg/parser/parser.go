// Package parser builds the AST from a token sequence with a predictive
// recursive-descent parser. Parsing never stops at the first problem: each
// failure is recorded as a CompilerError and the parser resynchronises at the
// next statement boundary, so one call reports every independent error.
package parser

import (
	"zygr/frontend-go/pkg/ast"
	"zygr/frontend-go/pkg/diagnostics"
	"zygr/frontend-go/pkg/lexer"
)

type parser struct {
	tokens []lexer.Token
	pos    int
	errs   []diagnostics.CompilerError

	prevEndRow int
	prevEndCol int

	funcDepth int
	loopDepth int
}

// Parse builds a Program from tokens. The returned program holds every
// statement that parsed successfully even when errors are reported.
func Parse(tokens []lexer.Token) diagnostics.Result[*ast.Program] {
	p := newParser(tokens)
	program := p.parseProgram()
	return diagnostics.NewResult(program, p.errs)
}

// ParseSource tokenizes and parses source in one step, merging lexical and
// syntactic errors.
func ParseSource(source string) diagnostics.Result[*ast.Program] {
	lexed := lexer.Tokenize(source)
	parsed := Parse(lexed.Result)
	errs := append(append([]diagnostics.CompilerError{}, lexed.Errors...), parsed.Errors...)
	return diagnostics.NewResult(parsed.Result, errs)
}

func newParser(tokens []lexer.Token) *parser {
	filtered := make([]lexer.Token, 0, len(tokens)+1)
	for _, tok := range tokens {
		if tok.Kind.IsComment() || tok.Kind == lexer.Illegal {
			continue
		}
		if tok.Kind == lexer.EOF {
			break
		}
		filtered = append(filtered, tok)
	}
	eof := lexer.Token{Kind: lexer.EOF, Row: 1, Col: 1}
	if n := len(tokens); n > 0 && tokens[n-1].Kind == lexer.EOF {
		eof = tokens[n-1]
	} else if n := len(filtered); n > 0 {
		eof.Row, eof.Col = filtered[n-1].End()
		eof.Offset = filtered[n-1].Offset + len(filtered[n-1].Text)
	}
	filtered = append(filtered, eof)
	return &parser{tokens: filtered, prevEndRow: 1, prevEndCol: 1}
}

func (p *parser) parseProgram() *ast.Program {
	start := p.cur()
	body := make([]ast.Statement, 0)
	for !p.at(lexer.EOF) {
		if stmt := p.parseStatementRecovering(); stmt != nil {
			body = append(body, stmt)
		}
	}
	program := ast.NewProgram(body)
	ast.SetSpan(program, ast.Span{
		Start: ast.Position{Line: start.Row, Column: start.Col},
		End:   ast.Position{Line: p.cur().Row, Column: p.cur().Col},
	})
	return program
}

// Cursor helpers.

func (p *parser) cur() lexer.Token {
	return p.tokens[p.pos]
}

// peek returns the token n positions ahead, clamped to EOF.
func (p *parser) peek(n int) lexer.Token {
	return p.tokenAt(p.pos + n)
}

func (p *parser) tokenAt(i int) lexer.Token {
	if i < 0 {
		i = 0
	}
	if i >= len(p.tokens) {
		i = len(p.tokens) - 1
	}
	return p.tokens[i]
}

func (p *parser) at(kinds ...lexer.Kind) bool {
	kind := p.cur().Kind
	for _, k := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}

func (p *parser) advance() lexer.Token {
	tok := p.cur()
	if tok.Kind != lexer.EOF {
		p.pos++
		p.prevEndRow, p.prevEndCol = tok.End()
	}
	return tok
}

func (p *parser) accept(kind lexer.Kind) bool {
	if p.at(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(kind lexer.Kind) lexer.Token {
	if !p.at(kind) {
		p.fail(diagnostics.UnexpectedToken{Found: describe(p.cur()), Expected: expectedKind(kind)})
	}
	return p.advance()
}

// newlineBefore reports whether a line break separates the current token from
// the previous one.
func (p *parser) newlineBefore() bool {
	if p.pos == 0 {
		return false
	}
	return p.cur().Row > p.prevEndRow
}

// consumeSemicolon applies automatic semicolon insertion: an explicit `;` is
// consumed, and `}`, end of input or a preceding line break end the statement
// implicitly.
func (p *parser) consumeSemicolon() {
	if p.accept(lexer.Semicolon) {
		return
	}
	if p.at(lexer.RightBrace, lexer.EOF) || p.newlineBefore() {
		return
	}
	p.fail(diagnostics.UnexpectedToken{Found: describe(p.cur()), Expected: expectedKind(lexer.Semicolon)})
}

// Spans.

func (p *parser) spanFrom(start lexer.Token) ast.Span {
	span := ast.Span{Start: ast.Position{Line: start.Row, Column: start.Col}}
	if p.pos > 0 && p.tokens[p.pos-1].Offset >= start.Offset {
		span.End = ast.Position{Line: p.prevEndRow, Column: p.prevEndCol}
	} else {
		span.End = span.Start
	}
	return span
}

func finish[T ast.Node](p *parser, node T, start lexer.Token) T {
	ast.SetSpan(node, p.spanFrom(start))
	return node
}

func (p *parser) identifierFrom(tok lexer.Token) *ast.Identifier {
	id := ast.NewIdentifier(tok.Text)
	ast.SetSpan(id, tokenSpan(tok))
	return id
}

func tokenSpan(tok lexer.Token) ast.Span {
	row, col := tok.End()
	return ast.Span{
		Start: ast.Position{Line: tok.Row, Column: tok.Col},
		End:   ast.Position{Line: row, Column: col},
	}
}

// identifierLike lists keyword kinds that are only reserved in particular
// positions and otherwise name ordinary bindings.
var identifierLike = map[lexer.Kind]bool{
	lexer.Identifier:  true,
	lexer.From:        true,
	lexer.As:          true,
	lexer.Async:       true,
	lexer.Of:          true,
	lexer.Get:         true,
	lexer.Set:         true,
	lexer.Readonly:    true,
	lexer.Public:      true,
	lexer.Private:     true,
	lexer.Protected:   true,
	lexer.Static:      true,
	lexer.Declare:     true,
	lexer.Require:     true,
	lexer.Namespace:   true,
	lexer.Module:      true,
	lexer.Type:        true,
	lexer.NumberType:  true,
	lexer.StringType:  true,
	lexer.BooleanType: true,
	lexer.Any:         true,
	lexer.Unknown:     true,
	lexer.Never:       true,
	lexer.BigInt:      true,
	lexer.Symbol:      true,
	lexer.Object:      true,
}

func (p *parser) atIdentifier() bool {
	return identifierLike[p.cur().Kind]
}

func (p *parser) parseBindingIdentifier() *ast.Identifier {
	if !p.atIdentifier() {
		p.fail(diagnostics.UnexpectedToken{Found: describe(p.cur()), Expected: "identifier"})
	}
	return p.identifierFrom(p.advance())
}

// isPropertyNameToken reports whether tok can name a member after `.` or in
// an object/class/interface body, where every keyword is allowed.
func isPropertyNameToken(tok lexer.Token) bool {
	return tok.Kind == lexer.Identifier || tok.Kind.IsKeyword()
}

func (p *parser) parsePropertyIdentifier() *ast.Identifier {
	tok := p.cur()
	if tok.Kind == lexer.Hash && isPropertyNameToken(p.peek(1)) {
		p.advance()
		name := p.advance()
		id := ast.NewIdentifier("#" + name.Text)
		ast.SetSpan(id, p.spanFrom(tok))
		return id
	}
	if !isPropertyNameToken(tok) {
		p.fail(diagnostics.UnexpectedToken{Found: describe(tok), Expected: "property name"})
	}
	return p.identifierFrom(p.advance())
}

// matchingClose returns the index of the token closing the bracket opened at
// index open, treating (), [] and {} uniformly, or -1 when input ends first.
func (p *parser) matchingClose(open int) int {
	depth := 0
	for i := open; i < len(p.tokens); i++ {
		switch p.tokens[i].Kind {
		case lexer.LeftParen, lexer.LeftBracket, lexer.LeftBrace:
			depth++
		case lexer.RightParen, lexer.RightBracket, lexer.RightBrace:
			depth--
			if depth == 0 {
				return i
			}
			if depth < 0 {
				return -1
			}
		case lexer.EOF:
			return -1
		}
	}
	return -1
}
