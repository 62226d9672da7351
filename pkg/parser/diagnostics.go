package parser

import (
	"fmt"
	"strings"
	"unicode"

	"zygr/frontend-go/pkg/diagnostics"
	"zygr/frontend-go/pkg/lexer"
)

// bailout unwinds the parser to the nearest recovery point after an error
// has been recorded.
type bailout struct{}

// report records an error at tok. A second error at the same position is
// dropped: it is almost always a cascade of the first.
func (p *parser) report(tok lexer.Token, detail diagnostics.Detail) {
	if n := len(p.errs); n > 0 {
		last := p.errs[n-1]
		if last.Row == tok.Row && last.Col == tok.Col {
			return
		}
	}
	p.errs = append(p.errs, diagnostics.New(detail, tok.Row, tok.Col))
}

// fail records an error at the current token and abandons the construct
// being parsed.
func (p *parser) fail(detail diagnostics.Detail) {
	p.report(p.cur(), detail)
	panic(bailout{})
}

func (p *parser) invalid(tok lexer.Token, format string, args ...any) {
	p.report(tok, diagnostics.InvalidSyntax{Reason: fmt.Sprintf(format, args...)})
}

// describe renders a token for "found" positions in messages.
func describe(tok lexer.Token) string {
	if tok.Kind == lexer.EOF {
		return "end of input"
	}
	text := tok.Text
	if len(text) > 24 {
		text = text[:21] + "..."
	}
	return fmt.Sprintf("'%s'", text)
}

// expectedKind renders a token kind for "expected" positions: fixed lexemes
// are quoted, variable ones are spelled out in words.
func expectedKind(kind lexer.Kind) string {
	if lexeme := kind.Lexeme(); lexeme != "" {
		return fmt.Sprintf("'%s'", lexeme)
	}
	return formatExpectedKind(string(kind))
}

func formatExpectedKind(kind string) string {
	trimmed := strings.TrimSpace(kind)
	if trimmed == "" {
		return "token"
	}
	var b strings.Builder
	for i, r := range trimmed {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
