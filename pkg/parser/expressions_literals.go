package parser

import (
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"

	"zygr/frontend-go/pkg/ast"
	"zygr/frontend-go/pkg/diagnostics"
	"zygr/frontend-go/pkg/lexer"
)

func (p *parser) parseArrayLiteral() ast.Expression {
	start := p.expect(lexer.LeftBracket)
	elements := make([]ast.Expression, 0)
	for !p.at(lexer.RightBracket) {
		if p.at(lexer.Comma) {
			p.fail(diagnostics.InvalidSyntax{Reason: "array holes are not supported"})
		}
		elements = append(elements, p.parseSpreadOrAssignment())
		if !p.accept(lexer.Comma) {
			break
		}
	}
	p.expect(lexer.RightBracket)
	return finish(p, ast.NewArrayExpression(elements), start)
}

func (p *parser) parseObjectLiteral() ast.Expression {
	start := p.expect(lexer.LeftBrace)
	members := make([]ast.ObjectMember, 0)
	for !p.at(lexer.RightBrace) {
		members = append(members, p.parseObjectMember())
		if !p.accept(lexer.Comma) {
			break
		}
	}
	p.expect(lexer.RightBrace)
	return finish(p, ast.NewObjectExpression(members), start)
}

func (p *parser) parseObjectMember() ast.ObjectMember {
	start := p.cur()
	if p.accept(lexer.Spread) {
		argument := p.parseAssignment()
		return finish(p, ast.NewSpreadElement(argument), start)
	}

	accessor := ""
	async := false
	if (p.at(lexer.Get) || p.at(lexer.Set)) && startsMemberName(p.peek(1)) {
		accessor = p.advance().Text
	} else if p.at(lexer.Async) && startsMemberName(p.peek(1)) && p.peek(1).Row == start.Row {
		p.advance()
		async = true
	}
	generator := p.accept(lexer.Star)

	key, computed := p.parseObjectKey()
	if p.at(lexer.LeftParen, lexer.Less) {
		fnStart := p.cur()
		typeParams := p.parseTypeParametersOpt()
		params := p.parseParameterList()
		returnType := p.parseReturnTypeOpt()
		body := p.parseFunctionBody()
		fn := ast.NewFunctionExpression(nil, params, returnType, body)
		fn.TypeParams = typeParams
		fn.Async = async
		fn.Generator = generator
		finish(p, fn, fnStart)
		prop := ast.NewProperty(key, fn)
		prop.Computed = computed
		prop.Method = accessor == ""
		prop.Accessor = accessor
		return finish(p, prop, start)
	}
	if accessor != "" || async || generator {
		p.fail(diagnostics.UnexpectedToken{Found: describe(p.cur()), Expected: "'('"})
	}

	if p.accept(lexer.Colon) {
		value := p.parseAssignment()
		prop := ast.NewProperty(key, value)
		prop.Computed = computed
		return finish(p, prop, start)
	}

	id, ok := key.(*ast.Identifier)
	if !ok || computed || !identifierLike[start.Kind] {
		p.fail(diagnostics.UnexpectedToken{Found: describe(p.cur()), Expected: "':'"})
	}
	value := ast.NewIdentifier(id.Name)
	ast.SetSpan(value, id.Span())
	prop := ast.NewProperty(id, value)
	prop.Shorthand = true
	return finish(p, prop, start)
}

// parseObjectKey parses an identifier, keyword, string or number key, or a
// computed `[expr]` key.
func (p *parser) parseObjectKey() (ast.Expression, bool) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.StringLiteral:
		p.advance()
		return finish(p, ast.NewLiteral(ast.LiteralString, cookString(tok.Text), tok.Text), tok), false
	case lexer.NumberLiteral:
		p.advance()
		return finish(p, ast.NewLiteral(ast.LiteralNumber, normalizeNumber(tok.Text), tok.Text), tok), false
	case lexer.LeftBracket:
		p.advance()
		key := p.parseAssignment()
		p.expect(lexer.RightBracket)
		return key, true
	}
	if !isPropertyNameToken(tok) {
		p.fail(diagnostics.UnexpectedToken{Found: describe(tok), Expected: "property name"})
	}
	return p.identifierFrom(p.advance()), false
}

// Templates

// parseTemplate splits a template token into its text chunks and parses each
// `${...}` substitution as an expression, lexed at its real source position.
func (p *parser) parseTemplate(tok lexer.Token) ast.Expression {
	raw := tok.Text
	body := strings.TrimPrefix(raw, "`")
	terminated := strings.HasSuffix(body, "`") && len(raw) > 1
	if terminated {
		body = body[:len(body)-1]
	}

	row, col := tok.Row, tok.Col+1
	advancePos := func(text string) {
		for _, r := range text {
			if r == '\n' {
				row++
				col = 1
			} else {
				col++
			}
		}
	}

	quasis := make([]string, 0, 1)
	expressions := make([]ast.Expression, 0)
	var chunk strings.Builder
	for i := 0; i < len(body); {
		if body[i] == '\\' && i+1 < len(body) {
			_, size := utf8.DecodeRuneInString(body[i+1:])
			chunk.WriteString(body[i : i+1+size])
			advancePos(body[i : i+1+size])
			i += 1 + size
			continue
		}
		if body[i] == '$' && i+1 < len(body) && body[i+1] == '{' {
			quasis = append(quasis, cookEscapes(chunk.String()))
			chunk.Reset()
			advancePos("${")
			end := substitutionEnd(body, i+2)
			inner := body[i+2 : end]
			expressions = append(expressions, p.parseSubstitution(inner, row, col))
			advancePos(inner)
			i = end
			if i < len(body) {
				advancePos("}")
				i++
			}
			continue
		}
		_, size := utf8.DecodeRuneInString(body[i:])
		chunk.WriteString(body[i : i+size])
		advancePos(body[i : i+size])
		i += size
	}
	quasis = append(quasis, cookEscapes(chunk.String()))
	return finish(p, ast.NewTemplateLiteral(quasis, expressions), tok)
}

// substitutionEnd returns the index of the `}` closing a substitution whose
// contents start at from, skipping nested braces, strings and templates.
func substitutionEnd(s string, from int) int {
	depth := 0
	for i := from; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return i
			}
			depth--
		case '"', '\'', '`':
			quote := s[i]
			for i++; i < len(s) && s[i] != quote; i++ {
				if s[i] == '\\' {
					i++
				}
			}
		}
	}
	return len(s)
}

func (p *parser) parseSubstitution(source string, row, col int) ast.Expression {
	lexed := lexer.TokenizeAt(source, row, col)
	p.errs = append(p.errs, lexed.Errors...)
	sub := newParser(lexed.Result)
	sub.funcDepth = p.funcDepth
	sub.prevEndRow, sub.prevEndCol = row, col
	expr := sub.parseSubstitutionExpression()
	p.errs = append(p.errs, sub.errs...)
	if expr == nil {
		placeholder := ast.NewLiteral(ast.LiteralUndefined, "undefined", "")
		ast.SetSpan(placeholder, ast.Span{Start: ast.Position{Line: row, Column: col}, End: ast.Position{Line: row, Column: col}})
		return placeholder
	}
	return expr
}

func (p *parser) parseSubstitutionExpression() (expr ast.Expression) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			expr = nil
		}
	}()
	if p.at(lexer.EOF) {
		p.fail(diagnostics.InvalidSyntax{Reason: "empty template substitution"})
	}
	expr = p.parseExpression()
	if !p.at(lexer.EOF) {
		p.fail(diagnostics.UnexpectedToken{Found: describe(p.cur()), Expected: "'}'"})
	}
	return expr
}

// Literal values

// cookString strips the quotes from a string token and applies escapes. An
// unterminated literal has no closing quote to strip.
func cookString(raw string) string {
	if raw == "" {
		return ""
	}
	quote := raw[0]
	body := raw[1:]
	if len(body) > 0 && body[len(body)-1] == quote && !escapedAt(body, len(body)-1) {
		body = body[:len(body)-1]
	}
	return cookEscapes(body)
}

// escapedAt reports whether the byte at i is preceded by an odd number of
// backslashes.
func escapedAt(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

func cookEscapes(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation
		case 'x':
			if r, ok := parseHexRune(s, i+1, 2); ok {
				b.WriteRune(r)
				i += 2
			} else {
				b.WriteByte('x')
			}
		case 'u':
			if i+1 < len(s) && s[i+1] == '{' {
				if end := strings.IndexByte(s[i+1:], '}'); end > 1 {
					if r, err := strconv.ParseUint(s[i+2:i+1+end], 16, 32); err == nil {
						b.WriteRune(rune(r))
						i += 1 + end
						continue
					}
				}
				b.WriteByte('u')
			} else if r, ok := parseHexRune(s, i+1, 4); ok {
				b.WriteRune(r)
				i += 4
			} else {
				b.WriteByte('u')
			}
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func parseHexRune(s string, from, n int) (rune, bool) {
	if from+n > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[from:from+n], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

// normalizeNumber returns a canonical spelling of a numeric literal so equal
// values compare equal as literal types (`1.0` and `1` both become "1").
func normalizeNumber(raw string) string {
	text := strings.ReplaceAll(raw, "_", "")
	lower := strings.ToLower(text)
	if len(lower) > 2 && lower[0] == '0' && (lower[1] == 'x' || lower[1] == 'o' || lower[1] == 'b') {
		n, ok := new(big.Int).SetString(lower, 0)
		if !ok {
			return text
		}
		f, _ := new(big.Float).SetInt(n).Float64()
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return text
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func normalizeBigInt(raw string) string {
	text := strings.TrimSuffix(strings.ReplaceAll(raw, "_", ""), "n")
	n, ok := new(big.Int).SetString(strings.ToLower(text), 0)
	if !ok {
		return text
	}
	return n.String()
}
