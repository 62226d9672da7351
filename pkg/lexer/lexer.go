// Package lexer turns source text into the token sequence consumed by the
// parser. It never stops early: malformed input produces Illegal tokens and
// error records, and every sequence ends with exactly one EOF token.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"zygr/frontend-go/pkg/diagnostics"
)

const eofRune = -1

type scanner struct {
	src    string
	pos    int
	row    int
	col    int
	tokens []Token
	errs   []diagnostics.CompilerError

	startPos int
	startRow int
	startCol int
}

// Tokenize scans source from the beginning.
func Tokenize(source string) diagnostics.Result[[]Token] {
	return TokenizeAt(source, 1, 1)
}

// TokenizeAt scans source as if its first character sat at row/col. Used to
// lex fragments embedded in a larger text (template substitutions).
func TokenizeAt(source string, row, col int) diagnostics.Result[[]Token] {
	s := &scanner{src: source, row: row, col: col}
	s.run()
	return diagnostics.NewResult(s.tokens, s.errs)
}

func (s *scanner) peek() rune {
	return s.peekAt(0)
}

// peekAt looks n runes past the cursor without consuming.
func (s *scanner) peekAt(n int) rune {
	i := s.pos
	for ; n > 0; n-- {
		if i >= len(s.src) {
			return eofRune
		}
		_, size := utf8.DecodeRuneInString(s.src[i:])
		i += size
	}
	if i >= len(s.src) {
		return eofRune
	}
	r, _ := utf8.DecodeRuneInString(s.src[i:])
	return r
}

func (s *scanner) next() rune {
	if s.pos >= len(s.src) {
		return eofRune
	}
	r, size := utf8.DecodeRuneInString(s.src[s.pos:])
	s.pos += size
	if r == '\n' {
		s.row++
		s.col = 1
	} else {
		s.col++
	}
	return r
}

func (s *scanner) mark() {
	s.startPos = s.pos
	s.startRow = s.row
	s.startCol = s.col
}

func (s *scanner) emit(kind Kind) {
	s.tokens = append(s.tokens, Token{
		Kind:   kind,
		Text:   s.src[s.startPos:s.pos],
		Row:    s.startRow,
		Col:    s.startCol,
		Offset: s.startPos,
	})
}

func (s *scanner) errorAtStart(detail diagnostics.Detail) {
	s.errs = append(s.errs, diagnostics.New(detail, s.startRow, s.startCol))
}

func (s *scanner) run() {
	for {
		r := s.peek()
		if r == eofRune {
			break
		}
		if isSpace(r) {
			s.next()
			continue
		}
		s.mark()
		switch {
		case r == '/' && s.peekAt(1) == '/':
			s.scanLineComment()
		case r == '/' && s.peekAt(1) == '*':
			s.scanBlockComment()
		case r == '"' || r == '\'':
			s.scanString(r)
		case r == '`':
			s.scanTemplate()
		case isDigit(r) || (r == '.' && isDigit(s.peekAt(1))):
			s.scanNumber()
		case isIdentStart(r):
			s.scanIdentifier()
		default:
			if !s.scanOperator() {
				s.next()
				s.emit(Illegal)
				s.errorAtStart(diagnostics.UnexpectedCharacter{Char: string(r)})
			}
		}
	}
	s.mark()
	s.emit(EOF)
}

func (s *scanner) scanLineComment() {
	for {
		r := s.peek()
		if r == eofRune || r == '\n' {
			break
		}
		s.next()
	}
	s.emit(LineComment)
}

func (s *scanner) scanBlockComment() {
	s.next()
	s.next()
	for {
		r := s.next()
		if r == eofRune {
			s.emit(BlockComment)
			s.errorAtStart(diagnostics.UnterminatedLiteral{What: "block comment"})
			return
		}
		if r == '*' && s.peek() == '/' {
			s.next()
			break
		}
	}
	s.emit(BlockComment)
}

func (s *scanner) scanString(quote rune) {
	s.next()
	for {
		r := s.peek()
		if r == eofRune || r == '\n' {
			s.emit(StringLiteral)
			s.errorAtStart(diagnostics.UnterminatedLiteral{What: "string literal"})
			return
		}
		s.next()
		if r == '\\' {
			if s.peek() != eofRune {
				s.next()
			}
			continue
		}
		if r == quote {
			break
		}
	}
	s.emit(StringLiteral)
}

func (s *scanner) scanTemplate() {
	s.next()
	if !s.skipTemplateBody() {
		s.emit(TemplateLiteral)
		s.errorAtStart(diagnostics.UnterminatedLiteral{What: "template literal"})
		return
	}
	s.emit(TemplateLiteral)
}

// skipTemplateBody consumes up to and including the closing backtick,
// descending into ${...} substitutions. It returns false at end of input.
func (s *scanner) skipTemplateBody() bool {
	for {
		r := s.next()
		switch r {
		case eofRune:
			return false
		case '\\':
			if s.next() == eofRune {
				return false
			}
		case '`':
			return true
		case '$':
			if s.peek() == '{' {
				s.next()
				if !s.skipSubstitution() {
					return false
				}
			}
		}
	}
}

func (s *scanner) skipSubstitution() bool {
	depth := 0
	for {
		r := s.next()
		switch r {
		case eofRune:
			return false
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return true
			}
			depth--
		case '"', '\'':
			for {
				c := s.next()
				if c == eofRune || c == '\n' {
					return false
				}
				if c == '\\' {
					s.next()
					continue
				}
				if c == r {
					break
				}
			}
		case '`':
			if !s.skipTemplateBody() {
				return false
			}
		}
	}
}

func (s *scanner) scanNumber() {
	if s.peek() == '0' {
		switch unicode.ToLower(s.peekAt(1)) {
		case 'x', 'o', 'b':
			s.next()
			s.next()
			for isHexDigit(s.peek()) || s.peek() == '_' {
				s.next()
			}
			s.finishNumber()
			return
		}
	}
	if s.peek() == '.' {
		s.next()
		s.skipDigits()
	} else {
		s.skipDigits()
		if s.peek() == '.' && isDigit(s.peekAt(1)) {
			s.next()
			s.skipDigits()
		}
	}
	if r := s.peek(); r == 'e' || r == 'E' {
		next := s.peekAt(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(s.peekAt(2))) {
			s.next()
			if next == '+' || next == '-' {
				s.next()
			}
			s.skipDigits()
		}
	}
	s.finishNumber()
}

func (s *scanner) skipDigits() {
	for isDigit(s.peek()) || s.peek() == '_' {
		s.next()
	}
}

func (s *scanner) finishNumber() {
	if s.peek() == 'n' {
		s.next()
		s.emit(BigIntLiteral)
		return
	}
	s.emit(NumberLiteral)
}

func (s *scanner) scanIdentifier() {
	for isIdentPart(s.peek()) {
		s.next()
	}
	text := s.src[s.startPos:s.pos]
	if kind, ok := keywords[text]; ok {
		s.emit(kind)
		return
	}
	s.emit(Identifier)
}

func (s *scanner) scanOperator() bool {
	rest := s.src[s.pos:]
	for _, op := range operators {
		if !strings.HasPrefix(rest, op.text) {
			continue
		}
		// `a?.5:b` is a conditional, not an optional chain.
		if op.kind == OptionalChain && len(rest) > 2 && isDigit(rune(rest[2])) {
			continue
		}
		for range op.text {
			s.next()
		}
		s.emit(op.kind)
		return true
	}
	return false
}

func isSpace(r rune) bool {
	return r == '\uFEFF' || unicode.IsSpace(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
