package parser

import (
	"zygr/frontend-go/pkg/ast"
	"zygr/frontend-go/pkg/lexer"
)

// statementStarts are the keywords at which resynchronisation may stop.
var statementStarts = map[lexer.Kind]bool{
	lexer.Function:  true,
	lexer.Let:       true,
	lexer.Const:     true,
	lexer.Var:       true,
	lexer.Class:     true,
	lexer.Interface: true,
	lexer.Type:      true,
	lexer.If:        true,
	lexer.For:       true,
	lexer.While:     true,
	lexer.Do:        true,
	lexer.Return:    true,
	lexer.Break:     true,
	lexer.Continue:  true,
	lexer.Throw:     true,
	lexer.Try:       true,
	lexer.Switch:    true,
	lexer.Import:    true,
	lexer.Export:    true,
}

// parseStatementRecovering parses one statement. On failure it returns nil
// after skipping to the next statement boundary.
func (p *parser) parseStatementRecovering() (stmt ast.Statement) {
	start := p.pos
	funcDepth, loopDepth := p.funcDepth, p.loopDepth
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			p.funcDepth, p.loopDepth = funcDepth, loopDepth
			p.synchronize(start, true)
			stmt = nil
		}
	}()
	return p.parseStatement()
}

// recoverMember runs parse for one class or interface member, skipping to the
// next member boundary on failure. It reports whether parse succeeded.
func (p *parser) recoverMember(parse func()) (ok bool) {
	start := p.pos
	funcDepth, loopDepth := p.funcDepth, p.loopDepth
	defer func() {
		if r := recover(); r != nil {
			if _, isBailout := r.(bailout); !isBailout {
				panic(r)
			}
			p.funcDepth, p.loopDepth = funcDepth, loopDepth
			p.synchronize(start, false)
			ok = false
		}
	}()
	parse()
	return true
}

// synchronize discards tokens after a failure in the construct that began at
// token index start. It stops after a `;` or after the block the construct
// opened is closed, before a `}` that closes an enclosing block, and (when
// atKeywords is set) before a declaration or statement keyword. At least one
// token is always consumed when the failure made no progress, so callers
// looping over constructs terminate.
func (p *parser) synchronize(start int, atKeywords bool) {
	depth := 0
	for _, tok := range p.tokens[start:p.pos] {
		switch tok.Kind {
		case lexer.LeftBrace:
			depth++
		case lexer.RightBrace:
			if depth > 0 {
				depth--
			}
		}
	}
	for !p.at(lexer.EOF) {
		progressed := p.pos > start
		switch p.cur().Kind {
		case lexer.LeftBrace:
			depth++
			p.advance()
			continue
		case lexer.RightBrace:
			if depth == 0 {
				if !progressed {
					p.advance()
				}
				return
			}
			depth--
			p.advance()
			if depth == 0 {
				return
			}
			continue
		case lexer.Semicolon:
			p.advance()
			if depth == 0 {
				return
			}
			continue
		}
		if depth == 0 && progressed && atKeywords && statementStarts[p.cur().Kind] {
			return
		}
		p.advance()
	}
}
