package parser

import (
	"zygr/frontend-go/pkg/ast"
	"zygr/frontend-go/pkg/diagnostics"
	"zygr/frontend-go/pkg/lexer"
)

func (p *parser) parseStatement() ast.Statement {
	tok := p.cur()
	switch tok.Kind {
	case lexer.Function:
		return p.parseFunctionDeclaration(tok, false, false)
	case lexer.Async:
		if p.peek(1).Kind == lexer.Function && p.peek(1).Row == tok.Row {
			p.advance()
			return p.parseFunctionDeclaration(tok, true, false)
		}
	case lexer.Let, lexer.Const, lexer.Var:
		decl := p.parseVariableDeclaration()
		p.consumeSemicolon()
		return finish(p, decl, tok)
	case lexer.Class:
		return p.parseClassDeclaration(tok, false)
	case lexer.Identifier:
		if tok.Text == "abstract" && p.peek(1).Kind == lexer.Class {
			p.advance()
			return p.parseClassDeclaration(tok, true)
		}
	case lexer.Interface:
		if identifierLike[p.peek(1).Kind] {
			return p.parseInterfaceDeclaration()
		}
	case lexer.Type:
		if identifierLike[p.peek(1).Kind] {
			return p.parseTypeAliasDeclaration()
		}
	case lexer.Declare:
		if next := p.peek(1).Kind; next == lexer.Function || next == lexer.Let || next == lexer.Const ||
			next == lexer.Var || next == lexer.Class || next == lexer.Interface || next == lexer.Type {
			p.advance()
			if next == lexer.Function {
				return p.parseFunctionDeclaration(tok, false, true)
			}
			return p.parseStatement()
		}
	case lexer.Export:
		p.advance()
		if p.accept(lexer.Default) {
			return p.parseExpressionStatement(tok)
		}
		return p.parseStatement()
	case lexer.LeftBrace:
		return p.parseBlock()
	case lexer.Semicolon:
		p.advance()
		return finish(p, ast.NewEmptyStatement(), tok)
	case lexer.If:
		return p.parseIfStatement()
	case lexer.For:
		return p.parseForStatement()
	case lexer.While:
		return p.parseWhileStatement()
	case lexer.Do:
		return p.parseDoWhileStatement()
	case lexer.Return:
		return p.parseReturnStatement()
	case lexer.Break, lexer.Continue:
		return p.parseJumpStatement()
	case lexer.Throw:
		return p.parseThrowStatement()
	case lexer.Try:
		return p.parseTryStatement()
	case lexer.Switch, lexer.Import:
		p.fail(diagnostics.InvalidSyntax{Reason: "'" + tok.Text + "' statements are not supported"})
	}
	return p.parseExpressionStatement(tok)
}

func (p *parser) parseExpressionStatement(start lexer.Token) ast.Statement {
	expr := p.parseExpression()
	p.consumeSemicolon()
	return finish(p, ast.NewExpressionStatement(expr), start)
}

// parseBlock parses `{ statements }`, recovering per statement.
func (p *parser) parseBlock() *ast.BlockStatement {
	start := p.expect(lexer.LeftBrace)
	body := make([]ast.Statement, 0)
	for !p.at(lexer.RightBrace, lexer.EOF) {
		if stmt := p.parseStatementRecovering(); stmt != nil {
			body = append(body, stmt)
		}
	}
	p.expect(lexer.RightBrace)
	return finish(p, ast.NewBlockStatement(body), start)
}

// parseFunctionBody parses a block in a fresh function context: `return` is
// allowed and enclosing loops are no longer targets for break/continue.
func (p *parser) parseFunctionBody() *ast.BlockStatement {
	loopDepth := p.loopDepth
	p.funcDepth++
	p.loopDepth = 0
	body := p.parseBlock()
	p.funcDepth--
	p.loopDepth = loopDepth
	return body
}

func (p *parser) parseLoopBody() ast.Statement {
	p.loopDepth++
	body := p.parseStatement()
	p.loopDepth--
	return body
}

func (p *parser) parseParenthesizedCondition() ast.Expression {
	p.expect(lexer.LeftParen)
	test := p.parseExpression()
	p.expect(lexer.RightParen)
	return test
}

func (p *parser) parseIfStatement() ast.Statement {
	start := p.expect(lexer.If)
	test := p.parseParenthesizedCondition()
	consequent := p.parseStatement()
	var alternate ast.Statement
	if p.accept(lexer.Else) {
		alternate = p.parseStatement()
	}
	return finish(p, ast.NewIfStatement(test, consequent, alternate), start)
}

func (p *parser) parseForStatement() ast.Statement {
	start := p.expect(lexer.For)
	p.expect(lexer.LeftParen)

	var init ast.Statement
	switch {
	case p.at(lexer.Semicolon):
	case p.at(lexer.Let, lexer.Const, lexer.Var):
		initStart := p.cur()
		init = finish(p, p.parseVariableDeclaration(), initStart)
	default:
		initStart := p.cur()
		init = finish(p, ast.NewExpressionStatement(p.parseExpression()), initStart)
	}
	if p.at(lexer.Of, lexer.In) {
		p.fail(diagnostics.InvalidSyntax{Reason: "for-" + p.cur().Text + " loops are not supported"})
	}
	p.expect(lexer.Semicolon)

	var test ast.Expression
	if !p.at(lexer.Semicolon) {
		test = p.parseExpression()
	}
	p.expect(lexer.Semicolon)

	var update ast.Expression
	if !p.at(lexer.RightParen) {
		update = p.parseExpression()
	}
	p.expect(lexer.RightParen)

	body := p.parseLoopBody()
	return finish(p, ast.NewForStatement(init, test, update, body), start)
}

func (p *parser) parseWhileStatement() ast.Statement {
	start := p.expect(lexer.While)
	test := p.parseParenthesizedCondition()
	body := p.parseLoopBody()
	return finish(p, ast.NewWhileStatement(test, body), start)
}

func (p *parser) parseDoWhileStatement() ast.Statement {
	start := p.expect(lexer.Do)
	body := p.parseLoopBody()
	p.expect(lexer.While)
	test := p.parseParenthesizedCondition()
	p.accept(lexer.Semicolon)
	return finish(p, ast.NewDoWhileStatement(body, test), start)
}

func (p *parser) parseReturnStatement() ast.Statement {
	start := p.expect(lexer.Return)
	if p.funcDepth == 0 {
		p.invalid(start, "'return' outside of a function")
	}
	var argument ast.Expression
	if !p.at(lexer.Semicolon, lexer.RightBrace, lexer.EOF) && !p.newlineBefore() {
		argument = p.parseExpression()
	}
	p.consumeSemicolon()
	return finish(p, ast.NewReturnStatement(argument), start)
}

func (p *parser) parseJumpStatement() ast.Statement {
	start := p.advance()
	if p.loopDepth == 0 {
		p.invalid(start, "'%s' outside of a loop", start.Text)
	}
	p.consumeSemicolon()
	if start.Kind == lexer.Break {
		return finish(p, ast.NewBreakStatement(), start)
	}
	return finish(p, ast.NewContinueStatement(), start)
}

func (p *parser) parseThrowStatement() ast.Statement {
	start := p.expect(lexer.Throw)
	if p.newlineBefore() {
		p.fail(diagnostics.InvalidSyntax{Reason: "line break is not allowed after 'throw'"})
	}
	argument := p.parseExpression()
	p.consumeSemicolon()
	return finish(p, ast.NewThrowStatement(argument), start)
}

func (p *parser) parseTryStatement() ast.Statement {
	start := p.expect(lexer.Try)
	block := p.parseBlock()

	var handler *ast.CatchClause
	if p.at(lexer.Catch) {
		catchStart := p.advance()
		var param *ast.Identifier
		var paramType ast.TypeExpression
		if p.accept(lexer.LeftParen) {
			param = p.parseBindingIdentifier()
			if p.accept(lexer.Colon) {
				paramType = p.parseType()
			}
			p.expect(lexer.RightParen)
		}
		body := p.parseBlock()
		handler = ast.NewCatchClause(param, body)
		handler.ParamType = paramType
		finish(p, handler, catchStart)
	}

	var finalizer *ast.BlockStatement
	if p.accept(lexer.Finally) {
		finalizer = p.parseBlock()
	}
	if handler == nil && finalizer == nil {
		p.invalid(p.cur(), "'try' requires a 'catch' or 'finally' clause")
	}
	return finish(p, ast.NewTryStatement(block, handler, finalizer), start)
}
