package parser

import (
	"zygr/frontend-go/pkg/ast"
	"zygr/frontend-go/pkg/diagnostics"
	"zygr/frontend-go/pkg/lexer"
)

// Binding powers, lowest first.
const (
	precNone = iota
	precLogicalOr
	precNullish
	precLogicalAnd
	precBitwiseOr
	precBitwiseXor
	precBitwiseAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
	precExponent
)

var binaryPrecedence = map[lexer.Kind]int{
	lexer.PipePipe:           precLogicalOr,
	lexer.NullishCoalescing:  precNullish,
	lexer.AmpersandAmpersand: precLogicalAnd,
	lexer.BitwiseOr:          precBitwiseOr,
	lexer.BitwiseXor:         precBitwiseXor,
	lexer.BitwiseAnd:         precBitwiseAnd,
	lexer.EqualEqual:         precEquality,
	lexer.TripleEqual:        precEquality,
	lexer.BangEqual:          precEquality,
	lexer.NotDoubleEqual:     precEquality,
	lexer.Less:               precRelational,
	lexer.LessEqual:          precRelational,
	lexer.Greater:            precRelational,
	lexer.GreaterEqual:       precRelational,
	lexer.Instanceof:         precRelational,
	lexer.In:                 precRelational,
	lexer.Plus:               precAdditive,
	lexer.Minus:              precAdditive,
	lexer.Star:               precMultiplicative,
	lexer.Slash:              precMultiplicative,
	lexer.Modulo:             precMultiplicative,
	lexer.Power:              precExponent,
}

var assignmentOperators = map[lexer.Kind]bool{
	lexer.Equal:          true,
	lexer.PlusEqual:      true,
	lexer.MinusEqual:     true,
	lexer.StarEqual:      true,
	lexer.SlashEqual:     true,
	lexer.ModuloEqual:    true,
	lexer.PowerEqual:     true,
	lexer.AmpersandEqual: true,
	lexer.PipeEqual:      true,
	lexer.CaretEqual:     true,
	lexer.AndAndEqual:    true,
	lexer.OrOrEqual:      true,
	lexer.NullishEqual:   true,
}

var unaryOperators = map[lexer.Kind]bool{
	lexer.Bang:       true,
	lexer.Minus:      true,
	lexer.Plus:       true,
	lexer.BitwiseNot: true,
	lexer.Typeof:     true,
	lexer.Void:       true,
	lexer.Delete:     true,
	lexer.Await:      true,
}

func (p *parser) parseExpression() ast.Expression {
	return p.parseAssignment()
}

func (p *parser) parseAssignment() ast.Expression {
	if p.isArrowAhead() {
		return p.parseArrowFunction()
	}
	start := p.cur()
	left := p.parseConditional()
	if !assignmentOperators[p.cur().Kind] {
		return left
	}
	op := p.advance()
	if !isAssignmentTarget(left) {
		p.invalid(start, "invalid assignment target")
	}
	right := p.parseAssignment()
	return finish(p, ast.NewAssignmentExpression(op.Text, left, right), start)
}

func isAssignmentTarget(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.Identifier:
		return true
	case *ast.MemberExpression:
		return !e.Optional
	}
	return false
}

func (p *parser) parseConditional() ast.Expression {
	start := p.cur()
	test := p.parseBinary(precLogicalOr)
	if !p.accept(lexer.QuestionMark) {
		return test
	}
	consequent := p.parseAssignment()
	p.expect(lexer.Colon)
	alternate := p.parseAssignment()
	return finish(p, ast.NewConditionalExpression(test, consequent, alternate), start)
}

// parseBinary implements precedence climbing over binaryPrecedence. `**` is
// right-associative; every other operator associates to the left. `as`
// assertions bind like relational operators.
func (p *parser) parseBinary(minPrec int) ast.Expression {
	start := p.cur()
	left := p.parseUnary()
	for {
		tok := p.cur()
		if tok.Kind == lexer.As && !p.newlineBefore() {
			if precRelational < minPrec {
				return left
			}
			p.advance()
			typ := p.parseType()
			left = finish(p, ast.NewAsExpression(left, typ), start)
			continue
		}
		prec, ok := binaryPrecedence[tok.Kind]
		if !ok || prec < minPrec {
			return left
		}
		p.advance()
		next := prec + 1
		if tok.Kind == lexer.Power {
			next = prec
		}
		right := p.parseBinary(next)
		switch tok.Kind {
		case lexer.AmpersandAmpersand, lexer.PipePipe, lexer.NullishCoalescing:
			left = finish(p, ast.NewLogicalExpression(tok.Text, left, right), start)
		default:
			left = finish(p, ast.NewBinaryExpression(tok.Text, left, right), start)
		}
	}
}

func (p *parser) parseUnary() ast.Expression {
	start := p.cur()
	switch {
	case unaryOperators[start.Kind]:
		p.advance()
		argument := p.parseUnary()
		return finish(p, ast.NewUnaryExpression(start.Text, argument), start)
	case start.Kind == lexer.Increment || start.Kind == lexer.Decrement:
		p.advance()
		argument := p.parseUnary()
		if !isAssignmentTarget(argument) {
			p.invalid(start, "invalid operand for '%s'", start.Text)
		}
		return finish(p, ast.NewUpdateExpression(start.Text, true, argument), start)
	}
	expr := p.parseLeftHandSide()
	if p.at(lexer.Increment, lexer.Decrement) && !p.newlineBefore() {
		op := p.advance()
		if !isAssignmentTarget(expr) {
			p.invalid(op, "invalid operand for '%s'", op.Text)
		}
		return finish(p, ast.NewUpdateExpression(op.Text, false, expr), start)
	}
	return expr
}

// parseLeftHandSide parses a primary or `new` expression followed by any
// chain of calls, member accesses and optional-chain links.
func (p *parser) parseLeftHandSide() ast.Expression {
	start := p.cur()
	var expr ast.Expression
	if p.at(lexer.New) {
		expr = p.parseNewExpression()
	} else {
		expr = p.parsePrimary()
	}
	for {
		switch p.cur().Kind {
		case lexer.Dot:
			p.advance()
			property := p.parsePropertyIdentifier()
			expr = finish(p, ast.NewMemberExpression(expr, property, false), start)
		case lexer.OptionalChain:
			p.advance()
			switch p.cur().Kind {
			case lexer.LeftParen:
				call := ast.NewCallExpression(expr, p.parseArguments())
				call.Optional = true
				expr = finish(p, call, start)
			case lexer.LeftBracket:
				p.advance()
				index := p.parseExpression()
				p.expect(lexer.RightBracket)
				member := ast.NewMemberExpression(expr, index, true)
				member.Optional = true
				expr = finish(p, member, start)
			default:
				member := ast.NewMemberExpression(expr, p.parsePropertyIdentifier(), false)
				member.Optional = true
				expr = finish(p, member, start)
			}
		case lexer.LeftBracket:
			p.advance()
			index := p.parseExpression()
			p.expect(lexer.RightBracket)
			expr = finish(p, ast.NewMemberExpression(expr, index, true), start)
		case lexer.LeftParen:
			expr = finish(p, ast.NewCallExpression(expr, p.parseArguments()), start)
		case lexer.Less:
			if !p.isCallTypeArgumentsAhead() {
				return expr
			}
			typeArgs := p.parseTypeArguments()
			call := ast.NewCallExpression(expr, p.parseArguments())
			call.TypeArguments = typeArgs
			expr = finish(p, call, start)
		default:
			return expr
		}
	}
}

func (p *parser) parseNewExpression() ast.Expression {
	start := p.expect(lexer.New)
	var callee ast.Expression
	if p.at(lexer.New) {
		callee = p.parseNewExpression()
	} else {
		callee = p.parsePrimary()
	}
	for {
		if p.accept(lexer.Dot) {
			callee = finish(p, ast.NewMemberExpression(callee, p.parsePropertyIdentifier(), false), start)
			continue
		}
		if p.at(lexer.LeftBracket) {
			p.advance()
			index := p.parseExpression()
			p.expect(lexer.RightBracket)
			callee = finish(p, ast.NewMemberExpression(callee, index, true), start)
			continue
		}
		break
	}
	var typeArgs []ast.TypeExpression
	if p.at(lexer.Less) {
		typeArgs = p.parseTypeArguments()
	}
	arguments := make([]ast.Expression, 0)
	if p.at(lexer.LeftParen) {
		arguments = p.parseArguments()
	}
	expr := ast.NewNewExpression(callee, arguments)
	expr.TypeArguments = typeArgs
	return finish(p, expr, start)
}

func (p *parser) parseArguments() []ast.Expression {
	p.expect(lexer.LeftParen)
	args := make([]ast.Expression, 0)
	for !p.at(lexer.RightParen) {
		args = append(args, p.parseSpreadOrAssignment())
		if !p.accept(lexer.Comma) {
			break
		}
	}
	p.expect(lexer.RightParen)
	return args
}

func (p *parser) parseSpreadOrAssignment() ast.Expression {
	if p.at(lexer.Spread) {
		start := p.advance()
		argument := p.parseAssignment()
		return finish(p, ast.NewSpreadElement(argument), start)
	}
	return p.parseAssignment()
}

func (p *parser) parsePrimary() ast.Expression {
	tok := p.cur()
	switch tok.Kind {
	case lexer.NumberLiteral:
		p.advance()
		return finish(p, ast.NewLiteral(ast.LiteralNumber, normalizeNumber(tok.Text), tok.Text), tok)
	case lexer.BigIntLiteral:
		p.advance()
		return finish(p, ast.NewLiteral(ast.LiteralBigInt, normalizeBigInt(tok.Text), tok.Text), tok)
	case lexer.StringLiteral:
		p.advance()
		return finish(p, ast.NewLiteral(ast.LiteralString, cookString(tok.Text), tok.Text), tok)
	case lexer.TemplateLiteral:
		p.advance()
		return p.parseTemplate(tok)
	case lexer.True, lexer.False:
		p.advance()
		return finish(p, ast.NewLiteral(ast.LiteralBoolean, tok.Text, tok.Text), tok)
	case lexer.Null:
		p.advance()
		return finish(p, ast.NewLiteral(ast.LiteralNull, "null", tok.Text), tok)
	case lexer.Undefined:
		p.advance()
		return finish(p, ast.NewLiteral(ast.LiteralUndefined, "undefined", tok.Text), tok)
	case lexer.This:
		p.advance()
		return finish(p, ast.NewThisExpression(), tok)
	case lexer.Super:
		p.advance()
		return finish(p, ast.NewSuperExpression(), tok)
	case lexer.LeftParen:
		p.advance()
		expr := p.parseExpression()
		p.expect(lexer.RightParen)
		return expr
	case lexer.LeftBracket:
		return p.parseArrayLiteral()
	case lexer.LeftBrace:
		return p.parseObjectLiteral()
	case lexer.Function:
		return p.parseFunctionExpression(tok, false)
	case lexer.Async:
		if p.peek(1).Kind == lexer.Function && p.peek(1).Row == tok.Row {
			p.advance()
			return p.parseFunctionExpression(tok, true)
		}
	}
	if p.atIdentifier() {
		return p.identifierFrom(p.advance())
	}
	p.fail(diagnostics.UnexpectedToken{Found: describe(tok), Expected: "expression"})
	return nil
}

func (p *parser) parseFunctionExpression(start lexer.Token, async bool) ast.Expression {
	p.expect(lexer.Function)
	generator := p.accept(lexer.Star)
	var name *ast.Identifier
	if p.atIdentifier() {
		name = p.identifierFrom(p.advance())
	}
	typeParams := p.parseTypeParametersOpt()
	params := p.parseParameterList()
	returnType := p.parseReturnTypeOpt()
	body := p.parseFunctionBody()
	fn := ast.NewFunctionExpression(name, params, returnType, body)
	fn.TypeParams = typeParams
	fn.Async = async
	fn.Generator = generator
	return finish(p, fn, start)
}

// Arrow functions

// isArrowAhead decides, without consuming, whether an arrow function starts
// at the cursor: `x =>`, `(params) =>`, `(params): T =>`, `<T>(params) =>`,
// each optionally prefixed by `async`.
func (p *parser) isArrowAhead() bool {
	i := p.pos
	if tok := p.tokenAt(i); tok.Kind == lexer.Async && p.tokenAt(i+1).Row == tok.Row {
		next := p.tokenAt(i + 1).Kind
		if next == lexer.LeftParen || next == lexer.Less || (identifierLike[next] && p.tokenAt(i+2).Kind == lexer.Arrow) {
			i++
		}
	}
	tok := p.tokenAt(i)
	switch {
	case identifierLike[tok.Kind]:
		return p.tokenAt(i+1).Kind == lexer.Arrow
	case tok.Kind == lexer.Less:
		end := p.matchingAngle(i)
		if end < 0 || p.tokenAt(end+1).Kind != lexer.LeftParen {
			return false
		}
		return p.parenFollowedByArrow(end + 1)
	case tok.Kind == lexer.LeftParen:
		return p.parenFollowedByArrow(i)
	}
	return false
}

// parenFollowedByArrow reports whether the parenthesised group at open is a
// parameter list: directly followed by `=>`, or by `:` and a return type that
// reaches `=>` before the enclosing expression could end.
func (p *parser) parenFollowedByArrow(open int) bool {
	closeIdx := p.matchingClose(open)
	if closeIdx < 0 {
		return false
	}
	next := p.tokenAt(closeIdx + 1)
	if next.Kind == lexer.Arrow {
		return true
	}
	if next.Kind != lexer.Colon {
		return false
	}
	depth := 0
	for i := closeIdx + 2; i < len(p.tokens); i++ {
		switch p.tokens[i].Kind {
		case lexer.LeftParen, lexer.LeftBracket, lexer.LeftBrace, lexer.Less:
			depth++
		case lexer.RightParen, lexer.RightBracket, lexer.RightBrace, lexer.Greater:
			depth--
			if depth < 0 {
				return false
			}
		case lexer.Arrow:
			if depth == 0 {
				return true
			}
		case lexer.Semicolon, lexer.Comma, lexer.Equal, lexer.EOF:
			if depth == 0 {
				return false
			}
		}
	}
	return false
}

// matchingAngle returns the index of the `>` closing the `<` at open, or -1
// when the tokens in between cannot form a type argument or parameter list.
func (p *parser) matchingAngle(open int) int {
	depth := 0
	for i := open; i < len(p.tokens); i++ {
		tok := p.tokens[i]
		switch tok.Kind {
		case lexer.Less:
			depth++
		case lexer.Greater:
			depth--
			if depth == 0 {
				return i
			}
		case lexer.Comma, lexer.Dot, lexer.LeftBracket, lexer.RightBracket, lexer.BitwiseOr, lexer.BitwiseAnd,
			lexer.LeftBrace, lexer.RightBrace, lexer.Colon, lexer.Semicolon, lexer.QuestionMark,
			lexer.LeftParen, lexer.RightParen, lexer.Arrow, lexer.StringLiteral, lexer.NumberLiteral,
			lexer.Extends, lexer.Equal, lexer.Typeof, lexer.Void, lexer.Null, lexer.Undefined,
			lexer.True, lexer.False, lexer.This:
		default:
			if !identifierLike[tok.Kind] {
				return -1
			}
		}
	}
	return -1
}

// isCallTypeArgumentsAhead distinguishes `f<T>(x)` from a comparison.
func (p *parser) isCallTypeArgumentsAhead() bool {
	end := p.matchingAngle(p.pos)
	return end > 0 && p.tokenAt(end+1).Kind == lexer.LeftParen
}

func (p *parser) parseArrowFunction() ast.Expression {
	start := p.cur()
	async := false
	if p.at(lexer.Async) && p.peek(1).Kind != lexer.Arrow {
		p.advance()
		async = true
	}
	typeParams := p.parseTypeParametersOpt()
	var params []*ast.Parameter
	if p.atIdentifier() {
		nameTok := p.advance()
		param := ast.NewParameter(p.identifierFrom(nameTok), nil)
		params = []*ast.Parameter{finish(p, param, nameTok)}
	} else {
		params = p.parseParameterList()
	}
	returnType := p.parseReturnTypeOpt()
	p.expect(lexer.Arrow)

	fn := ast.NewArrowFunctionExpression(params, returnType, nil, nil)
	fn.TypeParams = typeParams
	fn.Async = async
	if p.at(lexer.LeftBrace) {
		fn.Body = p.parseFunctionBody()
	} else {
		loopDepth := p.loopDepth
		p.funcDepth++
		p.loopDepth = 0
		fn.ExpressionBody = p.parseAssignment()
		p.funcDepth--
		p.loopDepth = loopDepth
	}
	return finish(p, fn, start)
}
