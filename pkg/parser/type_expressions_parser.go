package parser

import (
	"zygr/frontend-go/pkg/ast"
	"zygr/frontend-go/pkg/diagnostics"
	"zygr/frontend-go/pkg/lexer"
)

var keywordTypes = map[lexer.Kind]bool{
	lexer.NumberType:  true,
	lexer.StringType:  true,
	lexer.BooleanType: true,
	lexer.Null:        true,
	lexer.Undefined:   true,
	lexer.Any:         true,
	lexer.Unknown:     true,
	lexer.Never:       true,
	lexer.Void:        true,
	lexer.BigInt:      true,
	lexer.Symbol:      true,
	lexer.Object:      true,
	lexer.This:        true,
}

// parseType parses a full type: union of intersections of array-suffixed
// primaries, or a function type.
func (p *parser) parseType() ast.TypeExpression {
	if p.isFunctionTypeAhead() {
		return p.parseFunctionType()
	}
	start := p.cur()
	p.accept(lexer.BitwiseOr)
	first := p.parseIntersectionType()
	if !p.at(lexer.BitwiseOr) {
		return first
	}
	members := []ast.TypeExpression{first}
	for p.accept(lexer.BitwiseOr) {
		members = append(members, p.parseIntersectionType())
	}
	return finish(p, ast.NewUnionType(members), start)
}

func (p *parser) parseIntersectionType() ast.TypeExpression {
	start := p.cur()
	p.accept(lexer.BitwiseAnd)
	first := p.parseArrayTypeSuffix()
	if !p.at(lexer.BitwiseAnd) {
		return first
	}
	members := []ast.TypeExpression{first}
	for p.accept(lexer.BitwiseAnd) {
		members = append(members, p.parseArrayTypeSuffix())
	}
	return finish(p, ast.NewIntersectionType(members), start)
}

func (p *parser) parseArrayTypeSuffix() ast.TypeExpression {
	start := p.cur()
	typ := p.parsePrimaryType()
	for p.at(lexer.LeftBracket) && p.peek(1).Kind == lexer.RightBracket && !p.newlineBefore() {
		p.advance()
		p.advance()
		typ = finish(p, ast.NewArrayType(typ), start)
	}
	return typ
}

func (p *parser) parsePrimaryType() ast.TypeExpression {
	tok := p.cur()
	switch {
	case keywordTypes[tok.Kind]:
		p.advance()
		return finish(p, ast.NewKeywordType(tok.Text), tok)
	case tok.Kind == lexer.StringLiteral:
		p.advance()
		lit := finish(p, ast.NewLiteral(ast.LiteralString, cookString(tok.Text), tok.Text), tok)
		return finish(p, ast.NewLiteralType(lit), tok)
	case tok.Kind == lexer.NumberLiteral:
		p.advance()
		lit := finish(p, ast.NewLiteral(ast.LiteralNumber, normalizeNumber(tok.Text), tok.Text), tok)
		return finish(p, ast.NewLiteralType(lit), tok)
	case tok.Kind == lexer.BigIntLiteral:
		p.advance()
		lit := finish(p, ast.NewLiteral(ast.LiteralBigInt, normalizeBigInt(tok.Text), tok.Text), tok)
		return finish(p, ast.NewLiteralType(lit), tok)
	case tok.Kind == lexer.Minus && p.peek(1).Kind == lexer.NumberLiteral:
		p.advance()
		num := p.advance()
		value := normalizeNumber(num.Text)
		if value != "0" {
			value = "-" + value
		}
		lit := finish(p, ast.NewLiteral(ast.LiteralNumber, value, "-"+num.Text), tok)
		return finish(p, ast.NewLiteralType(lit), tok)
	case tok.Kind == lexer.True || tok.Kind == lexer.False:
		p.advance()
		lit := finish(p, ast.NewLiteral(ast.LiteralBoolean, tok.Text, tok.Text), tok)
		return finish(p, ast.NewLiteralType(lit), tok)
	case tok.Kind == lexer.LeftParen:
		p.advance()
		inner := p.parseType()
		p.expect(lexer.RightParen)
		return inner
	case tok.Kind == lexer.LeftBracket:
		return p.parseTupleType()
	case tok.Kind == lexer.LeftBrace:
		start := p.cur()
		members := p.parseTypeMembers()
		return finish(p, ast.NewObjectType(members), start)
	case identifierLike[tok.Kind]:
		return p.parseTypeReference()
	}
	p.fail(diagnostics.UnexpectedToken{Found: describe(tok), Expected: "type"})
	return nil
}

// parseTypeReference parses `Name`, `A.B.C` and `Name<Args>`.
func (p *parser) parseTypeReference() *ast.TypeReference {
	start := p.cur()
	name := p.parseBindingIdentifier()
	ref := ast.NewTypeReference(name, nil)
	for p.at(lexer.Dot) && isPropertyNameToken(p.peek(1)) {
		p.advance()
		ref.Path = append(ref.Path, p.advance().Text)
	}
	if p.at(lexer.Less) && !p.newlineBefore() {
		ref.TypeArguments = p.parseTypeArguments()
	}
	return finish(p, ref, start)
}

func (p *parser) parseTypeArguments() []ast.TypeExpression {
	p.expect(lexer.Less)
	args := make([]ast.TypeExpression, 0, 1)
	for !p.at(lexer.Greater) {
		args = append(args, p.parseType())
		if !p.accept(lexer.Comma) {
			break
		}
	}
	p.expect(lexer.Greater)
	return args
}

func (p *parser) parseTupleType() ast.TypeExpression {
	start := p.expect(lexer.LeftBracket)
	elements := make([]ast.TypeExpression, 0)
	for !p.at(lexer.RightBracket) {
		elements = append(elements, p.parseType())
		if !p.accept(lexer.Comma) {
			break
		}
	}
	p.expect(lexer.RightBracket)
	return finish(p, ast.NewTupleType(elements), start)
}

// isFunctionTypeAhead reports whether a function type starts at the cursor:
// `(params) => T` or `<T>(params) => T`.
func (p *parser) isFunctionTypeAhead() bool {
	open := p.pos
	if p.at(lexer.Less) {
		end := p.matchingAngle(p.pos)
		if end < 0 {
			return false
		}
		open = end + 1
	}
	if p.tokenAt(open).Kind != lexer.LeftParen {
		return false
	}
	closeIdx := p.matchingClose(open)
	return closeIdx > 0 && p.tokenAt(closeIdx+1).Kind == lexer.Arrow
}

func (p *parser) parseFunctionType() ast.TypeExpression {
	start := p.cur()
	typeParams := p.parseTypeParametersOpt()
	params := p.parseParameterList()
	p.expect(lexer.Arrow)
	returnType := p.parseType()
	fn := ast.NewFunctionType(params, returnType)
	fn.TypeParams = typeParams
	return finish(p, fn, start)
}

// parseTypeMembers parses `{ members }` for interfaces and object type
// literals. Members are separated by `;`, `,` or line breaks.
func (p *parser) parseTypeMembers() []ast.TypeMember {
	p.expect(lexer.LeftBrace)
	members := make([]ast.TypeMember, 0)
	for !p.at(lexer.RightBrace, lexer.EOF) {
		if p.accept(lexer.Semicolon) || p.accept(lexer.Comma) {
			continue
		}
		var member ast.TypeMember
		if p.recoverMember(func() { member = p.parseTypeMember() }) {
			members = append(members, member)
		}
	}
	p.expect(lexer.RightBrace)
	return members
}

func (p *parser) parseTypeMember() ast.TypeMember {
	start := p.cur()
	readonly := false
	if p.at(lexer.Readonly) && startsMemberName(p.peek(1)) && p.peek(1).Row == start.Row {
		p.advance()
		readonly = true
	}
	if p.at(lexer.LeftBracket) {
		p.fail(diagnostics.InvalidSyntax{Reason: "index signatures are not supported"})
	}
	if p.at(lexer.LeftParen) {
		p.fail(diagnostics.InvalidSyntax{Reason: "call signatures are not supported"})
	}
	key := p.parseMemberKey()
	optional := p.accept(lexer.QuestionMark)

	var member ast.TypeMember
	if p.at(lexer.LeftParen, lexer.Less) {
		typeParams := p.parseTypeParametersOpt()
		params := p.parseParameterList()
		method := ast.NewMethodSignature(key, params, p.parseReturnTypeOpt())
		method.TypeParams = typeParams
		method.Optional = optional
		member = finish(p, method, start)
	} else {
		var annotation ast.TypeExpression
		if p.accept(lexer.Colon) {
			annotation = p.parseType()
		}
		prop := ast.NewPropertySignature(key, annotation, optional)
		prop.Readonly = readonly
		member = finish(p, prop, start)
	}
	if !p.at(lexer.Semicolon, lexer.Comma, lexer.RightBrace) && !p.newlineBefore() {
		p.fail(diagnostics.UnexpectedToken{Found: describe(p.cur()), Expected: "';'"})
	}
	return member
}
