package parser

import (
	"zygr/frontend-go/pkg/ast"
	"zygr/frontend-go/pkg/diagnostics"
	"zygr/frontend-go/pkg/lexer"
)

// parseFunctionDeclaration parses from the `function` keyword; start is the
// first token of the declaration (`async` or `declare` when present). Ambient
// declarations have no body.
func (p *parser) parseFunctionDeclaration(start lexer.Token, async, ambient bool) ast.Statement {
	p.expect(lexer.Function)
	generator := p.accept(lexer.Star)
	name := p.parseBindingIdentifier()
	typeParams := p.parseTypeParametersOpt()
	params := p.parseParameterList()
	returnType := p.parseReturnTypeOpt()

	var body *ast.BlockStatement
	if ambient {
		p.consumeSemicolon()
	} else {
		body = p.parseFunctionBody()
	}
	decl := ast.NewFunctionDeclaration(name, params, returnType, body)
	decl.TypeParams = typeParams
	decl.Async = async
	decl.Generator = generator
	return finish(p, decl, start)
}

// parseVariableDeclaration parses `let|const|var` and its declarators without
// the terminating semicolon, so it can serve as a for-loop initialiser.
// A const declarator without an initializer is left for the type checker.
func (p *parser) parseVariableDeclaration() *ast.VariableDeclaration {
	start := p.advance()
	kind := ast.VariableKind(start.Text)
	declarators := make([]*ast.VariableDeclarator, 0, 1)
	for {
		declStart := p.cur()
		if p.at(lexer.LeftBrace, lexer.LeftBracket) {
			p.fail(diagnostics.InvalidSyntax{Reason: "destructuring declarations are not supported"})
		}
		name := p.parseBindingIdentifier()
		var annotation ast.TypeExpression
		if p.accept(lexer.Colon) {
			annotation = p.parseType()
		}
		var init ast.Expression
		if p.accept(lexer.Equal) {
			init = p.parseAssignment()
		}
		declarators = append(declarators, finish(p, ast.NewVariableDeclarator(name, annotation, init), declStart))
		if !p.accept(lexer.Comma) {
			break
		}
	}
	return finish(p, ast.NewVariableDeclaration(kind, declarators), start)
}

func (p *parser) parseReturnTypeOpt() ast.TypeExpression {
	if p.accept(lexer.Colon) {
		return p.parseType()
	}
	return nil
}

// parseParameterList parses `( params )`. Accessibility and readonly
// modifiers are accepted on every parameter; callers reject them outside
// constructors.
func (p *parser) parseParameterList() []*ast.Parameter {
	p.expect(lexer.LeftParen)
	params := make([]*ast.Parameter, 0)
	for !p.at(lexer.RightParen) {
		param := p.parseParameter()
		params = append(params, param)
		if param.Rest && !p.at(lexer.RightParen) {
			p.invalid(p.cur(), "a rest parameter must be last in a parameter list")
		}
		if !p.accept(lexer.Comma) {
			break
		}
	}
	p.expect(lexer.RightParen)
	return params
}

func (p *parser) parseParameter() *ast.Parameter {
	start := p.cur()
	var mods ast.Modifiers
modifiers:
	for {
		next := p.peek(1)
		if !identifierLike[next.Kind] && next.Kind != lexer.Spread {
			break
		}
		switch p.cur().Kind {
		case lexer.Public:
			mods.Access = ast.AccessPublic
		case lexer.Private:
			mods.Access = ast.AccessPrivate
		case lexer.Protected:
			mods.Access = ast.AccessProtected
		case lexer.Readonly:
			mods.Readonly = true
		default:
			break modifiers
		}
		p.advance()
	}
	rest := p.accept(lexer.Spread)
	if p.at(lexer.LeftBrace, lexer.LeftBracket) {
		p.fail(diagnostics.InvalidSyntax{Reason: "destructuring parameters are not supported"})
	}
	var id *ast.Identifier
	if p.at(lexer.This) {
		id = p.identifierFrom(p.advance())
	} else {
		id = p.parseBindingIdentifier()
	}
	param := ast.NewParameter(id, nil)
	param.Rest = rest
	param.Modifiers = mods
	param.Optional = p.accept(lexer.QuestionMark)
	if p.accept(lexer.Colon) {
		param.TypeAnnotation = p.parseType()
	}
	if p.accept(lexer.Equal) {
		param.Default = p.parseAssignment()
	}
	return finish(p, param, start)
}

func (p *parser) parseTypeParametersOpt() []*ast.TypeParameter {
	if !p.at(lexer.Less) {
		return nil
	}
	p.advance()
	params := make([]*ast.TypeParameter, 0, 1)
	for !p.at(lexer.Greater) {
		start := p.cur()
		name := p.parseBindingIdentifier()
		param := ast.NewTypeParameter(name, nil)
		if p.accept(lexer.Extends) {
			param.Constraint = p.parseType()
		}
		if p.accept(lexer.Equal) {
			param.Default = p.parseType()
		}
		params = append(params, finish(p, param, start))
		if !p.accept(lexer.Comma) {
			break
		}
	}
	p.expect(lexer.Greater)
	return params
}

// Classes

func (p *parser) parseClassDeclaration(start lexer.Token, abstract bool) ast.Statement {
	p.expect(lexer.Class)
	name := p.parseBindingIdentifier()
	decl := ast.NewClassDeclaration(name, nil, nil, nil)
	decl.Abstract = abstract
	decl.TypeParams = p.parseTypeParametersOpt()
	if p.accept(lexer.Extends) {
		decl.SuperClass = p.parseBindingIdentifier()
		if p.at(lexer.Less) {
			decl.SuperTypeArgs = p.parseTypeArguments()
		}
	}
	if p.accept(lexer.Implements) {
		for {
			decl.Implements = append(decl.Implements, p.parseTypeReference())
			if !p.accept(lexer.Comma) {
				break
			}
		}
	}
	p.expect(lexer.LeftBrace)
	members := make([]ast.ClassMember, 0)
	for !p.at(lexer.RightBrace, lexer.EOF) {
		if p.accept(lexer.Semicolon) {
			continue
		}
		var member ast.ClassMember
		if p.recoverMember(func() { member = p.parseClassMember() }) {
			members = append(members, member)
		}
	}
	p.expect(lexer.RightBrace)
	decl.Members = members
	return finish(p, decl, start)
}

// startsMemberName reports whether tok can begin a member name, used to tell
// a modifier keyword from a member that is itself named `static`, `get`, ...
func startsMemberName(tok lexer.Token) bool {
	switch tok.Kind {
	case lexer.StringLiteral, lexer.NumberLiteral, lexer.LeftBracket, lexer.Hash, lexer.Star:
		return true
	}
	return isPropertyNameToken(tok)
}

func (p *parser) parseClassMember() ast.ClassMember {
	start := p.cur()
	var mods ast.Modifiers
	async := false
	kind := ast.MethodNormal
modifiers:
	for startsMemberName(p.peek(1)) && p.peek(1).Row == p.cur().Row {
		tok := p.cur()
		switch {
		case tok.Kind == lexer.Public:
			mods.Access = ast.AccessPublic
		case tok.Kind == lexer.Private:
			mods.Access = ast.AccessPrivate
		case tok.Kind == lexer.Protected:
			mods.Access = ast.AccessProtected
		case tok.Kind == lexer.Static:
			mods.Static = true
		case tok.Kind == lexer.Readonly:
			mods.Readonly = true
		case tok.Kind == lexer.Identifier && tok.Text == "abstract":
			mods.Abstract = true
		case tok.Kind == lexer.Async:
			async = true
		case tok.Kind == lexer.Get:
			kind = ast.MethodGetter
		case tok.Kind == lexer.Set:
			kind = ast.MethodSetter
		default:
			break modifiers
		}
		p.advance()
	}
	p.accept(lexer.Star)
	key := p.parseMemberKey()
	optional := p.accept(lexer.QuestionMark)

	if p.at(lexer.LeftParen, lexer.Less) {
		if key.Name == "constructor" && kind == ast.MethodNormal {
			kind = ast.MethodConstructor
		}
		typeParams := p.parseTypeParametersOpt()
		params := p.parseParameterList()
		if kind != ast.MethodConstructor {
			for _, param := range params {
				if param.IsProperty() {
					p.report(lexer.Token{Row: param.Span().Start.Line, Col: param.Span().Start.Column},
						diagnostics.InvalidSyntax{Reason: "parameter properties are only allowed in a constructor"})
				}
			}
		}
		returnType := p.parseReturnTypeOpt()
		var body *ast.BlockStatement
		if p.at(lexer.LeftBrace) {
			body = p.parseFunctionBody()
		} else {
			p.consumeSemicolon()
		}
		method := ast.NewClassMethod(key, kind, params, returnType, body)
		method.TypeParams = typeParams
		method.Async = async
		method.Optional = optional
		method.Modifiers = mods
		return finish(p, method, start)
	}

	if kind != ast.MethodNormal || async {
		p.fail(diagnostics.UnexpectedToken{Found: describe(p.cur()), Expected: "'('"})
	}
	p.accept(lexer.Bang)
	prop := ast.NewClassProperty(key, nil, nil)
	if p.accept(lexer.Colon) {
		prop.TypeAnnotation = p.parseType()
	}
	if p.accept(lexer.Equal) {
		prop.Value = p.parseAssignment()
	}
	prop.Optional = optional
	prop.Modifiers = mods
	p.consumeSemicolon()
	return finish(p, prop, start)
}

// parseMemberKey parses a class or type member name. String and numeric keys
// are normalised to identifiers carrying their cooked value.
func (p *parser) parseMemberKey() *ast.Identifier {
	tok := p.cur()
	switch tok.Kind {
	case lexer.StringLiteral:
		p.advance()
		id := ast.NewIdentifier(cookString(tok.Text))
		ast.SetSpan(id, tokenSpan(tok))
		return id
	case lexer.NumberLiteral:
		p.advance()
		id := ast.NewIdentifier(normalizeNumber(tok.Text))
		ast.SetSpan(id, tokenSpan(tok))
		return id
	case lexer.LeftBracket:
		p.fail(diagnostics.InvalidSyntax{Reason: "computed member names are not supported"})
	}
	return p.parsePropertyIdentifier()
}

// Interfaces and type aliases

func (p *parser) parseInterfaceDeclaration() ast.Statement {
	start := p.expect(lexer.Interface)
	name := p.parseBindingIdentifier()
	decl := ast.NewInterfaceDeclaration(name, nil, nil)
	decl.TypeParams = p.parseTypeParametersOpt()
	if p.accept(lexer.Extends) {
		for {
			decl.Extends = append(decl.Extends, p.parseTypeReference())
			if !p.accept(lexer.Comma) {
				break
			}
		}
	}
	decl.Members = p.parseTypeMembers()
	return finish(p, decl, start)
}

func (p *parser) parseTypeAliasDeclaration() ast.Statement {
	start := p.expect(lexer.Type)
	name := p.parseBindingIdentifier()
	typeParams := p.parseTypeParametersOpt()
	p.expect(lexer.Equal)
	typ := p.parseType()
	p.consumeSemicolon()
	decl := ast.NewTypeAliasDeclaration(name, typ)
	decl.TypeParams = typeParams
	return finish(p, decl, start)
}
