// Package resolver threads lexical scoping through a parsed program. It
// builds an arena of scopes, binds every declaration to a Symbol and annotates
// identifier and type references with the symbol they resolve to. Failures
// are recorded and resolution continues past them.
package resolver

import (
	"zygr/frontend-go/pkg/ast"
	"zygr/frontend-go/pkg/diagnostics"
)

// Option configures a resolution run.
type Option func(*config)

type config struct {
	globals []string
}

// WithGlobals declares additional ambient value names in the global scope.
func WithGlobals(names ...string) Option {
	return func(c *config) {
		c.globals = append(c.globals, names...)
	}
}

type resolver struct {
	tree    *ScopeTree
	errs    []diagnostics.CompilerError
	scope   ScopeID
	hoisted map[ast.Node]bool
}

// Resolve builds the scope tree for program. The tree is always returned,
// even when errors were recorded.
func Resolve(program *ast.Program, opts ...Option) diagnostics.Result[*ScopeTree] {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	r := &resolver{
		tree:    newScopeTree(),
		scope:   NoScope,
		hoisted: make(map[ast.Node]bool),
	}
	r.scope = r.tree.push(ScopeGlobal, NoScope, program)
	r.seedGlobals(cfg.globals)
	if program != nil {
		r.resolveStatements(program.Body)
	}
	return diagnostics.NewResult(r.tree, r.errs)
}

func (r *resolver) seedGlobals(extra []string) {
	root := r.tree.Root()
	add := func(name string, kind SymbolKind) {
		root.insert(&Symbol{
			Name:       name,
			Kind:       kind,
			ScopeKind:  ScopeGlobal,
			Scope:      root.ID,
			IsConstant: constantGlobals[name],
		})
	}
	for _, name := range builtinGlobals {
		add(name, SymbolBuiltin)
	}
	for _, name := range builtinTypes {
		add(name, SymbolBuiltinType)
	}
	for _, name := range extra {
		add(name, SymbolBuiltin)
	}
}

func (r *resolver) report(detail diagnostics.Detail, node ast.Node) {
	pos := node.Span().Start
	r.errs = append(r.errs, diagnostics.New(detail, pos.Line, pos.Column))
}

func (r *resolver) enter(kind ScopeKind, node ast.Node) ScopeID {
	prev := r.scope
	r.scope = r.tree.push(kind, prev, node)
	return prev
}

func (r *resolver) leave(prev ScopeID) {
	r.scope = prev
}

// declare inserts a symbol for id into the current scope. A user declaration
// may replace an ambient builtin of the same name in the global scope.
func (r *resolver) declare(id *ast.Identifier, kind SymbolKind, node ast.Node, annotation ast.TypeExpression) *Symbol {
	if id == nil {
		return nil
	}
	scope := r.tree.Scope(r.scope)
	pos := id.Span().Start
	sym := &Symbol{
		Name:         id.Name,
		Kind:         kind,
		DeclaredType: annotation,
		ScopeKind:    scope.Kind,
		Scope:        scope.ID,
		IsConstant:   kind == SymbolConst,
		Node:         node,
		Row:          pos.Line,
		Col:          pos.Column,
	}
	if existing, ok := scope.Symbols[id.Name]; ok {
		if existing.Kind != SymbolBuiltin && existing.Kind != SymbolBuiltinType {
			r.report(diagnostics.DuplicateSymbol{Name: id.Name}, id)
			r.tree.Declarations[node] = existing
			return existing
		}
		scope.Symbols[id.Name] = sym
	} else {
		scope.insert(sym)
	}
	r.tree.Declarations[node] = sym
	return sym
}

// Statements

// resolveStatements hoists the declarations of one statement list into the
// current scope before walking it, so siblings may reference each other in
// any order.
func (r *resolver) resolveStatements(stmts []ast.Statement) {
	for _, stmt := range stmts {
		r.hoist(stmt)
	}
	for _, stmt := range stmts {
		r.resolveStatement(stmt)
	}
}

func (r *resolver) hoist(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.FunctionDeclaration:
		r.declare(s.ID, SymbolFunction, s, nil)
	case *ast.ClassDeclaration:
		r.declare(s.ID, SymbolClass, s, nil)
	case *ast.InterfaceDeclaration:
		r.declare(s.ID, SymbolInterface, s, nil)
	case *ast.TypeAliasDeclaration:
		r.declare(s.ID, SymbolTypeAlias, s, nil)
	case *ast.VariableDeclaration:
		r.declareVariables(s)
	default:
		return
	}
	r.hoisted[stmt] = true
}

func (r *resolver) declareVariables(decl *ast.VariableDeclaration) {
	kind := SymbolLet
	switch decl.Kind {
	case ast.VariableConst:
		kind = SymbolConst
	case ast.VariableVar:
		kind = SymbolVar
	}
	for _, d := range decl.Declarations {
		r.declare(d.ID, kind, d, d.TypeAnnotation)
	}
}

func (r *resolver) resolveStatement(stmt ast.Statement) {
	if stmt == nil {
		return
	}
	if !r.hoisted[stmt] {
		r.hoist(stmt)
	}
	switch s := stmt.(type) {
	case *ast.FunctionDeclaration:
		r.resolveFunction(s, nil, s.TypeParams, s.Params, s.ReturnType, s.Body, nil)
	case *ast.VariableDeclaration:
		for _, d := range s.Declarations {
			r.resolveType(d.TypeAnnotation)
			r.resolveExpression(d.Init)
		}
	case *ast.ClassDeclaration:
		r.resolveClass(s)
	case *ast.InterfaceDeclaration:
		prev := r.enter(ScopeBlock, s)
		r.declareTypeParams(s.TypeParams)
		for _, ext := range s.Extends {
			r.resolveType(ext)
		}
		r.resolveTypeMembers(s.Members)
		r.leave(prev)
	case *ast.TypeAliasDeclaration:
		prev := r.enter(ScopeBlock, s)
		r.declareTypeParams(s.TypeParams)
		r.resolveType(s.Type)
		r.leave(prev)
	case *ast.BlockStatement:
		prev := r.enter(ScopeBlock, s)
		r.resolveStatements(s.Body)
		r.leave(prev)
	case *ast.ExpressionStatement:
		r.resolveExpression(s.Expression)
	case *ast.EmptyStatement, *ast.BreakStatement, *ast.ContinueStatement:
	case *ast.IfStatement:
		r.resolveExpression(s.Test)
		r.resolveStatement(s.Consequent)
		r.resolveStatement(s.Alternate)
	case *ast.ForStatement:
		prev := r.enter(ScopeBlock, s)
		r.resolveStatement(s.Init)
		r.resolveExpression(s.Test)
		r.resolveExpression(s.Update)
		r.resolveStatement(s.Body)
		r.leave(prev)
	case *ast.WhileStatement:
		r.resolveExpression(s.Test)
		r.resolveStatement(s.Body)
	case *ast.DoWhileStatement:
		r.resolveStatement(s.Body)
		r.resolveExpression(s.Test)
	case *ast.ReturnStatement:
		r.resolveExpression(s.Argument)
	case *ast.ThrowStatement:
		r.resolveExpression(s.Argument)
	case *ast.TryStatement:
		r.resolveStatement(s.Block)
		if s.Handler != nil {
			prev := r.enter(ScopeBlock, s.Handler)
			r.resolveType(s.Handler.ParamType)
			r.declare(s.Handler.Param, SymbolCatchParam, s.Handler, s.Handler.ParamType)
			r.resolveStatement(s.Handler.Body)
			r.leave(prev)
		}
		if s.Finalizer != nil {
			r.resolveStatement(s.Finalizer)
		}
	}
}

// resolveFunction handles every function-like node: declarations,
// expressions, arrows and class methods. name is declared inside the
// function scope for named function expressions.
func (r *resolver) resolveFunction(node ast.Node, name *ast.Identifier, typeParams []*ast.TypeParameter, params []*ast.Parameter, returnType ast.TypeExpression, body *ast.BlockStatement, exprBody ast.Expression) {
	prev := r.enter(ScopeFunction, node)
	if name != nil {
		r.declare(name, SymbolFunction, node, nil)
	}
	r.declareTypeParams(typeParams)
	for _, param := range params {
		r.resolveType(param.TypeAnnotation)
		r.resolveExpression(param.Default)
		if param.Name != nil && param.Name.Name == "this" {
			continue
		}
		r.declare(param.Name, SymbolParameter, param, param.TypeAnnotation)
	}
	r.resolveType(returnType)
	if body != nil {
		r.resolveStatement(body)
	}
	r.resolveExpression(exprBody)
	r.leave(prev)
}

func (r *resolver) declareTypeParams(params []*ast.TypeParameter) {
	for _, tp := range params {
		r.declare(tp.Name, SymbolTypeParameter, tp, tp.Constraint)
	}
	for _, tp := range params {
		r.resolveType(tp.Constraint)
		r.resolveType(tp.Default)
	}
}

func (r *resolver) resolveClass(decl *ast.ClassDeclaration) {
	if decl.SuperClass != nil {
		r.resolveIdentifier(decl.SuperClass)
	}
	prev := r.enter(ScopeBlock, decl)
	r.declareTypeParams(decl.TypeParams)
	for _, arg := range decl.SuperTypeArgs {
		r.resolveType(arg)
	}
	for _, impl := range decl.Implements {
		r.resolveType(impl)
	}
	for _, member := range decl.Members {
		switch m := member.(type) {
		case *ast.ClassProperty:
			r.resolveType(m.TypeAnnotation)
			r.resolveExpression(m.Value)
		case *ast.ClassMethod:
			r.resolveFunction(m, nil, m.TypeParams, m.Params, m.ReturnType, m.Body, nil)
		}
	}
	r.leave(prev)
}

// Expressions

func (r *resolver) resolveIdentifier(id *ast.Identifier) *Symbol {
	sym, ok := r.tree.Lookup(r.scope, id.Name)
	if !ok {
		r.report(diagnostics.UnresolvedReference{Name: id.Name}, id)
		return nil
	}
	r.tree.References[id] = sym
	return sym
}

func (r *resolver) resolveExpressions(exprs []ast.Expression) {
	for _, expr := range exprs {
		r.resolveExpression(expr)
	}
}

func (r *resolver) resolveExpression(expr ast.Expression) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.Identifier:
		r.resolveIdentifier(e)
	case *ast.Literal, *ast.ThisExpression, *ast.SuperExpression:
	case *ast.TemplateLiteral:
		r.resolveExpressions(e.Expressions)
	case *ast.ArrayExpression:
		r.resolveExpressions(e.Elements)
	case *ast.ObjectExpression:
		for _, member := range e.Properties {
			switch m := member.(type) {
			case *ast.Property:
				if m.Computed {
					r.resolveExpression(m.Key)
				}
				r.resolveExpression(m.Value)
			case *ast.SpreadElement:
				r.resolveExpression(m.Argument)
			}
		}
	case *ast.SpreadElement:
		r.resolveExpression(e.Argument)
	case *ast.BinaryExpression:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.LogicalExpression:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.UnaryExpression:
		r.resolveExpression(e.Argument)
	case *ast.UpdateExpression:
		r.resolveAssignmentTarget(e.Argument)
	case *ast.AssignmentExpression:
		r.resolveAssignmentTarget(e.Target)
		r.resolveExpression(e.Value)
	case *ast.ConditionalExpression:
		r.resolveExpression(e.Test)
		r.resolveExpression(e.Consequent)
		r.resolveExpression(e.Alternate)
	case *ast.CallExpression:
		r.resolveExpression(e.Callee)
		for _, arg := range e.TypeArguments {
			r.resolveType(arg)
		}
		r.resolveExpressions(e.Arguments)
	case *ast.NewExpression:
		r.resolveExpression(e.Callee)
		for _, arg := range e.TypeArguments {
			r.resolveType(arg)
		}
		r.resolveExpressions(e.Arguments)
	case *ast.MemberExpression:
		r.resolveExpression(e.Object)
		if e.Computed {
			r.resolveExpression(e.Property)
		}
	case *ast.AsExpression:
		r.resolveExpression(e.Expression)
		r.resolveType(e.Type)
	case *ast.ArrowFunctionExpression:
		r.resolveFunction(e, nil, e.TypeParams, e.Params, e.ReturnType, e.Body, e.ExpressionBody)
	case *ast.FunctionExpression:
		r.resolveFunction(e, e.ID, e.TypeParams, e.Params, e.ReturnType, e.Body, nil)
	}
}

// resolveAssignmentTarget resolves the target of `=`, compound assignment
// and `++`/`--`, recording the write and rejecting writes to constants.
func (r *resolver) resolveAssignmentTarget(target ast.Expression) {
	id, ok := target.(*ast.Identifier)
	if !ok {
		r.resolveExpression(target)
		return
	}
	sym := r.resolveIdentifier(id)
	if sym == nil {
		return
	}
	r.tree.Assigned[sym] = true
	if sym.IsConstant {
		r.report(diagnostics.ConstantAssignment{Name: id.Name}, id)
	}
}

// Types

func (r *resolver) resolveType(typ ast.TypeExpression) {
	if typ == nil {
		return
	}
	switch t := typ.(type) {
	case *ast.KeywordType, *ast.LiteralType:
	case *ast.TypeReference:
		if t.Name != nil {
			sym, _ := r.tree.Lookup(r.scope, t.Name.Name)
			r.tree.TypeReferences[t] = sym
		}
		for _, arg := range t.TypeArguments {
			r.resolveType(arg)
		}
	case *ast.UnionType:
		for _, member := range t.Types {
			r.resolveType(member)
		}
	case *ast.IntersectionType:
		for _, member := range t.Types {
			r.resolveType(member)
		}
	case *ast.ArrayType:
		r.resolveType(t.ElementType)
	case *ast.TupleType:
		for _, elem := range t.ElementTypes {
			r.resolveType(elem)
		}
	case *ast.FunctionType:
		prev := r.enter(ScopeFunction, t)
		r.declareTypeParams(t.TypeParams)
		r.resolveParamTypes(t.Params)
		r.resolveType(t.ReturnType)
		r.leave(prev)
	case *ast.ObjectType:
		r.resolveTypeMembers(t.Members)
	}
}

func (r *resolver) resolveParamTypes(params []*ast.Parameter) {
	for _, param := range params {
		r.resolveType(param.TypeAnnotation)
	}
}

func (r *resolver) resolveTypeMembers(members []ast.TypeMember) {
	for _, member := range members {
		switch m := member.(type) {
		case *ast.PropertySignature:
			r.resolveType(m.TypeAnnotation)
		case *ast.MethodSignature:
			prev := r.enter(ScopeFunction, m)
			r.declareTypeParams(m.TypeParams)
			r.resolveParamTypes(m.Params)
			r.resolveType(m.ReturnType)
			r.leave(prev)
		}
	}
}
