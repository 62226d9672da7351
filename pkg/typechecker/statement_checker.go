package typechecker

import (
	"zygr/frontend-go/pkg/ast"
	"zygr/frontend-go/pkg/diagnostics"
)

func (c *Checker) checkStatements(stmts []ast.Statement) {
	for _, stmt := range stmts {
		c.checkStatement(stmt)
	}
}

func (c *Checker) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case nil:
		return
	case *ast.BlockStatement:
		c.checkStatements(s.Body)
	case *ast.ExpressionStatement:
		c.inferExpression(s.Expression, nil)
	case *ast.EmptyStatement, *ast.BreakStatement, *ast.ContinueStatement:
	case *ast.IfStatement:
		c.inferExpression(s.Test, nil)
		c.checkStatement(s.Consequent)
		c.checkStatement(s.Alternate)
	case *ast.ForStatement:
		c.checkStatement(s.Init)
		if s.Test != nil {
			c.inferExpression(s.Test, nil)
		}
		if s.Update != nil {
			c.inferExpression(s.Update, nil)
		}
		c.checkStatement(s.Body)
	case *ast.WhileStatement:
		c.inferExpression(s.Test, nil)
		c.checkStatement(s.Body)
	case *ast.DoWhileStatement:
		c.checkStatement(s.Body)
		c.inferExpression(s.Test, nil)
	case *ast.ReturnStatement:
		c.checkReturn(s)
	case *ast.ThrowStatement:
		c.inferExpression(s.Argument, nil)
	case *ast.TryStatement:
		c.checkStatement(s.Block)
		if h := s.Handler; h != nil {
			if sym := c.scopes.Declarations[h]; sym != nil {
				c.symbolType(sym)
			}
			c.checkStatement(h.Body)
		}
		if s.Finalizer != nil {
			c.checkStatement(s.Finalizer)
		}
	case *ast.VariableDeclaration:
		for _, d := range s.Declarations {
			c.checkDeclarator(s.Kind, d)
		}
	case *ast.FunctionDeclaration:
		fn, _ := functionLikeOf(s)
		sig := c.checkFunction(fn, nil)
		if sym := c.scopes.Declarations[s]; sym != nil && sym.Node == s {
			c.symbols[sym] = sig
		}
	case *ast.ClassDeclaration:
		c.checkClass(s)
	case *ast.InterfaceDeclaration:
		c.checkInterface(s)
		if sym := c.scopes.Declarations[s]; sym != nil && sym.Node == s {
			c.symbols[sym] = c.typeOfTypeSymbol(sym, nil, nil)
		}
	case *ast.TypeAliasDeclaration:
		c.lowerTypeParams(s.TypeParams)
		if c.aliasCycle(s) {
			c.report(diagnostics.CircularReference{Name: s.ID.Name}, s.ID)
		} else {
			c.lowerType(s.Type)
		}
		if sym := c.scopes.Declarations[s]; sym != nil && sym.Node == s {
			c.symbols[sym] = c.typeOfTypeSymbol(sym, nil, nil)
		}
	}
}

// checkReturn checks a return value against the declared return type of the
// enclosing function and collects it for inference otherwise.
func (c *Checker) checkReturn(s *ast.ReturnStatement) {
	ctx := c.currentFunction()
	if ctx == nil {
		if s.Argument != nil {
			c.inferExpression(s.Argument, nil)
		}
		return
	}
	if s.Argument == nil {
		ctx.bare = true
		if ctx.declared != nil && !c.assignable(Undefined, ctx.declared) {
			c.reportIncompatible("incompatible return", Undefined, ctx.declared, s)
		}
		return
	}
	t := c.inferExpression(s.Argument, ctx.declared)
	ctx.returns = append(ctx.returns, t)
	if ctx.declared != nil && !c.assignable(t, ctx.declared) {
		c.reportIncompatible("incompatible return", t, ctx.declared, s.Argument)
	}
}

// checkDeclarator settles the type of a variable from its annotation or
// initializer. Declarators are checked once, either in program order or on
// demand when a reference is reached first.
func (c *Checker) checkDeclarator(kind ast.VariableKind, d *ast.VariableDeclarator) {
	if c.declarators[d] {
		return
	}
	c.declarators[d] = true
	sym := c.scopes.Declarations[d]
	if sym != nil && sym.Node != d {
		// A redeclared var shares the first declarator's symbol.
		if _, ok := c.symbols[sym]; !ok {
			if first, ok := sym.Node.(*ast.VariableDeclarator); ok {
				c.checkDeclarator(kind, first)
			}
		}
	}
	if sym != nil {
		c.pendingSymbols[sym] = true
		defer delete(c.pendingSymbols, sym)
	}
	settle := func(t Type) {
		c.infer.set(d, t)
		c.infer.set(d.ID, t)
		if sym == nil {
			return
		}
		if _, ok := c.symbols[sym]; !ok || sym.Node == d {
			c.symbols[sym] = t
		}
	}

	if d.TypeAnnotation != nil {
		declared := c.lowerType(d.TypeAnnotation)
		settle(declared)
		if d.Init == nil {
			if kind == ast.VariableConst {
				c.report(diagnostics.MissingInitializer{Name: d.ID.Name, Const: true}, d.ID)
			}
			return
		}
		value := c.inferExpression(d.Init, declared)
		if !c.assignable(value, declared) {
			c.reportIncompatible("incompatible initializer", value, declared, d.Init)
		}
		return
	}

	if d.Init != nil {
		t := c.inferExpression(d.Init, nil)
		switch {
		case isNullish(t) && !isPrimitive(t, PrimitiveVoid):
			t = Any
		case kind != ast.VariableConst:
			t = widen(t)
		}
		settle(t)
		return
	}

	switch {
	case kind == ast.VariableConst:
		c.report(diagnostics.MissingInitializer{Name: d.ID.Name, Const: true}, d.ID)
		settle(Any)
	case sym != nil && c.scopes.Assigned[sym]:
		settle(Any)
	default:
		c.report(diagnostics.MissingInitializer{Name: d.ID.Name}, d.ID)
		settle(Any)
	}
}
