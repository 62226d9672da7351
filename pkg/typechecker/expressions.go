package typechecker

import (
	"strings"

	"zygr/frontend-go/pkg/ast"
	"zygr/frontend-go/pkg/diagnostics"
)

// expressionType returns the recorded type of expr, inferring it when it has
// not been visited yet.
func (c *Checker) expressionType(expr ast.Expression) Type {
	if t, ok := c.infer.get(expr); ok {
		return t
	}
	return c.inferExpression(expr, nil)
}

// inferExpression computes the type of expr bottom-up and records it.
// expected is the contextual type, or nil; it only guides literals and
// function expressions and is never checked here.
func (c *Checker) inferExpression(expr ast.Expression, expected Type) Type {
	if expr == nil {
		return Undefined
	}
	t := c.inferExpressionUncached(expr, expected)
	if t == nil {
		t = Unknown
	}
	c.infer.set(expr, t)
	return t
}

func (c *Checker) inferExpressionUncached(expr ast.Expression, expected Type) Type {
	switch e := expr.(type) {
	case *ast.Identifier:
		return c.inferIdentifier(e)
	case *ast.Literal:
		return literalType(e)
	case *ast.TemplateLiteral:
		for _, sub := range e.Expressions {
			c.inferExpression(sub, nil)
		}
		return String
	case *ast.ArrayExpression:
		return c.inferArray(e, expected)
	case *ast.ObjectExpression:
		return c.inferObject(e, expected)
	case *ast.SpreadElement:
		return c.inferExpression(e.Argument, nil)
	case *ast.BinaryExpression:
		left := c.inferExpression(e.Left, nil)
		right := c.inferExpression(e.Right, nil)
		return c.binaryType(e.Operator, left, right, e)
	case *ast.LogicalExpression:
		c.inferExpression(e.Left, nil)
		c.inferExpression(e.Right, nil)
		return logicalType(e.Operator)
	case *ast.UnaryExpression:
		return c.inferUnary(e)
	case *ast.UpdateExpression:
		return c.inferUpdate(e)
	case *ast.AssignmentExpression:
		return c.inferAssignment(e)
	case *ast.ConditionalExpression:
		c.inferExpression(e.Test, nil)
		consequent := c.inferExpression(e.Consequent, expected)
		alternate := c.inferExpression(e.Alternate, expected)
		return NewUnion(consequent, alternate)
	case *ast.CallExpression:
		return c.inferCall(e)
	case *ast.NewExpression:
		return c.inferNew(e)
	case *ast.MemberExpression:
		return c.inferMember(e)
	case *ast.ThisExpression:
		return c.thisType()
	case *ast.SuperExpression:
		return c.superType()
	case *ast.AsExpression:
		inner := c.inferExpression(e.Expression, nil)
		target := c.lowerType(e.Type)
		if !c.assignable(inner, target) && !c.assignable(target, inner) {
			c.reportIncompatible("invalid type assertion", inner, target, e)
		}
		return target
	case *ast.ArrowFunctionExpression, *ast.FunctionExpression:
		return c.inferFunctionExpression(expr, expected)
	}
	return Unknown
}

func literalType(lit *ast.Literal) Type {
	switch lit.Kind {
	case ast.LiteralNumber:
		return literalOf(PrimitiveNumber, lit.Value)
	case ast.LiteralString:
		return literalOf(PrimitiveString, lit.Value)
	case ast.LiteralBoolean:
		return literalOf(PrimitiveBoolean, lit.Value)
	case ast.LiteralBigInt:
		return literalOf(PrimitiveBigInt, lit.Value)
	case ast.LiteralNull:
		return Null
	case ast.LiteralUndefined:
		return Undefined
	}
	return Unknown
}

func (c *Checker) inferIdentifier(id *ast.Identifier) Type {
	sym := c.scopes.References[id]
	if sym == nil {
		return Unknown
	}
	if !sym.IsValue() {
		c.report(diagnostics.InvalidTypeUsage{Name: id.Name, AsType: false}, id)
		return Unknown
	}
	return c.symbolType(sym)
}

func (c *Checker) inferFunctionExpression(expr ast.Expression, expected Type) Type {
	fn, _ := functionLikeOf(expr)
	var contextual *FunctionType
	if expected != nil {
		if sig, ok := c.callSignature(c.resolveStructure(expected)); ok {
			contextual = &sig
		}
	}
	sig := c.checkFunction(fn, contextual)
	if fe, ok := expr.(*ast.FunctionExpression); ok && fe.ID != nil {
		if sym := c.scopes.Declarations[fe]; sym != nil {
			c.symbols[sym] = sig
		}
	}
	return sig
}

func (c *Checker) inferArray(e *ast.ArrayExpression, expected Type) Type {
	var elemExpected Type
	var tuple *TupleType
	switch ex := c.resolveStructure(expected).(type) {
	case ArrayType:
		elemExpected = ex.Element
	case TupleType:
		tuple = &ex
	}
	elems := make([]Type, 0, len(e.Elements))
	spread := false
	for i, el := range e.Elements {
		if s, ok := el.(*ast.SpreadElement); ok {
			spread = true
			switch t := c.inferExpression(s, nil).(type) {
			case ArrayType:
				elems = append(elems, t.Element)
			case TupleType:
				elems = append(elems, t.Elements...)
			default:
				elems = append(elems, Any)
			}
			continue
		}
		exp := elemExpected
		if tuple != nil && i < len(tuple.Elements) {
			exp = tuple.Elements[i]
		}
		elems = append(elems, c.inferExpression(el, exp))
	}
	switch {
	case tuple != nil && !spread && len(elems) == len(tuple.Elements):
		return TupleType{Elements: elems}
	case len(elems) == 0 && elemExpected != nil:
		return ArrayType{Element: elemExpected}
	case len(elems) == 0:
		return ArrayType{Element: Any}
	case elemExpected != nil:
		return ArrayType{Element: NewUnion(elems...)}
	}
	return ArrayType{Element: widen(NewUnion(elems...))}
}

func (c *Checker) inferObject(e *ast.ObjectExpression, expected Type) Type {
	var shape ObjectType
	if expected != nil {
		if s, ok := c.resolveStructure(expected).(ObjectType); ok {
			shape = s
		}
	}
	obj := ObjectType{Properties: make(map[string]Property, len(e.Properties))}
	for _, member := range e.Properties {
		switch m := member.(type) {
		case *ast.Property:
			name, ok := m.KeyName()
			if !ok {
				c.inferExpression(m.Key, nil)
				c.inferExpression(m.Value, nil)
				continue
			}
			want, hasWant := shape.Properties[name]
			var t Type
			switch m.Accessor {
			case "get":
				sig, _ := c.inferExpression(m.Value, nil).(FunctionType)
				t = sig.Return
			case "set":
				sig, _ := c.inferExpression(m.Value, nil).(FunctionType)
				if existing, ok := obj.Properties[name]; ok {
					t = existing.Type
				} else if len(sig.Params) > 0 {
					t = sig.Params[0]
				}
			default:
				if hasWant {
					t = c.inferExpression(m.Value, want.Type)
				} else {
					t = widen(c.inferExpression(m.Value, nil))
				}
			}
			if t == nil {
				t = Any
			}
			obj.Properties[name] = Property{Type: t}
		case *ast.SpreadElement:
			spread := c.resolveStructure(c.inferExpression(m.Argument, nil))
			if s, ok := c.shapeOf(spread); ok {
				for name, prop := range s.Properties {
					obj.Properties[name] = prop
				}
			}
		}
	}
	return obj
}

func (c *Checker) inferUnary(e *ast.UnaryExpression) Type {
	arg := c.inferExpression(e.Argument, nil)
	switch e.Operator {
	case "!", "delete":
		return Boolean
	case "typeof":
		return String
	case "void":
		return Undefined
	case "await":
		return awaitedType(arg)
	case "+":
		return Number
	case "-", "~":
		switch {
		case isPermissive(arg):
			return Number
		case isNumberLike(arg):
			if lit, ok := arg.(LiteralType); ok && e.Operator == "-" {
				return negateLiteral(lit)
			}
			return Number
		case isBigIntLike(arg):
			return BigInt
		}
		c.report(diagnostics.OperatorMismatch{Operator: e.Operator, Operands: []string{typeName(arg)}}, e)
		return Number
	}
	return Unknown
}

func negateLiteral(lit LiteralType) LiteralType {
	switch {
	case lit.Value == "0":
		return lit
	case strings.HasPrefix(lit.Value, "-"):
		return literalOf(lit.Base, strings.TrimPrefix(lit.Value, "-"))
	}
	return literalOf(lit.Base, "-"+lit.Value)
}

func (c *Checker) inferUpdate(e *ast.UpdateExpression) Type {
	arg := c.inferExpression(e.Argument, nil)
	switch {
	case isPermissive(arg), isNumberLike(arg):
		return Number
	case isBigIntLike(arg):
		return BigInt
	}
	c.report(diagnostics.OperatorMismatch{Operator: e.Operator, Operands: []string{typeName(arg)}}, e)
	return Number
}

func (c *Checker) inferAssignment(e *ast.AssignmentExpression) Type {
	target := c.inferExpression(e.Target, nil)
	constant := false
	if id, ok := e.Target.(*ast.Identifier); ok {
		if sym := c.scopes.References[id]; sym != nil && sym.IsConstant {
			constant = true
		}
	}
	if e.Operator == "=" {
		value := c.inferExpression(e.Value, target)
		if !constant && !c.assignable(value, target) {
			c.reportIncompatible("incompatible assignment", value, target, e.Value)
		}
		return value
	}
	op := strings.TrimSuffix(e.Operator, "=")
	var result Type
	switch op {
	case "&&", "||", "??":
		// The target keeps its value or receives the right operand.
		result = c.inferExpression(e.Value, target)
	default:
		value := c.inferExpression(e.Value, nil)
		result = c.binaryType(op, target, value, e)
	}
	if !constant && !c.assignable(result, target) {
		c.reportIncompatible("incompatible assignment", result, target, e.Value)
	}
	return result
}

func (c *Checker) thisType() Type {
	ctx := c.currentClass()
	if ctx == nil || ctx.decl == nil {
		return Any
	}
	if ctx.static {
		return c.classType(ctx.decl)
	}
	return c.instanceType(ctx.decl)
}

// superType is the type of `super` used as an object: the base instance in
// instance members, the base class in static members.
func (c *Checker) superType() Type {
	ctx := c.currentClass()
	if ctx == nil || ctx.decl == nil {
		return Any
	}
	base, args, ok := c.superClass(ctx.decl)
	if !ok {
		return Any
	}
	if ctx.static {
		return c.classType(base)
	}
	return CustomType{TypeName: base.ID.Name, Args: c.completeTypeArgs(base.TypeParams, args), Decl: base}
}
