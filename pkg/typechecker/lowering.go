package typechecker

import (
	"zygr/frontend-go/pkg/ast"
	"zygr/frontend-go/pkg/diagnostics"
	"zygr/frontend-go/pkg/resolver"
)

// lowerType converts an annotation into its canonical Type. Results are
// cached per node so a problem in an annotation is reported once.
func (c *Checker) lowerType(expr ast.TypeExpression) Type {
	if expr == nil {
		return nil
	}
	if t, ok := c.lowered[expr]; ok {
		return t
	}
	t := c.lowerTypeUncached(expr)
	c.lowered[expr] = t
	return t
}

func (c *Checker) lowerTypeUncached(expr ast.TypeExpression) Type {
	switch t := expr.(type) {
	case *ast.KeywordType:
		return c.lowerKeyword(t.Keyword)
	case *ast.LiteralType:
		return c.lowerLiteralType(t)
	case *ast.TypeReference:
		return c.lowerReference(t)
	case *ast.UnionType:
		members := make([]Type, len(t.Types))
		for i, member := range t.Types {
			members[i] = c.lowerType(member)
		}
		return NewUnion(members...)
	case *ast.IntersectionType:
		members := make([]Type, len(t.Types))
		for i, member := range t.Types {
			members[i] = c.lowerType(member)
		}
		return NewIntersection(members...)
	case *ast.ArrayType:
		return ArrayType{Element: c.lowerType(t.ElementType)}
	case *ast.TupleType:
		elems := make([]Type, len(t.ElementTypes))
		for i, elem := range t.ElementTypes {
			elems[i] = c.lowerType(elem)
		}
		return TupleType{Elements: elems}
	case *ast.FunctionType:
		return c.lowerSignature(t.TypeParams, t.Params, t.ReturnType, Void)
	case *ast.ObjectType:
		return c.lowerTypeMembers(t.Members)
	}
	return Unknown
}

func (c *Checker) lowerKeyword(keyword string) Type {
	switch keyword {
	case "number":
		return Number
	case "string":
		return String
	case "boolean":
		return Boolean
	case "null":
		return Null
	case "undefined":
		return Undefined
	case "any":
		return Any
	case "unknown":
		return Unknown
	case "never":
		return Never
	case "void":
		return Void
	case "bigint":
		return BigInt
	case "symbol":
		return Symbol
	case "object":
		return Object
	case "this":
		if ctx := c.currentClass(); ctx != nil && ctx.decl != nil {
			return c.instanceType(ctx.decl)
		}
		return Any
	}
	return Unknown
}

func (c *Checker) lowerLiteralType(t *ast.LiteralType) Type {
	if t.Literal == nil {
		return Unknown
	}
	switch t.Literal.Kind {
	case ast.LiteralString:
		return literalOf(PrimitiveString, t.Literal.Value)
	case ast.LiteralNumber:
		return literalOf(PrimitiveNumber, t.Literal.Value)
	case ast.LiteralBoolean:
		return literalOf(PrimitiveBoolean, t.Literal.Value)
	case ast.LiteralBigInt:
		return literalOf(PrimitiveBigInt, t.Literal.Value)
	case ast.LiteralNull:
		return Null
	case ast.LiteralUndefined:
		return Undefined
	}
	return Unknown
}

// lowerSignature builds a function type from parameter and return
// annotations. Unannotated parameters are any; a missing return annotation
// falls back to defaultReturn.
func (c *Checker) lowerSignature(typeParams []*ast.TypeParameter, params []*ast.Parameter, returnType ast.TypeExpression, defaultReturn Type) FunctionType {
	fn := FunctionType{TypeParams: c.lowerTypeParams(typeParams)}
	for _, param := range params {
		if param.Name != nil && param.Name.Name == "this" {
			continue
		}
		t := c.lowerType(param.TypeAnnotation)
		if t == nil {
			t = Any
		}
		if param.Rest {
			fn.Rest = restElement(t)
			continue
		}
		fn.Params = append(fn.Params, t)
		fn.ParamNames = append(fn.ParamNames, paramName(param))
		if !param.Optional && param.Default == nil {
			fn.MinArgs = len(fn.Params)
		}
	}
	fn.Return = c.lowerType(returnType)
	if fn.Return == nil {
		fn.Return = defaultReturn
	}
	return fn
}

func paramName(param *ast.Parameter) string {
	if param.Name == nil {
		return ""
	}
	return param.Name.Name
}

// restElement returns the element type accepted by a rest parameter of
// type t.
func restElement(t Type) Type {
	switch v := t.(type) {
	case ArrayType:
		return v.Element
	case TupleType:
		return NewUnion(v.Elements...)
	}
	return Any
}

func (c *Checker) lowerTypeParams(params []*ast.TypeParameter) []*TypeParameterType {
	if len(params) == 0 {
		return nil
	}
	out := make([]*TypeParameterType, len(params))
	for i, tp := range params {
		t := c.typeParameter(tp)
		out[i] = &t
	}
	return out
}

// typeParameter returns the type of a declared type parameter. The entry is
// cached before the constraint is lowered so self-referencing constraints
// terminate.
func (c *Checker) typeParameter(tp *ast.TypeParameter) TypeParameterType {
	if t, ok := c.typeParams[tp]; ok {
		return t
	}
	t := TypeParameterType{ParameterName: tp.Name.Name}
	c.typeParams[tp] = t
	if tp.Constraint != nil {
		t.Constraint = c.lowerType(tp.Constraint)
		c.typeParams[tp] = t
	}
	c.lowerType(tp.Default)
	return t
}

func (c *Checker) lowerTypeMembers(members []ast.TypeMember) ObjectType {
	obj := ObjectType{Properties: make(map[string]Property, len(members))}
	for _, member := range members {
		name, prop := c.lowerTypeMember(member)
		if name == "" {
			continue
		}
		if _, exists := obj.Properties[name]; exists {
			continue
		}
		obj.Properties[name] = prop
	}
	return obj
}

func (c *Checker) lowerTypeMember(member ast.TypeMember) (string, Property) {
	switch m := member.(type) {
	case *ast.PropertySignature:
		t := c.lowerType(m.TypeAnnotation)
		if t == nil {
			t = Any
		}
		return m.Key.Name, Property{Type: t, Optional: m.Optional, Readonly: m.Readonly}
	case *ast.MethodSignature:
		return m.Key.Name, Property{Type: c.lowerSignature(m.TypeParams, m.Params, m.ReturnType, Any), Optional: m.Optional}
	}
	return "", Property{}
}

// lowerReference resolves a named type through the resolver's symbol
// table.
func (c *Checker) lowerReference(ref *ast.TypeReference) Type {
	args := make([]Type, len(ref.TypeArguments))
	for i, arg := range ref.TypeArguments {
		args[i] = c.lowerType(arg)
	}
	sym := c.scopes.TypeReferences[ref]
	if sym == nil || len(ref.Path) > 0 {
		c.report(diagnostics.UnknownType{Name: ref.QualifiedName()}, ref)
		return Unknown
	}
	if !sym.IsType() {
		c.report(diagnostics.InvalidTypeUsage{Name: sym.Name, AsType: true}, ref)
		return Unknown
	}
	return c.typeOfTypeSymbol(sym, args, ref)
}

// typeOfTypeSymbol returns the type a type-level symbol denotes with the
// given arguments. ref is nil when no source reference is involved.
func (c *Checker) typeOfTypeSymbol(sym *resolver.Symbol, args []Type, ref *ast.TypeReference) Type {
	switch sym.Kind {
	case resolver.SymbolTypeParameter:
		if tp, ok := sym.Node.(*ast.TypeParameter); ok {
			return c.typeParameter(tp)
		}
	case resolver.SymbolInterface:
		if decl, ok := sym.Node.(*ast.InterfaceDeclaration); ok {
			return CustomType{TypeName: sym.Name, Args: c.completeTypeArgs(decl.TypeParams, args), Decl: decl}
		}
	case resolver.SymbolTypeAlias:
		if decl, ok := sym.Node.(*ast.TypeAliasDeclaration); ok {
			if c.aliasCycle(decl) {
				return Unknown
			}
			return CustomType{TypeName: sym.Name, Args: c.completeTypeArgs(decl.TypeParams, args), Decl: decl}
		}
	case resolver.SymbolClass:
		if decl, ok := sym.Node.(*ast.ClassDeclaration); ok {
			return CustomType{TypeName: sym.Name, Args: c.completeTypeArgs(decl.TypeParams, args), Decl: decl}
		}
	case resolver.SymbolBuiltin, resolver.SymbolBuiltinType:
		t, ok := c.builtinTypeReference(sym.Name, args)
		if !ok {
			if ref != nil {
				c.report(diagnostics.InvalidTypeUsage{Name: sym.Name, AsType: true}, ref)
			}
			return Unknown
		}
		return t
	}
	return Unknown
}

// completeTypeArgs pads args with declared defaults, or unknown.
func (c *Checker) completeTypeArgs(params []*ast.TypeParameter, args []Type) []Type {
	if len(params) == 0 {
		return nil
	}
	out := make([]Type, len(params))
	for i, tp := range params {
		switch {
		case i < len(args):
			out[i] = args[i]
		case tp.Default != nil:
			out[i] = c.lowerType(tp.Default)
		default:
			out[i] = Unknown
		}
	}
	return out
}

func typeArgBindings(params []*ast.TypeParameter, args []Type) map[string]Type {
	if len(params) == 0 {
		return nil
	}
	subst := make(map[string]Type, len(params))
	for i, tp := range params {
		if i < len(args) {
			subst[tp.Name.Name] = args[i]
		} else {
			subst[tp.Name.Name] = Unknown
		}
	}
	return subst
}

// expandCustom unfolds a named type into its structure with the type
// arguments substituted.
func (c *Checker) expandCustom(t CustomType) (Type, bool) {
	switch decl := t.Decl.(type) {
	case *ast.TypeAliasDeclaration:
		if c.aliasCycle(decl) {
			return Unknown, true
		}
		return substituteType(c.lowerType(decl.Type), typeArgBindings(decl.TypeParams, t.Args)), true
	case *ast.InterfaceDeclaration:
		return substituteType(c.interfaceShape(decl), typeArgBindings(decl.TypeParams, t.Args)), true
	case *ast.ClassDeclaration:
		return substituteType(c.classInstanceShape(decl), typeArgBindings(decl.TypeParams, t.Args)), true
	}
	return nil, false
}

// aliasCycle reports whether decl expands to itself through other aliases,
// unions or intersections. A reference nested in an object, array, tuple or
// function type is a legal recursive alias.
func (c *Checker) aliasCycle(decl *ast.TypeAliasDeclaration) bool {
	return c.reachesAlias(decl.Type, decl, make(map[*ast.TypeAliasDeclaration]bool))
}

func (c *Checker) reachesAlias(t ast.TypeExpression, target *ast.TypeAliasDeclaration, seen map[*ast.TypeAliasDeclaration]bool) bool {
	switch v := t.(type) {
	case *ast.UnionType:
		for _, member := range v.Types {
			if c.reachesAlias(member, target, seen) {
				return true
			}
		}
	case *ast.IntersectionType:
		for _, member := range v.Types {
			if c.reachesAlias(member, target, seen) {
				return true
			}
		}
	case *ast.TypeReference:
		sym := c.scopes.TypeReferences[v]
		if sym == nil || sym.Kind != resolver.SymbolTypeAlias {
			return false
		}
		next, ok := sym.Node.(*ast.TypeAliasDeclaration)
		if !ok {
			return false
		}
		if next == target {
			return true
		}
		if seen[next] {
			return false
		}
		seen[next] = true
		return c.reachesAlias(next.Type, target, seen)
	}
	return false
}

// resolveStructure expands named types until a structural type remains.
func (c *Checker) resolveStructure(t Type) Type {
	for depth := 0; depth < 32; depth++ {
		custom, ok := t.(CustomType)
		if !ok {
			return t
		}
		expanded, ok := c.expandCustom(custom)
		if !ok {
			return t
		}
		t = expanded
	}
	return Unknown
}
