package typechecker

import (
	"strconv"

	"zygr/frontend-go/pkg/ast"
	"zygr/frontend-go/pkg/diagnostics"
)

// inferMember types `object.name` and `object[key]`. Nullish parts of the
// object type are ignored; an optional chain adds undefined to the result.
func (c *Checker) inferMember(e *ast.MemberExpression) Type {
	object := c.inferExpression(e.Object, nil)
	optional := e.Optional || isOptionalChain(e.Object)
	object = nonNullable(object)

	var result Type
	if e.Computed {
		key := c.inferExpression(e.Property, nil)
		result = c.indexType(object, key)
	} else {
		id, ok := e.Property.(*ast.Identifier)
		if !ok {
			return Any
		}
		t, found := c.memberType(object, id.Name)
		if !found {
			c.report(diagnostics.UnknownProperty{Property: id.Name, Type: typeName(object)}, id)
			t = Any
		}
		c.infer.set(id, t)
		result = t
	}
	if optional {
		return NewUnion(result, Undefined)
	}
	return result
}

// memberType looks up the named member of t.
func (c *Checker) memberType(t Type, name string) (Type, bool) {
	switch v := t.(type) {
	case nil:
		return Any, true
	case PrimitiveType:
		switch v.Kind {
		case PrimitiveAny, PrimitiveUnknown, PrimitiveNever:
			return Any, true
		case PrimitiveString:
			return lookupMember(stringMembers, name)
		case PrimitiveNumber:
			return lookupMember(numberMembers, name)
		case PrimitiveBoolean:
			return lookupMember(booleanMembers, name)
		case PrimitiveBigInt, PrimitiveSymbol:
			if name == "toString" {
				return method(String), true
			}
		}
		return nil, false
	case LiteralType:
		return c.memberType(PrimitiveType{Kind: v.Base}, name)
	case ObjectType:
		prop, ok := v.Properties[name]
		if !ok {
			return nil, false
		}
		if prop.Optional {
			return NewUnion(prop.Type, Undefined), true
		}
		return prop.Type, true
	case ArrayType:
		return arrayMember(v.Element, name)
	case TupleType:
		if name == "length" {
			return literalOf(PrimitiveNumber, strconv.Itoa(len(v.Elements))), true
		}
		return arrayMember(NewUnion(v.Elements...), name)
	case FunctionType:
		return lookupMember(functionMembers, name)
	case ClassType:
		switch name {
		case "prototype":
			return v.Instance, true
		case "name":
			return String, true
		}
		return c.memberType(c.classStaticShape(v.Decl), name)
	case CustomType:
		if v.Decl == nil {
			return opaqueMember(v, name)
		}
		expanded, ok := c.expandCustom(v)
		if !ok {
			return nil, false
		}
		return c.memberType(expanded, name)
	case UnionType:
		var found []Type
		for _, member := range v.Members {
			if isNullish(member) {
				continue
			}
			mt, ok := c.memberType(member, name)
			if !ok {
				return nil, false
			}
			found = append(found, mt)
		}
		if len(found) == 0 {
			return nil, false
		}
		return NewUnion(found...), true
	case IntersectionType:
		var found []Type
		for _, member := range v.Members {
			if mt, ok := c.memberType(member, name); ok {
				found = append(found, mt)
			}
		}
		if len(found) == 0 {
			return nil, false
		}
		return NewIntersection(found...), true
	case TypeParameterType:
		if v.Constraint != nil {
			return c.memberType(v.Constraint, name)
		}
		return Any, true
	}
	return nil, false
}

func lookupMember(members map[string]Type, name string) (Type, bool) {
	t, ok := members[name]
	return t, ok
}

// indexType types `object[key]`.
func (c *Checker) indexType(object, key Type) Type {
	if isPermissive(object) {
		return Any
	}
	switch v := object.(type) {
	case ArrayType:
		return v.Element
	case TupleType:
		if lit, ok := key.(LiteralType); ok && lit.Base == PrimitiveNumber {
			if i, err := strconv.Atoi(lit.Value); err == nil && i >= 0 && i < len(v.Elements) {
				return v.Elements[i]
			}
		}
		return NewUnion(v.Elements...)
	case CustomType:
		if v.Decl == nil {
			if v.TypeName == "Record" && len(v.Args) == 2 {
				return v.Args[1]
			}
			return Any
		}
		if expanded, ok := c.expandCustom(v); ok {
			return c.indexType(expanded, key)
		}
	}
	if isStringLike(object) {
		return String
	}
	if lit, ok := key.(LiteralType); ok && lit.Base == PrimitiveString {
		if t, ok := c.memberType(object, lit.Value); ok {
			return t
		}
	}
	return Any
}

// shapeOf exposes the members of object-like types for structural
// comparison.
func (c *Checker) shapeOf(t Type) (ObjectType, bool) {
	switch v := t.(type) {
	case ObjectType:
		return v, true
	case CustomType:
		if expanded, ok := c.expandCustom(v); ok {
			return c.shapeOf(expanded)
		}
	case ClassType:
		return c.classStaticShape(v.Decl), true
	case IntersectionType:
		return newRelation(c.expandCustom, c.shapeOf).mergeIntersection(v)
	case FunctionType:
		return objectOf(functionMembers), true
	case LiteralType:
		return c.shapeOf(PrimitiveType{Kind: v.Base})
	case PrimitiveType:
		switch v.Kind {
		case PrimitiveString:
			return objectOf(stringMembers), true
		case PrimitiveNumber:
			return objectOf(numberMembers), true
		case PrimitiveBoolean:
			return objectOf(booleanMembers), true
		}
	}
	return ObjectType{}, false
}
