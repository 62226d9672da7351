package typechecker

import (
	"fmt"
	"strconv"
	"strings"

	"zygr/frontend-go/pkg/ast"
)

// typeKey is the canonical identity of a type. Unions and intersections are
// sorted on construction, so equal keys mean structurally equal types. Named
// types carry the position of their declaration so that two declarations
// sharing a name never compare equal.
func typeKey(t Type) string {
	var b strings.Builder
	writeKey(&b, t)
	return b.String()
}

func writeKey(b *strings.Builder, t Type) {
	switch v := t.(type) {
	case nil:
		b.WriteString("<nil>")
	case PrimitiveType:
		b.WriteString(string(v.Kind))
	case LiteralType:
		b.WriteString("lit:" + string(v.Base) + ":" + strconv.Quote(v.Value))
	case TypeParameterType:
		b.WriteString("param:" + v.ParameterName)
	case FunctionType:
		b.WriteString("fn<")
		for i, tp := range v.TypeParams {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(tp.ParameterName)
		}
		b.WriteString(">(")
		for i, param := range v.Params {
			if i > 0 {
				b.WriteByte(',')
			}
			if i >= v.MinArgs {
				b.WriteByte('?')
			}
			writeKey(b, param)
		}
		if v.Rest != nil {
			b.WriteString(",...")
			writeKey(b, v.Rest)
		}
		b.WriteString(")=>")
		writeKey(b, v.Return)
	case UnionType:
		writeKeyList(b, "union(", v.Members)
	case IntersectionType:
		writeKeyList(b, "inter(", v.Members)
	case ArrayType:
		b.WriteString("array(")
		writeKey(b, v.Element)
		b.WriteByte(')')
	case TupleType:
		writeKeyList(b, "tuple(", v.Elements)
	case ObjectType:
		b.WriteString("obj{")
		for _, name := range v.PropertyNames() {
			prop := v.Properties[name]
			b.WriteString(strconv.Quote(name))
			if prop.Readonly {
				b.WriteString(" ro")
			}
			if prop.Optional {
				b.WriteByte('?')
			}
			b.WriteByte(':')
			writeKey(b, prop.Type)
			b.WriteByte(';')
		}
		b.WriteByte('}')
	case CustomType:
		b.WriteString("ref:" + v.TypeName + declKey(v.Decl))
		if len(v.Args) > 0 {
			writeKeyList(b, "<", v.Args)
		}
	case ClassType:
		b.WriteString("class:" + v.ClassName)
		if v.Decl != nil {
			b.WriteString(declKey(v.Decl))
		}
	default:
		b.WriteString(t.Name())
	}
}

func writeKeyList(b *strings.Builder, open string, types []Type) {
	b.WriteString(open)
	for i, t := range types {
		if i > 0 {
			b.WriteByte(',')
		}
		writeKey(b, t)
	}
	b.WriteByte(')')
}

// declKey renders where a named type was declared; builtins have none.
func declKey(decl ast.Node) string {
	if decl == nil {
		return ""
	}
	start := decl.Span().Start
	return fmt.Sprintf("@%d:%d", start.Line, start.Column)
}

// Equal reports whether a and b denote the same type.
func Equal(a, b Type) bool {
	return typeKey(a) == typeKey(b)
}

func isPrimitive(t Type, kind PrimitiveKind) bool {
	p, ok := t.(PrimitiveType)
	return ok && p.Kind == kind
}

func isAnyType(t Type) bool     { return isPrimitive(t, PrimitiveAny) }
func isUnknownType(t Type) bool { return t == nil || isPrimitive(t, PrimitiveUnknown) }
func isNeverType(t Type) bool   { return isPrimitive(t, PrimitiveNever) }

// isPermissive reports types that are compatible with everything in both
// directions: any, the recovery type unknown and unsolved type parameters.
func isPermissive(t Type) bool {
	if isAnyType(t) || isUnknownType(t) {
		return true
	}
	_, ok := t.(TypeParameterType)
	return ok
}

func isNullish(t Type) bool {
	return isPrimitive(t, PrimitiveNull) || isPrimitive(t, PrimitiveUndefined) || isPrimitive(t, PrimitiveVoid)
}

// primitiveBase returns the primitive kind of a primitive or literal type.
func primitiveBase(t Type) (PrimitiveKind, bool) {
	switch v := t.(type) {
	case PrimitiveType:
		return v.Kind, true
	case LiteralType:
		return v.Base, true
	}
	return "", false
}

// everyMember reports whether pred holds for t, or for every member when t
// is a union.
func everyMember(t Type, pred func(Type) bool) bool {
	if u, ok := t.(UnionType); ok {
		for _, member := range u.Members {
			if !pred(member) {
				return false
			}
		}
		return true
	}
	return pred(t)
}

func isNumberLike(t Type) bool {
	return everyMember(t, func(m Type) bool {
		kind, ok := primitiveBase(m)
		return ok && kind == PrimitiveNumber
	})
}

func isBigIntLike(t Type) bool {
	return everyMember(t, func(m Type) bool {
		kind, ok := primitiveBase(m)
		return ok && kind == PrimitiveBigInt
	})
}

func isStringLike(t Type) bool {
	return everyMember(t, func(m Type) bool {
		kind, ok := primitiveBase(m)
		return ok && kind == PrimitiveString
	})
}

// widen replaces literal types with their primitive, as a mutable binding
// initialised from a literal does.
func widen(t Type) Type {
	switch v := t.(type) {
	case LiteralType:
		return PrimitiveType{Kind: v.Base}
	case UnionType:
		members := make([]Type, len(v.Members))
		for i, member := range v.Members {
			members[i] = widen(member)
		}
		return NewUnion(members...)
	}
	return t
}

// nonNullable strips null, undefined and void from t.
func nonNullable(t Type) Type {
	if u, ok := t.(UnionType); ok {
		kept := make([]Type, 0, len(u.Members))
		for _, member := range u.Members {
			if !isNullish(member) {
				kept = append(kept, member)
			}
		}
		return NewUnion(kept...)
	}
	if isNullish(t) {
		return Never
	}
	return t
}

// nullishPart keeps only the null and undefined members of t.
func nullishPart(t Type) Type {
	if u, ok := t.(UnionType); ok {
		kept := make([]Type, 0, len(u.Members))
		for _, member := range u.Members {
			if isNullish(member) {
				kept = append(kept, member)
			}
		}
		return NewUnion(kept...)
	}
	if isNullish(t) {
		return t
	}
	return Never
}

func literalOf(base PrimitiveKind, value string) LiteralType {
	return LiteralType{Value: value, Base: base}
}
