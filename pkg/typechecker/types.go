package typechecker

import (
	"sort"
	"strings"

	"zygr/frontend-go/pkg/ast"
)

// Type represents a type understood by the checker. Name renders it the way
// it appears in diagnostics.
type Type interface {
	Name() string
}

type PrimitiveKind string

const (
	PrimitiveNumber    PrimitiveKind = "number"
	PrimitiveString    PrimitiveKind = "string"
	PrimitiveBoolean   PrimitiveKind = "boolean"
	PrimitiveNull      PrimitiveKind = "null"
	PrimitiveUndefined PrimitiveKind = "undefined"
	PrimitiveAny       PrimitiveKind = "any"
	PrimitiveUnknown   PrimitiveKind = "unknown"
	PrimitiveNever     PrimitiveKind = "never"
	PrimitiveVoid      PrimitiveKind = "void"
	PrimitiveBigInt    PrimitiveKind = "bigint"
	PrimitiveSymbol    PrimitiveKind = "symbol"
	PrimitiveObject    PrimitiveKind = "object"
)

type PrimitiveType struct {
	Kind PrimitiveKind
}

func (p PrimitiveType) Name() string { return string(p.Kind) }

var (
	Number    Type = PrimitiveType{Kind: PrimitiveNumber}
	String    Type = PrimitiveType{Kind: PrimitiveString}
	Boolean   Type = PrimitiveType{Kind: PrimitiveBoolean}
	Null      Type = PrimitiveType{Kind: PrimitiveNull}
	Undefined Type = PrimitiveType{Kind: PrimitiveUndefined}
	Any       Type = PrimitiveType{Kind: PrimitiveAny}
	Unknown   Type = PrimitiveType{Kind: PrimitiveUnknown}
	Never     Type = PrimitiveType{Kind: PrimitiveNever}
	Void      Type = PrimitiveType{Kind: PrimitiveVoid}
	BigInt    Type = PrimitiveType{Kind: PrimitiveBigInt}
	Symbol    Type = PrimitiveType{Kind: PrimitiveSymbol}
	Object    Type = PrimitiveType{Kind: PrimitiveObject}
)

// LiteralType is a single-value type. Value is the cooked value: the string
// contents, the canonical number spelling, "true" or "false".
type LiteralType struct {
	Value string
	Base  PrimitiveKind
}

func (l LiteralType) Name() string {
	if l.Base == PrimitiveString {
		return `"` + l.Value + `"`
	}
	if l.Base == PrimitiveBigInt {
		return l.Value + "n"
	}
	return l.Value
}

// FunctionType is a call signature. Params beyond MinArgs are optional; Rest
// is the element type of a trailing rest parameter.
type FunctionType struct {
	TypeParams []*TypeParameterType
	Params     []Type
	ParamNames []string
	MinArgs    int
	Rest       Type
	Return     Type
}

func (f FunctionType) Name() string {
	var b strings.Builder
	if len(f.TypeParams) > 0 {
		names := make([]string, len(f.TypeParams))
		for i, tp := range f.TypeParams {
			names[i] = tp.Name()
		}
		b.WriteString("<" + strings.Join(names, ", ") + ">")
	}
	parts := make([]string, 0, len(f.Params)+1)
	for i, param := range f.Params {
		label := ""
		if i < len(f.ParamNames) && f.ParamNames[i] != "" {
			label = f.ParamNames[i]
			if i >= f.MinArgs {
				label += "?"
			}
			label += ": "
		}
		parts = append(parts, label+typeName(param))
	}
	if f.Rest != nil {
		parts = append(parts, "..."+typeName(ArrayType{Element: f.Rest}))
	}
	b.WriteString("(" + strings.Join(parts, ", ") + ") => " + typeName(f.Return))
	return b.String()
}

// MaxArgs returns the largest accepted argument count, or -1 with a rest
// parameter.
func (f FunctionType) MaxArgs() int {
	if f.Rest != nil {
		return -1
	}
	return len(f.Params)
}

// UnionType members are flattened, de-duplicated and sorted; build it with
// NewUnion.
type UnionType struct {
	Members []Type
}

func (u UnionType) Name() string { return joinNames(u.Members, " | ") }

// IntersectionType members are flattened, de-duplicated and sorted; build it
// with NewIntersection.
type IntersectionType struct {
	Members []Type
}

func (i IntersectionType) Name() string { return joinNames(i.Members, " & ") }

type ArrayType struct {
	Element Type
}

func (a ArrayType) Name() string {
	elem := typeName(a.Element)
	switch a.Element.(type) {
	case UnionType, IntersectionType, FunctionType:
		elem = "(" + elem + ")"
	}
	return elem + "[]"
}

type TupleType struct {
	Elements []Type
}

func (t TupleType) Name() string { return "[" + joinNames(t.Elements, ", ") + "]" }

// Property is one member of an object shape.
type Property struct {
	Type     Type
	Optional bool
	Readonly bool
}

// ObjectType is a structural shape: lowered object type literals, object
// literal values, interfaces and class instances after expansion.
type ObjectType struct {
	Properties map[string]Property
}

func (o ObjectType) Name() string {
	if len(o.Properties) == 0 {
		return "{}"
	}
	names := o.PropertyNames()
	parts := make([]string, len(names))
	for i, name := range names {
		prop := o.Properties[name]
		label := name
		if prop.Readonly {
			label = "readonly " + label
		}
		if prop.Optional {
			label += "?"
		}
		parts[i] = label + ": " + typeName(prop.Type)
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// PropertyNames returns the property names in sorted order.
func (o ObjectType) PropertyNames() []string {
	names := make([]string, 0, len(o.Properties))
	for name := range o.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CustomType is a reference to a named interface, type alias or class
// instance type. It is expanded to its structure on demand; Decl is nil for
// opaque builtins such as Promise.
type CustomType struct {
	TypeName string
	Args     []Type
	Decl     ast.Node
}

func (c CustomType) Name() string {
	if len(c.Args) == 0 {
		return c.TypeName
	}
	return c.TypeName + "<" + joinNames(c.Args, ", ") + ">"
}

// ClassType is the type of a class used as a value: it can be constructed
// with `new` and carries the static members.
type ClassType struct {
	ClassName string
	Decl      *ast.ClassDeclaration
	Instance  CustomType
}

func (c ClassType) Name() string { return "typeof " + c.ClassName }

type TypeParameterType struct {
	ParameterName string
	Constraint    Type
}

func (t TypeParameterType) Name() string { return t.ParameterName }

func typeName(t Type) string {
	if t == nil {
		return "unknown"
	}
	return t.Name()
}

func joinNames(types []Type, sep string) string {
	parts := make([]string, len(types))
	for i, t := range types {
		name := typeName(t)
		if _, ok := t.(FunctionType); ok && sep != ", " {
			name = "(" + name + ")"
		}
		parts[i] = name
	}
	return strings.Join(parts, sep)
}
