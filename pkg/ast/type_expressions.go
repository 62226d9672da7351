package ast

// Type expressions

type TypeExpression interface {
	Node
	typeExpressionNode()
}

type typeExpressionMarker struct{}

func (typeExpressionMarker) typeExpressionNode() {}

// KeywordType is a primitive type keyword such as `number` or `void`.
type KeywordType struct {
	nodeImpl
	typeExpressionMarker

	Keyword string `json:"keyword"`
}

func NewKeywordType(keyword string) *KeywordType {
	return &KeywordType{nodeImpl: newNodeImpl(NodeKeywordType), Keyword: keyword}
}

// TypeReference names a declared type. Qualified names (`A.B.C`) keep the
// head in Name and the remaining segments in Path.
type TypeReference struct {
	nodeImpl
	typeExpressionMarker

	Name          *Identifier      `json:"name"`
	Path          []string         `json:"path,omitempty"`
	TypeArguments []TypeExpression `json:"typeArguments,omitempty"`
}

func NewTypeReference(name *Identifier, args []TypeExpression) *TypeReference {
	return &TypeReference{nodeImpl: newNodeImpl(NodeTypeReference), Name: name, TypeArguments: args}
}

// QualifiedName renders the full dotted name.
func (t *TypeReference) QualifiedName() string {
	if t.Name == nil {
		return ""
	}
	name := t.Name.Name
	for _, seg := range t.Path {
		name += "." + seg
	}
	return name
}

type UnionType struct {
	nodeImpl
	typeExpressionMarker

	Types []TypeExpression `json:"types"`
}

func NewUnionType(types []TypeExpression) *UnionType {
	return &UnionType{nodeImpl: newNodeImpl(NodeUnionType), Types: types}
}

type IntersectionType struct {
	nodeImpl
	typeExpressionMarker

	Types []TypeExpression `json:"types"`
}

func NewIntersectionType(types []TypeExpression) *IntersectionType {
	return &IntersectionType{nodeImpl: newNodeImpl(NodeIntersectionType), Types: types}
}

type ArrayType struct {
	nodeImpl
	typeExpressionMarker

	ElementType TypeExpression `json:"elementType"`
}

func NewArrayType(element TypeExpression) *ArrayType {
	return &ArrayType{nodeImpl: newNodeImpl(NodeArrayType), ElementType: element}
}

type TupleType struct {
	nodeImpl
	typeExpressionMarker

	ElementTypes []TypeExpression `json:"elementTypes"`
}

func NewTupleType(elements []TypeExpression) *TupleType {
	return &TupleType{nodeImpl: newNodeImpl(NodeTupleType), ElementTypes: elements}
}

type FunctionType struct {
	nodeImpl
	typeExpressionMarker

	TypeParams []*TypeParameter `json:"typeParams,omitempty"`
	Params     []*Parameter     `json:"params"`
	ReturnType TypeExpression   `json:"returnType"`
}

func NewFunctionType(params []*Parameter, returnType TypeExpression) *FunctionType {
	return &FunctionType{nodeImpl: newNodeImpl(NodeFunctionType), Params: params, ReturnType: returnType}
}

// TypeMember is a *PropertySignature or *MethodSignature inside an object
// type literal or interface body.
type TypeMember interface {
	Node
	typeMemberNode()
}

type typeMemberMarker struct{}

func (typeMemberMarker) typeMemberNode() {}

type ObjectType struct {
	nodeImpl
	typeExpressionMarker

	Members []TypeMember `json:"members"`
}

func NewObjectType(members []TypeMember) *ObjectType {
	return &ObjectType{nodeImpl: newNodeImpl(NodeObjectType), Members: members}
}

type PropertySignature struct {
	nodeImpl
	typeMemberMarker

	Key            *Identifier    `json:"key"`
	TypeAnnotation TypeExpression `json:"typeAnnotation,omitempty"`
	Optional       bool           `json:"optional,omitempty"`
	Readonly       bool           `json:"readonly,omitempty"`
}

func NewPropertySignature(key *Identifier, annotation TypeExpression, optional bool) *PropertySignature {
	return &PropertySignature{nodeImpl: newNodeImpl(NodePropertySignature), Key: key, TypeAnnotation: annotation, Optional: optional}
}

type MethodSignature struct {
	nodeImpl
	typeMemberMarker

	Key        *Identifier      `json:"key"`
	TypeParams []*TypeParameter `json:"typeParams,omitempty"`
	Params     []*Parameter     `json:"params"`
	ReturnType TypeExpression   `json:"returnType,omitempty"`
	Optional   bool             `json:"optional,omitempty"`
}

func NewMethodSignature(key *Identifier, params []*Parameter, returnType TypeExpression) *MethodSignature {
	return &MethodSignature{nodeImpl: newNodeImpl(NodeMethodSignature), Key: key, Params: params, ReturnType: returnType}
}

// LiteralType is a string, number, boolean or bigint literal used as a type.
type LiteralType struct {
	nodeImpl
	typeExpressionMarker

	Literal *Literal `json:"literal"`
}

func NewLiteralType(literal *Literal) *LiteralType {
	return &LiteralType{nodeImpl: newNodeImpl(NodeLiteralType), Literal: literal}
}
