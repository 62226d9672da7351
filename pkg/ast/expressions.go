package ast

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

type LiteralKind string

const (
	LiteralNumber    LiteralKind = "number"
	LiteralString    LiteralKind = "string"
	LiteralBoolean   LiteralKind = "boolean"
	LiteralNull      LiteralKind = "null"
	LiteralUndefined LiteralKind = "undefined"
	LiteralBigInt    LiteralKind = "bigint"
)

// Literal is a single-token literal. Value holds the cooked text (string
// contents without quotes and with escapes applied, numbers without
// separators); Raw holds the exact source text.
type Literal struct {
	nodeImpl
	expressionMarker

	Kind  LiteralKind `json:"kind"`
	Value string      `json:"value"`
	Raw   string      `json:"raw"`
}

func NewLiteral(kind LiteralKind, value, raw string) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral), Kind: kind, Value: value, Raw: raw}
}

// TemplateLiteral interleaves text chunks with substitutions:
// Quasis[0] Expressions[0] Quasis[1] ... Quasis[n]. len(Quasis) is always
// len(Expressions)+1.
type TemplateLiteral struct {
	nodeImpl
	expressionMarker

	Quasis      []string     `json:"quasis"`
	Expressions []Expression `json:"expressions"`
}

func NewTemplateLiteral(quasis []string, expressions []Expression) *TemplateLiteral {
	return &TemplateLiteral{nodeImpl: newNodeImpl(NodeTemplateLiteral), Quasis: quasis, Expressions: expressions}
}

type ArrayExpression struct {
	nodeImpl
	expressionMarker

	Elements []Expression `json:"elements"`
}

func NewArrayExpression(elements []Expression) *ArrayExpression {
	return &ArrayExpression{nodeImpl: newNodeImpl(NodeArrayExpression), Elements: elements}
}

// ObjectMember is a *Property or a *SpreadElement inside an object literal.
type ObjectMember interface {
	Node
	objectMemberNode()
}

type objectMemberMarker struct{}

func (objectMemberMarker) objectMemberNode() {}

type ObjectExpression struct {
	nodeImpl
	expressionMarker

	Properties []ObjectMember `json:"properties"`
}

func NewObjectExpression(properties []ObjectMember) *ObjectExpression {
	return &ObjectExpression{nodeImpl: newNodeImpl(NodeObjectExpression), Properties: properties}
}

// Property is one `key: value` entry. Key is an *Identifier or *Literal, or
// any expression when Computed is set.
type Property struct {
	nodeImpl
	objectMemberMarker

	Key       Expression `json:"key"`
	Value     Expression `json:"value"`
	Computed  bool       `json:"computed,omitempty"`
	Shorthand bool       `json:"shorthand,omitempty"`
	Method    bool       `json:"method,omitempty"`
	// Accessor is "get" or "set" for accessor properties; Value is then the
	// accessor's *FunctionExpression.
	Accessor string `json:"accessor,omitempty"`
}

func NewProperty(key, value Expression) *Property {
	return &Property{nodeImpl: newNodeImpl(NodeProperty), Key: key, Value: value}
}

// KeyName returns the static name of a non-computed key.
func (p *Property) KeyName() (string, bool) {
	if p.Computed {
		return "", false
	}
	switch key := p.Key.(type) {
	case *Identifier:
		return key.Name, true
	case *Literal:
		return key.Value, true
	}
	return "", false
}

type SpreadElement struct {
	nodeImpl
	expressionMarker
	objectMemberMarker

	Argument Expression `json:"argument"`
}

func NewSpreadElement(argument Expression) *SpreadElement {
	return &SpreadElement{nodeImpl: newNodeImpl(NodeSpreadElement), Argument: argument}
}

// Operators

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

// LogicalExpression covers `&&`, `||` and `??`.
type LogicalExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewLogicalExpression(operator string, left, right Expression) *LogicalExpression {
	return &LogicalExpression{nodeImpl: newNodeImpl(NodeLogicalExpression), Operator: operator, Left: left, Right: right}
}

// UnaryExpression covers the prefix operators `! - + ~ typeof void delete
// await`.
type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Argument Expression `json:"argument"`
}

func NewUnaryExpression(operator string, argument Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Argument: argument}
}

type UpdateExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Prefix   bool       `json:"prefix"`
	Argument Expression `json:"argument"`
}

func NewUpdateExpression(operator string, prefix bool, argument Expression) *UpdateExpression {
	return &UpdateExpression{nodeImpl: newNodeImpl(NodeUpdateExpression), Operator: operator, Prefix: prefix, Argument: argument}
}

// AssignmentExpression covers `=` and every compound form (`+=`, `??=`, ...).
type AssignmentExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Target   Expression `json:"target"`
	Value    Expression `json:"value"`
}

func NewAssignmentExpression(operator string, target, value Expression) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignmentExpression), Operator: operator, Target: target, Value: value}
}

type ConditionalExpression struct {
	nodeImpl
	expressionMarker

	Test       Expression `json:"test"`
	Consequent Expression `json:"consequent"`
	Alternate  Expression `json:"alternate"`
}

func NewConditionalExpression(test, consequent, alternate Expression) *ConditionalExpression {
	return &ConditionalExpression{nodeImpl: newNodeImpl(NodeConditionalExpression), Test: test, Consequent: consequent, Alternate: alternate}
}

// Calls and member access

type CallExpression struct {
	nodeImpl
	expressionMarker

	Callee        Expression       `json:"callee"`
	TypeArguments []TypeExpression `json:"typeArguments,omitempty"`
	Arguments     []Expression     `json:"arguments"`
	Optional      bool             `json:"optional,omitempty"`
}

func NewCallExpression(callee Expression, arguments []Expression) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression), Callee: callee, Arguments: arguments}
}

// MemberExpression is `object.property`, `object[property]` (Computed) or
// their `?.` forms (Optional). For dotted access Property is an *Identifier
// naming the member, not a reference.
type MemberExpression struct {
	nodeImpl
	expressionMarker

	Object   Expression `json:"object"`
	Property Expression `json:"property"`
	Computed bool       `json:"computed,omitempty"`
	Optional bool       `json:"optional,omitempty"`
}

func NewMemberExpression(object, property Expression, computed bool) *MemberExpression {
	return &MemberExpression{nodeImpl: newNodeImpl(NodeMemberExpression), Object: object, Property: property, Computed: computed}
}

type NewExpression struct {
	nodeImpl
	expressionMarker

	Callee        Expression       `json:"callee"`
	TypeArguments []TypeExpression `json:"typeArguments,omitempty"`
	Arguments     []Expression     `json:"arguments"`
}

func NewNewExpression(callee Expression, arguments []Expression) *NewExpression {
	return &NewExpression{nodeImpl: newNodeImpl(NodeNewExpression), Callee: callee, Arguments: arguments}
}

type ThisExpression struct {
	nodeImpl
	expressionMarker
}

func NewThisExpression() *ThisExpression {
	return &ThisExpression{nodeImpl: newNodeImpl(NodeThisExpression)}
}

type SuperExpression struct {
	nodeImpl
	expressionMarker
}

func NewSuperExpression() *SuperExpression {
	return &SuperExpression{nodeImpl: newNodeImpl(NodeSuperExpression)}
}

// AsExpression is a type assertion `expr as T`.
type AsExpression struct {
	nodeImpl
	expressionMarker

	Expression Expression     `json:"expression"`
	Type       TypeExpression `json:"typeAnnotation"`
}

func NewAsExpression(expr Expression, typ TypeExpression) *AsExpression {
	return &AsExpression{nodeImpl: newNodeImpl(NodeAsExpression), Expression: expr, Type: typ}
}

// Functions

// ArrowFunctionExpression has either a block Body or a concise
// ExpressionBody, never both.
type ArrowFunctionExpression struct {
	nodeImpl
	expressionMarker

	TypeParams     []*TypeParameter `json:"typeParams,omitempty"`
	Params         []*Parameter     `json:"params"`
	ReturnType     TypeExpression   `json:"returnType,omitempty"`
	Body           *BlockStatement  `json:"body,omitempty"`
	ExpressionBody Expression       `json:"expressionBody,omitempty"`
	Async          bool             `json:"async,omitempty"`
}

func NewArrowFunctionExpression(params []*Parameter, returnType TypeExpression, body *BlockStatement, expressionBody Expression) *ArrowFunctionExpression {
	return &ArrowFunctionExpression{nodeImpl: newNodeImpl(NodeArrowFunctionExpression), Params: params, ReturnType: returnType, Body: body, ExpressionBody: expressionBody}
}

type FunctionExpression struct {
	nodeImpl
	expressionMarker

	ID         *Identifier      `json:"id,omitempty"`
	TypeParams []*TypeParameter `json:"typeParams,omitempty"`
	Params     []*Parameter     `json:"params"`
	ReturnType TypeExpression   `json:"returnType,omitempty"`
	Body       *BlockStatement  `json:"body"`
	Async      bool             `json:"async,omitempty"`
	Generator  bool             `json:"generator,omitempty"`
}

func NewFunctionExpression(id *Identifier, params []*Parameter, returnType TypeExpression, body *BlockStatement) *FunctionExpression {
	return &FunctionExpression{nodeImpl: newNodeImpl(NodeFunctionExpression), ID: id, Params: params, ReturnType: returnType, Body: body}
}
