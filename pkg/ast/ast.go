package ast

type NodeType string

const (
	NodeProgram NodeType = "Program"

	NodeFunctionDeclaration  NodeType = "FunctionDeclaration"
	NodeVariableDeclaration  NodeType = "VariableDeclaration"
	NodeVariableDeclarator   NodeType = "VariableDeclarator"
	NodeClassDeclaration     NodeType = "ClassDeclaration"
	NodeClassProperty        NodeType = "ClassProperty"
	NodeClassMethod          NodeType = "ClassMethod"
	NodeInterfaceDeclaration NodeType = "InterfaceDeclaration"
	NodeTypeAliasDeclaration NodeType = "TypeAliasDeclaration"
	NodeParameter            NodeType = "Parameter"
	NodeTypeParameter        NodeType = "TypeParameter"

	NodeBlockStatement      NodeType = "BlockStatement"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodeEmptyStatement      NodeType = "EmptyStatement"
	NodeIfStatement         NodeType = "IfStatement"
	NodeForStatement        NodeType = "ForStatement"
	NodeWhileStatement      NodeType = "WhileStatement"
	NodeDoWhileStatement    NodeType = "DoWhileStatement"
	NodeReturnStatement     NodeType = "ReturnStatement"
	NodeBreakStatement      NodeType = "BreakStatement"
	NodeContinueStatement   NodeType = "ContinueStatement"
	NodeThrowStatement      NodeType = "ThrowStatement"
	NodeTryStatement        NodeType = "TryStatement"
	NodeCatchClause         NodeType = "CatchClause"

	NodeIdentifier              NodeType = "Identifier"
	NodeLiteral                 NodeType = "Literal"
	NodeTemplateLiteral         NodeType = "TemplateLiteral"
	NodeArrayExpression         NodeType = "ArrayExpression"
	NodeObjectExpression        NodeType = "ObjectExpression"
	NodeProperty                NodeType = "Property"
	NodeSpreadElement           NodeType = "SpreadElement"
	NodeBinaryExpression        NodeType = "BinaryExpression"
	NodeLogicalExpression       NodeType = "LogicalExpression"
	NodeUnaryExpression         NodeType = "UnaryExpression"
	NodeUpdateExpression        NodeType = "UpdateExpression"
	NodeAssignmentExpression    NodeType = "AssignmentExpression"
	NodeConditionalExpression   NodeType = "ConditionalExpression"
	NodeCallExpression          NodeType = "CallExpression"
	NodeMemberExpression        NodeType = "MemberExpression"
	NodeArrowFunctionExpression NodeType = "ArrowFunctionExpression"
	NodeFunctionExpression      NodeType = "FunctionExpression"
	NodeNewExpression           NodeType = "NewExpression"
	NodeThisExpression          NodeType = "ThisExpression"
	NodeSuperExpression         NodeType = "SuperExpression"
	NodeAsExpression            NodeType = "AsExpression"

	NodeKeywordType       NodeType = "KeywordType"
	NodeTypeReference     NodeType = "TypeReference"
	NodeUnionType         NodeType = "UnionType"
	NodeIntersectionType  NodeType = "IntersectionType"
	NodeArrayType         NodeType = "ArrayType"
	NodeTupleType         NodeType = "TupleType"
	NodeFunctionType      NodeType = "FunctionType"
	NodeObjectType        NodeType = "ObjectType"
	NodePropertySignature NodeType = "PropertySignature"
	NodeMethodSignature   NodeType = "MethodSignature"
	NodeLiteralType       NodeType = "LiteralType"
)

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	Loc  Span     `json:"loc"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.Loc }
func (nodeImpl) isNode()              {}
func (n *nodeImpl) setSpan(span Span) { n.Loc = span }

// Marker interfaces.

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Declaration is a statement that introduces a name into its scope.
type Declaration interface {
	Statement
	declarationNode()
}

type declarationMarker struct{}

func (declarationMarker) declarationNode() {}

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

// Program

type Program struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewProgram(body []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Body: body}
}

// Declarations

type FunctionDeclaration struct {
	nodeImpl
	statementMarker
	declarationMarker

	ID         *Identifier      `json:"id"`
	TypeParams []*TypeParameter `json:"typeParams,omitempty"`
	Params     []*Parameter     `json:"params"`
	ReturnType TypeExpression   `json:"returnType,omitempty"`
	Body       *BlockStatement  `json:"body"`
	Async      bool             `json:"async,omitempty"`
	Generator  bool             `json:"generator,omitempty"`
}

func NewFunctionDeclaration(id *Identifier, params []*Parameter, returnType TypeExpression, body *BlockStatement) *FunctionDeclaration {
	return &FunctionDeclaration{nodeImpl: newNodeImpl(NodeFunctionDeclaration), ID: id, Params: params, ReturnType: returnType, Body: body}
}

type VariableKind string

const (
	VariableLet   VariableKind = "let"
	VariableConst VariableKind = "const"
	VariableVar   VariableKind = "var"
)

type VariableDeclaration struct {
	nodeImpl
	statementMarker
	declarationMarker

	Kind         VariableKind          `json:"kind"`
	Declarations []*VariableDeclarator `json:"declarations"`
}

func NewVariableDeclaration(kind VariableKind, declarations []*VariableDeclarator) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDeclaration), Kind: kind, Declarations: declarations}
}

type VariableDeclarator struct {
	nodeImpl

	ID             *Identifier    `json:"id"`
	TypeAnnotation TypeExpression `json:"typeAnnotation,omitempty"`
	Init           Expression     `json:"init,omitempty"`
}

func NewVariableDeclarator(id *Identifier, annotation TypeExpression, init Expression) *VariableDeclarator {
	return &VariableDeclarator{nodeImpl: newNodeImpl(NodeVariableDeclarator), ID: id, TypeAnnotation: annotation, Init: init}
}

// Accessibility is the visibility modifier of a class member or parameter
// property. The zero value means no modifier was written.
type Accessibility string

const (
	AccessNone      Accessibility = ""
	AccessPublic    Accessibility = "public"
	AccessPrivate   Accessibility = "private"
	AccessProtected Accessibility = "protected"
)

type Modifiers struct {
	Access   Accessibility `json:"access,omitempty"`
	Static   bool          `json:"static,omitempty"`
	Readonly bool          `json:"readonly,omitempty"`
	Abstract bool          `json:"abstract,omitempty"`
}

type Parameter struct {
	nodeImpl

	Name           *Identifier    `json:"name"`
	TypeAnnotation TypeExpression `json:"typeAnnotation,omitempty"`
	Optional       bool           `json:"optional,omitempty"`
	Rest           bool           `json:"rest,omitempty"`
	Default        Expression     `json:"default,omitempty"`
	Modifiers      Modifiers      `json:"modifiers"`
}

func NewParameter(name *Identifier, annotation TypeExpression) *Parameter {
	return &Parameter{nodeImpl: newNodeImpl(NodeParameter), Name: name, TypeAnnotation: annotation}
}

// IsProperty reports whether the parameter declares a constructor parameter
// property (`constructor(private x: number)`).
func (p *Parameter) IsProperty() bool {
	return p.Modifiers.Access != AccessNone || p.Modifiers.Readonly
}

type TypeParameter struct {
	nodeImpl

	Name       *Identifier    `json:"name"`
	Constraint TypeExpression `json:"constraint,omitempty"`
	Default    TypeExpression `json:"default,omitempty"`
}

func NewTypeParameter(name *Identifier, constraint TypeExpression) *TypeParameter {
	return &TypeParameter{nodeImpl: newNodeImpl(NodeTypeParameter), Name: name, Constraint: constraint}
}

type ClassMember interface {
	Node
	classMemberNode()
}

type classMemberMarker struct{}

func (classMemberMarker) classMemberNode() {}

type ClassDeclaration struct {
	nodeImpl
	statementMarker
	declarationMarker

	ID            *Identifier      `json:"id"`
	TypeParams    []*TypeParameter `json:"typeParams,omitempty"`
	SuperClass    *Identifier      `json:"superClass,omitempty"`
	SuperTypeArgs []TypeExpression `json:"superTypeArgs,omitempty"`
	Implements    []*TypeReference `json:"implements,omitempty"`
	Members       []ClassMember    `json:"members"`
	Abstract      bool             `json:"abstract,omitempty"`
}

func NewClassDeclaration(id *Identifier, superClass *Identifier, implements []*TypeReference, members []ClassMember) *ClassDeclaration {
	return &ClassDeclaration{nodeImpl: newNodeImpl(NodeClassDeclaration), ID: id, SuperClass: superClass, Implements: implements, Members: members}
}

type ClassProperty struct {
	nodeImpl
	classMemberMarker

	Key            *Identifier    `json:"key"`
	TypeAnnotation TypeExpression `json:"typeAnnotation,omitempty"`
	Value          Expression     `json:"value,omitempty"`
	Optional       bool           `json:"optional,omitempty"`
	Modifiers      Modifiers      `json:"modifiers"`
}

func NewClassProperty(key *Identifier, annotation TypeExpression, value Expression) *ClassProperty {
	return &ClassProperty{nodeImpl: newNodeImpl(NodeClassProperty), Key: key, TypeAnnotation: annotation, Value: value}
}

type MethodKind string

const (
	MethodNormal      MethodKind = "method"
	MethodConstructor MethodKind = "constructor"
	MethodGetter      MethodKind = "get"
	MethodSetter      MethodKind = "set"
)

type ClassMethod struct {
	nodeImpl
	classMemberMarker

	Key        *Identifier      `json:"key"`
	Kind       MethodKind       `json:"kind"`
	TypeParams []*TypeParameter `json:"typeParams,omitempty"`
	Params     []*Parameter     `json:"params"`
	ReturnType TypeExpression   `json:"returnType,omitempty"`
	Body       *BlockStatement  `json:"body,omitempty"`
	Async      bool             `json:"async,omitempty"`
	Optional   bool             `json:"optional,omitempty"`
	Modifiers  Modifiers        `json:"modifiers"`
}

func NewClassMethod(key *Identifier, kind MethodKind, params []*Parameter, returnType TypeExpression, body *BlockStatement) *ClassMethod {
	return &ClassMethod{nodeImpl: newNodeImpl(NodeClassMethod), Key: key, Kind: kind, Params: params, ReturnType: returnType, Body: body}
}

type InterfaceDeclaration struct {
	nodeImpl
	statementMarker
	declarationMarker

	ID         *Identifier      `json:"id"`
	TypeParams []*TypeParameter `json:"typeParams,omitempty"`
	Extends    []*TypeReference `json:"extends,omitempty"`
	Members    []TypeMember     `json:"members"`
}

func NewInterfaceDeclaration(id *Identifier, extends []*TypeReference, members []TypeMember) *InterfaceDeclaration {
	return &InterfaceDeclaration{nodeImpl: newNodeImpl(NodeInterfaceDeclaration), ID: id, Extends: extends, Members: members}
}

type TypeAliasDeclaration struct {
	nodeImpl
	statementMarker
	declarationMarker

	ID         *Identifier      `json:"id"`
	TypeParams []*TypeParameter `json:"typeParams,omitempty"`
	Type       TypeExpression   `json:"typeAnnotation"`
}

func NewTypeAliasDeclaration(id *Identifier, typ TypeExpression) *TypeAliasDeclaration {
	return &TypeAliasDeclaration{nodeImpl: newNodeImpl(NodeTypeAliasDeclaration), ID: id, Type: typ}
}

// DeclaredName returns the identifier a declaration binds, or nil for
// variable declarations, which bind one name per declarator.
func DeclaredName(decl Declaration) *Identifier {
	switch d := decl.(type) {
	case *FunctionDeclaration:
		return d.ID
	case *ClassDeclaration:
		return d.ID
	case *InterfaceDeclaration:
		return d.ID
	case *TypeAliasDeclaration:
		return d.ID
	}
	return nil
}
