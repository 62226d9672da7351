package ast

import "strconv"

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Num(value float64) *Literal {
	text := strconv.FormatFloat(value, 'g', -1, 64)
	return NewLiteral(LiteralNumber, text, text)
}

func Str(value string) *Literal {
	return NewLiteral(LiteralString, value, strconv.Quote(value))
}

func Bool(value bool) *Literal {
	text := strconv.FormatBool(value)
	return NewLiteral(LiteralBoolean, text, text)
}

func Null() *Literal {
	return NewLiteral(LiteralNull, "null", "null")
}

func Undef() *Literal {
	return NewLiteral(LiteralUndefined, "undefined", "undefined")
}

func Arr(elements ...Expression) *ArrayExpression {
	return NewArrayExpression(elements)
}

func Obj(props ...ObjectMember) *ObjectExpression {
	return NewObjectExpression(props)
}

func Prop(key string, value Expression) *Property {
	return NewProperty(ID(key), value)
}

// Expression helpers.

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}

func Logical(op string, left, right Expression) *LogicalExpression {
	return NewLogicalExpression(op, left, right)
}

func Assign(target, value Expression) *AssignmentExpression {
	return NewAssignmentExpression("=", target, value)
}

func Call(callee Expression, args ...Expression) *CallExpression {
	return NewCallExpression(callee, args)
}

func CallName(name string, args ...Expression) *CallExpression {
	return NewCallExpression(ID(name), args)
}

func Member(object Expression, name string) *MemberExpression {
	return NewMemberExpression(object, ID(name), false)
}

func Index(object, index Expression) *MemberExpression {
	return NewMemberExpression(object, index, true)
}

func New(callee string, args ...Expression) *NewExpression {
	return NewNewExpression(ID(callee), args)
}

func Arrow(params []*Parameter, body Expression) *ArrowFunctionExpression {
	return NewArrowFunctionExpression(params, nil, nil, body)
}

// Type expression helpers.

func Kw(keyword string) *KeywordType {
	return NewKeywordType(keyword)
}

func Ty(name string, args ...TypeExpression) *TypeReference {
	return NewTypeReference(ID(name), args)
}

func ArrT(element TypeExpression) *ArrayType {
	return NewArrayType(element)
}

func TupleT(elements ...TypeExpression) *TupleType {
	return NewTupleType(elements)
}

func UnionT(members ...TypeExpression) *UnionType {
	return NewUnionType(members)
}

func InterT(members ...TypeExpression) *IntersectionType {
	return NewIntersectionType(members)
}

func FnT(params []*Parameter, returnType TypeExpression) *FunctionType {
	return NewFunctionType(params, returnType)
}

func ObjT(members ...TypeMember) *ObjectType {
	return NewObjectType(members)
}

func PropSig(name string, annotation TypeExpression, optional bool) *PropertySignature {
	return NewPropertySignature(ID(name), annotation, optional)
}

// Declaration and statement helpers.

func Param(name string, annotation TypeExpression) *Parameter {
	return NewParameter(ID(name), annotation)
}

func Let(name string, annotation TypeExpression, init Expression) *VariableDeclaration {
	return NewVariableDeclaration(VariableLet, []*VariableDeclarator{NewVariableDeclarator(ID(name), annotation, init)})
}

func Const(name string, annotation TypeExpression, init Expression) *VariableDeclaration {
	return NewVariableDeclaration(VariableConst, []*VariableDeclarator{NewVariableDeclarator(ID(name), annotation, init)})
}

func Fn(name string, params []*Parameter, returnType TypeExpression, body ...Statement) *FunctionDeclaration {
	return NewFunctionDeclaration(ID(name), params, returnType, Block(body...))
}

func Block(body ...Statement) *BlockStatement {
	return NewBlockStatement(body)
}

func Expr(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func Ret(argument Expression) *ReturnStatement {
	return NewReturnStatement(argument)
}

func If(test Expression, consequent Statement, alternate Statement) *IfStatement {
	return NewIfStatement(test, consequent, alternate)
}

func Iface(name string, members ...TypeMember) *InterfaceDeclaration {
	return NewInterfaceDeclaration(ID(name), nil, members)
}

func Alias(name string, typ TypeExpression) *TypeAliasDeclaration {
	return NewTypeAliasDeclaration(ID(name), typ)
}

func Prog(body ...Statement) *Program {
	return NewProgram(body)
}
