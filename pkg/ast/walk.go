package ast

// Visitor is invoked for each node encountered by Walk. If the result
// visitor w is not nil, Walk visits each of the children of node with w,
// followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order, children in source order.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	if v = v.Visit(node); v == nil {
		return
	}
	for _, child := range Children(node) {
		Walk(v, child)
	}
	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect calls f for every node reachable from node. Returning false stops
// descent into the current node's children.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

// Children lists the direct child nodes in source order. Absent optional
// children are skipped, so every element is non-nil.
func Children(node Node) []Node {
	var c childList
	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Body {
			c.add(stmt)
		}
	case *FunctionDeclaration:
		c.ident(n.ID)
		c.typeParams(n.TypeParams)
		c.params(n.Params)
		c.add(n.ReturnType)
		c.block(n.Body)
	case *VariableDeclaration:
		for _, d := range n.Declarations {
			if d != nil {
				c.add(d)
			}
		}
	case *VariableDeclarator:
		c.ident(n.ID)
		c.add(n.TypeAnnotation)
		c.add(n.Init)
	case *ClassDeclaration:
		c.ident(n.ID)
		c.typeParams(n.TypeParams)
		c.ident(n.SuperClass)
		for _, arg := range n.SuperTypeArgs {
			c.add(arg)
		}
		c.typeRefs(n.Implements)
		for _, m := range n.Members {
			c.add(m)
		}
	case *ClassProperty:
		c.ident(n.Key)
		c.add(n.TypeAnnotation)
		c.add(n.Value)
	case *ClassMethod:
		c.ident(n.Key)
		c.typeParams(n.TypeParams)
		c.params(n.Params)
		c.add(n.ReturnType)
		c.block(n.Body)
	case *InterfaceDeclaration:
		c.ident(n.ID)
		c.typeParams(n.TypeParams)
		c.typeRefs(n.Extends)
		for _, m := range n.Members {
			c.add(m)
		}
	case *TypeAliasDeclaration:
		c.ident(n.ID)
		c.typeParams(n.TypeParams)
		c.add(n.Type)
	case *Parameter:
		c.ident(n.Name)
		c.add(n.TypeAnnotation)
		c.add(n.Default)
	case *TypeParameter:
		c.ident(n.Name)
		c.add(n.Constraint)
		c.add(n.Default)

	case *BlockStatement:
		for _, stmt := range n.Body {
			c.add(stmt)
		}
	case *ExpressionStatement:
		c.add(n.Expression)
	case *IfStatement:
		c.add(n.Test)
		c.add(n.Consequent)
		c.add(n.Alternate)
	case *ForStatement:
		c.add(n.Init)
		c.add(n.Test)
		c.add(n.Update)
		c.add(n.Body)
	case *WhileStatement:
		c.add(n.Test)
		c.add(n.Body)
	case *DoWhileStatement:
		c.add(n.Body)
		c.add(n.Test)
	case *ReturnStatement:
		c.add(n.Argument)
	case *ThrowStatement:
		c.add(n.Argument)
	case *TryStatement:
		c.block(n.Block)
		if n.Handler != nil {
			c.add(n.Handler)
		}
		c.block(n.Finalizer)
	case *CatchClause:
		c.ident(n.Param)
		c.add(n.ParamType)
		c.block(n.Body)

	case *TemplateLiteral:
		for _, expr := range n.Expressions {
			c.add(expr)
		}
	case *ArrayExpression:
		for _, el := range n.Elements {
			c.add(el)
		}
	case *ObjectExpression:
		for _, p := range n.Properties {
			c.add(p)
		}
	case *Property:
		c.add(n.Key)
		c.add(n.Value)
	case *SpreadElement:
		c.add(n.Argument)
	case *BinaryExpression:
		c.add(n.Left)
		c.add(n.Right)
	case *LogicalExpression:
		c.add(n.Left)
		c.add(n.Right)
	case *UnaryExpression:
		c.add(n.Argument)
	case *UpdateExpression:
		c.add(n.Argument)
	case *AssignmentExpression:
		c.add(n.Target)
		c.add(n.Value)
	case *ConditionalExpression:
		c.add(n.Test)
		c.add(n.Consequent)
		c.add(n.Alternate)
	case *CallExpression:
		c.add(n.Callee)
		for _, arg := range n.TypeArguments {
			c.add(arg)
		}
		for _, arg := range n.Arguments {
			c.add(arg)
		}
	case *MemberExpression:
		c.add(n.Object)
		c.add(n.Property)
	case *NewExpression:
		c.add(n.Callee)
		for _, arg := range n.TypeArguments {
			c.add(arg)
		}
		for _, arg := range n.Arguments {
			c.add(arg)
		}
	case *AsExpression:
		c.add(n.Expression)
		c.add(n.Type)
	case *ArrowFunctionExpression:
		c.typeParams(n.TypeParams)
		c.params(n.Params)
		c.add(n.ReturnType)
		c.block(n.Body)
		c.add(n.ExpressionBody)
	case *FunctionExpression:
		c.ident(n.ID)
		c.typeParams(n.TypeParams)
		c.params(n.Params)
		c.add(n.ReturnType)
		c.block(n.Body)

	case *TypeReference:
		c.ident(n.Name)
		for _, arg := range n.TypeArguments {
			c.add(arg)
		}
	case *UnionType:
		for _, t := range n.Types {
			c.add(t)
		}
	case *IntersectionType:
		for _, t := range n.Types {
			c.add(t)
		}
	case *ArrayType:
		c.add(n.ElementType)
	case *TupleType:
		for _, t := range n.ElementTypes {
			c.add(t)
		}
	case *FunctionType:
		c.typeParams(n.TypeParams)
		c.params(n.Params)
		c.add(n.ReturnType)
	case *ObjectType:
		for _, m := range n.Members {
			c.add(m)
		}
	case *PropertySignature:
		c.ident(n.Key)
		c.add(n.TypeAnnotation)
	case *MethodSignature:
		c.ident(n.Key)
		c.typeParams(n.TypeParams)
		c.params(n.Params)
		c.add(n.ReturnType)
	case *LiteralType:
		if n.Literal != nil {
			c.add(n.Literal)
		}
	}
	return c
}

type childList []Node

// add appends node unless it is a nil interface. Typed nil pointers must be
// filtered by the caller via the typed helpers below.
func (c *childList) add(node Node) {
	if node == nil {
		return
	}
	*c = append(*c, node)
}

func (c *childList) ident(id *Identifier) {
	if id != nil {
		*c = append(*c, id)
	}
}

func (c *childList) block(b *BlockStatement) {
	if b != nil {
		*c = append(*c, b)
	}
}

func (c *childList) params(params []*Parameter) {
	for _, p := range params {
		if p != nil {
			*c = append(*c, p)
		}
	}
}

func (c *childList) typeParams(params []*TypeParameter) {
	for _, p := range params {
		if p != nil {
			*c = append(*c, p)
		}
	}
}

func (c *childList) typeRefs(refs []*TypeReference) {
	for _, r := range refs {
		if r != nil {
			*c = append(*c, r)
		}
	}
}
