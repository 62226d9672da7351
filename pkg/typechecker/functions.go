package typechecker

import (
	"zygr/frontend-go/pkg/ast"
	"zygr/frontend-go/pkg/diagnostics"
	"zygr/frontend-go/pkg/resolver"
)

// functionLike is the common view of every function-bearing node.
type functionLike struct {
	node       ast.Node
	typeParams []*ast.TypeParameter
	params     []*ast.Parameter
	returnType ast.TypeExpression
	body       *ast.BlockStatement
	exprBody   ast.Expression
	async      bool
	generator  bool
	arrow      bool
	method     *ast.ClassMethod
}

func functionLikeOf(node ast.Node) (functionLike, bool) {
	switch n := node.(type) {
	case *ast.FunctionDeclaration:
		return functionLike{node: n, typeParams: n.TypeParams, params: n.Params, returnType: n.ReturnType, body: n.Body, async: n.Async, generator: n.Generator}, true
	case *ast.FunctionExpression:
		return functionLike{node: n, typeParams: n.TypeParams, params: n.Params, returnType: n.ReturnType, body: n.Body, async: n.Async, generator: n.Generator}, true
	case *ast.ArrowFunctionExpression:
		return functionLike{node: n, typeParams: n.TypeParams, params: n.Params, returnType: n.ReturnType, body: n.Body, exprBody: n.ExpressionBody, async: n.Async, arrow: true}, true
	case *ast.ClassMethod:
		return functionLike{node: n, typeParams: n.TypeParams, params: n.Params, returnType: n.ReturnType, body: n.Body, async: n.Async, method: n}, true
	}
	return functionLike{}, false
}

// declaredSignature builds the signature visible from annotations, the
// contextual type expected and parameter defaults. Return is nil when it
// has to be inferred from the body.
func (c *Checker) declaredSignature(fn functionLike, expected *FunctionType) FunctionType {
	sig := FunctionType{TypeParams: c.lowerTypeParams(fn.typeParams)}
	index := 0
	for _, param := range fn.params {
		if param.Name != nil && param.Name.Name == "this" {
			continue
		}
		t := c.parameterDeclaredType(param, expected, index)
		if param.Rest {
			sig.Rest = restElement(t)
			continue
		}
		sig.Params = append(sig.Params, t)
		sig.ParamNames = append(sig.ParamNames, paramName(param))
		if !param.Optional && param.Default == nil {
			sig.MinArgs = len(sig.Params)
		}
		index++
	}
	switch {
	case fn.returnType != nil:
		sig.Return = c.lowerType(fn.returnType)
	case fn.method != nil && fn.method.Kind == ast.MethodConstructor:
		sig.Return = Void
	case fn.generator:
		sig.Return = Any
	case fn.body == nil && fn.exprBody == nil:
		sig.Return = Any
	}
	return sig
}

// parameterDeclaredType is the type callers must supply for param. Rest
// parameters report their array type.
func (c *Checker) parameterDeclaredType(param *ast.Parameter, expected *FunctionType, index int) Type {
	if param.TypeAnnotation != nil {
		return c.lowerType(param.TypeAnnotation)
	}
	if expected != nil {
		if param.Rest {
			var elems []Type
			for i := index; i < len(expected.Params); i++ {
				elems = append(elems, expected.Params[i])
			}
			if expected.Rest != nil {
				elems = append(elems, expected.Rest)
			}
			if len(elems) == 0 {
				return ArrayType{Element: Any}
			}
			return ArrayType{Element: NewUnion(elems...)}
		}
		if t, ok := paramAt(*expected, index); ok {
			return t
		}
	}
	if param.Default != nil {
		return widen(c.expressionType(param.Default))
	}
	if param.Rest {
		return ArrayType{Element: Any}
	}
	return Any
}

// parameterBodyType is the type of param as seen inside the function body.
func (c *Checker) parameterBodyType(param *ast.Parameter, declared Type) Type {
	if declared == nil {
		declared = c.parameterDeclaredType(param, nil, 0)
	}
	if param.Optional && param.Default == nil && !param.Rest {
		return NewUnion(declared, Undefined)
	}
	return declared
}

// functionSignature returns the signature of a function declaration or
// method, checking its body first when the return type must be inferred.
func (c *Checker) functionSignature(fn functionLike, expected *FunctionType) FunctionType {
	if sig, ok := c.signatures[fn.node]; ok {
		return sig
	}
	sig := c.declaredSignature(fn, expected)
	if sig.Return != nil {
		c.signatures[fn.node] = sig
		return sig
	}
	return c.checkFunction(fn, expected)
}

// checkFunction checks the parameters and body of fn once and returns its
// final signature. A provisional signature returning any is visible to
// recursive references while the body is checked.
func (c *Checker) checkFunction(fn functionLike, expected *FunctionType) FunctionType {
	if c.checkedFunctions[fn.node] {
		return c.signatures[fn.node]
	}
	c.checkedFunctions[fn.node] = true
	switch {
	case fn.method != nil:
		defer c.pushClass(&classContext{decl: c.methodOwners[fn.method], static: fn.method.Modifiers.Static})()
	case !fn.arrow:
		defer c.pushClass(&classContext{})()
	}

	sig := c.declaredSignature(fn, expected)
	inferReturn := sig.Return == nil
	if inferReturn {
		provisional := sig
		provisional.Return = Any
		c.signatures[fn.node] = provisional
	} else {
		c.signatures[fn.node] = sig
	}

	c.bindParameters(fn, sig)

	ctx := &functionContext{node: fn.node, async: fn.async}
	if !inferReturn && !fn.generator && (fn.method == nil || fn.method.Kind != ast.MethodConstructor) {
		ctx.declared = sig.Return
		if fn.async {
			ctx.declared = awaitedType(sig.Return)
		}
	}
	c.functionStack = append(c.functionStack, ctx)
	if fn.body != nil {
		c.checkStatements(fn.body.Body)
	}
	if fn.body != nil && ctx.declared != nil && !blockTerminates(fn.body.Body) && !c.assignable(Undefined, ctx.declared) {
		var at ast.Node = fn.node
		if fn.returnType != nil {
			at = fn.returnType
		}
		c.reportIncompatible("missing return", Undefined, ctx.declared, at)
	}
	if fn.exprBody != nil {
		t := c.inferExpression(fn.exprBody, ctx.declared)
		ctx.returns = append(ctx.returns, t)
		if ctx.declared != nil && !isPrimitive(ctx.declared, PrimitiveVoid) && !c.assignable(t, ctx.declared) {
			c.reportIncompatible("incompatible return", t, ctx.declared, fn.exprBody)
		}
	}
	c.functionStack = c.functionStack[:len(c.functionStack)-1]

	if inferReturn {
		sig.Return = inferredReturn(ctx)
		if fn.async {
			sig.Return = promiseOf(awaitedType(sig.Return))
		}
	}
	c.signatures[fn.node] = sig
	c.infer.set(fn.node, sig)
	return sig
}

// blockTerminates reports whether control can never fall off the end of
// stmts: every path returns, throws or loops forever.
func blockTerminates(stmts []ast.Statement) bool {
	for _, stmt := range stmts {
		if terminates(stmt) {
			return true
		}
	}
	return false
}

func terminates(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case *ast.ReturnStatement, *ast.ThrowStatement:
		return true
	case *ast.BlockStatement:
		return blockTerminates(s.Body)
	case *ast.IfStatement:
		return s.Alternate != nil && terminates(s.Consequent) && terminates(s.Alternate)
	case *ast.TryStatement:
		if s.Finalizer != nil && blockTerminates(s.Finalizer.Body) {
			return true
		}
		if s.Handler == nil {
			return blockTerminates(s.Block.Body)
		}
		return blockTerminates(s.Block.Body) && blockTerminates(s.Handler.Body.Body)
	case *ast.WhileStatement:
		return isTrueLiteral(s.Test) && !breaksOut(s.Body)
	case *ast.ForStatement:
		return (s.Test == nil || isTrueLiteral(s.Test)) && !breaksOut(s.Body)
	case *ast.DoWhileStatement:
		return terminates(s.Body) || (isTrueLiteral(s.Test) && !breaksOut(s.Body))
	}
	return false
}

func isTrueLiteral(e ast.Expression) bool {
	lit, ok := e.(*ast.Literal)
	return ok && lit.Kind == ast.LiteralBoolean && lit.Value == "true"
}

// breaksOut reports a break in body that leaves the enclosing loop.
func breaksOut(body ast.Statement) bool {
	found := false
	ast.Inspect(body, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.BreakStatement:
			found = true
		case *ast.WhileStatement, *ast.ForStatement, *ast.DoWhileStatement,
			*ast.FunctionDeclaration, *ast.FunctionExpression, *ast.ArrowFunctionExpression, *ast.ClassDeclaration:
			return false
		}
		return !found
	})
	return found
}

func inferredReturn(ctx *functionContext) Type {
	if len(ctx.returns) == 0 {
		return Void
	}
	members := make([]Type, 0, len(ctx.returns)+1)
	for _, t := range ctx.returns {
		members = append(members, widen(t))
	}
	if ctx.bare {
		members = append(members, Undefined)
	}
	return NewUnion(members...)
}

// bindParameters records the body type of every parameter symbol and checks
// default values against the parameter type.
func (c *Checker) bindParameters(fn functionLike, sig FunctionType) {
	index := 0
	for _, param := range fn.params {
		if param.Name != nil && param.Name.Name == "this" {
			continue
		}
		var declared Type
		switch {
		case param.Rest:
			declared = ArrayType{Element: sig.Rest}
			if sig.Rest == nil {
				declared = ArrayType{Element: Any}
			}
			if param.TypeAnnotation != nil {
				declared = c.lowerType(param.TypeAnnotation)
			}
		case index < len(sig.Params):
			declared = sig.Params[index]
			index++
		}
		if param.Default != nil {
			def := c.expressionType(param.Default)
			if param.TypeAnnotation != nil && !c.assignable(def, declared) {
				c.reportIncompatible("incompatible parameter default", def, declared, param.Default)
			}
		}
		bodyType := c.parameterBodyType(param, declared)
		c.infer.set(param, bodyType)
		if sym := c.scopes.Declarations[param]; sym != nil {
			c.symbols[sym] = bodyType
		}
	}
}

// awaitedType unwraps a promise type.
func awaitedType(t Type) Type {
	if custom, ok := t.(CustomType); ok && custom.Decl == nil && custom.TypeName == "Promise" {
		if len(custom.Args) == 1 {
			return custom.Args[0]
		}
		return Any
	}
	return t
}

// Calls

func calleeName(expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.Identifier:
		return e.Name
	case *ast.MemberExpression:
		if id, ok := e.Property.(*ast.Identifier); ok && !e.Computed {
			return id.Name
		}
	case *ast.SuperExpression:
		return "super"
	}
	return ""
}

func (c *Checker) inferCall(call *ast.CallExpression) Type {
	if _, ok := call.Callee.(*ast.SuperExpression); ok {
		return c.inferSuperCall(call)
	}
	calleeType := c.inferExpression(call.Callee, nil)
	optional := call.Optional || isOptionalChain(call.Callee)
	if call.Optional {
		calleeType = nonNullable(calleeType)
	}
	result := c.applyCall(calleeType, call.TypeArguments, call.Arguments, calleeName(call.Callee), call)
	if optional {
		return NewUnion(result, Undefined)
	}
	return result
}

func isOptionalChain(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.MemberExpression:
		return e.Optional || isOptionalChain(e.Object)
	case *ast.CallExpression:
		return e.Optional || isOptionalChain(e.Callee)
	}
	return false
}

func (c *Checker) applyCall(callee Type, typeArgs []ast.TypeExpression, args []ast.Expression, name string, node ast.Node) Type {
	if isPermissive(callee) {
		c.inferArguments(args)
		return Any
	}
	sig, ok := c.callSignature(callee)
	if !ok {
		c.report(diagnostics.NotCallable{Type: typeName(callee)}, node)
		c.inferArguments(args)
		return Any
	}
	return c.checkArguments(sig, typeArgs, args, name, node)
}

func (c *Checker) inferArguments(args []ast.Expression) {
	for _, arg := range args {
		c.inferExpression(arg, nil)
	}
}

// callSignature finds the call signature of t.
func (c *Checker) callSignature(t Type) (FunctionType, bool) {
	switch v := t.(type) {
	case FunctionType:
		return v, true
	case CustomType:
		if expanded, ok := c.expandCustom(v); ok {
			return c.callSignature(expanded)
		}
	case IntersectionType:
		for _, member := range v.Members {
			if sig, ok := c.callSignature(member); ok {
				return sig, true
			}
		}
	case UnionType:
		var first *FunctionType
		for _, member := range v.Members {
			if isNullish(member) {
				continue
			}
			sig, ok := c.callSignature(member)
			if !ok {
				return FunctionType{}, false
			}
			if first == nil {
				first = &sig
			}
		}
		if first != nil {
			return *first, true
		}
	case TypeParameterType:
		if v.Constraint != nil {
			return c.callSignature(v.Constraint)
		}
	}
	return FunctionType{}, false
}

// checkArguments checks a call against sig: the argument count, type
// argument inference for generic signatures and each argument against its
// parameter. It returns the instantiated return type.
func (c *Checker) checkArguments(sig FunctionType, typeArgs []ast.TypeExpression, args []ast.Expression, name string, node ast.Node) Type {
	hasSpread := false
	for _, arg := range args {
		if _, ok := arg.(*ast.SpreadElement); ok {
			hasSpread = true
		}
	}
	if !hasSpread {
		if limit := sig.MaxArgs(); len(args) < sig.MinArgs || (limit >= 0 && len(args) > limit) {
			c.report(diagnostics.ArityMismatch{Callee: name, Min: sig.MinArgs, Max: limit, Got: len(args)}, node)
		}
	}

	argTypes := make([]Type, len(args))
	if len(sig.TypeParams) > 0 {
		params := make(map[string]bool, len(sig.TypeParams))
		bindings := make(map[string]Type, len(sig.TypeParams))
		for i, tp := range sig.TypeParams {
			params[tp.ParameterName] = true
			if i < len(typeArgs) {
				bindings[tp.ParameterName] = c.lowerType(typeArgs[i])
			}
		}
		explicit := len(typeArgs) > 0
		for pass := 0; pass < 2; pass++ {
			for i, arg := range args {
				if isContextSensitive(arg) != (pass == 1) {
					continue
				}
				paramType, ok := paramAt(sig, i)
				if !ok || hasSpread {
					argTypes[i] = c.inferExpression(arg, nil)
					continue
				}
				var expected Type
				if explicit || pass == 1 {
					expected = substituteType(paramType, bindings)
				}
				argTypes[i] = c.inferExpression(arg, expected)
				if !explicit {
					inferTypeArguments(paramType, argTypes[i], params, bindings)
				}
			}
		}
		for _, tp := range sig.TypeParams {
			if _, ok := bindings[tp.ParameterName]; !ok {
				bindings[tp.ParameterName] = Unknown
			}
		}
		sig = substituteFunctionType(sig, bindings)
	} else {
		for i, arg := range args {
			var expected Type
			if t, ok := paramAt(sig, i); ok && !hasSpread {
				expected = t
			}
			argTypes[i] = c.inferExpression(arg, expected)
		}
	}

	if !hasSpread {
		for i, arg := range args {
			paramType, ok := paramAt(sig, i)
			if !ok {
				continue
			}
			if !c.assignable(argTypes[i], paramType) {
				c.reportIncompatible("incompatible argument", argTypes[i], paramType, arg)
			}
		}
	}
	if sig.Return == nil {
		return Any
	}
	return sig.Return
}

// isContextSensitive reports arguments whose type depends on the parameter
// they are passed to.
func isContextSensitive(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.ArrowFunctionExpression:
		for _, param := range e.Params {
			if param.TypeAnnotation == nil {
				return true
			}
		}
	case *ast.FunctionExpression:
		for _, param := range e.Params {
			if param.TypeAnnotation == nil {
				return true
			}
		}
	}
	return false
}

func (c *Checker) inferNew(e *ast.NewExpression) Type {
	calleeType := c.inferExpression(e.Callee, nil)
	name := calleeName(e.Callee)
	if class, ok := calleeType.(ClassType); ok {
		return c.checkArguments(c.classConstructor(class.Decl), e.TypeArguments, e.Arguments, class.ClassName, e)
	}
	if id, ok := e.Callee.(*ast.Identifier); ok {
		if sym := c.scopes.References[id]; sym != nil && sym.Kind == resolver.SymbolBuiltin {
			if sig, ok := builtinConstructor(sym.Name); ok {
				return c.checkArguments(sig, e.TypeArguments, e.Arguments, name, e)
			}
		}
	}
	return c.applyCall(calleeType, e.TypeArguments, e.Arguments, name, e)
}

// inferSuperCall checks `super(...)` against the base class constructor.
func (c *Checker) inferSuperCall(call *ast.CallExpression) Type {
	c.infer.set(call.Callee, Any)
	ctx := c.currentClass()
	if ctx == nil || ctx.decl == nil {
		c.inferArguments(call.Arguments)
		return Void
	}
	base, args, ok := c.superClass(ctx.decl)
	if !ok {
		c.inferArguments(call.Arguments)
		return Void
	}
	ctor := c.classConstructor(base)
	ctor = substituteFunctionType(ctor, typeArgBindings(base.TypeParams, args))
	ctor.TypeParams = nil
	c.checkArguments(ctor, nil, call.Arguments, "super", call)
	return Void
}
