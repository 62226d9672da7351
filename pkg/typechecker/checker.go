package typechecker

import (
	"zygr/frontend-go/pkg/ast"
	"zygr/frontend-go/pkg/diagnostics"
	"zygr/frontend-go/pkg/resolver"
)

// InferenceMap stores the type computed for each expression, declarator and
// function node.
type InferenceMap map[ast.Node]Type

func (m InferenceMap) set(node ast.Node, t Type) {
	if node == nil || t == nil {
		return
	}
	m[node] = t
}

func (m InferenceMap) get(node ast.Node) (Type, bool) {
	t, ok := m[node]
	return t, ok
}

// TypedProgram is the checker's output: the program, its scope tree and the
// types recorded for nodes and symbols.
type TypedProgram struct {
	Program *ast.Program
	Scopes  *resolver.ScopeTree
	Types   InferenceMap
	Symbols map[*resolver.Symbol]Type
}

// TypeOf returns the type recorded for node.
func (p *TypedProgram) TypeOf(node ast.Node) (Type, bool) {
	return p.Types.get(node)
}

// SymbolType returns the declared or inferred type of sym.
func (p *TypedProgram) SymbolType(sym *resolver.Symbol) (Type, bool) {
	t, ok := p.Symbols[sym]
	return t, ok
}

// GlobalType returns the type of a name declared in the global scope.
func (p *TypedProgram) GlobalType(name string) (Type, bool) {
	if p.Scopes == nil || p.Scopes.Root() == nil {
		return nil, false
	}
	sym, ok := p.Scopes.Root().Lookup(name)
	if !ok {
		return nil, false
	}
	return p.SymbolType(sym)
}

// Checker walks a resolved program and records type diagnostics.
type Checker struct {
	scopes  *resolver.ScopeTree
	infer   InferenceMap
	symbols map[*resolver.Symbol]Type
	errs    []diagnostics.CompilerError

	lowered          map[ast.TypeExpression]Type
	typeParams       map[*ast.TypeParameter]TypeParameterType
	signatures       map[ast.Node]FunctionType
	checkedFunctions map[ast.Node]bool
	declarators      map[*ast.VariableDeclarator]bool
	pendingSymbols   map[*resolver.Symbol]bool
	shapes           map[ast.Node]ObjectType
	staticShapes     map[*ast.ClassDeclaration]ObjectType
	resolvingShapes  map[ast.Node]bool
	resolvingStatics map[*ast.ClassDeclaration]bool
	resolvingCtors   map[*ast.ClassDeclaration]bool
	memberTypes      map[ast.Node]Type
	classChecked     map[*ast.ClassDeclaration]bool
	methodOwners     map[*ast.ClassMethod]*ast.ClassDeclaration

	functionStack []*functionContext
	classStack    []*classContext
}

type functionContext struct {
	node     ast.Node
	declared Type
	async    bool
	returns  []Type
	bare     bool
}

// classContext describes the class whose members are being checked. decl is
// nil inside plain functions, where `this` is untyped.
type classContext struct {
	decl   *ast.ClassDeclaration
	static bool
}

// New returns a checker bound to the scope tree produced by the resolver.
func New(scopes *resolver.ScopeTree) *Checker {
	return &Checker{
		scopes:           scopes,
		infer:            make(InferenceMap),
		symbols:          make(map[*resolver.Symbol]Type),
		lowered:          make(map[ast.TypeExpression]Type),
		typeParams:       make(map[*ast.TypeParameter]TypeParameterType),
		signatures:       make(map[ast.Node]FunctionType),
		checkedFunctions: make(map[ast.Node]bool),
		declarators:      make(map[*ast.VariableDeclarator]bool),
		pendingSymbols:   make(map[*resolver.Symbol]bool),
		shapes:           make(map[ast.Node]ObjectType),
		staticShapes:     make(map[*ast.ClassDeclaration]ObjectType),
		resolvingShapes:  make(map[ast.Node]bool),
		resolvingStatics: make(map[*ast.ClassDeclaration]bool),
		resolvingCtors:   make(map[*ast.ClassDeclaration]bool),
		memberTypes:      make(map[ast.Node]Type),
		classChecked:     make(map[*ast.ClassDeclaration]bool),
		methodOwners:     make(map[*ast.ClassMethod]*ast.ClassDeclaration),
	}
}

// Check type checks program against the scopes computed by the resolver.
// The typed program is always returned; every failure is recorded and
// checking continues to the end of the tree.
func Check(program *ast.Program, scopes *resolver.ScopeTree) diagnostics.Result[*TypedProgram] {
	return New(scopes).CheckProgram(program)
}

// CheckProgram checks every statement of program.
func (c *Checker) CheckProgram(program *ast.Program) diagnostics.Result[*TypedProgram] {
	if c.scopes == nil {
		c.scopes = resolver.Resolve(program).Result
	}
	typed := &TypedProgram{Program: program, Scopes: c.scopes, Types: c.infer, Symbols: c.symbols}
	if program == nil {
		return diagnostics.NewResult(typed, c.errs)
	}
	c.indexMethods(program)
	c.checkStatements(program.Body)
	c.settleSymbols()
	return diagnostics.NewResult(typed, c.errs)
}

// indexMethods records the class that owns every method so a method body
// checked on demand sees the right `this`.
func (c *Checker) indexMethods(program *ast.Program) {
	ast.Inspect(program, func(n ast.Node) bool {
		if decl, ok := n.(*ast.ClassDeclaration); ok {
			for _, member := range decl.Members {
				if m, ok := member.(*ast.ClassMethod); ok {
					c.methodOwners[m] = decl
				}
			}
		}
		return true
	})
}

// settleSymbols records a type for every declared symbol, including those
// only reachable as types.
func (c *Checker) settleSymbols() {
	for _, scope := range c.scopes.Scopes {
		for _, name := range scope.Names() {
			sym := scope.Symbols[name]
			if _, ok := c.symbols[sym]; ok || sym.Node == nil {
				continue
			}
			if sym.IsType() && !sym.IsValue() {
				c.symbols[sym] = c.typeOfTypeSymbol(sym, nil, nil)
				continue
			}
			c.symbolType(sym)
		}
	}
}

func (c *Checker) report(detail diagnostics.Detail, node ast.Node) {
	pos := node.Span().Start
	c.errs = append(c.errs, diagnostics.New(detail, pos.Line, pos.Column))
}

func (c *Checker) reportIncompatible(context string, source, target Type, node ast.Node) {
	c.report(diagnostics.IncompatibleTypes{Context: context, Source: typeName(source), Target: typeName(target)}, node)
}

// assignable is the structural assignability relation with named types
// expanded through their declarations.
func (c *Checker) assignable(source, target Type) bool {
	return newRelation(c.expandCustom, c.shapeOf).assignable(source, target)
}

func (c *Checker) currentFunction() *functionContext {
	if len(c.functionStack) == 0 {
		return nil
	}
	return c.functionStack[len(c.functionStack)-1]
}

func (c *Checker) currentClass() *classContext {
	if len(c.classStack) == 0 {
		return nil
	}
	return c.classStack[len(c.classStack)-1]
}

func (c *Checker) pushClass(ctx *classContext) func() {
	c.classStack = append(c.classStack, ctx)
	return func() { c.classStack = c.classStack[:len(c.classStack)-1] }
}

// Symbols

// symbolType returns the type of a value symbol, checking its declaration
// on demand when it has not been reached yet.
func (c *Checker) symbolType(sym *resolver.Symbol) Type {
	if sym == nil {
		return Unknown
	}
	if t, ok := c.symbols[sym]; ok {
		return t
	}
	if c.pendingSymbols[sym] {
		return Any
	}
	var t Type
	switch sym.Kind {
	case resolver.SymbolVar, resolver.SymbolLet, resolver.SymbolConst:
		decl, ok := sym.Node.(*ast.VariableDeclarator)
		if !ok {
			return Any
		}
		c.checkDeclarator(variableKindOf(sym.Kind), decl)
		if t, ok := c.symbols[sym]; ok {
			return t
		}
		return Any
	case resolver.SymbolFunction:
		fn, ok := functionLikeOf(sym.Node)
		if !ok {
			return Any
		}
		t = c.functionSignature(fn, nil)
	case resolver.SymbolParameter:
		param, ok := sym.Node.(*ast.Parameter)
		if !ok {
			return Any
		}
		t = c.parameterBodyType(param, nil)
	case resolver.SymbolClass:
		decl, ok := sym.Node.(*ast.ClassDeclaration)
		if !ok {
			return Any
		}
		t = c.classType(decl)
	case resolver.SymbolCatchParam:
		clause, ok := sym.Node.(*ast.CatchClause)
		if ok && clause.ParamType != nil {
			t = c.lowerType(clause.ParamType)
		} else {
			t = Any
		}
	case resolver.SymbolBuiltin:
		t = builtinValueType(sym.Name)
	default:
		return Any
	}
	c.symbols[sym] = t
	return t
}

func variableKindOf(kind resolver.SymbolKind) ast.VariableKind {
	switch kind {
	case resolver.SymbolConst:
		return ast.VariableConst
	case resolver.SymbolVar:
		return ast.VariableVar
	}
	return ast.VariableLet
}
