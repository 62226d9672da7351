package resolver

import (
	"zygr/frontend-go/pkg/ast"
)

// ScopeID indexes ScopeTree.Scopes.
type ScopeID int

// NoScope is the parent of the global scope.
const NoScope ScopeID = -1

type ScopeKind string

const (
	ScopeGlobal   ScopeKind = "global"
	ScopeFunction ScopeKind = "function"
	ScopeBlock    ScopeKind = "block"
)

type SymbolKind string

const (
	SymbolVar           SymbolKind = "var"
	SymbolLet           SymbolKind = "let"
	SymbolConst         SymbolKind = "const"
	SymbolFunction      SymbolKind = "function"
	SymbolParameter     SymbolKind = "parameter"
	SymbolClass         SymbolKind = "class"
	SymbolInterface     SymbolKind = "interface"
	SymbolTypeAlias     SymbolKind = "type"
	SymbolTypeParameter SymbolKind = "type-parameter"
	SymbolCatchParam    SymbolKind = "catch-parameter"
	SymbolBuiltin       SymbolKind = "builtin"
	SymbolBuiltinType   SymbolKind = "builtin-type"
)

// Symbol is one declared name. Node is the declaring node: a
// VariableDeclarator, FunctionDeclaration, FunctionExpression, Parameter,
// ClassDeclaration, InterfaceDeclaration, TypeAliasDeclaration,
// TypeParameter or CatchClause. Builtins have no node.
type Symbol struct {
	Name         string
	Kind         SymbolKind
	DeclaredType ast.TypeExpression
	ScopeKind    ScopeKind
	Scope        ScopeID
	IsConstant   bool
	Node         ast.Node
	Row          int
	Col          int
}

// IsType reports whether the symbol can be named in a type position.
func (s *Symbol) IsType() bool {
	switch s.Kind {
	case SymbolClass, SymbolInterface, SymbolTypeAlias, SymbolTypeParameter, SymbolBuiltin, SymbolBuiltinType:
		return true
	}
	return false
}

// IsValue reports whether the symbol can be referenced as a value.
func (s *Symbol) IsValue() bool {
	switch s.Kind {
	case SymbolInterface, SymbolTypeAlias, SymbolTypeParameter, SymbolBuiltinType:
		return false
	}
	return true
}

// Scope holds the symbols declared directly in one lexical scope. Parent is a
// handle into the owning tree, never a pointer.
type Scope struct {
	ID      ScopeID
	Kind    ScopeKind
	Parent  ScopeID
	Node    ast.Node
	Symbols map[string]*Symbol
	order   []string
}

// Lookup finds name in this scope only.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	sym, ok := s.Symbols[name]
	return sym, ok
}

// Names returns the declared names in declaration order.
func (s *Scope) Names() []string {
	return append([]string(nil), s.order...)
}

func (s *Scope) insert(sym *Symbol) bool {
	if _, exists := s.Symbols[sym.Name]; exists {
		return false
	}
	s.Symbols[sym.Name] = sym
	s.order = append(s.order, sym.Name)
	return true
}

// ScopeTree is the resolver's output: an arena of scopes plus the side
// tables that annotate the AST by node identity.
type ScopeTree struct {
	Scopes []*Scope

	// References maps every resolved identifier reference to its symbol.
	References map[*ast.Identifier]*Symbol
	// Declarations maps declaring nodes (see Symbol.Node) to their symbol.
	Declarations map[ast.Node]*Symbol
	// TypeReferences maps every type reference to its symbol, or nil when
	// the name is not declared.
	TypeReferences map[*ast.TypeReference]*Symbol
	// NodeScopes maps scope-introducing nodes to the scope they open.
	NodeScopes map[ast.Node]ScopeID
	// Assigned holds symbols that are the target of an assignment or update.
	Assigned map[*Symbol]bool
}

func newScopeTree() *ScopeTree {
	return &ScopeTree{
		References:     make(map[*ast.Identifier]*Symbol),
		Declarations:   make(map[ast.Node]*Symbol),
		TypeReferences: make(map[*ast.TypeReference]*Symbol),
		NodeScopes:     make(map[ast.Node]ScopeID),
		Assigned:       make(map[*Symbol]bool),
	}
}

func (t *ScopeTree) push(kind ScopeKind, parent ScopeID, node ast.Node) ScopeID {
	id := ScopeID(len(t.Scopes))
	t.Scopes = append(t.Scopes, &Scope{
		ID:      id,
		Kind:    kind,
		Parent:  parent,
		Node:    node,
		Symbols: make(map[string]*Symbol),
	})
	if node != nil {
		t.NodeScopes[node] = id
	}
	return id
}

// Root returns the global scope.
func (t *ScopeTree) Root() *Scope {
	if len(t.Scopes) == 0 {
		return nil
	}
	return t.Scopes[0]
}

// Scope returns the scope with the given id, or nil.
func (t *ScopeTree) Scope(id ScopeID) *Scope {
	if id < 0 || int(id) >= len(t.Scopes) {
		return nil
	}
	return t.Scopes[id]
}

// Lookup resolves name starting at scope id and walking towards the root.
func (t *ScopeTree) Lookup(id ScopeID, name string) (*Symbol, bool) {
	for scope := t.Scope(id); scope != nil; scope = t.Scope(scope.Parent) {
		if sym, ok := scope.Symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// ScopeOf returns the scope opened by node.
func (t *ScopeTree) ScopeOf(node ast.Node) (ScopeID, bool) {
	id, ok := t.NodeScopes[node]
	return id, ok
}

// Depth returns the number of ancestors of scope id.
func (t *ScopeTree) Depth(id ScopeID) int {
	depth := 0
	for scope := t.Scope(id); scope != nil && scope.Parent != NoScope; scope = t.Scope(scope.Parent) {
		depth++
	}
	return depth
}
