// Package driver runs the front-end pipeline over compilation units and
// wires it to the filesystem: config discovery, source collection, change
// detection through git and machine-readable reports.
package driver

import (
	"zygr/frontend-go/pkg/ast"
	"zygr/frontend-go/pkg/diagnostics"
	"zygr/frontend-go/pkg/lexer"
	"zygr/frontend-go/pkg/parser"
	"zygr/frontend-go/pkg/resolver"
	"zygr/frontend-go/pkg/typechecker"
)

// Unit is one compilation unit after every phase has run. Each phase sees
// the partial output of the previous one, so a unit with lexical errors is
// still parsed, resolved and checked.
type Unit struct {
	Path    string
	Source  string
	Tokens  []lexer.Token
	Program *ast.Program
	Scopes  *resolver.ScopeTree
	Typed   *typechecker.TypedProgram
	// Origins maps every node of Program to Path.
	Origins map[ast.Node]string

	IOErrors         []diagnostics.CompilerError
	LexicalErrors    []diagnostics.CompilerError
	SyntaxErrors     []diagnostics.CompilerError
	ResolutionErrors []diagnostics.CompilerError
	TypeErrors       []diagnostics.CompilerError
}

// CompileOptions tunes a single compilation.
type CompileOptions struct {
	Globals []string
}

// Compile runs lex, parse, resolve and check over source. It shares no state
// with other calls and is safe to run concurrently.
func Compile(path, source string) *Unit {
	return CompileWith(path, source, CompileOptions{})
}

// CompileWith is Compile with explicit options.
func CompileWith(path, source string, opts CompileOptions) *Unit {
	unit := &Unit{Path: path, Source: source}

	lexed := lexer.Tokenize(source)
	unit.Tokens = lexed.Result
	unit.LexicalErrors = lexed.Errors

	parsed := parser.Parse(unit.Tokens)
	unit.Program = parsed.Result
	unit.SyntaxErrors = parsed.Errors
	unit.Origins = ast.AnnotateOrigins(unit.Program, path, nil)

	resolved := resolver.Resolve(unit.Program, resolver.WithGlobals(opts.Globals...))
	unit.Scopes = resolved.Result
	unit.ResolutionErrors = resolved.Errors

	checked := typechecker.Check(unit.Program, unit.Scopes)
	unit.Typed = checked.Result
	unit.TypeErrors = checked.Errors
	return unit
}

// ReadFailure converts a file read error into an io-failure record.
func ReadFailure(path string, err error) diagnostics.CompilerError {
	return diagnostics.New(diagnostics.IOFailure{Path: path, Reason: ioReason(err)}, 1, 1)
}

// failedUnit records a source that could not be read.
func failedUnit(path string, err error) *Unit {
	return &Unit{Path: path, IOErrors: []diagnostics.CompilerError{ReadFailure(path, err)}}
}

// Errors merges the errors of every phase in phase, row and column order.
func (u *Unit) Errors() []diagnostics.CompilerError {
	total := len(u.IOErrors) + len(u.LexicalErrors) + len(u.SyntaxErrors) + len(u.ResolutionErrors) + len(u.TypeErrors)
	if total == 0 {
		return nil
	}
	errs := make([]diagnostics.CompilerError, 0, total)
	errs = append(errs, u.IOErrors...)
	errs = append(errs, u.LexicalErrors...)
	errs = append(errs, u.SyntaxErrors...)
	errs = append(errs, u.ResolutionErrors...)
	errs = append(errs, u.TypeErrors...)
	diagnostics.Sort(errs)
	return errs
}

// HasErrors reports whether any phase recorded an error.
func (u *Unit) HasErrors() bool {
	return len(u.IOErrors)+len(u.LexicalErrors)+len(u.SyntaxErrors)+len(u.ResolutionErrors)+len(u.TypeErrors) > 0
}
