package diagnostics

import (
	"fmt"
	"strings"
)

// Kind is the closed set of error kinds. Each kind has exactly one Detail type.
type Kind string

const (
	KindIOFailure Kind = "io-failure"

	KindUnexpectedCharacter Kind = "unexpected-character"
	KindUnterminatedLiteral Kind = "unterminated-literal"

	KindUnexpectedToken Kind = "unexpected-token"
	KindInvalidSyntax   Kind = "invalid-syntax"

	KindDuplicateSymbol     Kind = "duplicate-symbol"
	KindUnresolvedReference Kind = "unresolved-reference"
	KindConstantAssignment  Kind = "constant-assignment"

	KindIncompatibleTypes  Kind = "incompatible-types"
	KindArityMismatch      Kind = "arity-mismatch"
	KindUnknownProperty    Kind = "unknown-property"
	KindUnknownType        Kind = "unknown-type"
	KindOperatorMismatch   Kind = "operator-mismatch"
	KindNotCallable        Kind = "not-callable"
	KindMissingInitializer Kind = "missing-initializer"
	KindDuplicateMember    Kind = "duplicate-member"
	KindInvalidTypeUsage   Kind = "invalid-type-usage"
)

// Phase maps a kind onto its taxonomy group.
func (k Kind) Phase() Phase {
	switch k {
	case KindUnexpectedCharacter, KindUnterminatedLiteral:
		return PhaseLexical
	case KindUnexpectedToken, KindInvalidSyntax:
		return PhaseSyntactic
	case KindDuplicateSymbol, KindUnresolvedReference, KindConstantAssignment:
		return PhaseResolution
	case KindIOFailure:
		return PhaseIO
	default:
		return PhaseType
	}
}

// Detail carries the structured fields of one error kind.
type Detail interface {
	Kind() Kind
	Message() string
	detail()
}

type detailMarker struct{}

func (detailMarker) detail() {}

type IOFailure struct {
	detailMarker
	Path   string
	Reason string
}

func (IOFailure) Kind() Kind { return KindIOFailure }
func (d IOFailure) Message() string {
	return fmt.Sprintf("cannot read %s: %s", d.Path, d.Reason)
}

type UnexpectedCharacter struct {
	detailMarker
	Char string
}

func (UnexpectedCharacter) Kind() Kind { return KindUnexpectedCharacter }
func (d UnexpectedCharacter) Message() string {
	return fmt.Sprintf("unexpected character %q", d.Char)
}

// UnterminatedLiteral covers strings, template literals and block comments.
type UnterminatedLiteral struct {
	detailMarker
	What string
}

func (UnterminatedLiteral) Kind() Kind { return KindUnterminatedLiteral }
func (d UnterminatedLiteral) Message() string {
	return "unterminated " + d.What
}

type UnexpectedToken struct {
	detailMarker
	Found    string
	Expected string
}

func (UnexpectedToken) Kind() Kind { return KindUnexpectedToken }
func (d UnexpectedToken) Message() string {
	if d.Expected == "" {
		return fmt.Sprintf("unexpected token %s", d.Found)
	}
	return fmt.Sprintf("expected %s but found %s", d.Expected, d.Found)
}

type InvalidSyntax struct {
	detailMarker
	Reason string
}

func (InvalidSyntax) Kind() Kind        { return KindInvalidSyntax }
func (d InvalidSyntax) Message() string { return d.Reason }

type DuplicateSymbol struct {
	detailMarker
	Name string
}

func (DuplicateSymbol) Kind() Kind { return KindDuplicateSymbol }
func (d DuplicateSymbol) Message() string {
	return fmt.Sprintf("Symbol '%s' already exists", d.Name)
}

type UnresolvedReference struct {
	detailMarker
	Name string
}

func (UnresolvedReference) Kind() Kind { return KindUnresolvedReference }
func (d UnresolvedReference) Message() string {
	return fmt.Sprintf("unresolved reference '%s'", d.Name)
}

type ConstantAssignment struct {
	detailMarker
	Name string
}

func (ConstantAssignment) Kind() Kind { return KindConstantAssignment }
func (d ConstantAssignment) Message() string {
	return fmt.Sprintf("assignment to constant '%s'", d.Name)
}

// IncompatibleTypes reports a failed assignability check. Context names the
// site: "incompatible initializer", "incompatible assignment", ...
type IncompatibleTypes struct {
	detailMarker
	Context string
	Source  string
	Target  string
}

func (IncompatibleTypes) Kind() Kind { return KindIncompatibleTypes }
func (d IncompatibleTypes) Message() string {
	return fmt.Sprintf("%s: type '%s' is not assignable to type '%s'", d.Context, d.Source, d.Target)
}

// ArityMismatch reports a call with the wrong argument count. Max is -1 for
// variadic callees.
type ArityMismatch struct {
	detailMarker
	Callee string
	Min    int
	Max    int
	Got    int
}

func (ArityMismatch) Kind() Kind { return KindArityMismatch }
func (d ArityMismatch) Message() string {
	var expected string
	switch {
	case d.Max < 0:
		expected = fmt.Sprintf("at least %d", d.Min)
	case d.Min == d.Max:
		expected = fmt.Sprintf("%d", d.Min)
	default:
		expected = fmt.Sprintf("%d-%d", d.Min, d.Max)
	}
	callee := d.Callee
	if callee == "" {
		callee = "call"
	}
	return fmt.Sprintf("arity mismatch: %s expects %s argument(s), got %d", callee, expected, d.Got)
}

type UnknownProperty struct {
	detailMarker
	Property string
	Type     string
}

func (UnknownProperty) Kind() Kind { return KindUnknownProperty }
func (d UnknownProperty) Message() string {
	return fmt.Sprintf("unknown property '%s' on type '%s'", d.Property, d.Type)
}

type UnknownType struct {
	detailMarker
	Name string
}

func (UnknownType) Kind() Kind { return KindUnknownType }
func (d UnknownType) Message() string {
	return fmt.Sprintf("unknown type '%s'", d.Name)
}

type OperatorMismatch struct {
	detailMarker
	Operator string
	Operands []string
}

func (OperatorMismatch) Kind() Kind { return KindOperatorMismatch }
func (d OperatorMismatch) Message() string {
	quoted := make([]string, len(d.Operands))
	for i, op := range d.Operands {
		quoted[i] = "'" + op + "'"
	}
	return fmt.Sprintf("operator '%s' cannot be applied to %s", d.Operator, strings.Join(quoted, " and "))
}

type NotCallable struct {
	detailMarker
	Type string
}

func (NotCallable) Kind() Kind { return KindNotCallable }
func (d NotCallable) Message() string {
	return fmt.Sprintf("type '%s' is not callable", d.Type)
}

type MissingInitializer struct {
	detailMarker
	Name  string
	Const bool
}

func (MissingInitializer) Kind() Kind { return KindMissingInitializer }
func (d MissingInitializer) Message() string {
	if d.Const {
		return fmt.Sprintf("const declaration '%s' must be initialized", d.Name)
	}
	return fmt.Sprintf("variable '%s' has no type annotation or initializer and is never assigned", d.Name)
}

type DuplicateMember struct {
	detailMarker
	Owner string
	Name  string
}

func (DuplicateMember) Kind() Kind { return KindDuplicateMember }
func (d DuplicateMember) Message() string {
	return fmt.Sprintf("duplicate declaration '%s' in '%s'", d.Name, d.Owner)
}

// InvalidTypeUsage flags a value used as a type (AsType) or a type used as
// a value.
type InvalidTypeUsage struct {
	detailMarker
	Name   string
	AsType bool
}

func (InvalidTypeUsage) Kind() Kind { return KindInvalidTypeUsage }
func (d InvalidTypeUsage) Message() string {
	if d.AsType {
		return fmt.Sprintf("'%s' refers to a value, but is being used as a type", d.Name)
	}
	return fmt.Sprintf("'%s' only refers to a type, but is being used as a value", d.Name)
}

// CircularReference flags a declaration that depends on itself: an alias
// that expands to itself, or an interface or class among its own bases.
type CircularReference struct {
	detailMarker
	Name string
	Base bool
}

func (CircularReference) Kind() Kind { return KindInvalidTypeUsage }
func (d CircularReference) Message() string {
	if d.Base {
		return fmt.Sprintf("'%s' is referenced directly or indirectly in its own base expression", d.Name)
	}
	return fmt.Sprintf("type alias '%s' circularly references itself", d.Name)
}
