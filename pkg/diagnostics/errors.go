// Package diagnostics defines the error records every front-end phase
// produces. Problems in source text are never Go errors: each phase
// accumulates CompilerError values and hands them downstream inside a Result.
package diagnostics

import (
	"fmt"
	"sort"
)

// Phase identifies the pipeline stage that produced an error.
type Phase string

const (
	PhaseIO         Phase = "io"
	PhaseLexical    Phase = "lexical"
	PhaseSyntactic  Phase = "syntactic"
	PhaseResolution Phase = "resolution"
	PhaseType       Phase = "type"
)

var phaseOrder = map[Phase]int{
	PhaseIO:         0,
	PhaseLexical:    1,
	PhaseSyntactic:  2,
	PhaseResolution: 3,
	PhaseType:       4,
}

// prefix mirrors the "parser:"/"typechecker:" message convention.
func (p Phase) prefix() string {
	switch p {
	case PhaseLexical:
		return "lexer: "
	case PhaseSyntactic:
		return "parser: "
	case PhaseResolution:
		return "resolver: "
	case PhaseType:
		return "typechecker: "
	default:
		return "io: "
	}
}

// CompilerError is a single structured diagnostic. Message is the legacy
// rendering of Detail; consumers that filter or localise should switch on
// Kind or Detail instead.
type CompilerError struct {
	Kind    Kind   `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
	Row     int    `json:"row" yaml:"row"`
	Col     int    `json:"col" yaml:"col"`
	Detail  Detail `json:"-" yaml:"-"`
}

// New builds a CompilerError for detail at the given 1-based position.
func New(detail Detail, row, col int) CompilerError {
	if row < 1 {
		row = 1
	}
	if col < 1 {
		col = 1
	}
	kind := detail.Kind()
	return CompilerError{
		Kind:    kind,
		Message: kind.Phase().prefix() + detail.Message(),
		Row:     row,
		Col:     col,
		Detail:  detail,
	}
}

func (e CompilerError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Row, e.Col, e.Message)
}

// Phase reports the stage that produced the error.
func (e CompilerError) Phase() Phase {
	return e.Kind.Phase()
}

// Result is the boundary artifact of every phase. A non-empty Errors slice
// does not imply Result is empty: partial results are returned so tooling
// can keep working with best-effort output.
type Result[T any] struct {
	Result T
	Errors []CompilerError
}

// NewResult pairs a (possibly partial) result with its errors.
func NewResult[T any](result T, errs []CompilerError) Result[T] {
	return Result[T]{Result: result, Errors: errs}
}

// HasErrors reports whether any error was recorded.
func (r Result[T]) HasErrors() bool {
	return len(r.Errors) > 0
}

// Sort orders errors by phase, then row, then column. The sort is stable so
// errors at the same position keep their discovery order.
func Sort(errs []CompilerError) {
	sort.SliceStable(errs, func(i, j int) bool {
		a, b := errs[i], errs[j]
		if pa, pb := phaseOrder[a.Phase()], phaseOrder[b.Phase()]; pa != pb {
			return pa < pb
		}
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	})
}

// Filter returns the errors produced by any of the given phases. With no
// phases it returns errs unchanged.
func Filter(errs []CompilerError, phases ...Phase) []CompilerError {
	if len(phases) == 0 {
		return errs
	}
	want := make(map[Phase]struct{}, len(phases))
	for _, p := range phases {
		want[p] = struct{}{}
	}
	var out []CompilerError
	for _, err := range errs {
		if _, ok := want[err.Phase()]; ok {
			out = append(out, err)
		}
	}
	return out
}

// ParsePhase maps a user-facing phase name onto a Phase.
func ParsePhase(name string) (Phase, error) {
	p := Phase(name)
	if _, ok := phaseOrder[p]; !ok {
		return "", fmt.Errorf("diagnostics: unknown phase %q", name)
	}
	return p, nil
}
