package diagnostics

import (
	"strings"
	"testing"
)

func TestNewRendersLegacyMessage(t *testing.T) {
	err := New(DuplicateSymbol{Name: "x"}, 3, 7)
	if err.Kind != KindDuplicateSymbol {
		t.Fatalf("expected duplicate-symbol kind, got %s", err.Kind)
	}
	if want := "resolver: Symbol 'x' already exists"; err.Message != want {
		t.Fatalf("expected message %q, got %q", want, err.Message)
	}
	if err.Row != 3 || err.Col != 7 {
		t.Fatalf("expected position 3:7, got %d:%d", err.Row, err.Col)
	}
	if got := err.Error(); !strings.HasPrefix(got, "3:7: ") {
		t.Fatalf("unexpected Error() rendering %q", got)
	}
}

func TestNewClampsPositions(t *testing.T) {
	err := New(UnknownType{Name: "Foo"}, 0, -2)
	if err.Row != 1 || err.Col != 1 {
		t.Fatalf("expected clamped position 1:1, got %d:%d", err.Row, err.Col)
	}
}

func TestKindPhases(t *testing.T) {
	cases := map[Kind]Phase{
		KindUnexpectedCharacter: PhaseLexical,
		KindUnterminatedLiteral: PhaseLexical,
		KindUnexpectedToken:     PhaseSyntactic,
		KindInvalidSyntax:       PhaseSyntactic,
		KindDuplicateSymbol:     PhaseResolution,
		KindConstantAssignment:  PhaseResolution,
		KindIncompatibleTypes:   PhaseType,
		KindArityMismatch:       PhaseType,
		KindIOFailure:           PhaseIO,
	}
	for kind, want := range cases {
		if got := kind.Phase(); got != want {
			t.Fatalf("kind %s: expected phase %s, got %s", kind, want, got)
		}
	}
}

func TestSortOrdersByPhaseThenPosition(t *testing.T) {
	errs := []CompilerError{
		New(IncompatibleTypes{Context: "incompatible initializer", Source: "string", Target: "number"}, 1, 1),
		New(UnresolvedReference{Name: "b"}, 4, 1),
		New(UnresolvedReference{Name: "a"}, 2, 9),
		New(UnexpectedToken{Found: "';'"}, 9, 9),
	}
	Sort(errs)
	kinds := []Kind{KindUnexpectedToken, KindUnresolvedReference, KindUnresolvedReference, KindIncompatibleTypes}
	for i, want := range kinds {
		if errs[i].Kind != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, errs[i].Kind)
		}
	}
	if errs[1].Row != 2 {
		t.Fatalf("expected earlier resolution error first, got row %d", errs[1].Row)
	}
}

func TestFilterByPhase(t *testing.T) {
	errs := []CompilerError{
		New(UnexpectedToken{Found: "'}'"}, 1, 1),
		New(ConstantAssignment{Name: "y"}, 1, 14),
	}
	got := Filter(errs, PhaseResolution)
	if len(got) != 1 || got[0].Kind != KindConstantAssignment {
		t.Fatalf("expected only the resolution error, got %v", got)
	}
	if all := Filter(errs); len(all) != 2 {
		t.Fatalf("expected unfiltered slice, got %d entries", len(all))
	}
}

func TestResultHasErrors(t *testing.T) {
	ok := NewResult(42, nil)
	if ok.HasErrors() {
		t.Fatalf("expected no errors")
	}
	partial := NewResult("partial", []CompilerError{New(InvalidSyntax{Reason: "boom"}, 1, 1)})
	if !partial.HasErrors() || partial.Result != "partial" {
		t.Fatalf("expected partial result with errors, got %+v", partial)
	}
}

func TestArityMessageForms(t *testing.T) {
	cases := []struct {
		detail ArityMismatch
		want   string
	}{
		{ArityMismatch{Callee: "f", Min: 2, Max: 2, Got: 1}, "f expects 2 argument(s), got 1"},
		{ArityMismatch{Callee: "g", Min: 1, Max: 3, Got: 0}, "g expects 1-3 argument(s), got 0"},
		{ArityMismatch{Min: 1, Max: -1, Got: 0}, "call expects at least 1 argument(s), got 0"},
	}
	for _, tc := range cases {
		if got := tc.detail.Message(); !strings.Contains(got, tc.want) {
			t.Fatalf("expected %q in %q", tc.want, got)
		}
	}
}

func TestParsePhase(t *testing.T) {
	if p, err := ParsePhase("type"); err != nil || p != PhaseType {
		t.Fatalf("expected type phase, got %q (%v)", p, err)
	}
	if _, err := ParsePhase("semantic"); err == nil {
		t.Fatalf("expected error for unknown phase")
	}
}

func TestCircularReferenceIsATypeUsageError(t *testing.T) {
	alias := New(CircularReference{Name: "A"}, 1, 6)
	if alias.Kind != KindInvalidTypeUsage {
		t.Fatalf("expected invalid-type-usage, got %s", alias.Kind)
	}
	if want := "typechecker: type alias 'A' circularly references itself"; alias.Message != want {
		t.Fatalf("expected message %q, got %q", want, alias.Message)
	}
	base := New(CircularReference{Name: "I", Base: true}, 1, 11)
	if !strings.Contains(base.Message, "'I' is referenced directly or indirectly in its own base expression") {
		t.Fatalf("unexpected message %q", base.Message)
	}
}
