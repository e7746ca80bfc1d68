package sheeterr

import (
	"errors"
	"testing"

	"github.com/vogtb/gridsheet/position"
)

func TestFormulaErrorStrings(t *testing.T) {
	cases := map[FormulaErrorKind]string{
		Ref:   "#REF!",
		Value: "#VALUE!",
		Div0:  "#DIV/0!",
	}
	for kind, want := range cases {
		if got := NewFormulaError(kind).String(); got != want {
			t.Errorf("FormulaErrorKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestParseErrorUnwraps(t *testing.T) {
	inner := errors.New("unexpected token")
	err := &ParseError{At: position.Position{Row: 0, Col: 0}, Err: inner}
	if !errors.Is(err, inner) {
		t.Errorf("errors.Is(err, inner) = false, want true")
	}
}

func TestCircularDependencyErrorMessage(t *testing.T) {
	err := &CircularDependencyError{At: position.Position{Row: 2, Col: 0}}
	if got, want := err.Error(), "gridsheet: circular dependency through A3"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
