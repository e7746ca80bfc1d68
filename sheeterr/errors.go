// Package sheeterr defines the engine's error taxonomy: engine-level
// failures returned from the public API (InvalidPosition, FormulaParse,
// CircularDependency, bad address text) and the in-cell FormulaError
// value that a formula's evaluation can produce without failing the
// call that triggered it.
package sheeterr

import (
	"errors"
	"fmt"

	"github.com/vogtb/gridsheet/position"
)

// ErrInvalidPosition is returned by any public API receiving a Position
// outside [0, MaxRows) x [0, MaxCols). It never mutates state.
var ErrInvalidPosition = errors.New("gridsheet: invalid position")

// ErrBadAddress is returned by address-text convenience wrappers when the
// text does not parse as spreadsheet notation ("A1", "AA10"). It is
// distinct from ErrInvalidPosition: this is a syntax failure, not an
// out-of-bounds one.
var ErrBadAddress = errors.New("gridsheet: malformed cell address")

// CircularDependencyError reports that a SetCell at At would have
// introduced a cycle into the dependency graph. The edit is rejected and
// the cell's prior text is restored before this error is returned.
type CircularDependencyError struct {
	At position.Position
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("gridsheet: circular dependency through %s", e.At)
}

// ParseError reports that SetCell's content parsed as a formula (began
// with '=' and had more than one byte) but the formula façade rejected
// the expression. The cell's kind is left exactly as it was before this
// Set attempt.
type ParseError struct {
	At  position.Position
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("gridsheet: formula parse error at %s: %v", e.At, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FormulaErrorKind enumerates the in-cell error categories a formula can
// evaluate to. These are never returned as Go errors from SetCell; they
// are stored as a cell's value and surfaced from GetValue.
type FormulaErrorKind uint8

const (
	// Ref marks an invalid or unresolved cell reference.
	Ref FormulaErrorKind = iota
	// Value marks an operand of the wrong type (e.g. text in arithmetic).
	Value
	// Div0 marks division by zero.
	Div0
)

func (k FormulaErrorKind) String() string {
	switch k {
	case Ref:
		return "#REF!"
	case Value:
		return "#VALUE!"
	case Div0:
		return "#DIV/0!"
	default:
		return "#ERROR!"
	}
}

// FormulaError is the value a formula cell's cache holds, and GetValue
// returns, when evaluation fails for an in-formula reason. It is never
// returned as an `error` to callers of SetCell — it is a cell value,
// same as a number or a string.
type FormulaError struct {
	Kind FormulaErrorKind
}

func (e FormulaError) String() string {
	return e.Kind.String()
}

func (e FormulaError) Error() string {
	return e.Kind.String()
}

// NewFormulaError constructs a FormulaError of the given kind.
func NewFormulaError(kind FormulaErrorKind) *FormulaError {
	return &FormulaError{Kind: kind}
}
