package formula

import (
	"testing"

	"github.com/vogtb/gridsheet/position"
	"github.com/vogtb/gridsheet/sheeterr"
)

func TestParseFormulaValid(t *testing.T) {
	valid := []string{
		"1+2",
		"A1",
		"A1+B2",
		"(1+2)*3",
		"-A1",
		"+A1",
		"1/2/3",
		"A1+(B2-C3)*2",
	}
	for _, expr := range valid {
		if _, err := ParseFormula(expr); err != nil {
			t.Errorf("ParseFormula(%q) failed: %v", expr, err)
		}
	}
}

func TestParseFormulaInvalid(t *testing.T) {
	invalid := []string{
		"",
		"1+",
		"(1+2",
		"1 2",
		"A",
		"1..2",
		"SUM",
	}
	for _, expr := range invalid {
		if _, err := ParseFormula(expr); err == nil {
			t.Errorf("ParseFormula(%q) should have failed", expr)
		}
	}
}

func lookupConst(values map[position.Position]any) Lookup {
	return func(p position.Position) (CellValue, bool) {
		v, ok := values[p]
		return v, ok
	}
}

func TestEvaluateArithmetic(t *testing.T) {
	f, err := ParseFormula("2+3*4")
	if err != nil {
		t.Fatalf("ParseFormula failed: %v", err)
	}
	got, ferr := f.Evaluate(lookupConst(nil))
	if ferr != nil {
		t.Fatalf("Evaluate returned FormulaError: %v", ferr)
	}
	if got != 14 {
		t.Errorf("Evaluate(2+3*4) = %v, want 14", got)
	}
}

func TestEvaluateDivisionByZero(t *testing.T) {
	f, err := ParseFormula("1/0")
	if err != nil {
		t.Fatalf("ParseFormula failed: %v", err)
	}
	_, ferr := f.Evaluate(lookupConst(nil))
	if ferr == nil || ferr.Kind != sheeterr.Div0 {
		t.Errorf("Evaluate(1/0) FormulaError = %v, want Div0", ferr)
	}
}

func TestEvaluateReferencePropagatesError(t *testing.T) {
	a1 := position.Position{Row: 0, Col: 0}
	values := map[position.Position]any{
		a1: sheeterr.NewFormulaError(sheeterr.Value),
	}
	f, err := ParseFormula("A1+1")
	if err != nil {
		t.Fatalf("ParseFormula failed: %v", err)
	}
	_, ferr := f.Evaluate(lookupConst(values))
	if ferr == nil || ferr.Kind != sheeterr.Value {
		t.Errorf("Evaluate(A1+1) FormulaError = %v, want Value", ferr)
	}
}

func TestEvaluateUnresolvedReferenceIsRefError(t *testing.T) {
	f, err := ParseFormula("A1")
	if err != nil {
		t.Fatalf("ParseFormula failed: %v", err)
	}
	_, ferr := f.Evaluate(lookupConst(nil))
	if ferr == nil || ferr.Kind != sheeterr.Ref {
		t.Errorf("Evaluate(A1) with no lookup entry FormulaError = %v, want Ref", ferr)
	}
}

func TestGetReferencedCellsDedupedOrdered(t *testing.T) {
	f, err := ParseFormula("A1+B2+A1")
	if err != nil {
		t.Fatalf("ParseFormula failed: %v", err)
	}
	refs := f.GetReferencedCells()
	want := []position.Position{{Row: 0, Col: 0}, {Row: 1, Col: 1}}
	if len(refs) != len(want) {
		t.Fatalf("GetReferencedCells() = %v, want %v", refs, want)
	}
	for i := range want {
		if refs[i] != want[i] {
			t.Errorf("GetReferencedCells()[%d] = %v, want %v", i, refs[i], want[i])
		}
	}
}

func TestCanonicalExpressionParenthesizesByPrecedence(t *testing.T) {
	cases := map[string]string{
		"1+2*3":   "1+2*3",
		"(1+2)*3": "(1+2)*3",
		"1*2+3":   "1*2+3",
		"1-(2-3)": "1-(2-3)",
		"1-2-3":   "1-2-3",
	}
	for expr, want := range cases {
		f, err := ParseFormula(expr)
		if err != nil {
			t.Fatalf("ParseFormula(%q) failed: %v", expr, err)
		}
		if got := f.GetExpression(); got != want {
			t.Errorf("ParseFormula(%q).GetExpression() = %q, want %q", expr, got, want)
		}
	}
}
