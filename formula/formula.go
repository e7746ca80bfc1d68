// Package formula supplies a concrete implementation of the formula
// façade that the sheet core consumes as an external collaborator: a
// lexer, a recursive-descent parser, an arithmetic AST, and a Formula
// type exposing Evaluate/GetExpression/GetReferencedCells. The grammar
// is deliberately small — number literals, relative cell references,
// the four arithmetic operators, unary +/-, and parentheses — with no
// functions or ranges.
package formula

import (
	"github.com/vogtb/gridsheet/position"
	"github.com/vogtb/gridsheet/sheeterr"
)

// Formula is an opaque handle over a parsed arithmetic expression: its
// AST, the deduplicated list of positions it syntactically references
// (in first-occurrence order), and its canonical printed form.
type Formula struct {
	root       node
	refs       []position.Position
	expression string
}

// ParseFormula parses text (the formula's content without the leading
// '=' sign) into a Formula. It fails with a descriptive error on
// malformed input; callers surface that as a ParseError.
func ParseFormula(text string) (*Formula, error) {
	lx := newLexer(text)
	tokens, err := lx.tokenize()
	if err != nil {
		return nil, err
	}

	ps := newParser(tokens)
	root, err := ps.parse()
	if err != nil {
		return nil, err
	}

	return &Formula{
		root:       root,
		refs:       collectRefs(root),
		expression: root.String(),
	}, nil
}

// Evaluate executes the formula's AST against lookup, returning either a
// numeric result or an in-cell FormulaError. It never returns a Go
// error: every failure during evaluation is a spreadsheet-level
// FormulaError per spec.
func (f *Formula) Evaluate(lookup Lookup) (float64, *sheeterr.FormulaError) {
	return f.root.Eval(lookup)
}

// GetExpression returns the canonical textual form of the parsed
// expression, without the leading formula sign.
func (f *Formula) GetExpression() string {
	return f.expression
}

// GetReferencedCells returns the deduplicated, order-preserved list of
// positions the formula syntactically references.
func (f *Formula) GetReferencedCells() []position.Position {
	return f.refs
}

// collectRefs walks the AST and returns every referenced position,
// deduplicated while preserving first-occurrence order.
func collectRefs(n node) []position.Position {
	var refs []position.Position
	seen := make(map[position.Position]bool)

	var walk func(node)
	walk = func(n node) {
		switch v := n.(type) {
		case *refNode:
			if !seen[v.pos] {
				seen[v.pos] = true
				refs = append(refs, v.pos)
			}
		case *unaryNode:
			walk(v.operand)
		case *binaryNode:
			walk(v.left)
			walk(v.right)
		}
	}
	walk(n)
	return refs
}
