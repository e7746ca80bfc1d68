package formula

import (
	"fmt"

	"github.com/vogtb/gridsheet/position"
	"github.com/vogtb/gridsheet/sheeterr"
)

// CellValue is whatever a looked-up cell currently holds, as seen by a
// formula during evaluation: a number, a string, or an in-cell
// FormulaError. It mirrors Cell.GetValue's return type without formula
// importing the cell package; an Empty cell's value is the empty string,
// which arithmetic treats as a non-numeric operand. A nil value counts
// as 0.
type CellValue any

// Lookup resolves a Position to the current value of the cell there.
// ok is false only if the position was never materialized, which the
// sheet is expected to prevent for any position a formula references.
type Lookup func(position.Position) (value CellValue, ok bool)

// node is one arithmetic AST node. Eval returns either a numeric result
// or a FormulaError — never both, and never a Go error, since formula
// evaluation failures are in-cell values per spec, not call failures.
type node interface {
	Eval(lookup Lookup) (float64, *sheeterr.FormulaError)
	String() string
}

type numberNode struct {
	value float64
}

func (n *numberNode) Eval(Lookup) (float64, *sheeterr.FormulaError) {
	return n.value, nil
}

func (n *numberNode) String() string {
	return formatNumber(n.value)
}

type refNode struct {
	pos position.Position
}

func (n *refNode) Eval(lookup Lookup) (float64, *sheeterr.FormulaError) {
	val, ok := lookup(n.pos)
	if !ok {
		return 0, sheeterr.NewFormulaError(sheeterr.Ref)
	}
	switch v := val.(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case *sheeterr.FormulaError:
		return 0, v
	default:
		return 0, sheeterr.NewFormulaError(sheeterr.Value)
	}
}

func (n *refNode) String() string {
	return n.pos.String()
}

type unaryOp int

const (
	unaryPlus unaryOp = iota
	unaryMinus
)

type unaryNode struct {
	op      unaryOp
	operand node
}

func (n *unaryNode) Eval(lookup Lookup) (float64, *sheeterr.FormulaError) {
	v, ferr := n.operand.Eval(lookup)
	if ferr != nil {
		return 0, ferr
	}
	if n.op == unaryMinus {
		return -v, nil
	}
	return v, nil
}

func (n *unaryNode) String() string {
	operand := n.operand.String()
	if _, ok := n.operand.(*binaryNode); ok {
		operand = "(" + operand + ")"
	}
	if n.op == unaryMinus {
		return "-" + operand
	}
	return operand
}

type binaryOp int

const (
	opAdd binaryOp = iota
	opSub
	opMul
	opDiv
)

func (op binaryOp) String() string {
	switch op {
	case opAdd:
		return "+"
	case opSub:
		return "-"
	case opMul:
		return "*"
	case opDiv:
		return "/"
	default:
		return "?"
	}
}

// precedence of the operator; used to decide whether a child needs
// parenthesizing in the canonical textual form.
func (op binaryOp) precedence() int {
	switch op {
	case opAdd, opSub:
		return 1
	case opMul, opDiv:
		return 2
	default:
		return 0
	}
}

type binaryNode struct {
	op          binaryOp
	left, right node
}

func (n *binaryNode) Eval(lookup Lookup) (float64, *sheeterr.FormulaError) {
	l, ferr := n.left.Eval(lookup)
	if ferr != nil {
		return 0, ferr
	}
	r, ferr := n.right.Eval(lookup)
	if ferr != nil {
		return 0, ferr
	}
	switch n.op {
	case opAdd:
		return l + r, nil
	case opSub:
		return l - r, nil
	case opMul:
		return l * r, nil
	case opDiv:
		if r == 0 {
			return 0, sheeterr.NewFormulaError(sheeterr.Div0)
		}
		return l / r, nil
	default:
		return 0, sheeterr.NewFormulaError(sheeterr.Value)
	}
}

func (n *binaryNode) String() string {
	left := n.left.String()
	if childBinary, ok := n.left.(*binaryNode); ok && childBinary.op.precedence() < n.op.precedence() {
		left = "(" + left + ")"
	}
	right := n.right.String()
	if childBinary, ok := n.right.(*binaryNode); ok && childBinary.op.precedence() <= n.op.precedence() {
		right = "(" + right + ")"
	}
	return fmt.Sprintf("%s%s%s", left, n.op.String(), right)
}
