// Package cell implements a single spreadsheet slot: its content kind
// (empty, text, or formula), the set of positions it references and is
// referenced by, and — for formula cells — a single-slot memoized
// result.
package cell

import (
	"strconv"

	"github.com/vogtb/gridsheet/formula"
	"github.com/vogtb/gridsheet/position"
	"github.com/vogtb/gridsheet/sheeterr"
)

// Kind tags which of the three alternatives a Cell currently holds.
type Kind int

const (
	Empty Kind = iota
	Text
	Formula
)

// Lookup resolves a Position to the cell currently stored there, or nil
// if no cell is materialized. It is the owning sheet's own lookup,
// bound into every cell it creates so formula evaluation can walk
// references without the cell package depending on the sheet package.
type Lookup func(position.Position) *Cell

// Cell is a single table slot. Construction is always Empty; Set
// transitions it to one of the three kinds. Edge sets store plain
// Positions, never pointers to other cells, so the graph survives any
// reallocation of the owning Sheet's cell storage.
type Cell struct {
	kind Kind
	text string // raw text for Text cells; unused for Empty/Formula

	f      *formula.Formula // parsed handle for Formula cells
	cache  *cachedValue     // single-slot memo, nil until first read
	lookup Lookup           // owning sheet's cell lookup, bound at construction

	out map[position.Position]bool // positions this cell directly references
	in  map[position.Position]bool // positions whose formulas reference this cell
}

// cachedValue holds exactly one of {number, FormulaError} once populated.
type cachedValue struct {
	number  float64
	ferr    *sheeterr.FormulaError
	isError bool
}

// New returns a freshly constructed Empty cell bound to lookup, the
// owning sheet's way of resolving other positions during formula
// evaluation.
func New(lookup Lookup) *Cell {
	return &Cell{
		kind:   Empty,
		lookup: lookup,
		out:    make(map[position.Position]bool),
		in:     make(map[position.Position]bool),
	}
}

// Set transitions the cell to Empty, Text, or Formula per text's shape:
//  1. empty text -> Empty.
//  2. text[0] == '=' and len(text) > 1 -> Formula, parsed from text[1:].
//     A parse failure leaves the cell's kind unmodified and is returned
//     as an error.
//  3. otherwise -> Text, holding text verbatim.
func (c *Cell) Set(text string) error {
	switch {
	case text == "":
		c.kind = Empty
		c.text = ""
		c.f = nil
		c.cache = nil
		return nil
	case text[0] == '=' && len(text) > 1:
		f, err := formula.ParseFormula(text[1:])
		if err != nil {
			return err
		}
		c.kind = Formula
		c.f = f
		c.cache = nil
		c.text = ""
		return nil
	default:
		c.kind = Text
		c.text = text
		c.f = nil
		c.cache = nil
		return nil
	}
}

// Kind returns the cell's current content kind.
func (c *Cell) Kind() Kind {
	return c.kind
}

// GetText returns the originally set string for Text cells, "" for
// Empty, and "=" + canonical-expression for Formula cells.
func (c *Cell) GetText() string {
	switch c.kind {
	case Text:
		return c.text
	case Formula:
		return "=" + c.f.GetExpression()
	default:
		return ""
	}
}

// GetValue returns the cell's current value: "" for Empty, the text
// value rules below for Text, and the memoized or freshly evaluated
// result for Formula (a float64 or a *sheeterr.FormulaError).
func (c *Cell) GetValue() any {
	switch c.kind {
	case Empty:
		return ""
	case Text:
		return textValue(c.text)
	case Formula:
		return c.formulaValue()
	default:
		return ""
	}
}

// textValue applies the Text value rules: a leading escape sign is
// stripped and suppresses numeric interpretation; an all-digit string
// becomes a float64; otherwise the text is its own value.
func textValue(text string) any {
	if text == "" {
		return text
	}
	if text[0] == '\'' {
		return text[1:]
	}
	if isAllDigits(text) {
		n, err := strconv.Atoi(text)
		if err == nil {
			return float64(n)
		}
	}
	return text
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (c *Cell) formulaValue() any {
	if c.cache != nil {
		if c.cache.isError {
			return c.cache.ferr
		}
		return c.cache.number
	}

	result, ferr := c.f.Evaluate(func(p position.Position) (formula.CellValue, bool) {
		target := c.lookup(p)
		if target == nil {
			return nil, false
		}
		return target.GetValue(), true
	})

	if ferr != nil {
		c.cache = &cachedValue{ferr: ferr, isError: true}
		return ferr
	}
	c.cache = &cachedValue{number: result}
	return result
}

// GetReferencedCells returns the direct outgoing positions from the last
// successful Set: the formula façade's referenced cells for Formula
// cells, empty otherwise.
func (c *Cell) GetReferencedCells() []position.Position {
	if c.kind != Formula {
		return nil
	}
	return c.f.GetReferencedCells()
}

// AddOut records pos as a position this cell directly references.
// Idempotent: inserting a present element is a no-op.
func (c *Cell) AddOut(pos position.Position) {
	c.out[pos] = true
}

// DelOut removes pos from this cell's outgoing edges.
func (c *Cell) DelOut(pos position.Position) {
	delete(c.out, pos)
}

// AddIn records pos as a position whose formula references this cell.
func (c *Cell) AddIn(pos position.Position) {
	c.in[pos] = true
}

// DelIn removes pos from this cell's incoming edges.
func (c *Cell) DelIn(pos position.Position) {
	delete(c.in, pos)
}

// Out returns the set of positions this cell directly references.
func (c *Cell) Out() map[position.Position]bool {
	return c.out
}

// In returns the set of positions whose formulas reference this cell.
func (c *Cell) In() map[position.Position]bool {
	return c.in
}

// InvalidateCache clears the memoized formula result. No-op for
// non-Formula cells.
func (c *Cell) InvalidateCache() {
	if c.kind == Formula {
		c.cache = nil
	}
}
