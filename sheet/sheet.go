// Package sheet owns every cell in a table, the printable-size tracking,
// and the dependency-graph algorithms: cycle detection before an edit
// commits, bidirectional edge maintenance, and transitive cache
// invalidation. This is the hardest part of the engine to get right —
// the other packages in this module (cell, formula, position, sheeterr)
// are its leaves.
package sheet

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/vogtb/gridsheet/cell"
	"github.com/vogtb/gridsheet/position"
	"github.com/vogtb/gridsheet/sheeterr"
)

// Sheet owns every materialized Cell and the tight bounding rectangle of
// occupied positions. It is single-threaded and synchronous: every
// public method completes before returning and none suspend. A caller
// wishing to use a Sheet across goroutines must serialize access
// externally.
type Sheet struct {
	cells  map[position.Position]*cell.Cell
	size   position.Size
	logger *zerolog.Logger // nil disables logging entirely
}

// New returns a fresh, empty Sheet.
func New() *Sheet {
	return &Sheet{cells: make(map[position.Position]*cell.Cell)}
}

// WithLogger attaches a structured logger that emits debug-level events
// on accepted edits, rejected cycles, and invalidation sweeps. Logging
// is purely observational: it never changes an operation's outcome, and
// it never logs cell contents, only counts and positions. Chainable so
// it reads like the teacher corpus's builder-style constructors.
func (s *Sheet) WithLogger(logger zerolog.Logger) *Sheet {
	s.logger = &logger
	return s
}

func (s *Sheet) debug() *zerolog.Event {
	if s.logger == nil {
		return nil
	}
	return s.logger.Debug()
}

// lookup is handed to every Cell this sheet creates so formula
// evaluation can resolve a referenced Position without the cell package
// depending on this one.
func (s *Sheet) lookup(p position.Position) *cell.Cell {
	return s.cells[p]
}

// SetCell parses text into a tentative cell kind at pos, rejects the
// edit if it would introduce a cyclic dependency, and otherwise commits
// it: rewiring edges, expanding the printable size, and invalidating
// every cell transitively depending on pos.
func (s *Sheet) SetCell(pos position.Position, text string) error {
	if !pos.IsValid() {
		return sheeterr.ErrInvalidPosition
	}

	c, existed := s.cells[pos]
	prevText := ""
	if !existed {
		c = cell.New(s.lookup)
		s.cells[pos] = c
	} else {
		prevText = c.GetText()
	}

	oldOut := positionSlice(c.Out())

	if err := c.Set(text); err != nil {
		return &sheeterr.ParseError{At: pos, Err: err}
	}

	newRefs := c.GetReferencedCells()

	if s.wouldCycle(pos, newRefs) {
		// restore prior text; a previously-nonexistent cell's prior text
		// is "", which Set never fails on, so this always succeeds.
		_ = c.Set(prevText)
		s.debug()
		if e := s.debug(); e != nil {
			e.Stringer("pos", pos).Msg("rejected SetCell: circular dependency")
		}
		return &sheeterr.CircularDependencyError{At: pos}
	}

	s.rewire(pos, c, oldOut, newRefs)
	s.expandSize(pos)
	s.invalidate(pos)

	if e := s.debug(); e != nil {
		e.Stringer("pos", pos).Int("refs", len(newRefs)).Msg("committed SetCell")
	}
	return nil
}

// rewire removes the mirror in-edge for every position pos no longer
// references, then materializes (as Empty, if absent) and links every
// position in newRefs.
func (s *Sheet) rewire(pos position.Position, c *cell.Cell, oldOut, newRefs []position.Position) {
	for _, r := range oldOut {
		if target := s.cells[r]; target != nil {
			target.DelIn(pos)
		}
		c.DelOut(r)
	}
	for _, r := range newRefs {
		target, ok := s.cells[r]
		if !ok {
			target = cell.New(s.lookup)
			s.cells[r] = target
		}
		c.AddOut(r)
		target.AddIn(pos)
		s.expandSize(r)
	}
}

// wouldCycle reports whether committing refs as pos's outgoing edges
// would create a cycle in the dependency graph. It reasons about the
// graph as it stands today: the only new edges are precisely refs, so
// any cycle through the proposed state must pass through at least one
// of them. A single visited set, scoped across every root, keeps the
// check O(V+E) in the reachable subgraph.
func (s *Sheet) wouldCycle(pos position.Position, refs []position.Position) bool {
	for _, r := range refs {
		if r == pos {
			return true
		}
	}

	visited := make(map[position.Position]bool)
	var reaches func(p position.Position) bool
	reaches = func(p position.Position) bool {
		if p == pos {
			return true
		}
		if visited[p] {
			return false
		}
		visited[p] = true
		c := s.cells[p]
		if c == nil {
			return false
		}
		for out := range c.Out() {
			if reaches(out) {
				return true
			}
		}
		return false
	}

	for _, r := range refs {
		if reaches(r) {
			return true
		}
	}
	return false
}

// invalidate walks incoming edges from pos (the reverse dependency
// graph) in DFS order and clears the memoized formula result of every
// cell it visits. pos itself is the source of change and does not need
// invalidating here: if the edit produced a formula, Set already reset
// its cache; if not, it has none.
func (s *Sheet) invalidate(pos position.Position) {
	visited := make(map[position.Position]bool)
	var walk func(p position.Position)
	walk = func(p position.Position) {
		c := s.cells[p]
		if c == nil {
			return
		}
		for in := range c.In() {
			if visited[in] {
				continue
			}
			visited[in] = true
			s.cells[in].InvalidateCache()
			walk(in)
		}
	}
	walk(pos)

	if e := s.debug(); e != nil {
		e.Stringer("pos", pos).Int("invalidated", len(visited)).Msg("invalidated dependents")
	}
}

// expandSize grows the printable size monotonically to include pos.
func (s *Sheet) expandSize(pos position.Position) {
	if s.size.Rows <= pos.Row {
		s.size.Rows = pos.Row + 1
	}
	if s.size.Cols <= pos.Col {
		s.size.Cols = pos.Col + 1
	}
}

// GetCell returns the cell at pos, or nil if pos is valid but
// unoccupied. It fails with ErrInvalidPosition for an out-of-range pos.
func (s *Sheet) GetCell(pos position.Position) (*cell.Cell, error) {
	if !pos.IsValid() {
		return nil, sheeterr.ErrInvalidPosition
	}
	return s.cells[pos], nil
}

// ClearCell removes the cell at pos. If other cells still reference it
// (its incoming edge set is non-empty), it is retained as an Empty
// placeholder rather than deleted outright, so those dependents keep
// resolving a target (preserving the invariant that every edge endpoint
// has a materialized Cell). Otherwise it is removed entirely and the
// printable size is tightened if it was on the frontier.
func (s *Sheet) ClearCell(pos position.Position) error {
	if !pos.IsValid() {
		return sheeterr.ErrInvalidPosition
	}

	c, ok := s.cells[pos]
	if !ok {
		return nil
	}

	outs := positionSlice(c.Out())
	for _, r := range outs {
		if target := s.cells[r]; target != nil {
			target.DelIn(pos)
		}
		c.DelOut(r)
	}

	if len(c.In()) > 0 {
		_ = c.Set("")
		s.invalidate(pos)
		return nil
	}

	delete(s.cells, pos)
	s.shrinkSize(pos)
	return nil
}

// shrinkSize rescans occupied cells to tighten the printable rectangle
// after removing a cell on its row or column frontier. Scans consider
// every occupied cell, not only same-row/column neighbors.
func (s *Sheet) shrinkSize(removed position.Position) {
	if removed.Row == s.size.Rows-1 {
		s.size.Rows = s.maxOccupiedRow() + 1
	}
	if removed.Col == s.size.Cols-1 {
		s.size.Cols = s.maxOccupiedCol() + 1
	}
}

func (s *Sheet) maxOccupiedRow() int {
	max := -1
	for p := range s.cells {
		if p.Row > max {
			max = p.Row
		}
	}
	return max
}

func (s *Sheet) maxOccupiedCol() int {
	max := -1
	for p := range s.cells {
		if p.Col > max {
			max = p.Col
		}
	}
	return max
}

// GetPrintableSize returns the tight bounding rectangle, anchored at
// (0,0), of every occupied cell.
func (s *Sheet) GetPrintableSize() position.Size {
	return s.size
}

// PrintValues writes every cell's value in row-major order over
// [0,rows) x [0,cols), tab-separated within a row and newline-terminated
// per row. Missing cells print as an empty, still-delimited field.
func (s *Sheet) PrintValues(out io.Writer) error {
	return s.forEachCell(out, func(c *cell.Cell) string {
		return valueText(c.GetValue())
	})
}

// PrintTexts writes every cell's GetText() the same way PrintValues
// writes values.
func (s *Sheet) PrintTexts(out io.Writer) error {
	return s.forEachCell(out, func(c *cell.Cell) string {
		return c.GetText()
	})
}

func (s *Sheet) forEachCell(out io.Writer, render func(*cell.Cell) string) error {
	if s.size == (position.Size{}) {
		return nil
	}
	for row := 0; row < s.size.Rows; row++ {
		for col := 0; col < s.size.Cols; col++ {
			if col > 0 {
				if _, err := io.WriteString(out, "\t"); err != nil {
					return err
				}
			}
			p := position.Position{Row: row, Col: col}
			if c, ok := s.cells[p]; ok {
				if _, err := io.WriteString(out, render(c)); err != nil {
					return err
				}
			}
		}
		if _, err := io.WriteString(out, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// valueText renders a Cell.GetValue() result the way PrintValues
// requires: numbers print without a trailing ".0", strings print
// verbatim, and FormulaError values print their #REF!/#VALUE!/#DIV/0!
// form.
func valueText(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return fmt.Sprintf("%g", val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// SetCellAt parses addr as spreadsheet notation ("A1") and delegates to
// SetCell. It fails with ErrBadAddress if addr does not parse.
func (s *Sheet) SetCellAt(addr string, text string) error {
	pos, err := position.Parse(addr)
	if err != nil {
		return sheeterr.ErrBadAddress
	}
	return s.SetCell(pos, text)
}

// GetCellAt parses addr as spreadsheet notation and delegates to GetCell.
func (s *Sheet) GetCellAt(addr string) (*cell.Cell, error) {
	pos, err := position.Parse(addr)
	if err != nil {
		return nil, sheeterr.ErrBadAddress
	}
	return s.GetCell(pos)
}

// ClearCellAt parses addr as spreadsheet notation and delegates to
// ClearCell.
func (s *Sheet) ClearCellAt(addr string) error {
	pos, err := position.Parse(addr)
	if err != nil {
		return sheeterr.ErrBadAddress
	}
	return s.ClearCell(pos)
}

// positionSlice copies a position set into a slice so callers can mutate
// the underlying map (e.g. via DelOut) while iterating the copy.
func positionSlice(set map[position.Position]bool) []position.Position {
	out := make([]position.Position, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	return out
}
