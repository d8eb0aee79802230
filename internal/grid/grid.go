// =============================================================================
// Quotation Extractor - Grid Model
// =============================================================================
//
// This package defines the in-memory view of a workbook that the extraction
// engine works on: a sheet is a 2-D array of nullable scalar cells addressed
// by 0-based row and column index.
//
// The workbook reader (see internal/workbook) is responsible for turning the
// underlying file format into this model. Everything downstream only depends
// on the Workbook interface defined here.
//
// =============================================================================

package grid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSheetNotFound is returned by Workbook.ReadSheet for unknown sheet names.
var ErrSheetNotFound = errors.New("sheet not found")

// =============================================================================
// CELLS
// =============================================================================

// Kind is the scalar type held by a cell.
type Kind int

const (
	// Empty marks a cell with no value.
	Empty Kind = iota

	// Text marks a string cell.
	Text

	// Number marks a numeric cell.
	Number
)

// Cell is a single nullable scalar value.
type Cell struct {
	Kind Kind
	Str  string
	Num  float64
}

// Blank returns an empty cell.
func Blank() Cell { return Cell{} }

// String returns a text cell.
func String(s string) Cell { return Cell{Kind: Text, Str: s} }

// Float returns a numeric cell.
func Float(v float64) Cell { return Cell{Kind: Number, Num: v} }

// IsBlank reports whether the cell is empty or holds only whitespace.
func (c Cell) IsBlank() bool {
	switch c.Kind {
	case Empty:
		return true
	case Text:
		return strings.TrimSpace(c.Str) == ""
	default:
		return false
	}
}

// Present is the negation of IsBlank.
func (c Cell) Present() bool { return !c.IsBlank() }

// Text returns the trimmed textual form of the cell. Numbers are rendered in
// their shortest exact decimal form, so a numeric 0 reads as "0".
func (c Cell) Text() string {
	switch c.Kind {
	case Text:
		return strings.TrimSpace(c.Str)
	case Number:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	default:
		return ""
	}
}

// =============================================================================
// GRID
// =============================================================================

// Grid is one sheet. Rows may be ragged; missing cells read as Blank.
type Grid [][]Cell

// Rows returns the number of rows in the grid.
func (g Grid) Rows() int { return len(g) }

// Row returns row r, or nil when r is out of range.
func (g Grid) Row(r int) []Cell {
	if r < 0 || r >= len(g) {
		return nil
	}
	return g[r]
}

// Cell returns the cell at (r, c). Out-of-range and negative indices read
// as Blank.
func (g Grid) Cell(r, c int) Cell {
	return At(g.Row(r), c)
}

// At returns row[c], or Blank when c is outside the row.
func At(row []Cell, c int) Cell {
	if c < 0 || c >= len(row) {
		return Blank()
	}
	return row[c]
}

// RowBlank reports whether the first width cells of row r are all blank.
func (g Grid) RowBlank(r, width int) bool {
	row := g.Row(r)
	for c := 0; c < width; c++ {
		if At(row, c).Present() {
			return false
		}
	}
	return true
}

// FromValues builds a grid from plain Go values. nil becomes Blank, strings
// become Text and any integer or float type becomes Number.
func FromValues(rows [][]any) Grid {
	g := make(Grid, len(rows))
	for r, values := range rows {
		g[r] = make([]Cell, len(values))
		for c, v := range values {
			g[r][c] = ValueCell(v)
		}
	}
	return g
}

// ValueCell converts a single Go value to a cell.
func ValueCell(v any) Cell {
	switch x := v.(type) {
	case nil:
		return Blank()
	case Cell:
		return x
	case string:
		return String(x)
	case float64:
		return Float(x)
	case float32:
		return Float(float64(x))
	case int:
		return Float(float64(x))
	case int64:
		return Float(float64(x))
	case int32:
		return Float(float64(x))
	default:
		return String(fmt.Sprint(x))
	}
}

// =============================================================================
// WORKBOOK COLLABORATOR
// =============================================================================

// Workbook exposes the sheets of a materialized workbook.
type Workbook interface {
	// ListSheets returns sheet names in workbook order.
	ListSheets() []string

	// ReadSheet returns the grid of the named sheet. Unknown names return an
	// error wrapping ErrSheetNotFound.
	ReadSheet(name string) (Grid, error)
}

// Memory is a Workbook held entirely in memory.
type Memory struct {
	order  []string
	sheets map[string]Grid
}

// NewMemory returns an empty in-memory workbook.
func NewMemory() *Memory {
	return &Memory{sheets: make(map[string]Grid)}
}

// Add appends a sheet, replacing any existing sheet with the same name while
// keeping its original position.
func (m *Memory) Add(name string, g Grid) *Memory {
	if _, exists := m.sheets[name]; !exists {
		m.order = append(m.order, name)
	}
	m.sheets[name] = g
	return m
}

// ListSheets implements Workbook.
func (m *Memory) ListSheets() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// ReadSheet implements Workbook.
func (m *Memory) ReadSheet(name string) (Grid, error) {
	g, ok := m.sheets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, name)
	}
	return g, nil
}

// HasSheet reports whether wb lists a sheet with exactly this name.
func HasSheet(wb Workbook, name string) bool {
	for _, s := range wb.ListSheets() {
		if s == name {
			return true
		}
	}
	return false
}
