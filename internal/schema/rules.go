package schema

import (
	"fmt"

	"github.com/ginjaninja78/quotation-extractor/internal/grid"
)

// =============================================================================
// ROW KINDS
// =============================================================================

// RowKind is the classification of one detail row.
type RowKind int

const (
	Skip RowKind = iota
	Group
	Type
	Subtype
	Item
)

func (k RowKind) String() string {
	switch k {
	case Skip:
		return "Skip"
	case Group:
		return "Group"
	case Type:
		return "Type"
	case Subtype:
		return "Subtype"
	case Item:
		return "Item"
	default:
		return fmt.Sprintf("RowKind(%d)", int(k))
	}
}

// =============================================================================
// ROW VIEW
// =============================================================================

// Row is one grid row read through a set of semantic columns.
type Row struct {
	Cells   []grid.Cell
	Columns Columns
}

// Cell returns the cell at a raw offset. NotApplicable reads as blank.
func (r Row) Cell(col int) grid.Cell {
	return grid.At(r.Cells, col)
}

// Has reports whether the cell at col is present (non-blank).
func (r Row) Has(col int) bool { return r.Cell(col).Present() }

// Text returns the trimmed text of the cell at col.
func (r Row) Text(col int) string { return r.Cell(col).Text() }

// all reports whether every listed column is present.
func (r Row) all(cols ...int) bool {
	for _, c := range cols {
		if !r.Has(c) {
			return false
		}
	}
	return true
}

// none reports whether every listed column is blank.
func (r Row) none(cols ...int) bool {
	for _, c := range cols {
		if r.Has(c) {
			return false
		}
	}
	return true
}

// =============================================================================
// RULES
// =============================================================================

// Predicate decides whether a row matches a rule.
type Predicate func(Row) bool

// Rule pairs a row kind with the predicate that produces it.
type Rule struct {
	Kind  RowKind
	Name  string
	Match Predicate
}

// Classify returns the kind of the first rule matching the row, or Skip.
func (d Descriptor) Classify(cells []grid.Cell) RowKind {
	row := Row{Cells: cells, Columns: d.Columns}
	for _, rule := range d.Rules {
		if rule.Match(row) {
			return rule.Kind
		}
	}
	return Skip
}

// Rule returns the first rule of the given kind.
func (d Descriptor) Rule(kind RowKind) (Rule, bool) {
	for _, rule := range d.Rules {
		if rule.Kind == kind {
			return rule, true
		}
	}
	return Rule{}, false
}

// isItem is shared by both layouts: every value column is filled, whatever
// the marker and position columns hold.
func isItem(r Row) bool {
	c := r.Columns
	return r.all(c.Code, c.Description, c.Quantity, c.ListPrice, c.TotalPrice)
}

func preFileRules() []Rule {
	return []Rule{
		{
			Kind: Group,
			Name: "code+description+quantity without marker, position or prices",
			Match: func(r Row) bool {
				c := r.Columns
				return r.all(c.Code, c.Description, c.Quantity) &&
					r.none(c.ProtoWBE, c.Position, c.ListPrice, c.TotalPrice)
			},
		},
		{
			Kind: Type,
			Name: "marker+code+description without position, quantity or prices",
			Match: func(r Row) bool {
				c := r.Columns
				return r.all(c.ProtoWBE, c.Code, c.Description) &&
					r.none(c.Position, c.Quantity, c.ListPrice, c.TotalPrice)
			},
		},
		{
			Kind: Subtype,
			Name: "code+description only",
			Match: func(r Row) bool {
				c := r.Columns
				return r.all(c.Code, c.Description) &&
					r.none(c.ProtoWBE, c.Position, c.Quantity, c.ListPrice, c.TotalPrice)
			},
		},
		{Kind: Item, Name: "all value columns", Match: isItem},
	}
}

func profittabilitaRules() []Rule {
	return []Rule{
		{
			Kind: Group,
			Name: "priority 0",
			Match: func(r Row) bool {
				return r.Text(r.Columns.Priority) == "0"
			},
		},
		{
			Kind: Type,
			Name: "marker present",
			Match: func(r Row) bool {
				return r.Has(r.Columns.ProtoWBE)
			},
		},
		{
			Kind: Subtype,
			Name: "code+description with non-zero priority",
			Match: func(r Row) bool {
				c := r.Columns
				return r.all(c.Code, c.Description, c.Priority) &&
					r.none(c.ProtoWBE, c.Position, c.Quantity, c.ListPrice, c.TotalPrice) &&
					r.Text(c.Priority) != "0"
			},
		},
		{Kind: Item, Name: "all value columns", Match: isItem},
	}
}
