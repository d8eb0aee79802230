// =============================================================================
// Quotation Extractor - Output Tables
// =============================================================================
//
// This package materializes extraction results as flat tables with a fixed,
// explicit column list. The tables are what the XML writer, the compare
// command and any downstream presentation layer consume.
//
// Cell values are one of: string, float64, or nil (SQL-style null).
//
// =============================================================================

package table

import (
	"github.com/ginjaninja78/quotation-extractor/internal/types"
)

// Table names.
const (
	DetailName  = "detail"
	SummaryName = "summary"
)

// DetailColumns returns the fixed column list of the item table. Each call
// returns a new slice.
func DetailColumns() []string {
	return []string{
		"wbe_item_code",
		"wbe_item_description",
		"wbe_item_quantity",
		"wbe_item_total_price",
		"wbe_item_unit_price",
		"wbe_item_list_price",
		"wbe_group_code",
		"wbe_group_desc",
		"wbe_type_code",
		"wbe_type_title",
		"wbe_subtype_code",
		"wbe_subtype_desc",
	}
}

// SummaryColumns returns the fixed column list of the WBE summary table.
// Each call returns a new slice.
func SummaryColumns() []string {
	return []string{
		"wbe_code",
		"wbe_description",
		"wbe_direct_cost",
		"wbe_list_price",
		"wbe_offer_price",
		"wbe_sell_price",
		"commissions_cost",
		"contribution_margin",
		"contribution_margin_percent",
	}
}

// Table is a named, column-ordered set of rows.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Column returns the values of one column in row order, or false when the
// table has no such column.
func (t *Table) Column(name string) ([]any, bool) {
	idx := -1
	for i, c := range t.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}

	out := make([]any, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[idx]
	}
	return out, true
}

// Detail assembles the item table.
func Detail(items []types.Item) *Table {
	t := &Table{
		Name:    DetailName,
		Columns: DetailColumns(),
		Rows:    make([][]any, 0, len(items)),
	}
	for _, it := range items {
		t.Rows = append(t.Rows, []any{
			it.Code,
			it.Description,
			it.Quantity,
			it.TotalPrice,
			it.UnitPrice,
			it.ListPrice,
			str(it.GroupCode),
			str(it.GroupDesc),
			str(it.TypeCode),
			str(it.TypeTitle),
			str(it.SubtypeCode),
			str(it.SubtypeDesc),
		})
	}
	return t
}

// Summary assembles the WBE summary table.
func Summary(records []types.WbeSummaryRecord) *Table {
	t := &Table{
		Name:    SummaryName,
		Columns: SummaryColumns(),
		Rows:    make([][]any, 0, len(records)),
	}
	for _, r := range records {
		t.Rows = append(t.Rows, []any{
			r.Code,
			r.Description,
			num(r.DirectCost),
			num(r.ListPrice),
			num(r.OfferPrice),
			num(r.SellPrice),
			num(r.CommissionsCost),
			num(r.ContributionMargin),
			num(r.ContributionMarginPercent),
		})
	}
	return t
}

func str(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func num(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
