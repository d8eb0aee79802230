package extract

import (
	"github.com/ginjaninja78/quotation-extractor/internal/diag"
	"github.com/ginjaninja78/quotation-extractor/internal/grid"
	"github.com/ginjaninja78/quotation-extractor/internal/schema"
	"github.com/ginjaninja78/quotation-extractor/internal/types"
)

// =============================================================================
// HIERARCHY CONTEXT
// =============================================================================

// hierarchy is the Group/Type/Subtype context carried through the fold.
// Transitions return a new value; nothing is shared between Details calls.
type hierarchy struct {
	group   *types.Group
	typ     *types.Type
	subtype *types.Subtype
}

// withGroup starts a new group and clears type and subtype.
func (h hierarchy) withGroup(g types.Group) hierarchy {
	return hierarchy{group: &g}
}

// withType replaces the type and clears the subtype.
func (h hierarchy) withType(t types.Type) hierarchy {
	h.typ = &t
	h.subtype = nil
	return h
}

// withSubtype replaces the subtype.
func (h hierarchy) withSubtype(s types.Subtype) hierarchy {
	h.subtype = &s
	return h
}

// stamp copies the current context onto an item.
func (h hierarchy) stamp(it *types.Item) {
	if h.group != nil {
		it.GroupCode = types.StringPtr(h.group.Code)
		if h.group.Description != nil {
			it.GroupDesc = types.StringPtr(*h.group.Description)
		}
	}
	if h.typ != nil {
		it.TypeCode = types.StringPtr(h.typ.Code)
		it.TypeTitle = types.StringPtr(h.typ.Title)
	}
	if h.subtype != nil {
		it.SubtypeCode = types.StringPtr(h.subtype.Code)
		it.SubtypeDesc = types.StringPtr(h.subtype.Description)
	}
}

// =============================================================================
// DETAIL FOLD
// =============================================================================

// Details extracts the Item table from a detail sheet.
//
// PARAMETERS:
//   - sheet: Sheet name, used only for warnings.
//   - g: The sheet grid.
//
// RETURNS:
//   - Items in row order. Never nil; empty when the sheet has no "COD" row.
//   - Warnings for a missing table and for every non-numeric value cell.
func (e *Extractor) Details(sheet string, g grid.Grid) ([]types.Item, []diag.Warning) {
	var warnings diag.List
	items := []types.Item{}

	start, ok := FindTableStart(g)
	if !ok {
		warnings.Add(diag.Warning{
			Kind:    diag.DetailTableMissing,
			Sheet:   sheet,
			Message: "no '" + Sentinel + "' header row found",
		})
		return items, warnings.Warnings()
	}

	cols := e.Schema.Columns
	var ctx hierarchy

	for r := start; r < g.Rows(); r++ {
		// A blank run only closes a table that has produced items; blank
		// padding above the first group is skipped like any blank row.
		if g.RowBlank(r, e.Options.BlankRunWidth) {
			if len(items) > 0 && e.Options.endsTable(g, r) {
				break
			}
			continue
		}

		row := g.Row(r)
		if isSentinel(row) {
			continue
		}
		if grid.At(row, cols.Description).IsBlank() {
			continue
		}

		view := schema.Row{Cells: row, Columns: cols}

		switch e.Schema.Classify(row) {
		case schema.Group:
			group := types.Group{Code: view.Text(cols.Code)}
			if desc := view.Text(cols.Description); desc != "" {
				group.Description = types.StringPtr(desc)
			}
			ctx = ctx.withGroup(group)

		case schema.Type:
			code := view.Text(cols.Code)
			if code == "" {
				code = view.Text(cols.ProtoWBE)
			}
			ctx = ctx.withType(types.Type{Code: code, Title: view.Text(cols.Description)})

		case schema.Subtype:
			ctx = ctx.withSubtype(types.Subtype{
				Code:        view.Text(cols.Code),
				Description: view.Text(cols.Description),
			})

		case schema.Item:
			items = append(items, e.item(sheet, r, view, ctx, &warnings))
		}
	}

	return items, warnings.Warnings()
}

// item builds one Item from a classified row.
func (e *Extractor) item(sheet string, r int, view schema.Row, ctx hierarchy, warnings *diag.List) types.Item {
	cols := view.Columns

	number := func(col int, field string) float64 {
		cell := view.Cell(col)
		v, ok := toFloat(cell)
		if !ok {
			warnings.Coercion(sheet, r, col, field, cell.Text())
			return 0
		}
		return v
	}

	it := types.Item{
		Code:        view.Text(cols.Code),
		Description: view.Text(cols.Description),
		Quantity:    number(cols.Quantity, "quantity"),
		ListPrice:   number(cols.ListPrice, "list_price"),
		TotalPrice:  number(cols.TotalPrice, "total_price"),
		SourceRow:   r,
	}
	if it.Quantity > 0 {
		it.UnitPrice = it.TotalPrice / it.Quantity
	}

	ctx.stamp(&it)
	return it
}
