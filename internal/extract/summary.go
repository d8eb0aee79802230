package extract

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ginjaninja78/quotation-extractor/internal/diag"
	"github.com/ginjaninja78/quotation-extractor/internal/grid"
	"github.com/ginjaninja78/quotation-extractor/internal/schema"
	"github.com/ginjaninja78/quotation-extractor/internal/types"
)

// =============================================================================
// SUMMARY LOCATION
// =============================================================================

// Location is a located summary table.
type Location struct {
	Sheet  string
	Grid   grid.Grid
	Anchor int
}

// LocateSummary finds the summary sheet and anchor row for the bound schema.
//
// RETURNS:
//   - The location, and found=true when a sheet with an anchor row exists.
//   - An error only when a listed sheet cannot be read.
func (e *Extractor) LocateSummary(wb grid.Workbook) (Location, bool, error) {
	layout := e.Schema.Summary

	if layout.SheetPrefix != "" {
		name, ok := MaxSuffixSheet(wb.ListSheets(), layout.SheetPrefix)
		if !ok {
			return Location{}, false, nil
		}
		return anchorIn(wb, name, layout)
	}

	if layout.Sheet != "" && grid.HasSheet(wb, layout.Sheet) {
		return anchorIn(wb, layout.Sheet, layout)
	}

	// The detail sheet always starts with a "COD" header of its own, so it
	// is never a summary candidate.
	if layout.ScanAllSheets {
		for _, name := range wb.ListSheets() {
			if name == e.Schema.DetailSheet {
				continue
			}
			loc, found, err := anchorIn(wb, name, layout)
			if err != nil || found {
				return loc, found, err
			}
		}
	}

	return Location{}, false, nil
}

// anchorIn reads one sheet and looks for the layout's anchor row in it.
func anchorIn(wb grid.Workbook, name string, layout schema.SummaryLayout) (Location, bool, error) {
	g, err := wb.ReadSheet(name)
	if err != nil {
		if errors.Is(err, grid.ErrSheetNotFound) {
			return Location{}, false, nil
		}
		return Location{}, false, fmt.Errorf("failed to read summary sheet '%s': %w", name, err)
	}

	for r := 0; r < g.Rows(); r++ {
		text := g.Cell(r, 0).Text()
		if text == "" {
			continue
		}
		if (layout.AnchorEquals != "" && text == layout.AnchorEquals) ||
			(layout.AnchorPrefix != "" && strings.HasPrefix(text, layout.AnchorPrefix)) {
			return Location{Sheet: name, Grid: g, Anchor: r}, true, nil
		}
	}
	return Location{}, false, nil
}

// MaxSuffixSheet selects, among sheets named prefix followed by an integer,
// the one with the largest integer. Names whose suffix is not an integer are
// ignored. On ties the first sheet in workbook order wins.
func MaxSuffixSheet(sheets []string, prefix string) (string, bool) {
	best, bestN, found := "", 0, false
	for _, name := range sheets {
		suffix, ok := strings.CutPrefix(name, prefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if !found || n > bestN {
			best, bestN, found = name, n, true
		}
	}
	return best, found
}

// =============================================================================
// SUMMARY SCAN
// =============================================================================

// Summary locates and extracts the WBE summary table. A workbook without a
// summary yields an empty table and a summary_missing warning.
func (e *Extractor) Summary(wb grid.Workbook) ([]types.WbeSummaryRecord, []diag.Warning, error) {
	loc, found, err := e.LocateSummary(wb)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		return []types.WbeSummaryRecord{}, []diag.Warning{summaryMissing(e.Schema.Variant)}, nil
	}
	records, warnings := e.SummaryAt(loc)
	return records, warnings, nil
}

// SummaryAt scans the summary table below a located anchor row.
func (e *Extractor) SummaryAt(loc Location) ([]types.WbeSummaryRecord, []diag.Warning) {
	layout := e.Schema.Summary
	cols := layout.Columns
	g := loc.Grid

	var warnings diag.List
	records := []types.WbeSummaryRecord{}

	for r := loc.Anchor + layout.DataOffset; r < g.Rows(); r++ {
		row := g.Row(r)

		if layout.Terminator != "" && grid.At(row, 0).Text() == layout.Terminator {
			break
		}
		if keysBlank(row, layout.KeyColumns) {
			if layout.BlankKeysStop {
				break
			}
			continue
		}
		if layout.SkipBlankCode && grid.At(row, cols.Code).IsBlank() {
			continue
		}

		number := func(col int, field string) *float64 {
			cell := grid.At(row, col)
			if cell.IsBlank() {
				return nil
			}
			v, ok := toFloat(cell)
			if !ok {
				warnings.Coercion(loc.Sheet, r, col, field, cell.Text())
				return nil
			}
			return &v
		}

		records = append(records, types.WbeSummaryRecord{
			Code:                      grid.At(row, cols.Code).Text(),
			Description:               grid.At(row, cols.Description).Text(),
			DirectCost:                number(cols.DirectCost, "direct_cost"),
			ListPrice:                 number(cols.ListPrice, "list_price"),
			OfferPrice:                number(cols.OfferPrice, "offer_price"),
			SellPrice:                 number(cols.SellPrice, "sell_price"),
			CommissionsCost:           number(cols.CommissionsCost, "commissions_cost"),
			ContributionMargin:        number(cols.ContributionMargin, "contribution_margin"),
			ContributionMarginPercent: number(cols.ContributionMarginPercent, "contribution_margin_percent"),
			SourceRow:                 r,
		})
	}

	return records, warnings.Warnings()
}

func keysBlank(row []grid.Cell, cols []int) bool {
	for _, c := range cols {
		if grid.At(row, c).Present() {
			return false
		}
	}
	return true
}
