// =============================================================================
// Quotation Extractor - Extraction Engine
// =============================================================================
//
// This package turns a materialized workbook into two independent results:
//   - the denormalized Item table of the hierarchical detail sheet
//   - the flat WBE summary table
//
// ARCHITECTURE:
//
//   Workbook ──> DetectVariant ──> Descriptor
//                                      │
//          detail sheet ──> FindTableStart ──> detail fold ──> []Item
//          workbook ──────> LocateSummary ───> summary scan ──> []WbeSummaryRecord
//
//   The detail fold is sequential: every Item copies the Group, Type and
//   Subtype that were current when its row was read. The hierarchy context is
//   a value owned by one Details call, never shared between calls.
//
// ERROR HANDLING:
//   - A workbook without a known detail sheet is the only fatal condition
//     (schema.ErrSchemaMissing).
//   - Missing tables and non-numeric cells degrade to empty or zero/nil
//     values and are reported as diag.Warning values.
//
// =============================================================================

package extract

import (
	"fmt"

	"github.com/ginjaninja78/quotation-extractor/internal/diag"
	"github.com/ginjaninja78/quotation-extractor/internal/grid"
	"github.com/ginjaninja78/quotation-extractor/internal/schema"
	"github.com/ginjaninja78/quotation-extractor/internal/types"
)

// =============================================================================
// OPTIONS
// =============================================================================

const (
	// DefaultBlankRunLength is how many consecutive blank rows end the detail
	// table.
	DefaultBlankRunLength = 10

	// DefaultBlankRunWidth is how many leading columns must be blank for a row
	// to count towards a blank run.
	DefaultBlankRunWidth = 9
)

// Options tunes the table boundary heuristics.
type Options struct {
	BlankRunLength int
	BlankRunWidth  int
}

// DefaultOptions returns the standard boundary heuristics.
func DefaultOptions() Options {
	return Options{
		BlankRunLength: DefaultBlankRunLength,
		BlankRunWidth:  DefaultBlankRunWidth,
	}
}

// normalized replaces non-positive values with the defaults.
func (o Options) normalized() Options {
	if o.BlankRunLength <= 0 {
		o.BlankRunLength = DefaultBlankRunLength
	}
	if o.BlankRunWidth <= 0 {
		o.BlankRunWidth = DefaultBlankRunWidth
	}
	return o
}

// =============================================================================
// EXTRACTOR
// =============================================================================

// Extractor runs the detail and summary extraction for one schema.
type Extractor struct {
	Schema  schema.Descriptor
	Options Options
}

// New returns an extractor bound to a schema descriptor.
func New(d schema.Descriptor, opts Options) *Extractor {
	return &Extractor{Schema: d, Options: opts.normalized()}
}

// Result is the outcome of extracting one workbook.
type Result struct {
	Variant     schema.Variant
	DetailSheet string

	// SummarySheet is empty when no summary was found.
	SummarySheet string

	Items    []types.Item
	Summary  []types.WbeSummaryRecord
	Warnings []diag.Warning
}

// Run detects the workbook variant and extracts both tables.
//
// PARAMETERS:
//   - wb: The materialized workbook.
//   - opts: Boundary heuristics; zero values fall back to the defaults.
//
// RETURNS:
//   - The extraction result, including any data-quality warnings.
//   - schema.ErrSchemaMissing if no known detail sheet exists, or a read
//     error from the workbook.
func Run(wb grid.Workbook, opts Options) (*Result, error) {
	variant, err := schema.DetectVariant(wb.ListSheets())
	if err != nil {
		return nil, err
	}

	d, err := schema.ForVariant(variant)
	if err != nil {
		return nil, err
	}

	return New(d, opts).Extract(wb)
}

// Extract runs both extractions with the bound schema.
func (e *Extractor) Extract(wb grid.Workbook) (*Result, error) {
	sheet := e.Schema.DetailSheet
	g, err := wb.ReadSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read detail sheet: %w", err)
	}

	items, warnings := e.Details(sheet, g)

	loc, found, err := e.LocateSummary(wb)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Variant:     e.Schema.Variant,
		DetailSheet: sheet,
		Items:       items,
	}

	if found {
		records, summaryWarnings := e.SummaryAt(loc)
		result.SummarySheet = loc.Sheet
		result.Summary = records
		warnings = append(warnings, summaryWarnings...)
	} else {
		result.Summary = []types.WbeSummaryRecord{}
		warnings = append(warnings, summaryMissing(e.Schema.Variant))
	}

	result.Warnings = warnings
	return result, nil
}

func summaryMissing(v schema.Variant) diag.Warning {
	return diag.Warning{
		Kind:    diag.SummaryMissing,
		Message: fmt.Sprintf("no summary sheet or anchor row found for %s workbook", v),
	}
}
