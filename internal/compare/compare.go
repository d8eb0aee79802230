// =============================================================================
// Quotation Extractor - Summary Comparison
// =============================================================================
//
// This package compares the WBE summary tables of two quotation revisions.
//
// MATCHING:
//   Records are matched on WBE code. Codes are not unique, so the n-th record
//   with a code on the left is paired with the n-th record with the same code
//   on the right. Unpaired records show up as added or removed rows.
//
// CHANGE INDICATORS:
//
//   | Indicator | Meaning                                  |
//   |-----------|------------------------------------------|
//   | ↑         | value increased                          |
//   | ↓         | value decreased                          |
//   | =         | value unchanged                          |
//   | +         | value (or row) only on the right         |
//   | -         | value (or row) only on the left          |
//   | (empty)   | value missing on both sides              |
//
// Deltas are computed with shopspring/decimal so that prices read from
// different workbooks compare exactly as their decimal text, not as binary
// floating point differences.
//
// =============================================================================

package compare

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/quotation-extractor/internal/types"
)

// Change is a per-field or per-row change indicator.
type Change string

const (
	Increase  Change = "↑"
	Decrease  Change = "↓"
	Unchanged Change = "="
	Added     Change = "+"
	Removed   Change = "-"
	Absent    Change = ""
)

// Field selects one numeric column of a summary record.
type Field struct {
	Name string
	Get  func(types.WbeSummaryRecord) *float64
}

// DefaultFields compares the four price columns.
func DefaultFields() []Field {
	return []Field{
		{Name: "wbe_direct_cost", Get: func(r types.WbeSummaryRecord) *float64 { return r.DirectCost }},
		{Name: "wbe_list_price", Get: func(r types.WbeSummaryRecord) *float64 { return r.ListPrice }},
		{Name: "wbe_offer_price", Get: func(r types.WbeSummaryRecord) *float64 { return r.OfferPrice }},
		{Name: "wbe_sell_price", Get: func(r types.WbeSummaryRecord) *float64 { return r.SellPrice }},
	}
}

// FieldDiff is the comparison of one field of a matched row.
type FieldDiff struct {
	Field string
	Left  *float64
	Right *float64

	// Delta is Right - Left, nil unless both sides have a value.
	Delta  *decimal.Decimal
	Change Change
}

// RowDiff is the comparison of one matched (or unmatched) WBE record.
type RowDiff struct {
	Code string

	// Occurrence is the 0-based index among records sharing Code.
	Occurrence int

	LeftDescription  string
	RightDescription string

	// Status is Added, Removed or Unchanged (present on both sides).
	Status Change
	Fields []FieldDiff
}

// Changed reports whether the row was added, removed, or has any field
// whose indicator is not Unchanged or Absent.
func (d RowDiff) Changed() bool {
	if d.Status != Unchanged {
		return true
	}
	for _, f := range d.Fields {
		if f.Change != Unchanged && f.Change != Absent {
			return true
		}
	}
	return false
}

// Summaries compares two summary tables.
//
// PARAMETERS:
//   - left, right: The older and newer summary records.
//   - fields: Fields to compare; nil uses DefaultFields.
//
// RETURNS:
//   - One RowDiff per paired or unpaired record, ordered by code and then
//     occurrence.
func Summaries(left, right []types.WbeSummaryRecord, fields []Field) []RowDiff {
	if fields == nil {
		fields = DefaultFields()
	}

	leftByCode := byCode(left)
	rightByCode := byCode(right)

	codes := make([]string, 0, len(leftByCode)+len(rightByCode))
	for code := range leftByCode {
		codes = append(codes, code)
	}
	for code := range rightByCode {
		if _, seen := leftByCode[code]; !seen {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)

	var diffs []RowDiff
	for _, code := range codes {
		l, r := leftByCode[code], rightByCode[code]
		n := max(len(l), len(r))

		for i := 0; i < n; i++ {
			d := RowDiff{Code: code, Occurrence: i}

			var lrec, rrec *types.WbeSummaryRecord
			if i < len(l) {
				lrec = &l[i]
				d.LeftDescription = lrec.Description
			}
			if i < len(r) {
				rrec = &r[i]
				d.RightDescription = rrec.Description
			}

			switch {
			case lrec == nil:
				d.Status = Added
			case rrec == nil:
				d.Status = Removed
			default:
				d.Status = Unchanged
			}

			for _, f := range fields {
				var lv, rv *float64
				if lrec != nil {
					lv = f.Get(*lrec)
				}
				if rrec != nil {
					rv = f.Get(*rrec)
				}
				d.Fields = append(d.Fields, diffField(f.Name, lv, rv))
			}

			diffs = append(diffs, d)
		}
	}
	return diffs
}

func diffField(name string, left, right *float64) FieldDiff {
	fd := FieldDiff{Field: name, Left: left, Right: right}

	switch {
	case left == nil && right == nil:
		fd.Change = Absent
	case left == nil:
		fd.Change = Added
	case right == nil:
		fd.Change = Removed
	default:
		l := decimal.NewFromFloat(*left)
		r := decimal.NewFromFloat(*right)
		delta := r.Sub(l)
		fd.Delta = &delta

		switch delta.Sign() {
		case 1:
			fd.Change = Increase
		case -1:
			fd.Change = Decrease
		default:
			fd.Change = Unchanged
		}
	}
	return fd
}

func byCode(records []types.WbeSummaryRecord) map[string][]types.WbeSummaryRecord {
	out := make(map[string][]types.WbeSummaryRecord)
	for _, r := range records {
		out[r.Code] = append(out[r.Code], r)
	}
	return out
}
