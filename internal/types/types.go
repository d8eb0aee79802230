// =============================================================================
// Quotation Extractor - Shared Types
// =============================================================================
//
// This package contains the record types produced by the extraction engine.
// Types defined here are used by:
//   - extract   (produces them)
//   - table     (assembles them into output tables)
//   - compare   (diffs summary records)
//   - converter (hands them to the XML writer)
//
// Hierarchy attribution is a flattened snapshot: an Item never points at its
// Group, Type or Subtype, it copies their values at the moment it was read.
//
// =============================================================================

package types

// =============================================================================
// HIERARCHY NODES
// =============================================================================

// Group is the level-1 node of the detail hierarchy.
type Group struct {
	Code string

	// Description is nil when the header row carries no description.
	Description *string
}

// Type is the level-2 node, scoped within the current Group.
type Type struct {
	Code  string
	Title string
}

// Subtype is the optional level-3 node, scoped within the current Type.
type Subtype struct {
	Code        string
	Description string
}

// =============================================================================
// DETAIL RECORDS
// =============================================================================

// Item is one leaf row of the detail table.
//
// UnitPrice is TotalPrice / Quantity when Quantity > 0, otherwise 0.
// Hierarchy fields are nil when no node of that level was active.
type Item struct {
	Code        string
	Description string
	Quantity    float64
	UnitPrice   float64
	TotalPrice  float64
	ListPrice   float64

	GroupCode   *string
	GroupDesc   *string
	TypeCode    *string
	TypeTitle   *string
	SubtypeCode *string
	SubtypeDesc *string

	// SourceRow is the 0-based grid row the item was read from.
	SourceRow int
}

// =============================================================================
// SUMMARY RECORDS
// =============================================================================

// WbeSummaryRecord is one row of the WBE cost/price summary. Records are not
// unique by Code; duplicates are preserved in sheet order.
//
// Numeric fields are nil when the cell was blank or could not be coerced.
// CommissionsCost and ContributionMargin are always nil for workbooks whose
// schema does not define them.
type WbeSummaryRecord struct {
	Code        string
	Description string

	DirectCost                *float64
	ListPrice                 *float64
	OfferPrice                *float64
	SellPrice                 *float64
	CommissionsCost           *float64
	ContributionMargin        *float64
	ContributionMarginPercent *float64

	// SourceRow is the 0-based grid row the record was read from.
	SourceRow int
}

// =============================================================================
// HELPERS
// =============================================================================

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string { return &s }

// FloatPtr returns a pointer to a copy of v.
func FloatPtr(v float64) *float64 { return &v }
