package schema

// =============================================================================
// SUMMARY LAYOUT
// =============================================================================

// SummaryColumns holds 0-based offsets of the WBE summary fields.
// NotApplicable fields are emitted as nil.
type SummaryColumns struct {
	Code                      int
	Description               int
	DirectCost                int
	ListPrice                 int
	OfferPrice                int
	SellPrice                 int
	CommissionsCost           int
	ContributionMargin        int
	ContributionMarginPercent int
}

// SummaryLayout describes where the summary table is and where it ends.
//
// LOCATION:
//   - Sheet set: that exact sheet is used when present. When it is absent and
//     ScanAllSheets is set, every sheet is scanned in workbook order.
//   - SheetPrefix set: among sheets named <prefix><integer>, the one with the
//     highest integer is used. Ties keep the first sheet encountered.
//
// Within the chosen sheet, the anchor is the first row whose first cell,
// trimmed, equals AnchorEquals (or starts with AnchorPrefix). Data begins
// DataOffset rows below the anchor.
//
// TERMINATION:
//   - A row whose first cell equals Terminator ends the table (when set).
//   - A row whose KeyColumns are all blank ends the table when BlankKeysStop
//     is set, and is skipped otherwise.
type SummaryLayout struct {
	Sheet         string
	ScanAllSheets bool
	SheetPrefix   string

	AnchorEquals string
	AnchorPrefix string
	DataOffset   int

	Terminator    string
	KeyColumns    []int
	BlankKeysStop bool

	// SkipBlankCode drops rows whose Code column is blank.
	SkipBlankCode bool

	Columns SummaryColumns
}

// HasMarginFields reports whether the layout defines commissions and
// contribution margin columns.
func (l SummaryLayout) HasMarginFields() bool {
	return l.Columns.CommissionsCost != NotApplicable &&
		l.Columns.ContributionMargin != NotApplicable
}

// preFileSummary is the MDC sheet: a "COD" header row followed by a
// description row, then one WBE per row until the key cluster runs dry.
func preFileSummary() SummaryLayout {
	return SummaryLayout{
		Sheet:         "MDC",
		ScanAllSheets: true,
		AnchorEquals:  "COD",
		DataOffset:    2,
		KeyColumns:    []int{0, 1, 3},
		BlankKeysStop: true,
		SkipBlankCode: true,
		Columns: SummaryColumns{
			Code:                      0,
			Description:               1,
			DirectCost:                3,
			ListPrice:                 4,
			OfferPrice:                5,
			SellPrice:                 6,
			CommissionsCost:           7,
			ContributionMargin:        8,
			ContributionMarginPercent: 9,
		},
	}
}

// profittabilitaSummary is the latest VA21_A<N> revision sheet, anchored on
// the first "PO..." row and closed by the "TOT" row.
func profittabilitaSummary() SummaryLayout {
	return SummaryLayout{
		SheetPrefix:   "VA21_A",
		AnchorPrefix:  "PO",
		DataOffset:    1,
		Terminator:    "TOT",
		KeyColumns:    []int{3, 4, 20},
		BlankKeysStop: false,
		Columns: SummaryColumns{
			Code:                      3,  // D  WBE
			Description:               4,  // E
			DirectCost:                20, // U
			ListPrice:                 22, // W
			OfferPrice:                24, // Y
			SellPrice:                 25, // Z
			CommissionsCost:           NotApplicable,
			ContributionMargin:        NotApplicable,
			ContributionMarginPercent: 26, // AA
		},
	}
}
