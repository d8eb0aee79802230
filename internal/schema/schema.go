// =============================================================================
// Quotation Extractor - Schema Descriptors
// =============================================================================
//
// A Descriptor captures everything that differs between the two supported
// quotation workbook layouts:
//   - the semantic column offsets of the hierarchical detail sheet
//   - the ordered row classification rules
//   - where the WBE summary lives and how it ends
//
// The extraction algorithm itself is layout-agnostic and is parameterized by
// exactly one Descriptor, selected once per workbook.
//
// VARIANTS:
//
//   | Variant                | Detail sheet | Summary sheet               |
//   |------------------------|--------------|-----------------------------|
//   | PRE_FILE               | OFFER1       | MDC, else any sheet with COD|
//   | ANALISI_PROFITTABILITA | NEW_OFFER1   | VA21_A<N> with the max N    |
//
// Descriptors are values. Callers may copy one and tweak it, but the package
// never mutates the ones it hands out.
//
// =============================================================================

package schema

import (
	"errors"
	"fmt"
)

// ErrSchemaMissing is returned when a workbook contains neither known detail
// sheet. It is the only fatal condition of an extraction.
var ErrSchemaMissing = errors.New("no known detail sheet (OFFER1 or NEW_OFFER1) in workbook")

// NotApplicable marks a column that a schema does not define. Cells read
// through a NotApplicable offset are always blank.
const NotApplicable = -1

// =============================================================================
// VARIANTS
// =============================================================================

// Variant identifies one of the two supported workbook layouts.
type Variant int

const (
	// PreFile is the PRE quotation layout.
	PreFile Variant = iota

	// Profittabilita is the profitability analysis layout.
	Profittabilita
)

// Detail sheet names used for variant probing.
const (
	PreFileDetailSheet        = "OFFER1"
	ProfittabilitaDetailSheet = "NEW_OFFER1"
)

// String returns the canonical variant name.
func (v Variant) String() string {
	switch v {
	case PreFile:
		return "PRE_FILE"
	case Profittabilita:
		return "ANALISI_PROFITTABILITA"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant accepts the canonical names returned by String.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "PRE_FILE":
		return PreFile, nil
	case "ANALISI_PROFITTABILITA":
		return Profittabilita, nil
	default:
		return 0, fmt.Errorf("unknown variant %q", s)
	}
}

// DetectVariant probes the sheet names of a workbook. OFFER1 is checked
// before NEW_OFFER1, so a workbook carrying both is read as PRE_FILE.
//
// RETURNS:
//   - The detected variant.
//   - ErrSchemaMissing if neither detail sheet is present.
func DetectVariant(sheets []string) (Variant, error) {
	has := make(map[string]bool, len(sheets))
	for _, s := range sheets {
		has[s] = true
	}

	switch {
	case has[PreFileDetailSheet]:
		return PreFile, nil
	case has[ProfittabilitaDetailSheet]:
		return Profittabilita, nil
	default:
		return 0, ErrSchemaMissing
	}
}

// =============================================================================
// DESCRIPTOR
// =============================================================================

// Columns holds 0-based offsets of the semantic detail columns.
type Columns struct {
	ProtoWBE    int
	Priority    int
	Position    int
	Code        int
	Description int
	Quantity    int
	ListPrice   int
	TotalPrice  int
}

// Descriptor is the complete per-variant layout description.
type Descriptor struct {
	Variant     Variant
	DetailSheet string
	Columns     Columns

	// Rules are evaluated top-down; the first match wins.
	Rules []Rule

	Summary SummaryLayout
}

// ForVariant returns the built-in descriptor of a variant.
func ForVariant(v Variant) (Descriptor, error) {
	switch v {
	case PreFile:
		return PreFileSchema(), nil
	case Profittabilita:
		return ProfittabilitaSchema(), nil
	default:
		return Descriptor{}, fmt.Errorf("no schema for %s", v)
	}
}

// PreFileSchema returns the descriptor of the PRE_FILE layout.
//
// Detail columns: A proto-WBE marker, B position, C code, D description,
// E quantity, F list price, G total price. There is no priority column.
func PreFileSchema() Descriptor {
	cols := Columns{
		ProtoWBE:    0,
		Priority:    NotApplicable,
		Position:    1,
		Code:        2,
		Description: 3,
		Quantity:    4,
		ListPrice:   5,
		TotalPrice:  6,
	}
	return Descriptor{
		Variant:     PreFile,
		DetailSheet: PreFileDetailSheet,
		Columns:     cols,
		Rules:       preFileRules(),
		Summary:     preFileSummary(),
	}
}

// ProfittabilitaSchema returns the descriptor of the ANALISI_PROFITTABILITA
// layout.
func ProfittabilitaSchema() Descriptor {
	cols := Columns{
		ProtoWBE:    0,  // A  COD
		Priority:    2,  // C  PRIORITY
		Position:    6,  // G  POSITION
		Code:        7,  // H  CODICE
		Description: 9,  // J  DENOMINAZIONE
		Quantity:    10, // K  QTA
		ListPrice:   12, // M  LIST UNIT
		TotalPrice:  13, // N  LISTINO TOTALE
	}
	return Descriptor{
		Variant:     Profittabilita,
		DetailSheet: ProfittabilitaDetailSheet,
		Columns:     cols,
		Rules:       profittabilitaRules(),
		Summary:     profittabilitaSummary(),
	}
}
