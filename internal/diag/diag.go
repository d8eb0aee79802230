// =============================================================================
// Quotation Extractor - Diagnostics
// =============================================================================
//
// This package carries the data-quality warnings produced while extracting a
// workbook. The extraction engine never logs: every recoverable anomaly is
// collected as a Warning and returned next to the result, so callers and
// tests can assert on it directly.
//
// WARNING KINDS:
//   - numeric_coercion     : a quantity/price cell was not numeric
//   - summary_missing      : no summary sheet or anchor row was found
//   - detail_table_missing : the detail sheet has no "COD" sentinel row
//
// Rows that match no classification rule are expected noise in quotation
// workbooks and are not reported.
//
// =============================================================================

package diag

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"
)

// =============================================================================
// WARNING TYPES
// =============================================================================

// Kind identifies the category of a warning.
type Kind string

const (
	NumericCoercion    Kind = "numeric_coercion"
	SummaryMissing     Kind = "summary_missing"
	DetailTableMissing Kind = "detail_table_missing"
)

// Warning is a single recoverable anomaly.
type Warning struct {
	Kind Kind

	// Sheet is the sheet the anomaly was found in, if any.
	Sheet string

	// Row and Column are 1-based spreadsheet coordinates. Zero means the
	// warning is not tied to a cell.
	Row    int
	Column int

	// Field is the semantic field being read (e.g. "quantity").
	Field string

	// Value is the raw cell text.
	Value string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface so a warning can be wrapped or logged
// like any other error value.
func (w Warning) Error() string {
	var b strings.Builder
	b.WriteString("[" + strings.ToUpper(string(w.Kind)) + "]")
	if w.Sheet != "" {
		b.WriteString(" sheet '" + w.Sheet + "'")
	}
	if w.Row > 0 {
		fmt.Fprintf(&b, " row %d", w.Row)
	}
	if w.Column > 0 {
		fmt.Fprintf(&b, " column %d", w.Column)
	}
	if w.Field != "" {
		b.WriteString(" field '" + w.Field + "'")
	}
	b.WriteString(": " + w.Message)
	if w.Value != "" {
		b.WriteString(" (value: '" + w.Value + "')")
	}
	return b.String()
}

// =============================================================================
// COLLECTOR
// =============================================================================

// List accumulates warnings in the order they are raised.
type List struct {
	items []Warning
}

// Add appends a warning.
func (l *List) Add(w Warning) {
	l.items = append(l.items, w)
}

// Coercion records a non-numeric cell. row and col are 0-based grid indices.
func (l *List) Coercion(sheet string, row, col int, field, value string) {
	l.Add(Warning{
		Kind:    NumericCoercion,
		Sheet:   sheet,
		Row:     row + 1,
		Column:  col + 1,
		Field:   field,
		Value:   value,
		Message: "value is not numeric",
	})
}

// Warnings returns the collected warnings. The result is never nil.
func (l *List) Warnings() []Warning {
	out := make([]Warning, len(l.items))
	copy(out, l.items)
	return out
}

// Count returns how many warnings of the given kind were collected.
func Count(warnings []Warning, kind Kind) int {
	n := 0
	for _, w := range warnings {
		if w.Kind == kind {
			n++
		}
	}
	return n
}

// =============================================================================
// REPORTING
// =============================================================================

// FormatWarnings formats warnings as a numbered, human-readable list.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return "No warnings."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Extraction completed with %d warning(s):\n\n", len(warnings)))

	for i, w := range warnings {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, w.Error()))
	}

	return builder.String()
}

// WriteLog writes warnings for one workbook to a log file.
//
// PARAMETERS:
//   - source: The workbook the warnings belong to (for the header).
//   - warnings: The warnings to write.
//   - filePath: The path to the output file.
//
// RETURNS:
//   - An error if writing fails.
func WriteLog(source string, warnings []Warning, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create warning log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "Source:    %s\n", source)
	fmt.Fprintf(writer, "Generated: %s\n", time.Now().Format(time.RFC3339))
	writer.WriteString(strings.Repeat("=", 80) + "\n\n")
	writer.WriteString(FormatWarnings(warnings))

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to write warning log: %w", err)
	}
	return nil
}
