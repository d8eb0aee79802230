// =============================================================================
// Quotation Extractor - Main Entry Point
// =============================================================================
//
// USAGE:
//   quotex process          - Extract every workbook in the input directory
//   quotex extract FILE     - Extract a single workbook
//   quotex compare A B      - Compare the WBE summaries of two workbooks
//   quotex version          - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Core extraction logic (not for external import)
//   - pkg/       : Shared file management utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/quotation-extractor/cmd"
)

func main() {
	cmd.Execute()
}
