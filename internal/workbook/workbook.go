// =============================================================================
// Quotation Extractor - Workbook Reader
// =============================================================================
//
// This package opens XLSX/XLSM quotation workbooks with excelize and exposes
// them through the grid.Workbook interface used by the extraction engine.
//
// CELL TYPING:
//   Rows are read with RawCellValue so numbers keep their stored precision
//   instead of the display format. Each non-empty cell is then typed from its
//   XML "t" attribute:
//
//   | Stored type            | Grid cell                                   |
//   |------------------------|---------------------------------------------|
//   | unset / "n" / "d"      | Number when the raw value parses as a float |
//   | "str" (formula string) | Number when it parses, Text otherwise       |
//   | "s" / "inlineStr"      | Text (even if the text looks numeric)       |
//   | "b" / "e"              | Text                                        |
//
//   Keeping numeric-looking strings as Text matters: quotation templates often
//   store codes such as "0" or "0010" as strings, and the classifier compares
//   them literally.
//
// CUSTOMIZATION:
//   - Sheets are read lazily and cached; call Close when finished.
//
// =============================================================================

package workbook

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/quotation-extractor/internal/grid"
)

// File is an excelize-backed grid.Workbook.
type File struct {
	// Path is the source file path, empty for workbooks opened from a reader.
	Path string

	f *excelize.File

	mu    sync.Mutex
	cache map[string]grid.Grid
}

// Open opens a workbook from disk.
//
// PARAMETERS:
//   - path: Path to an .xlsx or .xlsm file.
//
// RETURNS:
//   - The opened workbook. The caller must Close it.
//   - An error if the file cannot be opened.
func Open(path string) (*File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return &File{Path: path, f: f, cache: make(map[string]grid.Grid)}, nil
}

// OpenReader opens a workbook from an arbitrary reader.
func OpenReader(r io.Reader) (*File, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return &File{f: f, cache: make(map[string]grid.Grid)}, nil
}

// Close releases the underlying excelize file.
func (w *File) Close() error {
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("failed to close workbook: %w", err)
	}
	return nil
}

// ListSheets returns sheet names in workbook order.
func (w *File) ListSheets() []string {
	return w.f.GetSheetList()
}

// ReadSheet materializes one sheet as a grid.
//
// PARAMETERS:
//   - name: Exact sheet name.
//
// RETURNS:
//   - The sheet grid, cached for subsequent calls.
//   - An error wrapping grid.ErrSheetNotFound for unknown names, or a read
//     error from excelize.
func (w *File) ReadSheet(name string) (grid.Grid, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if g, ok := w.cache[name]; ok {
		return g, nil
	}

	if idx, err := w.f.GetSheetIndex(name); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %s", grid.ErrSheetNotFound, name)
	}

	rows, err := w.f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of sheet '%s': %w", name, err)
	}

	g := make(grid.Grid, len(rows))
	for r, row := range rows {
		g[r] = make([]grid.Cell, len(row))
		for c, raw := range row {
			cell, err := w.typedCell(name, r, c, raw)
			if err != nil {
				return nil, err
			}
			g[r][c] = cell
		}
	}

	w.cache[name] = g
	return g, nil
}

// typedCell converts one raw string value into a typed grid cell.
func (w *File) typedCell(sheet string, r, c int, raw string) (grid.Cell, error) {
	if raw == "" {
		return grid.Blank(), nil
	}

	ref, err := excelize.CoordinatesToCellName(c+1, r+1)
	if err != nil {
		return grid.Blank(), fmt.Errorf("invalid cell coordinates (%d, %d): %w", r, c, err)
	}

	cellType, err := w.f.GetCellType(sheet, ref)
	if err != nil {
		return grid.Blank(), fmt.Errorf("failed to read cell type of %s!%s: %w", sheet, ref, err)
	}

	switch cellType {
	case excelize.CellTypeUnset, excelize.CellTypeNumber, excelize.CellTypeDate, excelize.CellTypeFormula:
		if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return grid.Float(v), nil
		}
	}
	return grid.String(raw), nil
}
