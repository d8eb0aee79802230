package extract

import (
	"github.com/ginjaninja78/quotation-extractor/internal/grid"
)

// Sentinel is the first-cell text marking the header row of the detail table.
const Sentinel = "COD"

// isSentinel reports whether a row is a "COD" header row.
func isSentinel(row []grid.Cell) bool {
	return grid.At(row, 0).Text() == Sentinel
}

// FindTableStart returns the index of the first body row, i.e. the row after
// the first "COD" header. ok is false when the grid has no such header.
func FindTableStart(g grid.Grid) (start int, ok bool) {
	for r := 0; r < g.Rows(); r++ {
		if isSentinel(g.Row(r)) {
			return r + 1, true
		}
	}
	return 0, false
}

// endsTable reports whether row r opens a run of BlankRunLength blank rows.
// Details consults it only after at least one item has been collected.
// Rows past the end of the grid do not count, so a short trailing run never
// ends the table early; the scan simply reaches the end of the grid.
func (o Options) endsTable(g grid.Grid, r int) bool {
	for i := 0; i < o.BlankRunLength; i++ {
		if r+i >= g.Rows() || !g.RowBlank(r+i, o.BlankRunWidth) {
			return false
		}
	}
	return true
}
