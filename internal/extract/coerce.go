package extract

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/quotation-extractor/internal/grid"
)

// toFloat coerces a cell to a number. Numeric cells are taken as-is and text
// cells are parsed after trimming. Blank cells and unparsable text fail.
func toFloat(c grid.Cell) (float64, bool) {
	switch c.Kind {
	case grid.Number:
		return c.Num, true
	case grid.Text:
		v, err := strconv.ParseFloat(strings.TrimSpace(c.Str), 64)
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}
