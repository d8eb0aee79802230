// =============================================================================
// Quotation Extractor - Compare Command
// =============================================================================
//
// COMMAND USAGE:
//   quotex compare LEFT RIGHT [--all]
//
// Extracts both workbooks and prints their WBE summaries side by side,
// one line per compared field. By default only changed rows are shown.
//
// OUTPUT:
//   CODE  DESCRIPTION  FIELD            LEFT    RIGHT   DELTA  CHANGE
//   W1    Frames       wbe_sell_price   130     135     5      ↑
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/quotation-extractor/internal/compare"
	"github.com/ginjaninja78/quotation-extractor/internal/converter"
)

var compareAll bool

var compareCmd = &cobra.Command{
	Use:   "compare LEFT RIGHT",
	Short: "Compare the WBE summaries of two workbooks",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := appConfig.Extraction.Options()

		left, err := converter.Extract(args[0], opts)
		if err != nil {
			return fmt.Errorf("failed to extract %s: %w", args[0], err)
		}
		right, err := converter.Extract(args[1], opts)
		if err != nil {
			return fmt.Errorf("failed to extract %s: %w", args[1], err)
		}

		if left.Variant != right.Variant {
			logger.Sugar().Warnf("compare: workbooks use different layouts (%s vs %s)", left.Variant, right.Variant)
		}

		diffs := compare.Summaries(left.Summary, right.Summary, nil)
		return writeComparison(cmd.OutOrStdout(), diffs, compareAll)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().BoolVar(&compareAll, "all", false, "Include unchanged rows")
}

// writeComparison prints the diff as an aligned table.
func writeComparison(out io.Writer, diffs []compare.RowDiff, all bool) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tDESCRIPTION\tFIELD\tLEFT\tRIGHT\tDELTA\tCHANGE")

	shown := 0
	for _, d := range diffs {
		if !all && !d.Changed() {
			continue
		}
		shown++

		code := d.Code
		if d.Occurrence > 0 {
			code += "#" + strconv.Itoa(d.Occurrence+1)
		}
		desc := d.RightDescription
		if desc == "" {
			desc = d.LeftDescription
		}

		for _, f := range d.Fields {
			delta := ""
			if f.Delta != nil {
				delta = f.Delta.String()
			}
			change := string(f.Change)
			if d.Status != compare.Unchanged {
				change = string(d.Status)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				code, desc, f.Field, optional(f.Left), optional(f.Right), delta, change)
		}
	}

	if shown == 0 {
		fmt.Fprintln(w, "(no differences)\t\t\t\t\t\t")
	}
	return w.Flush()
}

func optional(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
