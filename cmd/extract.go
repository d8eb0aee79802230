// =============================================================================
// Quotation Extractor - Extract Command
// =============================================================================
//
// COMMAND USAGE:
//   quotex extract FILE [--out DIR] [--warnings]
//
// Without --out the XML document is written to stdout, which makes the
// command usable in pipes. Warnings always go to the log.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/quotation-extractor/internal/converter"
	"github.com/ginjaninja78/quotation-extractor/internal/diag"
	"github.com/ginjaninja78/quotation-extractor/pkg/utils"
)

var (
	extractOutDir   string
	extractWarnings bool
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Extract a single workbook to XML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		res, err := converter.Extract(path, appConfig.Extraction.Options())
		if err != nil {
			return fmt.Errorf("failed to extract %s: %w", filepath.Base(path), err)
		}

		for _, w := range res.Warnings {
			logger.Warn("extract: "+w.Message,
				zap.String("file", path),
				zap.String("kind", string(w.Kind)),
				zap.String("sheet", w.Sheet),
				zap.Int("row", w.Row),
				zap.Int("column", w.Column))
		}

		doc, err := converter.Render(path, res, "")
		if err != nil {
			return err
		}

		if extractWarnings {
			fmt.Fprint(cmd.ErrOrStderr(), diag.FormatWarnings(res.Warnings))
		}

		if extractOutDir == "" {
			_, err := cmd.OutOrStdout().Write(doc)
			return err
		}

		if err := os.MkdirAll(extractOutDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		name := utils.GenerateOutputFileName(appConfig.OutputNameFormat, map[string]string{
			"original": utils.OriginalName(path),
			"variant":  res.Variant.String(),
		})
		outPath := filepath.Join(extractOutDir, name)
		if err := os.WriteFile(outPath, doc, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "%s -> %s (%d item(s), %d summary row(s))\n",
			filepath.Base(path), outPath, len(res.Items), len(res.Summary))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractOutDir, "out", "o", "", "Directory for the XML file (default: stdout)")
	extractCmd.Flags().BoolVar(&extractWarnings, "warnings", false, "Print the warning report to stderr")
}
