// =============================================================================
// Quotation Extractor - Converter Module
// =============================================================================
//
// This module orchestrates the extraction pipeline for a single workbook,
// from opening the file to writing the XML output.
//
// CONVERSION PIPELINE:
//   1. Open the workbook and materialize its sheets on demand
//   2. Detect the workbook variant (PRE_FILE or ANALISI_PROFITTABILITA)
//   3. Extract the hierarchical detail table
//   4. Locate and extract the WBE summary table
//   5. Assemble both output tables
//   6. Generate the XML document
//   7. Write the output file and, if needed, the warning log
//   8. Archive the processed files
//
// CONCURRENCY:
//   A Converter owns everything it touches, so one Converter per goroutine
//   is safe. The batch command runs several of them in parallel.
//
// =============================================================================

package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/ginjaninja78/quotation-extractor/internal/config"
	"github.com/ginjaninja78/quotation-extractor/internal/diag"
	"github.com/ginjaninja78/quotation-extractor/internal/extract"
	"github.com/ginjaninja78/quotation-extractor/internal/table"
	"github.com/ginjaninja78/quotation-extractor/internal/workbook"
	"github.com/ginjaninja78/quotation-extractor/internal/xmlwriter"
	"github.com/ginjaninja78/quotation-extractor/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single workbook.
type Result struct {
	// FilePath is the path to the input workbook.
	FilePath string

	// OutputFile is the path to the generated XML file.
	// This is empty if processing failed.
	OutputFile string

	// WarningLog is the path to the warning log, if one was written.
	WarningLog string

	// ArchivePath is where the input workbook was moved to. It equals
	// FilePath when archiving is disabled.
	ArchivePath string

	// Variant is the detected workbook variant name.
	Variant string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// Items is the number of detail rows extracted.
	Items int

	// SummaryRecords is the number of WBE summary rows extracted.
	SummaryRecords int

	// Warnings is the number of data-quality warnings raised.
	Warnings int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// FileInfo converts a successful result into a summary log entry.
func (r Result) FileInfo() utils.ProcessedFileInfo {
	return utils.ProcessedFileInfo{
		InputFile:      r.FilePath,
		OutputFile:     r.OutputFile,
		ArchivePath:    r.ArchivePath,
		Variant:        r.Variant,
		Items:          r.Stats.Items,
		SummaryRecords: r.Stats.SummaryRecords,
		Warnings:       r.Stats.Warnings,
		ProcessTime:    r.Stats.ProcessingTime,
	}
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter handles the extraction of a single workbook to XML.
type Converter struct {
	path   string
	config *config.MainConfig
	files  *utils.FileManager
	logger *zap.Logger
	runID  string
}

// New creates a new Converter instance.
//
// PARAMETERS:
//   - path: The path to the input workbook.
//   - cfg: The application configuration. Nil uses the defaults.
//   - logger: The logger to use. Nil uses the global zap logger.
//
// RETURNS:
//   - A new Converter instance.
func New(path string, cfg *config.MainConfig, logger *zap.Logger) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.L()
	}

	files := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir, cfg.OutputArchiveDir)
	files.ArchiveOnSuccess = cfg.ArchiveOnSuccess
	files.UseTimestampSubdirs = cfg.ArchiveDateSubdirs
	files.Recursive = cfg.RecursiveInput

	return &Converter{
		path:   path,
		config: cfg,
		files:  files,
		logger: logger.With(zap.String("file", path)),
	}
}

// WithRunID tags the generated document with a batch run identifier.
func (c *Converter) WithRunID(id string) *Converter {
	c.runID = id
	return c
}

// =============================================================================
// SINGLE-WORKBOOK HELPERS
// =============================================================================

// Extract opens a workbook file and runs the extraction on it.
//
// RETURNS:
//   - The extraction result.
//   - An error if the file cannot be opened, no known detail sheet exists,
//     or a sheet cannot be read.
func Extract(path string, opts extract.Options) (*extract.Result, error) {
	wb, err := workbook.Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	return extract.Run(wb, opts)
}

// Tables assembles the two output tables, detail first.
func Tables(res *extract.Result) []*table.Table {
	return []*table.Table{
		table.Detail(res.Items),
		table.Summary(res.Summary),
	}
}

// Render produces the XML document for an extraction result.
func Render(source string, res *extract.Result, runID string) ([]byte, error) {
	meta := xmlwriter.Metadata{
		Source:       filepath.Base(source),
		Variant:      res.Variant.String(),
		DetailSheet:  res.DetailSheet,
		SummarySheet: res.SummarySheet,
		RunID:        runID,
	}
	return xmlwriter.Generate(Tables(res), meta)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the extraction pipeline for the workbook.
//
// RETURNS:
//   - A Result struct containing the outcome of the processing. Run never
//     panics on bad input; failures are reported through Result.Error.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{FilePath: c.path, ArchivePath: c.path}

	c.logger.Info("converter: processing workbook")

	// =========================================================================
	// STEP 1: EXTRACT
	// =========================================================================

	res, err := Extract(c.path, c.config.Extraction.Options())
	if err != nil {
		result.Error = fmt.Errorf("failed to extract workbook: %w", err)
		return c.finish(result, startTime)
	}

	result.Variant = res.Variant.String()
	result.Stats.Items = len(res.Items)
	result.Stats.SummaryRecords = len(res.Summary)
	result.Stats.Warnings = len(res.Warnings)

	c.logger.Debug("converter: extracted tables",
		zap.String("variant", result.Variant),
		zap.String("detail_sheet", res.DetailSheet),
		zap.String("summary_sheet", res.SummarySheet),
		zap.Int("items", result.Stats.Items),
		zap.Int("summary_records", result.Stats.SummaryRecords))

	c.logWarnings(res.Warnings)

	// =========================================================================
	// STEP 2: GENERATE XML
	// =========================================================================

	doc, err := Render(c.path, res, c.runID)
	if err != nil {
		result.Error = fmt.Errorf("failed to generate XML: %w", err)
		return c.finish(result, startTime)
	}

	// =========================================================================
	// STEP 3: WRITE OUTPUT
	// =========================================================================

	outputPath, err := c.writeOutput(doc, result.Variant)
	if err != nil {
		result.Error = fmt.Errorf("failed to write output file: %w", err)
		return c.finish(result, startTime)
	}
	result.OutputFile = outputPath

	if len(res.Warnings) > 0 && c.config.WarningLogsEnabled() {
		logPath := utils.WarningLogPath(outputPath)
		if err := diag.WriteLog(c.path, res.Warnings, logPath); err != nil {
			// The XML is already written; a missing log is not a failure.
			c.logger.Warn("converter: failed to write warning log", zap.Error(err))
		} else {
			result.WarningLog = logPath
		}
	}

	// =========================================================================
	// STEP 4: ARCHIVE
	// =========================================================================

	if c.config.ArchiveOnSuccess {
		archived, err := c.archiveFiles(outputPath)
		if err != nil {
			// Archival failure is logged but doesn't fail the conversion.
			c.logger.Warn("converter: failed to archive files", zap.Error(err))
		} else {
			result.ArchivePath = archived
		}
	}

	result.Success = true
	return c.finish(result, startTime)
}

// finish stamps the processing time and logs the outcome.
func (c *Converter) finish(result Result, startTime time.Time) Result {
	result.Stats.ProcessingTime = time.Since(startTime)

	if result.Error != nil {
		c.logger.Error("converter: processing failed",
			zap.Duration("elapsed", result.Stats.ProcessingTime),
			zap.Error(result.Error))
		return result
	}

	c.logger.Info("converter: processing complete",
		zap.String("output", result.OutputFile),
		zap.String("variant", result.Variant),
		zap.Int("items", result.Stats.Items),
		zap.Int("summary_records", result.Stats.SummaryRecords),
		zap.Int("warnings", result.Stats.Warnings),
		zap.Duration("elapsed", result.Stats.ProcessingTime))
	return result
}

// logWarnings emits one structured log line per data-quality warning.
func (c *Converter) logWarnings(warnings []diag.Warning) {
	for _, w := range warnings {
		fields := []zap.Field{zap.String("kind", string(w.Kind))}
		if w.Sheet != "" {
			fields = append(fields, zap.String("sheet", w.Sheet))
		}
		if w.Row > 0 {
			fields = append(fields, zap.Int("row", w.Row), zap.Int("column", w.Column))
		}
		if w.Field != "" {
			fields = append(fields, zap.String("field", w.Field), zap.String("value", w.Value))
		}
		c.logger.Warn("converter: "+w.Message, fields...)
	}
}

// =============================================================================
// OUTPUT AND ARCHIVAL
// =============================================================================

// writeOutput writes the XML document to the output directory.
func (c *Converter) writeOutput(doc []byte, variant string) (string, error) {
	if err := os.MkdirAll(c.config.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := utils.GenerateOutputFileName(c.config.OutputNameFormat, map[string]string{
		"original": utils.OriginalName(c.path),
		"variant":  variant,
	})
	outputPath := filepath.Join(c.config.OutputDir, name)

	if err := os.WriteFile(outputPath, doc, 0o644); err != nil {
		return "", err
	}

	c.logger.Debug("converter: wrote output", zap.String("output", outputPath), zap.Int("bytes", len(doc)))
	return outputPath, nil
}

// archiveFiles copies the output and moves the input into the archives.
func (c *Converter) archiveFiles(outputPath string) (string, error) {
	if _, err := c.files.ArchiveOutputFile(outputPath); err != nil {
		return "", err
	}
	return c.files.ArchiveInputFile(c.path)
}
