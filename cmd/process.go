// =============================================================================
// Quotation Extractor - Process Command
// =============================================================================
//
// This file defines the 'process' command, the batch entry point. It extracts
// every workbook in the input directory.
//
// COMMAND USAGE:
//   quotex process [flags]
//
// FLAGS:
//   --dry-run : Extract and report without writing or archiving anything
//   --file    : Process a single workbook instead of scanning the input dir
//
// PROCESSING PIPELINE:
//   1. Prepare directories and prune expired archives
//   2. Discover workbooks in the input directory
//   3. Run one converter per workbook, at most max_concurrency at a time
//   4. Print per-file results and write the processing summary
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/quotation-extractor/internal/config"
	"github.com/ginjaninja78/quotation-extractor/internal/converter"
	"github.com/ginjaninja78/quotation-extractor/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun extracts without writing output files.
var dryRun bool

// filePath is a single workbook to process instead of the input directory.
var filePath string

// errSkipped marks workbooks that never started because the batch stopped.
var errSkipped = errors.New("skipped after an earlier failure")

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Extract every workbook in the input directory to XML",
	Long: `The process command scans the input directory for quotation workbooks
and extracts each one to an XML file in the output directory.

Workbooks are processed concurrently (max_concurrency). A failure in one
workbook does not affect the others unless stop_on_error is set.

On success:
  - The XML document is written to the output directory
  - A .warnings.log is written next to it if the workbook had data issues
  - With archive_on_success, the workbook moves to the input archive

On error:
  - The workbook stays in the input directory
  - The failure is listed in the processing summary`,

	RunE: func(cmd *cobra.Command, args []string) error {
		opts := processOptions{DryRun: dryRun, File: filePath}
		summary, err := runProcess(cmd.Context(), appConfig, logger, opts, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if summary.FailedFiles > 0 {
			return fmt.Errorf("%d of %d workbook(s) failed", summary.FailedFiles, summary.TotalFiles)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Extract and report without writing or archiving anything",
	)

	processCmd.Flags().StringVar(
		&filePath,
		"file",
		"",
		"Process a single workbook instead of scanning the input directory",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

type processOptions struct {
	DryRun bool
	File   string
}

// runProcess extracts a batch of workbooks.
//
// RETURNS:
//   - The processing summary. Per-file failures are recorded in it and do
//     not produce an error.
//   - An error if the batch could not start, or if stop_on_error halted it.
func runProcess(ctx context.Context, cfg *config.MainConfig, log *zap.Logger, opts processOptions, out io.Writer) (utils.ProcessingSummary, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	summary := utils.ProcessingSummary{
		RunID:     uuid.NewString(),
		StartTime: time.Now(),
	}
	log = log.With(zap.String("run_id", summary.RunID))

	// =========================================================================
	// STEP 1: PREPARE DIRECTORIES
	// =========================================================================

	fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir, cfg.OutputArchiveDir)
	fm.ArchiveOnSuccess = cfg.ArchiveOnSuccess
	fm.UseTimestampSubdirs = cfg.ArchiveDateSubdirs
	fm.Recursive = cfg.RecursiveInput

	// A dry run only reads, so it neither creates directories nor prunes.
	if !opts.DryRun {
		if err := fm.EnsureDirectories(); err != nil {
			return summary, err
		}
	}

	if cfg.ArchiveRetentionDays > 0 && !opts.DryRun {
		maxAge := time.Duration(cfg.ArchiveRetentionDays) * 24 * time.Hour
		for _, dir := range []string{cfg.InputArchiveDir, cfg.OutputArchiveDir} {
			removed, err := utils.CleanOldArchives(dir, maxAge)
			if err != nil {
				log.Warn("process: failed to prune archive", zap.String("dir", dir), zap.Error(err))
				continue
			}
			if removed > 0 {
				log.Info("process: pruned archive", zap.String("dir", dir), zap.Int("removed", removed))
			}
		}
	}

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	var files []string
	if opts.File != "" {
		files = []string{opts.File}
	} else {
		discovered, err := fm.DiscoverInputFiles(cfg.InputPatterns...)
		if err != nil {
			return summary, err
		}
		files = discovered
	}

	if len(files) == 0 {
		fmt.Fprintln(out, "No workbooks found in the input directory.")
		log.Info("process: nothing to do", zap.String("input_dir", cfg.InputDir))
		return summary, nil
	}

	log.Info("process: starting batch",
		zap.Int("files", len(files)),
		zap.Int("max_concurrency", cfg.MaxConcurrency),
		zap.Bool("dry_run", opts.DryRun))

	// =========================================================================
	// STEP 3: PROCESS FILES CONCURRENTLY
	// =========================================================================

	results := make([]converter.Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.MaxConcurrency)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if gctx.Err() != nil {
				results[i] = converter.Result{FilePath: file, ArchivePath: file, Error: errSkipped}
				return nil
			}

			var result converter.Result
			if opts.DryRun {
				result = preview(file, cfg)
			} else {
				result = converter.New(file, cfg, log).WithRunID(summary.RunID).Run()
			}
			results[i] = result

			if !result.Success && cfg.StopOnError {
				return fmt.Errorf("%s: %w", filepath.Base(file), result.Error)
			}
			return nil
		})
	}

	batchErr := g.Wait()

	// =========================================================================
	// STEP 4: COLLECT RESULTS AND WRITE SUMMARY
	// =========================================================================

	for _, result := range results {
		name := filepath.Base(result.FilePath)
		if result.Success {
			summary.Add(result.FileInfo())
			target := result.OutputFile
			if opts.DryRun {
				target = "(dry run)"
			}
			fmt.Fprintf(out, "  ✓ %s -> %s [%s, %d item(s), %d summary row(s), %d warning(s)]\n",
				name, target, result.Variant, result.Stats.Items, result.Stats.SummaryRecords, result.Stats.Warnings)
			continue
		}

		summary.AddFailure(utils.FailedFileInfo{InputFile: result.FilePath, ErrorMessage: result.Error.Error()})
		fmt.Fprintf(out, "  ✗ %s: %v\n", name, result.Error)
	}

	summary.EndTime = time.Now()

	fmt.Fprintln(out, "\n=== Processing Complete ===")
	fmt.Fprintf(out, "Total files:     %d\n", summary.TotalFiles)
	fmt.Fprintf(out, "Successful:      %d\n", summary.SuccessfulFiles)
	fmt.Fprintf(out, "Errors:          %d\n", summary.FailedFiles)
	fmt.Fprintf(out, "Warnings:        %d\n", summary.TotalWarnings)
	fmt.Fprintf(out, "Time elapsed:    %s\n", summary.EndTime.Sub(summary.StartTime))

	if !opts.DryRun {
		path, err := utils.WriteSummaryLog(summary, cfg.OutputDir)
		if err != nil {
			log.Warn("process: failed to write summary log", zap.Error(err))
		} else {
			fmt.Fprintf(out, "Summary written: %s\n", path)
		}
	}

	log.Info("process: batch complete",
		zap.Int("successful", summary.SuccessfulFiles),
		zap.Int("failed", summary.FailedFiles),
		zap.Int("warnings", summary.TotalWarnings))

	if batchErr != nil {
		return summary, fmt.Errorf("batch stopped: %w", batchErr)
	}
	return summary, nil
}

// preview extracts a workbook without writing anything.
func preview(path string, cfg *config.MainConfig) converter.Result {
	start := time.Now()
	result := converter.Result{FilePath: path, ArchivePath: path}

	res, err := converter.Extract(path, cfg.Extraction.Options())
	if err == nil {
		result.Success = true
		result.Variant = res.Variant.String()
		result.Stats.Items = len(res.Items)
		result.Stats.SummaryRecords = len(res.Summary)
		result.Stats.Warnings = len(res.Warnings)
	} else {
		result.Error = err
	}

	result.Stats.ProcessingTime = time.Since(start)
	return result
}
