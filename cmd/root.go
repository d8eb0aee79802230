// =============================================================================
// Quotation Extractor - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every other command
// (process, extract, compare, version) is attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (quotex)
//   ├── processCmd (quotex process)
//   ├── extractCmd (quotex extract FILE)
//   ├── compareCmd (quotex compare LEFT RIGHT)
//   └── versionCmd (quotex version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration before any subcommand runs
//   3. Building the zap logger and installing it as the global logger
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/quotation-extractor/internal/config"
	"github.com/ginjaninja78/quotation-extractor/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// defaultConfigFile is used when --config is not given. A missing default
// file is not an error; the built-in defaults apply.
const defaultConfigFile = "config.yaml"

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose forces debug logging when set to true.
var verbose bool

// appConfig and logger are populated before any subcommand runs.
var (
	appConfig *config.MainConfig
	logger    *zap.Logger
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "quotex",
	Short: "Quotation Extractor - Flatten WBE quotation workbooks to XML",
	Long: `Quotation Extractor reads quotation workbooks (PRE_FILE and
ANALISI_PROFITTABILITA layouts), rebuilds the Group > Type > Subtype
hierarchy of every item row, extracts the per-WBE cost and margin summary,
and writes both tables as one XML document per workbook.

Key Features:
  - Automatic layout detection from the workbook's sheet names
  - Hierarchy context attached to every item row
  - Data-quality warnings for non-numeric cells, never silent zeros
  - Concurrent batch processing with optional archival
  - Side-by-side comparison of two workbooks' WBE summaries

Example Usage:
  quotex process                     # Process every workbook in the input directory
  quotex process --config ./my.yaml  # Use a custom configuration file
  quotex extract offer.xlsx          # Write one workbook's XML to stdout
  quotex compare old.xlsx new.xlsx   # Compare two revisions of an offer`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initialize(cmd)
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		defaultConfigFile,
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}

// initialize loads the configuration and builds the logger.
func initialize(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}

	l, err := logging.New(level, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		return err
	}

	appConfig = cfg
	logger = l
	zap.ReplaceGlobals(l)
	return nil
}

// loadConfig reads --config. The implicit default file may be absent; an
// explicitly named file must exist.
func loadConfig(cmd *cobra.Command) (*config.MainConfig, error) {
	explicit := cmd.Flags().Changed("config")

	if !explicit {
		if _, err := os.Stat(cfgFile); errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
