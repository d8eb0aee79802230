// =============================================================================
// Quotation Extractor - Configuration Module
// =============================================================================
//
// This module is responsible for loading the application configuration from
// a YAML file. Every setting has a default, so the tool also runs without a
// configuration file at all.
//
// EXAMPLE (config.yaml):
//
//   input_dir: ./input
//   output_dir: ./output
//   log_level: info
//   log_format: console
//   output_name_format: "{original}_{variant}_{timestamp}.xml"
//   input_patterns: ["*.xlsx", "*.xlsm"]
//   max_concurrency: 4
//   archive_on_success: true
//   extraction:
//     blank_run_length: 10
//     blank_run_width: 9
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/quotation-extractor/internal/extract"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned for quotation workbooks.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir receives one XML file (and optional warning log) per workbook.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir receives workbooks after successful processing.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// OutputArchiveDir receives a copy of every generated XML file.
	// Default: "./output_archive"
	OutputArchiveDir string `yaml:"output_archive_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile is an optional file that receives log output in addition to
	// stderr. Empty disables file logging.
	LogFile string `yaml:"log_file"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the log encoder.
	// Valid values: "console", "json"
	// Default: "console"
	LogFormat string `yaml:"log_format"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputNameFormat defines the format for output file names.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	//   {time}      - Current time (HHMMSS)
	//   {original}  - Input file name without extension
	//   {variant}   - Detected workbook variant
	// Default: "{original}_{uuid}.xml"
	OutputNameFormat string `yaml:"output_name_format"`

	// WriteWarningLogs writes a <output>.warnings.log next to each XML file
	// when extraction produced warnings.
	// Default: true
	WriteWarningLogs *bool `yaml:"write_warning_logs"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// InputPatterns are glob patterns matched against file names in InputDir.
	// Default: ["*.xlsx", "*.xlsm"]
	InputPatterns []string `yaml:"input_patterns"`

	// MaxConcurrency is the maximum number of workbooks processed at once.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// StopOnError cancels the remaining batch after the first failed file.
	// Default: false
	StopOnError bool `yaml:"stop_on_error"`

	// ArchiveOnSuccess moves processed workbooks to InputArchiveDir and copies
	// generated XML to OutputArchiveDir.
	// Default: false
	ArchiveOnSuccess bool `yaml:"archive_on_success"`

	// ArchiveDateSubdirs files archives under YYYY/MM/DD subdirectories.
	// Default: false
	ArchiveDateSubdirs bool `yaml:"archive_date_subdirs"`

	// ArchiveRetentionDays removes archived files older than this many days
	// at the start of each batch. 0 keeps archives forever.
	// Default: 0
	ArchiveRetentionDays int `yaml:"archive_retention_days"`

	// RecursiveInput makes discovery descend into subdirectories of InputDir.
	// Default: false
	RecursiveInput bool `yaml:"recursive_input"`

	// Extraction tunes the table boundary heuristics.
	Extraction ExtractionConfig `yaml:"extraction"`
}

// ExtractionConfig holds the overridable extraction heuristics.
type ExtractionConfig struct {
	// BlankRunLength is the number of consecutive blank rows that ends the
	// detail table.
	// Default: 10
	BlankRunLength int `yaml:"blank_run_length"`

	// BlankRunWidth is the number of leading columns inspected when deciding
	// whether a row is blank.
	// Default: 9
	BlankRunWidth int `yaml:"blank_run_width"`
}

// Options converts the configuration to extractor options.
func (e ExtractionConfig) Options() extract.Options {
	return extract.Options{
		BlankRunLength: e.BlankRunLength,
		BlankRunWidth:  e.BlankRunWidth,
	}
}

// WarningLogsEnabled reports whether per-workbook warning logs are written.
func (c *MainConfig) WarningLogsEnabled() bool {
	return c.WriteWarningLogs == nil || *c.WriteWarningLogs
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	var config MainConfig
	applyMainConfigDefaults(&config)
	return &config
}

// Load returns the built-in defaults when configPath is empty and otherwise
// delegates to LoadMainConfig.
func Load(configPath string) (*MainConfig, error) {
	if configPath == "" {
		return Default(), nil
	}
	return LoadMainConfig(configPath)
}

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.OutputArchiveDir == "" {
		config.OutputArchiveDir = "./output_archive"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "console"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{original}_{uuid}.xml"
	}
	if len(config.InputPatterns) == 0 {
		config.InputPatterns = []string{"*.xlsx", "*.xlsm"}
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
	if config.Extraction.BlankRunLength == 0 {
		config.Extraction.BlankRunLength = extract.DefaultBlankRunLength
	}
	if config.Extraction.BlankRunWidth == 0 {
		config.Extraction.BlankRunWidth = extract.DefaultBlankRunWidth
	}
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	switch strings.ToLower(config.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}

	switch strings.ToLower(config.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log_format %q", config.LogFormat)
	}

	if config.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", config.MaxConcurrency)
	}
	if config.ArchiveRetentionDays < 0 {
		return fmt.Errorf("archive_retention_days must not be negative, got %d", config.ArchiveRetentionDays)
	}
	if config.Extraction.BlankRunLength < 1 {
		return fmt.Errorf("extraction.blank_run_length must be at least 1, got %d", config.Extraction.BlankRunLength)
	}
	if config.Extraction.BlankRunWidth < 1 {
		return fmt.Errorf("extraction.blank_run_width must be at least 1, got %d", config.Extraction.BlankRunWidth)
	}

	return nil
}
