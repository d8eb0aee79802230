package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}

	if cfg.InputDir != "./input" || cfg.OutputDir != "./output" {
		t.Errorf("dirs = %q, %q", cfg.InputDir, cfg.OutputDir)
	}
	if cfg.MaxConcurrency != 4 || cfg.LogLevel != "info" || cfg.LogFormat != "console" {
		t.Errorf("processing defaults = %d, %q, %q", cfg.MaxConcurrency, cfg.LogLevel, cfg.LogFormat)
	}
	if !reflect.DeepEqual(cfg.InputPatterns, []string{"*.xlsx", "*.xlsm"}) {
		t.Errorf("InputPatterns = %v", cfg.InputPatterns)
	}
	if opts := cfg.Extraction.Options(); opts.BlankRunLength != 10 || opts.BlankRunWidth != 9 {
		t.Errorf("extraction options = %+v", opts)
	}
	if !cfg.WarningLogsEnabled() {
		t.Error("warning logs should default to enabled")
	}
}

func TestLoadMainConfig(t *testing.T) {
	path := writeConfig(t, `
input_dir: /data/in
log_level: debug
log_format: json
output_name_format: "{original}_{variant}.xml"
input_patterns: ["*.xlsm"]
max_concurrency: 2
archive_on_success: true
write_warning_logs: false
archive_date_subdirs: true
archive_retention_days: 30
recursive_input: true
extraction:
  blank_run_length: 15
`)

	cfg, err := LoadMainConfig(path)
	if err != nil {
		t.Fatalf("LoadMainConfig() error = %v", err)
	}

	if cfg.InputDir != "/data/in" || cfg.OutputDir != "./output" {
		t.Errorf("dirs = %q, %q", cfg.InputDir, cfg.OutputDir)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" || cfg.MaxConcurrency != 2 || !cfg.ArchiveOnSuccess {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.OutputNameFormat != "{original}_{variant}.xml" {
		t.Errorf("OutputNameFormat = %q", cfg.OutputNameFormat)
	}
	if cfg.Extraction.BlankRunLength != 15 || cfg.Extraction.BlankRunWidth != 9 {
		t.Errorf("extraction = %+v", cfg.Extraction)
	}
	if cfg.WarningLogsEnabled() {
		t.Error("write_warning_logs: false should disable warning logs")
	}
	if !cfg.ArchiveDateSubdirs || cfg.ArchiveRetentionDays != 30 || !cfg.RecursiveInput {
		t.Errorf("archive settings = %v, %d, %v", cfg.ArchiveDateSubdirs, cfg.ArchiveRetentionDays, cfg.RecursiveInput)
	}
}

func TestLoadMainConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "input_dir: [", "failed to parse"},
		{"bad level", "log_level: loud", "unknown log_level"},
		{"bad format", "log_format: xml", "unknown log_format"},
		{"negative concurrency", "max_concurrency: -1", "max_concurrency"},
		{"negative blank run", "extraction:\n  blank_run_length: -2", "blank_run_length"},
		{"negative retention", "archive_retention_days: -1", "archive_retention_days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadMainConfig(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadMainConfig() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}

	if _, err := LoadMainConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}
