package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Merge.CSVName != "merged.csv" || cfg.Merge.RISName != "merged.ris" {
		t.Errorf("unexpected merge defaults: %+v", cfg.Merge)
	}
}

func TestLoadAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
source_dir = "` + filepath.Join(dir, "ris") + `"
output_dir = "` + filepath.Join(dir, "out") + `"
log_dir = ""
schema_path = "` + filepath.Join(dir, "stds.csv") + `"

[merge]
csv_name = "all.csv"
ris_name = "all.ris"

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if resolved != path {
		t.Errorf("resolved = %q, want %q", resolved, path)
	}
	if cfg.Merge.CSVName != "all.csv" {
		t.Errorf("csv_name = %q, want all.csv", cfg.Merge.CSVName)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.MergedCSVPath() != filepath.Join(dir, "out", "all.csv") {
		t.Errorf("MergedCSVPath = %q", cfg.MergedCSVPath())
	}
	if cfg.CSVDir() != filepath.Join(dir, "out", "csv") {
		t.Errorf("CSVDir = %q", cfg.CSVDir())
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("level = %q, want info", cfg.Logging.Level)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{
			name:    "same merge names",
			mutate:  func(c *Config) { c.Merge.RISName = c.Merge.CSVName },
			wantSub: "must differ",
		},
		{
			name:    "merge name with path separator",
			mutate:  func(c *Config) { c.Merge.CSVName = "sub/merged.csv" },
			wantSub: "bare filename",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "yaml" },
			wantSub: "logging.format",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantSub: "logging.level",
		},
		{
			name:    "output equals source",
			mutate:  func(c *Config) { c.Paths.OutputDir = c.Paths.SourceDir },
			wantSub: "must differ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			if err := cfg.normalize(); err != nil {
				t.Fatalf("normalize: %v", err)
			}
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	got, err := ExpandPath("~/refs")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "refs") {
		t.Errorf("ExpandPath(~/refs) = %q", got)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := Load(path); err != nil || !exists {
		t.Fatalf("sample config should load cleanly: exists=%v err=%v", exists, err)
	}
}
