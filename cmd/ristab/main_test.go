package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ristab/internal/testsupport"
)

// writeTestConfig materializes cfg-like settings as a TOML file the CLI can
// load through --config.
func writeTestConfig(t *testing.T, base string) string {
	t.Helper()

	configPath := filepath.Join(base, "config.toml")
	content := `
[paths]
source_dir = "` + filepath.Join(base, "ris") + `"
output_dir = "` + filepath.Join(base, "out") + `"
log_dir = ""
schema_path = "` + filepath.Join(base, "RIS_stds.csv") + `"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCommandEndToEnd(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)
	testsupport.WriteFile(t, filepath.Join(base, "RIS_stds.csv"), testsupport.SampleSchema)
	testsupport.WriteFile(t, filepath.Join(base, "ris", "refs.ris"),
		"TY  - JOUR\nAU  - Smith, J\nTI  - A Study\nER  - \n")

	output, err := runCLI(t, "--config", configPath, "run")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, output)
	}
	if !strings.Contains(output, "refs.ris") {
		t.Errorf("summary should mention the input file: %q", output)
	}
	if !strings.Contains(output, "1 unique rows") {
		t.Errorf("summary should report unique rows: %q", output)
	}

	if _, err := os.Stat(filepath.Join(base, "out", "merged.csv")); err != nil {
		t.Errorf("merged csv missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "out", "merged.ris")); err != nil {
		t.Errorf("merged ris missing: %v", err)
	}
}

func TestRunCommandNoInputs(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)
	testsupport.WriteFile(t, filepath.Join(base, "RIS_stds.csv"), testsupport.SampleSchema)
	if err := os.MkdirAll(filepath.Join(base, "ris"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	output, err := runCLI(t, "--config", configPath, "run")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, output)
	}
	if !strings.Contains(output, "No RIS files found") {
		t.Errorf("expected empty-input notice, got %q", output)
	}
}

func TestSchemaCommand(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)
	testsupport.WriteFile(t, filepath.Join(base, "RIS_stds.csv"), testsupport.SampleSchema)

	output, err := runCLI(t, "--config", configPath, "schema")
	if err != nil {
		t.Fatalf("schema: %v\n%s", err, output)
	}
	for _, want := range []string{"AU", "Author", "5 tags loaded"} {
		if !strings.Contains(output, want) {
			t.Errorf("schema output missing %q: %q", want, output)
		}
	}
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	output, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v\n%s", err, output)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config missing: %v", err)
	}

	// A second init without --overwrite refuses to clobber.
	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Error("expected error when config already exists")
	}
}

func TestConfigValidateCommand(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	output, err := runCLI(t, "--config", configPath, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v\n%s", err, output)
	}
	if !strings.Contains(output, "is valid") {
		t.Errorf("unexpected output: %q", output)
	}
}

func TestExportCommandHeaderMismatch(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)
	testsupport.WriteFile(t, filepath.Join(base, "RIS_stds.csv"), testsupport.SampleSchema)

	badCSV := filepath.Join(base, "bad.csv")
	testsupport.WriteFile(t, badCSV, "TI,TY\nOnly two columns,JOUR\n")

	if _, err := runCLI(t, "--config", configPath, "export", badCSV); err == nil {
		t.Fatal("expected header mismatch error")
	}
}
