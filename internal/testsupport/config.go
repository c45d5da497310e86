package testsupport

import (
	"path/filepath"
	"testing"

	"ristab/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.SourceDir = filepath.Join(base, "ris")
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.LogDir = ""
	cfg.Paths.SchemaPath = filepath.Join(base, "RIS_stds.csv")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WithSchemaPath overrides the schema file location on the test config.
func WithSchemaPath(path string) ConfigOption {
	return func(c *config.Config) {
		c.Paths.SchemaPath = path
	}
}
