package config

import (
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMerge(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.SourceDir) == "" {
		return fmt.Errorf("paths.source_dir must be set")
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return fmt.Errorf("paths.output_dir must be set")
	}
	if strings.TrimSpace(c.Paths.SchemaPath) == "" {
		return fmt.Errorf("paths.schema_path must be set")
	}
	if c.Paths.OutputDir == c.Paths.SourceDir {
		return fmt.Errorf("paths.output_dir must differ from paths.source_dir")
	}
	return nil
}

func (c *Config) validateMerge() error {
	if c.Merge.CSVName == c.Merge.RISName {
		return fmt.Errorf("merge.csv_name and merge.ris_name must differ")
	}
	for _, name := range []string{c.Merge.CSVName, c.Merge.RISName} {
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("merge output name %q must be a bare filename", name)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
