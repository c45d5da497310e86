package config

import "strings"

// normalize expands and absolutizes every path field and trims the merge
// filenames, falling back to defaults when a field is blanked out.
func (c *Config) normalize() error {
	var err error
	if c.Paths.SourceDir, err = expandPath(strings.TrimSpace(c.Paths.SourceDir)); err != nil {
		return err
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return err
	}
	if c.Paths.SchemaPath, err = expandPath(strings.TrimSpace(c.Paths.SchemaPath)); err != nil {
		return err
	}

	c.Merge.CSVName = strings.TrimSpace(c.Merge.CSVName)
	if c.Merge.CSVName == "" {
		c.Merge.CSVName = defaultMergeCSV
	}
	c.Merge.RISName = strings.TrimSpace(c.Merge.RISName)
	if c.Merge.RISName == "" {
		c.Merge.RISName = defaultMergeRIS
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}
