package config

const (
	defaultSourceDir  = "~/ristab/ris"
	defaultOutputDir  = "~/ristab/out"
	defaultLogDir     = "~/.local/share/ristab/logs"
	defaultSchemaPath = "~/ristab/RIS_stds.csv"
	defaultMergeCSV   = "merged.csv"
	defaultMergeRIS   = "merged.ris"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDir:  defaultSourceDir,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
			SchemaPath: defaultSchemaPath,
		},
		Merge: Merge{
			CSVName: defaultMergeCSV,
			RISName: defaultMergeRIS,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
