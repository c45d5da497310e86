package convert

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"ristab/internal/config"
	"ristab/internal/fileutil"
	"ristab/internal/logging"
	"ristab/internal/ris"
	"ristab/internal/schema"
	"ristab/internal/tabular"
)

// Pipeline runs the full RIS-to-CSV-to-RIS conversion over a source
// directory. Files are processed strictly sequentially; a failure in one
// file's conversion is logged and does not stop the remaining files. Only a
// schema load failure aborts the run.
type Pipeline struct {
	cfg  *config.Config
	base *slog.Logger
}

// New constructs a pipeline. A nil logger silences diagnostics.
func New(cfg *config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{cfg: cfg, base: logger}
}

// FileResult records the outcome of one input file's conversion.
type FileResult struct {
	Source  string
	Output  string
	Records int
	Err     error
}

// Report summarizes a pipeline run.
type Report struct {
	RunID     string
	Files     []FileResult
	Merge     *tabular.MergeResult
	MergedCSV string
	MergedRIS string
	Exported  int
}

// Failed returns the number of inputs whose conversion errored.
func (r *Report) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// Run executes the whole pipeline: load schema, convert every *.ris under the
// source directory to a per-file CSV, merge the CSVs into one deduplicated
// table, and export that table as a single RIS file. An empty input set
// returns early with a report and no error.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}
	base := p.base.With(logging.String(logging.FieldRunID, report.RunID))
	log := logging.NewComponentLogger(base, "pipeline")

	s, err := schema.LoadFile(p.cfg.Paths.SchemaPath, base)
	if err != nil {
		return nil, err
	}

	if err := p.cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	lock := flock.New(p.cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another run holds %s", p.cfg.LockPath())
	}
	defer func() {
		_ = lock.Unlock()
	}()

	inputs, err := filepath.Glob(filepath.Join(p.cfg.Paths.SourceDir, "*.ris"))
	if err != nil {
		return nil, fmt.Errorf("enumerate ris files: %w", err)
	}
	sort.Strings(inputs)
	if len(inputs) == 0 {
		log.Warn("no ris files found", logging.String("dir", p.cfg.Paths.SourceDir))
		return report, nil
	}

	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		output := filepath.Join(p.cfg.CSVDir(), stem(input)+".csv")
		count, err := p.ConvertFile(s, input, output)
		report.Files = append(report.Files, FileResult{Source: input, Output: output, Records: count, Err: err})
		if err != nil {
			log.Error("conversion failed, continuing with remaining files",
				logging.String(logging.FieldFile, input), logging.Error(err))
			continue
		}
		log.Info("converted", logging.String(logging.FieldFile, input), logging.Int("records", count))
	}

	merge, err := p.MergeOutputs(s, base)
	if err != nil {
		return report, err
	}
	report.Merge = merge
	report.MergedCSV = p.cfg.MergedCSVPath()

	exported, err := p.Export(s, p.cfg.MergedCSVPath(), p.cfg.MergedRISPath(), base)
	if err != nil {
		return report, err
	}
	report.Exported = exported
	report.MergedRIS = p.cfg.MergedRISPath()

	log.Info("run complete",
		logging.Int("inputs", len(inputs)),
		logging.Int("failed", report.Failed()),
		logging.Int("unique_rows", merge.Unique()),
		logging.Int("exported_records", exported))
	return report, nil
}

// ConvertFile converts one RIS file into a CSV projection and validates the
// written output. It returns the number of records projected.
func (p *Pipeline) ConvertFile(s *schema.Schema, input, output string) (int, error) {
	records, err := ris.NewParser(p.base).ParseFile(input)
	if err != nil {
		return 0, err
	}

	header, rows := tabular.Project(s, records)

	file, err := os.Create(output)
	if err != nil {
		return 0, fmt.Errorf("create csv: %w", err)
	}
	if err := tabular.WriteCSV(file, header, rows); err != nil {
		_ = file.Close()
		return 0, err
	}
	if err := file.Close(); err != nil {
		return 0, fmt.Errorf("close csv: %w", err)
	}

	if err := tabular.Verify(output, p.base); err != nil {
		return 0, err
	}
	return len(records), nil
}

// MergeOutputs merges every per-file CSV in the csv directory into the merged
// CSV table, written atomically.
func (p *Pipeline) MergeOutputs(s *schema.Schema, logger *slog.Logger) (*tabular.MergeResult, error) {
	sources, err := filepath.Glob(filepath.Join(p.cfg.CSVDir(), "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("enumerate csv files: %w", err)
	}
	sort.Strings(sources)
	if len(sources) == 0 {
		logging.NewComponentLogger(logger, "merge").Warn("no csv files to merge",
			logging.String("dir", p.cfg.CSVDir()))
	}

	result, err := tabular.Merge(s, sources, logger)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tabular.WriteCSV(&buf, result.Header, result.Rows); err != nil {
		return nil, err
	}
	if err := fileutil.WriteFileAtomic(p.cfg.MergedCSVPath(), buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("write merged csv: %w", err)
	}
	return result, nil
}

// Export serializes a merged CSV table into a single RIS file, written
// atomically. It returns the number of records written.
func (p *Pipeline) Export(s *schema.Schema, csvPath, risPath string, logger *slog.Logger) (int, error) {
	header, rows, err := tabular.ReadFile(csvPath)
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	count, err := ris.NewWriter(s, logger).Write(&buf, header, rows)
	if err != nil {
		return 0, err
	}
	if err := fileutil.WriteFileAtomic(risPath, buf.Bytes(), 0o644); err != nil {
		return 0, fmt.Errorf("write merged ris: %w", err)
	}
	return count, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
