package tabular

import (
	"log/slog"
	"slices"
	"strings"

	"ristab/internal/logging"
	"ristab/internal/schema"
)

// rowKeySeparator joins cells into the dedup key. The information separator
// control character cannot appear in sane CSV cells.
const rowKeySeparator = "\x1f"

// MergeResult summarizes one merge over multiple tabular sources.
type MergeResult struct {
	Header  []string
	Rows    [][]string
	Scanned int
	Skipped int
}

// Unique returns the number of deduplicated rows.
func (m *MergeResult) Unique() int { return len(m.Rows) }

// Merge combines the given CSV files into one deduplicated table over the
// canonical column set. A source whose header, compared as a set, differs
// from the canonical columns is skipped whole with a warning. Duplicate rows
// (full ordered cell tuples) collapse to one.
//
// Output rows are sorted lexicographically by tuple. The original converter
// emitted them in hash order; sorting trades that accident for determinism.
func Merge(s *schema.Schema, paths []string, logger *slog.Logger) (*MergeResult, error) {
	log := logging.NewComponentLogger(logger, "merge")
	columns := s.Columns()

	result := &MergeResult{Header: columns}
	seen := make(map[string]struct{})

	for _, path := range paths {
		header, rows, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		result.Scanned++

		if !sameColumnSet(header, columns) {
			log.Warn("skipping source with mismatched header",
				logging.String(logging.FieldFile, path),
				logging.String("header", strings.Join(header, " ")))
			result.Skipped++
			continue
		}

		for _, row := range rows {
			key := strings.Join(row, rowKeySeparator)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			result.Rows = append(result.Rows, row)
		}
	}

	slices.SortFunc(result.Rows, slices.Compare)

	log.Info("merge complete",
		logging.Int("sources", result.Scanned),
		logging.Int("skipped", result.Skipped),
		logging.Int("unique_rows", result.Unique()))
	return result, nil
}

func sameColumnSet(header, columns []string) bool {
	if len(header) != len(columns) {
		return false
	}
	sorted := make([]string, len(header))
	copy(sorted, header)
	slices.Sort(sorted)
	return slices.Equal(sorted, columns)
}
