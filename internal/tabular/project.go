package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"ristab/internal/fileutil"
	"ristab/internal/logging"
	"ristab/internal/ris"
	"ristab/internal/schema"
)

// ErrTypeColumnMissing reports a written CSV whose header lacks the TY
// column. The schema invariant makes this unreachable in practice; the check
// guards against a corrupted write.
var ErrTypeColumnMissing = errors.New("TY column missing from csv header")

// Project converts records into rows over the canonical column set. Cells of
// absent tags are empty; list values are joined with the list separator.
// Record order is preserved.
func Project(s *schema.Schema, records []*ris.Record) (header []string, rows [][]string) {
	header = s.Columns()
	rows = make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(header))
		for i, col := range header {
			value, ok := rec.Get(col)
			if !ok {
				continue
			}
			if value.IsList() {
				row[i] = strings.Join(value.Strings(), ris.ListSeparator)
			} else {
				row[i] = value.First()
			}
		}
		rows = append(rows, row)
	}
	return header, rows
}

// WriteCSV writes a header plus rows as UTF-8 CSV.
func WriteCSV(dst io.Writer, header []string, rows [][]string) error {
	writer := csv.NewWriter(dst)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadCSV reads a header row plus data rows. Ragged rows are tolerated.
func ReadCSV(r io.Reader) (header []string, rows [][]string, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err = reader.Read()
	if err == io.EOF {
		return nil, nil, errors.New("csv input is empty")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			return header, rows, nil
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv row: %w", err)
		}
		rows = append(rows, row)
	}
}

// ReadFile reads a BOM-tolerant CSV file.
func ReadFile(path string) (header []string, rows [][]string, err error) {
	file, err := fileutil.OpenText(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	header, rows, err = ReadCSV(file)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	return header, rows, nil
}

// Verify re-reads a projected CSV and checks its TY column: a missing column
// is an error, rows with an empty TY cell only warn. The original converter
// performed the same post-write validation.
func Verify(path string, logger *slog.Logger) error {
	log := logging.NewComponentLogger(logger, "project")

	header, rows, err := ReadFile(path)
	if err != nil {
		return err
	}

	typeIdx := -1
	for i, col := range header {
		if col == schema.TypeTag {
			typeIdx = i
			break
		}
	}
	if typeIdx < 0 {
		return fmt.Errorf("%w: %s", ErrTypeColumnMissing, path)
	}

	for i, row := range rows {
		if typeIdx >= len(row) || row[typeIdx] == "" {
			log.Warn("row missing reference type",
				logging.String(logging.FieldFile, path),
				logging.Int(logging.FieldRow, i+1))
		}
	}
	return nil
}
