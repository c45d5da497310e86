package ris

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"ristab/internal/logging"
	"ristab/internal/schema"
)

// ErrHeaderMismatch reports a tabular input whose header is not exactly the
// canonical column sequence. Serialization of that table is refused.
var ErrHeaderMismatch = errors.New("header does not match canonical columns")

// Writer serializes tabular rows back into RIS record blocks.
type Writer struct {
	schema *schema.Schema
	log    *slog.Logger
}

// NewWriter returns a writer bound to the schema used for projection.
func NewWriter(s *schema.Schema, logger *slog.Logger) *Writer {
	return &Writer{schema: s, log: logging.NewComponentLogger(logger, "export")}
}

// Write emits one RIS block per row. The header must equal the canonical
// column sequence exactly, in order. Rows with an empty TY cell are skipped
// with a warning. It returns the number of records written.
//
// Each block starts with the TY line, continues through the remaining columns
// in sorted-tag order (skipping TY, ER, and empty cells), and closes with a
// blank-valued ER line plus a separator line. Cells of multi-valued tags are
// split on the list separator into one line per value; all other cells are
// written verbatim, semicolons included.
func (w *Writer) Write(dst io.Writer, header []string, rows [][]string) (int, error) {
	columns := w.schema.Columns()
	if !equalStrings(header, columns) {
		return 0, fmt.Errorf("%w: expected [%s], got [%s]",
			ErrHeaderMismatch, strings.Join(columns, " "), strings.Join(header, " "))
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[col] = i
	}

	out := bufio.NewWriter(dst)
	written := 0
	for i, row := range rows {
		cell := func(col string) string {
			pos := index[col]
			if pos >= len(row) {
				return ""
			}
			return row[pos]
		}

		typeValue := cell(schema.TypeTag)
		if typeValue == "" {
			w.log.Warn("skipping row without reference type", logging.Int(logging.FieldRow, i+1))
			continue
		}

		fmt.Fprintf(out, "%s  - %s\n", schema.TypeTag, typeValue)
		for _, col := range columns {
			if col == schema.TypeTag || col == schema.EndTag {
				continue
			}
			value := cell(col)
			if value == "" {
				continue
			}
			if w.schema.MultiValue(col) {
				for _, piece := range strings.Split(value, ListSeparator) {
					piece = strings.TrimSpace(piece)
					if piece == "" {
						continue
					}
					fmt.Fprintf(out, "%s  - %s\n", col, piece)
				}
			} else {
				fmt.Fprintf(out, "%s  - %s\n", col, value)
			}
		}
		fmt.Fprintf(out, "%s  - \n\n", schema.EndTag)
		written++
	}

	if err := out.Flush(); err != nil {
		return written, fmt.Errorf("write ris output: %w", err)
	}
	return written, nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
