package schema

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"ristab/internal/fileutil"
	"ristab/internal/logging"
)

const (
	// TypeTag identifies the reference type field. Every well-formed record
	// carries it, and the schema must declare it.
	TypeTag = "TY"
	// EndTag terminates a record block in RIS output.
	EndTag = "ER"
)

// ErrMissingType reports a schema source that never declares the mandatory
// TY tag. This is fatal for the whole run.
var ErrMissingType = errors.New("schema missing mandatory TY tag")

// Field describes one recognized tag.
type Field struct {
	Description string
	Notes       string
	// MultiValue is derived once at load time from the notes text: a tag
	// whose notes mention "each" and "line" holds one value per RIS line
	// and is joined with the list separator in tabular form.
	MultiValue bool
}

// Schema maps recognized tags to their descriptors. The sorted tag list forms
// the canonical column set of every tabular artifact. A Schema is read-only
// after Load and safe to share.
type Schema struct {
	fields  map[string]Field
	columns []string
}

// Load reads a schema from CSV rows of the shape
// [tag, description, (unused), notes, ...]. Rows with fewer than two columns
// or an empty tag are skipped with a warning; a missing TY row fails the load.
func Load(r io.Reader, logger *slog.Logger) (*Schema, error) {
	log := logging.NewComponentLogger(logger, "schema")

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	fields := make(map[string]Field)
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read schema row %d: %w", row, err)
		}
		if len(record) < 2 {
			log.Warn("skipping malformed row", logging.Int(logging.FieldRow, row), logging.Int("columns", len(record)))
			continue
		}
		tag := strings.TrimSpace(record[0])
		if tag == "" {
			log.Warn("skipping row with empty tag", logging.Int(logging.FieldRow, row))
			continue
		}
		notes := ""
		if len(record) > 3 {
			notes = record[3]
		}
		fields[tag] = Field{
			Description: record[1],
			Notes:       notes,
			MultiValue:  isMultiValue(notes),
		}
	}

	if _, ok := fields[TypeTag]; !ok {
		return nil, fmt.Errorf("%w (loaded tags: %s)", ErrMissingType, strings.Join(sortedKeys(fields), " "))
	}

	columns := sortedKeys(fields)
	log.Debug("schema loaded", logging.Int("tags", len(columns)), logging.String("columns", strings.Join(columns, " ")))

	return &Schema{fields: fields, columns: columns}, nil
}

// LoadFile loads a schema from a BOM-tolerant UTF-8 CSV file.
func LoadFile(path string, logger *slog.Logger) (*Schema, error) {
	file, err := fileutil.OpenText(path)
	if err != nil {
		return nil, fmt.Errorf("open schema: %w", err)
	}
	defer file.Close()

	s, err := Load(file, logger)
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", path, err)
	}
	return s, nil
}

// Field returns the descriptor for tag.
func (s *Schema) Field(tag string) (Field, bool) {
	f, ok := s.fields[tag]
	return f, ok
}

// MultiValue reports whether tag is classified as multi-valued.
func (s *Schema) MultiValue(tag string) bool {
	return s.fields[tag].MultiValue
}

// Columns returns the canonical column set: all schema tags sorted
// lexicographically. The caller may modify the returned slice.
func (s *Schema) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

// Len returns the number of declared tags.
func (s *Schema) Len() int { return len(s.fields) }

// The heuristic mirrors wording like "each author on its own line" found in
// published RIS tag references.
func isMultiValue(notes string) bool {
	lower := strings.ToLower(notes)
	return strings.Contains(lower, "each") && strings.Contains(lower, "line")
}

func sortedKeys(fields map[string]Field) []string {
	keys := make([]string, 0, len(fields))
	for tag := range fields {
		keys = append(keys, tag)
	}
	sort.Strings(keys)
	return keys
}
