package ris

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"ristab/internal/fileutil"
	"ristab/internal/logging"
	"ristab/internal/schema"
)

// tagLine matches one RIS directive: two uppercase-letter-or-digit characters,
// optional whitespace, a literal dash, and the value.
var tagLine = regexp.MustCompile(`^([A-Z0-9]{2})\s*-\s*(.*)$`)

// Parser converts raw RIS text into records. It performs no tag-set validation
// against a schema; unknown tags are retained verbatim.
type Parser struct {
	log *slog.Logger
}

// NewParser returns a parser emitting diagnostics through logger.
func NewParser(logger *slog.Logger) *Parser {
	return &Parser{log: logging.NewComponentLogger(logger, "parse")}
}

// Parse reads RIS text and returns the well-formed records in input order.
//
// Blank lines are skipped. A line starting with ER closes the current record,
// which is kept only when it carries a non-empty TY; records without one are
// dropped with a warning. Lines that match no directive pattern are ignored.
// A directive with an empty value is stored only for the TY tag. A trailing
// record without a closing ER is flushed under the same rules.
func (p *Parser) Parse(r io.Reader) ([]*Record, error) {
	var records []*Record
	current := NewRecord()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, schema.EndTag) {
			records = p.flush(records, current)
			current = NewRecord()
			continue
		}

		match := tagLine.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		tag, value := match[1], strings.TrimSpace(match[2])
		if value != "" || tag == schema.TypeTag {
			current.Add(tag, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan input: %w", err)
	}

	records = p.flush(records, current)
	return records, nil
}

// ParseFile parses a BOM-tolerant UTF-8 RIS file.
func (p *Parser) ParseFile(path string) ([]*Record, error) {
	file, err := fileutil.OpenText(path)
	if err != nil {
		return nil, fmt.Errorf("open ris file: %w", err)
	}
	defer file.Close()

	records, err := p.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

func (p *Parser) flush(records []*Record, current *Record) []*Record {
	if current.Len() == 0 {
		return records
	}
	if current.Type() == "" {
		p.log.Warn("discarding record without reference type",
			logging.Int("record", len(records)+1),
			logging.Int("tags", current.Len()))
		return records
	}
	return append(records, current)
}
