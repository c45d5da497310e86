package tabular

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"ristab/internal/logging"
	"ristab/internal/ris"
	"ristab/internal/schema"
)

const testSchema = `TY,Type of reference,must be first tag,
AU,Author,,each author on its own line
TI,Title,,
ER,End of reference,must be last tag,
`

func loadTestSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.Load(strings.NewReader(testSchema), logging.NewNop())
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	return s
}

func record(t *testing.T, pairs ...string) *ris.Record {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatal("record wants tag/value pairs")
	}
	rec := ris.NewRecord()
	for i := 0; i < len(pairs); i += 2 {
		rec.Add(pairs[i], pairs[i+1])
	}
	return rec
}

func TestProjectHeaderIsSortedSchemaTags(t *testing.T) {
	s := loadTestSchema(t)
	header, rows := Project(s, nil)
	if !reflect.DeepEqual(header, []string{"AU", "ER", "TI", "TY"}) {
		t.Errorf("header = %v", header)
	}
	if len(rows) != 0 {
		t.Errorf("rows = %v, want none", rows)
	}
}

func TestProjectCells(t *testing.T) {
	s := loadTestSchema(t)
	rec := record(t, "TY", "JOUR", "AU", "Smith, J", "AU", "Doe, A", "TI", "A Study")

	header, rows := Project(s, []*ris.Record{rec})
	if len(rows) != 1 {
		t.Fatalf("got %d rows", len(rows))
	}
	want := []string{"Smith, J;Doe, A", "", "A Study", "JOUR"}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("row = %v, want %v (header %v)", rows[0], want, header)
	}
}

func TestProjectDropsUnknownTagsAndKeepsOrder(t *testing.T) {
	s := loadTestSchema(t)
	first := record(t, "TY", "JOUR", "ZZ", "not in schema", "TI", "First")
	second := record(t, "TY", "BOOK", "TI", "Second")

	_, rows := Project(s, []*ris.Record{first, second})
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0][2] != "First" || rows[1][2] != "Second" {
		t.Errorf("record order not preserved: %v", rows)
	}
	for _, row := range rows {
		if strings.Contains(strings.Join(row, ","), "not in schema") {
			t.Errorf("unknown tag leaked into projection: %v", row)
		}
	}
}

func TestWriteReadCSVRoundTrip(t *testing.T) {
	header := []string{"AU", "ER", "TI", "TY"}
	rows := [][]string{
		{"Smith, J;Doe, A", "", "A, Study, With Commas", "JOUR"},
		{"", "", "Quote \"inside\"", "BOOK"},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, header, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	gotHeader, gotRows, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if !reflect.DeepEqual(gotHeader, header) {
		t.Errorf("header = %v", gotHeader)
	}
	if !reflect.DeepEqual(gotRows, rows) {
		t.Errorf("rows = %v, want %v", gotRows, rows)
	}
}

func TestReadCSVEmptyInput(t *testing.T) {
	if _, _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
		return path
	}

	good := write("good.csv", "AU,ER,TI,TY\nSmith,,Title,JOUR\n,,Untyped,\n")
	if err := Verify(good, logging.NewNop()); err != nil {
		t.Errorf("Verify(good) = %v, empty TY cells should only warn", err)
	}

	noType := write("notype.csv", "AU,ER,TI\nSmith,,Title\n")
	if err := Verify(noType, logging.NewNop()); !errors.Is(err, ErrTypeColumnMissing) {
		t.Errorf("Verify(notype) = %v, want ErrTypeColumnMissing", err)
	}
}
