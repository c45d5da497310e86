package schema

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"ristab/internal/logging"
)

const sampleSchema = `TY,Type of reference,must be first tag,
AU,Author,,each author on its own line
TI,Title,,
ER,End of reference,must be last tag,
`

func TestLoadBasic(t *testing.T) {
	s, err := Load(strings.NewReader(sampleSchema), logging.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := s.Columns(); !reflect.DeepEqual(got, []string{"AU", "ER", "TI", "TY"}) {
		t.Errorf("Columns() = %v", got)
	}
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}

	au, ok := s.Field("AU")
	if !ok {
		t.Fatal("AU not loaded")
	}
	if au.Description != "Author" {
		t.Errorf("AU description = %q", au.Description)
	}
	if !au.MultiValue {
		t.Error("AU should be multi-value")
	}
	if s.MultiValue("TI") {
		t.Error("TI should not be multi-value")
	}
}

func TestLoadNotesColumnIndex(t *testing.T) {
	// Notes live in the fourth column; the third is ignored, and rows with
	// only two columns get empty notes.
	input := "TY,Type\nAU,Author,each value here is not notes,each author on its own line\nT2,Secondary title,each value on a line in the wrong column\n"
	s, err := Load(strings.NewReader(input), logging.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s.MultiValue("AU") {
		t.Error("AU should be multi-value from fourth column")
	}
	if s.MultiValue("T2") {
		t.Error("T2 third column must not be treated as notes")
	}
	if f, _ := s.Field("TY"); f.Notes != "" {
		t.Errorf("TY notes = %q, want empty", f.Notes)
	}
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	input := "TY,Type\nshort\n,Empty tag,x,y\nAU,Author\n"
	s, err := Load(strings.NewReader(input), logging.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s.Columns(); !reflect.DeepEqual(got, []string{"AU", "TY"}) {
		t.Errorf("Columns() = %v, want [AU TY]", got)
	}
}

func TestLoadMissingTypeTag(t *testing.T) {
	input := "AU,Author\nTI,Title\n"
	_, err := Load(strings.NewReader(input), logging.NewNop())
	if err == nil {
		t.Fatal("expected error for missing TY")
	}
	if !errors.Is(err, ErrMissingType) {
		t.Errorf("error %v should wrap ErrMissingType", err)
	}
}

func TestMultiValueHeuristic(t *testing.T) {
	tests := []struct {
		notes string
		want  bool
	}{
		{"each author on its own line", true},
		{"EACH value on a separate LINE", true},
		{"one value per reference", false},
		{"repeat for each author", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isMultiValue(tt.notes); got != tt.want {
			t.Errorf("isMultiValue(%q) = %v, want %v", tt.notes, got, tt.want)
		}
	}
}

func TestLoadFileStripsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stds.csv")
	if err := os.WriteFile(path, append([]byte("\xef\xbb\xbf"), []byte(sampleSchema)...), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	s, err := LoadFile(path, logging.NewNop())
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if _, ok := s.Field("TY"); !ok {
		t.Error("TY lost; BOM likely glued to the first tag")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.csv"), logging.NewNop()); err == nil {
		t.Fatal("expected error for missing schema file")
	}
}
