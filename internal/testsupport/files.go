package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes contents to path, creating parent directories as needed.
func WriteFile(t testing.TB, path, contents string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// SampleSchema is a minimal schema CSV with AU marked multi-valued.
const SampleSchema = `TY,Type of reference,must be first tag,
AU,Author,,each author on its own line
TI,Title,,
KW,Keywords,,
ER,End of reference,must be last tag,
`
