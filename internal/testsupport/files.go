package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"discshelf/internal/workbook"
)

// WriteFile writes data to path, creating parent directories.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteWorkbook encodes wb in the format implied by the path extension.
func WriteWorkbook(t testing.TB, path string, wb *workbook.Workbook) {
	t.Helper()

	data, err := workbook.Encode(wb, workbook.FormatForPath(path))
	if err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	WriteFile(t, path, data)
}
