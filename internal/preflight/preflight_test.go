package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"discshelf/internal/storage"
	"discshelf/internal/testsupport"
	"discshelf/internal/workbook"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func writeWorkbook(t *testing.T, path string, format workbook.Format) {
	t.Helper()
	data, err := workbook.Encode(&workbook.Workbook{Sheets: []workbook.Sheet{{Name: "DVD", Rows: [][]string{{"编号"}}}}}, format)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	testsupport.WriteFile(t, path, data)
}

func TestCheckWorkbook_Missing(t *testing.T) {
	result := CheckWorkbook(context.Background(), filepath.Join(t.TempDir(), "catalog.xls"))
	if !result.Passed {
		t.Fatalf("missing workbook should pass, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "not created yet") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckWorkbook_Formats(t *testing.T) {
	for _, format := range []workbook.Format{workbook.FormatXLS, workbook.FormatXLSX} {
		path := filepath.Join(t.TempDir(), "catalog"+format.Extension())
		writeWorkbook(t, path, format)
		result := CheckWorkbook(context.Background(), path)
		if !result.Passed {
			t.Fatalf("%s: expected pass, got: %s", format, result.Detail)
		}
		if !strings.Contains(result.Detail, format.String()) {
			t.Fatalf("%s: detail should name the format: %s", format, result.Detail)
		}
	}
}

func TestCheckWorkbook_NotAWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xls")
	if err := os.WriteFile(path, []byte("serial,title\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckWorkbook(context.Background(), path); result.Passed {
		t.Fatal("expected failure for text file")
	}
}

func TestCheckWorkbook_Locked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xls")
	writeWorkbook(t, path, workbook.FormatXLS)
	holder := flock.New(storage.LockPath(path))
	if ok, err := holder.TryLock(); err != nil || !ok {
		t.Fatalf("TryLock = %v, %v", ok, err)
	}
	defer func() { _ = holder.Unlock() }()

	result := CheckWorkbook(context.Background(), path)
	if result.Passed {
		t.Fatal("expected failure while lock is held")
	}
	if !strings.Contains(result.Detail, "another process") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	results := RunAll(context.Background(), nil, "")
	if results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_MinimalConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithJournalDisabled(), testsupport.WithWorkbookName("catalog.xlsx"))

	results := RunAll(context.Background(), cfg, cfg.Workbook.Path)
	// Workbook directory + workbook
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("unexpected failures: %+v", failed)
	}
}

func TestRunAll_IncludesJournalWhenEnabled(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithJournalPath(filepath.Join("missing", "journal.db")))
	cfg.Journal.Enabled = true

	results := RunAll(context.Background(), cfg, cfg.Workbook.Path)
	found := false
	for _, r := range results {
		if r.Name == "Journal directory" {
			found = true
			if r.Passed {
				t.Error("journal check should fail for a missing directory")
			}
		}
	}
	if !found {
		t.Fatal("expected journal check in results")
	}
	if len(Failed(results)) != 1 {
		t.Fatalf("expected exactly one failure, got %+v", Failed(results))
	}
}
