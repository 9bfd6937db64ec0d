package journal_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"discshelf/internal/catalog"
	"discshelf/internal/catalogio"
	"discshelf/internal/journal"
	"discshelf/internal/testsupport"
	"discshelf/internal/workbook"
)

func openJournal(t *testing.T) *journal.Journal {
	t.Helper()
	return testsupport.MustOpenJournal(t, testsupport.NewConfig(t))
}

func TestRememberedWorkbook(t *testing.T) {
	j := openJournal(t)
	ctx := context.Background()

	got, err := j.RememberedWorkbook(ctx)
	if err != nil || got != "" {
		t.Fatalf("fresh journal = %q, %v", got, err)
	}
	for _, path := range []string{"/srv/a.xls", "/srv/b.xlsx"} {
		if err := j.RememberWorkbook(ctx, path); err != nil {
			t.Fatalf("RememberWorkbook: %v", err)
		}
	}
	got, err = j.RememberedWorkbook(ctx)
	if err != nil || got != "/srv/b.xlsx" {
		t.Fatalf("RememberedWorkbook = %q, %v", got, err)
	}
}

func TestRecordMutationNewestFirst(t *testing.T) {
	j := openJournal(t)
	ctx := context.Background()

	entries := []journal.Mutation{
		{Op: journal.OpCreate, Category: catalog.DVD, RecordID: "r1", Serial: "1", Title: "教父", Saved: true},
		{Op: journal.OpUpdate, Category: catalog.Bluray, RecordID: "r2", Serial: "1-2", Title: "Alien", Saved: true},
		{Op: journal.OpDelete, Category: catalog.HDD, RecordID: "r3", Saved: false},
	}
	for _, m := range entries {
		if err := j.RecordMutation(ctx, m); err != nil {
			t.Fatalf("RecordMutation: %v", err)
		}
	}

	got, err := j.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Op != journal.OpDelete || got[0].Category != catalog.HDD || got[0].Saved {
		t.Fatalf("unexpected newest entry: %+v", got[0])
	}
	if got[0].Serial != "" || got[0].Title != "" {
		t.Fatalf("empty serial/title should read back empty: %+v", got[0])
	}
	if got[1].Serial != "1-2" || got[1].Title != "Alien" || !got[1].Saved {
		t.Fatalf("unexpected second entry: %+v", got[1])
	}
	if got[0].SessionID != j.Session() || got[0].Time.IsZero() {
		t.Fatalf("session/time not stamped: %+v", got[0])
	}
}

func TestRecordLoad(t *testing.T) {
	j := openJournal(t)
	ctx := context.Background()

	report := catalogio.Report{
		Format: workbook.FormatXLS,
		Sheets: []catalogio.SheetReport{
			{Category: catalog.DVD, Sheet: "DVD目录", Resolution: catalogio.ResolutionExact, Layout: catalogio.LayoutBlock, Records: 5, Dropped: 2, Headers: 1},
			{Category: catalog.HDD, Sheet: "硬盘", Resolution: catalogio.ResolutionSubstring, Layout: catalogio.LayoutDiskGrouped, Records: 3, Dropped: 1},
		},
	}
	if err := j.RecordLoad(ctx, "/srv/catalog.xls", report); err != nil {
		t.Fatalf("RecordLoad: %v", err)
	}

	loads, err := j.RecentLoads(ctx, 0)
	if err != nil {
		t.Fatalf("RecentLoads: %v", err)
	}
	if len(loads) != 1 {
		t.Fatalf("expected 1 load, got %d", len(loads))
	}
	l := loads[0]
	if l.Path != "/srv/catalog.xls" || l.Format != "xls" || l.Records != 8 || l.Dropped != 3 {
		t.Fatalf("unexpected load: %+v", l)
	}
	if len(l.Sheets) != 2 || l.Sheets[1].Layout != "disk_grouped" || l.Sheets[1].Resolution != "substring" {
		t.Fatalf("unexpected sheets: %+v", l.Sheets)
	}
}

func TestSessionsDiffer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()
	first, err := journal.Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	session := first.Session()
	_ = first.Close()

	second, err := journal.Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	if second.Session() == session {
		t.Fatal("each open should start a new session")
	}
}

func TestSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()
	j, err := journal.Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	_ = j.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatal(err)
	}
	_ = db.Close()

	if _, err := journal.Open(ctx, path); !errors.Is(err, journal.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := journal.Open(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
