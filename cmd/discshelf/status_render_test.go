package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"discshelf/internal/preflight"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Workbook", statusError, "not writable", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Workbook:", "[ERROR] not writable")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Workbook", statusOK, "ready", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestCheckLines(t *testing.T) {
	results := []preflight.Result{
		{Name: "Workbook directory", Passed: true, Detail: "/srv (read/write ok)"},
		{Name: "Workbook", Detail: "/srv/a.xls (error: not writable)"},
	}
	lines := checkLines(results, false)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "[OK] /srv") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[2], "[ERROR] failing: Workbook") {
		t.Fatalf("unexpected summary %q", lines[2])
	}
	if !strings.Contains(checkLines(nil, false)[0], "[WARN] no checks ran") {
		t.Fatal("expected warning when no checks ran")
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}
