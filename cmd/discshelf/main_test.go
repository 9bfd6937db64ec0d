package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"discshelf/internal/testsupport"
	"discshelf/internal/workbook"
)

func decodeRecords(t *testing.T, out string) []recordJSON {
	t.Helper()
	var records []recordJSON
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	return records
}

func TestCategoriesCommand(t *testing.T) {
	out, _, err := runCLI(t, []string{"categories"}, "")
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	requireContains(t, out, "硬盘电影目录")
	requireContains(t, out, "collectorBluray")
}

func TestAddListAndSaveCycle(t *testing.T) {
	env := setupCLITestEnv(t, "catalog.xls")

	out := mustRunCLI(t, env, "add", "dvd", "-f", "编号=10", "-f", "影碟名称=教父")
	requireContains(t, out, "Added DVD record")
	mustRunCLI(t, env, "add", "DVD目录", "-f", "serial=2", "-f", "片名=卧虎藏龙", "-f", "备注：=国语")

	data, err := os.ReadFile(env.workbookPath)
	if err != nil {
		t.Fatalf("workbook not written: %v", err)
	}
	if workbook.Detect(data) != workbook.FormatXLS {
		t.Fatal("expected .xls workbook")
	}

	records := decodeRecords(t, mustRunCLI(t, env, "--json", "list", "dvd"))
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Values["serial"] != "2" || records[1].Values["serial"] != "10" {
		t.Fatalf("records not in serial order: %+v", records)
	}
	if records[0].Values["remark"] != "国语" {
		t.Fatalf("alias field not applied: %+v", records[0])
	}

	out = mustRunCLI(t, env, "list", "dvd")
	requireContains(t, out, "卧虎藏龙")
	requireContains(t, out, "2 records")
}

func TestAddRejectsInvalidSerial(t *testing.T) {
	env := setupCLITestEnv(t, "catalog.xls")

	_, _, err := runCLI(t, []string{"add", "bluray", "-f", "serial=12", "-f", "title=Alien"}, env.configPath)
	if err == nil {
		t.Fatal("expected validation error")
	}
	requireContains(t, err.Error(), "does not match")
	if _, statErr := os.Stat(env.workbookPath); !os.IsNotExist(statErr) {
		t.Fatal("rejected edit should not create the workbook")
	}

	if _, _, err := runCLI(t, []string{"add", "dvd", "-f", "colour=red"}, env.configPath); err == nil {
		t.Fatal("expected unknown field error")
	}
}

func TestUpdateAndDelete(t *testing.T) {
	env := setupCLITestEnv(t, "catalog.xlsx")
	mustRunCLI(t, env, "add", "hdd", "-f", "disk=硬盘一", "-f", "serial=1", "-f", "title=异形")
	mustRunCLI(t, env, "add", "hdd", "-f", "disk=硬盘二", "-f", "serial=1", "-f", "title=异形2")

	if _, _, err := runCLI(t, []string{"update", "hdd", "--serial", "1", "-f", "genre=科幻"}, env.configPath); err == nil {
		t.Fatal("expected ambiguous selector error")
	} else {
		requireContains(t, err.Error(), "more than one")
	}

	out := mustRunCLI(t, env, "update", "hdd", "--disk", "硬盘二", "--serial", "1", "-f", "类型=科幻")
	requireContains(t, out, "Updated")
	requireContains(t, out, "科幻")

	mustRunCLI(t, env, "delete", "hdd", "--disk", "硬盘一", "--serial", "1")
	records := decodeRecords(t, mustRunCLI(t, env, "--json", "list", "hdd"))
	if len(records) != 1 || records[0].Values["title"] != "异形2" || records[0].Values["genre"] != "科幻" {
		t.Fatalf("unexpected records after delete: %+v", records)
	}

	data, err := os.ReadFile(env.workbookPath)
	if err != nil {
		t.Fatal(err)
	}
	if workbook.Detect(data) != workbook.FormatXLSX {
		t.Fatal("expected .xlsx workbook for .xlsx path")
	}
	if _, err := os.Stat(env.workbookPath + ".1"); err != nil {
		t.Fatalf("expected a backup of the previous save: %v", err)
	}
}

func TestSearchAcrossCategories(t *testing.T) {
	env := setupCLITestEnv(t, "catalog.xls")
	mustRunCLI(t, env, "add", "dvd", "-f", "serial=1", "-f", "title=Alien")
	mustRunCLI(t, env, "add", "bluray", "-f", "serial=1-1", "-f", "title=Aliens")
	mustRunCLI(t, env, "add", "hdd", "-f", "disk=硬盘一", "-f", "serial=7", "-f", "title=Alien 3")
	mustRunCLI(t, env, "add", "dvd", "-f", "serial=2", "-f", "title=教父")

	hits := decodeRecords(t, mustRunCLI(t, env, "--json", "search", "ALIEN"))
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(hits))
	}

	out := mustRunCLI(t, env, "search", "硬盘一.7", "--category", "hdd")
	requireContains(t, out, "Alien 3")
	requireContains(t, out, "1 matches")

	out = mustRunCLI(t, env, "search", "nothing-like-this")
	requireContains(t, out, "No records match")
}

func TestStatsReportsDuplicates(t *testing.T) {
	env := setupCLITestEnv(t, "catalog.xls")
	mustRunCLI(t, env, "add", "hdd", "-f", "disk=硬盘一", "-f", "serial=1", "-f", "title=A")
	mustRunCLI(t, env, "add", "hdd", "-f", "disk=硬盘一", "-f", "serial=1", "-f", "title=B")

	var stats struct {
		Format     string `json:"format"`
		Categories []struct {
			Category   string `json:"category"`
			Records    int    `json:"records"`
			Duplicates int    `json:"duplicates"`
			Layout     string `json:"layout"`
		} `json:"categories"`
	}
	out := mustRunCLI(t, env, "--json", "stats")
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Format != "xls" || len(stats.Categories) != 4 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	hdd := stats.Categories[3]
	if hdd.Category != "hdd" || hdd.Records != 2 || hdd.Duplicates != 1 || hdd.Layout != "flat" {
		t.Fatalf("unexpected hdd stats: %+v", hdd)
	}

	requireContains(t, mustRunCLI(t, env, "stats"), "Duplicates")
}

func TestConvertWritesOtherFormat(t *testing.T) {
	env := setupCLITestEnv(t, "catalog.xls")
	mustRunCLI(t, env, "add", "dvd", "-f", "serial=1", "-f", "title=教父")

	dest := filepath.Join(env.baseDir, "export", "catalog.xlsx")
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		t.Fatal(err)
	}
	out := mustRunCLI(t, env, "convert", dest)
	requireContains(t, out, "Wrote 1 records")

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if workbook.Detect(data) != workbook.FormatXLSX {
		t.Fatal("expected xlsx output")
	}

	if _, _, err := runCLI(t, []string{"convert", env.workbookPath}, env.configPath); err == nil {
		t.Fatal("converting onto the open workbook should fail")
	}
}

func TestRememberedWorkbook(t *testing.T) {
	env := setupCLITestEnv(t, "")
	target := filepath.Join(env.baseDir, "remembered.xls")

	if _, _, err := runCLI(t, []string{"list", "dvd"}, env.configPath); err == nil {
		t.Fatal("expected error without any workbook")
	}

	mustRunCLI(t, env, "--workbook", target, "add", "dvd", "-f", "serial=1", "-f", "title=教父")
	out := mustRunCLI(t, env, "list", "dvd")
	requireContains(t, out, "教父")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("workbook not written at remembered path: %v", err)
	}
}

func TestJournalCommand(t *testing.T) {
	env := setupCLITestEnv(t, "catalog.xls")
	mustRunCLI(t, env, "add", "dvd", "-f", "serial=1", "-f", "title=教父")
	mustRunCLI(t, env, "add", "dvd", "-f", "serial=2", "-f", "title=教父2")

	out := mustRunCLI(t, env, "journal")
	requireContains(t, out, "create")
	requireContains(t, out, "教父2")

	var loads []struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal([]byte(mustRunCLI(t, env, "--json", "journal", "--loads")), &loads); err != nil {
		t.Fatalf("decode loads: %v", err)
	}
	// The first add found no workbook; the second loaded it.
	if len(loads) != 1 || loads[0].Path != env.workbookPath {
		t.Fatalf("unexpected loads: %+v", loads)
	}
}

func TestStatusCommand(t *testing.T) {
	env := setupCLITestEnv(t, "catalog.xls")
	out := mustRunCLI(t, env, "status")
	requireContains(t, out, "== Checks ==")
	requireContains(t, out, "not created yet")
	requireContains(t, out, "[OK] ready")

	var status struct {
		Ready  bool `json:"ready"`
		Checks []struct {
			Name string `json:"name"`
		} `json:"checks"`
	}
	if err := json.Unmarshal([]byte(mustRunCLI(t, env, "--json", "status")), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if !status.Ready || len(status.Checks) != 3 {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestStatusWithoutWorkbook(t *testing.T) {
	env := setupCLITestEnv(t, "")
	out := mustRunCLI(t, env, "status")
	requireContains(t, out, "no workbook configured")
	if !strings.Contains(out, "[ERROR]") {
		t.Fatalf("expected an error line: %s", out)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t, "catalog.xls")

	out := mustRunCLI(t, env, "config", "validate")
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.workbookPath)
	requireContains(t, out, "new files written as xls")
	requireContains(t, out, "Backups kept:")
	requireContains(t, out, "Journal:")

	target := filepath.Join(t.TempDir(), "config.toml")
	out = mustRunCLI(t, env, "config", "init", "--path", target)
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error when config exists")
	}
}

func TestLogsCommand(t *testing.T) {
	env := setupCLITestEnv(t, "catalog.xls")

	out := mustRunCLI(t, env, "logs")
	requireContains(t, out, "No log output")

	if err := os.MkdirAll(env.logDir, 0o755); err != nil {
		t.Fatalf("mkdir logs: %v", err)
	}
	content := "first\nsecond\nthird\n"
	if err := os.WriteFile(filepath.Join(env.logDir, "discshelf.log"), []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	out = mustRunCLI(t, env, "logs", "--lines", "2")
	if strings.Contains(out, "first") {
		t.Fatalf("expected only the last two lines, got %q", out)
	}
	requireContains(t, out, "second\nthird\n")
}

func TestListReadsHandMadeWorkbook(t *testing.T) {
	env := setupCLITestEnv(t, "legacy.xls")
	testsupport.WriteWorkbook(t, env.workbookPath, &workbook.Workbook{Sheets: []workbook.Sheet{{
		Name: "DVD",
		Rows: [][]string{
			{"编号", "影碟名称"},
			{"2", "乙"},
			{"1", "甲"},
		},
	}}})

	records := decodeRecords(t, mustRunCLI(t, env, "--json", "list", "dvd"))
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %+v", records)
	}
	if records[0].Values["title"] != "甲" || records[1].Values["serial"] != "2" {
		t.Fatalf("records not in catalogue order: %+v", records)
	}
}
