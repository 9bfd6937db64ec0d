package catalog_test

import (
	"errors"
	"strings"
	"testing"

	"discshelf/internal/catalog"
	"discshelf/internal/workbook"
)

func TestCategoriesFixedOrder(t *testing.T) {
	cats := catalog.Categories()
	want := []string{"DVD目录", "蓝光影碟目录", "精装蓝光影碟目录", "硬盘电影目录"}
	if len(cats) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(cats))
	}
	for i, c := range cats {
		if c.SheetName != want[i] {
			t.Errorf("category %d sheet = %q, want %q", i, c.SheetName, want[i])
		}
	}
}

func TestResolveCategory(t *testing.T) {
	tests := map[string]catalog.CategoryID{
		"dvd":      catalog.DVD,
		"DVD":      catalog.DVD,
		"蓝光":       catalog.Bluray,
		"精装蓝光影碟目录": catalog.CollectorBluray,
		" hdd ":    catalog.HDD,
	}
	for in, want := range tests {
		c, err := catalog.ResolveCategory(in)
		if err != nil {
			t.Fatalf("ResolveCategory(%q): %v", in, err)
		}
		if c.ID != want {
			t.Errorf("ResolveCategory(%q) = %s, want %s", in, c.ID, want)
		}
	}
	if _, err := catalog.ResolveCategory("vhs"); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestNewRecordNormalizesAndRestricts(t *testing.T) {
	dvd := catalog.MustLookup(catalog.DVD)
	rec := dvd.NewRecord(map[string]string{
		catalog.FieldSerial: " 7\n",
		catalog.FieldTitle:  "教父\r\n第二部",
		"unknown":           "dropped",
	})
	if rec.ID == "" {
		t.Fatal("expected an ID")
	}
	if rec.Serial() != "7" || rec.Title() != "教父 第二部" {
		t.Fatalf("unexpected values %+v", rec.Values)
	}
	if _, ok := rec.Values["unknown"]; ok {
		t.Fatal("expected foreign keys to be dropped")
	}
	if got := dvd.Row(rec); len(got) != 3 || got[2] != "" {
		t.Fatalf("unexpected row %v", got)
	}
}

func TestValid(t *testing.T) {
	dvd := catalog.MustLookup(catalog.DVD)
	bluray := catalog.MustLookup(catalog.Bluray)
	hdd := catalog.MustLookup(catalog.HDD)

	tests := []struct {
		name string
		cat  catalog.Category
		vals map[string]string
		want bool
	}{
		{"dvd ok", dvd, map[string]string{"serial": "1", "title": "A"}, true},
		{"dvd empty title", dvd, map[string]string{"serial": "1"}, false},
		{"dvd range serial", dvd, map[string]string{"serial": "1-2", "title": "A"}, false},
		{"bluray ok", bluray, map[string]string{"serial": "1-2", "title": "A"}, true},
		{"bluray plain serial", bluray, map[string]string{"serial": "1", "title": "A"}, false},
		{"hdd ok", hdd, map[string]string{"disk": "硬盘一", "serial": "3", "title": "A"}, true},
		{"hdd non numeric serial", hdd, map[string]string{"disk": "硬盘一", "serial": "三", "title": "A"}, false},
		{"hdd no disk", hdd, map[string]string{"serial": "3", "title": "A"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cat.Valid(tt.cat.NewRecord(tt.vals)); got != tt.want {
				t.Fatalf("Valid = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateReportsKind(t *testing.T) {
	dvd := catalog.MustLookup(catalog.DVD)
	err := dvd.Validate(dvd.NewRecord(map[string]string{"serial": "x", "title": "A"}))
	var verr *catalog.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.ErrorKind() != "validation" || verr.Field != "编号" {
		t.Fatalf("unexpected error %+v", verr)
	}
	if err := dvd.Validate(dvd.NewRecord(map[string]string{"serial": "1", "title": "A"})); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}
}

func TestRecordIDsDistinct(t *testing.T) {
	dvd := catalog.MustLookup(catalog.DVD)
	a := dvd.NewRecord(map[string]string{"serial": "1", "title": "A"})
	b := dvd.NewRecord(map[string]string{"serial": "1", "title": "A"})
	if a.ID == b.ID {
		t.Fatal("expected distinct IDs for duplicate rows")
	}
}

func TestValidateRejectsTextBeyondCellLimit(t *testing.T) {
	dvd := catalog.MustLookup(catalog.DVD)
	long := strings.Repeat("注", workbook.MaxCellUnits)
	if err := dvd.Validate(dvd.NewRecord(map[string]string{"serial": "1", "title": "A", "remark": long})); err != nil {
		t.Fatalf("remark at the cell limit should pass, got %v", err)
	}
	err := dvd.Validate(dvd.NewRecord(map[string]string{"serial": "1", "title": "A", "remark": long + "注"}))
	var verr *catalog.ValidationError
	if !errors.As(err, &verr) || verr.Field != "备注" {
		t.Fatalf("expected remark ValidationError, got %v", err)
	}
}
