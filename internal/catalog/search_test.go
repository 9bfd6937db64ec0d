package catalog

import "testing"

func TestSearchText(t *testing.T) {
	dvd := MustLookup(DVD)
	rec := dvd.NewRecord(map[string]string{FieldSerial: "12", FieldTitle: "The Matrix"})
	if got, want := SearchText(dvd, rec), "12|the matrix||dvd"; got != want {
		t.Fatalf("SearchText = %q, want %q", got, want)
	}
}

func TestSearchPlainSubstring(t *testing.T) {
	dvd := MustLookup(DVD)
	records := []Record{
		dvd.NewRecord(map[string]string{FieldSerial: "1", FieldTitle: "The Matrix"}),
		dvd.NewRecord(map[string]string{FieldSerial: "2", FieldTitle: "教父", FieldRemark: "收藏版"}),
	}
	if got := Search(dvd, records, "MATRIX"); len(got) != 1 || got[0].Serial() != "1" {
		t.Fatalf("unexpected hits %+v", got)
	}
	if got := Search(dvd, records, "收藏"); len(got) != 1 || got[0].Serial() != "2" {
		t.Fatalf("unexpected hits %+v", got)
	}
	if got := Search(dvd, records, "  "); len(got) != 2 {
		t.Fatalf("empty query should match all, got %d", len(got))
	}
	if got := Search(dvd, records, "dvd"); len(got) != 2 {
		t.Fatalf("category id should be searchable, got %d", len(got))
	}
}

func TestSearchHDDComposite(t *testing.T) {
	hdd := MustLookup(HDD)
	records := []Record{
		hdd.NewRecord(map[string]string{FieldDisk: "硬盘一", FieldSerial: "12", FieldTitle: "教父"}),
		hdd.NewRecord(map[string]string{FieldDisk: "硬盘一", FieldSerial: "13", FieldTitle: "教父2"}),
		hdd.NewRecord(map[string]string{FieldDisk: "硬盘二", FieldSerial: "12", FieldTitle: "教父"}),
	}
	tests := []struct {
		query string
		want  int
	}{
		{"硬盘一.12.教父", 1},
		{"硬盘一。12。教父", 1},
		{"硬盘一．１２", 1},
		{"硬盘一.1", 2},
		{".12.", 2},
		{"教父", 3},
	}
	for _, tt := range tests {
		if got := Search(hdd, records, tt.query); len(got) != tt.want {
			t.Errorf("Search(%q) returned %d hits, want %d", tt.query, len(got), tt.want)
		}
	}
	if !Match(hdd, records[0], "硬盘一.12") {
		t.Fatal("expected Match on composite key")
	}
}

func TestSearchCompositeOnlyForHDD(t *testing.T) {
	dvd := MustLookup(DVD)
	rec := dvd.NewRecord(map[string]string{FieldSerial: "1", FieldTitle: "教父"})
	if Match(dvd, rec, "1.教父") {
		t.Fatal("composite lookup must not apply to disc categories")
	}
}
