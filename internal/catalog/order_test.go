package catalog

import (
	"slices"
	"testing"
)

func discRecords(c Category, serials ...string) []Record {
	out := make([]Record, 0, len(serials))
	for _, s := range serials {
		out = append(out, c.NewRecord(map[string]string{FieldSerial: s, FieldTitle: "t" + s}))
	}
	return out
}

func serialsOf(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Serial()
	}
	return out
}

func TestSortIntegerSerials(t *testing.T) {
	dvd := MustLookup(DVD)
	records := discRecords(dvd, "10", "2", "abc", "1")
	Sort(dvd, records)
	want := []string{"1", "2", "10", "abc"}
	if got := serialsOf(records); !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestSortRangeSerials(t *testing.T) {
	bluray := MustLookup(Bluray)
	records := discRecords(bluray, "2-3", "1-10", "2-1")
	Sort(bluray, records)
	want := []string{"1-10", "2-1", "2-3"}
	if got := serialsOf(records); !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestSortRangeUnparseableLast(t *testing.T) {
	bluray := MustLookup(Bluray)
	records := discRecords(bluray, "B", "3-1", "A", "1-2")
	Sort(bluray, records)
	want := []string{"1-2", "3-1", "A", "B"}
	if got := serialsOf(records); !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestSortDisks(t *testing.T) {
	hdd := MustLookup(HDD)
	var records []Record
	for _, disk := range []string{"硬盘二", "硬盘10", "硬盘一"} {
		records = append(records, hdd.NewRecord(map[string]string{
			FieldDisk:   disk,
			FieldSerial: "1",
			FieldTitle:  "x",
		}))
	}
	Sort(hdd, records)
	got := []string{records[0].Disk(), records[1].Disk(), records[2].Disk()}
	want := []string{"硬盘一", "硬盘二", "硬盘10"}
	if !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestSortDiskThenSerial(t *testing.T) {
	hdd := MustLookup(HDD)
	rec := func(disk, serial string) Record {
		return hdd.NewRecord(map[string]string{FieldDisk: disk, FieldSerial: serial, FieldTitle: disk + serial})
	}
	records := []Record{rec("硬盘二", "3"), rec("硬盘一", "12"), rec("硬盘一", "2"), rec("备份盘", "1")}
	Sort(hdd, records)
	var got []string
	for _, r := range records {
		got = append(got, r.Disk()+"/"+r.Serial())
	}
	want := []string{"硬盘一/2", "硬盘一/12", "硬盘二/3", "备份盘/1"}
	if !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestSortTieBreaksOnTitle(t *testing.T) {
	dvd := MustLookup(DVD)
	records := []Record{
		dvd.NewRecord(map[string]string{FieldSerial: "5", FieldTitle: "b"}),
		dvd.NewRecord(map[string]string{FieldSerial: "5", FieldTitle: "a"}),
	}
	Sort(dvd, records)
	if records[0].Title() != "a" {
		t.Fatalf("expected title tie-break, got %q first", records[0].Title())
	}
}

func TestSortIsIdempotent(t *testing.T) {
	dvd := MustLookup(DVD)
	records := discRecords(dvd, "3", "x", "1", "3", "02")
	Sort(dvd, records)
	first := serialsOf(records)
	Sort(dvd, records)
	if second := serialsOf(records); !slices.Equal(first, second) {
		t.Fatalf("second sort changed order: %v -> %v", first, second)
	}
}

func TestParseSerials(t *testing.T) {
	if n, ok := ParseIntegerSerial(" 42 "); !ok || n != 42 {
		t.Fatalf("ParseIntegerSerial = (%d, %v)", n, ok)
	}
	if _, ok := ParseIntegerSerial("4-2"); ok {
		t.Fatal("expected range serial to be rejected as integer")
	}
	if _, ok := ParseIntegerSerial("99999999999999999999999"); ok {
		t.Fatal("expected overflow to be unparseable")
	}
	r, ok := ParseRangeSerial("12-3")
	if !ok || r.Start != 12 || r.End != 3 {
		t.Fatalf("ParseRangeSerial = (%+v, %v)", r, ok)
	}
	if _, ok := ParseRangeSerial("12"); ok {
		t.Fatal("expected plain serial to be rejected as range")
	}
	if n, ok := LeadingInteger("12a"); !ok || n != 12 {
		t.Fatalf("LeadingInteger = (%d, %v)", n, ok)
	}
}
