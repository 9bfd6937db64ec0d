package textutil

import (
	"slices"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"trim", "  教父  ", "教父"},
		{"crlf", "教父\r\n第二部", "教父 第二部"},
		{"mixed breaks", "A\n\n\rB", "A B"},
		{"trailing break", "A\n", "A"},
		{"inner spaces kept", "A  B", "A  B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeText(tt.in)
			if got != tt.want {
				t.Fatalf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := NormalizeText(got); again != got {
				t.Fatalf("NormalizeText not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestNormalizeHeader(t *testing.T) {
	tests := map[string]string{
		" 编号： ":  "编号",
		"No.":    "no.",
		"ＮＯ":     "no",
		"影碟 名称":  "影碟名称",
		"备注\n":   "备注",
		"*电影名称": "电影名称",
	}
	for in, want := range tests {
		if got := NormalizeHeader(in); got != want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFoldQuery(t *testing.T) {
	tests := map[string]string{
		"硬盘一。12。教父": "硬盘一.12.教父",
		"硬盘一．１２":    "硬盘一.12",
		"  MATRIX ":   "matrix",
		"":            "",
	}
	for in, want := range tests {
		if got := FoldQuery(in); got != want {
			t.Errorf("FoldQuery(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseChineseNumeral(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"十二", 12, true},
		{"二十", 20, true},
		{"一百零五", 105, true},
		{"五百", 500, true},
		{"十", 10, true},
		{"三", 3, true},
		{"零", 0, true},
		{"一万二千", 12000, true},
		{"一万二", 10002, true},
		{"两千零一", 2001, true},
		{"42", 42, true},
		{"abc", 0, false},
		{"十x", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseChineseNumeral(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseChineseNumeral(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseDiskOrder(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"硬盘一", 1, true},
		{"硬盘十二", 12, true},
		{"硬盘10", 10, true},
		{"4T-3号盘", 4, true},
		{"硬盘", 0, false},
		{"移动盘", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseDiskOrder(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseDiskOrder(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCollatorNumericAndCase(t *testing.T) {
	c := NewCollator()
	values := []string{"b", "A10", "a2", "B"}
	slices.SortStableFunc(values, c.Compare)
	if values[0] != "a2" || values[1] != "A10" {
		t.Fatalf("unexpected order %v", values)
	}
	if c.Compare("x", "x") != 0 {
		t.Fatalf("expected equality for identical text")
	}
}

func TestIsBlank(t *testing.T) {
	if !IsBlank([]string{"", "  ", "\n"}) {
		t.Fatal("expected blank row")
	}
	if IsBlank([]string{"", "x"}) {
		t.Fatal("expected non-blank row")
	}
}
