package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// headerReplacer removes punctuation that spreadsheet authors attach to
// column headings ("编号：", "No.") so headings compare on their words only.
var headerReplacer = strings.NewReplacer(
	":", "",
	"：", "",
	"*", "",
	"＊", "",
	"　", "",
)

// NormalizeText collapses every run of line breaks into a single space and
// trims surrounding whitespace. Applying it twice yields the same result.
func NormalizeText(value string) string {
	if value == "" {
		return ""
	}
	if !strings.ContainsAny(value, "\r\n") {
		return strings.TrimSpace(value)
	}
	var b strings.Builder
	b.Grow(len(value))
	inBreak := false
	for _, r := range value {
		if r == '\r' || r == '\n' {
			if !inBreak {
				b.WriteByte(' ')
				inBreak = true
			}
			continue
		}
		inBreak = false
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// NormalizeHeader reduces a column heading to a lowercase key without
// whitespace or trailing punctuation. Full-width letters fold to ASCII.
func NormalizeHeader(value string) string {
	value = width.Fold.String(NormalizeText(value))
	value = headerReplacer.Replace(value)
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// FoldQuery prepares free-text search input: full-width forms fold to their
// half-width equivalents, the ideographic full stop becomes '.', and the
// result is lowercased and trimmed.
func FoldQuery(query string) string {
	query = width.Fold.String(NormalizeText(query))
	query = strings.ReplaceAll(query, "。", ".")
	return strings.ToLower(strings.TrimSpace(query))
}

// IsBlank reports whether every cell is empty after normalization.
func IsBlank(cells []string) bool {
	for _, cell := range cells {
		if NormalizeText(cell) != "" {
			return false
		}
	}
	return true
}
