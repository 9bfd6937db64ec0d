package catalog

import (
	"strings"

	"discshelf/internal/textutil"
)

// SearchText is the lowercase haystack for a record: every field value in
// declared order joined by '|', followed by the category id.
func SearchText(c Category, r Record) string {
	parts := make([]string, 0, len(c.Fields)+1)
	for _, f := range c.Fields {
		parts = append(parts, textutil.FoldQuery(r.Get(f.Key)))
	}
	parts = append(parts, strings.ToLower(string(c.ID)))
	return strings.Join(parts, "|")
}

// CompositeKey renders an HDD record as "<disk>.<serial>.<title>".
func CompositeKey(r Record) string {
	return textutil.FoldQuery(r.Disk()) + "." + textutil.FoldQuery(r.Serial()) + "." + textutil.FoldQuery(r.Title())
}

// Index is a prebuilt search index over one category.
type Index struct {
	category Category
	entries  []indexEntry
}

type indexEntry struct {
	record    Record
	text      string
	composite string
}

// NewIndex builds the search strings for records once.
func NewIndex(c Category, records []Record) *Index {
	idx := &Index{category: c, entries: make([]indexEntry, len(records))}
	for i, r := range records {
		e := indexEntry{record: r, text: SearchText(c, r)}
		if c.ID == HDD {
			e.composite = CompositeKey(r)
		}
		idx.entries[i] = e
	}
	return idx
}

// Search returns the records matching query in index order. An empty query
// matches everything. For HDD, a query containing '.' (full-width periods
// included) also matches against "<disk>.<serial>.<title>".
func (idx *Index) Search(query string) []Record {
	q := textutil.FoldQuery(query)
	out := make([]Record, 0, len(idx.entries))
	for _, e := range idx.entries {
		if e.matches(q) {
			out = append(out, e.record)
		}
	}
	return out
}

func (e indexEntry) matches(q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(e.text, q) {
		return true
	}
	return e.composite != "" && strings.Contains(q, ".") && strings.Contains(e.composite, q)
}

// Search filters records of category c by query.
func Search(c Category, records []Record, query string) []Record {
	return NewIndex(c, records).Search(query)
}

// Match reports whether a single record matches query.
func Match(c Category, r Record, query string) bool {
	e := indexEntry{record: r, text: SearchText(c, r)}
	if c.ID == HDD {
		e.composite = CompositeKey(r)
	}
	return e.matches(textutil.FoldQuery(query))
}
