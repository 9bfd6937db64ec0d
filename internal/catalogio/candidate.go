package catalogio

import (
	"discshelf/internal/catalog"
	"discshelf/internal/textutil"
)

// candidate is an extracted row group before validation.
type candidate struct {
	values map[string]string
	cells  []string
}

func (cand candidate) record(c catalog.Category) catalog.Record {
	return c.NewRecord(cand.values)
}

// headerLike reports a candidate whose non-blank cells are all column
// headings. Such rows are repeated headers, not lost data.
func (cand candidate) headerLike(tokens map[string]struct{}) bool {
	seen := false
	for _, cell := range cand.cells {
		key := textutil.NormalizeHeader(cell)
		if key == "" {
			continue
		}
		if _, ok := tokens[key]; !ok {
			return false
		}
		seen = true
	}
	return seen
}

type extraction struct {
	records []catalog.Record
	dropped int
	headers int
}

// keep validates candidates in order.
func keep(c catalog.Category, cands []candidate) extraction {
	tokens := c.HeaderTokens()
	var out extraction
	for _, cand := range cands {
		rec := cand.record(c)
		switch {
		case c.Valid(rec):
			out.records = append(out.records, rec)
		case cand.headerLike(tokens):
			out.headers++
		default:
			out.dropped++
		}
	}
	return out
}
