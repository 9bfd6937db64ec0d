package catalogio

import (
	"discshelf/internal/catalog"
	"discshelf/internal/textutil"
)

const headerScanRows = 30

// findHeaderRow returns the row among the first headerScanRows whose cells
// overlap most with the category's labels and aliases. Ties go to the
// earliest row; -1 means no row overlaps at all.
func findHeaderRow(c catalog.Category, rows [][]string) int {
	tokens := c.HeaderTokens()
	best, bestScore := -1, 0
	for i := 0; i < len(rows) && i < headerScanRows; i++ {
		score := 0
		for _, cell := range rows[i] {
			if _, ok := tokens[textutil.NormalizeHeader(cell)]; ok {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// resolveColumns maps every field to a column of header, in field order.
// Exact label matches are taken first, then aliases, then the field's
// declared index if no other field claimed that column. -1 means the field
// has no column.
func resolveColumns(c catalog.Category, header []string) []int {
	keys := make([]string, len(header))
	for i, cell := range header {
		keys[i] = textutil.NormalizeHeader(cell)
	}
	cols := make([]int, len(c.Fields))
	for i := range cols {
		cols[i] = -1
	}
	used := make(map[int]bool, len(header))
	claim := func(field int, accept func(string) bool) {
		for col, key := range keys {
			if key != "" && !used[col] && accept(key) {
				cols[field] = col
				used[col] = true
				return
			}
		}
	}

	for i, f := range c.Fields {
		label := textutil.NormalizeHeader(f.Label)
		claim(i, func(key string) bool { return key == label })
	}
	for i, f := range c.Fields {
		if cols[i] >= 0 {
			continue
		}
		aliases := make(map[string]bool, len(f.Aliases))
		for _, alias := range f.Aliases {
			aliases[textutil.NormalizeHeader(alias)] = true
		}
		claim(i, func(key string) bool { return aliases[key] })
	}
	for i := range c.Fields {
		if cols[i] < 0 && !used[i] {
			cols[i] = i
			used[i] = true
		}
	}
	return cols
}

// flatCandidates yields one candidate per non-blank row below the header.
// Without a header row every row is data and columns follow field order.
func flatCandidates(c catalog.Category, rows [][]string) []candidate {
	headerRow := findHeaderRow(c, rows)
	var cols []int
	if headerRow >= 0 {
		cols = resolveColumns(c, rows[headerRow])
	} else {
		cols = resolveColumns(c, nil)
	}

	var out []candidate
	for _, row := range rows[headerRow+1:] {
		if textutil.IsBlank(row) {
			continue
		}
		values := make(map[string]string, len(c.Fields))
		cells := make([]string, 0, len(c.Fields))
		for i, f := range c.Fields {
			if col := cols[i]; col >= 0 && col < len(row) {
				values[f.Key] = row[col]
				cells = append(cells, row[col])
			}
		}
		out = append(out, candidate{values: values, cells: cells})
	}
	return out
}
