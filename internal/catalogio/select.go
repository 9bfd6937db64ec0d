package catalogio

import (
	"cmp"
	"slices"
	"strings"

	"discshelf/internal/catalog"
	"discshelf/internal/textutil"
)

// selection is the sheet chosen for one category; index is -1 when none.
type selection struct {
	index      int
	resolution Resolution
}

// selectSheets assigns at most one sheet to every category, and never the
// same sheet twice. Passes run in order: exact name, substring, position.
func selectSheets(sheetNames []string, categories []catalog.Category) map[catalog.CategoryID]selection {
	keys := make([]string, len(sheetNames))
	for i, name := range sheetNames {
		keys[i] = textutil.NormalizeHeader(name)
	}
	claimed := make([]bool, len(sheetNames))
	out := make(map[catalog.CategoryID]selection, len(categories))
	assign := func(c catalog.Category, index int, res Resolution) {
		claimed[index] = true
		out[c.ID] = selection{index: index, resolution: res}
	}

	for _, c := range categories {
		names := normalizedNames(c)
		for i, key := range keys {
			if !claimed[i] && slices.Contains(names, key) {
				assign(c, i, ResolutionExact)
				break
			}
		}
	}

	// Substring matches are assigned most specific first, so "精装蓝光"
	// goes to the collector category and not to the shorter "蓝光".
	type match struct {
		category catalog.Category
		order    int
		sheet    int
		matched  int
	}
	var matches []match
	for order, c := range categories {
		if _, ok := out[c.ID]; ok {
			continue
		}
		for i, key := range keys {
			if claimed[i] || key == "" {
				continue
			}
			best := 0
			for _, name := range normalizedNames(c) {
				if name != "" && strings.Contains(key, name) {
					best = max(best, len([]rune(name)))
				}
			}
			if best > 0 {
				matches = append(matches, match{category: c, order: order, sheet: i, matched: best})
			}
		}
	}
	slices.SortStableFunc(matches, func(a, b match) int {
		return cmp.Or(
			cmp.Compare(b.matched, a.matched),
			cmp.Compare(len([]rune(keys[a.sheet])), len([]rune(keys[b.sheet]))),
			cmp.Compare(a.order, b.order),
			cmp.Compare(a.sheet, b.sheet),
		)
	})
	for _, m := range matches {
		if _, ok := out[m.category.ID]; ok || claimed[m.sheet] {
			continue
		}
		assign(m.category, m.sheet, ResolutionSubstring)
	}

	for i, c := range categories {
		if _, ok := out[c.ID]; ok {
			continue
		}
		if i < len(sheetNames) && !claimed[i] {
			assign(c, i, ResolutionPosition)
			continue
		}
		out[c.ID] = selection{index: -1, resolution: ResolutionMissing}
	}
	return out
}

func normalizedNames(c catalog.Category) []string {
	names := c.SheetNames()
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, textutil.NormalizeHeader(name))
	}
	return out
}
