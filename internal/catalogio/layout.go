package catalogio

import (
	"strings"

	"discshelf/internal/catalog"
	"discshelf/internal/textutil"
)

const (
	diskHeadingPrefix = "硬盘"
	headerSerial      = "序号"
	headerTitle       = "电影名称"
	headerGenre       = "类型"
)

// classify decides the layout of a category sheet once, before extraction.
//
// Disc sheets are block sheets when the block walk recovers at least one
// valid record and flat otherwise. The hard-disk sheet is disk grouped when
// it has both a disk heading row and a repeated sub-header row.
func classify(c catalog.Category, rows [][]string) Layout {
	if allBlank(rows) {
		return LayoutNone
	}
	if c.ID == catalog.HDD {
		if looksDiskGrouped(rows) {
			return LayoutDiskGrouped
		}
		return LayoutFlat
	}
	for _, cand := range blockCandidates(c, rows) {
		if c.Valid(cand.record(c)) {
			return LayoutBlock
		}
	}
	return LayoutFlat
}

func looksDiskGrouped(rows [][]string) bool {
	var heading, subHeader bool
	for _, row := range rows {
		if !heading {
			_, heading = diskHeading(row)
		}
		if !subHeader {
			subHeader = isRepeatedSubHeader(row)
		}
		if heading && subHeader {
			return true
		}
	}
	return false
}

// diskHeading reports whether row has exactly one non-blank cell starting
// with 硬盘, and returns the disk name without any parenthetical suffix.
func diskHeading(row []string) (string, bool) {
	var text string
	for _, cell := range row {
		cell = textutil.NormalizeText(cell)
		if cell == "" {
			continue
		}
		if text != "" {
			return "", false
		}
		text = cell
	}
	if !strings.HasPrefix(text, diskHeadingPrefix) {
		return "", false
	}
	if i := strings.IndexAny(text, "(（"); i >= 0 {
		text = text[:i]
	}
	return textutil.NormalizeText(text), true
}

func isRepeatedSubHeader(row []string) bool {
	serials, titles := 0, 0
	for _, cell := range row {
		switch textutil.NormalizeHeader(cell) {
		case headerSerial:
			serials++
		case headerTitle:
			titles++
		}
	}
	return serials >= 2 && titles > 0
}

// isDiskSubHeader reports a row carrying the 序号, 电影名称 and 类型 headings.
func isDiskSubHeader(row []string) bool {
	seen := make(map[string]bool, 3)
	for _, cell := range row {
		seen[textutil.NormalizeHeader(cell)] = true
	}
	return seen[headerSerial] && seen[headerTitle] && seen[headerGenre]
}

func allBlank(rows [][]string) bool {
	for _, row := range rows {
		if !textutil.IsBlank(row) {
			return false
		}
	}
	return true
}
