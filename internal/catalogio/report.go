package catalogio

import (
	"discshelf/internal/catalog"
	"discshelf/internal/workbook"
)

// Layout is the arrangement detected on a category sheet.
type Layout int

const (
	// LayoutNone marks a missing or empty sheet.
	LayoutNone Layout = iota
	// LayoutBlock packs several records side by side, one group of
	// len(Fields) cells each.
	LayoutBlock
	// LayoutFlat is one record per row below a header row.
	LayoutFlat
	// LayoutDiskGrouped is the hard-disk sheet with disk heading rows and
	// five-column record groups.
	LayoutDiskGrouped
)

func (l Layout) String() string {
	switch l {
	case LayoutBlock:
		return "block"
	case LayoutFlat:
		return "flat"
	case LayoutDiskGrouped:
		return "disk_grouped"
	default:
		return "none"
	}
}

// MarshalText renders the layout name in JSON output.
func (l Layout) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// Resolution records how a category's sheet was found.
type Resolution int

const (
	ResolutionMissing Resolution = iota
	ResolutionExact
	ResolutionSubstring
	ResolutionPosition
)

func (r Resolution) String() string {
	switch r {
	case ResolutionExact:
		return "exact"
	case ResolutionSubstring:
		return "substring"
	case ResolutionPosition:
		return "position"
	default:
		return "missing"
	}
}

// MarshalText renders the resolution name in JSON output.
func (r Resolution) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// SheetReport describes how one category was read.
type SheetReport struct {
	Category   catalog.CategoryID `json:"category"`
	Sheet      string             `json:"sheet,omitempty"`
	Resolution Resolution         `json:"resolution"`
	Layout     Layout             `json:"layout"`
	// Records is the number of valid records kept.
	Records int `json:"records"`
	// Dropped counts candidates that failed validation.
	Dropped int `json:"dropped"`
	// Headers counts candidates made only of column headings.
	Headers int `json:"headers"`
	// Err is set when the sheet could not be decoded; the category is empty.
	Err error `json:"-"`
}

// Report summarizes a parse.
type Report struct {
	Format workbook.Format `json:"-"`
	Sheets []SheetReport   `json:"sheets"`
	// Unclaimed lists workbook sheets no category was read from.
	Unclaimed []string `json:"unclaimed,omitempty"`
}

// Dropped returns the total number of dropped rows.
func (r Report) Dropped() int {
	n := 0
	for _, s := range r.Sheets {
		n += s.Dropped
	}
	return n
}

// For returns the report of one category.
func (r Report) For(id catalog.CategoryID) (SheetReport, bool) {
	for _, s := range r.Sheets {
		if s.Category == id {
			return s, true
		}
	}
	return SheetReport{}, false
}
