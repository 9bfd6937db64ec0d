package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrMalformedWorkbook reports bytes that are not a readable spreadsheet.
var ErrMalformedWorkbook = errors.New("malformed workbook")

// Format is a spreadsheet container format.
type Format int

const (
	FormatUnknown Format = iota
	// FormatXLS is the legacy BIFF8 compound-file workbook.
	FormatXLS
	// FormatXLSX is the Office Open XML workbook.
	FormatXLSX
)

func (f Format) String() string {
	switch f {
	case FormatXLS:
		return "xls"
	case FormatXLSX:
		return "xlsx"
	default:
		return "unknown"
	}
}

// Extension returns the conventional file extension including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatXLSX:
		return ".xlsx"
	default:
		return ".xls"
	}
}

// ParseFormat accepts "xls" or "xlsx" (case-insensitive, optional dot).
func ParseFormat(value string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(value)), ".") {
	case "xls":
		return FormatXLS, nil
	case "xlsx":
		return FormatXLSX, nil
	default:
		return FormatUnknown, fmt.Errorf("unsupported workbook format %q", value)
	}
}

// FormatForPath picks a format from a file extension, defaulting to XLS.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return FormatXLSX
	}
	return FormatXLS
}

var (
	compoundFileMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	zipMagic          = []byte{'P', 'K', 0x03, 0x04}
)

// Detect sniffs the container format from the leading bytes.
func Detect(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, compoundFileMagic):
		return FormatXLS
	case bytes.HasPrefix(data, zipMagic):
		return FormatXLSX
	default:
		return FormatUnknown
	}
}

// Sheet is one worksheet as a grid of cell text. Rows may be ragged; a
// missing cell reads as "".
type Sheet struct {
	Name string
	Rows [][]string
	// Header marks the first row as a heading row for writers that style it.
	Header bool
	// Err is set when this sheet alone could not be decoded; Rows is empty.
	Err error
}

// Cell returns the text at (row, col) or "".
func (s Sheet) Cell(row, col int) string {
	if row < 0 || row >= len(s.Rows) || col < 0 || col >= len(s.Rows[row]) {
		return ""
	}
	return s.Rows[row][col]
}

// Workbook is an ordered list of sheets.
type Workbook struct {
	Format Format
	Sheets []Sheet
}

// SheetNames returns the sheet names in order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}

// Decode reads an XLS or XLSX workbook. Unrecognized or unreadable input
// wraps ErrMalformedWorkbook. A sheet that fails on its own is returned
// with Err set so the remaining sheets stay usable.
func Decode(data []byte) (*Workbook, error) {
	switch Detect(data) {
	case FormatXLS:
		return decodeXLS(data)
	case FormatXLSX:
		return decodeXLSX(data)
	default:
		return nil, fmt.Errorf("%w: unrecognized file signature", ErrMalformedWorkbook)
	}
}

// Encode writes wb in the requested format.
func Encode(wb *Workbook, format Format) ([]byte, error) {
	if wb == nil || len(wb.Sheets) == 0 {
		return nil, errors.New("encode workbook: no sheets")
	}
	switch format {
	case FormatXLS:
		return encodeXLS(wb)
	case FormatXLSX:
		return encodeXLSX(wb)
	default:
		return nil, fmt.Errorf("encode workbook: unsupported format %s", format)
	}
}

// trimRow drops trailing empty cells.
func trimRow(row []string) []string {
	end := len(row)
	for end > 0 && row[end-1] == "" {
		end--
	}
	return row[:end]
}

// trimRows drops trailing empty rows.
func trimRows(rows [][]string) [][]string {
	end := len(rows)
	for end > 0 && len(trimRow(rows[end-1])) == 0 {
		end--
	}
	return rows[:end]
}
