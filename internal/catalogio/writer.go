package catalogio

import (
	"discshelf/internal/catalog"
	"discshelf/internal/workbook"
)

// BuildWorkbook lays out records as the four canonical sheets in category
// order. Each sheet starts with the field labels; empty categories get the
// header row only. The input is not modified.
func BuildWorkbook(records catalog.Records) *workbook.Workbook {
	wb := &workbook.Workbook{}
	for _, c := range catalog.Categories() {
		list := make([]catalog.Record, len(records[c.ID]))
		copy(list, records[c.ID])
		catalog.Sort(c, list)

		rows := make([][]string, 0, len(list)+1)
		rows = append(rows, c.Labels())
		for _, rec := range list {
			rows = append(rows, c.Row(rec))
		}
		wb.Sheets = append(wb.Sheets, workbook.Sheet{Name: c.SheetName, Rows: rows, Header: true})
	}
	return wb
}

// Serialize encodes records as a workbook. FormatUnknown selects .xls.
func Serialize(records catalog.Records, format workbook.Format) ([]byte, error) {
	if format == workbook.FormatUnknown {
		format = workbook.FormatXLS
	}
	wb := BuildWorkbook(records)
	wb.Format = format
	return workbook.Encode(wb, format)
}
