package workbook

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const defaultXLSXSheet = "Sheet1"

func decodeXLSX(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedWorkbook, err)
	}
	defer func() { _ = f.Close() }()

	wb := &Workbook{Format: FormatXLSX}
	for _, name := range f.GetSheetList() {
		sheet := Sheet{Name: name}
		rows, err := f.GetRows(name)
		if err != nil {
			sheet.Err = fmt.Errorf("read sheet %q: %w", name, err)
		} else {
			sheet.Rows = trimRows(rows)
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformedWorkbook)
	}
	return wb, nil
}

func encodeXLSX(wb *Workbook) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, sheet := range wb.Sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultXLSXSheet, sheet.Name); err != nil {
				return nil, fmt.Errorf("name sheet %q: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, fmt.Errorf("add sheet %q: %w", sheet.Name, err)
		}
		for r, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return nil, err
			}
			values := make([]interface{}, len(row))
			for c, v := range row {
				values[c] = v
			}
			if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
				return nil, fmt.Errorf("write sheet %q row %d: %w", sheet.Name, r+1, err)
			}
		}
		if sheet.Header && len(sheet.Rows) > 0 {
			if err := f.SetRowStyle(sheet.Name, 1, 1, headerStyle); err != nil {
				return nil, fmt.Errorf("style sheet %q header: %w", sheet.Name, err)
			}
			if err := f.SetPanes(sheet.Name, &excelize.Panes{
				Freeze:      true,
				YSplit:      1,
				TopLeftCell: "A2",
				ActivePane:  "bottomLeft",
			}); err != nil {
				return nil, fmt.Errorf("freeze sheet %q header: %w", sheet.Name, err)
			}
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
