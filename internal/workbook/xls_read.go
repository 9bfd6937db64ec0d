package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/extrame/xls"
	"github.com/richardlehane/mscfb"
)

func decodeXLS(data []byte) (*Workbook, error) {
	stream, err := readWorkbookStream(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedWorkbook, err)
	}

	var book *xls.WorkBook
	if err := guard(func() error {
		var openErr error
		book, openErr = xls.OpenReader(bytes.NewReader(data), "utf-8")
		return openErr
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedWorkbook, err)
	}
	if book == nil {
		return nil, fmt.Errorf("%w: no workbook stream", ErrMalformedWorkbook)
	}

	shared := scanSharedStrings(stream)
	wb := &Workbook{Format: FormatXLS}
	for i := 0; i < book.NumSheets(); i++ {
		sheet := readXLSSheet(book, i)
		if sheet.Err == nil {
			sheet.Rows = shared.apply(i, sheet.Rows)
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformedWorkbook)
	}
	return wb, nil
}

// readWorkbookStream walks the container and returns the workbook stream
// before the BIFF parser sees it. Broken sector chains surface here as
// errors instead of inside the parser.
func readWorkbookStream(data []byte) ([]byte, error) {
	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if entry.Name != biffStreamName && entry.Name != "Book" {
			continue
		}
		stream, err := io.ReadAll(entry)
		if err != nil {
			return nil, fmt.Errorf("read %s stream: %w", entry.Name, err)
		}
		return stream, nil
	}
	return nil, errors.New("no workbook stream")
}

func readXLSSheet(book *xls.WorkBook, index int) (sheet Sheet) {
	sheet.Name = fmt.Sprintf("Sheet%d", index+1)
	defer func() {
		if r := recover(); r != nil {
			sheet.Rows = nil
			sheet.Err = fmt.Errorf("decode sheet %q: %v", sheet.Name, r)
		}
	}()

	ws := book.GetSheet(index)
	if ws == nil {
		sheet.Err = fmt.Errorf("decode sheet %d: missing", index)
		return sheet
	}
	if ws.Name != "" {
		sheet.Name = ws.Name
	}
	rows := make([][]string, 0, int(ws.MaxRow)+1)
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := xlsRow(ws, i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		width := row.LastCol()
		if width <= 0 || width > maxXLSColumns {
			width = maxXLSColumns
		}
		cells := make([]string, width)
		for c := 0; c < width; c++ {
			cells[c] = row.Col(c)
		}
		rows = append(rows, trimRow(cells))
	}
	sheet.Rows = trimRows(rows)
	return sheet
}

// xlsRow returns nil for rows the file never declared.
func xlsRow(ws *xls.WorkSheet, index int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return ws.Row(index)
}

func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
