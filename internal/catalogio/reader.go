package catalogio

import (
	"fmt"
	"log/slog"

	"discshelf/internal/catalog"
	"discshelf/internal/logging"
	"discshelf/internal/workbook"
)

// Reader parses workbooks into catalogue records.
type Reader struct {
	logger *slog.Logger
}

// Option configures Parse.
type Option func(*Reader)

// WithLogger routes parse diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) {
		r.logger = logging.NewComponentLogger(logger, "reader")
	}
}

// NewReader returns a Reader that logs layout decisions to logger.
func NewReader(logger *slog.Logger) *Reader {
	return &Reader{logger: logging.NewComponentLogger(logger, "reader")}
}

// Parse decodes data and reads every category.
func Parse(data []byte, opts ...Option) (catalog.Records, Report, error) {
	r := NewReader(nil)
	for _, opt := range opts {
		opt(r)
	}
	return r.Parse(data)
}

// Parse decodes data and reads every category. The only error is
// ErrMalformedWorkbook; row and sheet problems are reported, not returned.
func (r *Reader) Parse(data []byte) (catalog.Records, Report, error) {
	wb, err := workbook.Decode(data)
	if err != nil {
		return nil, Report{}, err
	}
	records, report := r.ParseWorkbook(wb)
	return records, report, nil
}

// ParseWorkbook reads every category from an already decoded workbook. Each
// category list is sorted and carries fresh record IDs.
func (r *Reader) ParseWorkbook(wb *workbook.Workbook) (catalog.Records, Report) {
	categories := catalog.Categories()
	names := wb.SheetNames()
	picked := selectSheets(names, categories)

	records := catalog.NewRecords()
	report := Report{Format: wb.Format}
	claimed := make(map[int]bool, len(names))
	for _, c := range categories {
		sel := picked[c.ID]
		rep := SheetReport{Category: c.ID, Resolution: sel.resolution}
		if sel.index >= 0 {
			claimed[sel.index] = true
			sheet := wb.Sheets[sel.index]
			rep.Sheet = sheet.Name
			var list []catalog.Record
			list, rep = r.readSheet(c, sheet, rep)
			catalog.Sort(c, list)
			records[c.ID] = list
		}
		r.logSheet(c, rep)
		report.Sheets = append(report.Sheets, rep)
	}
	for i, name := range names {
		if !claimed[i] {
			report.Unclaimed = append(report.Unclaimed, name)
		}
	}
	return records, report
}

// readSheet extracts one category. A panic inside extraction degrades the
// category to empty instead of failing the workbook.
func (r *Reader) readSheet(c catalog.Category, sheet workbook.Sheet, rep SheetReport) (list []catalog.Record, out SheetReport) {
	out = rep
	if sheet.Err != nil {
		out.Err = sheet.Err
		return []catalog.Record{}, out
	}
	defer func() {
		if p := recover(); p != nil {
			list = []catalog.Record{}
			out.Records, out.Dropped, out.Headers = 0, 0, 0
			out.Err = fmt.Errorf("read sheet %q: %v", sheet.Name, p)
		}
	}()

	out.Layout = classify(c, sheet.Rows)
	var ext extraction
	switch out.Layout {
	case LayoutBlock:
		ext = keep(c, blockCandidates(c, sheet.Rows))
	case LayoutFlat:
		ext = keep(c, flatCandidates(c, sheet.Rows))
	case LayoutDiskGrouped:
		cands, headers := diskCandidates(sheet.Rows)
		ext = keep(c, cands)
		ext.headers += headers
	}
	if ext.records == nil {
		ext.records = []catalog.Record{}
	}
	out.Records, out.Dropped, out.Headers = len(ext.records), ext.dropped, ext.headers
	return ext.records, out
}

func (r *Reader) logSheet(c catalog.Category, rep SheetReport) {
	attrs := []logging.Attr{
		logging.String(logging.FieldCategory, string(c.ID)),
		logging.String(logging.FieldSheet, rep.Sheet),
		logging.String(logging.FieldLayout, rep.Layout.String()),
		logging.String("resolution", rep.Resolution.String()),
		logging.Int("records", rep.Records),
		logging.Int("dropped", rep.Dropped),
		logging.Int("headers", rep.Headers),
	}
	switch {
	case rep.Err != nil:
		logging.WarnWithContext(r.logger, "sheet unreadable", "sheet_unreadable",
			append(attrs,
				logging.Error(rep.Err),
				logging.String(logging.FieldErrorHint, "re-save the workbook from a spreadsheet application"),
				logging.String(logging.FieldImpact, "category loaded empty"),
			)...)
	case rep.Dropped > 0:
		logging.WarnWithContext(r.logger, "rows dropped", "rows_dropped",
			append(attrs,
				logging.String(logging.FieldErrorHint, "check serial format and required columns"),
				logging.String(logging.FieldImpact, fmt.Sprintf("%d rows not loaded and not saved back", rep.Dropped)),
			)...)
	case rep.Resolution == ResolutionMissing:
		r.logger.Info("sheet not found", logging.Args(attrs...)...)
	default:
		r.logger.Info("sheet read", logging.Args(attrs...)...)
	}
}
