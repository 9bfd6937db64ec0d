package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"discshelf/internal/catalog"
	"discshelf/internal/catalogio"
	"discshelf/internal/journal"
	"discshelf/internal/logging"
	"discshelf/internal/storage"
	"discshelf/internal/workbook"
)

// Journal receives load and mutation events. *journal.Journal satisfies it.
type Journal interface {
	RecordLoad(ctx context.Context, path string, report catalogio.Report) error
	RecordMutation(ctx context.Context, m journal.Mutation) error
}

// Options configures Open.
type Options struct {
	// Path labels the workbook in logs and the journal.
	Path string
	// Format is used when the store holds no workbook yet. FormatUnknown
	// selects .xls.
	Format workbook.Format
	// EmptyOnMalformed starts from empty records instead of failing when
	// the stored bytes are not a workbook. The first save overwrites them.
	EmptyOnMalformed bool
	// SaveTimeout bounds each auto-save; zero means no bound.
	SaveTimeout time.Duration
	Logger      *slog.Logger
	Journal     Journal
}

// Library is the in-memory catalogue plus its auto-save pipeline.
type Library struct {
	store   storage.Store
	queue   *storage.SaveQueue
	reader  *catalogio.Reader
	journal Journal
	logger  *slog.Logger
	path    string

	mu      sync.Mutex
	records catalog.Records
	report  catalogio.Report
	format  workbook.Format
	exists  bool
}

// Open loads the catalogue from store. A store without a workbook yields
// empty records in opts.Format.
func Open(ctx context.Context, store storage.Store, opts Options) (*Library, error) {
	logger := logging.NewComponentLogger(opts.Logger, "library")
	l := &Library{
		store:   store,
		reader:  catalogio.NewReader(opts.Logger),
		journal: opts.Journal,
		logger:  logger,
		path:    opts.Path,
		records: catalog.NewRecords(),
		format:  opts.Format,
	}
	if l.format == workbook.FormatUnknown {
		l.format = workbook.FormatXLS
	}

	if err := l.load(ctx, opts.EmptyOnMalformed); err != nil {
		return nil, err
	}

	l.queue = storage.NewSaveQueue(store,
		storage.WithSaveTimeout(opts.SaveTimeout),
		storage.WithQueueLogger(opts.Logger),
	)
	return l, nil
}

// Reload re-reads the workbook and replaces every category wholesale. On any
// error the current records are left untouched.
func (l *Library) Reload(ctx context.Context) error {
	return l.load(ctx, false)
}

func (l *Library) load(ctx context.Context, emptyOnMalformed bool) error {
	data, err := l.store.Load(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		l.mu.Lock()
		l.records = catalog.NewRecords()
		l.report = catalogio.Report{Format: l.format}
		l.exists = false
		l.mu.Unlock()
		l.logger.Info("workbook not found; starting empty",
			logging.String(logging.FieldPath, l.path),
			logging.String("format", l.format.String()),
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load workbook: %w", err)
	}

	records, report, err := l.reader.Parse(data)
	if err != nil {
		if !emptyOnMalformed || !errors.Is(err, catalogio.ErrMalformedWorkbook) {
			return fmt.Errorf("load workbook: %w", err)
		}
		logging.WarnWithContext(l.logger, "workbook unreadable; starting empty", "workbook_malformed",
			logging.Error(err),
			logging.String(logging.FieldPath, l.path),
			logging.String(logging.FieldErrorHint, "restore a backup or re-save the file from a spreadsheet application"),
			logging.String(logging.FieldImpact, "the next edit overwrites the file"),
		)
		records = catalog.NewRecords()
		report = catalogio.Report{Format: l.format}
	}

	l.mu.Lock()
	l.records = records
	l.report = report
	if report.Format != workbook.FormatUnknown {
		l.format = report.Format
	}
	l.exists = true
	l.mu.Unlock()

	l.logger.Info("workbook loaded",
		logging.String(logging.FieldPath, l.path),
		logging.String("format", l.format.String()),
		logging.Int("records", records.Count()),
		logging.Int("dropped", report.Dropped()),
	)
	if l.journal != nil {
		if err := l.journal.RecordLoad(ctx, l.path, report); err != nil {
			l.logger.Warn("journal load failed", logging.Error(err))
		}
	}
	return nil
}

// Close waits for pending saves and stops the save worker.
func (l *Library) Close() error {
	if l == nil || l.queue == nil {
		return nil
	}
	return l.queue.Close()
}

// Format returns the format saves are written in.
func (l *Library) Format() workbook.Format {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.format
}

// Exists reports whether the workbook was present at the last load or has
// been saved since.
func (l *Library) Exists() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.exists
}

// Report returns the parse report of the last load.
func (l *Library) Report() catalogio.Report {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.report
}

// Records returns a copy of every category list in sort order.
func (l *Library) Records() catalog.Records {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.records.Clone()
}

// List returns a copy of one category in sort order.
func (l *Library) List(id catalog.CategoryID) ([]catalog.Record, error) {
	if _, ok := catalog.Lookup(id); !ok {
		return nil, fmt.Errorf("unknown category %q", id)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneList(l.records[id]), nil
}

// Search returns the records of one category that match query, in sort
// order. An empty query returns the whole category.
func (l *Library) Search(id catalog.CategoryID, query string) ([]catalog.Record, error) {
	c, ok := catalog.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("unknown category %q", id)
	}
	l.mu.Lock()
	list := cloneList(l.records[id])
	l.mu.Unlock()
	return catalog.Search(c, list, query), nil
}

// Export serializes the current records in format. FormatUnknown uses the
// library's own format.
func (l *Library) Export(format workbook.Format) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if format == workbook.FormatUnknown {
		format = l.format
	}
	return catalogio.Serialize(l.records, format)
}

func cloneList(list []catalog.Record) []catalog.Record {
	out := make([]catalog.Record, len(list))
	for i, r := range list {
		out[i] = r.Clone()
	}
	return out
}
