package library

import (
	"context"
	"fmt"
	"slices"

	"discshelf/internal/catalog"
	"discshelf/internal/catalogio"
	"discshelf/internal/journal"
	"discshelf/internal/logging"
	"discshelf/internal/textutil"
)

// Create validates values, inserts a record with a fresh ID, and auto-saves.
// Unknown keys are ignored. On ErrAutosave the record is still returned and
// kept in memory.
func (l *Library) Create(ctx context.Context, id catalog.CategoryID, values map[string]string) (catalog.Record, error) {
	c, err := lookup(id)
	if err != nil {
		return catalog.Record{}, err
	}
	rec := c.NewRecord(values)
	if err := c.Validate(rec); err != nil {
		return catalog.Record{}, err
	}
	return l.commit(ctx, c, journal.OpCreate, func(list []catalog.Record) ([]catalog.Record, catalog.Record, error) {
		return append(list, rec), rec, nil
	})
}

// Update overlays values onto the record with recordID and auto-saves. Keys
// absent from values keep their current value; an empty string clears a
// field. The record keeps its ID.
func (l *Library) Update(ctx context.Context, id catalog.CategoryID, recordID string, values map[string]string) (catalog.Record, error) {
	c, err := lookup(id)
	if err != nil {
		return catalog.Record{}, err
	}

	l.mu.Lock()
	i := catalog.IndexOf(l.records[id], recordID)
	if i < 0 {
		l.mu.Unlock()
		return catalog.Record{}, fmt.Errorf("%w: %s %s", ErrRecordNotFound, id, recordID)
	}
	merged := l.records[id][i].Clone()
	l.mu.Unlock()

	for key, value := range values {
		if c.HasField(key) {
			merged.Values[key] = value
		}
	}
	rec := c.NewRecord(merged.Values)
	rec.ID = recordID
	if err := c.Validate(rec); err != nil {
		return catalog.Record{}, err
	}

	return l.commit(ctx, c, journal.OpUpdate, func(list []catalog.Record) ([]catalog.Record, catalog.Record, error) {
		i := catalog.IndexOf(list, recordID)
		if i < 0 {
			return nil, catalog.Record{}, fmt.Errorf("%w: %s %s", ErrRecordNotFound, id, recordID)
		}
		list[i] = rec
		return list, rec, nil
	})
}

// Delete removes the record with recordID and auto-saves. It returns the
// removed record.
func (l *Library) Delete(ctx context.Context, id catalog.CategoryID, recordID string) (catalog.Record, error) {
	c, err := lookup(id)
	if err != nil {
		return catalog.Record{}, err
	}
	return l.commit(ctx, c, journal.OpDelete, func(list []catalog.Record) ([]catalog.Record, catalog.Record, error) {
		i := catalog.IndexOf(list, recordID)
		if i < 0 {
			return nil, catalog.Record{}, fmt.Errorf("%w: %s %s", ErrRecordNotFound, id, recordID)
		}
		removed := list[i]
		return slices.Delete(list, i, i+1), removed, nil
	})
}

// Save writes the current records even when nothing changed.
func (l *Library) Save(ctx context.Context) error {
	l.mu.Lock()
	data, err := catalogio.Serialize(l.records, l.format)
	if err != nil {
		l.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrAutosave, err)
	}
	result, err := l.queue.Enqueue(ctx, data)
	l.mu.Unlock()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAutosave, err)
	}
	return l.await(ctx, result)
}

// commit applies edit to a copy of the category list, re-sorts it, swaps it
// in, and queues a save of the whole catalogue. The save is queued before
// the lock is released so saves reach the store in mutation order.
func (l *Library) commit(ctx context.Context, c catalog.Category, op journal.Op, edit func([]catalog.Record) ([]catalog.Record, catalog.Record, error)) (catalog.Record, error) {
	l.mu.Lock()
	list, rec, err := edit(cloneList(l.records[c.ID]))
	if err != nil {
		l.mu.Unlock()
		return catalog.Record{}, err
	}
	catalog.Sort(c, list)
	l.records[c.ID] = list

	var saveErr error
	var result <-chan error
	data, err := catalogio.Serialize(l.records, l.format)
	if err != nil {
		saveErr = fmt.Errorf("%w: %w", ErrAutosave, err)
	} else if result, err = l.queue.Enqueue(ctx, data); err != nil {
		saveErr = fmt.Errorf("%w: %w", ErrAutosave, err)
	}
	l.mu.Unlock()

	if saveErr == nil {
		saveErr = l.await(ctx, result)
	}

	attrs := []logging.Attr{
		logging.String(logging.FieldCategory, string(c.ID)),
		logging.String("op", string(op)),
		logging.String("serial", rec.Serial()),
		logging.String("title", rec.Title()),
	}
	if saveErr != nil {
		logging.WarnWithContext(l.logger, "edit kept in memory only", "autosave_failed",
			append(attrs,
				logging.Error(saveErr),
				logging.String(logging.FieldErrorHint, "fix the workbook location and save again"),
				logging.String(logging.FieldImpact, "workbook on disk is behind the catalogue"),
			)...)
	} else {
		l.logger.Info("catalogue updated", logging.Args(attrs...)...)
	}
	l.journalMutation(ctx, op, c.ID, rec, saveErr == nil)
	return rec.Clone(), saveErr
}

func (l *Library) await(ctx context.Context, result <-chan error) error {
	select {
	case err := <-result:
		if err != nil {
			return fmt.Errorf("%w: %w", ErrAutosave, err)
		}
		l.mu.Lock()
		l.exists = true
		l.mu.Unlock()
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrAutosave, ctx.Err())
	}
}

func (l *Library) journalMutation(ctx context.Context, op journal.Op, id catalog.CategoryID, rec catalog.Record, saved bool) {
	if l.journal == nil {
		return
	}
	err := l.journal.RecordMutation(context.WithoutCancel(ctx), journal.Mutation{
		Op:       op,
		Category: id,
		RecordID: rec.ID,
		Serial:   rec.Serial(),
		Title:    rec.Title(),
		Saved:    saved,
	})
	if err != nil {
		l.logger.Warn("journal mutation failed", logging.Error(err))
	}
}

func lookup(id catalog.CategoryID) (catalog.Category, error) {
	c, ok := catalog.Lookup(id)
	if !ok {
		return catalog.Category{}, fmt.Errorf("unknown category %q", id)
	}
	return c, nil
}

// Selector picks a record for the CLI. ID wins when set; otherwise every
// non-empty field must match after normalization.
type Selector struct {
	ID     string
	Serial string
	Disk   string
	Title  string
}

func (s Selector) empty() bool {
	return s.ID == "" && s.Serial == "" && s.Disk == "" && s.Title == ""
}

func (s Selector) matches(r catalog.Record) bool {
	if s.ID != "" {
		return r.ID == s.ID
	}
	if s.Serial != "" && textutil.NormalizeText(s.Serial) != r.Serial() {
		return false
	}
	if s.Disk != "" && textutil.NormalizeText(s.Disk) != r.Disk() {
		return false
	}
	if s.Title != "" && textutil.NormalizeText(s.Title) != r.Title() {
		return false
	}
	return true
}

// Find returns the single record in category id matched by sel.
func (l *Library) Find(id catalog.CategoryID, sel Selector) (catalog.Record, error) {
	if _, err := lookup(id); err != nil {
		return catalog.Record{}, err
	}
	if sel.empty() {
		return catalog.Record{}, fmt.Errorf("%w: empty selector", ErrRecordNotFound)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	var found []catalog.Record
	for _, r := range l.records[id] {
		if sel.matches(r) {
			found = append(found, r)
		}
	}
	switch len(found) {
	case 0:
		return catalog.Record{}, fmt.Errorf("%w: %s %s", ErrRecordNotFound, id, sel)
	case 1:
		return found[0].Clone(), nil
	default:
		return catalog.Record{}, fmt.Errorf("%w: %s %s (%d matches)", ErrAmbiguous, id, sel, len(found))
	}
}

func (s Selector) String() string {
	switch {
	case s.ID != "":
		return "id=" + s.ID
	default:
		out := ""
		for _, kv := range [][2]string{{"disk", s.Disk}, {"serial", s.Serial}, {"title", s.Title}} {
			if kv[1] == "" {
				continue
			}
			if out != "" {
				out += " "
			}
			out += kv[0] + "=" + kv[1]
		}
		return out
	}
}
