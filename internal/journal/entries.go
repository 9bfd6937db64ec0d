package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"discshelf/internal/catalog"
	"discshelf/internal/catalogio"
)

// Op names a catalogue mutation.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Mutation is one journaled edit.
type Mutation struct {
	ID        int64              `json:"id"`
	Time      time.Time          `json:"time"`
	SessionID string             `json:"session_id"`
	Op        Op                 `json:"op"`
	Category  catalog.CategoryID `json:"category"`
	RecordID  string             `json:"record_id"`
	Serial    string             `json:"serial,omitempty"`
	Title     string             `json:"title,omitempty"`
	// Saved is false when the auto-save after the edit failed.
	Saved bool `json:"saved"`
}

// SheetSummary is the journaled form of a category's sheet report.
type SheetSummary struct {
	Category   catalog.CategoryID `json:"category"`
	Sheet      string             `json:"sheet,omitempty"`
	Resolution string             `json:"resolution"`
	Layout     string             `json:"layout"`
	Records    int                `json:"records"`
	Dropped    int                `json:"dropped"`
	Headers    int                `json:"headers"`
}

// Load is one journaled workbook load.
type Load struct {
	ID        int64          `json:"id"`
	Time      time.Time      `json:"time"`
	SessionID string         `json:"session_id"`
	Path      string         `json:"path"`
	Format    string         `json:"format"`
	Records   int            `json:"records"`
	Dropped   int            `json:"dropped"`
	Sheets    []SheetSummary `json:"sheets"`
}

// Summarize converts a parse report into journal form.
func Summarize(report catalogio.Report) []SheetSummary {
	out := make([]SheetSummary, 0, len(report.Sheets))
	for _, s := range report.Sheets {
		out = append(out, SheetSummary{
			Category:   s.Category,
			Sheet:      s.Sheet,
			Resolution: s.Resolution.String(),
			Layout:     s.Layout.String(),
			Records:    s.Records,
			Dropped:    s.Dropped,
			Headers:    s.Headers,
		})
	}
	return out
}

// RecordLoad journals a workbook load.
func (j *Journal) RecordLoad(ctx context.Context, path string, report catalogio.Report) error {
	sheets := Summarize(report)
	records := 0
	for _, s := range sheets {
		records += s.Records
	}
	reportJSON, err := json.Marshal(sheets)
	if err != nil {
		return fmt.Errorf("marshal load report: %w", err)
	}
	_, err = j.db.ExecContext(ctx,
		`INSERT INTO loads (loaded_at, session_id, path, format, records, dropped, report_json)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		timestamp(now()), j.session, path, report.Format.String(), records, report.Dropped(), string(reportJSON),
	)
	if err != nil {
		return fmt.Errorf("insert load: %w", err)
	}
	return nil
}

// RecordMutation journals an edit. Time and SessionID are filled in.
func (j *Journal) RecordMutation(ctx context.Context, m Mutation) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO mutations (occurred_at, session_id, op, category, record_id, serial, title, saved)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		timestamp(now()), j.session, string(m.Op), string(m.Category), m.RecordID,
		nullableString(m.Serial), nullableString(m.Title), boolToInt(m.Saved),
	)
	if err != nil {
		return fmt.Errorf("insert mutation: %w", err)
	}
	return nil
}

// Recent returns up to limit mutations, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Mutation, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, occurred_at, session_id, op, category, record_id, serial, title, saved
         FROM mutations ORDER BY id DESC LIMIT ?`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query mutations: %w", err)
	}
	defer rows.Close()

	var out []Mutation
	for rows.Next() {
		var (
			m             Mutation
			at, op, cat   string
			serial, title sql.NullString
			saved         int
		)
		if err := rows.Scan(&m.ID, &at, &m.SessionID, &op, &cat, &m.RecordID, &serial, &title, &saved); err != nil {
			return nil, fmt.Errorf("scan mutation: %w", err)
		}
		m.Time = parseTimestamp(at)
		m.Op = Op(op)
		m.Category = catalog.CategoryID(cat)
		m.Serial = serial.String
		m.Title = title.String
		m.Saved = saved != 0
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mutations: %w", err)
	}
	return out, nil
}

// RecentLoads returns up to limit loads, newest first.
func (j *Journal) RecentLoads(ctx context.Context, limit int) ([]Load, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, loaded_at, session_id, path, format, records, dropped, report_json
         FROM loads ORDER BY id DESC LIMIT ?`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query loads: %w", err)
	}
	defer rows.Close()

	var out []Load
	for rows.Next() {
		var (
			l              Load
			at, reportJSON string
		)
		if err := rows.Scan(&l.ID, &at, &l.SessionID, &l.Path, &l.Format, &l.Records, &l.Dropped, &reportJSON); err != nil {
			return nil, fmt.Errorf("scan load: %w", err)
		}
		l.Time = parseTimestamp(at)
		if err := json.Unmarshal([]byte(reportJSON), &l.Sheets); err != nil {
			return nil, fmt.Errorf("decode load %d report: %w", l.ID, err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loads: %w", err)
	}
	return out, nil
}
