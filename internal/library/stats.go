package library

import (
	"discshelf/internal/catalog"
	"discshelf/internal/catalogio"
)

// CategoryStats summarizes one category for the stats command.
type CategoryStats struct {
	Category   catalog.CategoryID `json:"category"`
	Label      string             `json:"label"`
	Records    int                `json:"records"`
	Sheet      string             `json:"sheet,omitempty"`
	Resolution string             `json:"resolution"`
	Layout     string             `json:"layout"`
	Dropped    int                `json:"dropped"`
	Headers    int                `json:"headers"`
	// Duplicates counts hard-disk records whose disk and serial pair was
	// already used by an earlier record.
	Duplicates int `json:"duplicates,omitempty"`
}

// Stats reports current record counts next to the last load's sheet report.
func (l *Library) Stats() []CategoryStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]CategoryStats, 0, len(catalog.Categories()))
	for _, c := range catalog.Categories() {
		st := CategoryStats{
			Category:   c.ID,
			Label:      c.Label,
			Records:    len(l.records[c.ID]),
			Resolution: catalogio.ResolutionMissing.String(),
			Layout:     catalogio.LayoutNone.String(),
		}
		if rep, ok := l.report.For(c.ID); ok {
			st.Sheet = rep.Sheet
			st.Resolution = rep.Resolution.String()
			st.Layout = rep.Layout.String()
			st.Dropped = rep.Dropped
			st.Headers = rep.Headers
		}
		if c.ID == catalog.HDD {
			st.Duplicates = DuplicateDiskSerials(l.records[c.ID])
		}
		out = append(out, st)
	}
	return out
}

// DuplicateDiskSerials counts records repeating an earlier disk and serial
// pair. Three records sharing a pair count as two.
func DuplicateDiskSerials(records []catalog.Record) int {
	seen := make(map[[2]string]struct{}, len(records))
	dups := 0
	for _, r := range records {
		key := [2]string{r.Disk(), r.Serial()}
		if _, ok := seen[key]; ok {
			dups++
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}
