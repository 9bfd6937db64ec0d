package catalog

import (
	"maps"

	"github.com/google/uuid"

	"discshelf/internal/textutil"
)

// Record is one catalogue row keyed by field key. ID is assigned in memory
// and never persisted; every parse assigns fresh IDs.
type Record struct {
	ID     string
	Values map[string]string
}

// Get returns the value for key or "".
func (r Record) Get(key string) string {
	if r.Values == nil {
		return ""
	}
	return r.Values[key]
}

// Serial returns the serial field.
func (r Record) Serial() string { return r.Get(FieldSerial) }

// Title returns the title field.
func (r Record) Title() string { return r.Get(FieldTitle) }

// Disk returns the disk field (hdd only).
func (r Record) Disk() string { return r.Get(FieldDisk) }

// Clone returns a deep copy.
func (r Record) Clone() Record {
	return Record{ID: r.ID, Values: maps.Clone(r.Values)}
}

// NewRecord builds a record restricted to the category's fields with every
// value normalized and a fresh ID.
func (c Category) NewRecord(values map[string]string) Record {
	rec := Record{ID: uuid.NewString(), Values: make(map[string]string, len(c.Fields))}
	for _, f := range c.Fields {
		rec.Values[f.Key] = textutil.NormalizeText(values[f.Key])
	}
	return rec
}

// Row projects the record onto the category's fields in declared order.
func (c Category) Row(r Record) []string {
	row := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		row[i] = r.Get(f.Key)
	}
	return row
}

// Records holds the ordered record list of every category.
type Records map[CategoryID][]Record

// NewRecords returns an empty set with a list for every category.
func NewRecords() Records {
	out := make(Records, len(categories))
	for _, c := range categories {
		out[c.ID] = []Record{}
	}
	return out
}

// Count returns the total number of records.
func (rs Records) Count() int {
	n := 0
	for _, list := range rs {
		n += len(list)
	}
	return n
}

// Clone deep-copies every list.
func (rs Records) Clone() Records {
	out := make(Records, len(rs))
	for id, list := range rs {
		cp := make([]Record, len(list))
		for i, r := range list {
			cp[i] = r.Clone()
		}
		out[id] = cp
	}
	return out
}

// IndexOf returns the position of the record with id, or -1.
func IndexOf(records []Record, id string) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
