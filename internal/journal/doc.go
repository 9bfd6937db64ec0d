// Package journal records catalogue activity in a local SQLite database.
//
// Each load writes one row with the per-category sheet reports, and each
// create, update, or delete writes one mutation row tagged with the session
// that made it. A small settings table remembers the last workbook path so
// commands can run without naming it again.
package journal
