// Package logging assembles the structured slog loggers used by discshelf.
//
// It owns the console and JSON handlers, level and output plumbing, and the
// standard field keys (component, category, sheet, layout) so the reader, the
// edit session and the CLI emit records with the same shape. The console
// handler lifts the category and sheet into a bracketed subject ahead of the
// message. A no-op logger is provided for tests and wiring code that cannot
// fail.
package logging
