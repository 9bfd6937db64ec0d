// Package main hosts the discshelf CLI entrypoint and command graph.
//
// The Cobra-based command tree loads the catalogue workbook through the
// library package, runs edits with auto-save, and renders records, stats,
// journal entries, and preflight results as tables or JSON. It centralizes
// configuration resolution, workbook discovery, and logging setup so
// subcommands can focus on presentation.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
