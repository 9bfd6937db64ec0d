// Package preflight provides readiness checks for the workbook and the
// directories discshelf writes to.
//
// These checks run in two contexts:
//   - Commands that edit the catalogue call RunAll before loading, so a
//     read-only directory is reported before any edit is accepted.
//   - The CLI "discshelf status" command displays every result.
package preflight
