// Package textutil normalizes the loosely typed text found in hand-maintained
// spreadsheets.
//
// It covers cell cleanup (line-break collapsing, trimming), heading keys for
// alias matching, search query folding (full-width to half-width, the
// ideographic full stop to '.'), Chinese numeral parsing for disk names such
// as "硬盘十二", and locale-aware collation for display ordering.
package textutil
