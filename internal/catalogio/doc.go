// Package catalogio translates between workbook grids and catalogue records.
//
// Reading picks a sheet for every category, classifies its layout once
// (side-by-side blocks, a flat table under a header row, or hard-disk groups
// under disk heading rows), extracts candidate rows with the matching
// extractor, and keeps only the candidates that pass the category rules.
// Rows that fail are dropped and counted in the Report rather than raised.
// Writing emits the four canonical sheets, each a header row of field labels
// followed by the sorted records.
package catalogio
