package catalogio

import "discshelf/internal/workbook"

// ErrMalformedWorkbook is returned when the input cannot be opened as a
// workbook at all.
var ErrMalformedWorkbook = workbook.ErrMalformedWorkbook
