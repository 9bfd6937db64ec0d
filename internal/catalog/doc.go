// Package catalog defines the four media categories and the records they
// hold.
//
// A Category is pure data: its ordered fields (with the heading aliases
// accepted on read), the serial format contract and the ordering kind. The
// package also owns the serial parsers, the per-category comparators used
// to keep every list sorted, record validation, and the search index
// (including the HDD "<disk>.<serial>.<title>" lookup).
//
// Nothing here performs I/O; reading and writing workbooks lives in
// catalogio.
package catalog
