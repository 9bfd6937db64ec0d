// Package storage persists workbook bytes for the edit session.
//
// Store is the load/save contract the catalogue engine depends on. FileStore
// keeps the workbook on the local filesystem: saves take an advisory lock on
// a sibling ".lock" file, rotate backups of the previous file, and replace
// the workbook atomically. MemoryStore backs tests. SaveQueue runs saves one
// at a time in submission order so writes never interleave.
package storage
