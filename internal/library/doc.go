// Package library is the edit session over one catalogue workbook.
//
// A Library loads the workbook through a storage.Store, keeps every category
// sorted in memory, validates edits at the boundary, and auto-saves the whole
// workbook after each create, update, or delete. Saves go through a
// storage.SaveQueue so they reach the store in mutation order. A failed save
// leaves the edit in memory and is reported as ErrAutosave.
package library
