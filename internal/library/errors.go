package library

import (
	"errors"

	"discshelf/internal/catalog"
)

var (
	// ErrAutosave wraps the save failure after an edit. The edit itself is
	// kept in memory and goes out with the next successful save.
	ErrAutosave = errors.New("auto-save failed")
	// ErrRecordNotFound reports a selector or id with no match.
	ErrRecordNotFound = errors.New("record not found")
	// ErrAmbiguous reports a selector matching more than one record.
	ErrAmbiguous = errors.New("selector matches more than one record")
)

// ValidationError reports an edit that breaks its category's rules.
type ValidationError = catalog.ValidationError

// ErrorClassifier allows errors to declare their classification for exit
// codes and JSON output.
type ErrorClassifier interface {
	// ErrorKind returns a string classification of the error.
	ErrorKind() string
}

// ErrorKind maps err to "validation", "not_found", "ambiguous", "autosave",
// or "" when it has no known kind.
func ErrorKind(err error) string {
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		return classifier.ErrorKind()
	}
	switch {
	case errors.Is(err, ErrRecordNotFound):
		return "not_found"
	case errors.Is(err, ErrAmbiguous):
		return "ambiguous"
	case errors.Is(err, ErrAutosave):
		return "autosave"
	default:
		return ""
	}
}
