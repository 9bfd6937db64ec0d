package catalog

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"discshelf/internal/workbook"
)

// ValidationError reports a record that breaks its category's rules.
type ValidationError struct {
	Category CategoryID
	Field    string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", e.Category, e.Field, e.Reason)
}

// ErrorKind classifies the error for callers that map failures to outcomes.
func (e *ValidationError) ErrorKind() string { return "validation" }

// Valid reports whether a parsed candidate may enter the record set.
//
// Disc categories need a serial and a title, and the serial must match the
// category pattern when one is declared. HDD rows need a disk, a title and
// a plain digit serial.
func (c Category) Valid(r Record) bool {
	return c.check(r) == nil
}

// Validate applies the same rules as Valid plus every Required field, and
// explains the first failure. It guards user edits before they reach the
// record set.
func (c Category) Validate(r Record) error {
	for _, f := range c.Fields {
		value := r.Get(f.Key)
		if f.Required && strings.TrimSpace(value) == "" {
			return &ValidationError{Category: c.ID, Field: f.Label, Reason: "is required"}
		}
		if cellUnits(value) > workbook.MaxCellUnits {
			return &ValidationError{Category: c.ID, Field: f.Label, Reason: fmt.Sprintf("is longer than %d characters", workbook.MaxCellUnits)}
		}
	}
	if err := c.check(r); err != nil {
		return err
	}
	return nil
}

func (c Category) check(r Record) *ValidationError {
	serial := r.Serial()
	if c.ID == HDD {
		if r.Disk() == "" {
			return &ValidationError{Category: c.ID, Field: c.label(FieldDisk), Reason: "is required"}
		}
		if r.Title() == "" {
			return &ValidationError{Category: c.ID, Field: c.label(FieldTitle), Reason: "is required"}
		}
		if !integerSerial.MatchString(serial) {
			return &ValidationError{Category: c.ID, Field: c.label(FieldSerial), Reason: fmt.Sprintf("%q must be digits", serial)}
		}
		return nil
	}
	if serial == "" {
		return &ValidationError{Category: c.ID, Field: c.label(FieldSerial), Reason: "is required"}
	}
	if r.Title() == "" {
		return &ValidationError{Category: c.ID, Field: c.label(FieldTitle), Reason: "is required"}
	}
	if c.SerialPattern != nil && !c.SerialPattern.MatchString(serial) {
		return &ValidationError{Category: c.ID, Field: c.label(FieldSerial), Reason: fmt.Sprintf("%q does not match %s", serial, c.SerialPattern)}
	}
	return nil
}

func cellUnits(value string) int {
	n := 0
	for _, r := range value {
		n += utf16.RuneLen(r)
	}
	return n
}

func (c Category) label(key string) string {
	if f, ok := c.Field(key); ok {
		return f.Label
	}
	return key
}
