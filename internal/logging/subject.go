package logging

import "strings"

// FormatSubject builds the category/sheet subject shown in console output.
func FormatSubject(category, sheet string) string {
	category = strings.TrimSpace(category)
	sheet = strings.TrimSpace(sheet)
	switch {
	case category != "" && sheet != "":
		return category + " · " + sheet
	case category != "":
		return category
	default:
		return sheet
	}
}
