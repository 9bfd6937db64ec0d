package catalog

import (
	"regexp"
	"strconv"

	"discshelf/internal/textutil"
)

var (
	rangeParts   = regexp.MustCompile(`^(\d+)-(\d+)$`)
	leadingDigit = regexp.MustCompile(`^\d+`)
)

// RangeSerial is a parsed "a-b" Blu-ray serial.
type RangeSerial struct {
	Start int
	End   int
}

// ParseIntegerSerial parses a serial made only of digits. Values that do not
// fit an int are reported as unparseable.
func ParseIntegerSerial(text string) (int, bool) {
	text = textutil.NormalizeText(text)
	if !integerSerial.MatchString(text) {
		return 0, false
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseRangeSerial parses an "a-b" serial.
func ParseRangeSerial(text string) (RangeSerial, bool) {
	m := rangeParts.FindStringSubmatch(textutil.NormalizeText(text))
	if m == nil {
		return RangeSerial{}, false
	}
	start, err := strconv.Atoi(m[1])
	if err != nil {
		return RangeSerial{}, false
	}
	end, err := strconv.Atoi(m[2])
	if err != nil {
		return RangeSerial{}, false
	}
	return RangeSerial{Start: start, End: end}, true
}

// LeadingInteger parses the digit run at the start of text.
func LeadingInteger(text string) (int, bool) {
	run := leadingDigit.FindString(textutil.NormalizeText(text))
	if run == "" {
		return 0, false
	}
	n, err := strconv.Atoi(run)
	if err != nil {
		return 0, false
	}
	return n, true
}
