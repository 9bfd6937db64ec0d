package textutil

import (
	"strconv"
	"strings"
)

var chineseDigits = map[rune]int{
	'零': 0, '〇': 0,
	'一': 1,
	'二': 2, '两': 2, '兩': 2,
	'三': 3,
	'四': 4,
	'五': 5,
	'六': 6,
	'七': 7,
	'八': 8,
	'九': 9,
}

var chineseUnits = map[rune]int{
	'十': 10,
	'百': 100,
	'千': 1000,
	'万': 10000,
	'萬': 10000,
}

// diskPrefix is the conventional leading word of a hard-disk name.
const diskPrefix = "硬盘"

// ParseChineseNumeral converts Arabic digit strings and simplified Chinese
// numerals built from 零..九 and 十/百/千/万 into an integer. A unit with no
// digit before it counts as one of that unit ("十二" is 12). A digit after
// 万 is read as units, so "一万二" is 10002, not the colloquial 12000. The
// second return is false when the input contains anything else or is empty.
func ParseChineseNumeral(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if isASCIIDigits(value) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, false
		}
		return n, true
	}

	var (
		total    int
		section  int
		digit    int
		hasDigit bool
		consumed bool
	)
	for _, r := range value {
		if d, ok := chineseDigits[r]; ok {
			digit = d
			hasDigit = true
			consumed = true
			continue
		}
		unit, ok := chineseUnits[r]
		if !ok {
			return 0, false
		}
		consumed = true
		if unit == 10000 {
			total += (section + digit) * unit
			section, digit, hasDigit = 0, 0, false
			continue
		}
		if !hasDigit {
			digit = 1
		}
		section += digit * unit
		digit, hasDigit = 0, false
	}
	if !consumed {
		return 0, false
	}
	return total + section + digit, true
}

// ParseDiskOrder derives the ordinal of a disk name such as "硬盘3" or
// "硬盘十二". The leftmost run of Arabic digits wins; otherwise a leading
// "硬盘" is stripped and the remainder parsed as a Chinese numeral.
func ParseDiskOrder(name string) (int, bool) {
	name = NormalizeText(name)
	if run := leadingDigitRun(name); run != "" {
		n, err := strconv.Atoi(run)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	rest := strings.TrimSpace(strings.TrimPrefix(name, diskPrefix))
	return ParseChineseNumeral(rest)
}

// HasDiskPrefix reports whether value names a hard disk.
func HasDiskPrefix(value string) bool {
	return strings.HasPrefix(NormalizeText(value), diskPrefix)
}

// leadingDigitRun returns the first contiguous run of ASCII digits anywhere
// in value.
func leadingDigitRun(value string) string {
	start := strings.IndexAny(value, "0123456789")
	if start < 0 {
		return ""
	}
	end := start
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	return value[start:end]
}

func isASCIIDigits(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}
