package textutil

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collator orders display text the way a Chinese-locale user expects:
// numeric runs compare by value and case is ignored. A Collator is not safe
// for concurrent use; create one per sort.
type Collator struct {
	c *collate.Collator
}

// NewCollator returns a collator for Chinese text with numeric awareness.
func NewCollator() *Collator {
	return &Collator{c: collate.New(language.Chinese, collate.IgnoreCase, collate.Numeric)}
}

// Compare returns -1, 0, or 1.
func (c *Collator) Compare(a, b string) int {
	if a == b {
		return 0
	}
	return c.c.CompareString(a, b)
}
