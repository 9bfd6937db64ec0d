package catalog

import (
	"cmp"
	"slices"
	"strings"

	"discshelf/internal/textutil"
)

// Compare returns the ordering function of category c. Unparseable serials
// never fail; they sort after parseable ones and fall back to collated text.
// The returned function holds a collator and must not be shared between
// goroutines.
func Compare(c Category) func(a, b Record) int {
	o := orderer{category: c, collator: textutil.NewCollator()}
	return o.compare
}

// Sort orders records in place using the category comparator. Sorting is
// stable and fully determined by record values, so sorting twice is a no-op.
func Sort(c Category, records []Record) {
	slices.SortStableFunc(records, Compare(c))
}

// SortAll sorts every category list in place.
func SortAll(rs Records) {
	for id, list := range rs {
		if c, ok := Lookup(id); ok {
			Sort(c, list)
		}
	}
}

type orderer struct {
	category Category
	collator *textutil.Collator
}

func (o orderer) compare(a, b Record) int {
	var c int
	switch o.category.Order {
	case OrderRange:
		c = compareRange(a.Serial(), b.Serial())
	case OrderDisk:
		c = o.compareDisk(a, b)
	default:
		c = compareInteger(a.Serial(), b.Serial())
	}
	if c != 0 {
		return c
	}
	if c = o.collator.Compare(a.Serial(), b.Serial()); c != 0 {
		return c
	}
	if c = o.collator.Compare(a.Title(), b.Title()); c != 0 {
		return c
	}
	for _, f := range o.category.Fields {
		if c = strings.Compare(a.Get(f.Key), b.Get(f.Key)); c != 0 {
			return c
		}
	}
	return 0
}

func (o orderer) compareDisk(a, b Record) int {
	da, okA := textutil.ParseDiskOrder(a.Disk())
	db, okB := textutil.ParseDiskOrder(b.Disk())
	if c := compareParsed(da, okA, db, okB); c != 0 {
		return c
	}
	if c := o.collator.Compare(a.Disk(), b.Disk()); c != 0 {
		return c
	}
	sa, okA := LeadingInteger(a.Serial())
	sb, okB := LeadingInteger(b.Serial())
	return compareParsed(sa, okA, sb, okB)
}

func compareInteger(a, b string) int {
	na, okA := ParseIntegerSerial(a)
	nb, okB := ParseIntegerSerial(b)
	return compareParsed(na, okA, nb, okB)
}

func compareRange(a, b string) int {
	ra, okA := ParseRangeSerial(a)
	rb, okB := ParseRangeSerial(b)
	switch {
	case okA && okB:
		if c := cmp.Compare(ra.Start, rb.Start); c != 0 {
			return c
		}
		return cmp.Compare(ra.End, rb.End)
	case okA:
		return -1
	case okB:
		return 1
	}
	return 0
}

// compareParsed puts parseable values first, in ascending order.
func compareParsed(a int, okA bool, b int, okB bool) int {
	switch {
	case okA && okB:
		return cmp.Compare(a, b)
	case okA:
		return -1
	case okB:
		return 1
	}
	return 0
}
