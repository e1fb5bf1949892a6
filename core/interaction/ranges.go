// core/interaction/ranges.go
package interaction

import "sort"

// Range is an inclusive index interval.
type Range struct {
	From, To int
}

// Overlaps reports whether r and o share at least one index.
func (r Range) Overlaps(o Range) bool { return r.From <= o.To && o.From <= r.To }

// RangeList is a sorted list of ranges. Ranges are only added, never
// merged or removed, until Reset.
type RangeList struct {
	list []Range
}

// Len returns the number of stored ranges.
func (l *RangeList) Len() int { return len(l.list) }

// Ranges returns a copy of the stored ranges.
func (l *RangeList) Ranges() []Range { return append([]Range(nil), l.list...) }

// Reset drops all ranges.
func (l *RangeList) Reset() { l.list = l.list[:0] }

// Insert adds r keeping the list sorted by From (then To).
func (l *RangeList) Insert(r Range) {
	i := sort.Search(len(l.list), func(i int) bool {
		c := l.list[i]
		return c.From > r.From || (c.From == r.From && c.To >= r.To)
	})
	l.list = append(l.list, Range{})
	copy(l.list[i+1:], l.list[i:])
	l.list[i] = r
}

// Overlaps reports whether r intersects any stored range.
func (l *RangeList) Overlaps(r Range) bool {
	// first stored range starting after r.To cannot overlap, nor can any later one
	end := sort.Search(len(l.list), func(i int) bool { return l.list[i].From > r.To })
	for i := end - 1; i >= 0; i-- {
		if l.list[i].To >= r.From {
			return true
		}
	}
	return false
}
