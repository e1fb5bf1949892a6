// core/predict/tracker.go
package predict

import "ixrna-core/interaction"

// Tracker records the ranges of reported interactions, one registry per
// sequence. Sequence-2 ranges are kept in reversed coordinates.
type Tracker struct {
	seq1, seq2     interaction.RangeList
	check1, check2 bool
}

// Reset drops all committed ranges and sets the per-sequence policy.
func (t *Tracker) Reset(check1, check2 bool) {
	t.seq1.Reset()
	t.seq2.Reset()
	t.check1, t.check2 = check1, check2
}

// Overlaps reports whether b intersects a committed range on a sequence
// whose non-overlap policy is active.
func (t *Tracker) Overlaps(b interaction.Boundary) bool {
	if t.check1 && t.seq1.Overlaps(b.Range1()) {
		return true
	}
	return t.check2 && t.seq2.Overlaps(b.Range2())
}

// Commit records both ranges of b.
func (t *Tracker) Commit(b interaction.Boundary) {
	t.seq1.Insert(b.Range1())
	t.seq2.Insert(b.Range2())
}

// Committed returns copies of the committed ranges.
func (t *Tracker) Committed() (seq1, seq2 []interaction.Range) {
	return t.seq1.Ranges(), t.seq2.Ranges()
}
