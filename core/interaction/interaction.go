// core/interaction/interaction.go
package interaction

import (
	"fmt"
	"sort"
)

// Boundary is the outermost pair (I1,I2) and innermost pair (J1,J2) of an
// interaction. I1..J1 index sequence 1 (5'→3'); I2..J2 index sequence 2 in
// reversed orientation, i.e. rev = len(seq2)-1-natural.
type Boundary struct {
	I1, J1 int
	I2, J2 int
}

// Valid reports whether both ranges are ordered.
func (b Boundary) Valid() bool { return b.I1 <= b.J1 && b.I2 <= b.J2 }

// Range1 returns the sequence-1 range.
func (b Boundary) Range1() Range { return Range{From: b.I1, To: b.J1} }

// Range2 returns the sequence-2 range in reversed coordinates.
func (b Boundary) Range2() Range { return Range{From: b.I2, To: b.J2} }

// Less orders boundaries lexicographically (I1,J1,I2,J2).
func (b Boundary) Less(o Boundary) bool {
	if b.I1 != o.I1 {
		return b.I1 < o.I1
	}
	if b.J1 != o.J1 {
		return b.J1 < o.J1
	}
	if b.I2 != o.I2 {
		return b.I2 < o.I2
	}
	return b.J2 < o.J2
}

func (b Boundary) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", b.I1, b.J1, b.I2, b.J2)
}

// Candidate is a scored boundary as kept by the optimum store.
type Candidate struct {
	Boundary
	Energy float64 // total energy, kcal/mol
}

// BasePair is one intermolecular pair; K2 is in reversed seq-2 coordinates.
type BasePair struct {
	K1, K2 int
}

// Interaction is a fully traced candidate.
type Interaction struct {
	Boundary
	Energy float64
	Hybrid float64 // loop contributions only
	Pairs  []BasePair

	Seq1ID, Seq2ID string
	Seq1, Seq2     string // natural orientation
}

// Natural2 converts a reversed seq-2 index into natural orientation.
func (in Interaction) Natural2(rev int) int { return len(in.Seq2) - 1 - rev }

// Validate checks that pairs are sorted, inside the boundary, and start/end at it.
func (in Interaction) Validate() error {
	if !in.Boundary.Valid() {
		return fmt.Errorf("interaction %s: unordered boundary", in.Boundary)
	}
	if len(in.Pairs) == 0 {
		return fmt.Errorf("interaction %s: no base pairs", in.Boundary)
	}
	first, last := in.Pairs[0], in.Pairs[len(in.Pairs)-1]
	if first.K1 != in.I1 || first.K2 != in.I2 || last.K1 != in.J1 || last.K2 != in.J2 {
		return fmt.Errorf("interaction %s: pairs do not span boundary", in.Boundary)
	}
	ok := sort.SliceIsSorted(in.Pairs, func(a, b int) bool {
		return in.Pairs[a].K1 < in.Pairs[b].K1
	})
	if !ok {
		return fmt.Errorf("interaction %s: pairs not ordered", in.Boundary)
	}
	for i := 1; i < len(in.Pairs); i++ {
		if in.Pairs[i].K1 <= in.Pairs[i-1].K1 || in.Pairs[i].K2 <= in.Pairs[i-1].K2 {
			return fmt.Errorf("interaction %s: crossing or repeated pair at %d", in.Boundary, i)
		}
	}
	return nil
}

// DotBar renders the interaction as IntaRNA-style "dot-bar" notation:
// "|" for paired positions, "." otherwise, seq1&seq2 (seq2 in natural order).
func (in Interaction) DotBar() string {
	s1 := make([]byte, in.J1-in.I1+1)
	for i := range s1 {
		s1[i] = '.'
	}
	s2 := make([]byte, in.J2-in.I2+1)
	for i := range s2 {
		s2[i] = '.'
	}
	for _, p := range in.Pairs {
		s1[p.K1-in.I1] = '|'
		s2[p.K2-in.I2] = '|'
	}
	// seq-2 part back to natural orientation
	for i, j := 0, len(s2)-1; i < j; i, j = i+1, j-1 {
		s2[i], s2[j] = s2[j], s2[i]
	}
	return fmt.Sprintf("%d%s&%d%s", in.I1+1, s1, in.Natural2(in.J2)+1, s2)
}
