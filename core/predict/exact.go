// core/predict/exact.go
package predict

import (
	"fmt"

	"ixrna-core/energy"
	"ixrna-core/interaction"
)

// Exact enumerates every pairable left boundary and registers the minimal
// hybridization energy of every reachable right boundary. With SeedBP > 1
// only chains containing SeedBP consecutive stacked pairs are considered.
type Exact struct {
	SeedBP int
}

func (x Exact) Search(s *State) error {
	p := s.Energy()
	for i1 := 0; i1 < p.Len1(); i1++ {
		for i2 := 0; i2 < p.Len2(); i2++ {
			if !p.CanPair(i1, i2) {
				continue
			}
			t := newChainTable(p, i1, i2, x.SeedBP)
			t.each(func(j1, j2 int, h float64) {
				s.Register(i1, j1, i2, j2, h, true)
			})
			if s.Err() != nil {
				return s.Err()
			}
		}
	}
	return nil
}

func (x Exact) TraceBack(s *State, in *interaction.Interaction) error {
	p := s.Energy()
	if !in.Boundary.Valid() || in.J1 >= p.Len1() || in.J2 >= p.Len2() || !p.CanPair(in.I1, in.I2) {
		return fmt.Errorf("boundary %s outside search space", in.Boundary)
	}
	t := newChainTable(p, in.I1, in.I2, x.SeedBP)
	h := t.hybrid(in.J1, in.J2)
	if total := energy.Total(p, in.Boundary, h); !sameEnergy(total, in.Energy) {
		return fmt.Errorf("recomputed energy %.4f, stored %.4f", total, in.Energy)
	}
	pairs, err := t.traceBack(in.J1, in.J2)
	if err != nil {
		return err
	}
	in.Pairs = pairs
	in.Hybrid = h
	return nil
}

// NextBest recomputes all tables and returns the lowest total energy
// boundary at or above cur.Energy that overlaps nothing committed. Ties
// go to the lexicographically smallest boundary.
func (x Exact) NextBest(s *State, cur interaction.Candidate) interaction.Candidate {
	p := s.Energy()
	best := exhausted()
	for i1 := 0; i1 < p.Len1(); i1++ {
		for i2 := 0; i2 < p.Len2(); i2++ {
			if !p.CanPair(i1, i2) || s.Overlaps(interaction.Boundary{I1: i1, J1: i1, I2: i2, J2: i2}) {
				continue
			}
			t := newChainTable(p, i1, i2, x.SeedBP)
			t.each(func(j1, j2 int, h float64) {
				b := interaction.Boundary{I1: i1, J1: j1, I2: i2, J2: j2}
				if s.Overlaps(b) {
					return
				}
				total := energy.Total(p, b, h)
				if total < cur.Energy || total > best.Energy {
					return
				}
				if total == best.Energy && !b.Less(best.Boundary) {
					return
				}
				best = interaction.Candidate{Boundary: b, Energy: total}
			})
		}
	}
	return best
}
