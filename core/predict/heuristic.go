// core/predict/heuristic.go
package predict

import (
	"fmt"

	"ixrna-core/energy"
	"ixrna-core/interaction"
)

// Heuristic keeps a single best left boundary per right boundary instead
// of one table per left boundary. Each cell is extended only from the
// predecessor with the best total energy, so results may miss the exact
// optimum but the search is quadratic in cells.
type Heuristic struct{}

type heurCell struct {
	h      float64
	s1, s2 int // left boundary
	p1, p2 int // predecessor; -1 at the left boundary
}

type heurTable struct {
	n1, n2 int
	cells  []heurCell
}

func (t *heurTable) at(k1, k2 int) *heurCell { return &t.cells[k1*t.n2+k2] }

func buildHeurTable(p energy.Provider) *heurTable {
	t := &heurTable{n1: p.Len1(), n2: p.Len2()}
	t.cells = make([]heurCell, t.n1*t.n2)
	span, maxLoop := p.MaxSpan(), p.MaxLoop()
	for j1 := 0; j1 < t.n1; j1++ {
		for j2 := 0; j2 < t.n2; j2++ {
			c := t.at(j1, j2)
			*c = heurCell{h: energy.Inf, p1: -1, p2: -1}
			if !p.CanPair(j1, j2) {
				continue
			}
			c.h, c.s1, c.s2 = 0, j1, j2
			bestTotal := energy.Total(p, interaction.Boundary{I1: j1, J1: j1, I2: j2, J2: j2}, 0)
			for k1 := j1 - 1; k1 >= 0 && j1-k1-1 <= maxLoop; k1-- {
				for k2 := j2 - 1; k2 >= 0 && j2-k2-1 <= maxLoop; k2-- {
					pc := t.at(k1, k2)
					if energy.IsInf(pc.h) {
						continue
					}
					if span > 0 && (j1-pc.s1+1 > span || j2-pc.s2+1 > span) {
						continue
					}
					loop := p.Loop(k1, k2, j1, j2)
					if energy.IsInf(loop) {
						continue
					}
					h := pc.h + loop
					b := interaction.Boundary{I1: pc.s1, J1: j1, I2: pc.s2, J2: j2}
					if total := energy.Total(p, b, h); total < bestTotal {
						bestTotal = total
						*c = heurCell{h: h, s1: pc.s1, s2: pc.s2, p1: k1, p2: k2}
					}
				}
			}
		}
	}
	return t
}

func (Heuristic) Search(s *State) error {
	t := buildHeurTable(s.Energy())
	for j1 := 0; j1 < t.n1; j1++ {
		for j2 := 0; j2 < t.n2; j2++ {
			c := t.at(j1, j2)
			if energy.IsInf(c.h) {
				continue
			}
			s.Register(c.s1, j1, c.s2, j2, c.h, true)
			if s.Err() != nil {
				return s.Err()
			}
		}
	}
	return nil
}

func (Heuristic) TraceBack(s *State, in *interaction.Interaction) error {
	p := s.Energy()
	if !in.Boundary.Valid() || in.J1 >= p.Len1() || in.J2 >= p.Len2() {
		return fmt.Errorf("boundary %s outside search space", in.Boundary)
	}
	t := buildHeurTable(p)
	c := t.at(in.J1, in.J2)
	if energy.IsInf(c.h) || c.s1 != in.I1 || c.s2 != in.I2 {
		return fmt.Errorf("no chain stored for %s", in.Boundary)
	}
	if total := energy.Total(p, in.Boundary, c.h); !sameEnergy(total, in.Energy) {
		return fmt.Errorf("recomputed energy %.4f, stored %.4f", total, in.Energy)
	}
	in.Hybrid = c.h
	var rev []interaction.BasePair
	k1, k2 := in.J1, in.J2
	for k1 >= 0 {
		rev = append(rev, interaction.BasePair{K1: k1, K2: k2})
		cell := t.at(k1, k2)
		k1, k2 = cell.p1, cell.p2
	}
	in.Pairs = make([]interaction.BasePair, len(rev))
	for i, bp := range rev {
		in.Pairs[len(rev)-1-i] = bp
	}
	return nil
}

func (Heuristic) NextBest(s *State, cur interaction.Candidate) interaction.Candidate {
	p := s.Energy()
	t := buildHeurTable(p)
	best := exhausted()
	for j1 := 0; j1 < t.n1; j1++ {
		for j2 := 0; j2 < t.n2; j2++ {
			c := t.at(j1, j2)
			if energy.IsInf(c.h) {
				continue
			}
			b := interaction.Boundary{I1: c.s1, J1: j1, I2: c.s2, J2: j2}
			if s.Overlaps(b) {
				continue
			}
			total := energy.Total(p, b, c.h)
			if total < cur.Energy || total > best.Energy {
				continue
			}
			if total == best.Energy && !b.Less(best.Boundary) {
				continue
			}
			best = interaction.Candidate{Boundary: b, Energy: total}
		}
	}
	return best
}
