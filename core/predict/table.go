// core/predict/table.go
package predict

import (
	"fmt"
	"math"

	"ixrna-core/energy"
	"ixrna-core/interaction"
)

// chainTable holds, for a fixed left pair (i1,i2), the minimal
// hybridization energy of every right end (i1+a, i2+b) within the span
// window. With seedBP > 1 every cell carries one entry per seed state:
// state r-1 for a trailing helix of r < seedBP stacked pairs, state
// seedBP-1 once a helix of seedBP pairs has been seen.
type chainTable struct {
	p      energy.Provider
	i1, i2 int
	w1, w2 int
	states int
	h      []float64
}

func newChainTable(p energy.Provider, i1, i2, seedBP int) *chainTable {
	if seedBP < 1 {
		seedBP = 1
	}
	w1, w2 := p.Len1()-i1, p.Len2()-i2
	if span := p.MaxSpan(); span > 0 {
		w1, w2 = min(w1, span), min(w2, span)
	}
	t := &chainTable{p: p, i1: i1, i2: i2, w1: w1, w2: w2, states: seedBP}
	t.h = make([]float64, w1*w2*seedBP)
	for i := range t.h {
		t.h[i] = energy.Inf
	}
	t.fill()
	return t
}

func (t *chainTable) idx(a, b, st int) int { return (a*t.w2+b)*t.states + st }

func (t *chainTable) sat() int { return t.states - 1 }

// next returns the seed state after appending a pair via a stack or a loop.
func (t *chainTable) next(st int, stacked bool) int {
	if st == t.sat() {
		return st
	}
	if stacked {
		return st + 1
	}
	return 0
}

func (t *chainTable) fill() {
	if !t.p.CanPair(t.i1, t.i2) {
		return
	}
	t.h[t.idx(0, 0, 0)] = 0
	maxLoop := t.p.MaxLoop()
	for a := 0; a < t.w1; a++ {
		for b := 0; b < t.w2; b++ {
			if a == 0 || b == 0 || !t.p.CanPair(t.i1+a, t.i2+b) {
				continue
			}
			for ka := a - 1; ka >= 0 && a-ka-1 <= maxLoop; ka-- {
				for kb := b - 1; kb >= 0 && b-kb-1 <= maxLoop; kb-- {
					loop := energy.Inf
					stacked := ka == a-1 && kb == b-1
					for st := 0; st < t.states; st++ {
						hk := t.h[t.idx(ka, kb, st)]
						if energy.IsInf(hk) {
							continue
						}
						if energy.IsInf(loop) {
							loop = t.p.Loop(t.i1+ka, t.i2+kb, t.i1+a, t.i2+b)
							if energy.IsInf(loop) {
								break
							}
						}
						j := t.idx(a, b, t.next(st, stacked))
						if e := hk + loop; e < t.h[j] {
							t.h[j] = e
						}
					}
				}
			}
		}
	}
}

// hybrid returns the seed-satisfying energy of right end (j1,j2).
func (t *chainTable) hybrid(j1, j2 int) float64 {
	a, b := j1-t.i1, j2-t.i2
	if a < 0 || b < 0 || a >= t.w1 || b >= t.w2 {
		return energy.Inf
	}
	return t.h[t.idx(a, b, t.sat())]
}

// each calls fn for every finite seed-satisfying right end.
func (t *chainTable) each(fn func(j1, j2 int, hybrid float64)) {
	for a := 0; a < t.w1; a++ {
		for b := 0; b < t.w2; b++ {
			if e := t.h[t.idx(a, b, t.sat())]; !energy.IsInf(e) {
				fn(t.i1+a, t.i2+b, e)
			}
		}
	}
}

// traceBack reconstructs the pair chain of right end (j1,j2).
func (t *chainTable) traceBack(j1, j2 int) ([]interaction.BasePair, error) {
	a, b, st := j1-t.i1, j2-t.i2, t.sat()
	if energy.IsInf(t.hybrid(j1, j2)) {
		return nil, fmt.Errorf("no chain from (%d,%d) to (%d,%d)", t.i1, t.i2, j1, j2)
	}
	pairs := []interaction.BasePair{{K1: j1, K2: j2}}
	maxLoop := t.p.MaxLoop()
	for a != 0 || b != 0 {
		cur := t.h[t.idx(a, b, st)]
		found := false
	search:
		for ka := a - 1; ka >= 0 && a-ka-1 <= maxLoop; ka-- {
			for kb := b - 1; kb >= 0 && b-kb-1 <= maxLoop; kb-- {
				stacked := ka == a-1 && kb == b-1
				loop := t.p.Loop(t.i1+ka, t.i2+kb, t.i1+a, t.i2+b)
				if energy.IsInf(loop) {
					continue
				}
				for pst := 0; pst < t.states; pst++ {
					if t.next(pst, stacked) != st {
						continue
					}
					hk := t.h[t.idx(ka, kb, pst)]
					if !energy.IsInf(hk) && sameEnergy(hk+loop, cur) {
						a, b, st = ka, kb, pst
						found = true
						break search
					}
				}
			}
		}
		if !found {
			return nil, fmt.Errorf("no predecessor for (%d,%d)", t.i1+a, t.i2+b)
		}
		pairs = append(pairs, interaction.BasePair{K1: t.i1 + a, K2: t.i2 + b})
	}
	for l, r := 0, len(pairs)-1; l < r; l, r = l+1, r-1 {
		pairs[l], pairs[r] = pairs[r], pairs[l]
	}
	return pairs, nil
}

func sameEnergy(x, y float64) bool {
	return math.Abs(x-y) <= 1e-9*math.Max(1, math.Abs(x))
}
