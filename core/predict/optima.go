// core/predict/optima.go
package predict

import (
	"sort"

	"ixrna-core/energy"
	"ixrna-core/interaction"
)

// optima is the bounded, ascending list of best candidates.
// Equal energies keep insertion order; no boundary appears twice.
type optima struct {
	k    int
	list []interaction.Candidate
}

func (o *optima) reset(k int) {
	o.k = k
	o.list = make([]interaction.Candidate, 0, k)
}

func (o *optima) full() bool { return len(o.list) >= o.k }

// worst is the energy to beat once the store is full.
func (o *optima) worst() float64 {
	if !o.full() || len(o.list) == 0 {
		return energy.Inf
	}
	return o.list[len(o.list)-1].Energy
}

// insert reports whether c entered the store.
func (o *optima) insert(c interaction.Candidate) bool {
	if energy.IsInf(c.Energy) {
		return false
	}
	for i, x := range o.list {
		if x.Boundary != c.Boundary {
			continue
		}
		if c.Energy >= x.Energy {
			return false
		}
		o.list = append(o.list[:i], o.list[i+1:]...)
		break
	}
	if o.full() {
		if c.Energy >= o.list[len(o.list)-1].Energy {
			return false
		}
		o.list = o.list[:len(o.list)-1]
	}
	pos := sort.Search(len(o.list), func(i int) bool { return o.list[i].Energy > c.Energy })
	o.list = append(o.list, interaction.Candidate{})
	copy(o.list[pos+1:], o.list[pos:])
	o.list[pos] = c
	return true
}

// Register offers the candidate (i1,j1,i2,j2) to the store. If hybridOnly,
// e is a hybridization energy and the initiation, dangle and end terms of
// this boundary are added first. The observer is notified with the total
// energy of every offered candidate.
func (s *State) Register(i1, j1, i2, j2 int, e float64, hybridOnly bool) {
	if s.err != nil {
		return
	}
	if s.phase != phaseAccumulating {
		s.fail("Register called while %s", s.phase)
		return
	}
	s.stats.Registered++
	b := interaction.Boundary{I1: i1, J1: j1, I2: i2, J2: j2}

	total := e
	if hybridOnly {
		// Without an observer the exact total is only needed if it might
		// beat the current worst entry.
		if !s.observed && s.store.full() && s.thresholds.Optimistic(e) >= s.store.worst() {
			s.stats.Pruned++
			return
		}
		total = energy.Total(s.energy, b, e)
	}

	s.observer.OnOptimumUpdate(b, total)

	if s.store.insert(interaction.Candidate{Boundary: b, Energy: total}) {
		s.stats.Kept++
	}
}
