// core/energy/energy.go
//
// Energy providers score intermolecular base-pair chains between two RNAs.
// Units are kcal/mol. Sequence-2 indices are in reversed orientation
// (index 0 is the 3' end of sequence 2), so both sequences are walked
// left to right by the recurrences.
package energy

import (
	"math"

	"ixrna-core/interaction"
)

// Inf marks an impossible or exhausted energy.
var Inf = math.Inf(1)

// IsInf reports whether e is the Inf sentinel.
func IsInf(e float64) bool { return math.IsInf(e, 1) }

// Term names a contribution kind with a provider-specific lower bound.
type Term int

const (
	TermStacking Term = iota
	TermInit
	TermDangle
	TermEnd
)

func (t Term) String() string {
	switch t {
	case TermStacking:
		return "stacking"
	case TermInit:
		return "init"
	case TermDangle:
		return "dangle"
	case TermEnd:
		return "end"
	}
	return "unknown"
}

// Side selects the left (I1,I2) or right (J1,J2) end of an interaction.
type Side int

const (
	Left Side = iota
	Right
)

// Provider supplies energy contributions. Implementations are read-only
// after construction and safe for concurrent use.
type Provider interface {
	Len1() int
	Len2() int
	// CanPair reports whether seq1[k1] pairs with reversed seq2[k2].
	CanPair(k1, k2 int) bool
	// MaxLoop is the maximal number of unpaired bases per sequence
	// between two consecutive intermolecular pairs.
	MaxLoop() int
	// MaxSpan limits J-I+1 per sequence (0 = unlimited).
	MaxSpan() int
	// Loop scores the interior loop closed by (k1,k2) and (l1,l2), k<l.
	Loop(k1, k2, l1, l2 int) float64
	Initiation() float64
	Dangle(side Side, k1, k2 int) float64
	End(b interaction.Boundary) float64
	MinPossible(t Term) float64
	RT() float64
}

// Hybridization sums the loop energies along a traced pair chain.
func Hybridization(p Provider, pairs []interaction.BasePair) float64 {
	e := 0.0
	for i := 1; i < len(pairs); i++ {
		e += p.Loop(pairs[i-1].K1, pairs[i-1].K2, pairs[i].K1, pairs[i].K2)
	}
	return e
}

// Context returns the initiation, dangle and end contributions of b.
func Context(p Provider, b interaction.Boundary) float64 {
	return p.Initiation() +
		p.Dangle(Left, b.I1, b.I2) +
		p.Dangle(Right, b.J1, b.J2) +
		p.End(b)
}

// Total adds context terms to a hybridization energy.
func Total(p Provider, b interaction.Boundary, hybrid float64) float64 {
	if IsInf(hybrid) {
		return Inf
	}
	return hybrid + Context(p, b)
}

// Boltzmann returns exp(-e/RT); Inf maps to 0.
func Boltzmann(e, rt float64) float64 {
	if IsInf(e) {
		return 0
	}
	return math.Exp(-e / rt)
}
