// core/energy/basepair.go
package energy

import (
	"ixrna-core/interaction"
	"ixrna-core/seq"
	"ixrna-core/vrna"
)

// BasePair scores every intermolecular base pair with the same energy,
// independent of loops and context. The first pair of an interaction is
// paid by Initiation, each further pair by Loop. Handy to reason about.
type BasePair struct {
	s1, s2  string // s2 reversed
	pairE   float64
	maxLoop int
	maxSpan int
	model   vrna.Model
}

// BasePairConfig configures NewBasePair.
type BasePairConfig struct {
	PairEnergy float64 // per base pair; default -1
	MaxLoop    int     // unpaired bases per side between pairs; default 0
	MaxSpan    int     // 0 = unlimited
}

// NewBasePair builds the provider for seq1 and seq2 (both 5'→3').
func NewBasePair(seq1, seq2 string, m vrna.Model, cfg BasePairConfig) *BasePair {
	if cfg.PairEnergy == 0 {
		cfg.PairEnergy = -1
	}
	if cfg.MaxLoop < 0 {
		cfg.MaxLoop = 0
	}
	return &BasePair{
		s1:      seq1,
		s2:      seq.Reverse(seq2),
		pairE:   cfg.PairEnergy,
		maxLoop: cfg.MaxLoop,
		maxSpan: spanFromModel(cfg.MaxSpan, m),
		model:   m,
	}
}

func (p *BasePair) Len1() int    { return len(p.s1) }
func (p *BasePair) Len2() int    { return len(p.s2) }
func (p *BasePair) MaxLoop() int { return p.maxLoop }
func (p *BasePair) MaxSpan() int { return p.maxSpan }
func (p *BasePair) RT() float64  { return p.model.RT() }

func (p *BasePair) CanPair(k1, k2 int) bool {
	return seq.CanPair(p.s1[k1], p.s2[k2], p.model.NoGU)
}

func (p *BasePair) Loop(k1, k2, l1, l2 int) float64 {
	if l1-k1-1 > p.maxLoop || l2-k2-1 > p.maxLoop || l1 <= k1 || l2 <= k2 {
		return Inf
	}
	return p.pairE
}

func (p *BasePair) Initiation() float64              { return p.pairE }
func (p *BasePair) Dangle(Side, int, int) float64    { return 0 }
func (p *BasePair) End(interaction.Boundary) float64 { return 0 }

func (p *BasePair) MinPossible(t Term) float64 {
	switch t {
	case TermStacking, TermInit:
		return p.pairE
	}
	return 0
}

// spanFromModel lets an explicit span win over the model's MaxBPSpan.
// A window narrower than the span caps it as well.
func spanFromModel(explicit int, m vrna.Model) int {
	span := 0
	switch {
	case explicit > 0:
		span = explicit
	case m.MaxBPSpan > 0:
		span = m.MaxBPSpan
	}
	if m.WindowSize > 0 && (span == 0 || m.WindowSize < span) {
		span = m.WindowSize
	}
	return span
}
