// core/energy/nn.go
// Nearest-neighbor intermolecular energies for RNA (Turner 2004 stacks, simplified loops).
// Units: ΔG and ΔH in kcal/mol. Temperature in °C, rescaled as
//   ΔG(T) = ΔH − T·(ΔH − ΔG37)/310.15   (T in K)
//
// Loops are treated as purely entropic, dangles as temperature independent.
// No app/output deps.

package energy

import (
	"errors"
	"math"

	"ixrna-core/interaction"
	"ixrna-core/seq"
	"ixrna-core/vrna"
)

// NNParams holds one nearest-neighbor parameter.
type NNParams struct {
	DG37 float64 // kcal/mol at 37 °C
	DH   float64 // kcal/mol
}

// Stacks are keyed 5'→3' on sequence 1 / 3'→5' on sequence 2.
var stackParams = map[string]NNParams{
	// Watson–Crick
	"AA/UU": {-0.93, -6.82},
	"AU/UA": {-1.10, -9.38},
	"UA/AU": {-1.33, -7.69},
	"CU/GA": {-2.08, -10.48},
	"CA/GU": {-2.11, -10.44},
	"GU/CA": {-2.24, -11.40},
	"GA/CU": {-2.35, -12.44},
	"CG/GC": {-2.36, -10.64},
	"GG/CC": {-3.26, -13.39},
	"GC/CG": {-3.42, -14.88},

	// GU-containing stacks (coarse)
	"AG/UU": {-0.55, -3.21},
	"AU/UG": {-1.36, -8.81},
	"CG/GU": {-1.41, -5.61},
	"CU/GG": {-2.08, -12.11},
	"GG/CU": {-1.53, -8.33},
	"GU/CG": {-2.51, -12.59},
	"GA/UU": {-1.27, -12.83},
	"GG/UU": {-0.50, -13.47},
	"UG/AU": {-1.00, -6.99},
	"UG/GU": {+0.30, -9.26},
	"GU/UG": {-0.50, -8.50},
	"AG/UC": {-2.08, -10.48},
}

const (
	defaultGUStack = -0.50 // unlisted GU stacks
	defaultGUDH    = -6.00

	initDG37 = 4.09
	initDH   = 3.61
	termAUDG = 0.45 // per AU/GU end
	termAUDH = 3.72

	interiorAUClosure = 0.70
	asymmetryPerNt    = 0.60
	asymmetryMax      = 3.00

	dangle3Purine     = -0.80
	dangle3Pyrimidine = -0.40
	dangle5Purine     = -0.30
	dangle5Pyrimidine = -0.20

	t37K = 310.15
)

var bulgeInit = []float64{0, 3.8, 2.8, 3.2, 3.6, 4.0, 4.4}
var interiorInit = []float64{0, 0, 0.5, 1.6, 1.1, 2.0, 2.0}

// NearestNeighbor is a Provider built from the stacking tables above.
type NearestNeighbor struct {
	s1, s2  string // s2 reversed
	model   vrna.Model
	tK      float64
	maxLoop int
	maxSpan int

	minStack float64
}

// DefaultNNMaxLoop is the loop limit used when NNConfig.MaxLoop is negative.
const DefaultNNMaxLoop = 8

// NNConfig configures NewNearestNeighbor.
type NNConfig struct {
	MaxLoop int // unpaired bases per side between pairs; 0 = stacks only, < 0 = DefaultNNMaxLoop
	MaxSpan int // 0 = take Model.MaxBPSpan
}

var (
	ErrGQuadUnsupported    = errors.New("nearest-neighbor model: G-quadruplexes are not supported for intermolecular interactions")
	ErrCircularUnsupported = errors.New("nearest-neighbor model: circular sequences are not supported")
	ErrNoLPUnsupported     = errors.New("nearest-neighbor model: lonely-pair exclusion is not supported")
)

// NewNearestNeighbor validates the model and builds a provider for seq1 and
// seq2 (both given 5'→3', already normalized).
func NewNearestNeighbor(seq1, seq2 string, m vrna.Model, cfg NNConfig) (*NearestNeighbor, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	switch {
	case m.GQuad:
		return nil, ErrGQuadUnsupported
	case m.Circular:
		return nil, ErrCircularUnsupported
	case m.NoLP:
		return nil, ErrNoLPUnsupported
	}
	if cfg.MaxLoop < 0 {
		cfg.MaxLoop = DefaultNNMaxLoop
	}
	p := &NearestNeighbor{
		s1:      seq1,
		s2:      seq.Reverse(seq2),
		model:   m,
		tK:      m.Temperature + vrna.K0,
		maxLoop: cfg.MaxLoop,
		maxSpan: spanFromModel(cfg.MaxSpan, m),
	}
	p.minStack = math.Inf(1)
	for _, prm := range stackParams {
		if e := p.scale(prm); e < p.minStack {
			p.minStack = e
		}
	}
	return p, nil
}

func (p *NearestNeighbor) Len1() int    { return len(p.s1) }
func (p *NearestNeighbor) Len2() int    { return len(p.s2) }
func (p *NearestNeighbor) MaxLoop() int { return p.maxLoop }
func (p *NearestNeighbor) MaxSpan() int { return p.maxSpan }
func (p *NearestNeighbor) RT() float64  { return p.model.RT() }

// Model returns the model the provider was built with.
func (p *NearestNeighbor) Model() vrna.Model { return p.model }

func (p *NearestNeighbor) CanPair(k1, k2 int) bool {
	return p.model.PairType(p.s1[k1], p.s2[k2]) != 0
}

func (p *NearestNeighbor) scale(prm NNParams) float64 {
	return prm.DH - p.tK*(prm.DH-prm.DG37)/t37K
}

func (p *NearestNeighbor) entropic(dg37 float64) float64 { return dg37 * p.tK / t37K }

func (p *NearestNeighbor) stack(k1, k2, l1, l2 int) float64 {
	x, y := p.s1[k1], p.s1[l1]
	z, w := p.s2[k2], p.s2[l2]
	key := string([]byte{x, y, '/', z, w})
	if prm, ok := stackParams[key]; ok {
		return p.scale(prm)
	}
	// same stack read from the other end
	rkey := string([]byte{w, z, '/', y, x})
	if prm, ok := stackParams[rkey]; ok {
		return p.scale(prm)
	}
	return p.scale(NNParams{DG37: defaultGUStack, DH: defaultGUDH})
}

func (p *NearestNeighbor) isAUorGU(k1, k2 int) bool {
	return !seq.IsGC(p.s1[k1], p.s2[k2])
}

func (p *NearestNeighbor) Loop(k1, k2, l1, l2 int) float64 {
	u1, u2 := l1-k1-1, l2-k2-1
	if u1 < 0 || u2 < 0 || u1 > p.maxLoop || u2 > p.maxLoop {
		return Inf
	}
	if !p.CanPair(k1, k2) || !p.CanPair(l1, l2) {
		return Inf
	}
	if u1 == 0 && u2 == 0 {
		return p.stack(k1, k2, l1, l2)
	}
	if p.model.NoGUClosure && (seq.IsWobble(p.s1[k1], p.s2[k2]) || seq.IsWobble(p.s1[l1], p.s2[l2])) {
		return Inf
	}
	closure := 0.0
	if p.isAUorGU(k1, k2) {
		closure++
	}
	if p.isAUorGU(l1, l2) {
		closure++
	}
	if u1 == 0 || u2 == 0 {
		n := u1 + u2
		if n == 1 {
			return p.entropic(bulgeInit[1]) + p.stack(k1, k2, l1, l2)
		}
		return p.entropic(loopInit(bulgeInit, n)) + closure*termAUDG
	}
	n := u1 + u2
	asym := math.Min(asymmetryMax, asymmetryPerNt*math.Abs(float64(u1-u2)))
	return p.entropic(loopInit(interiorInit, n)+asym) + closure*interiorAUClosure
}

// loopInit extrapolates logarithmically beyond the table.
func loopInit(tab []float64, n int) float64 {
	last := len(tab) - 1
	if n <= last {
		return tab[n]
	}
	return tab[last] + 1.08*math.Log(float64(n)/float64(last))
}

func (p *NearestNeighbor) Initiation() float64 {
	return p.scale(NNParams{DG37: initDG37, DH: initDH})
}

func (p *NearestNeighbor) Dangle(side Side, k1, k2 int) float64 {
	if p.model.Dangles == vrna.DanglesNone {
		return 0
	}
	// Left end: seq1 5' neighbor, seq2 3' neighbor (reversed index k2-1).
	// Right end: seq1 3' neighbor, seq2 5' neighbor (reversed index k2+1).
	n1, n2 := k1-1, k2-1
	d1, d2 := dangle5, dangle3
	if side == Right {
		n1, n2 = k1+1, k2+1
		d1, d2 = dangle3, dangle5
	}
	e1, e2 := 0.0, 0.0
	if n1 >= 0 && n1 < len(p.s1) {
		e1 = d1(p.s1[n1])
	}
	if n2 >= 0 && n2 < len(p.s2) {
		e2 = d2(p.s2[n2])
	}
	if p.model.Dangles == vrna.DanglesSingle {
		return math.Min(e1, e2)
	}
	return e1 + e2
}

func dangle3(b byte) float64 {
	switch {
	case b == 'N':
		return 0
	case seq.IsPurine(b):
		return dangle3Purine
	}
	return dangle3Pyrimidine
}

func dangle5(b byte) float64 {
	switch {
	case b == 'N':
		return 0
	case seq.IsPurine(b):
		return dangle5Purine
	}
	return dangle5Pyrimidine
}

// End adds the terminal AU/GU penalty once per AU/GU end pair.
func (p *NearestNeighbor) End(b interaction.Boundary) float64 {
	pen := p.scale(NNParams{DG37: termAUDG, DH: termAUDH})
	e := 0.0
	if p.isAUorGU(b.I1, b.I2) {
		e += pen
	}
	if p.isAUorGU(b.J1, b.J2) && (b.J1 != b.I1 || b.J2 != b.I2) {
		e += pen
	}
	return e
}

func (p *NearestNeighbor) MinPossible(t Term) float64 {
	switch t {
	case TermStacking:
		return p.minStack
	case TermInit:
		return p.Initiation()
	case TermDangle:
		switch p.model.Dangles {
		case vrna.DanglesNone:
			return 0
		case vrna.DanglesSingle:
			return math.Min(dangle3Purine, dangle5Purine)
		}
		return dangle3Purine + dangle5Purine
	case TermEnd:
		return math.Min(0, p.scale(NNParams{DG37: termAUDG, DH: termAUDH}))
	}
	return 0
}
