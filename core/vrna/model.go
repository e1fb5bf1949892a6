// core/vrna/model.go
//
// Thermodynamic model details shared by the energy providers.
// A Model is a plain value: build it once from Default() plus explicit
// options and hand it to a provider. Nothing here is global or mutated in place.
package vrna

import (
	"errors"
	"fmt"
)

const (
	// K0 is 0 °C in Kelvin.
	K0 = 273.15
	// GasConst in cal/(K·mol).
	GasConst = 1.98717
	// MaxAlpha is the largest integer nucleotide code in the pair tables.
	MaxAlpha = 20
)

// Dangle treatment modes.
const (
	DanglesNone   = 0
	DanglesSingle = 1
	DanglesBoth   = 2
)

// Model mirrors the knobs a nearest-neighbor provider needs.
type Model struct {
	Temperature float64 // °C
	Dangles     int     // 0 | 1 | 2
	NoLP        bool    // forbid lonely pairs
	NoGU        bool    // forbid GU pairs
	NoGUClosure bool    // forbid loops closed by GU
	Circular    bool
	GQuad       bool
	MaxBPSpan   int // -1 = unlimited
	WindowSize  int // -1 = unlimited

	Rtype [8]int
	Alias [MaxAlpha + 1]int16
	Pair  [MaxAlpha + 1][MaxAlpha + 1]int
}

// Option overrides one field of the default model.
type Option func(*Model)

func WithTemperature(c float64) Option { return func(m *Model) { m.Temperature = c } }
func WithDangles(d int) Option         { return func(m *Model) { m.Dangles = d } }
func WithNoLP(v bool) Option           { return func(m *Model) { m.NoLP = v } }
func WithNoGU(v bool) Option           { return func(m *Model) { m.NoGU = v } }
func WithNoGUClosure(v bool) Option    { return func(m *Model) { m.NoGUClosure = v } }
func WithCircular(v bool) Option       { return func(m *Model) { m.Circular = v } }
func WithGQuad(v bool) Option          { return func(m *Model) { m.GQuad = v } }
func WithMaxBPSpan(n int) Option       { return func(m *Model) { m.MaxBPSpan = n } }
func WithWindowSize(n int) Option      { return func(m *Model) { m.WindowSize = n } }

// Default returns the library defaults (37 °C, dangles on both sides,
// lonely pairs and GU pairs allowed, linear, no G-quadruplexes, no span limits).
func Default() Model {
	m := Model{
		Temperature: 37.0,
		Dangles:     DanglesBoth,
		MaxBPSpan:   -1,
		WindowSize:  -1,
	}
	fillPairTables(&m)
	return m
}

// New builds a model from defaults plus overrides.
func New(opts ...Option) Model {
	m := Default()
	for _, o := range opts {
		o(&m)
	}
	if m.NoGU {
		fillPairTables(&m)
	}
	return m
}

// Clone returns an independent copy. All fields are arrays, so value
// assignment already copies every table element.
func (m Model) Clone() Model {
	c := m
	return c
}

// SubModel returns a copy with span and window limits replaced.
func (m Model) SubModel(maxBPSpan, windowSize int) Model {
	c := m.Clone()
	c.MaxBPSpan = maxBPSpan
	c.WindowSize = windowSize
	return c
}

// RT returns the thermodynamic energy unit in kcal/mol.
func (m Model) RT() float64 {
	return (m.Temperature + K0) * GasConst / 1000.0
}

// Validate checks value ranges.
func (m Model) Validate() error {
	if m.Temperature < -K0 {
		return fmt.Errorf("temperature %.2f °C is below absolute zero", m.Temperature)
	}
	switch m.Dangles {
	case DanglesNone, DanglesSingle, DanglesBoth:
	default:
		return fmt.Errorf("dangles must be 0, 1 or 2, got %d", m.Dangles)
	}
	if m.MaxBPSpan < -1 || m.MaxBPSpan == 0 {
		return errors.New("max bp span must be -1 (unlimited) or > 0")
	}
	if m.WindowSize < -1 || m.WindowSize == 0 {
		return errors.New("window size must be -1 (unlimited) or > 0")
	}
	return nil
}

// Nucleotide integer codes used by the pair tables.
const (
	codeA = 1
	codeC = 2
	codeG = 3
	codeU = 4
)

// Encode maps a base to its integer code (0 for anything unknown).
func Encode(b byte) int {
	switch b {
	case 'A':
		return codeA
	case 'C':
		return codeC
	case 'G':
		return codeG
	case 'U', 'T':
		return codeU
	}
	return 0
}

// PairType returns the pair type of bases a,b (0 = no pair).
func (m Model) PairType(a, b byte) int {
	return m.Pair[m.Alias[Encode(a)]][m.Alias[Encode(b)]]
}

func fillPairTables(m *Model) {
	// Pair types: 1=CG 2=GC 3=GU 4=UG 5=AU 6=UA
	for i := range m.Alias {
		m.Alias[i] = int16(i)
	}
	for i := range m.Pair {
		for j := range m.Pair[i] {
			m.Pair[i][j] = 0
		}
	}
	m.Pair[codeC][codeG] = 1
	m.Pair[codeG][codeC] = 2
	if !m.NoGU {
		m.Pair[codeG][codeU] = 3
		m.Pair[codeU][codeG] = 4
	}
	m.Pair[codeA][codeU] = 5
	m.Pair[codeU][codeA] = 6
	m.Rtype = [8]int{0, 2, 1, 4, 3, 6, 5, 7}
}
