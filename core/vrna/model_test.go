package vrna

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRT(t *testing.T) {
	m := Default()
	want := (37.0 + 273.15) * 1.98717 / 1000.0
	assert.InDelta(t, want, m.RT(), 1e-12)

	hot := New(WithTemperature(60))
	assert.InDelta(t, (60.0+273.15)*1.98717/1000.0, hot.RT(), 1e-12)
	assert.Greater(t, hot.RT(), m.RT())
}

func TestClone_EqualAndIndependent(t *testing.T) {
	m := New(WithDangles(DanglesSingle), WithNoGUClosure(true), WithMaxBPSpan(150))
	m.Alias[7] = 3
	m.Pair[2][2] = 9

	c := m.Clone()
	require.Equal(t, m, c, "clone must equal the original in all fields")

	c.Pair[2][2] = 0
	c.Alias[7] = 0
	c.Rtype[1] = 42
	assert.Equal(t, 9, m.Pair[2][2])
	assert.Equal(t, int16(3), m.Alias[7])
	assert.Equal(t, 2, m.Rtype[1])
}

func TestSubModel(t *testing.T) {
	m := New(WithTemperature(25))
	s := m.SubModel(80, 120)
	assert.Equal(t, 80, s.MaxBPSpan)
	assert.Equal(t, 120, s.WindowSize)
	assert.Equal(t, -1, m.MaxBPSpan, "parent untouched")
	assert.Equal(t, m.Pair, s.Pair)
	assert.Equal(t, 25.0, s.Temperature)
}

func TestPairType(t *testing.T) {
	m := Default()
	assert.Equal(t, 1, m.PairType('C', 'G'))
	assert.Equal(t, 3, m.PairType('G', 'U'))
	assert.Equal(t, 0, m.PairType('A', 'G'))

	noGU := New(WithNoGU(true))
	assert.Equal(t, 0, noGU.PairType('G', 'U'))
	assert.Equal(t, 5, noGU.PairType('A', 'U'))
	assert.Equal(t, 3, Default().PairType('G', 'U'), "defaults are not shared")
}

func TestValidate(t *testing.T) {
	require.NoError(t, Default().Validate())
	assert.Error(t, New(WithDangles(3)).Validate())
	assert.Error(t, New(WithMaxBPSpan(0)).Validate())
	assert.Error(t, New(WithWindowSize(-4)).Validate())
	assert.Error(t, New(WithTemperature(-300)).Validate())
	assert.False(t, math.IsNaN(Default().RT()))
}
