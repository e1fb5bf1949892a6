package track

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ixrna-core/energy"
	"ixrna-core/interaction"
	"ixrna-core/predict"
	"ixrna-core/vrna"
)

func TestProfileMinE(t *testing.T) {
	var buf bytes.Buffer
	o := NewProfileMinE(Pair{ID1: "t", ID2: "q", Len1: 4, Len2: 3}, CSVTarget{W: &buf, Header: true})
	o.OnOptimumUpdate(interaction.Boundary{I1: 0, J1: 1, I2: 0, J2: 0}, -2)
	o.OnOptimumUpdate(interaction.Boundary{I1: 1, J1: 2, I2: 0, J2: 1}, -3)

	assert.Equal(t, []float64{-2, -3, -3, math.Inf(1)}, o.Seq1())
	// reversed 0..1 are natural 2 and 1
	assert.Equal(t, []float64{math.Inf(1), -3, -3}, o.Seq2())

	require.NoError(t, o.Close())
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1+4+3)
	assert.Equal(t, "seq_id,pos,min_e", lines[0])
	assert.Equal(t, "t,1,-2.0000", lines[1])
	assert.Equal(t, "t,4,NA", lines[4])
	assert.Equal(t, "q,3,-3.0000", lines[7])
}

func TestPairMinE(t *testing.T) {
	var buf bytes.Buffer
	o := NewPairMinE(Pair{ID1: "t", ID2: "q", Len1: 2, Len2: 2}, CSVTarget{W: &buf})
	o.OnOptimumUpdate(interaction.Boundary{I1: 1, J1: 1, I2: 0, J2: 1}, -1.5)
	o.OnOptimumUpdate(interaction.Boundary{I1: 1, J1: 1, I2: 0, J2: 0}, -0.5)
	assert.Equal(t, -1.5, o.At(1, 1))
	assert.True(t, math.IsInf(o.At(0, 0), 1))

	require.NoError(t, o.Close())
	assert.Equal(t, "id1,id2,pos1,pos2,min_e\nt,q,2,2,-1.5000\n", buf.String())
}

func TestPairMinEAppendsUnderOneHeader(t *testing.T) {
	var buf bytes.Buffer
	first := NewPairMinE(Pair{ID1: "t1", ID2: "q1", Len1: 1, Len2: 2}, CSVTarget{W: &buf, Header: true})
	first.OnOptimumUpdate(interaction.Boundary{I1: 0, J1: 0, I2: 1, J2: 1}, -1)
	second := NewPairMinE(Pair{ID1: "t2", ID2: "q2", Len1: 1, Len2: 3}, CSVTarget{W: &buf})
	second.OnOptimumUpdate(interaction.Boundary{I1: 0, J1: 0, I2: 0, J2: 0}, -2)
	require.NoError(t, first.Close())
	require.NoError(t, second.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, []string{
		"id1,id2,pos1,pos2,min_e",
		"t1,q1,1,1,-1.0000",
		"t2,q2,1,3,-2.0000",
	}, lines)
	for _, l := range lines {
		assert.Len(t, strings.Split(l, ","), 5)
	}
}

func TestParseSpot(t *testing.T) {
	s, err := ParseSpot("3:7")
	require.NoError(t, err)
	assert.Equal(t, Spot{K1: 2, K2: 6}, s)
	assert.Equal(t, "3:7", s.String())

	for _, bad := range []string{"", "3", "a:1", "0:1"} {
		_, err := ParseSpot(bad)
		assert.Error(t, err, bad)
	}
}

func TestSpotProb(t *testing.T) {
	rt := vrna.Default().RT()
	o := NewSpotProb(Pair{Len1: 4, Len2: 4}, rt, []Spot{{K1: 0, K2: 3}, {K1: 3, K2: 3}}, CSVTarget{})
	assert.Zero(t, o.Prob(0))

	// natural seq-2 position 3 is reversed 0
	o.OnOptimumUpdate(interaction.Boundary{I1: 0, J1: 1, I2: 0, J2: 1}, -2)
	o.OnOptimumUpdate(interaction.Boundary{I1: 2, J1: 3, I2: 2, J2: 3}, -2)
	o.OnOptimumUpdate(interaction.Boundary{I1: 0, J1: 0, I2: 0, J2: 0}, energy.Inf)

	assert.InDelta(t, 0.5, o.Prob(0), 1e-12)
	assert.Zero(t, o.Prob(1))
	assert.NoError(t, o.Close())
}

type failCloser struct{ err error }

func (failCloser) OnOptimumUpdate(interaction.Boundary, float64) {}
func (f failCloser) Close() error                                { return f.err }

func TestMultiWithPredictor(t *testing.T) {
	var prof, spot bytes.Buffer
	pair := Pair{ID1: "t", ID2: "q", Len1: 4, Len2: 4}
	p := energy.NewBasePair("GGGG", "CCCC", vrna.Default(), energy.BasePairConfig{})
	m := Multi{
		NewProfileMinE(pair, CSVTarget{W: &prof}),
		NewSpotProb(pair, p.RT(), []Spot{{K1: 0, K2: 3}}, CSVTarget{W: &spot, Header: true}),
	}
	pr := predict.New(predict.Exact{}, predict.WithObserver(m))
	_, err := pr.Predict(context.Background(), p, predict.DefaultOutputConstraint(), &predict.Collect{})
	require.NoError(t, err)
	require.NoError(t, pr.Close())

	assert.Contains(t, prof.String(), "t,1,-4.0000")
	assert.True(t, strings.HasPrefix(spot.String(), "id1,id2,spot,prob\nt,q,1:4,"))

	boom := errors.New("boom")
	assert.ErrorIs(t, Multi{failCloser{boom}, m}.Close(), boom)
}
