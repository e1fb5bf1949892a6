package predict

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ixrna-core/energy"
	"ixrna-core/interaction"
	"ixrna-core/vrna"
)

// scripted is a Recurrence whose NextBest answers come from a list.
type scripted struct {
	traced   []interaction.Boundary
	next     []interaction.Candidate
	asked    []interaction.Candidate
	traceErr error
}

func (r *scripted) Search(*State) error { return nil }

func (r *scripted) TraceBack(_ *State, in *interaction.Interaction) error {
	r.traced = append(r.traced, in.Boundary)
	if r.traceErr != nil {
		return r.traceErr
	}
	in.Pairs = []interaction.BasePair{{K1: in.I1, K2: in.I2}, {K1: in.J1, K2: in.J2}}
	return nil
}

func (r *scripted) NextBest(_ *State, cur interaction.Candidate) interaction.Candidate {
	r.asked = append(r.asked, cur)
	if len(r.next) == 0 {
		return exhausted()
	}
	c := r.next[0]
	r.next = r.next[1:]
	return c
}

func bpProvider(s1, s2 string, maxLoop int) energy.Provider {
	return energy.NewBasePair(s1, s2, vrna.Default(), energy.BasePairConfig{MaxLoop: maxLoop})
}

func newTestState(t *testing.T, k int, obs Observer) *State {
	t.Helper()
	s := NewState(bpProvider("GGGGGGGGGGGGGGGGGGGG", "CCCCCCCCCCCCCCCCCCCC", 0), obs)
	c := DefaultOutputConstraint()
	c.MaxReportCount = k
	require.NoError(t, s.Init(c))
	return s
}

func energies(items []interaction.Interaction) []float64 {
	out := make([]float64, len(items))
	for i, in := range items {
		out[i] = in.Energy
	}
	return out
}

func TestReportSingleCandidate(t *testing.T) {
	s := newTestState(t, 1, nil)
	s.Register(2, 5, 10, 14, -3.0, false)

	rec := &scripted{}
	var sink Collect
	n, err := s.Report(rec, &sink)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	b := interaction.Boundary{I1: 2, J1: 5, I2: 10, J2: 14}
	assert.Equal(t, []interaction.Boundary{b}, rec.traced)
	require.Len(t, sink.Items, 1)
	assert.Equal(t, -3.0, sink.Items[0].Energy)
	assert.Equal(t, b, sink.Items[0].Boundary)

	seq1, seq2 := s.Committed()
	assert.Equal(t, []interaction.Range{{From: 2, To: 5}}, seq1)
	assert.Equal(t, []interaction.Range{{From: 10, To: 14}}, seq2)
}

func TestReportTwoDisjoint(t *testing.T) {
	s := newTestState(t, 2, nil)
	s.Register(10, 12, 10, 12, -2.0, false)
	s.Register(0, 3, 0, 3, -5.0, false)

	var sink Collect
	n, err := s.Report(&scripted{}, &sink)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []float64{-5.0, -2.0}, energies(sink.Items))
}

func TestReportOverlapEndsAtSentinel(t *testing.T) {
	s := newTestState(t, 2, nil)
	s.Register(2, 5, 10, 14, -5.0, false)
	s.Register(3, 5, 11, 14, -2.0, false)
	require.Len(t, s.Optima(), 2)

	rec := &scripted{}
	var sink Collect
	n, err := s.Report(rec, &sink)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []float64{-5.0}, energies(sink.Items))
	require.Len(t, rec.asked, 1)
	assert.Equal(t, -2.0, rec.asked[0].Energy)
}

func TestReportNextBestReplacesOverlap(t *testing.T) {
	s := newTestState(t, 2, nil)
	s.Register(2, 5, 10, 14, -5.0, false)
	s.Register(3, 5, 11, 14, -4.0, false)

	rec := &scripted{next: []interaction.Candidate{
		{Boundary: interaction.Boundary{I1: 7, J1: 9, I2: 0, J2: 2}, Energy: -3.5},
	}}
	var sink Collect
	n, err := s.Report(rec, &sink)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []float64{-5.0, -3.5}, energies(sink.Items))
}

func TestReportAsksSuccessorWhenDrained(t *testing.T) {
	s := newTestState(t, 1, nil)
	s.Register(0, 2, 0, 2, -5.0, false)

	c := s.Constraint()
	c.MaxReportCount = 3
	s.constraint = c

	rec := &scripted{next: []interaction.Candidate{
		{Boundary: interaction.Boundary{I1: 4, J1: 6, I2: 4, J2: 6}, Energy: -4.0},
		{Boundary: interaction.Boundary{I1: 8, J1: 9, I2: 8, J2: 9}, Energy: -1.0},
	}}
	var sink Collect
	n, err := s.Report(rec, &sink)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []float64{-5.0, -4.0, -1.0}, energies(sink.Items))
}

func TestReportCeilings(t *testing.T) {
	t.Run("max energy", func(t *testing.T) {
		s := NewState(bpProvider("GGGG", "CCCC", 0), nil)
		c := DefaultOutputConstraint()
		c.MaxReportCount = 3
		c.MaxEnergy = -2.5
		require.NoError(t, s.Init(c))
		s.Register(0, 0, 0, 0, -3, false)
		s.Register(1, 1, 1, 1, -2, false)
		s.Register(2, 2, 2, 2, -4, false)

		var sink Collect
		_, err := s.Report(&scripted{}, &sink)
		require.NoError(t, err)
		assert.Equal(t, []float64{-4, -3}, energies(sink.Items))
	})
	t.Run("delta", func(t *testing.T) {
		s := NewState(bpProvider("GGGG", "CCCC", 0), nil)
		c := DefaultOutputConstraint()
		c.MaxReportCount = 3
		c.DeltaE = 1.5
		require.NoError(t, s.Init(c))
		s.Register(0, 0, 0, 0, -3, false)
		s.Register(1, 1, 1, 1, -2, false)
		s.Register(2, 2, 2, 2, -4, false)

		var sink Collect
		_, err := s.Report(&scripted{}, &sink)
		require.NoError(t, err)
		assert.Equal(t, []float64{-4, -3}, energies(sink.Items))
	})
}

func TestReportNeverExceedsCount(t *testing.T) {
	s := newTestState(t, 3, nil)
	for i := 0; i < 6; i++ {
		s.Register(3*i, 3*i+1, 3*i, 3*i+1, float64(-i), false)
	}
	var sink Collect
	n, err := s.Report(&scripted{}, &sink)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []float64{-5, -4, -3}, energies(sink.Items))
}

func TestReportTraceBackFailure(t *testing.T) {
	s := newTestState(t, 1, nil)
	s.Register(0, 1, 0, 1, -2, false)
	boom := errors.New("boom")
	_, err := s.Report(&scripted{traceErr: boom}, &Collect{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTraceBack)
	assert.ErrorIs(t, err, boom)
}

func TestThresholdsOptimisticIgnoresStacking(t *testing.T) {
	s := newTestState(t, 1, nil)
	th := s.Thresholds()
	assert.Equal(t, s.energy.MinPossible(energy.TermStacking), th.Stacking)

	want := -3 + th.Init + 2*th.Dangle + 2*th.End
	assert.Equal(t, want, th.Optimistic(-3))
	th.Stacking -= 100
	assert.Equal(t, want, th.Optimistic(-3))
}

func TestReportRejectsDecreasingNextBest(t *testing.T) {
	s := newTestState(t, 2, nil)
	s.Register(2, 5, 10, 14, -5.0, false)
	s.Register(3, 5, 11, 14, -4.0, false)
	rec := &scripted{next: []interaction.Candidate{
		{Boundary: interaction.Boundary{I1: 7, J1: 9, I2: 0, J2: 2}, Energy: -6},
	}}
	var sink Collect
	n, err := s.Report(rec, &sink)
	assert.Equal(t, 1, n)
	assert.ErrorIs(t, err, ErrContract)
}

func TestReportSinkError(t *testing.T) {
	s := newTestState(t, 1, nil)
	s.Register(0, 1, 0, 1, -2, false)
	stop := errors.New("closed")
	_, err := s.Report(&scripted{}, SinkFunc(func(interaction.Interaction) error { return stop }))
	assert.ErrorIs(t, err, stop)
}

func TestContractViolations(t *testing.T) {
	t.Run("register before init", func(t *testing.T) {
		s := NewState(bpProvider("GG", "CC", 0), nil)
		s.Register(0, 1, 0, 1, -2, false)
		assert.ErrorIs(t, s.Err(), ErrContract)
	})
	t.Run("report twice", func(t *testing.T) {
		s := newTestState(t, 1, nil)
		_, err := s.Report(&scripted{}, &Collect{})
		require.NoError(t, err)
		_, err = s.Report(&scripted{}, &Collect{})
		assert.ErrorIs(t, err, ErrContract)
	})
	t.Run("register after report", func(t *testing.T) {
		s := newTestState(t, 1, nil)
		_, err := s.Report(&scripted{}, &Collect{})
		require.NoError(t, err)
		s.Register(0, 1, 0, 1, -2, false)
		assert.ErrorIs(t, s.Err(), ErrContract)
	})
	t.Run("re-init clears", func(t *testing.T) {
		s := NewState(bpProvider("GG", "CC", 0), nil)
		s.Register(0, 1, 0, 1, -2, false)
		require.NoError(t, s.Init(DefaultOutputConstraint()))
		assert.NoError(t, s.Err())
	})
}
