// core/predict/state.go
//
// All mutable bookkeeping of one prediction lives in a State: the optimum
// store, the range tracker, thresholds and counters. A State is used by one
// goroutine; parallel predictions use separate States.
package predict

import (
	"errors"
	"fmt"

	"ixrna-core/energy"
	"ixrna-core/interaction"
)

var (
	// ErrContract marks a caller or recurrence breaking the call protocol.
	ErrContract = errors.New("prediction contract violation")
	// ErrTraceBack marks a stored boundary that cannot be reconstructed.
	ErrTraceBack = errors.New("traceback inconsistent with stored boundary")
)

type phase int

const (
	phaseNew phase = iota
	phaseAccumulating
	phaseReporting
	phaseDone
)

func (p phase) String() string {
	switch p {
	case phaseNew:
		return "uninitialized"
	case phaseAccumulating:
		return "accumulating"
	case phaseReporting:
		return "reporting"
	}
	return "done"
}

// Thresholds are per-prediction lower bounds of the context terms.
// Dangle is per side, End per interaction end. Stacking bounds a single
// stacked step; it is exported for recurrences and takes no part in
// Optimistic, whose hybrid energy already contains every stack.
type Thresholds struct {
	Stacking float64
	Init     float64
	Dangle   float64
	End      float64
}

// Optimistic returns the best total energy a hybridization energy could reach.
func (t Thresholds) Optimistic(hybrid float64) float64 {
	return hybrid + t.Init + 2*t.Dangle + 2*t.End
}

// Stats counts what happened during one prediction.
type Stats struct {
	Registered int // Register calls
	Pruned     int // hybrid-only candidates rejected by thresholds
	Kept       int // candidates that entered the store
	NextBest   int // NextBest calls
	Reported   int
}

// State is the per-prediction context handed to recurrences.
type State struct {
	energy     energy.Provider
	observer   Observer
	observed   bool
	constraint OutputConstraint
	thresholds Thresholds

	store   optima
	tracker Tracker

	phase phase
	err   error
	stats Stats
}

// NewState prepares a context for one prediction. obs may be nil.
func NewState(p energy.Provider, obs Observer) *State {
	s := &State{energy: p, observer: noObserver{}}
	if obs != nil {
		s.observer = obs
		s.observed = true
	}
	return s
}

// Init clears the store and tracker, derives capacity and overlap policy
// from c, and recomputes the pruning thresholds. It starts a new prediction.
func (s *State) Init(c OutputConstraint) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.constraint = c
	s.store.reset(c.MaxReportCount)
	s.tracker.Reset(c.NonOverlapSeq1, c.NonOverlapSeq2)
	s.thresholds = Thresholds{
		Stacking: s.energy.MinPossible(energy.TermStacking),
		Init:     s.energy.MinPossible(energy.TermInit),
		Dangle:   s.energy.MinPossible(energy.TermDangle),
		End:      s.energy.MinPossible(energy.TermEnd),
	}
	s.stats = Stats{}
	s.err = nil
	s.phase = phaseAccumulating
	return nil
}

// Energy returns the provider.
func (s *State) Energy() energy.Provider { return s.energy }

// Constraint returns the active output constraint.
func (s *State) Constraint() OutputConstraint { return s.constraint }

// Thresholds returns the pruning thresholds of the current prediction.
func (s *State) Thresholds() Thresholds { return s.thresholds }

// Overlaps reports whether b hits a range committed by an earlier report.
func (s *State) Overlaps(b interaction.Boundary) bool { return s.tracker.Overlaps(b) }

// Committed returns the committed ranges per sequence.
func (s *State) Committed() (seq1, seq2 []interaction.Range) { return s.tracker.Committed() }

// Optima returns a copy of the store, best first.
func (s *State) Optima() []interaction.Candidate {
	return append([]interaction.Candidate(nil), s.store.list...)
}

// Stats returns the counters.
func (s *State) Stats() Stats { return s.stats }

// Err returns the contract violation that aborted the prediction, if any.
func (s *State) Err() error { return s.err }

func (s *State) fail(format string, a ...any) {
	if s.err == nil {
		s.err = fmt.Errorf("%w: "+format, append([]any{ErrContract}, a...)...)
	}
}
