// core/predict/recurrence.go
package predict

import (
	"ixrna-core/energy"
	"ixrna-core/interaction"
)

// Recurrence is a concrete search strategy. Implementations hold only
// immutable settings; everything mutable lives in the State.
type Recurrence interface {
	// Search explores the search space and calls s.Register for candidates.
	Search(s *State) error
	// TraceBack fills in.Pairs (and in.Hybrid) for the boundary and energy
	// already set on in.
	TraceBack(s *State, in *interaction.Interaction) error
	// NextBest returns the best candidate with energy ≥ cur.Energy that
	// does not overlap any range committed in s, or a candidate with
	// energy.Inf when none is left.
	NextBest(s *State, cur interaction.Candidate) interaction.Candidate
}

// exhausted is the NextBest sentinel.
func exhausted() interaction.Candidate {
	return interaction.Candidate{Energy: energy.Inf}
}
