// core/predict/report.go
package predict

import (
	"fmt"
	"sort"

	"ixrna-core/energy"
	"ixrna-core/interaction"
)

// Report traces back the stored optima in ascending energy order and hands
// them to sink. Candidates overlapping an earlier report are replaced by
// rec.NextBest; an Inf result ends reporting. Once the store is drained
// under a non-overlap policy, NextBest is asked for successors of the last
// reported candidate. Returns the number of interactions accepted by sink.
func (s *State) Report(rec Recurrence, sink Sink) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	if s.phase != phaseAccumulating {
		s.fail("Report called while %s", s.phase)
		return 0, s.err
	}
	s.phase = phaseReporting
	defer func() { s.phase = phaseDone }()

	c := s.constraint
	queue := s.Optima()
	seen := make(map[interaction.Boundary]struct{}, len(queue))
	for _, q := range queue {
		seen[q.Boundary] = struct{}{}
	}

	var (
		reported int
		mfe      float64
		last     interaction.Candidate
		haveLast bool
	)

	// push adds a NextBest result; false means exhausted or broken contract.
	push := func(prev, next interaction.Candidate) bool {
		s.stats.NextBest++
		if energy.IsInf(next.Energy) {
			return false
		}
		if next.Energy < prev.Energy {
			s.fail("NextBest returned %s with %.4f below %.4f", next.Boundary, next.Energy, prev.Energy)
			return false
		}
		if _, dup := seen[next.Boundary]; dup {
			if s.tracker.Overlaps(next.Boundary) {
				s.fail("NextBest returned already handled boundary %s", next.Boundary)
				return false
			}
			// already queued
			return true
		}
		seen[next.Boundary] = struct{}{}
		pos := sort.Search(len(queue), func(i int) bool { return queue[i].Energy > next.Energy })
		queue = append(queue, interaction.Candidate{})
		copy(queue[pos+1:], queue[pos:])
		queue[pos] = next
		return true
	}

	for reported < c.MaxReportCount {
		if len(queue) == 0 {
			if !c.NonOverlap() || !haveLast {
				break
			}
			haveLast = false
			if !push(last, rec.NextBest(s, last)) {
				break
			}
			continue
		}
		cur := queue[0]
		if cur.Energy > c.MaxEnergy || (reported > 0 && cur.Energy > mfe+c.DeltaE) {
			break
		}
		queue = queue[1:]
		if s.tracker.Overlaps(cur.Boundary) {
			if !push(cur, rec.NextBest(s, cur)) {
				break
			}
			continue
		}

		in := interaction.Interaction{Boundary: cur.Boundary, Energy: cur.Energy}
		if err := rec.TraceBack(s, &in); err != nil {
			return reported, fmt.Errorf("%w %s (E=%.4f): %w", ErrTraceBack, cur.Boundary, cur.Energy, err)
		}
		s.tracker.Commit(cur.Boundary)
		if err := sink.Accept(in); err != nil {
			return reported, err
		}
		if reported == 0 {
			mfe = cur.Energy
		}
		reported++
		s.stats.Reported = reported
		last, haveLast = cur, true
	}
	if s.err != nil {
		return reported, s.err
	}
	return reported, nil
}
