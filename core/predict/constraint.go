// core/predict/constraint.go
package predict

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// OutputConstraint bounds what a prediction reports.
type OutputConstraint struct {
	MaxReportCount int     // ≥1; also the optimum store capacity
	MaxEnergy      float64 // report only E ≤ MaxEnergy
	DeltaE         float64 // report only E ≤ mfe + DeltaE
	NonOverlapSeq1 bool    // reported interactions may not share seq-1 positions
	NonOverlapSeq2 bool    // likewise for seq 2
}

// DefaultOutputConstraint reports the single MFE interaction, no ceilings,
// non-overlap enforced on both sequences.
func DefaultOutputConstraint() OutputConstraint {
	return OutputConstraint{
		MaxReportCount: 1,
		MaxEnergy:      math.Inf(1),
		DeltaE:         math.Inf(1),
		NonOverlapSeq1: true,
		NonOverlapSeq2: true,
	}
}

// Validate checks value ranges.
func (c OutputConstraint) Validate() error {
	if c.MaxReportCount < 1 {
		return fmt.Errorf("max report count must be ≥ 1, got %d", c.MaxReportCount)
	}
	if math.IsNaN(c.MaxEnergy) || math.IsNaN(c.DeltaE) {
		return errors.New("energy ceilings must be numbers")
	}
	if c.DeltaE < 0 {
		return fmt.Errorf("delta energy must be ≥ 0, got %g", c.DeltaE)
	}
	return nil
}

// NonOverlap reports whether any side enforces non-overlap.
func (c OutputConstraint) NonOverlap() bool { return c.NonOverlapSeq1 || c.NonOverlapSeq2 }

// ParseOverlap maps the overlap letters to non-overlap flags:
// N = overlap nowhere, T = overlap allowed on seq 1 (target),
// Q = overlap allowed on seq 2 (query), B = overlap allowed on both.
func ParseOverlap(s string) (nonOverlap1, nonOverlap2 bool, err error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "N", "":
		return true, true, nil
	case "T":
		return false, true, nil
	case "Q":
		return true, false, nil
	case "B":
		return false, false, nil
	}
	return false, false, fmt.Errorf("overlap must be one of N, T, Q, B; got %q", s)
}
