// core/track/profile.go
package track

import (
	"encoding/csv"
	"strconv"

	"ixrna-core/interaction"
)

// ProfileMinE records, per sequence position, the lowest energy of any
// candidate covering it. Sequence-2 positions are stored in natural
// orientation.
type ProfileMinE struct {
	pair Pair
	out  CSVTarget
	min1 []float64
	min2 []float64
}

func NewProfileMinE(p Pair, out CSVTarget) *ProfileMinE {
	return &ProfileMinE{
		pair: p,
		out:  out,
		min1: fillInf(make([]float64, p.Len1)),
		min2: fillInf(make([]float64, p.Len2)),
	}
}

func (o *ProfileMinE) OnOptimumUpdate(b interaction.Boundary, e float64) {
	for k := b.I1; k <= b.J1 && k < len(o.min1); k++ {
		if e < o.min1[k] {
			o.min1[k] = e
		}
	}
	for k := b.I2; k <= b.J2 && k < len(o.min2); k++ {
		nat := len(o.min2) - 1 - k
		if nat >= 0 && e < o.min2[nat] {
			o.min2[nat] = e
		}
	}
}

// Seq1 returns the profile of sequence 1.
func (o *ProfileMinE) Seq1() []float64 { return append([]float64(nil), o.min1...) }

// Seq2 returns the profile of sequence 2 in natural orientation.
func (o *ProfileMinE) Seq2() []float64 { return append([]float64(nil), o.min2...) }

// Close writes rows "seq_id,pos,min_e" with 1-based positions.
func (o *ProfileMinE) Close() error {
	if o.out.W == nil {
		return nil
	}
	w := csv.NewWriter(o.out.W)
	if o.out.Header {
		if err := w.Write([]string{"seq_id", "pos", "min_e"}); err != nil {
			return err
		}
	}
	write := func(id string, prof []float64) error {
		for i, e := range prof {
			if err := w.Write([]string{id, strconv.Itoa(i + 1), formatEnergy(e)}); err != nil {
				return err
			}
		}
		return nil
	}
	if err := write(o.pair.ID1, o.min1); err != nil {
		return err
	}
	if err := write(o.pair.ID2, o.min2); err != nil {
		return err
	}
	return flush(w)
}
