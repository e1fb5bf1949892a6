// core/track/pairmine.go
package track

import (
	"encoding/csv"
	"math"
	"strconv"

	"ixrna-core/interaction"
)

// PairMinE records the lowest energy per left boundary (I1, I2).
type PairMinE struct {
	pair Pair
	out  CSVTarget
	m    []float64
}

func NewPairMinE(p Pair, out CSVTarget) *PairMinE {
	return &PairMinE{pair: p, out: out, m: fillInf(make([]float64, p.Len1*p.Len2))}
}

func (o *PairMinE) OnOptimumUpdate(b interaction.Boundary, e float64) {
	nat2 := o.pair.Len2 - 1 - b.I2
	if b.I1 < 0 || b.I1 >= o.pair.Len1 || nat2 < 0 || nat2 >= o.pair.Len2 {
		return
	}
	if i := b.I1*o.pair.Len2 + nat2; e < o.m[i] {
		o.m[i] = e
	}
}

// At returns the minimum for seq-1 position k1 and natural seq-2 position k2.
func (o *PairMinE) At(k1, k2 int) float64 { return o.m[k1*o.pair.Len2+k2] }

// Close writes rows "id1,id2,pos1,pos2,min_e" with 1-based natural
// positions, one per boundary pair that saw a finite energy.
func (o *PairMinE) Close() error {
	if o.out.W == nil {
		return nil
	}
	w := csv.NewWriter(o.out.W)
	if o.out.Header {
		if err := w.Write([]string{"id1", "id2", "pos1", "pos2", "min_e"}); err != nil {
			return err
		}
	}
	for k1 := 0; k1 < o.pair.Len1; k1++ {
		for k2 := 0; k2 < o.pair.Len2; k2++ {
			e := o.At(k1, k2)
			if math.IsInf(e, 1) {
				continue
			}
			row := []string{o.pair.ID1, o.pair.ID2, strconv.Itoa(k1 + 1), strconv.Itoa(k2 + 1), formatEnergy(e)}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return flush(w)
}
