// core/track/spotprob.go
package track

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"ixrna-core/energy"
	"ixrna-core/interaction"
)

// Spot is an intermolecular position pair, 0-based, both in natural orientation.
type Spot struct {
	K1, K2 int
}

func (s Spot) String() string { return fmt.Sprintf("%d:%d", s.K1+1, s.K2+1) }

// ParseSpot reads the 1-based "k1:k2" notation.
func ParseSpot(s string) (Spot, error) {
	a, b, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Spot{}, fmt.Errorf("spot %q: want k1:k2", s)
	}
	k1, err := strconv.Atoi(a)
	if err != nil {
		return Spot{}, fmt.Errorf("spot %q: %w", s, err)
	}
	k2, err := strconv.Atoi(b)
	if err != nil {
		return Spot{}, fmt.Errorf("spot %q: %w", s, err)
	}
	if k1 < 1 || k2 < 1 {
		return Spot{}, fmt.Errorf("spot %q: positions are 1-based", s)
	}
	return Spot{K1: k1 - 1, K2: k2 - 1}, nil
}

// SpotProb estimates, from the Boltzmann weights of all observed
// candidates, the probability that each spot lies inside an interaction.
type SpotProb struct {
	pair  Pair
	out   CSVTarget
	rt    float64
	spots []Spot
	z     float64
	zSpot []float64
}

func NewSpotProb(p Pair, rt float64, spots []Spot, out CSVTarget) *SpotProb {
	return &SpotProb{
		pair:  p,
		out:   out,
		rt:    rt,
		spots: append([]Spot(nil), spots...),
		zSpot: make([]float64, len(spots)),
	}
}

func (o *SpotProb) OnOptimumUpdate(b interaction.Boundary, e float64) {
	w := energy.Boltzmann(e, o.rt)
	if w == 0 {
		return
	}
	o.z += w
	for i, s := range o.spots {
		rev := o.pair.Len2 - 1 - s.K2
		if b.I1 <= s.K1 && s.K1 <= b.J1 && b.I2 <= rev && rev <= b.J2 {
			o.zSpot[i] += w
		}
	}
}

// Prob returns the probability of the i-th spot, 0 before any update.
func (o *SpotProb) Prob(i int) float64 {
	if o.z == 0 {
		return 0
	}
	return o.zSpot[i] / o.z
}

// Close writes rows "id1,id2,spot,prob".
func (o *SpotProb) Close() error {
	if o.out.W == nil {
		return nil
	}
	w := csv.NewWriter(o.out.W)
	if o.out.Header {
		if err := w.Write([]string{"id1", "id2", "spot", "prob"}); err != nil {
			return err
		}
	}
	for i, s := range o.spots {
		row := []string{o.pair.ID1, o.pair.ID2, s.String(), strconv.FormatFloat(o.Prob(i), 'g', 6, 64)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return flush(w)
}
