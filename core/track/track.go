// core/track/track.go
//
// Observers that aggregate every optimum update of a prediction into
// position-resolved tables. Each observer belongs to one sequence pair and
// is not safe for concurrent use; tables are written as CSV on Close.
package track

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"strconv"

	"ixrna-core/interaction"
	"ixrna-core/predict"
)

// Pair identifies the sequence pair an observer reports on.
type Pair struct {
	ID1, ID2   string
	Len1, Len2 int
}

// CSVTarget is where an observer writes its table on Close.
type CSVTarget struct {
	W      io.Writer
	Header bool
}

func formatEnergy(e float64) string {
	if math.IsInf(e, 1) {
		return "NA"
	}
	return strconv.FormatFloat(e, 'f', 4, 64)
}

func fillInf(v []float64) []float64 {
	for i := range v {
		v[i] = math.Inf(1)
	}
	return v
}

func flush(w *csv.Writer) error {
	w.Flush()
	return w.Error()
}

// Multi fans every update out to several observers.
type Multi []predict.Observer

func (m Multi) OnOptimumUpdate(b interaction.Boundary, e float64) {
	for _, o := range m {
		o.OnOptimumUpdate(b, e)
	}
}

// Close closes every member that holds resources.
func (m Multi) Close() error {
	var errs []error
	for _, o := range m {
		if c, ok := o.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
