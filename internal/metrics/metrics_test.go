package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ixrna-core/energy"
	"ixrna-core/predict"
)

func gather(t *testing.T, r *Recorder) map[string]float64 {
	t.Helper()
	mfs, err := r.Gatherer().Gather()
	require.NoError(t, err)
	out := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "outcome" {
					key += "/" + lp.GetValue()
				}
			}
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				out[key] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out
}

func TestObserveCountsOutcomes(t *testing.T) {
	r := New("run-1", "exact")
	r.Observe(predict.Result{Reported: 2, Stats: predict.Stats{Registered: 10, Pruned: 3, Kept: 4, NextBest: 1}}, -7.5, time.Millisecond, nil)
	r.Observe(predict.Result{}, energy.Inf, time.Millisecond, nil)
	r.Observe(predict.Result{}, energy.Inf, time.Millisecond, errors.New("boom"))

	got := gather(t, r)
	assert.Equal(t, 1.0, got["ixrna_predictions_total/match"])
	assert.Equal(t, 1.0, got["ixrna_predictions_total/none"])
	assert.Equal(t, 1.0, got["ixrna_predictions_total/error"])
	assert.Equal(t, 10.0, got["ixrna_candidates_registered_total"])
	assert.Equal(t, 3.0, got["ixrna_candidates_pruned_total"])
	assert.Equal(t, 2.0, got["ixrna_interactions_reported_total"])
	assert.Equal(t, 1.0, got["ixrna_mfe_kcal_per_mol"], "only matches feed the mfe histogram")
	assert.Equal(t, 3.0, got["ixrna_prediction_duration_seconds"])
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	r.Observe(predict.Result{Reported: 1}, -1, 0, nil)
}

func TestWriteTextfile(t *testing.T) {
	r := New("run-2", "heuristic")
	r.Observe(predict.Result{Reported: 1}, -3, 2*time.Millisecond, nil)
	path := filepath.Join(t.TempDir(), "ixrna.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `ixrna_predictions_total{mode="heuristic",outcome="match",run_id="run-2"} 1`)
	assert.Contains(t, string(data), "ixrna_interactions_reported_total")
}
