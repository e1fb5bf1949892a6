// Package metrics records per-run prediction counters in a private
// Prometheus registry and exports them in textfile-collector format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"ixrna-core/energy"
	"ixrna-core/predict"
)

// Outcome labels.
const (
	OutcomeMatch = "match"
	OutcomeNone  = "none"
	OutcomeError = "error"

	namespace = "ixrna"
)

// Recorder is safe for concurrent use.
type Recorder struct {
	reg *prometheus.Registry

	predictions *prometheus.CounterVec
	registered  prometheus.Counter
	pruned      prometheus.Counter
	kept        prometheus.Counter
	nextBest    prometheus.Counter
	reported    prometheus.Counter
	mfe         prometheus.Histogram
	duration    prometheus.Histogram
}

// New builds a Recorder for one run, labelled with the run id and mode.
func New(runID, mode string) *Recorder {
	reg := prometheus.NewRegistry()
	labels := prometheus.Labels{"run_id": runID, "mode": mode}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: name, Help: help, ConstLabels: labels,
		})
	}
	r := &Recorder{
		reg: reg,
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "predictions_total",
			Help: "Target/query predictions by outcome.", ConstLabels: labels,
		}, []string{"outcome"}),
		registered: counter("candidates_registered_total", "Candidate boundaries offered to the optimum store."),
		pruned:     counter("candidates_pruned_total", "Hybrid-only candidates rejected by the energy thresholds."),
		kept:       counter("candidates_kept_total", "Candidates that entered the optimum store."),
		nextBest:   counter("next_best_calls_total", "Suboptimal successor searches."),
		reported:   counter("interactions_reported_total", "Interactions written out."),
		mfe: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "mfe_kcal_per_mol",
			Help:        "Minimum free energy per prediction with at least one interaction.",
			ConstLabels: labels,
			Buckets:     prometheus.LinearBuckets(-40, 5, 9),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "prediction_duration_seconds",
			Help:        "Wall time per prediction.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
	}
	reg.MustRegister(r.predictions, r.registered, r.pruned, r.kept, r.nextBest, r.reported, r.mfe, r.duration)
	for _, o := range []string{OutcomeMatch, OutcomeNone, OutcomeError} {
		r.predictions.WithLabelValues(o)
	}
	return r
}

// Observe records one finished prediction. mfe is ignored when nothing
// was reported.
func (r *Recorder) Observe(res predict.Result, mfe float64, elapsed time.Duration, err error) {
	if r == nil {
		return
	}
	outcome := OutcomeMatch
	switch {
	case err != nil:
		outcome = OutcomeError
	case res.Reported == 0:
		outcome = OutcomeNone
	}
	r.predictions.WithLabelValues(outcome).Inc()
	r.registered.Add(float64(res.Stats.Registered))
	r.pruned.Add(float64(res.Stats.Pruned))
	r.kept.Add(float64(res.Stats.Kept))
	r.nextBest.Add(float64(res.Stats.NextBest))
	r.reported.Add(float64(res.Reported))
	if res.Reported > 0 && !energy.IsInf(mfe) {
		r.mfe.Observe(mfe)
	}
	r.duration.Observe(elapsed.Seconds())
}

// Gatherer exposes the registry, e.g. for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer { return r.reg }

// WriteTextfile writes all metrics to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("metrics %s: %w", path, err)
	}
	return nil
}
