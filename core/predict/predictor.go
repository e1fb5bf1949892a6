// core/predict/predictor.go
package predict

import (
	"context"
	"io"

	"ixrna-core/energy"
)

// Predictor runs predictions with a fixed recurrence. It keeps no
// per-prediction state, so Predict may be called from several goroutines
// as long as the attached observer tolerates it.
type Predictor struct {
	rec      Recurrence
	observer Observer
}

// Option configures a Predictor.
type Option func(*Predictor)

// WithObserver attaches an observer owned by the Predictor.
func WithObserver(o Observer) Option {
	return func(p *Predictor) { p.observer = o }
}

// New returns a Predictor for rec.
func New(rec Recurrence, opts ...Option) *Predictor {
	p := &Predictor{rec: rec}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result summarizes one prediction.
type Result struct {
	Reported int
	Stats    Stats
}

// Predict searches the interaction space of prov and reports up to
// c.MaxReportCount interactions to sink in ascending energy order.
func (p *Predictor) Predict(ctx context.Context, prov energy.Provider, c OutputConstraint, sink Sink) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	s := NewState(prov, p.observer)
	if err := s.Init(c); err != nil {
		return Result{}, err
	}
	if err := p.rec.Search(s); err != nil {
		return Result{Stats: s.Stats()}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{Stats: s.Stats()}, err
	}
	n, err := s.Report(p.rec, sink)
	return Result{Reported: n, Stats: s.Stats()}, err
}

// Close releases the observer if it holds resources.
func (p *Predictor) Close() error {
	if c, ok := p.observer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
