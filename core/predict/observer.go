// core/predict/observer.go
package predict

import "ixrna-core/interaction"

// Observer sees every optimum update, kept or not. It is called
// synchronously from the search loop and must not block.
type Observer interface {
	OnOptimumUpdate(b interaction.Boundary, energy float64)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(b interaction.Boundary, energy float64)

func (f ObserverFunc) OnOptimumUpdate(b interaction.Boundary, energy float64) { f(b, energy) }

// noObserver is the "no observer attached" value.
type noObserver struct{}

func (noObserver) OnOptimumUpdate(interaction.Boundary, float64) {}

// Sink receives finished interactions in ascending energy order.
type Sink interface {
	Accept(in interaction.Interaction) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(in interaction.Interaction) error

func (f SinkFunc) Accept(in interaction.Interaction) error { return f(in) }

// Collect is a Sink that keeps everything in memory.
type Collect struct {
	Items []interaction.Interaction
}

func (c *Collect) Accept(in interaction.Interaction) error {
	c.Items = append(c.Items, in)
	return nil
}
