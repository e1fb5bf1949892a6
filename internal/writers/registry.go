// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"ixrna/pkg/api"
)

// StartFunc spins up a writer goroutine. Values sent on the channel are
// written in order; the error channel yields once after the input is closed.
type StartFunc func(out io.Writer, header bool, bufSize int) (chan<- api.InteractionV1, <-chan error)

var registry = map[string]StartFunc{}

// Register adds a format; last registration wins.
func Register(format string, fn StartFunc) { registry[format] = fn }

// Formats lists the registered format names.
func Formats() []string {
	out := make([]string, 0, len(registry))
	for f := range registry {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Start dispatches to the writer registered for format. An unknown format
// yields a writer that drains its input and reports the error.
func Start(format string, out io.Writer, header bool, bufSize int) (chan<- api.InteractionV1, <-chan error) {
	if fn, ok := registry[format]; ok {
		return fn(out, header, bufSize)
	}
	return startFunc(bufSize, func(in <-chan api.InteractionV1) error {
		for range in {
		}
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	})
}

// startFunc runs consume on a fresh channel in its own goroutine.
func startFunc(bufSize int, consume func(<-chan api.InteractionV1) error) (chan<- api.InteractionV1, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan api.InteractionV1, bufSize)
	done := make(chan error, 1)
	go func() {
		err := consume(in)
		// keep the sender unblocked after an early error
		for range in {
		}
		done <- err
	}()
	return in, done
}
