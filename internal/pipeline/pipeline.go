// internal/pipeline/pipeline.go
package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"ixrna-core/fasta"
)

// Config controls the worker pool.
type Config struct {
	Threads int // concurrent jobs (>=1)
}

// Job is one independent prediction: a target record against a query record.
type Job struct {
	Index  int
	Target fasta.Record
	Query  fasta.Record
}

// Jobs pairs every target with every query, targets in the outer loop.
func Jobs(targets, queries []fasta.Record) []Job {
	out := make([]Job, 0, len(targets)*len(queries))
	for _, t := range targets {
		for _, q := range queries {
			out = append(out, Job{Index: len(out), Target: t, Query: q})
		}
	}
	return out
}

type slot[T any] struct {
	v    T
	err  error
	done chan struct{}
}

// ForEachResult runs fn for every job with at most cfg.Threads in flight
// and calls emit with each result in job order, from a single goroutine.
// The first failure cancels the remaining jobs. An emit error wins over
// job errors; otherwise the first job error is returned.
func ForEachResult[T any](
	ctx context.Context,
	cfg Config,
	jobs []Job,
	fn func(context.Context, Job) (T, error),
	emit func(Job, T) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Threads)

	slots := make([]slot[T], len(jobs))
	for i := range slots {
		slots[i].done = make(chan struct{})
	}

	// Collector: strictly in order.
	emitErr := make(chan error, 1)
	go func() {
		for i := range slots {
			<-slots[i].done
			if slots[i].err != nil {
				emitErr <- nil
				return
			}
			if err := emit(jobs[i], slots[i].v); err != nil {
				cancel()
				emitErr <- err
				return
			}
		}
		emitErr <- nil
	}()

	// Feed work
	for i := range jobs {
		s := &slots[i]
		if err := gctx.Err(); err != nil {
			s.err = err
			close(s.done)
			continue
		}
		job := jobs[i]
		g.Go(func() error {
			defer close(s.done)
			s.v, s.err = fn(gctx, job)
			return s.err
		})
	}

	werr := g.Wait()
	if err := <-emitErr; err != nil {
		return err
	}
	if werr != nil {
		return werr
	}
	return ctx.Err()
}
