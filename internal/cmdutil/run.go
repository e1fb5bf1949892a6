package cmdutil

import (
	"context"

	"ixrna/internal/pipeline"
)

// RunStream runs every job through the pool, applies visit to each result
// in job order, and streams the produced items via send.
// It returns the number of items sent and the first error encountered.
func RunStream[R, T any](
	ctx context.Context,
	cfg pipeline.Config,
	jobs []pipeline.Job,
	run func(context.Context, pipeline.Job) (R, error),
	visit func(pipeline.Job, R) ([]T, error),
	send func(T) error,
) (int, error) {
	total := 0
	err := pipeline.ForEachResult(ctx, cfg, jobs, run, func(j pipeline.Job, r R) error {
		items, vErr := visit(j, r)
		if vErr != nil {
			return vErr
		}
		for _, it := range items {
			if err := send(it); err != nil {
				return err
			}
			total++
		}
		return nil
	})
	return total, err
}
