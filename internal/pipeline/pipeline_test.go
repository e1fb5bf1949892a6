package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ixrna-core/fasta"
)

func recs(ids ...string) []fasta.Record {
	out := make([]fasta.Record, len(ids))
	for i, id := range ids {
		out[i] = fasta.Record{ID: id, Seq: "ACGU"}
	}
	return out
}

func TestJobsCrossProduct(t *testing.T) {
	jobs := Jobs(recs("t1", "t2"), recs("q1", "q2", "q3"))
	require.Len(t, jobs, 6)
	assert.Equal(t, "t1", jobs[2].Target.ID)
	assert.Equal(t, "q3", jobs[2].Query.ID)
	assert.Equal(t, "t2", jobs[3].Target.ID)
	assert.Equal(t, 5, jobs[5].Index)
}

func TestForEachResultKeepsJobOrder(t *testing.T) {
	jobs := Jobs(recs("t1", "t2", "t3", "t4"), recs("q1", "q2"))
	var inFlight, peak int32
	var got []int
	err := ForEachResult(context.Background(), Config{Threads: 3}, jobs,
		func(_ context.Context, j Job) (int, error) {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			// later jobs finish first
			time.Sleep(time.Duration(len(jobs)-j.Index) * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			return j.Index * 10, nil
		},
		func(j Job, v int) error {
			assert.Equal(t, j.Index*10, v)
			got = append(got, j.Index)
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, got)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}

func TestForEachResultJobError(t *testing.T) {
	boom := errors.New("boom")
	jobs := Jobs(recs("t1", "t2", "t3"), recs("q"))
	var emitted []int
	err := ForEachResult(context.Background(), Config{Threads: 1}, jobs,
		func(_ context.Context, j Job) (int, error) {
			if j.Index == 1 {
				return 0, boom
			}
			return j.Index, nil
		},
		func(j Job, _ int) error {
			emitted = append(emitted, j.Index)
			return nil
		})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []int{0}, emitted, "results after a failed job are not emitted")
}

func TestForEachResultEmitErrorStops(t *testing.T) {
	stop := errors.New("writer closed")
	jobs := Jobs(recs("t1", "t2", "t3", "t4"), recs("q"))
	err := ForEachResult(context.Background(), Config{Threads: 2}, jobs,
		func(ctx context.Context, j Job) (int, error) { return j.Index, nil },
		func(Job, int) error { return stop })
	assert.ErrorIs(t, err, stop)
}

func TestForEachResultCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ForEachResult(ctx, Config{Threads: 2}, Jobs(recs("t"), recs("q")),
		func(ctx context.Context, j Job) (int, error) { return 0, ctx.Err() },
		func(Job, int) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestForEachResultNoJobs(t *testing.T) {
	err := ForEachResult(context.Background(), Config{}, nil,
		func(context.Context, Job) (int, error) { return 0, nil },
		func(Job, int) error { return nil })
	assert.NoError(t, err)
}
