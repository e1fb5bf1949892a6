package cmdutil

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"ixrna-core/fasta"
	"ixrna/internal/pipeline"
)

func TestRunStreamFlattensInOrder(t *testing.T) {
	jobs := pipeline.Jobs(
		[]fasta.Record{{ID: "t1"}, {ID: "t2"}},
		[]fasta.Record{{ID: "q"}},
	)
	var got []string
	n, err := RunStream(context.Background(), pipeline.Config{Threads: 2}, jobs,
		func(_ context.Context, j pipeline.Job) (int, error) { return j.Index + 1, nil },
		func(j pipeline.Job, reps int) ([]string, error) {
			out := make([]string, reps)
			for i := range out {
				out[i] = j.Target.ID
			}
			return out, nil
		},
		func(s string) error { got = append(got, s); return nil })
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n != 3 || strings.Join(got, ",") != "t1,t2,t2" {
		t.Fatalf("n=%d got=%v", n, got)
	}
}

func TestRunStreamVisitError(t *testing.T) {
	bad := errors.New("bad visit")
	jobs := pipeline.Jobs([]fasta.Record{{ID: "t"}}, []fasta.Record{{ID: "q"}})
	_, err := RunStream(context.Background(), pipeline.Config{}, jobs,
		func(context.Context, pipeline.Job) (int, error) { return 1, nil },
		func(pipeline.Job, int) ([]int, error) { return nil, bad },
		func(int) error { return nil })
	if !errors.Is(err, bad) {
		t.Fatalf("want visit error, got %v", err)
	}
}

func TestLoggerQuiet(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, true)
	log.Info("hidden")
	Warnf(log, "shown %d", 1)
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown 1") {
		t.Fatalf("unexpected log output %q", buf.String())
	}
}
