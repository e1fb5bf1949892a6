// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"ixrna-core/fasta"
	"ixrna-core/predict"
	"ixrna-core/seq"
	"ixrna-core/track"
	"ixrna-core/vrna"
	"ixrna/internal/appcore"
	"ixrna/internal/cli"
	"ixrna/internal/clibase"
	"ixrna/internal/cmdutil"
	"ixrna/internal/common"
	"ixrna/internal/config"
	"ixrna/internal/metrics"
	"ixrna/internal/storage"
	"ixrna/internal/version"
	"ixrna/internal/writers"
)

// flushTo flushes w and maps the outcome to an exit code.
func flushTo(w *bufio.Writer, stderr io.Writer, code int) int {
	if err := w.Flush(); writers.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return code
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := cli.NewFlagSet("ixrna")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		return flushTo(outw, stderr, 0)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if errors.Is(err, clibase.ErrPrintedAndExitOK) {
		clibase.PrintExamples(outw, "ixrna", clibase.Examples)
		return flushTo(outw, stderr, 0)
	}
	if err != nil {
		// usage went to io.Discard during parsing
		fs.SetOutput(outw)
		fs.Usage()
		if errors.Is(err, flag.ErrHelp) {
			return flushTo(outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, err)
		return flushTo(outw, stderr, 2)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "ixrna version %s\n", version.Version)
		return flushTo(outw, stderr, 0)
	}

	if opts.Config != "" {
		f, err := config.LoadFromPath(opts.Config)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		config.Merge(&opts, f)
	}
	if err := config.ApplyEnvOverrides(&opts); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	if err := opts.Validate(); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	log := cmdutil.NewLogger(stderr, opts.Quiet)

	targets, err := loadSequences(parent, opts.TargetFiles, "target", opts.TSeq)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	queries, err := loadSequences(parent, opts.QueryFiles, "query", opts.QSeq)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	for _, set := range [][]fasta.Record{targets, queries} {
		if dups := common.DuplicateIDs(set); len(dups) > 0 {
			cmdutil.Warnf(log, "duplicate sequence IDs %v; output rows will be ambiguous", dups)
		}
	}

	core, err := buildOptions(opts)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	core.Targets, core.Queries = targets, queries
	core.Log = log
	core.RunID = uuid.NewString()

	if opts.DB != "" {
		store, err := openStore(parent, opts.DB, storage.Run{
			ID:        core.RunID,
			StartedAt: time.Now().UTC(),
			Version:   version.Version,
			Energy:    opts.Energy,
			Mode:      opts.Mode,
			Args:      argv,
		})
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		defer func() {
			if err := storage.Release(store); err != nil {
				cmdutil.Warnf(log, "closing %s: %v", opts.DB, err)
			}
		}()
		core.Store = store
	}
	if opts.Metrics != "" {
		core.Metrics = metrics.New(core.RunID, opts.Mode)
	}

	code := appcore.Run(parent, stdout, stderr, core)

	if core.Metrics != nil {
		if err := core.Metrics.WriteTextfile(opts.Metrics); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			if code == 0 {
				code = 3
			}
		}
	}
	return code
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// loadSequences reads and normalizes records from files, or wraps the
// inline sequence under defaultID.
func loadSequences(ctx context.Context, files []string, defaultID, inline string) ([]fasta.Record, error) {
	var recs []fasta.Record
	if inline != "" {
		recs = []fasta.Record{fasta.Inline(defaultID, inline)}
	}
	for _, path := range files {
		got, err := fasta.ReadPathCtx(ctx, path)
		if err != nil {
			return nil, err
		}
		if len(got) == 0 {
			return nil, fmt.Errorf("%s: no %s sequences", path, defaultID)
		}
		recs = append(recs, got...)
	}
	for i := range recs {
		s, err := seq.Validate(recs[i].Seq)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", defaultID, recs[i].ID, err)
		}
		recs[i].Seq = s
	}
	return recs, nil
}

// buildOptions turns validated CLI options into the prediction setup.
func buildOptions(o cli.Options) (appcore.Options, error) {
	m := vrna.New(
		vrna.WithTemperature(o.Temperature),
		vrna.WithDangles(o.Dangles),
		vrna.WithNoGU(o.NoGU),
		vrna.WithNoGUClosure(o.NoGUClosure),
		vrna.WithMaxBPSpan(o.MaxBPSpan),
		vrna.WithWindowSize(o.WindowSize),
	)
	if err := m.Validate(); err != nil {
		return appcore.Options{}, err
	}

	c := predict.OutputConstraint{
		MaxReportCount: o.OutNumber,
		MaxEnergy:      o.OutMaxE,
		DeltaE:         o.OutDeltaE,
	}
	var err error
	if c.NonOverlapSeq1, c.NonOverlapSeq2, err = predict.ParseOverlap(o.OutOverlap); err != nil {
		return appcore.Options{}, err
	}
	if err := c.Validate(); err != nil {
		return appcore.Options{}, err
	}

	spots := make([]track.Spot, 0, len(o.SpotProb))
	for _, s := range o.SpotProb {
		sp, err := track.ParseSpot(s)
		if err != nil {
			return appcore.Options{}, err
		}
		spots = append(spots, sp)
	}

	return appcore.Options{
		Model:           m,
		Energy:          o.Energy,
		Mode:            o.Mode,
		SeedBP:          o.SeedBP,
		MaxLoop:         o.MaxLoop,
		Constraint:      c,
		Threads:         o.Threads,
		Format:          o.Output,
		Header:          o.Header,
		ProfileMinE:     o.ProfileMinE,
		PairMinE:        o.PairMinE,
		SpotProbOut:     o.SpotProbOut,
		Spots:           spots,
		NoMatchExitCode: o.NoMatchExitCode,
	}, nil
}

func openStore(ctx context.Context, path string, run storage.Run) (storage.Store, error) {
	store, err := storage.Open(storage.BackendSQLite, path)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := store.SaveRun(ctx, run); err != nil {
		_ = storage.Release(store)
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return store, nil
}
