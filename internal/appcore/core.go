// internal/appcore/core.go
package appcore

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"

	"ixrna-core/energy"
	"ixrna-core/fasta"
	"ixrna-core/interaction"
	"ixrna-core/predict"
	"ixrna-core/track"
	"ixrna-core/vrna"
	"ixrna/internal/cmdutil"
	"ixrna/internal/metrics"
	"ixrna/internal/output"
	"ixrna/internal/pipeline"
	"ixrna/internal/storage"
	"ixrna/internal/writers"
	"ixrna/pkg/api"
)

// Energy models and search modes, as accepted on the command line.
const (
	EnergyBasePair = "bp"
	EnergyNN       = "nn"

	ModeExact     = "exact"
	ModeHeuristic = "heuristic"
)

type Options struct {
	RunID   string
	Targets []fasta.Record
	Queries []fasta.Record

	Model      vrna.Model
	Energy     string
	Mode       string
	SeedBP     int
	MaxLoop    int // -1 = provider default
	Constraint predict.OutputConstraint

	Threads int

	Format string
	Header bool

	ProfileMinE string
	PairMinE    string
	SpotProbOut string
	Spots       []track.Spot

	Store   storage.Store     // optional
	Metrics *metrics.Recorder // optional

	Log             *slog.Logger
	NoMatchExitCode int
}

// jobResult is everything one prediction produced; observer tables are
// buffered so the collector can append them to their files in job order.
type jobResult struct {
	items   []api.InteractionV1
	profile []byte
	pairs   []byte
	spots   []byte
}

// NewRecurrence maps a mode name to its recurrence.
func NewRecurrence(mode string, seedBP int) (predict.Recurrence, error) {
	switch mode {
	case ModeExact, "":
		return predict.Exact{SeedBP: seedBP}, nil
	case ModeHeuristic:
		return predict.Heuristic{}, nil
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}

// NewProvider builds the energy provider for one sequence pair.
func NewProvider(kind string, s1, s2 string, m vrna.Model, maxLoop int) (energy.Provider, error) {
	switch kind {
	case EnergyBasePair:
		return energy.NewBasePair(s1, s2, m, energy.BasePairConfig{MaxLoop: maxLoop}), nil
	case EnergyNN, "":
		// < 0 selects the provider default
		return energy.NewNearestNeighbor(s1, s2, m, energy.NNConfig{MaxLoop: maxLoop})
	default:
		return nil, fmt.Errorf("unknown energy model %q", kind)
	}
}

// sideFile is an observer CSV destination shared by all jobs.
type sideFile struct {
	path string
	f    *os.File
	bw   *bufio.Writer
}

func openSide(path string) (*sideFile, error) {
	if path == "" {
		return nil, nil
	}
	f, err := createFile(path)
	if err != nil {
		return nil, err
	}
	return &sideFile{path: path, f: f, bw: bufio.NewWriter(f)}, nil
}

var createFile = os.Create

// openSides opens the profile, pair and spot tables. On failure every table
// opened so far is closed again.
func openSides(profile, pair, spot string) ([3]*sideFile, error) {
	var sides [3]*sideFile
	for i, path := range []string{profile, pair, spot} {
		s, err := openSide(path)
		if err != nil {
			for _, o := range sides[:i] {
				_ = o.close()
			}
			return [3]*sideFile{}, err
		}
		sides[i] = s
	}
	return sides, nil
}

func (s *sideFile) append(b []byte) error {
	if s == nil || len(b) == 0 {
		return nil
	}
	_, err := s.bw.Write(b)
	return err
}

func (s *sideFile) close() error {
	if s == nil {
		return nil
	}
	err := s.bw.Flush()
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%s: %w", s.path, err)
	}
	return nil
}

// Run predicts every target×query pair and streams the interactions to
// stdout in the requested format. It returns the process exit code.
func Run(parent context.Context, stdout, stderr io.Writer, o Options) int {
	log := o.Log
	if log == nil {
		log = cmdutil.NewLogger(stderr, false)
	}
	outw := bufio.NewWriter(stdout)

	rec, err := NewRecurrence(o.Mode, o.SeedBP)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	thr := o.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	spotPath := o.SpotProbOut
	if len(o.Spots) == 0 {
		spotPath = ""
	}
	sides, err := openSides(o.ProfileMinE, o.PairMinE, spotPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}
	profileOut, pairOut, spotOut := sides[0], sides[1], sides[2]

	jobs := pipeline.Jobs(o.Targets, o.Queries)
	log.Info("starting", "run_id", o.RunID, "jobs", humanize.Comma(int64(len(jobs))),
		"energy", o.Energy, "mode", o.Mode, "threads", thr)

	inCh, writeErr := writers.Start(o.Format, outw, o.Header, thr*4)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	start := time.Now()
	var matched int
	total, perr := cmdutil.RunStream(
		ctx,
		pipeline.Config{Threads: thr},
		jobs,
		func(ctx context.Context, j pipeline.Job) (jobResult, error) {
			return predictJob(ctx, o, rec, j, profileOut != nil, pairOut != nil, spotOut != nil)
		},
		func(j pipeline.Job, r jobResult) ([]api.InteractionV1, error) {
			for _, p := range []struct {
				f *sideFile
				b []byte
			}{{profileOut, r.profile}, {pairOut, r.pairs}, {spotOut, r.spots}} {
				if err := p.f.append(p.b); err != nil {
					return nil, err
				}
			}
			if len(r.items) == 0 {
				log.Info("no favorable interaction", "target", j.Target.ID, "query", j.Query.ID)
				return nil, nil
			}
			matched++
			if o.Store != nil {
				if err := o.Store.SaveInteractions(ctx, o.RunID, r.items); err != nil {
					return nil, fmt.Errorf("store: %w", err)
				}
			}
			return r.items, nil
		},
		func(v api.InteractionV1) error {
			select {
			case inCh <- v:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)

	close(inCh)

	code := 0
	if werr := <-writeErr; werr != nil && !writers.IsBrokenPipe(werr) {
		fmt.Fprintln(stderr, werr)
		code = 3
	}
	if e := outw.Flush(); e != nil && !writers.IsBrokenPipe(e) && code == 0 {
		fmt.Fprintln(stderr, e)
		code = 3
	}
	for _, s := range sides {
		if e := s.close(); e != nil {
			fmt.Fprintln(stderr, e)
			code = 3
		}
	}
	if code != 0 {
		return code
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		fmt.Fprintln(stderr, perr)
		return 3
	}

	log.Info("done", "run_id", o.RunID,
		"pairs", humanize.Comma(int64(len(jobs))),
		"with_interaction", humanize.Comma(int64(matched)),
		"reported", humanize.Comma(int64(total)),
		"elapsed", time.Since(start).Round(time.Millisecond))
	if total == 0 {
		return o.NoMatchExitCode
	}
	return 0
}

// predictJob runs one prediction with a fresh predictor and observers.
func predictJob(ctx context.Context, o Options, rec predict.Recurrence, j pipeline.Job, profile, pairs, spots bool) (jobResult, error) {
	var res jobResult
	prov, err := NewProvider(o.Energy, j.Target.Seq, j.Query.Seq, o.Model, o.MaxLoop)
	if err != nil {
		return res, fmt.Errorf("%s/%s: %w", j.Target.ID, j.Query.ID, err)
	}

	// Only the first job carries CSV headers, so appended tables stay valid.
	header := j.Index == 0
	pair := track.Pair{ID1: j.Target.ID, ID2: j.Query.ID, Len1: len(j.Target.Seq), Len2: len(j.Query.Seq)}
	var (
		obs              track.Multi
		profBuf, pairBuf bytes.Buffer
		spotBuf          bytes.Buffer
	)
	if profile {
		obs = append(obs, track.NewProfileMinE(pair, track.CSVTarget{W: &profBuf, Header: header}))
	}
	if pairs {
		obs = append(obs, track.NewPairMinE(pair, track.CSVTarget{W: &pairBuf, Header: header}))
	}
	if spots {
		obs = append(obs, track.NewSpotProb(pair, prov.RT(), o.Spots, track.CSVTarget{W: &spotBuf, Header: header}))
	}
	var popts []predict.Option
	if len(obs) > 0 {
		popts = append(popts, predict.WithObserver(obs))
	}
	p := predict.New(rec, popts...)

	sink := predict.SinkFunc(func(in interaction.Interaction) error {
		in.Seq1ID, in.Seq2ID = j.Target.ID, j.Query.ID
		in.Seq1, in.Seq2 = j.Target.Seq, j.Query.Seq
		res.items = append(res.items, output.ToAPI(o.RunID, len(res.items)+1, in))
		return nil
	})

	began := time.Now()
	r, err := p.Predict(ctx, prov, o.Constraint, sink)
	if cerr := p.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("observers: %w", cerr)
	}
	mfe := energy.Inf
	if len(res.items) > 0 {
		mfe = res.items[0].Energy
	}
	o.Metrics.Observe(r, mfe, time.Since(began), err)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return res, err
		}
		return res, fmt.Errorf("%s/%s: %w", j.Target.ID, j.Query.ID, err)
	}
	res.profile, res.pairs, res.spots = profBuf.Bytes(), pairBuf.Bytes(), spotBuf.Bytes()
	return res, nil
}
