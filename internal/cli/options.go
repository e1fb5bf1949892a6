// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"ixrna-core/predict"
	"ixrna-core/track"
	"ixrna/internal/appcore"
	"ixrna/internal/clibase"
	"ixrna/internal/cliutil"
	"ixrna/internal/version"
)

// Energy models and search modes.
const (
	EnergyBasePair = appcore.EnergyBasePair
	EnergyNN       = appcore.EnergyNN

	ModeExact     = appcore.ModeExact
	ModeHeuristic = appcore.ModeHeuristic
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	TargetFiles []string
	QueryFiles  []string
	TSeq        string
	QSeq        string
	Config      string

	// Model
	Temperature float64
	Dangles     int
	NoGU        bool
	NoGUClosure bool
	MaxBPSpan   int // -1 = unlimited
	WindowSize  int // -1 = unlimited
	Energy      string
	Mode        string
	SeedBP      int
	MaxLoop     int // -1 = energy model default

	// Output constraint
	OutNumber  int
	OutMaxE    float64
	OutDeltaE  float64
	OutOverlap string

	// Performance
	Threads int

	// Output
	Output          string // text|tsv|json|jsonl
	Header          bool
	DB              string
	Metrics         string
	ProfileMinE     string
	PairMinE        string
	SpotProb        []string
	SpotProbOut     string
	NoMatchExitCode int

	Quiet   bool
	Version bool

	// Set lists the flags given explicitly; config values never override them.
	Set map[string]bool
}

// Defaults returns the values every flag starts from.
func Defaults() Options {
	return Options{
		Temperature:     37,
		Dangles:         2,
		MaxBPSpan:       -1,
		WindowSize:      -1,
		Energy:          EnergyNN,
		Mode:            ModeExact,
		SeedBP:          1,
		MaxLoop:         -1,
		OutNumber:       1,
		OutMaxE:         0,
		OutDeltaE:       100,
		OutOverlap:      "N",
		Output:          "text",
		Header:          true,
		SpotProbOut:     "spotprob.csv",
		NoMatchExitCode: 1,
	}
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: RNA-RNA interaction prediction (minimum free energy and suboptimals)

Version: %s

Usage of %s:
  %s [options] --target t.fa --query q.fa
  %s [options] --tseq SEQ --qseq SEQ
  %s [options] --query q.fa t1.fa t2.fa...   (positionals are target files)

`, name, version.Version, name, name, name, name)
		fs.PrintDefaults()
	}
	return fs
}

// Parse is the top-level call for CLI parsing.
func Parse() (Options, error) { return ParseArgs(flag.CommandLine, nil) }

// ParseArgs registers and parses all flags, returns an Options struct.
// Flags and positionals may be interleaved; positionals are target files.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	opt := Defaults()
	var help, showExamples bool
	noHeader := false
	var targets, queries, spots stringSlice

	// Input
	fs.Var(&targets, "target", "target FASTA file(s), sequence 1 (repeatable or '-')")
	fs.Var(&targets, "t", "alias of --target")
	fs.Var(&queries, "query", "query FASTA file(s), sequence 2 (repeatable or '-')")
	fs.Var(&queries, "q", "alias of --query")
	fs.StringVar(&opt.TSeq, "tseq", "", "inline target sequence")
	fs.StringVar(&opt.QSeq, "qseq", "", "inline query sequence")
	fs.StringVar(&opt.Config, "config", "", "YAML config file (flags win over it)")

	// Model
	fs.Float64Var(&opt.Temperature, "temperature", opt.Temperature, "temperature in °C")
	fs.IntVar(&opt.Dangles, "dangles", opt.Dangles, "dangling end model: 0 | 1 | 2")
	fs.BoolVar(&opt.NoGU, "no-gu", false, "forbid GU base pairs")
	fs.BoolVar(&opt.NoGUClosure, "no-gu-closure", false, "forbid loops closed by GU pairs")
	fs.IntVar(&opt.MaxBPSpan, "max-bp-span", opt.MaxBPSpan, "max interaction span per sequence (-1 = unlimited)")
	fs.IntVar(&opt.WindowSize, "window-size", opt.WindowSize, "window size capping the span (-1 = unlimited)")
	fs.StringVar(&opt.Energy, "energy", opt.Energy, "energy model: bp | nn")
	fs.StringVar(&opt.Mode, "mode", opt.Mode, "prediction mode: exact | heuristic")
	fs.IntVar(&opt.SeedBP, "seed-bp", opt.SeedBP, "consecutive stacked base pairs required (exact mode)")
	fs.IntVar(&opt.MaxLoop, "max-loop", opt.MaxLoop, "max unpaired bases per side in a loop (-1 = model default)")

	// Output constraint
	fs.IntVar(&opt.OutNumber, "out-number", opt.OutNumber, "max interactions reported per pair")
	fs.IntVar(&opt.OutNumber, "n", opt.OutNumber, "alias of --out-number")
	fs.Float64Var(&opt.OutMaxE, "out-max-e", opt.OutMaxE, "report only energies ≤ this (kcal/mol)")
	fs.Float64Var(&opt.OutDeltaE, "out-delta-e", opt.OutDeltaE, "report only energies ≤ mfe + this (kcal/mol)")
	fs.StringVar(&opt.OutOverlap, "out-overlap", opt.OutOverlap, "allowed overlap of reported interactions: N | T | Q | B")

	// Performance
	fs.IntVar(&opt.Threads, "threads", 0, "parallel predictions (0 = all CPUs)")

	// Output
	fs.StringVar(&opt.Output, "output", opt.Output, "output format: text | tsv | json | jsonl")
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in TSV")
	fs.StringVar(&opt.DB, "db", "", "store interactions in this SQLite file (sqlite builds)")
	fs.StringVar(&opt.Metrics, "metrics", "", "write Prometheus textfile metrics to this path")
	fs.StringVar(&opt.ProfileMinE, "profile-mine", "", "write per-position minimal energies (CSV)")
	fs.StringVar(&opt.PairMinE, "pair-mine", "", "write minimal energy per left boundary pair (CSV)")
	fs.Var(&spots, "spot-prob", "report probability of spot k1:k2 (1-based, repeatable)")
	fs.StringVar(&opt.SpotProbOut, "spot-prob-out", opt.SpotProbOut, "CSV path for --spot-prob")
	fs.IntVar(&opt.NoMatchExitCode, "no-match-exit-code", opt.NoMatchExitCode, "exit code when no interaction is reported")

	fs.BoolVar(&opt.Quiet, "quiet", false, "only log warnings and errors")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand)")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand)")
	fs.BoolVar(&showExamples, "examples", false, "show quickstart examples and exit")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if showExamples {
		return opt, clibase.ErrPrintedAndExitOK
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	posArgs = append(posArgs, fs.Args()...)
	expanded, err := cliutil.ExpandPositionals(posArgs)
	if err != nil {
		return opt, err
	}

	opt.TargetFiles = append([]string(targets), expanded...)
	opt.QueryFiles = queries
	opt.SpotProb = spots
	opt.Header = !noHeader
	opt.Set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { opt.Set[f.Name] = true })
	if opt.Set["t"] {
		opt.Set["target"] = true
	}
	if opt.Set["q"] {
		opt.Set["query"] = true
	}
	if opt.Set["n"] {
		opt.Set["out-number"] = true
	}
	return opt, nil
}

// Validate checks option combinations. It runs after config merging.
func (o Options) Validate() error {
	switch {
	case len(o.TargetFiles) > 0 && o.TSeq != "":
		return errors.New("--target conflicts with --tseq")
	case len(o.QueryFiles) > 0 && o.QSeq != "":
		return errors.New("--query conflicts with --qseq")
	case len(o.TargetFiles) == 0 && o.TSeq == "":
		return errors.New("provide --target or --tseq")
	case len(o.QueryFiles) == 0 && o.QSeq == "":
		return errors.New("provide --query or --qseq")
	}
	if o.Dangles < 0 || o.Dangles > 2 {
		return fmt.Errorf("--dangles must be 0, 1 or 2, got %d", o.Dangles)
	}
	if o.Energy != EnergyBasePair && o.Energy != EnergyNN {
		return fmt.Errorf("invalid --energy %q", o.Energy)
	}
	if o.Mode != ModeExact && o.Mode != ModeHeuristic {
		return fmt.Errorf("invalid --mode %q", o.Mode)
	}
	if o.SeedBP < 1 {
		return errors.New("--seed-bp must be ≥ 1")
	}
	if o.SeedBP > 1 && o.Mode != ModeExact {
		return errors.New("--seed-bp requires --mode exact")
	}
	if o.MaxLoop < -1 {
		return errors.New("--max-loop must be ≥ -1")
	}
	if o.OutNumber < 1 {
		return errors.New("--out-number must be ≥ 1")
	}
	if o.OutDeltaE < 0 {
		return errors.New("--out-delta-e must be ≥ 0")
	}
	if _, _, err := predict.ParseOverlap(o.OutOverlap); err != nil {
		return fmt.Errorf("--out-overlap: %w", err)
	}
	if o.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	switch o.Output {
	case "text", "tsv", "json", "jsonl":
	default:
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	for _, s := range o.SpotProb {
		if _, err := track.ParseSpot(s); err != nil {
			return fmt.Errorf("--spot-prob: %w", err)
		}
	}
	return nil
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
