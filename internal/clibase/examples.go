// internal/clibase/examples.go
package clibase

import (
	"errors"
	"fmt"
	"io"
)

// ErrPrintedAndExitOK is returned by ParseArgs when the caller requested examples.
// Apps should catch this and exit 0 after printing examples.
var ErrPrintedAndExitOK = errors.New("examples requested")

// PrintExamples prints a small quickstart header and body, followed by a
// one-line tip to discover full help.
func PrintExamples(out io.Writer, name string, body func(io.Writer)) {
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, "%s: quickstart\n\n", name)
	if body != nil {
		body(out)
	}
	_, _ = fmt.Fprintln(out, "\nTip: run with -h for all flags.")
}

// Examples is the ixrna quickstart body.
func Examples(out io.Writer) {
	_, _ = fmt.Fprint(out, `  # minimum free energy interaction of two inline sequences
  ixrna --tseq GGAGGUAAGCU --qseq AGCUUACCUCC

  # up to 5 non-overlapping interactions per pair, as TSV
  ixrna -t mrna.fa -q srna.fa -n 5 --output tsv

  # suboptimals within 2 kcal/mol of the mfe, overlap allowed on the target
  ixrna -t mrna.fa -q srna.fa -n 10 --out-delta-e 2 --out-overlap T

  # fast heuristic with the base-pair model, JSONL for downstream tools
  ixrna -t mrna.fa -q srna.fa --mode heuristic --energy bp --output jsonl

  # per-position minimal energies and a spot probability as CSV
  ixrna -t mrna.fa -q srna.fa --profile-mine profile.csv --spot-prob 10:5
`)
}
