package cliutil

import (
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSplitFlagsAndPositionals(t *testing.T) {
	fs := flag.NewFlagSet("x", flag.ContinueOnError)
	var b bool
	var n float64
	fs.BoolVar(&b, "quiet", false, "")
	fs.Float64Var(&n, "out-max-e", 0, "")
	flagArgs, posArgs := SplitFlagsAndPositionals(fs,
		[]string{"t1.fa", "--quiet", "--out-max-e", "-2.5", "-", "--n=3", "--", "--odd.fa"})
	if want := []string{"--quiet", "--out-max-e", "-2.5", "--n=3"}; !reflect.DeepEqual(flagArgs, want) {
		t.Fatalf("flags %v, want %v", flagArgs, want)
	}
	if want := []string{"t1.fa", "-", "--odd.fa"}; !reflect.DeepEqual(posArgs, want) {
		t.Fatalf("positionals %v, want %v", posArgs, want)
	}
}

func TestExpandPositionals(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.fa", "b.fa"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte(">a\nA\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := ExpandPositionals([]string{filepath.Join(dir, "*.fa"), "-"})
	if err != nil || len(got) != 3 || got[2] != "-" {
		t.Fatalf("expand: err=%v got=%v", err, got)
	}
	if _, err := ExpandPositionals([]string{filepath.Join(dir, "*.gb")}); err == nil {
		t.Fatal("expected error for unmatched glob")
	}
}
