package pretty

import (
	"strings"
	"testing"

	"ixrna/pkg/api"
)

func TestRenderWithLoops(t *testing.T) {
	// seq1 GCACAG pairs with seq2 (3'→5') CGUUGUC; A and UU are unpaired.
	in := api.InteractionV1{
		TargetID: "t", QueryID: "q",
		Start1: 1, End1: 6, Start2: 7, End2: 1,
		Energy:  -4.2,
		Subseq1: "GCACAG",
		Subseq2: "CUGUUGC",
		Pairs:   [][2]int{{1, 7}, {2, 6}, {4, 3}, {5, 2}, {6, 1}},
	}
	got := Render(in, Options{})
	want := strings.Join([]string{
		"t 1..6  q 7..1  E=-4.20 kcal/mol",
		"5'-  A    -3'",
		"   GC  CAG",
		"   ||  |||",
		"   CG  GUC",
		"3'-  UU   -5'",
		"", "",
	}, "\n")
	if got != want {
		t.Fatalf("render mismatch:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderWithoutPairs(t *testing.T) {
	got := Render(api.InteractionV1{TargetID: "t", QueryID: "q"}, DefaultOptions)
	if !strings.Contains(got, "# (structure not available)") {
		t.Fatalf("unexpected output %q", got)
	}
}
