// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"ixrna-core/interaction"
	"ixrna/pkg/api"
)

// ToAPI converts a traced interaction to the stable wire schema (v1).
// Seq-2 coordinates are flipped back to natural orientation.
func ToAPI(runID string, rank int, in interaction.Interaction) api.InteractionV1 {
	v := api.InteractionV1{
		RunID:    runID,
		Rank:     rank,
		TargetID: in.Seq1ID,
		QueryID:  in.Seq2ID,
		Start1:   in.I1 + 1,
		End1:     in.J1 + 1,
		Start2:   in.Natural2(in.I2) + 1,
		End2:     in.Natural2(in.J2) + 1,
		Energy:   in.Energy,
		Hybrid:   in.Hybrid,
		BasePair: len(in.Pairs),
	}
	if len(in.Pairs) > 0 {
		v.DotBar = in.DotBar()
		v.Pairs = make([][2]int, 0, len(in.Pairs))
		for _, p := range in.Pairs {
			v.Pairs = append(v.Pairs, [2]int{p.K1 + 1, in.Natural2(p.K2) + 1})
		}
	}
	if in.J1 < len(in.Seq1) {
		v.Subseq1 = in.Seq1[in.I1 : in.J1+1]
	}
	if lo, hi := in.Natural2(in.J2), in.Natural2(in.I2); lo >= 0 && hi < len(in.Seq2) {
		v.Subseq2 = in.Seq2[lo : hi+1]
	}
	return v
}

// WriteJSON writes a single JSON array of v1 interactions (pretty-indented).
func WriteJSON(w io.Writer, list []api.InteractionV1) error {
	if list == nil {
		list = []api.InteractionV1{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}
