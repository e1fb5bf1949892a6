// pkg/api/interaction_v1.go
package api

// InteractionV1 is the stable JSON/JSONL schema for one reported interaction.
// Positions are 1-based and inclusive; seq-2 positions are in natural
// orientation, so Start2 > End2 for an antiparallel duplex.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type InteractionV1 struct {
	RunID    string   `json:"run_id"`
	Rank     int      `json:"rank"` // 1 = mfe of the pair
	TargetID string   `json:"target_id"`
	QueryID  string   `json:"query_id"`
	Start1   int      `json:"start1"`
	End1     int      `json:"end1"`
	Start2   int      `json:"start2"`
	End2     int      `json:"end2"`
	Energy   float64  `json:"energy"`
	Hybrid   float64  `json:"hybrid_energy"`
	BasePair int      `json:"base_pairs"`
	DotBar   string   `json:"dot_bar"`
	Subseq1  string   `json:"subseq1,omitempty"`
	Subseq2  string   `json:"subseq2,omitempty"`
	Pairs    [][2]int `json:"pairs,omitempty"` // (seq1 pos, seq2 pos), 1-based natural
}
