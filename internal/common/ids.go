// internal/common/ids.go
package common

import "ixrna-core/fasta"

// DuplicateIDs returns record IDs that occur more than once, in order of
// their second occurrence. Output rows are keyed by ID, so duplicates make
// results ambiguous.
func DuplicateIDs(recs []fasta.Record) []string {
	seen := make(map[string]int, len(recs))
	var dups []string
	for _, r := range recs {
		seen[r.ID]++
		if seen[r.ID] == 2 {
			dups = append(dups, r.ID)
		}
	}
	return dups
}
