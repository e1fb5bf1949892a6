// internal/output/rows.go
package output

import (
	"fmt"

	"ixrna/pkg/api"
)

// FormatRowTSV returns the TSV columns of one interaction (no trailing newline).
func FormatRowTSV(v api.InteractionV1) string {
	return fmt.Sprintf("%s\t%s\t%d\t%d\t%d\t%d\t%.2f\t%.2f\t%d\t%s\t%s\t%s",
		v.TargetID, v.QueryID,
		v.Start1, v.End1, v.Start2, v.End2,
		v.Energy, v.Hybrid, v.BasePair,
		v.DotBar, v.Subseq1, v.Subseq2,
	)
}
