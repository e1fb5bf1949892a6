// internal/pretty/pretty.go
package pretty

import (
	"fmt"
	"strings"

	"ixrna/pkg/api"
)

// Options control the ASCII rendering.
type Options struct {
	PairGlyph string // default "|"
	Prefix    string // prepended to every line; default "# "
}

// DefaultOptions is the look used by the text writer.
var DefaultOptions = Options{PairGlyph: "|", Prefix: "# "}

func reverseString(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

func pad(s string, w int) string { return s + strings.Repeat(" ", w-len(s)) }

// Render draws the duplex with sequence 1 on top (5'→3') and sequence 2
// below (3'→5'). Unpaired bases sit on the outer rows, paired bases and
// bars on the inner rows:
//
//	5'-  A    -3'
//	   GC  CAG
//	   ||  |||
//	   CG  GUC
//	3'-  UU   -5'
func Render(in api.InteractionV1, opt Options) string {
	glyph := opt.PairGlyph
	if glyph == "" {
		glyph = DefaultOptions.PairGlyph
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s %d..%d  %s %d..%d  E=%.2f kcal/mol\n",
		opt.Prefix, in.TargetID, in.Start1, in.End1, in.QueryID, in.Start2, in.End2, in.Energy)

	s1, s2 := in.Subseq1, reverseString(in.Subseq2)
	if len(in.Pairs) == 0 || s1 == "" || s2 == "" {
		fmt.Fprintf(&b, "%s(structure not available)\n\n", opt.Prefix)
		return b.String()
	}

	var rows [5]strings.Builder
	rows[0].WriteString("5'-")
	rows[4].WriteString("3'-")
	for r := 1; r < 4; r++ {
		rows[r].WriteString("   ")
	}
	prev1, prev2 := -1, -1
	for _, p := range in.Pairs {
		o1, o2 := p[0]-in.Start1, in.Start2-p[1]
		if o1 < 0 || o1 >= len(s1) || o2 < 0 || o2 >= len(s2) {
			fmt.Fprintf(&b, "%s(pair %d:%d outside interaction)\n\n", opt.Prefix, p[0], p[1])
			return b.String()
		}
		if prev1 >= 0 {
			u1, u2 := s1[prev1+1:o1], s2[prev2+1:o2]
			w := max(len(u1), len(u2))
			rows[0].WriteString(pad(u1, w))
			for r := 1; r < 4; r++ {
				rows[r].WriteString(strings.Repeat(" ", w))
			}
			rows[4].WriteString(pad(u2, w))
		}
		rows[0].WriteByte(' ')
		rows[1].WriteByte(s1[o1])
		rows[2].WriteString(glyph)
		rows[3].WriteByte(s2[o2])
		rows[4].WriteByte(' ')
		prev1, prev2 = o1, o2
	}
	rows[0].WriteString("-3'")
	rows[4].WriteString("-5'")
	for r := range rows {
		b.WriteString(opt.Prefix)
		b.WriteString(strings.TrimRight(rows[r].String(), " "))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}
