// core/seq/validate.go
package seq

import (
	"fmt"
	"unicode"
)

// Allowed nucleotide codes. T is accepted on input and stored as U.
var alphabet = map[rune]bool{
	'A': true, 'C': true, 'G': true, 'U': true, 'N': true,
}

// Normalize removes spaces/quotes, uppercases bases and maps T→U.
func Normalize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '\'' || r == '"' {
			continue
		}
		r = unicode.ToUpper(r)
		if r == 'T' {
			r = 'U'
		}
		out = append(out, r)
	}
	return string(out)
}

// Validate returns a normalized sequence or an error if any char is not ACGU(T)N.
func Validate(raw string) (string, error) {
	s := Normalize(raw)
	if s == "" {
		return s, fmt.Errorf("empty sequence")
	}
	for i, r := range s {
		if !alphabet[r] {
			return "", fmt.Errorf("invalid base %q at %d; allowed: A C G U T N", r, i+1)
		}
	}
	return s, nil
}

// Reverse returns s read 3'→5'.
func Reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// IsWatsonCrick reports canonical GC/CG/AU/UA pairs.
func IsWatsonCrick(a, b byte) bool {
	switch a {
	case 'A':
		return b == 'U'
	case 'U':
		return b == 'A'
	case 'C':
		return b == 'G'
	case 'G':
		return b == 'C'
	}
	return false
}

// IsWobble reports GU/UG pairs.
func IsWobble(a, b byte) bool { return (a == 'G' && b == 'U') || (a == 'U' && b == 'G') }

// CanPair reports whether a and b form a complementary pair; wobble pairs
// are allowed unless noGU is set.
func CanPair(a, b byte, noGU bool) bool {
	if IsWatsonCrick(a, b) {
		return true
	}
	return !noGU && IsWobble(a, b)
}

// IsGC reports GC/CG pairs.
func IsGC(a, b byte) bool { return (a == 'G' && b == 'C') || (a == 'C' && b == 'G') }

// IsPurine reports A/G.
func IsPurine(b byte) bool { return b == 'A' || b == 'G' }
