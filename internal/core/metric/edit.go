package metric

import (
	"fmt"

	"github.com/agnivade/levenshtein"

	"github.com/baditaflorin/mesi/internal/core/domain"
)

// hamming counts differing positions. It is only defined for texts of equal
// length.
func hamming(a, b string, _ Config) (float64, error) {
	ra, rb := []rune(a), []rune(b)
	if len(ra) != len(rb) {
		return 0, fmt.Errorf("%w: hamming needs texts of equal length, got %d and %d",
			domain.ErrMetricPrecondition, len(ra), len(rb))
	}
	return float64(mismatches(ra, rb)), nil
}

// mismatches counts differing positions, treating the tail of the longer
// slice as mismatched.
func mismatches(a, b []rune) int {
	n := 0
	for i := 0; i < max(len(a), len(b)); i++ {
		if i >= len(a) || i >= len(b) || a[i] != b[i] {
			n++
		}
	}
	return n
}

func levenshteinDistance(a, b string, _ Config) (float64, error) {
	return float64(levenshtein.ComputeDistance(a, b)), nil
}

// damerauLevenshtein is the restricted variant (optimal string alignment):
// adjacent transpositions count as one edit, but a substring is never edited
// twice.
func damerauLevenshtein(a, b string, _ Config) (float64, error) {
	return float64(osaDistance([]rune(a), []rune(b))), nil
}

func osaDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev2 := make([]int, len(b)+1)
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				curr[j] = min(curr[j], prev2[j-2]+cost)
			}
		}
		prev2, prev, curr = prev, curr, prev2
	}
	return prev[len(b)]
}
