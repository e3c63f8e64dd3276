package metric

// lcsSeq is the longer length minus the longest common subsequence length.
func lcsSeq(a, b string, _ Config) (float64, error) {
	ra, rb := []rune(a), []rune(b)
	return float64(max(len(ra), len(rb)) - lcsSeqLength(ra, rb)), nil
}

func lcsSeqLength(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// lcsStr is the longer length minus the longest common substring length.
func lcsStr(a, b string, _ Config) (float64, error) {
	ra, rb := []rune(a), []rune(b)
	return float64(max(len(ra), len(rb)) - len(longestCommonSubstring(ra, rb))), nil
}

// longestCommonSubstring returns the earliest longest run of a that also
// occurs in b.
func longestCommonSubstring(a, b []rune) []rune {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	best, end := 0, 0
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > best {
					best, end = curr[j], i
				}
			} else {
				curr[j] = 0
			}
		}
		prev, curr = curr, prev
	}
	return a[end-best : end]
}

// ratcliffObershelp is 1 - 2M/T, where M is the number of characters found
// by recursively matching the longest common substring and the pieces on
// either side of it, and T the total length of both texts.
func ratcliffObershelp(a, b string, _ Config) (float64, error) {
	if a == b {
		return 0, nil
	}
	if a == "" || b == "" {
		return 1, nil
	}
	ra, rb := []rune(a), []rune(b)
	matched := gestaltMatches(ra, rb)
	return 1 - 2*float64(matched)/float64(len(ra)+len(rb)), nil
}

func gestaltMatches(a, b []rune) int {
	sub := longestCommonSubstring(a, b)
	if len(sub) == 0 {
		return 0
	}
	i, j := indexRunes(a, sub), indexRunes(b, sub)
	n := len(sub)
	return gestaltMatches(a[:i], b[:j]) + n + gestaltMatches(a[i+n:], b[j+n:])
}

func indexRunes(s, sub []rune) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if runesEqual(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}
