package metric

import (
	"strings"
	"unicode"
)

func jaro(a, b string, cfg Config) (float64, error) {
	return 1 - jaroSimilarity([]rune(a), []rune(b), false, cfg.PrefixWeight), nil
}

func jaroWinkler(a, b string, cfg Config) (float64, error) {
	return 1 - jaroSimilarity([]rune(a), []rune(b), true, cfg.PrefixWeight), nil
}

func jaroSimilarity(a, b []rune, winklerize bool, prefixWeight float64) float64 {
	if runesEqual(a, b) {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	window := max(len(a), len(b))/2 - 1
	if window < 0 {
		window = 0
	}

	aFlags := make([]bool, len(a))
	bFlags := make([]bool, len(b))
	common := 0
	for i, ch := range a {
		lo := max(0, i-window)
		hi := min(i+window, len(b)-1)
		for j := lo; j <= hi; j++ {
			if !bFlags[j] && b[j] == ch {
				aFlags[i], bFlags[j] = true, true
				common++
				break
			}
		}
	}
	if common == 0 {
		return 0
	}

	transpositions := countTranspositions(a, b, aFlags, func(j int) bool { return bFlags[j] })

	c := float64(common)
	weight := (c/float64(len(a)) + c/float64(len(b)) + (c-float64(transpositions))/c) / 3
	if !winklerize || weight <= 0.7 {
		return weight
	}

	limit := min(len(a), len(b), 4)
	i := 0
	for i < limit && a[i] == b[i] {
		i++
	}
	if i > 0 {
		weight += float64(i) * prefixWeight * (1 - weight)
	}
	return weight
}

// countTranspositions pairs the matched characters of a with those of b in
// order and returns half the number of disagreeing pairs.
func countTranspositions(a, b []rune, aFlags []bool, bMatched func(int) bool) int {
	k, n := 0, 0
	for i, matched := range aFlags {
		if !matched {
			continue
		}
		j := k
		for ; j < len(b); j++ {
			if bMatched(j) {
				k = j + 1
				break
			}
		}
		if j < len(b) && a[i] != b[j] {
			n++
		}
	}
	return n / 2
}

// mlipns is the Modified Language-Independent Product Name Search. It is a
// binary measure: 0 when the texts match within the allowed mismatches,
// otherwise 1.
func mlipns(a, b string, cfg Config) (float64, error) {
	if a == b {
		return 0, nil
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 1, nil
	}

	ham := float64(mismatches(ra, rb))
	maxLen := float64(max(len(ra), len(rb)))
	for m := 0; m <= cfg.MLIPNSMaxMismatches; m++ {
		if maxLen == 0 {
			return 0, nil
		}
		if 1-(maxLen-ham)/maxLen <= cfg.MLIPNSThreshold {
			return 0, nil
		}
		ham--
		maxLen--
	}
	if maxLen == 0 {
		return 0, nil
	}
	return 1, nil
}

// strcmp95Similar lists character pairs commonly confused through phonetic or
// recognition errors; they earn partial credit in strcmp95.
var strcmp95Similar = func() map[[2]rune]bool {
	pairs := []string{
		"AE", "AI", "AO", "AU", "BV", "EI", "EO", "EU", "IO", "IU", "OU", "IY",
		"EY", "CG", "EF", "WU", "WV", "XK", "SZ", "XS", "QC", "UV", "MN", "LI",
		"QO", "PR", "IJ", "2Z", "5S", "8B", "1I", "1L", "0O", "0Q", "CK", "GJ",
	}
	m := make(map[[2]rune]bool, len(pairs)*2)
	for _, p := range pairs {
		r := []rune(p)
		m[[2]rune{r[0], r[1]}] = true
		m[[2]rune{r[1], r[0]}] = true
	}
	return m
}()

func strcmp95(a, b string, _ Config) (float64, error) {
	return 1 - strcmp95Similarity(a, b), nil
}

func strcmp95Similarity(a, b string) float64 {
	s1 := []rune(strings.ToUpper(strings.TrimSpace(a)))
	s2 := []rune(strings.ToUpper(strings.TrimSpace(b)))
	if runesEqual(s1, s2) {
		return 1
	}
	if len(s1) == 0 || len(s2) == 0 {
		return 0
	}

	minLen := min(len(s1), len(s2))
	window := max(max(len(s1), len(s2))/2-1, 0)

	// 0 unmatched, 1 matched, 2 credited as similar.
	f1 := make([]bool, len(s1))
	f2 := make([]int, len(s2))
	common := 0
	for i, ch := range s1 {
		lo := max(i-window, 0)
		hi := min(i+window, len(s2)-1)
		for j := lo; j <= hi; j++ {
			if f2[j] == 0 && s2[j] == ch {
				f2[j] = 1
				f1[i] = true
				common++
				break
			}
		}
	}
	if common == 0 {
		return 0
	}

	transpositions := countTranspositions(s1, s2, f1, func(j int) bool { return f2[j] != 0 })

	similar := 0
	if minLen > common {
		for i, ch := range s1 {
			if f1[i] || !asciiUpperRange(ch) {
				continue
			}
			for j, other := range s2 {
				if f2[j] != 0 || !asciiUpperRange(other) {
					continue
				}
				if !strcmp95Similar[[2]rune{ch, other}] {
					continue
				}
				similar += 3
				f2[j] = 2
				break
			}
		}
	}

	sim := float64(similar)/10 + float64(common)
	weight := (sim/float64(len(s1)) + sim/float64(len(s2)) + float64(common-transpositions)/float64(common)) / 3
	if weight <= 0.7 {
		return weight
	}

	limit := min(minLen, 4)
	i := 0
	for i < limit && s1[i] == s2[i] && !unicode.IsDigit(s1[i]) {
		i++
	}
	if i > 0 {
		weight += float64(i) * 0.1 * (1 - weight)
	}
	return weight
}

func asciiUpperRange(r rune) bool {
	return r > 0 && r < 91
}

var editexGroups = []string{"AEIOUY", "BP", "CKQ", "DT", "LR", "MN", "GJ", "FPV", "SXZ", "CSZ"}

const (
	editexMatchCost    = 0
	editexGroupCost    = 1
	editexMismatchCost = 2
	editexUngrouped    = "HW"
)

// editexCost is the replacement cost between two letters.
func editexCost(x, y rune) int {
	if x == y {
		return editexMatchCost
	}
	for _, g := range editexGroups {
		if strings.ContainsRune(g, x) && strings.ContainsRune(g, y) {
			return editexGroupCost
		}
	}
	return editexMismatchCost
}

// editexDeleteCost is the cost of deleting cur when it follows prev.
func editexDeleteCost(prev, cur rune) int {
	if prev != cur && strings.ContainsRune(editexUngrouped, prev) {
		return editexGroupCost
	}
	return editexCost(prev, cur)
}

// editex is an edit distance where letters from the same phonetic group are
// cheaper to substitute. The result is capped at twice the longer length.
func editex(a, b string, _ Config) (float64, error) {
	la, lb := len([]rune(a)), len([]rune(b))
	limit := max(la, lb) * editexMismatchCost
	if a == b {
		return 0, nil
	}
	if la == 0 || lb == 0 {
		return float64(limit), nil
	}

	s1 := []rune(" " + strings.ToUpper(a))
	s2 := []rune(" " + strings.ToUpper(b))
	n1, n2 := len(s1)-1, len(s2)-1

	prev := make([]int, n2+1)
	curr := make([]int, n2+1)
	for j := 1; j <= n2; j++ {
		prev[j] = prev[j-1] + editexDeleteCost(s2[j-1], s2[j])
	}
	for i := 1; i <= n1; i++ {
		curr[0] = prev[0] + editexDeleteCost(s1[i-1], s1[i])
		for j := 1; j <= n2; j++ {
			curr[j] = min(
				prev[j]+editexDeleteCost(s1[i-1], s1[i]),
				curr[j-1]+editexDeleteCost(s2[j-1], s2[j]),
				prev[j-1]+editexCost(s1[i], s2[j]),
			)
		}
		prev, curr = curr, prev
	}
	return float64(min(prev[n2], limit)), nil
}

// mraCodex reduces a word to its Match Rating Approach codex: upper case,
// vowels dropped after the first letter, repeats collapsed, and at most the
// first and last three letters kept.
func mraCodex(word string) []rune {
	if word == "" {
		return nil
	}
	up := []rune(strings.ToUpper(word))
	kept := []rune{up[0]}
	for _, r := range up[1:] {
		if !strings.ContainsRune("AEIOU", r) {
			kept = append(kept, r)
		}
	}
	codex := make([]rune, 0, len(kept))
	for i, r := range kept {
		if i == 0 || r != kept[i-1] {
			codex = append(codex, r)
		}
	}
	if len(codex) > 6 {
		out := make([]rune, 0, 6)
		out = append(out, codex[:3]...)
		return append(out, codex[len(codex)-3:]...)
	}
	return codex
}

// mra compares the Match Rating Approach codices of both texts. The distance
// is the longer codex length minus the number of matched codex letters.
func mra(a, b string, _ Config) (float64, error) {
	c1, c2 := mraCodex(a), mraCodex(b)
	maximum := float64(max(len(c1), len(c2)))
	return maximum - mraSimilarity(a, b, c1, c2), nil
}

func mraSimilarity(a, b string, c1, c2 []rune) float64 {
	if a == "" || b == "" {
		return 0
	}
	maxLen := max(len(c1), len(c2))
	if abs(len(c1)-len(c2)) > 2 {
		return 0
	}

	// Two passes: drop the letters that agree position by position, then
	// compare what is left.
	for pass := 0; pass < 2; pass++ {
		n := min(len(c1), len(c2))
		var r1, r2 []rune
		for i := 0; i < n; i++ {
			if c1[i] != c2[i] {
				r1 = append(r1, c1[i])
				r2 = append(r2, c2[i])
			}
		}
		c1 = append(r1, c1[n:]...)
		c2 = append(r2, c2[n:]...)
	}
	return float64(maxLen - max(len(c1), len(c2)))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
