package metric

import "math"

// The alignment scores below reward a match with 1 and a mismatch with 0.
// They are turned into distances by subtracting the score from the best
// score the pair could reach, so identical texts are at distance 0.

func matchScore(a, b rune) float64 {
	if a == b {
		return 1
	}
	return 0
}

// needlemanWunsch is a global alignment with a linear gap penalty.
func needlemanWunsch(a, b string, cfg Config) (float64, error) {
	ra, rb := []rune(a), []rune(b)
	score := needlemanWunschScore(ra, rb, cfg.GapCost)
	return float64(max(len(ra), len(rb))) - score, nil
}

func needlemanWunschScore(a, b []rune, gap float64) float64 {
	prev := make([]float64, len(b)+1)
	curr := make([]float64, len(b)+1)
	for j := range prev {
		prev[j] = -float64(j) * gap
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = -float64(i) * gap
		for j := 1; j <= len(b); j++ {
			curr[j] = max(
				prev[j-1]+matchScore(a[i-1], b[j-1]),
				prev[j]-gap,
				curr[j-1]-gap,
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// gotoh is a global alignment with affine gaps: opening a gap costs GapOpen,
// each further position GapExtend.
func gotoh(a, b string, cfg Config) (float64, error) {
	ra, rb := []rune(a), []rune(b)
	score := gotohScore(ra, rb, cfg.GapOpen, cfg.GapExtend)
	return float64(min(len(ra), len(rb))) - score, nil
}

func gotohScore(a, b []rune, open, ext float64) float64 {
	inf := math.Inf(-1)
	n := len(b) + 1

	// d ends in a match/mismatch, p in a gap in b, q in a gap in a.
	dPrev, pPrev, qPrev := make([]float64, n), make([]float64, n), make([]float64, n)
	dCurr, pCurr, qCurr := make([]float64, n), make([]float64, n), make([]float64, n)

	dPrev[0], pPrev[0], qPrev[0] = 0, inf, inf
	for j := 1; j < n; j++ {
		dPrev[j] = inf
		pPrev[j] = inf
		qPrev[j] = -open - ext*float64(j-1)
	}

	for i := 1; i <= len(a); i++ {
		dCurr[0] = inf
		pCurr[0] = -open - ext*float64(i-1)
		qCurr[0] = inf
		for j := 1; j < n; j++ {
			dCurr[j] = max(dPrev[j-1], pPrev[j-1], qPrev[j-1]) + matchScore(a[i-1], b[j-1])
			pCurr[j] = max(dPrev[j]-open, pPrev[j]-ext)
			qCurr[j] = max(dCurr[j-1]-open, qCurr[j-1]-ext)
		}
		dPrev, dCurr = dCurr, dPrev
		pPrev, pCurr = pCurr, pPrev
		qPrev, qCurr = qCurr, qPrev
	}
	return max(dPrev[n-1], pPrev[n-1], qPrev[n-1])
}

// smithWaterman is a local alignment scored at the end of both texts.
func smithWaterman(a, b string, cfg Config) (float64, error) {
	ra, rb := []rune(a), []rune(b)
	score := smithWatermanScore(ra, rb, cfg.GapCost)
	return float64(min(len(ra), len(rb))) - score, nil
}

func smithWatermanScore(a, b []rune, gap float64) float64 {
	prev := make([]float64, len(b)+1)
	curr := make([]float64, len(b)+1)
	for i := 1; i <= len(a); i++ {
		curr[0] = 0
		for j := 1; j <= len(b); j++ {
			curr[j] = max(
				0,
				prev[j-1]+matchScore(a[i-1], b[j-1]),
				prev[j]-gap,
				curr[j-1]-gap,
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
