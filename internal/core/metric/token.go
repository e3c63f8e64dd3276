package metric

import "math"

// The token metrics treat each text as a multiset of characters.
type counter map[rune]int

func countRunes(s string) counter {
	c := make(counter)
	for _, r := range s {
		c[r]++
	}
	return c
}

func (c counter) size() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

func intersectionSize(a, b counter) int {
	n := 0
	for r, ca := range a {
		if cb, ok := b[r]; ok {
			n += min(ca, cb)
		}
	}
	return n
}

func unionSize(a, b counter) int {
	n := 0
	for r, ca := range a {
		n += max(ca, b[r])
	}
	for r, cb := range b {
		if _, ok := a[r]; !ok {
			n += cb
		}
	}
	return n
}

// setSimilarity handles the shared shortcuts of the token similarities:
// identical texts are fully similar, an empty side is fully dissimilar.
func setSimilarity(a, b string, fn func(ca, cb counter) float64) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	return fn(countRunes(a), countRunes(b))
}

func jaccardSimilarity(a, b string) float64 {
	return setSimilarity(a, b, func(ca, cb counter) float64 {
		return float64(intersectionSize(ca, cb)) / float64(unionSize(ca, cb))
	})
}

func jaccard(a, b string, _ Config) (float64, error) {
	return 1 - jaccardSimilarity(a, b), nil
}

func sorensenDice(a, b string, _ Config) (float64, error) {
	sim := setSimilarity(a, b, func(ca, cb counter) float64 {
		return 2 * float64(intersectionSize(ca, cb)) / float64(ca.size()+cb.size())
	})
	return 1 - sim, nil
}

func tversky(a, b string, cfg Config) (float64, error) {
	sim := setSimilarity(a, b, func(ca, cb counter) float64 {
		inter := float64(intersectionSize(ca, cb))
		denom := inter +
			cfg.TverskyAlpha*(float64(ca.size())-inter) +
			cfg.TverskyBeta*(float64(cb.size())-inter)
		if denom == 0 {
			return 0
		}
		return inter / denom
	})
	return 1 - sim, nil
}

func overlap(a, b string, _ Config) (float64, error) {
	sim := setSimilarity(a, b, func(ca, cb counter) float64 {
		return float64(intersectionSize(ca, cb)) / float64(min(ca.size(), cb.size()))
	})
	return 1 - sim, nil
}

// tanimoto is -log2 of the Jaccard similarity: +Inf for texts sharing nothing.
func tanimoto(a, b string, _ Config) (float64, error) {
	sim := jaccardSimilarity(a, b)
	switch sim {
	case 0:
		return math.Inf(1), nil
	case 1:
		return 0, nil
	}
	return -math.Log2(sim), nil
}

func cosine(a, b string, _ Config) (float64, error) {
	sim := setSimilarity(a, b, func(ca, cb counter) float64 {
		return float64(intersectionSize(ca, cb)) / math.Sqrt(float64(ca.size())*float64(cb.size()))
	})
	return 1 - sim, nil
}

// bag is the size of the larger multiset difference.
func bag(a, b string, _ Config) (float64, error) {
	ca, cb := countRunes(a), countRunes(b)
	inter := intersectionSize(ca, cb)
	return float64(max(ca.size()-inter, cb.size()-inter)), nil
}

// mongeElkan averages, over the characters of a, the best normalized
// Damerau-Levenshtein similarity against any character of b. Between single
// characters that similarity is 1 on equality and 0 otherwise. It is not
// symmetric.
func mongeElkan(a, b string, _ Config) (float64, error) {
	if a == b {
		return 0, nil
	}
	if a == "" || b == "" {
		return 1, nil
	}

	cb := countRunes(b)
	n, total := 0, 0
	for _, r := range a {
		n++
		if _, ok := cb[r]; ok {
			total++
		}
	}
	return 1 - float64(total)/float64(n), nil
}
