package metric

// prefix is the longer length minus the length of the common prefix.
func prefix(a, b string, _ Config) (float64, error) {
	ra, rb := []rune(a), []rune(b)
	n := 0
	for n < len(ra) && n < len(rb) && ra[n] == rb[n] {
		n++
	}
	return float64(max(len(ra), len(rb)) - n), nil
}

// postfix is the longer length minus the length of the common suffix.
func postfix(a, b string, _ Config) (float64, error) {
	ra, rb := []rune(a), []rune(b)
	n := 0
	for n < len(ra) && n < len(rb) && ra[len(ra)-1-n] == rb[len(rb)-1-n] {
		n++
	}
	return float64(max(len(ra), len(rb)) - n), nil
}

func lengthDistance(a, b string, _ Config) (float64, error) {
	return float64(abs(len([]rune(a)) - len([]rune(b)))), nil
}

func identity(a, b string, _ Config) (float64, error) {
	if a == b {
		return 0, nil
	}
	return 1, nil
}

// matrix scores through a similarity matrix; without a custom matrix only
// exact equality matches, so it agrees with identity.
func matrix(a, b string, cfg Config) (float64, error) {
	return identity(a, b, cfg)
}
