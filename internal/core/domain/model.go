package domain

import "math"

// FilePair is an unordered pair of two distinct files, kept in the order the
// pair generator produced it.
type FilePair struct {
	First  string
	Second string
}

// Result holds the distance computed for a single pair.
type Result struct {
	Pair     FilePair
	Distance float64
}

// ResultSet maps every generated pair to its distance. Iteration follows the
// order in which pairs were generated. A ResultSet is never modified once
// NewResultSet returns it.
type ResultSet struct {
	results []Result
	index   map[FilePair]int
}

// NewResultSet builds a ResultSet from results in generation order. A pair
// seen more than once keeps its first distance.
func NewResultSet(results []Result) *ResultSet {
	rs := &ResultSet{
		results: make([]Result, 0, len(results)),
		index:   make(map[FilePair]int, len(results)),
	}
	for _, r := range results {
		if _, ok := rs.index[r.Pair]; ok {
			continue
		}
		rs.index[r.Pair] = len(rs.results)
		rs.results = append(rs.results, r)
	}
	return rs
}

// Len returns the number of pairs in the set.
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.results)
}

// Get returns the distance recorded for pair.
func (rs *ResultSet) Get(pair FilePair) (float64, bool) {
	if rs == nil {
		return 0, false
	}
	i, ok := rs.index[pair]
	if !ok {
		return 0, false
	}
	return rs.results[i].Distance, true
}

// Results returns a copy of the results in generation order.
func (rs *ResultSet) Results() []Result {
	if rs == nil {
		return nil
	}
	out := make([]Result, len(rs.results))
	copy(out, rs.results)
	return out
}

// Average returns the mean distance of results, or NaN when results is empty.
func Average(results []Result) float64 {
	if len(results) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, r := range results {
		sum += r.Distance
	}
	return sum / float64(len(results))
}
