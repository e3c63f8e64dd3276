package selector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baditaflorin/mesi/internal/core/domain"
)

func pair(a, b string) domain.FilePair {
	return domain.FilePair{First: a, Second: b}
}

func sampleSet() *domain.ResultSet {
	return domain.NewResultSet([]domain.Result{
		{Pair: pair("a", "b"), Distance: 2},
		{Pair: pair("a", "c"), Distance: 7},
		{Pair: pair("b", "c"), Distance: 2},
		{Pair: pair("b", "d"), Distance: 0},
	})
}

func distances(rows []domain.Result) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Distance
	}
	return out
}

func TestSelectFiltersInclusive(t *testing.T) {
	rows, fallback := Select(sampleSet(), 2)
	assert.False(t, fallback)
	assert.Equal(t, []float64{2, 2, 0}, distances(rows))
	// ties keep generation order
	assert.Equal(t, pair("a", "b"), rows[0].Pair)
	assert.Equal(t, pair("b", "c"), rows[1].Pair)
}

func TestSelectInfiniteThreshold(t *testing.T) {
	rows, fallback := Select(sampleSet(), math.Inf(1))
	assert.False(t, fallback)
	assert.Equal(t, []float64{7, 2, 2, 0}, distances(rows))
}

func TestSelectFallsBackToEverything(t *testing.T) {
	rows, fallback := Select(sampleSet(), -1)
	assert.True(t, fallback)
	assert.Equal(t, []float64{7, 2, 2, 0}, distances(rows))
}

func TestSelectNaNThreshold(t *testing.T) {
	rows, fallback := Select(sampleSet(), math.NaN())
	assert.False(t, fallback)
	assert.Len(t, rows, 4)
}

func TestSelectEmpty(t *testing.T) {
	rows, fallback := Select(domain.NewResultSet(nil), 1)
	assert.False(t, fallback)
	assert.Empty(t, rows)
}
