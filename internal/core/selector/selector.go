// Package selector picks and orders the results to display.
package selector

import (
	"math"
	"sort"

	"github.com/baditaflorin/mesi/internal/core/domain"
)

// Select keeps the results whose distance is at most threshold, ordered by
// descending distance with ties in generation order. When nothing passes,
// every result is returned and usedFallback is true. A NaN threshold
// accepts everything.
func Select(results *domain.ResultSet, threshold float64) (rows []domain.Result, usedFallback bool) {
	all := results.Results()
	if math.IsNaN(threshold) {
		threshold = math.Inf(1)
	}

	rows = make([]domain.Result, 0, len(all))
	for _, r := range all {
		if r.Distance <= threshold {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 && len(all) > 0 {
		rows, usedFallback = all, true
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Distance > rows[j].Distance
	})
	return rows, usedFallback
}
