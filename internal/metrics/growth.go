package metrics

import "math"

// Growth is the period-over-period growth percentage with integer rounding.
// Zero handling is asymmetric on purpose: 0 → positive counts as +100%,
// 0 → 0 as 0%.
func Growth(current, previous int64) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round(float64(current-previous) / float64(previous) * 100))
}

// GrowthOneDecimal is the one-decimal variant used by the revenue trend
// figure. It keeps the same zero handling but rounds to a single decimal
// place. The two conventions are distinct by design; do not unify them.
func GrowthOneDecimal(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return math.Round((current-previous)/previous*1000) / 10
}
