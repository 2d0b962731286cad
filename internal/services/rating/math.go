package rating

import (
	"fmt"
	"math"
)

// Mean calculates the arithmetic mean
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Sum adds the values
func Sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// ClampFloat64 constrains a value to a range
func ClampFloat64(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// GrowthRates computes period-over-period growth for a newest-first series.
// Pairs with a zero predecessor are skipped.
func GrowthRates(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	rates := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		prev := values[i]
		curr := values[i-1]
		if prev == 0 {
			continue
		}
		rates = append(rates, (curr-prev)/math.Abs(prev))
	}
	return rates
}

// scaleScore maps raw points onto 0-10 given the maximum achievable raw score
func scaleScore(raw, maxRaw int) float64 {
	if maxRaw <= 0 {
		return 0
	}
	return ClampFloat64(float64(raw)*10/float64(maxRaw), 0, 10)
}

// firstAbove returns the first tier whose limit the value strictly exceeds
func firstAbove(value float64, tiers []tier) (tier, bool) {
	for _, t := range tiers {
		if value > t.limit {
			return t, true
		}
	}
	return tier{}, false
}

// firstAtLeast returns the first tier whose limit the value meets or exceeds
func firstAtLeast(value float64, tiers []tier) (tier, bool) {
	for _, t := range tiers {
		if value >= t.limit {
			return t, true
		}
	}
	return tier{}, false
}

// firstBelow returns the first tier whose limit the value is strictly under
func firstBelow(value float64, tiers []tier) (tier, bool) {
	for _, t := range tiers {
		if value < t.limit {
			return t, true
		}
	}
	return tier{}, false
}

// pct formats a ratio as a percentage with one decimal
func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}
