package rating

import (
	"fmt"

	"github.com/ternarybob/valuelens/internal/models"
)

// ScoreGrowth scores the average period-over-period growth of each metric.
//
// Per metric, using up to the 10 most recent known values:
// - mean growth > excellent: +3
// - mean growth > good: +2
// - mean growth > 0: +1
// - otherwise: -1
// - no growth rate computable: 0
//
// Score = clamp(raw * 10 / (metrics * 2), 0, 10)
func ScoreGrowth(series []models.ProcessedPeriod, metrics []GrowthMetric) models.ScoreResult {
	if len(metrics) == 0 {
		return models.ScoreResult{Details: []string{"No growth metrics configured"}}
	}
	details := make([]string, 0, len(metrics))

	raw := 0
	for _, m := range metrics {
		points, detail := scoreGrowthMetric(series, m)
		raw += points
		details = append(details, detail)
	}

	return models.ScoreResult{
		Score:   scaleScore(raw, len(metrics)*MaxRawPerGrowthMetric),
		Raw:     raw,
		Details: details,
	}
}

// scoreGrowthMetric returns the contribution and detail line for one metric
func scoreGrowthMetric(series []models.ProcessedPeriod, m GrowthMetric) (int, string) {
	values := models.KnownValues(models.Series(series, m.Value))
	if len(values) == 0 {
		return 0, fmt.Sprintf("No %s data available", m.Name)
	}
	if len(values) > maxGrowthPeriods {
		values = values[:maxGrowthPeriods]
	}

	rates := GrowthRates(values)
	if len(rates) == 0 {
		return 0, fmt.Sprintf("No %s growth data available", m.Name)
	}

	avg := Mean(rates)
	switch {
	case avg > m.Excellent:
		return 3, fmt.Sprintf("Excellent %s growth: %s", m.Name, pct(avg))
	case avg > m.Good:
		return 2, fmt.Sprintf("Good %s growth: %s", m.Name, pct(avg))
	case avg > 0:
		return 1, fmt.Sprintf("Positive %s growth: %s", m.Name, pct(avg))
	default:
		return -1, fmt.Sprintf("Poor %s growth: %s", m.Name, pct(avg))
	}
}
