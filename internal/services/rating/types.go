// Package rating provides the value-investing scorers for a fundamental time series.
// All functions are stateless and perform no I/O.
package rating

import "github.com/ternarybob/valuelens/internal/models"

// ScoreLabel is the qualitative band for a 0-10 score
type ScoreLabel string

const (
	LabelExcellent ScoreLabel = "Excellent"
	LabelGood      ScoreLabel = "Good"
	LabelFair      ScoreLabel = "Fair"
	LabelPoor      ScoreLabel = "Poor"
)

// Maximum raw points per scorer, used to scale onto 0-10
const (
	MaxRawMoat       = 6
	MaxRawManagement = 16
	MaxRawValuation  = 8

	// MaxRawPerGrowthMetric is the divisor weight per growth metric
	MaxRawPerGrowthMetric = 2
)

// DefaultDilutionLookback is how many periods back the share count is compared
const DefaultDilutionLookback = 5

// GrowthMetric configures one series for the growth scorer
type GrowthMetric struct {
	Name      string
	Value     func(models.ProcessedPeriod) models.Amount
	Excellent float64
	Good      float64
}

// tier awards points when a value clears limit. Whether "clears" means above or
// below depends on the table it sits in.
type tier struct {
	limit  float64
	points int
	label  string
}
