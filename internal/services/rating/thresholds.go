package rating

import "github.com/ternarybob/valuelens/internal/models"

// maxGrowthPeriods caps how many recent known values feed the growth mean
const maxGrowthPeriods = 10

// DefaultGrowthMetrics returns the canonical growth metric set in scoring order
func DefaultGrowthMetrics() []GrowthMetric {
	return []GrowthMetric{
		{Name: "revenue", Value: func(p models.ProcessedPeriod) models.Amount { return p.Revenue }, Excellent: 0.10, Good: 0.05},
		{Name: "shareholders equity", Value: func(p models.ProcessedPeriod) models.Amount { return p.ShareholdersEquity }, Excellent: 0.10, Good: 0.05},
		{Name: "net income", Value: func(p models.ProcessedPeriod) models.Amount { return p.NetIncome }, Excellent: 0.10, Good: 0.05},
		{Name: "operating cash flow", Value: func(p models.ProcessedPeriod) models.Amount { return p.OperatingCashflow }, Excellent: 0.10, Good: 0.05},
		{Name: "free cash flow", Value: func(p models.ProcessedPeriod) models.Amount { return p.FreeCashFlow }, Excellent: 0.10, Good: 0.10},
	}
}

// Moat
const (
	moatMinPeriods       = 3
	marginTrendShare     = 0.7
	marginHealthyAverage = 0.3
)

// capexTiers: mean capex/revenue below limit
var capexTiers = []tier{
	{limit: 0.05, points: 2, label: "Low capital requirements"},
	{limit: 0.10, points: 1, label: "Moderate capital requirements"},
}

// Management
const (
	roicHurdle = 0.10
	roeHurdle  = 0.15
)

// consistencyTiers: share of periods above the hurdle, at or above limit
var consistencyTiers = []tier{
	{limit: 0.8, points: 3, label: "Excellent"},
	{limit: 0.5, points: 2, label: "Good"},
}

// cashConversionTiers: mean FCF/net income above limit
var cashConversionTiers = []tier{
	{limit: 1.1, points: 3, label: "Excellent cash conversion"},
	{limit: 0.9, points: 2, label: "Good cash conversion"},
	{limit: 0.7, points: 1, label: "Moderate cash conversion"},
}

// leverageTiers: most recent D/E below limit
var leverageTiers = []tier{
	{limit: 0.3, points: 3, label: "Conservative debt management"},
	{limit: 0.7, points: 2, label: "Prudent debt management"},
	{limit: 1.5, points: 1, label: "Moderate debt level"},
	{limit: 2.0, points: 0, label: "Elevated debt level"},
	{limit: 3.0, points: -1, label: "High debt level"},
}

const excessiveLeveragePoints = -3

// Cash to revenue bands
const (
	cashIdealLow       = 0.10
	cashIdealHigh      = 0.25
	cashAcceptableLow  = 0.05
	cashAcceptableHigh = 0.40
)

// Share count change against the lookback anchor
const (
	buybackChange  = -0.05
	stableChange   = 0.05
	dilutionChange = 0.20
)

// Valuation
const (
	valuationMinFCFPeriods = 3
	normalizationPeriods   = 5

	conservativeMultiple = 10
	reasonableMultiple   = 15
	optimisticMultiple   = 20
)

// fcfYieldTiers: normalized FCF yield above limit
var fcfYieldTiers = []tier{
	{limit: 0.10, points: 4, label: "Excellent value"},
	{limit: 0.08, points: 3, label: "Good value"},
	{limit: 0.05, points: 2, label: "Fair value"},
	{limit: 0.03, points: 1, label: "Modest value"},
}

// marginOfSafetyTiers: upside to the conservative value above limit. The fair
// band scores nothing but is reported separately from expensive.
var marginOfSafetyTiers = []tier{
	{limit: 0.50, points: 4, label: "Large margin of safety"},
	{limit: 0.30, points: 3, label: "Substantial margin of safety"},
	{limit: 0.20, points: 2, label: "Moderate margin of safety"},
	{limit: -0.10, points: 0, label: "Fair price"},
}

// Label bands
const (
	ThresholdExcellent = 8.0
	ThresholdGood      = 6.0
	ThresholdFair      = 4.0
)
