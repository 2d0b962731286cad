package rating

import (
	"fmt"
	"math"

	"github.com/ternarybob/valuelens/internal/models"
)

// ScoreMoat scores competitive advantage from a newest-first series.
//
// Factors:
// - Pricing power: gross margin non-decreasing over time in >= 70% of steps (+2),
//   else average margin > 30% (+1). Needs 3 known margins.
// - Capital intensity: mean |capex|/revenue < 5% (+2), < 10% (+1). Needs 3 periods.
// - R&D investment: total R&D > 0 (+1)
// - Intangibles: any goodwill/intangible figure reported (+1)
//
// Score = clamp(raw * 10 / 6, 0, 10)
func ScoreMoat(series []models.ProcessedPeriod) models.ScoreResult {
	if len(series) == 0 {
		return models.ScoreResult{Details: []string{"Insufficient data to analyze moat strength"}}
	}

	raw := 0
	var details []string

	points, detail := scorePricingPower(series)
	raw += points
	details = append(details, detail)

	points, detail = scoreCapitalIntensity(series)
	raw += points
	details = append(details, detail)

	rnd := models.KnownValues(models.Series(series, func(p models.ProcessedPeriod) models.Amount { return p.ResearchAndDevelopment }))
	if Sum(rnd) > 0 {
		raw++
		details = append(details, "Invests in R&D, building intellectual property")
	} else {
		details = append(details, "No R&D investment reported")
	}

	intangibles := models.KnownValues(models.Series(series, func(p models.ProcessedPeriod) models.Amount { return p.GoodwillAndIntangibleAssets }))
	if len(intangibles) > 0 {
		raw++
		details = append(details, fmt.Sprintf("Goodwill/intangible assets reported in %d periods, suggesting brand value or IP", len(intangibles)))
	} else {
		details = append(details, "No goodwill or intangible asset data")
	}

	return models.ScoreResult{
		Score:   scaleScore(raw, MaxRawMoat),
		Raw:     raw,
		Details: details,
	}
}

// scorePricingPower evaluates the gross margin trend. The series is newest-first,
// so a step is non-decreasing when the newer margin is at least the older one.
func scorePricingPower(series []models.ProcessedPeriod) (int, string) {
	margins := models.KnownValues(models.Series(series, func(p models.ProcessedPeriod) models.Amount { return p.GrossMargin }))
	if len(margins) < moatMinPeriods {
		return 0, "Insufficient gross margin data"
	}

	steps := len(margins) - 1
	holding := 0
	for i := 1; i < len(margins); i++ {
		if margins[i-1] >= margins[i] {
			holding++
		}
	}

	if float64(holding) >= float64(steps)*marginTrendShare {
		return 2, fmt.Sprintf("Strong pricing power: gross margin held or improved in %d/%d periods", holding, steps)
	}

	avg := Mean(margins)
	if avg > marginHealthyAverage {
		return 1, fmt.Sprintf("Good pricing power: average gross margin %s", pct(avg))
	}
	return 0, fmt.Sprintf("Limited pricing power: average gross margin %s, held or improved in %d/%d periods", pct(avg), holding, steps)
}

// scoreCapitalIntensity evaluates capex as a share of revenue
func scoreCapitalIntensity(series []models.ProcessedPeriod) (int, string) {
	if len(series) < moatMinPeriods {
		return 0, "Insufficient data for capital intensity analysis"
	}

	var ratios []float64
	for _, p := range series {
		capex, okCapex := p.CapitalExpenditures.Get()
		revenue, okRevenue := p.Revenue.Get()
		if okCapex && okRevenue && revenue > 0 {
			ratios = append(ratios, math.Abs(capex)/revenue)
		}
	}
	if len(ratios) == 0 {
		return 0, "No capital expenditure data available"
	}

	avg := Mean(ratios)
	if t, ok := firstBelow(avg, capexTiers); ok {
		return t.points, fmt.Sprintf("%s: avg capex %s of revenue", t.label, pct(avg))
	}
	return 0, fmt.Sprintf("High capital requirements: avg capex %s of revenue", pct(avg))
}
