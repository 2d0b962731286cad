package rating

import (
	"fmt"

	"github.com/ternarybob/valuelens/internal/models"
)

// ScoreValuation values the business on normalized free cash flow against its
// market capitalization.
//
// - Normalized FCF is the mean of the most recent (up to 5) known FCF values
// - FCF yield > 10%: +4, > 8%: +3, > 5%: +2, > 3%: +1
// - Intrinsic value range is 10x / 15x / 20x normalized FCF
// - Upside to the conservative value > 50%: +4, > 30%: +3, > 20%: +2
//
// Score = clamp(raw * 10 / 8, 0, 10)
func ScoreValuation(overview *models.Overview, series []models.ProcessedPeriod) models.ScoreResult {
	if overview == nil || !overview.MarketCapitalization.Valid {
		return models.ScoreResult{Details: []string{"Insufficient data to perform valuation: market capitalization unavailable"}}
	}

	fcf := models.KnownValues(models.Series(series, func(p models.ProcessedPeriod) models.Amount { return p.FreeCashFlow }))
	if len(fcf) < valuationMinFCFPeriods {
		return models.ScoreResult{Details: []string{
			fmt.Sprintf("Insufficient free cash flow data for valuation: %d of %d periods", len(fcf), valuationMinFCFPeriods),
		}}
	}

	normalizedFCF := Mean(fcf[:min(normalizationPeriods, len(fcf))])
	extra := &models.ValuationExtra{NormalizedFCF: &normalizedFCF}

	if normalizedFCF <= 0 {
		return models.ScoreResult{
			Details: []string{fmt.Sprintf("Negative or zero normalized FCF (%.0f), cannot value", normalizedFCF)},
			Extra:   extra,
		}
	}

	marketCap := overview.MarketCapitalization.Value
	if marketCap <= 0 {
		return models.ScoreResult{
			Details: []string{fmt.Sprintf("Invalid market cap (%.0f), cannot value", marketCap)},
			Extra:   extra,
		}
	}

	raw := 0
	var details []string

	fcfYield := normalizedFCF / marketCap
	extra.FCFYield = &fcfYield
	if t, ok := firstAbove(fcfYield, fcfYieldTiers); ok {
		raw += t.points
		details = append(details, fmt.Sprintf("%s: %s FCF yield", t.label, pct(fcfYield)))
	} else {
		details = append(details, fmt.Sprintf("Expensive: only %s FCF yield", pct(fcfYield)))
	}

	valueRange := &models.IntrinsicValueRange{
		Conservative: normalizedFCF * conservativeMultiple,
		Reasonable:   normalizedFCF * reasonableMultiple,
		Optimistic:   normalizedFCF * optimisticMultiple,
	}
	extra.IntrinsicValueRange = valueRange

	upside := (valueRange.Conservative - marketCap) / marketCap
	if t, ok := firstAbove(upside, marginOfSafetyTiers); ok {
		raw += t.points
		details = append(details, fmt.Sprintf("%s: %s upside to conservative value", t.label, pct(upside)))
	} else {
		details = append(details, fmt.Sprintf("Expensive: %s premium to conservative value", pct(-upside)))
	}

	return models.ScoreResult{
		Score:   scaleScore(raw, MaxRawValuation),
		Raw:     raw,
		Details: details,
		Extra:   extra,
	}
}
