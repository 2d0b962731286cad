package rating

import (
	"fmt"

	"github.com/ternarybob/valuelens/internal/models"
)

// ScoreManagement scores management quality with the default dilution lookback
func ScoreManagement(series []models.ProcessedPeriod) models.ScoreResult {
	return ScoreManagementWithLookback(series, DefaultDilutionLookback)
}

// ScoreManagementWithLookback scores management quality from a newest-first series.
//
// Factors:
// - ROIC consistency: share of periods with ROIC > 10% (>= 80%: +3, >= 50%: +2, any: +1)
// - ROE consistency: same tiers at 15%
// - Cash conversion: mean FCF/net income over profitable periods (> 1.1: +3, > 0.9: +2, > 0.7: +1)
// - Leverage: most recent D/E (< 0.3: +3, < 0.7: +2, < 1.5: +1, < 2.0: 0, < 3.0: -1, else -3)
// - Cash efficiency: most recent cash/revenue (10-25%: +2, 5-10% or 25-40%: +1)
// - Dilution: shares now vs lookback periods ago (-5% or better: +2, within 5%: +1, > +20%: -1)
//
// Score = clamp(raw * 10 / 16, 0, 10)
func ScoreManagementWithLookback(series []models.ProcessedPeriod, lookback int) models.ScoreResult {
	if len(series) == 0 {
		return models.ScoreResult{Details: []string{"Insufficient data to analyze management quality"}}
	}
	if lookback <= 0 {
		lookback = DefaultDilutionLookback
	}

	raw := 0
	var details []string
	add := func(points int, detail string) {
		raw += points
		details = append(details, detail)
	}

	add(scoreConsistency(series, "ROIC", roicHurdle, func(p models.ProcessedPeriod) models.Amount { return p.ReturnOnInvestedCapital }))
	add(scoreConsistency(series, "ROE", roeHurdle, func(p models.ProcessedPeriod) models.Amount { return p.ReturnOnEquity }))
	add(scoreCashConversion(series))
	add(scoreLeverage(series[0]))
	add(scoreCashEfficiency(series[0]))
	add(scoreDilution(series, lookback))

	return models.ScoreResult{
		Score:   scaleScore(raw, MaxRawManagement),
		Raw:     raw,
		Details: details,
	}
}

// scoreConsistency tiers the share of known values above the hurdle
func scoreConsistency(series []models.ProcessedPeriod, name string, hurdle float64, metric func(models.ProcessedPeriod) models.Amount) (int, string) {
	values := models.KnownValues(models.Series(series, metric))
	if len(values) == 0 {
		return 0, fmt.Sprintf("No %s data available", name)
	}

	above := 0
	for _, v := range values {
		if v > hurdle {
			above++
		}
	}

	share := float64(above) / float64(len(values))
	if t, ok := firstAtLeast(share, consistencyTiers); ok {
		return t.points, fmt.Sprintf("%s %s: >%s in %d/%d periods", t.label, name, pct(hurdle), above, len(values))
	}
	if above > 0 {
		return 1, fmt.Sprintf("Mixed %s: >%s in only %d/%d periods", name, pct(hurdle), above, len(values))
	}
	return 0, fmt.Sprintf("Poor %s: never exceeds %s", name, pct(hurdle))
}

// scoreCashConversion averages FCF/net income over periods with positive net income
func scoreCashConversion(series []models.ProcessedPeriod) (int, string) {
	var ratios []float64
	for _, p := range series {
		ni, okNI := p.NetIncome.Get()
		fcf, okFCF := p.FreeCashFlow.Get()
		if okNI && okFCF && ni > 0 {
			ratios = append(ratios, fcf/ni)
		}
	}
	if len(ratios) == 0 {
		return 0, "Could not calculate FCF to net income ratios"
	}

	avg := Mean(ratios)
	if t, ok := firstAbove(avg, cashConversionTiers); ok {
		return t.points, fmt.Sprintf("%s: FCF/NI ratio of %.2f", t.label, avg)
	}
	return 0, fmt.Sprintf("Poor cash conversion: FCF/NI ratio of only %.2f", avg)
}

// scoreLeverage uses the most recent debt to equity ratio. Non-positive equity
// is treated as the worst leverage band.
func scoreLeverage(latest models.ProcessedPeriod) (int, string) {
	if equity, ok := latest.ShareholdersEquity.Get(); ok && equity <= 0 {
		return excessiveLeveragePoints, fmt.Sprintf("Negative shareholder equity (%s)", latest.ShareholdersEquity)
	}

	ratio, ok := latest.DebtToEquityRatio.Get()
	if !ok {
		return 0, "Missing debt or equity data"
	}

	if t, ok := firstBelow(ratio, leverageTiers); ok {
		return t.points, fmt.Sprintf("%s: D/E ratio of %.2f", t.label, ratio)
	}
	return excessiveLeveragePoints, fmt.Sprintf("Excessive debt level: D/E ratio of %.2f", ratio)
}

// scoreCashEfficiency rates the most recent cash to revenue ratio
func scoreCashEfficiency(latest models.ProcessedPeriod) (int, string) {
	cash, okCash := latest.CashAndEquivalents.Get()
	revenue, okRevenue := latest.Revenue.Get()
	if !okCash || !okRevenue || revenue <= 0 {
		return 0, "Insufficient cash or revenue data"
	}

	ratio := cash / revenue
	switch {
	case ratio >= cashIdealLow && ratio <= cashIdealHigh:
		return 2, fmt.Sprintf("Prudent cash management: cash/revenue ratio of %.2f", ratio)
	case (ratio >= cashAcceptableLow && ratio < cashIdealLow) || (ratio > cashIdealHigh && ratio <= cashAcceptableHigh):
		return 1, fmt.Sprintf("Acceptable cash position: cash/revenue ratio of %.2f", ratio)
	case ratio > cashAcceptableHigh:
		return 0, fmt.Sprintf("Excess cash reserves: cash/revenue ratio of %.2f", ratio)
	default:
		return 0, fmt.Sprintf("Low cash reserves: cash/revenue ratio of %.2f", ratio)
	}
}

// scoreDilution compares the latest share count with the one lookback known
// values earlier. Too few values yields zero rather than an error.
func scoreDilution(series []models.ProcessedPeriod, lookback int) (int, string) {
	shares := models.KnownValues(models.Series(series, func(p models.ProcessedPeriod) models.Amount { return p.OutstandingShares }))
	if len(shares) <= lookback {
		return 0, fmt.Sprintf("Insufficient share count data: need %d periods, have %d", lookback+1, len(shares))
	}

	current := shares[0]
	anchor := shares[lookback]
	if anchor <= 0 {
		return 0, "Insufficient share count data: no positive share count to compare against"
	}

	change := (current - anchor) / anchor
	switch {
	case change <= buybackChange:
		return 2, fmt.Sprintf("Shareholder-friendly: share count down %s over %d periods", pct(-change), lookback)
	case change <= stableChange:
		return 1, fmt.Sprintf("Stable share count: %s change over %d periods", pct(change), lookback)
	case change > dilutionChange:
		return -1, fmt.Sprintf("Concerning dilution: share count up %s over %d periods", pct(change), lookback)
	default:
		return 0, fmt.Sprintf("Moderate share count increase: %s over %d periods", pct(change), lookback)
	}
}
