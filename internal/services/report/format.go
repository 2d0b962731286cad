// Package report renders evaluation results as tables and markdown
package report

import (
	"fmt"
	"math"

	"github.com/ternarybob/valuelens/internal/models"
)

// Millions formats an amount in millions with one decimal, or "N/A"
func Millions(a models.Amount) string {
	v, ok := a.Get()
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%.1fM", v/1e6)
}

// Percent formats a fraction as a percentage with one decimal, or "N/A"
func Percent(a models.Amount) string {
	v, ok := a.Get()
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", v*100)
}

// Ratio formats a plain ratio with two decimals, or "N/A"
func Ratio(a models.Amount) string {
	v, ok := a.Get()
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", v)
}

// Compact formats large figures with a B/M/K suffix
func Compact(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("%.2fT", v/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.2fK", v/1e3)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// TimeSeriesHeader names the columns of TimeSeriesRows
var TimeSeriesHeader = []string{"Period", "Revenue", "Net Income", "FCF", "Gross Margin", "ROIC", "D/E", "Shares"}

// TimeSeriesRows renders one row per period in the order given
func TimeSeriesRows(periods []models.ProcessedPeriod) [][]string {
	rows := make([][]string, 0, len(periods))
	for _, p := range periods {
		rows = append(rows, []string{
			p.FiscalDateEnding,
			Millions(p.Revenue),
			Millions(p.NetIncome),
			Millions(p.FreeCashFlow),
			Percent(p.GrossMargin),
			Percent(p.ReturnOnInvestedCapital),
			Ratio(p.DebtToEquityRatio),
			Millions(p.OutstandingShares),
		})
	}
	return rows
}
