package fundamentals

import (
	"fmt"
	"strings"

	"github.com/ternarybob/valuelens/internal/models"
)

// Alignment selects how the three report kinds are paired into periods
type Alignment string

const (
	// AlignByDate joins balance sheet and cash flow reports to the income statement
	// with the same fiscal date. Unmatched kinds leave their fields unknown.
	AlignByDate Alignment = "date"
	// AlignByPosition zips the three lists by index and trusts that they line up.
	AlignByPosition Alignment = "position"
)

// ParseAlignment validates an alignment name
func ParseAlignment(s string) (Alignment, error) {
	switch Alignment(strings.ToLower(strings.TrimSpace(s))) {
	case AlignByDate, "":
		return AlignByDate, nil
	case AlignByPosition:
		return AlignByPosition, nil
	default:
		return "", fmt.Errorf("unknown alignment: %q (expected date or position)", s)
	}
}

// Misalignment records an index where the report kinds disagree on fiscal date
type Misalignment struct {
	Index    int
	Income   string
	Balance  string
	CashFlow string
}

func (m Misalignment) String() string {
	return fmt.Sprintf("period %d: income=%s balance=%s cash_flow=%s", m.Index, m.Income, m.Balance, m.CashFlow)
}

// FilterByFrequency keeps the reports matching the requested frequency, preserving order
func FilterByFrequency[T models.FinancialReport](reports []T, annual bool) []T {
	filtered := make([]T, 0, len(reports))
	for _, r := range reports {
		if r.IsAnnual() == annual {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// BuildTimeSeries turns the reports of one frequency into processed periods.
// Input lists are expected newest-first and are never re-sorted. The number of
// periods is the length of the shortest filtered list, and each period takes its
// fiscal date from the income statement.
func BuildTimeSeries(set models.ReportSet, annual bool, align Alignment) []models.ProcessedPeriod {
	incomes := FilterByFrequency(set.IncomeStatements, annual)
	balances := FilterByFrequency(set.BalanceSheets, annual)
	cashFlows := FilterByFrequency(set.CashFlows, annual)

	numPeriods := min(len(incomes), len(balances), len(cashFlows))
	series := make([]models.ProcessedPeriod, 0, numPeriods)

	if align == AlignByPosition {
		for i := 0; i < numPeriods; i++ {
			income := NormalizeIncome(incomes[i])
			balance := NormalizeBalance(balances[i])
			cash := NormalizeCashFlow(cashFlows[i])
			series = append(series, NewProcessedPeriod(incomes[i].FiscalDateEnding, annual, &income, &balance, &cash))
		}
		return series
	}

	balanceByDate := indexByDate(balances)
	cashByDate := indexByDate(cashFlows)

	for i := 0; i < numPeriods; i++ {
		date := incomes[i].FiscalDateEnding
		income := NormalizeIncome(incomes[i])

		var balance *BalanceFragment
		if r, ok := balanceByDate[date]; ok {
			f := NormalizeBalance(r)
			balance = &f
		}

		var cash *CashFlowFragment
		if r, ok := cashByDate[date]; ok {
			f := NormalizeCashFlow(r)
			cash = &f
		}

		series = append(series, NewProcessedPeriod(date, annual, &income, balance, cash))
	}

	return series
}

// Misalignments lists the positions, up to the shortest filtered list, where the
// three report kinds carry different fiscal dates
func Misalignments(set models.ReportSet, annual bool) []Misalignment {
	incomes := FilterByFrequency(set.IncomeStatements, annual)
	balances := FilterByFrequency(set.BalanceSheets, annual)
	cashFlows := FilterByFrequency(set.CashFlows, annual)

	var out []Misalignment
	n := min(len(incomes), len(balances), len(cashFlows))
	for i := 0; i < n; i++ {
		income := incomes[i].FiscalDateEnding
		if balances[i].FiscalDateEnding != income || cashFlows[i].FiscalDateEnding != income {
			out = append(out, Misalignment{
				Index:    i,
				Income:   income,
				Balance:  balances[i].FiscalDateEnding,
				CashFlow: cashFlows[i].FiscalDateEnding,
			})
		}
	}
	return out
}

// indexByDate maps fiscal date to report, keeping the first report seen for a date
func indexByDate[T models.FinancialReport](reports []T) map[string]T {
	byDate := make(map[string]T, len(reports))
	for _, r := range reports {
		if _, exists := byDate[r.FiscalDate()]; !exists {
			byDate[r.FiscalDate()] = r
		}
	}
	return byDate
}
