package alphavantage

import (
	"math"
	"strconv"
	"strings"

	"github.com/ternarybob/valuelens/internal/models"
)

// flatten tags annual and quarterly records and returns them newest-first per frequency,
// annual reports before quarterly ones
func flatten[R any, T any](resp reportsResponse[R], convert func(R, bool) T) []T {
	out := make([]T, 0, len(resp.AnnualReports)+len(resp.QuarterlyReports))
	for _, r := range resp.AnnualReports {
		out = append(out, convert(r, true))
	}
	for _, r := range resp.QuarterlyReports {
		out = append(out, convert(r, false))
	}
	return out
}

func toIncomeStatement(r incomeRecord, annual bool) models.IncomeStatement {
	return models.IncomeStatement{
		FiscalDateEnding:       r.FiscalDateEnding,
		ReportedCurrency:       r.ReportedCurrency,
		Annual:                 annual,
		TotalRevenue:           r.TotalRevenue,
		GrossProfit:            r.GrossProfit,
		OperatingIncome:        r.OperatingIncome,
		NetIncome:              r.NetIncome,
		ResearchAndDevelopment: r.ResearchAndDevelopment,
		EBITDA:                 r.EBITDA,
	}
}

func toBalanceSheet(r balanceRecord, annual bool) models.BalanceSheet {
	return models.BalanceSheet{
		FiscalDateEnding:             r.FiscalDateEnding,
		ReportedCurrency:             r.ReportedCurrency,
		Annual:                       annual,
		TotalAssets:                  r.TotalAssets,
		TotalShareholderEquity:       r.TotalShareholderEquity,
		ShortLongTermDebtTotal:       r.ShortLongTermDebtTotal,
		CashAndCashEquivalents:       r.CashAndCashEquivalentsAtCarryingValue,
		CommonStockSharesOutstanding: r.CommonStockSharesOutstanding,
		Goodwill:                     r.Goodwill,
		IntangibleAssets:             r.IntangibleAssets,
	}
}

// toCashFlow reports capital expenditures as a negative outflow.
// Alpha Vantage publishes them as positive numbers.
func toCashFlow(r cashFlowRecord, annual bool) models.CashFlow {
	capex := r.CapitalExpenditures
	if v, ok := capex.Get(); ok {
		capex = models.AmountOf(-math.Abs(v))
	}
	return models.CashFlow{
		FiscalDateEnding:    r.FiscalDateEnding,
		ReportedCurrency:    r.ReportedCurrency,
		Annual:              annual,
		OperatingCashflow:   r.OperatingCashflow,
		CapitalExpenditures: capex,
	}
}

func toSymbolMatches(resp searchResponse) []models.SymbolMatch {
	out := make([]models.SymbolMatch, 0, len(resp.BestMatches))
	for _, m := range resp.BestMatches {
		score, _ := strconv.ParseFloat(strings.TrimSpace(m.MatchScore), 64)
		out = append(out, models.SymbolMatch{
			Symbol:      m.Symbol,
			Name:        m.Name,
			Type:        m.Type,
			Region:      m.Region,
			MarketOpen:  m.MarketOpen,
			MarketClose: m.MarketClose,
			Timezone:    m.Timezone,
			Currency:    m.Currency,
			MatchScore:  score,
		})
	}
	return out
}

func toOverview(r overviewRecord) *models.Overview {
	return &models.Overview{
		Symbol:                     r.Symbol,
		AssetType:                  r.AssetType,
		Name:                       r.Name,
		Description:                r.Description,
		CIK:                        r.CIK,
		Exchange:                   r.Exchange,
		Currency:                   r.Currency,
		Country:                    r.Country,
		Sector:                     r.Sector,
		Industry:                   r.Industry,
		Address:                    r.Address,
		OfficialSite:               r.OfficialSite,
		FiscalYearEnd:              r.FiscalYearEnd,
		LatestQuarter:              r.LatestQuarter,
		MarketCapitalization:       r.MarketCapitalization,
		EBITDA:                     r.EBITDA,
		PERatio:                    r.PERatio,
		PEGRatio:                   r.PEGRatio,
		BookValue:                  r.BookValue,
		DividendPerShare:           r.DividendPerShare,
		DividendYield:              r.DividendYield,
		EPS:                        r.EPS,
		RevenuePerShareTTM:         r.RevenuePerShareTTM,
		ProfitMargin:               r.ProfitMargin,
		OperatingMarginTTM:         r.OperatingMarginTTM,
		ReturnOnAssetsTTM:          r.ReturnOnAssetsTTM,
		ReturnOnEquityTTM:          r.ReturnOnEquityTTM,
		RevenueTTM:                 r.RevenueTTM,
		GrossProfitTTM:             r.GrossProfitTTM,
		DilutedEPSTTM:              r.DilutedEPSTTM,
		QuarterlyEarningsGrowthYOY: r.QuarterlyEarningsGrowthYOY,
		QuarterlyRevenueGrowthYOY:  r.QuarterlyRevenueGrowthYOY,
		AnalystTargetPrice:         r.AnalystTargetPrice,
		TrailingPE:                 r.TrailingPE,
		ForwardPE:                  r.ForwardPE,
		PriceToSalesRatioTTM:       r.PriceToSalesRatioTTM,
		PriceToBookRatio:           r.PriceToBookRatio,
		EVToRevenue:                r.EVToRevenue,
		EVToEBITDA:                 r.EVToEBITDA,
		Beta:                       r.Beta,
		Week52High:                 r.Week52High,
		Week52Low:                  r.Week52Low,
		MovingAverage50Day:         r.MovingAverage50Day,
		MovingAverage200Day:        r.MovingAverage200Day,
		SharesOutstanding:          r.SharesOutstanding,
		PercentInsiders:            r.PercentInsiders,
		PercentInstitutions:        r.PercentInstitutions,
		DividendDate:               r.DividendDate,
		ExDividendDate:             r.ExDividendDate,
	}
}
