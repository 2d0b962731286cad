package models

import "time"

// ReportSet groups the three per-period report kinds for one symbol.
// Each list is expected newest-first.
type ReportSet struct {
	IncomeStatements []IncomeStatement
	BalanceSheets    []BalanceSheet
	CashFlows        []CashFlow
}

// FundamentalData is everything known about one symbol
type FundamentalData struct {
	Symbol           string            `json:"symbol"`
	Overview         *Overview         `json:"overview,omitempty"`
	IncomeStatements []IncomeStatement `json:"income_statement"`
	BalanceSheets    []BalanceSheet    `json:"balance_sheet"`
	CashFlows        []CashFlow        `json:"cash_flow"`
	LastUpdated      time.Time         `json:"last_updated"`
}

// Reports returns the per-period reports as a ReportSet
func (d *FundamentalData) Reports() ReportSet {
	return ReportSet{
		IncomeStatements: d.IncomeStatements,
		BalanceSheets:    d.BalanceSheets,
		CashFlows:        d.CashFlows,
	}
}
