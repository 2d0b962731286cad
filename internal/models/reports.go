package models

import (
	"fmt"
	"strings"
)

// ReportKind identifies a class of fundamental data held per symbol
type ReportKind string

const (
	KindOverview        ReportKind = "overview"
	KindIncomeStatement ReportKind = "income_statement"
	KindBalanceSheet    ReportKind = "balance_sheet"
	KindCashFlow        ReportKind = "cash_flow"
)

// AllReportKinds lists every kind in retrieval order
var AllReportKinds = []ReportKind{KindOverview, KindIncomeStatement, KindBalanceSheet, KindCashFlow}

// ParseReportKind validates a kind name
func ParseReportKind(s string) (ReportKind, error) {
	kind := ReportKind(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range AllReportKinds {
		if k == kind {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown report kind: %q", s)
}

// Frequency is the reporting interval of a financial report
type Frequency string

const (
	FrequencyAnnual    Frequency = "annual"
	FrequencyQuarterly Frequency = "quarterly"
)

// ParseFrequency accepts "annual" or "quarterly" (case-insensitive)
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "annual", "yearly", "":
		return FrequencyAnnual, nil
	case "quarterly", "quarter":
		return FrequencyQuarterly, nil
	default:
		return "", fmt.Errorf("unknown frequency: %q", s)
	}
}

// IsAnnual reports whether the frequency selects annual reports
func (f Frequency) IsAnnual() bool {
	return f != FrequencyQuarterly
}

// FinancialReport is implemented by every per-period report kind
type FinancialReport interface {
	FiscalDate() string
	IsAnnual() bool
}

// IncomeStatement is one period of income statement data
type IncomeStatement struct {
	FiscalDateEnding       string `json:"fiscal_date_ending"`
	ReportedCurrency       string `json:"reported_currency"`
	Annual                 bool   `json:"annual"`
	TotalRevenue           Amount `json:"total_revenue"`
	GrossProfit            Amount `json:"gross_profit"`
	OperatingIncome        Amount `json:"operating_income"`
	NetIncome              Amount `json:"net_income"`
	ResearchAndDevelopment Amount `json:"research_and_development"`
	EBITDA                 Amount `json:"ebitda"`
}

func (r IncomeStatement) FiscalDate() string { return r.FiscalDateEnding }
func (r IncomeStatement) IsAnnual() bool     { return r.Annual }

// BalanceSheet is one period of balance sheet data
type BalanceSheet struct {
	FiscalDateEnding             string `json:"fiscal_date_ending"`
	ReportedCurrency             string `json:"reported_currency"`
	Annual                       bool   `json:"annual"`
	TotalAssets                  Amount `json:"total_assets"`
	TotalShareholderEquity       Amount `json:"total_shareholder_equity"`
	ShortLongTermDebtTotal       Amount `json:"short_long_term_debt_total"`
	CashAndCashEquivalents       Amount `json:"cash_and_cash_equivalents"`
	CommonStockSharesOutstanding Amount `json:"common_stock_shares_outstanding"`
	Goodwill                     Amount `json:"goodwill"`
	IntangibleAssets             Amount `json:"intangible_assets"`
}

func (r BalanceSheet) FiscalDate() string { return r.FiscalDateEnding }
func (r BalanceSheet) IsAnnual() bool     { return r.Annual }

// CashFlow is one period of cash flow statement data.
// CapitalExpenditures is reported as a negative outflow.
type CashFlow struct {
	FiscalDateEnding    string `json:"fiscal_date_ending"`
	ReportedCurrency    string `json:"reported_currency"`
	Annual              bool   `json:"annual"`
	OperatingCashflow   Amount `json:"operating_cashflow"`
	CapitalExpenditures Amount `json:"capital_expenditures"`
}

func (r CashFlow) FiscalDate() string { return r.FiscalDateEnding }
func (r CashFlow) IsAnnual() bool     { return r.Annual }
