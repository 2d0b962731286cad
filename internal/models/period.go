package models

// ProcessedPeriod is one aligned reporting period with passthrough and derived metrics.
// Values are computed once when the period is built and not modified afterwards.
type ProcessedPeriod struct {
	FiscalDateEnding string `json:"fiscal_date_ending" yaml:"fiscal_date_ending"`
	ReportedCurrency string `json:"reported_currency,omitempty" yaml:"reported_currency,omitempty"`
	Annual           bool   `json:"annual" yaml:"annual"`

	Revenue                     Amount `json:"revenue" yaml:"revenue"`
	NetIncome                   Amount `json:"net_income" yaml:"net_income"`
	GrossProfit                 Amount `json:"gross_profit" yaml:"gross_profit"`
	ResearchAndDevelopment      Amount `json:"research_and_development" yaml:"research_and_development"`
	ShareholdersEquity          Amount `json:"shareholders_equity" yaml:"shareholders_equity"`
	TotalDebt                   Amount `json:"total_debt" yaml:"total_debt"`
	CashAndEquivalents          Amount `json:"cash_and_equivalents" yaml:"cash_and_equivalents"`
	OutstandingShares           Amount `json:"outstanding_shares" yaml:"outstanding_shares"`
	GoodwillAndIntangibleAssets Amount `json:"goodwill_and_intangible_assets" yaml:"goodwill_and_intangible_assets"`
	OperatingCashflow           Amount `json:"operating_cashflow" yaml:"operating_cashflow"`
	CapitalExpenditures         Amount `json:"capital_expenditures" yaml:"capital_expenditures"`

	// Derived
	FreeCashFlow            Amount `json:"free_cash_flow" yaml:"free_cash_flow"`
	ReturnOnInvestedCapital Amount `json:"return_on_invested_capital" yaml:"return_on_invested_capital"`
	ReturnOnEquity          Amount `json:"return_on_equity" yaml:"return_on_equity"`
	DebtToEquityRatio       Amount `json:"debt_to_equity_ratio" yaml:"debt_to_equity_ratio"`
	GrossMargin             Amount `json:"gross_margin" yaml:"gross_margin"`
}

// Year returns the four-digit year of the fiscal date, or "N/A"
func (p ProcessedPeriod) Year() string {
	if len(p.FiscalDateEnding) < 4 {
		return "N/A"
	}
	return p.FiscalDateEnding[:4]
}

// Series extracts one metric across periods, preserving order and unknowns
func Series(periods []ProcessedPeriod, metric func(ProcessedPeriod) Amount) []Amount {
	out := make([]Amount, len(periods))
	for i, p := range periods {
		out[i] = metric(p)
	}
	return out
}
