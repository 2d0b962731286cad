package fundamentals

import "github.com/ternarybob/valuelens/internal/models"

// IncomeFragment is the income statement portion of a processed period
type IncomeFragment struct {
	ReportedCurrency       string
	Revenue                models.Amount
	NetIncome              models.Amount
	GrossProfit            models.Amount
	ResearchAndDevelopment models.Amount
	GrossMargin            models.Amount
}

// BalanceFragment is the balance sheet portion of a processed period
type BalanceFragment struct {
	ShareholdersEquity          models.Amount
	TotalDebt                   models.Amount
	CashAndEquivalents          models.Amount
	OutstandingShares           models.Amount
	GoodwillAndIntangibleAssets models.Amount
}

// CashFlowFragment is the cash flow portion of a processed period
type CashFlowFragment struct {
	OperatingCashflow   models.Amount
	CapitalExpenditures models.Amount
	FreeCashFlow        models.Amount
}

// NormalizeIncome maps an income statement and derives gross margin
func NormalizeIncome(r models.IncomeStatement) IncomeFragment {
	f := IncomeFragment{
		ReportedCurrency:       r.ReportedCurrency,
		Revenue:                r.TotalRevenue,
		NetIncome:              r.NetIncome,
		GrossProfit:            r.GrossProfit,
		ResearchAndDevelopment: r.ResearchAndDevelopment,
	}
	f.GrossMargin = ratio(r.GrossProfit, r.TotalRevenue)
	return f
}

// NormalizeBalance maps a balance sheet. Goodwill and intangibles are summed with
// missing parts counted as zero.
func NormalizeBalance(r models.BalanceSheet) BalanceFragment {
	return BalanceFragment{
		ShareholdersEquity:          r.TotalShareholderEquity,
		TotalDebt:                   r.ShortLongTermDebtTotal,
		CashAndEquivalents:          r.CashAndCashEquivalents,
		OutstandingShares:           r.CommonStockSharesOutstanding,
		GoodwillAndIntangibleAssets: models.AmountOf(r.Goodwill.OrZero() + r.IntangibleAssets.OrZero()),
	}
}

// NormalizeCashFlow maps a cash flow statement and derives free cash flow.
// Capital expenditures are a negative outflow, so FCF is a plain sum.
func NormalizeCashFlow(r models.CashFlow) CashFlowFragment {
	f := CashFlowFragment{
		OperatingCashflow:   r.OperatingCashflow,
		CapitalExpenditures: r.CapitalExpenditures,
	}
	ocf, okOCF := r.OperatingCashflow.Get()
	capex, okCapex := r.CapitalExpenditures.Get()
	if okOCF && okCapex {
		f.FreeCashFlow = models.AmountOf(ocf + capex)
	}
	return f
}

// NewProcessedPeriod combines the fragments for one fiscal date and computes the
// cross-report ratios. A nil fragment leaves its fields unknown.
func NewProcessedPeriod(date string, annual bool, income *IncomeFragment, balance *BalanceFragment, cash *CashFlowFragment) models.ProcessedPeriod {
	p := models.ProcessedPeriod{
		FiscalDateEnding: date,
		Annual:           annual,
	}

	if income != nil {
		p.ReportedCurrency = income.ReportedCurrency
		p.Revenue = income.Revenue
		p.NetIncome = income.NetIncome
		p.GrossProfit = income.GrossProfit
		p.ResearchAndDevelopment = income.ResearchAndDevelopment
		p.GrossMargin = income.GrossMargin
	}

	if balance != nil {
		p.ShareholdersEquity = balance.ShareholdersEquity
		p.TotalDebt = balance.TotalDebt
		p.CashAndEquivalents = balance.CashAndEquivalents
		p.OutstandingShares = balance.OutstandingShares
		p.GoodwillAndIntangibleAssets = balance.GoodwillAndIntangibleAssets
	}

	if cash != nil {
		p.OperatingCashflow = cash.OperatingCashflow
		p.CapitalExpenditures = cash.CapitalExpenditures
		p.FreeCashFlow = cash.FreeCashFlow
	}

	p.ReturnOnInvestedCapital = returnOnInvestedCapital(p.NetIncome, p.ShareholdersEquity, p.TotalDebt)
	p.ReturnOnEquity = ratio(p.NetIncome, p.ShareholdersEquity)
	p.DebtToEquityRatio = ratio(p.TotalDebt, p.ShareholdersEquity)

	return p
}

// ratio divides two known amounts, unknown if either is missing or the divisor is zero
func ratio(numerator, denominator models.Amount) models.Amount {
	n, okN := numerator.Get()
	d, okD := denominator.Get()
	if !okN || !okD || d == 0 {
		return models.Amount{}
	}
	return models.AmountOf(n / d)
}

// returnOnInvestedCapital is net income over equity plus debt, with missing debt as zero
func returnOnInvestedCapital(netIncome, equity, debt models.Amount) models.Amount {
	ni, okNI := netIncome.Get()
	eq, okEq := equity.Get()
	if !okNI || !okEq {
		return models.Amount{}
	}
	invested := eq + debt.OrZero()
	if invested <= 0 {
		return models.Amount{}
	}
	return models.AmountOf(ni / invested)
}
