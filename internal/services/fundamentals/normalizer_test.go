package fundamentals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/valuelens/internal/models"
)

func amt(v float64) models.Amount { return models.AmountOf(v) }

func TestNormalizeCashFlow_FreeCashFlow(t *testing.T) {
	tests := []struct {
		name      string
		ocf       models.Amount
		capex     models.Amount
		wantValid bool
		want      float64
	}{
		{name: "capex outflow is subtracted", ocf: amt(100), capex: amt(-20), wantValid: true, want: 80},
		{name: "zero capex", ocf: amt(100), capex: amt(0), wantValid: true, want: 100},
		{name: "missing capex", ocf: amt(100)},
		{name: "missing operating cash flow", capex: amt(-20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NormalizeCashFlow(models.CashFlow{OperatingCashflow: tt.ocf, CapitalExpenditures: tt.capex})
			v, ok := f.FreeCashFlow.Get()
			assert.Equal(t, tt.wantValid, ok)
			if tt.wantValid {
				assert.InDelta(t, tt.want, v, 1e-9)
			}
		})
	}
}

func TestNormalizeIncome_GrossMargin(t *testing.T) {
	tests := []struct {
		name      string
		revenue   models.Amount
		gross     models.Amount
		wantValid bool
		want      float64
	}{
		{name: "both present", revenue: amt(200), gross: amt(80), wantValid: true, want: 0.4},
		{name: "zero revenue", revenue: amt(0), gross: amt(80)},
		{name: "missing gross profit", revenue: amt(200)},
		{name: "missing revenue", gross: amt(80)},
		{name: "zero gross profit is a real margin", revenue: amt(200), gross: amt(0), wantValid: true, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NormalizeIncome(models.IncomeStatement{TotalRevenue: tt.revenue, GrossProfit: tt.gross})
			v, ok := f.GrossMargin.Get()
			assert.Equal(t, tt.wantValid, ok)
			if tt.wantValid {
				assert.InDelta(t, tt.want, v, 1e-9)
			}
		})
	}
}

func TestNormalizeBalance_GoodwillDefaultsToZero(t *testing.T) {
	f := NormalizeBalance(models.BalanceSheet{Goodwill: amt(30)})
	v, ok := f.GoodwillAndIntangibleAssets.Get()
	require.True(t, ok)
	assert.Equal(t, 30.0, v)

	f = NormalizeBalance(models.BalanceSheet{})
	v, ok = f.GoodwillAndIntangibleAssets.Get()
	require.True(t, ok)
	assert.Equal(t, 0.0, v)

	f = NormalizeBalance(models.BalanceSheet{Goodwill: amt(30), IntangibleAssets: amt(12)})
	v, _ = f.GoodwillAndIntangibleAssets.Get()
	assert.Equal(t, 42.0, v)
}

func TestNewProcessedPeriod_Ratios(t *testing.T) {
	tests := []struct {
		name     string
		ni       models.Amount
		equity   models.Amount
		debt     models.Amount
		wantROIC models.Amount
		wantROE  models.Amount
		wantDE   models.Amount
	}{
		{
			name: "all present", ni: amt(50), equity: amt(400), debt: amt(100),
			wantROIC: amt(0.1), wantROE: amt(0.125), wantDE: amt(0.25),
		},
		{
			name: "missing debt counts as zero for ROIC only", ni: amt(50), equity: amt(500),
			wantROIC: amt(0.1), wantROE: amt(0.1),
		},
		{
			name: "non-positive invested capital", ni: amt(50), equity: amt(-200), debt: amt(100),
			wantROE: amt(-0.25), wantDE: amt(-0.5),
		},
		{
			name: "missing net income", equity: amt(400), debt: amt(100),
			wantDE: amt(0.25),
		},
		{
			name: "zero equity", ni: amt(50), equity: amt(0), debt: amt(100),
			wantROIC: amt(0.5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			income := IncomeFragment{NetIncome: tt.ni}
			balance := BalanceFragment{ShareholdersEquity: tt.equity, TotalDebt: tt.debt}
			p := NewProcessedPeriod("2024-12-31", true, &income, &balance, nil)

			assertAmount(t, "ROIC", tt.wantROIC, p.ReturnOnInvestedCapital)
			assertAmount(t, "ROE", tt.wantROE, p.ReturnOnEquity)
			assertAmount(t, "D/E", tt.wantDE, p.DebtToEquityRatio)
		})
	}
}

func TestNewProcessedPeriod_MissingFragments(t *testing.T) {
	income := IncomeFragment{Revenue: amt(100), NetIncome: amt(10)}
	p := NewProcessedPeriod("2024-12-31", false, &income, nil, nil)

	assert.Equal(t, "2024-12-31", p.FiscalDateEnding)
	assert.False(t, p.Annual)
	assert.True(t, p.Revenue.Valid)
	assert.False(t, p.GoodwillAndIntangibleAssets.Valid)
	assert.False(t, p.FreeCashFlow.Valid)
	assert.False(t, p.ReturnOnEquity.Valid)
}

func assertAmount(t *testing.T, label string, want, got models.Amount) {
	t.Helper()
	if !assert.Equal(t, want.Valid, got.Valid, "%s validity", label) {
		return
	}
	if want.Valid {
		assert.InDelta(t, want.Value, got.Value, 1e-9, label)
	}
}
