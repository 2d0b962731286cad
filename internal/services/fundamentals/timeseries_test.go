package fundamentals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/valuelens/internal/models"
)

func income(date string, annual bool, revenue float64) models.IncomeStatement {
	return models.IncomeStatement{FiscalDateEnding: date, Annual: annual, ReportedCurrency: "USD", TotalRevenue: amt(revenue), NetIncome: amt(revenue / 10)}
}

func balance(date string, annual bool, equity float64) models.BalanceSheet {
	return models.BalanceSheet{FiscalDateEnding: date, Annual: annual, TotalShareholderEquity: amt(equity), ShortLongTermDebtTotal: amt(0)}
}

func cashFlow(date string, annual bool, ocf float64) models.CashFlow {
	return models.CashFlow{FiscalDateEnding: date, Annual: annual, OperatingCashflow: amt(ocf), CapitalExpenditures: amt(-ocf / 5)}
}

func TestBuildTimeSeries_FiltersFrequencyAndTruncates(t *testing.T) {
	set := models.ReportSet{
		IncomeStatements: []models.IncomeStatement{
			income("2024-12-31", true, 146),
			income("2024-09-30", false, 40),
			income("2023-12-31", true, 133),
			income("2022-12-31", true, 121),
		},
		BalanceSheets: []models.BalanceSheet{
			balance("2024-12-31", true, 500),
			balance("2023-12-31", true, 500),
		},
		CashFlows: []models.CashFlow{
			cashFlow("2024-12-31", true, 100),
			cashFlow("2024-09-30", false, 25),
			cashFlow("2023-12-31", true, 90),
			cashFlow("2022-12-31", true, 80),
		},
	}

	for _, align := range []Alignment{AlignByPosition, AlignByDate} {
		t.Run(string(align), func(t *testing.T) {
			series := BuildTimeSeries(set, true, align)
			require.Len(t, series, 2)
			assert.Equal(t, "2024-12-31", series[0].FiscalDateEnding)
			assert.Equal(t, "2023-12-31", series[1].FiscalDateEnding)
			assert.True(t, series[0].Annual)
			assert.Equal(t, "USD", series[0].ReportedCurrency)

			fcf, ok := series[0].FreeCashFlow.Get()
			require.True(t, ok)
			assert.InDelta(t, 80.0, fcf, 1e-9)

			roe, ok := series[1].ReturnOnEquity.Get()
			require.True(t, ok)
			assert.InDelta(t, 13.3/500, roe, 1e-9)
		})
	}

	quarterly := BuildTimeSeries(set, false, AlignByDate)
	assert.Empty(t, quarterly, "no quarterly balance sheets means no quarterly periods")
}

func TestBuildTimeSeries_NeverSorts(t *testing.T) {
	set := models.ReportSet{
		IncomeStatements: []models.IncomeStatement{income("2022-12-31", true, 100), income("2024-12-31", true, 120)},
		BalanceSheets:    []models.BalanceSheet{balance("2022-12-31", true, 400), balance("2024-12-31", true, 500)},
		CashFlows:        []models.CashFlow{cashFlow("2022-12-31", true, 50), cashFlow("2024-12-31", true, 60)},
	}

	series := BuildTimeSeries(set, true, AlignByPosition)
	require.Len(t, series, 2)
	assert.Equal(t, "2022-12-31", series[0].FiscalDateEnding)
	assert.Equal(t, "2024-12-31", series[1].FiscalDateEnding)
}

func TestBuildTimeSeries_MisalignedKinds(t *testing.T) {
	// Balance sheets are missing 2023, so index 1 pairs 2023 income with 2022 balance
	set := models.ReportSet{
		IncomeStatements: []models.IncomeStatement{
			income("2024-12-31", true, 146),
			income("2023-12-31", true, 133),
			income("2022-12-31", true, 121),
		},
		BalanceSheets: []models.BalanceSheet{
			balance("2024-12-31", true, 500),
			balance("2022-12-31", true, 300),
			balance("2021-12-31", true, 200),
		},
		CashFlows: []models.CashFlow{
			cashFlow("2024-12-31", true, 100),
			cashFlow("2023-12-31", true, 90),
			cashFlow("2022-12-31", true, 80),
		},
	}

	positional := BuildTimeSeries(set, true, AlignByPosition)
	require.Len(t, positional, 3)
	equity, _ := positional[1].ShareholdersEquity.Get()
	assert.Equal(t, 300.0, equity, "positional zip pairs by index")

	byDate := BuildTimeSeries(set, true, AlignByDate)
	require.Len(t, byDate, 3)
	assert.False(t, byDate[1].ShareholdersEquity.Valid, "date join leaves the missing balance sheet unknown")
	assert.False(t, byDate[1].ReturnOnEquity.Valid)
	assert.True(t, byDate[1].FreeCashFlow.Valid)
	equity, _ = byDate[2].ShareholdersEquity.Get()
	assert.Equal(t, 300.0, equity)

	misaligned := Misalignments(set, true)
	require.Len(t, misaligned, 2)
	assert.Equal(t, 1, misaligned[0].Index)
	assert.Equal(t, "2022-12-31", misaligned[0].Balance)
	assert.Equal(t, 2, misaligned[1].Index)
}

func TestBuildTimeSeries_Empty(t *testing.T) {
	assert.Empty(t, BuildTimeSeries(models.ReportSet{}, true, AlignByDate))
	assert.Empty(t, Misalignments(models.ReportSet{}, true))
}

func TestParseAlignment(t *testing.T) {
	tests := []struct {
		input   string
		want    Alignment
		wantErr bool
	}{
		{input: "date", want: AlignByDate},
		{input: "", want: AlignByDate},
		{input: "Position", want: AlignByPosition},
		{input: "fuzzy", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAlignment(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
