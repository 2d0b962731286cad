package badger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/valuelens/internal/common"
	"github.com/ternarybob/valuelens/internal/interfaces"
	"github.com/ternarybob/valuelens/internal/models"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	config := &common.BadgerConfig{Path: filepath.Join(t.TempDir(), "db")}
	manager, err := NewManager(arbor.NewLogger(), config)
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })
	return manager
}

func income(date string, annual bool, revenue float64) models.IncomeStatement {
	return models.IncomeStatement{FiscalDateEnding: date, Annual: annual, TotalRevenue: models.AmountOf(revenue)}
}

func TestFundamentalsCache_NotCached(t *testing.T) {
	cache := newTestManager(t).FundamentalsCache()
	ctx := context.Background()

	_, err := cache.GetOverview(ctx, "IBM")
	assert.ErrorIs(t, err, interfaces.ErrNotCached)
	_, err = cache.GetIncomeStatements(ctx, "IBM")
	assert.ErrorIs(t, err, interfaces.ErrNotCached)
	_, err = cache.GetBalanceSheets(ctx, "IBM")
	assert.ErrorIs(t, err, interfaces.ErrNotCached)
	_, err = cache.GetCashFlows(ctx, "IBM")
	assert.ErrorIs(t, err, interfaces.ErrNotCached)

	has, err := cache.HasCachedData(ctx, "IBM", models.KindIncomeStatement)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = cache.GetOverview(ctx, "  ")
	assert.Error(t, err)
}

func TestFundamentalsCache_Overview(t *testing.T) {
	cache := newTestManager(t).FundamentalsCache()
	ctx := context.Background()

	overview := &models.Overview{Symbol: "IBM", Name: "International Business Machines", MarketCapitalization: models.AmountOf(227e9)}
	require.NoError(t, cache.SetOverview(ctx, "ibm", overview))

	got, err := cache.GetOverview(ctx, "IBM")
	require.NoError(t, err)
	assert.Equal(t, "International Business Machines", got.Name)
	assert.Equal(t, 227e9, got.MarketCapitalization.Value)
	assert.False(t, got.PERatio.Valid)

	has, err := cache.HasCachedData(ctx, "IBM", models.KindOverview)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestFundamentalsCache_SetMerges(t *testing.T) {
	cache := newTestManager(t).FundamentalsCache()
	ctx := context.Background()

	require.NoError(t, cache.SetIncomeStatements(ctx, "IBM", []models.IncomeStatement{
		income("2023-12-31", true, 100),
		income("2022-12-31", true, 90),
	}))
	require.NoError(t, cache.SetIncomeStatements(ctx, "IBM", []models.IncomeStatement{
		income("2024-12-31", true, 120),
		income("2023-12-31", true, 105), // restated
		income("2023-12-31", false, 30), // same date, other frequency
	}))

	got, err := cache.GetIncomeStatements(ctx, "IBM")
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, "2024-12-31", got[0].FiscalDateEnding)
	for _, r := range got {
		if r.FiscalDateEnding == "2023-12-31" && r.Annual {
			assert.Equal(t, 105.0, r.TotalRevenue.Value, "incoming report replaces existing")
		}
	}
	assert.Equal(t, "2022-12-31", got[3].FiscalDateEnding)
}

func TestFundamentalsCache_BalanceAndCashFlow(t *testing.T) {
	cache := newTestManager(t).FundamentalsCache()
	ctx := context.Background()

	require.NoError(t, cache.SetBalanceSheets(ctx, "IBM", []models.BalanceSheet{
		{FiscalDateEnding: "2024-12-31", Annual: true, Goodwill: models.AmountOf(60)},
	}))
	require.NoError(t, cache.SetCashFlows(ctx, "IBM", []models.CashFlow{
		{FiscalDateEnding: "2024-12-31", Annual: true, OperatingCashflow: models.AmountOf(13), CapitalExpenditures: models.AmountOf(-2)},
	}))

	balances, err := cache.GetBalanceSheets(ctx, "IBM")
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, 60.0, balances[0].Goodwill.Value)
	assert.False(t, balances[0].IntangibleAssets.Valid)

	cashFlows, err := cache.GetCashFlows(ctx, "IBM")
	require.NoError(t, err)
	require.Len(t, cashFlows, 1)
	assert.Equal(t, -2.0, cashFlows[0].CapitalExpenditures.Value)
}

func TestFundamentalsCache_ClearAndList(t *testing.T) {
	cache := newTestManager(t).FundamentalsCache()
	ctx := context.Background()

	require.NoError(t, cache.SetOverview(ctx, "MSFT", &models.Overview{Symbol: "MSFT"}))
	require.NoError(t, cache.SetIncomeStatements(ctx, "MSFT", []models.IncomeStatement{income("2024-06-30", true, 245)}))
	require.NoError(t, cache.SetIncomeStatements(ctx, "IBM", []models.IncomeStatement{income("2024-12-31", true, 62)}))

	entries, err := cache.CachedSymbols(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "IBM", entries[0].Symbol)
	assert.Equal(t, []models.ReportKind{models.KindIncomeStatement}, entries[0].Kinds)
	assert.Equal(t, "MSFT", entries[1].Symbol)
	assert.ElementsMatch(t, []models.ReportKind{models.KindOverview, models.KindIncomeStatement}, entries[1].Kinds)
	assert.WithinDuration(t, time.Now(), entries[1].LastUpdated, time.Minute)

	require.NoError(t, cache.Clear(ctx, "msft"))
	entries, err = cache.CachedSymbols(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "IBM", entries[0].Symbol)

	// clearing an uncached symbol is not an error
	require.NoError(t, cache.Clear(ctx, "AAPL"))

	require.NoError(t, cache.Clear(ctx, ""))
	entries, err = cache.CachedSymbols(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEvaluationStorage(t *testing.T) {
	storage := newTestManager(t).EvaluationStorage()
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, symbol := range []string{"IBM", "IBM", "MSFT", "IBM"} {
		report := &models.EvaluationReport{
			ID:          common.NewEvaluationID(),
			Symbol:      symbol,
			Frequency:   models.FrequencyAnnual,
			GeneratedAt: base.Add(time.Duration(i) * time.Hour),
			Analysis: models.AnalysisPayload{
				Ticker: symbol,
				Growth: models.ScoreResult{Score: float64(i), Raw: i, Details: []string{"detail"}},
			},
			Signal: &models.EvaluationSignal{Report: "report"},
		}
		require.NoError(t, storage.SaveEvaluation(ctx, report))
	}

	reports, err := storage.ListEvaluations(ctx, "ibm", 0)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, 3.0, reports[0].Analysis.Growth.Score, "newest first")
	assert.Equal(t, 0.0, reports[2].Analysis.Growth.Score)

	limited, err := storage.ListEvaluations(ctx, "IBM", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	got, err := storage.GetEvaluation(ctx, reports[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "report", got.Signal.Report)
	assert.Equal(t, []string{"detail"}, got.Analysis.Growth.Details)

	_, err = storage.GetEvaluation(ctx, "eval_missing")
	assert.Error(t, err)

	deleted, err := storage.DeleteEvaluations(ctx, "IBM")
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)

	remaining, err := storage.ListEvaluations(ctx, "MSFT", 0)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	assert.Error(t, storage.SaveEvaluation(ctx, &models.EvaluationReport{}))
}
