package interfaces

import (
	"context"
	"errors"

	"github.com/ternarybob/valuelens/internal/models"
)

// ErrNotCached is returned by FundamentalsCache getters when nothing is stored for the symbol
var ErrNotCached = errors.New("no cached data")

// FundamentalsCache - per-symbol persistence of fundamental data.
// Setters merge with what is already stored: reports are de-duplicated on
// (fiscal date, frequency) with the incoming record winning, and lists are kept newest-first.
type FundamentalsCache interface {
	GetOverview(ctx context.Context, symbol string) (*models.Overview, error)
	SetOverview(ctx context.Context, symbol string, overview *models.Overview) error

	GetIncomeStatements(ctx context.Context, symbol string) ([]models.IncomeStatement, error)
	SetIncomeStatements(ctx context.Context, symbol string, reports []models.IncomeStatement) error

	GetBalanceSheets(ctx context.Context, symbol string) ([]models.BalanceSheet, error)
	SetBalanceSheets(ctx context.Context, symbol string, reports []models.BalanceSheet) error

	GetCashFlows(ctx context.Context, symbol string) ([]models.CashFlow, error)
	SetCashFlows(ctx context.Context, symbol string, reports []models.CashFlow) error

	HasCachedData(ctx context.Context, symbol string, kind models.ReportKind) (bool, error)

	// Clear removes everything stored for symbol; an empty symbol clears all symbols
	Clear(ctx context.Context, symbol string) error

	CachedSymbols(ctx context.Context) ([]models.CacheEntry, error)
}

// FundamentalsProvider - remote source of fundamental data
type FundamentalsProvider interface {
	SearchSymbol(ctx context.Context, keywords string) ([]models.SymbolMatch, error)
	GetOverview(ctx context.Context, symbol string) (*models.Overview, error)
	GetIncomeStatements(ctx context.Context, symbol string) ([]models.IncomeStatement, error)
	GetBalanceSheets(ctx context.Context, symbol string) ([]models.BalanceSheet, error)
	GetCashFlows(ctx context.Context, symbol string) ([]models.CashFlow, error)
}

// FundamentalsService - cache-first retrieval of fundamental data
type FundamentalsService interface {
	// GetFundamentalData returns all four kinds for symbol, fetching from the
	// provider whatever is not cached (or everything when refresh is set)
	GetFundamentalData(ctx context.Context, symbol string, refresh bool) (*models.FundamentalData, error)
	SearchSymbol(ctx context.Context, keywords string) ([]models.SymbolMatch, error)
	Refresh(ctx context.Context, symbol string) error
	CachedSymbols(ctx context.Context) ([]models.CacheEntry, error)
	ClearCache(ctx context.Context, symbol string) error
}
