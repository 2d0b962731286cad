package fundamentals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/valuelens/internal/common"
	"github.com/ternarybob/valuelens/internal/interfaces"
	"github.com/ternarybob/valuelens/internal/models"
)

// Service retrieves fundamental data cache-first, fetching from the provider
// only the kinds that are not cached yet
type Service struct {
	provider interfaces.FundamentalsProvider
	cache    interfaces.FundamentalsCache
	logger   arbor.ILogger
}

// NewService creates a new fundamentals service
func NewService(provider interfaces.FundamentalsProvider, cache interfaces.FundamentalsCache, logger arbor.ILogger) *Service {
	return &Service{
		provider: provider,
		cache:    cache,
		logger:   logger,
	}
}

var _ interfaces.FundamentalsService = (*Service)(nil)

func (s *Service) GetFundamentalData(ctx context.Context, symbol string, refresh bool) (*models.FundamentalData, error) {
	key := common.NormalizeSymbol(symbol)
	if key == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	for _, kind := range models.AllReportKinds {
		if !refresh {
			cached, err := s.cache.HasCachedData(ctx, key, kind)
			if err != nil {
				return nil, fmt.Errorf("failed to check cache for %s: %w", key, err)
			}
			if cached {
				s.logger.Debug().Str("symbol", key).Str("kind", string(kind)).Msg("Using cached data")
				continue
			}
		}
		if err := s.fetch(ctx, key, kind); err != nil {
			return nil, err
		}
	}

	return s.load(ctx, key)
}

// fetch pulls one kind from the provider and writes it to the cache
func (s *Service) fetch(ctx context.Context, symbol string, kind models.ReportKind) error {
	if s.provider == nil {
		return fmt.Errorf("no data provider configured for %s %s", symbol, kind)
	}

	start := time.Now()
	var (
		count int
		err   error
	)

	switch kind {
	case models.KindOverview:
		var overview *models.Overview
		if overview, err = s.provider.GetOverview(ctx, symbol); err == nil {
			count = 1
			err = s.cache.SetOverview(ctx, symbol, overview)
		}
	case models.KindIncomeStatement:
		var reports []models.IncomeStatement
		if reports, err = s.provider.GetIncomeStatements(ctx, symbol); err == nil {
			count = len(reports)
			err = s.cache.SetIncomeStatements(ctx, symbol, reports)
		}
	case models.KindBalanceSheet:
		var reports []models.BalanceSheet
		if reports, err = s.provider.GetBalanceSheets(ctx, symbol); err == nil {
			count = len(reports)
			err = s.cache.SetBalanceSheets(ctx, symbol, reports)
		}
	case models.KindCashFlow:
		var reports []models.CashFlow
		if reports, err = s.provider.GetCashFlows(ctx, symbol); err == nil {
			count = len(reports)
			err = s.cache.SetCashFlows(ctx, symbol, reports)
		}
	default:
		err = fmt.Errorf("unknown report kind: %q", kind)
	}

	if err != nil {
		return fmt.Errorf("failed to fetch %s for %s: %w", kind, symbol, err)
	}

	s.logger.Info().
		Str("symbol", symbol).
		Str("kind", string(kind)).
		Int("reports", count).
		Str("duration", time.Since(start).String()).
		Msg("Fetched fundamental data")
	return nil
}

// load reads every kind back from the cache. A kind with nothing stored
// (the provider returned no reports) comes back empty.
func (s *Service) load(ctx context.Context, symbol string) (*models.FundamentalData, error) {
	data := &models.FundamentalData{Symbol: symbol, LastUpdated: time.Now()}

	overview, err := s.cache.GetOverview(ctx, symbol)
	if err != nil && !errors.Is(err, interfaces.ErrNotCached) {
		return nil, err
	}
	data.Overview = overview

	if data.IncomeStatements, err = s.cache.GetIncomeStatements(ctx, symbol); err != nil && !errors.Is(err, interfaces.ErrNotCached) {
		return nil, err
	}
	if data.BalanceSheets, err = s.cache.GetBalanceSheets(ctx, symbol); err != nil && !errors.Is(err, interfaces.ErrNotCached) {
		return nil, err
	}
	if data.CashFlows, err = s.cache.GetCashFlows(ctx, symbol); err != nil && !errors.Is(err, interfaces.ErrNotCached) {
		return nil, err
	}

	return data, nil
}

func (s *Service) SearchSymbol(ctx context.Context, keywords string) ([]models.SymbolMatch, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("no data provider configured")
	}
	matches, err := s.provider.SearchSymbol(ctx, keywords)
	if err != nil {
		return nil, fmt.Errorf("symbol search failed: %w", err)
	}
	return matches, nil
}

// Refresh fetches every kind for symbol, replacing and merging into the cache
func (s *Service) Refresh(ctx context.Context, symbol string) error {
	_, err := s.GetFundamentalData(ctx, symbol, true)
	return err
}

func (s *Service) CachedSymbols(ctx context.Context) ([]models.CacheEntry, error) {
	return s.cache.CachedSymbols(ctx)
}

func (s *Service) ClearCache(ctx context.Context, symbol string) error {
	return s.cache.Clear(ctx, symbol)
}
