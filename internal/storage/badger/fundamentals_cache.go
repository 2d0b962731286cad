package badger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/valuelens/internal/common"
	"github.com/ternarybob/valuelens/internal/interfaces"
	"github.com/ternarybob/valuelens/internal/models"
	"github.com/ternarybob/valuelens/internal/services/fundamentals"
	"github.com/timshannon/badgerhold/v4"
)

// One record type per report kind, keyed by normalized symbol

type overviewRecord struct {
	Symbol    string
	Overview  models.Overview
	UpdatedAt time.Time
}

type incomeRecord struct {
	Symbol    string
	Reports   []models.IncomeStatement
	UpdatedAt time.Time
}

type balanceRecord struct {
	Symbol    string
	Reports   []models.BalanceSheet
	UpdatedAt time.Time
}

type cashFlowRecord struct {
	Symbol    string
	Reports   []models.CashFlow
	UpdatedAt time.Time
}

// FundamentalsCache implements the FundamentalsCache interface for Badger
type FundamentalsCache struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewFundamentalsCache creates a new FundamentalsCache instance
func NewFundamentalsCache(db *BadgerDB, logger arbor.ILogger) interfaces.FundamentalsCache {
	return &FundamentalsCache{
		db:     db,
		logger: logger,
	}
}

func cacheKey(symbol string) (string, error) {
	key := common.NormalizeSymbol(symbol)
	if key == "" {
		return "", fmt.Errorf("symbol is required")
	}
	return key, nil
}

// get loads the record stored under key, mapping a miss to ErrNotCached
func (s *FundamentalsCache) get(key string, record interface{}) error {
	err := s.db.Store().Get(key, record)
	if err == badgerhold.ErrNotFound {
		return interfaces.ErrNotCached
	}
	if err != nil {
		return fmt.Errorf("failed to read cache for %s: %w", key, err)
	}
	return nil
}

// existing loads the record under key, treating a miss as empty
func (s *FundamentalsCache) existing(key string, record interface{}) error {
	if err := s.get(key, record); err != nil && !errors.Is(err, interfaces.ErrNotCached) {
		return err
	}
	return nil
}

func (s *FundamentalsCache) GetOverview(ctx context.Context, symbol string) (*models.Overview, error) {
	key, err := cacheKey(symbol)
	if err != nil {
		return nil, err
	}
	var record overviewRecord
	if err := s.get(key, &record); err != nil {
		return nil, err
	}
	return &record.Overview, nil
}

// SetOverview replaces the stored overview; an overview is a snapshot, not a series
func (s *FundamentalsCache) SetOverview(ctx context.Context, symbol string, overview *models.Overview) error {
	key, err := cacheKey(symbol)
	if err != nil {
		return err
	}
	if overview == nil {
		return fmt.Errorf("overview is nil")
	}
	record := overviewRecord{Symbol: key, Overview: *overview, UpdatedAt: time.Now()}
	if err := s.db.Store().Upsert(key, &record); err != nil {
		return fmt.Errorf("failed to store overview: %w", err)
	}
	return nil
}

func (s *FundamentalsCache) GetIncomeStatements(ctx context.Context, symbol string) ([]models.IncomeStatement, error) {
	key, err := cacheKey(symbol)
	if err != nil {
		return nil, err
	}
	var record incomeRecord
	if err := s.get(key, &record); err != nil {
		return nil, err
	}
	return record.Reports, nil
}

func (s *FundamentalsCache) SetIncomeStatements(ctx context.Context, symbol string, reports []models.IncomeStatement) error {
	key, err := cacheKey(symbol)
	if err != nil {
		return err
	}
	var record incomeRecord
	if err := s.existing(key, &record); err != nil {
		return err
	}
	record = incomeRecord{Symbol: key, Reports: fundamentals.MergeReports(record.Reports, reports), UpdatedAt: time.Now()}
	if err := s.db.Store().Upsert(key, &record); err != nil {
		return fmt.Errorf("failed to store income statements: %w", err)
	}
	s.logger.Debug().Str("symbol", key).Int("reports", len(record.Reports)).Msg("Cached income statements")
	return nil
}

func (s *FundamentalsCache) GetBalanceSheets(ctx context.Context, symbol string) ([]models.BalanceSheet, error) {
	key, err := cacheKey(symbol)
	if err != nil {
		return nil, err
	}
	var record balanceRecord
	if err := s.get(key, &record); err != nil {
		return nil, err
	}
	return record.Reports, nil
}

func (s *FundamentalsCache) SetBalanceSheets(ctx context.Context, symbol string, reports []models.BalanceSheet) error {
	key, err := cacheKey(symbol)
	if err != nil {
		return err
	}
	var record balanceRecord
	if err := s.existing(key, &record); err != nil {
		return err
	}
	record = balanceRecord{Symbol: key, Reports: fundamentals.MergeReports(record.Reports, reports), UpdatedAt: time.Now()}
	if err := s.db.Store().Upsert(key, &record); err != nil {
		return fmt.Errorf("failed to store balance sheets: %w", err)
	}
	s.logger.Debug().Str("symbol", key).Int("reports", len(record.Reports)).Msg("Cached balance sheets")
	return nil
}

func (s *FundamentalsCache) GetCashFlows(ctx context.Context, symbol string) ([]models.CashFlow, error) {
	key, err := cacheKey(symbol)
	if err != nil {
		return nil, err
	}
	var record cashFlowRecord
	if err := s.get(key, &record); err != nil {
		return nil, err
	}
	return record.Reports, nil
}

func (s *FundamentalsCache) SetCashFlows(ctx context.Context, symbol string, reports []models.CashFlow) error {
	key, err := cacheKey(symbol)
	if err != nil {
		return err
	}
	var record cashFlowRecord
	if err := s.existing(key, &record); err != nil {
		return err
	}
	record = cashFlowRecord{Symbol: key, Reports: fundamentals.MergeReports(record.Reports, reports), UpdatedAt: time.Now()}
	if err := s.db.Store().Upsert(key, &record); err != nil {
		return fmt.Errorf("failed to store cash flows: %w", err)
	}
	s.logger.Debug().Str("symbol", key).Int("reports", len(record.Reports)).Msg("Cached cash flows")
	return nil
}

// recordFor returns an empty record of the type that stores kind
func recordFor(kind models.ReportKind) (interface{}, error) {
	switch kind {
	case models.KindOverview:
		return &overviewRecord{}, nil
	case models.KindIncomeStatement:
		return &incomeRecord{}, nil
	case models.KindBalanceSheet:
		return &balanceRecord{}, nil
	case models.KindCashFlow:
		return &cashFlowRecord{}, nil
	default:
		return nil, fmt.Errorf("unknown report kind: %q", kind)
	}
}

func (s *FundamentalsCache) HasCachedData(ctx context.Context, symbol string, kind models.ReportKind) (bool, error) {
	key, err := cacheKey(symbol)
	if err != nil {
		return false, err
	}
	record, err := recordFor(kind)
	if err != nil {
		return false, err
	}
	err = s.get(key, record)
	if errors.Is(err, interfaces.ErrNotCached) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Clear removes all kinds for symbol, or every cached symbol when symbol is empty
func (s *FundamentalsCache) Clear(ctx context.Context, symbol string) error {
	if symbol == "" {
		for _, kind := range models.AllReportKinds {
			record, _ := recordFor(kind)
			if err := s.db.Store().DeleteMatching(record, nil); err != nil {
				return fmt.Errorf("failed to clear %s cache: %w", kind, err)
			}
		}
		s.logger.Info().Msg("Cleared fundamentals cache")
		return nil
	}

	key, err := cacheKey(symbol)
	if err != nil {
		return err
	}
	for _, kind := range models.AllReportKinds {
		record, _ := recordFor(kind)
		err := s.db.Store().Delete(key, record)
		if err != nil && err != badgerhold.ErrNotFound {
			return fmt.Errorf("failed to clear %s cache for %s: %w", kind, key, err)
		}
	}
	s.logger.Info().Str("symbol", key).Msg("Cleared cached fundamentals")
	return nil
}

// CachedSymbols lists every symbol with at least one cached kind, sorted by symbol
func (s *FundamentalsCache) CachedSymbols(ctx context.Context) ([]models.CacheEntry, error) {
	entries := make(map[string]*models.CacheEntry)
	note := func(symbol string, kind models.ReportKind, updated time.Time) {
		entry, ok := entries[symbol]
		if !ok {
			entry = &models.CacheEntry{Symbol: symbol}
			entries[symbol] = entry
		}
		entry.Kinds = append(entry.Kinds, kind)
		if updated.After(entry.LastUpdated) {
			entry.LastUpdated = updated
		}
	}

	var overviews []overviewRecord
	if err := s.db.Store().Find(&overviews, nil); err != nil {
		return nil, fmt.Errorf("failed to list cached overviews: %w", err)
	}
	for _, r := range overviews {
		note(r.Symbol, models.KindOverview, r.UpdatedAt)
	}

	var incomes []incomeRecord
	if err := s.db.Store().Find(&incomes, nil); err != nil {
		return nil, fmt.Errorf("failed to list cached income statements: %w", err)
	}
	for _, r := range incomes {
		note(r.Symbol, models.KindIncomeStatement, r.UpdatedAt)
	}

	var balances []balanceRecord
	if err := s.db.Store().Find(&balances, nil); err != nil {
		return nil, fmt.Errorf("failed to list cached balance sheets: %w", err)
	}
	for _, r := range balances {
		note(r.Symbol, models.KindBalanceSheet, r.UpdatedAt)
	}

	var cashFlows []cashFlowRecord
	if err := s.db.Store().Find(&cashFlows, nil); err != nil {
		return nil, fmt.Errorf("failed to list cached cash flows: %w", err)
	}
	for _, r := range cashFlows {
		note(r.Symbol, models.KindCashFlow, r.UpdatedAt)
	}

	out := make([]models.CacheEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out, nil
}
