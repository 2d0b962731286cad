package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/valuelens/internal/common"
	"github.com/ternarybob/valuelens/internal/interfaces"
)

// RefreshResult summarises one refresh pass
type RefreshResult struct {
	Started   time.Time
	Duration  time.Duration
	Refreshed []string
	Failed    map[string]error
}

// Status is a snapshot of the scheduler state
type Status struct {
	Running    bool
	Processing bool
	Schedule   string
	LastRun    *time.Time
	NextRun    *time.Time
	LastError  string
}

// Service refreshes cached fundamental data on a cron schedule
type Service struct {
	data    interfaces.FundamentalsService
	symbols []string
	cron    *cron.Cron
	logger  arbor.ILogger

	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex // Protects the fields below
	isProcessing bool
	running      bool
	schedule     string
	cronID       cron.EntryID
	lastRun      *time.Time
	lastError    string
}

// NewService creates a new scheduler service.
// Configured symbols are refreshed on every run; with none configured every cached symbol is.
func NewService(data interfaces.FundamentalsService, config *common.SchedulerConfig, logger arbor.ILogger) *Service {
	var symbols []string
	if config != nil {
		symbols = common.NormalizeSymbols(config.Symbols)
	}
	return &Service{
		data:    data,
		symbols: symbols,
		cron:    cron.New(),
		logger:  logger,
	}
}

// Start begins the scheduler with the given cron expression
func (s *Service) Start(cronExpr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}
	if err := common.ValidateSchedule(cronExpr); err != nil {
		return err
	}

	id, err := s.cron.AddFunc(cronExpr, s.runScheduledTask)
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.cronID = id
	s.schedule = cronExpr
	s.cron.Start()
	s.running = true

	s.logger.Info().
		Str("cron_expr", cronExpr).
		Int("symbols", len(s.symbols)).
		Msg("Refresh scheduler started")
	return nil
}

// Stop halts the scheduler and waits for a refresh in progress to finish
func (s *Service) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.cancel()
	s.cron.Remove(s.cronID)
	s.running = false
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.logger.Info().Msg("Refresh scheduler stopped")
	return nil
}

// TriggerNow starts a refresh pass in the background
func (s *Service) TriggerNow() {
	common.SafeGo(s.logger, "scheduledRefresh", s.runScheduledTask)
}

func (s *Service) runScheduledTask() {
	s.mu.Lock()
	if s.isProcessing {
		s.mu.Unlock()
		s.logger.Warn().Msg("Previous refresh still running, skipping")
		return
	}
	s.isProcessing = true
	ctx := s.ctx
	s.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}

	result, err := s.refresh(ctx)

	s.mu.Lock()
	s.isProcessing = false
	now := time.Now()
	s.lastRun = &now
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	} else if len(result.Failed) > 0 {
		s.lastError = fmt.Sprintf("%d of %d symbols failed", len(result.Failed), len(result.Failed)+len(result.Refreshed))
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error().Err(err).Msg("Scheduled refresh failed")
	}
}

// RunOnce refreshes every target symbol immediately. It fails only when the
// target list cannot be resolved; per-symbol failures are reported in the result.
func (s *Service) RunOnce(ctx context.Context) (*RefreshResult, error) {
	s.mu.Lock()
	if s.isProcessing {
		s.mu.Unlock()
		return nil, fmt.Errorf("refresh already in progress")
	}
	s.isProcessing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isProcessing = false
		s.mu.Unlock()
	}()

	return s.refresh(ctx)
}

func (s *Service) refresh(ctx context.Context) (*RefreshResult, error) {
	symbols, err := s.targets(ctx)
	if err != nil {
		return nil, err
	}

	result := &RefreshResult{Started: time.Now(), Failed: make(map[string]error)}
	for _, symbol := range symbols {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		if err := s.data.Refresh(ctx, symbol); err != nil {
			s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Failed to refresh symbol")
			result.Failed[symbol] = err
			continue
		}
		result.Refreshed = append(result.Refreshed, symbol)
	}
	result.Duration = time.Since(result.Started)

	s.logger.Info().
		Int("refreshed", len(result.Refreshed)).
		Int("failed", len(result.Failed)).
		Str("duration", result.Duration.String()).
		Msg("Refresh pass complete")
	return result, nil
}

// targets returns the configured symbols, or every cached symbol
func (s *Service) targets(ctx context.Context) ([]string, error) {
	if len(s.symbols) > 0 {
		return s.symbols, nil
	}
	entries, err := s.data.CachedSymbols(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached symbols: %w", err)
	}
	symbols := make([]string, 0, len(entries))
	for _, entry := range entries {
		symbols = append(symbols, entry.Symbol)
	}
	return symbols, nil
}

// GetStatus returns the current scheduler state
func (s *Service) GetStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := Status{
		Running:    s.running,
		Processing: s.isProcessing,
		Schedule:   s.schedule,
		LastRun:    s.lastRun,
		LastError:  s.lastError,
	}
	if s.running {
		if next := s.cron.Entry(s.cronID).Next; !next.IsZero() {
			status.NextRun = &next
		}
	}
	return status
}
