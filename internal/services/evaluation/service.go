// Package evaluation runs the four scorers over a time series, asks the narrator
// for a written evaluation and records the run.
package evaluation

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/valuelens/internal/common"
	"github.com/ternarybob/valuelens/internal/interfaces"
	"github.com/ternarybob/valuelens/internal/models"
	"github.com/ternarybob/valuelens/internal/services/fundamentals"
	"github.com/ternarybob/valuelens/internal/services/rating"
)

// Options controls one evaluation run
type Options struct {
	Frequency models.Frequency
	Alignment fundamentals.Alignment
	// Refresh fetches every kind from the provider even when cached
	Refresh bool
	// Narrative requests the LLM evaluation; without it the report carries scores only
	Narrative bool
	// Save stores the finished report in evaluation storage
	Save bool
}

// DefaultOptions derives run options from configuration
func DefaultOptions(config *common.EvaluationConfig) (Options, error) {
	frequency, err := models.ParseFrequency(config.Frequency)
	if err != nil {
		return Options{}, err
	}
	alignment, err := fundamentals.ParseAlignment(config.Alignment)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Frequency: frequency,
		Alignment: alignment,
		Narrative: config.Narrative,
		Save:      true,
	}, nil
}

// Service is the evaluation aggregator.
// The data service, narrator and storage are optional; Analyze needs none of them.
type Service struct {
	data     interfaces.FundamentalsService
	narrator interfaces.Narrator
	storage  interfaces.EvaluationStorage
	growth   []rating.GrowthMetric
	lookback int
	timeout  time.Duration
	logger   arbor.ILogger
}

// NewService creates a new evaluation service
func NewService(
	data interfaces.FundamentalsService,
	narrator interfaces.Narrator,
	storage interfaces.EvaluationStorage,
	config *common.EvaluationConfig,
	logger arbor.ILogger,
) *Service {
	lookback := rating.DefaultDilutionLookback
	if config != nil && config.DilutionLookback > 0 {
		lookback = config.DilutionLookback
	}
	return &Service{
		data:     data,
		narrator: narrator,
		storage:  storage,
		growth:   rating.DefaultGrowthMetrics(),
		lookback: lookback,
		logger:   logger,
	}
}

// WithNarrativeTimeout bounds each narrator call; zero means no bound
func (s *Service) WithNarrativeTimeout(timeout time.Duration) *Service {
	s.timeout = timeout
	return s
}

// Analyze runs the four scorers over a newest-first series.
// It has no side effects and returns the same payload for the same input.
func (s *Service) Analyze(overview *models.Overview, series []models.ProcessedPeriod) *models.AnalysisPayload {
	ticker := ""
	if overview != nil {
		ticker = overview.Symbol
	}

	return &models.AnalysisPayload{
		Ticker:     ticker,
		Overview:   overview,
		Growth:     rating.ScoreGrowth(series, s.growth),
		Moat:       rating.ScoreMoat(series),
		Management: rating.ScoreManagementWithLookback(series, s.lookback),
		Valuation:  rating.ScoreValuation(overview, series),
	}
}

// Narrate hands a payload to the narrator. Narrator errors are wrapped, never retried.
func (s *Service) Narrate(ctx context.Context, payload *models.AnalysisPayload) (*models.EvaluationSignal, error) {
	if s.narrator == nil {
		return nil, fmt.Errorf("no narrator configured")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	signal, err := s.narrator.Narrate(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to narrate evaluation for %s: %w", payload.Ticker, err)
	}
	return signal, nil
}

// Evaluate is Analyze followed by Narrate
func (s *Service) Evaluate(ctx context.Context, overview *models.Overview, series []models.ProcessedPeriod) (*models.AnalysisPayload, *models.EvaluationSignal, error) {
	payload := s.Analyze(overview, series)
	signal, err := s.Narrate(ctx, payload)
	if err != nil {
		return payload, nil, err
	}
	return payload, signal, nil
}

// TimeSeries fetches the fundamentals for symbol and builds its processed series
func (s *Service) TimeSeries(ctx context.Context, symbol string, opts Options) (*models.FundamentalData, []models.ProcessedPeriod, error) {
	if s.data == nil {
		return nil, nil, fmt.Errorf("no fundamentals service configured")
	}

	data, err := s.data.GetFundamentalData(ctx, symbol, opts.Refresh)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get fundamental data for %s: %w", symbol, err)
	}

	annual := opts.Frequency.IsAnnual()
	set := data.Reports()

	for _, m := range fundamentals.Misalignments(set, annual) {
		s.logger.Warn().
			Str("symbol", data.Symbol).
			Int("index", m.Index).
			Str("income", m.Income).
			Str("balance", m.Balance).
			Str("cash_flow", m.CashFlow).
			Str("alignment", string(opts.Alignment)).
			Msg("Report kinds disagree on fiscal date")
	}

	series := fundamentals.BuildTimeSeries(set, annual, opts.Alignment)

	s.logger.Debug().
		Str("symbol", data.Symbol).
		Str("frequency", string(opts.Frequency)).
		Int("periods", len(series)).
		Msg("Time series built")

	return data, series, nil
}

// Run performs a full evaluation of symbol: fetch, build, analyze, optionally
// narrate and store. A narrator failure fails the run.
func (s *Service) Run(ctx context.Context, symbol string, opts Options) (*models.EvaluationReport, error) {
	start := time.Now()

	data, series, err := s.TimeSeries(ctx, symbol, opts)
	if err != nil {
		return nil, err
	}

	overview := data.Overview
	if overview == nil {
		overview = &models.Overview{Symbol: data.Symbol}
	}

	payload := s.Analyze(overview, series)

	report := &models.EvaluationReport{
		ID:          common.NewEvaluationID(),
		Symbol:      data.Symbol,
		Frequency:   opts.Frequency,
		Alignment:   string(opts.Alignment),
		GeneratedAt: time.Now().UTC(),
		TimeSeries:  series,
		Analysis:    *payload,
	}

	if opts.Narrative {
		signal, err := s.Narrate(ctx, payload)
		if err != nil {
			return nil, err
		}
		report.Signal = signal
		if named, ok := s.narrator.(interface{ ModelName() string }); ok {
			report.Provider = named.ModelName()
		}
	}

	if opts.Save && s.storage != nil {
		if err := s.storage.SaveEvaluation(ctx, report); err != nil {
			return nil, fmt.Errorf("failed to save evaluation: %w", err)
		}
	}

	s.logger.Info().
		Str("symbol", report.Symbol).
		Str("id", report.ID).
		Str("overall", fmt.Sprintf("%.1f", payload.OverallScore())).
		Dur("duration", time.Since(start)).
		Msg("Evaluation complete")

	return report, nil
}

// History lists stored evaluations for symbol, newest first
func (s *Service) History(ctx context.Context, symbol string, limit int) ([]*models.EvaluationReport, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("no evaluation storage configured")
	}
	return s.storage.ListEvaluations(ctx, common.NormalizeSymbol(symbol), limit)
}

// Get loads one stored evaluation by ID
func (s *Service) Get(ctx context.Context, id string) (*models.EvaluationReport, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("no evaluation storage configured")
	}
	return s.storage.GetEvaluation(ctx, id)
}

// ClearHistory deletes every stored evaluation for symbol and returns how many were removed
func (s *Service) ClearHistory(ctx context.Context, symbol string) (int, error) {
	if s.storage == nil {
		return 0, fmt.Errorf("no evaluation storage configured")
	}
	return s.storage.DeleteEvaluations(ctx, common.NormalizeSymbol(symbol))
}
