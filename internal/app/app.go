package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/valuelens/internal/alphavantage"
	"github.com/ternarybob/valuelens/internal/common"
	"github.com/ternarybob/valuelens/internal/interfaces"
	"github.com/ternarybob/valuelens/internal/models"
	"github.com/ternarybob/valuelens/internal/services/evaluation"
	"github.com/ternarybob/valuelens/internal/services/fundamentals"
	"github.com/ternarybob/valuelens/internal/services/llm"
	"github.com/ternarybob/valuelens/internal/services/narrative"
	"github.com/ternarybob/valuelens/internal/services/pdf"
	"github.com/ternarybob/valuelens/internal/services/scheduler"
	"github.com/ternarybob/valuelens/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager *badger.Manager

	// Data services
	Provider            interfaces.FundamentalsProvider
	FundamentalsService *fundamentals.Service

	// Evaluation
	LLMFactory        *llm.ProviderFactory
	EvaluationService *evaluation.Service

	SchedulerService *scheduler.Service
	PDFService       *pdf.Service
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app.initServices()

	logger.Debug().
		Str("frequency", cfg.Evaluation.Frequency).
		Str("alignment", cfg.Evaluation.Alignment).
		Str("llm_provider", string(cfg.LLM.DefaultProvider)).
		Msg("Application initialization complete")

	return app, nil
}

// initDatabase initializes the storage layer (Badger)
func (a *App) initDatabase() error {
	manager, err := badger.NewManager(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return fmt.Errorf("failed to create storage manager: %w", err)
	}

	a.StorageManager = manager
	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")
	return nil
}

// initServices initializes services in dependency order:
// provider -> fundamentals -> llm -> narrator -> evaluation -> scheduler
func (a *App) initServices() {
	client, err := alphavantage.NewClientFromConfig(&a.Config.AlphaVantage, a.Logger)
	if err != nil {
		// Cache-only commands still work without a key
		a.Logger.Debug().Err(err).Msg("Alpha Vantage client unavailable")
		a.Provider = unavailableProvider{err: err}
	} else {
		a.Provider = client
	}

	a.FundamentalsService = fundamentals.NewService(a.Provider, a.StorageManager.FundamentalsCache(), a.Logger)

	a.LLMFactory = llm.NewProviderFactory(&a.Config.Gemini, &a.Config.Claude, &a.Config.LLM, a.Logger)
	a.EvaluationService = a.Evaluator("")

	a.SchedulerService = scheduler.NewService(a.FundamentalsService, &a.Config.Scheduler, a.Logger)
	a.PDFService = pdf.NewService(a.Logger)
}

// Evaluator returns an evaluation service whose narrator uses model.
// An empty model uses the configured default provider.
func (a *App) Evaluator(model string) *evaluation.Service {
	narrator := narrative.NewService(a.LLMFactory, model, a.Logger)
	return evaluation.NewService(
		a.FundamentalsService,
		narrator,
		a.StorageManager.EvaluationStorage(),
		&a.Config.Evaluation,
		a.Logger,
	).WithNarrativeTimeout(a.Config.LLM.TimeoutDuration())
}

// EvaluationOptions derives run options from configuration
func (a *App) EvaluationOptions() (evaluation.Options, error) {
	return evaluation.DefaultOptions(&a.Config.Evaluation)
}

// Close closes all application resources
func (a *App) Close() error {
	if a.SchedulerService != nil {
		if err := a.SchedulerService.Stop(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to stop scheduler service")
		}
	}

	if a.LLMFactory != nil {
		if err := a.LLMFactory.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close LLM clients")
		}
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		a.Logger.Debug().Msg("Storage closed")
	}

	return nil
}

// unavailableProvider stands in for the data provider when it cannot be
// configured; every call returns the configuration error
type unavailableProvider struct {
	err error
}

func (p unavailableProvider) SearchSymbol(ctx context.Context, keywords string) ([]models.SymbolMatch, error) {
	return nil, p.err
}

func (p unavailableProvider) GetOverview(ctx context.Context, symbol string) (*models.Overview, error) {
	return nil, p.err
}

func (p unavailableProvider) GetIncomeStatements(ctx context.Context, symbol string) ([]models.IncomeStatement, error) {
	return nil, p.err
}

func (p unavailableProvider) GetBalanceSheets(ctx context.Context, symbol string) ([]models.BalanceSheet, error) {
	return nil, p.err
}

func (p unavailableProvider) GetCashFlows(ctx context.Context, symbol string) ([]models.CashFlow, error) {
	return nil, p.err
}
