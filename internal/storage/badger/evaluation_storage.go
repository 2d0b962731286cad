package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/valuelens/internal/common"
	"github.com/ternarybob/valuelens/internal/interfaces"
	"github.com/ternarybob/valuelens/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// EvaluationStorage implements the EvaluationStorage interface for Badger
type EvaluationStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewEvaluationStorage creates a new EvaluationStorage instance
func NewEvaluationStorage(db *BadgerDB, logger arbor.ILogger) interfaces.EvaluationStorage {
	return &EvaluationStorage{
		db:     db,
		logger: logger,
	}
}

func (s *EvaluationStorage) SaveEvaluation(ctx context.Context, report *models.EvaluationReport) error {
	if report == nil || report.ID == "" {
		return fmt.Errorf("evaluation report ID is required")
	}
	if err := s.db.Store().Upsert(report.ID, report); err != nil {
		return fmt.Errorf("failed to save evaluation: %w", err)
	}
	s.logger.Debug().Str("id", report.ID).Str("symbol", report.Symbol).Msg("Evaluation saved")
	return nil
}

func (s *EvaluationStorage) GetEvaluation(ctx context.Context, id string) (*models.EvaluationReport, error) {
	var report models.EvaluationReport
	err := s.db.Store().Get(id, &report)
	if err == badgerhold.ErrNotFound {
		return nil, fmt.Errorf("evaluation not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}
	return &report, nil
}

func (s *EvaluationStorage) ListEvaluations(ctx context.Context, symbol string, limit int) ([]*models.EvaluationReport, error) {
	query := badgerhold.Where("Symbol").Eq(common.NormalizeSymbol(symbol)).Index("Symbol").SortBy("GeneratedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	var reports []models.EvaluationReport
	if err := s.db.Store().Find(&reports, query); err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}

	out := make([]*models.EvaluationReport, len(reports))
	for i := range reports {
		out[i] = &reports[i]
	}
	return out, nil
}

func (s *EvaluationStorage) DeleteEvaluations(ctx context.Context, symbol string) (int, error) {
	query := badgerhold.Where("Symbol").Eq(common.NormalizeSymbol(symbol)).Index("Symbol")

	count, err := s.db.Store().Count(&models.EvaluationReport{}, query)
	if err != nil {
		return 0, fmt.Errorf("failed to count evaluations: %w", err)
	}
	if err := s.db.Store().DeleteMatching(&models.EvaluationReport{}, query); err != nil {
		return 0, fmt.Errorf("failed to delete evaluations: %w", err)
	}
	return int(count), nil
}
