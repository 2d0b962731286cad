package interfaces

import (
	"context"

	"github.com/ternarybob/valuelens/internal/models"
)

// Narrator turns a scored analysis into a written evaluation
type Narrator interface {
	Narrate(ctx context.Context, payload *models.AnalysisPayload) (*models.EvaluationSignal, error)
}

// EvaluationStorage - persistence of evaluation runs
type EvaluationStorage interface {
	SaveEvaluation(ctx context.Context, report *models.EvaluationReport) error
	GetEvaluation(ctx context.Context, id string) (*models.EvaluationReport, error)
	// ListEvaluations returns runs for symbol newest first; limit <= 0 means no limit
	ListEvaluations(ctx context.Context, symbol string, limit int) ([]*models.EvaluationReport, error)
	DeleteEvaluations(ctx context.Context, symbol string) (int, error)
}
