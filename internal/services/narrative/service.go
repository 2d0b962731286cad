// Package narrative turns a scored analysis into a written evaluation using an LLM.
package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/valuelens/internal/interfaces"
	"github.com/ternarybob/valuelens/internal/models"
	"github.com/ternarybob/valuelens/internal/services/llm"
)

// ErrEmptyReport is returned when the model answers without a report
var ErrEmptyReport = errors.New("narrative response contained no report")

// Service implements interfaces.Narrator
type Service struct {
	generator llm.ContentGenerator
	model     string
	logger    arbor.ILogger
}

var _ interfaces.Narrator = (*Service)(nil)

// NewService creates a narrator. An empty model uses the configured default provider.
func NewService(generator llm.ContentGenerator, model string, logger arbor.ILogger) *Service {
	return &Service{
		generator: generator,
		model:     model,
		logger:    logger,
	}
}

// Narrate asks the model for an evaluation of payload
func (s *Service) Narrate(ctx context.Context, payload *models.AnalysisPayload) (*models.EvaluationSignal, error) {
	if payload == nil {
		return nil, fmt.Errorf("analysis payload is nil")
	}

	userPrompt, err := buildUserPrompt(payload)
	if err != nil {
		return nil, err
	}

	system := systemPrompt
	if !s.schemaEnforced() {
		system += jsonInstruction
	}

	s.logger.Info().
		Str("ticker", payload.Ticker).
		Str("model", s.model).
		Msg("Requesting evaluation narrative")

	resp, err := s.generator.GenerateContent(ctx, &llm.ContentRequest{
		Messages:          []interfaces.Message{{Role: "user", Content: userPrompt}},
		Model:             s.model,
		SystemInstruction: system,
		OutputSchema:      outputSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("narrative generation failed: %w", err)
	}

	signal, err := parseSignal(resp.Text)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", payload.Ticker).Int("response_len", len(resp.Text)).Msg("Unusable narrative response")
		return nil, err
	}

	s.logger.Debug().
		Str("ticker", payload.Ticker).
		Str("provider", string(resp.Provider)).
		Str("model", resp.Model).
		Int("report_len", len(signal.Report)).
		Msg("Narrative generated")

	return signal, nil
}

// ModelName returns "provider/model" for the model Narrate will call
func (s *Service) ModelName() string {
	if resolver, ok := s.generator.(interface {
		ResolveModel(model string) (llm.ProviderType, string)
	}); ok {
		provider, model := resolver.ResolveModel(s.model)
		return string(provider) + "/" + model
	}
	return s.model
}

// schemaEnforced reports whether the target provider honours OutputSchema
func (s *Service) schemaEnforced() bool {
	if detector, ok := s.generator.(interface {
		DetectProvider(model string) llm.ProviderType
	}); ok {
		return detector.DetectProvider(s.model) == llm.ProviderGemini
	}
	return false
}

// parseSignal decodes {"report": ...}, repairing malformed JSON first.
// A reply that is not JSON at all is taken as the report itself.
func parseSignal(text string) (*models.EvaluationSignal, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyReport
	}

	var signal models.EvaluationSignal
	if !looksLikeJSON(trimmed) {
		signal.Report = trimmed
	} else if err := json.Unmarshal([]byte(trimmed), &signal); err != nil {
		repaired, repairErr := jsonrepair.RepairJSON(trimmed)
		if repairErr != nil {
			return nil, fmt.Errorf("failed to repair narrative response: %w", repairErr)
		}
		if err := json.Unmarshal([]byte(repaired), &signal); err != nil {
			return nil, fmt.Errorf("failed to decode narrative response: %w", err)
		}
	}

	signal.Report = strings.TrimSpace(signal.Report)
	if signal.Report == "" {
		return nil, ErrEmptyReport
	}
	return &signal, nil
}

func looksLikeJSON(s string) bool {
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")
}
