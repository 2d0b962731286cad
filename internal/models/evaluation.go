package models

import "time"

// AnalysisPayload is the structured input handed to the narrative generator.
// All scorer outputs are carried in full.
type AnalysisPayload struct {
	Ticker     string      `json:"ticker" yaml:"ticker"`
	Overview   *Overview   `json:"overview" yaml:"overview"`
	Growth     ScoreResult `json:"growth" yaml:"growth"`
	Moat       ScoreResult `json:"moat" yaml:"moat"`
	Management ScoreResult `json:"management" yaml:"management"`
	Valuation  ScoreResult `json:"valuation" yaml:"valuation"`
}

// EvaluationSignal is the final narrative produced for a symbol
type EvaluationSignal struct {
	Report string `json:"report" yaml:"report"`
}

// EvaluationReport is a persisted evaluation run
type EvaluationReport struct {
	ID          string            `json:"id" yaml:"id"`
	Symbol      string            `json:"symbol" yaml:"symbol" badgerhold:"index"`
	Frequency   Frequency         `json:"frequency" yaml:"frequency"`
	Alignment   string            `json:"alignment" yaml:"alignment"`
	GeneratedAt time.Time         `json:"generated_at" yaml:"generated_at"`
	Provider    string            `json:"provider,omitempty" yaml:"provider,omitempty"`
	TimeSeries  []ProcessedPeriod `json:"time_series" yaml:"time_series"`
	Analysis    AnalysisPayload   `json:"analysis" yaml:"analysis"`
	Signal      *EvaluationSignal `json:"signal,omitempty" yaml:"signal,omitempty"`
}

// OverallScore is the unweighted mean of the four scorer results
func (p AnalysisPayload) OverallScore() float64 {
	return (p.Growth.Score + p.Moat.Score + p.Management.Score + p.Valuation.Score) / 4
}
