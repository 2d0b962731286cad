package models

// ScoreResult is the outcome of a single scorer
type ScoreResult struct {
	Score   float64         `json:"score" yaml:"score"`
	Raw     int             `json:"raw" yaml:"raw"`
	Details []string        `json:"details" yaml:"details"`
	Extra   *ValuationExtra `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// ValuationExtra carries the intermediate valuation figures when they can be computed
type ValuationExtra struct {
	NormalizedFCF       *float64             `json:"normalized_fcf,omitempty" yaml:"normalized_fcf,omitempty"`
	FCFYield            *float64             `json:"fcf_yield,omitempty" yaml:"fcf_yield,omitempty"`
	IntrinsicValueRange *IntrinsicValueRange `json:"intrinsic_value_range" yaml:"intrinsic_value_range"`
}

// IntrinsicValueRange holds intrinsic value at 10x, 15x and 20x normalized FCF
type IntrinsicValueRange struct {
	Conservative float64 `json:"conservative" yaml:"conservative"`
	Reasonable   float64 `json:"reasonable" yaml:"reasonable"`
	Optimistic   float64 `json:"optimistic" yaml:"optimistic"`
}
