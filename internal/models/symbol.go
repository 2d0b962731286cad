package models

import "time"

// SymbolMatch is one result of a symbol search
type SymbolMatch struct {
	Symbol      string  `json:"symbol" yaml:"symbol"`
	Name        string  `json:"name" yaml:"name"`
	Type        string  `json:"type" yaml:"type"`
	Region      string  `json:"region" yaml:"region"`
	MarketOpen  string  `json:"market_open" yaml:"market_open"`
	MarketClose string  `json:"market_close" yaml:"market_close"`
	Timezone    string  `json:"timezone" yaml:"timezone"`
	Currency    string  `json:"currency" yaml:"currency"`
	MatchScore  float64 `json:"match_score" yaml:"match_score"`
}

// CacheEntry describes what is cached for one symbol
type CacheEntry struct {
	Symbol      string       `json:"symbol" yaml:"symbol"`
	Kinds       []ReportKind `json:"kinds" yaml:"kinds"`
	LastUpdated time.Time    `json:"last_updated" yaml:"last_updated"`
}
