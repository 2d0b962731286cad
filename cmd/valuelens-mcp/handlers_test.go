package main

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/valuelens/internal/models"
	"github.com/ternarybob/valuelens/internal/services/evaluation"
)

type fakeSearcher struct {
	matches []models.SymbolMatch
	err     error
}

func (f *fakeSearcher) SearchSymbol(ctx context.Context, keywords string) ([]models.SymbolMatch, error) {
	return f.matches, f.err
}

type fakeEvaluator struct {
	opts evaluation.Options
	err  error
}

func (f *fakeEvaluator) TimeSeries(ctx context.Context, symbol string, opts evaluation.Options) (*models.FundamentalData, []models.ProcessedPeriod, error) {
	f.opts = opts
	if f.err != nil {
		return nil, nil, f.err
	}
	data := &models.FundamentalData{Symbol: symbol, Overview: &models.Overview{Symbol: symbol, Name: "Tesco PLC"}}
	return data, []models.ProcessedPeriod{{FiscalDateEnding: "2024-02-29", Revenue: models.AmountOf(68_187e6)}}, nil
}

func (f *fakeEvaluator) Run(ctx context.Context, symbol string, opts evaluation.Options) (*models.EvaluationReport, error) {
	f.opts = opts
	if f.err != nil {
		return nil, f.err
	}
	r := &models.EvaluationReport{ID: "eval_1", Symbol: symbol, Frequency: opts.Frequency}
	if opts.Narrative {
		r.Provider = "gemini-2.5-flash"
		r.Signal = &models.EvaluationSignal{Report: "Durable grocer with thin margins."}
	}
	return r, nil
}

func newHandlers(search *fakeSearcher, eval *fakeEvaluator) *handlers {
	return &handlers{
		data:      search,
		evaluator: eval,
		defaults:  evaluation.Options{Frequency: models.FrequencyAnnual, Save: true},
		logger:    arbor.NewLogger(),
	}
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	var request mcp.CallToolRequest
	request.Params.Name = name
	request.Params.Arguments = args
	return request
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestHandleSearchSymbol(t *testing.T) {
	search := &fakeSearcher{matches: []models.SymbolMatch{
		{Symbol: "TSCO.LON", Name: "Tesco PLC", Type: "Equity", Region: "United Kingdom", Currency: "GBX", MatchScore: 0.8},
	}}
	h := newHandlers(search, &fakeEvaluator{})

	result, err := h.handleSearchSymbol(context.Background(), callRequest("search_symbol", map[string]interface{}{"keywords": "tesco"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	text := resultText(t, result)
	assert.Contains(t, text, `## Symbols matching "tesco" (1 results)`)
	assert.Contains(t, text, "| TSCO.LON | Tesco PLC | Equity | United Kingdom | GBX | 0.80 |")

	search.matches = nil
	result, err = h.handleSearchSymbol(context.Background(), callRequest("search_symbol", map[string]interface{}{"keywords": "zzz"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "No results found.")
}

func TestHandlers_ErrorsAsContent(t *testing.T) {
	h := newHandlers(&fakeSearcher{err: errors.New("rate limited")}, &fakeEvaluator{err: errors.New("no data")})

	tests := []struct {
		name    string
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args    map[string]interface{}
		want    string
	}{
		{"search missing keywords", h.handleSearchSymbol, map[string]interface{}{}, "keywords parameter is required"},
		{"search provider error", h.handleSearchSymbol, map[string]interface{}{"keywords": "ibm"}, "Search error: rate limited"},
		{"time series missing symbol", h.handleGetTimeSeries, map[string]interface{}{"symbol": "  "}, "symbol parameter is required"},
		{"time series failure", h.handleGetTimeSeries, map[string]interface{}{"symbol": "IBM"}, "Time series error: no data"},
		{"score failure", h.handleScoreStock, map[string]interface{}{"symbol": "IBM"}, "Evaluation error: no data"},
		{"evaluate missing symbol", h.handleEvaluateStock, map[string]interface{}{}, "symbol parameter is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.handler(context.Background(), callRequest("tool", tt.args))
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), tt.want)
		})
	}
}

func TestHandleGetTimeSeries(t *testing.T) {
	eval := &fakeEvaluator{}
	h := newHandlers(&fakeSearcher{}, eval)

	result, err := h.handleGetTimeSeries(context.Background(), callRequest("get_time_series", map[string]interface{}{
		"symbol":    "TSCO.LON",
		"quarterly": true,
		"refresh":   true,
	}))
	require.NoError(t, err)

	assert.Equal(t, models.FrequencyQuarterly, eval.opts.Frequency)
	assert.True(t, eval.opts.Refresh)
	text := resultText(t, result)
	assert.Contains(t, text, "## quarterly time series: Tesco PLC (TSCO.LON), 1 periods")
	assert.Contains(t, text, "68187.0M")
}

func TestHandleScoreAndEvaluate(t *testing.T) {
	eval := &fakeEvaluator{}
	h := newHandlers(&fakeSearcher{}, eval)

	result, err := h.handleScoreStock(context.Background(), callRequest("score_stock", map[string]interface{}{"symbol": "IBM"}))
	require.NoError(t, err)
	assert.False(t, eval.opts.Narrative)
	assert.False(t, eval.opts.Save)
	assert.Equal(t, models.FrequencyAnnual, eval.opts.Frequency)
	text := resultText(t, result)
	assert.Contains(t, text, "IBM")
	assert.NotContains(t, text, "Stored as")

	result, err = h.handleEvaluateStock(context.Background(), callRequest("evaluate_stock", map[string]interface{}{"symbol": "IBM"}))
	require.NoError(t, err)
	assert.True(t, eval.opts.Narrative)
	assert.True(t, eval.opts.Save)
	text = resultText(t, result)
	assert.Contains(t, text, "Durable grocer with thin margins.")
	assert.Contains(t, text, "Stored as `eval_1`.")
}
