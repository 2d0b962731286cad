package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/valuelens/internal/models"
	"github.com/ternarybob/valuelens/internal/services/evaluation"
)

type symbolSearcher interface {
	SearchSymbol(ctx context.Context, keywords string) ([]models.SymbolMatch, error)
}

type evaluator interface {
	TimeSeries(ctx context.Context, symbol string, opts evaluation.Options) (*models.FundamentalData, []models.ProcessedPeriod, error)
	Run(ctx context.Context, symbol string, opts evaluation.Options) (*models.EvaluationReport, error)
}

type handlers struct {
	data      symbolSearcher
	evaluator evaluator
	defaults  evaluation.Options
	logger    arbor.ILogger
}

func textResult(markdown string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(markdown),
		},
	}
}

func errorResult(format string, args ...interface{}) *mcp.CallToolResult {
	result := textResult(fmt.Sprintf(format, args...))
	result.IsError = true
	return result
}

// options applies the per-call frequency and refresh arguments to the configured defaults
func (h *handlers) options(request mcp.CallToolRequest) evaluation.Options {
	opts := h.defaults
	opts.Refresh = request.GetBool("refresh", false)
	if request.GetBool("quarterly", opts.Frequency == models.FrequencyQuarterly) {
		opts.Frequency = models.FrequencyQuarterly
	} else {
		opts.Frequency = models.FrequencyAnnual
	}
	return opts
}

func requireSymbol(request mcp.CallToolRequest) (string, bool) {
	symbol, err := request.RequireString("symbol")
	symbol = strings.TrimSpace(symbol)
	return symbol, err == nil && symbol != ""
}

// handleSearchSymbol implements the search_symbol tool
func (h *handlers) handleSearchSymbol(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keywords, err := request.RequireString("keywords")
	if err != nil || strings.TrimSpace(keywords) == "" {
		return errorResult("Error: keywords parameter is required"), nil
	}

	matches, err := h.data.SearchSymbol(ctx, keywords)
	if err != nil {
		h.logger.Error().Err(err).Str("keywords", keywords).Msg("Symbol search failed")
		return errorResult("Search error: %v", err), nil
	}

	return textResult(formatSymbolMatches(keywords, matches)), nil
}

// handleGetTimeSeries implements the get_time_series tool
func (h *handlers) handleGetTimeSeries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbol, ok := requireSymbol(request)
	if !ok {
		return errorResult("Error: symbol parameter is required"), nil
	}

	opts := h.options(request)
	data, series, err := h.evaluator.TimeSeries(ctx, symbol, opts)
	if err != nil {
		h.logger.Error().Err(err).Str("symbol", symbol).Msg("Time series failed")
		return errorResult("Time series error: %v", err), nil
	}

	return textResult(formatTimeSeries(data, series, opts.Frequency)), nil
}

// handleScoreStock implements the score_stock tool
func (h *handlers) handleScoreStock(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.runEvaluation(ctx, request, false)
}

// handleEvaluateStock implements the evaluate_stock tool
func (h *handlers) handleEvaluateStock(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.runEvaluation(ctx, request, true)
}

func (h *handlers) runEvaluation(ctx context.Context, request mcp.CallToolRequest, narrative bool) (*mcp.CallToolResult, error) {
	symbol, ok := requireSymbol(request)
	if !ok {
		return errorResult("Error: symbol parameter is required"), nil
	}

	opts := h.options(request)
	opts.Narrative = narrative
	opts.Save = narrative

	result, err := h.evaluator.Run(ctx, symbol, opts)
	if err != nil {
		h.logger.Error().Err(err).Str("symbol", symbol).Bool("narrative", narrative).Msg("Evaluation failed")
		return errorResult("Evaluation error: %v", err), nil
	}

	return textResult(formatEvaluation(result, opts.Save)), nil
}
