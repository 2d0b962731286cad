package main

import (
	"fmt"
	"strings"

	"github.com/ternarybob/valuelens/internal/models"
	"github.com/ternarybob/valuelens/internal/services/report"
)

// formatSymbolMatches formats search results as a markdown table
func formatSymbolMatches(keywords string, matches []models.SymbolMatch) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Symbols matching \"%s\" (%d results)\n\n", keywords, len(matches)))

	if len(matches) == 0 {
		sb.WriteString("No results found.\n")
		return sb.String()
	}

	sb.WriteString("| Symbol | Name | Type | Region | Currency | Match |\n|---|---|---|---|---|---|\n")
	for _, m := range matches {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %.2f |\n", m.Symbol, m.Name, m.Type, m.Region, m.Currency, m.MatchScore))
	}
	return sb.String()
}

// formatTimeSeries formats a processed series as a markdown table
func formatTimeSeries(data *models.FundamentalData, series []models.ProcessedPeriod, frequency models.Frequency) string {
	var sb strings.Builder
	name := data.Symbol
	if data.Overview != nil && data.Overview.Name != "" {
		name = fmt.Sprintf("%s (%s)", data.Overview.Name, data.Symbol)
	}
	sb.WriteString(fmt.Sprintf("## %s time series: %s, %d periods\n\n", frequency, name, len(series)))

	if len(series) == 0 {
		sb.WriteString("No complete reporting periods available.\n")
		return sb.String()
	}

	sb.WriteString(report.TimeSeriesMarkdown(series))
	sb.WriteString("\nRevenue, net income, FCF and shares in millions.\n")
	return sb.String()
}

// formatEvaluation formats an evaluation, with or without narrative
func formatEvaluation(r *models.EvaluationReport, saved bool) string {
	md := report.Markdown(r)
	if saved && r.ID != "" {
		md += fmt.Sprintf("\n---\nStored as `%s`.\n", r.ID)
	}
	return md
}
