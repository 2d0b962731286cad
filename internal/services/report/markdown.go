package report

import (
	"fmt"
	"strings"

	"github.com/ternarybob/valuelens/internal/models"
	"github.com/ternarybob/valuelens/internal/services/rating"
)

// Section is one scored analysis with its display name
type Section struct {
	Name   string
	Result models.ScoreResult
}

// Sections lists the four analyses in display order
func Sections(p *models.AnalysisPayload) []Section {
	return []Section{
		{Name: "Growth", Result: p.Growth},
		{Name: "Moat", Result: p.Moat},
		{Name: "Management", Result: p.Management},
		{Name: "Valuation", Result: p.Valuation},
	}
}

// Title returns "Name (SYMBOL)" when the company name is known
func Title(r *models.EvaluationReport) string {
	if o := r.Analysis.Overview; o != nil && o.Name != "" {
		return fmt.Sprintf("%s (%s)", o.Name, r.Symbol)
	}
	return r.Symbol
}

// Markdown renders a full evaluation report
func Markdown(r *models.EvaluationReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Value evaluation: %s\n\n", Title(r))
	fmt.Fprintf(&b, "Generated %s from %s reports", r.GeneratedAt.Format("2006-01-02 15:04"), r.Frequency)
	if r.Provider != "" {
		fmt.Fprintf(&b, ", narrative by %s", r.Provider)
	}
	b.WriteString(".\n\n")

	if o := r.Analysis.Overview; o != nil {
		writeOverview(&b, o)
	}

	b.WriteString(ScoresMarkdown(&r.Analysis))

	if len(r.TimeSeries) > 0 {
		b.WriteString("## Time series\n\n")
		b.WriteString(TimeSeriesMarkdown(r.TimeSeries))
		b.WriteString("\n")
	}

	if r.Signal != nil && strings.TrimSpace(r.Signal.Report) != "" {
		b.WriteString("## Evaluation\n\n")
		b.WriteString(strings.TrimSpace(r.Signal.Report))
		b.WriteString("\n")
	}

	return b.String()
}

func writeOverview(b *strings.Builder, o *models.Overview) {
	var facts []string
	if o.Sector != "" {
		facts = append(facts, "Sector: "+o.Sector)
	}
	if o.Industry != "" {
		facts = append(facts, "Industry: "+o.Industry)
	}
	if v, ok := o.MarketCapitalization.Get(); ok {
		facts = append(facts, "Market cap: "+Compact(v))
	}
	if v, ok := o.PERatio.Get(); ok {
		facts = append(facts, fmt.Sprintf("P/E: %.2f", v))
	}
	if len(facts) == 0 {
		return
	}
	for _, f := range facts {
		fmt.Fprintf(b, "- %s\n", f)
	}
	b.WriteString("\n")
}

// ScoresMarkdown renders the score summary table followed by each analysis' details
func ScoresMarkdown(p *models.AnalysisPayload) string {
	var b strings.Builder
	sections := Sections(p)

	b.WriteString("## Scores\n\n")
	b.WriteString("| Analysis | Score | Rating |\n|---|---|---|\n")
	for _, s := range sections {
		fmt.Fprintf(&b, "| %s | %.1f/10 | %s |\n", s.Name, s.Result.Score, rating.LabelFor(s.Result.Score))
	}
	overall := p.OverallScore()
	fmt.Fprintf(&b, "| **Overall** | **%.1f/10** | **%s** |\n\n", overall, rating.LabelFor(overall))

	for _, s := range sections {
		fmt.Fprintf(&b, "### %s\n\n", s.Name)
		if len(s.Result.Details) == 0 {
			b.WriteString("No details.\n\n")
			continue
		}
		for _, d := range s.Result.Details {
			fmt.Fprintf(&b, "- %s\n", d)
		}
		if extra := s.Result.Extra; extra != nil && extra.IntrinsicValueRange != nil {
			iv := extra.IntrinsicValueRange
			fmt.Fprintf(&b, "- Intrinsic value: %s / %s / %s (10x / 15x / 20x FCF)\n",
				Compact(iv.Conservative), Compact(iv.Reasonable), Compact(iv.Optimistic))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// TimeSeriesMarkdown renders the periods as a markdown table
func TimeSeriesMarkdown(periods []models.ProcessedPeriod) string {
	var b strings.Builder
	writeRow(&b, TimeSeriesHeader)
	b.WriteString("|" + strings.Repeat("---|", len(TimeSeriesHeader)) + "\n")
	for _, row := range TimeSeriesRows(periods) {
		writeRow(&b, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
}
