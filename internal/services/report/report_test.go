package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ternarybob/valuelens/internal/models"
)

func TestFormatters(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"millions", Millions(models.AmountOf(146_000_000)), "146.0M"},
		{"millions unknown", Millions(models.Amount{}), "N/A"},
		{"percent", Percent(models.AmountOf(0.4567)), "45.7%"},
		{"percent unknown", Percent(models.Amount{}), "N/A"},
		{"ratio", Ratio(models.AmountOf(0.25)), "0.25"},
		{"compact billions", Compact(227e9), "227.00B"},
		{"compact trillions", Compact(3.1e12), "3.10T"},
		{"compact negative", Compact(-2_500_000), "-2.50M"},
		{"compact small", Compact(12.5), "12.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestTimeSeriesRows(t *testing.T) {
	periods := []models.ProcessedPeriod{
		{FiscalDateEnding: "2024-12-31", Revenue: models.AmountOf(146e6), FreeCashFlow: models.AmountOf(50e6)},
		{FiscalDateEnding: "2023-12-31"},
	}

	rows := TimeSeriesRows(periods)
	assert.Len(t, rows, 2)
	assert.Len(t, rows[0], len(TimeSeriesHeader))
	assert.Equal(t, []string{"2024-12-31", "146.0M", "N/A", "50.0M", "N/A", "N/A", "N/A", "N/A"}, rows[0])
	assert.Equal(t, "2023-12-31", rows[1][0])
}

func sampleReport() *models.EvaluationReport {
	conservative := &models.IntrinsicValueRange{Conservative: 500e6, Reasonable: 750e6, Optimistic: 1e9}
	return &models.EvaluationReport{
		Symbol:      "IBM",
		Frequency:   models.FrequencyAnnual,
		GeneratedAt: time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		Provider:    "gemini/gemini-2.5-flash",
		TimeSeries:  []models.ProcessedPeriod{{FiscalDateEnding: "2024-12-31", Revenue: models.AmountOf(62.7e9)}},
		Analysis: models.AnalysisPayload{
			Ticker:     "IBM",
			Overview:   &models.Overview{Symbol: "IBM", Name: "International Business Machines", Sector: "TECHNOLOGY", MarketCapitalization: models.AmountOf(227e9)},
			Growth:     models.ScoreResult{Score: 8, Details: []string{"Revenue growth strong"}},
			Moat:       models.ScoreResult{Score: 6.5},
			Management: models.ScoreResult{Score: 4, Details: []string{"Low debt"}},
			Valuation:  models.ScoreResult{Score: 2, Details: []string{"Trading above fair value"}, Extra: &models.ValuationExtra{IntrinsicValueRange: conservative}},
		},
		Signal: &models.EvaluationSignal{Report: "  A durable franchise at a full price.  "},
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleReport())

	assert.True(t, strings.HasPrefix(md, "# Value evaluation: International Business Machines (IBM)\n"))
	assert.Contains(t, md, "narrative by gemini/gemini-2.5-flash")
	assert.Contains(t, md, "- Market cap: 227.00B")
	assert.Contains(t, md, "| Growth | 8.0/10 | Excellent |")
	assert.Contains(t, md, "| Moat | 6.5/10 | Good |")
	assert.Contains(t, md, "| Management | 4.0/10 | Fair |")
	assert.Contains(t, md, "| Valuation | 2.0/10 | Poor |")
	assert.Contains(t, md, "| **Overall** | **5.1/10** | **Fair** |")
	assert.Contains(t, md, "### Moat\n\nNo details.")
	assert.Contains(t, md, "- Intrinsic value: 500.00M / 750.00M / 1.00B")
	assert.Contains(t, md, "| 2024-12-31 | 62700.0M |")
	assert.True(t, strings.HasSuffix(md, "## Evaluation\n\nA durable franchise at a full price.\n"))
}

func TestMarkdown_WithoutNarrativeOrOverview(t *testing.T) {
	r := sampleReport()
	r.Signal = nil
	r.Provider = ""
	r.Analysis.Overview = nil
	r.TimeSeries = nil

	md := Markdown(r)
	assert.True(t, strings.HasPrefix(md, "# Value evaluation: IBM\n"))
	assert.NotContains(t, md, "## Evaluation")
	assert.NotContains(t, md, "## Time series")
	assert.NotContains(t, md, "narrative by")
}
