package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/valuelens/internal/models"
)

func newFormatCommand(t *testing.T, format string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addFormatFlag(cmd)
	require.NoError(t, cmd.Flags().Set("format", format))
	return cmd
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		format     string
		want       string
		wantErr    bool
		structured bool
	}{
		{format: "text", want: formatText},
		{format: "JSON", want: formatJSON, structured: true},
		{format: "yaml", want: formatYAML, structured: true},
		{format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cmd := newFormatCommand(t, tt.format)
			got, err := outputFormat(cmd)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.Equal(t, tt.structured, machineReadable(cmd))
		})
	}

	assert.False(t, machineReadable(&cobra.Command{Use: "no-format"}))
}

func TestWithoutConsole(t *testing.T) {
	assert.Equal(t, []string{"file"}, withoutConsole([]string{"stdout", "file", "console"}))
	assert.Empty(t, withoutConsole([]string{"stdout"}))
}

func TestWriteStructured(t *testing.T) {
	entry := models.CacheEntry{Symbol: "IBM", Kinds: []models.ReportKind{models.KindOverview}}

	var buf bytes.Buffer
	require.NoError(t, writeStructured(&buf, formatJSON, entry))
	assert.Contains(t, buf.String(), `"symbol": "IBM"`)

	buf.Reset()
	require.NoError(t, writeStructured(&buf, formatYAML, entry))
	assert.Contains(t, buf.String(), "symbol: IBM")
	assert.Contains(t, buf.String(), "- overview")

	assert.Error(t, writeStructured(&buf, formatText, entry))
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, []string{"SYMBOL", "NAME"}, [][]string{{"IBM", "International Business Machines"}, {"VOD.LON", "Vodafone"}}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "SYMBOL   NAME", lines[0])
	assert.Equal(t, "VOD.LON  Vodafone", lines[2])
}

func TestWriteEvaluationText(t *testing.T) {
	r := &models.EvaluationReport{
		Symbol:      "IBM",
		Frequency:   models.FrequencyAnnual,
		GeneratedAt: time.Now(),
		Provider:    "claude/claude-sonnet-4-20250514",
		TimeSeries:  []models.ProcessedPeriod{{FiscalDateEnding: "2024-12-31", Revenue: models.AmountOf(62.7e9)}},
		Analysis: models.AnalysisPayload{
			Ticker:   "IBM",
			Overview: &models.Overview{Symbol: "IBM", Name: "International Business Machines", MarketCapitalization: models.AmountOf(227e9)},
			Growth:   models.ScoreResult{Score: 8.5, Details: []string{"Revenue growth excellent"}},
		},
		Signal: &models.EvaluationSignal{Report: "Wonderful business."},
	}

	var buf bytes.Buffer
	require.NoError(t, writeEvaluationText(&buf, r))
	out := buf.String()

	assert.Contains(t, out, "International Business Machines (IBM)")
	assert.Contains(t, out, "Market cap: 227.00B")
	assert.Contains(t, out, "62700.0M")
	assert.Contains(t, out, "Growth       8.5/10  Excellent")
	assert.Contains(t, out, "    - Revenue growth excellent")
	assert.Contains(t, out, "Overall      2.1/10  Poor")
	assert.Contains(t, out, "Evaluation (claude/claude-sonnet-4-20250514)")
	assert.True(t, strings.HasSuffix(out, "Wonderful business.\n"))
}
