package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ternarybob/valuelens/internal/models"
	"github.com/ternarybob/valuelens/internal/services/fundamentals"
	"github.com/ternarybob/valuelens/internal/services/rating"
	"github.com/ternarybob/valuelens/internal/services/report"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate SYMBOL",
	Short: "Score a company and write a value-investing evaluation",
	Long: `Fetches fundamentals (cache-first), builds the time series, scores growth, moat,
management and valuation, and asks the configured LLM for a written evaluation.

Symbols may be given as CODE, CODE.SUFFIX (TSCO.LON) or EXCHANGE:CODE (LSE:TSCO).`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

var (
	evaluateRefresh     bool
	evaluateNoNarrative bool
	evaluatePDF         string
	evaluateModel       string
	evaluateAlignment   string
)

func init() {
	evaluateCmd.Flags().Bool("quarterly", false, "Use quarterly instead of annual reports")
	evaluateCmd.Flags().BoolVar(&evaluateRefresh, "refresh", false, "Fetch every report kind from the provider even when cached")
	evaluateCmd.Flags().BoolVar(&evaluateNoNarrative, "no-narrative", false, "Skip the LLM evaluation and print scores only")
	evaluateCmd.Flags().StringVar(&evaluatePDF, "pdf", "", "Also write the report to this PDF file")
	evaluateCmd.Flags().StringVar(&evaluateModel, "model", "", "LLM model, e.g. gemini-2.5-flash or claude/claude-sonnet-4-20250514")
	evaluateCmd.Flags().StringVar(&evaluateAlignment, "alignment", "", "Period alignment across report kinds: date or position")
	addFormatFlag(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	opts, err := application.EvaluationOptions()
	if err != nil {
		return err
	}
	opts.Refresh = evaluateRefresh
	if evaluateNoNarrative {
		opts.Narrative = false
	}
	if evaluateAlignment != "" {
		if opts.Alignment, err = fundamentals.ParseAlignment(evaluateAlignment); err != nil {
			return err
		}
	}

	evaluator := application.EvaluationService
	if evaluateModel != "" {
		evaluator = application.Evaluator(evaluateModel)
	}

	result, err := evaluator.Run(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}

	if evaluatePDF != "" {
		if err := application.PDFService.WriteEvaluation(result, evaluatePDF); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if format != formatText {
		return writeStructured(out, format, result)
	}
	if err := writeEvaluationText(out, result); err != nil {
		return err
	}
	if evaluatePDF != "" {
		fmt.Fprintf(out, "\nPDF written to %s\n", evaluatePDF)
	}
	return nil
}

// writeEvaluationText prints the time series, the scores and the narrative
func writeEvaluationText(w io.Writer, r *models.EvaluationReport) error {
	rule := strings.Repeat("=", 60)

	fmt.Fprintf(w, "%s\n%s\n%s\n", rule, report.Title(r), rule)
	if o := r.Analysis.Overview; o != nil {
		if o.Sector != "" {
			fmt.Fprintf(w, "Sector: %s / %s\n", o.Sector, o.Industry)
		}
		if v, ok := o.MarketCapitalization.Get(); ok {
			fmt.Fprintf(w, "Market cap: %s\n", report.Compact(v))
		}
	}

	fmt.Fprintf(w, "\nTime series (%s, values in millions)\n\n", r.Frequency)
	if len(r.TimeSeries) == 0 {
		fmt.Fprintln(w, "No complete reporting periods available.")
	} else if err := writeTable(w, report.TimeSeriesHeader, report.TimeSeriesRows(r.TimeSeries)); err != nil {
		return err
	}

	fmt.Fprintln(w)
	for _, s := range report.Sections(&r.Analysis) {
		fmt.Fprintf(w, "%-11s %4.1f/10  %s\n", s.Name, s.Result.Score, rating.LabelFor(s.Result.Score))
		for _, d := range s.Result.Details {
			fmt.Fprintf(w, "    - %s\n", d)
		}
	}
	overall := r.Analysis.OverallScore()
	fmt.Fprintf(w, "%-11s %4.1f/10  %s\n", "Overall", overall, rating.LabelFor(overall))

	if r.Signal != nil {
		fmt.Fprintf(w, "\n%s\nEvaluation", rule)
		if r.Provider != "" {
			fmt.Fprintf(w, " (%s)", r.Provider)
		}
		fmt.Fprintf(w, "\n%s\n\n%s\n", rule, strings.TrimSpace(r.Signal.Report))
	}
	return nil
}
