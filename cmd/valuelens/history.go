package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ternarybob/valuelens/internal/services/rating"
)

var historyCmd = &cobra.Command{
	Use:   "history SYMBOL",
	Short: "List stored evaluations for a symbol",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print a stored evaluation",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var (
	historyLimit int
	historyClear bool
	showPDF      string
)

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum evaluations to list (0 = all)")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete every stored evaluation for the symbol")
	addFormatFlag(historyCmd)

	showCmd.Flags().StringVar(&showPDF, "pdf", "", "Also write the report to this PDF file")
	addFormatFlag(showCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if historyClear {
		deleted, err := application.EvaluationService.ClearHistory(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %d evaluations.\n", deleted)
		return nil
	}

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	reports, err := application.EvaluationService.History(cmd.Context(), args[0], historyLimit)
	if err != nil {
		return err
	}

	if format != formatText {
		return writeStructured(out, format, reports)
	}
	if len(reports) == 0 {
		fmt.Fprintf(out, "No stored evaluations for %s.\n", args[0])
		return nil
	}

	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		overall := r.Analysis.OverallScore()
		provider := r.Provider
		if provider == "" {
			provider = "-"
		}
		rows = append(rows, []string{
			r.ID,
			r.GeneratedAt.Local().Format("2006-01-02 15:04"),
			string(r.Frequency),
			fmt.Sprintf("%.1f", overall),
			string(rating.LabelFor(overall)),
			provider,
		})
	}
	return writeTable(out, []string{"ID", "GENERATED", "FREQUENCY", "OVERALL", "RATING", "PROVIDER"}, rows)
}

func runShow(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	result, err := application.EvaluationService.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if showPDF != "" {
		if err := application.PDFService.WriteEvaluation(result, showPDF); err != nil {
			return err
		}
	}

	if format != formatText {
		return writeStructured(cmd.OutOrStdout(), format, result)
	}
	return writeEvaluationText(cmd.OutOrStdout(), result)
}
