package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search KEYWORDS...",
	Short: "Search for symbols by name or ticker",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	addFormatFlag(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	matches, err := application.FundamentalsService.SearchSymbol(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format != formatText {
		return writeStructured(out, format, matches)
	}
	if len(matches) == 0 {
		fmt.Fprintln(out, "No matching symbols found.")
		return nil
	}

	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{m.Symbol, m.Name, m.Type, m.Region, m.Currency, fmt.Sprintf("%.2f", m.MatchScore)})
	}
	return writeTable(out, []string{"SYMBOL", "NAME", "TYPE", "REGION", "CURRENCY", "MATCH"}, rows)
}
