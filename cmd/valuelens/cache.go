package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ternarybob/valuelens/internal/common"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear cached fundamental data",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached symbols",
	Args:  cobra.NoArgs,
	RunE:  runCacheList,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [SYMBOL]",
	Short: "Clear cached data for SYMBOL, or for every symbol",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCacheClear,
}

func init() {
	addFormatFlag(cacheListCmd)
	cacheCmd.AddCommand(cacheListCmd, cacheClearCmd)
}

func runCacheList(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	entries, err := application.FundamentalsService.CachedSymbols(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format != formatText {
		return writeStructured(out, format, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "Cache is empty.")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		kinds := make([]string, len(e.Kinds))
		for i, k := range e.Kinds {
			kinds[i] = string(k)
		}
		rows = append(rows, []string{e.Symbol, strings.Join(kinds, ", "), e.LastUpdated.Local().Format("2006-01-02 15:04")})
	}
	return writeTable(out, []string{"SYMBOL", "KINDS", "UPDATED"}, rows)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	symbol := ""
	if len(args) == 1 {
		if symbol = common.NormalizeSymbol(args[0]); symbol == "" {
			return fmt.Errorf("invalid symbol %q", args[0])
		}
	}

	if err := application.FundamentalsService.ClearCache(cmd.Context(), symbol); err != nil {
		return err
	}

	if symbol == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Cleared cached data for all symbols.")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared cached data for %s.\n", symbol)
	}
	return nil
}
