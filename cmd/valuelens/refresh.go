package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/ternarybob/valuelens/internal/common"
	"github.com/ternarybob/valuelens/internal/services/scheduler"
)

// useConfiguredSchedule is the --schedule value when the flag is given without a cron expression
const useConfiguredSchedule = "configured"

var refreshCmd = &cobra.Command{
	Use:   "refresh [SYMBOL...]",
	Short: "Refresh cached fundamentals from the provider",
	Long: `Fetches every report kind for the given symbols, or for the configured
[scheduler] symbols, or for every cached symbol, and merges them into the cache.

With --schedule the refresh runs on a cron schedule until interrupted.`,
	RunE: runRefresh,
}

var refreshSchedule string

func init() {
	refreshCmd.Flags().StringVar(&refreshSchedule, "schedule", "", "Run on a cron schedule (5 fields); without a value uses [scheduler] schedule")
	refreshCmd.Flags().Lookup("schedule").NoOptDefVal = useConfiguredSchedule
}

func runRefresh(cmd *cobra.Command, args []string) error {
	service := application.SchedulerService
	if len(args) > 0 {
		service = scheduler.NewService(application.FundamentalsService, &common.SchedulerConfig{Symbols: args}, logger)
	}

	if refreshSchedule == "" {
		result, err := service.RunOnce(cmd.Context())
		if err != nil {
			return err
		}
		return printRefreshResult(cmd, result)
	}

	schedule := refreshSchedule
	if schedule == useConfiguredSchedule {
		schedule = config.Scheduler.Schedule
	}
	if err := service.Start(schedule); err != nil {
		return err
	}
	defer service.Stop()

	status := service.GetStatus()
	fmt.Fprintf(cmd.OutOrStdout(), "Refreshing on schedule %q", schedule)
	if status.NextRun != nil {
		fmt.Fprintf(cmd.OutOrStdout(), ", next run %s", status.NextRun.Local().Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(cmd.OutOrStdout(), ". Press Ctrl+C to stop.")

	<-cmd.Context().Done()
	logger.Info().Msg("Interrupt signal received")
	return nil
}

func printRefreshResult(cmd *cobra.Command, result *scheduler.RefreshResult) error {
	out := cmd.OutOrStdout()
	if len(result.Refreshed) == 0 && len(result.Failed) == 0 {
		fmt.Fprintln(out, "Nothing to refresh: no symbols given, configured or cached.")
		return nil
	}

	for _, symbol := range result.Refreshed {
		fmt.Fprintf(out, "refreshed  %s\n", symbol)
	}

	failed := make([]string, 0, len(result.Failed))
	for symbol := range result.Failed {
		failed = append(failed, symbol)
	}
	sort.Strings(failed)
	for _, symbol := range failed {
		fmt.Fprintf(out, "failed     %s: %v\n", symbol, result.Failed[symbol])
	}

	fmt.Fprintf(out, "\n%d refreshed, %d failed in %s\n", len(result.Refreshed), len(failed), result.Duration.Round(time.Millisecond))
	if len(failed) > 0 {
		return fmt.Errorf("%d symbols failed to refresh", len(failed))
	}
	return nil
}
