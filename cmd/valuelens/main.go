package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/valuelens/internal/app"
	"github.com/ternarybob/valuelens/internal/common"
)

var (
	// Global flags
	configFiles []string
	logLevel    string

	// Global state, set up in PersistentPreRunE
	config      *common.Config
	logger      arbor.ILogger
	application *app.App
)

var rootCmd = &cobra.Command{
	Use:   "valuelens",
	Short: "Value-investing evaluation of listed companies",
	Long: `ValueLens fetches company fundamentals from Alpha Vantage, scores growth, moat,
management and valuation, and asks an LLM for a written value-investing evaluation.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if application != nil {
			if err := application.Close(); err != nil {
				logger.Warn().Err(err).Msg("Failed to close application")
			}
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringArrayVarP(&configFiles, "config", "c", nil, "Configuration file path (repeatable, later files override earlier ones)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(evaluateCmd, searchCmd, cacheCmd, refreshCmd, historyCmd, showCmd, versionCmd)
}

// setup runs the startup sequence (REQUIRED ORDER):
// 1. Load config (defaults -> file1 -> file2 -> ... -> .env -> env)
// 2. Apply CLI overrides (highest priority)
// 3. Validate
// 4. Initialize logger
// 5. Print banner
// 6. Initialize application
func setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("valuelens.toml"); err == nil {
			configFiles = append(configFiles, "valuelens.toml")
		}
	}

	var err error
	config, err = common.LoadFromFiles(configFiles...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	quarterly, _ := cmd.Flags().GetBool("quarterly")
	common.ApplyFlagOverrides(config, logLevel, quarterly)

	structured := machineReadable(cmd)
	if structured {
		// Keep stdout clean for JSON/YAML consumers
		config.Logging.Output = withoutConsole(config.Logging.Output)
	}

	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger = common.InitLogger(config)

	if !structured {
		common.PrintBanner(common.GetVersion())
	}

	logger.Debug().
		Strs("config_files", configFiles).
		Str("log_level", config.Logging.Level).
		Str("badger_path", config.Storage.Badger.Path).
		Msg("Resolved configuration")

	application, err = app.New(config, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return nil
}

func withoutConsole(outputs []string) []string {
	kept := make([]string, 0, len(outputs))
	for _, o := range outputs {
		if o != "stdout" && o != "console" {
			kept = append(kept, o)
		}
	}
	return kept
}

func main() {
	common.LoadVersionFromFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
