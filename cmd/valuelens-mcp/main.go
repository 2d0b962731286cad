package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/valuelens/internal/app"
	"github.com/ternarybob/valuelens/internal/common"
)

func main() {
	// Load configuration
	configPath := os.Getenv("VALUELENS_CONFIG")
	var paths []string
	if configPath != "" {
		paths = append(paths, configPath)
	} else if _, err := os.Stat("valuelens.toml"); err == nil {
		paths = append(paths, "valuelens.toml")
	}

	config, err := common.LoadFromFiles(paths...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the MCP protocol, so log to file only
	config.Logging.Output = []string{"file"}
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	logger := common.InitLogger(config)

	application, err := app.New(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close()

	defaults, err := application.EvaluationOptions()
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid evaluation configuration")
	}

	if config.Scheduler.Enabled {
		if err := application.SchedulerService.Start(config.Scheduler.Schedule); err != nil {
			logger.Fatal().Err(err).Msg("Failed to start scheduler")
		}
	}

	h := &handlers{
		data:      application.FundamentalsService,
		evaluator: application.EvaluationService,
		defaults:  defaults,
		logger:    logger,
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		"valuelens",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(createSearchSymbolTool(), h.handleSearchSymbol)
	mcpServer.AddTool(createGetTimeSeriesTool(), h.handleGetTimeSeries)
	mcpServer.AddTool(createScoreStockTool(), h.handleScoreStock)
	mcpServer.AddTool(createEvaluateStockTool(), h.handleEvaluateStock)

	logger.Info().Msg("MCP server starting on stdio")

	// Start server (blocks on stdio)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error().Err(err).Msg("MCP server failed")
	}
}
