package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func symbolParam() mcp.ToolOption {
	return mcp.WithString("symbol",
		mcp.Required(),
		mcp.Description("Ticker symbol: CODE, CODE.SUFFIX (TSCO.LON) or EXCHANGE:CODE (LSE:TSCO)"),
	)
}

func quarterlyParam() mcp.ToolOption {
	return mcp.WithBoolean("quarterly",
		mcp.Description("Use quarterly instead of annual reports (default: configured frequency)"),
	)
}

func refreshParam() mcp.ToolOption {
	return mcp.WithBoolean("refresh",
		mcp.Description("Fetch every report kind from the provider even when cached (default: false)"),
	)
}

// createSearchSymbolTool returns the search_symbol tool definition
func createSearchSymbolTool() mcp.Tool {
	return mcp.NewTool("search_symbol",
		mcp.WithDescription("Search listed companies by name or ticker"),
		mcp.WithString("keywords",
			mcp.Required(),
			mcp.Description("Company name or ticker fragment, e.g. 'tesco' or 'IBM'"),
		),
	)
}

// createGetTimeSeriesTool returns the get_time_series tool definition
func createGetTimeSeriesTool() mcp.Tool {
	return mcp.NewTool("get_time_series",
		mcp.WithDescription("Per-period fundamentals (revenue, net income, FCF, margins, ROIC, D/E, shares), newest first"),
		symbolParam(),
		quarterlyParam(),
		refreshParam(),
	)
}

// createScoreStockTool returns the score_stock tool definition
func createScoreStockTool() mcp.Tool {
	return mcp.NewTool("score_stock",
		mcp.WithDescription("Score growth, moat, management and valuation (0-10 each) without an LLM narrative"),
		symbolParam(),
		quarterlyParam(),
		refreshParam(),
	)
}

// createEvaluateStockTool returns the evaluate_stock tool definition
func createEvaluateStockTool() mcp.Tool {
	return mcp.NewTool("evaluate_stock",
		mcp.WithDescription("Full value-investing evaluation: scores plus a written LLM assessment. The report is stored in history."),
		symbolParam(),
		quarterlyParam(),
		refreshParam(),
	)
}
