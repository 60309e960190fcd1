// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/datakit/wefarm/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the WeFarm MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"WeFarm Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{baseCfg: baseCfg}

	// --- 1. Tool: run_correlation ---
	s.AddTool(mcp.NewTool("run_correlation",
		mcp.WithDescription("Run the weather/question correlation pipeline: zero-lag Pearson matrix, lag sweep, event detection and impact analysis."),
		mcp.WithString("data_dir", mcp.Description("Data directory holding raw/ and processed/ inputs (defaults to the configured directory).")),
		mcp.WithNumber("max_lag", mcp.Description("Maximum lag in days for the sweep. Defaults to 28.")),
		mcp.WithNumber("impact_window", mcp.Description("Day offset for the before/after impact windows. Defaults to 7.")),
	), h.handleRunCorrelation)

	// --- 2. Tool: detect_weather_events ---
	s.AddTool(mcp.NewTool("detect_weather_events",
		mcp.WithDescription("Scan the fetched weather series for heavy rain, drought, heat wave and cold spell events."),
		mcp.WithString("data_dir", mcp.Description("Data directory holding raw/ weather CSVs.")),
		mcp.WithNumber("rain_threshold", mcp.Description("Heavy rain threshold in mm per day. Defaults to 50.")),
		mcp.WithNumber("min_run", mcp.Description("Minimum consecutive qualifying days for heat wave and cold spell. Defaults to 3.")),
	), h.handleDetectWeatherEvents)

	// --- 3. Tool: classify_question ---
	s.AddTool(mcp.NewTool("classify_question",
		mcp.WithDescription("Classify one question as crop_specific, general, mixed or unknown by keyword matching."),
		mcp.WithString("text", mcp.Description("The question text to classify."), mcp.Required()),
	), h.handleClassifyQuestion)

	return s
}

// StartMCPServer starts the WeFarm MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
