package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/datakit/wefarm/core"
	"github.com/datakit/wefarm/internal/contract"
	"github.com/datakit/wefarm/internal/loader"
	"github.com/datakit/wefarm/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

func (h *toolHandler) handleRunCorrelation(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if d := request.GetString("data_dir", ""); d != "" {
		cfg.DataDir = d
	}
	if l := request.GetInt("max_lag", 0); l > 0 {
		cfg.MaxLag = l
	}
	if w := request.GetInt("impact_window", 0); w > 0 {
		cfg.ImpactWindow = w
	}

	report, err := core.BuildCorrelationReport(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("correlation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleDetectWeatherEvents(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if d := request.GetString("data_dir", ""); d != "" {
		cfg.DataDir = d
	}
	if r := request.GetFloat("rain_threshold", 0); r > 0 {
		cfg.RainThreshold = r
	}
	if n := request.GetInt("min_run", 0); n > 0 {
		cfg.MinRunLength = n
	}

	byCountry, err := loader.LoadWeatherDir(cfg.RawDir())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("weather load failed: %v", err)), nil
	}
	events := core.DetectEvents(core.MergeWeather(byCountry), core.DetectorConfig{
		RainThreshold: cfg.RainThreshold,
		DroughtSum:    cfg.DroughtSum,
		DroughtWindow: cfg.DroughtWindow,
		HeatThreshold: cfg.HeatThreshold,
		ColdThreshold: cfg.ColdThreshold,
		MinRunLength:  cfg.MinRunLength,
	})

	payload := struct {
		Counts map[schema.EventCategory]int `json:"weather_events"`
		Events []schema.WeatherEvent        `json:"events"`
	}{
		Counts: core.CountEvents(events),
		Events: events,
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleClassifyQuestion(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	class, cropCount, generalCount, crops := core.ClassifyText(text)
	result := schema.ClassifiedQuestion{
		Text:           text,
		Class:          class,
		CropMatches:    cropCount,
		GeneralMatches: generalCount,
		Crops:          crops,
	}
	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
