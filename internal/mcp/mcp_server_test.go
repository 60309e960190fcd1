package mcp_test

import (
	"context"
	"testing"

	"github.com/datakit/wefarm/internal/contract"
	mcp_internal "github.com/datakit/wefarm/internal/mcp"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServerHandlers(t *testing.T) {
	baseCfg := &contract.Config{
		DataDir: t.TempDir(),
	}

	s := mcp_internal.NewMCPServer(baseCfg)

	ctx := context.Background()

	t.Run("classify_question missing text", func(t *testing.T) {
		tool := s.GetTool("classify_question")
		require.NotNil(t, tool, "Tool classify_question should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "classify_question",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid parameters")
	})

	t.Run("classify_question crop specific", func(t *testing.T) {
		tool := s.GetTool("classify_question")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "classify_question",
				Arguments: map[string]any{
					"text": "My maize seedlings look pale",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.IsError)
		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, `"classification": "crop_specific"`)
		assert.Contains(t, text, "maize")
	})

	t.Run("run_correlation missing inputs", func(t *testing.T) {
		tool := s.GetTool("run_correlation")
		require.NotNil(t, tool, "Tool run_correlation should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "run_correlation",
				Arguments: map[string]any{},
			},
		}

		// The temp data dir has no processed aggregates, so the pipeline
		// reports the missing prerequisite as a tool error.
		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "correlation failed")
	})

	t.Run("detect_weather_events missing inputs", func(t *testing.T) {
		tool := s.GetTool("detect_weather_events")
		require.NotNil(t, tool, "Tool detect_weather_events should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "detect_weather_events",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "weather load failed")
	})
}
