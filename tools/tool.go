// Package tools provides MCP tool definitions for the guidebook server.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/grafana/guidebook/internal/logging"
)

// withToolLogger wraps a tool handler to inject a request-scoped logger into context and
// provide panic recovery. The logger carries the tool name and a request id and is made
// available via logging.LoggerFromContext.
func withToolLogger(toolName string, handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		ctx, requestID := logging.ContextWithRequestID(ctx)
		logger := logging.WithTool(toolName).WithField("request_id", requestID)
		ctx = logging.ContextWithLogger(ctx, logger)

		startTime := time.Now()
		logging.RequestStart(logger, toolName, request.GetArguments())

		defer func() {
			if r := recover(); r != nil {
				logger.WithField("panic", r).Error("panic in tool execution")
				result = nil
				err = fmt.Errorf("internal error in tool execution: %v", r)
			}
			logging.RequestEnd(logger, toolName, err == nil && result != nil && !result.IsError, time.Since(startTime), err)
		}()

		return handler(ctx, request)
	}
}

func marshalResponse(logger logrus.FieldLogger, v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.WithError(err).Error("Failed to marshal response")
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

// pageRef identifies a page in tool responses.
type pageRef struct {
	ID    int    `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}
