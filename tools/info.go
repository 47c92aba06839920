package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/grafana/guidebook/internal/buildinfo"
	"github.com/grafana/guidebook/internal/logging"
	"github.com/grafana/guidebook/internal/pages"
	"github.com/grafana/guidebook/internal/search"
)

// InfoTool exposes runtime information about the server and the loaded guide.
//
//nolint:gochecknoglobals // Shared tool definition registered at startup.
var InfoTool = mcp.NewTool(
	"info",
	mcp.WithDescription("Get details about the guidebook server and the loaded guide."),
)

// InfoResponse is the response to the info tool.
type InfoResponse struct {
	// Version is the version of the guidebook server.
	Version string `json:"version"`

	// Commit is the source revision the server was built from.
	Commit string `json:"commit"`

	// Title is the title of the root page.
	Title string `json:"title"`

	// Pages is the number of pages in the navigation tree.
	Pages int `json:"pages"`

	// Documents is the number of searchable documents.
	Documents int `json:"documents"`
}

// RegisterInfoTool registers the info tool with the MCP server.
func RegisterInfoTool(s *server.MCPServer, finder *pages.Finder, index *search.Index) {
	s.AddTool(InfoTool, withToolLogger("info", newInfoHandlerFunc(finder, index)))
}

func newInfoHandlerFunc(
	finder *pages.Finder,
	index *search.Index,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		response := InfoResponse{
			Version:   buildinfo.Version,
			Commit:    buildinfo.Commit,
			Title:     finder.Root().Title,
			Pages:     len(finder.GetAll()),
			Documents: index.Len(),
		}

		return marshalResponse(logging.LoggerFromContext(ctx), response)
	}
}
