package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/grafana/guidebook/internal/logging"
	"github.com/grafana/guidebook/internal/pages"
	"github.com/grafana/guidebook/internal/search"
)

// SearchPagesTool exposes full-text prefix search over the guide.
//
//nolint:gochecknoglobals // Shared tool definition registered at startup.
var SearchPagesTool = mcp.NewTool(
	"search_pages",
	mcp.WithDescription(
		"Searches the text of guide pages. Every query word must match the start "+
			"of a word in the page, case-insensitively. Returns page summaries, best match first; "+
			"use get_page with a result slug to read the page.",
	),
	mcp.WithString(
		"query",
		mcp.Required(),
		mcp.Description("Search words or word prefixes (e.g., 'inst conf')."),
	),
	mcp.WithNumber(
		"limit",
		mcp.Description("Optional: Maximum number of results (default: 10, max: 50)."),
	),
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

type searchPagesResponse struct {
	Query   string         `json:"query"`
	Results []searchResult `json:"results"`
	Count   int            `json:"count"`
	Total   int            `json:"total"`
}

type searchResult struct {
	ID       int    `json:"id"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

// RegisterSearchPagesTool registers the search pages tool with the MCP server.
func RegisterSearchPagesTool(s *server.MCPServer, finder *pages.Finder, index *search.Index) {
	handler := newSearchPagesHandlerFunc(finder, index)
	s.AddTool(SearchPagesTool, withToolLogger("search_pages", handler))
}

func newSearchPagesHandlerFunc(
	finder *pages.Finder,
	index *search.Index,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := logging.LoggerFromContext(ctx)
		logger.Debug("Starting search_pages operation")

		query, err := request.RequireString("query")
		if err != nil {
			logger.WithError(err).Warn("Invalid parameters")
			return mcp.NewToolResultError(fmt.Sprintf("missing or invalid query parameter: %v", err)), nil
		}

		limit := request.GetInt("limit", defaultSearchLimit)
		if limit < 1 {
			limit = defaultSearchLimit
		} else if limit > maxSearchLimit {
			limit = maxSearchLimit
		}

		ids, err := index.Search(query)
		if err != nil {
			logger.WithError(err).WithField("query", query).Error("Search failed")
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}

		resp := searchPagesResponse{
			Query:   query,
			Results: make([]searchResult, 0, min(limit, len(ids))),
			Total:   len(ids),
		}
		for _, id := range ids {
			if len(resp.Results) == limit {
				break
			}
			node, err := finder.GetByID(id)
			if err != nil {
				logger.WithField("id", id).Warn("Search hit without page")
				continue
			}
			resp.Results = append(resp.Results, searchResult{
				ID:       node.ID,
				Slug:     node.Slug,
				Title:    node.Title,
				Subtitle: node.Subtitle,
			})
		}
		resp.Count = len(resp.Results)

		logger.WithFields(logrus.Fields{
			"query":  query,
			"hits":   resp.Total,
			"result": resp.Count,
		}).Info("Search completed")

		return marshalResponse(logger, resp)
	}
}
