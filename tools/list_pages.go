package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/grafana/guidebook/internal/logging"
	"github.com/grafana/guidebook/internal/pages"
)

// ListPagesTool exposes a tool for browsing the navigation tree.
//
//nolint:gochecknoglobals // Shared tool definition registered at startup.
var ListPagesTool = mcp.NewTool(
	"list_pages",
	mcp.WithDescription(
		"Lists guide pages in navigation order as a hierarchical tree. "+
			"Navigate progressively: start at the root, then use root_slug to expand branches. "+
			"Returns compact metadata (no content) to minimize context usage. "+
			"Use get_page to retrieve the full content of a specific page.",
	),
	mcp.WithNumber(
		"depth",
		mcp.Description(
			"Optional: Depth of hierarchy to return (default: 1, max: 5). "+
				"Depth counts how many levels of children are included in the tree.",
		),
	),
	mcp.WithString(
		"root_slug",
		mcp.Description(
			"Optional: List the pages under this slug (i.e., its children). "+
				"Use the slug from a previous list_pages response.",
		),
	),
)

const (
	defaultTreeDepth = 1
	maxTreeDepth     = 5
)

// listPagesParams holds parsed and validated request parameters.
type listPagesParams struct {
	RootSlug string
	Depth    int
}

// listPagesResponse is the JSON structure returned by the tool.
type listPagesResponse struct {
	Root     pageRef          `json:"root"`
	Tree     []*pages.PageDTO `json:"tree"`
	Count    int              `json:"count"`
	Total    int              `json:"total"`
	Depth    int              `json:"depth"`
	Usage    string           `json:"usage"`
	RootSlug string           `json:"root_slug,omitempty"`
}

// RegisterListPagesTool registers the list pages tool with the MCP server.
func RegisterListPagesTool(s *server.MCPServer, finder *pages.Finder) {
	handler := newListPagesHandlerFunc(finder)
	s.AddTool(ListPagesTool, withToolLogger("list_pages", handler))
}

// newListPagesHandlerFunc returns an MCP tool handler bound to a finder.
func newListPagesHandlerFunc(
	finder *pages.Finder,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := logging.LoggerFromContext(ctx)
		logger.Debug("Starting list_pages operation")

		params := parseListPagesParams(request)
		logger.WithFields(logrus.Fields{
			"root_slug": params.RootSlug,
			"depth":     params.Depth,
		}).Debug("Parameters")

		resp, err := buildListPagesResponse(logger, finder, params)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		logger.WithFields(logrus.Fields{
			"page_count": resp.Count,
			"root_slug":  params.RootSlug,
			"depth":      params.Depth,
		}).Info("Pages listed successfully")

		return marshalResponse(logger, resp)
	}
}

func parseListPagesParams(request mcp.CallToolRequest) listPagesParams {
	depth := request.GetInt("depth", defaultTreeDepth)
	if depth < 1 {
		depth = defaultTreeDepth
	} else if depth > maxTreeDepth {
		depth = maxTreeDepth
	}

	return listPagesParams{
		RootSlug: request.GetString("root_slug", ""),
		Depth:    depth,
	}
}

func buildListPagesResponse(
	logger logrus.FieldLogger,
	finder *pages.Finder,
	params listPagesParams,
) (*listPagesResponse, error) {
	tree, err := pages.BuildOutline(finder, params.RootSlug, params.Depth)
	if err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"root_slug": params.RootSlug,
			"depth":     params.Depth,
		}).Warn("Failed to build page tree")
		return nil, fmt.Errorf("failed to build page tree: %w. Use list_pages without root_slug to see top-level pages", err)
	}

	root, _ := finder.GetBySlug(params.RootSlug)

	return &listPagesResponse{
		Root:     pageRef{ID: root.ID, Slug: root.Slug, Title: root.Title},
		Tree:     tree,
		Count:    len(tree),
		Total:    len(finder.GetAll()),
		Depth:    params.Depth,
		RootSlug: params.RootSlug,
		Usage: "Use the 'slug' field with get_page to retrieve full content. " +
			"Use 'root_slug' to expand any branch and 'depth' to include more nested children.",
	}, nil
}
