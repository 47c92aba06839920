package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/grafana/guidebook/internal/logging"
	"github.com/grafana/guidebook/internal/markdown"
	"github.com/grafana/guidebook/internal/pages"
)

// GetPageTool exposes a tool for retrieving a single page.
//
//nolint:gochecknoglobals // Shared tool definition registered at startup.
var GetPageTool = mcp.NewTool(
	"get_page",
	mcp.WithDescription(
		"Retrieves the markdown content of a guide page together with its headings, "+
			"breadcrumbs and previous/next pages in reading order. "+
			"Use the slug from list_pages or search_pages output; the root page has the empty slug.",
	),
	mcp.WithString(
		"slug",
		mcp.Required(),
		mcp.Description("Page slug to retrieve (e.g., 'getting_started/install')."),
	),
)

// getPageResponse is the JSON structure returned by the tool.
type getPageResponse struct {
	Page        pageMetadata `json:"page"`
	Breadcrumbs []pageRef    `json:"breadcrumbs"`
	Previous    *pageRef     `json:"previous,omitempty"`
	Next        *pageRef     `json:"next,omitempty"`
	Content     string       `json:"content"`
}

type pageMetadata struct {
	ID       int                `json:"id"`
	Slug     string             `json:"slug"`
	Title    string             `json:"title"`
	Subtitle string             `json:"subtitle,omitempty"`
	Author   *pages.Author      `json:"author,omitempty"`
	Headings []markdown.Heading `json:"headings"`
	Children []pageRef          `json:"children"`
}

// RegisterGetPageTool registers the get page tool with the MCP server.
func RegisterGetPageTool(s *server.MCPServer, finder *pages.Finder, content *ContentStore) {
	handler := newGetPageHandlerFunc(finder, content)
	s.AddTool(GetPageTool, withToolLogger("get_page", handler))
}

// newGetPageHandlerFunc returns an MCP tool handler bound to a finder and a content store.
func newGetPageHandlerFunc(
	finder *pages.Finder,
	content *ContentStore,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := logging.LoggerFromContext(ctx)
		logger.Debug("Starting get_page operation")

		slug, err := request.RequireString("slug")
		if err != nil {
			logger.WithError(err).Warn("Invalid parameters")
			return mcp.NewToolResultError(fmt.Sprintf("missing or invalid slug parameter: %v", err)), nil
		}

		node, err := finder.GetBySlug(slug)
		if err != nil {
			logger.WithField("slug", slug).Warn("Page not found")
			return mcp.NewToolResultError(fmt.Sprintf(
				"page not found: %s. Use list_pages or search_pages to find valid slugs", slug,
			)), nil
		}

		body, err := content.Body(node.ID)
		if err != nil {
			logger.WithError(err).WithField("slug", slug).Error("Failed to read page content")
			return mcp.NewToolResultError(fmt.Sprintf(
				"failed to read content for %s. The content directory may have changed since it was scanned",
				slug,
			)), nil
		}

		resp, err := buildGetPageResponse(finder, node, body)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		logger.WithFields(logrus.Fields{
			"slug":         node.Slug,
			"title":        node.Title,
			"content_size": len(body),
		}).Info("Page retrieved successfully")

		return marshalResponse(logger, resp)
	}
}

func buildGetPageResponse(finder *pages.Finder, node *pages.TreeNode, body string) (*getPageResponse, error) {
	crumbs, err := finder.Breadcrumbs(node.Slug)
	if err != nil {
		return nil, err
	}

	resp := &getPageResponse{
		Page: pageMetadata{
			ID:       node.ID,
			Slug:     node.Slug,
			Title:    node.Title,
			Subtitle: node.Subtitle,
			Author:   node.Author,
			Headings: node.Headings,
			Children: make([]pageRef, 0, len(node.Children)),
		},
		Breadcrumbs: make([]pageRef, 0, len(crumbs)),
		Previous:    refBySlug(finder, node.Previous),
		Next:        refBySlug(finder, node.Next),
		Content:     body,
	}

	for _, child := range node.Children {
		resp.Page.Children = append(resp.Page.Children, refOf(child))
	}
	for _, crumb := range crumbs {
		resp.Breadcrumbs = append(resp.Breadcrumbs, refOf(crumb))
	}

	return resp, nil
}

func refOf(node *pages.TreeNode) pageRef {
	return pageRef{ID: node.ID, Slug: node.Slug, Title: node.Title}
}

func refBySlug(finder *pages.Finder, slug *string) *pageRef {
	if slug == nil {
		return nil
	}
	node, err := finder.GetBySlug(*slug)
	if err != nil {
		return nil
	}
	ref := refOf(node)
	return &ref
}
