package main

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grafana/guidebook/internal/buildinfo"
	"github.com/grafana/guidebook/internal/pages"
	"github.com/grafana/guidebook/tools"
)

// Server instructions give the agent a brief overview of the available tools.
const instructions = `
Use the provided tools to browse and read the guide. Start with list_pages to see the top-level
pages, or search_pages to find pages by words they contain, then read a page with get_page.
Follow the previous/next links of get_page to read the guide in order.
`

func newMCPCmd(a *app) *cobra.Command {
	var cacheSize int

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the guide to agents over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			a.logger.WithFields(logrus.Fields{
				"version":  buildinfo.Version,
				"commit":   buildinfo.Commit,
				"built_at": buildinfo.Date,
			}).Info("Starting guidebook MCP server")

			result, err := a.scan()
			if err != nil {
				return err
			}

			index, err := a.buildIndex(result.documents)
			if err != nil {
				return err
			}
			defer func() { _ = index.Close() }()

			finder := pages.NewFinder(result.guide)
			content, err := tools.NewContentStore(a.fs, a.cfg.ContentDir, finder, cacheSize)
			if err != nil {
				return err
			}

			s := server.NewMCPServer(
				"guidebook",
				buildinfo.Version,
				server.WithToolCapabilities(false),
				server.WithLogging(),
				server.WithRecovery(),
				server.WithInstructions(instructions),
			)

			tools.RegisterInfoTool(s, finder, index)
			tools.RegisterListPagesTool(s, finder)
			tools.RegisterGetPageTool(s, finder, content)
			tools.RegisterSearchPagesTool(s, finder, index)

			a.logger.Info("Starting MCP server on stdio")
			if err := a.serveStdio(s); err != nil {
				a.logger.WithError(err).Error("Server error")
				return fmt.Errorf("MCP server exited with error: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&cacheSize, "cache-size", tools.DefaultContentCacheSize, "Number of page bodies kept in memory")

	return cmd
}
