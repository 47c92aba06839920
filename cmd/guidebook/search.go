package main

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grafana/guidebook/internal/pages"
)

func newSearchCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Search the pages of a built guide",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			guide, index, err := a.loadBuilt()
			if err != nil {
				return err
			}
			defer func() { _ = index.Close() }()

			query := strings.Join(args, " ")
			ids, err := index.Search(query)
			if err != nil {
				return err
			}

			finder := pages.NewFinder(guide)
			results := make([]*pages.TreeNode, 0, len(ids))
			for _, id := range ids {
				if limit > 0 && len(results) == limit {
					break
				}
				node, err := finder.GetByID(id)
				if err != nil {
					a.logger.WithField("id", id).Warn("Search hit without page")
					continue
				}
				results = append(results, node)
			}

			a.logger.WithFields(logrus.Fields{
				"query": query,
				"hits":  len(ids),
			}).Debug("Search completed")

			printResults(cmd.OutOrStdout(), query, results, len(ids))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of results (0 = unlimited)")

	return cmd
}
