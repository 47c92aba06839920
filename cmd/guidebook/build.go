package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newBuildCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Scan the content directory and write guide.json and search.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := a.scan()
			if err != nil {
				return err
			}

			index, err := a.buildIndex(result.documents)
			if err != nil {
				return err
			}
			defer func() { _ = index.Close() }()

			guidePath, searchPath := a.cfg.GuidePath(), a.cfg.SearchPath()

			if err := result.guide.WriteJSON(a.fs, guidePath); err != nil {
				return err
			}
			if err := index.WriteJSON(a.fs, searchPath); err != nil {
				return err
			}

			a.logger.WithFields(logrus.Fields{
				"guide":  guidePath,
				"search": searchPath,
			}).Info("Wrote build artifacts")

			printSummary(cmd.OutOrStdout(), len(result.guide.Order), index.Len(), guidePath, searchPath)
			return nil
		},
	}
}
