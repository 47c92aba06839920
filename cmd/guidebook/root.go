package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grafana/guidebook/internal/buildinfo"
	"github.com/grafana/guidebook/internal/config"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "guidebook",
		Short: "Build navigation trees and search indexes from content directories",
		Long: `guidebook turns a directory of .mdx and .md pages into an ordered navigation tree
with previous/next links and a prefix search index, and serves both to agents over MCP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       buildinfo.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loader := config.NewLoader(a.fs, a.configPath)

			v := loader.Viper()
			for key, flag := range map[string]string{
				"content_dir": "content-dir",
				"out_dir":     "out-dir",
				"log.level":   "log-level",
				"use_env":     "use-env",
				"env_file":    "env-file",
			} {
				if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
					return fmt.Errorf("failed to bind flag %s: %w", flag, err)
				}
			}

			return a.configure(loader)
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("guidebook %s (commit %s, built %s)\n",
		buildinfo.Version, buildinfo.Commit, buildinfo.Date))

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Configuration file (default: guidebook.yaml in . or ./config)")
	flags.String("content-dir", "", "Directory holding the content pages")
	flags.String("out-dir", "", "Directory receiving guide.json and search.json")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.Bool("use-env", false, "Resolve template and hidden-flag variables from the environment")
	flags.String("env-file", "", "Dotenv file providing template and hidden-flag variables")

	root.AddCommand(
		newBuildCmd(a),
		newTreeCmd(a),
		newSearchCmd(a),
		newMCPCmd(a),
	)

	return root
}
