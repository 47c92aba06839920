package main

import (
	"github.com/spf13/cobra"
)

func newTreeCmd(a *app) *cobra.Command {
	var withHeadings bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the navigation tree of the content directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := a.scan()
			if err != nil {
				return err
			}

			printTree(cmd.OutOrStdout(), result.guide, withHeadings)
			return nil
		},
	}

	cmd.Flags().BoolVar(&withHeadings, "headings", false, "Include page headings")

	return cmd
}
