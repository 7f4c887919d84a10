// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newGendocCmd(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:               "gendoc directory",
		Short:             "Write a markdown page for every jw command to directory, creating it if needed",
		Args:              cobra.ExactArgs(1),
		Hidden:            true, // Not intended to be called by users
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create documentation directory: %w", err)
			}
			if err := doc.GenMarkdownTree(cli.cmd, dir); err != nil {
				return fmt.Errorf("failed to write documentation pages: %w", err)
			}
			cli.printSuccess("Documentation pages written to ", dir)
			return nil
		},
	}
}
