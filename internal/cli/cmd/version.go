// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.
package cmd

import (
	"log"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/vespa-engine/jsonwriter/internal/version"
	"github.com/vespa-engine/jsonwriter/jsonwriter"
)

func newVersionCmd(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Show current version",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Args:              cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			library, err := version.Parse(jsonwriter.Version)
			if err != nil {
				return err
			}
			log.Printf("jw version %s (jsonwriter %s) compiled with %v on %v/%v", cli.version, library, runtime.Version(), runtime.GOOS, runtime.GOARCH)
			if cli.version.IsZero() {
				cli.printWarning("This is a development build", "Release builds set the version with -ldflags")
			}
			return nil
		},
	}
}
