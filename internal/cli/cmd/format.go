// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.
package cmd

import (
	"fmt"
	"io"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/spf13/cobra"
	"github.com/vespa-engine/jsonwriter/internal/emit"
	"github.com/vespa-engine/jsonwriter/jsonwriter"
)

func newFmtCmd(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "fmt [file]",
		Short: "Reformat a stream of JSON documents",
		Long: `Reformat a stream of JSON documents.

The input is read one token at a time and written in the configured style,
so documents of any size can be reformatted. Control characters in strings
are always escaped. Invalid UTF-8 in strings is replaced by U+FFFD when
non-ASCII characters are escaped.

Integers that fit 64 bits are copied unchanged. Other numbers keep the
number of fractional digits of the input, unless --double-precision is
set, and are written in fixed notation. Each written number parses to
the same double as its input, but digits beyond double precision are
not kept: 12345678901234567890 is written as 12345678901234567168, and
1.5e-7 as 0.00000015.

Standard input is read if no file is given, or the file is '-'.`,
		Example: `$ jw fmt --style pretty doc.json
$ curl -s https://example.com/api | jw fmt -s tabs
$ jw fmt --compress zstd -o doc.json.zst doc.json`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Args:              cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, name, err := cli.openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()
			dec := jsontext.NewDecoder(in, jsontext.AllowInvalidUTF8(true), jsontext.AllowDuplicateNames(true))
			return cli.writeDocuments(func(w *jsonwriter.Writer) error {
				w.SetEscapeControl(true)
				if err := emit.Tokens(w, dec); err == io.EOF {
					return err
				} else if err != nil {
					return fmt.Errorf("invalid json in %s: %w", name, err)
				}
				return nil
			})
		},
	}
}
