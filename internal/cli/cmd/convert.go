// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.
package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vespa-engine/jsonwriter/internal/emit"
	"github.com/vespa-engine/jsonwriter/internal/ioutil"
	"github.com/vespa-engine/jsonwriter/jsonwriter"
	"gopkg.in/yaml.v3"
)

func newConvertCmd(cli *CLI) *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert YAML or CBOR to JSON",
		Long: `Convert YAML or CBOR to JSON.

Every document of the input is written as one JSON document. Documents are
separated by newlines.

The input format is given by --from. If unset, files ending in .cbor are read
as CBOR and everything else as YAML. Standard input is read if no file is
given, or the file is '-'.

YAML mappings keep their order. CBOR maps are written with sorted keys and
byte strings as hex strings prefixed by 0x.`,
		Example: `$ jw convert config.yaml
$ jw convert --style pretty data.cbor
$ cat docs.yaml | jw convert -o docs.json`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Args:              cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, name, err := cli.openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()
			format := from
			if format == "" {
				format = "yaml"
				if strings.EqualFold(filepath.Ext(name), ".cbor") {
					format = "cbor"
				}
			}
			var next documentFunc
			switch format {
			case "yaml":
				next = yamlDocuments(in, name)
			case "cbor":
				next = cborDocuments(in, name)
			default:
				return errHint(fmt.Errorf("invalid input format: %s", format), `Must be "yaml" or "cbor"`)
			}
			return cli.writeDocuments(next)
		},
	}
	cmd.Flags().StringVarP(&from, "from", "f", "", `The input format. Must be "yaml" or "cbor"`)
	return cmd
}

func yamlDocuments(r io.Reader, name string) documentFunc {
	dec := yaml.NewDecoder(r)
	return func(w *jsonwriter.Writer) error {
		var node yaml.Node
		if err := dec.Decode(&node); err == io.EOF {
			return err
		} else if err != nil {
			return fmt.Errorf("invalid yaml in %s: %w", name, err)
		}
		if err := emit.YAML(w, &node); err != nil {
			return fmt.Errorf("could not convert %s: %w", name, err)
		}
		return nil
	}
}

func cborDocuments(r io.Reader, name string) documentFunc {
	dec := ioutil.CBORDecMode.NewDecoder(r)
	return func(w *jsonwriter.Writer) error {
		var v any
		if err := dec.Decode(&v); err == io.EOF {
			return err
		} else if err != nil {
			return fmt.Errorf("invalid cbor in %s: %w", name, err)
		}
		if err := emit.Value(w, v); err != nil {
			return fmt.Errorf("could not convert %s: %w", name, err)
		}
		return nil
	}
}
