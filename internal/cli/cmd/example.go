// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vespa-engine/jsonwriter/jsonwriter"
)

type example struct {
	name  string
	style jsonwriter.Style
	write func(w *jsonwriter.Writer)
}

var examples = []example{
	{name: "simple-object", style: jsonwriter.Compact(), write: writeSimpleObject},
	{name: "mixed", style: jsonwriter.PrettyTabs(), write: writeMixed},
	{name: "array-of-objects", style: jsonwriter.Pretty(2), write: writeArrayOfObjects},
}

func exampleNames() []string {
	names := make([]string, 0, len(examples))
	for _, e := range examples {
		names = append(names, e.name)
	}
	return names
}

func newExampleCmd(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "example [example-name]",
		Short: "Write example documents",
		Long: `Write example documents.

Without an argument all examples are written, one after the other. Every
example has its own style, which is replaced by the configured style if one
is given through --style, JW_STYLE or 'jw config set style'.

The examples are: ` + strings.Join(exampleNames(), ", ") + ".",
		Example: `$ jw example
$ jw example mixed
$ jw example array-of-objects -o users.json
$ jw example simple-object --style pretty --indent 2`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Args:              cobra.MaximumNArgs(1),
		ValidArgs:         exampleNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			selected := examples
			if len(args) == 1 {
				selected = nil
				for _, e := range examples {
					if e.name == args[0] {
						selected = append(selected, e)
					}
				}
				if len(selected) == 0 {
					return errHint(fmt.Errorf("invalid example: %s", args[0]), "Must be one of "+strings.Join(exampleNames(), ", "))
				}
			}
			keepStyle := cli.config.isSet(styleFlag)
			i := 0
			return cli.writeDocuments(func(w *jsonwriter.Writer) error {
				if i == len(selected) {
					return io.EOF
				}
				e := selected[i]
				i++
				if !keepStyle {
					w.SetStyle(e.style)
				}
				e.write(w)
				return w.Err()
			})
		},
	}
}

func writeSimpleObject(w *jsonwriter.Writer) {
	w.StartObject()
	w.Key("name")
	w.StringValue("Alice")
	w.Key("age")
	w.IntegerValue(30)
	w.Key("active")
	w.BoolValue(true)
	w.EndObject()
}

func writeMixed(w *jsonwriter.Writer) {
	w.StartObject()
	w.Key("pi")
	w.DoubleValue(3.14159)
	w.Key("valid")
	w.BoolValue(false)
	w.Key("notes")
	w.NullValue()
	w.Key("values")
	w.StartArray()
	w.IntegerValue(10)
	w.IntegerValue(20)
	w.IntegerValue(30)
	w.EndArray()
	w.EndObject()
}

func writeArrayOfObjects(w *jsonwriter.Writer) {
	w.StartArray()
	for i, email := range []string{"user1@example.com", "user2@example.com"} {
		w.StartObject()
		w.Key("id")
		w.IntegerValue(int32(i + 1))
		w.Key("email")
		w.StringValue(email)
		w.EndObject()
	}
	w.EndArray()
}
