// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/vespa-engine/jsonwriter/internal/cli/build"
	"github.com/vespa-engine/jsonwriter/internal/util"
	"github.com/vespa-engine/jsonwriter/internal/version"
	"github.com/vespa-engine/jsonwriter/jsonwriter"
)

const (
	outputFlag          = "output"
	styleFlag           = "style"
	indentFlag          = "indent"
	escapeUnicodeFlag   = "escape-unicode"
	escapeControlFlag   = "escape-control"
	floatPrecisionFlag  = "float-precision"
	doublePrecisionFlag = "double-precision"
	compressFlag        = "compress"
	colorFlag           = "color"
	quietFlag           = "quiet"
)

// CLI holds the jw command tree, configuration and dependencies.
type CLI struct {
	// Environment holds the process environment.
	Environment map[string]string
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer

	cmd     *cobra.Command
	config  *Config
	version version.Version

	// documents receives JSON written to standard output. Unlike Stdout it is not silenced by --quiet.
	documents  io.Writer
	isTerminal func() bool
	spinner    func(w io.Writer, message string, fn func() error) error
}

// ErrCLI is an error returned to the user. It wraps an exit status, a regular error and optional hints for resolving
// the error.
type ErrCLI struct {
	Status int
	quiet  bool
	hints  []string
	error
}

// errHint creates a new CLI error, with optional hints that will be printed after the error
func errHint(err error, hints ...string) ErrCLI { return ErrCLI{Status: 1, hints: hints, error: err} }

// New creates the jw CLI, writing output to stdout and stderr, and reading environment variables from environment.
func New(stdout, stderr io.Writer, environment []string) (*CLI, error) {
	cmd := &cobra.Command{
		Use:   "jw command-name",
		Short: "Write JSON documents one token at a time",
		Long: `Write JSON documents one token at a time.

jw drives a streaming JSON writer that never holds a document in memory.
It converts YAML and CBOR to JSON, reformats JSON streams and writes
example documents in compact, pretty or tab-indented style.

For detailed description of flags and configuration, see 'jw help config'.
`,
		DisableAutoGenTag: true,
		SilenceErrors:     true, // We have our own error printing
		SilenceUsage:      false,
		Args:              cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command: %s", args[0])
		},
	}
	env := make(map[string]string)
	for _, entry := range environment {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) == 2 {
			env[parts[0]] = parts[1]
		}
	}
	version, err := version.Parse(build.Version)
	if err != nil {
		return nil, err
	}
	cli := CLI{
		Environment: env,
		Stdin:       os.Stdin,
		Stdout:      stdout,
		Stderr:      stderr,

		version: version,
		cmd:     cmd,
	}
	cli.isTerminal = func() bool { return isTerminal(cli.Stdout) && isTerminal(cli.Stderr) }
	if err := cli.loadConfig(); err != nil {
		return nil, err
	}
	cli.configureCommands()
	cmd.PersistentPreRunE = cli.configureOutput
	return &cli, nil
}

func (c *CLI) loadConfig() error {
	config, err := loadConfig(c.Environment, c.configureFlags())
	if err != nil {
		return err
	}
	c.config = config
	return nil
}

func (c *CLI) configureOutput(cmd *cobra.Command, args []string) error {
	if f, ok := c.Stdout.(*os.File); ok {
		c.Stdout = colorable.NewColorable(f)
	}
	if f, ok := c.Stderr.(*os.File); ok {
		c.Stderr = colorable.NewColorable(f)
	}
	c.documents = c.Stdout
	if c.config.isQuiet() {
		c.Stdout = io.Discard
	}
	log.SetFlags(0) // No timestamps
	log.SetOutput(c.Stdout)
	colorValue, _ := c.config.get(colorFlag)
	colorize := false
	switch colorValue {
	case "auto":
		_, nocolor := c.Environment["NO_COLOR"] // https://no-color.org
		colorize = !nocolor && c.isTerminal()
	case "always":
		colorize = true
	case "never":
	default:
		return errHint(fmt.Errorf("invalid color option: %s", colorValue), `Must be "auto", "never" or "always"`)
	}
	color.NoColor = !colorize
	c.configureSpinner()
	return nil
}

func (c *CLI) configureFlags() map[string]*pflag.Flag {
	var (
		output          string
		style           string
		indent          int
		escapeUnicode   bool
		escapeControl   bool
		floatPrecision  int
		doublePrecision int
		compress        string
		color           string
		quiet           bool
	)
	c.cmd.PersistentFlags().StringVarP(&output, outputFlag, "o", "", `The file to write JSON to. Standard output is used if empty or "-"`)
	c.cmd.PersistentFlags().StringVarP(&style, styleFlag, "s", "compact", `The output style. Must be "compact", "pretty" or "tabs"`)
	c.cmd.PersistentFlags().IntVarP(&indent, indentFlag, "n", jsonwriter.DefaultIndentSize, "Number of spaces per nesting level in pretty style")
	c.cmd.PersistentFlags().BoolVar(&escapeUnicode, escapeUnicodeFlag, true, `Write non-ASCII characters as \uXXXX escapes`)
	c.cmd.PersistentFlags().BoolVar(&escapeControl, escapeControlFlag, false, "Escape all ASCII control characters")
	c.cmd.PersistentFlags().IntVar(&floatPrecision, floatPrecisionFlag, jsonwriter.Unset, "Fractional digits for 32-bit floats. Negative selects the general format")
	c.cmd.PersistentFlags().IntVar(&doublePrecision, doublePrecisionFlag, jsonwriter.Unset, "Fractional digits for 64-bit floats. Negative selects the general format")
	c.cmd.PersistentFlags().StringVar(&compress, compressFlag, "none", `Compress output. Must be "none", "gzip" or "zstd"`)
	c.cmd.PersistentFlags().StringVarP(&color, colorFlag, "c", "auto", `Whether to use colors in output. Must be "auto", "never", or "always"`)
	c.cmd.PersistentFlags().BoolVarP(&quiet, quietFlag, "q", false, "Print only errors and documents")
	flags := make(map[string]*pflag.Flag)
	c.cmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		flags[flag.Name] = flag
	})
	return flags
}

func (c *CLI) configureSpinner() {
	if c.config.isQuiet() || !c.isTerminal() {
		c.spinner = util.NoSpinner
	} else {
		c.spinner = util.Spinner
	}
}

func (c *CLI) configureCommands() {
	rootCmd := c.cmd
	configCmd := newConfigCmd()
	configCmd.AddCommand(newConfigGetCmd(c))   // config get
	configCmd.AddCommand(newConfigSetCmd(c))   // config set
	configCmd.AddCommand(newConfigUnsetCmd(c)) // config unset
	rootCmd.AddCommand(configCmd)              // config
	rootCmd.AddCommand(newConvertCmd(c))       // convert
	rootCmd.AddCommand(newExampleCmd(c))       // example
	rootCmd.AddCommand(newFmtCmd(c))           // fmt
	rootCmd.AddCommand(newGendocCmd(c))        // gendoc
	rootCmd.AddCommand(newVersionCmd(c))       // version
}

func (c *CLI) printErr(err error, hints ...string) {
	fmt.Fprintln(c.Stderr, color.RedString("Error:"), err)
	for _, hint := range hints {
		fmt.Fprintln(c.Stderr, color.CyanString("Hint:"), hint)
	}
}

func (c *CLI) printSuccess(msg ...interface{}) {
	fmt.Fprintln(c.Stdout, color.GreenString("Success:"), fmt.Sprint(msg...))
}

func (c *CLI) printWarning(msg interface{}, hints ...string) {
	fmt.Fprintln(c.Stderr, color.YellowString("Warning:"), msg)
	for _, hint := range hints {
		fmt.Fprintln(c.Stderr, color.CyanString("Hint:"), hint)
	}
}

// Run executes the CLI with given args. If args is nil, it defaults to os.Args[1:].
func (c *CLI) Run(args ...string) error {
	c.cmd.SetArgs(args)
	err := c.cmd.Execute()
	if err != nil {
		if cliErr, ok := err.(ErrCLI); ok {
			if !cliErr.quiet {
				c.printErr(cliErr, cliErr.hints...)
			}
		} else {
			c.printErr(err)
		}
	}
	return err
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd())
	}
	return false
}
