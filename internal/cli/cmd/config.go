// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.
// jw config command

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/vespa-engine/jsonwriter/internal/config"
	"github.com/vespa-engine/jsonwriter/jsonwriter"
)

const configFile = "config.yaml"

// configOptions are the flags that can be persisted, in sorted order.
var configOptions = []string{
	colorFlag,
	compressFlag,
	doublePrecisionFlag,
	escapeControlFlag,
	escapeUnicodeFlag,
	floatPrecisionFlag,
	indentFlag,
	quietFlag,
	styleFlag,
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Manage persistent values for global flags",
		Long: `Manage persistent values for global flags.

This command allows setting a persistent value for a given global flag. On
future invocations the flag can then be omitted as it is read from the config
file instead.

Configuration is written to $HOME/.jw by default. This path can be
overridden by setting the JW_HOME environment variable.

Every option can also be set through an environment variable, named by the
option in upper case with a JW_ prefix, such as JW_STYLE or
JW_ESCAPE_UNICODE. An explicit flag takes precedence over the environment,
which takes precedence over the config file.

The following options are available:

color

Whether to use colors in output. Must be "auto" (default), "never" or
"always".

compress

Compression of written documents. Must be "none" (default), "gzip" or "zstd".

double-precision, float-precision

Number of fractional digits written for 64-bit and 32-bit floats. The
default, -1, writes six significant digits.

escape-control

Whether to escape all ASCII control characters. Must be "true" or "false"
(default).

escape-unicode

Whether to write non-ASCII characters as \uXXXX escapes. Must be "true"
(default) or "false".

indent

Number of spaces per level in pretty style. The default is 4.

quiet

Print only errors and documents. Must be "true" or "false" (default).

style

Output style. Must be "compact" (default), "pretty" or "tabs".`,
		DisableAutoGenTag: true,
		SilenceUsage:      false,
		Args:              cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command: %s", args[0])
		},
	}
}

func newConfigSetCmd(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "set option-name value",
		Short: "Set a configuration option.",
		Example: `# Write pretty-printed documents indented by two spaces
$ jw config set style pretty
$ jw config set indent 2

# Always write floating-point numbers with three decimals
$ jw config set double-precision 3`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Args:              cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.config.set(args[0], args[1]); err != nil {
				return err
			}
			return cli.config.write()
		},
	}
}

func newConfigUnsetCmd(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "unset option-name",
		Short: "Unset a configuration option.",
		Long: `Unset a configuration option.

Unsetting a configuration option will reset it to its default value.`,
		Example:           `$ jw config unset style`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Args:              cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.config.unset(args[0]); err != nil {
				return err
			}
			return cli.config.write()
		},
	}
}

func newConfigGetCmd(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "get [option-name]",
		Short: "Show given configuration option, or all configuration options",
		Long: `Show given configuration option, or all configuration options.

The value shown is the one in effect, taking flags and environment
variables into account.`,
		Example: `$ jw config get
$ jw config get style
$ jw config get --style tabs style`,
		Args:              cobra.MaximumNArgs(1),
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 { // Print all values
				for _, option := range configOptions {
					cli.config.printOption(option)
				}
				return nil
			}
			if !isOption(args[0]) {
				return fmt.Errorf("invalid option: %s", args[0])
			}
			cli.config.printOption(args[0])
			return nil
		},
	}
}

// Config holds the configuration of the CLI. Options are resolved from flags, environment and the config file, in
// that order, falling back to the flag default.
type Config struct {
	homeDir     string
	environment map[string]string
	flags       map[string]*pflag.Flag
	config      *config.Config
}

func loadConfig(environment map[string]string, flags map[string]*pflag.Flag) (*Config, error) {
	home, err := jwHome(environment)
	if err != nil {
		return nil, fmt.Errorf("could not detect config directory: %w", err)
	}
	c := &Config{
		homeDir:     home,
		environment: environment,
		flags:       flags,
	}
	if err := c.load(); err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}
	return c, nil
}

func jwHome(environment map[string]string) (string, error) {
	if home := environment["JW_HOME"]; home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".jw"), nil
}

func (c *Config) path() string { return filepath.Join(c.homeDir, configFile) }

func (c *Config) load() error {
	f, err := os.Open(c.path())
	if errors.Is(err, fs.ErrNotExist) {
		c.config = config.New()
		return nil
	} else if err != nil {
		return err
	}
	defer f.Close()
	cfg, err := config.Read(f)
	if err != nil {
		return err
	}
	c.config = cfg
	return nil
}

func (c *Config) write() error {
	if err := os.MkdirAll(c.homeDir, 0700); err != nil {
		return err
	}
	return c.config.WriteFile(c.path())
}

func isOption(option string) bool {
	for _, o := range configOptions {
		if o == option {
			return true
		}
	}
	return false
}

// envVariable returns the name of the environment variable overriding option.
func envVariable(option string) string {
	return "JW_" + strings.ToUpper(strings.ReplaceAll(option, "-", "_"))
}

func (c *Config) get(option string) (string, bool) {
	flag, isFlag := c.flags[option]
	if isFlag && flag.Changed {
		return flag.Value.String(), true
	}
	if isOption(option) {
		if value, ok := c.environment[envVariable(option)]; ok {
			return value, true
		}
		if value, ok := c.config.Get(option); ok {
			return value, true
		}
	}
	if isFlag {
		return flag.DefValue, true
	}
	return "", false
}

// isSet returns true if option was given explicitly, by flag, environment or config file.
func (c *Config) isSet(option string) bool {
	if flag, ok := c.flags[option]; ok && flag.Changed {
		return true
	}
	if _, ok := c.environment[envVariable(option)]; ok {
		return true
	}
	_, ok := c.config.Get(option)
	return ok
}

func (c *Config) set(option, value string) error {
	if err := validateOption(option, value); err != nil {
		return err
	}
	c.config.Set(option, value)
	return nil
}

func (c *Config) unset(option string) error {
	if !isOption(option) {
		return fmt.Errorf("invalid option: %s", option)
	}
	c.config.Del(option)
	return nil
}

func (c *Config) printOption(option string) {
	value, ok := c.get(option)
	if !ok {
		value = color.New(color.FgYellow).Sprint("<unset>")
	} else {
		value = color.CyanString(value)
	}
	log.Printf("%s = %s", option, value)
}

func validateOption(option, value string) error {
	switch option {
	case styleFlag:
		switch value {
		case "compact", "pretty", "tabs":
			return nil
		}
	case indentFlag:
		if n, err := strconv.Atoi(value); err != nil || n < 1 {
			return fmt.Errorf("%s option must be an integer >= 1, got %q", option, value)
		}
		return nil
	case floatPrecisionFlag, doublePrecisionFlag:
		if n, err := strconv.Atoi(value); err != nil || n < jsonwriter.Unset {
			return fmt.Errorf("%s option must be an integer >= %d, got %q", option, jsonwriter.Unset, value)
		}
		return nil
	case compressFlag:
		switch value {
		case "none", "gzip", "zstd":
			return nil
		}
	case colorFlag:
		switch value {
		case "auto", "never", "always":
			return nil
		}
	case escapeUnicodeFlag, escapeControlFlag, quietFlag:
		switch value {
		case "true", "false":
			return nil
		}
	}
	return fmt.Errorf("invalid option or value: %s = %s", option, value)
}

// option returns the value of option, failing if it is invalid. This catches bad values from the environment and
// hand-edited config files.
func (c *Config) option(option string) (string, error) {
	value, _ := c.get(option)
	if err := validateOption(option, value); err != nil {
		return "", errHint(err, "Check the --"+option+" flag, the "+envVariable(option)+" environment variable and 'jw config get "+option+"'")
	}
	return value, nil
}

func (c *Config) intOption(option string) (int, error) {
	value, err := c.option(option)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}

func (c *Config) boolOption(option string) (bool, error) {
	value, err := c.option(option)
	if err != nil {
		return false, err
	}
	return value == "true", nil
}

func (c *Config) isQuiet() bool {
	quiet, _ := c.boolOption(quietFlag)
	return quiet
}

func (c *Config) style() (jsonwriter.Style, error) {
	name, err := c.option(styleFlag)
	if err != nil {
		return jsonwriter.Style{}, err
	}
	indent, err := c.intOption(indentFlag)
	if err != nil {
		return jsonwriter.Style{}, err
	}
	return jsonwriter.ParseStyle(name, indent)
}

// writerOptions returns the writer options selected by the configuration.
func (c *Config) writerOptions() ([]jsonwriter.Option, error) {
	style, err := c.style()
	if err != nil {
		return nil, err
	}
	escapeUnicode, err := c.boolOption(escapeUnicodeFlag)
	if err != nil {
		return nil, err
	}
	escapeControl, err := c.boolOption(escapeControlFlag)
	if err != nil {
		return nil, err
	}
	floatPrecision, err := c.intOption(floatPrecisionFlag)
	if err != nil {
		return nil, err
	}
	doublePrecision, err := c.intOption(doublePrecisionFlag)
	if err != nil {
		return nil, err
	}
	return []jsonwriter.Option{
		jsonwriter.WithStyle(style),
		jsonwriter.WithEscapeUnicode(escapeUnicode),
		jsonwriter.WithEscapeControl(escapeControl),
		jsonwriter.WithFloatPrecision(floatPrecision),
		jsonwriter.WithDoublePrecision(doublePrecision),
	}, nil
}
