// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.
package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	cli, stdout, stderr := newTestCLI(t)
	require.Nil(t, cli.Run("version"))
	assert.Contains(t, stdout.String(), "jw version 0.0.0-devel (jsonwriter 0.1.0) compiled with")
	assert.Equal(t, "Warning: This is a development build\nHint: Release builds set the version with -ldflags\n", stderr.String())
}

func TestInvalidCommand(t *testing.T) {
	cli, _, stderr := newTestCLI(t)
	assert.NotNil(t, cli.Run("foo"))
	assert.Equal(t, "Error: invalid command: foo\n", stderr.String())
}

func TestGendoc(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs", "cli")
	cli, stdout, _ := newTestCLI(t)
	require.Nil(t, cli.Run("gendoc", dir))
	assert.Equal(t, "Success: Documentation pages written to "+dir+"\n", stdout.String())
	for _, name := range []string{"jw.md", "jw_example.md", "jw_convert.md", "jw_fmt.md", "jw_config_get.md"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.Nil(t, err, name)
	}
}
