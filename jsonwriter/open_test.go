// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package jsonwriter

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.Nil(t, os.WriteFile(path, []byte("previous content that is longer"), 0644))

	w, err := Open(path, WithStyle(Pretty(2)))
	require.Nil(t, err)
	usersArray(w)
	require.Nil(t, w.Close())

	data, err := os.ReadFile(path)
	require.Nil(t, err)
	assert.Equal(t, render(t, usersArray, WithStyle(Pretty(2))), string(data))
	assert.Equal(t, ErrClosed, w.Close())
}

func TestOpenFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.json")
	w, err := Open(path)
	assert.Nil(t, w)
	require.NotNil(t, err)

	var openErr *OpenError
	require.True(t, errors.As(err, &openErr))
	assert.Equal(t, path, openErr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "jsonwriter: cannot open "+path)
}
