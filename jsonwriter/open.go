// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package jsonwriter

import "os"

// Version is the version of the writer library.
const Version = "0.01.0"

// Open creates or truncates the file at path and returns a writer owning it. The file is closed by Close. If the
// file cannot be opened for writing, an *OpenError is returned and no writer is created.
func Open(path string, opts ...Option) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	return New(f, opts...), nil
}
