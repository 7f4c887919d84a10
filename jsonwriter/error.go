// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package jsonwriter

import "errors"

// ErrClosed is returned when a writer is used after Close.
var ErrClosed = errors.New("jsonwriter: writer is closed")

// OpenError records a failure to acquire the destination of a writer.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string { return "jsonwriter: cannot open " + e.Path + ": " + e.Err.Error() }

func (e *OpenError) Unwrap() error { return e.Err }
