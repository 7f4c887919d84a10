// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package util

import (
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner writes message to w and runs fn, which writes jw output to a file. An animation follows message until fn
// returns, and the line then ends with "done" or "failed".
func Spinner(w io.Writer, message string, fn func() error) error {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(w))
	// Cursor is hidden by default. Hiding it requires Stop() to restore the cursor on interrupt
	s.HideCursor = false
	if err := s.Color("blue", "bold"); err != nil {
		return err
	}
	if !strings.HasSuffix(message, " ") {
		message += " "
	}
	s.Prefix = message
	s.FinalMSG = "\r" + message + "done\n"
	s.Start()
	err := fn()
	if err != nil {
		s.FinalMSG = "\r" + message + "failed\n"
	}
	s.Stop()
	return err
}

// NoSpinner runs fn without writing anything to w. It is used for quiet output and when jw is not run from a terminal.
func NoSpinner(w io.Writer, message string, fn func() error) error { return fn() }
