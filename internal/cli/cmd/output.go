// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/vespa-engine/jsonwriter/internal/ioutil"
	"github.com/vespa-engine/jsonwriter/jsonwriter"
)

// documentFunc writes the next document of a stream to w. It returns io.EOF, having written nothing, when the stream
// is exhausted.
type documentFunc func(w *jsonwriter.Writer) error

// separator writes a newline ahead of the first byte of every document but the first.
type separator struct {
	w       *bufio.Writer
	pending bool
}

func (s *separator) Write(p []byte) (int, error) {
	if s.pending && len(p) > 0 {
		if err := s.w.WriteByte('\n'); err != nil {
			return 0, err
		}
		s.pending = false
	}
	return s.w.Write(p)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// writeDocuments writes the documents produced by next to the configured output, separated by newlines. Output to a
// file is written atomically: the file is only replaced once every document has been written.
func (c *CLI) writeDocuments(next documentFunc) error {
	opts, err := c.config.writerOptions()
	if err != nil {
		return err
	}
	codec, err := c.config.option(compressFlag)
	if err != nil {
		return err
	}
	path, _ := c.config.get(outputFlag)
	if path == "" || path == "-" {
		err := c.streamDocuments(nopCloser{c.documents}, codec, true, opts, next)
		if ioutil.IsBrokenPipe(err) {
			return nil
		}
		return err
	}
	f, err := ioutil.CreateAtomic(path)
	if err != nil {
		return errHint(&jsonwriter.OpenError{Path: path, Err: err}, "Check that the directory exists and is writable")
	}
	err = c.spinner(c.Stderr, "Writing "+path+" ...", func() error {
		return c.streamDocuments(f, codec, false, opts, next)
	})
	if err != nil {
		f.Abort()
		return err
	}
	c.printSuccess("Wrote ", path)
	return nil
}

// streamDocuments writes every document to sink through the codec and closes sink. On failure the compressor is
// aborted, which discards an atomic output file.
func (c *CLI) streamDocuments(sink io.WriteCloser, codec string, terminal bool, opts []jsonwriter.Option, next documentFunc) error {
	compressed, err := ioutil.NewCompressor(sink, codec)
	if err != nil {
		return err
	}
	if err := writeStream(compressed, terminal, opts, next); err != nil {
		compressed.Abort()
		return err
	}
	return compressed.Close()
}

func writeStream(out io.Writer, terminal bool, opts []jsonwriter.Option, next documentFunc) error {
	buf := bufio.NewWriter(out)
	sep := &separator{w: buf}
	count := 0
	last := jsonwriter.Compact()
	for {
		w := jsonwriter.New(sep, opts...)
		err := next(w)
		if cerr := w.Close(); err == nil {
			err = cerr
		}
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		last = w.Style()
		count++
		sep.pending = true
	}
	if terminal && count > 0 && !last.IsCompact() {
		if err := buf.WriteByte('\n'); err != nil {
			return err
		}
	}
	return buf.Flush()
}

// openInput opens the file named by args, or standard input when args is empty or "-".
func (c *CLI) openInput(args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(c.Stdin), "standard input", nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", errHint(fmt.Errorf("could not open input: %w", err), "Pass '-' or no file to read from standard input")
	}
	return f, args[0], nil
}
