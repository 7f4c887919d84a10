// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package ioutil

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Codecs lists the names accepted by NewCompressor.
var Codecs = []string{"none", "gzip", "zstd"}

// Aborter is implemented by writers that can discard what has been written instead of completing it, such as
// AtomicFile.
type Aborter interface {
	Abort() error
}

// Compressor is a compressing writer. Close completes the compressed stream and closes the sink. Abort releases the
// encoder without completing the stream and aborts the sink if it is an Aborter, or closes it otherwise.
type Compressor interface {
	io.WriteCloser
	Aborter
}

type encoder interface {
	io.WriteCloser
	Reset(w io.Writer)
}

type compressor struct {
	enc  encoder
	sink io.Writer
}

func (c *compressor) Write(p []byte) (int, error) { return c.enc.Write(p) }

// Close finishes the compressed stream and then closes the sink. If the stream cannot be finished the sink is
// aborted instead.
func (c *compressor) Close() error {
	if err := c.enc.Close(); err != nil {
		abort(c.sink)
		return err
	}
	return closeSink(c.sink)
}

func (c *compressor) Abort() error {
	c.enc.Reset(io.Discard)
	c.enc.Close()
	return abort(c.sink)
}

type nopCompressor struct{ io.Writer }

func (c nopCompressor) Close() error { return closeSink(c.Writer) }

func (c nopCompressor) Abort() error { return abort(c.Writer) }

// NewCompressor returns a writer compressing to w with the named codec. Closing the returned writer also closes w.
func NewCompressor(w io.Writer, codec string) (Compressor, error) {
	switch codec {
	case "", "none":
		return nopCompressor{w}, nil
	case "gzip":
		return &compressor{enc: gzip.NewWriter(w), sink: w}, nil
	case "zstd":
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("could not create zstd encoder: %w", err)
		}
		return &compressor{enc: enc, sink: w}, nil
	}
	return nil, fmt.Errorf("invalid compression codec: %q", codec)
}

func closeSink(w io.Writer) error {
	if closer, ok := w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func abort(w io.Writer) error {
	if a, ok := w.(Aborter); ok {
		return a.Abort()
	}
	return closeSink(w)
}
