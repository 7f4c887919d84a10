// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package jsonwriter

import (
	"bufio"
	"io"
)

// state records what was written last, which decides the separator before the next token.
type state int

const (
	// nothing written yet
	ctxNone state = iota
	// a container was just opened
	ctxStart
	// a key was just written
	ctxAfterKey
	// a value or a closed container was just written
	ctxAfterValue
)

// bufferedWriter is satisfied by sinks that buffer on their own, such as bytes.Buffer and bufio.Writer.
type bufferedWriter interface {
	io.Writer
	io.ByteWriter
	io.StringWriter
}

// Writer writes JSON text to a sink, one token per call. It keeps no document in memory: each call writes its token
// immediately, preceded by whatever separator and indentation the previous call requires.
//
// Calls are not checked against JSON grammar. An unbalanced or misplaced call still produces deterministic output.
//
// Write errors are sticky: the first error is kept, later calls write nothing, and the error is reported by Err,
// Flush and Close.
type Writer struct {
	out    io.Writer
	bw     *bufio.Writer
	closer io.Closer
	buf    []byte

	style           Style
	level           int
	ctx             state
	escape          escapeMode
	floatPrecision  int
	doublePrecision int

	err    error
	closed bool
}

// Option configures a Writer when it is created.
type Option func(*Writer)

// WithStyle sets the initial style. The default is Compact.
func WithStyle(s Style) Option { return func(w *Writer) { w.style = s } }

// WithEscapeUnicode sets whether non-ASCII text is written as \uXXXX escapes. The default is true.
func WithEscapeUnicode(on bool) Option { return func(w *Writer) { w.escape.unicode = on } }

// WithEscapeControl sets whether ASCII control characters other than newline, carriage return and tab are escaped.
// The default is false, which writes them unchanged.
func WithEscapeControl(on bool) Option { return func(w *Writer) { w.escape.control = on } }

// WithFloatPrecision sets the initial number of fractional digits for float32 values.
func WithFloatPrecision(n int) Option { return func(w *Writer) { w.SetFloatPrecision(n) } }

// WithDoublePrecision sets the initial number of fractional digits for float64 values.
func WithDoublePrecision(n int) Option { return func(w *Writer) { w.SetDoublePrecision(n) } }

// New returns a writer owning sink. Sinks that do not buffer on their own are buffered by the writer. If sink
// implements io.Closer it is closed by Close.
func New(sink io.Writer, opts ...Option) *Writer {
	w := &Writer{
		style:           Compact(),
		escape:          escapeMode{unicode: true},
		floatPrecision:  Unset,
		doublePrecision: Unset,
		buf:             make([]byte, 0, 64),
	}
	if _, ok := sink.(bufferedWriter); ok {
		w.out = sink
	} else {
		w.bw = bufio.NewWriter(sink)
		w.out = w.bw
	}
	if c, ok := sink.(io.Closer); ok {
		w.closer = c
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Err returns the first error encountered while writing, if any.
func (w *Writer) Err() error { return w.err }

// Style returns the active style.
func (w *Writer) Style() Style { return w.style }

// IndentLevel returns the current nesting depth.
func (w *Writer) IndentLevel() int { return w.level }

// Flush writes any buffered output to the sink.
func (w *Writer) Flush() error {
	if w.err == nil && w.closed {
		w.err = ErrClosed
	}
	if w.err == nil && w.bw != nil {
		w.err = w.bw.Flush()
	}
	return w.err
}

// Close flushes buffered output and closes the sink. Closing a nil writer does nothing. The writer must not be used
// after Close; a second Close returns ErrClosed.
func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	if w.closed {
		return ErrClosed
	}
	err := w.Flush()
	w.closed = true
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}
	w.out, w.bw, w.closer, w.buf = nil, nil, nil, nil
	if w.err == nil {
		w.err = err
	}
	return err
}

// SetStyle sets the style of subsequent tokens.
func (w *Writer) SetStyle(s Style) { w.style = s }

// SetStyleCompact selects compact output.
func (w *Writer) SetStyleCompact() { w.style = Compact() }

// SetStylePretty selects one element per line, indented by indentSize spaces per level.
func (w *Writer) SetStylePretty(indentSize int) { w.style = Pretty(indentSize) }

// SetStylePrettyTabs selects one element per line, indented by one tab per level.
func (w *Writer) SetStylePrettyTabs() { w.style = PrettyTabs() }

// SetEscapeUnicode sets whether non-ASCII text is written as \uXXXX escapes.
func (w *Writer) SetEscapeUnicode(on bool) { w.escape.unicode = on }

// SetEscapeControl sets whether ASCII control characters other than newline, carriage return and tab are escaped.
func (w *Writer) SetEscapeControl(on bool) { w.escape.control = on }

// SetFloatPrecision sets the number of fractional digits written for float32 values. A negative n, such as Unset,
// selects the general representation.
func (w *Writer) SetFloatPrecision(n int) { w.floatPrecision = max(n, Unset) }

// SetDoublePrecision sets the number of fractional digits written for float64 values. A negative n, such as Unset,
// selects the general representation.
func (w *Writer) SetDoublePrecision(n int) { w.doublePrecision = max(n, Unset) }

// FloatPrecision returns the number of fractional digits written for float32 values, or Unset.
func (w *Writer) FloatPrecision() int { return w.floatPrecision }

// DoublePrecision returns the number of fractional digits written for float64 values, or Unset.
func (w *Writer) DoublePrecision() int { return w.doublePrecision }

// separate appends the comma and indentation required before the next token.
func (w *Writer) separate(dst []byte) []byte {
	switch w.ctx {
	case ctxAfterValue:
		dst = append(dst, ',')
		dst = appendIndent(dst, w.style, w.level)
	case ctxStart:
		dst = appendIndent(dst, w.style, w.level)
	}
	return dst
}

// emit writes the token assembled in b and moves to state next.
func (w *Writer) emit(b []byte, next state) {
	w.buf = b[:0]
	w.ctx = next
	if w.err == nil && w.closed {
		w.err = ErrClosed
	}
	if w.err != nil {
		return
	}
	_, w.err = w.out.Write(b)
}

func (w *Writer) openScope(tag byte) {
	b := w.separate(w.buf[:0])
	b = append(b, tag)
	w.level++
	w.emit(b, ctxStart)
}

func (w *Writer) closeScope(tag byte) {
	w.level--
	b := appendIndent(w.buf[:0], w.style, w.level)
	b = append(b, tag)
	w.emit(b, ctxAfterValue)
}

// StartObject writes '{' and enters a new nesting level.
func (w *Writer) StartObject() { w.openScope('{') }

// EndObject leaves the current nesting level and writes '}'. In a pretty style the brace goes on its own line, also
// when the object is empty.
func (w *Writer) EndObject() { w.closeScope('}') }

// StartArray writes '[' and enters a new nesting level.
func (w *Writer) StartArray() { w.openScope('[') }

// EndArray leaves the current nesting level and writes ']'. In a pretty style the bracket goes on its own line, also
// when the array is empty.
func (w *Writer) EndArray() { w.closeScope(']') }

// Key writes name as an object key followed by a colon.
func (w *Writer) Key(name string) {
	b := w.separate(w.buf[:0])
	b = appendString(b, name, w.escape)
	b = append(b, ':')
	if !w.style.IsCompact() {
		b = append(b, ' ')
	}
	w.emit(b, ctxAfterKey)
}

// StringValue writes s as a string value.
func (w *Writer) StringValue(s string) {
	w.emit(appendString(w.separate(w.buf[:0]), s, w.escape), ctxAfterValue)
}

// StringPtr writes *s as a string value, or null when s is nil.
func (w *Writer) StringPtr(s *string) {
	w.emit(appendStringPtr(w.separate(w.buf[:0]), s, w.escape), ctxAfterValue)
}

// IntegerValue writes a 32-bit integer value.
func (w *Writer) IntegerValue(v int32) {
	w.emit(appendInt(w.separate(w.buf[:0]), int64(v)), ctxAfterValue)
}

// LongValue writes a 64-bit integer value.
func (w *Writer) LongValue(v int64) {
	w.emit(appendInt(w.separate(w.buf[:0]), v), ctxAfterValue)
}

// FloatValue writes a 32-bit floating-point value using the float precision.
func (w *Writer) FloatValue(v float32) {
	w.emit(appendFloat(w.separate(w.buf[:0]), float64(v), w.floatPrecision), ctxAfterValue)
}

// DoubleValue writes a 64-bit floating-point value using the double precision.
func (w *Writer) DoubleValue(v float64) {
	w.emit(appendFloat(w.separate(w.buf[:0]), v, w.doublePrecision), ctxAfterValue)
}

// BoolValue writes true or false.
func (w *Writer) BoolValue(v bool) {
	w.emit(appendBool(w.separate(w.buf[:0]), v), ctxAfterValue)
}

// NullValue writes null.
func (w *Writer) NullValue() {
	w.emit(appendNull(w.separate(w.buf[:0])), ctxAfterValue)
}
