// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package jsonwriter

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, emit func(w *Writer), opts ...Option) string {
	t.Helper()
	var buf bytes.Buffer
	w := New(&buf, opts...)
	emit(w)
	require.Nil(t, w.Close())
	return buf.String()
}

func simpleObject(w *Writer) {
	w.StartObject()
	w.Key("name")
	w.StringValue("Alice")
	w.Key("age")
	w.IntegerValue(30)
	w.Key("active")
	w.BoolValue(true)
	w.EndObject()
}

func mixedObject(w *Writer) {
	w.StartObject()
	w.Key("pi")
	w.DoubleValue(3.14159)
	w.Key("valid")
	w.BoolValue(false)
	w.Key("notes")
	w.NullValue()
	w.Key("values")
	w.StartArray()
	w.IntegerValue(10)
	w.IntegerValue(20)
	w.IntegerValue(30)
	w.EndArray()
	w.EndObject()
}

func usersArray(w *Writer) {
	w.StartArray()
	for i, email := range []string{"user1@example.com", "user2@example.com"} {
		w.StartObject()
		w.Key("id")
		w.IntegerValue(int32(i + 1))
		w.Key("email")
		w.StringValue(email)
		w.EndObject()
	}
	w.EndArray()
}

func TestCompactDocument(t *testing.T) {
	assert.Equal(t, `{"name":"Alice","age":30,"active":true}`, render(t, simpleObject))
	assert.Equal(t, `{"pi":3.14159,"valid":false,"notes":null,"values":[10,20,30]}`, render(t, mixedObject))
}

func TestPrettyTabsDocument(t *testing.T) {
	expected := "{\n" +
		"\t\"pi\": 3.14159,\n" +
		"\t\"valid\": false,\n" +
		"\t\"notes\": null,\n" +
		"\t\"values\": [\n" +
		"\t\t10,\n" +
		"\t\t20,\n" +
		"\t\t30\n" +
		"\t]\n" +
		"}"
	assert.Equal(t, expected, render(t, mixedObject, WithStyle(PrettyTabs())))
}

func TestPrettyDocument(t *testing.T) {
	expected := "[\n" +
		"  {\n" +
		"    \"id\": 1,\n" +
		"    \"email\": \"user1@example.com\"\n" +
		"  },\n" +
		"  {\n" +
		"    \"id\": 2,\n" +
		"    \"email\": \"user2@example.com\"\n" +
		"  }\n" +
		"]"
	assert.Equal(t, expected, render(t, usersArray, WithStyle(Pretty(2))))
}

func TestSingleScalars(t *testing.T) {
	s := "text"
	tests := []struct {
		emit     func(w *Writer)
		expected string
	}{
		{func(w *Writer) { w.StringValue("text") }, `"text"`},
		{func(w *Writer) { w.StringPtr(&s) }, `"text"`},
		{func(w *Writer) { w.StringPtr(nil) }, `null`},
		{func(w *Writer) { w.IntegerValue(-42) }, `-42`},
		{func(w *Writer) { w.IntegerValue(math.MinInt32) }, `-2147483648`},
		{func(w *Writer) { w.LongValue(math.MaxInt64) }, `9223372036854775807`},
		{func(w *Writer) { w.FloatValue(1.5) }, `1.5`},
		{func(w *Writer) { w.DoubleValue(3.14159) }, `3.14159`},
		{func(w *Writer) { w.BoolValue(true) }, `true`},
		{func(w *Writer) { w.BoolValue(false) }, `false`},
		{func(w *Writer) { w.NullValue() }, `null`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, render(t, tt.emit))
	}
}

func TestEmptyContainers(t *testing.T) {
	empty := func(w *Writer) {
		w.StartObject()
		w.EndObject()
	}
	emptyArray := func(w *Writer) {
		w.StartArray()
		w.EndArray()
	}
	assert.Equal(t, "{}", render(t, empty))
	assert.Equal(t, "[]", render(t, emptyArray))
	assert.Equal(t, "{\n}", render(t, empty, WithStyle(Pretty(2))))
	assert.Equal(t, "[\n]", render(t, emptyArray, WithStyle(PrettyTabs())))

	nested := func(w *Writer) {
		w.StartObject()
		w.Key("a")
		w.StartObject()
		w.EndObject()
		w.Key("b")
		w.StartArray()
		w.EndArray()
		w.EndObject()
	}
	assert.Equal(t, `{"a":{},"b":[]}`, render(t, nested))
	assert.Equal(t, "{\n  \"a\": {\n  },\n  \"b\": [\n  ]\n}", render(t, nested, WithStyle(Pretty(2))))
}

func TestPrettyIndentWidth(t *testing.T) {
	nest := func(w *Writer) {
		w.StartArray()
		w.StartArray()
		w.StartArray()
		w.IntegerValue(1)
		w.EndArray()
		w.EndArray()
		w.EndArray()
	}
	for size := 1; size <= 8; size++ {
		lines := strings.Split(render(t, nest, WithStyle(Pretty(size))), "\n")
		require.Equal(t, 7, len(lines))
		depths := []int{0, 1, 2, 3, 2, 1, 0}
		for i, line := range lines {
			indent := len(line) - len(strings.TrimLeft(line, " "))
			assert.Equal(t, depths[i]*size, indent, "line %d with size %d: %q", i, size, line)
		}
	}
	lines := strings.Split(render(t, nest, WithStyle(PrettyTabs())), "\n")
	for i, depth := range []int{0, 1, 2, 3, 2, 1, 0} {
		assert.Equal(t, strings.Repeat("\t", depth), lines[i][:len(lines[i])-len(strings.TrimLeft(lines[i], "\t"))])
	}
}

func TestUncheckedSequences(t *testing.T) {
	twoScalars := func(w *Writer) {
		w.IntegerValue(1)
		w.IntegerValue(2)
	}
	assert.Equal(t, "1,2", render(t, twoScalars))
	assert.Equal(t, "1,\n2", render(t, twoScalars, WithStyle(Pretty(4))))

	strayKey := func(w *Writer) {
		w.Key("a")
		w.Key("b")
		w.NullValue()
	}
	assert.Equal(t, `"a":"b":null`, render(t, strayKey))

	valueWithoutKey := func(w *Writer) {
		w.StartObject()
		w.IntegerValue(1)
		w.EndObject()
	}
	assert.Equal(t, "{1}", render(t, valueWithoutKey))

	var buf bytes.Buffer
	w := New(&buf, WithStyle(Pretty(2)))
	w.EndArray()
	w.EndObject()
	assert.Equal(t, -2, w.IndentLevel())
	w.StartArray()
	assert.Equal(t, -1, w.IndentLevel())
	require.Nil(t, w.Close())
	assert.Equal(t, "\n]\n},\n[", buf.String())
}

func TestConfigurationIsNotRetroactive(t *testing.T) {
	out := render(t, func(w *Writer) {
		w.StartObject()
		w.Key("a")
		w.DoubleValue(1.23456789)
		w.SetStylePretty(2)
		w.SetDoublePrecision(2)
		w.Key("b")
		w.DoubleValue(1.23456789)
		w.SetStyleCompact()
		w.SetDoublePrecision(Unset)
		w.Key("c")
		w.DoubleValue(1.23456789)
		w.EndObject()
	})
	assert.Equal(t, "{\"a\":1.23457,\n  \"b\": 1.23,\"c\":1.23457}", out)
}

func TestStyleAccessors(t *testing.T) {
	w := New(&bytes.Buffer{})
	assert.True(t, w.Style().IsCompact())
	w.SetStylePretty(3)
	assert.Equal(t, Pretty(3), w.Style())
	w.SetStylePrettyTabs()
	assert.True(t, w.Style().IsTabs())
	w.SetStyle(Compact())
	assert.Equal(t, Compact(), w.Style())
}

func TestPrecision(t *testing.T) {
	assert.Equal(t, "3.14", render(t, func(w *Writer) { w.DoubleValue(3.14159) }, WithDoublePrecision(2)))
	assert.Equal(t, "3", render(t, func(w *Writer) { w.DoubleValue(3.14159) }, WithDoublePrecision(0)))
	assert.Equal(t, "2.718", render(t, func(w *Writer) { w.FloatValue(2.71828) }, WithFloatPrecision(3)))
	// Float and double precision are independent
	assert.Equal(t, "[2.71828,2.7]", render(t, func(w *Writer) {
		w.StartArray()
		w.DoubleValue(2.71828)
		w.FloatValue(2.71828)
		w.EndArray()
	}, WithFloatPrecision(1)))
	assert.Equal(t, "1.5", render(t, func(w *Writer) {
		w.SetFloatPrecision(3)
		w.SetFloatPrecision(-7)
		w.FloatValue(1.5)
	}))

	w := New(&bytes.Buffer{}, WithDoublePrecision(4))
	assert.Equal(t, 4, w.DoublePrecision())
	assert.Equal(t, Unset, w.FloatPrecision())
	w.SetFloatPrecision(-3)
	assert.Equal(t, Unset, w.FloatPrecision())
}

func TestUnicodeDefaults(t *testing.T) {
	assert.Equal(t, "\"\\u20AC\"", render(t, func(w *Writer) { w.StringValue("€") }))
	assert.Equal(t, "\"€\"", render(t, func(w *Writer) { w.StringValue("€") }, WithEscapeUnicode(false)))
	assert.Equal(t, "{\"\\u00E9t\\u00E9\":1}", render(t, func(w *Writer) {
		w.StartObject()
		w.Key("été")
		w.IntegerValue(1)
		w.EndObject()
	}))
	assert.Equal(t, "[\"\\u0001\",\"\x01\"]", render(t, func(w *Writer) {
		w.StartArray()
		w.SetEscapeControl(true)
		w.StringValue("\x01")
		w.SetEscapeControl(false)
		w.StringValue("\x01")
		w.EndArray()
	}))
}

type recordingSink struct {
	bytes.Buffer
	closed int
}

func (s *recordingSink) Close() error {
	s.closed++
	return nil
}

func TestCloseReleasesSink(t *testing.T) {
	sink := &recordingSink{}
	w := New(sink)
	w.NullValue()
	require.Nil(t, w.Close())
	assert.Equal(t, 1, sink.closed)
	assert.Equal(t, "null", sink.String())

	assert.Equal(t, ErrClosed, w.Close())
	assert.Equal(t, 1, sink.closed)

	w.IntegerValue(1)
	assert.Equal(t, ErrClosed, w.Err())
	assert.Equal(t, "null", sink.String())

	var nilWriter *Writer
	assert.Nil(t, nilWriter.Close())
}

var errSink = errors.New("sink failed")

type failingSink struct{ writes int }

func (s *failingSink) Write(p []byte) (int, error) {
	s.writes++
	return 0, errSink
}

func (s *failingSink) WriteByte(c byte) error { return errSink }

func (s *failingSink) WriteString(str string) (int, error) { return 0, errSink }

type unbufferedSink struct {
	failAfter int
	data      []byte
}

func (s *unbufferedSink) Write(p []byte) (int, error) {
	if len(s.data)+len(p) > s.failAfter {
		return 0, errSink
	}
	s.data = append(s.data, p...)
	return len(p), nil
}

func TestWriteErrorsAreSticky(t *testing.T) {
	sink := &failingSink{}
	w := New(sink)
	w.StartObject()
	assert.Equal(t, errSink, w.Err())
	w.Key("a")
	w.IntegerValue(1)
	w.EndObject()
	assert.Equal(t, 1, sink.writes)
	assert.Equal(t, errSink, w.Flush())
	assert.Equal(t, errSink, w.Close())
}

func TestBufferedSinkErrorSurfacesOnFlush(t *testing.T) {
	sink := &unbufferedSink{failAfter: 2}
	w := New(sink)
	w.StringValue("longer than two bytes")
	assert.Nil(t, w.Err()) // still buffered
	assert.Equal(t, errSink, w.Flush())
	assert.Equal(t, errSink, w.Close())

	sink = &unbufferedSink{failAfter: 1024}
	w = New(sink)
	simpleObject(w)
	assert.Empty(t, sink.data)
	require.Nil(t, w.Flush())
	assert.Equal(t, `{"name":"Alice","age":30,"active":true}`, string(sink.data))
	require.Nil(t, w.Close())
}
