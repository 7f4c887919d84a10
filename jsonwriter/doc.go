// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

// Package jsonwriter is a streaming JSON text emitter. Callers issue an ordered sequence of calls (start and end of
// containers, keys and scalar values) and the writer formats each token straight to an io.Writer, so memory use does
// not grow with the size of the document.
//
// # Formatting
//
// Output is compact by default. Pretty(n) places every element on its own line indented by n spaces per level, and
// PrettyTabs indents with one tab per level. Closing a container always starts a new line in the pretty styles, so an
// empty object renders as an opening brace, a newline and a closing brace.
//
// Floating-point values are written with six significant digits unless a fixed precision is set with
// SetFloatPrecision or SetDoublePrecision. Callers needing exact round trips should set a precision.
//
// # Strings
//
// Quote, backslash, newline, carriage return and tab are escaped. Non-ASCII text is written as \uXXXX escapes
// (surrogate pairs above U+FFFF) unless SetEscapeUnicode(false) is called, in which case the UTF-8 bytes pass through
// unchanged. Malformed UTF-8 is replaced by U+FFFD when escaping.
//
// # Validation
//
// The writer does not check that calls form valid JSON. A key outside an object, or an unbalanced container, is
// written as requested.
package jsonwriter
