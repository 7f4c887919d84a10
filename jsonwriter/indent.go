// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package jsonwriter

// appendIndent appends the line break and leading whitespace for given nesting level under style s. A negative
// level indents like level zero.
func appendIndent(dst []byte, s Style, level int) []byte {
	if level < 0 {
		level = 0
	}
	switch s.kind {
	case prettyStyle:
		dst = append(dst, '\n')
		for i := 0; i < level*s.size; i++ {
			dst = append(dst, ' ')
		}
	case prettyTabsStyle:
		dst = append(dst, '\n')
		for i := 0; i < level; i++ {
			dst = append(dst, '\t')
		}
	}
	return dst
}
