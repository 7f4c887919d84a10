// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package jsonwriter

const (
	dblquote  byte = '"'
	backslash byte = '\\'

	replacementEscape = "\\uFFFD"
)

var hex = []byte("0123456789ABCDEF")

type escapeMode struct {
	unicode bool // escape bytes >= 0x80 as \uXXXX
	control bool // escape C0 control bytes other than \n, \r and \t
}

// appendStringPtr appends s as a JSON string literal, or the bare token null when s is nil.
func appendStringPtr(dst []byte, s *string, mode escapeMode) []byte {
	if s == nil {
		return append(dst, "null"...)
	}
	return appendString(dst, *s, mode)
}

// appendString appends s as a quoted and escaped JSON string literal.
func appendString(dst []byte, s string, mode escapeMode) []byte {
	dst = append(dst, dblquote)
	for i := 0; i < len(s); {
		c := s[i]
		if c < 0x80 {
			switch c {
			case dblquote:
				dst = append(dst, backslash, dblquote)
			case backslash:
				dst = append(dst, backslash, backslash)
			case '\n':
				dst = append(dst, backslash, 'n')
			case '\r':
				dst = append(dst, backslash, 'r')
			case '\t':
				dst = append(dst, backslash, 't')
			default:
				if mode.control && c < 0x20 {
					dst = appendControl(dst, c)
				} else {
					dst = append(dst, c)
				}
			}
			i++
			continue
		}
		if !mode.unicode {
			dst = append(dst, c)
			i++
			continue
		}
		cp, size, ok := decodeRune(s, i)
		i += size
		if !ok {
			dst = append(dst, replacementEscape...)
			continue
		}
		dst = appendCodePoint(dst, cp)
	}
	return append(dst, dblquote)
}

// appendCodePoint appends cp as one \uXXXX escape, or as a UTF-16 surrogate pair when cp is outside the basic
// multilingual plane.
func appendCodePoint(dst []byte, cp rune) []byte {
	if cp < 0x10000 {
		return appendUnicodeEscape(dst, uint32(cp))
	}
	v := uint32(cp - 0x10000)
	dst = appendUnicodeEscape(dst, 0xD800+(v>>10))
	return appendUnicodeEscape(dst, 0xDC00+(v&0x3FF))
}

func appendUnicodeEscape(dst []byte, v uint32) []byte {
	return append(dst, backslash, 'u', hex[(v>>12)&0xf], hex[(v>>8)&0xf], hex[(v>>4)&0xf], hex[v&0xf])
}

func appendControl(dst []byte, c byte) []byte {
	switch c {
	case '\b':
		return append(dst, backslash, 'b')
	case '\f':
		return append(dst, backslash, 'f')
	}
	return append(dst, backslash, 'u', '0', '0', hex[(c>>4)&0xf], hex[c&0xf])
}
