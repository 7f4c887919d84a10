// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package jsonwriter

// decodeRune decodes the UTF-8 sequence starting at s[i]. The sequence length is taken from the leading byte
// pattern alone; overlong forms and surrogate code points are accepted.
//
// On success it returns the code point and the number of bytes consumed. When the leading byte is not a valid
// leading byte, or a continuation byte is missing or malformed, ok is false and size is the number of bytes to skip:
// the leading byte plus any well-formed continuation bytes seen before the fault.
func decodeRune(s string, i int) (cp rune, size int, ok bool) {
	c := s[i]
	var extra int
	switch {
	case c < 0x80:
		return rune(c), 1, true
	case c&0xE0 == 0xC0:
		cp, extra = rune(c&0x1F), 1
	case c&0xF0 == 0xE0:
		cp, extra = rune(c&0x0F), 2
	case c&0xF8 == 0xF0:
		cp, extra = rune(c&0x07), 3
	default:
		return 0, 1, false
	}
	for n := 1; n <= extra; n++ {
		if i+n >= len(s) || s[i+n]&0xC0 != 0x80 {
			return 0, n, false
		}
		cp = cp<<6 | rune(s[i+n]&0x3F)
	}
	return cp, extra + 1, true
}
