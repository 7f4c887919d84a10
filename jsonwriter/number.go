// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package jsonwriter

import (
	"math"
	"strconv"
)

// Unset disables a fixed precision, selecting the general float representation.
const Unset = -1

// generalDigits is the number of significant digits written when no precision is set.
const generalDigits = 6

func appendInt(dst []byte, v int64) []byte {
	return strconv.AppendInt(dst, v, 10)
}

// appendFloat appends v with exactly precision fractional digits, or in general form with six significant digits
// when precision is negative. NaN and infinities have no JSON representation and are written as null.
func appendFloat(dst []byte, v float64, precision int) []byte {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return append(dst, "null"...)
	}
	if precision >= 0 {
		return strconv.AppendFloat(dst, v, 'f', precision, 64)
	}
	return strconv.AppendFloat(dst, v, 'g', generalDigits, 64)
}

func appendBool(dst []byte, v bool) []byte {
	if v {
		return append(dst, "true"...)
	}
	return append(dst, "false"...)
}

func appendNull(dst []byte) []byte {
	return append(dst, "null"...)
}
