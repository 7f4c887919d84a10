// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/vespa-engine/jsonwriter/jsonwriter"
)

// maxFractionDigits is the length of the longest exact decimal fraction of a float64, that of the smallest
// subnormal.
const maxFractionDigits = 1074

type frame struct {
	object     bool
	expectName bool
}

// Tokens reads the next top-level value from dec and writes it token by token. It returns io.EOF when dec holds no
// more values.
//
// Numbers without a fraction or exponent that fit 64 bits are written as integers. Other numbers are written in
// fixed notation with as many fractional digits as the input literal, unless w has a double precision set. The
// written value parses to the same float64 as the input. Digits beyond float64 precision are not preserved, and
// exponents are expanded.
func Tokens(w *jsonwriter.Writer, dec *jsontext.Decoder) error {
	var stack []frame
	for {
		tok, err := dec.ReadToken()
		if err != nil {
			return err
		}
		if n := len(stack); n > 0 && stack[n-1].expectName {
			w.Key(tok.String())
			stack[n-1].expectName = false
			continue
		}
		switch tok.Kind() {
		case '{':
			w.StartObject()
			stack = append(stack, frame{object: true, expectName: true})
			continue
		case '[':
			w.StartArray()
			stack = append(stack, frame{})
			continue
		case '}':
			w.EndObject()
			stack = stack[:len(stack)-1]
		case ']':
			w.EndArray()
			stack = stack[:len(stack)-1]
		case 'n':
			w.NullValue()
		case 't', 'f':
			w.BoolValue(tok.Bool())
		case '"':
			w.StringValue(tok.String())
		case '0':
			if err := writeNumber(w, tok.String()); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unexpected token %s", tok)
		}
		if len(stack) == 0 {
			return w.Err()
		}
		if top := &stack[len(stack)-1]; top.object {
			top.expectName = true
		}
	}
}

func writeNumber(w *jsonwriter.Writer, raw string) error {
	if !strings.ContainsAny(raw, ".eE") {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			w.LongValue(i)
			return nil
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("number %s cannot be represented as a double", raw)
	}
	prev := w.DoublePrecision()
	if prev != jsonwriter.Unset {
		w.DoubleValue(f)
		return nil
	}
	w.SetDoublePrecision(fractionDigits(raw))
	w.DoubleValue(f)
	w.SetDoublePrecision(prev)
	return nil
}

// fractionDigits returns the number of fractional digits needed to write the JSON number literal raw in fixed
// notation.
func fractionDigits(raw string) int {
	mantissa, exponent, _ := strings.Cut(strings.ToLower(raw), "e")
	digits := 0
	if _, frac, ok := strings.Cut(mantissa, "."); ok {
		digits = len(frac)
	}
	if exponent != "" {
		exp, err := strconv.Atoi(exponent)
		switch {
		case err != nil && strings.HasPrefix(exponent, "-"), err == nil && exp < -maxFractionDigits:
			return maxFractionDigits
		case err != nil:
			return 0
		}
		digits -= exp
	}
	return min(max(digits, 0), maxFractionDigits)
}
