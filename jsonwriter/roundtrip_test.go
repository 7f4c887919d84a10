// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package jsonwriter

import (
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func document(w *Writer) {
	w.StartObject()
	w.Key("name")
	w.StringValue("Zoë \"the\" \\ tester\n")
	w.Key("emoji")
	w.StringValue("😀 €")
	w.Key("count")
	w.LongValue(-1234567890123)
	w.Key("ratio")
	w.DoubleValue(0.5)
	w.Key("missing")
	w.StringPtr(nil)
	w.Key("nested")
	w.StartArray()
	w.BoolValue(true)
	w.StartObject()
	w.EndObject()
	w.StartArray()
	w.EndArray()
	w.IntegerValue(7)
	w.EndArray()
	w.EndObject()
}

func TestRoundTrip(t *testing.T) {
	expected := map[string]any{
		"name":    "Zoë \"the\" \\ tester\n",
		"emoji":   "😀 €",
		"count":   float64(-1234567890123),
		"ratio":   0.5,
		"missing": nil,
		"nested":  []any{true, map[string]any{}, []any{}, float64(7)},
	}
	styles := []Style{Compact(), Pretty(1), Pretty(4), PrettyTabs()}
	for _, style := range styles {
		for _, unicode := range []bool{true, false} {
			out := render(t, document, WithStyle(style), WithEscapeUnicode(unicode))
			var actual any
			require.Nil(t, json.Unmarshal([]byte(out), &actual), out)
			if diff := cmp.Diff(expected, actual); diff != "" {
				t.Errorf("style %s, unicode escaping %t: mismatch (-want +got):\n%s", style, unicode, diff)
			}
		}
	}
}
