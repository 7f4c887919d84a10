// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

// Package emit walks decoded documents and writes them as JSON through a jsonwriter.Writer.
package emit

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"time"

	"github.com/vespa-engine/jsonwriter/jsonwriter"
)

var hex = []byte("0123456789ABCDEF")

// Value writes v, which must be built from nil, booleans, numbers, strings, byte slices, times, []any and maps.
// Map entries are written in key order. Byte slices are written as a hex string prefixed by 0x.
func Value(w *jsonwriter.Writer, v any) error {
	if err := encodeValue(w, v); err != nil {
		return err
	}
	return w.Err()
}

func encodeValue(w *jsonwriter.Writer, v any) error {
	switch v := v.(type) {
	case nil:
		w.NullValue()
	case bool:
		w.BoolValue(v)
	case int8:
		w.IntegerValue(int32(v))
	case int16:
		w.IntegerValue(int32(v))
	case int32:
		w.IntegerValue(v)
	case int:
		w.LongValue(int64(v))
	case int64:
		w.LongValue(v)
	case uint8:
		w.IntegerValue(int32(v))
	case uint16:
		w.IntegerValue(int32(v))
	case uint32:
		w.LongValue(int64(v))
	case uint:
		encodeUnsigned(w, uint64(v))
	case uint64:
		encodeUnsigned(w, v)
	case float32:
		w.FloatValue(v)
	case float64:
		w.DoubleValue(v)
	case *big.Int:
		if v.IsInt64() {
			w.LongValue(v.Int64())
		} else {
			f, _ := new(big.Float).SetInt(v).Float64()
			w.DoubleValue(f)
		}
	case string:
		w.StringValue(v)
	case *string:
		w.StringPtr(v)
	case []byte:
		encodeData(w, v)
	case time.Time:
		w.StringValue(v.Format(time.RFC3339Nano))
	case []any:
		w.StartArray()
		for _, e := range v {
			if err := encodeValue(w, e); err != nil {
				return err
			}
		}
		w.EndArray()
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		w.StartObject()
		for _, k := range keys {
			w.Key(k)
			if err := encodeValue(w, v[k]); err != nil {
				return err
			}
		}
		w.EndObject()
	case map[any]any:
		values := make(map[string]any, len(v))
		for k, e := range v {
			name := fmt.Sprint(k)
			if _, ok := values[name]; ok {
				return fmt.Errorf("duplicate key after conversion to string: %q", name)
			}
			values[name] = e
		}
		return encodeValue(w, values)
	default:
		return fmt.Errorf("cannot write value of type %T as JSON", v)
	}
	return nil
}

func encodeUnsigned(w *jsonwriter.Writer, v uint64) {
	if v > math.MaxInt64 {
		w.DoubleValue(float64(v))
		return
	}
	w.LongValue(int64(v))
}

func encodeData(w *jsonwriter.Writer, value []byte) {
	buf := make([]byte, 2, 2+2*len(value))
	buf[0], buf[1] = '0', 'x'
	for _, c := range value {
		buf = append(buf, hex[(c>>4)&0xf], hex[c&0xf])
	}
	w.StringValue(string(buf))
}
