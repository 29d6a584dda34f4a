package otlp

import "fmt"

// The helpers below read values out of a generic JSON tree (map[string]any
// produced by github.com/goccy/go-json + internal/jsonnorm). The
// normalizer has already coerced numeric-looking strings into the
// expected float64/uint64/int64 shapes and hex-decoded trace/span
// ids into []any of float64, so these are simple, permissive readers
// rather than a validating decoder.

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case uint64:
		return int64(n)
	case int:
		return int64(n)
	default:
		return 0
	}
}

func asUint64(v any) uint64 {
	switch n := v.(type) {
	case float64:
		return uint64(n)
	case int64:
		return uint64(n)
	case uint64:
		return n
	case int:
		return uint64(n)
	default:
		return 0
	}
}

func asUint32(v any) uint32 {
	return uint32(asUint64(v))
}

func asFloat64Slice(v any) []float64 {
	items := asSlice(v)
	if len(items) == 0 {
		return nil
	}
	out := make([]float64, 0, len(items))
	for _, it := range items {
		out = append(out, asFloat64(it))
	}
	return out
}

func asUint64Slice(v any) []uint64 {
	items := asSlice(v)
	if len(items) == 0 {
		return nil
	}
	out := make([]uint64, 0, len(items))
	for _, it := range items {
		out = append(out, asUint64(it))
	}
	return out
}

// asBytes reads a trace/span id that the normalizer has already hex-
// decoded into a []any of small numbers (from a JSON array), or accepts
// a raw []byte / hex string as a fallback for callers that bypass the
// normalizer in tests.
func asBytes(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return append([]byte(nil), val...), nil
	case []any:
		out := make([]byte, len(val))
		for i, e := range val {
			n := asInt64(e)
			if n < 0 || n > 255 {
				return nil, fmt.Errorf("byte value out of range: %v", e)
			}
			out[i] = byte(n)
		}
		return out, nil
	case string:
		if val == "" {
			return nil, nil
		}
		return hexDecode(val)
	default:
		return nil, fmt.Errorf("unsupported id representation: %T", v)
	}
}

func hexDecode(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("odd-length hex string: %q", s)
	}
	out := make([]byte, len(s)/2)
	for i := 0; i < len(out); i++ {
		hi, ok1 := hexNibble(s[2*i])
		lo, ok2 := hexNibble(s[2*i+1])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("invalid hex string: %q", s)
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func hexNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
