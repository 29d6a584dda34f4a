// Package jsonnorm normalizes OTLP canonical-JSON trees (camelCase keys,
// hex-encoded ids, numbers-as-strings for wide integer fields) into the
// snake_case, natively-typed shape internal/otlp's map converters expect.
// The algorithm mirrors the original Rust json_normalizer.rs field-for-
// field: the OTLP JSON mapping is lossy in both directions (wide ints as
// strings, bytes as base64 OR hex depending on producer) so normalization
// has to happen before the tree is interpreted as a domain object.
package jsonnorm

import (
	"fmt"
	"strconv"
	"strings"
)

// u64Fields holds OTLP field names whose JSON-string representation must
// be parsed back into an unsigned 64-bit integer.
var u64Fields = map[string]bool{
	"time_unix_nano":          true,
	"observed_time_unix_nano": true,
	"start_time_unix_nano":    true,
	"end_time_unix_nano":      true,
	"count":                   true,
	"bucket_counts":           true,
	"zero_count":              true,
}

// u32Fields holds OTLP field names whose JSON-string representation must
// be parsed back into an unsigned 32-bit integer.
var u32Fields = map[string]bool{
	"dropped_attributes_count": true,
	"dropped_events_count":     true,
	"dropped_links_count":      true,
	"flags":                    true,
	"trace_flags":              true,
}

// i64Fields holds OTLP field names whose JSON-string representation must
// be parsed back into a signed 64-bit integer.
var i64Fields = map[string]bool{
	"int_value": true,
	"as_int":    true,
}

// f64Fields holds OTLP field names whose JSON-string representation must
// be parsed back into a float64 (OTLP allows "NaN"/"Infinity"/"-Infinity"
// string literals here as well as ordinary decimal strings).
var f64Fields = map[string]bool{
	"double_value": true,
	"as_double":    true,
	"sum":          true,
	"min":          true,
	"max":          true,
	"quantile":     true,
	"value":        true,
}

// hexIDFields holds OTLP field names whose string value is a hex-encoded
// byte string that must be decoded to a JSON array of byte values.
var hexIDFields = map[string]bool{
	"trace_id":       true,
	"span_id":        true,
	"parent_span_id": true,
}

// enumFields maps an OTLP field name to its defined string-literal →
// integer lookup, covering the enum families canonical JSON may spell
// out by name instead of by number.
var enumFields = map[string]map[string]int{
	"severity_number":         severityNumberEnum,
	"kind":                    spanKindEnum,
	"code":                    statusCodeEnum,
	"aggregation_temporality": aggregationTemporalityEnum,
}

var severityNumberEnum = buildSeverityNumberEnum()

func buildSeverityNumberEnum() map[string]int {
	levels := []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL"}
	m := map[string]int{"SEVERITY_NUMBER_UNSPECIFIED": 0}
	base := 1
	for _, level := range levels {
		m["SEVERITY_NUMBER_"+level] = base
		for i := 2; i <= 4; i++ {
			m[fmt.Sprintf("SEVERITY_NUMBER_%s%d", level, i)] = base + i - 1
		}
		base += 4
	}
	return m
}

var spanKindEnum = map[string]int{
	"SPAN_KIND_UNSPECIFIED": 0,
	"SPAN_KIND_INTERNAL":    1,
	"SPAN_KIND_SERVER":      2,
	"SPAN_KIND_CLIENT":      3,
	"SPAN_KIND_PRODUCER":    4,
	"SPAN_KIND_CONSUMER":    5,
}

var statusCodeEnum = map[string]int{
	"STATUS_CODE_UNSET": 0,
	"STATUS_CODE_OK":    1,
	"STATUS_CODE_ERROR": 2,
}

var aggregationTemporalityEnum = map[string]int{
	"AGGREGATION_TEMPORALITY_UNSPECIFIED": 0,
	"AGGREGATION_TEMPORALITY_DELTA":       1,
	"AGGREGATION_TEMPORALITY_CUMULATIVE":  2,
}

// anyValueVariants maps the normalizer's snake_case AnyValue key back to
// its PascalCase struct-field name, as internal/otlp's FromLogsMap et al.
// expect to find it.
var anyValueVariants = map[string]string{
	"string_value": "StringValue",
	"bool_value":   "BoolValue",
	"int_value":    "IntValue",
	"double_value": "DoubleValue",
	"array_value":  "ArrayValue",
	"kvlist_value": "KvlistValue",
	"bytes_value":  "BytesValue",
}

// defaultsByHint fills in OTLP-required fields a lenient producer may
// have omitted, keyed by the container the value was found under.
var defaultsByHint = map[string]map[string]any{
	"log_records": {
		"dropped_attributes_count": float64(0),
		"flags":                    float64(0),
		"observed_time_unix_nano":  float64(0),
		"time_unix_nano":           float64(0),
		"severity_number":          float64(0),
		"severity_text":            "",
		"attributes":               []any{},
		"trace_id":                 []any{},
		"span_id":                  []any{},
	},
	"scope_logs":     {"schema_url": ""},
	"resource_logs":  {"schema_url": ""},
	"resource": {
		"dropped_attributes_count": float64(0),
		"attributes":               []any{},
	},
	"scope": {
		"dropped_attributes_count": float64(0),
		"name":                     "",
		"version":                  "",
		"attributes":               []any{},
	},
}

// UnparseableFieldError is returned when a string-encoded numeric field
// (a wide int or float OTLP JSON carries as a string) fails to parse.
// Spec §4.2 rule 3: "Unparseable → InvalidRequest" — decode callers
// propagate this straight into an apierr.InvalidRequest.
type UnparseableFieldError struct {
	Field string
	Value string
}

func (e *UnparseableFieldError) Error() string {
	return fmt.Sprintf("jsonnorm: field %q has unparseable value %q", e.Field, e.Value)
}

// Normalize recursively builds and returns a normalized copy of value;
// the input tree is not modified. keyHint carries the snake_case name of the
// key this value was found under, used both to recognise AnyValue
// variants and to select which default-field set to inject for objects.
// An unparseable numeric-string field anywhere in the tree aborts the
// whole normalization with an *UnparseableFieldError.
func Normalize(value any, keyHint string) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		return normalizeObject(v, keyHint)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			norm, err := Normalize(item, keyHint)
			if err != nil {
				return nil, err
			}
			out[i] = norm
		}
		return out, nil
	case string:
		return normalizeString(keyHint, v)
	default:
		return v, nil
	}
}

func normalizeObject(obj map[string]any, keyHint string) (map[string]any, error) {
	out := make(map[string]any, len(obj))
	for rawKey, rawVal := range obj {
		snake := rawKey
		if hasUpper(rawKey) {
			snake = camelToSnake(rawKey)
		}

		childHint := snake
		finalKey := snake
		if pascal, isVariant := anyValueVariants[snake]; isVariant {
			finalKey = pascal
		}

		norm, err := Normalize(rawVal, childHint)
		if err != nil {
			return nil, err
		}
		out[finalKey] = norm
	}

	if defaults, ok := defaultsByHint[keyHint]; ok {
		for field, def := range defaults {
			if _, present := out[field]; !present {
				out[field] = def
			}
		}
	}
	return out, nil
}

// normalizeString converts a string value into its natively-typed form
// when keyHint names a field that OTLP JSON encodes as a string (wide
// integers) or as hex (trace/span ids). Values that don't match any
// known field hint, or that are empty, pass through unchanged — an empty
// string is never coerced, matching the original normalizer's
// convert_string_field early return. A string recognised as belonging to
// a numeric field that fails to parse returns an *UnparseableFieldError
// rather than passing the raw string downstream (spec §4.2 rule 3),
// mirroring json_normalizer.rs's `?`-propagated parse failure.
func normalizeString(keyHint, s string) (any, error) {
	if s == "" {
		return s, nil
	}
	if enumValues, ok := enumFields[keyHint]; ok {
		if n, ok := enumValues[s]; ok {
			return float64(n), nil
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return float64(n), nil
		}
		return s, nil
	}

	switch {
	case u64Fields[keyHint]:
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, &UnparseableFieldError{Field: keyHint, Value: s}
		}
		return n, nil
	case u32Fields[keyHint]:
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return nil, &UnparseableFieldError{Field: keyHint, Value: s}
		}
		return float64(n), nil
	case i64Fields[keyHint]:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, &UnparseableFieldError{Field: keyHint, Value: s}
		}
		return n, nil
	case f64Fields[keyHint]:
		switch s {
		case "NaN", "Infinity", "-Infinity":
			return s, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, &UnparseableFieldError{Field: keyHint, Value: s}
		}
		return f, nil
	case hexIDFields[keyHint]:
		if decoded, ok := tryHexDecode(s); ok {
			return decoded, nil
		}
		return s, nil
	default:
		return s, nil
	}
}

func tryHexDecode(s string) ([]any, bool) {
	if len(s)%2 != 0 {
		return nil, false
	}
	out := make([]any, len(s)/2)
	for i := 0; i < len(out); i++ {
		hi, ok1 := hexNibble(s[2*i])
		lo, ok2 := hexNibble(s[2*i+1])
		if !ok1 || !ok2 {
			return nil, false
		}
		out[i] = float64(hi<<4 | lo)
	}
	return out, true
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

func hasUpper(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			return true
		}
	}
	return false
}

// camelToSnake inserts an underscore before every uppercase letter except
// one at index 0 and lowercases it, so "ABC" becomes "a_b_c".
func camelToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	prevInserted := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 && !prevInserted {
				b.WriteByte('_')
			}
			b.WriteByte(c - 'A' + 'a')
			prevInserted = false
			continue
		}
		b.WriteByte(c)
		prevInserted = false
	}
	return b.String()
}

// SnakeToPascal converts a snake_case identifier to PascalCase, used
// where an AnyValue variant name needs re-deriving outside the normal
// object-key path (kept for symmetry with the Rust original and for
// tests; the normal code path uses the anyValueVariants lookup table).
func SnakeToPascal(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	capNext := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' {
			capNext = true
			continue
		}
		if capNext && c >= 'a' && c <= 'z' {
			b.WriteByte(c - 'a' + 'A')
		} else {
			b.WriteByte(c)
		}
		capNext = false
	}
	return b.String()
}

// ErrEmptyInput is returned by callers (internal/decode) when a JSONL
// payload yields no resource entries, which includes a payload with no
// non-blank lines.
var ErrEmptyInput = fmt.Errorf("no valid records in input")
