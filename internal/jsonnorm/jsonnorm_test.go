package jsonnorm

import (
	"errors"
	"reflect"
	"testing"
)

func TestCamelToSnake(t *testing.T) {
	cases := map[string]string{
		"traceId":          "trace_id",
		"resourceLogs":     "resource_logs",
		"stringValue":      "string_value",
		"already_snake":    "already_snake",
		"ABC":              "a_b_c",
		"severityNumber":   "severity_number",
		"droppedAttributesCount": "dropped_attributes_count",
	}
	for in, want := range cases {
		if got := camelToSnake(in); got != want {
			t.Errorf("camelToSnake(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSnakeToPascal(t *testing.T) {
	cases := map[string]string{
		"string_value": "StringValue",
		"int_value":    "IntValue",
		"bytes_value":  "BytesValue",
	}
	for in, want := range cases {
		if got := SnakeToPascal(in); got != want {
			t.Errorf("SnakeToPascal(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeKeyCasingAndVariant(t *testing.T) {
	input := map[string]any{
		"traceId": "",
		"attributes": []any{
			map[string]any{
				"key": "k",
				"value": map[string]any{
					"stringValue": "v",
				},
			},
		},
	}
	normalized, err := Normalize(input, "log_records")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	out := normalized.(map[string]any)

	if _, ok := out["trace_id"]; !ok {
		t.Fatalf("expected trace_id key, got %#v", out)
	}
	attrs := out["attributes"].([]any)
	attr0 := attrs[0].(map[string]any)
	val := attr0["value"].(map[string]any)
	if _, ok := val["StringValue"]; !ok {
		t.Errorf("expected PascalCase StringValue key, got %#v", val)
	}
}

func TestNormalizeHexTraceID(t *testing.T) {
	normalized, err := Normalize(map[string]any{"trace_id": "deadbeef"}, "log_records")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	out := normalized.(map[string]any)
	got := out["trace_id"]
	want := []any{float64(0xde), float64(0xad), float64(0xbe), float64(0xef)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("trace_id = %#v, want %#v", got, want)
	}
}

func TestNormalizeEmptyStringNotCoerced(t *testing.T) {
	out, err := normalizeString("time_unix_nano", "")
	if err != nil {
		t.Fatalf("normalizeString: %v", err)
	}
	if out != "" {
		t.Errorf("empty string must not be coerced, got %#v", out)
	}
}

func TestNormalizeWideIntString(t *testing.T) {
	out, err := normalizeString("time_unix_nano", "1234567890123")
	if err != nil {
		t.Fatalf("normalizeString: %v", err)
	}
	if out != uint64(1234567890123) {
		t.Errorf("got %#v", out)
	}
}

func TestNormalizeUnparseableWideIntStringErrors(t *testing.T) {
	_, err := normalizeString("time_unix_nano", "not-a-number")
	if err == nil {
		t.Fatal("expected an error for unparseable wide-int string, got nil")
	}
	var target *UnparseableFieldError
	if !errors.As(err, &target) {
		t.Errorf("got %#v (%T), want *UnparseableFieldError", err, err)
	}
}

func TestNormalizeNanLiteralPassesThrough(t *testing.T) {
	out, err := normalizeString("double_value", "NaN")
	if err != nil {
		t.Fatalf("normalizeString: %v", err)
	}
	if out != "NaN" {
		t.Errorf("got %#v, want literal NaN string preserved for downstream handling", out)
	}
}

func TestDefaultsInjectedForLogRecords(t *testing.T) {
	normalized, err := Normalize(map[string]any{}, "log_records")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	out := normalized.(map[string]any)
	for _, field := range []string{"dropped_attributes_count", "flags", "severity_text", "attributes", "trace_id", "span_id"} {
		if _, ok := out[field]; !ok {
			t.Errorf("expected default for %q, got %#v", field, out)
		}
	}
}

func TestNormalizeSeverityEnumString(t *testing.T) {
	out, err := normalizeString("severity_number", "SEVERITY_NUMBER_WARN")
	if err != nil {
		t.Fatalf("normalizeString: %v", err)
	}
	if out != float64(13) {
		t.Errorf("got %#v, want 13", out)
	}
}

func TestNormalizeStatusCodeEnumString(t *testing.T) {
	out, err := normalizeString("code", "STATUS_CODE_OK")
	if err != nil {
		t.Fatalf("normalizeString: %v", err)
	}
	if out != float64(1) {
		t.Errorf("got %#v, want 1", out)
	}
}

func TestNormalizeUnknownEnumStringLeftVerbatim(t *testing.T) {
	out, err := normalizeString("kind", "SPAN_KIND_MADE_UP")
	if err != nil {
		t.Fatalf("normalizeString: %v", err)
	}
	if out != "SPAN_KIND_MADE_UP" {
		t.Errorf("got %#v, want left verbatim", out)
	}
}

func TestNormalizeNumericEnumStringReparsed(t *testing.T) {
	out, err := normalizeString("kind", "2")
	if err != nil {
		t.Fatalf("normalizeString: %v", err)
	}
	if out != float64(2) {
		t.Errorf("got %#v, want 2", out)
	}
}

func TestDefaultsNotInjectedOutsideKnownHints(t *testing.T) {
	normalized, err := Normalize(map[string]any{}, "metrics")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	out := normalized.(map[string]any)
	if len(out) != 0 {
		t.Errorf("expected no defaults injected for unrecognised hint, got %#v", out)
	}
}
