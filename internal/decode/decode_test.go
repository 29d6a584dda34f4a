package decode

import (
	"strings"
	"testing"
)

func TestFormatFromContentType(t *testing.T) {
	cases := []struct {
		contentType string
		want        Format
	}{
		{"application/x-protobuf", FormatProtobuf},
		{"application/protobuf", FormatProtobuf},
		{"", FormatProtobuf},
		{"text/plain", FormatProtobuf},
		{"application/json", FormatJSON},
		{"application/json; charset=utf-8", FormatJSON},
		{"application/x-ndjson", FormatJSONL},
		{"application/jsonl", FormatJSONL},
		{"APPLICATION/X-NDJSON", FormatJSONL},
	}
	for _, c := range cases {
		if got := FormatFromContentType(c.contentType); got != c.want {
			t.Errorf("FormatFromContentType(%q) = %v, want %v", c.contentType, got, c.want)
		}
	}
}

func TestDecodeLogsJSON(t *testing.T) {
	body := []byte(`{
		"resourceLogs": [{
			"resource": {"attributes": [{"key": "service.name", "value": {"stringValue": "checkout"}}]},
			"scopeLogs": [{
				"scope": {"name": "my-lib"},
				"logRecords": [{
					"timeUnixNano": "1700000000000000000",
					"severityNumber": 9,
					"severityText": "INFO",
					"body": {"stringValue": "hello"},
					"traceId": "0102030405060708090a0b0c0d0e0f10",
					"spanId": "0102030405060708"
				}]
			}]
		}]
	}`)
	req, err := decodeLogsJSON(body)
	if err != nil {
		t.Fatalf("decodeLogsJSON: %v", err)
	}
	if len(req.ResourceLogs) != 1 {
		t.Fatalf("expected 1 resource logs entry, got %d", len(req.ResourceLogs))
	}
	rl := req.ResourceLogs[0]
	if len(rl.ScopeLogs) != 1 || len(rl.ScopeLogs[0].LogRecords) != 1 {
		t.Fatalf("unexpected shape: %#v", rl)
	}
	rec := rl.ScopeLogs[0].LogRecords[0]
	if rec.TimeUnixNano != 1700000000000000000 {
		t.Errorf("TimeUnixNano = %d", rec.TimeUnixNano)
	}
	if rec.Body == nil || rec.Body.Str != "hello" {
		t.Errorf("Body = %#v", rec.Body)
	}
	if len(rec.TraceID) != 16 {
		t.Errorf("TraceID len = %d, want 16", len(rec.TraceID))
	}
	if len(rec.SpanID) != 8 {
		t.Errorf("SpanID len = %d, want 8", len(rec.SpanID))
	}
}

func TestDecodeLogsJSONLMergesLines(t *testing.T) {
	line1 := `{"resourceLogs":[{"resource":{"attributes":[]},"scopeLogs":[{"scope":{"name":"a"},"logRecords":[{"body":{"stringValue":"one"}}]}]}]}`
	line2 := `{"resourceLogs":[{"resource":{"attributes":[]},"scopeLogs":[{"scope":{"name":"b"},"logRecords":[{"body":{"stringValue":"two"}}]}]}]}`
	body := []byte(line1 + "\n" + line2 + "\n")

	req, err := decodeLogsJSONL(body)
	if err != nil {
		t.Fatalf("decodeLogsJSONL: %v", err)
	}
	if len(req.ResourceLogs) != 2 {
		t.Fatalf("expected 2 resource logs entries, got %d", len(req.ResourceLogs))
	}
}

func TestDecodeLogsJSONLEmptyErrors(t *testing.T) {
	_, err := decodeLogsJSONL([]byte("\n\n  \n"))
	if err == nil {
		t.Fatal("expected error for all-blank jsonl body")
	}
}

func TestDecodeLogsJSONLErrorReportsOriginalLineNumber(t *testing.T) {
	line1 := `{"resourceLogs":[{"resource":{"attributes":[]},"scopeLogs":[{"scope":{"name":"a"},"logRecords":[{"body":{"stringValue":"one"}}]}]}]}`
	// A blank line shifts the malformed line to payload-line 3, not
	// line 2 among the non-blank lines.
	body := []byte(line1 + "\n\n" + "not valid json" + "\n")

	_, err := decodeLogsJSONL(body)
	if err == nil {
		t.Fatal("expected a decode error")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error = %q, want it to reference line 3", err.Error())
	}
}
