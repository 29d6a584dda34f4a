// Package decode turns an OTLP export request body into the shared
// internal/otlp domain model, auto-detecting the wire format from the
// request's Content-Type header.
package decode

import "strings"

// Format identifies the wire encoding of an OTLP export request body.
type Format int

const (
	FormatProtobuf Format = iota
	FormatJSON
	FormatJSONL
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatJSONL:
		return "jsonl"
	default:
		return "protobuf"
	}
}

// FormatFromContentType classifies a request's Content-Type header.
// JSONL is checked before JSON so that "application/x-ndjson" and
// "application/jsonl" aren't misdetected as plain JSON. A missing or
// unrecognised Content-Type defaults to Protobuf, matching the
// collector's own behaviour for legacy/misconfigured clients.
func FormatFromContentType(contentType string) Format {
	lower := strings.ToLower(contentType)
	switch {
	case strings.Contains(lower, "application/x-ndjson"), strings.Contains(lower, "application/jsonl"):
		return FormatJSONL
	case strings.Contains(lower, "application/json"):
		return FormatJSON
	case strings.Contains(lower, "application/x-protobuf"), strings.Contains(lower, "application/protobuf"):
		return FormatProtobuf
	default:
		return FormatProtobuf
	}
}
