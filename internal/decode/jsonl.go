package decode

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"otlp2parquet/internal/jsonnorm"
	"otlp2parquet/internal/otlp"
)

// jsonlLine pairs a non-blank line's content with its 1-based position in
// the original payload, so a parse failure can be reported against the
// line the caller actually submitted rather than its index among the
// non-blank lines alone.
type jsonlLine struct {
	text   string
	number int
}

func splitJSONLLines(body []byte) ([]jsonlLine, error) {
	if !utf8.Valid(body) {
		return nil, fmt.Errorf("decode: jsonl body is not valid utf-8")
	}
	rawLines := strings.Split(string(body), "\n")
	lines := make([]jsonlLine, 0, len(rawLines))
	for i, line := range rawLines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lines = append(lines, jsonlLine{text: trimmed, number: i + 1})
	}
	return lines, nil
}

func decodeLogsJSONL(body []byte) (*otlp.LogsRequest, error) {
	lines, err := splitJSONLLines(body)
	if err != nil {
		return nil, err
	}
	merged := &otlp.LogsRequest{}
	for _, line := range lines {
		req, err := decodeLogsJSON([]byte(line.text))
		if err != nil {
			return nil, fmt.Errorf("decode: line %d: %w", line.number, err)
		}
		merged.ResourceLogs = append(merged.ResourceLogs, req.ResourceLogs...)
	}
	if len(merged.ResourceLogs) == 0 {
		return nil, jsonnorm.ErrEmptyInput
	}
	return merged, nil
}

func decodeTracesJSONL(body []byte) (*otlp.TracesRequest, error) {
	lines, err := splitJSONLLines(body)
	if err != nil {
		return nil, err
	}
	merged := &otlp.TracesRequest{}
	for _, line := range lines {
		req, err := decodeTracesJSON([]byte(line.text))
		if err != nil {
			return nil, fmt.Errorf("decode: line %d: %w", line.number, err)
		}
		merged.ResourceSpans = append(merged.ResourceSpans, req.ResourceSpans...)
	}
	if len(merged.ResourceSpans) == 0 {
		return nil, jsonnorm.ErrEmptyInput
	}
	return merged, nil
}

func decodeMetricsJSONL(body []byte) (*otlp.MetricsRequest, error) {
	lines, err := splitJSONLLines(body)
	if err != nil {
		return nil, err
	}
	merged := &otlp.MetricsRequest{}
	for _, line := range lines {
		req, err := decodeMetricsJSON([]byte(line.text))
		if err != nil {
			return nil, fmt.Errorf("decode: line %d: %w", line.number, err)
		}
		merged.ResourceMetrics = append(merged.ResourceMetrics, req.ResourceMetrics...)
	}
	if len(merged.ResourceMetrics) == 0 {
		return nil, jsonnorm.ErrEmptyInput
	}
	return merged, nil
}
