package decode

import (
	"fmt"

	"otlp2parquet/internal/otlp"
)

// Logs decodes an OTLP logs export request body using the wire format
// detected from contentType.
func Logs(body []byte, contentType string) (*otlp.LogsRequest, error) {
	switch FormatFromContentType(contentType) {
	case FormatJSON:
		return decodeLogsJSON(body)
	case FormatJSONL:
		return decodeLogsJSONL(body)
	default:
		return decodeLogsProtobuf(body)
	}
}

// Traces decodes an OTLP traces export request body using the wire
// format detected from contentType.
func Traces(body []byte, contentType string) (*otlp.TracesRequest, error) {
	switch FormatFromContentType(contentType) {
	case FormatJSON:
		return decodeTracesJSON(body)
	case FormatJSONL:
		return decodeTracesJSONL(body)
	default:
		return decodeTracesProtobuf(body)
	}
}

// Metrics decodes an OTLP metrics export request body using the wire
// format detected from contentType.
func Metrics(body []byte, contentType string) (*otlp.MetricsRequest, error) {
	switch FormatFromContentType(contentType) {
	case FormatJSON:
		return decodeMetricsJSON(body)
	case FormatJSONL:
		return decodeMetricsJSONL(body)
	default:
		return decodeMetricsProtobuf(body)
	}
}

// Request decodes body into a signal-tagged Request, dispatching to the
// signal-specific decoder named by signal.
func Request(signal otlp.Signal, body []byte, contentType string) (*otlp.Request, error) {
	switch signal {
	case otlp.SignalLogs:
		logs, err := Logs(body, contentType)
		if err != nil {
			return nil, err
		}
		return &otlp.Request{Signal: signal, Logs: logs}, nil
	case otlp.SignalTraces:
		traces, err := Traces(body, contentType)
		if err != nil {
			return nil, err
		}
		return &otlp.Request{Signal: signal, Traces: traces}, nil
	case otlp.SignalMetrics:
		metrics, err := Metrics(body, contentType)
		if err != nil {
			return nil, err
		}
		return &otlp.Request{Signal: signal, Metrics: metrics}, nil
	default:
		return nil, fmt.Errorf("decode: unknown signal %v", signal)
	}
}
