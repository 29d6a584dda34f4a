package decode

import (
	"fmt"

	collogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	colmetricspb "go.opentelemetry.io/proto/otlp/collector/metrics/v1"
	coltracepb "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	"google.golang.org/protobuf/proto"

	"otlp2parquet/internal/otlp"
)

func decodeLogsProtobuf(body []byte) (*otlp.LogsRequest, error) {
	var req collogspb.ExportLogsServiceRequest
	if err := proto.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("decode: invalid logs protobuf: %w", err)
	}
	return otlp.FromLogsProto(&req), nil
}

func decodeTracesProtobuf(body []byte) (*otlp.TracesRequest, error) {
	var req coltracepb.ExportTraceServiceRequest
	if err := proto.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("decode: invalid traces protobuf: %w", err)
	}
	return otlp.FromTracesProto(&req), nil
}

func decodeMetricsProtobuf(body []byte) (*otlp.MetricsRequest, error) {
	var req colmetricspb.ExportMetricsServiceRequest
	if err := proto.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("decode: invalid metrics protobuf: %w", err)
	}
	return otlp.FromMetricsProto(&req), nil
}
