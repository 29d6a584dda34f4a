package decode

import (
	"fmt"

	gojson "github.com/goccy/go-json"

	"otlp2parquet/internal/jsonnorm"
	"otlp2parquet/internal/otlp"
)

// decodeJSONTree unmarshals raw bytes into a generic tree and runs it
// through the normalizer. Shared by the single-document JSON path and
// the per-line JSONL path.
func decodeJSONTree(body []byte) (map[string]any, error) {
	var tree map[string]any
	if err := gojson.Unmarshal(body, &tree); err != nil {
		return nil, fmt.Errorf("decode: invalid json: %w", err)
	}
	normalized, err := jsonnorm.Normalize(tree, "")
	if err != nil {
		return nil, fmt.Errorf("decode: normalize json: %w", err)
	}
	return normalized.(map[string]any), nil
}

func decodeLogsJSON(body []byte) (*otlp.LogsRequest, error) {
	tree, err := decodeJSONTree(body)
	if err != nil {
		return nil, err
	}
	return otlp.FromLogsMap(tree)
}

func decodeTracesJSON(body []byte) (*otlp.TracesRequest, error) {
	tree, err := decodeJSONTree(body)
	if err != nil {
		return nil, err
	}
	return otlp.FromTracesMap(tree)
}

func decodeMetricsJSON(body []byte) (*otlp.MetricsRequest, error) {
	tree, err := decodeJSONTree(body)
	if err != nil {
		return nil, err
	}
	return otlp.FromMetricsMap(tree)
}
