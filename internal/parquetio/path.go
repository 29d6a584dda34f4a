package parquetio

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var pathSanitizeChars = []string{"/", "\\", " ", ":", "*", "?", "\"", "<", ">", "|"}

// sanitizeServiceName replaces path-hostile characters with underscores,
// per spec §4.5, falling back to "unknown-service" for an empty name.
func sanitizeServiceName(name string) string {
	if name == "" {
		return "unknown-service"
	}
	out := name
	for _, ch := range pathSanitizeChars {
		out = strings.ReplaceAll(out, ch, "_")
	}
	return out
}

// signalPathSegment maps a schema name to its object-key signal segment:
// "logs", "traces", or "metrics/<metric_type>" for the five metric
// schemas, whose Schema.Name is "metrics.<metric_type>" (spec §4.5:
// "signal is logs | traces | metrics/<metric_type>").
func signalPathSegment(schemaName string) string {
	if rest, ok := strings.CutPrefix(schemaName, "metrics."); ok {
		return "metrics/" + rest
	}
	return schemaName
}

// BuildPath constructs the deterministic, content-addressed object key a
// Parquet file is written under:
//
//	<prefix>/<signal>/<service>/year=YYYY/month=MM/day=DD/hour=HH/<ts>-<uuid>.parquet
//
// tsMicros is the minimum event timestamp in the file, in microseconds
// since the epoch; if zero, the current UTC time is used instead, for
// both the partition and <ts> (spec
// §4.5: "falls back to ingestion time when the batch carries none").
func BuildPath(prefix, schemaName, serviceName string, tsMicros int64, now time.Time) string {
	var t time.Time
	if tsMicros > 0 {
		t = time.UnixMicro(tsMicros).UTC()
	} else {
		t = now.UTC()
	}

	signal := signalPathSegment(schemaName)
	service := sanitizeServiceName(serviceName)
	id := uuid.New().String()

	base := fmt.Sprintf(
		"%s/%s/year=%04d/month=%02d/day=%02d/hour=%02d/%d-%s.parquet",
		signal, service, t.Year(), t.Month(), t.Day(), t.Hour(), t.UnixMicro(), id,
	)

	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return base
	}
	return prefix + "/" + base
}
