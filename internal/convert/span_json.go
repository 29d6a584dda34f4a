package convert

import (
	"strconv"
	"strings"

	"otlp2parquet/internal/otlp"
)

// eventsToJSON renders a span's event list into the JSON array stored in
// the Events column, following the same manual-writer approach as
// attribute/body encoding (spec §9: "a manual writer to avoid building an
// intermediate generic JSON tree").
func eventsToJSON(events []otlp.SpanEvent) string {
	if len(events) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, ev := range events {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('{')
		writeJSONString(&b, "time_unix_nano")
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(ev.TimeUnixNano, 10))
		b.WriteByte(',')
		writeJSONString(&b, "name")
		b.WriteByte(':')
		writeJSONString(&b, ev.Name)
		b.WriteByte(',')
		writeJSONString(&b, "attributes")
		b.WriteByte(':')
		writeKeyValuesJSON(&b, ev.Attributes)
		b.WriteByte(',')
		writeJSONString(&b, "dropped_attributes_count")
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(uint64(ev.DroppedAttributesCount), 10))
		b.WriteByte('}')
	}
	b.WriteByte(']')
	return b.String()
}

// linksToJSON renders a span's link list into the JSON array stored in
// the Links column.
func linksToJSON(links []otlp.SpanLink) string {
	if len(links) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, lk := range links {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('{')
		writeJSONString(&b, "trace_id")
		b.WriteByte(':')
		writeJSONString(&b, hexEncode(lk.TraceID))
		b.WriteByte(',')
		writeJSONString(&b, "span_id")
		b.WriteByte(':')
		writeJSONString(&b, hexEncode(lk.SpanID))
		b.WriteByte(',')
		writeJSONString(&b, "trace_state")
		b.WriteByte(':')
		writeJSONString(&b, lk.TraceState)
		b.WriteByte(',')
		writeJSONString(&b, "attributes")
		b.WriteByte(':')
		writeKeyValuesJSON(&b, lk.Attributes)
		b.WriteByte(',')
		writeJSONString(&b, "dropped_attributes_count")
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(uint64(lk.DroppedAttributesCount), 10))
		b.WriteByte('}')
	}
	b.WriteByte(']')
	return b.String()
}

const hexDigits = "0123456789abcdef"

func hexEncode(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = hexDigits[v>>4]
		out[i*2+1] = hexDigits[v&0xf]
	}
	return string(out)
}
