package convert

import (
	"math"
	"strconv"
	"strings"

	"otlp2parquet/internal/otlp"
)

// writeAnyValueJSON appends the JSON encoding of v to b, recursing into
// arrays and kv-lists. This is a hand-rolled writer rather than
// encoding/json because OTLP body/attribute values need the NaN/±Inf
// string-literal fallback JSON has no native form for, and because
// writing directly into the caller's builder avoids an intermediate
// map[string]any allocation per attribute (spec §4.3 performance note).
func writeAnyValueJSON(b *strings.Builder, v *otlp.AnyValue) {
	if v == nil {
		b.WriteString("null")
		return
	}
	switch v.Kind {
	case otlp.AnyValueString:
		writeJSONString(b, v.Str)
	case otlp.AnyValueBool:
		if v.Bool {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case otlp.AnyValueInt64:
		b.WriteString(strconv.FormatInt(v.Int64, 10))
	case otlp.AnyValueDouble:
		writeFloatJSON(b, v.Double)
	case otlp.AnyValueBytes:
		writeJSONString(b, "bytes:"+strconv.Itoa(len(v.Bytes)))
	case otlp.AnyValueArray:
		b.WriteByte('[')
		for i := range v.Array {
			if i > 0 {
				b.WriteByte(',')
			}
			writeAnyValueJSON(b, &v.Array[i])
		}
		b.WriteByte(']')
	case otlp.AnyValueKvList:
		writeKeyValuesJSON(b, v.KvList)
	default:
		b.WriteString("null")
	}
}

// writeFloatJSON encodes f as a JSON number, falling back to the
// "NaN"/"Infinity"/"-Infinity" string literals JSON has no native
// representation for (spec §4.3 Body rule).
func writeFloatJSON(b *strings.Builder, f float64) {
	switch {
	case math.IsNaN(f):
		b.WriteString(`"NaN"`)
	case math.IsInf(f, 1):
		b.WriteString(`"Infinity"`)
	case math.IsInf(f, -1):
		b.WriteString(`"-Infinity"`)
	default:
		b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	}
}

// writeKeyValuesJSON writes a KeyValue sequence as a JSON object,
// preserving original order and including every entry (no dedup — only
// the dedicated resource-attribute promotion in convert.go's
// extractResourceAttrs picks a single first-wins value out of a KeyValue
// sequence).
func writeKeyValuesJSON(b *strings.Builder, kvs []otlp.KeyValue) {
	b.WriteByte('{')
	for i, kv := range kvs {
		if i > 0 {
			b.WriteByte(',')
		}
		writeJSONString(b, kv.Key)
		b.WriteByte(':')
		writeAnyValueJSON(b, &kv.Value)
	}
	b.WriteByte('}')
}

// emptyAttributesJSON is the static constant spec §4.3 calls for to avoid
// allocation when an attribute set is empty.
const emptyAttributesJSON = "{}"

// attributesToJSON renders a KeyValue sequence as a compact JSON object,
// returning the shared empty-object constant when kvs is empty.
func attributesToJSON(kvs []otlp.KeyValue) string {
	if len(kvs) == 0 {
		return emptyAttributesJSON
	}
	var b strings.Builder
	b.Grow(len(kvs) * 64)
	writeKeyValuesJSON(&b, kvs)
	return b.String()
}

// bodyToJSON renders an OTLP log body AnyValue as its JSON-encoded form.
func bodyToJSON(v *otlp.AnyValue) string {
	var b strings.Builder
	writeAnyValueJSON(&b, v)
	return b.String()
}

// writeJSONString appends s to b as an RFC 8259 JSON string literal,
// quotes included.
func writeJSONString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				b.WriteString("\\u")
				const hex = "0123456789abcdef"
				b.WriteByte(hex[(r>>12)&0xf])
				b.WriteByte(hex[(r>>8)&0xf])
				b.WriteByte(hex[(r>>4)&0xf])
				b.WriteByte(hex[r&0xf])
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}
