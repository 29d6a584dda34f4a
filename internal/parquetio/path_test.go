package parquetio

import (
	"strings"
	"testing"
	"time"
)

func TestBuildPathGaugeExample(t *testing.T) {
	const tsMicros = 1_736_935_200_000_000 // 2025-01-15T10:00:00Z

	got := BuildPath("", "metrics.gauge", "svc /A", tsMicros, time.Now())

	want := "metrics/gauge/svc__A/year=2025/month=01/day=15/hour=10/1736935200000000-"
	if !strings.HasPrefix(got, want) {
		t.Fatalf("path = %q, want prefix %q", got, want)
	}
	if !strings.HasSuffix(got, ".parquet") {
		t.Fatalf("path = %q, want .parquet suffix", got)
	}
}

func TestBuildPathEmptyServiceFallsBackToUnknown(t *testing.T) {
	got := BuildPath("", "logs", "", 0, time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC))
	if !strings.Contains(got, "/unknown-service/") {
		t.Fatalf("path = %q, want unknown-service segment", got)
	}
}

func TestBuildPathPrefixIsJoined(t *testing.T) {
	got := BuildPath("s3://bucket/root/", "traces", "svc", 1_700_000_000_000_000, time.Now())
	if !strings.HasPrefix(got, "s3://bucket/root/traces/svc/") {
		t.Fatalf("path = %q, want prefix joined", got)
	}
}
