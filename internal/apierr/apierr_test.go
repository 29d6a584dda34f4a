package apierr

import (
	"errors"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[Kind]int{
		InvalidRequest:   http.StatusBadRequest,
		Unauthorized:     http.StatusUnauthorized,
		PayloadTooLarge:  http.StatusRequestEntityTooLarge,
		Backpressure:     http.StatusTooManyRequests,
		ConversionFailed: http.StatusInternalServerError,
		InternalError:    http.StatusInternalServerError,
		StorageFailed:    http.StatusBadGateway,
		ConfigError:      http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := kind.HTTPStatus(); got != want {
			t.Errorf("%s.HTTPStatus() = %d, want %d", kind, got, want)
		}
	}
}

func TestWrapPreservesCauseForUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(StorageFailed, "write failed", cause)

	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is(err, cause) = false, want true")
	}
}

func TestWithHintDoesNotMutateOriginal(t *testing.T) {
	base := New(InvalidRequest, "bad field")
	hinted := base.WithHint("check the trace_id encoding")

	if base.Hint != "" {
		t.Fatalf("base.Hint = %q, want empty", base.Hint)
	}
	if hinted.Hint == "" {
		t.Fatalf("hinted.Hint is empty, want set")
	}
}
