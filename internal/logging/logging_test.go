package logging

import "testing"

func TestNilComponentLoggerIsNoOp(t *testing.T) {
	var l *ComponentLogger
	l.Infof("should not panic: %d", 42)
	l.Errorf("neither should this")
}

func TestNewBuildsLoggerForBothFormats(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		logger, err := New(Config{Level: "info", Format: format})
		if err != nil {
			t.Fatalf("New(%q): %v", format, err)
		}
		cl := NewComponentLogger(logger, "accumulator")
		cl.Infof("flushed %d rows", 5)
	}
}

func TestNewComponentLoggerOfNilBaseIsNil(t *testing.T) {
	cl := NewComponentLogger(nil, "accumulator")
	if cl != nil {
		t.Fatalf("NewComponentLogger(nil, ...) = %v, want nil", cl)
	}
}
