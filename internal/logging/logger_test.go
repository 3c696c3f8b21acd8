package logging

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer log.SetOutput(os.Stderr)
	fn()
	return buf.String()
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", DEBUG, false},
		{"INFO", INFO, false},
		{" warn ", WARN, false},
		{"error", ERROR, false},
		{"fatal", FATAL, false},
		{"verbose", INFO, true},
		{"", INFO, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	if err := Initialize("warn"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer func() { _ = Initialize("info") }()

	logger := GetLogger("test")
	out := captureStdout(t, func() {
		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")
	})

	if strings.Contains(out, "debug message") {
		t.Error("debug message should be filtered at warn level")
	}
	if strings.Contains(out, "info message") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, "warn message") {
		t.Error("warn message should be logged at warn level")
	}
}

func TestPerPackageLevels(t *testing.T) {
	if err := Initialize("info", map[string]string{"agent": "debug"}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer func() { _ = Initialize("info") }()

	out := captureStdout(t, func() {
		GetLogger("agent").Debug("agent debug")
		GetLogger("api").Debug("api debug")
	})

	if !strings.Contains(out, "agent debug") {
		t.Error("agent package should log at debug level")
	}
	if strings.Contains(out, "api debug") {
		t.Error("api package should stay at default info level")
	}
}

func TestInitializeRejectsInvalidPackageLevel(t *testing.T) {
	if err := Initialize("info", map[string]string{"api": "loud"}); err == nil {
		t.Error("expected error for invalid package level")
	}
}

func TestWithFieldsImmutable(t *testing.T) {
	base := GetLogger("test")
	child := base.WithField("request_id", "abc-123")

	if len(base.fields) != 0 {
		t.Errorf("parent logger fields mutated: %v", base.fields)
	}
	if child.fields["request_id"] != "abc-123" {
		t.Errorf("child logger missing field, got %v", child.fields)
	}
}

func TestStructuredFieldsInOutput(t *testing.T) {
	t.Setenv("LOG_TIMESTAMP", "2026-01-01T00:00:00Z")
	if err := Initialize("info"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	logger := GetLogger("test").WithField("agent", "tutor_agent")
	out := captureStdout(t, func() {
		logger.InfoWithFields("routed", Field("request_id", "r-1"))
	})

	for _, want := range []string{"[2026-01-01T00:00:00Z]", "agent=tutor_agent", "request_id=r-1", "routed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}
