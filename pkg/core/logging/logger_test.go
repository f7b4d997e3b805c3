package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	mdwlog "github.com/msto63/mdw-dateutil/foundation/core/log"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	logger := New("test-service")

	if logger == nil {
		t.Fatal("New() returned nil")
	}
	if logger.Name() != "test-service" {
		t.Errorf("Name() = %v, want test-service", logger.Name())
	}
}

func TestNewLogger_LevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{ServiceName: "dateutil", Level: "warn", Format: "text", Output: &buf})

	if l.GetLevel() != mdwlog.LevelWarn {
		t.Errorf("level = %v, want warn", l.GetLevel())
	}

	l.Info("hidden")
	l.Warn("visible")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "[WRN] {dateutil}") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestNewLogger_Defaults(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{ServiceName: "x", Level: "bogus", Format: "bogus", Output: &buf})

	if l.GetLevel() != mdwlog.LevelInfo {
		t.Errorf("level = %v, want info", l.GetLevel())
	}
	l.Info("json")
	var m map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Errorf("default format is not JSON: %v", err)
	}
}

func TestNewLogger_AdditionalOutputs(t *testing.T) {
	var a, b bytes.Buffer
	l := NewLogger(LoggerConfig{Level: "info", Output: &a, AdditionalOutputs: []io.Writer{&b}})

	l.Info("both")
	if a.Len() == 0 || a.String() != b.String() {
		t.Errorf("outputs differ: %q vs %q", a.String(), b.String())
	}
}

func TestLogger_KeyValues(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(LoggerConfig{ServiceName: "svc", Level: "debug", Output: &buf})
	l := Wrap(base, "grpc").With("component", "server").WithRequestID("req-9")

	l.Debug("served", "operation", "addDays", "dangling")

	var m map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if m["logger"] != "grpc" || m["component"] != "server" || m["request_id"] != "req-9" || m["operation"] != "addDays" {
		t.Errorf("entry = %v", m)
	}
	if _, ok := m["dangling"]; ok {
		t.Error("odd trailing key should be dropped")
	}
}

func TestLogger_WithLevel(t *testing.T) {
	logger := New("test").WithLevel(LevelError)

	if logger.GetLevel() != mdwlog.LevelError {
		t.Errorf("level = %v, want error", logger.GetLevel())
	}
	if logger.Name() != "test" {
		t.Errorf("name lost: %q", logger.Name())
	}
}

func TestToFields(t *testing.T) {
	if toFields() != nil {
		t.Error("toFields() should be nil")
	}
	f := toFields("a", 1, 2, "skip", "b", true)
	if len(f) != 2 || f["a"] != 1 || f["b"] != true {
		t.Errorf("toFields() = %v", f)
	}
}
