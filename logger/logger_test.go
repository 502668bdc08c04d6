package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

func newJSONLogger(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l := NewWithWriter(&buf, &Config{Level: level, Format: "json"}, "test-svc")
	return l, &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a log line, got nothing")
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("invalid json log line %q: %v", line, err)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	l, buf := newJSONLogger(t, "invalid-level")
	l.Info("hello")
	if decodeLine(t, buf)["message"] != "hello" {
		t.Error("expected info level fallback to emit info messages")
	}
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newJSONLogger(t, "info")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug to be filtered at info level, got %q", buf.String())
	}
	l.Warn("shown")
	if decodeLine(t, buf)["level"] != "warn" {
		t.Error("expected warn level entry")
	}
}

func TestServiceFieldAttached(t *testing.T) {
	l, buf := newJSONLogger(t, "debug")
	l.Info("x")
	if decodeLine(t, buf)[FieldService] != "test-svc" {
		t.Error("expected service field")
	}
}

func TestWithComponent(t *testing.T) {
	l, buf := newJSONLogger(t, "debug")
	l.WithComponent("di").Info("x")
	m := decodeLine(t, buf)
	if m[FieldComponent] != "di" {
		t.Errorf("expected component=di, got %v", m[FieldComponent])
	}
}

func TestWithFieldsAndError(t *testing.T) {
	l, buf := newJSONLogger(t, "debug")
	l.WithFields(Fields(FieldEntry, "db")).WithError(errors.New("boom")).Error("failed")
	m := decodeLine(t, buf)
	if m[FieldEntry] != "db" {
		t.Errorf("expected entry=db, got %v", m[FieldEntry])
	}
	if m[FieldError] != "boom" {
		t.Errorf("expected error=boom, got %v", m[FieldError])
	}
}

func TestLeveledFieldMaps(t *testing.T) {
	l, buf := newJSONLogger(t, "debug")
	l.Debug("resolved", map[string]interface{}{FieldMode: "singleton"}, map[string]interface{}{FieldCount: 2})
	m := decodeLine(t, buf)
	if m[FieldMode] != "singleton" {
		t.Errorf("expected mode field, got %v", m[FieldMode])
	}
	if m[FieldCount] != float64(2) {
		t.Errorf("expected count=2, got %v", m[FieldCount])
	}
}

func TestWithContext(t *testing.T) {
	l, buf := newJSONLogger(t, "debug")
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	l.WithContext(ctx).Info("x")
	if got := decodeLine(t, buf)[FieldTraceID]; got != traceID.String() {
		t.Errorf("expected trace_id %s, got %v", traceID, got)
	}

	if l.WithContext(context.Background()) != l {
		t.Error("expected same logger when context has no span")
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("nothing")
	l.WithComponent("x").Error("nothing")
}

func TestInit(t *testing.T) {
	prev := globalLogger
	defer SetGlobalLogger(prev)

	Init(Config{Level: "debug", Format: "json", ServiceName: "init-svc"})
	if GetGlobalLogger().service != "init-svc" {
		t.Errorf("expected global logger service 'init-svc', got %q", GetGlobalLogger().service)
	}
}

func TestInitWithConsoleFormat(t *testing.T) {
	prev := globalLogger
	defer SetGlobalLogger(prev)

	Init(Config{Level: "info", Format: FormatConsole, NoColor: true})
	if GetGlobalLogger() == nil {
		t.Fatal("expected global logger")
	}
}

func TestGetGlobalLoggerDefault(t *testing.T) {
	prev := globalLogger
	defer SetGlobalLogger(prev)

	globalLogger = nil
	if GetGlobalLogger() == nil {
		t.Fatal("expected default global logger")
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	prev := globalLogger
	defer SetGlobalLogger(prev)

	var buf bytes.Buffer
	SetGlobalLogger(NewWithWriter(&buf, &Config{Level: "debug", Format: "json"}, "pkg"))
	Info("i")
	WithComponent("di").Info("c")
	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Errorf("expected 2 log lines, got %d", got)
	}
	if !strings.Contains(buf.String(), `"component":"di"`) {
		t.Errorf("expected component field, got %q", buf.String())
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, &Config{Level: "info", Format: FormatConsole, NoColor: true}, "registry")
	l.Warn("careful")
	out := buf.String()
	if !strings.Contains(out, "[REG][WRN]") {
		t.Errorf("expected service and level tags, got %q", out)
	}
	if !strings.Contains(out, "careful") {
		t.Errorf("expected message, got %q", out)
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != FormatConsole {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("expected output 'stdout', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp enabled")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"disabled level", Config{Level: "disabled", Format: "console"}, false},
		{"bad level", Config{Level: "loud", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
		{"empty level", Config{Format: "json"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two", 3, "ignored", "dangling")
	if len(m) != 2 {
		t.Errorf("expected 2 fields, got %d: %v", len(m), m)
	}
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected fields %v", m)
	}
}

func TestErrorFields(t *testing.T) {
	m := ErrorFields("resolve", errors.New("missing"))
	if m[FieldOperation] != "resolve" || m[FieldError] != "missing" {
		t.Errorf("unexpected fields %v", m)
	}
}

func TestDurationFields(t *testing.T) {
	m := DurationFields("resolve", 1500*time.Millisecond)
	if m[FieldDuration] != int64(1500) {
		t.Errorf("expected 1500ms, got %v", m[FieldDuration])
	}
}
