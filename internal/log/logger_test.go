package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newBufferLogger(buf *bytes.Buffer, level slog.Level) *Logger {
	return New(Config{Level: level, Format: "json", Component: ComponentApp, Output: buf})
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid json log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, slog.LevelInfo).WithComponent(ComponentLedger)

	logger.Info("hello", "k", "v")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0][FieldComponent] != ComponentLedger {
		t.Fatalf("component = %v", lines[0][FieldComponent])
	}
	if lines[0]["k"] != "v" {
		t.Fatalf("missing attribute: %v", lines[0])
	}
}

func TestLogTransactionChangeLevels(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(newBufferLogger(&buf, slog.LevelInfo).WithComponent(ComponentNotify))

	sl.LogTransactionChange(context.Background(), OpAdd, "1", "Transaction added successfully", true, 1)
	sl.LogTransactionChange(context.Background(), OpDelete, "x", "Transaction deleted successfully", false, 1)

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("no-op change should log at debug, got %d info lines", len(lines))
	}
	if lines[0][FieldTransactionID] != "1" || lines[0][FieldOperation] != OpAdd {
		t.Fatalf("unexpected fields: %v", lines[0])
	}
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(newBufferLogger(&buf, slog.LevelInfo))

	sl.LogError(context.Background(), "boom", errors.New("bad"), ComponentHTTP, OpRender, nil)

	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0][FieldError] != "bad" {
		t.Fatalf("unexpected output: %v", lines)
	}
}

func TestMiddlewareStoresLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, slog.LevelInfo)

	h := Middleware(logger, func(*http.Request) string { return "req-1" })(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Info("inside")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0][FieldRequestID] != "req-1" {
		t.Fatalf("request id not attached: %v", lines)
	}
}

func TestFromContextFallsBack(t *testing.T) {
	if FromContext(context.Background()).Component() != "unknown" {
		t.Fatal("expected fallback logger")
	}
}
