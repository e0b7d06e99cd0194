package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestSlogJSONBackend(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "json", Output: &buf})

	log.Debug(context.Background(), "hidden")
	log.With(String("component", "printer")).Info(context.Background(), "rendered", Int("rows", 3))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one log line, got %d: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if rec["msg"] != "rendered" || rec["component"] != "printer" || rec["rows"] != float64(3) {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestZapBackend(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Backend: "zap", Output: &buf})

	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "status passed through", String("status", "ERROR"), Err(errors.New("boom")))

	var rec map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec); err != nil {
		t.Fatalf("unmarshal zap line %q: %v", buf.String(), err)
	}
	if rec["msg"] != "status passed through" || rec["status"] != "ERROR" || rec["error"] != "boom" {
		t.Fatalf("unexpected record: %v", rec)
	}
	if rec["level"] != "warn" {
		t.Fatalf("level = %v, want warn", rec["level"])
	}
}

func TestEnsureRequestID(t *testing.T) {
	ctx, id := EnsureRequestID(context.Background())
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("request id %q is not a uuid: %v", id, err)
	}
	again, same := EnsureRequestID(ctx)
	if same != id || RequestIDFromContext(again) != id {
		t.Fatalf("EnsureRequestID replaced existing id %q with %q", id, same)
	}

	preset := ContextWithRequestID(context.Background(), "abc")
	if _, got := EnsureRequestID(preset); got != "abc" {
		t.Fatalf("EnsureRequestID = %q, want abc", got)
	}
}

func TestLoggerFromContext(t *testing.T) {
	if LoggerFromContext(context.Background(), nil) == nil {
		t.Fatalf("expected noop fallback, got nil")
	}

	var buf bytes.Buffer
	base := New(Config{Format: "json", Output: &buf})
	ctx, reqLog := WithRequestLogger(context.Background(), base)
	ctx = ContextWithLogger(ctx, reqLog)

	LoggerFromContext(ctx, Noop()).Info(ctx, "hello")
	if !strings.Contains(buf.String(), RequestIDFromContext(ctx)) {
		t.Fatalf("request id missing from %q", buf.String())
	}
}

func TestErrNil(t *testing.T) {
	if f := Err(nil); f.Key != "error" || f.Value != "" {
		t.Fatalf("Err(nil) = %+v", f)
	}
}

func TestLevelSpellings(t *testing.T) {
	for in, want := range map[string]string{"": "info", "DEBUG": "debug", "warning": "warn", " error ": "error", "trace": "info"} {
		if got := levelName(in); got != want {
			t.Fatalf("levelName(%q) = %q, want %q", in, got, want)
		}
	}

	var buf bytes.Buffer
	New(Config{Level: "WARNING", Backend: "zap", Output: &buf}).Info(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Fatalf("info record written at warn level: %q", buf.String())
	}
}
