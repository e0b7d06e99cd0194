package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/signalsfoundry/sscweb/internal/logging"
)

func TestTracingConfigFromEnv(t *testing.T) {
	t.Setenv("SSC_TRACING_ENABLED", "TRUE")
	t.Setenv("SSC_TRACING_EXPORTER", "OTLP")
	t.Setenv("SSC_TRACING_SERVICE_NAME", "")
	t.Setenv("SSC_TRACING_SAMPLE_RATIO", "2.5")
	t.Setenv("SSC_OTLP_ENDPOINT", "collector:4317")

	cfg := TracingConfigFromEnv("ssc-example")
	if !cfg.Enabled || cfg.Exporter != "otlp" || cfg.ServiceName != "ssc-example" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.SampleRatio != 1.0 {
		t.Fatalf("out-of-range ratio should fall back to 1.0, got %v", cfg.SampleRatio)
	}
	if cfg.Endpoint != "collector:4317" {
		t.Fatalf("Endpoint = %q", cfg.Endpoint)
	}
}

func TestInitTracingDisabled(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), TracingConfig{}, nil)
	if err != nil {
		t.Fatalf("InitTracing: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestInitTracingRejectsUnknownExporter(t *testing.T) {
	_, err := InitTracing(context.Background(), TracingConfig{Enabled: true, Exporter: "zipkin"}, logging.Noop())
	if err == nil {
		t.Fatalf("expected error for unsupported exporter")
	}
}

func TestStdoutExporterReceivesSpans(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := InitTracing(context.Background(), TracingConfig{
		Enabled:     true,
		ServiceName: "ssc-test",
		Exporter:    "stdout",
		SampleRatio: 1,
		Writer:      &buf,
	}, logging.Noop())
	if err != nil {
		t.Fatalf("InitTracing: %v", err)
	}
	t.Cleanup(func() {
		_, _ = InitTracing(context.Background(), TracingConfig{}, nil)
	})

	ctx := logging.ContextWithRequestID(context.Background(), "req-42")
	_, span := StartSpan(ctx, "SSC/GetData")
	EndSpan(span, "ERROR", errors.New("no satellites"))

	ShutdownWithTimeout(context.Background(), shutdown, logging.Noop())

	out := buf.String()
	for _, want := range []string{"SSC/GetData", "req-42", "ssc.status_code", "no satellites"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in exported spans:\n%s", want, out)
		}
	}
}
