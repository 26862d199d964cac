package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	apperrors "github.com/kbukum/healthreg/errors"
)

func useRecorder(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return exporter
}

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestConfig(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Endpoint != "localhost:4318" || cfg.SampleRate != 1.0 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	cfg.SampleRate = 2
	if err := cfg.Validate(); err == nil {
		t.Error("expected sample rate error")
	}
}

func TestNewMetrics_Noop(t *testing.T) {
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	ctx := context.Background()
	metrics.RecordRun(ctx, "consul", "register", StatusOK, time.Second)
	metrics.RecordCheck(ctx, "consul", "register", StatusOK, 10*time.Millisecond)
	metrics.RecordError(ctx, "VALIDATION_FAILED", "sensu")
}

func TestRunContext_RecordsChecksAndRun(t *testing.T) {
	exporter := useRecorder(t)
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatal(err)
	}

	rc := NewRunContext("sensu", "register", "corr-1", "web", metrics)
	ctx, span := rc.StartRun(context.Background(), SpanRegister)
	if RunContextFromContext(ctx) != rc {
		t.Error("expected run context in span context")
	}

	_ = rc.TrackCheck(ctx, "disk", func(context.Context) error { return nil })
	err = rc.TrackCheck(ctx, "mem", func(context.Context) error { return fmt.Errorf("write failed") })
	if err == nil {
		t.Error("expected TrackCheck to return the check error")
	}
	rc.EndRun(ctx, span, StatusError, apperrors.Registration("Sensu", "mem", err))

	spans := exporter.GetSpans()
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(spans))
	}
	if spans[2].Name != SpanRegister || spans[0].Name != SpanCheck {
		t.Errorf("unexpected span names %s, %s", spans[0].Name, spans[2].Name)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatal(err)
	}
	totals := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					totals[m.Name] += dp.Value
				}
			}
		}
	}
	if totals["healthreg.check.total"] != 2 || totals["healthreg.run.total"] != 1 || totals["healthreg.error.total"] != 1 {
		t.Errorf("unexpected metric totals %v", totals)
	}
}

func TestRunContext_NilMetrics(t *testing.T) {
	rc := NewRunContext("consul", "deregister", "corr", "web", nil)
	ctx, span := rc.StartRun(context.Background(), SpanDeregister)
	_ = rc.TrackCheck(ctx, "a", func(context.Context) error { return nil })
	rc.EndRun(ctx, span, StatusOK, nil)
	if rc.Duration() < 0 {
		t.Error("duration must not be negative")
	}
}

func TestRunContextFromContext_NotSet(t *testing.T) {
	if RunContextFromContext(context.Background()) != nil {
		t.Error("expected nil run context")
	}
}

func TestSetSpanAttribute(t *testing.T) {
	exporter := useRecorder(t)

	ctx, span := StartSpan(context.Background(), "test-attrs")
	SetSpanAttribute(ctx, "string-key", "value")
	SetSpanAttribute(ctx, "int-key", 42)
	SetSpanAttribute(ctx, "bool-key", true)
	SetSpanAttribute(ctx, "string-slice-key", []string{"a", "b"})
	SetSpanAttribute(ctx, "unsupported-key", struct{}{})
	SetSpanError(ctx, fmt.Errorf("test error"))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 || len(spans[0].Attributes) != 4 {
		t.Fatalf("expected 4 attributes on 1 span, got %+v", spans)
	}
	if len(spans[0].Events) != 1 {
		t.Errorf("expected recorded error event, got %d events", len(spans[0].Events))
	}
}

func TestSpanHelpersWithoutSpan(t *testing.T) {
	ctx := context.Background()
	SetSpanAttribute(ctx, "key", "value")
	SetSpanError(ctx, fmt.Errorf("no span error"))
	if SpanFromContext(ctx) == nil {
		t.Fatal("expected non-nil span (noop)")
	}
}

func TestSetupDisabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{}, "healthreg", "dev")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("noop shutdown failed: %v", err)
	}
}

func TestInitTracerSamplingRates(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
	}{
		{"always sample", 1.0},
		{"never sample", 0.0},
		{"ratio based", 0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prev := otel.GetTracerProvider()
			defer otel.SetTracerProvider(prev)

			cfg := &TracerConfig{
				ServiceName:    "test",
				ServiceVersion: "1.0.0",
				Environment:    "test",
				Endpoint:       "localhost:4318",
				Insecure:       true,
				SampleRate:     tc.sampleRate,
			}
			tp, err := InitTracer(context.Background(), cfg)
			if err != nil {
				t.Fatalf("InitTracer: %v", err)
			}
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()
			_ = tp.Shutdown(ctx)
		})
	}
}

func TestInitMeter(t *testing.T) {
	prev := otel.GetMeterProvider()
	defer otel.SetMeterProvider(prev)

	cfg := DefaultMeterConfig("test-service")
	mp, err := InitMeter(context.Background(), &cfg)
	if err != nil {
		t.Fatalf("InitMeter: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = mp.Shutdown(ctx)
}
