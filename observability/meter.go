package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/healthreg/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(ctx, config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Debug("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded by registration runs.
type Metrics struct {
	runTotal      metric.Int64Counter
	runDuration   metric.Float64Histogram
	checkTotal    metric.Int64Counter
	checkDuration metric.Float64Histogram
	errorTotal    metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	runTotal, err := meter.Int64Counter("healthreg.run.total",
		metric.WithDescription("Total number of register and deregister runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating healthreg.run.total counter: %w", err)
	}

	runDuration, err := meter.Float64Histogram("healthreg.run.duration",
		metric.WithDescription("Duration of register and deregister runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating healthreg.run.duration histogram: %w", err)
	}

	checkTotal, err := meter.Int64Counter("healthreg.check.total",
		metric.WithDescription("Total number of checks submitted to a backend"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating healthreg.check.total counter: %w", err)
	}

	checkDuration, err := meter.Float64Histogram("healthreg.check.duration",
		metric.WithDescription("Duration of a single check submission in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating healthreg.check.duration histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("healthreg.error.total",
		metric.WithDescription("Total errors by kind and backend"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating healthreg.error.total counter: %w", err)
	}

	return &Metrics{
		runTotal:      runTotal,
		runDuration:   runDuration,
		checkTotal:    checkTotal,
		checkDuration: checkDuration,
		errorTotal:    errorTotal,
	}, nil
}

// RecordRun records a completed register or deregister run.
func (m *Metrics) RecordRun(ctx context.Context, backend, operation, status string, duration time.Duration) {
	m.runTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("backend", backend),
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
	m.runDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("backend", backend),
		attribute.String("operation", operation),
	))
}

// RecordCheck records one check submission.
func (m *Metrics) RecordCheck(ctx context.Context, backend, operation, status string, duration time.Duration) {
	m.checkTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("backend", backend),
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
	m.checkDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("backend", backend),
		attribute.String("operation", operation),
	))
}

// RecordError records an error by kind and backend.
func (m *Metrics) RecordError(ctx context.Context, kind, backend string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("backend", backend),
	))
}
