package observability

import (
	"context"
	"errors"

	"github.com/kbukum/healthreg/logger"
)

// ShutdownFunc flushes and stops telemetry providers.
type ShutdownFunc func(ctx context.Context) error

// Setup initializes tracing and metrics from cfg. When export is disabled the
// global no-op providers stay in place and the returned ShutdownFunc does
// nothing.
func Setup(ctx context.Context, cfg Config, serviceName, version string) (ShutdownFunc, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	tp, err := InitTracer(ctx, &TracerConfig{
		ServiceName:    serviceName,
		ServiceVersion: version,
		Environment:    cfg.Environment,
		Endpoint:       cfg.Endpoint,
		Insecure:       cfg.Insecure,
		SampleRate:     cfg.SampleRate,
	})
	if err != nil {
		return nil, err
	}

	mp, err := InitMeter(ctx, &MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: version,
		Environment:    cfg.Environment,
		Endpoint:       cfg.Endpoint,
		Insecure:       cfg.Insecure,
		Interval:       cfg.MetricInterval,
	})
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	logger.Info("telemetry export enabled", logger.Fields("endpoint", cfg.Endpoint))
	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}
