// Package observability provides OpenTelemetry tracing and metrics for
// registration runs.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, &observability.TracerConfig{...})
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanCheck)
//	defer span.End()
//
// Metrics:
//
//	metrics, err := observability.NewMetrics(observability.Meter("healthreg"))
//	metrics.RecordCheck(ctx, "consul", "register", observability.StatusOK, duration)
//
// Setup wires both providers from Config and returns one shutdown function.
package observability
