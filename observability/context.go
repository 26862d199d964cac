package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/kbukum/healthreg/errors"
)

// RunContext holds observability context for one register or deregister run.
type RunContext struct {
	Backend       string
	Operation     string
	CorrelationID string
	ServiceID     string
	StartTime     time.Time
	Metrics       *Metrics
}

// NewRunContext creates a new run context.
// If metrics is nil, metric recording is silently skipped.
func NewRunContext(backend, operation, correlationID, serviceID string, metrics *Metrics) *RunContext {
	return &RunContext{
		Backend:       backend,
		Operation:     operation,
		CorrelationID: correlationID,
		ServiceID:     serviceID,
		StartTime:     time.Now(),
		Metrics:       metrics,
	}
}

// runContextKey is the context key for RunContext.
type runContextKey struct{}

// WithRunContext stores a RunContext in the context.
func WithRunContext(ctx context.Context, rc *RunContext) context.Context {
	return context.WithValue(ctx, runContextKey{}, rc)
}

// RunContextFromContext retrieves the RunContext from context, or nil.
func RunContextFromContext(ctx context.Context) *RunContext {
	if rc, ok := ctx.Value(runContextKey{}).(*RunContext); ok {
		return rc
	}
	return nil
}

// StartRun starts the run span and stores rc in the returned context.
func (rc *RunContext) StartRun(ctx context.Context, spanName string) (context.Context, trace.Span) {
	ctx, span := StartSpan(WithRunContext(ctx, rc), spanName)
	span.SetAttributes(
		attribute.String(AttrBackend, rc.Backend),
		attribute.String(AttrOperationName, rc.Operation),
		attribute.String(AttrCorrelationID, rc.CorrelationID),
		attribute.String(AttrServiceID, rc.ServiceID),
	)
	return ctx, span
}

// EndRun ends the run span and records run metrics.
func (rc *RunContext) EndRun(ctx context.Context, span trace.Span, status string, err error) {
	duration := time.Since(rc.StartTime)

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if rc.Metrics != nil {
		rc.Metrics.RecordRun(ctx, rc.Backend, rc.Operation, status, duration)
		if err != nil {
			rc.Metrics.RecordError(ctx, errorKind(err), rc.Backend)
		}
	}
}

// TrackCheck runs fn inside a check span and records its outcome.
func (rc *RunContext) TrackCheck(ctx context.Context, checkID string, fn func(ctx context.Context) error) error {
	start := time.Now()
	ctx, span := StartSpan(ctx, SpanCheck, trace.WithAttributes(
		attribute.String(AttrBackend, rc.Backend),
		attribute.String(AttrCheckID, checkID),
	))
	defer span.End()

	err := fn(ctx)
	status := StatusOK
	if err != nil {
		status = StatusError
		span.RecordError(err)
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	}
	span.SetAttributes(attribute.String(AttrStatus, status))

	if rc.Metrics != nil {
		rc.Metrics.RecordCheck(ctx, rc.Backend, rc.Operation, status, time.Since(start))
	}
	return err
}

// Duration returns the elapsed time since run start.
func (rc *RunContext) Duration() time.Duration {
	return time.Since(rc.StartTime)
}

func errorKind(err error) string {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return string(appErr.Code)
	}
	return "unknown"
}
