package registrar

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kbukum/healthreg/definition"
	apperrors "github.com/kbukum/healthreg/errors"
	"github.com/kbukum/healthreg/healthcheck"
	"github.com/kbukum/healthreg/logger"
	"github.com/kbukum/healthreg/observability"
	"github.com/kbukum/healthreg/release"
)

// Run operations.
const (
	OperationRegister   = "register"
	OperationDeregister = "deregister"
	OperationValidate   = "validate"
)

// ErrNoTarget is returned for a backend without a configured target.
var ErrNoTarget = errors.New("no target configured for backend")

// Registrar registers and deregisters a release's checks.
type Registrar struct {
	reader   *release.Reader
	resolver *definition.Resolver
	targets  map[healthcheck.Backend]Target
	metrics  *observability.Metrics
	log      *logger.Logger
	newID    func() string
}

// Option configures a Registrar.
type Option func(*Registrar)

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(r *Registrar) { r.log = log }
}

// WithMetrics records run and check metrics on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Registrar) { r.metrics = m }
}

// WithResolver replaces the default definition resolver.
func WithResolver(res *definition.Resolver) Option {
	return func(r *Registrar) { r.resolver = res }
}

// WithCorrelationIDs replaces the correlation id generator.
func WithCorrelationIDs(f func() string) Option {
	return func(r *Registrar) { r.newID = f }
}

// New creates a Registrar reading releases through reader and submitting to
// targets.
func New(reader *release.Reader, targets []Target, opts ...Option) *Registrar {
	r := &Registrar{
		reader:  reader,
		targets: make(map[healthcheck.Backend]Target, len(targets)),
		log:     logger.NewNop(),
		newID:   uuid.NewString,
	}
	for _, t := range targets {
		r.targets[t.Backend()] = t
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.WithComponent("registrar")
	if r.resolver == nil {
		r.resolver = definition.NewResolver(reader, r.log)
	}
	return r
}

// Backends returns the backends with a configured target, in registration
// order.
func (r *Registrar) Backends() []healthcheck.Backend {
	var out []healthcheck.Backend
	for _, b := range healthcheck.Backends {
		if _, ok := r.targets[b]; ok {
			out = append(out, b)
		}
	}
	return out
}

// Register registers the checks declared by the release in d with backend.
// Validation failures abort before any backend call. The first failed
// submission aborts the batch; nothing already submitted is rolled back.
func (r *Registrar) Register(ctx context.Context, backend healthcheck.Backend, d *healthcheck.Deployment) (Result, error) {
	res := Result{Backend: backend}
	target, err := r.target(backend)
	if err != nil {
		return res, err
	}

	rc, log := r.newRun(backend, OperationRegister, d)
	ctx, span := rc.StartRun(ctx, observability.SpanRegister)

	steps, err := r.plan(target, d, &res, log)
	if err == nil && steps != nil {
		observability.SetSpanAttribute(ctx, observability.AttrCheckCount, len(steps))
		err = reduce(ctx, rc, steps, FailFast, apperrors.Registration, &res, log)
	}

	rc.EndRun(ctx, span, runStatus(res, err), err)
	if err == nil && res.Source != "" {
		log.Info("Health checks registered", logger.Fields("count", len(res.Succeeded), logger.FieldSource, res.Source))
	}
	return res, err
}

// Validate resolves and validates the checks declared by the release in d
// without touching the backend. It returns the ids of the checks that would
// be registered.
func (r *Registrar) Validate(ctx context.Context, backend healthcheck.Backend, d *healthcheck.Deployment) ([]string, error) {
	res := Result{Backend: backend}
	target, err := r.target(backend)
	if err != nil {
		return nil, err
	}

	rc, log := r.newRun(backend, OperationValidate, d)
	_, span := rc.StartRun(ctx, observability.SpanValidate)
	steps, err := r.plan(target, d, &res, log)

	ids := make([]string, 0, len(steps))
	for _, s := range steps {
		ids = append(ids, s.CheckID)
	}
	status := observability.StatusOK
	if err != nil {
		status = observability.StatusError
	}
	rc.EndRun(ctx, span, status, err)
	return ids, err
}

// Deregister removes the checks declared by the previous release of d from
// backend. It never fails because of a single check: every check is
// attempted and failures are logged. A missing previous release is a no-op.
func (r *Registrar) Deregister(ctx context.Context, backend healthcheck.Backend, d *healthcheck.Deployment) (Result, error) {
	res := Result{Backend: backend}
	target, err := r.target(backend)
	if err != nil {
		return res, err
	}

	rc, log := r.newRun(backend, OperationDeregister, d)
	if !d.HasPrevious() {
		log.Info("No previous deployment, skipping deregistration")
		return res, nil
	}
	log = log.WithFields(logger.Fields(logger.FieldDeploymentID, d.Previous.ID))

	ctx, span := rc.StartRun(ctx, observability.SpanDeregister)
	steps := r.removals(ctx, target, d, &res, log)
	if steps != nil {
		observability.SetSpanAttribute(ctx, observability.AttrCheckCount, len(steps))
		_ = reduce(ctx, rc, steps, BestEffort, apperrors.Deregistration, &res, log)
	}

	status := runStatus(res, nil)
	if len(res.Failed) > 0 {
		status = observability.StatusError
	}
	rc.EndRun(ctx, span, status, nil)
	if res.Source != "" {
		log.Info("Health checks deregistered", logger.Fields(
			"count", len(res.Succeeded), "failed", len(res.Failed), logger.FieldSource, res.Source,
		))
	}
	return res, nil
}

func (r *Registrar) target(backend healthcheck.Backend) (Target, error) {
	t, ok := r.targets[backend]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoTarget, backend)
	}
	return t, nil
}

func (r *Registrar) newRun(backend healthcheck.Backend, operation string, d *healthcheck.Deployment) (*observability.RunContext, *logger.Logger) {
	id := r.newID()
	rc := observability.NewRunContext(string(backend), operation, id, d.ServiceID, r.metrics)
	log := r.log.WithFields(logger.Fields(
		logger.FieldBackend, string(backend),
		logger.FieldServiceID, d.ServiceID,
		logger.FieldCorrelationID, id,
	))
	if slice := d.EffectiveSlice(); slice != "" {
		log = log.WithFields(logger.Fields(logger.FieldSlice, slice))
	}
	return rc, log
}

// plan resolves and validates the current release's definitions. It returns
// nil steps and no error when the release declares no checks.
func (r *Registrar) plan(target Target, d *healthcheck.Deployment, res *Result, log *logger.Logger) ([]Step, error) {
	found, err := r.resolver.Resolve(target.Backend(), d.ArchiveDir, d.AppSpec)
	if err != nil {
		return nil, err
	}
	if !found.Found {
		return nil, nil
	}
	res.Source = found.Source

	steps, err := target.Plan(found.Set, found.BaseDir, d)
	if err != nil {
		log.WithError(err).Error("Health check validation failed")
		return nil, err
	}
	return steps, nil
}

// removals resolves the previous release's definitions into removal steps.
// Every problem is logged, recorded on the run span and yields nil steps.
func (r *Registrar) removals(ctx context.Context, target Target, d *healthcheck.Deployment, res *Result, log *logger.Logger) []Step {
	spec, err := r.reader.LoadAppSpec(d.Previous.ArchiveDir)
	if err != nil {
		fields := logger.Fields(logger.FieldPath, d.Previous.ArchiveDir)
		if errors.Is(err, release.ErrAppSpecNotFound) {
			log.Warn("Previous deployment appspec not found, skipping deregistration", fields)
			return nil
		}
		observability.SetSpanError(ctx, err)
		log.Warn("Previous deployment appspec unreadable, skipping deregistration", logger.MergeWithError(fields, err))
		return nil
	}

	found, err := r.resolver.Resolve(target.Backend(), d.Previous.ArchiveDir, spec)
	if err != nil {
		observability.SetSpanError(ctx, err)
		log.WithError(err).Warn("Previous deployment health checks unreadable, skipping deregistration")
		return nil
	}
	if !found.Found {
		return nil
	}
	res.Source = found.Source

	steps := make([]Step, 0, len(found.Set))
	for _, id := range found.Set.IDs() {
		steps = append(steps, target.Removal(d, id))
	}
	return steps
}

func runStatus(res Result, err error) string {
	switch {
	case err != nil:
		return observability.StatusError
	case res.Source == "":
		return observability.StatusSkipped
	default:
		return observability.StatusOK
	}
}
