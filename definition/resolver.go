package definition

import (
	"github.com/kbukum/healthreg/healthcheck"
	"github.com/kbukum/healthreg/logger"
	"github.com/kbukum/healthreg/release"
)

// Resolver queries an ordered list of sources.
type Resolver struct {
	sources []Source
	log     *logger.Logger
}

// NewResolver creates a Resolver over the bundled file and the appspec, in
// that order.
func NewResolver(archive Archive, log *logger.Logger) *Resolver {
	return NewResolverWithSources(log, FileSource(archive), AppSpecSource())
}

// NewResolverWithSources creates a Resolver over custom sources.
func NewResolverWithSources(log *logger.Logger, sources ...Source) *Resolver {
	if log == nil {
		log = logger.NewNop()
	}
	return &Resolver{sources: sources, log: log.WithComponent("definition")}
}

// Resolve finds the check definitions of backend in the release at
// archiveDir. When no source holds definitions the result has Found=false
// and no error.
func (r *Resolver) Resolve(backend healthcheck.Backend, archiveDir string, spec *release.AppSpec) (Result, error) {
	for _, src := range r.sources {
		res, present, err := src.Lookup(backend, archiveDir, spec)
		if !present {
			r.log.Debug("definition source absent", logger.Fields(
				logger.FieldBackend, string(backend), logger.FieldSource, src.Name(),
			))
			continue
		}
		if err != nil {
			r.log.Error("invalid definition source", logger.Fields(
				logger.FieldBackend, string(backend), logger.FieldSource, src.Name(), logger.FieldError, err.Error(),
			))
			return res, err
		}
		if !res.Found {
			r.log.Info("No health checks found.", logger.Fields(
				logger.FieldBackend, string(backend), logger.FieldSource, src.Name(),
			))
		} else {
			r.log.Debug("found health checks", logger.Fields(
				logger.FieldBackend, string(backend), logger.FieldSource, src.Name(), "count", len(res.Set),
			))
		}
		return res, nil
	}
	r.log.Info("No health checks found.", logger.Fields(logger.FieldBackend, string(backend)))
	return Result{}, nil
}
