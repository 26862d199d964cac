package registrar

import (
	"context"

	"github.com/kbukum/healthreg/discovery"
	"github.com/kbukum/healthreg/generator"
	"github.com/kbukum/healthreg/healthcheck"
	"github.com/kbukum/healthreg/logger"
	"github.com/kbukum/healthreg/sensu"
	"github.com/kbukum/healthreg/validation"
)

// Target is one backend checks are registered with.
type Target interface {
	Backend() healthcheck.Backend
	// Plan validates set and returns one registration step per check. It has
	// no side effects, so a failed plan leaves the backend untouched.
	Plan(set healthcheck.Set, baseDir string, d *healthcheck.Deployment) ([]Step, error)
	// Removal returns the step removing checkID of d's service.
	Removal(d *healthcheck.Deployment, checkID string) Step
}

// Authorizer makes bundled scripts executable.
type Authorizer interface {
	Authorize(path string) error
}

// Scripts resolves and authorizes check scripts.
type Scripts interface {
	validation.ScriptResolver
	Authorizer
}

// ConsulTarget registers checks with a discovery registry.
type ConsulTarget struct {
	validator *validation.SetValidator
	scripts   Authorizer
	registry  discovery.CheckRegistry
	log       *logger.Logger
}

// NewConsulTarget creates a ConsulTarget.
func NewConsulTarget(registry discovery.CheckRegistry, scripts Scripts, log *logger.Logger) *ConsulTarget {
	if log == nil {
		log = logger.NewNop()
	}
	return &ConsulTarget{
		validator: validation.NewSetValidator(scripts),
		scripts:   scripts,
		registry:  registry,
		log:       log.WithComponent("consul"),
	}
}

func (t *ConsulTarget) Backend() healthcheck.Backend { return healthcheck.Consul }

func (t *ConsulTarget) Plan(set healthcheck.Set, baseDir string, d *healthcheck.Deployment) ([]Step, error) {
	checks, err := t.validator.ValidateConsul(set, d.ArchiveDir, baseDir)
	if err != nil {
		return nil, err
	}
	steps := make([]Step, 0, len(checks))
	for _, check := range checks {
		steps = append(steps, Step{
			CheckID: check.CheckID(),
			Run: func(ctx context.Context) error {
				return t.register(ctx, check, d)
			},
		})
	}
	return steps, nil
}

func (t *ConsulTarget) register(ctx context.Context, check healthcheck.ConsulCheck, d *healthcheck.Deployment) error {
	if sc, ok := check.(*healthcheck.ScriptCheck); ok {
		if err := t.scripts.Authorize(sc.Path); err != nil {
			return err
		}
	}

	p, err := generator.ForConsul(check, d)
	if err != nil {
		return err
	}
	info := &discovery.CheckInfo{
		ServiceID: p.ServiceID,
		ID:        p.ServiceCheckID,
		Name:      p.Name,
		Interval:  p.Interval,
		Args:      p.Args,
		HTTP:      p.HTTP,
	}

	if p.IsScript() {
		err = t.registry.RegisterScriptCheck(ctx, info)
	} else {
		err = t.registry.RegisterHTTPCheck(ctx, info)
	}
	if err != nil {
		return err
	}
	t.log.Info("Registered Consul health check", logger.Fields(
		logger.FieldCheckID, check.CheckID(), logger.FieldServiceCheckID, p.ServiceCheckID,
	))
	return nil
}

func (t *ConsulTarget) Removal(d *healthcheck.Deployment, checkID string) Step {
	serviceCheckID := healthcheck.ServiceCheckID(d.ServiceID, checkID)
	return Step{
		CheckID: checkID,
		Run: func(ctx context.Context) error {
			if err := t.registry.DeregisterCheck(ctx, serviceCheckID); err != nil {
				return err
			}
			t.log.Info("Deregistered Consul health check", logger.Fields(
				logger.FieldCheckID, checkID, logger.FieldServiceCheckID, serviceCheckID,
			))
			return nil
		},
	}
}

// SensuTarget writes check definitions into a Sensu check directory.
type SensuTarget struct {
	validator *validation.SetValidator
	scripts   Authorizer
	dir       *sensu.Directory
	log       *logger.Logger
}

// NewSensuTarget creates a SensuTarget.
func NewSensuTarget(dir *sensu.Directory, scripts Scripts, log *logger.Logger) *SensuTarget {
	if log == nil {
		log = logger.NewNop()
	}
	return &SensuTarget{
		validator: validation.NewSetValidator(scripts),
		scripts:   scripts,
		dir:       dir,
		log:       log.WithComponent("sensu"),
	}
}

func (t *SensuTarget) Backend() healthcheck.Backend { return healthcheck.Sensu }

func (t *SensuTarget) Plan(set healthcheck.Set, baseDir string, d *healthcheck.Deployment) ([]Step, error) {
	checks, err := t.validator.ValidateSensu(set, d.ArchiveDir, baseDir)
	if err != nil {
		return nil, err
	}
	steps := make([]Step, 0, len(checks))
	for _, check := range checks {
		steps = append(steps, Step{
			CheckID: check.ID,
			Run: func(context.Context) error {
				return t.register(check, d)
			},
		})
	}
	return steps, nil
}

func (t *SensuTarget) register(check healthcheck.SensuCheck, d *healthcheck.Deployment) error {
	if local, ok := check.Script.(healthcheck.LocalScript); ok {
		if err := t.scripts.Authorize(local.Path); err != nil {
			return err
		}
	}

	p := generator.ForSensu(check, d)
	for _, w := range p.Warnings {
		t.log.Warn(w, logger.Fields(logger.FieldCheckID, check.ID))
	}
	data, err := p.Render()
	if err != nil {
		return err
	}
	path, err := t.dir.Write(d.ServiceID, check.ID, data)
	if err != nil {
		return err
	}
	t.log.Info("Registered Sensu health check", logger.Fields(
		logger.FieldCheckID, check.ID, logger.FieldPath, path,
	))
	return nil
}

func (t *SensuTarget) Removal(d *healthcheck.Deployment, checkID string) Step {
	return Step{
		CheckID: checkID,
		Run: func(context.Context) error {
			removed, err := t.dir.Remove(d.ServiceID, checkID)
			if err != nil {
				return err
			}
			fields := logger.Fields(logger.FieldCheckID, checkID, logger.FieldPath, t.dir.Path(d.ServiceID, checkID))
			if !removed {
				t.log.Debug("Sensu check definition already absent", fields)
				return nil
			}
			t.log.Info("Deregistered Sensu health check", fields)
			return nil
		},
	}
}

var (
	_ Target = (*ConsulTarget)(nil)
	_ Target = (*SensuTarget)(nil)
)
