package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kbukum/healthreg/discovery"
	"github.com/kbukum/healthreg/healthcheck"
	"github.com/kbukum/healthreg/logger"
	"github.com/kbukum/healthreg/observability"
	"github.com/kbukum/healthreg/registrar"
	"github.com/kbukum/healthreg/release"
	"github.com/kbukum/healthreg/script"
	"github.com/kbukum/healthreg/sensu"
	"github.com/kbukum/healthreg/version"

	// check registry providers
	_ "github.com/kbukum/healthreg/discovery/consul"
	_ "github.com/kbukum/healthreg/discovery/static"
)

// app is everything one command invocation needs.
type app struct {
	cfg       *Config
	log       *logger.Logger
	fs        afero.Fs
	reader    *release.Reader
	registrar *registrar.Registrar
	registry  discovery.CheckRegistry
	sensuDir  *sensu.Directory
	shutdown  observability.ShutdownFunc
}

// newApp loads configuration and wires the registrar for backends. With
// dryRun, reads still hit the host filesystem but every write lands in
// memory and Consul is replaced by the in-memory registry.
func newApp(cmd *cobra.Command, backends []healthcheck.Backend, dryRun bool) (*app, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		return nil, exitError(ExitGeneric, "config: %v", err)
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Logging.Level = "debug"
	}

	log := logger.NewWithWriter(&cfg.Logging, cfg.Name, logWriter(cmd, cfg.Logging.Output))
	logger.SetGlobalLogger(log)

	a := &app{cfg: cfg, log: log, fs: afero.NewOsFs()}

	a.shutdown, err = observability.Setup(cmd.Context(), cfg.Observability, cfg.Name, version.GetShortVersion())
	if err != nil {
		return nil, exitError(ExitGeneric, "observability: %v", err)
	}
	metrics, err := observability.NewMetrics(observability.Meter(ServiceName))
	if err != nil {
		a.close(cmd.Context())
		return nil, exitError(ExitGeneric, "metrics: %v", err)
	}

	discoveryCfg := cfg.Discovery
	if dryRun {
		a.fs = afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(a.fs), afero.NewMemMapFs())
		discoveryCfg.Provider = discovery.ProviderStatic
		if ok, _ := afero.DirExists(a.fs, cfg.Sensu.CheckPath); !ok {
			_ = a.fs.MkdirAll(cfg.Sensu.CheckPath, 0o755)
		}
		log.Info("Dry run, no changes will be applied")
	}

	scripts := script.NewResolver(a.fs, cfg.Sensu.SearchPaths)
	targets := make([]registrar.Target, 0, len(backends))
	for _, b := range backends {
		switch b {
		case healthcheck.Consul:
			a.registry, err = discovery.New(discoveryCfg, &cfg.Consul, log)
			if err != nil {
				a.close(cmd.Context())
				return nil, exitError(ExitGeneric, "%v", err)
			}
			targets = append(targets, registrar.NewConsulTarget(a.registry, scripts, log))
		case healthcheck.Sensu:
			a.sensuDir = sensu.NewDirectory(a.fs, cfg.Sensu.CheckPath)
			targets = append(targets, registrar.NewSensuTarget(a.sensuDir, scripts, log))
		}
	}

	a.reader = release.NewReader(a.fs)
	a.registrar = registrar.New(a.reader, targets,
		registrar.WithLogger(log),
		registrar.WithMetrics(metrics),
	)
	return a, nil
}

// close releases the check registry and flushes telemetry.
func (a *app) close(ctx context.Context) {
	var errs []error
	if a.registry != nil {
		stats := a.registry.Stats()
		a.log.Debug("check registry closed", logger.Fields(
			"registered", stats.RegisteredChecks, "deregistered", stats.DeregisteredChecks,
		))
		errs = append(errs, a.registry.Close())
	}
	if a.shutdown != nil {
		errs = append(errs, a.shutdown(ctx))
	}
	if err := errors.Join(errs...); err != nil {
		a.log.WithError(err).Warn("shutdown failed")
	}
}

func logWriter(cmd *cobra.Command, output string) io.Writer {
	if strings.EqualFold(output, "stdout") {
		return cmd.OutOrStdout()
	}
	return cmd.ErrOrStderr()
}
