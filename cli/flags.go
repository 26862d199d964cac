package cli

import (
	"errors"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/kbukum/healthreg/healthcheck"
	"github.com/kbukum/healthreg/release"
)

// BackendAll selects every backend.
const BackendAll = "all"

// deploymentFlags holds the flags describing the deployment being processed.
type deploymentFlags struct {
	backend        string
	archiveDir     string
	serviceID      string
	slice          string
	port           int
	platform       string
	instanceTags   map[string]string
	lastID         string
	lastArchiveDir string
	dryRun         bool
	withPrevious   bool
}

func (f *deploymentFlags) bind(cmd *cobra.Command, withPrevious bool) {
	f.withPrevious = withPrevious
	flags := cmd.Flags()
	flags.StringVar(&f.backend, "backend", BackendAll, "Backend to process: consul | sensu | all")
	flags.StringVar(&f.archiveDir, "archive-dir", "", "Directory of the extracted release archive")
	flags.StringVar(&f.serviceID, "service-id", "", "Service instance id the checks belong to")
	flags.StringVar(&f.slice, "slice", "", "Blue/green slice label (\"none\" for no slice)")
	flags.IntVar(&f.port, "port", 0, "Service port substituted for ${PORT}")
	flags.StringVar(&f.platform, "platform", runtime.GOOS, "Target platform: linux | windows")
	flags.StringToStringVar(&f.instanceTags, "instance-tag", nil, "Instance tag key=value, repeatable")
	flags.BoolVar(&f.dryRun, "dry-run", false, "Record changes in memory instead of applying them")

	_ = cmd.MarkFlagRequired("archive-dir")
	_ = cmd.MarkFlagRequired("service-id")

	if withPrevious {
		flags.StringVar(&f.lastID, "last-id", "", "Id of the previous deployment; empty means none")
		flags.StringVar(&f.lastArchiveDir, "last-archive-dir", "", "Directory of the previous release archive")
	}
}

// backends expands the --backend flag.
func (f *deploymentFlags) backends() ([]healthcheck.Backend, error) {
	if f.backend == BackendAll {
		return healthcheck.Backends, nil
	}
	b, err := healthcheck.ParseBackend(f.backend)
	if err != nil {
		return nil, exitError(ExitGeneric, "invalid --backend: %v", err)
	}
	return []healthcheck.Backend{b}, nil
}

// deployment builds the deployment context, loading the current appspec
// through reader. Deregistration only needs the previous release, so there a
// missing current appspec is tolerated.
func (f *deploymentFlags) deployment(reader *release.Reader) (*healthcheck.Deployment, error) {
	spec, err := reader.LoadAppSpec(f.archiveDir)
	if err != nil && !(f.withPrevious && errors.Is(err, release.ErrAppSpecNotFound)) {
		return nil, exitError(ExitGeneric, "load release: %v", err)
	}

	d := &healthcheck.Deployment{
		ArchiveDir:   f.archiveDir,
		AppSpec:      spec,
		ServiceID:    f.serviceID,
		Slice:        f.slice,
		Port:         f.port,
		Platform:     f.platform,
		InstanceTags: f.instanceTags,
	}
	if f.lastID != "" {
		if f.lastArchiveDir == "" {
			return nil, exitError(ExitGeneric, "--last-archive-dir is required with --last-id")
		}
		d.Previous = &healthcheck.PreviousDeployment{ID: f.lastID, ArchiveDir: f.lastArchiveDir}
	}
	return d, nil
}

