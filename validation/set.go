package validation

import (
	"fmt"
	"regexp"

	"github.com/kbukum/healthreg/errors"
	"github.com/kbukum/healthreg/healthcheck"
	"github.com/kbukum/healthreg/script"
)

// Check types.
const (
	TypeScript = "script"
	TypeHTTP   = "http"
)

// Sensu properties checked per type.
const (
	FieldLocalScript  = "local_script"
	FieldServerScript = "server_script"
	FieldStandalone   = "standalone"
)

// sensuNamePattern is the check name format Sensu accepts.
var sensuNamePattern = regexp.MustCompile(`^[\w.-]+$`)

// ScriptResolver locates scripts referenced by declarations.
type ScriptResolver interface {
	ResolveBundled(archiveDir, baseDir, declared string) (string, error)
	ResolveAgent(name string) (string, error)
}

// SetValidator validates whole definition sets and produces typed checks.
// It never touches the declarations it is given.
type SetValidator struct {
	scripts ScriptResolver
}

// NewSetValidator creates a SetValidator resolving scripts through scripts.
func NewSetValidator(scripts ScriptResolver) *SetValidator {
	return &SetValidator{scripts: scripts}
}

// ValidateConsul validates a Consul definition set found under baseDir of
// the archive at archiveDir.
func (sv *SetValidator) ValidateConsul(set healthcheck.Set, archiveDir, baseDir string) ([]healthcheck.ConsulCheck, error) {
	if err := checkUnique(healthcheck.Consul, set); err != nil {
		return nil, err
	}

	checks := make([]healthcheck.ConsulCheck, 0, len(set))
	for _, decl := range set {
		check, err := sv.consulCheck(decl, archiveDir, baseDir)
		if err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}
	return checks, nil
}

func (sv *SetValidator) consulCheck(decl healthcheck.Declaration, archiveDir, baseDir string) (healthcheck.ConsulCheck, error) {
	checkType, _ := decl.String(healthcheck.FieldType)
	if err := New(decl.ID).OneOf(healthcheck.FieldType, checkType, []string{TypeScript, TypeHTTP}).Validate(); err != nil {
		return nil, err
	}

	v := New(decl.ID)
	switch checkType {
	case TypeScript:
		v.Required(decl, healthcheck.FieldName, healthcheck.FieldScript, healthcheck.FieldInterval)
	case TypeHTTP:
		v.Required(decl, healthcheck.FieldName, healthcheck.FieldHTTP, healthcheck.FieldInterval)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}

	name, _ := decl.String(healthcheck.FieldName)
	interval, _ := decl.String(healthcheck.FieldInterval)

	if checkType == TypeHTTP {
		url, _ := decl.String(healthcheck.FieldHTTP)
		return &healthcheck.HTTPCheck{ID: decl.ID, Name: name, Interval: interval, HTTP: url}, nil
	}

	declared, _ := decl.String(healthcheck.FieldScript)
	rel := script.Normalize(declared)
	path, err := sv.scripts.ResolveBundled(archiveDir, baseDir, rel)
	if err != nil {
		return nil, err
	}
	return &healthcheck.ScriptCheck{ID: decl.ID, Name: name, Interval: interval, Script: rel, Path: path}, nil
}

// ValidateSensu validates a Sensu definition set found under baseDir of the
// archive at archiveDir.
func (sv *SetValidator) ValidateSensu(set healthcheck.Set, archiveDir, baseDir string) ([]healthcheck.SensuCheck, error) {
	if err := checkUnique(healthcheck.Sensu, set); err != nil {
		return nil, err
	}

	checks := make([]healthcheck.SensuCheck, 0, len(set))
	for _, decl := range set {
		check, err := sv.sensuCheck(decl, archiveDir, baseDir)
		if err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}
	return checks, nil
}

func (sv *SetValidator) sensuCheck(decl healthcheck.Declaration, archiveDir, baseDir string) (healthcheck.SensuCheck, error) {
	var check healthcheck.SensuCheck

	// schema layer
	if err := checkSchema(decl); err != nil {
		return check, err
	}
	opts, err := decodeOptions(decl)
	if err != nil {
		return check, err
	}
	if err := ValidateStruct(decl.ID, &opts); err != nil {
		return check, err
	}

	// per-type layer
	name, _ := decl.String(healthcheck.FieldName)
	v := New(decl.ID)
	if checkType, ok := decl.String(healthcheck.FieldType); ok {
		v.OneOf(healthcheck.FieldType, checkType, []string{TypeScript})
	}
	v.Pattern(healthcheck.FieldName, name, sensuNamePattern)
	if err := v.Validate(); err != nil {
		return check, err
	}

	local, hasLocal := decl.String(FieldLocalScript)
	server, hasServer := decl.String(FieldServerScript)
	v = New(decl.ID).
		Custom(!(hasLocal && hasServer), FieldLocalScript, fmt.Sprintf(
			"Failed to register health check '%s', you can use either 'local_script' or 'server_script', but not both.", decl.ID)).
		Custom(hasLocal || hasServer, FieldLocalScript, fmt.Sprintf(
			"Failed to register health check '%s', you need at least one of: 'local_script' or 'server_script'", decl.ID))
	if opts.Standalone != nil && opts.Aggregate != nil {
		v.Custom(*opts.Standalone != *opts.Aggregate, FieldStandalone, fmt.Sprintf(
			"Health check '%s' cannot set standalone and aggregate both to %t", decl.ID, *opts.Standalone))
	}
	if err := v.Validate(); err != nil {
		return check, err
	}

	// scripts
	var resolved healthcheck.SensuScript
	if hasLocal {
		rel := script.Normalize(local)
		path, err := sv.scripts.ResolveBundled(archiveDir, baseDir, rel)
		if err != nil {
			return check, err
		}
		resolved = healthcheck.LocalScript{Declared: rel, Path: path}
	} else {
		path, err := sv.scripts.ResolveAgent(server)
		if err != nil {
			return check, err
		}
		resolved = healthcheck.ServerScript{Declared: server, Path: path}
	}

	return healthcheck.SensuCheck{
		ID:       decl.ID,
		Name:     name,
		Interval: toFloat(decl.Fields[healthcheck.FieldInterval]),
		Script:   resolved,
		Options:  opts,
	}, nil
}

// checkUnique enforces case-insensitive uniqueness of ids and names.
func checkUnique(backend healthcheck.Backend, set healthcheck.Set) error {
	if dups := set.DuplicateIDs(); len(dups) > 0 {
		return errors.Validation("", fmt.Sprintf("%s health checks require unique ids (case insensitive)", backend.DisplayName())).
			WithDetail("duplicates", dups)
	}
	if dups := set.DuplicateNames(); len(dups) > 0 {
		return errors.Validation("", fmt.Sprintf("%s health checks require unique names (case insensitive)", backend.DisplayName())).
			WithDetail("duplicates", dups)
	}
	return nil
}
