package definition

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	apperrors "github.com/kbukum/healthreg/errors"
	"github.com/kbukum/healthreg/healthcheck"
	"github.com/kbukum/healthreg/release"
)

// Source names.
const (
	SourceFile    = "file"
	SourceAppSpec = "appspec"
)

// DefinitionFileName is the bundled definition file of each backend.
const DefinitionFileName = "healthchecks.yml"

// Archive gives read access to the files of an unpacked release.
type Archive interface {
	Exists(archiveDir, rel string) bool
	ReadFile(archiveDir, rel string) ([]byte, error)
}

// Result is the outcome of a lookup.
type Result struct {
	Set healthcheck.Set
	// BaseDir is the directory, relative to the archive root, that bundled
	// script paths are resolved against.
	BaseDir string
	// Source names the source that answered.
	Source string
	// Found is false when no definitions exist for the backend.
	Found bool
}

// Source is one place check definitions may be declared.
type Source interface {
	Name() string
	// Lookup reports whether the source is present for the release and, if
	// so, what it holds. A present source ends the search.
	Lookup(backend healthcheck.Backend, archiveDir string, spec *release.AppSpec) (Result, bool, error)
}

// DefinitionPath returns the bundled definition file path relative to the archive root.
func DefinitionPath(backend healthcheck.Backend) string {
	return filepath.Join(ScriptsBaseDir(backend), DefinitionFileName)
}

// ScriptsBaseDir returns the directory bundled scripts are resolved against
// when definitions come from the bundled file.
func ScriptsBaseDir(backend healthcheck.Backend) string {
	return filepath.Join("healthchecks", string(backend))
}

type fileSource struct {
	archive Archive
}

// FileSource reads healthchecks/<backend>/healthchecks.yml from the archive.
func FileSource(archive Archive) Source {
	return &fileSource{archive: archive}
}

func (s *fileSource) Name() string { return SourceFile }

func (s *fileSource) Lookup(backend healthcheck.Backend, archiveDir string, _ *release.AppSpec) (Result, bool, error) {
	rel := DefinitionPath(backend)
	if !s.archive.Exists(archiveDir, rel) {
		return Result{}, false, nil
	}

	res := Result{BaseDir: ScriptsBaseDir(backend), Source: SourceFile}

	data, err := s.archive.ReadFile(archiveDir, rel)
	if err != nil {
		return res, true, apperrors.DefinitionSource(rel, "unreadable").WithCause(err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return res, true, apperrors.DefinitionSource(rel, "invalid YAML").WithCause(err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return res, true, apperrors.DefinitionSource(rel, "top level is not a mapping")
	}

	node, ok := release.MappingValue(doc.Content[0], backend.DefinitionKey())
	if !ok {
		return res, true, nil
	}
	set, err := decodeSet(node)
	if err != nil {
		return res, true, apperrors.DefinitionSource(rel, err.Error())
	}
	res.Set = set
	res.Found = true
	return res, true, nil
}

type appSpecSource struct{}

// AppSpecSource reads the <backend>_healthchecks key of the appspec.
func AppSpecSource() Source {
	return appSpecSource{}
}

func (appSpecSource) Name() string { return SourceAppSpec }

func (appSpecSource) Lookup(backend healthcheck.Backend, _ string, spec *release.AppSpec) (Result, bool, error) {
	res := Result{BaseDir: "", Source: SourceAppSpec}

	node, ok := spec.Lookup(backend.DefinitionKey())
	if !ok {
		return res, true, nil
	}
	set, err := decodeSet(node)
	if err != nil {
		return res, true, apperrors.DefinitionSource(release.AppSpecFile+" "+backend.DefinitionKey(), err.Error())
	}
	res.Set = set
	res.Found = true
	return res, true, nil
}

// decodeSet turns a mapping of check-id to mapping into a Set, keeping
// document order.
func decodeSet(node *yaml.Node) (healthcheck.Set, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping of check ids, found %s", kindName(node))
	}
	set := make(healthcheck.Set, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("check id at line %d is not a scalar", key.Line)
		}
		if value.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("check '%s' is not a mapping", key.Value)
		}
		fields := make(map[string]any)
		if err := value.Decode(&fields); err != nil {
			return nil, fmt.Errorf("check '%s': %v", key.Value, err)
		}
		set = append(set, healthcheck.Declaration{ID: key.Value, Fields: fields})
	}
	return set, nil
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.ScalarNode:
		return fmt.Sprintf("scalar %q", n.Value)
	case yaml.AliasNode:
		return "an alias"
	}
	return "an unsupported node"
}
