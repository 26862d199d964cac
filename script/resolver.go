package script

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	apperrors "github.com/kbukum/healthreg/errors"
)

// ExecBits are the owner, group and other execute bits.
const ExecBits os.FileMode = 0o111

// Resolver finds and authorizes scripts on a filesystem.
type Resolver struct {
	fs          afero.Fs
	searchPaths []string
}

// NewResolver creates a Resolver. A nil fs uses the host filesystem.
func NewResolver(fs afero.Fs, searchPaths []string) *Resolver {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Resolver{fs: fs, searchPaths: append([]string(nil), searchPaths...)}
}

// SearchPaths returns the agent-side plugin directories in lookup order.
func (r *Resolver) SearchPaths() []string {
	return append([]string(nil), r.searchPaths...)
}

// Normalize strips leading separators from a declared bundled path.
func Normalize(declared string) string {
	return strings.TrimLeft(declared, "/"+string(filepath.Separator))
}

// ResolveBundled returns the absolute path of a script bundled in the
// archive. The error names the path relative to the archive root.
func (r *Resolver) ResolveBundled(archiveDir, baseDir, declared string) (string, error) {
	rel := filepath.Join(baseDir, Normalize(declared))
	path := filepath.Join(archiveDir, rel)
	ok, err := r.isFile(path)
	if err != nil {
		return "", apperrors.ScriptNotFound(rel).WithCause(err)
	}
	if !ok {
		return "", apperrors.ScriptNotFound(rel)
	}
	return path, nil
}

// ResolveAgent returns the first search-path entry holding name.
func (r *Resolver) ResolveAgent(name string) (string, error) {
	for _, dir := range r.searchPaths {
		path := filepath.Join(dir, name)
		if ok, err := r.isFile(path); err == nil && ok {
			return path, nil
		}
	}
	return "", apperrors.PluginNotFound(name, r.searchPaths)
}

// isFile reports whether path exists and is not a directory.
func (r *Resolver) isFile(path string) (bool, error) {
	info, err := r.fs.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

// Authorize adds execute permission for owner, group and other to the file
// at path. Existing bits are kept.
func (r *Resolver) Authorize(path string) error {
	info, err := r.fs.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Mode().Perm()&ExecBits == ExecBits {
		return nil
	}
	if err := r.fs.Chmod(path, info.Mode()|ExecBits); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	return nil
}
