package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/kbukum/healthreg/release"
)

// Archive builds a release archive on an in-memory filesystem.
type Archive struct {
	t   testing.TB
	fs  afero.Fs
	dir string
}

// NewArchive creates an empty archive rooted at dir on a fresh MemMapFs.
func NewArchive(t testing.TB, dir string) *Archive {
	t.Helper()
	return NewArchiveOn(t, afero.NewMemMapFs(), dir)
}

// NewArchiveOn creates an archive rooted at dir on fs, so several archives
// can share one filesystem.
func NewArchiveOn(t testing.TB, fs afero.Fs, dir string) *Archive {
	t.Helper()
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create archive dir %s: %v", dir, err)
	}
	return &Archive{t: t, fs: fs, dir: dir}
}

// Dir returns the archive root.
func (a *Archive) Dir() string { return a.dir }

// Fs returns the filesystem the archive lives on.
func (a *Archive) Fs() afero.Fs { return a.fs }

// Reader returns a release reader over the archive filesystem.
func (a *Archive) Reader() *release.Reader { return release.NewReader(a.fs) }

// File writes content to rel inside the archive.
func (a *Archive) File(rel, content string) *Archive {
	a.t.Helper()
	return a.write(rel, content, 0o644)
}

// AppSpec writes appspec.yml.
func (a *Archive) AppSpec(content string) *Archive {
	a.t.Helper()
	return a.File(release.AppSpecFile, content)
}

// Definitions writes the bundled definition file of backend.
func (a *Archive) Definitions(backend, content string) *Archive {
	a.t.Helper()
	return a.File(filepath.Join("healthchecks", backend, "healthchecks.yml"), content)
}

// Script writes a non-executable shell script to rel.
func (a *Archive) Script(rel string) *Archive {
	a.t.Helper()
	return a.write(rel, "#!/bin/sh\nexit 0\n", 0o644)
}

// Path returns the absolute path of rel inside the archive.
func (a *Archive) Path(rel string) string {
	return filepath.Join(a.dir, rel)
}

// LoadAppSpec parses the archive's appspec.yml, failing the test on error.
func (a *Archive) LoadAppSpec() *release.AppSpec {
	a.t.Helper()
	spec, err := a.Reader().LoadAppSpec(a.dir)
	if err != nil {
		a.t.Fatalf("load appspec: %v", err)
	}
	return spec
}

func (a *Archive) write(rel, content string, perm os.FileMode) *Archive {
	a.t.Helper()
	path := a.Path(rel)
	if err := a.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		a.t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := afero.WriteFile(a.fs, path, []byte(content), perm); err != nil {
		a.t.Fatalf("write %s: %v", path, err)
	}
	return a
}
