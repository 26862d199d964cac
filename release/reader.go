package release

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrAppSpecNotFound is returned when an archive has no appspec.yml.
var ErrAppSpecNotFound = errors.New("appspec not found")

// Reader reads release archives from a filesystem.
type Reader struct {
	fs afero.Fs
}

// NewReader creates a Reader. A nil fs reads the host filesystem.
func NewReader(fs afero.Fs) *Reader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Reader{fs: fs}
}

// Fs returns the filesystem the reader works on.
func (r *Reader) Fs() afero.Fs { return r.fs }

// LoadAppSpec reads and parses <archiveDir>/appspec.yml.
func (r *Reader) LoadAppSpec(archiveDir string) (*AppSpec, error) {
	path := filepath.Join(archiveDir, AppSpecFile)
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrAppSpecNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseAppSpec(data)
}

// Exists reports whether rel exists inside the archive.
func (r *Reader) Exists(archiveDir, rel string) bool {
	ok, err := afero.Exists(r.fs, filepath.Join(archiveDir, rel))
	return err == nil && ok
}

// ReadFile reads rel from inside the archive.
func (r *Reader) ReadFile(archiveDir, rel string) ([]byte, error) {
	return afero.ReadFile(r.fs, filepath.Join(archiveDir, rel))
}
