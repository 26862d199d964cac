package sensu

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/kbukum/healthreg/healthcheck"
)

// Directory reads and writes check-definition files.
type Directory struct {
	fs   afero.Fs
	path string
}

// NewDirectory creates a Directory rooted at path. A nil fs uses the host
// filesystem.
func NewDirectory(fs afero.Fs, path string) *Directory {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Directory{fs: fs, path: path}
}

// Path returns the definition file path of a check.
func (d *Directory) Path(serviceID, checkID string) string {
	return filepath.Join(d.path, healthcheck.SensuFileName(serviceID, checkID))
}

// Write stores the definition of a check, replacing any previous one. The
// directory itself must already exist.
func (d *Directory) Write(serviceID, checkID string, data []byte) (string, error) {
	path := d.Path(serviceID, checkID)
	if err := afero.WriteFile(d.fs, path, data, 0o644); err != nil {
		return path, fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// Remove deletes the definition of a check if present and reports whether a
// file was removed.
func (d *Directory) Remove(serviceID, checkID string) (bool, error) {
	path := d.Path(serviceID, checkID)
	if err := d.fs.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("remove %s: %w", path, err)
	}
	return true, nil
}

// Read returns the stored definition of a check.
func (d *Directory) Read(serviceID, checkID string) ([]byte, error) {
	return afero.ReadFile(d.fs, d.Path(serviceID, checkID))
}
