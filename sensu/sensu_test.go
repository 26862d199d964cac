package sensu

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/afero"
)

func TestDirectory_WriteReadRemove(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/etc/sensu/conf.d/checks.local", 0o755); err != nil {
		t.Fatal(err)
	}
	d := NewDirectory(fs, "/etc/sensu/conf.d/checks.local")

	path, err := d.Write("web-blue", "disk", []byte(`{"checks": {}}`))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if path != "/etc/sensu/conf.d/checks.local/web-blue-disk.json" {
		t.Errorf("unexpected path %q", path)
	}
	data, err := d.Read("web-blue", "disk")
	if err != nil || string(data) != `{"checks": {}}` {
		t.Fatalf("Read = %q, %v", data, err)
	}

	removed, err := d.Remove("web-blue", "disk")
	if err != nil || !removed {
		t.Fatalf("Remove = %v, %v", removed, err)
	}
	removed, err = d.Remove("web-blue", "disk")
	if err != nil || removed {
		t.Errorf("second Remove should be a no-op, got %v, %v", removed, err)
	}
}

func TestDirectory_OnDisk(t *testing.T) {
	dir := t.TempDir()
	d := NewDirectory(nil, dir)

	if _, err := d.Write("svc", "mem", []byte("{}")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := afero.NewOsFs().Stat(filepath.Join(dir, "svc-mem.json")); err != nil {
		t.Errorf("expected file on disk: %v", err)
	}
}

func TestDirectory_MissingDirectoryFails(t *testing.T) {
	d := NewDirectory(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/nowhere")
	if _, err := d.Write("svc", "mem", []byte("{}")); err == nil {
		t.Error("expected write error")
	}
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.CheckPath != "/etc/sensu/conf.d/checks.local" {
		t.Errorf("unexpected check path %q", cfg.CheckPath)
	}
	if !reflect.DeepEqual(cfg.SearchPaths, []string{"/etc/some_fake_path", "/opt/sensu_server_scripts"}) {
		t.Errorf("unexpected search paths %v", cfg.SearchPaths)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}
