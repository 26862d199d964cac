package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := &Config{
		Level:  "invalid-level",
		Format: "json",
		Output: "stdout",
	}
	l := New(cfg, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestJSONOutputCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "debug", Format: "json"}, "healthreg", &buf)

	l.WithComponent("registrar").Info("registered", Fields(FieldCheckID, "disk", FieldBackend, "sensu"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "registered" {
		t.Errorf("expected message 'registered', got %v", entry["message"])
	}
	if entry[FieldComponent] != "registrar" {
		t.Errorf("expected component 'registrar', got %v", entry[FieldComponent])
	}
	if entry[FieldCheckID] != "disk" {
		t.Errorf("expected check_id 'disk', got %v", entry[FieldCheckID])
	}
	if entry["service"] != "healthreg" {
		t.Errorf("expected service 'healthreg', got %v", entry["service"])
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "warn", Format: "json"}, "", &buf)

	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message should be written: %q", out)
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "", &buf)

	l.WithError(errors.New("boom")).Error("failed")

	if !strings.Contains(buf.String(), `"error":"boom"`) {
		t.Errorf("expected error field, got %q", buf.String())
	}
}

func TestConsoleFormatNoColor(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "", &buf)

	l.Warn("deprecated property")

	if !strings.Contains(buf.String(), "[WRN]") {
		t.Errorf("expected [WRN] level tag, got %q", buf.String())
	}
}

func TestNewNopDiscards(t *testing.T) {
	l := NewNop()
	l.Info("nothing")
	l.WithComponent("x").Error("still nothing")
}

func TestFields(t *testing.T) {
	f := Fields("a", 1, "b", "two", 3, "ignored")
	if len(f) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(f))
	}
	if f["a"] != 1 || f["b"] != "two" {
		t.Errorf("unexpected fields %v", f)
	}
}

func TestErrorFields(t *testing.T) {
	f := ErrorFields("disk", errors.New("gone"))
	if f[FieldCheckID] != "disk" || f[FieldError] != "gone" {
		t.Errorf("unexpected fields %v", f)
	}
}

func TestMergeWithError_NilMap(t *testing.T) {
	f := MergeWithError(nil, errors.New("x"))
	if f[FieldError] != "x" {
		t.Errorf("expected error=x, got %v", f[FieldError])
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid json", Config{Level: "info", Format: "json"}, false},
		{"valid console", Config{Level: "debug", Format: "console"}, false},
		{"bad level", Config{Level: "loud", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != "stdout" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp enabled by default")
	}
}
