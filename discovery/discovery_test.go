package discovery_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kbukum/healthreg/discovery"
	"github.com/kbukum/healthreg/discovery/static"
)

func TestConfig(t *testing.T) {
	var cfg discovery.Config
	cfg.ApplyDefaults()
	if cfg.Provider != discovery.ProviderConsul {
		t.Errorf("expected default provider consul, got %q", cfg.Provider)
	}

	bad := discovery.Config{Provider: "etcd"}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unsupported provider")
	}
}

func TestNew_Static(t *testing.T) {
	reg, err := discovery.New(discovery.Config{Provider: discovery.ProviderStatic}, nil, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, ok := reg.(*static.Provider); !ok {
		t.Errorf("expected *static.Provider, got %T", reg)
	}
}

func TestNew_UnregisteredProvider(t *testing.T) {
	// consul is a valid name but its package is not imported here
	_, err := discovery.New(discovery.Config{Provider: discovery.ProviderConsul}, nil, nil)
	if !errors.Is(err, discovery.ErrUnknownProvider) {
		t.Errorf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestProviders(t *testing.T) {
	if got := discovery.Providers(); !reflect.DeepEqual(got, []string{discovery.ProviderStatic}) {
		t.Errorf("Providers() = %v", got)
	}
}
