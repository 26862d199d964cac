package consul

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/hashicorp/consul/api"

	"github.com/kbukum/healthreg/discovery"
)

// fakeAgent records check API calls made against it.
type fakeAgent struct {
	mu           sync.Mutex
	registered   []api.AgentCheckRegistration
	deregistered []string
	tokens       []string
	fail         bool
}

func (a *fakeAgent) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.tokens = append(a.tokens, r.Header.Get("X-Consul-Token"))
	if a.fail {
		http.Error(w, "agent unavailable", http.StatusInternalServerError)
		return
	}
	switch {
	case r.Method == http.MethodPut && r.URL.Path == "/v1/agent/check/register":
		var reg api.AgentCheckRegistration
		if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		a.registered = append(a.registered, reg)
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/v1/agent/check/deregister/"):
		a.deregistered = append(a.deregistered, strings.TrimPrefix(r.URL.Path, "/v1/agent/check/deregister/"))
	default:
		http.NotFound(w, r)
	}
}

func newTestProvider(t *testing.T, agent *fakeAgent) *Provider {
	t.Helper()
	srv := httptest.NewServer(agent)
	t.Cleanup(srv.Close)

	p, err := NewProvider(Config{Address: strings.TrimPrefix(srv.URL, "http://"), Token: "secret"}, nil)
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	return p
}

func TestProvider_RegisterScriptCheck(t *testing.T) {
	agent := &fakeAgent{}
	p := newTestProvider(t, agent)

	err := p.RegisterScriptCheck(context.Background(), &discovery.CheckInfo{
		ServiceID: "web-blue",
		ID:        "web-blue:disk",
		Name:      "disk",
		Interval:  "30s",
		Args:      []string{"/deploy/healthchecks/consul/check.sh", "blue"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(agent.registered) != 1 {
		t.Fatalf("expected 1 registration, got %d", len(agent.registered))
	}
	got := agent.registered[0]
	if got.ID != "web-blue:disk" || got.Name != "disk" || got.ServiceID != "web-blue" {
		t.Errorf("unexpected registration %+v", got)
	}
	if !reflect.DeepEqual(got.Args, []string{"/deploy/healthchecks/consul/check.sh", "blue"}) || got.Interval != "30s" {
		t.Errorf("unexpected script definition %+v", got.AgentServiceCheck)
	}
	if agent.tokens[0] != "secret" {
		t.Errorf("expected ACL token to be sent, got %q", agent.tokens[0])
	}
	if p.Stats().RegisteredChecks != 1 {
		t.Errorf("expected 1 registered check in stats, got %d", p.Stats().RegisteredChecks)
	}
}

func TestProvider_RegisterHTTPCheck(t *testing.T) {
	agent := &fakeAgent{}
	p := newTestProvider(t, agent)

	err := p.RegisterHTTPCheck(context.Background(), &discovery.CheckInfo{
		ServiceID: "web",
		ID:        "web:health",
		Name:      "health_check",
		Interval:  "10s",
		HTTP:      "https://localhost:3333/something",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := agent.registered[0]
	if got.HTTP != "https://localhost:3333/something" || len(got.Args) != 0 {
		t.Errorf("unexpected http definition %+v", got.AgentServiceCheck)
	}
}

func TestProvider_DeregisterCheck(t *testing.T) {
	agent := &fakeAgent{}
	p := newTestProvider(t, agent)

	if err := p.DeregisterCheck(context.Background(), "web:disk"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(agent.deregistered, []string{"web:disk"}) {
		t.Errorf("unexpected deregistrations %v", agent.deregistered)
	}
	if p.Stats().DeregisteredChecks != 1 {
		t.Errorf("expected 1 deregistered check in stats, got %d", p.Stats().DeregisteredChecks)
	}
}

func TestProvider_AgentFailure(t *testing.T) {
	agent := &fakeAgent{fail: true}
	p := newTestProvider(t, agent)

	if err := p.RegisterHTTPCheck(context.Background(), &discovery.CheckInfo{ID: "x", HTTP: "http://x"}); err == nil {
		t.Error("expected register error")
	}
	if err := p.DeregisterCheck(context.Background(), "x"); err == nil {
		t.Error("expected deregister error")
	}
	if s := p.Stats(); s.RegisteredChecks != 0 || s.DeregisteredChecks != 0 {
		t.Errorf("failed calls must not count, got %+v", s)
	}
}

func TestProvider_CancelledContext(t *testing.T) {
	agent := &fakeAgent{}
	p := newTestProvider(t, agent)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.DeregisterCheck(ctx, "x"); err == nil {
		t.Error("expected context error")
	}
	if len(agent.tokens) != 0 {
		t.Error("no request should reach the agent after cancellation")
	}
}

func TestProviderFactory(t *testing.T) {
	reg, err := discovery.New(discovery.Config{Provider: discovery.ProviderConsul}, &Config{Address: "127.0.0.1:1"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := reg.(*Provider); !ok {
		t.Errorf("expected *Provider, got %T", reg)
	}

	if _, err := discovery.New(discovery.Config{Provider: discovery.ProviderConsul}, 42, nil); err == nil {
		t.Error("expected error for a foreign config type")
	}
}

func TestConfig(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Address != "localhost:8500" || cfg.Scheme != "http" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}

	cfg.Scheme = "ftp"
	if err := cfg.Validate(); err == nil {
		t.Error("expected scheme error")
	}

	cfg.Scheme = "http"
	cfg.TLS = &TLSConfig{Enabled: true}
	if err := cfg.Validate(); err == nil {
		t.Error("expected TLS/scheme mismatch error")
	}
}
