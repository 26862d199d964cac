package static

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kbukum/healthreg/discovery"
	"github.com/kbukum/healthreg/logger"
)

// Provider implements discovery.CheckRegistry with an in-memory map of
// checks. Useful for dry runs and testing.
type Provider struct {
	mu     sync.RWMutex
	checks map[string]discovery.CheckInfo // keyed by check id
	stats  discovery.RegistryStats
}

func init() {
	discovery.RegisterProviderFactory(discovery.ProviderStatic, func(_ any, _ *logger.Logger) (discovery.CheckRegistry, error) {
		return NewProvider(), nil
	})
}

// NewProvider creates an empty Provider.
func NewProvider() *Provider {
	return &Provider{checks: make(map[string]discovery.CheckInfo)}
}

// RegisterScriptCheck stores a script check.
func (s *Provider) RegisterScriptCheck(ctx context.Context, check *discovery.CheckInfo) error {
	return s.put(ctx, check)
}

// RegisterHTTPCheck stores an HTTP check.
func (s *Provider) RegisterHTTPCheck(ctx context.Context, check *discovery.CheckInfo) error {
	return s.put(ctx, check)
}

func (s *Provider) put(ctx context.Context, check *discovery.CheckInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *check
	stored.Args = append([]string(nil), check.Args...)
	s.checks[check.ID] = stored
	s.stats.RegisteredChecks++
	s.stats.LastCall = time.Now()
	return nil
}

// DeregisterCheck removes a check by id. Unknown ids are ignored.
func (s *Provider) DeregisterCheck(ctx context.Context, checkID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.checks, checkID)
	s.stats.DeregisteredChecks++
	s.stats.LastCall = time.Now()
	return nil
}

// Checks returns the stored checks ordered by id.
func (s *Provider) Checks() []discovery.CheckInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]discovery.CheckInfo, 0, len(s.checks))
	for _, c := range s.checks {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Stats returns current registry statistics.
func (s *Provider) Stats() discovery.RegistryStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Close is a no-op for the static provider.
func (s *Provider) Close() error {
	return nil
}

// Compile-time checks.
var _ discovery.CheckRegistry = (*Provider)(nil)
