package discovery

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kbukum/healthreg/logger"
)

// ProviderFactory creates a CheckRegistry. providerCfg holds provider-specific
// configuration (e.g., *consul.Config); providers type-assert it.
type ProviderFactory func(providerCfg any, log *logger.Logger) (CheckRegistry, error)

var (
	factoriesMu       sync.RWMutex
	providerFactories = make(map[string]ProviderFactory)
)

// RegisterProviderFactory registers a backend factory for the given provider
// name. Implementation packages call this from an init function.
func RegisterProviderFactory(name string, f ProviderFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	providerFactories[name] = f
}

// Providers lists the registered provider names.
func Providers() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	names := make([]string, 0, len(providerFactories))
	for name := range providerFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates the CheckRegistry selected by cfg.
func New(cfg Config, providerCfg any, log *logger.Logger) (CheckRegistry, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("discovery config: %w", err)
	}

	factoriesMu.RLock()
	f, ok := providerFactories[cfg.Provider]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (not registered)", ErrUnknownProvider, cfg.Provider)
	}
	if log == nil {
		log = logger.NewNop()
	}

	reg, err := f(providerCfg, log.WithComponent("discovery"))
	if err != nil {
		return nil, fmt.Errorf("discovery start: %w", err)
	}
	log.Debug("check registry created", logger.Fields("provider", cfg.Provider))
	return reg, nil
}
