package discovery

import "fmt"

// Provider names.
const (
	ProviderConsul = "consul"
	ProviderStatic = "static"
)

// Config selects the check registry backend.
type Config struct {
	// Provider selects the backend: "consul" or "static".
	Provider string `mapstructure:"provider"`
}

// ApplyDefaults fills zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderConsul
	}
}

// Validate checks that required fields are present and consistent.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderConsul, ProviderStatic:
		return nil
	}
	return fmt.Errorf("unsupported discovery provider %q", c.Provider)
}
