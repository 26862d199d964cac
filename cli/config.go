package cli

import (
	"fmt"

	"github.com/kbukum/healthreg/config"
	"github.com/kbukum/healthreg/discovery"
	"github.com/kbukum/healthreg/discovery/consul"
	apperrors "github.com/kbukum/healthreg/errors"
	"github.com/kbukum/healthreg/observability"
	"github.com/kbukum/healthreg/sensu"
)

// ServiceName names the application in logs, telemetry and config lookup.
const ServiceName = "healthreg"

// Config is the healthreg configuration file.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Discovery     discovery.Config     `yaml:"discovery" mapstructure:"discovery"`
	Consul        consul.Config        `yaml:"consul" mapstructure:"consul"`
	Sensu         sensu.Config         `yaml:"sensu" mapstructure:"sensu"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}
	c.ServiceConfig.ApplyDefaults()
	c.Discovery.ApplyDefaults()
	c.Consul.ApplyDefaults()
	c.Sensu.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Discovery.Validate(); err != nil {
		return fmt.Errorf("discovery: %w", err)
	}
	if err := c.Consul.Validate(); err != nil {
		return fmt.Errorf("consul: %w", err)
	}
	if err := c.Sensu.Validate(); err != nil {
		return fmt.Errorf("sensu: %w", err)
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	return nil
}

// LoadConfig reads the configuration from path, or from the default
// locations when path is empty, and applies defaults.
func LoadConfig(path string) (*Config, error) {
	var opts []config.LoaderOption
	if path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}

	var cfg Config
	if err := config.LoadConfig(ServiceName, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Config("invalid configuration").WithCause(err)
	}
	return &cfg, nil
}
