package observability

import (
	"fmt"
	"time"
)

// Config holds telemetry export settings.
type Config struct {
	// Enabled turns OTLP export on. When off, global no-op providers are used.
	Enabled bool `mapstructure:"enabled"`
	// Endpoint is the OTLP HTTP endpoint host:port.
	Endpoint string `mapstructure:"endpoint"`
	// Insecure allows plain HTTP export.
	Insecure bool `mapstructure:"insecure"`
	// SampleRate is the trace sampling rate (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate"`
	// Environment tags exported telemetry.
	Environment string `mapstructure:"environment"`
	// MetricInterval is the metric export interval.
	MetricInterval time.Duration `mapstructure:"metric_interval"`
}

// ApplyDefaults fills zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.Environment == "" {
		c.Environment = "production"
	}
	if c.MetricInterval == 0 {
		c.MetricInterval = 15 * time.Second
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("sample_rate must be between 0 and 1, got %v", c.SampleRate)
	}
	if c.Enabled && c.Endpoint == "" {
		return fmt.Errorf("endpoint is required when observability is enabled")
	}
	return nil
}
