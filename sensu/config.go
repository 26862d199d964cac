package sensu

import "fmt"

// Config holds Sensu client settings.
type Config struct {
	// CheckPath is the directory the Sensu client reads check definitions from.
	CheckPath string `yaml:"check_path" mapstructure:"check_path"`

	// SearchPaths are the plugin directories searched for server scripts, in order.
	SearchPaths []string `yaml:"search_paths" mapstructure:"search_paths"`
}

// ApplyDefaults sets sensible defaults for Config.
func (c *Config) ApplyDefaults() {
	if c.CheckPath == "" {
		c.CheckPath = "/etc/sensu/conf.d/checks.local"
	}
	if len(c.SearchPaths) == 0 {
		c.SearchPaths = []string{"/etc/some_fake_path", "/opt/sensu_server_scripts"}
	}
}

// Validate checks if the Sensu configuration is valid.
func (c *Config) Validate() error {
	if c.CheckPath == "" {
		return fmt.Errorf("sensu check_path is required")
	}
	return nil
}
