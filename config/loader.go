package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/kbukum/healthreg/logger"
)

// DefaultEnvPrefix is the prefix of environment variables that override
// configuration values, e.g. HEALTHREG_CONSUL_ADDRESS.
const DefaultEnvPrefix = "HEALTHREG"

// Resolver handles finding config and env files.
type Resolver struct {
	Fs afero.Fs
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles finds config and env files for a service.
// Explicit paths in opts win over the search.
func (cr *Resolver) ResolveFiles(serviceName string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}

	if resolved.ConfigFile == "" {
		resolved.ConfigFile = cr.first(configSearchPaths(serviceName))
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = cr.first(envSearchPaths(serviceName))
	}

	return resolved
}

func (cr *Resolver) exists(path string) bool {
	ok, err := afero.Exists(cr.Fs, path)
	return err == nil && ok
}

func (cr *Resolver) first(paths []string) string {
	for _, path := range paths {
		if cr.exists(path) {
			return path
		}
	}
	return ""
}

// configSearchPaths lists config file candidates, working directory first.
func configSearchPaths(serviceName string) []string {
	return []string{
		fmt.Sprintf("./%s.yml", serviceName),
		"./config/config.yml",
		"./config.yml",
		fmt.Sprintf("/etc/%s/config.yml", serviceName),
	}
}

// envSearchPaths lists .env candidates, service-specific names first.
func envSearchPaths(serviceName string) []string {
	dirs := []string{".", "./config", fmt.Sprintf("/etc/%s", serviceName)}
	names := []string{fmt.Sprintf(".env.%s", serviceName), ".env"}

	paths := make([]string, 0, len(dirs)*len(names))
	for _, name := range names {
		for _, dir := range dirs {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	Fs         afero.Fs
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct env file path (optional)
	EnvPrefix  string
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFs sets the filesystem config and env files are read from.
func WithFs(fs afero.Fs) LoaderOption {
	return func(lc *LoaderConfig) { lc.Fs = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithEnvPrefix sets the prefix of overriding environment variables.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvPrefix = prefix }
}

// LoadConfig loads configuration for a service into the provided cfg struct.
// Values come from the config file, then a .env file, then prefixed
// environment variables, each overriding the previous one.
func LoadConfig(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	lc := LoaderConfig{EnvPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.Fs == nil {
		lc.Fs = afero.NewOsFs()
	}

	resolver := &Resolver{Fs: lc.Fs}
	files := resolver.ResolveFiles(serviceName, lc)

	return loadFromResolvedFiles(serviceName, cfg, files, lc)
}

// loadFromResolvedFiles loads configuration from specific files.
func loadFromResolvedFiles(serviceName string, cfg interface{}, files ResolvedFiles, lc LoaderConfig) error {
	v := viper.New()
	v.SetFs(lc.Fs)
	resolver := &Resolver{Fs: lc.Fs}

	// 1. YAML config (base configuration)
	if files.ConfigFile != "" {
		if resolver.exists(files.ConfigFile) {
			v.SetConfigFile(files.ConfigFile)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("failed to read config file %s: %w", files.ConfigFile, err)
			}
		} else {
			logger.Warn("config file not found, using defaults", logger.Fields(logger.FieldPath, files.ConfigFile))
		}
	}

	// 2. .env file, never overriding variables already set
	if files.EnvFile != "" && resolver.exists(files.EnvFile) {
		if err := loadEnvFile(lc.Fs, files.EnvFile); err != nil {
			logger.Warn("failed to load .env file", logger.Fields(logger.FieldPath, files.EnvFile, logger.FieldError, err.Error()))
		}
	}

	// 3. Prefixed environment variables
	bindEnvVars(v, lc.EnvPrefix)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for service %s: %w", serviceName, err)
	}

	return nil
}

func loadEnvFile(fs afero.Fs, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return err
	}
	vars, err := godotenv.UnmarshalBytes(data)
	if err != nil {
		return err
	}
	for key, value := range vars {
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return nil
}

// bindEnvVars sets every PREFIX_* environment variable on v under all the
// nested key variants it could stand for.
func bindEnvVars(v *viper.Viper, prefix string) {
	prefix = strings.ToUpper(prefix) + "_"
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], prefix) {
			continue
		}

		key := strings.TrimPrefix(pair[0], prefix)
		for _, variant := range generateEnvKeyVariants(key) {
			v.Set(variant, pair[1])
		}
	}
}

// generateEnvKeyVariants creates all possible key variants for environment variable binding.
// Examples:
//
//	CONSUL_ADDRESS -> [consul_address, consul.address]
//	SENSU_CHECK_PATH -> [sensu_check_path, sensu.check.path, sensu.check_path, sensu_check.path]
func generateEnvKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")

	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}

	// Generate progressive nesting patterns
	for i := 1; i < len(parts); i++ {
		prefix := strings.Join(parts[:i], ".")
		suffix := strings.Join(parts[i:], "_")
		variants = append(variants, prefix+"."+suffix)
	}

	if len(parts) >= 3 {
		prefix := strings.Join(parts[:len(parts)-1], "_")
		variants = append(variants, prefix+"."+parts[len(parts)-1])
	}

	return removeDuplicates(variants)
}

// removeDuplicates removes duplicate strings from a slice.
func removeDuplicates(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))

	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}

	return result
}
