// Package config loads healthreg configuration.
//
// Values are read with Viper from a YAML file, then from a .env file loaded
// with godotenv, then from environment variables carrying the HEALTHREG_
// prefix. Later layers override earlier ones. Nested keys map to
// underscore-separated names, so HEALTHREG_CONSUL_ADDRESS sets
// consul.address.
//
// # Usage
//
//	var cfg cli.Config
//	err := config.LoadConfig("healthreg", &cfg, config.WithConfigFile(path))
//
// Without an explicit file, ./healthreg.yml, ./config/config.yml,
// ./config.yml and /etc/healthreg/config.yml are tried in that order.
package config
