// Package config loads application configuration from environment variables
// and an optional YAML file, with struct-tag defaults as the base layer.
// It also carries the built-in Bicing tariff presets used when no custom
// tariffs are configured.
package config
