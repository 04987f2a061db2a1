// Package config loads service configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment variable read by nominaweb
// commands.
const EnvPrefix = "NOMINAWEB_"

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseEnvMap loads configuration from an explicit environment map.
// Commands use it so tests can inject variables without touching the process
// environment.
func ParseEnvMap(target any, environ map[string]string) error {
	if environ == nil {
		return ParseEnv(target)
	}
	if err := env.ParseWithOptions(target, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
