// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used by the CLI, the
// events installer and the widget server.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string `env:"APP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"APP_PORT" envDefault:"8080"`
	Env  string `env:"APP_ENV" envDefault:"development"` // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	DBPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	DBUser     string `env:"POSTGRES_USER" envDefault:"eventscms"`
	DBPassword string `env:"POSTGRES_PASSWORD" envDefault:"changeme"`
	DBName     string `env:"POSTGRES_DB" envDefault:"eventscms"`

	// Valkey (Redis-compatible cache)
	ValkeyHost     string `env:"VALKEY_HOST" envDefault:"localhost"`
	ValkeyPort     string `env:"VALKEY_PORT" envDefault:"6379"`
	ValkeyPassword string `env:"VALKEY_PASSWORD"`

	// Events module
	Languages      []string `env:"EVENTS_LANGUAGES" envSeparator:"," envDefault:"en"`
	InstallExample bool     `env:"EVENTS_INSTALL_EXAMPLE" envDefault:"false"`
	AdminGroupID   int      `env:"EVENTS_ADMIN_GROUP_ID" envDefault:"1"`

	// ArchiveWidgetTTL is how long the rendered archive widget stays cached.
	// Zero disables caching of the fragment.
	ArchiveWidgetTTL time.Duration `env:"EVENTS_ARCHIVE_WIDGET_TTL" envDefault:"24h"`

	// OTLP/HTTP endpoint for traces; empty disables tracing.
	OTelEndpoint string `env:"EVENTS_OTEL_ENDPOINT"`
}

// Load reads configuration from the process environment.
func Load() (*Config, error) {
	return LoadFrom(environ())
}

// LoadFrom reads configuration from the given variables instead of the
// process environment. Returns an error if critical values are missing
// in production mode or a language tag cannot be parsed.
func LoadFrom(vars map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	langs, err := NormalizeLanguages(cfg.Languages)
	if err != nil {
		return nil, err
	}
	cfg.Languages = langs

	if cfg.ArchiveWidgetTTL < 0 {
		return nil, fmt.Errorf("EVENTS_ARCHIVE_WIDGET_TTL must not be negative")
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// NormalizeLanguages validates every entry as a BCP 47 tag and returns
// the canonical forms in their original order, without blanks or duplicates.
func NormalizeLanguages(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, raw := range in {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		tag, err := language.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid language %q: %w", raw, err)
		}
		code := tag.String()
		if seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// environ snapshots the process environment as a map.
func environ() map[string]string {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return vars
}
