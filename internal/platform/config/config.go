// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.

Both the command and the query binaries read the same schema; GRPCPort is
only used by the query side.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Lang service binaries.
type Config struct {

	// Server settings
	ServiceName string `env:"SERVICE_NAME" envDefault:"LangService"`
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	GRPCPort    string `env:"GRPC_PORT"    envDefault:"9090"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// RunMigrations toggles applying migrations at startup.
	RunMigrations bool `env:"RUN_MIGRATIONS" envDefault:"true"`

	// Key-Value store (Redis) for integration events. Optional.
	RedisURL string `env:"REDIS_URL"`

	// LangEventStream is the Redis stream receiving Lang change events.
	LangEventStream string `env:"LANG_EVENT_STREAM" envDefault:"config:lang:events"`

	// Cross-Origin Resource Sharing
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HasRedis reports whether integration events should be published to Redis.
func (c *Config) HasRedis() bool {
	return c.RedisURL != ""
}

// AllowedOrigins returns the CORS allow-list configured for production.
func (c *Config) AllowedOrigins() []string {
	return c.ExtraOrigins
}
