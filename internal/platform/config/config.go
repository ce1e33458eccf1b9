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
  - DI-Friendly: Passed to core components (catalog, batch, DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.

Postgres and Redis are optional: without DATABASE_URL the derived catalog is
kept in memory, and without REDIS_URL no read cache is used.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/alloyforge/internal/platform/validate"
)

// Catalog source kinds.
const (
	CatalogSourceHCL      = "hcl"
	CatalogSourcePostgres = "postgres"
)

// Stat merge strategies.
const (
	StatStrategyTemplate = "template"
	StatStrategyAverage  = "average"
)

// # Configuration Schema

// Config holds all runtime configuration for the alloyforge process.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Serve keeps the process alive after the batch to expose the read API.
	Serve bool `env:"SERVE" envDefault:"true"`

	// Relational Database (PostgreSQL). Empty keeps everything in memory.
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis). Empty disables the read cache.
	RedisURL string `env:"REDIS_URL"`

	// Catalog source selection
	CatalogSource string `env:"CATALOG_SOURCE" envDefault:"hcl"`
	CatalogPath   string `env:"CATALOG_PATH"   envDefault:"./data/catalog"`

	// ContentPack is stamped on every derived record.
	ContentPack string `env:"CONTENT_PACK" envDefault:"alloyforge"`

	// MergeStatStrategy selects how derived stats are computed.
	MergeStatStrategy string `env:"MERGE_STAT_STRATEGY" envDefault:"template"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Validate checks cross-field rules that struct tags cannot express.
func (c *Config) Validate() error {
	v := &validate.Validator{}
	v.OneOf("CATALOG_SOURCE", c.CatalogSource, CatalogSourceHCL, CatalogSourcePostgres).
		OneOf("MERGE_STAT_STRATEGY", c.MergeStatStrategy, StatStrategyTemplate, StatStrategyAverage).
		Required("CONTENT_PACK", c.ContentPack).
		Custom("DATABASE_URL", c.CatalogSource == CatalogSourcePostgres && c.DatabaseURL == "",
			"Required when CATALOG_SOURCE is postgres")

	if c.CatalogSource == CatalogSourceHCL {
		v.Required("CATALOG_PATH", c.CatalogPath)
	}

	return v.Err()
}

// IsDevelopment reports whether the process is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the process is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsePostgres reports whether derived records are persisted in PostgreSQL.
func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

// UseRedis reports whether the Redis read cache is enabled.
func (c *Config) UseRedis() bool {
	return c.RedisURL != ""
}
