// Package config loads server configuration from an optional yaml file with
// environment overrides on top.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pricewise/pricewise/pkg/db"
)

type Config struct {
	Addr           string
	CouponCacheTTL time.Duration
	MigrationsDir  string
	Database       db.PostgresConfig
}

type fileConfig struct {
	Addr           string `yaml:"addr"`
	CouponCacheTTL string `yaml:"coupon_cache_ttl"`
	MigrationsDir  string `yaml:"migrations_dir"`
}

// Load builds the config from defaults, then the yaml file at path (if any),
// then the environment. Database settings come from the environment only.
func Load(path string) (Config, error) {
	cfg := Config{
		Addr:           ":8080",
		CouponCacheTTL: 5 * time.Minute,
		MigrationsDir:  "internal/repository/migrations",
		Database:       db.LoadPostgresConfig(),
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		if fc.Addr != "" {
			cfg.Addr = fc.Addr
		}
		if fc.MigrationsDir != "" {
			cfg.MigrationsDir = fc.MigrationsDir
		}
		if fc.CouponCacheTTL != "" {
			ttl, err := time.ParseDuration(fc.CouponCacheTTL)
			if err != nil {
				return Config{}, fmt.Errorf("parse coupon_cache_ttl: %w", err)
			}
			cfg.CouponCacheTTL = ttl
		}
	}

	if addr := os.Getenv("ADDR"); addr != "" {
		cfg.Addr = addr
	}
	return cfg, nil
}
