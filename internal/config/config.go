package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	HTTPAddr string `env:"MBG_HTTP_ADDR" envDefault:":3000"`
	// GRPCAddr is the scanner-facing gRPC listener. "off" disables it.
	GRPCAddr string `env:"MBG_GRPC_ADDR" envDefault:":9090"`

	Env string `env:"MBG_ENV" envDefault:"dev"` // "dev" | "prod"

	// Storage
	Store       string `env:"MBG_STORE" envDefault:"sqlite"` // memory | sqlite | postgres
	DBPath      string `env:"MBG_DB_PATH" envDefault:"./data/mbg-health.db"`
	DatabaseURL string `env:"MBG_DATABASE_URL"`
	SeedDev     string `env:"MBG_SEED_DEV"` // true | false; defaults to true in dev

	// ExpirySweepInterval is how often due clearances are expired in bulk.
	// 0 disables the sweeper; resolves still expire lazily.
	ExpirySweepInterval time.Duration `env:"MBG_EXPIRY_SWEEP_INTERVAL" envDefault:"15m"`

	LogMode      string `env:"MBG_LOG_MODE"` // follows Env when empty
	LogRedaction bool   `env:"MBG_LOG_REDACTION" envDefault:"true"`

	ShutdownTimeout time.Duration `env:"MBG_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// FromEnv loads configuration from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg.normalize()
}

func (c Config) normalize() (Config, error) {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if c.Env != "dev" && c.Env != "prod" {
		// fail-soft: treat unknown as dev
		c.Env = "dev"
	}

	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	switch c.Store {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return Config{}, fmt.Errorf("MBG_DATABASE_URL is required when MBG_STORE=postgres")
		}
	default:
		return Config{}, fmt.Errorf("unknown MBG_STORE %q (want memory, sqlite or postgres)", c.Store)
	}

	switch strings.ToLower(strings.TrimSpace(c.GRPCAddr)) {
	case "off", "none", "-":
		c.GRPCAddr = ""
	}

	if c.LogMode == "" {
		c.LogMode = c.Env
	}
	if c.ExpirySweepInterval < 0 {
		c.ExpirySweepInterval = 0
	}
	return c, nil
}

// ShouldSeedDev reports whether the dev roster should be loaded.
func (c Config) ShouldSeedDev() bool {
	switch strings.ToLower(strings.TrimSpace(c.SeedDev)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return c.Env == "dev"
}
