// Package config loads server configuration. Environment variables override
// the TOML file, which overrides the built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the cost-basis server
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
	Engine   EngineConfig   `toml:"engine"`
	Chart    ChartConfig    `toml:"chart"`
}

// ServerConfig holds gRPC server configuration
type ServerConfig struct {
	Addr     string `toml:"addr"`
	APIToken string `toml:"api_token"`
}

// DatabaseConfig holds Postgres connection settings. ConnStr wins over the
// individual fields when set.
type DatabaseConfig struct {
	ConnStr  string `toml:"conn_str"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Name     string `toml:"name"`
	SSLMode  string `toml:"sslmode"`
}

// ConnectionString returns the lib/pq connection string
func (c DatabaseConfig) ConnectionString() string {
	if c.ConnStr != "" {
		return c.ConnStr
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // console or json
}

// EngineConfig bounds the per-asset fan-out of portfolio views
type EngineConfig struct {
	Concurrency int `toml:"concurrency"`
}

// ChartConfig holds the rendered chart size in pixels
type ChartConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Load reads the TOML file at path (a missing file is fine), applies
// environment overrides and defaults, and validates the result
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides file values with the environment
func (c *Config) applyEnv() error {
	setString(&c.Database.ConnStr, "DB_CONN_STR")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Name, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")
	setString(&c.Server.Addr, "GRPC_ADDR")
	setString(&c.Server.APIToken, "API_TOKEN")
	setString(&c.Logging.Level, "LOG_LEVEL")
	setString(&c.Logging.Format, "LOG_FORMAT")

	if v := os.Getenv("DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DB_PORT %q: %w", v, err)
		}
		c.Database.Port = port
	}
	if v := os.Getenv("ENGINE_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ENGINE_CONCURRENCY %q: %w", v, err)
		}
		c.Engine.Concurrency = n
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
