// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Facts  FactsConfig
	UI     UIConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr      string `envconfig:"VISIOSSON_ADDR" default:":8080"`
	StaticDir string `envconfig:"VISIOSSON_STATIC_DIR" default:""`
	DataDir   string `envconfig:"VISIOSSON_DATA_DIR" default:""`
}

// FactsConfig holds fact provider configuration. When Exec is set it wins
// over URL; with neither set the built-in static facts are used.
type FactsConfig struct {
	URL           string `envconfig:"VISIOSSON_FACT_URL" default:""`
	Exec          string `envconfig:"VISIOSSON_FACT_EXEC" default:""`
	ExecTimeoutMs int    `envconfig:"VISIOSSON_FACT_EXEC_TIMEOUT_MS" default:"5000"`
	Cache         bool   `envconfig:"VISIOSSON_FACT_CACHE" default:"true"`
}

// UIConfig holds interaction tuning and desktop integration.
type UIConfig struct {
	ReadyDelayMs int  `envconfig:"VISIOSSON_READY_DELAY_MS" default:"400"`
	Tray         bool `envconfig:"VISIOSSON_TRAY" default:"false"`
}

// ReadyDelay returns the configured cosmetic ready delay as a duration.
func (c UIConfig) ReadyDelay() time.Duration {
	return time.Duration(c.ReadyDelayMs) * time.Millisecond
}

// Load loads configuration from VISIOSSON_-prefixed environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
