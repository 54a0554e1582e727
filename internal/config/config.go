package config

import (
	"time"

	"github.com/renolab/renolab/internal/estimate"
	"github.com/renolab/renolab/internal/ratelimit"
)

// Config represents the complete application configuration. Values are
// layered: built-in defaults, then the optional YAML file, then RENOLAB_*
// environment variables (including those loaded from .env), then runtime
// overrides.
type Config struct {
	Server   ServerConfig       `mapstructure:"server" yaml:"server"`
	Store    StoreConfig        `mapstructure:"store" yaml:"store"`
	Logging  LoggingConfig      `mapstructure:"logging" yaml:"logging"`
	Metrics  MetricsConfig      `mapstructure:"metrics" yaml:"metrics"`
	Health   HealthConfig       `mapstructure:"health" yaml:"health"`
	Estimate estimate.Constants `mapstructure:"estimate" yaml:"estimate"`

	// RateLimits holds one policy per protected endpoint group.
	RateLimits map[string]ratelimit.Config `mapstructure:"rate_limits" yaml:"rate_limits"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	Port            int           `mapstructure:"port" yaml:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	// MaxBodyBytes caps JSON request bodies.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`

	// AdminToken enables the signal endpoint when set.
	AdminToken string `mapstructure:"admin_token" yaml:"-"`
}

// StoreConfig contains database configuration for libsql/Turso
type StoreConfig struct {
	Driver    string `mapstructure:"driver" yaml:"driver"`
	Path      string `mapstructure:"path" yaml:"path"`
	URL       string `mapstructure:"url" yaml:"url"`
	AuthToken string `mapstructure:"auth_token" yaml:"-"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	// Level controls the minimum log level
	// Valid values: trace, debug, info, warn, error
	Level string `mapstructure:"level" yaml:"level"`

	// Profile selects the logging complexity level
	// Valid values: SIMPLE, STRUCTURED, ENTERPRISE
	Profile string `mapstructure:"profile" yaml:"profile"`
}

// MetricsConfig contains Prometheus metrics configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Port is the dedicated metrics endpoint port (Prometheus format)
	Port int `mapstructure:"port" yaml:"port"`
}

// HealthConfig contains health check configuration
type HealthConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// RateLimit returns the named policy with its suffix set, and whether it exists.
func (c *Config) RateLimit(name string) (ratelimit.Config, bool) {
	if c == nil {
		return ratelimit.Config{}, false
	}
	policy, ok := c.RateLimits[name]
	if !ok {
		return ratelimit.Config{}, false
	}
	policy.IdentifierSuffix = name
	return policy, true
}
