// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. JIRASOAP_ENDPOINT_URL.
const EnvPrefix = "JIRASOAP_"

// Config is the root configuration structure.
type Config struct {
	Endpoint EndpointConfig `yaml:"endpoint" toml:"endpoint" envPrefix:"ENDPOINT_"`
	Auth     AuthConfig     `yaml:"auth" toml:"auth" envPrefix:"AUTH_"`
	Session  SessionConfig  `yaml:"session" toml:"session" envPrefix:"SESSION_"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging" envPrefix:"LOG_"`
	Metrics  MetricsConfig  `yaml:"metrics" toml:"metrics" envPrefix:"METRICS_"`
	Output   OutputConfig   `yaml:"output" toml:"output" envPrefix:"OUTPUT_"`
}

// EndpointConfig locates the remote service.
type EndpointConfig struct {
	URL       string            `yaml:"url" toml:"url" env:"URL"`
	Path      string            `yaml:"path" toml:"path" env:"PATH"`
	Namespace string            `yaml:"namespace" toml:"namespace" env:"NAMESPACE"`
	Timeout   time.Duration     `yaml:"timeout" toml:"timeout" env:"TIMEOUT"`
	Headers   map[string]string `yaml:"headers,omitempty" toml:"headers,omitempty" env:"HEADERS"`
}

// AuthConfig holds credentials for non-interactive login.
type AuthConfig struct {
	Username string `yaml:"username" toml:"username" env:"USERNAME"`
	Password string `yaml:"password,omitempty" toml:"password,omitempty" env:"PASSWORD"`
}

// SessionConfig configures where login tokens are kept between runs.
// Store is "memory" (not kept), or "sqlite".
type SessionConfig struct {
	Store  string        `yaml:"store" toml:"store" env:"STORE"`
	DSN    string        `yaml:"dsn" toml:"dsn" env:"DSN"`
	MaxAge time.Duration `yaml:"max_age" toml:"max_age" env:"MAX_AGE"` // 0 never expires locally
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level" env:"LEVEL"`    // "debug", "info", "warn", "error"
	Format string `yaml:"format" toml:"format" env:"FORMAT"` // "json" or "console"
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled" env:"ENABLED"`
	Addr    string `yaml:"addr" toml:"addr" env:"ADDR"`
	Path    string `yaml:"path" toml:"path" env:"PATH"`
}

// OutputConfig configures how command results are printed.
type OutputConfig struct {
	Format string `yaml:"format" toml:"format" env:"FORMAT"` // "table", "json" or "yaml"
}

// Load reads configuration from a YAML or TOML file, chosen by extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := decode(path, data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return finish(&cfg)
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	default:
		return yaml.Unmarshal(data, cfg)
	}
}

// LoadFromEnv creates configuration entirely from environment variables.
//
// Environment variables:
//
//	JIRASOAP_ENDPOINT_URL      - Server base URL (required)
//	JIRASOAP_ENDPOINT_PATH     - SOAP service path (default: /rpc/soap/jirasoapservice-v2)
//	JIRASOAP_ENDPOINT_TIMEOUT  - Per-call timeout (default: 30s)
//	JIRASOAP_ENDPOINT_HEADERS  - Extra headers, "Name:value,Other:value"
//	JIRASOAP_AUTH_USERNAME     - Login name
//	JIRASOAP_AUTH_PASSWORD     - Password
//	JIRASOAP_SESSION_STORE     - memory or sqlite (default: sqlite)
//	JIRASOAP_SESSION_DSN       - Session database path
//	JIRASOAP_LOG_LEVEL         - Log level: debug, info, warn, error (default: warn)
//	JIRASOAP_LOG_FORMAT        - Log format: json or console (default: console)
//	JIRASOAP_METRICS_ENABLED   - Expose call metrics (default: false)
//	JIRASOAP_OUTPUT_FORMAT     - table, json or yaml (default: table)
func LoadFromEnv() (*Config, error) {
	return finish(&Config{})
}

func finish(cfg *Config) (*Config, error) {
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	setDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// LoadWithFallback tries to load from file, falls back to environment variables.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	if HasEnvConfig() {
		return LoadFromEnv()
	}

	return nil, fmt.Errorf("no configuration found: provide config file or set %sENDPOINT_URL", EnvPrefix)
}

// HasEnvConfig returns true if essential environment variables are set.
func HasEnvConfig() bool {
	return os.Getenv(EnvPrefix+"ENDPOINT_URL") != ""
}

// applyEnvOverrides applies JIRASOAP_* environment variables to the config.
// Environment variables always override file-based configuration.
func applyEnvOverrides(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("env overrides: %w", err)
	}
	return nil
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	return filepath.Join(userDir(), "config.yaml")
}

// DefaultSessionDSN returns the per-user session database location.
func DefaultSessionDSN() string {
	return filepath.Join(userDir(), "sessions.db")
}

func userDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".jirasoap"
	}
	return filepath.Join(dir, "jirasoap")
}

func setDefaults(cfg *Config) {
	if cfg.Endpoint.Path == "" {
		cfg.Endpoint.Path = "/rpc/soap/jirasoapservice-v2"
	}
	if cfg.Endpoint.Namespace == "" {
		cfg.Endpoint.Namespace = "http://soap.rpc.jira.atlassian.com"
	}
	if cfg.Endpoint.Timeout == 0 {
		cfg.Endpoint.Timeout = 30 * time.Second
	}

	if cfg.Session.Store == "" {
		cfg.Session.Store = "sqlite"
	}
	if cfg.Session.DSN == "" {
		cfg.Session.DSN = DefaultSessionDSN()
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "warn"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}

	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = "127.0.0.1:9464"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	if cfg.Output.Format == "" {
		cfg.Output.Format = "table"
	}
}

func validate(cfg *Config) error {
	if cfg.Endpoint.URL == "" {
		return fmt.Errorf("endpoint.url is required")
	}
	if !strings.HasPrefix(cfg.Endpoint.URL, "http://") && !strings.HasPrefix(cfg.Endpoint.URL, "https://") {
		return fmt.Errorf("endpoint.url must start with http:// or https://, got %q", cfg.Endpoint.URL)
	}
	if cfg.Endpoint.Timeout < 0 {
		return fmt.Errorf("endpoint.timeout must not be negative")
	}

	validStores := map[string]bool{"memory": true, "sqlite": true}
	if !validStores[cfg.Session.Store] {
		return fmt.Errorf("session.store must be 'memory' or 'sqlite', got %q", cfg.Session.Store)
	}

	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true, "disabled": true}
	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		return fmt.Errorf("logging.level must be one of: trace, debug, info, warn, error, disabled")
	}

	validLogFormats := map[string]bool{"json": true, "console": true}
	if !validLogFormats[cfg.Logging.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console', got %q", cfg.Logging.Format)
	}

	validOutputs := map[string]bool{"table": true, "json": true, "yaml": true}
	if !validOutputs[cfg.Output.Format] {
		return fmt.Errorf("output.format must be one of: table, json, yaml")
	}

	return nil
}
