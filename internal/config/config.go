// Package config loads the server configuration from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given. A missing default file is not an error.
const DefaultPath = "tickertape.yaml"

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Provider ProviderConfig `yaml:"provider"`
	Log      LogConfig      `yaml:"log"`
	Journal  JournalConfig  `yaml:"journal"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type ServerConfig struct {
	Name      string `yaml:"name"`
	Transport string `yaml:"transport"` // stdio or sse
	Port      int    `yaml:"port"`
}

type ProviderConfig struct {
	Kind      string        `yaml:"kind"` // yahoo or fixture
	Fixture   string        `yaml:"fixture"`
	Query1URL string        `yaml:"query1_url"`
	Query2URL string        `yaml:"query2_url"`
	CookieURL string        `yaml:"cookie_url"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"` // 0 = no timeout
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// JournalConfig enables the Redis invocation journal when Addr is set.
type JournalConfig struct {
	Addr     string `yaml:"redis_addr"`
	Password string `yaml:"redis_password"`
	DB       int    `yaml:"redis_db"`
	Stream   string `yaml:"stream"`
	MaxLen   int64  `yaml:"max_len"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the configuration used when nothing is configured.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Name:      "tickertape",
			Transport: "stdio",
			Port:      8080,
		},
		Provider: ProviderConfig{
			Kind: "yahoo",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Journal: JournalConfig{
			Stream: "tickertape:invocations",
			MaxLen: 10000,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load reads path over the defaults. If path is the default path and does not
// exist, the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultPath {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks enumerated fields and required combinations.
func (c Config) Validate() error {
	switch c.Server.Transport {
	case "stdio", "sse":
	default:
		return fmt.Errorf("server.transport: unknown transport %q (supported: stdio, sse)", c.Server.Transport)
	}
	if c.Server.Transport == "sse" && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		return fmt.Errorf("server.port: %d out of range", c.Server.Port)
	}
	switch c.Provider.Kind {
	case "yahoo":
	case "fixture":
		if c.Provider.Fixture == "" {
			return errors.New("provider.fixture: required when provider.kind is fixture")
		}
	default:
		return fmt.Errorf("provider.kind: unknown provider %q (supported: yahoo, fixture)", c.Provider.Kind)
	}
	if c.Provider.Timeout < 0 {
		return errors.New("provider.timeout: must not be negative")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q (supported: text, json)", c.Log.Format)
	}
	return nil
}
