// Package config loads qtwizard settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvLogLevel = "QTWIZARD_LOG_LEVEL"
	EnvHTTPAddr = "QTWIZARD_HTTP_ADDR"
)

// Config is the full application configuration.
type Config struct {
	LogLevel       string         `yaml:"log_level"`
	LogJSON        bool           `yaml:"log_json"`
	AnimationDelay time.Duration  `yaml:"animation_delay"`
	ContentPath    string         `yaml:"content"`
	HTTP           HTTPConfig     `yaml:"http"`
	MCP            MCPConfig      `yaml:"mcp"`
	Renderer       RendererConfig `yaml:"renderer"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type MCPConfig struct {
	Transport string `yaml:"transport"`
	Addr      string `yaml:"addr"`
}

type RendererConfig struct {
	// Style is a glamour style name ("auto", "dark", "light", "notty").
	Style string `yaml:"style"`
	// Plain disables markdown rendering even on a terminal.
	Plain bool `yaml:"plain"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:       "info",
		AnimationDelay: 10 * time.Millisecond,
		HTTP:           HTTPConfig{Addr: ":8080"},
		MCP:            MCPConfig{Transport: "stdio", Addr: ":8081"},
		Renderer:       RendererConfig{Style: "auto"},
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to open config: %w", err)
		}
		defer f.Close()
		if cfg, err = Decode(f); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, cfg.Validate()
}

// Decode parses YAML from r over the defaults.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvHTTPAddr); ok && v != "" {
		c.HTTP.Addr = v
	}
}

// Validate rejects settings no component can honor.
func (c Config) Validate() error {
	if c.AnimationDelay < 0 {
		return fmt.Errorf("animation_delay must not be negative, got %s", c.AnimationDelay)
	}
	switch c.MCP.Transport {
	case "stdio", "sse":
	default:
		return fmt.Errorf("unsupported mcp transport %q", c.MCP.Transport)
	}
	return nil
}
