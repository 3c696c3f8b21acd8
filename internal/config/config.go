// Package config holds server configuration. Values come from CLI flags,
// optionally seeded from a YAML config file. Model credentials are never part
// of the config surface; providers read them from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration for the tutormesh server.
type Config struct {
	// Host is the address the API server binds to.
	Host string `koanf:"host"`

	// APIPort is the port the API server listens on.
	APIPort int `koanf:"api_port"`

	// LogLevel is the default logging level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`

	// Provider selects the model backend: "gemini", "anthropic" or "mock".
	Provider string `koanf:"provider"`

	// Model is the model identifier passed to the provider.
	Model string `koanf:"model"`

	// MaxTokens caps generation length for providers that require it.
	MaxTokens int `koanf:"max_tokens"`

	// ModelTimeout bounds every model call. Zero disables the bound.
	ModelTimeout time.Duration `koanf:"model_timeout"`

	// PromptsPath optionally points to a YAML file with prompt template
	// overrides, applied once at startup.
	PromptsPath string `koanf:"prompts_path"`

	// TracingEnabled turns on OpenTelemetry trace export.
	TracingEnabled bool `koanf:"tracing_enabled"`

	// TracingEndpoint is the OTLP gRPC endpoint for trace export.
	TracingEndpoint string `koanf:"tracing_endpoint"`

	// TracingTLSInsecure skips TLS certificate verification for the exporter.
	TracingTLSInsecure bool `koanf:"tracing_tls_insecure"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Host:         "127.0.0.1",
		APIPort:      8000,
		LogLevel:     "info",
		Provider:     "gemini",
		Model:        "gemini-2.0-flash",
		MaxTokens:    1024,
		ModelTimeout: 60 * time.Second,
	}
}

// LoadFile reads a YAML config file into a Config, starting from defaults.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Host == "" {
		return NewConfigError("Host must not be empty")
	}
	if c.APIPort < 1 || c.APIPort > 65535 {
		return NewConfigError("APIPort must be between 1 and 65535")
	}
	switch c.Provider {
	case "gemini", "anthropic", "mock":
	default:
		return NewConfigError(fmt.Sprintf("Provider must be gemini, anthropic or mock, got %q", c.Provider))
	}
	if c.Model == "" {
		return NewConfigError("Model must not be empty")
	}
	if c.MaxTokens < 1 {
		return NewConfigError("MaxTokens must be at least 1")
	}
	if c.ModelTimeout < 0 {
		return NewConfigError("ModelTimeout must not be negative")
	}
	if c.TracingEnabled && c.TracingEndpoint == "" {
		return NewConfigError("TracingEndpoint must be set when tracing is enabled")
	}
	return nil
}

// ConfigError represents a configuration error.
type ConfigError struct {
	message string
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string) *ConfigError {
	return &ConfigError{message: message}
}

// Error returns the error message.
func (e *ConfigError) Error() string {
	return e.message
}
