// Package model implements the boundary to the hosted text-generation
// capability. One Client serves all agents; providers differ only in the
// wire protocol behind Generate.
package model

import (
	"context"
	"fmt"
	"time"
)

// Client is the single-operation model boundary. Generate sends one prompt
// and returns the model's text, or an error when the external call fails
// (network, auth, quota, empty response). Callers are expected to absorb the
// error; Generate itself never retries.
type Client interface {
	// Generate runs one completion for the given prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// Name returns the provider name for logging and metrics.
	Name() string

	// Model returns the model identifier being used.
	Model() string
}

// Config contains common configuration for providers.
type Config struct {
	// Provider selects the backend: "gemini", "anthropic" or "mock".
	Provider string

	// Model is the model identifier.
	Model string

	// MaxTokens caps generation length for providers that require it.
	MaxTokens int

	// Timeout bounds each Generate call. Zero means unbounded.
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "gemini",
		Model:     "gemini-2.0-flash",
		MaxTokens: 1024,
		Timeout:   60 * time.Second,
	}
}

// New creates a Client for the configured provider. Credentials are read
// from the environment by the provider constructors.
func New(ctx context.Context, cfg Config) (Client, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultConfig().Model
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultConfig().MaxTokens
	}

	switch cfg.Provider {
	case "gemini":
		return NewGeminiClient(ctx, cfg)
	case "anthropic":
		return NewAnthropicClient(cfg)
	case "mock":
		return NewMockClient(cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown model provider: %q", cfg.Provider)
	}
}

// callContext applies the configured timeout, if any, to a Generate call.
func callContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
