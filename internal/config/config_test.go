package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty host",
			mutate:  func(c *Config) { c.Host = "" },
			wantErr: "Host",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.APIPort = 70000 },
			wantErr: "APIPort",
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Provider = "llamafarm" },
			wantErr: "Provider",
		},
		{
			name:    "empty model",
			mutate:  func(c *Config) { c.Model = "" },
			wantErr: "Model",
		},
		{
			name:    "zero max tokens",
			mutate:  func(c *Config) { c.MaxTokens = 0 },
			wantErr: "MaxTokens",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.ModelTimeout = -time.Second },
			wantErr: "ModelTimeout",
		},
		{
			name:    "tracing enabled without endpoint",
			mutate:  func(c *Config) { c.TracingEnabled = true },
			wantErr: "TracingEndpoint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tutormesh.yaml")
	content := `
host: 0.0.0.0
api_port: 9090
provider: anthropic
model: claude-3-5-haiku-20241022
model_timeout: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 9090, cfg.APIPort)
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "claude-3-5-haiku-20241022", cfg.Model)
	assert.Equal(t, 30*time.Second, cfg.ModelTimeout)
	// Unset keys keep their defaults.
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1024, cfg.MaxTokens)
	require.NoError(t, cfg.Validate())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
