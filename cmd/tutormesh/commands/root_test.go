package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevelFlags(t *testing.T) {
	level, pkgs, err := parseLogLevelFlags([]string{"debug"})
	require.NoError(t, err)
	assert.Equal(t, "debug", level)
	assert.Empty(t, pkgs)

	level, pkgs, err = parseLogLevelFlags([]string{"default=warn", "agent=debug"})
	require.NoError(t, err)
	assert.Equal(t, "warn", level)
	assert.Equal(t, "debug", pkgs["agent"])

	_, _, err = parseLogLevelFlags([]string{"verbose"})
	require.Error(t, err)

	_, _, err = parseLogLevelFlags([]string{"agent=loud"})
	require.Error(t, err)
}

func TestParseLogLevelFlagsEnvOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL_API", "error")

	level, pkgs, err := parseLogLevelFlags([]string{"info"})
	require.NoError(t, err)
	assert.Equal(t, "info", level)
	assert.Equal(t, "error", pkgs["api"])

	// CLI flags win over environment variables.
	_, pkgs, err = parseLogLevelFlags([]string{"api=debug"})
	require.NoError(t, err)
	assert.Equal(t, "debug", pkgs["api"])
}
