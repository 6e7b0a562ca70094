package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 16, cfg.SendBuffer)
	assert.Empty(t, cfg.LogFile)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("SEND_BUFFER", "4")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 4, cfg.SendBuffer)
	assert.Equal(t, "debug", cfg.LogLevel)
}
