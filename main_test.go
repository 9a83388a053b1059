package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrapReadsLogLevelFromEnvFile(t *testing.T) {
	// Registers a restore of the original value, then clears it so the file decides.
	t.Setenv("LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LOG_LEVEL=debug\n"), 0o600))

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := bootstrap(envFile)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestBootstrapWithoutEnvFile(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := bootstrap(filepath.Join(t.TempDir(), "missing.env"))
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))
}
