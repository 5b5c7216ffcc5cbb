package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ov "github.com/Gobd/objectvalidation"
	"github.com/Gobd/objectvalidation/internal/config"
	"github.com/Gobd/objectvalidation/internal/logger"
)

func missingEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), ".env")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.False(t, cfg.FailFast)
	assert.Empty(t, cfg.ForceRequired)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "schemas", cfg.SchemaDir)
	assert.Equal(t, ov.Options{}, cfg.Options())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("OBJECTVALIDATE_FAIL_FAST", "true")
	t.Setenv("OBJECTVALIDATE_FORCE_REQUIRED", "false")
	t.Setenv("OBJECTVALIDATE_LOG_FORMAT", "json")
	t.Setenv("OBJECTVALIDATE_ADDR", "127.0.0.1:9000")

	cfg, err := config.Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	opts := cfg.Options()
	assert.True(t, opts.FailFast)
	require.NotNil(t, opts.ForceRequired)
	assert.False(t, *opts.ForceRequired)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("OBJECTVALIDATE_SCHEMA_DIR=/etc/schemas\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("OBJECTVALIDATE_SCHEMA_DIR") })

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/etc/schemas", cfg.SchemaDir)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "force required", key: "OBJECTVALIDATE_FORCE_REQUIRED", value: "sometimes"},
		{name: "log level", key: "OBJECTVALIDATE_LOG_LEVEL", value: "loud"},
		{name: "log format", key: "OBJECTVALIDATE_LOG_FORMAT", value: "xml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := config.Load(missingEnvFile(t))
			require.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}

	t.Run("unparsable", func(t *testing.T) {
		t.Setenv("OBJECTVALIDATE_FAIL_FAST", "maybe")
		_, err := config.Load(missingEnvFile(t))
		require.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestConfig_Logger(t *testing.T) {
	cfg := config.Config{LogLevel: "warn", LogFormat: "text", Addr: ":1"}
	require.NoError(t, cfg.Validate())

	var buf bytes.Buffer
	l := cfg.Logger(logger.WithOutput(&buf))
	l.Info("dropped")
	l.Warn("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}
