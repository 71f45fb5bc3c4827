package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	cfg := DefaultConfig()

	assert.Equal(t, "", cfg.Dataset)
	assert.Equal(t, filepath.Join("/home/tester", ".docketflow", "docketflow.db"), cfg.DB)
	assert.Equal(t, 0.0, cfg.HourlyRate)
	assert.True(t, cfg.Watch)
	assert.False(t, cfg.Strict)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestLoad_DefaultDirFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".docketflow")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	writeConfig(t, dir, "hourly_rate: 410\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 410.0, cfg.HourlyRate)
}

func TestLoad_File(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, t.TempDir(), `
dataset: /data/employment.yaml
db: ":memory:"
hourly_rate: 350
strict: true
watch: false
log_level: debug
log_format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/employment.yaml", cfg.Dataset)
	assert.Equal(t, ":memory:", cfg.DB)
	assert.Equal(t, 350.0, cfg.HourlyRate)
	assert.True(t, cfg.Strict)
	assert.False(t, cfg.Watch)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, t.TempDir(), "hourly_rate: 350\nstrict: false\n")
	t.Setenv("DOCKETFLOW_HOURLY_RATE", "275")
	t.Setenv("DOCKETFLOW_STRICT", "true")
	t.Setenv("DOCKETFLOW_DATASET", "custom.json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 275.0, cfg.HourlyRate)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "custom.json", cfg.Dataset)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.Empty(t, cfg.Validate())

	cfg.HourlyRate = -5
	cfg.LogLevel = "loud"
	cfg.LogFormat = "xml"
	cfg.DB = ""
	warnings := cfg.Validate()
	require.Len(t, warnings, 4)
	assert.Contains(t, warnings[0], "hourly_rate")
	assert.Contains(t, warnings[1], "log_level")
	assert.Contains(t, warnings[2], "log_format")
	assert.Contains(t, warnings[3], "db is empty")
	assert.Equal(t, 0.0, cfg.EffectiveRate())
}

func TestNewLogger(t *testing.T) {
	t.Run("json respects level", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.LogFormat = "json"
		cfg.LogLevel = "warn"

		var buf bytes.Buffer
		logger := cfg.NewLogger(&buf)
		logger.Info("dropped")
		logger.Warn("kept", "node", 7)

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "kept", rec["msg"])
		assert.Equal(t, float64(7), rec["node"])
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.LogLevel = "loud"

		var buf bytes.Buffer
		cfg.NewLogger(&buf).Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})
}
