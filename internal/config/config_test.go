package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/majidyz63/ai-extractor/internal/errors"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, Validate(cfg))
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
	assert.False(t, cfg.Database.Enabled())
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := NewLoader().LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfigFileUsedWithoutFile(t *testing.T) {
	loader := NewLoader()
	_, err := loader.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, loader.ConfigFileUsed())
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
server:
  port: 9100
  read_timeout: "5s"
upstream:
  base_url: "http://localhost:4000/v1"
  timeout: "12s"
prompts:
  default_type: "contact"
logging:
  level: "debug"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	loader := NewLoader()
	cfg, err := loader.LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "config.yaml"), loader.ConfigFileUsed())
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "http://localhost:4000/v1", cfg.Upstream.BaseURL)
	assert.Equal(t, 12*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, "contact", cfg.Prompts.DefaultType)
	assert.Equal(t, "en-US", cfg.Prompts.DefaultLang)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfigEnvironmentAliases(t *testing.T) {
	t.Setenv("PORT", "9200")
	t.Setenv("OPENROUTER_API_KEY", "sk-or-test")
	t.Setenv("MODELS_FILE", "/data/models.json")
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := NewLoader().LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 9200, cfg.Server.Port)
	assert.Equal(t, "sk-or-test", cfg.Upstream.APIKey)
	assert.Equal(t, "/data/models.json", cfg.Registry.ModelsFile)
	assert.Equal(t, "mongodb://db:27017", cfg.Database.URI)
	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadConfigPrefixedEnvironmentWins(t *testing.T) {
	t.Setenv("PORT", "9200")
	t.Setenv("RELAY_SERVER_PORT", "9300")
	t.Setenv("RELAY_UPSTREAM_TIMEOUT", "45s")
	t.Setenv("RELAY_SERVER_ENABLE_PPROF", "true")

	cfg, err := NewLoader().LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 9300, cfg.Server.Port)
	assert.Equal(t, 45*time.Second, cfg.Upstream.Timeout)
	assert.True(t, cfg.Server.EnablePprof)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("PORT", "70000")
	t.Setenv("LOG_FORMAT", "xml")

	_, err := NewLoader().LoadConfig(t.TempDir())
	require.Error(t, err)

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierrors.ErrorTypeConfiguration, apiErr.Type)
	assert.Contains(t, apiErr.Message, "Server.Port")
	assert.Contains(t, apiErr.Message, "Logging.Format")
}

func TestLoadConfigMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0o644))

	_, err := NewLoader().LoadConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestValidateReportsEveryField(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Upstream.BaseURL = "not a url"
	cfg.Registry.ModelsFile = ""

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'Upstream.BaseURL' must be a valid URL")
	assert.Contains(t, err.Error(), "field 'Registry.ModelsFile' is required")
}

func TestConfigExampleParses(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(GetConfigExample()), 0o644))

	cfg, err := NewLoader().LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
