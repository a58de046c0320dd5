package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("RELAY_TEST_VAR=test_value\nRELAY_TEST_NUMBER=42\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("RELAY_TEST_VAR")
		os.Unsetenv("RELAY_TEST_NUMBER")
	})

	require.NoError(t, LoadEnvFile(envFile))

	assert.Equal(t, "test_value", os.Getenv("RELAY_TEST_VAR"))
	assert.Equal(t, "42", os.Getenv("RELAY_TEST_NUMBER"))
}

func TestLoadEnvFileKeepsExistingValues(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("RELAY_TEST_EXISTING=from_file\n"), 0o644))
	t.Setenv("RELAY_TEST_EXISTING", "from_process")

	require.NoError(t, LoadEnvFile(envFile))

	assert.Equal(t, "from_process", os.Getenv("RELAY_TEST_EXISTING"))
}

func TestLoadEnvFileNotExists(t *testing.T) {
	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
}

func TestLoadEnvFileMalformed(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("RELAY_BROKEN='unterminated\n"), 0o644))

	assert.Error(t, LoadEnvFile(envFile))
}
