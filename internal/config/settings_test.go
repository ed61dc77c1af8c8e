package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	t.Setenv("LTCSIM_STORE", "")
	os.Unsetenv("LTCSIM_STORE")

	s, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, StoreFile, s.Store)
	assert.Equal(t, ":8080", s.HTTPAddr)
	assert.NotEmpty(t, s.StorePath)
}

func TestLoadSettings_DotEnv(t *testing.T) {
	for _, k := range []string{"LTCSIM_STORE", "LTCSIM_REDIS_DB", "LTCSIM_HTTP_ADDR"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LTCSIM_STORE=redis\nLTCSIM_REDIS_DB=2\nLTCSIM_HTTP_ADDR=:9090\n"), 0600))

	s, err := LoadSettings(envFile)
	require.NoError(t, err)

	assert.Equal(t, StoreRedis, s.Store)
	assert.Equal(t, 2, s.RedisDB)
	assert.Equal(t, ":9090", s.HTTPAddr)
}

func TestLoadSettings_Invalid(t *testing.T) {
	t.Setenv("LTCSIM_STORE", "mongo")
	_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown LTCSIM_STORE")

	t.Setenv("LTCSIM_STORE", "file")
	t.Setenv("LTCSIM_REDIS_DB", "two")
	_, err = LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
