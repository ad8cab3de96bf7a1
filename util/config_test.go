package util

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPortStr(t *testing.T) {
	t.Setenv(PORT, "")
	assert.Equal(t, ":8080", GetPortStr())
	t.Setenv(PORT, "9000")
	assert.Equal(t, ":9000", GetPortStr())
}

func TestGetStrategy(t *testing.T) {
	t.Setenv(SATMETA_STRATEGY, "")
	assert.Equal(t, "sequential", GetStrategy())
	t.Setenv(SATMETA_STRATEGY, "Pool")
	assert.Equal(t, "pool", GetStrategy())
}

func TestGetWorkers(t *testing.T) {
	t.Setenv(SATMETA_WORKERS, "")
	n, err := GetWorkers()
	require.Nil(t, err)
	assert.Equal(t, runtime.NumCPU(), n)

	t.Setenv(SATMETA_WORKERS, "3")
	n, err = GetWorkers()
	require.Nil(t, err)
	assert.Equal(t, 3, n)

	t.Setenv(SATMETA_WORKERS, "0")
	_, err = GetWorkers()
	assert.NotNil(t, err)

	t.Setenv(SATMETA_WORKERS, "many")
	_, err = GetWorkers()
	assert.NotNil(t, err)
}

func TestGetCacheSize(t *testing.T) {
	t.Setenv(SATMETA_CACHE_SIZE, "")
	assert.Equal(t, defaultCacheSize, GetCacheSize())
	t.Setenv(SATMETA_CACHE_SIZE, "16")
	assert.Equal(t, 16, GetCacheSize())
	t.Setenv(SATMETA_CACHE_SIZE, "-2")
	assert.Equal(t, defaultCacheSize, GetCacheSize())
}

func TestLoadEnvFile(t *testing.T) {
	// Mock
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.Nil(t, os.WriteFile(envFile, []byte("SATMETA_ROOT=/data/from/file\nPORT=7000\n"), 0644))
	t.Setenv(SATMETA_ROOT, "")
	os.Unsetenv(SATMETA_ROOT)
	t.Setenv(PORT, "6000")

	// Tested code
	LoadEnvFile(envFile, filepath.Join(t.TempDir(), "missing.env"))

	// Asserts
	assert.Equal(t, "/data/from/file", GetDataRoot())
	assert.Equal(t, ":6000", GetPortStr(), "the environment takes precedence over the file")
}
