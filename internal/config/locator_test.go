package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveExplicitHostConfig(t *testing.T) {
	cfg := &Config{
		HostConfig:  "/some/path/naples.cmake",
		ConfigsRoot: "/unused",
		Compiler:    "gnu",
	}

	res, err := resolve(cfg, "chaos_5_x86_64_ib")
	require.NoError(t, err)

	// explicit host-config wins even when SYS_TYPE is set
	assert.Equal(t, ExplicitHostConfig, res.Source)
	assert.Equal(t, "/some/path/naples.cmake", res.CacheFile)
	assert.Equal(t, "naples", res.PlatformInfo)
}

func TestResolveHostConfigWithoutExtension(t *testing.T) {
	cfg := &Config{HostConfig: "/some/path/naples"}

	res, err := resolve(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, "naples", res.PlatformInfo)
}

func TestResolveSystemType(t *testing.T) {
	cfg := &Config{
		ConfigsRoot: "/repo/host-configs",
		Compiler:    "intel",
	}

	res, err := resolve(cfg, "toss_3_x86_64_ib")
	require.NoError(t, err)

	assert.Equal(t, DetectedSystemType, res.Source)
	assert.Equal(t, "toss", res.PlatformInfo)
	assert.Equal(t, filepath.Join("/repo/host-configs", "toss", "intel.cmake"), res.CacheFile)
}

func TestResolveSystemTypeNoUnderscore(t *testing.T) {
	cfg := &Config{
		ConfigsRoot: "/repo/host-configs",
		Compiler:    "gnu",
	}

	res, err := resolve(cfg, "darwin")
	require.NoError(t, err)
	assert.Equal(t, "darwin", res.PlatformInfo)
}

func TestResolveHostnameFallback(t *testing.T) {
	original := hostname
	defer func() { hostname = original }()

	hostname = func() (string, error) { return "foo", nil }

	cfg := &Config{
		ConfigsRoot: "/repo/host-configs",
		Compiler:    "gnu",
	}

	res, err := resolve(cfg, "")
	require.NoError(t, err)

	assert.Equal(t, HostnameFallback, res.Source)
	assert.Equal(t, "foo", res.PlatformInfo)
	assert.Equal(t, filepath.Join("/repo/host-configs", "other", "foo.cmake"), res.CacheFile)
}

func TestLocateMissingCacheFile(t *testing.T) {
	cfg := &Config{
		HostConfig: filepath.Join(t.TempDir(), "missing.cmake"),
	}

	_, err := Locate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "could not find cmake cache file")
}

func TestLocateExistingCacheFile(t *testing.T) {
	dir := t.TempDir()
	cacheFile := filepath.Join(dir, "naples.cmake")
	require.NoError(t, os.WriteFile(cacheFile, []byte("# host config"), 0o644))

	cfg := &Config{HostConfig: cacheFile}

	res, err := Locate(cfg)
	require.NoError(t, err)
	assert.Equal(t, cacheFile, res.CacheFile)
	assert.Equal(t, "naples", res.PlatformInfo)
}
