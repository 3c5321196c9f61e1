package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SourceKind identifies which input decided the platform info
type SourceKind int

const (
	// ExplicitHostConfig means the user supplied --hostconfig
	ExplicitHostConfig SourceKind = iota
	// DetectedSystemType means the SYS_TYPE environment variable was set
	DetectedSystemType
	// HostnameFallback means neither was available
	HostnameFallback
)

// Resolution is the outcome of locating the cmake cache file. PlatformInfo
// is derived from exactly one source per run and is never empty.
type Resolution struct {
	CacheFile    string
	PlatformInfo string
	Source       SourceKind
}

// hostname is swappable for tests
var hostname = os.Hostname

// Locate resolves the cmake cache file and platform info, first match wins:
// an explicit host-config, then SYS_TYPE, then the machine hostname.
// The resolved cache file must exist on disk.
func Locate(cfg *Config) (*Resolution, error) {
	res, err := resolve(cfg, os.Getenv("SYS_TYPE"))
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(res.CacheFile); err != nil {
		return nil, fmt.Errorf("could not find cmake cache file %q", res.CacheFile)
	}

	return res, nil
}

func resolve(cfg *Config, sysType string) (*Resolution, error) {
	if cfg.HostConfig != "" {
		cacheFile, err := filepath.Abs(cfg.HostConfig)
		if err != nil {
			return nil, fmt.Errorf("invalid host config path: %v", err)
		}

		info := filepath.Base(cacheFile)
		info = strings.TrimSuffix(info, ".cmake")

		return &Resolution{
			CacheFile:    cacheFile,
			PlatformInfo: info,
			Source:       ExplicitHostConfig,
		}, nil
	}

	if sysType != "" {
		info, _, _ := strings.Cut(sysType, "_")

		return &Resolution{
			CacheFile:    filepath.Join(cfg.ConfigsRoot, info, cfg.Compiler+".cmake"),
			PlatformInfo: info,
			Source:       DetectedSystemType,
		}, nil
	}

	host, err := hostname()
	if err != nil {
		return nil, fmt.Errorf("failed to determine hostname: %w", err)
	}

	return &Resolution{
		CacheFile:    filepath.Join(cfg.ConfigsRoot, "other", host+".cmake"),
		PlatformInfo: host,
		Source:       HostnameFallback,
	}, nil
}
