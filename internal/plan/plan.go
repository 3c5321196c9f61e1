// Package plan computes and resets the build and install directories for a
// configure run. Directory names are a pure function of the resolved
// platform info and the user's flags, so repeated runs with identical
// inputs always target the same paths.
package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Options are the inputs to directory planning
type Options struct {
	// PlatformInfo is the resolved platform token, never empty
	PlatformInfo string

	// HostConfigUsed reports whether an explicit host-config decided the
	// platform info; the host-config already encodes the compiler choice,
	// so the directory name carries no compiler token
	HostConfigUsed bool

	Compiler  string
	BuildType string

	// Explicit overrides, used verbatim when set
	BuildPath   string
	InstallPath string

	// BaseDir anchors computed names; defaults to the working directory
	BaseDir string
}

// Plan holds the resolved build and install directories
type Plan struct {
	BuildPath   string
	InstallPath string
}

// Compute resolves the build and install directory paths without touching
// the filesystem
func Compute(opts Options) (*Plan, error) {
	buildPath, err := resolvePath(opts.BuildPath, "build", opts)
	if err != nil {
		return nil, err
	}

	installPath, err := resolvePath(opts.InstallPath, "install", opts)
	if err != nil {
		return nil, err
	}

	return &Plan{
		BuildPath:   buildPath,
		InstallPath: installPath,
	}, nil
}

func resolvePath(override, prefix string, opts Options) (string, error) {
	if override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return "", fmt.Errorf("invalid %s path: %v", prefix, err)
		}

		return abs, nil
	}

	name := DirName(prefix, opts)

	base := opts.BaseDir
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}

		base = cwd
	}

	return filepath.Join(base, name), nil
}

// DirName composes the directory name for the given prefix ("build" or
// "install"). The compiler token is omitted when an explicit host-config
// chose the platform.
func DirName(prefix string, opts Options) string {
	parts := []string{prefix, opts.PlatformInfo}

	if !opts.HostConfigUsed {
		parts = append(parts, opts.Compiler)
	}

	parts = append(parts, strings.ToLower(opts.BuildType))

	return strings.Join(parts, "-")
}

// Reset wipes both directories and recreates the build directory. The
// install directory is only removed; cmake creates it on first install.
func (p *Plan) Reset() error {
	if _, err := os.Stat(p.BuildPath); err == nil {
		fmt.Printf("Build directory %q already exists. Deleting...\n", p.BuildPath)

		if err := os.RemoveAll(p.BuildPath); err != nil {
			return fmt.Errorf("failed to delete build directory: %w", err)
		}
	}

	fmt.Printf("Creating build directory %q...\n", p.BuildPath)

	if err := os.MkdirAll(p.BuildPath, 0o755); err != nil {
		return fmt.Errorf("failed to create build directory: %w", err)
	}

	if _, err := os.Stat(p.InstallPath); err == nil {
		fmt.Printf("Install directory %q already exists. Deleting...\n", p.InstallPath)

		if err := os.RemoveAll(p.InstallPath); err != nil {
			return fmt.Errorf("failed to delete install directory: %w", err)
		}
	}

	return nil
}
