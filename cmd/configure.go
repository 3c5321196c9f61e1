package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/calder-lab/cbt/internal/cmake"
	"github.com/calder-lab/cbt/internal/config"
	"github.com/calder-lab/cbt/internal/plan"
)

var configureCmd = &cobra.Command{
	Use:          "configure",
	Short:        "Configure a cmake build",
	Long:         `Resolve the host-config cache file, reset the build and install directories, and run cmake.`,
	RunE:         runConfigure,
	SilenceUsage: true,
}

func runConfigure(cmd *cobra.Command, args []string) error {
	loader := config.NewLoader()
	cfg, err := loader.LoadForConfigure(cmd)
	if err != nil {
		return err
	}

	// Resolve the cache file before touching any directories, so a missing
	// host-config leaves the filesystem untouched
	res, err := config.Locate(cfg)
	if err != nil {
		return err
	}

	switch res.Source {
	case config.ExplicitHostConfig:
		fmt.Printf("Using user specified host config file: %q.\n", res.CacheFile)
	case config.DetectedSystemType:
		fmt.Printf("Detected SYS_TYPE %q. Using host config file: %q.\n", os.Getenv("SYS_TYPE"), res.CacheFile)
	case config.HostnameFallback:
		fmt.Printf("No SYS_TYPE in environment, using hostname config file: %q.\n", res.CacheFile)
	}

	p, err := plan.Compute(plan.Options{
		PlatformInfo:   res.PlatformInfo,
		HostConfigUsed: res.Source == config.ExplicitHostConfig,
		Compiler:       cfg.Compiler,
		BuildType:      cfg.BuildType,
		BuildPath:      cfg.BuildPath,
		InstallPath:    cfg.InstallPath,
	})
	if err != nil {
		return err
	}

	if err := p.Reset(); err != nil {
		return err
	}

	cb := cmake.NewCommandBuilder()
	cb.PrintConfigureInfo(cfg, res.CacheFile, p.BuildPath, p.InstallPath)

	cmdArgs, err := cb.BuildCommandArgs(cfg, res.CacheFile, p.InstallPath, sourceDir())
	if err != nil {
		return err
	}

	return cb.ExecuteCommand(cfg.CMakePath, cmdArgs, p.BuildPath)
}

// sourceDir locates the top-level source tree relative to the executable,
// matching the repository layout the tool ships in (bin/ next to src/)
func sourceDir() string {
	exe, err := os.Executable()
	if err != nil {
		return filepath.Join("..", "src")
	}

	return filepath.Join(filepath.Dir(exe), "..", "src")
}
