package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Default configuration values
const (
	DefaultCompiler  = "gnu"
	DefaultBuildType = "Debug"
	DefaultCMakePath = "cmake"
	DefaultVerbose   = false
)

// BuildTypes lists the build types the underlying tool accepts
var BuildTypes = []string{"Release", "Debug", "RelWithDebInfo", "MinSizeRel"}

// Holds the configuration options for cbt
type Config struct {
	// Compiler family the host-config is selected for (e.g. gnu, clang, intel)
	Compiler string

	// CMake build type (Release, Debug, RelWithDebInfo, MinSizeRel)
	BuildType string

	// Explicit build/install directory overrides
	BuildPath   string
	InstallPath string

	// Explicit host-config file to seed the cmake cache
	HostConfig string

	// IDE project generator switches
	Eclipse bool
	Xcode   bool

	// Generate compile_commands.json in the build directory
	ExportCompilerCommands bool

	// One raw name=value cmake definition; the -D is prepended automatically
	CMakeOption string

	// Root directory holding the host-config files
	ConfigsRoot string

	// Path to the cmake executable
	CMakePath string

	// Enable verbose output
	Verbose bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Compiler:               viper.GetString("compiler"),
		BuildType:              viper.GetString("buildtype"),
		BuildPath:              viper.GetString("buildpath"),
		InstallPath:            viper.GetString("installpath"),
		HostConfig:             viper.GetString("hostconfig"),
		Eclipse:                viper.GetBool("eclipse"),
		Xcode:                  viper.GetBool("xcode"),
		ExportCompilerCommands: viper.GetBool("exportcompilercommands"),
		CMakeOption:            viper.GetString("cmakeoption"),
		ConfigsRoot:            viper.GetString("configs_root"),
		CMakePath:              viper.GetString("cmake_path"),
		Verbose:                viper.GetBool("verbose"),
	}

	// Apply defaults if not set
	if cfg.Compiler == "" {
		cfg.Compiler = DefaultCompiler
	}

	if cfg.BuildType == "" {
		cfg.BuildType = DefaultBuildType
	}

	if cfg.CMakePath == "" {
		cfg.CMakePath = DefaultCMakePath
	}

	if cfg.ConfigsRoot == "" {
		cfg.ConfigsRoot = defaultConfigsRoot()
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if !isValidBuildType(c.BuildType) {
		return fmt.Errorf("invalid build type %q: must be one of %v", c.BuildType, BuildTypes)
	}

	if c.Eclipse && c.Xcode {
		return fmt.Errorf("--eclipse and --xcode are mutually exclusive")
	}

	if c.CMakeOption != "" && !containsAssignment(c.CMakeOption) {
		return fmt.Errorf("invalid cmake option %q: expected name=value", c.CMakeOption)
	}

	if c.HostConfig != "" {
		abs, err := filepath.Abs(c.HostConfig)
		if err != nil {
			return fmt.Errorf("invalid host config path: %v", err)
		}

		c.HostConfig = abs
	}

	if abs, err := filepath.Abs(c.ConfigsRoot); err == nil {
		c.ConfigsRoot = abs
	}

	return nil
}

func isValidBuildType(bt string) bool {
	for _, t := range BuildTypes {
		if bt == t {
			return true
		}
	}

	return false
}

func containsAssignment(opt string) bool {
	for i, r := range opt {
		if r == '=' && i > 0 {
			return true
		}
	}

	return false
}

// defaultConfigsRoot locates host-configs/ next to the directory holding the
// cbt executable, matching the repository layout the tool ships in
func defaultConfigsRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return "host-configs"
	}

	return filepath.Join(filepath.Dir(exe), "..", "host-configs")
}
