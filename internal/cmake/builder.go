package cmake

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/calder-lab/cbt/internal/config"
)

// CMake generator names for the supported IDE project switches
const (
	EclipseGenerator = "Eclipse CDT4 - Unix Makefiles"
	XcodeGenerator   = "Xcode"
)

// Commander interface for testing
type Commander interface {
	Run() error
}

// CommandBuilder composes and runs the cmake configure invocation
type CommandBuilder struct {
	execCommand func(dir, name string, args ...string) Commander
}

// NewCommandBuilder creates a new command builder
func NewCommandBuilder() *CommandBuilder {
	return &CommandBuilder{
		execCommand: func(dir, name string, args ...string) Commander {
			cmd := exec.Command(name, args...)
			cmd.Dir = dir
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			return cmd
		},
	}
}

// BuildCommandArgs builds the cmake argument list. The cache file, build
// type and install prefix appear exactly once and in that order; optional
// tokens follow, with the source directory as the final positional argument.
func (cb *CommandBuilder) BuildCommandArgs(cfg *config.Config, cacheFile, installPath, sourceDir string) ([]string, error) {
	if cfg.Eclipse && cfg.Xcode {
		return nil, fmt.Errorf("--eclipse and --xcode are mutually exclusive")
	}

	var cmdArgs []string
	cmdArgs = append(cmdArgs, "-C", cacheFile)
	cmdArgs = append(cmdArgs, "-DCMAKE_BUILD_TYPE="+cfg.BuildType)
	cmdArgs = append(cmdArgs, "-DCMAKE_INSTALL_PREFIX="+installPath)

	if cfg.ExportCompilerCommands {
		cmdArgs = append(cmdArgs, "-DCMAKE_EXPORT_COMPILE_COMMANDS=on")
	}

	if cfg.Eclipse {
		cmdArgs = append(cmdArgs, "-G", EclipseGenerator)
	}

	if cfg.Xcode {
		cmdArgs = append(cmdArgs, "-G", XcodeGenerator)
	}

	if cfg.CMakeOption != "" {
		cmdArgs = append(cmdArgs, "-D"+cfg.CMakeOption)
	}

	cmdArgs = append(cmdArgs, sourceDir)

	return cmdArgs, nil
}

// ExecuteCommand runs cmake with the build directory as its working
// directory and returns its exit status unchanged. cmake writes its cache
// into the directory it runs in, which is why the directory is set on the
// subprocess rather than on this process.
func (cb *CommandBuilder) ExecuteCommand(cmakePath string, cmdArgs []string, buildDir string) error {
	fmt.Printf("Executing cmake line: %s %s\n", cmakePath, strings.Join(cmdArgs, " "))
	fmt.Println()

	return cb.execCommand(buildDir, cmakePath, cmdArgs...).Run()
}

// PrintConfigureInfo prints the resolved paths and, when verbose, the
// environment table, before cmake runs
func (cb *CommandBuilder) PrintConfigureInfo(cfg *config.Config, cacheFile, buildPath, installPath string) {
	fmt.Printf("Cache file: %s\nBuild path: %s\nInstall path: %s\n", cacheFile, buildPath, installPath)

	if cfg.Verbose {
		env := os.Environ()
		sort.Strings(env)

		fmt.Println("Environment:")
		fmt.Println("------------")
		for _, e := range env {
			fmt.Println(e)
		}
		fmt.Println("------------")
	}
}
