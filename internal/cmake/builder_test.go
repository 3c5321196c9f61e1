package cmake

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calder-lab/cbt/internal/config"
)

// mockCommander implements Commander interface for testing
type mockCommander struct {
	runFunc func() error
}

func (m *mockCommander) Run() error {
	return m.runFunc()
}

func TestCommandBuilder_BuildCommandArgs(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.Config
		wantArgs    []string
		wantErr     bool
		errContains string
	}{
		{
			name: "required tokens only",
			config: &config.Config{
				BuildType: "Debug",
			},
			wantArgs: []string{
				"-C", "/repo/host-configs/other/foo.cmake",
				"-DCMAKE_BUILD_TYPE=Debug",
				"-DCMAKE_INSTALL_PREFIX=/work/install-foo-gnu-debug",
				"/repo/src",
			},
		},
		{
			name: "compile commands database",
			config: &config.Config{
				BuildType:              "Release",
				ExportCompilerCommands: true,
			},
			wantArgs: []string{
				"-C", "/repo/host-configs/other/foo.cmake",
				"-DCMAKE_BUILD_TYPE=Release",
				"-DCMAKE_INSTALL_PREFIX=/work/install-foo-gnu-debug",
				"-DCMAKE_EXPORT_COMPILE_COMMANDS=on",
				"/repo/src",
			},
		},
		{
			name: "eclipse generator",
			config: &config.Config{
				BuildType: "Debug",
				Eclipse:   true,
			},
			wantArgs: []string{
				"-C", "/repo/host-configs/other/foo.cmake",
				"-DCMAKE_BUILD_TYPE=Debug",
				"-DCMAKE_INSTALL_PREFIX=/work/install-foo-gnu-debug",
				"-G", EclipseGenerator,
				"/repo/src",
			},
		},
		{
			name: "xcode generator",
			config: &config.Config{
				BuildType: "Debug",
				Xcode:     true,
			},
			wantArgs: []string{
				"-C", "/repo/host-configs/other/foo.cmake",
				"-DCMAKE_BUILD_TYPE=Debug",
				"-DCMAKE_INSTALL_PREFIX=/work/install-foo-gnu-debug",
				"-G", XcodeGenerator,
				"/repo/src",
			},
		},
		{
			name: "passthrough cmake option",
			config: &config.Config{
				BuildType:   "Debug",
				CMakeOption: "ENABLE_FORTRAN=ON",
			},
			wantArgs: []string{
				"-C", "/repo/host-configs/other/foo.cmake",
				"-DCMAKE_BUILD_TYPE=Debug",
				"-DCMAKE_INSTALL_PREFIX=/work/install-foo-gnu-debug",
				"-DENABLE_FORTRAN=ON",
				"/repo/src",
			},
		},
		{
			name: "both generators is a usage error",
			config: &config.Config{
				BuildType: "Debug",
				Eclipse:   true,
				Xcode:     true,
			},
			wantErr:     true,
			errContains: "mutually exclusive",
		},
	}

	cb := NewCommandBuilder()

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			args, err := cb.BuildCommandArgs(
				test.config,
				"/repo/host-configs/other/foo.cmake",
				"/work/install-foo-gnu-debug",
				"/repo/src",
			)
			if test.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), test.errContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.wantArgs, args)
		})
	}
}

func TestCommandBuilder_ArgsContainSingleBuildTypeAndPrefix(t *testing.T) {
	cb := NewCommandBuilder()

	cfg := &config.Config{
		BuildType:              "MinSizeRel",
		ExportCompilerCommands: true,
		CMakeOption:            "ENABLE_DOCS=OFF",
	}

	args, err := cb.BuildCommandArgs(cfg, "/hc/naples.cmake", "/work/install", "/repo/src")
	require.NoError(t, err)

	buildType, installPrefix, cache := 0, 0, 0
	for _, a := range args {
		switch {
		case a == "-C":
			cache++
		case strings.HasPrefix(a, "-DCMAKE_BUILD_TYPE="):
			buildType++
		case strings.HasPrefix(a, "-DCMAKE_INSTALL_PREFIX="):
			installPrefix++
		}
	}

	assert.Equal(t, 1, cache)
	assert.Equal(t, 1, buildType)
	assert.Equal(t, 1, installPrefix)
	assert.Equal(t, "/repo/src", args[len(args)-1])
}

func TestCommandBuilder_ExecuteCommand(t *testing.T) {
	cb := NewCommandBuilder()

	var gotDir, gotName string
	var gotArgs []string

	cb.execCommand = func(dir, name string, args ...string) Commander {
		gotDir = dir
		gotName = name
		gotArgs = args
		return &mockCommander{runFunc: func() error { return nil }}
	}

	err := cb.ExecuteCommand("cmake", []string{"-C", "/hc/foo.cmake", "/repo/src"}, "/work/build-foo-gnu-debug")
	require.NoError(t, err)

	assert.Equal(t, "/work/build-foo-gnu-debug", gotDir)
	assert.Equal(t, "cmake", gotName)
	assert.Equal(t, []string{"-C", "/hc/foo.cmake", "/repo/src"}, gotArgs)
}

func TestCommandBuilder_ExecuteCommandPropagatesFailure(t *testing.T) {
	cb := NewCommandBuilder()

	want := fmt.Errorf("exit status 2")
	cb.execCommand = func(dir, name string, args ...string) Commander {
		return &mockCommander{runFunc: func() error { return want }}
	}

	err := cb.ExecuteCommand("cmake", nil, "/work/build")
	assert.Equal(t, want, err)
}
