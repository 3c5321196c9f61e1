package cmd

import (
	"fmt"
	"os"

	"github.com/calder-lab/cbt/internal/codes"
	"github.com/calder-lab/cbt/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:          "cbt",
	Short:        "Configure cmake builds",
	Long:         `Wraps cmake configuration and third-party-library installs for fixed lab machines`,
	RunE:         runConfigure,
	SilenceUsage: true,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(codes.ExitStatus(err))
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (%s) %s", version.Version, version.Commit, version.BuildTime)
	rootCmd.PersistentFlags().String("buildpath", "", "Path for the build directory. If not specified, one is created under the current directory")
	rootCmd.PersistentFlags().String("installpath", "", "Path for the installation directory. If not specified, one is created under the current directory")
	rootCmd.PersistentFlags().StringP("compiler", "c", "", "Compiler to use (e.g. gnu, clang, intel)")
	rootCmd.PersistentFlags().String("buildtype", "", "Build type (Release, Debug, RelWithDebInfo, MinSizeRel)")
	rootCmd.PersistentFlags().BoolP("eclipse", "e", false, "Create an Eclipse project file")
	rootCmd.PersistentFlags().BoolP("xcode", "x", false, "Create an Xcode project")
	rootCmd.PersistentFlags().Bool("exportcompilercommands", false, "Generate a compilation database (compile_commands.json) in the build directory")
	rootCmd.PersistentFlags().String("cmakeoption", "", "Additional name=value cmake option; a '-D' is prepended automatically")
	rootCmd.PersistentFlags().String("hostconfig", "", "Specific host-config file to initialize cmake's cache")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(tplCmd)

	viper.SetDefault("compiler", "gnu")
	viper.SetDefault("buildtype", "Debug")
	viper.SetDefault("cmake_path", "cmake")
	viper.SetDefault("verbose", false)
}
