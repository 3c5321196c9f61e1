package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Loader handles configuration loading from various sources
type Loader struct{}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadForConfigure loads configuration for the configure operation
func (l *Loader) LoadForConfigure(cmd *cobra.Command) (*Config, error) {
	l.setupViperDefaults()
	l.loadGlobalConfig()
	l.loadLocalConfig()
	l.bindCommandFlags(cmd)

	return Load()
}

// LoadForTPL loads the optional config file settings consumed by the tpl
// operation (uberenv_path, archive_root). Flag precedence is handled by the
// command itself.
func (l *Loader) LoadForTPL() {
	l.setupViperDefaults()
	l.loadGlobalConfig()
	l.loadLocalConfig()
}

// setupViperDefaults sets up default values for viper
func (l *Loader) setupViperDefaults() {
	viper.SetDefault("compiler", DefaultCompiler)
	viper.SetDefault("buildtype", DefaultBuildType)
	viper.SetDefault("cmake_path", DefaultCMakePath)
	viper.SetDefault("verbose", DefaultVerbose)
}

// loadGlobalConfig loads global configuration from the user config directory
func (l *Loader) loadGlobalConfig() {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}

		configHome = filepath.Join(home, ".config")
	}

	globalDir := filepath.Join(configHome, "cbt")

	for _, ext := range []string{"yml", "yaml", "json", "toml"} {
		globalPath := filepath.Join(globalDir, "config."+ext)

		if _, err := os.Stat(globalPath); err == nil {
			viper.SetConfigFile(globalPath)

			if err := viper.ReadInConfig(); err == nil {
				break
			}
		}
	}
}

// loadLocalConfig loads local configuration found above the working directory
func (l *Loader) loadLocalConfig() {
	cwd, err := os.Getwd()
	if err != nil {
		return // silently ignore, config.Load() will handle validation
	}

	localPath := findLocalConfig(cwd)
	if localPath != "" {
		viper.SetConfigFile(localPath)
		_ = viper.ReadInConfig()
	}
}

// findLocalConfig walks up from dir looking for a .cbt config file, so a
// checkout-level config applies anywhere inside the tree
func findLocalConfig(dir string) string {
	for {
		for _, ext := range []string{"yml", "yaml", "json", "toml"} {
			path := filepath.Join(dir, ".cbt."+ext)

			if _, err := os.Stat(path); err == nil {
				return path
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return ""
}

// bindCommandFlags binds command flags to viper
func (l *Loader) bindCommandFlags(cmd *cobra.Command) {
	for _, name := range []string{
		"compiler",
		"buildtype",
		"buildpath",
		"installpath",
		"hostconfig",
		"eclipse",
		"xcode",
		"exportcompilercommands",
		"cmakeoption",
		"verbose",
	} {
		_ = viper.BindPFlag(name, cmd.Flags().Lookup(name))
	}
}
