// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

const (
	// AppName names the platform config/cache subdirectory.
	AppName = "cabinet"
	// FileName is the config file's base name (without extension).
	FileName = "config"
	// FileExt is the config file's format, matching cabinet.toml.
	FileExt = "toml"
)

// configDirOverride lets tests pin ConfigDir without touching the real
// filesystem or environment.
var configDirOverride string

// SetConfigDirOverride is exported for tests in this package and its
// callers; production code never calls it.
func SetConfigDirOverride(dir string) { configDirOverride = dir }

// ConfigDir returns cabinet's configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var dir string
	switch runtime.GOOS {
	case "windows":
		dir = os.Getenv("APPDATA")
		if dir == "" {
			dir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, "Library", "Application Support")
	default:
		dir = os.Getenv("XDG_CONFIG_HOME")
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			dir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(dir, AppName), nil
}

// DefaultCacheRoot returns the cache root used when the config file's
// cache_root does not override it: $XDG_CACHE_HOME/cabinet, falling
// back to $HOME/.cache/cabinet, per spec §6's cache-root env vars.
func DefaultCacheRoot() (string, error) {
	if root := os.Getenv("XDG_CACHE_HOME"); root != "" {
		return filepath.Join(root, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Config is cabinet's global (project-independent) configuration.
type Config struct {
	// CacheRoot overrides where Git dependencies are cloned.
	CacheRoot string `mapstructure:"cache_root"`
	// Parallelism is the default worker cap for per-file operations;
	// 0 means "use hardware concurrency" (parallel.Default).
	Parallelism int `mapstructure:"parallelism"`
	// ColorMode is one of "always"/"auto"/"never", per spec §6.
	ColorMode string `mapstructure:"color_mode"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	cacheRoot, err := DefaultCacheRoot()
	if err != nil {
		cacheRoot = ""
	}
	return &Config{
		CacheRoot:   cacheRoot,
		Parallelism: 0,
		ColorMode:   "auto",
	}
}

// defaultConfigFilePath returns the path a config file would live at,
// honoring ConfigDir's override for tests.
func defaultConfigFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName+"."+FileExt), nil
}

// Load reads the config file at configFilePath, or, if empty, from
// ConfigDir. A missing file at the ConfigDir location is not an error and
// yields DefaultConfig; a missing explicitly named file is an error.
func Load(configFilePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType(FileExt)

	defaults := DefaultConfig()
	v.SetDefault("cache_root", defaults.CacheRoot)
	v.SetDefault("parallelism", defaults.Parallelism)
	v.SetDefault("color_mode", defaults.ColorMode)

	resolved := configFilePath
	if resolved == "" {
		p, err := defaultConfigFilePath()
		if err != nil {
			return nil, err
		}
		resolved = p
	}

	if _, err := os.Stat(resolved); err == nil {
		v.SetConfigFile(resolved)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", resolved, err)
		}
	} else if configFilePath != "" {
		return nil, fmt.Errorf("config file not found: %s", configFilePath)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// Save writes cfg to the config file, creating the config directory as
// needed.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	p, err := defaultConfigFilePath()
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(GenerateTOML(cfg)), 0o644)
}

// GenerateTOML renders cfg as a TOML document, hand-written rather than
// via an Encoder since the shape is small and fixed.
func GenerateTOML(cfg *Config) string {
	return fmt.Sprintf(
		"cache_root = %q\nparallelism = %d\ncolor_mode = %q\n",
		cfg.CacheRoot, cfg.Parallelism, cfg.ColorMode,
	)
}
