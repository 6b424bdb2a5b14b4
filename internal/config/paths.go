// Package config manages hyprnav configuration and filesystem paths.
//
// Paths follow the XDG base directory conventions. The Hyprland config
// defaults to $XDG_CONFIG_HOME/hypr/hyprland.conf, hyprnav's own settings
// live under $XDG_CONFIG_HOME/hyprnav/, and the debug log is written under
// $XDG_CACHE_HOME/hypr/.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the filesystem paths used by hyprnav.
type Paths struct {
	// Root is the hyprnav settings directory (default: $XDG_CONFIG_HOME/hyprnav)
	Root string

	// Settings is the path to the optional settings file
	Settings string

	// HyprConfig is the Hyprland configuration file scanned for workspace= rules
	HyprConfig string

	// LogFile is where debug logs are appended
	LogFile string
}

// DefaultPaths returns the default paths for hyprnav.
// Paths can be overridden with environment variables:
// - HYPRNAV_ROOT: Override the settings directory
// - HYPRNAV_HYPR_CONFIG: Override the Hyprland config file
// - HYPRNAV_LOG_FILE: Override the log file
func DefaultPaths() (*Paths, error) {
	configHome, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return nil, err
	}
	cacheHome, err := xdgDir("XDG_CACHE_HOME", ".cache")
	if err != nil {
		return nil, err
	}

	root := os.Getenv("HYPRNAV_ROOT")
	if root == "" {
		root = filepath.Join(configHome, "hyprnav")
	}

	hyprConfig := os.Getenv("HYPRNAV_HYPR_CONFIG")
	if hyprConfig == "" {
		hyprConfig = filepath.Join(configHome, "hypr", "hyprland.conf")
	}

	logFile := os.Getenv("HYPRNAV_LOG_FILE")
	if logFile == "" {
		logFile = filepath.Join(cacheHome, "hypr", "hyprnav.log")
	}

	return &Paths{
		Root:       root,
		Settings:   filepath.Join(root, "config.yaml"),
		HyprConfig: hyprConfig,
		LogFile:    logFile,
	}, nil
}

// xdgDir returns the value of env, or fallback joined onto the home directory.
func xdgDir(env, fallback string) (string, error) {
	if dir := os.Getenv(env); dir != "" && filepath.IsAbs(dir) {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, fallback), nil
}
