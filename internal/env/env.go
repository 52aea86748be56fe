package env

import (
	"os"
	"path/filepath"
)

// HomeEnv overrides the directory returned by WorkDir.
const HomeEnv = "VSBUILD_HOME"

// WorkDir returns the directory holding vsbuild's user configuration.
func WorkDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userConfigDir, "vsbuild"), nil
}

// ConfigFile returns the path of the default configuration file.
func ConfigFile() (string, error) {
	dir, err := WorkDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
