// Package config loads vsbuild's process-wide configuration from a TOML file
// and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

var ErrFailedToLoadConfig = errors.New("failed to load config")

// Environment variables that override the file.
const (
	SkipUpgradeEnv = "VSBUILD_SKIP_VS_PROJECTS_UPGRADE"
	MSBuildEnv     = "VSBUILD_MSBUILD"
	DevenvEnv      = "VSBUILD_DEVENV"
	VerbosityEnv   = "VSBUILD_MSBUILD_VERBOSITY"
	LogLevelEnv    = "VSBUILD_LOG_LEVEL"
)

type Config struct {
	General General `toml:"general"`
	MSBuild MSBuild `toml:"msbuild"`
	Log     Log     `toml:"log"`
}

type General struct {
	SkipVSProjectsUpgrade bool `toml:"skip_vs_projects_upgrade"`
	CPUCount              int  `toml:"cpu_count"` // 0 means all logical CPUs
}

type MSBuild struct {
	Executable string `toml:"executable"`
	Devenv     string `toml:"devenv"`
	Verbosity  string `toml:"verbosity"`
}

type Log struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		MSBuild: MSBuild{
			Executable: "msbuild",
			Devenv:     "devenv",
			Verbosity:  "minimal",
		},
		Log: Log{Level: "info"},
	}
}

// Load reads the TOML file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		data, err = nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFailedToLoadConfig, path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults and applies environment
// overrides. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(SkipUpgradeEnv); v != "" {
		skip, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", SkipUpgradeEnv, err)
		}
		c.General.SkipVSProjectsUpgrade = skip
	}
	if v := os.Getenv(MSBuildEnv); v != "" {
		c.MSBuild.Executable = v
	}
	if v := os.Getenv(DevenvEnv); v != "" {
		c.MSBuild.Devenv = v
	}
	if v := os.Getenv(VerbosityEnv); v != "" {
		c.MSBuild.Verbosity = v
	}
	if v := os.Getenv(LogLevelEnv); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Source reloads the configuration file on every query, so edits made while
// the process runs are observed.
type Source struct {
	path   string
	logger *slog.Logger
}

func NewSource(path string, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{path: path, logger: logger}
}

func (s *Source) Load() (*Config, error) {
	return Load(s.path)
}

// SkipUpgrade reports whether project upgrades are disabled. If the
// configuration cannot be read the upgrade is not skipped.
func (s *Source) SkipUpgrade() bool {
	cfg, err := s.Load()
	if err != nil {
		s.logger.Warn("reading skip_vs_projects_upgrade", "error", err)
		return false
	}
	return cfg.General.SkipVSProjectsUpgrade
}
