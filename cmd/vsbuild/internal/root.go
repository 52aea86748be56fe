package internal

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/goplus/vsbuild/internal/config"
	"github.com/goplus/vsbuild/internal/env"
	"github.com/goplus/vsbuild/internal/logging"
	"github.com/goplus/vsbuild/pkgs/buildsys/msbuild"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "vsbuild",
	Short: "vsbuild builds Visual Studio solutions from abstract settings",
	Long: `vsbuild translates build settings (arch, compiler, build type, runtime)
into an MSBuild invocation, generates a property sheet with compiler options
and runs the build.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (default is the user config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	if configPath == "" {
		p, err := env.ConfigFile()
		if err != nil {
			return fmt.Errorf("failed to locate config file: %w", err)
		}
		configPath = p
	}
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = c
	if logLevel == "" {
		logLevel = cfg.Log.Level
	}
	logging.Setup(logLevel, cmd.ErrOrStderr())
	return nil
}

// newMSBuild returns a helper for dir configured from the loaded config. The
// skip-upgrade setting is re-read from the config file on every build.
func newMSBuild(cmd *cobra.Command, dir string) *msbuild.MSBuild {
	src := config.NewSource(configPath, slog.Default())
	return msbuild.New(dir).
		Executable(cfg.MSBuild.Executable).
		Devenv(cfg.MSBuild.Devenv).
		SkipUpgrade(src.SkipUpgrade).
		Stdout(cmd.OutOrStdout()).
		Logger(slog.Default())
}

func workDir(dir string) (string, error) {
	if dir == "" {
		return os.Getwd()
	}
	return dir, nil
}
