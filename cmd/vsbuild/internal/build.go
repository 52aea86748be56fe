package internal

import (
	"fmt"

	"github.com/goplus/vsbuild/pkgs/buildsys"
	"github.com/goplus/vsbuild/pkgs/buildsys/msbuild"
	"github.com/spf13/cobra"
)

var buildOpts buildFlags

var buildCmd = &cobra.Command{
	Use:   "build <solution>",
	Short: "Build a solution for every settings combination",
	Long: `Build writes the generated property sheet, upgrades the solution unless
skip_vs_projects_upgrade is set, and runs MSBuild once per combination of the
-s settings, in order.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildOpts.register(buildCmd)
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	dir, err := workDir(buildOpts.dir)
	if err != nil {
		return err
	}
	combos, err := buildOpts.combinations()
	if err != nil {
		return err
	}
	opts, err := buildOpts.options(cfg.MSBuild.Verbosity, cfg.General.CPUCount)
	if err != nil {
		return err
	}

	results, err := buildsys.BuildAll[*msbuild.Options, *msbuild.Result](cmd.Context(), newMSBuild(cmd, dir), args[0], combos, opts)
	for _, res := range results {
		if res.Build.BinaryLog != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Binary log: %s\n", res.Build.BinaryLog)
		}
	}
	return err
}
