package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

var propsOpts buildFlags

var propsCmd = &cobra.Command{
	Use:   "props",
	Short: "Write the generated property sheet only",
	Args:  cobra.NoArgs,
	RunE:  runProps,
}

func init() {
	propsOpts.register(propsCmd)
	rootCmd.AddCommand(propsCmd)
}

func runProps(cmd *cobra.Command, args []string) error {
	dir, err := workDir(propsOpts.dir)
	if err != nil {
		return err
	}
	m, err := propsOpts.matrix()
	if err != nil {
		return err
	}
	if n := m.CombinationCount(); n != 1 {
		return fmt.Errorf("props needs exactly one settings combination, got %d", n)
	}
	combos, err := m.Combinations(defaultSettings())
	if err != nil {
		return err
	}
	opts, err := propsOpts.options(cfg.MSBuild.Verbosity, cfg.General.CPUCount)
	if err != nil {
		return err
	}

	path, err := newMSBuild(cmd, dir).WritePropertyFile(combos[0], opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
