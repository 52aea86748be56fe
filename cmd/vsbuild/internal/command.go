package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

var commandOpts buildFlags

var commandCmd = &cobra.Command{
	Use:   "command <solution>",
	Short: "Print the MSBuild command lines without running them",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommand,
}

func init() {
	commandOpts.register(commandCmd)
	rootCmd.AddCommand(commandCmd)
}

func runCommand(cmd *cobra.Command, args []string) error {
	dir, err := workDir(commandOpts.dir)
	if err != nil {
		return err
	}
	combos, err := commandOpts.combinations()
	if err != nil {
		return err
	}
	opts, err := commandOpts.options(cfg.MSBuild.Verbosity, cfg.General.CPUCount)
	if err != nil {
		return err
	}

	m := newMSBuild(cmd, dir)
	for _, s := range combos {
		inv, err := m.Command(args[0], s, opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), inv)
	}
	return nil
}
