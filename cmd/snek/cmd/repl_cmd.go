package cmd

import "github.com/spf13/cobra"

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Snek session",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runRepl()
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
