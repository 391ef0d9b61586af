package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snek-lang/snek/internal/snekerr"
)

var (
	// Version is set at build time via -ldflags "-X .../cmd.Version=...".
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:     "snek",
	Short:   "Snek interpreter",
	Long:    `snek runs, tokenizes and inspects programs written in Snek, a small dynamically-evaluated, statically-typable scripting language.`,
	Version: Version,
	Args:    cobra.ArbitraryArgs,
	RunE:    runScript,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("snek version {{.Version}}\ncommit: %s\n", GitCommit))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print diagnostic information to stderr")
	rootCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from a file")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExitCodeFor maps a returned error to the process exit code spec §6.3
// reserves: 1 for an uncaught Snek-level Syntax or Runtime fault, 2 for a
// usage error (bad arguments, missing/unreadable file).
func ExitCodeFor(err error) int {
	if _, ok := err.(*snekerr.Error); ok {
		return 1
	}
	return 2
}
