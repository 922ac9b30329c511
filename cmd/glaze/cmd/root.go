// Package cmd implements the glaze CLI commands.
//
// The root command dispatches to subcommands (init, serve, freeze,
// clean, version). Project-level settings come from glaze.yaml next to
// go.mod; flags override them per invocation.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "glaze",
	Short: "glaze builds declarative web UIs in Go",
	Long: `glaze renders declarative widget trees to HTML: a live dev server
while you work, frozen self-hydrating pages for production.

Use "glaze <command> --help" for more information about a command.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fail("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
