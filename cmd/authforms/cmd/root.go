package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "authforms",
		Short: "Registration and login forms server",
		Long: `authforms serves a registration and a login form with live validation.

Available commands:
  serve      Run the HTTP server
  check      Validate form values from the command line
  version    Print the version

Use "authforms [command] --help" for more information about a specific command.`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newCheckCmd(), newVersionCmd())
	return root
}

// Execute executes the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
