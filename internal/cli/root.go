// Package cli implements the loom command line interface.
package cli

import (
	"github.com/spf13/cobra"
)

const version = "v0.1.0-dev"

// NewRootCommand creates the root command for the loom CLI.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loom",
		Short: "Loom - dataflow graph inference",
		Long:  "Loom infers abstract types and shapes for dataflow graphs via a pluggable primitive registry.",
	}

	cmd.AddCommand(NewInferCommand())
	cmd.AddCommand(NewPrimitivesCommand())
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// NewVersionCommand creates the version subcommand.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("Loom %s\n", version)
		},
	}
}
