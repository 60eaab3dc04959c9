package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loom-ml/loom/internal/graphfile"
	"github.com/loom-ml/loom/internal/infer"
	"github.com/loom-ml/loom/internal/ops"
)

// NewInferCommand creates the infer subcommand: load a graph file, run
// inference over the builtin registry, print the report.
func NewInferCommand() *cobra.Command {
	var maxIterations int

	cmd := &cobra.Command{
		Use:   "infer <graph.yaml>",
		Short: "Infer abstract values for a graph file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := ops.NewRegistry()
			g, inputTypes, err := graphfile.Load(args[0], registry)
			if err != nil {
				return err
			}

			engine := infer.New(registry, infer.Options{MaxIterations: maxIterations})
			report, err := engine.Infer(g, inputTypes)
			if err != nil {
				return err
			}

			cmd.Print(report.String())
			if !report.OK() {
				return fmt.Errorf("inference finished with %d diagnostic(s)", len(report.Diagnostics))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxIterations, "max-iterations", infer.DefaultMaxIterations,
		"fixpoint iteration cap for cyclic graphs")
	return cmd
}
