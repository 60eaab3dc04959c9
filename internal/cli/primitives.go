package cli

import (
	"github.com/spf13/cobra"

	"github.com/loom-ml/loom/internal/ops"
)

// NewPrimitivesCommand creates the primitives subcommand: list the builtin
// registry with each primitive's capabilities.
func NewPrimitivesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "primitives",
		Short: "List builtin primitives",
		Run: func(cmd *cobra.Command, args []string) {
			registry := ops.NewRegistry()
			for _, name := range registry.Names() {
				desc, err := registry.Defaults(name)
				if err != nil {
					continue
				}
				caps := ""
				if desc.HasInfer() {
					caps += " infer"
				}
				if desc.HasGrad() {
					caps += " grad"
				}
				if desc.HasHook() {
					caps += " exec"
				}
				cmd.Printf("%-12s %-24s%s\n", name, desc.Doc, caps)
			}
		},
	}
}
