package cli

import (
	"github.com/spf13/cobra"
)

const modulePath = "github.com/mesh-intelligence/kanban"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the kanban version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printf(cmd, "kanban v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
