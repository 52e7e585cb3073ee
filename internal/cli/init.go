package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/board"
	"github.com/mesh-intelligence/kanban/internal/paths"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a board in .kanban/",
		Long: "Create .kanban/ with board.yaml, cards/ and archive/ next to the resolved\n" +
			"board directory. The board starts with the default columns and labels.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := board.Init(paths.RepoRoot(a.config.BoardDir), name)
			if err != nil {
				if errors.Is(err, types.ErrBoardExists) {
					return userError(err)
				}
				return sysError(fmt.Errorf("initialize board: %w", err))
			}
			a.logger.Info("initialized board", "dir", dir)
			if a.flags.jsonMode {
				return writeJSON(cmd, map[string]string{"boardDir": dir})
			}
			printf(cmd, "Initialized board in %s\n", dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "board name (default: repository directory name)")
	return cmd
}
