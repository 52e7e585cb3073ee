package cli

import (
	"github.com/spf13/cobra"
)

func newMoveCmd(a *app) *cobra.Command {
	var position int
	cmd := &cobra.Command{
		Use:   "move <id> <column>",
		Short: "Move a card to a column",
		Long: "Move a card to a column. Without --position the card goes to the end of\n" +
			"the column; positions count from 0.",
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			card, err := s.MoveTo(args[0], args[1], position)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd, card)
			}
			printf(cmd, "Moved %s to %s\n", card.ID, card.Column)
			return nil
		},
	}
	cmd.Flags().IntVar(&position, "position", -1, "index within the column (default: end)")
	return cmd
}

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Move a card to the done column",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			card, err := s.Done(args[0])
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd, card)
			}
			printf(cmd, "Moved %s to %s\n", card.ID, card.Column)
			return nil
		},
	}
}
