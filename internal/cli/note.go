package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

func newNoteCmd(a *app) *cobra.Command {
	var author, noteType string
	cmd := &cobra.Command{
		Use:   "note <id> <content>...",
		Short: "Append a note to a card",
		Args:  minArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			card, err := s.AppendNote(args[0], types.NoteInput{
				Author:  a.author(author),
				Content: strings.Join(args[1:], " "),
				Type:    noteType,
			})
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd, card.Notes[len(card.Notes)-1])
			}
			printf(cmd, "Noted %s\n", card.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&author, "author", "", "note author (default: config author)")
	cmd.Flags().StringVar(&noteType, "type", "", "comment, milestone, blocker or unblock")
	return cmd
}

func newBlockCmd(a *app) *cobra.Command {
	var author string
	cmd := &cobra.Command{
		Use:   "block <id> <question>...",
		Short: "Add a blocker to a card",
		Args:  minArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			card, blocker, err := s.AddBlocker(args[0], strings.Join(args[1:], " "), a.author(author))
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd, blocker)
			}
			printf(cmd, "Blocked %s: %s\n", card.ID, blocker.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&author, "author", "", "blocker author (default: config author)")
	return cmd
}

func newUnblockCmd(a *app) *cobra.Command {
	var author, response string
	cmd := &cobra.Command{
		Use:   "unblock <id> <blocker-id>",
		Short: "Resolve a blocker on a card",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			card, err := s.RemoveBlocker(args[0], args[1], response, a.author(author))
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd, card)
			}
			printf(cmd, "Unblocked %s: %s (%d open)\n", card.ID, args[1], len(card.Blockers))
			return nil
		},
	}
	cmd.Flags().StringVar(&author, "author", "", "response author (default: config author)")
	cmd.Flags().StringVar(&response, "response", "resolved", "answer to the blocker question")
	return cmd
}
