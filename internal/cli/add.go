package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		in     types.CardInput
		labels string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a card",
		Long:  "Create a card at the end of a column. Column and priority default to the board settings.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			in.Labels = splitList(labels)
			in.Source = types.SourceManual
			card, err := s.Create(in)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd, card)
			}
			printf(cmd, "Created %s in %s: %s\n", card.ID, card.Column, card.Title)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Title, "title", "", "card title (required)")
	f.StringVar(&in.Column, "column", "", "target column (default: board defaultColumn)")
	f.StringVar(&in.Priority, "priority", "", "critical, high, medium or low")
	f.StringVar(&labels, "labels", "", "comma-separated labels")
	f.StringVar(&in.Assignee, "assignee", "", "assignee")
	f.StringVar(&in.Due, "due", "", "due date")
	f.StringVar(&in.Description, "description", "", "card description")
	f.StringVar(&in.SpecRef, "spec-ref", "", "path to the card's spec directory")
	f.StringVar(&in.RalphFeature, "ralph-feature", "", "ralph feature ID")
	return cmd
}
