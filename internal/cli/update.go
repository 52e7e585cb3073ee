package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

func newUpdateCmd(a *app) *cobra.Command {
	var (
		title, column, priority, labels string
		assignee, description, due      string
		specRef, ralphFeature           string
		pin                             bool
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change card fields",
		Long: "Change the given card fields and refresh its updated time. Only flags that\n" +
			"are set are applied. --column rewrites the card's column field only; use\n" +
			"move to refile the card on the board.",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			var patch types.CardPatch
			if f.Changed("title") {
				patch.Title = &title
			}
			if f.Changed("column") {
				patch.Column = &column
			}
			if f.Changed("priority") {
				patch.Priority = &priority
			}
			if f.Changed("labels") {
				l := splitList(labels)
				if l == nil {
					l = []string{}
				}
				patch.Labels = &l
			}
			if f.Changed("assignee") {
				patch.Assignee = &assignee
			}
			if f.Changed("description") {
				patch.Description = &description
			}
			if f.Changed("due") {
				patch.Due = &due
			}
			if f.Changed("pin") {
				patch.Pin = &pin
			}
			if f.Changed("spec-ref") {
				patch.SpecRef = &specRef
			}
			if f.Changed("ralph-feature") {
				patch.RalphFeature = &ralphFeature
			}
			if patch.IsEmpty() {
				return userError(errors.New("update: no fields given"))
			}

			s, err := a.store()
			if err != nil {
				return err
			}
			card, err := s.Update(args[0], patch)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd, card)
			}
			printf(cmd, "Updated %s\n", card.ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&title, "title", "", "card title")
	f.StringVar(&column, "column", "", "column field")
	f.StringVar(&priority, "priority", "", "critical, high, medium or low")
	f.StringVar(&labels, "labels", "", "comma-separated labels, replacing the current set")
	f.StringVar(&assignee, "assignee", "", "assignee")
	f.StringVar(&description, "description", "", "card description")
	f.StringVar(&due, "due", "", "due date")
	f.BoolVar(&pin, "pin", false, "exempt the card from auto-archive")
	f.StringVar(&specRef, "spec-ref", "", "path to the card's spec directory")
	f.StringVar(&ralphFeature, "ralph-feature", "", "ralph feature ID")
	return cmd
}
