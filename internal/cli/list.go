package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/board"
	"github.com/mesh-intelligence/kanban/internal/enrich"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

// listOutput is the JSON shape of list.
type listOutput struct {
	*board.Listing
	Total      int               `json:"total"`
	Errors     []board.CardError `json:"errors"`
	Enrichment *enrich.Result    `json:"enrichment,omitempty"`
}

func newListCmd(a *app) *cobra.Command {
	var (
		filter   types.ListFilter
		labels   string
		enriched bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cards grouped by column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			st, err := s.ReadBoard()
			if err != nil {
				return err
			}
			filter.Labels = splitList(labels)
			listing := board.ListState(st, filter)

			var res *enrich.Result
			if enriched {
				res = a.enrichCards(listing.Cards)
			}

			if a.flags.jsonMode {
				return writeJSON(cmd, listOutput{
					Listing:    listing,
					Total:      len(listing.Cards),
					Errors:     st.Errors,
					Enrichment: res,
				})
			}

			for i, group := range listing.ByColumn {
				if i > 0 {
					printf(cmd, "\n")
				}
				printf(cmd, "%s (%d)\n", group.Column, len(group.Cards))
				for _, c := range group.Cards {
					printf(cmd, "  %s\n", cardLine(c))
					if res != nil {
						printEnrichment(cmd, res.Enrichments[c.ID])
					}
				}
			}
			if len(listing.Cards) == 0 {
				printf(cmd, "No cards.\n")
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&filter.Column, "column", "", "only cards in this column")
	f.BoolVar(&filter.Blocked, "blocked", false, "only blocked cards")
	f.StringVar(&filter.Priority, "priority", "", "only cards with this priority")
	f.StringVar(&labels, "labels", "", "only cards with any of these comma-separated labels")
	f.StringVar(&filter.Assignee, "assignee", "", "only cards with this assignee")
	f.BoolVar(&enriched, "enrich", false, "attach enrichment from the configured adapters")
	return cmd
}
