package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/enrich"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

func newShowCmd(a *app) *cobra.Command {
	var enriched bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Display a card with full details",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			card, ok, err := s.ReadCard(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", types.ErrCardNotFound, args[0])
			}

			var rec enrich.Record
			if enriched {
				res := a.enrichCards([]*types.Card{card})
				rec = res.Enrichments[card.ID]
			}

			if a.flags.jsonMode {
				return writeJSON(cmd, struct {
					*types.Card
					Enrichment enrich.Record `json:"enrichment,omitempty"`
				}{card, rec})
			}
			printCardDetail(cmd, card)
			if len(rec) > 0 {
				printf(cmd, "\nEnrichment:\n")
				printEnrichment(cmd, rec)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&enriched, "enrich", false, "attach enrichment from the configured adapters")
	return cmd
}
