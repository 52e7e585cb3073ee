package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/enrich"
	"github.com/mesh-intelligence/kanban/internal/paths"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

const displayTime = "2006-01-02 15:04"

// writeJSON prints v as indented JSON.
func writeJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal JSON: %w", err))
	}
	printf(cmd, "%s\n", out)
	return nil
}

// splitList parses a comma-separated flag value, dropping empty items.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// cardLine is the one-line listing form of a card.
func cardLine(c *types.Card) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %-8s  %s", c.ID, c.Priority, c.Title)
	if len(c.Labels) > 0 {
		fmt.Fprintf(&b, "  [%s]", strings.Join(c.Labels, ", "))
	}
	if c.Assignee != "" {
		fmt.Fprintf(&b, "  @%s", c.Assignee)
	}
	if c.IsBlocked() {
		fmt.Fprintf(&b, "  (blocked: %d)", len(c.Blockers))
	}
	return b.String()
}

// printCardDetail writes the full human-readable form of a card.
func printCardDetail(cmd *cobra.Command, c *types.Card) {
	printf(cmd, "ID:        %s\n", c.ID)
	printf(cmd, "Title:     %s\n", c.Title)
	printf(cmd, "Column:    %s\n", c.Column)
	printf(cmd, "Priority:  %s\n", c.Priority)
	if len(c.Labels) > 0 {
		printf(cmd, "Labels:    %s\n", strings.Join(c.Labels, ", "))
	}
	if c.Assignee != "" {
		printf(cmd, "Assignee:  %s\n", c.Assignee)
	}
	if c.Due != "" {
		printf(cmd, "Due:       %s\n", c.Due)
	}
	printf(cmd, "Source:    %s\n", c.Source)
	if c.Pin {
		printf(cmd, "Pinned:    yes\n")
	}
	if c.SpecRef != "" {
		printf(cmd, "Spec:      %s\n", c.SpecRef)
	}
	if c.RalphFeature != "" {
		printf(cmd, "Feature:   %s\n", c.RalphFeature)
	}
	printf(cmd, "Created:   %s\n", c.Created.Format(displayTime))
	printf(cmd, "Updated:   %s\n", c.Updated.Format(displayTime))

	if len(c.Blockers) > 0 {
		printf(cmd, "\nBlockers:\n")
		for _, blk := range c.Blockers {
			printf(cmd, "  %s  %s (%s)\n", blk.ID, blk.Question, blk.Author)
		}
	}
	if c.Description != "" {
		printf(cmd, "\n%s\n", c.Description)
	}
	if len(c.Notes) > 0 {
		printf(cmd, "\nNotes:\n")
		for _, n := range c.Notes {
			kind := ""
			if n.Type != "" {
				kind = " [" + n.Type + "]"
			}
			printf(cmd, "  %s %s%s: %s\n", n.Timestamp.Format(displayTime), n.Author, kind, n.Content)
		}
	}
}

// enrichCards runs the configured adapters against the repository that
// holds the board.
func (a *app) enrichCards(cards []*types.Card) *enrich.Result {
	reg := enrich.DefaultRegistry(a.logger)
	return reg.Enrich(paths.RepoRoot(a.config.BoardDir), cards, a.config.Adapters)
}

// printEnrichment writes one card's enrichment record, if any.
func printEnrichment(cmd *cobra.Command, rec enrich.Record) {
	for _, name := range []string{types.AdapterRalph, types.AdapterSpecops, types.AdapterSpecArtifact} {
		if v, ok := rec[name]; ok {
			printf(cmd, "    %s: %+v\n", name, v)
		}
	}
}
