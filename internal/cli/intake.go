package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/board"
)

func newIntakeCmd(a *app) *cobra.Command {
	var (
		item   board.ActionItem
		labels string
	)
	cmd := &cobra.Command{
		Use:   "intake",
		Short: "File a meeting action item in the Backlog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			item.Labels = splitList(labels)
			card, err := s.CreateFromActionItem(item)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd, card)
			}
			printf(cmd, "Created %s from %s: %s\n", card.ID, item.MeetingTitle, card.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&item.Title, "title", "", "card title")
	cmd.Flags().StringVar(&item.Description, "description", "", "card description")
	cmd.Flags().StringVar(&item.MeetingTitle, "meeting", "", "meeting the item came from")
	cmd.Flags().StringVar(&item.MeetingDate, "meeting-date", "", "date of the meeting")
	cmd.Flags().StringVar(&item.Priority, "priority", "", "critical, high, medium or low (default medium)")
	cmd.Flags().StringVar(&labels, "labels", "", "comma-separated labels")
	cmd.Flags().StringVar(&item.Assignee, "assignee", "", "assignee")
	return cmd
}

func newHeartbeatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "heartbeat [board-dir...]",
		Short: "Report unassigned backlog and recently unblocked cards",
		Long: "Report unassigned Backlog cards and cards whose blockers were all answered.\n" +
			"With no arguments the current board is read; otherwise each board directory\n" +
			"is read concurrently. Missing boards are reported, not treated as errors.",
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs := args
			if len(dirs) == 0 {
				dirs = []string{a.config.BoardDir}
			}
			stores := make([]*board.Store, 0, len(dirs))
			for _, dir := range dirs {
				config := a.config
				config.BoardDir = dir
				s, err := board.NewStore(config, a.logger)
				if err != nil {
					return err
				}
				stores = append(stores, s)
			}

			results := board.Heartbeats(stores)
			if a.flags.jsonMode {
				return writeJSON(cmd, results)
			}
			for _, r := range results {
				printf(cmd, "%s: %s\n", r.BoardDir, r.Status)
				if r.Error != "" {
					printf(cmd, "  error: %s\n", r.Error)
				}
				for _, c := range r.UnassignedBacklog {
					printf(cmd, "  unassigned  %s\n", cardLine(c))
				}
				for _, c := range r.RecentlyUnblocked {
					printf(cmd, "  unblocked   %s\n", cardLine(c))
				}
			}
			return nil
		},
	}
}
