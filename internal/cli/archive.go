package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/board"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a card and drop it from the board",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			if err := s.Delete(args[0]); err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd, map[string]string{"deleted": args[0]})
			}
			printf(cmd, "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newArchiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id>",
		Short: "Move a card to archive/ and drop it from the board",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			if err := s.Archive(args[0]); err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd, map[string]string{"archived": args[0]})
			}
			printf(cmd, "Archived %s\n", args[0])
			return nil
		},
	}
}

func newSweepCmd(a *app) *cobra.Command {
	var (
		days   int
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Archive stale cards in the done column",
		Long: "Archive cards in the done column whose updated time is older than --days\n" +
			"(default: the board's autoArchiveDays). --days 0 archives every done card.\n" +
			"Pinned cards are kept.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			res, err := s.ArchiveStale(days, dryRun)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd, res)
			}
			printSweep(cmd, res, dryRun)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", -1, "age in days (default: board autoArchiveDays)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report without archiving")
	return cmd
}

func printSweep(cmd *cobra.Command, res *board.SweepResult, dryRun bool) {
	verb := "Archived"
	if dryRun {
		verb = "Would archive"
	}
	for _, c := range res.Archived {
		printf(cmd, "%s %s: %s\n", verb, c.ID, c.Title)
	}
	for _, c := range res.SkippedPinned {
		printf(cmd, "Kept pinned %s: %s\n", c.ID, c.Title)
	}
	if len(res.Archived) == 0 && len(res.SkippedPinned) == 0 {
		printf(cmd, "Nothing to archive.\n")
	}
}
