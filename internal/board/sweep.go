package board

import (
	"time"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// SweepResult reports what ArchiveStale did, or would do on a dry run.
type SweepResult struct {
	Archived      []*types.Card `json:"archived"`
	SkippedPinned []*types.Card `json:"skippedPinned"`
}

// ArchiveStale archives cards in the done column whose Updated time is at
// least days old. A negative days uses the board's autoArchiveDays setting;
// zero takes every done card.
// Pinned cards are reported, not archived. With dryRun nothing is changed.
// A board without a done column yields an empty result.
func (s *Store) ArchiveStale(days int, dryRun bool) (*SweepResult, error) {
	result := &SweepResult{Archived: []*types.Card{}, SkippedPinned: []*types.Card{}}
	err := s.withLock(func() error {
		st, err := s.ReadBoard()
		if err != nil {
			return err
		}
		b := st.Board
		if days < 0 {
			days = b.Settings.AutoArchiveDays
		}
		done, ok := b.DoneColumn()
		if !ok {
			return nil
		}
		cutoff := s.now().Add(-time.Duration(days) * 24 * time.Hour)

		for _, c := range st.Cards {
			if c.Column != done.Name || c.Updated.After(cutoff) {
				continue
			}
			if c.Pin {
				result.SkippedPinned = append(result.SkippedPinned, c)
				continue
			}
			if !dryRun {
				if err := s.archive(b, c.ID); err != nil {
					return err
				}
			}
			result.Archived = append(result.Archived, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("archive sweep", "archived", len(result.Archived),
		"skippedPinned", len(result.SkippedPinned), "dryRun", dryRun)
	return result, nil
}
