package board

import (
	"errors"
	"strings"
	"sync"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// Heartbeat statuses.
const (
	HeartbeatOK       = "ok"
	HeartbeatNotFound = "not-found"
	HeartbeatError    = "error"
)

// HeartbeatResult is what a dispatch agent polls for on one board: backlog
// work nobody has picked up and cards whose blockers have all been
// answered.
type HeartbeatResult struct {
	BoardDir          string        `json:"boardDir"`
	Status            string        `json:"status"`
	UnassignedBacklog []*types.Card `json:"unassignedBacklog"`
	RecentlyUnblocked []*types.Card `json:"recentlyUnblocked"`
	Error             string        `json:"error,omitempty"`
}

// Heartbeat reads the board for a dispatch poll. It never fails: a missing
// board reports HeartbeatNotFound and any other load failure
// HeartbeatError.
func (s *Store) Heartbeat() *HeartbeatResult {
	res := &HeartbeatResult{
		BoardDir:          s.dir,
		UnassignedBacklog: []*types.Card{},
		RecentlyUnblocked: []*types.Card{},
	}
	st, err := s.ReadBoard()
	if errors.Is(err, types.ErrBoardNotFound) {
		res.Status = HeartbeatNotFound
		return res
	}
	if err != nil {
		res.Status = HeartbeatError
		res.Error = err.Error()
		return res
	}
	res.Status = HeartbeatOK

	for _, col := range st.Board.Columns {
		if !strings.EqualFold(col.Name, intakeColumn) {
			continue
		}
		for _, id := range st.Board.CardOrder.IDs(col.Name) {
			if c, ok := st.Card(id); ok && c.Assignee == "" {
				res.UnassignedBacklog = append(res.UnassignedBacklog, c)
			}
		}
		break
	}
	for _, c := range st.Cards {
		if len(c.Blockers) == 0 && hasNoteType(c, types.NoteUnblock) {
			res.RecentlyUnblocked = append(res.RecentlyUnblocked, c)
		}
	}
	return res
}

// Heartbeats polls every store concurrently. Results keep the order of
// stores.
func Heartbeats(stores []*Store) []*HeartbeatResult {
	out := make([]*HeartbeatResult, len(stores))
	var wg sync.WaitGroup
	for i, s := range stores {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out[i] = s.Heartbeat()
		}()
	}
	wg.Wait()
	return out
}

// BlockerSummary is one open question in a BlockerAnnouncement.
type BlockerSummary struct {
	Question string `json:"question"`
	Author   string `json:"author"`
}

// BlockerAnnouncement lists a card's open questions for posting to a
// channel.
type BlockerAnnouncement struct {
	CardTitle string           `json:"cardTitle"`
	Blockers  []BlockerSummary `json:"blockers"`
}

// AnnounceBlockers returns the card's open questions. found is false when
// the card does not exist.
func (s *Store) AnnounceBlockers(id string) (*BlockerAnnouncement, bool, error) {
	card, found, err := s.ReadCard(id)
	if err != nil || !found {
		return nil, found, err
	}
	a := &BlockerAnnouncement{
		CardTitle: card.Title,
		Blockers:  make([]BlockerSummary, 0, len(card.Blockers)),
	}
	for _, b := range card.Blockers {
		a.Blockers = append(a.Blockers, BlockerSummary{Question: b.Question, Author: b.Author})
	}
	return a, true, nil
}

func hasNoteType(c *types.Card, noteType string) bool {
	for _, n := range c.Notes {
		if n.Type == noteType {
			return true
		}
	}
	return false
}
