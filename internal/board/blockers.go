package board

import (
	"fmt"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// AddBlocker records an open question on the card and notes it in the
// card's history.
func (s *Store) AddBlocker(id, question, author string) (*types.Card, types.Blocker, error) {
	note := types.NoteInput{
		Author:  author,
		Content: "Blocked: " + question,
		Type:    types.NoteBlocker,
	}
	if err := checkNote(note); err != nil {
		return nil, types.Blocker{}, err
	}
	card, err := s.requireCard(id)
	if err != nil {
		return nil, types.Blocker{}, err
	}
	blockerID, err := s.generateBlockerID()
	if err != nil {
		return nil, types.Blocker{}, err
	}

	blocker := types.Blocker{
		ID:       blockerID,
		Question: question,
		Author:   author,
		Created:  s.now(),
	}
	card.Blockers = append(card.Blockers, blocker)
	s.appendNote(card, note)
	if err := s.writeCard(card); err != nil {
		return nil, types.Blocker{}, err
	}
	return card, blocker, nil
}

// RemoveBlocker clears a blocker and records the response as an unblock
// note.
func (s *Store) RemoveBlocker(id, blockerID, response, author string) (*types.Card, error) {
	note := types.NoteInput{
		Author:  author,
		Content: fmt.Sprintf("Unblocked %s: %s", blockerID, response),
		Type:    types.NoteUnblock,
	}
	if err := checkNote(note); err != nil {
		return nil, err
	}
	card, err := s.requireCard(id)
	if err != nil {
		return nil, err
	}
	if _, ok := card.Blocker(blockerID); !ok {
		return nil, fmt.Errorf("%w: %s on card %s", types.ErrBlockerNotFound, blockerID, id)
	}

	kept := make([]types.Blocker, 0, len(card.Blockers)-1)
	for _, b := range card.Blockers {
		if b.ID != blockerID {
			kept = append(kept, b)
		}
	}
	card.Blockers = kept
	s.appendNote(card, note)
	if err := s.writeCard(card); err != nil {
		return nil, err
	}
	return card, nil
}
