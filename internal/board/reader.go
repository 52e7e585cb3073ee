package board

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// CardError records a card document that failed to load. CardID comes from
// the file name because the document itself could not be trusted.
type CardError struct {
	CardID  string `json:"cardId"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

// cardResult is the outcome of loading one card file: either a card or the
// error that kept it out.
type cardResult struct {
	card *types.Card
	err  *CardError
}

// BoardState is a full load of a board directory. Cards holds every card
// that parsed; Errors holds the ones that did not.
type BoardState struct {
	Board  *types.Board
	Cards  []*types.Card
	Errors []CardError

	results map[string]cardResult
}

// Card returns the loaded card with the given ID.
func (st *BoardState) Card(id string) (*types.Card, bool) {
	r, ok := st.results[id]
	if !ok || r.card == nil {
		return nil, false
	}
	return r.card, true
}

// readBoardFile loads and parses board.yaml.
func (s *Store) readBoardFile() (*types.Board, error) {
	path := s.boardPath()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", types.ErrBoardNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	b, err := ParseBoard(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// ReadBoard loads the descriptor and every card document. A card that fails
// to parse is reported in BoardState.Errors and does not stop the load.
func (s *Store) ReadBoard() (*BoardState, error) {
	b, err := s.readBoardFile()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(s.dir, cardsDir)
	names, err := listCardFiles(dir)
	if err != nil {
		return nil, err
	}

	st := &BoardState{
		Board:   b,
		Cards:   []*types.Card{},
		Errors:  []CardError{},
		results: make(map[string]cardResult, len(names)),
	}
	for _, name := range names {
		id := strings.TrimSuffix(name, cardExt)
		path := filepath.Join(dir, name)
		card, err := s.loadCardFile(path)
		if err != nil {
			ce := CardError{CardID: id, Path: path, Message: err.Error()}
			s.logger.Warn("skipping card", "id", id, "path", path, "err", err)
			st.Errors = append(st.Errors, ce)
			st.results[id] = cardResult{err: &ce}
			continue
		}
		st.Cards = append(st.Cards, card)
		st.results[card.ID] = cardResult{card: card}
	}
	return st, nil
}

// ReadCard loads one active card. It reports found=false, with no error,
// when the document does not exist or id is not a well-formed card ID.
func (s *Store) ReadCard(id string) (*types.Card, bool, error) {
	if !types.ValidCardID(id) {
		return nil, false, nil
	}
	path := s.cardPath(id)
	card, err := s.loadCardFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}
	return card, true, nil
}

func (s *Store) loadCardFile(path string) (*types.Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCard(data)
}

// requireCard is ReadCard for operations that need the card to exist.
func (s *Store) requireCard(id string) (*types.Card, error) {
	card, found, err := s.ReadCard(id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", types.ErrCardNotFound, id)
	}
	return card, nil
}
