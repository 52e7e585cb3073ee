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

// Create writes a new card and appends its ID to the end of the target
// column's order. Column, priority and source default to the board's
// settings and types.SourceManual.
func (s *Store) Create(in types.CardInput) (*types.Card, error) {
	var card *types.Card
	err := s.withLock(func() error {
		b, err := s.readBoardFile()
		if err != nil {
			return err
		}
		if strings.TrimSpace(in.Title) == "" {
			return types.ErrTitleEmpty
		}
		if err := checkDescription(in.Description); err != nil {
			return err
		}

		column := in.Column
		if column == "" {
			column = b.Settings.DefaultColumn
		}
		if !b.HasColumn(column) {
			return fmt.Errorf("%w: %q", types.ErrColumnNotFound, column)
		}

		priority := in.Priority
		if priority == "" {
			priority = b.Settings.DefaultPriority
		}
		if priority == "" {
			priority = types.PriorityMedium
		}
		if !types.ValidPriority(priority) {
			return fmt.Errorf("%w: %q", types.ErrInvalidPriority, priority)
		}

		source := in.Source
		if source == "" {
			source = types.SourceManual
		}
		if !types.ValidSource(source) {
			return fmt.Errorf("%w: %q", types.ErrInvalidSource, source)
		}

		id, err := s.generateCardID()
		if err != nil {
			return err
		}
		if _, err := os.Stat(s.cardPath(id)); err == nil {
			return fmt.Errorf("%w: %s", types.ErrCardExists, id)
		}

		now := s.now()
		card = &types.Card{
			ID:           id,
			Title:        in.Title,
			Column:       column,
			Priority:     priority,
			Labels:       append([]string{}, in.Labels...),
			Assignee:     in.Assignee,
			Created:      now,
			Updated:      now,
			Due:          in.Due,
			Source:       source,
			Blockers:     append([]types.Blocker{}, in.Blockers...),
			SpecRef:      in.SpecRef,
			RalphFeature: in.RalphFeature,
			Meeting:      in.Meeting,
			Description:  in.Description,
			Notes:        []types.Note{},
		}
		b.CardOrder.Append(column, id)

		if err := s.writeCard(card); err != nil {
			return err
		}
		if err := s.writeBoard(b); err != nil {
			return err
		}
		s.logger.Info("created card", "id", id, "column", column)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// Update merges patch onto the stored card and refreshes Updated. A new
// column must exist on the board, but the board's cardOrder is left alone;
// use Move to change where the card is filed.
func (s *Store) Update(id string, patch types.CardPatch) (*types.Card, error) {
	card, err := s.requireCard(id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, types.ErrTitleEmpty
	}
	if patch.Priority != nil && !types.ValidPriority(*patch.Priority) {
		return nil, fmt.Errorf("%w: %q", types.ErrInvalidPriority, *patch.Priority)
	}
	if patch.Description != nil {
		if err := checkDescription(*patch.Description); err != nil {
			return nil, err
		}
	}
	if patch.Column != nil {
		b, err := s.readBoardFile()
		if err != nil {
			return nil, err
		}
		if !b.HasColumn(*patch.Column) {
			return nil, fmt.Errorf("%w: %q", types.ErrColumnNotFound, *patch.Column)
		}
	}

	patch.Apply(card)
	card.Updated = s.now()
	if err := s.writeCard(card); err != nil {
		return nil, err
	}
	return card, nil
}

// Move files the card at the end of column.
func (s *Store) Move(id, column string) (*types.Card, error) {
	return s.MoveTo(id, column, -1)
}

// MoveTo removes the card from its recorded column's order and inserts it
// into column at position. A position outside the target list appends.
func (s *Store) MoveTo(id, column string, position int) (*types.Card, error) {
	var card *types.Card
	err := s.withLock(func() error {
		var err error
		card, err = s.move(id, column, position)
		return err
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

func (s *Store) move(id, column string, position int) (*types.Card, error) {
	b, err := s.readBoardFile()
	if err != nil {
		return nil, err
	}
	if !b.HasColumn(column) {
		return nil, fmt.Errorf("%w: %q", types.ErrColumnNotFound, column)
	}
	card, err := s.requireCard(id)
	if err != nil {
		return nil, err
	}

	from := card.Column
	b.CardOrder.Remove(from, id)
	b.CardOrder.Insert(column, id, position)
	card.Column = column
	card.Updated = s.now()

	if err := s.writeCard(card); err != nil {
		return nil, err
	}
	if err := s.writeBoard(b); err != nil {
		return nil, err
	}
	s.logger.Info("moved card", "id", id, "from", from, "to", column)
	return card, nil
}

// Done moves the card to the end of the board's done column.
func (s *Store) Done(id string) (*types.Card, error) {
	var card *types.Card
	err := s.withLock(func() error {
		b, err := s.readBoardFile()
		if err != nil {
			return err
		}
		done, ok := b.DoneColumn()
		if !ok {
			return types.ErrNoDoneColumn
		}
		card, err = s.move(id, done.Name, -1)
		return err
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// AppendNote adds a note to the end of the card's note list. Notes are
// never re-sorted.
func (s *Store) AppendNote(id string, in types.NoteInput) (*types.Card, error) {
	if err := checkNote(in); err != nil {
		return nil, err
	}
	card, err := s.requireCard(id)
	if err != nil {
		return nil, err
	}
	s.appendNote(card, in)
	if err := s.writeCard(card); err != nil {
		return nil, err
	}
	return card, nil
}

// checkNote validates a note before it is written, so the card rereads
// with exactly the notes that were appended.
func checkNote(in types.NoteInput) error {
	if err := checkAuthor(in.Author); err != nil {
		return err
	}
	if !types.ValidNoteType(in.Type) {
		return fmt.Errorf("%w: %q", types.ErrInvalidNoteType, in.Type)
	}
	return checkNoteContent(in.Content)
}

func (s *Store) appendNote(card *types.Card, in types.NoteInput) {
	now := s.now()
	content := strings.ReplaceAll(in.Content, "\r\n", "\n")
	card.Notes = append(card.Notes, types.Note{
		Timestamp: now,
		Author:    in.Author,
		Content:   trimBlankLines(content),
		Type:      in.Type,
	})
	card.Updated = now
}

// Delete removes the card document and strips its ID from every column's
// order.
func (s *Store) Delete(id string) error {
	return s.withLock(func() error {
		b, err := s.readBoardFile()
		if err != nil {
			return err
		}
		if err := s.requireCardFile(id); err != nil {
			return err
		}
		removed := b.CardOrder.RemoveAll(id)
		if err := os.Remove(s.cardPath(id)); err != nil {
			return fmt.Errorf("deleting card %s: %w", id, err)
		}
		if err := s.writeBoard(b); err != nil {
			return err
		}
		s.logger.Info("deleted card", "id", id, "orderEntries", removed)
		return nil
	})
}

// Archive moves the card document, unchanged, into archive/ and strips its
// ID from every column's order.
func (s *Store) Archive(id string) error {
	return s.withLock(func() error {
		b, err := s.readBoardFile()
		if err != nil {
			return err
		}
		return s.archive(b, id)
	})
}

// archive relocates one card and persists b without it.
func (s *Store) archive(b *types.Board, id string) error {
	if err := s.requireCardFile(id); err != nil {
		return err
	}
	b.CardOrder.RemoveAll(id)
	if err := os.MkdirAll(filepath.Join(s.dir, archiveDir), 0o755); err != nil {
		return fmt.Errorf("creating archive directory: %w", err)
	}
	if err := os.Rename(s.cardPath(id), s.archivePath(id)); err != nil {
		return fmt.Errorf("archiving card %s: %w", id, err)
	}
	if err := s.writeBoard(b); err != nil {
		return err
	}
	s.logger.Info("archived card", "id", id)
	return nil
}

// requireCardFile checks that an active card document exists without
// parsing it, so malformed cards can still be deleted or archived.
func (s *Store) requireCardFile(id string) error {
	if !types.ValidCardID(id) {
		return fmt.Errorf("%w: %s", types.ErrCardNotFound, id)
	}
	_, err := os.Stat(s.cardPath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", types.ErrCardNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("checking card %s: %w", id, err)
	}
	return nil
}
