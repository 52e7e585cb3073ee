package board

import (
	"crypto/rand"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// On-disk layout inside a board directory.
const (
	boardFile  = "board.yaml"
	lockFile   = "board.lock"
	cardsDir   = "cards"
	archiveDir = "archive"
	cardExt    = ".md"
)

// Store reads and mutates one board directory. Every operation re-reads the
// files it needs, so a Store holds no board state between calls.
type Store struct {
	dir    string
	config types.Config
	logger *log.Logger

	// now and random are replaced in tests.
	now    func() time.Time
	random io.Reader
}

// NewStore returns a Store rooted at config.BoardDir. A nil logger
// discards all output.
func NewStore(config types.Config, logger *log.Logger) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		dir:    filepath.Clean(config.BoardDir),
		config: config,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		random: rand.Reader,
	}, nil
}

// Dir returns the board directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) boardPath() string {
	return filepath.Join(s.dir, boardFile)
}

func (s *Store) cardPath(id string) string {
	return filepath.Join(s.dir, cardsDir, id+cardExt)
}

func (s *Store) archivePath(id string) string {
	return filepath.Join(s.dir, archiveDir, id+cardExt)
}

// writeBoard serializes and atomically persists the descriptor.
func (s *Store) writeBoard(b *types.Board) error {
	data, err := SerializeBoard(b)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.boardPath(), data); err != nil {
		return fmt.Errorf("writing %s: %w", boardFile, err)
	}
	s.logger.Debug("wrote board", "path", s.boardPath())
	return nil
}

// writeCard serializes and atomically persists one card document.
func (s *Store) writeCard(c *types.Card) error {
	data, err := SerializeCard(c)
	if err != nil {
		return err
	}
	path := s.cardPath(c.ID)
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("writing card %s: %w", c.ID, err)
	}
	s.logger.Debug("wrote card", "id", c.ID, "path", path)
	return nil
}
