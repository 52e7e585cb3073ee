package board

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

const (
	idAlphabet      = "abcdefghijklmnopqrstuvwxyz0123456789"
	cardIDLength    = 6
	blockerIDLength = 4
	blockerIDPrefix = "blk-"
	maxIDAttempts   = 5
)

// randomSymbols draws n symbols from idAlphabet, one random byte each.
func randomSymbols(r io.Reader, n int) (string, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(buf), nil
}

// generateCardID returns an ID not used by any active or archived card.
// The in-use set is rebuilt from disk on every call.
func (s *Store) generateCardID() (string, error) {
	existing, err := s.existingIDs()
	if err != nil {
		return "", err
	}
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := randomSymbols(s.random, cardIDLength)
		if err != nil {
			return "", err
		}
		if !existing[id] {
			return id, nil
		}
		s.logger.Debug("card id collision", "id", id, "attempt", attempt+1)
	}
	return "", fmt.Errorf("%w after %d attempts", types.ErrIDGenerationExhausted, maxIDAttempts)
}

// generateBlockerID returns a blocker ID. Blockers are scoped to one card,
// so no uniqueness check is made.
func (s *Store) generateBlockerID() (string, error) {
	suffix, err := randomSymbols(s.random, blockerIDLength)
	if err != nil {
		return "", err
	}
	return blockerIDPrefix + suffix, nil
}

// existingIDs scans cards/ and archive/ for card documents. A missing
// directory contributes nothing.
func (s *Store) existingIDs() (map[string]bool, error) {
	ids := make(map[string]bool)
	for _, sub := range []string{cardsDir, archiveDir} {
		names, err := listCardFiles(filepath.Join(s.dir, sub))
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			ids[strings.TrimSuffix(name, cardExt)] = true
		}
	}
	return ids, nil
}

// listCardFiles returns the names of the *.md files in dir, sorted.
func listCardFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), cardExt) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}
