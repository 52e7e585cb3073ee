package board

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

var testEpoch = time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)

// stepClock returns a strictly increasing time, one second per call.
type stepClock struct {
	t time.Time
}

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

// zeroReader yields zero bytes forever, so every generated ID is "aaaaaa".
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

// newTestStore initializes a default board in a temp repo and returns a
// store over it with a deterministic clock.
func newTestStore(t *testing.T) (*Store, *stepClock) {
	t.Helper()
	return newTestStoreWithConfig(t, types.Config{})
}

func newTestStoreWithConfig(t *testing.T, config types.Config) (*Store, *stepClock) {
	t.Helper()
	dir, err := Init(t.TempDir(), "Test Board")
	require.NoError(t, err)

	config.BoardDir = dir
	s, err := NewStore(config, nil)
	require.NoError(t, err)

	clock := &stepClock{t: testEpoch}
	s.now = clock.now
	return s, clock
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// editBoard applies fn to the stored descriptor and writes it back.
func editBoard(t *testing.T, s *Store, fn func(b *types.Board)) {
	t.Helper()
	b, err := s.readBoardFile()
	require.NoError(t, err)
	fn(b)
	require.NoError(t, s.writeBoard(b))
}

func mustCreate(t *testing.T, s *Store, title string) *types.Card {
	t.Helper()
	c, err := s.Create(types.CardInput{Title: title})
	require.NoError(t, err)
	return c
}

func readOrder(t *testing.T, s *Store) *types.CardOrder {
	t.Helper()
	b, err := s.readBoardFile()
	require.NoError(t, err)
	return &b.CardOrder
}
