package board

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/kanban/internal/paths"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

func TestInit(t *testing.T) {
	repo := filepath.Join(t.TempDir(), "my-repo")
	require.NoError(t, os.Mkdir(repo, 0o755))

	dir, err := Init(repo, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(repo, paths.DefaultBoardDirName), dir)

	for _, sub := range []string{cardsDir, archiveDir} {
		info, err := os.Stat(filepath.Join(dir, sub))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	s, err := NewStore(types.Config{BoardDir: dir}, nil)
	require.NoError(t, err)
	st, err := s.ReadBoard()
	require.NoError(t, err)
	assert.Equal(t, "my-repo", st.Board.Name)
	assert.Empty(t, st.Cards)
	assert.Empty(t, s.Validate())
}

func TestInitWithName(t *testing.T) {
	dir, err := Init(t.TempDir(), "Team Board")
	require.NoError(t, err)

	s, err := NewStore(types.Config{BoardDir: dir}, nil)
	require.NoError(t, err)
	st, err := s.ReadBoard()
	require.NoError(t, err)
	assert.Equal(t, "Team Board", st.Board.Name)
}

func TestInitRefusesExistingBoard(t *testing.T) {
	repo := t.TempDir()
	_, err := Init(repo, "")
	require.NoError(t, err)

	_, err = Init(repo, "")
	assert.True(t, errors.Is(err, types.ErrBoardExists))
}

func TestNewStoreRejectsBadConfig(t *testing.T) {
	_, err := NewStore(types.Config{}, nil)
	assert.True(t, errors.Is(err, types.ErrBoardDirEmpty))

	_, err = NewStore(types.Config{BoardDir: "x", LogLevel: "loud"}, nil)
	assert.True(t, errors.Is(err, types.ErrLogLevelUnknown))
}
