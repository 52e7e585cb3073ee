package board

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

func TestReadBoardNotFound(t *testing.T) {
	s, err := NewStore(types.Config{BoardDir: filepath.Join(t.TempDir(), ".kanban")}, nil)
	require.NoError(t, err)

	_, err = s.ReadBoard()
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrBoardNotFound))
	assert.False(t, errors.Is(err, types.ErrBoardInvalid))
}

func TestReadBoardInvalid(t *testing.T) {
	s, _ := newTestStore(t)
	writeTestFile(t, s.boardPath(), "name: x\nversion: 7\n")

	_, err := s.ReadBoard()
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrBoardInvalid))
	assert.False(t, errors.Is(err, types.ErrBoardNotFound))
}

func TestReadBoardToleratesBadCards(t *testing.T) {
	s, _ := newTestStore(t)
	good := mustCreate(t, s, "Good card")
	badPath := filepath.Join(s.Dir(), cardsDir, "zzzzzz.md")
	writeTestFile(t, badPath, "no frontmatter here\n")
	writeTestFile(t, filepath.Join(s.Dir(), cardsDir, "README.txt"), "ignored")

	st, err := s.ReadBoard()
	require.NoError(t, err)

	require.Len(t, st.Cards, 1)
	assert.Equal(t, good.ID, st.Cards[0].ID)
	require.Len(t, st.Errors, 1)
	assert.Equal(t, "zzzzzz", st.Errors[0].CardID)
	assert.Equal(t, badPath, st.Errors[0].Path)
	assert.Contains(t, st.Errors[0].Message, "missing frontmatter")

	c, ok := st.Card(good.ID)
	assert.True(t, ok)
	assert.Equal(t, "Good card", c.Title)
	_, ok = st.Card("zzzzzz")
	assert.False(t, ok, "failed cards are not returned")
}

func TestReadBoardWithoutCardsDir(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, os.RemoveAll(filepath.Join(s.Dir(), cardsDir)))

	st, err := s.ReadBoard()
	require.NoError(t, err)
	assert.Empty(t, st.Cards)
	assert.Empty(t, st.Errors)
}

func TestReadCard(t *testing.T) {
	s, _ := newTestStore(t)
	created := mustCreate(t, s, "Readable")
	writeTestFile(t, filepath.Join(s.Dir(), cardsDir, "yyyyyy.md"), "---\nid: yyyyyy\n---\n")

	tests := []struct {
		name      string
		id        string
		wantFound bool
		wantErr   error
	}{
		{"existing", created.ID, true, nil},
		{"missing", "nnnnnn", false, nil},
		{"malformed", "yyyyyy", false, types.ErrCardInvalid},
		{"unsafe id", "../board", false, nil},
		{"empty id", "", false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card, found, err := s.ReadCard(tt.id)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
			if found {
				assert.Equal(t, created, card)
			} else {
				assert.Nil(t, card)
			}
		})
	}
}
