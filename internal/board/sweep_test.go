package board

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

func sweepFixture(t *testing.T) (*Store, *stepClock, map[string]*types.Card) {
	t.Helper()
	s, clock := newTestStore(t)

	stale := mustCreate(t, s, "stale")
	pinned := mustCreate(t, s, "pinned")
	active := mustCreate(t, s, "active")
	pin := true
	_, err := s.Update(pinned.ID, types.CardPatch{Pin: &pin})
	require.NoError(t, err)
	for _, c := range []*types.Card{stale, pinned} {
		_, err := s.Done(c.ID)
		require.NoError(t, err)
	}

	clock.t = clock.t.Add(45 * 24 * time.Hour)
	return s, clock, map[string]*types.Card{"stale": stale, "pinned": pinned, "active": active}
}

func TestArchiveStale(t *testing.T) {
	s, clock, cards := sweepFixture(t)
	recent := mustCreate(t, s, "recent")
	_, err := s.Done(recent.ID)
	require.NoError(t, err)
	clock.t = clock.t.Add(time.Hour)

	result, err := s.ArchiveStale(-1, false)
	require.NoError(t, err)

	assert.Equal(t, []string{cards["stale"].ID}, ids(result.Archived))
	assert.Equal(t, []string{cards["pinned"].ID}, ids(result.SkippedPinned))

	_, err = os.Stat(s.archivePath(cards["stale"].ID))
	assert.NoError(t, err)
	order := readOrder(t, s)
	assert.ElementsMatch(t, []string{cards["pinned"].ID, recent.ID}, order.IDs("Done"))
	assert.Equal(t, []string{cards["active"].ID}, order.IDs("Backlog"), "only done cards are swept")
}

func TestArchiveStaleDryRun(t *testing.T) {
	s, _, cards := sweepFixture(t)

	result, err := s.ArchiveStale(-1, true)
	require.NoError(t, err)
	assert.Equal(t, []string{cards["stale"].ID}, ids(result.Archived))

	_, found, err := s.ReadCard(cards["stale"].ID)
	require.NoError(t, err)
	assert.True(t, found, "dry run leaves cards in place")
}

func TestArchiveStaleDaysOverride(t *testing.T) {
	s, _, _ := sweepFixture(t)

	result, err := s.ArchiveStale(60, false)
	require.NoError(t, err)
	assert.Empty(t, result.Archived)
	assert.Empty(t, result.SkippedPinned)
}

func TestArchiveStaleZeroDaysTakesEveryDoneCard(t *testing.T) {
	s, clock, cards := sweepFixture(t)
	recent := mustCreate(t, s, "recent")
	_, err := s.Done(recent.ID)
	require.NoError(t, err)
	clock.t = clock.t.Add(time.Minute)

	result, err := s.ArchiveStale(0, false)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{cards["stale"].ID, recent.ID}, ids(result.Archived))
	assert.Equal(t, []string{cards["pinned"].ID}, ids(result.SkippedPinned))
	assert.Equal(t, []string{cards["pinned"].ID}, readOrder(t, s).IDs("Done"))
}

func TestArchiveStaleWithoutDoneColumn(t *testing.T) {
	s, _, _ := sweepFixture(t)
	editBoard(t, s, func(b *types.Board) {
		for i := range b.Columns {
			b.Columns[i].Done = false
		}
	})

	result, err := s.ArchiveStale(-1, false)
	require.NoError(t, err)
	assert.Empty(t, result.Archived)
}
