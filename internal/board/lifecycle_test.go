package board

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

func strPtr(s string) *string { return &s }

func TestCreateDefaults(t *testing.T) {
	s, _ := newTestStore(t)

	c, err := s.Create(types.CardInput{Title: "First", Labels: []string{"bug"}})
	require.NoError(t, err)

	assert.True(t, types.ValidCardID(c.ID))
	assert.Equal(t, "Backlog", c.Column)
	assert.Equal(t, types.PriorityMedium, c.Priority)
	assert.Equal(t, types.SourceManual, c.Source)
	assert.Equal(t, c.Created, c.Updated)
	assert.Equal(t, []string{"bug"}, c.Labels)
	assert.Empty(t, c.Blockers)
	assert.Empty(t, c.Notes)

	stored, found, err := s.ReadCard(c.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, c, stored)

	order := readOrder(t, s)
	assert.Equal(t, []string{c.ID}, order.IDs("Backlog"))
}

func TestCreateExplicitFields(t *testing.T) {
	s, _ := newTestStore(t)

	c, err := s.Create(types.CardInput{
		Title:        "Explicit",
		Column:       "Building",
		Priority:     types.PriorityCritical,
		Source:       types.SourceAgentDispatch,
		Assignee:     "agent-7",
		Description:  "Do the thing.",
		Due:          "2026-03-01",
		SpecRef:      "thing-spec",
		RalphFeature: "thing",
		Meeting:      "kickoff",
	})
	require.NoError(t, err)
	assert.Equal(t, "Building", c.Column)
	assert.Equal(t, types.PriorityCritical, c.Priority)
	assert.Equal(t, types.SourceAgentDispatch, c.Source)

	stored, _, err := s.ReadCard(c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, stored)
	assert.Equal(t, []string{c.ID}, readOrder(t, s).IDs("Building"))
}

func TestCreateUsesBoardDefaultPriority(t *testing.T) {
	s, _ := newTestStore(t)
	editBoard(t, s, func(b *types.Board) { b.Settings.DefaultPriority = types.PriorityHigh })

	c := mustCreate(t, s, "x")
	assert.Equal(t, types.PriorityHigh, c.Priority)
}

func TestCreateErrors(t *testing.T) {
	tests := []struct {
		name  string
		input types.CardInput
		want  error
	}{
		{"unknown column", types.CardInput{Title: "x", Column: "Nowhere"}, types.ErrColumnNotFound},
		{"empty title", types.CardInput{Title: "   "}, types.ErrTitleEmpty},
		{"bad priority", types.CardInput{Title: "x", Priority: "urgent"}, types.ErrInvalidPriority},
		{"bad source", types.CardInput{Title: "x", Source: "email"}, types.ErrInvalidSource},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			_, err := s.Create(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			st, err := s.ReadBoard()
			require.NoError(t, err)
			assert.Empty(t, st.Cards, "failed create writes nothing")
		})
	}
}

func TestCreateUnknownDefaultColumn(t *testing.T) {
	s, _ := newTestStore(t)
	editBoard(t, s, func(b *types.Board) { b.Settings.DefaultColumn = "Gone" })

	_, err := s.Create(types.CardInput{Title: "x"})
	assert.True(t, errors.Is(err, types.ErrColumnNotFound))
}

func TestCreateWithoutBoard(t *testing.T) {
	s, err := NewStore(types.Config{BoardDir: t.TempDir()}, nil)
	require.NoError(t, err)
	_, err = s.Create(types.CardInput{Title: "x"})
	assert.True(t, errors.Is(err, types.ErrBoardNotFound))
}

func TestCreateAvoidsArchivedIDs(t *testing.T) {
	s, _ := newTestStore(t)
	writeTestFile(t, s.archivePath("aaaaaa"), "archived")
	s.random = zeroReader{}

	_, err := s.Create(types.CardInput{Title: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrIDGenerationExhausted))
}

func TestTwoCreatesAreDistinctAndOrdered(t *testing.T) {
	s, _ := newTestStore(t)
	first := mustCreate(t, s, "first")
	second := mustCreate(t, s, "second")

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, []string{first.ID, second.ID}, readOrder(t, s).IDs("Backlog"))
}

func TestMoveBetweenColumns(t *testing.T) {
	s, _ := newTestStore(t)
	c := mustCreate(t, s, "mover")

	_, err := s.Move(c.ID, "Building")
	require.NoError(t, err)
	moved, err := s.Move(c.ID, "Testing")
	require.NoError(t, err)

	order := readOrder(t, s)
	assert.NotContains(t, order.IDs("Backlog"), c.ID)
	assert.NotContains(t, order.IDs("Building"), c.ID)
	assert.Equal(t, []string{c.ID}, order.IDs("Testing"))
	assert.Equal(t, "Testing", moved.Column)
	assert.True(t, moved.Updated.After(c.Updated))

	stored, _, err := s.ReadCard(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Testing", stored.Column)
}

func TestMoveToPosition(t *testing.T) {
	tests := []struct {
		name     string
		position int
		want     func(ids []string, mover string) []string
	}{
		{"front", 0, func(ids []string, m string) []string { return []string{m, ids[0], ids[1]} }},
		{"middle", 1, func(ids []string, m string) []string { return []string{ids[0], m, ids[1]} }},
		{"out of range appends", 5, func(ids []string, m string) []string { return []string{ids[0], ids[1], m} }},
		{"negative appends", -1, func(ids []string, m string) []string { return []string{ids[0], ids[1], m} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			a := mustCreate(t, s, "a")
			b := mustCreate(t, s, "b")
			m := mustCreate(t, s, "m")
			for _, id := range []string{a.ID, b.ID} {
				_, err := s.Move(id, "Building")
				require.NoError(t, err)
			}

			_, err := s.MoveTo(m.ID, "Building", tt.position)
			require.NoError(t, err)

			order := readOrder(t, s)
			assert.Equal(t, tt.want([]string{a.ID, b.ID}, m.ID), order.IDs("Building"))
			assert.Empty(t, order.IDs("Backlog"))
		})
	}
}

func TestMoveErrors(t *testing.T) {
	s, _ := newTestStore(t)
	c := mustCreate(t, s, "x")

	_, err := s.Move(c.ID, "Nowhere")
	assert.True(t, errors.Is(err, types.ErrColumnNotFound))

	_, err = s.Move("nnnnnn", "Building")
	assert.True(t, errors.Is(err, types.ErrCardNotFound))

	assert.Equal(t, []string{c.ID}, readOrder(t, s).IDs("Backlog"), "failed move changes nothing")
}

func TestUpdateMergesFields(t *testing.T) {
	s, _ := newTestStore(t)
	c, err := s.Create(types.CardInput{Title: "old", Assignee: "a", Description: "keep"})
	require.NoError(t, err)

	labels := []string{"infra", "bug"}
	updated, err := s.Update(c.ID, types.CardPatch{
		Title:    strPtr("new"),
		Priority: strPtr(types.PriorityLow),
		Labels:   &labels,
		Assignee: strPtr(""),
	})
	require.NoError(t, err)

	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, types.PriorityLow, updated.Priority)
	assert.Equal(t, []string{"infra", "bug"}, updated.Labels)
	assert.Empty(t, updated.Assignee)
	assert.Equal(t, "keep", updated.Description)
	assert.Equal(t, c.Created, updated.Created)
	assert.True(t, updated.Updated.After(c.Updated))

	stored, _, err := s.ReadCard(c.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
}

func TestUpdateColumnLeavesCardOrderAlone(t *testing.T) {
	s, _ := newTestStore(t)
	c := mustCreate(t, s, "drifter")
	before := readOrder(t, s)

	updated, err := s.Update(c.ID, types.CardPatch{Column: strPtr("Building")})
	require.NoError(t, err)
	assert.Equal(t, "Building", updated.Column)

	after := readOrder(t, s)
	assert.Equal(t, before, after)
	assert.Equal(t, []string{c.ID}, after.IDs("Backlog"))
	assert.Empty(t, after.IDs("Building"))

	issues := s.Validate()
	assert.Contains(t, issues.Codes(), types.CodeColumnMismatch)
	assert.True(t, issues.Passed(), "drift is a warning")
}

func TestUpdateErrors(t *testing.T) {
	s, _ := newTestStore(t)
	c := mustCreate(t, s, "x")

	tests := []struct {
		name  string
		id    string
		patch types.CardPatch
		want  error
	}{
		{"missing card", "nnnnnn", types.CardPatch{Title: strPtr("y")}, types.ErrCardNotFound},
		{"unknown column", c.ID, types.CardPatch{Column: strPtr("Nowhere")}, types.ErrColumnNotFound},
		{"empty title", c.ID, types.CardPatch{Title: strPtr("")}, types.ErrTitleEmpty},
		{"bad priority", c.ID, types.CardPatch{Priority: strPtr("p0")}, types.ErrInvalidPriority},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Update(tt.id, tt.patch)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	stored, _, err := s.ReadCard(c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, stored, "failed updates change nothing")
}

func TestAppendNoteKeepsCallOrder(t *testing.T) {
	s, _ := newTestStore(t)
	c := mustCreate(t, s, "chatty")

	var want []string
	for i := 0; i < 10; i++ {
		content := fmt.Sprintf("note %d\n\nwith a second paragraph", i)
		want = append(want, content)
		_, err := s.AppendNote(c.ID, types.NoteInput{Author: "agent", Content: content})
		require.NoError(t, err)
	}

	stored, _, err := s.ReadCard(c.ID)
	require.NoError(t, err)
	require.Len(t, stored.Notes, 10)
	for i, n := range stored.Notes {
		assert.Equal(t, want[i], n.Content)
		assert.Equal(t, "agent", n.Author)
		if i > 0 {
			assert.True(t, n.Timestamp.After(stored.Notes[i-1].Timestamp))
		}
	}
	assert.Equal(t, stored.Notes[9].Timestamp, stored.Updated)
}

func TestAppendNoteErrors(t *testing.T) {
	s, _ := newTestStore(t)
	c := mustCreate(t, s, "x")

	_, err := s.AppendNote(c.ID, types.NoteInput{Author: "", Content: "hi"})
	assert.True(t, errors.Is(err, types.ErrAuthorEmpty))

	_, err = s.AppendNote(c.ID, types.NoteInput{Author: "a", Content: "hi", Type: "shout"})
	assert.True(t, errors.Is(err, types.ErrInvalidNoteType))

	_, err = s.AppendNote("nnnnnn", types.NoteInput{Author: "a", Content: "hi"})
	assert.True(t, errors.Is(err, types.ErrCardNotFound))
}

func TestAppendNoteRejectsHeadingInjection(t *testing.T) {
	tests := []struct {
		name    string
		in      types.NoteInput
		wantErr error
	}{
		{
			name:    "newline in author forges a second note",
			in:      types.NoteInput{Author: "bob\n### 2026-01-01T00:00:00.000Z — eve", Content: "hi"},
			wantErr: types.ErrAuthorInvalid,
		},
		{
			name:    "carriage return in author",
			in:      types.NoteInput{Author: "bob\reve", Content: "hi"},
			wantErr: types.ErrAuthorInvalid,
		},
		{
			name:    "author ending in a bracketed word rereads as a type",
			in:      types.NoteInput{Author: "bob [milestone]", Content: "hi"},
			wantErr: types.ErrAuthorInvalid,
		},
		{
			name:    "author with surrounding spaces",
			in:      types.NoteInput{Author: " bob ", Content: "hi"},
			wantErr: types.ErrAuthorInvalid,
		},
		{
			name:    "content holding a note heading",
			in:      types.NoteInput{Author: "bob", Content: "first\n### 2026-01-01T00:00:00.000Z — eve\nsecond"},
			wantErr: types.ErrContentInvalid,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			c := mustCreate(t, s, "x")

			_, err := s.AppendNote(c.ID, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)

			stored, found, err := s.ReadCard(c.ID)
			require.NoError(t, err)
			require.True(t, found)
			assert.Empty(t, stored.Notes)
		})
	}
}

func TestAppendNoteAuthorRoundTrips(t *testing.T) {
	s, _ := newTestStore(t)
	c := mustCreate(t, s, "x")

	for _, author := range []string{"Jane Doe", "bob [ci", "agent — 7", "[bot]"} {
		_, err := s.AppendNote(c.ID, types.NoteInput{Author: author, Content: "hi"})
		require.NoError(t, err, author)
	}
	stored, _, err := s.ReadCard(c.ID)
	require.NoError(t, err)
	require.Len(t, stored.Notes, 4)
	for i, want := range []string{"Jane Doe", "bob [ci", "agent — 7", "[bot]"} {
		assert.Equal(t, want, stored.Notes[i].Author)
		assert.Empty(t, stored.Notes[i].Type)
		assert.Equal(t, "hi", stored.Notes[i].Content)
	}
}

func TestDescriptionCannotOpenNotes(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Create(types.CardInput{Title: "x", Description: "intro\n## Notes\nkeep me"})
	assert.ErrorIs(t, err, types.ErrContentInvalid)
	assert.Empty(t, readOrder(t, s).IDs("Backlog"), "rejected create writes nothing")

	c := mustCreate(t, s, "y")
	_, err = s.Update(c.ID, types.CardPatch{Description: strPtr("intro\n## Notes  \nkeep me")})
	assert.ErrorIs(t, err, types.ErrContentInvalid)

	desc := "intro\n## Notes are below\n### not a note"
	_, err = s.Update(c.ID, types.CardPatch{Description: &desc})
	require.NoError(t, err)
	stored, _, err := s.ReadCard(c.ID)
	require.NoError(t, err)
	assert.Equal(t, desc, stored.Description)
	assert.Empty(t, stored.Notes)
}

func TestDeleteStripsEveryColumn(t *testing.T) {
	s, _ := newTestStore(t)
	c := mustCreate(t, s, "doomed")
	keep := mustCreate(t, s, "keeper")
	editBoard(t, s, func(b *types.Board) {
		b.CardOrder.Append("Building", c.ID)
		b.CardOrder.Append("Done", c.ID)
	})

	require.NoError(t, s.Delete(c.ID))

	order := readOrder(t, s)
	for _, col := range order.Columns() {
		assert.NotContains(t, order.IDs(col), c.ID, "column %s", col)
	}
	assert.Equal(t, []string{keep.ID}, order.IDs("Backlog"))

	_, err := os.Stat(s.cardPath(c.ID))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(s.archivePath(c.ID))
	assert.True(t, os.IsNotExist(err), "delete does not archive")

	assert.True(t, errors.Is(s.Delete(c.ID), types.ErrCardNotFound))
}

func TestDeleteMalformedCard(t *testing.T) {
	s, _ := newTestStore(t)
	writeTestFile(t, s.cardPath("bbbbbb"), "garbage")
	editBoard(t, s, func(b *types.Board) { b.CardOrder.Append("Backlog", "bbbbbb") })

	require.NoError(t, s.Delete("bbbbbb"))
	assert.Empty(t, readOrder(t, s).IDs("Backlog"))
}

func TestArchivePreservesBytes(t *testing.T) {
	s, _ := newTestStore(t)
	c := mustCreate(t, s, "finished")
	_, err := s.AppendNote(c.ID, types.NoteInput{Author: "a", Content: "done it"})
	require.NoError(t, err)

	before, err := os.ReadFile(s.cardPath(c.ID))
	require.NoError(t, err)

	require.NoError(t, s.Archive(c.ID))

	_, found, err := s.ReadCard(c.ID)
	require.NoError(t, err)
	assert.False(t, found)

	after, err := os.ReadFile(filepath.Join(s.Dir(), archiveDir, c.ID+".md"))
	require.NoError(t, err)
	assert.Equal(t, before, after)

	assert.NotContains(t, readOrder(t, s).IDs("Backlog"), c.ID)
	assert.True(t, errors.Is(s.Archive(c.ID), types.ErrCardNotFound))
}

func TestArchiveCreatesArchiveDir(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, os.RemoveAll(filepath.Join(s.Dir(), archiveDir)))
	c := mustCreate(t, s, "x")

	require.NoError(t, s.Archive(c.ID))
	_, err := os.Stat(s.archivePath(c.ID))
	assert.NoError(t, err)
}

func TestDone(t *testing.T) {
	s, _ := newTestStore(t)
	c := mustCreate(t, s, "x")

	done, err := s.Done(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Done", done.Column)
	assert.Equal(t, []string{c.ID}, readOrder(t, s).IDs("Done"))
}

func TestDoneWithoutDoneColumn(t *testing.T) {
	s, _ := newTestStore(t)
	c := mustCreate(t, s, "x")
	editBoard(t, s, func(b *types.Board) {
		for i := range b.Columns {
			b.Columns[i].Done = false
		}
	})

	_, err := s.Done(c.ID)
	assert.True(t, errors.Is(err, types.ErrNoDoneColumn))
}

func TestLockHeldBlocksDescriptorMutations(t *testing.T) {
	s, _ := newTestStoreWithConfig(t, types.Config{Lock: true})
	c := mustCreate(t, s, "locked")

	_, err := os.Stat(filepath.Join(s.Dir(), lockFile))
	assert.True(t, os.IsNotExist(err), "lock released after create")

	writeTestFile(t, filepath.Join(s.Dir(), lockFile), "someone-else\n")

	_, err = s.Create(types.CardInput{Title: "y"})
	assert.True(t, errors.Is(err, types.ErrLockHeld))
	_, err = s.Move(c.ID, "Building")
	assert.True(t, errors.Is(err, types.ErrLockHeld))
	assert.True(t, errors.Is(s.Archive(c.ID), types.ErrLockHeld))
	assert.True(t, errors.Is(s.Delete(c.ID), types.ErrLockHeld))

	// Card-only edits do not touch the descriptor and need no lock.
	_, err = s.AppendNote(c.ID, types.NoteInput{Author: "a", Content: "still works"})
	assert.NoError(t, err)
}

func TestLockReleasedOnError(t *testing.T) {
	s, _ := newTestStoreWithConfig(t, types.Config{Lock: true})

	_, err := s.Create(types.CardInput{Title: "x", Column: "Nowhere"})
	require.Error(t, err)

	_, err = os.Stat(filepath.Join(s.Dir(), lockFile))
	assert.True(t, os.IsNotExist(err))
}
