package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testBoard() *Board {
	return &Board{
		Name:    "Test",
		Version: BoardVersion,
		Columns: []Column{
			{Name: "Backlog"},
			{Name: "Building", WIPLimit: 3},
			{Name: "Done", Done: true},
			{Name: "Shipped", Done: true},
		},
		Labels: []Label{{Name: "bug", Color: "#e67e22"}},
	}
}

func TestBoardColumnLookup(t *testing.T) {
	b := testBoard()

	col, ok := b.Column("Building")
	assert.True(t, ok)
	assert.Equal(t, 3, col.WIPLimit)

	assert.True(t, b.HasColumn("Backlog"))
	assert.False(t, b.HasColumn("backlog"), "column names are case sensitive")

	assert.Equal(t, 1, b.ColumnIndex("Building"))
	assert.Equal(t, -1, b.ColumnIndex("Nope"))
}

func TestBoardDoneColumn(t *testing.T) {
	b := testBoard()
	done, ok := b.DoneColumn()
	assert.True(t, ok)
	assert.Equal(t, "Done", done.Name, "first done column wins")

	b.Columns = b.Columns[:2]
	_, ok = b.DoneColumn()
	assert.False(t, ok)
}

func TestBoardHasLabel(t *testing.T) {
	b := testBoard()
	assert.True(t, b.HasLabel("bug"))
	assert.False(t, b.HasLabel("feature"))
}

func TestIssues(t *testing.T) {
	is := Issues{
		{Severity: SeverityWarning, Code: CodeOrphanCard, Message: "orphan", Path: "cards/aaaaaa.md"},
		{Severity: SeverityError, Code: CodeGhostCardReference, Message: "ghost"},
		{Severity: SeverityWarning, Code: CodeUnknownLabel, Message: "label"},
	}

	assert.Len(t, is.Errors(), 1)
	assert.Len(t, is.Warnings(), 2)
	assert.False(t, is.Passed())
	assert.Equal(t, []string{CodeOrphanCard, CodeGhostCardReference, CodeUnknownLabel}, is.Codes())

	assert.True(t, is.Warnings().Passed(), "warnings alone pass")
	assert.True(t, Issues(nil).Passed())

	assert.Equal(t, "warning ORPHAN_CARD: orphan (cards/aaaaaa.md)", is[0].String())
	assert.Equal(t, "error GHOST_CARD_REFERENCE: ghost", is[1].String())
}
