package board

import (
	"sort"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// ColumnCards is one column's slice of a listing.
type ColumnCards struct {
	Column string        `json:"column"`
	Cards  []*types.Card `json:"cards"`
}

// Listing is the result of List. Cards are ordered by column position on
// the board, then by position in that column's order. ByColumn holds the
// same cards grouped, skipping empty columns.
type Listing struct {
	Cards    []*types.Card `json:"cards"`
	ByColumn []ColumnCards `json:"byColumn"`
}

// List returns the loaded cards that match filter.
func (s *Store) List(filter types.ListFilter) (*Listing, error) {
	st, err := s.ReadBoard()
	if err != nil {
		return nil, err
	}
	return ListState(st, filter), nil
}

// ListState filters and orders the cards of an already loaded board.
func ListState(st *BoardState, filter types.ListFilter) *Listing {
	b := st.Board

	cards := []*types.Card{}
	for _, c := range st.Cards {
		if filter.Match(c) {
			cards = append(cards, c)
		}
	}
	sort.SliceStable(cards, func(i, j int) bool {
		ci, cj := b.ColumnIndex(cards[i].Column), b.ColumnIndex(cards[j].Column)
		if ci != cj {
			return ci < cj
		}
		return b.CardOrder.Position(cards[i].Column, cards[i].ID) <
			b.CardOrder.Position(cards[j].Column, cards[j].ID)
	})

	listing := &Listing{Cards: cards, ByColumn: []ColumnCards{}}
	for _, col := range b.Columns {
		var group []*types.Card
		for _, c := range cards {
			if c.Column == col.Name {
				group = append(group, c)
			}
		}
		if len(group) > 0 {
			listing.ByColumn = append(listing.ByColumn, ColumnCards{Column: col.Name, Cards: group})
		}
	}
	return listing
}
