package types

// CardInput carries the caller-supplied fields for a new card. Empty
// Column, Priority and Source fall back to board and package defaults.
type CardInput struct {
	Title        string
	Column       string
	Priority     string
	Labels       []string
	Assignee     string
	Description  string
	Source       string
	Due          string
	SpecRef      string
	RalphFeature string
	Meeting      string
	Blockers     []Blocker
}

// CardPatch lists the mutable card fields. A nil field is left unchanged.
type CardPatch struct {
	Title        *string
	Column       *string
	Priority     *string
	Labels       *[]string
	Assignee     *string
	Description  *string
	Due          *string
	Pin          *bool
	Blockers     *[]Blocker
	SpecRef      *string
	RalphFeature *string
}

// Apply copies every non-nil patch field onto c. It does not touch the ID,
// timestamps, source, meeting, or notes.
func (p CardPatch) Apply(c *Card) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Column != nil {
		c.Column = *p.Column
	}
	if p.Priority != nil {
		c.Priority = *p.Priority
	}
	if p.Labels != nil {
		c.Labels = append([]string{}, (*p.Labels)...)
	}
	if p.Assignee != nil {
		c.Assignee = *p.Assignee
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Due != nil {
		c.Due = *p.Due
	}
	if p.Pin != nil {
		c.Pin = *p.Pin
	}
	if p.Blockers != nil {
		c.Blockers = append([]Blocker{}, (*p.Blockers)...)
	}
	if p.SpecRef != nil {
		c.SpecRef = *p.SpecRef
	}
	if p.RalphFeature != nil {
		c.RalphFeature = *p.RalphFeature
	}
}

// IsEmpty reports whether the patch changes nothing.
func (p CardPatch) IsEmpty() bool {
	return p == CardPatch{}
}

// NoteInput is a note to append; the timestamp is assigned on write.
type NoteInput struct {
	Author  string
	Content string
	Type    string
}

// ListFilter narrows a card listing. Zero fields match everything; Labels
// matches cards carrying any of the given labels.
type ListFilter struct {
	Column   string
	Blocked  bool
	Priority string
	Labels   []string
	Assignee string
}

// Match reports whether c passes the filter.
func (f ListFilter) Match(c *Card) bool {
	if f.Column != "" && c.Column != f.Column {
		return false
	}
	if f.Blocked && !c.IsBlocked() {
		return false
	}
	if f.Priority != "" && c.Priority != f.Priority {
		return false
	}
	if f.Assignee != "" && c.Assignee != f.Assignee {
		return false
	}
	if len(f.Labels) > 0 {
		for _, l := range f.Labels {
			if c.HasLabel(l) {
				return true
			}
		}
		return false
	}
	return true
}
