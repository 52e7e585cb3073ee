package types

import (
	"regexp"
	"time"
)

// Card priorities.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

// Card sources record how a card originated.
const (
	SourceManual        = "manual"
	SourceAgentDispatch = "agentdispatch"
	SourceVivian        = "vivian"
	SourceSlack         = "slack"
)

// Note types.
const (
	NoteComment   = "comment"
	NoteMilestone = "milestone"
	NoteBlocker   = "blocker"
	NoteUnblock   = "unblock"
)

var (
	validPriorities = map[string]bool{
		PriorityCritical: true,
		PriorityHigh:     true,
		PriorityMedium:   true,
		PriorityLow:      true,
	}
	validSources = map[string]bool{
		SourceManual:        true,
		SourceAgentDispatch: true,
		SourceVivian:        true,
		SourceSlack:         true,
	}
	validNoteTypes = map[string]bool{
		NoteComment:   true,
		NoteMilestone: true,
		NoteBlocker:   true,
		NoteUnblock:   true,
	}
)

// cardIDPattern matches a well-formed card ID.
var cardIDPattern = regexp.MustCompile(`^[a-z0-9]{6}$`)

// ValidCardID reports whether id is six lowercase alphanumerics.
func ValidCardID(id string) bool {
	return cardIDPattern.MatchString(id)
}

// ValidPriority reports whether p is a known priority.
func ValidPriority(p string) bool { return validPriorities[p] }

// ValidSource reports whether s is a known card source.
func ValidSource(s string) bool { return validSources[s] }

// ValidNoteType reports whether t is a known note type. The empty string
// (untyped note) is valid.
func ValidNoteType(t string) bool { return t == "" || validNoteTypes[t] }

// Card is one unit of work, stored as cards/<ID>.md.
type Card struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Column       string    `json:"column"`
	Priority     string    `json:"priority"`
	Labels       []string  `json:"labels"`
	Assignee     string    `json:"assignee,omitempty"`
	Created      time.Time `json:"created"`
	Updated      time.Time `json:"updated"`
	Due          string    `json:"due,omitempty"`
	Source       string    `json:"source"`
	Pin          bool      `json:"pin,omitempty"`
	Blockers     []Blocker `json:"blockers"`
	SpecRef      string    `json:"specRef,omitempty"`
	RalphFeature string    `json:"ralphFeature,omitempty"`
	Meeting      string    `json:"meeting,omitempty"`
	Description  string    `json:"description"`
	Notes        []Note    `json:"notes"`
}

// Blocker is an open question holding a card up.
type Blocker struct {
	ID       string    `json:"id"`
	Question string    `json:"question"`
	Author   string    `json:"author"`
	Created  time.Time `json:"created"`
}

// Note is an append-only annotation on a card.
type Note struct {
	Timestamp time.Time `json:"timestamp"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Type      string    `json:"type,omitempty"`
}

// IsBlocked reports whether the card has any open blocker.
func (c *Card) IsBlocked() bool {
	return len(c.Blockers) > 0
}

// HasLabel reports whether the card carries label.
func (c *Card) HasLabel(label string) bool {
	for _, l := range c.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// Blocker returns the blocker with the given ID.
func (c *Card) Blocker(id string) (Blocker, bool) {
	for _, b := range c.Blockers {
		if b.ID == id {
			return b, true
		}
	}
	return Blocker{}, false
}
