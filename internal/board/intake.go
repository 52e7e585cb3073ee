package board

import (
	"fmt"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// intakeColumn is where agent and meeting intake files new cards.
const intakeColumn = "Backlog"

// meetingAuthor signs the note left on cards created from meeting notes.
const meetingAuthor = "vivian"

// AgentCardInput is a card filed by a dispatch agent.
type AgentCardInput struct {
	Title       string
	Description string
	Priority    string
	Labels      []string
	Assignee    string
}

// AgentCreate files a card in the Backlog with source agentdispatch.
func (s *Store) AgentCreate(in AgentCardInput) (*types.Card, error) {
	return s.Create(types.CardInput{
		Title:       in.Title,
		Column:      intakeColumn,
		Priority:    intakePriority(in.Priority),
		Labels:      in.Labels,
		Assignee:    in.Assignee,
		Description: in.Description,
		Source:      types.SourceAgentDispatch,
	})
}

// AgentMove moves the card to the end of column and records a milestone
// note signed by author.
func (s *Store) AgentMove(id, column, author string) (*types.Card, error) {
	note := types.NoteInput{
		Author:  author,
		Content: "Moved to " + column,
		Type:    types.NoteMilestone,
	}
	if err := checkNote(note); err != nil {
		return nil, err
	}
	if _, err := s.Move(id, column); err != nil {
		return nil, err
	}
	return s.AppendNote(id, note)
}

// ActionItem is a meeting action item to turn into a card.
type ActionItem struct {
	Title        string
	Description  string
	MeetingTitle string
	MeetingDate  string
	Priority     string
	Labels       []string
	Assignee     string
}

// CreateFromActionItem files the action item in the Backlog with source
// vivian and notes which meeting it came from.
func (s *Store) CreateFromActionItem(in ActionItem) (*types.Card, error) {
	note := types.NoteInput{
		Author:  meetingAuthor,
		Content: fmt.Sprintf("Created from meeting: %s (%s)", in.MeetingTitle, in.MeetingDate),
		Type:    types.NoteComment,
	}
	if err := checkNote(note); err != nil {
		return nil, err
	}
	card, err := s.Create(types.CardInput{
		Title:       in.Title,
		Column:      intakeColumn,
		Priority:    intakePriority(in.Priority),
		Labels:      in.Labels,
		Assignee:    in.Assignee,
		Description: in.Description,
		Source:      types.SourceVivian,
		Meeting:     in.MeetingTitle,
	})
	if err != nil {
		return nil, err
	}
	return s.AppendNote(card.ID, note)
}

func intakePriority(p string) string {
	if p == "" {
		return types.PriorityMedium
	}
	return p
}
