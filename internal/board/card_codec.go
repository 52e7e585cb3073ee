package board

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// timestampLayout is how card timestamps are written: UTC with
// millisecond precision. Finer timestamps, which only arrive through hand
// edits, are written with time.RFC3339Nano so they survive a rewrite.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

const (
	frontmatterDelim = "---"
	notesHeader      = "## Notes"
)

// noteHeading matches "### <timestamp> — <author>" with an optional
// " [<type>]" suffix.
var noteHeading = regexp.MustCompile(`^###\s+(\S+)\s+—\s+(.+?)(?:\s+\[(\w+)\])?\s*$`)

// typeSuffix matches an author ending in what would reread as a note type.
var typeSuffix = regexp.MustCompile(`\s\[\w+\]\s*$`)

// cardFrontmatter is the YAML header of a card document. Field order here is
// the order fields are written.
type cardFrontmatter struct {
	ID           string               `yaml:"id"`
	Title        string               `yaml:"title"`
	Column       string               `yaml:"column"`
	Priority     string               `yaml:"priority"`
	Labels       []string             `yaml:"labels"`
	Assignee     string               `yaml:"assignee,omitempty"`
	Created      string               `yaml:"created"`
	Updated      string               `yaml:"updated"`
	Due          string               `yaml:"due,omitempty"`
	Source       string               `yaml:"source"`
	Pin          bool                 `yaml:"pin,omitempty"`
	Blockers     []blockerFrontmatter `yaml:"blockers"`
	SpecRef      string               `yaml:"specRef,omitempty"`
	RalphFeature string               `yaml:"ralphFeature,omitempty"`
	Meeting      string               `yaml:"meeting,omitempty"`
}

type blockerFrontmatter struct {
	ID       string `yaml:"id"`
	Question string `yaml:"question"`
	Author   string `yaml:"author"`
	Created  string `yaml:"created"`
}

// ParseCard decodes a card document. Failures wrap types.ErrCardInvalid and
// name the offending field.
func ParseCard(data []byte) (*types.Card, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	header, body, err := splitFrontmatter(text)
	if err != nil {
		return nil, err
	}

	var fm cardFrontmatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return nil, fmt.Errorf("%w: frontmatter: %v", types.ErrCardInvalid, err)
	}
	if !types.ValidCardID(fm.ID) {
		return nil, fmt.Errorf("%w: id %q must be 6 lowercase alphanumerics", types.ErrCardInvalid, fm.ID)
	}
	if strings.TrimSpace(fm.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", types.ErrCardInvalid)
	}

	card := &types.Card{
		ID:           fm.ID,
		Title:        fm.Title,
		Column:       fm.Column,
		Priority:     fm.Priority,
		Labels:       fm.Labels,
		Assignee:     fm.Assignee,
		Due:          fm.Due,
		Source:       fm.Source,
		Pin:          fm.Pin,
		SpecRef:      fm.SpecRef,
		RalphFeature: fm.RalphFeature,
		Meeting:      fm.Meeting,
		Blockers:     make([]types.Blocker, 0, len(fm.Blockers)),
	}
	if card.Labels == nil {
		card.Labels = []string{}
	}
	if card.Created, err = parseTimestamp("created", fm.Created); err != nil {
		return nil, err
	}
	if card.Updated, err = parseTimestamp("updated", fm.Updated); err != nil {
		return nil, err
	}
	for i, b := range fm.Blockers {
		created, err := parseTimestamp(fmt.Sprintf("blockers[%d].created", i), b.Created)
		if err != nil {
			return nil, err
		}
		card.Blockers = append(card.Blockers, types.Blocker{
			ID:       b.ID,
			Question: b.Question,
			Author:   b.Author,
			Created:  created,
		})
	}

	card.Description, card.Notes, err = parseBody(body)
	if err != nil {
		return nil, err
	}
	return card, nil
}

// splitFrontmatter separates the YAML header from the body. The header must
// open on the first line and close with a line containing only "---".
func splitFrontmatter(text string) (header, body string, err error) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != frontmatterDelim {
		return "", "", fmt.Errorf("%w: missing frontmatter", types.ErrCardInvalid)
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") == frontmatterDelim {
			return strings.Join(lines[1:i], "\n"), strings.Join(lines[i+1:], "\n"), nil
		}
	}
	return "", "", fmt.Errorf("%w: unterminated frontmatter", types.ErrCardInvalid)
}

// parseBody splits the body at the first "## Notes" line into the
// description and the note list.
func parseBody(body string) (string, []types.Note, error) {
	lines := strings.Split(body, "\n")
	split := -1
	for i, line := range lines {
		if strings.TrimRight(line, " \t") == notesHeader {
			split = i
			break
		}
	}
	if split < 0 {
		return trimBlankLines(body), []types.Note{}, nil
	}

	description := trimBlankLines(strings.Join(lines[:split], "\n"))
	notes := []types.Note{}
	var current *types.Note
	var content []string
	flush := func() {
		if current != nil {
			current.Content = trimBlankLines(strings.Join(content, "\n"))
			notes = append(notes, *current)
		}
	}
	for _, line := range lines[split+1:] {
		m := noteHeading.FindStringSubmatch(line)
		if m == nil {
			if current != nil {
				content = append(content, line)
			}
			continue
		}
		flush()
		ts, err := parseTimestamp(fmt.Sprintf("notes[%d].timestamp", len(notes)), m[1])
		if err != nil {
			return "", nil, err
		}
		current = &types.Note{Timestamp: ts, Author: m[2], Type: m[3]}
		content = content[:0]
	}
	flush()
	return description, notes, nil
}

// trimBlankLines drops leading and trailing lines that hold only
// whitespace. Interior lines and indentation are kept.
func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

// parseTimestamp reads an ISO 8601 timestamp. A bare date is accepted as
// midnight UTC; an empty value is the zero time.
func parseTimestamp(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %s %q is not an ISO 8601 timestamp", types.ErrCardInvalid, field, value)
}

func formatTimestamp(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()%int(time.Millisecond) != 0 {
		return t.Format(time.RFC3339Nano)
	}
	return t.Format(timestampLayout)
}

// checkAuthor rejects note authors that would not reread unchanged from
// a note heading.
func checkAuthor(author string) error {
	switch {
	case strings.TrimSpace(author) == "":
		return types.ErrAuthorEmpty
	case author != strings.TrimSpace(author), strings.ContainsAny(author, "\r\n"):
		return fmt.Errorf("%w: %q", types.ErrAuthorInvalid, author)
	case typeSuffix.MatchString(author):
		return fmt.Errorf("%w: %q ends in a bracketed word", types.ErrAuthorInvalid, author)
	}
	return nil
}

// checkDescription rejects a description holding a line that would start
// the notes section.
func checkDescription(description string) error {
	for _, line := range strings.Split(description, "\n") {
		if strings.TrimRight(strings.TrimSuffix(line, "\r"), " \t") == notesHeader {
			return fmt.Errorf("%w: description contains a %q line", types.ErrContentInvalid, notesHeader)
		}
	}
	return nil
}

// checkNoteContent rejects note content holding a line that would parse as
// the heading of another note.
func checkNoteContent(content string) error {
	for _, line := range strings.Split(content, "\n") {
		if noteHeading.MatchString(strings.TrimSuffix(line, "\r")) {
			return fmt.Errorf("%w: note content contains a note heading line %q", types.ErrContentInvalid, line)
		}
	}
	return nil
}

// SerializeCard renders c as a card document: frontmatter, description,
// then the notes section when there are notes.
func SerializeCard(c *types.Card) ([]byte, error) {
	fm := cardFrontmatter{
		ID:           c.ID,
		Title:        c.Title,
		Column:       c.Column,
		Priority:     c.Priority,
		Labels:       c.Labels,
		Assignee:     c.Assignee,
		Created:      formatTimestamp(c.Created),
		Updated:      formatTimestamp(c.Updated),
		Due:          c.Due,
		Source:       c.Source,
		Pin:          c.Pin,
		SpecRef:      c.SpecRef,
		RalphFeature: c.RalphFeature,
		Meeting:      c.Meeting,
		Blockers:     make([]blockerFrontmatter, 0, len(c.Blockers)),
	}
	if fm.Labels == nil {
		fm.Labels = []string{}
	}
	for _, b := range c.Blockers {
		fm.Blockers = append(fm.Blockers, blockerFrontmatter{
			ID:       b.ID,
			Question: b.Question,
			Author:   b.Author,
			Created:  formatTimestamp(b.Created),
		})
	}

	var header bytes.Buffer
	enc := yaml.NewEncoder(&header)
	enc.SetIndent(2)
	if err := enc.Encode(&fm); err != nil {
		return nil, fmt.Errorf("encoding card %s: %w", c.ID, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding card %s: %w", c.ID, err)
	}

	var buf bytes.Buffer
	buf.WriteString(frontmatterDelim + "\n")
	buf.Write(header.Bytes())
	buf.WriteString(frontmatterDelim + "\n")
	if c.Description != "" {
		buf.WriteString("\n" + c.Description + "\n")
	}
	if len(c.Notes) > 0 {
		buf.WriteString("\n" + notesHeader + "\n")
		for _, n := range c.Notes {
			buf.WriteString("\n### " + formatTimestamp(n.Timestamp) + " — " + n.Author)
			if n.Type != "" {
				buf.WriteString(" [" + n.Type + "]")
			}
			buf.WriteString("\n\n")
			if n.Content != "" {
				buf.WriteString(n.Content + "\n")
			}
		}
	}
	return buf.Bytes(), nil
}
