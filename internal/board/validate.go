package board

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// specRefPattern is the kebab-case form specRef values are expected to take.
var specRefPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate loads the board and reports every structural problem found. It
// never fails: a missing or unreadable descriptor is itself an issue.
func (s *Store) Validate() types.Issues {
	st, err := s.ReadBoard()
	if err != nil {
		return types.Issues{boardLoadIssue(err, s.boardPath())}
	}
	return ValidateState(st)
}

func boardLoadIssue(err error, path string) types.Issue {
	code := types.CodeBoardReadError
	switch {
	case errors.Is(err, types.ErrBoardNotFound):
		code = types.CodeBoardNotFound
	case errors.Is(err, types.ErrBoardInvalid):
		code = types.CodeBoardInvalid
	}
	return types.Issue{Severity: types.SeverityError, Code: code, Message: err.Error(), Path: path}
}

// ValidateState checks a loaded board. All checks run; nothing short
// circuits.
func ValidateState(st *BoardState) types.Issues {
	issues := types.Issues{}
	add := func(sev types.Severity, code, path, format string, args ...any) {
		issues = append(issues, types.Issue{
			Severity: sev,
			Code:     code,
			Message:  fmt.Sprintf(format, args...),
			Path:     path,
		})
	}
	b := st.Board

	for _, ce := range st.Errors {
		add(types.SeverityError, types.CodeCardParseError, ce.Path,
			"Failed to parse card %s: %s", ce.CardID, ce.Message)
	}

	cardIDs := make(map[string]bool, len(st.Cards))
	for _, c := range st.Cards {
		cardIDs[c.ID] = true
	}

	ordered := make(map[string]bool)
	for _, col := range b.CardOrder.Columns() {
		if !b.HasColumn(col) {
			add(types.SeverityError, types.CodeInvalidColumnInOrder, "",
				"cardOrder references unknown column: %q", col)
		}
		for _, id := range b.CardOrder.IDs(col) {
			if !types.ValidCardID(id) {
				add(types.SeverityError, types.CodeInvalidCardIDFormat, "",
					"cardOrder contains invalid card ID: %q", id)
			}
			if ordered[id] {
				add(types.SeverityError, types.CodeDuplicateCardInOrder, "",
					"Card %q appears in cardOrder more than once", id)
			}
			ordered[id] = true
			if !cardIDs[id] {
				add(types.SeverityError, types.CodeGhostCardReference, "",
					"cardOrder references card %q but no file exists", id)
			}
		}
	}

	for _, c := range st.Cards {
		path := cardsDir + "/" + c.ID + cardExt
		if !ordered[c.ID] {
			add(types.SeverityWarning, types.CodeOrphanCard, path,
				"Card %q exists as a file but is not in any column's cardOrder", c.ID)
		}
		if col, ok := b.CardOrder.ColumnOf(c.ID); ok && col != c.Column {
			add(types.SeverityWarning, types.CodeColumnMismatch, path,
				"Card %q has column=%q but is in cardOrder under %q", c.ID, c.Column, col)
		}

		if c.SpecRef != "" {
			if strings.Contains(c.SpecRef, "..") {
				add(types.SeverityError, types.CodePathTraversalSpecRef, path,
					"Card %q specRef contains path traversal: %q", c.ID, c.SpecRef)
			} else if !specRefPattern.MatchString(c.SpecRef) {
				add(types.SeverityWarning, types.CodeInvalidSpecRefFormat, path,
					"Card %q specRef does not match expected kebab-case: %q", c.ID, c.SpecRef)
			}
		}
		if strings.Contains(c.RalphFeature, "..") {
			add(types.SeverityError, types.CodePathTraversalRalph, path,
				"Card %q ralphFeature contains path traversal: %q", c.ID, c.RalphFeature)
		}

		for _, label := range c.Labels {
			if !b.HasLabel(label) {
				add(types.SeverityWarning, types.CodeUnknownLabel, path,
					"Card %q uses label %q not in board palette", c.ID, label)
			}
		}
	}
	return issues
}
