package types

import "fmt"

// Severity grades a validation issue. Only SeverityError issues fail a
// board.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue codes reported by the validator.
const (
	CodeBoardNotFound        = "BOARD_NOT_FOUND"
	CodeBoardInvalid         = "BOARD_INVALID"
	CodeBoardReadError       = "BOARD_READ_ERROR"
	CodeCardParseError       = "CARD_PARSE_ERROR"
	CodeInvalidColumnInOrder = "INVALID_COLUMN_IN_ORDER"
	CodeInvalidCardIDFormat  = "INVALID_CARD_ID_FORMAT"
	CodeDuplicateCardInOrder = "DUPLICATE_CARD_IN_ORDER"
	CodeGhostCardReference   = "GHOST_CARD_REFERENCE"
	CodeOrphanCard           = "ORPHAN_CARD"
	CodeColumnMismatch       = "COLUMN_MISMATCH"
	CodePathTraversalSpecRef = "PATH_TRAVERSAL_SPECREF"
	CodePathTraversalRalph   = "PATH_TRAVERSAL_RALPH"
	CodeInvalidSpecRefFormat = "INVALID_SPECREF_FORMAT"
	CodeUnknownLabel         = "UNKNOWN_LABEL"
)

// Issue is one validation finding.
type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Path     string   `json:"path,omitempty"`
}

func (i Issue) String() string {
	if i.Path != "" {
		return fmt.Sprintf("%s %s: %s (%s)", i.Severity, i.Code, i.Message, i.Path)
	}
	return fmt.Sprintf("%s %s: %s", i.Severity, i.Code, i.Message)
}

// Issues is the result of validating a board.
type Issues []Issue

// Errors returns the error-severity issues.
func (is Issues) Errors() Issues {
	return is.bySeverity(SeverityError)
}

// Warnings returns the warning-severity issues.
func (is Issues) Warnings() Issues {
	return is.bySeverity(SeverityWarning)
}

// Passed reports whether there are no error-severity issues.
func (is Issues) Passed() bool {
	return len(is.Errors()) == 0
}

// Codes returns the issue codes in order, mostly useful in tests and logs.
func (is Issues) Codes() []string {
	codes := make([]string, len(is))
	for i, issue := range is {
		codes[i] = issue.Code
	}
	return codes
}

func (is Issues) bySeverity(s Severity) Issues {
	var out Issues
	for _, issue := range is {
		if issue.Severity == s {
			out = append(out, issue)
		}
	}
	return out
}
