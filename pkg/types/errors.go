package types

import "errors"

// Board descriptor errors.
var (
	ErrBoardNotFound = errors.New("board not found")
	ErrBoardInvalid  = errors.New("board validation failed")
	ErrBoardExists   = errors.New("board already exists")
)

// Card document errors.
var (
	ErrCardInvalid  = errors.New("card parse failed")
	ErrCardNotFound = errors.New("card not found")
	ErrCardExists   = errors.New("card already exists")
)

// Lifecycle precondition errors.
var (
	ErrColumnNotFound  = errors.New("column not found")
	ErrNoDoneColumn    = errors.New("no done column configured")
	ErrBlockerNotFound = errors.New("blocker not found")
	ErrTitleEmpty      = errors.New("title must not be empty")
	ErrAuthorEmpty     = errors.New("author must not be empty")
	ErrAuthorInvalid   = errors.New("author cannot be written in a note heading")
	ErrContentInvalid  = errors.New("text collides with card document structure")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidSource   = errors.New("invalid source")
	ErrInvalidNoteType = errors.New("invalid note type")
	ErrLockHeld        = errors.New("board lock is held")
)

// ErrIDGenerationExhausted is returned when every candidate card ID
// collided with an existing active or archived card.
var ErrIDGenerationExhausted = errors.New("card ID generation exhausted")
