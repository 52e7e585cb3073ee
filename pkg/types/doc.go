// Package types defines the board and card entity types, the validation
// issue types, configuration, and the standard error values shared by the
// kanban storage engine, its adapters, and the CLI.
//
// A board lives in a directory: board.yaml holds the descriptor (columns,
// labels, settings, and the per-column card ordering) and cards/<id>.md
// holds one document per card. Types here carry no I/O; reading and
// writing are done by internal/board.
package types
