package board

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/kanban/internal/paths"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

// DefaultBoard returns the board a fresh Init writes.
func DefaultBoard(name string) *types.Board {
	b := &types.Board{
		Name:    name,
		Version: types.BoardVersion,
		Columns: []types.Column{
			{Name: "Backlog", Description: "Work items waiting to be started"},
			{Name: "Spec Creation", WIPLimit: 3, Description: "Requirements and schema design in progress"},
			{Name: "Spec Review", WIPLimit: 2, Description: "Specs awaiting human review"},
			{Name: "Building", WIPLimit: 3, Description: "Implementation in progress"},
			{Name: "Testing", WIPLimit: 3, Description: "Verification and testing in progress"},
			{Name: "Human Review", WIPLimit: 2, Description: "Awaiting human sign-off"},
			{Name: "Done", Done: true, Description: "Completed work"},
		},
		Labels: []types.Label{
			{Name: "security", Color: "#e74c3c"},
			{Name: "backend", Color: "#3498db"},
			{Name: "frontend", Color: "#2ecc71"},
			{Name: "infra", Color: "#9b59b6"},
			{Name: "bug", Color: "#e67e22"},
			{Name: "spec", Color: "#1abc9c"},
		},
		Settings: types.Settings{
			AutoArchiveDays: 30,
			DefaultPriority: types.PriorityMedium,
			DefaultColumn:   "Backlog",
			IDFormat:        types.IDFormatAlphanumeric6,
		},
	}
	for _, c := range b.Columns {
		b.CardOrder.Set(c.Name, nil)
	}
	return b
}

// Init creates repoRoot/.kanban with empty cards/ and archive/ directories
// and a default board.yaml. An empty name uses the base name of repoRoot.
// It returns the board directory.
func Init(repoRoot, name string) (string, error) {
	dir := filepath.Join(repoRoot, paths.DefaultBoardDirName)
	if _, err := os.Stat(dir); err == nil {
		return "", fmt.Errorf("%w: %s", types.ErrBoardExists, dir)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("checking %s: %w", dir, err)
	}

	if name == "" {
		abs, err := filepath.Abs(repoRoot)
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", repoRoot, err)
		}
		name = filepath.Base(abs)
	}

	for _, sub := range []string{cardsDir, archiveDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return "", fmt.Errorf("creating %s: %w", sub, err)
		}
	}

	data, err := SerializeBoard(DefaultBoard(name))
	if err != nil {
		return "", err
	}
	if err := writeFileAtomic(filepath.Join(dir, boardFile), data); err != nil {
		return "", fmt.Errorf("writing %s: %w", boardFile, err)
	}
	return dir, nil
}
