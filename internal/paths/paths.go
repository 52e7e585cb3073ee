// Package paths resolves the configuration directory and the board
// directory a command operates on.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultBoardDirName is the board directory kept at a repository root.
const DefaultBoardDirName = ".kanban"

// boardMarker is the file whose presence identifies a board directory.
const boardMarker = "board.yaml"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "KANBAN_CONFIG_DIR"
	EnvBoardDir  = "KANBAN_BOARD_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/kanban (fallback ~/.config/kanban)
// macOS:   ~/Library/Application Support/kanban
// Windows: %APPDATA%/kanban
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "kanban"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "kanban"), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "kanban"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > KANBAN_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveBoardDir returns the board directory following the precedence
// chain: flag > configYAMLValue > KANBAN_BOARD_DIR env > nearest ancestor of
// the working directory holding .kanban/board.yaml > $(CWD)/.kanban.
//
// The last fallback names a board that may not exist yet, which is what
// init wants.
func ResolveBoardDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvBoardDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if dir, ok := FindBoardDir(cwd); ok {
		return dir, nil
	}
	return filepath.Join(cwd, DefaultBoardDirName), nil
}

// FindBoardDir walks from start toward the filesystem root and returns the
// first .kanban directory that contains a board.yaml.
func FindBoardDir(start string) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, DefaultBoardDirName)
		if info, err := os.Stat(filepath.Join(candidate, boardMarker)); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// RepoRoot returns the directory that holds boardDir. Enrichment adapters
// look for their state files there.
func RepoRoot(boardDir string) string {
	return filepath.Dir(filepath.Clean(boardDir))
}
