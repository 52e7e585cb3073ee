// Package enrich decorates cards with data from tools that keep their own
// state next to the board: ralph build progress, specops phases, and spec
// artifacts on disk. Adapters only read; they never touch the board.
package enrich

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// ErrInvalidState is returned when an adapter's source file does not match
// the shape the adapter expects.
var ErrInvalidState = errors.New("adapter state file is invalid")

// Adapter contributes per-card data from one external tool.
type Adapter interface {
	// Name is the key the adapter's data is stored under in a Record.
	Name() string
	// Available reports whether the tool's state exists under repoRoot.
	Available(repoRoot string) bool
	// Enrich returns data for the cards it knows about, keyed by card ID.
	Enrich(repoRoot string, cards []*types.Card) (map[string]any, error)
}

// RalphEnrichment is build progress reported by ralph for a card's
// ralphFeature.
type RalphEnrichment struct {
	BuildProgress float64 `json:"buildProgress"`
	Phase         string  `json:"phase,omitempty"`
	FilesModified int     `json:"filesModified"`
}

// SpecopsEnrichment is the specops state for a card's specRef.
type SpecopsEnrichment struct {
	SpecPhase       string   `json:"specPhase,omitempty"`
	CompletedPhases []string `json:"completedPhases,omitempty"`
	LastActivity    string   `json:"lastActivity,omitempty"`
}

// SpecArtifactEnrichment summarizes the documents under specs/<specRef>.
type SpecArtifactEnrichment struct {
	OpenQuestionCount int  `json:"openQuestionCount"`
	DecisionCount     int  `json:"decisionCount"`
	HasRequirements   bool `json:"hasRequirements"`
	HasSchema         bool `json:"hasSchema"`
}

// safeRef reports whether ref may be joined onto a directory. Refs that
// could climb out of it are refused.
func safeRef(ref string) bool {
	return ref != "" && !strings.Contains(ref, "..") && !filepath.IsAbs(ref)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
