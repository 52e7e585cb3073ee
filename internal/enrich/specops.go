package enrich

import (
	"path/filepath"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// SpecopsAdapter reads .specops/state.json, a map from specRef to the
// spec's workflow state.
type SpecopsAdapter struct{}

type specopsState struct {
	Phase           string   `json:"phase"`
	CompletedPhases []string `json:"completedPhases"`
	LastActivity    string   `json:"lastActivity"`
	Status          string   `json:"status"`
}

func specopsPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".specops", "state.json")
}

func (SpecopsAdapter) Name() string { return types.AdapterSpecops }

func (SpecopsAdapter) Available(repoRoot string) bool {
	return exists(specopsPath(repoRoot))
}

func (SpecopsAdapter) Enrich(repoRoot string, cards []*types.Card) (map[string]any, error) {
	var state map[string]specopsState
	if err := readValidated(specopsPath(repoRoot), specopsSchema, &state); err != nil {
		return nil, err
	}

	out := make(map[string]any)
	for _, c := range cards {
		if !safeRef(c.SpecRef) {
			continue
		}
		entry, ok := state[c.SpecRef]
		if !ok {
			continue
		}
		out[c.ID] = SpecopsEnrichment{
			SpecPhase:       entry.Phase,
			CompletedPhases: entry.CompletedPhases,
			LastActivity:    entry.LastActivity,
		}
	}
	return out, nil
}
