package enrich

import (
	"encoding/json"
	"path/filepath"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// RalphAdapter reads .ralph/features.json and matches features to cards by
// the card's ralphFeature. Both the {"features": [...]} form and the
// object-keyed form are understood.
type RalphAdapter struct{}

type ralphFeature struct {
	Name          string   `json:"name"`
	Phase         string   `json:"phase"`
	Progress      float64  `json:"progress"`
	FilesModified []string `json:"filesModified"`
	LastActivity  string   `json:"lastActivity"`
}

func ralphPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".ralph", "features.json")
}

func (RalphAdapter) Name() string { return types.AdapterRalph }

func (RalphAdapter) Available(repoRoot string) bool {
	return exists(ralphPath(repoRoot))
}

func (RalphAdapter) Enrich(repoRoot string, cards []*types.Card) (map[string]any, error) {
	var raw map[string]json.RawMessage
	if err := readValidated(ralphPath(repoRoot), ralphSchema, &raw); err != nil {
		return nil, err
	}
	features, err := ralphFeatures(raw)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any)
	for _, c := range cards {
		if !safeRef(c.RalphFeature) {
			continue
		}
		f, ok := features[c.RalphFeature]
		if !ok {
			continue
		}
		out[c.ID] = RalphEnrichment{
			BuildProgress: f.Progress,
			Phase:         f.Phase,
			FilesModified: len(f.FilesModified),
		}
	}
	return out, nil
}

// ralphFeatures indexes the features by name. In the object-keyed form only
// entries that carry a phase count as features.
func ralphFeatures(raw map[string]json.RawMessage) (map[string]ralphFeature, error) {
	features := make(map[string]ralphFeature)
	if list, ok := raw["features"]; ok {
		var entries []ralphFeature
		if err := json.Unmarshal(list, &entries); err == nil {
			for _, f := range entries {
				features[f.Name] = f
			}
			return features, nil
		}
	}
	for key, val := range raw {
		var probe map[string]json.RawMessage
		if json.Unmarshal(val, &probe) != nil {
			continue
		}
		if _, ok := probe["phase"]; !ok {
			continue
		}
		var f ralphFeature
		if err := json.Unmarshal(val, &f); err != nil {
			return nil, err
		}
		features[key] = f
	}
	return features, nil
}
