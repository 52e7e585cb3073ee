package enrich

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// SpecArtifactAdapter inspects specs/<specRef>/ for the documents a spec
// accumulates.
type SpecArtifactAdapter struct{}

func (SpecArtifactAdapter) Name() string { return types.AdapterSpecArtifact }

func (SpecArtifactAdapter) Available(repoRoot string) bool {
	return exists(filepath.Join(repoRoot, "specs"))
}

func (SpecArtifactAdapter) Enrich(repoRoot string, cards []*types.Card) (map[string]any, error) {
	out := make(map[string]any)
	for _, c := range cards {
		if !safeRef(c.SpecRef) {
			continue
		}
		dir := filepath.Join(repoRoot, "specs", c.SpecRef)
		if !exists(dir) {
			continue
		}
		out[c.ID] = SpecArtifactEnrichment{
			OpenQuestionCount: countSections(filepath.Join(dir, "open-questions.md")),
			DecisionCount:     countSections(filepath.Join(dir, "decisions.md")),
			HasRequirements:   exists(filepath.Join(dir, "requirements.md")),
			HasSchema:         exists(filepath.Join(dir, "schemas.md")),
		}
	}
	return out, nil
}

// countSections counts "## " headings in a Markdown file. A missing or
// unreadable file counts as zero.
func countSections(path string) int {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	n := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.HasPrefix(scanner.Text(), "## ") {
			n++
		}
	}
	return n
}
