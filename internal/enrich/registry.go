package enrich

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// AdapterError records an adapter that failed during a pass.
type AdapterError struct {
	Adapter string `json:"adapter"`
	Message string `json:"message"`
}

func (e AdapterError) Error() string {
	return e.Adapter + ": " + e.Message
}

// Record holds one card's enrichment keyed by adapter name.
type Record map[string]any

// Result is the outcome of an enrichment pass. Every input card has a
// Record, possibly empty.
type Result struct {
	Enrichments map[string]Record `json:"enrichments"`
	Errors      []AdapterError    `json:"errors"`
}

// Registry holds the adapters available for enrichment passes.
type Registry struct {
	adapters map[string]Adapter
	logger   *log.Logger
}

// NewRegistry returns an empty registry. A nil logger discards output.
func NewRegistry(logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Registry{adapters: make(map[string]Adapter), logger: logger}
}

// DefaultRegistry returns a registry with the ralph, specops and
// specArtifact adapters registered.
func DefaultRegistry(logger *log.Logger) *Registry {
	r := NewRegistry(logger)
	r.Register(RalphAdapter{})
	r.Register(SpecopsAdapter{})
	r.Register(SpecArtifactAdapter{})
	return r
}

// Register adds a, replacing any adapter with the same name.
func (r *Registry) Register(a Adapter) {
	r.adapters[a.Name()] = a
}

// Enrich runs the enabled adapters in order. Unknown and unavailable
// adapters are skipped. A failing adapter is recorded in Result.Errors and
// the pass continues with the next one.
func (r *Registry) Enrich(repoRoot string, cards []*types.Card, enabled []string) *Result {
	res := &Result{
		Enrichments: make(map[string]Record, len(cards)),
		Errors:      []AdapterError{},
	}
	for _, c := range cards {
		res.Enrichments[c.ID] = Record{}
	}

	for _, name := range enabled {
		a, ok := r.adapters[name]
		if !ok {
			r.logger.Debug("adapter not registered", "adapter", name)
			continue
		}
		data, err := r.run(a, repoRoot, cards)
		if err != nil {
			r.logger.Warn("adapter failed", "adapter", name, "err", err)
			res.Errors = append(res.Errors, AdapterError{Adapter: name, Message: err.Error()})
			continue
		}
		for id, v := range data {
			rec, ok := res.Enrichments[id]
			if !ok {
				rec = Record{}
				res.Enrichments[id] = rec
			}
			rec[name] = v
		}
	}
	return res
}

// run calls one adapter, turning a panic into an error.
func (r *Registry) run(a Adapter, repoRoot string, cards []*types.Card) (data map[string]any, err error) {
	defer func() {
		if p := recover(); p != nil {
			data, err = nil, fmt.Errorf("panic: %v", p)
		}
	}()
	if !a.Available(repoRoot) {
		r.logger.Debug("adapter unavailable", "adapter", a.Name())
		return nil, nil
	}
	return a.Enrich(repoRoot, cards)
}
