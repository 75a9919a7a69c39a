package graphs

import (
	"sort"
	"sync"

	"github.com/pulmotools/ildflow/pkg/domain"
)

// Registry holds the decision graphs available to a server or CLI session.
type Registry struct {
	mu     sync.RWMutex
	graphs map[string]*domain.Graph
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{graphs: make(map[string]*domain.Graph)}
}

// Builtin returns a registry preloaded with the built-in clinical graphs.
func Builtin() *Registry {
	r := NewRegistry()
	for _, g := range []*domain.Graph{Diagnostic(), IPF(), ILA()} {
		r.Register(g)
	}
	return r
}

// Register adds a graph to the registry. A graph with the same ID is
// overwritten.
func (r *Registry) Register(g *domain.Graph) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.graphs[g.ID] = g
}

// Get looks up a graph by ID.
func (r *Registry) Get(id string) (*domain.Graph, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.graphs[id]
	if !ok {
		return nil, domain.ErrUnknownGraph
	}
	return g, nil
}

// List returns the registered graphs sorted by ID.
func (r *Registry) List() []*domain.Graph {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Graph, 0, len(r.graphs))
	for _, g := range r.graphs {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
