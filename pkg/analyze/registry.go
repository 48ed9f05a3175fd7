package analyze

import (
	"fmt"
	"sync"
)

// Registry holds registered analyzers and preserves registration order.
// Analyzers run and report in the order they were registered, so the order
// is part of the output contract and never re-sorted.
type Registry struct {
	mu    sync.RWMutex
	byID  map[string]Analyzer
	order []string
}

// NewRegistry creates an empty analyzer registry.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]Analyzer),
	}
}

// Register adds an analyzer to the registry.
// Registering a duplicate ID is a programming error and returns an error.
func (r *Registry) Register(a Analyzer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := a.ID()
	if _, exists := r.byID[id]; exists {
		return fmt.Errorf("analyzer %q already registered", id)
	}
	r.byID[id] = a
	r.order = append(r.order, id)
	return nil
}

// Get retrieves an analyzer by ID.
func (r *Registry) Get(id string) (Analyzer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	return a, ok
}

// Analyzers returns all registered analyzers in registration order.
func (r *Registry) Analyzers() []Analyzer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Analyzer, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.byID[id])
	}
	return result
}

// IDs returns all registered analyzer IDs in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, len(r.order))
	copy(result, r.order)
	return result
}

// DefaultRegistry is the global registry for built-in analyzers.
// Analyzers register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for analyzer registration
var DefaultRegistry = NewRegistry()
