package sniff

import (
	"slices"
	"sync"
)

// Registry holds the sniff factories available to a run, in registration
// order. Dispatch order follows registration order.
type Registry struct {
	mu         sync.RWMutex
	order      []string
	factories  map[string]Factory
	prototypes map[string]Sniff
}

// NewRegistry creates an empty sniff registry.
func NewRegistry() *Registry {
	return &Registry{
		factories:  make(map[string]Factory),
		prototypes: make(map[string]Sniff),
	}
}

// Register adds a sniff factory. The factory is called once to read the
// sniff's metadata. Registering an existing code replaces the factory but
// keeps its original position.
func (r *Registry) Register(factory Factory) {
	prototype := factory()
	code := prototype.Code()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[code]; !ok {
		r.order = append(r.order, code)
	}
	r.factories[code] = factory
	r.prototypes[code] = prototype
}

// Get returns the metadata instance for code. Do not process files with it;
// use New for a fresh instance.
func (r *Registry) Get(code string) (Sniff, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.prototypes[code]
	return s, ok
}

// New returns a fresh instance of the sniff registered under code.
func (r *Registry) New(code string) (Sniff, bool) {
	r.mu.RLock()
	factory, ok := r.factories[code]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return factory(), true
}

// Sniffs returns the metadata instances in registration order.
func (r *Registry) Sniffs() []Sniff {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Sniff, 0, len(r.order))
	for _, code := range r.order {
		result = append(result, r.prototypes[code])
	}
	return result
}

// Codes returns all registered sniff codes in sorted order.
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := slices.Clone(r.order)
	slices.Sort(result)
	return result
}

// Defaults maps every registered code to its default enablement.
func (r *Registry) Defaults() map[string]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]bool, len(r.order))
	for code, s := range r.prototypes {
		result[code] = s.DefaultEnabled()
	}
	return result
}

// DefaultRegistry is the global registry for built-in sniffs.
// Sniffs register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for sniff registration
var DefaultRegistry = NewRegistry()
