package adapters

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateKey rejects double registration; use Replace for
	// explicit overwrite semantics.
	ErrDuplicateKey = errors.New("adapter already registered")
	// ErrNotFound reports a lookup for an unregistered key.
	ErrNotFound = errors.New("adapter not registered")
)

// Registration pairs a provider key with its adapter.
type Registration struct {
	Key     string
	Adapter Adapter
}

// Registry is an ordered provider-key -> adapter table. It holds no
// polling state and must be fully populated before the watcher starts;
// it is not safe for concurrent registration.
type Registry struct {
	keys     []string
	adapters map[string]Adapter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

// Register adds an adapter under key. Duplicate keys fail rather than
// silently overwriting.
func (r *Registry) Register(key string, adapter Adapter) error {
	if _, exists := r.adapters[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	r.keys = append(r.keys, key)
	r.adapters[key] = adapter
	return nil
}

// Replace installs an adapter under key, overwriting any existing entry.
func (r *Registry) Replace(key string, adapter Adapter) {
	if _, exists := r.adapters[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.adapters[key] = adapter
}

// Get looks up the adapter for key.
func (r *Registry) Get(key string) (Adapter, error) {
	adapter, ok := r.adapters[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return adapter, nil
}

// List returns all registrations in registration order.
func (r *Registry) List() []Registration {
	out := make([]Registration, 0, len(r.keys))
	for _, key := range r.keys {
		out = append(out, Registration{Key: key, Adapter: r.adapters[key]})
	}
	return out
}
