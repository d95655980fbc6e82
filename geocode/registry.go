// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"fmt"
	"slices"
	"sync"
)

// Registry maps provider names to Geocoder implementations.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Geocoder
}

// NewRegistry returns a Registry holding the given providers.
func NewRegistry(providers ...Geocoder) *Registry {
	registry := &Registry{providers: make(map[string]Geocoder, len(providers))}
	for _, provider := range providers {
		registry.Register(provider)
	}
	return registry
}

// Register adds or replaces a provider under its Name.
func (r *Registry) Register(provider Geocoder) {
	if provider == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[provider.Name()] = provider
}

// Lookup returns the provider registered under name.
func (r *Registry) Lookup(name string) (Geocoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[name]
	return provider, ok
}

// Names returns the sorted names of all registered providers.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Select returns the providers named in order, keeping that order.
func (r *Registry) Select(order []string) ([]Geocoder, error) {
	if len(order) == 0 {
		return nil, ErrNoProviders
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	selected := make([]Geocoder, 0, len(order))
	for _, name := range order {
		provider, ok := r.providers[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
		}
		selected = append(selected, provider)
	}
	return selected, nil
}
